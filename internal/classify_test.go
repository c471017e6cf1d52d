package internal

import (
	"testing"
)

func TestClassifier(t *testing.T) {
	c := NewClassifier([]string{".jpg", ".jpeg", ".png", ".gif", ".bmp", ".tiff", ".webp", ".arw", ".raw"})

	testCases := []struct {
		path     string
		expected bool
	}{
		{"photo.jpg", true},
		{"photo.JPG", true},
		{"photo.JpEg", true},
		{"/some/dir/photo.png", true},
		{"scan.tiff", true},
		{"camera.arw", true},
		{"clip.webp", true},

		{".hidden.jpg", false},
		{"/dir/.hidden.jpg", false},
		{"._resource.jpg", false},
		{"notes.txt", false},
		{"movie.mp4", false},
		{"photo", false},
		{"photo.jpg.bak", false},
	}

	for _, tc := range testCases {
		if got := c.IsOrganizable(tc.path); got != tc.expected {
			t.Errorf("IsOrganizable(%q) = %v, expected %v", tc.path, got, tc.expected)
		}
	}
}

func TestClassifier_ExtensionsWithoutDot(t *testing.T) {
	// Config values may list extensions with or without the leading dot
	c := NewClassifier([]string{"jpg", "png"})

	if !c.IsOrganizable("a.jpg") {
		t.Error("Expected jpg to be organizable")
	}
	if !c.IsOrganizable("b.PNG") {
		t.Error("Expected png to be organizable")
	}
	if c.IsOrganizable("c.gif") {
		t.Error("Expected gif to be rejected")
	}
}

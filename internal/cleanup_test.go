package internal

import (
	"testing"

	"github.com/spf13/afero"
)

func TestSidecarSweeper(t *testing.T) {
	fs := afero.NewMemMapFs()

	afero.WriteFile(fs, "/out/2022/01/photo.jpg", []byte("keep"), 0644)
	afero.WriteFile(fs, "/out/2022/01/._photo.jpg", []byte("fork"), 0644)
	afero.WriteFile(fs, "/out/2022/02/._other.png", []byte("fork"), 0644)
	afero.WriteFile(fs, "/out/duplicates/._deep.jpg", []byte("fork"), 0644)

	sweeper := &SidecarSweeper{Fs: fs}
	removed := sweeper.Sweep("/out")

	if removed != 3 {
		t.Errorf("Expected 3 removals, got %d", removed)
	}
	if ok, _ := afero.Exists(fs, "/out/2022/01/photo.jpg"); !ok {
		t.Error("Regular file was removed by the sweep")
	}
	if ok, _ := afero.Exists(fs, "/out/2022/01/._photo.jpg"); ok {
		t.Error("Sidecar file survived the sweep")
	}
}

func TestSidecarSweeper_EmptyTree(t *testing.T) {
	fs := afero.NewMemMapFs()
	fs.MkdirAll("/out", 0755)

	sweeper := &SidecarSweeper{Fs: fs}
	if removed := sweeper.Sweep("/out"); removed != 0 {
		t.Errorf("Expected 0 removals, got %d", removed)
	}
}

func TestNoopSweeper(t *testing.T) {
	if removed := (NoopSweeper{}).Sweep("/anything"); removed != 0 {
		t.Errorf("NoopSweeper removed %d files", removed)
	}
}

package internal

import (
	"path/filepath"
	"strings"
)

// Classifier decides which directory entries are organizable images based on
// a fixed extension allow-list. Hidden files (dot-prefixed) are rejected
// before the extension is even looked at; there is no content sniffing.
type Classifier struct {
	extensions map[string]bool
}

func NewClassifier(extensions []string) *Classifier {
	allowed := make(map[string]bool, len(extensions))
	for _, e := range extensions {
		e = strings.ToLower(e)
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		allowed[e] = true
	}
	return &Classifier{extensions: allowed}
}

// IsOrganizable reports whether path names an image file this tool handles.
func (c *Classifier) IsOrganizable(path string) bool {
	name := filepath.Base(path)
	if strings.HasPrefix(name, ".") {
		return false
	}
	return c.extensions[strings.ToLower(filepath.Ext(name))]
}

package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
)

// duplicatesDirName is the subfolder of the destination root (or of a scanned
// folder in dedupe mode) that receives repeated content.
const duplicatesDirName = "duplicates"

// PlaceAction is the decision the placement resolver hands back to the driver.
type PlaceAction int

const (
	// ActionCopy means the resolved path is free; copy the file there.
	ActionCopy PlaceAction = iota
	// ActionSkipIdentical means a byte-identical file already sits at the
	// target path; do nothing and count the file as already present.
	ActionSkipIdentical
)

// Placer maps (date, fingerprint, prior-sighting) to a destination path that
// is guaranteed not to exist at decision time. No file is ever overwritten:
// name clashes are resolved by appending _1, _2, ... before the extension,
// up to suffixLimit attempts.
type Placer struct {
	fs          afero.Fs
	destRoot    string
	tag         string
	suffixLimit int
}

func NewPlacer(fs afero.Fs, destRoot, tag string, suffixLimit int) *Placer {
	return &Placer{fs: fs, destRoot: destRoot, tag: tag, suffixLimit: suffixLimit}
}

// ResolveUnique computes the destination for first-seen content: the
// YYYY/MM month folder, created if absent, with the original filename
// (tag-prefixed when a tag is set). If a file already exists at the exact
// target, its content decides the outcome: identical bytes become a skip,
// different bytes get a collision suffix.
func (p *Placer) ResolveUnique(srcPath, fingerprint string, date time.Time) (PlaceAction, string, error) {
	monthDir := filepath.Join(p.destRoot,
		fmt.Sprintf("%04d", date.Year()),
		fmt.Sprintf("%02d", date.Month()))
	if err := p.fs.MkdirAll(monthDir, 0755); err != nil {
		return ActionCopy, "", fmt.Errorf("failed to create month folder %s: %w", monthDir, err)
	}

	name := filepath.Base(srcPath)
	if p.tag != "" {
		name = p.tag + "_" + name
	}
	target := filepath.Join(monthDir, name)

	if _, err := p.fs.Stat(target); err == nil {
		existing, err := Fingerprint(p.fs, target)
		if err != nil {
			return ActionCopy, "", fmt.Errorf("failed to hash existing file %s: %w", target, err)
		}
		if existing == fingerprint {
			return ActionSkipIdentical, target, nil
		}
		target, err = p.nextFreePath(target)
		if err != nil {
			return ActionCopy, "", err
		}
	} else if !os.IsNotExist(err) {
		return ActionCopy, "", fmt.Errorf("failed to stat %s: %w", target, err)
	}

	return ActionCopy, target, nil
}

// ResolveDuplicate computes a path under the duplicates area for content seen
// earlier in this run: duplicates/<source-parent>/YYYY_MM_name. Naming here is
// governed by collision suffixing only, never by content comparison, so every
// observed duplicate occurrence is preserved.
func (p *Placer) ResolveDuplicate(srcPath string, date time.Time) (string, error) {
	subDir := filepath.Join(p.destRoot, duplicatesDirName, filepath.Base(filepath.Dir(srcPath)))
	if err := p.fs.MkdirAll(subDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create duplicates folder %s: %w", subDir, err)
	}

	name := fmt.Sprintf("%04d_%02d_%s", date.Year(), date.Month(), filepath.Base(srcPath))
	target := filepath.Join(subDir, name)

	if _, err := p.fs.Stat(target); err == nil {
		return p.nextFreePath(target)
	} else if !os.IsNotExist(err) {
		return "", fmt.Errorf("failed to stat %s: %w", target, err)
	}
	return target, nil
}

// nextFreePath appends _1, _2, ... before the extension until an unused name
// is found. The loop is capped so a pathological destination cannot spin
// forever; past the cap it returns ErrSuffixExhausted.
func (p *Placer) nextFreePath(path string) (string, error) {
	ext := filepath.Ext(path)
	base := path[:len(path)-len(ext)]
	for i := 1; i <= p.suffixLimit; i++ {
		try := fmt.Sprintf("%s_%d%s", base, i, ext)
		if _, err := p.fs.Stat(try); os.IsNotExist(err) {
			return try, nil
		}
	}
	return "", fmt.Errorf("%w for %s after %d attempts", ErrSuffixExhausted, path, p.suffixLimit)
}

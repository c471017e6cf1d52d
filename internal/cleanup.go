package internal

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// resourceForkPrefix marks macOS AppleDouble shadow files ("._name"). They
// look like image files to the classifier's extension check but hold only
// resource-fork metadata.
const resourceForkPrefix = "._"

// Sweeper removes stray metadata sidecar files after an organize pass.
// Platforms without such artifacts can plug in NoopSweeper.
type Sweeper interface {
	Sweep(root string) int
}

// SidecarSweeper deletes AppleDouble resource-fork files anywhere under root.
type SidecarSweeper struct {
	Fs afero.Fs
}

func (s *SidecarSweeper) Sweep(root string) int {
	removed := 0
	afero.Walk(s.Fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return nil
		}
		if !strings.HasPrefix(filepath.Base(path), resourceForkPrefix) {
			return nil
		}
		if err := s.Fs.Remove(path); err != nil {
			log.Warn().Err(err).Str("file", path).Msg("failed to remove sidecar file")
			return nil
		}
		log.Info().Str("file", path).Msg("removed sidecar file")
		removed++
		return nil
	})
	return removed
}

// NoopSweeper is for platforms that never produce sidecar files.
type NoopSweeper struct{}

func (NoopSweeper) Sweep(string) int { return 0 }

package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// AddPrefix walks folder and renames every classified image in place by
// prepending "prefix_". Files already carrying that exact prefix are left
// alone. Pure rename: no hashing, no date resolution. Returns the number of
// files renamed.
func AddPrefix(fs afero.Fs, classifier *Classifier, folder, prefix string) (int, error) {
	if prefix == "" {
		return 0, fmt.Errorf("no prefix specified")
	}

	info, err := fs.Stat(folder)
	if err != nil || !info.IsDir() {
		return 0, fmt.Errorf("folder does not exist or is not a directory: %s", folder)
	}

	renamed := 0
	err = afero.Walk(fs, folder, func(path string, fi os.FileInfo, err error) error {
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("walk error")
			return nil
		}
		if fi.IsDir() || !classifier.IsOrganizable(path) {
			return nil
		}

		name := fi.Name()
		if strings.HasPrefix(name, prefix+"_") {
			return nil
		}

		newPath := filepath.Join(filepath.Dir(path), prefix+"_"+name)
		if err := fs.Rename(path, newPath); err != nil {
			log.Error().Err(err).Str("file", path).Msg("error renaming file")
			return nil
		}
		log.Info().Str("from", path).Str("to", newPath).Msg("renamed")
		renamed++
		return nil
	})
	if err != nil {
		return renamed, err
	}

	return renamed, nil
}

package internal

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// BuildDestinationIndex walks an existing destination tree once and hashes
// every organized image into a tracker keyed by fingerprint. Rerun mode uses
// it to recognize already-copied content anywhere in the destination, not
// just at the same-name target path. The index lives for one invocation;
// nothing is persisted between runs.
func BuildDestinationIndex(fs afero.Fs, destRoot string, classifier *Classifier) (*Tracker, error) {
	index := NewTracker()

	exists, err := afero.DirExists(fs, destRoot)
	if err != nil {
		return nil, err
	}
	if !exists {
		return index, nil
	}

	err = afero.Walk(fs, destRoot, func(path string, fi os.FileInfo, err error) error {
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("destination index walk error")
			return nil
		}
		if fi.IsDir() || !classifier.IsOrganizable(path) {
			return nil
		}
		fingerprint, err := Fingerprint(fs, path)
		if err != nil {
			log.Warn().Err(err).Str("file", path).Msg("failed to hash organized file")
			return nil
		}
		index.Record(fingerprint, path)
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().Int("files", index.Len()).Str("destination", destRoot).Msg("destination index built")
	return index, nil
}

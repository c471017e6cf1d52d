package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// DedupeStats reports what a duplicate check found and did.
type DedupeStats struct {
	Scanned int
	Found   int
	Moved   int
}

// Deduper scans a single folder for byte-identical images without organizing
// anything. With Move set, every occurrence after the first is moved (not
// copied) into the duplicates folder, nested under the file's immediate
// source-parent directory name.
type Deduper struct {
	Fs          afero.Fs
	Classifier  *Classifier
	SuffixLimit int
	Move        bool
	MoveDir     string // defaults to <folder>/duplicates
}

func NewDeduper(fs afero.Fs, conf *Config, move bool, moveDir string) *Deduper {
	return &Deduper{
		Fs:          fs,
		Classifier:  NewClassifier(conf.ImageExt),
		SuffixLimit: conf.SuffixLimit,
		Move:        move,
		MoveDir:     moveDir,
	}
}

// Run scans folder and returns duplicate statistics. The tracker is scoped to
// this one folder; nothing carries over between invocations.
func (d *Deduper) Run(folder string) (*DedupeStats, error) {
	info, err := d.Fs.Stat(folder)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("folder does not exist or is not a directory: %s", folder)
	}

	moveDir := d.MoveDir
	if moveDir == "" {
		moveDir = filepath.Join(folder, duplicatesDirName)
	}

	stats := &DedupeStats{}
	tracker := NewTracker()
	placer := NewPlacer(d.Fs, "", "", d.SuffixLimit)

	log.Info().Str("folder", folder).Msg("scanning for duplicate images")

	err = afero.Walk(d.Fs, folder, func(path string, fi os.FileInfo, err error) error {
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("walk error")
			return nil
		}
		if fi.IsDir() {
			// never treat previously moved duplicates as new originals
			if fi.Name() == duplicatesDirName {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Classifier.IsOrganizable(path) {
			return nil
		}
		stats.Scanned++

		fingerprint, err := Fingerprint(d.Fs, path)
		if err != nil {
			log.Error().Err(err).Str("file", path).Msg("error processing file")
			return nil
		}

		original, seen := tracker.Observe(fingerprint)
		if !seen {
			tracker.Record(fingerprint, path)
			return nil
		}

		stats.Found++
		log.Info().Str("hash", shortHash(fingerprint)).Str("original", original).
			Str("duplicate", path).Msg("duplicate found")

		if !d.Move {
			return nil
		}

		subDir := filepath.Join(moveDir, filepath.Base(filepath.Dir(path)))
		if err := d.Fs.MkdirAll(subDir, 0755); err != nil {
			log.Error().Err(err).Str("dir", subDir).Msg("failed to create duplicates folder")
			return nil
		}

		dest := filepath.Join(subDir, fi.Name())
		if _, err := d.Fs.Stat(dest); err == nil {
			dest, err = placer.nextFreePath(dest)
			if err != nil {
				log.Error().Err(err).Str("file", path).Msg("failed to resolve duplicate name")
				return nil
			}
		}

		if err := moveFile(d.Fs, path, dest); err != nil {
			log.Error().Err(err).Str("file", path).Msg("error moving file")
			return nil
		}
		log.Info().Str("file", path).Str("moved", dest).Msg("duplicate moved")
		stats.Moved++
		return nil
	})
	if err != nil {
		return stats, err
	}

	return stats, nil
}

// Summary renders the end-of-check report.
func (s *DedupeStats) Summary() string {
	var b strings.Builder
	b.WriteString("\nDuplicate check complete!\n")
	fmt.Fprintf(&b, "Images scanned: %d\n", s.Scanned)
	fmt.Fprintf(&b, "Total duplicates found: %d\n", s.Found)
	if s.Moved > 0 {
		fmt.Fprintf(&b, "Duplicates moved: %d\n", s.Moved)
	}
	return b.String()
}

func shortHash(fingerprint string) string {
	if len(fingerprint) > 8 {
		return fingerprint[:8]
	}
	return fingerprint
}

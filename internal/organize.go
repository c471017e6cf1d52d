package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// RunStats accumulates per-run counters. Reported at end of run, never
// persisted.
type RunStats struct {
	Scanned         int
	Processed       int
	Duplicates      int
	AlreadyPresent  int
	Skipped         int
	Errors          int
	SidecarsRemoved int
}

// Organizer drives the classification and placement pipeline over one or more
// source roots: classify, fingerprint, resolve a date, consult the duplicate
// tracker, then let the placer decide where the copy goes. All file mutations
// happen only after the destination path is fully resolved.
type Organizer struct {
	Fs         afero.Fs
	Classifier *Classifier
	Reader     TagReader
	Placer     *Placer
	Sweeper    Sweeper
	Session    *Session

	destRoot      string
	sharedTracker bool
	rerun         bool

	tracker   *Tracker
	destIndex *Tracker

	Stats RunStats
}

func NewOrganizer(fs afero.Fs, conf *Config, reader TagReader) *Organizer {
	return &Organizer{
		Fs:            fs,
		Classifier:    NewClassifier(conf.ImageExt),
		Reader:        reader,
		Placer:        NewPlacer(fs, conf.Destination, conf.Tag, conf.SuffixLimit),
		Sweeper:       &SidecarSweeper{Fs: fs},
		destRoot:      conf.Destination,
		sharedTracker: conf.SharedTracker,
		rerun:         conf.Rerun,
		tracker:       NewTracker(),
	}
}

// Run organizes every source root in order. A missing source aborts only that
// root; only an uncreatable destination root is fatal.
func (o *Organizer) Run(sources []string) error {
	if err := o.Fs.MkdirAll(o.destRoot, 0755); err != nil {
		return fmt.Errorf("failed to create destination %s: %w", o.destRoot, err)
	}

	if o.rerun {
		index, err := BuildDestinationIndex(o.Fs, o.destRoot, o.Classifier)
		if err != nil {
			return err
		}
		o.destIndex = index
	}

	if o.Session != nil {
		o.Session.LogStart(sources)
	}

	for _, src := range sources {
		if !o.sharedTracker {
			// fresh tracker per source folder; see --shared-tracker
			o.tracker = NewTracker()
		}
		if err := o.processRoot(src); err != nil {
			log.Error().Err(err).Str("source", src).Msg("source folder skipped")
		}
	}

	o.Stats.SidecarsRemoved = o.Sweeper.Sweep(o.destRoot)

	if o.Session != nil {
		o.Session.LogEnd(o.Stats)
	}
	return nil
}

func (o *Organizer) processRoot(root string) error {
	info, err := o.Fs.Stat(root)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("source folder does not exist or is not a directory: %s", root)
	}

	absDest, _ := filepath.Abs(o.destRoot)
	return afero.Walk(o.Fs, root, func(path string, fi os.FileInfo, err error) error {
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("walk error")
			return nil
		}
		if fi.IsDir() {
			// never rescan our own output when it nests under a source
			if abs, _ := filepath.Abs(path); abs == absDest {
				return filepath.SkipDir
			}
			return nil
		}
		o.ProcessFile(path)
		return nil
	})
}

// ProcessFile runs the full pipeline for one candidate file and updates the
// run statistics. Per-file failures never abort the run.
func (o *Organizer) ProcessFile(path string) {
	o.Stats.Scanned++

	if !o.Classifier.IsOrganizable(path) {
		o.Stats.Skipped++
		return
	}

	fingerprint, err := Fingerprint(o.Fs, path)
	if err != nil {
		o.recordError(CategorizeError(path, err))
		return
	}

	date := ResolveDate(o.Fs, path, o.Reader.ReadTags(path))

	// rerun: content already organized anywhere in the destination tree
	if o.destIndex != nil {
		if existing, seen := o.destIndex.Observe(fingerprint); seen {
			log.Info().Str("file", path).Str("existing", existing).Msg("already present in destination")
			o.Stats.AlreadyPresent++
			if o.Session != nil {
				o.Session.LogSkippedIdentical(path, existing, fingerprint)
			}
			return
		}
	}

	if firstSeen, seen := o.tracker.Observe(fingerprint); seen {
		dest, err := o.Placer.ResolveDuplicate(path, date)
		if err != nil {
			o.recordError(CategorizeError(path, err))
			return
		}
		if err := copyFileAtomic(o.Fs, path, dest); err != nil {
			o.recordError(CategorizeError(path, err))
			return
		}
		log.Info().Str("file", path).Str("original", firstSeen).Str("saved", dest).Msg("duplicate found")
		o.Stats.Duplicates++
		if o.Session != nil {
			o.Session.LogDuplicate(path, dest, fingerprint, firstSeen)
		}
		return
	}

	action, dest, err := o.Placer.ResolveUnique(path, fingerprint, date)
	if err != nil {
		o.recordError(CategorizeError(path, err))
		return
	}

	if action == ActionSkipIdentical {
		log.Info().Str("file", path).Str("existing", dest).Msg("identical file exists at destination")
		o.Stats.AlreadyPresent++
		if o.Session != nil {
			o.Session.LogSkippedIdentical(path, dest, fingerprint)
		}
		return
	}

	if err := copyFileAtomic(o.Fs, path, dest); err != nil {
		o.recordError(CategorizeError(path, err))
		return
	}
	log.Info().Str("file", path).Str("dest", dest).Msg("copied")
	o.Stats.Processed++
	o.tracker.Record(fingerprint, dest)
	if o.Session != nil {
		o.Session.LogCopied(path, dest, fingerprint)
	}
}

func (o *Organizer) recordError(procErr *ProcessError) {
	log.Error().Err(procErr.OriginalErr).Str("file", procErr.FilePath).
		Str("category", string(procErr.Category)).Msg("error processing file")
	o.Stats.Errors++
	if o.Session != nil {
		o.Session.LogError(procErr)
	}
}

// Summary renders the end-of-run report printed to stdout.
func (o *Organizer) Summary() string {
	var b strings.Builder
	b.WriteString("\nProcessing complete!\n")
	fmt.Fprintf(&b, "Images processed: %d\n", o.Stats.Processed)
	fmt.Fprintf(&b, "Duplicates found: %d\n", o.Stats.Duplicates)
	fmt.Fprintf(&b, "Already in destination: %d\n", o.Stats.AlreadyPresent)
	fmt.Fprintf(&b, "Files skipped: %d\n", o.Stats.Skipped)
	fmt.Fprintf(&b, "Errors: %d\n", o.Stats.Errors)
	fmt.Fprintf(&b, "Sidecar files removed: %d\n", o.Stats.SidecarsRemoved)
	return b.String()
}

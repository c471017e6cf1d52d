package internal

import (
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// exifTimeLayout is the only accepted metadata date representation. Anything
// else is treated as absent, not partially parsed.
const exifTimeLayout = "2006:01:02 15:04:05"

// dateTagPriority lists metadata fields in the order they win.
var dateTagPriority = []string{tagDateTimeOriginal, tagDateTimeDigitized, tagDateTime}

// ResolveDate picks a capture date for a file: the first parseable metadata
// date field in priority order, else the file's modification time, else the
// current wall clock. It never fails; placement depends on it unconditionally.
func ResolveDate(fs afero.Fs, path string, tags map[string]string) time.Time {
	for _, field := range dateTagPriority {
		val, ok := tags[field]
		if !ok {
			continue
		}
		t, err := time.Parse(exifTimeLayout, val)
		if err != nil {
			log.Debug().Str("file", path).Str("field", field).Str("value", val).Msg("malformed metadata date")
			continue
		}
		return t
	}

	if fi, err := fs.Stat(path); err == nil {
		return fi.ModTime()
	}

	return time.Now()
}

package internal

import (
	"fmt"

	exiftool "github.com/barasher/go-exiftool"
	"github.com/rs/zerolog/log"
	"github.com/rwcarlsen/goexif/exif"
	"github.com/spf13/afero"
)

// TagReader extracts metadata tags from an image file. Implementations return
// an empty map when no metadata can be read; they never fail the caller.
type TagReader interface {
	ReadTags(path string) map[string]string
}

// metadata tag names consulted by the date resolver
const (
	tagDateTimeOriginal  = "DateTimeOriginal"
	tagDateTimeDigitized = "DateTimeDigitized"
	tagDateTime          = "DateTime"
)

// ExifReader reads EXIF tags with the pure-Go goexif decoder.
type ExifReader struct {
	Fs afero.Fs
}

func NewExifReader(fs afero.Fs) *ExifReader {
	return &ExifReader{Fs: fs}
}

func (r *ExifReader) ReadTags(path string) map[string]string {
	tags := make(map[string]string)

	f, err := r.Fs.Open(path)
	if err != nil {
		log.Debug().Err(err).Str("file", path).Msg("exif open failed")
		return tags
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil {
		log.Debug().Err(err).Str("file", path).Msg("no exif data")
		return tags
	}

	for _, name := range []exif.FieldName{exif.DateTimeOriginal, exif.DateTimeDigitized, exif.DateTime} {
		tag, err := x.Get(name)
		if err != nil {
			continue
		}
		val, err := tag.StringVal()
		if err != nil {
			continue
		}
		tags[string(name)] = val
	}

	return tags
}

// ExifToolReader shells out to the exiftool binary via go-exiftool. It handles
// formats goexif does not (HEIC, some raw variants) at the cost of an external
// dependency, so it is opt-in. Paths must live on the host filesystem.
type ExifToolReader struct {
	et *exiftool.Exiftool
}

func NewExifToolReader() (*ExifToolReader, error) {
	et, err := exiftool.NewExiftool()
	if err != nil {
		return nil, fmt.Errorf("failed to start exiftool: %w", err)
	}
	return &ExifToolReader{et: et}, nil
}

func (r *ExifToolReader) ReadTags(path string) map[string]string {
	tags := make(map[string]string)

	metas := r.et.ExtractMetadata(path)
	for _, meta := range metas {
		if meta.Err != nil {
			log.Debug().Err(meta.Err).Str("file", path).Msg("exiftool extract failed")
			continue
		}
		for _, name := range []string{tagDateTimeOriginal, tagDateTimeDigitized, tagDateTime} {
			if val, err := meta.GetString(name); err == nil {
				tags[name] = val
			}
		}
	}

	return tags
}

func (r *ExifToolReader) Close() error {
	return r.et.Close()
}

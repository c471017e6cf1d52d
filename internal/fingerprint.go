package internal

import (
	"crypto/md5"
	"encoding/hex"
	"io"

	"github.com/spf13/afero"
)

// fingerprintChunkSize bounds how much of a file is held in memory at once.
const fingerprintChunkSize = 8 * 1024

// Fingerprint computes the MD5 digest of a file's content, reading it in
// 8 KiB chunks. Identical bytes always yield the identical hex digest,
// regardless of path or metadata.
func Fingerprint(fs afero.Fs, path string) (string, error) {
	f, err := fs.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := md5.New()
	buf := make([]byte, fingerprintChunkSize)
	for {
		n, err := f.Read(buf)
		if n > 0 {
			h.Write(buf[:n])
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

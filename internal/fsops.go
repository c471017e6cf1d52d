package internal

import (
	"io"

	"github.com/spf13/afero"
)

// copyFileAtomic copies a file atomically (copy temp → rename) so a crash
// mid-copy never leaves a partially written file at the final name.
func copyFileAtomic(fs afero.Fs, src, dest string) error {
	tmp := dest + ".tmp"
	in, err := fs.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := fs.Create(tmp)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		fs.Remove(tmp)
		return err
	}
	out.Close()

	return fs.Rename(tmp, dest)
}

// moveFile renames src to dest, falling back to copy+remove when rename
// fails (cross-device moves).
func moveFile(fs afero.Fs, src, dest string) error {
	if err := fs.Rename(src, dest); err == nil {
		return nil
	}
	if err := copyFileAtomic(fs, src, dest); err != nil {
		return err
	}
	return fs.Remove(src)
}

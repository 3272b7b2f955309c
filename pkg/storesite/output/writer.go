package output

import (
	"os"
	"path/filepath"
)

// WriteOptions configures WriteSite.
type WriteOptions struct {
	// Clean removes the listings directory before writing, dropping pages
	// left over from earlier builds.
	Clean bool
}

// WriteSite writes files under dir, creating directories as needed. Each
// file is written to a temporary file beside its target and renamed into
// place. Every error is an *IOError.
func WriteSite(dir string, files []File, opts WriteOptions) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return &IOError{Op: "create", Path: dir, Err: err}
	}

	if opts.Clean {
		listings := filepath.Join(dir, ListingDir)
		if err := os.RemoveAll(listings); err != nil {
			return &IOError{Op: "clean", Path: listings, Err: err}
		}
	}

	for _, f := range files {
		target := filepath.Join(dir, filepath.FromSlash(f.Path))
		if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return &IOError{Op: "create", Path: filepath.Dir(target), Err: err}
		}
		if err := writeFileAtomic(target, f.Data); err != nil {
			return err
		}
	}
	return nil
}

func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return &IOError{Op: "write", Path: path, Err: err}
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return &IOError{Op: "write", Path: path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return &IOError{Op: "write", Path: path, Err: err}
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return &IOError{Op: "write", Path: path, Err: err}
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return &IOError{Op: "rename", Path: path, Err: err}
	}
	return nil
}

package sitemap

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/d-kuro/git-sitemap/internal/errors"
)

// FileMode is the permission applied to written sitemaps.
const FileMode os.FileMode = 0o644

// WriteFile renders urls and replaces path with the result.
// The document goes to a temporary file in the same directory first and is
// renamed into place, so readers never observe a partial sitemap.
func WriteFile(path string, urls []URL) error {
	var buf bytes.Buffer
	if err := Encode(&buf, urls); err != nil {
		return errors.OutputWrite(path, err)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.OutputWrite(path, err)
	}
	tmpPath := tmp.Name()

	committed := false
	defer func() {
		if !committed {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		return errors.OutputWrite(path, err)
	}
	if err := tmp.Sync(); err != nil {
		return errors.OutputWrite(path, err)
	}
	if err := tmp.Chmod(FileMode); err != nil {
		return errors.OutputWrite(path, err)
	}
	if err := tmp.Close(); err != nil {
		return errors.OutputWrite(path, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return errors.OutputWrite(path, err)
	}

	committed = true
	return nil
}

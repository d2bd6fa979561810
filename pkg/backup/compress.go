package backup

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// removeFile is swapped in tests.
var removeFile = os.Remove

// gzipInPlace replaces path with path.gz and returns the new name. If the
// original cannot be removed afterwards, both files are left in place and
// the error is returned alongside the new name.
func gzipInPlace(path string) (string, error) {
	in, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer in.Close()

	dst := path + ".gz"
	out, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", dst, err)
	}

	werr := writeGzip(out, in, filepath.Base(path))
	cerr := out.Close()
	if werr != nil || cerr != nil {
		_ = removeFile(dst)
		if werr != nil {
			return "", fmt.Errorf("failed to compress %s: %w", path, werr)
		}
		return "", fmt.Errorf("failed to close %s: %w", dst, cerr)
	}

	if err := removeFile(path); err != nil {
		return dst, fmt.Errorf("failed to remove uncompressed %s: %w", path, err)
	}
	return dst, nil
}

func writeGzip(w io.Writer, r io.Reader, name string) error {
	zw := gzip.NewWriter(w)
	zw.Name = name
	if _, err := io.Copy(zw, r); err != nil {
		return err
	}
	return zw.Close()
}

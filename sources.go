package watermark

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// NormalizeExt lower-cases ext and adds the leading dot if it is missing, so
// "JPG", ".jpg" and "jpg" all compare equal to filepath.Ext("a.JPG").
func NormalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

// ListSources returns the paths of the immediate children of dir whose
// extension matches ext, ignoring case. Directories are skipped. The result
// is sorted by file name, as os.ReadDir returns it.
func ListSources(dir, ext string) ([]string, error) {
	want := NormalizeExt(ext)
	if want == "" {
		return nil, ErrExtension
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "read input dir %s", dir)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.ToLower(filepath.Ext(e.Name())) != want {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}

	return paths, nil
}

// OutputName is the file name written for a source: its base name with the
// extension replaced by OutputExt.
func OutputName(src string) string {
	base := filepath.Base(src)
	return strings.TrimSuffix(base, filepath.Ext(base)) + OutputExt
}

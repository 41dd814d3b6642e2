package utils

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var ErrUnsupportedImage = errors.New("unsupported image type")

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

var slugInvalid = regexp.MustCompile(`[^a-z0-9]+`)

func Slugify(s string) string {
	return strings.Trim(slugInvalid.ReplaceAllString(strings.ToLower(s), "-"), "-")
}

// SaveImage writes r to mediaDir/subdir/<slug>-<uuid><ext> and returns the
// path relative to mediaDir, always with forward slashes.
func SaveImage(mediaDir, subdir, name, filename string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !imageExtensions[ext] {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedImage, ext)
	}

	rel := path.Join(subdir, fmt.Sprintf("%s-%s%s", Slugify(name), uuid.New(), ext))
	full := filepath.Join(mediaDir, filepath.FromSlash(rel))

	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		return "", err
	}

	f, err := os.Create(full)
	if err != nil {
		return "", err
	}

	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(full)
		return "", err
	}

	if err := f.Close(); err != nil {
		_ = os.Remove(full)
		return "", err
	}

	return rel, nil
}

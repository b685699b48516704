// Package output encodes finished frames to image files.
package output

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
)

// ErrUnknownFormat is returned for a format or extension with no encoder.
var ErrUnknownFormat = errors.New("output: unknown format")

// Format names an image encoding. Its value doubles as the file extension.
type Format string

const (
	WebP Format = "webp"
	PNG  Format = "png"
	BMP  Format = "bmp"
	TGA  Format = "tga"
)

// Formats lists every supported format.
func Formats() []Format { return []Format{WebP, PNG, BMP, TGA} }

// ParseFormat accepts a format name or extension in any case, with or
// without a leading dot.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.TrimPrefix(strings.ToLower(s), "."))
	for _, known := range Formats() {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Ext returns the file extension, including the dot.
func (f Format) Ext() string { return "." + string(f) }

// Encode writes img to w in format f. WebP output is lossless.
func Encode(w io.Writer, img image.Image, f Format) error {
	switch f {
	case WebP:
		return nativewebp.Encode(w, img, nil)
	case PNG:
		return png.Encode(w, img)
	case BMP:
		return bmp.Encode(w, img)
	case TGA:
		return tga.Encode(w, img)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
}

// WriteFile encodes img to path, creating parent directories. The format
// comes from the path's extension.
func WriteFile(path string, img image.Image) error {
	f, err := ParseFormat(filepath.Ext(path))
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("output: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("output: %w", err)
	}
	if err := Encode(file, img, f); err != nil {
		file.Close()
		return fmt.Errorf("output: encode %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("output: %w", err)
	}
	return nil
}

package fonts

import (
	"fmt"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// faceDPI makes one point equal one pixel.
const faceDPI = 72

// Source produces faces of one font at arbitrary sizes.
type Source interface {
	Face(size int) (font.Face, error)
}

// Opener parses the font file at path.
type Opener func(path string) (Source, error)

// File is a parsed font file.
type File struct {
	Path string
	font *opentype.Font
}

// OpenFile reads and parses a TTF, OTF or TTC file. For collections the
// first font is used.
func OpenFile(path string) (Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read font %s: %w", path, err)
	}
	f, err := parseFirst(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font %s: %w", path, err)
	}
	return &File{Path: path, font: f}, nil
}

// Face creates a face at size pixels.
func (f *File) Face(size int) (font.Face, error) {
	return newFace(f.font, size)
}

// BuiltinFace returns the embedded Go Regular face at size. If that cannot be
// built, it returns basicfont.Face7x13, so it never fails.
func BuiltinFace(size int) font.Face {
	f, err := opentype.Parse(goregular.TTF)
	if err == nil {
		face, err := newFace(f, size)
		if err == nil {
			return face
		}
	}
	return basicfont.Face7x13
}

func parseFirst(data []byte) (*opentype.Font, error) {
	coll, err := opentype.ParseCollection(data)
	if err != nil {
		return nil, err
	}
	if coll.NumFonts() == 0 {
		return nil, fmt.Errorf("font collection is empty")
	}
	return coll.Font(0)
}

func newFace(f *opentype.Font, size int) (font.Face, error) {
	if size < 1 {
		size = 1
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     faceDPI,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create face at %dpx: %w", size, err)
	}
	return face, nil
}

package fonts

import (
	"errors"
	"log"
	"path/filepath"
	"unicode/utf8"

	"golang.org/x/image/font"
)

// MinSize is the smallest size ever tried.
const MinSize = 8

// FitRatio is the share of the target width a line may occupy. The rest
// absorbs outline bleed and rounding.
const FitRatio = 0.9

var (
	// ErrFitNotFound means no candidate fitted and the first loadable font
	// was used at the base size.
	ErrFitNotFound = errors.New("no font and size fits the target width")

	// ErrFontUnavailable means no candidate could be loaded and the
	// built-in face was used.
	ErrFontUnavailable = errors.New("no candidate font could be loaded")
)

// ResolvedFont is the outcome of a selection.
type ResolvedFont struct {
	Face font.Face
	Size int

	// Path is the font file, empty for the built-in face.
	Path string

	// Degraded is nil for a clean fit, otherwise ErrFitNotFound or
	// ErrFontUnavailable.
	Degraded error
}

// Name returns the font file name, or "builtin".
func (r ResolvedFont) Name() string {
	if r.Path == "" {
		return "builtin"
	}
	return filepath.Base(r.Path)
}

// Close releases the face.
func (r ResolvedFont) Close() error {
	if r.Face == nil {
		return nil
	}
	return r.Face.Close()
}

// Selector picks a font and size for a piece of text.
type Selector struct {
	// Open parses a candidate file. Defaults to OpenFile.
	Open Opener
}

// NewSelector creates a selector that reads fonts from disk.
func NewSelector() *Selector {
	return &Selector{Open: OpenFile}
}

// StartingSize shrinks base as text gets longer: x0.6 above 30 runes, x0.8
// above 20, x0.9 above 10.
func StartingSize(text string, base int) int {
	n := utf8.RuneCountInString(text)
	switch {
	case n > 30:
		return int(float64(base) * 0.6)
	case n > 20:
		return int(float64(base) * 0.8)
	case n > 10:
		return int(float64(base) * 0.9)
	}
	return base
}

// CandidateSizes returns the sizes tried for a starting size, in order.
func CandidateSizes(start int) []int {
	return []int{
		start,
		max(MinSize, start-6),
		max(MinSize, start-12),
		start + 6,
	}
}

// Select returns the first (font, size) whose single-line width is at most
// FitRatio of maxWidth. Fonts are tried in candidate order and, for each font,
// sizes in CandidateSizes order. The text is measured as one line, so
// multi-line input is judged by its concatenated width.
//
// Select never fails; see the package documentation for its fallbacks.
func (s *Selector) Select(text string, maxWidth int, candidates []string, baseSize int) ResolvedFont {
	open := s.Open
	if open == nil {
		open = OpenFile
	}

	start := StartingSize(text, baseSize)
	sizes := CandidateSizes(start)
	limit := float64(maxWidth) * FitRatio

	sources := make([]Source, len(candidates))
	for i, path := range candidates {
		src, err := open(path)
		if err != nil {
			continue
		}
		sources[i] = src

		for _, size := range sizes {
			face, err := src.Face(size)
			if err != nil {
				continue
			}
			width := font.MeasureString(face, text).Ceil()
			if float64(width) <= limit {
				log.Printf("Selected font: %s size: %d", filepath.Base(path), size)
				return ResolvedFont{Face: face, Size: size, Path: path}
			}
			face.Close()
		}
	}

	for i, src := range sources {
		if src == nil {
			continue
		}
		face, err := src.Face(baseSize)
		if err != nil {
			continue
		}
		log.Printf("warning: no font fits %dpx, using %s at size %d", maxWidth, filepath.Base(candidates[i]), baseSize)
		return ResolvedFont{Face: face, Size: baseSize, Path: candidates[i], Degraded: ErrFitNotFound}
	}

	log.Printf("warning: no usable font among %d candidates, using built-in face", len(candidates))
	return ResolvedFont{Face: BuiltinFace(start), Size: start, Degraded: ErrFontUnavailable}
}

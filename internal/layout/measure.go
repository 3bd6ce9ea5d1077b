package layout

import (
	"golang.org/x/image/font"
)

// LineMetrics is the measured size of one line.
type LineMetrics struct {
	Text string `json:"text"`

	// Width and Height are the ink extents in pixels.
	Width  int `json:"width"`
	Height int `json:"height"`

	// Ascent is the distance from the top of the ink to the baseline. Drawing
	// the line with its baseline at y+Ascent puts the ink top at y.
	Ascent int `json:"ascent"`

	// Blank lines are measured as a single space and not drawn.
	Blank bool `json:"blank,omitempty"`
}

// Paragraph holds the metrics of a block of text.
type Paragraph struct {
	MaxWidth    int           `json:"max_width"`
	TotalHeight int           `json:"total_height"`
	Spacing     int           `json:"spacing"`
	Lines       []LineMetrics `json:"lines"`
}

// Measure computes per-line metrics for text under face.
//
// TotalHeight is the sum of line heights plus spacing between consecutive
// lines, never after the last one. Blank lines take the height of a space so
// they still consume vertical room.
func Measure(text string, face font.Face, spacing int) Paragraph {
	lines := SplitLines(text)
	p := Paragraph{
		Spacing: spacing,
		Lines:   make([]LineMetrics, 0, len(lines)),
	}

	for i, line := range lines {
		m := MeasureLine(line, face)
		p.Lines = append(p.Lines, m)
		if m.Width > p.MaxWidth {
			p.MaxWidth = m.Width
		}
		p.TotalHeight += m.Height
		if i != len(lines)-1 {
			p.TotalHeight += spacing
		}
	}
	return p
}

// MeasureLine measures a single line. An empty line is measured as " ".
//
// Whitespace has no ink, so when the bounds are empty the height falls back to
// the face's ascent plus descent and the width to the advance.
func MeasureLine(line string, face font.Face) LineMetrics {
	m := LineMetrics{Text: line}
	probe := line
	if line == "" {
		probe = " "
		m.Blank = true
	}

	bounds, advance := font.BoundString(face, probe)
	if bounds.Empty() {
		metrics := face.Metrics()
		m.Ascent = metrics.Ascent.Ceil()
		m.Height = m.Ascent + metrics.Descent.Ceil()
		m.Width = advance.Ceil()
		return m
	}

	top := bounds.Min.Y.Floor()
	m.Ascent = -top
	m.Height = bounds.Max.Y.Ceil() - top
	m.Width = bounds.Max.X.Ceil() - bounds.Min.X.Floor()
	return m
}

// Fits reports whether p fits in a box of the given size.
func (p Paragraph) Fits(width, height int) bool {
	return p.MaxWidth <= width && p.TotalHeight <= height
}

package ocr

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"strings"
	"unicode"

	"github.com/disintegration/imaging"
	"github.com/otiai10/gosseract/v2"
)

// DefaultLanguage is used when no language is given.
const DefaultLanguage = "eng"

// DefaultPassScore is the share of expected words that must be recognized
// for Verify to pass.
const DefaultPassScore = 0.5

// Bounds represents a rectangular bounding box in pixel coordinates.
type Bounds struct {
	X1 int `json:"x1"` // Left edge
	Y1 int `json:"y1"` // Top edge
	X2 int `json:"x2"` // Right edge
	Y2 int `json:"y2"` // Bottom edge
}

// TextRegion represents a recognized word with its location and confidence.
type TextRegion struct {
	Text string `json:"text"`

	// Confidence is the OCR confidence score (0.0 to 1.0).
	Confidence float64 `json:"confidence"`

	Bounds Bounds `json:"bounds"`
}

// OCRResult contains the text recognized in an image.
type OCRResult struct {
	// FullText is all recognized text with original spacing and newlines.
	FullText string `json:"full_text"`

	// Regions contains individual words. It may be empty when word boxes are
	// unavailable; FullText is still filled in.
	Regions []TextRegion `json:"regions"`
}

// ExtractText runs Tesseract on an image file.
//
// Parameters:
//   - imagePath: Path to the image file.
//   - language: Tesseract language code such as "eng"; empty means
//     DefaultLanguage. The language data must be installed.
//
// Returns:
//   - *OCRResult: The full text and word-level regions.
//   - error: Non-nil if the image cannot be loaded or OCR fails.
func ExtractText(imagePath string, language string) (*OCRResult, error) {
	if language == "" {
		language = DefaultLanguage
	}
	if _, err := os.Stat(imagePath); err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(language); err != nil {
		return nil, fmt.Errorf("failed to set language: %w", err)
	}
	if err := client.SetImage(imagePath); err != nil {
		return nil, fmt.Errorf("failed to set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return nil, fmt.Errorf("OCR failed: %w", err)
	}

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return &OCRResult{FullText: text, Regions: []TextRegion{}}, nil
	}

	regions := make([]TextRegion, 0, len(boxes))
	for _, box := range boxes {
		if box.Word == "" {
			continue
		}
		regions = append(regions, TextRegion{
			Text:       box.Word,
			Confidence: float64(box.Confidence) / 100.0,
			Bounds: Bounds{
				X1: box.Box.Min.X,
				Y1: box.Box.Min.Y,
				X2: box.Box.Max.X,
				Y2: box.Box.Max.Y,
			},
		})
	}

	return &OCRResult{FullText: text, Regions: regions}, nil
}

// ExtractTextFromRegion runs OCR on part of an in-memory image. The region is
// clamped to the image. Returned bounds are in the original image's
// coordinates.
func ExtractTextFromRegion(img image.Image, region image.Rectangle, language string) (*OCRResult, error) {
	region = region.Intersect(img.Bounds())
	if region.Empty() {
		return nil, errors.New("OCR region is empty")
	}
	cropped := imaging.Crop(img, region)

	tmpFile, err := os.CreateTemp("", "ocr-region-*.png")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer os.Remove(tmpPath)

	if err := png.Encode(tmpFile, cropped); err != nil {
		tmpFile.Close()
		return nil, fmt.Errorf("failed to encode temp image: %w", err)
	}
	tmpFile.Close()

	result, err := ExtractText(tmpPath, language)
	if err != nil {
		return nil, err
	}

	for i := range result.Regions {
		result.Regions[i].Bounds.X1 += region.Min.X
		result.Regions[i].Bounds.Y1 += region.Min.Y
		result.Regions[i].Bounds.X2 += region.Min.X
		result.Regions[i].Bounds.Y2 += region.Min.Y
	}
	return result, nil
}

// VerifyResult reports how much of the expected text OCR could read back.
type VerifyResult struct {
	Expected   string `json:"expected"`
	Recognized string `json:"recognized"`

	// Matched of Total expected words were found in the recognized text.
	Matched int `json:"matched"`
	Total   int `json:"total"`

	Score  float64 `json:"score"`
	Passed bool    `json:"passed"`

	// Engine is the Tesseract version that read the image.
	Engine string `json:"engine"`
}

// Verify reads a rendered image back and compares it with the text that was
// drawn. A non-empty region restricts OCR to that part of the image.
func Verify(imagePath, expected, language string, region image.Rectangle) (*VerifyResult, error) {
	var (
		result *OCRResult
		err    error
	)
	if region.Empty() {
		result, err = ExtractText(imagePath, language)
	} else {
		var img image.Image
		img, err = imaging.Open(imagePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open image: %w", err)
		}
		result, err = ExtractTextFromRegion(img, region, language)
	}
	if err != nil {
		return nil, err
	}

	matched, total := Score(expected, result.FullText)
	score := 1.0
	if total > 0 {
		score = float64(matched) / float64(total)
	}

	return &VerifyResult{
		Expected:   expected,
		Recognized: strings.TrimSpace(result.FullText),
		Matched:    matched,
		Total:      total,
		Score:      score,
		Passed:     score >= DefaultPassScore,
		Engine:     Version(),
	}, nil
}

// Score counts how many words of expected occur in recognized. Words are
// compared case-insensitively with punctuation removed; each recognized word
// satisfies at most one expected word.
func Score(expected, recognized string) (matched, total int) {
	want := words(expected)
	have := make(map[string]int)
	for _, w := range words(recognized) {
		have[w]++
	}

	for _, w := range want {
		if have[w] > 0 {
			have[w]--
			matched++
		}
	}
	return matched, len(want)
}

// words splits s on anything that is not a letter or digit. Literal "\n"
// sequences count as separators.
func words(s string) []string {
	s = strings.ReplaceAll(s, `\n`, " ")
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// Version returns the Tesseract library version.
func Version() string {
	client := gosseract.NewClient()
	defer client.Close()
	return client.Version()
}

// Package ocr reads rendered text cards back with Tesseract to check that the
// text is legible.
//
// This package wraps the Tesseract OCR engine (via gosseract/v2). Verify is
// the main entry point: it runs OCR over a rendered image, or only the text
// block of it, and scores how many of the expected words were recognized.
//
// # Prerequisites
//
// Tesseract and its language data must be installed on the system:
//   - Ubuntu/Debian: apt-get install tesseract-ocr tesseract-ocr-eng
//   - macOS: brew install tesseract
//
// # Scoring
//
// Expected and recognized text are split into lowercase words on anything
// that is not a letter or digit. The score is the share of expected words
// found; a card passes at DefaultPassScore. Empty expected text always
// scores 1.
//
// # Temporary Files
//
// ExtractTextFromRegion writes the cropped region to a temporary PNG because
// Tesseract reads from a file path. The file is removed after OCR completes.
package ocr

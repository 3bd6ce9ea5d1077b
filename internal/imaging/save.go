package imaging

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/anthonynsimon/bild/imgio"
)

// SaveOptions controls how a finished canvas is written.
type SaveOptions struct {
	// DPI is written to the file's density metadata (PNG pHYs, JPEG JFIF).
	DPI int

	// Quality applies to lossy formats only.
	Quality int
}

// DefaultSaveOptions are 300 DPI and quality 95.
var DefaultSaveOptions = SaveOptions{DPI: 300, Quality: 95}

// Save encodes img by the extension of path and writes it atomically.
//
// The whole file is encoded in memory, written to a temporary sibling and
// renamed into place, so readers never see a partial image. Parent
// directories are created. Supported extensions are .png (also used when
// there is none), .jpg/.jpeg and .bmp.
func Save(img image.Image, path string, opts SaveOptions) error {
	data, err := Encode(img, path, opts)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".text-card-*"+filepath.Ext(path))
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write image: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write image: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to move image into place: %w", err)
	}
	return nil
}

// Encode returns the encoded bytes Save would write for path.
func Encode(img image.Image, path string, opts SaveOptions) ([]byte, error) {
	format := outputFormat(path)

	var enc imgio.Encoder
	switch format {
	case "jpeg":
		enc = imgio.JPEGEncoder(opts.Quality)
	case "bmp":
		enc = imgio.BMPEncoder()
	default:
		enc = imgio.PNGEncoder()
	}

	var buf bytes.Buffer
	if err := enc(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", format, err)
	}
	data := buf.Bytes()

	if opts.DPI <= 0 {
		return data, nil
	}
	switch format {
	case "png":
		return withPNGDensity(data, opts.DPI)
	case "jpeg":
		return withJFIFDensity(data, opts.DPI)
	}
	return data, nil
}

func outputFormat(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return "jpeg"
	case ".bmp":
		return "bmp"
	}
	return "png"
}

// pngHeaderLen is the signature plus the IHDR chunk.
const pngHeaderLen = 8 + 4 + 4 + 13 + 4

// withPNGDensity inserts a pHYs chunk right after IHDR.
func withPNGDensity(data []byte, dpi int) ([]byte, error) {
	if len(data) < pngHeaderLen || string(data[12:16]) != "IHDR" {
		return nil, fmt.Errorf("failed to set density: not a PNG stream")
	}

	// Pixels per metre, unit 1.
	ppm := uint32(float64(dpi)/0.0254 + 0.5)
	body := make([]byte, 4+9)
	copy(body, "pHYs")
	binary.BigEndian.PutUint32(body[4:], ppm)
	binary.BigEndian.PutUint32(body[8:], ppm)
	body[12] = 1

	chunk := make([]byte, 0, 4+len(body)+4)
	chunk = binary.BigEndian.AppendUint32(chunk, 9)
	chunk = append(chunk, body...)
	chunk = binary.BigEndian.AppendUint32(chunk, crc32.ChecksumIEEE(body))

	out := make([]byte, 0, len(data)+len(chunk))
	out = append(out, data[:pngHeaderLen]...)
	out = append(out, chunk...)
	return append(out, data[pngHeaderLen:]...), nil
}

// withJFIFDensity sets the JFIF density to dpi, adding an APP0 segment after
// SOI when the encoder did not write one.
func withJFIFDensity(data []byte, dpi int) ([]byte, error) {
	if len(data) < 4 || data[0] != 0xFF || data[1] != 0xD8 {
		return nil, fmt.Errorf("failed to set density: not a JPEG stream")
	}

	d := uint16(dpi)
	if data[2] == 0xFF && data[3] == 0xE0 && len(data) >= 20 && string(data[6:11]) == "JFIF\x00" {
		out := append([]byte(nil), data...)
		out[13] = 1
		binary.BigEndian.PutUint16(out[14:], d)
		binary.BigEndian.PutUint16(out[16:], d)
		return out, nil
	}

	app0 := []byte{
		0xFF, 0xE0, 0x00, 0x10,
		'J', 'F', 'I', 'F', 0x00,
		0x01, 0x01, // version 1.01
		0x01, // dots per inch
		byte(d >> 8), byte(d),
		byte(d >> 8), byte(d),
		0x00, 0x00, // no thumbnail
	}
	out := make([]byte, 0, len(data)+len(app0))
	out = append(out, data[:2]...)
	out = append(out, app0...)
	return append(out, data[2:]...), nil
}

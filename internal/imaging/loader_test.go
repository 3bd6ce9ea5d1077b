package imaging

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// createTestImage creates a solid image file and returns its path.
// The caller is responsible for removing the file.
func createTestImage(t *testing.T, width, height int, c color.Color) string {
	t.Helper()
	img := createInMemoryImage(width, height, c)

	tmpFile, err := os.CreateTemp("", "test-image-*.png")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	defer tmpFile.Close()

	if err := png.Encode(tmpFile, img); err != nil {
		os.Remove(tmpFile.Name())
		t.Fatalf("failed to encode image: %v", err)
	}

	return tmpFile.Name()
}

func createInMemoryImage(width, height int, c color.Color) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestLoadBackground(t *testing.T) {
	path := createTestImage(t, 40, 30, color.NRGBA{200, 10, 10, 128})
	defer os.Remove(path)

	img, err := LoadBackground(path)
	if err != nil {
		t.Fatalf("LoadBackground failed: %v", err)
	}
	if img.Bounds().Dx() != 40 || img.Bounds().Dy() != 30 {
		t.Errorf("dimensions: got %dx%d, want 40x30", img.Bounds().Dx(), img.Bounds().Dy())
	}
	if got := img.NRGBAAt(5, 5); got.A != 128 {
		t.Errorf("alpha not preserved: got %d, want 128", got.A)
	}
}

func TestLoadBackground_FreshCanvas(t *testing.T) {
	path := createTestImage(t, 10, 10, color.White)
	defer os.Remove(path)

	a, err := LoadBackground(path)
	if err != nil {
		t.Fatalf("LoadBackground failed: %v", err)
	}
	b, err := LoadBackground(path)
	if err != nil {
		t.Fatalf("LoadBackground failed: %v", err)
	}

	a.Set(0, 0, color.Black)
	if b.NRGBAAt(0, 0) != (color.NRGBA{255, 255, 255, 255}) {
		t.Error("drawing on one canvas changed another")
	}
}

func TestLoadBackground_NonExistent(t *testing.T) {
	_, err := LoadBackground("/nonexistent/path/bg.png")
	if err == nil {
		t.Fatal("expected error for non-existent file")
	}
	if !errors.Is(err, ErrNotExist) {
		t.Errorf("error should wrap ErrNotExist, got %v", err)
	}
}

func TestLoadBackground_Directory(t *testing.T) {
	_, err := LoadBackground(t.TempDir())
	if !errors.Is(err, ErrNotExist) {
		t.Errorf("directory should be treated as missing, got %v", err)
	}
}

func TestLoadBackground_InvalidImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.png")
	if err := os.WriteFile(path, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadBackground(path)
	if err == nil {
		t.Fatal("expected error for invalid image")
	}
	if errors.Is(err, ErrNotExist) {
		t.Error("decode failure should not be reported as missing")
	}
}

func TestScaleToMinWidth(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		minWidth      int
		wantW, wantH  int
	}{
		{"upscale", 400, 300, 800, 800, 600},
		{"odd ratio truncates", 300, 200, 800, 800, 533},
		{"already wide", 1000, 500, 800, 1000, 500},
		{"exact", 800, 100, 800, 800, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := createInMemoryImage(tt.width, tt.height, color.White)
			out := ScaleToMinWidth(img, tt.minWidth)
			if out.Bounds().Dx() != tt.wantW || out.Bounds().Dy() != tt.wantH {
				t.Errorf("got %dx%d, want %dx%d", out.Bounds().Dx(), out.Bounds().Dy(), tt.wantW, tt.wantH)
			}
		})
	}
}

func TestResizeTo(t *testing.T) {
	img := createInMemoryImage(100, 50, color.White)
	filter, err := ParseFilter("nearest")
	if err != nil {
		t.Fatal(err)
	}

	out := ResizeTo(img, image.Pt(30, 70), filter)
	if out.Bounds().Dx() != 30 || out.Bounds().Dy() != 70 {
		t.Errorf("got %dx%d, want 30x70", out.Bounds().Dx(), out.Bounds().Dy())
	}
}

func TestSupersampleRoundTrip(t *testing.T) {
	img := createInMemoryImage(120, 80, color.NRGBA{0, 0, 255, 255})

	big := Supersample(img, 2)
	if big.Bounds().Dx() != 240 || big.Bounds().Dy() != 160 {
		t.Fatalf("supersample: got %dx%d, want 240x160", big.Bounds().Dx(), big.Bounds().Dy())
	}

	small := Downsample(big, img.Bounds().Size())
	if small.Bounds() != img.Bounds() {
		t.Errorf("downsample: got %v, want %v", small.Bounds(), img.Bounds())
	}
	if c := small.NRGBAAt(60, 40); c.B < 250 || c.R > 5 {
		t.Errorf("solid color should survive round trip, got %v", c)
	}
}

func TestInspectBackground(t *testing.T) {
	path := createTestImage(t, 400, 300, color.White)
	defer os.Remove(path)

	info, err := InspectBackground(path, 800)
	if err != nil {
		t.Fatalf("InspectBackground failed: %v", err)
	}

	if info.Width != 400 || info.Height != 300 {
		t.Errorf("dimensions: got %dx%d, want 400x300", info.Width, info.Height)
	}
	if info.CanvasWidth != 800 || info.CanvasHeight != 600 {
		t.Errorf("canvas: got %dx%d, want 800x600", info.CanvasWidth, info.CanvasHeight)
	}
	if info.Format != "png" {
		t.Errorf("format: got %s, want png", info.Format)
	}
	if info.FileSizeBytes <= 0 {
		t.Error("FileSizeBytes should be positive")
	}
}

func TestInspectBackground_NonExistent(t *testing.T) {
	_, err := InspectBackground("/nonexistent/bg.png", 800)
	if !errors.Is(err, ErrNotExist) {
		t.Errorf("expected ErrNotExist, got %v", err)
	}
}

func TestFormatFromExt(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"a.png", "png"},
		{"a.JPG", "jpeg"},
		{"a.jpeg", "jpeg"},
		{"a.gif", "gif"},
		{"a.bmp", "bmp"},
		{"a.webp", "webp"},
		{"a.tiff", "unknown"},
	}
	for _, tt := range tests {
		if got := formatFromExt(tt.path); got != tt.want {
			t.Errorf("formatFromExt(%q) = %s, want %s", tt.path, got, tt.want)
		}
	}
}

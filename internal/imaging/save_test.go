package imaging

import (
	"bytes"
	"encoding/binary"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestSave_PNGWithDensity(t *testing.T) {
	img := createInMemoryImage(20, 10, color.NRGBA{10, 20, 30, 255})
	path := filepath.Join(t.TempDir(), "nested", "dir", "out.png")

	if err := Save(img, path, DefaultSaveOptions); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("output not written: %v", err)
	}

	decoded, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output is not a valid PNG: %v", err)
	}
	if decoded.Bounds().Dx() != 20 || decoded.Bounds().Dy() != 10 {
		t.Errorf("dimensions: got %v", decoded.Bounds())
	}

	idx := bytes.Index(data, []byte("pHYs"))
	if idx < 0 {
		t.Fatal("pHYs chunk missing")
	}
	ppmX := binary.BigEndian.Uint32(data[idx+4:])
	ppmY := binary.BigEndian.Uint32(data[idx+8:])
	if ppmX != 11811 || ppmY != 11811 {
		t.Errorf("density: got %d/%d ppm, want 11811", ppmX, ppmY)
	}
	if data[idx+12] != 1 {
		t.Errorf("unit: got %d, want 1 (metre)", data[idx+12])
	}
}

func TestSave_JPEGWithDensity(t *testing.T) {
	img := createInMemoryImage(16, 16, color.White)
	path := filepath.Join(t.TempDir(), "out.jpg")

	if err := Save(img, path, DefaultSaveOptions); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := jpeg.Decode(bytes.NewReader(data)); err != nil {
		t.Fatalf("output is not a valid JPEG: %v", err)
	}

	idx := bytes.Index(data, []byte("JFIF\x00"))
	if idx < 0 {
		t.Fatal("JFIF segment missing")
	}
	if data[idx+7] != 1 {
		t.Errorf("density unit: got %d, want 1 (dpi)", data[idx+7])
	}
	if d := binary.BigEndian.Uint16(data[idx+8:]); d != 300 {
		t.Errorf("x density: got %d, want 300", d)
	}
}

func TestSave_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.png")

	if err := Save(createInMemoryImage(5, 5, color.White), path, DefaultSaveOptions); err != nil {
		t.Fatal(err)
	}
	if err := Save(createInMemoryImage(7, 3, color.Black), path, DefaultSaveOptions); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != 7 || cfg.Height != 3 {
		t.Errorf("second save not visible: got %dx%d", cfg.Width, cfg.Height)
	}

	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Errorf("temp files left behind: %d entries", len(entries))
	}
}

func TestEncode_Deterministic(t *testing.T) {
	img := createInMemoryImage(32, 32, color.NRGBA{1, 2, 3, 255})

	a, err := Encode(img, "x.png", DefaultSaveOptions)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Encode(img, "x.png", DefaultSaveOptions)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a, b) {
		t.Error("encoding the same image twice should give identical bytes")
	}
}

func TestEncode_NoDensity(t *testing.T) {
	img := createInMemoryImage(4, 4, color.White)
	data, err := Encode(img, "x.png", SaveOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Contains(data, []byte("pHYs")) {
		t.Error("pHYs chunk written with DPI 0")
	}
}

func TestOutputFormat(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"out.png", "png"},
		{"out", "png"},
		{"out.JPEG", "jpeg"},
		{"out.jpg", "jpeg"},
		{"out.bmp", "bmp"},
	}
	for _, tt := range tests {
		if got := outputFormat(tt.path); got != tt.want {
			t.Errorf("outputFormat(%q) = %s, want %s", tt.path, got, tt.want)
		}
	}
}

func TestWithPNGDensity_Rejects(t *testing.T) {
	if _, err := withPNGDensity([]byte("short"), 300); err == nil {
		t.Error("expected error for non-PNG data")
	}
}

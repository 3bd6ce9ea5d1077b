// Package config holds process-wide defaults for rendering, read from
// TEXT_CARD_* environment variables.
package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
)

// Environment variables read by FromEnv.
const (
	EnvAssetDir   = "TEXT_CARD_ASSET_DIR"
	EnvFont       = "TEXT_CARD_FONT"
	EnvBackground = "TEXT_CARD_BACKGROUND"
	EnvOutput     = "TEXT_CARD_OUTPUT"
	EnvFontSize   = "TEXT_CARD_FONT_SIZE"
	EnvMinWidth   = "TEXT_CARD_MIN_WIDTH"
	EnvSpacing    = "TEXT_CARD_SPACING"
	EnvLogLevel   = "TEXT_CARD_LOG_LEVEL"
)

// Config is read once at startup and not modified afterwards.
type Config struct {
	// AssetDir holds the custom font and the default background.
	AssetDir string

	// BaseDir is where relative font candidates are looked up last.
	BaseDir string

	// FontName is the custom font file name inside AssetDir.
	FontName string

	// Background is used when a request names none.
	Background string

	// Output is used when a request names none.
	Output string

	FontSize int
	MinWidth int
	Spacing  int

	// Debug enables debug-level logging.
	Debug bool
}

// Default returns the built-in configuration. Assets live next to the
// executable; output goes to the system temp directory.
func Default() Config {
	base := executableDir()
	assets := filepath.Join(base, "assets")
	return Config{
		AssetDir:   assets,
		BaseDir:    base,
		FontName:   "cute_font.ttf",
		Background: filepath.Join(assets, "bg.png"),
		Output:     filepath.Join(os.TempDir(), "text-card", "draw_temp.png"),
		FontSize:   60,
		MinWidth:   800,
		Spacing:    4,
	}
}

// FromEnv returns Default overridden by any TEXT_CARD_* variables that are
// set. Malformed numbers are logged and ignored.
func FromEnv() Config {
	return fromLookup(os.LookupEnv)
}

func fromLookup(lookup func(string) (string, bool)) Config {
	cfg := Default()

	if v, ok := lookup(EnvAssetDir); ok && v != "" {
		cfg.AssetDir = v
		cfg.Background = filepath.Join(v, "bg.png")
	}
	if v, ok := lookup(EnvFont); ok && v != "" {
		cfg.FontName = v
	}
	if v, ok := lookup(EnvBackground); ok && v != "" {
		cfg.Background = v
	}
	if v, ok := lookup(EnvOutput); ok && v != "" {
		cfg.Output = v
	}
	cfg.FontSize = intFrom(lookup, EnvFontSize, cfg.FontSize)
	cfg.MinWidth = intFrom(lookup, EnvMinWidth, cfg.MinWidth)
	cfg.Spacing = intFrom(lookup, EnvSpacing, cfg.Spacing)

	if v, ok := lookup(EnvLogLevel); ok && v == "debug" {
		cfg.Debug = true
	}
	return cfg
}

func intFrom(lookup func(string) (string, bool), key string, def int) int {
	v, ok := lookup(key)
	if !ok || v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		log.Printf("Ignoring %s=%q: not a non-negative integer", key, v)
		return def
	}
	return n
}

// executableDir resolves symlinks so assets are found next to the real binary.
func executableDir() string {
	exePath, err := os.Executable()
	if err != nil {
		return "."
	}
	if real, err := filepath.EvalSymlinks(exePath); err == nil {
		exePath = real
	}
	return filepath.Dir(exePath)
}

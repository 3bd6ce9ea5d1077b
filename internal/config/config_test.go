package config

import (
	"path/filepath"
	"testing"
)

func lookupFrom(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.FontSize != 60 || cfg.MinWidth != 800 || cfg.Spacing != 4 {
		t.Errorf("numeric defaults: got size=%d minWidth=%d spacing=%d", cfg.FontSize, cfg.MinWidth, cfg.Spacing)
	}
	if cfg.FontName != "cute_font.ttf" {
		t.Errorf("FontName: got %s", cfg.FontName)
	}
	if filepath.Dir(cfg.Background) != cfg.AssetDir {
		t.Errorf("Background %s should live in AssetDir %s", cfg.Background, cfg.AssetDir)
	}
	if cfg.Debug {
		t.Error("Debug should be off by default")
	}
}

func TestFromLookup(t *testing.T) {
	cfg := fromLookup(lookupFrom(map[string]string{
		EnvAssetDir: "/srv/assets",
		EnvFont:     "mine.otf",
		EnvOutput:   "/tmp/out.png",
		EnvFontSize: "72",
		EnvMinWidth: "1024",
		EnvSpacing:  "0",
		EnvLogLevel: "debug",
	}))

	if cfg.AssetDir != "/srv/assets" {
		t.Errorf("AssetDir: got %s", cfg.AssetDir)
	}
	if cfg.Background != filepath.Join("/srv/assets", "bg.png") {
		t.Errorf("Background should follow AssetDir, got %s", cfg.Background)
	}
	if cfg.FontName != "mine.otf" || cfg.Output != "/tmp/out.png" {
		t.Errorf("strings: got font=%s output=%s", cfg.FontName, cfg.Output)
	}
	if cfg.FontSize != 72 || cfg.MinWidth != 1024 || cfg.Spacing != 0 {
		t.Errorf("numbers: got size=%d minWidth=%d spacing=%d", cfg.FontSize, cfg.MinWidth, cfg.Spacing)
	}
	if !cfg.Debug {
		t.Error("Debug should be on")
	}
}

func TestFromLookup_ExplicitBackground(t *testing.T) {
	cfg := fromLookup(lookupFrom(map[string]string{
		EnvAssetDir:   "/srv/assets",
		EnvBackground: "/srv/bg.jpg",
	}))
	if cfg.Background != "/srv/bg.jpg" {
		t.Errorf("Background: got %s, want /srv/bg.jpg", cfg.Background)
	}
}

func TestFromLookup_BadNumbers(t *testing.T) {
	cfg := fromLookup(lookupFrom(map[string]string{
		EnvFontSize: "big",
		EnvMinWidth: "-5",
	}))
	if cfg.FontSize != 60 || cfg.MinWidth != 800 {
		t.Errorf("bad values should keep defaults, got size=%d minWidth=%d", cfg.FontSize, cfg.MinWidth)
	}
}

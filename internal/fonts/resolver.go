package fonts

import (
	"log"
	"os"
	"path/filepath"
	"strings"
)

// DefaultFontName is the custom font file looked up in the asset directory
// when no preferred name is given.
const DefaultFontName = "cute_font.ttf"

// CandidateList is an ordered, immutable list of font file locations.
//
// Entries may be absolute paths or bare file names. Bare names are tried as
// given first and then relative to the Resolver's base directory.
type CandidateList struct {
	paths []string
}

// NewCandidateList copies paths into a new list.
func NewCandidateList(paths ...string) CandidateList {
	return CandidateList{paths: append([]string(nil), paths...)}
}

// Paths returns a copy of the list entries in priority order.
func (c CandidateList) Paths() []string {
	return append([]string(nil), c.paths...)
}

// Len reports the number of entries.
func (c CandidateList) Len() int { return len(c.paths) }

// SystemCandidates returns the built-in list of common Windows, Linux and
// macOS fonts, followed by the same families as bare file names.
func SystemCandidates() CandidateList {
	return NewCandidateList(
		"C:/Windows/Fonts/simhei.ttf",
		"C:/Windows/Fonts/msyh.ttc",
		"C:/Windows/Fonts/simsun.ttc",
		"C:/Windows/Fonts/arial.ttf",
		"/usr/share/fonts/truetype/dejavu/DejaVuSans-Bold.ttf",
		"/usr/share/fonts/truetype/liberation/LiberationSans-Bold.ttf",
		"/usr/share/fonts/truetype/wqy/wqy-microhei.ttc",
		"/usr/share/fonts/opentype/noto/NotoSansCJK-Bold.ttc",
		"/Library/Fonts/Arial Bold.ttf",
		"/Library/Fonts/Microsoft YaHei.ttf",
		"/System/Library/Fonts/PingFang.ttc",
		"simhei.ttf",
		"msyh.ttc",
		"msyhbd.ttc",
		"simsun.ttc",
		"arial.ttf",
	)
}

// Resolver filters a CandidateList down to font files that exist.
type Resolver struct {
	assetDir    string
	baseDir     string
	defaultName string
	candidates  CandidateList

	// Verbose enables debug-level log lines.
	Verbose bool
}

// NewResolver creates a resolver that looks for custom fonts in assetDir,
// falls back to baseDir for relative entries, and otherwise tries candidates
// in order. An empty defaultName means DefaultFontName.
func NewResolver(assetDir, baseDir, defaultName string, candidates CandidateList) *Resolver {
	if defaultName == "" {
		defaultName = DefaultFontName
	}
	return &Resolver{
		assetDir:    assetDir,
		baseDir:     baseDir,
		defaultName: defaultName,
		candidates:  candidates,
	}
}

// CustomPath returns the location the preferred font is expected at. A rooted
// preferred path is used as given.
func (r *Resolver) CustomPath(preferred string) string {
	if preferred == "" {
		preferred = r.defaultName
	}
	if isRooted(preferred) {
		return preferred
	}
	return filepath.Join(r.assetDir, preferred)
}

// Resolve returns the existing font files for a render, custom font first.
//
// The priority list is the custom font under the asset directory followed by
// the resolver's candidate list. Entries that do not exist, either as given or
// relative to the base directory, are dropped. Relative order of the system
// candidates is preserved. An empty result is not an error; the Selector falls
// back to the built-in face.
func (r *Resolver) Resolve(preferred string) []string {
	if preferred == "" {
		preferred = r.defaultName
	}
	custom := r.CustomPath(preferred)

	priority := make([]string, 0, r.candidates.Len()+1)
	priority = append(priority, custom)
	priority = append(priority, r.candidates.Paths()...)
	existing := make([]string, 0, len(priority))
	seen := make(map[string]bool, len(priority))
	customFound := false

	for i, p := range priority {
		found, ok := r.locate(p)
		if !ok || seen[found] {
			continue
		}
		seen[found] = true
		if i == 0 {
			customFound = true
		}
		existing = append(existing, found)
	}

	if customFound {
		log.Printf("Using custom font: %s", preferred)
	} else if r.Verbose {
		log.Printf("Custom font not found: %s, falling back to system candidates", preferred)
	}

	return existing
}

// locate checks p as given, then relative to the base directory.
func (r *Resolver) locate(p string) (string, bool) {
	if fileExists(p) {
		return p, true
	}
	if r.baseDir == "" || isRooted(p) {
		return "", false
	}
	local := filepath.Join(r.baseDir, p)
	if fileExists(local) {
		return local, true
	}
	return "", false
}

// isRooted reports whether p is absolute on any supported platform.
// Windows drive paths are not absolute to filepath on Unix.
func isRooted(p string) bool {
	if filepath.IsAbs(p) || strings.HasPrefix(p, "/") {
		return true
	}
	return len(p) >= 3 && p[1] == ':' && (p[2] == '/' || p[2] == '\\')
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

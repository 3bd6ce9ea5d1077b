// Package fonts discovers usable font files and picks a face that fits text
// into a target width.
//
// The package has two halves:
//
//   - Resolver turns a static, ordered CandidateList plus a preferred custom
//     font name into the list of font files that actually exist on disk. The
//     custom font, when present, always leads the result.
//   - Selector walks those files and a small neighborhood of sizes around a
//     length-adjusted starting size, accepting the first face whose measured
//     width fits within 90% of the target width.
//
// # Fallbacks
//
// Font problems never fail a render. When no (font, size) pair fits, the first
// loadable candidate is used at the caller's base size and the result carries
// ErrFitNotFound. When nothing loads at all, the embedded Go Regular face is
// used and the result carries ErrFontUnavailable. Both conditions are logged as
// warnings.
//
// # Sizes
//
// Faces are created at 72 DPI, so a size of N points yields glyphs roughly N
// pixels tall.
//
// # Thread Safety
//
// A Resolver and a Selector hold only read-only configuration and can be shared
// between goroutines. Faces returned in a ResolvedFont belong to the caller for
// one rendering pass and must not be shared.
package fonts

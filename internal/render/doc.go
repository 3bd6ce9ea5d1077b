// Package render composites fitted, outlined text onto background images.
//
// A render request flows through three stages:
//
//  1. Service validates the request, loads the background and sizes the
//     canvas (minimum width, then optional explicit target size).
//  2. Compositor resolves candidate fonts, selects a face that fits, measures
//     the paragraph and draws every line with an outline.
//  3. Service saves the finished canvas once, atomically.
//
// # Quality
//
// Short text (at most HighQualityMaxRunes runes) is drawn on a canvas
// supersampled by SupersampleFactor and scaled back down with Lanczos. Font
// size, spacing, margin and outline width are all multiplied by the same
// factor, so both paths share one layout loop. Longer text is drawn directly
// with a one pixel outline.
//
// # Errors
//
// Font problems never fail a render; they are reported through
// Layout.Degraded and logged. Only a missing background
// (*MissingBackgroundError), an invalid request (ErrInvalidRequest) and I/O
// failures (*RenderIOError) reach the caller.
//
// # Concurrency
//
// Every request gets its own canvas and font faces. A Service can be used from
// many goroutines at once; renders that write the same output path race and
// the last writer wins.
package render

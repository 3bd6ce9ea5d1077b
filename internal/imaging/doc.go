// Package imaging loads, sizes and saves the raster canvases text is drawn on.
//
// This package wraps github.com/disintegration/imaging for decoding and
// resampling and github.com/anthonynsimon/bild for encoding. All canvases are
// *image.NRGBA so alpha from the background survives until the file is saved.
// Coordinates follow the standard library: (0,0) is the top-left corner, X
// increases rightward and Y increases downward.
//
// # Canvas Lifecycle
//
// A canvas is created per render by LoadBackground, optionally resized with
// ScaleToMinWidth and ResizeTo, drawn on, and written once by Save. Nothing is
// cached, so concurrent renders never share pixels.
//
// # Resampling
//
// Resize algorithms are selected by name through ParseFilter ("lanczos",
// "nearest", "bicubic", ...). Supersampling and the minimum-width upscale
// always use Lanczos.
//
// # Output Metadata
//
// Save writes a density of 300 DPI by default: a pHYs chunk for PNG and a
// JFIF APP0 segment for JPEG. JPEG quality defaults to 95.
//
// # Colors
//
// ParseColor accepts "#RGB", "#RRGGBB" and "#RRGGBBAA" and is backed by
// github.com/lucasb-eyer/go-colorful.
//
// # Error Handling
//
// Functions return errors for:
//   - Missing background files (wrapping ErrNotExist)
//   - Undecodable images
//   - Unknown resample algorithm names or malformed colors
//   - Encoding or file write failures
package imaging

package render

import (
	"errors"
	"fmt"

	"github.com/ironsheep/text-card-mcp/internal/imaging"
)

// ErrInvalidRequest is wrapped by errors for malformed request fields such as
// unknown resample names, bad colors or non-positive target sizes.
var ErrInvalidRequest = errors.New("invalid render request")

// MissingBackgroundError reports a background image that does not exist.
type MissingBackgroundError struct {
	Path string
}

func (e *MissingBackgroundError) Error() string {
	return fmt.Sprintf("background image not found: %s", e.Path)
}

// Is lets callers match with errors.Is(err, imaging.ErrNotExist).
func (e *MissingBackgroundError) Is(target error) bool {
	return target == imaging.ErrNotExist
}

// RenderIOError reports a failure while loading, resizing, drawing or saving.
type RenderIOError struct {
	// Op is the failed step: "load", "resize", "draw" or "save".
	Op  string
	Err error
}

func (e *RenderIOError) Error() string {
	return fmt.Sprintf("failed to %s image: %v", e.Op, e.Err)
}

func (e *RenderIOError) Unwrap() error { return e.Err }

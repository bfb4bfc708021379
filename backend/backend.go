// Package backend selects among the registered render backends at
// runtime. Backend packages register themselves on import:
//
//	import (
//	    "github.com/gogpu/vg/backend"
//	    _ "github.com/gogpu/vg/raster" // registers "raster"
//	    _ "github.com/gogpu/vg/svg"    // registers "svg"
//	    _ "github.com/gogpu/vg/pdf"    // registers "pdf"
//	)
//
//	target, err := backend.New(backend.Options{Width: 800, Height: 600})
//
// Third-party backends register the same way without changes here.
package backend

import (
	"errors"
	"image"
	"io"

	"github.com/gogpu/vg"
)

// Options configures target creation. Width and Height are in user-space
// units (pixels for raster backends, points for document backends).
// Writer receives the serialized output of document backends; raster
// backends ignore it.
type Options struct {
	Width  float64
	Height float64
	Writer io.Writer
}

// Target is one renderable surface or document.
type Target interface {
	// Context returns the render context drawing into this target. The
	// same context is returned on every call.
	Context() vg.RenderContext

	// Close finishes the context and releases the target. Closing twice
	// returns vg.ErrUnbalancedState.
	Close() error
}

// ImageTarget is implemented by targets whose result is readable as an
// image after Close.
type ImageTarget interface {
	Target
	Image() *image.RGBA
}

// Factory creates a target for one backend.
type Factory func(opts Options) (Target, error)

// ErrNoneAvailable is returned when no backend is registered or
// available.
var ErrNoneAvailable = errors.New("backend: none available")

// NotFoundError indicates a named backend is not registered.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return "backend: not found: " + e.Name
}

// UnavailableError indicates a backend exists but is not usable on this
// system.
type UnavailableError struct {
	Name string
}

func (e *UnavailableError) Error() string {
	return "backend: unavailable: " + e.Name
}

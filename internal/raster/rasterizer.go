// Package raster is a fixed-point triangle rasterizer for targets without an
// FPU or GPU.
//
// A Rasterizer owns one depth buffer sized to the framebuffer and pushes
// finished ARGB4444 pixels into a caller-supplied PixelSink; it never stores
// colour itself. Scan conversion uses edge functions over the triangle's
// bounding box, barycentric weights normalized through fixed.Reciprocal,
// perspective correction by the interpolated Z term, and a depth test in which
// larger Z is nearer.
//
// A Rasterizer is not safe for concurrent use. Run one instance per
// goroutine, or serialize DrawTriangle calls externally.
package raster

import (
	"graphite-raster/internal/fixed"
	"graphite-raster/internal/logging"
)

// Rasterizer holds the depth buffer and pixel sink for one framebuffer.
// The zero value is not usable; create instances with New.
type Rasterizer struct {
	width, height int
	depth         []fixed.Fixed
	sink          PixelSink
	disposed      bool
}

// New allocates a rasterizer for a width×height framebuffer whose pixels are
// delivered to sink. The depth buffer starts cleared.
func New(width, height int, sink PixelSink) (*Rasterizer, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidSize
	}
	if sink == nil {
		return nil, ErrNilSink
	}
	logging.Logger().Debug("raster: init", "width", width, "height", height)
	return &Rasterizer{
		width:  width,
		height: height,
		depth:  make([]fixed.Fixed, width*height),
		sink:   sink,
	}, nil
}

// Size returns the framebuffer dimensions.
func (r *Rasterizer) Size() (w, h int) {
	r.mustBeLive()
	return r.width, r.height
}

// ClearDepth resets every depth entry to zero, the farthest value.
func (r *Rasterizer) ClearDepth() {
	r.mustBeLive()
	clear(r.depth)
}

// Depth returns the stored depth at (x, y). It panics if (x, y) is outside
// the framebuffer.
func (r *Rasterizer) Depth(x, y int) fixed.Fixed {
	r.mustBeLive()
	if x < 0 || y < 0 || x >= r.width || y >= r.height {
		panic("raster: depth lookup out of range")
	}
	return r.depth[y*r.width+x]
}

// Dispose releases the depth buffer. Any later call panics with ErrDisposed.
// Disposing twice is allowed.
func (r *Rasterizer) Dispose() {
	if r == nil || r.disposed {
		return
	}
	logging.Logger().Debug("raster: dispose", "width", r.width, "height", r.height)
	r.depth = nil
	r.sink = nil
	r.disposed = true
}

func (r *Rasterizer) mustBeLive() {
	switch {
	case r == nil || (r.depth == nil && !r.disposed):
		panic(ErrNotInitialized)
	case r.disposed:
		panic(ErrDisposed)
	}
}

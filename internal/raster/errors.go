package raster

import "errors"

var (
	// ErrInvalidSize is returned by New for a non-positive framebuffer size.
	ErrInvalidSize = errors.New("raster: framebuffer size must be positive")

	// ErrNilSink is returned by New when no pixel sink is given.
	ErrNilSink = errors.New("raster: nil pixel sink")

	// ErrNotInitialized is the panic value for use of a rasterizer that was
	// never created with New.
	ErrNotInitialized = errors.New("raster: rasterizer not initialized")

	// ErrDisposed is the panic value for use of a rasterizer after Dispose.
	ErrDisposed = errors.New("raster: rasterizer disposed")
)

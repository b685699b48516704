// Package render draws a scene into a fresh framebuffer.
package render

import (
	"errors"
	"fmt"

	"graphite-raster/internal/framebuffer"
	"graphite-raster/internal/raster"
	"graphite-raster/internal/scene"
	"graphite-raster/internal/texture"
)

// ErrUnknownTexture is returned when a scene names a texture nobody provides.
var ErrUnknownTexture = errors.New("render: unknown texture")

// Stats summarises one rendered frame.
type Stats struct {
	Triangles int // triangles handed to the rasterizer
	Pixels    int // pixels emitted, counting overdraw
}

// Frame renders sc. The framebuffer is cleared to the scene's clear colour
// (framebuffer.DefaultClear when unset), one rasterizer is bound to it for
// the duration of the call, and every triangle is drawn in scene order.
// textures may be nil when the scene uses no texture files.
func Frame(sc *scene.Scene, textures texture.Resolver) (*framebuffer.Buffer, Stats, error) {
	var stats Stats
	if err := sc.Validate(); err != nil {
		return nil, stats, err
	}
	tex, err := ResolveTexture(sc.Texture, textures)
	if err != nil {
		return nil, stats, err
	}

	fb := framebuffer.New(sc.Width, sc.Height)
	clearColor := framebuffer.DefaultClear
	if sc.Clear != nil {
		clearColor = uint16(*sc.Clear)
	}
	fb.Clear(clearColor)

	r, err := raster.New(sc.Width, sc.Height, fb)
	if err != nil {
		return nil, stats, fmt.Errorf("render: %s: %w", sc.Name, err)
	}
	defer r.Dispose()
	r.ClearDepth()

	stats = Draw(r, sc.Triangles(tex))
	return fb, stats, nil
}

// Draw draws tris through r and counts the work done.
func Draw(r *raster.Rasterizer, tris []raster.Triangle) Stats {
	return Stats{Triangles: len(tris), Pixels: r.DrawTriangles(tris)}
}

// ResolveTexture looks name up in textures. The quadrant demo texture is
// always available as a fallback. An empty name means untextured.
func ResolveTexture(name string, textures texture.Resolver) (raster.Texture, error) {
	if name == "" {
		return nil, nil
	}
	if textures != nil {
		if tex := textures.Resolve(name); tex != nil {
			return tex, nil
		}
	}
	if name == scene.QuadrantsTexture {
		return raster.QuadrantTexture{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownTexture, name)
}

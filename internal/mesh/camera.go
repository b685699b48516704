package mesh

import (
	mgl "github.com/go-gl/mathgl/mgl32"
)

// Camera is a right-handed look-at camera with a perspective lens.
// FovY is in radians.
type Camera struct {
	Eye, Target, Up mgl.Vec3
	FovY            float32
	Near, Far       float32
}

// DefaultCamera looks down -Z at the origin from two units away.
func DefaultCamera() Camera {
	return Camera{
		Eye:    mgl.Vec3{0, 0, 2},
		Target: mgl.Vec3{0, 0, 0},
		Up:     mgl.Vec3{0, 1, 0},
		FovY:   mgl.DegToRad(60),
		Near:   0.1,
		Far:    100,
	}
}

// View returns the world-to-eye matrix.
func (c Camera) View() mgl.Mat4 {
	return mgl.LookAtV(c.Eye, c.Target, c.Up)
}

// Projection returns the eye-to-clip matrix for the given aspect ratio
// (width / height).
func (c Camera) Projection(aspect float32) mgl.Mat4 {
	return mgl.Perspective(c.FovY, aspect, c.Near, c.Far)
}

package rendergraph

import (
	"encoding/binary"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// CameraConstantsSize is the byte size of Camera.ConstantBytes:
// view-projection matrix followed by the eye position as a vec4.
const CameraConstantsSize = 80

// Camera is a perspective camera.
type Camera struct {
	Position mgl32.Vec3
	Target   mgl32.Vec3
	Up       mgl32.Vec3

	// FovY is the vertical field of view in radians.
	FovY   float32
	Aspect float32
	Near   float32
	Far    float32
}

// NewCamera returns a camera at pos looking at target with a vertical
// field of view in degrees.
func NewCamera(pos, target mgl32.Vec3, fovYDegrees float32) *Camera {
	return &Camera{
		Position: pos,
		Target:   target,
		Up:       mgl32.Vec3{0, 1, 0},
		FovY:     mgl32.DegToRad(fovYDegrees),
		Aspect:   1,
		Near:     0.1,
		Far:      1000,
	}
}

// SetViewport matches the aspect ratio to vp.
func (c *Camera) SetViewport(vp Viewport) {
	c.Aspect = vp.AspectRatio()
}

// View returns the view matrix.
func (c *Camera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Target, c.Up)
}

// Projection returns the perspective projection matrix.
func (c *Camera) Projection() mgl32.Mat4 {
	return mgl32.Perspective(c.FovY, c.Aspect, c.Near, c.Far)
}

// ViewProjection returns Projection * View.
func (c *Camera) ViewProjection() mgl32.Mat4 {
	return c.Projection().Mul4(c.View())
}

// ConstantBytes packs the camera for a uniform buffer.
func (c *Camera) ConstantBytes() []byte {
	buf := make([]byte, CameraConstantsSize)
	PutMat4(buf[0:64], c.ViewProjection())
	for i, v := range c.Position {
		binary.LittleEndian.PutUint32(buf[64+i*4:], math.Float32bits(v))
	}
	binary.LittleEndian.PutUint32(buf[76:80], math.Float32bits(1))
	return buf
}

// PutMat4 writes m in column-major order as little-endian float32.
// dst must hold at least 64 bytes.
func PutMat4(dst []byte, m mgl32.Mat4) {
	for i, v := range m {
		binary.LittleEndian.PutUint32(dst[i*4:], math.Float32bits(v))
	}
}

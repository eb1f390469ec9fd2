// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package showcase

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/showcase/internal/gpu"
)

// Camera defaults.
const (
	DefaultYaw         = -90.0
	DefaultPitch       = 0.0
	DefaultSensitivity = 0.3

	// MaxPitch bounds the pitch in both directions, in degrees.
	MaxPitch = 89.0
)

// Camera is a free-look perspective camera driven by mouse deltas.
//
// Yaw and pitch are kept in degrees. The projection uses a fixed 75 degree
// vertical field of view with clip planes at 0.1 and 1000, and is only
// recomputed by Resize.
type Camera struct {
	position mgl32.Vec3
	front    mgl32.Vec3
	up       mgl32.Vec3

	yaw         float32
	pitch       float32
	sensitivity float32

	width      uint32
	height     uint32
	projection mgl32.Mat4
}

// NewCamera creates a camera at position looking down -Z.
func NewCamera(width, height uint32, position mgl32.Vec3) *Camera {
	c := &Camera{
		position:    position,
		front:       mgl32.Vec3{0, 0, -1},
		up:          mgl32.Vec3{0, 1, 0},
		yaw:         DefaultYaw,
		pitch:       DefaultPitch,
		sensitivity: DefaultSensitivity,
	}
	c.Resize(width, height)
	return c
}

// ProcessMouseMovement turns the camera by a mouse delta in pixels.
// Positive dx turns right, positive dy looks down. The pitch is clamped
// to [-MaxPitch, MaxPitch] on every call.
func (c *Camera) ProcessMouseMovement(dx, dy float32) {
	c.yaw += dx * c.sensitivity
	c.pitch -= dy * c.sensitivity
	c.pitch = clampPitch(c.pitch)
	c.front = frontVector(c.yaw, c.pitch)
}

func clampPitch(p float32) float32 {
	if p > MaxPitch {
		return MaxPitch
	}
	if p < -MaxPitch {
		return -MaxPitch
	}
	return p
}

// frontVector returns the unit direction for yaw and pitch in degrees.
func frontVector(yaw, pitch float32) mgl32.Vec3 {
	y := mgl32.DegToRad(yaw)
	p := mgl32.DegToRad(pitch)
	return mgl32.Vec3{
		math32.Cos(y) * math32.Cos(p),
		math32.Sin(p),
		math32.Sin(y) * math32.Cos(p),
	}.Normalize()
}

// ViewMatrix returns lookAt(position, position+front, up).
func (c *Camera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.position, c.position.Add(c.front), c.up)
}

// ProjectionMatrix returns the projection computed by the last Resize.
func (c *Camera) ProjectionMatrix() mgl32.Mat4 { return c.projection }

// Resize recomputes the projection for a new viewport.
func (c *Camera) Resize(width, height uint32) {
	c.width, c.height = width, height
	c.projection = gpu.Perspective(width, height)
}

// Size returns the viewport of the last Resize.
func (c *Camera) Size() (uint32, uint32) { return c.width, c.height }

// SetPosition moves the camera without changing its orientation.
func (c *Camera) SetPosition(p mgl32.Vec3) { c.position = p }

// Position returns the eye position.
func (c *Camera) Position() mgl32.Vec3 { return c.position }

// Front returns the unit view direction.
func (c *Camera) Front() mgl32.Vec3 { return c.front }

// Up returns the up vector.
func (c *Camera) Up() mgl32.Vec3 { return c.up }

// Yaw returns the yaw in degrees.
func (c *Camera) Yaw() float32 { return c.yaw }

// Pitch returns the pitch in degrees.
func (c *Camera) Pitch() float32 { return c.pitch }

// Sensitivity returns the degrees turned per pixel of mouse movement.
func (c *Camera) Sensitivity() float32 { return c.sensitivity }

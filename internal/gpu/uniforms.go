// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// UniformSize is the byte size of the uniform block shared by every batch:
// three mat4x4<f32>, one f32 and three f32 of padding.
const UniformSize = 3*64 + 4 + 3*4

// uniformSlotStride is the distance between two dynamic-offset slots in one
// uniform buffer. 256 is the WebGPU minUniformBufferOffsetAlignment default.
const uniformSlotStride = 256

// Projection constants used by every batch and by the camera.
const (
	FieldOfView = 75.0 // vertical, degrees
	NearPlane   = 0.1
	FarPlane    = 1000.0
)

// ErrUniformAlignment is returned when a uniform block size is not a
// multiple of 16 bytes.
var ErrUniformAlignment = errors.New("gpu: uniform block size must be a multiple of 16")

// checkUniformAlignment validates a uniform block size.
func checkUniformAlignment(size int) error {
	if size <= 0 || size%16 != 0 {
		return fmt.Errorf("%w: got %d", ErrUniformAlignment, size)
	}
	return nil
}

// Uniforms is the CPU copy of the uniform block.
type Uniforms struct {
	Model      mgl32.Mat4
	View       mgl32.Mat4
	Projection mgl32.Mat4
	Time       float32
}

// defaultUniforms returns the block every batch is seeded with: identity
// model, a camera at (0,0,20) looking at the origin, and the default
// perspective for the given viewport.
func defaultUniforms(width, height uint32) Uniforms {
	return Uniforms{
		Model: mgl32.Ident4(),
		View: mgl32.LookAtV(
			mgl32.Vec3{0, 0, 20},
			mgl32.Vec3{0, 0, 0},
			mgl32.Vec3{0, 1, 0},
		),
		Projection: Perspective(width, height),
		Time:       1,
	}
}

// Bytes encodes the block in std140 layout, column-major.
func (u *Uniforms) Bytes() []byte {
	buf := make([]byte, UniformSize)
	u.put(buf)
	return buf
}

// put writes the block into buf, which must hold UniformSize bytes.
func (u *Uniforms) put(buf []byte) {
	putMat4(buf[0:64], u.Model)
	putMat4(buf[64:128], u.View)
	putMat4(buf[128:192], u.Projection)
	binary.LittleEndian.PutUint32(buf[192:196], math.Float32bits(u.Time))
	clear(buf[196:UniformSize])
}

// putMat4 writes the 16 floats of m, column-major, into buf.
func putMat4(buf []byte, m mgl32.Mat4) {
	for i, f := range m {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
}

// putVec3 writes v into buf.
func putVec3(buf []byte, v mgl32.Vec3) {
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(v[0]))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(v[1]))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(v[2]))
}

// clipCorrection maps OpenGL clip-space depth [-1, 1] to the WebGPU range
// [0, 1].
var clipCorrection = mgl32.Mat4{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 0.5, 0,
	0, 0, 0.5, 1,
}

// Perspective returns the projection for a width x height viewport with
// the fixed field of view and clip planes. A zero height is treated as 1.
func Perspective(width, height uint32) mgl32.Mat4 {
	if height == 0 {
		height = 1
	}
	aspect := float32(width) / float32(height)
	p := mgl32.Perspective(mgl32.DegToRad(FieldOfView), aspect, NearPlane, FarPlane)
	return clipCorrection.Mul4(p)
}

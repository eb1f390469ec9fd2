// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package showcase

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/showcase/internal/gpu"
)

// vecNear compares with an absolute tolerance; mgl32's threshold helpers
// are relative and fail next to zero components.
func vecNear(a, b mgl32.Vec3, eps float32) bool {
	return a.Sub(b).Len() <= eps
}

func TestNewCameraDefaults(t *testing.T) {
	c := NewCamera(800, 600, mgl32.Vec3{0, 0, 20})
	if c.Yaw() != -90 || c.Pitch() != 0 {
		t.Errorf("yaw/pitch = %v/%v, want -90/0", c.Yaw(), c.Pitch())
	}
	if c.Sensitivity() != 0.3 {
		t.Errorf("Sensitivity() = %v, want 0.3", c.Sensitivity())
	}
	if c.Front() != (mgl32.Vec3{0, 0, -1}) {
		t.Errorf("Front() = %v, want (0,0,-1)", c.Front())
	}
	if c.Up() != (mgl32.Vec3{0, 1, 0}) {
		t.Errorf("Up() = %v, want (0,1,0)", c.Up())
	}
	if c.ProjectionMatrix() != gpu.Perspective(800, 600) {
		t.Error("projection should match the 75 degree perspective")
	}
}

func TestCameraMouseMovement(t *testing.T) {
	c := NewCamera(800, 600, mgl32.Vec3{})
	c.ProcessMouseMovement(10, 0)
	if !mgl32.FloatEqualThreshold(c.Yaw(), -87, 1e-4) {
		t.Errorf("Yaw() = %v, want -87", c.Yaw())
	}
	c.ProcessMouseMovement(0, 10)
	if !mgl32.FloatEqualThreshold(c.Pitch(), -3, 1e-4) {
		t.Errorf("Pitch() = %v, want -3 (positive dy looks down)", c.Pitch())
	}
	if got := c.Front().Len(); !mgl32.FloatEqualThreshold(got, 1, 1e-5) {
		t.Errorf("|Front()| = %v, want 1", got)
	}
}

func TestCameraPitchClamped(t *testing.T) {
	tests := []struct {
		name string
		dy   float32
		want float32
	}{
		{"up", -1000, 89},
		{"down", 1000, -89},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCamera(800, 600, mgl32.Vec3{})
			c.ProcessMouseMovement(0, tt.dy)
			if c.Pitch() != tt.want {
				t.Errorf("Pitch() = %v, want %v", c.Pitch(), tt.want)
			}
			// Clamping happens every call, not only on overflow.
			c.ProcessMouseMovement(0, tt.dy)
			if c.Pitch() != tt.want {
				t.Errorf("Pitch() after second move = %v, want %v", c.Pitch(), tt.want)
			}
		})
	}
}

func TestCameraFullTurn(t *testing.T) {
	c := NewCamera(800, 600, mgl32.Vec3{})
	// 1200 px at 0.3 deg/px is one full turn.
	c.ProcessMouseMovement(1200, 0)
	if !vecNear(c.Front(), mgl32.Vec3{0, 0, -1}, 1e-4) {
		t.Errorf("Front() after full turn = %v, want (0,0,-1)", c.Front())
	}
	if !mgl32.FloatEqualThreshold(c.Yaw(), 270, 1e-3) {
		t.Errorf("Yaw() = %v, want 270", c.Yaw())
	}
}

func TestCameraLookRight(t *testing.T) {
	c := NewCamera(800, 600, mgl32.Vec3{})
	// +90 degrees of yaw turns from -Z to +X.
	c.ProcessMouseMovement(300, 0)
	if !vecNear(c.Front(), mgl32.Vec3{1, 0, 0}, 1e-4) {
		t.Errorf("Front() = %v, want (1,0,0)", c.Front())
	}
}

func TestCameraViewMatrix(t *testing.T) {
	c := NewCamera(800, 600, mgl32.Vec3{0, 0, 20})
	want := mgl32.LookAtV(mgl32.Vec3{0, 0, 20}, mgl32.Vec3{0, 0, 19}, mgl32.Vec3{0, 1, 0})
	if !c.ViewMatrix().ApproxEqualThreshold(want, 1e-5) {
		t.Errorf("ViewMatrix() = %v, want %v", c.ViewMatrix(), want)
	}

	c.SetPosition(mgl32.Vec3{1, 2, 3})
	if c.Position() != (mgl32.Vec3{1, 2, 3}) {
		t.Errorf("Position() = %v", c.Position())
	}
	p := c.ViewMatrix().Mul4x1(mgl32.Vec4{1, 2, 3, 1})
	if !vecNear(p.Vec3(), mgl32.Vec3{}, 1e-5) {
		t.Errorf("eye in view space = %v, want origin", p.Vec3())
	}
}

func TestCameraResize(t *testing.T) {
	c := NewCamera(800, 600, mgl32.Vec3{})
	before := c.ProjectionMatrix()
	c.Resize(1920, 1080)
	if c.ProjectionMatrix() == before {
		t.Error("projection should change with the aspect ratio")
	}
	if c.ProjectionMatrix() != gpu.Perspective(1920, 1080) {
		t.Error("projection should only depend on the final size")
	}
	if w, h := c.Size(); w != 1920 || h != 1080 {
		t.Errorf("Size() = %dx%d", w, h)
	}
}

func TestCameraYawScalesWithSensitivity(t *testing.T) {
	c := NewCamera(800, 600, mgl32.Vec3{})
	c.ProcessMouseMovement(100, 0)
	if !mgl32.FloatEqualThreshold(c.Yaw(), DefaultYaw+30, 1e-4) {
		t.Errorf("Yaw() = %v, want %v", c.Yaw(), DefaultYaw+30)
	}
	if c.Pitch() != 0 {
		t.Errorf("Pitch() = %v, want unchanged", c.Pitch())
	}
}

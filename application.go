// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package showcase

import (
	"sync"
	"time"
)

// Clock reports seconds since some fixed start. Values never decrease.
type Clock interface {
	Seconds() float32
}

// SystemClock is a Clock on the monotonic wall clock.
type SystemClock struct {
	start time.Time
}

// NewSystemClock returns a clock starting now.
func NewSystemClock() *SystemClock {
	return &SystemClock{start: time.Now()}
}

// Seconds implements Clock.
func (c *SystemClock) Seconds() float32 {
	return float32(time.Since(c.start).Seconds())
}

// MouseDelta accumulates relative mouse movement while the pointer is
// locked. Movement reported while unlocked is ignored.
//
// MouseDelta is safe for concurrent use: input callbacks may run on a
// different goroutine than the frame loop.
type MouseDelta struct {
	mu     sync.Mutex
	locked bool
	dx, dy float32
}

// SetLocked records the pointer lock state. Unlocking drops any pending
// movement.
func (m *MouseDelta) SetLocked(locked bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.locked = locked
	if !locked {
		m.dx, m.dy = 0, 0
	}
}

// Locked reports the pointer lock state.
func (m *MouseDelta) Locked() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.locked
}

// Add accumulates a movement in pixels.
func (m *MouseDelta) Add(dx, dy float32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.locked {
		return
	}
	m.dx += dx
	m.dy += dy
}

// Take returns the movement accumulated since the last Take and resets it.
func (m *MouseDelta) Take() (dx, dy float32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	dx, dy = m.dx, m.dy
	m.dx, m.dy = 0, 0
	return dx, dy
}

// Application ties a Renderer, a Camera and mouse input into a per-frame
// step.
type Application struct {
	renderer *Renderer
	camera   *Camera
	mouse    MouseDelta
	clock    Clock
}

// NewApplication creates an application on the system clock.
func NewApplication(renderer *Renderer, camera *Camera) *Application {
	return &Application{
		renderer: renderer,
		camera:   camera,
		clock:    NewSystemClock(),
	}
}

// SetClock replaces the frame clock. A nil clock is ignored.
func (a *Application) SetClock(c Clock) {
	if c != nil {
		a.clock = c
	}
}

// Initialize initializes the renderer and sizes the camera.
func (a *Application) Initialize(width, height uint32) error {
	if err := a.renderer.Initialize(width, height); err != nil {
		return err
	}
	a.camera.Resize(width, height)
	return nil
}

// Resize updates the camera projection and the renderer. Zero sizes are
// ignored.
func (a *Application) Resize(width, height uint32) error {
	if width == 0 || height == 0 {
		return nil
	}
	a.camera.Resize(width, height)
	return a.renderer.Resize(width, height)
}

// Frame takes the pending mouse movement, turns the camera and renders
// one frame.
func (a *Application) Frame() error {
	if dx, dy := a.mouse.Take(); dx != 0 || dy != 0 {
		a.camera.ProcessMouseMovement(dx, dy)
	}
	return a.renderer.Render(a.camera.ViewMatrix(), a.camera.ProjectionMatrix(), a.clock.Seconds())
}

// Mouse returns the input accumulator fed by the host.
func (a *Application) Mouse() *MouseDelta { return &a.mouse }

// Camera returns the camera.
func (a *Application) Camera() *Camera { return a.camera }

// Renderer returns the renderer.
func (a *Application) Renderer() *Renderer { return a.renderer }

// Destroy releases the renderer.
func (a *Application) Destroy() { a.renderer.Destroy() }

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package showcase

import (
	"errors"
	"testing"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"
)

// noopInstance is an InstanceFactory on the noop backend.
func noopInstance() (hal.Instance, error) {
	return noop.API{}.CreateInstance(nil)
}

// newNoopRenderer creates a renderer on the noop backend with an
// offscreen surface.
func newNoopRenderer(t *testing.T, opts ...Option) (*Renderer, *OffscreenSurface) {
	t.Helper()
	surface := NewOffscreenSurface(gputypes.TextureFormatBGRA8Unorm)
	opts = append([]Option{WithInstanceFactory(noopInstance)}, opts...)
	r := NewRenderer(surface, opts...)
	t.Cleanup(r.Destroy)
	return r, surface
}

// openNoopDevice creates a noop device and queue for testing.
func openNoopDevice(t *testing.T) (hal.Device, hal.Queue) {
	t.Helper()
	instance, err := noopInstance()
	if err != nil {
		t.Fatalf("CreateInstance failed: %v", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	openDev, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() {
		openDev.Device.Destroy()
		instance.Destroy()
	})
	return openDev.Device, openDev.Queue
}

// countingQueue records submissions.
type countingQueue struct {
	hal.Queue
	submits int
	buffers int
	values  []uint64
}

func (q *countingQueue) Submit(buffers []hal.CommandBuffer, fence hal.Fence, value uint64) error {
	q.submits++
	q.buffers += len(buffers)
	q.values = append(q.values, value)
	return q.Queue.Submit(buffers, fence, value)
}

// mockDevice implements gpucontext.Device for testing.
type mockDevice struct{}

func (m *mockDevice) Poll(wait bool) {}
func (m *mockDevice) Destroy()       {}

// mockQueue implements gpucontext.Queue for testing.
type mockQueue struct{}

// mockAdapter implements gpucontext.Adapter for testing.
type mockAdapter struct{}

// mockProvider implements gpucontext.DeviceProvider and exposes hal
// objects like a gogpu.App does.
type mockProvider struct {
	format    gputypes.TextureFormat
	halDevice any
	halQueue  any
}

func (m *mockProvider) Device() gpucontext.Device             { return &mockDevice{} }
func (m *mockProvider) Queue() gpucontext.Queue               { return &mockQueue{} }
func (m *mockProvider) Adapter() gpucontext.Adapter           { return &mockAdapter{} }
func (m *mockProvider) SurfaceFormat() gputypes.TextureFormat { return m.format }
func (m *mockProvider) HalDevice() any                        { return m.halDevice }
func (m *mockProvider) HalQueue() any                         { return m.halQueue }

// plainProvider is a DeviceProvider without hal access.
type plainProvider struct{}

func (plainProvider) Device() gpucontext.Device             { return &mockDevice{} }
func (plainProvider) Queue() gpucontext.Queue               { return &mockQueue{} }
func (plainProvider) Adapter() gpucontext.Adapter           { return &mockAdapter{} }
func (plainProvider) SurfaceFormat() gputypes.TextureFormat { return gputypes.TextureFormatUndefined }

var errAcquire = errors.New("surface lost")

// flakySurface fails AcquireView while fail is set.
type flakySurface struct {
	*OffscreenSurface
	fail bool
}

func (s *flakySurface) AcquireView() (hal.TextureView, error) {
	if s.fail {
		return nil, errAcquire
	}
	return s.OffscreenSurface.AcquireView()
}

var errEncoding = errors.New("encoder lost")

// failingEncoder fails BeginEncoding or EndEncoding and records discards.
type failingEncoder struct {
	hal.CommandEncoder
	failBegin bool
	failEnd   bool
	discards  *int
}

func (e *failingEncoder) BeginEncoding(label string) error {
	if e.failBegin {
		return errEncoding
	}
	return e.CommandEncoder.BeginEncoding(label)
}

func (e *failingEncoder) EndEncoding() (hal.CommandBuffer, error) {
	if e.failEnd {
		return nil, errEncoding
	}
	return e.CommandEncoder.EndEncoding()
}

func (e *failingEncoder) DiscardEncoding() {
	*e.discards++
	e.CommandEncoder.DiscardEncoding()
}

// encoderDevice hands out failingEncoders.
type encoderDevice struct {
	hal.Device
	failBegin bool
	failEnd   bool
	discards  int
}

func (d *encoderDevice) CreateCommandEncoder(desc *hal.CommandEncoderDescriptor) (hal.CommandEncoder, error) {
	enc, err := d.Device.CreateCommandEncoder(desc)
	if err != nil {
		return nil, err
	}
	return &failingEncoder{CommandEncoder: enc, failBegin: d.failBegin, failEnd: d.failEnd, discards: &d.discards}, nil
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import (
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"
)

// openNoopDevice creates a noop device and queue for testing.
// Returns the device, queue, and a cleanup function.
func openNoopDevice(t *testing.T) (hal.Device, hal.Queue, func()) {
	t.Helper()
	api := noop.API{}
	instance, err := api.CreateInstance(nil)
	if err != nil {
		t.Fatalf("CreateInstance failed: %v", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	openDev, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		t.Fatalf("Open failed: %v", err)
	}
	cleanup := func() {
		openDev.Device.Destroy()
		instance.Destroy()
	}
	return openDev.Device, openDev.Queue, cleanup
}

// newTestEnv returns an Env on a noop device with an 800x600 target.
func newTestEnv(t *testing.T) (Env, func()) {
	t.Helper()
	device, queue, cleanup := openNoopDevice(t)
	return Env{
		Device:  device,
		Queue:   queue,
		Shaders: NewResourceManager(ShaderModeWGSL, ""),
		Target: Target{
			ColorFormat: gputypes.TextureFormatBGRA8Unorm,
			DepthFormat: DepthFormat,
			Width:       800,
			Height:      600,
		},
	}, cleanup
}

// drawCall is one recorded draw.
type drawCall struct {
	indexed   bool
	count     uint32
	instances uint32
}

// recordingPass wraps a real pass encoder and records draws and dynamic
// offsets.
type recordingPass struct {
	hal.RenderPassEncoder
	draws   []drawCall
	offsets [][]uint32
}

func (p *recordingPass) Draw(vertexCount, instanceCount, firstVertex, firstInstance uint32) {
	p.draws = append(p.draws, drawCall{count: vertexCount, instances: instanceCount})
	p.RenderPassEncoder.Draw(vertexCount, instanceCount, firstVertex, firstInstance)
}

func (p *recordingPass) DrawIndexed(indexCount, instanceCount, firstIndex uint32, baseVertex int32, firstInstance uint32) {
	p.draws = append(p.draws, drawCall{indexed: true, count: indexCount, instances: instanceCount})
	p.RenderPassEncoder.DrawIndexed(indexCount, instanceCount, firstIndex, baseVertex, firstInstance)
}

func (p *recordingPass) SetBindGroup(index uint32, group hal.BindGroup, offsets []uint32) {
	p.offsets = append(p.offsets, append([]uint32(nil), offsets...))
	p.RenderPassEncoder.SetBindGroup(index, group, offsets)
}

// beginTestPass opens a render pass on a noop encoder against a fresh
// depth target. The returned func ends the pass and discards the encoding.
func beginTestPass(t *testing.T, env Env) (*recordingPass, func()) {
	t.Helper()
	var depth DepthTarget
	if err := depth.Ensure(env.Device, env.Target.Width, env.Target.Height); err != nil {
		t.Fatalf("depth Ensure: %v", err)
	}
	encoder, err := env.Device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: "test_encoder"})
	if err != nil {
		t.Fatalf("CreateCommandEncoder: %v", err)
	}
	if err := encoder.BeginEncoding("test_frame"); err != nil {
		t.Fatalf("BeginEncoding: %v", err)
	}
	rp := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: "test_pass",
		DepthStencilAttachment: &hal.RenderPassDepthStencilAttachment{
			View:            depth.View(),
			DepthLoadOp:     gputypes.LoadOpClear,
			DepthStoreOp:    gputypes.StoreOpStore,
			DepthClearValue: 1.0,
		},
	})
	return &recordingPass{RenderPassEncoder: rp}, func() {
		rp.End()
		encoder.DiscardEncoding()
		depth.Destroy(env.Device)
	}
}

// testFrame is a fixed frame for render tests.
func testFrame() Frame {
	u := defaultUniforms(800, 600)
	return Frame{View: u.View, Projection: u.Projection, Time: 2}
}

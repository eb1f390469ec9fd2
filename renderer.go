// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package showcase

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/showcase/internal/gpu"
)

// frameWaitTimeout bounds the wait for the previous frame before its
// command buffer is reused.
const frameWaitTimeout = 5 * time.Second

// Stats summarizes the frames a Renderer produced.
type Stats struct {
	FramesSubmitted uint64
	FramesSkipped   uint64
	Last            FrameStats
	Dropped         DropStats
}

// Renderer owns the GPU device chain, the swapchain-dependent resources and
// the per-frame pass.
//
// Renderer is not safe for concurrent use. Call every method from the
// goroutine that drives frames.
type Renderer struct {
	opts     options
	surface  Surface
	graphics *Graphics

	started bool
	stage   Stage

	instance     hal.Instance
	adapter      *hal.ExposedAdapter
	device       hal.Device
	queue        hal.Queue
	sharedDevice bool
	format       gputypes.TextureFormat
	depth        gpu.DepthTarget
	width        uint32
	height       uint32

	fence      hal.Fence
	fenceValue uint64
	inFlight   hal.CommandBuffer

	stats Stats
}

// NewRenderer creates a renderer presenting to surface. Nothing touches the
// GPU until Initialize.
func NewRenderer(surface Surface, opts ...Option) *Renderer {
	o := buildOptions(opts)
	return &Renderer{
		opts:     o,
		surface:  surface,
		graphics: newGraphics(o),
	}
}

// initStep is one link of the initialization chain.
type initStep struct {
	stage    Stage
	sentinel error
	run      func() error
}

// Initialize runs the initialization chain once for a width x height
// surface. A failing step is logged and returned wrapped with its
// sentinel; the objects created so far stay alive until Destroy.
func (r *Renderer) Initialize(width, height uint32) error {
	if r.started {
		return ErrAlreadyInitialized
	}
	if width == 0 || height == 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	r.started = true
	r.width, r.height = width, height

	var pending deviceQueue
	steps := []initStep{
		{StageInstanceReady, ErrInstance, r.initInstance},
		{StageAdapterReady, ErrAdapter, r.initAdapter},
		{StageDeviceReady, ErrDevice, func() error { return r.initDevice(&pending) }},
		{StageSurfaceReady, ErrSurface, r.initSurface},
		{StageSwapchainReady, ErrSwapchain, r.configureSwapchain},
		{StageQueueReady, ErrQueue, func() error { return r.initQueue(pending.queue) }},
		{StageDepthBufferReady, ErrDepthBuffer, func() error { return r.depth.Ensure(r.device, r.width, r.height) }},
		{StageShadersReady, ErrShaders, r.initShaders},
	}
	for _, step := range steps {
		if err := step.run(); err != nil {
			err = fmt.Errorf("%w: %w", step.sentinel, err)
			Logger().Error("renderer initialization failed", "stage", step.stage, "reached", r.stage, "err", err)
			return err
		}
		r.stage = step.stage
		Logger().Debug("renderer stage reached", "stage", r.stage)
	}

	Logger().Info("renderer initialized",
		"width", r.width, "height", r.height, "format", r.format,
		"adapter", r.AdapterName(), "shared_device", r.sharedDevice)
	return nil
}

func (r *Renderer) initInstance() error {
	if r.opts.provider != nil {
		return nil
	}
	instance, err := r.opts.instanceFactory()
	if err != nil {
		return err
	}
	r.instance = instance
	return nil
}

func (r *Renderer) initAdapter() error {
	if r.opts.provider != nil {
		return nil
	}
	adapter, err := requestAdapter(r.instance).wait()
	if err != nil {
		return err
	}
	r.adapter = adapter
	Logger().Info("adapter selected", "name", adapter.Info.Name, "type", adapter.Info.DeviceType)
	return nil
}

func (r *Renderer) initDevice(pending *deviceQueue) error {
	if r.opts.provider != nil {
		device, queue, err := providerHAL(r.opts.provider)
		if err != nil {
			return err
		}
		r.device = device
		r.sharedDevice = true
		pending.queue = queue
		return nil
	}
	dq, err := requestDevice(r.adapter).wait()
	if err != nil {
		return err
	}
	r.device = dq.device
	*pending = dq
	return nil
}

// initSurface resolves the color format: an explicit option first, then
// the host provider, then the surface itself.
func (r *Renderer) initSurface() error {
	if r.surface == nil {
		return errors.New("no surface")
	}
	r.format = r.opts.colorFormat
	if r.format == gputypes.TextureFormatUndefined && r.opts.provider != nil {
		r.format = r.opts.provider.SurfaceFormat()
	}
	if r.format == gputypes.TextureFormatUndefined {
		r.format = r.surface.Format()
	}
	if r.format == gputypes.TextureFormatUndefined {
		return errors.New("no color format")
	}
	return nil
}

func (r *Renderer) configureSwapchain() error {
	return r.surface.Configure(r.device, SurfaceConfig{
		Width:       r.width,
		Height:      r.height,
		Format:      r.format,
		PresentMode: PresentModeFifo,
	})
}

func (r *Renderer) initQueue(queue hal.Queue) error {
	if queue == nil {
		return errors.New("device has no queue")
	}
	r.queue = queue
	fence, err := r.device.CreateFence()
	if err != nil {
		return fmt.Errorf("create fence: %w", err)
	}
	r.fence = fence
	return nil
}

func (r *Renderer) initShaders() error {
	return r.graphics.InitShaders(r.device, r.queue, r.format, gpu.DepthFormat, r.width, r.height)
}

// Resize reconfigures the swapchain, recreates the depth buffer and
// updates every batch projection. Zero sizes (a minimized window) are
// ignored.
func (r *Renderer) Resize(width, height uint32) error {
	if width == 0 || height == 0 {
		Logger().Debug("ignoring zero-size resize", "width", width, "height", height)
		return nil
	}
	if !r.stage.Ready() {
		return ErrNotInitialized
	}
	if width == r.width && height == r.height {
		return nil
	}
	r.waitInFlight()
	r.width, r.height = width, height

	if err := r.configureSwapchain(); err != nil {
		return fmt.Errorf("%w: %w", ErrSwapchain, err)
	}
	if err := r.depth.Ensure(r.device, width, height); err != nil {
		return fmt.Errorf("%w: %w", ErrDepthBuffer, err)
	}
	r.graphics.Resize(width, height)
	Logger().Info("renderer resized", "width", width, "height", height)
	return nil
}

// passDescriptor builds the single pass of a frame: color cleared to
// clearColor and stored, depth cleared to 1.0 and stored, stencil untouched.
func passDescriptor(color, depth hal.TextureView, clearColor gputypes.Color) *hal.RenderPassDescriptor {
	return &hal.RenderPassDescriptor{
		Label: "frame_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{{
			View:       color,
			LoadOp:     gputypes.LoadOpClear,
			StoreOp:    gputypes.StoreOpStore,
			ClearValue: clearColor,
		}},
		DepthStencilAttachment: &hal.RenderPassDepthStencilAttachment{
			View:            depth,
			DepthLoadOp:     gputypes.LoadOpClear,
			DepthStoreOp:    gputypes.StoreOpStore,
			DepthClearValue: 1.0,
		},
	}
}

// Render draws one frame with the given camera matrices and time in
// seconds. A frame whose surface view cannot be acquired is skipped: the
// failure is logged and counted and Render returns nil.
func (r *Renderer) Render(view, projection mgl32.Mat4, elapsed float32) error {
	if !r.stage.Ready() {
		return ErrNotInitialized
	}
	r.waitInFlight()

	target, err := r.surface.AcquireView()
	if err != nil {
		r.stats.FramesSkipped++
		Logger().Warn("frame skipped: surface view unavailable", "err", err, "skipped", r.stats.FramesSkipped)
		return nil
	}

	encoder, err := r.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "frame_encoder",
	})
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("frame"); err != nil {
		encoder.DiscardEncoding()
		return fmt.Errorf("begin encoding: %w", err)
	}

	rp := encoder.BeginRenderPass(passDescriptor(target, r.depth.View(), r.opts.clearColor))
	if r.opts.scene != nil {
		r.opts.scene.Populate(r.graphics, elapsed)
	}
	fs := r.graphics.Render(rp, view, projection, elapsed)
	rp.End()

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		encoder.DiscardEncoding()
		return fmt.Errorf("end encoding: %w", err)
	}

	r.fenceValue++
	if err := r.queue.Submit([]hal.CommandBuffer{cmdBuf}, r.fence, r.fenceValue); err != nil {
		r.device.FreeCommandBuffer(cmdBuf)
		return fmt.Errorf("submit: %w", err)
	}
	r.inFlight = cmdBuf

	r.stats.FramesSubmitted++
	r.stats.Last = fs
	r.stats.Dropped = r.graphics.Dropped()

	if err := r.surface.Present(r.queue); err != nil {
		return fmt.Errorf("present: %w", err)
	}
	return nil
}

// waitInFlight waits for the previous frame and frees its command buffer.
func (r *Renderer) waitInFlight() {
	if r.inFlight == nil {
		return
	}
	ok, err := r.device.Wait(r.fence, r.fenceValue, frameWaitTimeout)
	if err != nil {
		Logger().Warn("wait for previous frame failed", "err", err)
	} else if !ok {
		Logger().Warn("previous frame timed out", "timeout", frameWaitTimeout)
	}
	r.device.FreeCommandBuffer(r.inFlight)
	r.inFlight = nil
}

// Stage returns the furthest initialization stage reached.
func (r *Renderer) Stage() Stage { return r.stage }

// Stats returns frame counters.
func (r *Renderer) Stats() Stats { return r.stats }

// Graphics returns the primitive recorder.
func (r *Renderer) Graphics() *Graphics { return r.graphics }

// Device returns the device, or nil before the device stage.
func (r *Renderer) Device() hal.Device { return r.device }

// Queue returns the queue, or nil before the queue stage.
func (r *Renderer) Queue() hal.Queue { return r.queue }

// Format returns the swapchain color format.
func (r *Renderer) Format() gputypes.TextureFormat { return r.format }

// Size returns the current surface size.
func (r *Renderer) Size() (uint32, uint32) { return r.width, r.height }

// AdapterName returns the selected adapter name, or "shared" when the
// device comes from a provider.
func (r *Renderer) AdapterName() string {
	switch {
	case r.sharedDevice:
		return "shared"
	case r.adapter != nil:
		return r.adapter.Info.Name
	default:
		return ""
	}
}

// Destroy waits for the last frame and releases everything the renderer
// created. A shared device is left alive. Safe to call more than once and
// after a failed Initialize; afterwards Initialize may be called again.
func (r *Renderer) Destroy() {
	if r.device != nil {
		r.waitInFlight()
		r.graphics.Destroy()
		r.depth.Destroy(r.device)
		if r.surface != nil {
			r.surface.Release(r.device)
		}
		if r.fence != nil {
			r.device.DestroyFence(r.fence)
			r.fence = nil
		}
		if !r.sharedDevice {
			r.device.Destroy()
		}
	}
	if r.instance != nil {
		r.instance.Destroy()
		r.instance = nil
	}
	r.device = nil
	r.queue = nil
	r.adapter = nil
	r.sharedDevice = false
	r.fenceValue = 0
	r.stage = StageUninitialized
	r.started = false
	Logger().Debug("renderer destroyed")
}

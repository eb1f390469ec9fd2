// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package showcase

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/showcase/internal/gpu"
)

// FrameStats describes what one Graphics.Render submitted.
type FrameStats struct {
	DrawCalls int
	Lines     int
	Instances int
	Panels    int
}

// DropStats counts primitives rejected because a batch was full.
type DropStats struct {
	Lines     uint64
	Instances uint64
	Panels    uint64
}

// Graphics records primitives between frames and flushes them into a
// render pass. It owns one batch per primitive kind.
//
// Graphics is not safe for concurrent use; record and render from the
// frame goroutine.
type Graphics struct {
	shaders   *gpu.ResourceManager
	lines     *gpu.LineBatch
	instances *gpu.InstanceBatch
	panels    *gpu.MeshBatch

	pendingLines     []gpu.Line
	pendingInstances []mgl32.Mat4
	pendingPanels    []mgl32.Mat4

	dropped DropStats
	ready   bool
}

// NewGraphics creates a Graphics. Only the capacity, shape and shader
// options apply.
func NewGraphics(opts ...Option) *Graphics {
	return newGraphics(buildOptions(opts))
}

func newGraphics(o options) *Graphics {
	return &Graphics{
		shaders:          gpu.NewResourceManager(o.shaderMode, o.shaderDir),
		lines:            gpu.NewLineBatch(o.maxLines),
		instances:        gpu.NewInstanceBatch(o.shape, o.maxInstances),
		panels:           gpu.NewMeshBatch(),
		pendingLines:     make([]gpu.Line, 0, o.maxLines),
		pendingInstances: make([]mgl32.Mat4, 0, o.maxInstances),
		pendingPanels:    make([]mgl32.Mat4, 0, MaxPanels),
	}
}

// DrawLine records a segment for the next frame. The segment is dropped
// when the line capacity is reached.
func (g *Graphics) DrawLine(start, end, color mgl32.Vec3) {
	if len(g.pendingLines) >= g.lines.Capacity() {
		g.dropped.Lines++
		return
	}
	g.pendingLines = append(g.pendingLines, gpu.Line{Start: start, End: end, Color: color})
}

// DrawRect records one instance of the base shape with the given model
// transform. The instance is dropped when the capacity is reached.
func (g *Graphics) DrawRect(transform mgl32.Mat4) {
	if len(g.pendingInstances) >= g.instances.Capacity() {
		g.dropped.Instances++
		return
	}
	g.pendingInstances = append(g.pendingInstances, transform)
}

// DrawPanel records one mesh panel with the given model transform. At
// most MaxPanels are drawn per frame; the rest are dropped.
func (g *Graphics) DrawPanel(transform mgl32.Mat4) {
	if len(g.pendingPanels) >= MaxPanels {
		g.dropped.Panels++
		return
	}
	g.pendingPanels = append(g.pendingPanels, transform)
}

// Pending returns the number of recorded lines, instances and panels.
func (g *Graphics) Pending() (lines, instances, panels int) {
	return len(g.pendingLines), len(g.pendingInstances), len(g.pendingPanels)
}

// Dropped returns the totals of dropped primitives since creation.
func (g *Graphics) Dropped() DropStats { return g.dropped }

// Shape returns the instanced base shape.
func (g *Graphics) Shape() Shape { return g.instances.Shape() }

// InitShaders builds every batch for the given device and targets. The
// shader sources are compiled up front; the first failure is returned.
func (g *Graphics) InitShaders(device hal.Device, queue hal.Queue, colorFormat, depthFormat gputypes.TextureFormat, width, height uint32) error {
	if err := g.shaders.Preload(gpu.ShaderLine3D, gpu.ShaderInstance, gpu.ShaderMesh); err != nil {
		return err
	}
	env := gpu.Env{
		Device:  device,
		Queue:   queue,
		Shaders: g.shaders,
		Target: gpu.Target{
			ColorFormat: colorFormat,
			DepthFormat: depthFormat,
			Width:       width,
			Height:      height,
		},
	}
	for _, b := range g.batches() {
		if err := b.Init(env); err != nil {
			return fmt.Errorf("init batch: %w", err)
		}
	}
	g.ready = true
	Logger().Debug("graphics ready",
		"max_lines", g.lines.Capacity(), "max_instances", g.instances.Capacity(),
		"shape", g.instances.Shape(), "shader_mode", g.shaders.Mode())
	return nil
}

func (g *Graphics) batches() []gpu.Batch {
	return []gpu.Batch{g.lines, g.instances, g.panels}
}

// Resize forwards the new viewport to every batch.
func (g *Graphics) Resize(width, height uint32) {
	for _, b := range g.batches() {
		b.Resize(width, height)
	}
}

// Render flushes the recorded primitives into rp in a fixed order: lines,
// instances, panels. Each non-empty kind is uploaded and drawn, then its
// pending list is cleared. Empty kinds record nothing.
func (g *Graphics) Render(rp hal.RenderPassEncoder, view, projection mgl32.Mat4, time float32) FrameStats {
	frame := gpu.Frame{View: view, Projection: projection, Time: time}
	var stats FrameStats

	if len(g.pendingLines) > 0 {
		stats.Lines = int(g.lines.Upload(g.pendingLines))
		stats.DrawCalls += g.lines.Render(rp, frame)
		g.pendingLines = g.pendingLines[:0]
	}
	if len(g.pendingInstances) > 0 {
		stats.Instances = int(g.instances.Upload(g.pendingInstances))
		stats.DrawCalls += g.instances.Render(rp, frame)
		g.pendingInstances = g.pendingInstances[:0]
	}
	if len(g.pendingPanels) > 0 {
		stats.Panels = g.panels.Upload(g.pendingPanels)
		stats.DrawCalls += g.panels.Render(rp, frame)
		g.pendingPanels = g.pendingPanels[:0]
	}
	return stats
}

// Ready reports whether InitShaders succeeded.
func (g *Graphics) Ready() bool { return g.ready }

// Destroy releases every batch. Safe to call more than once.
func (g *Graphics) Destroy() {
	for _, b := range g.batches() {
		b.Destroy()
	}
	g.ready = false
}

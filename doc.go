// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package showcase is a small real-time 3D renderer on top of the gogpu
// hal layer.
//
// # Overview
//
// showcase draws three kinds of primitives each frame: colored 3D line
// segments, instanced rectangles or cubes, and indexed mesh panels. A
// free-look camera turns mouse movement into a view matrix. The hard part
// lives in [Renderer]: device and surface initialization, per-frame
// batching, dynamic uniform updates and the resize lifecycle of the
// swapchain-dependent resources.
//
// # Quick Start
//
//	surface := showcase.NewOffscreenSurface(gputypes.TextureFormatBGRA8Unorm)
//	r := showcase.NewRenderer(surface, showcase.WithScene(showcase.Axes{Length: 10}))
//	if err := r.Initialize(800, 600); err != nil {
//	    log.Fatal(err)
//	}
//	defer r.Destroy()
//
//	cam := showcase.NewCamera(800, 600, mgl32.Vec3{0, 0, 20})
//	r.Graphics().DrawLine(mgl32.Vec3{}, mgl32.Vec3{5, 0, 0}, mgl32.Vec3{1, 0, 0})
//	r.Graphics().DrawRect(mgl32.Translate3D(0, 2, 0))
//	if err := r.Render(cam.ViewMatrix(), cam.ProjectionMatrix(), 0); err != nil {
//	    log.Fatal(err)
//	}
//
// # Initialization
//
// [Renderer.Initialize] walks a fixed chain of stages:
//
//	Instance -> Adapter -> Device -> Surface -> Swapchain -> Queue -> Depth -> Shaders
//
// A failing stage is logged and returned wrapped with its sentinel error
// ([ErrInstance], [ErrAdapter], ...). [Renderer.Stage] reports how far the
// chain got. With [WithDeviceProvider] the first three stages reuse a host
// device instead of creating one.
//
// # Frames
//
// Primitives are recorded on [Graphics] between frames and flushed by
// [Renderer.Render] in a fixed order: lines, then instances, then panels.
// Each non-empty kind costs one upload and one draw call (panels cost one
// draw each). Recording beyond a kind's capacity silently drops the
// primitive; [Graphics.Dropped] reports how many.
//
// # Hosts
//
// [Application] ties a renderer, a camera and pointer-locked mouse input
// into a per-frame step. The integration/gogpuhost package runs it inside a
// gogpu window; [OffscreenSurface] runs it headless.
package showcase

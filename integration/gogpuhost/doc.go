// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package gogpuhost runs a showcase renderer inside a gogpu window.
//
// The window, swapchain and presentation belong to gogpu. The renderer
// shares gogpu's device through the app's GPUContextProvider and draws into
// the surface view of the current frame:
//
//	gogpu.App (OnDraw) -> FrameSurface -> showcase.Renderer -> window
//
// # Usage
//
//	cfg := gogpuhost.DefaultConfig()
//	cfg.Options = append(cfg.Options, showcase.WithScene(showcase.CubeSphere{Count: 500, Radius: 12}))
//	if err := gogpuhost.Run(cfg); err != nil {
//	    log.Fatal(err)
//	}
//
// Space toggles the pointer lock. While locked, the camera orbits by
// feeding a constant horizontal movement into the application's mouse
// accumulator.
package gogpuhost

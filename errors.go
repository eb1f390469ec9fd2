// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package showcase

import "errors"

// Initialization errors. Each stage of [Renderer.Initialize] wraps its
// failure with the matching sentinel; use errors.Is to test for them.
var (
	// ErrInstance is returned when no GPU instance could be created.
	ErrInstance = errors.New("showcase: create instance")

	// ErrAdapter is returned when no adapter is available.
	ErrAdapter = errors.New("showcase: request adapter")

	// ErrDevice is returned when the adapter cannot open a device.
	ErrDevice = errors.New("showcase: request device")

	// ErrSurface is returned when the surface is missing or reports no
	// usable format.
	ErrSurface = errors.New("showcase: surface")

	// ErrSwapchain is returned when the surface cannot be configured.
	ErrSwapchain = errors.New("showcase: configure swapchain")

	// ErrQueue is returned when the device has no queue.
	ErrQueue = errors.New("showcase: queue")

	// ErrDepthBuffer is returned when the depth texture cannot be created.
	ErrDepthBuffer = errors.New("showcase: depth buffer")

	// ErrShaders is returned when a batch pipeline cannot be built.
	ErrShaders = errors.New("showcase: init shaders")
)

var (
	// ErrAlreadyInitialized is returned by a second Initialize call.
	ErrAlreadyInitialized = errors.New("showcase: renderer already initialized")

	// ErrNotInitialized is returned by operations that need a device.
	ErrNotInitialized = errors.New("showcase: renderer not initialized")

	// ErrInvalidSize is returned for a zero width or height.
	ErrInvalidSize = errors.New("showcase: width and height must be positive")

	// ErrProvider is returned when a device provider does not expose hal
	// types.
	ErrProvider = errors.New("showcase: device provider does not expose HAL device and queue")
)

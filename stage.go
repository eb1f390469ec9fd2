// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package showcase

import "fmt"

// Stage is the furthest point Renderer.Initialize reached. Stages are
// ordered; a later stage implies every earlier one succeeded.
type Stage uint8

const (
	StageUninitialized Stage = iota
	StageInstanceReady
	StageAdapterReady
	StageDeviceReady
	StageSurfaceReady
	StageSwapchainReady
	StageQueueReady
	StageDepthBufferReady
	StageShadersReady
)

var stageNames = [...]string{
	StageUninitialized:    "uninitialized",
	StageInstanceReady:    "instance-ready",
	StageAdapterReady:     "adapter-ready",
	StageDeviceReady:      "device-ready",
	StageSurfaceReady:     "surface-ready",
	StageSwapchainReady:   "swapchain-ready",
	StageQueueReady:       "queue-ready",
	StageDepthBufferReady: "depth-buffer-ready",
	StageShadersReady:     "shaders-ready",
}

// String returns the stage name.
func (s Stage) String() string {
	if int(s) < len(stageNames) {
		return stageNames[s]
	}
	return fmt.Sprintf("Stage(%d)", s)
}

// Ready reports whether the renderer can draw frames.
func (s Stage) Ready() bool { return s == StageShadersReady }

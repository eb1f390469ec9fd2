// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Command showcase renders the built-in 3D scenes in a window, or
// headless into an offscreen texture.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/showcase"
	"github.com/gogpu/showcase/integration/gogpuhost"
)

type config struct {
	width    int
	height   int
	scene    string
	shape    string
	spirv    bool
	headless bool
	frames   int
	verbose  bool
}

func main() {
	var cfg config
	flag.IntVar(&cfg.width, "width", 800, "window width")
	flag.IntVar(&cfg.height, "height", 600, "window height")
	flag.StringVar(&cfg.scene, "scene", "all", "scene: "+strings.Join(showcase.SceneNames(), ", "))
	flag.StringVar(&cfg.shape, "shape", "cube", "instance shape: cube or quad")
	flag.BoolVar(&cfg.spirv, "spirv", false, "compile shaders to SPIR-V")
	flag.BoolVar(&cfg.headless, "headless", false, "render offscreen without a window")
	flag.IntVar(&cfg.frames, "frames", 60, "frames to render in headless mode")
	flag.BoolVar(&cfg.verbose, "v", false, "debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if cfg.verbose {
		level = slog.LevelDebug
	}
	showcase.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if err := run(cfg); err != nil {
		log.Fatal(err)
	}
}

func run(cfg config) error {
	opts, err := rendererOptions(cfg)
	if err != nil {
		return err
	}
	if cfg.headless {
		return runHeadless(cfg, opts)
	}

	hc := gogpuhost.DefaultConfig()
	hc.Title = "showcase: " + cfg.scene
	hc.Width, hc.Height = cfg.width, cfg.height
	hc.Options = opts
	return gogpuhost.Run(hc)
}

// rendererOptions turns flags into renderer options.
func rendererOptions(cfg config) ([]showcase.Option, error) {
	if cfg.width <= 0 || cfg.height <= 0 {
		return nil, fmt.Errorf("invalid size %dx%d", cfg.width, cfg.height)
	}
	shape, err := parseShape(cfg.shape)
	if err != nil {
		return nil, err
	}
	scene, err := showcase.SceneByName(cfg.scene)
	if err != nil {
		return nil, err
	}

	opts := []showcase.Option{
		showcase.WithInstanceShape(shape),
		showcase.WithScene(scene),
	}
	if cfg.spirv {
		opts = append(opts, showcase.WithShaderMode(showcase.ShaderModeSPIRV))
	}
	return opts, nil
}

func parseShape(name string) (showcase.Shape, error) {
	switch strings.ToLower(name) {
	case "cube":
		return showcase.ShapeCube, nil
	case "quad", "rect":
		return showcase.ShapeQuad, nil
	default:
		return 0, fmt.Errorf("unknown shape %q (have cube, quad)", name)
	}
}

// runHeadless renders cfg.frames frames into an offscreen texture on the
// Vulkan backend.
func runHeadless(cfg config, opts []showcase.Option) error {
	surface := showcase.NewOffscreenSurface(gputypes.TextureFormatBGRA8Unorm)
	r := showcase.NewRenderer(surface, opts...)
	cam := showcase.NewCamera(uint32(cfg.width), uint32(cfg.height), mgl32.Vec3{0, 0, 20})
	app := showcase.NewApplication(r, cam)
	defer app.Destroy()

	if err := app.Initialize(uint32(cfg.width), uint32(cfg.height)); err != nil {
		return err
	}
	log.Printf("Adapter: %s (format %v)", r.AdapterName(), r.Format())

	// Orbit so every frame differs.
	app.Mouse().SetLocked(true)
	for range cfg.frames {
		app.Mouse().Add(2, 0)
		if err := app.Frame(); err != nil {
			return err
		}
	}

	st := r.Stats()
	log.Printf("Rendered %d frames (%d skipped); last: %d draws, %d lines, %d instances, %d panels",
		st.FramesSubmitted, st.FramesSkipped,
		st.Last.DrawCalls, st.Last.Lines, st.Last.Instances, st.Last.Panels)
	if d := st.Dropped; d.Lines+d.Instances+d.Panels > 0 {
		log.Printf("Dropped: %d lines, %d instances, %d panels", d.Lines, d.Instances, d.Panels)
	}
	return nil
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package showcase

import (
	"fmt"
	"image/color"
	"sort"
	"strings"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/colornames"
)

// Scene records primitives for one frame. The renderer calls Populate
// inside the frame pass, before Graphics is flushed.
type Scene interface {
	Populate(g *Graphics, t float32)
}

// SceneFunc adapts a function to Scene.
type SceneFunc func(g *Graphics, t float32)

// Populate implements Scene.
func (f SceneFunc) Populate(g *Graphics, t float32) { f(g, t) }

// goldenAngle is pi * (3 - sqrt(5)).
var goldenAngle = math32.Pi * (3 - math32.Sqrt(5))

// CubeSphere places Count cubes on a sphere of the given radius with a
// golden spiral. Every cube spins about its own Y axis.
type CubeSphere struct {
	Count  int
	Radius float32
}

// Populate implements Scene.
func (s CubeSphere) Populate(g *Graphics, t float32) {
	n := float32(s.Count)
	for i := range s.Count {
		fi := float32(i)
		y := 1 - 2*(fi+0.5)/n
		r := math32.Sqrt(1 - y*y)
		theta := goldenAngle * fi
		pos := mgl32.Vec3{math32.Cos(theta) * r, y, math32.Sin(theta) * r}.Mul(s.Radius)

		model := mgl32.Translate3D(pos[0], pos[1], pos[2]).
			Mul4(mgl32.HomogRotate3DY(t + fi*0.1)).
			Mul4(mgl32.Scale3D(0.6, 0.6, 0.6))
		g.DrawRect(model)
	}
}

// RectGrid lays out Cols x Rows rectangles centered on the origin in the
// XY plane, each spinning about Z with a phase by position.
type RectGrid struct {
	Cols    int
	Rows    int
	Spacing float32
}

// Populate implements Scene.
func (s RectGrid) Populate(g *Graphics, t float32) {
	x0 := -float32(s.Cols-1) * s.Spacing / 2
	y0 := -float32(s.Rows-1) * s.Spacing / 2
	for row := range s.Rows {
		for col := range s.Cols {
			x := x0 + float32(col)*s.Spacing
			y := y0 + float32(row)*s.Spacing
			phase := float32(row*s.Cols+col) * 0.25
			g.DrawRect(mgl32.Translate3D(x, y, 0).Mul4(mgl32.HomogRotate3DZ(t + phase)))
		}
	}
}

// Axes draws the three coordinate axes and a floor grid of GridLines lines
// per direction at y = 0.
type Axes struct {
	Length    float32
	GridLines int
}

// Axis and grid colors.
var (
	AxisXColor = colorVec(colornames.Red)
	AxisYColor = colorVec(colornames.Lime)
	AxisZColor = colorVec(colornames.Dodgerblue)
	GridColor  = colorVec(colornames.Dimgray)
)

// Populate implements Scene.
func (s Axes) Populate(g *Graphics, _ float32) {
	var origin mgl32.Vec3
	g.DrawLine(origin, mgl32.Vec3{s.Length, 0, 0}, AxisXColor)
	g.DrawLine(origin, mgl32.Vec3{0, s.Length, 0}, AxisYColor)
	g.DrawLine(origin, mgl32.Vec3{0, 0, s.Length}, AxisZColor)

	if s.GridLines < 2 {
		return
	}
	step := 2 * s.Length / float32(s.GridLines-1)
	for i := range s.GridLines {
		d := -s.Length + float32(i)*step
		g.DrawLine(mgl32.Vec3{d, 0, -s.Length}, mgl32.Vec3{d, 0, s.Length}, GridColor)
		g.DrawLine(mgl32.Vec3{-s.Length, 0, d}, mgl32.Vec3{s.Length, 0, d}, GridColor)
	}
}

// PanelRing stands Count mesh panels in a ring of the given radius around
// the Y axis, facing the center. The ring turns slowly with time.
type PanelRing struct {
	Count  int
	Radius float32
}

// Populate implements Scene.
func (s PanelRing) Populate(g *Graphics, t float32) {
	for i := range s.Count {
		angle := 2*math32.Pi*float32(i)/float32(s.Count) + t*0.2
		model := mgl32.HomogRotate3DY(angle).
			Mul4(mgl32.Translate3D(0, 0, -s.Radius)).
			Mul4(mgl32.Scale3D(0.3, 0.3, 0.3))
		g.DrawPanel(model)
	}
}

// Scenes composes several scenes, populated in order.
func Scenes(scenes ...Scene) Scene {
	return SceneFunc(func(g *Graphics, t float32) {
		for _, s := range scenes {
			s.Populate(g, t)
		}
	})
}

// builtinScenes are the scenes selectable by name.
var builtinScenes = map[string]func() Scene{
	"axes":   func() Scene { return Axes{Length: 10, GridLines: 21} },
	"cubes":  func() Scene { return CubeSphere{Count: 500, Radius: 8} },
	"grid":   func() Scene { return RectGrid{Cols: 20, Rows: 20, Spacing: 1.5} },
	"panels": func() Scene { return PanelRing{Count: 8, Radius: 12} },
	"all": func() Scene {
		return Scenes(
			Axes{Length: 10, GridLines: 21},
			CubeSphere{Count: 500, Radius: 8},
			PanelRing{Count: 8, Radius: 12},
		)
	},
}

// SceneNames returns the names accepted by SceneByName, sorted.
func SceneNames() []string {
	names := make([]string, 0, len(builtinScenes))
	for name := range builtinScenes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SceneByName returns a built-in scene.
func SceneByName(name string) (Scene, error) {
	mk, ok := builtinScenes[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("showcase: unknown scene %q (have %s)", name, strings.Join(SceneNames(), ", "))
	}
	return mk(), nil
}

// colorVec converts an 8-bit color to a linear float triple.
func colorVec(c color.RGBA) mgl32.Vec3 {
	return mgl32.Vec3{float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255}
}

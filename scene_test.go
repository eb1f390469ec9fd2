// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package showcase

import (
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestCubeSphereOnSphere(t *testing.T) {
	g := NewGraphics()
	CubeSphere{Count: 100, Radius: 5}.Populate(g, 0)
	if _, n, _ := g.Pending(); n != 100 {
		t.Fatalf("pending instances = %d, want 100", n)
	}
	for i, m := range g.pendingInstances {
		if d := m.Col(3).Vec3().Len(); !mgl32.FloatEqualThreshold(d, 5, 1e-3) {
			t.Errorf("cube %d at distance %v, want 5", i, d)
		}
	}
}

func TestRectGridCentered(t *testing.T) {
	g := NewGraphics()
	RectGrid{Cols: 3, Rows: 2, Spacing: 2}.Populate(g, 0)
	if _, n, _ := g.Pending(); n != 6 {
		t.Fatalf("pending instances = %d, want 6", n)
	}
	var sum mgl32.Vec3
	for _, m := range g.pendingInstances {
		sum = sum.Add(m.Col(3).Vec3())
	}
	if !vecNear(sum, mgl32.Vec3{}, 1e-4) {
		t.Errorf("grid center = %v, want origin", sum.Mul(1.0/6))
	}
}

func TestAxesColorsAndGrid(t *testing.T) {
	g := NewGraphics()
	Axes{Length: 4, GridLines: 5}.Populate(g, 0)
	lines, _, _ := g.Pending()
	if lines != 3+2*5 {
		t.Fatalf("pending lines = %d, want 13", lines)
	}
	if c := g.pendingLines[0].Color; c != (mgl32.Vec3{1, 0, 0}) {
		t.Errorf("X axis color = %v, want red", c)
	}
	if c := g.pendingLines[1].Color; c != (mgl32.Vec3{0, 1, 0}) {
		t.Errorf("Y axis color = %v, want lime", c)
	}

	g2 := NewGraphics()
	Axes{Length: 4}.Populate(g2, 0)
	if lines, _, _ := g2.Pending(); lines != 3 {
		t.Errorf("axes without grid = %d lines, want 3", lines)
	}
}

func TestPanelRing(t *testing.T) {
	g := NewGraphics()
	PanelRing{Count: 6, Radius: 10}.Populate(g, 1)
	if _, _, n := g.Pending(); n != 6 {
		t.Errorf("pending panels = %d, want 6", n)
	}
}

func TestScenesComposeInOrder(t *testing.T) {
	var order []string
	mark := func(name string) Scene {
		return SceneFunc(func(*Graphics, float32) { order = append(order, name) })
	}
	Scenes(mark("a"), mark("b"), mark("c")).Populate(NewGraphics(), 0)
	if strings.Join(order, "") != "abc" {
		t.Errorf("order = %v, want a b c", order)
	}
}

func TestSceneByName(t *testing.T) {
	for _, name := range SceneNames() {
		s, err := SceneByName(name)
		if err != nil || s == nil {
			t.Errorf("SceneByName(%q) = %v, %v", name, s, err)
		}
	}
	if _, err := SceneByName("CUBES"); err != nil {
		t.Errorf("names should be case-insensitive: %v", err)
	}
	_, err := SceneByName("nope")
	if err == nil || !strings.Contains(err.Error(), "axes") {
		t.Errorf("unknown scene error = %v, want the list of names", err)
	}
}

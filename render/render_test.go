// seehuhn.de/go/laser - laser beam quantization and collision
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package render

import (
	"image"
	"image/color"
	"io"
	"log/slog"
	"maps"
	"math"
	"slices"
	"testing"

	v2 "github.com/deadsy/sdfx/vec/v2"
	"github.com/google/go-cmp/cmp"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/laser"
	"seehuhn.de/go/laser/testcases"
)

const (
	width  = laser.ViewportWidth
	height = laser.ViewportHeight
)

var viewport = rect.Rect{URx: width, URy: height}

// coverage collects the output of a fill, combining overlapping fills by
// taking the maximum.
type coverage struct {
	stride int
	v      []float32
}

func newCoverage() *coverage {
	return &coverage{stride: width, v: make([]float32, width*height)}
}

func (c *coverage) emit(y, xMin int, cov []float32) {
	row := c.v[y*c.stride+xMin:]
	for i, a := range cov {
		row[i] = max(row[i], a)
	}
}

func (c *coverage) at(x, y int) float32 {
	return c.v[y*c.stride+x]
}

func (c *coverage) sum() float64 {
	var total float64
	for _, a := range c.v {
		total += float64(a)
	}
	return total
}

func pt(x, y float64) vec.Vec2 {
	return vec.Vec2{X: x, Y: y}
}

func runScenario(t *testing.T, sc testcases.Scenario) *laser.System {
	t.Helper()
	cfg := laser.DefaultConfig()
	cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	s, err := sc.Run(cfg)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func fillSystem(r *Rasterizer, s *laser.System) *coverage {
	c := newCoverage()
	for _, l := range s.Lasers() {
		r.FillSegments(s.Segments(l), c.emit)
	}
	return c
}

func forAllScenarios(t *testing.T, fn func(t *testing.T, sc testcases.Scenario, s *laser.System)) {
	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, sc := range testcases.All[category] {
			t.Run(category+"_"+sc.Name, func(t *testing.T) {
				fn(t, sc, runScenario(t, sc))
			})
		}
	}
}

// TestApproaches checks that the 2D buffer and the active edge list code
// paths give the same coverage.
func TestApproaches(t *testing.T) {
	forAllScenarios(t, func(t *testing.T, sc testcases.Scenario, s *laser.System) {
		rA := NewRasterizer(viewport)
		rA.Cap = sc.Cap
		rA.smallPathThreshold = 1 << 30
		rB := NewRasterizer(viewport)
		rB.Cap = sc.Cap
		rB.smallPathThreshold = 0

		a := fillSystem(rA, s)
		b := fillSystem(rB, s)

		if a.sum() < 1 {
			t.Fatal("scenario is not visible")
		}
		for i := range a.v {
			if d := math.Abs(float64(a.v[i] - b.v[i])); d > 1e-4 {
				t.Fatalf("pixel (%d, %d): %g != %g", i%width, i/width, a.v[i], b.v[i])
			}
		}
	})
}

// TestRasterMatchesSDF compares the polygon outlines against the exact
// distance field of the segment chains.
func TestRasterMatchesSDF(t *testing.T) {
	forAllScenarios(t, func(t *testing.T, sc testcases.Scenario, s *laser.System) {
		if sc.Cap != graphics.LineCapRound {
			t.Skip("distance field has round ends")
		}
		c := fillSystem(NewRasterizer(viewport), s)

		f := SystemSDF(s)
		if f == nil {
			t.Fatal("no segments")
		}
		bb := f.BoundingBox()
		x0 := max(int(bb.Min.X), 0)
		x1 := min(int(bb.Max.X)+1, width)
		y0 := max(int(bb.Min.Y), 0)
		y1 := min(int(bb.Max.Y)+1, height)

		inside, outside := 0, 0
		for y := y0; y < y1; y += 3 {
			for x := x0; x < x1; x += 3 {
				d := f.Evaluate(v2.Vec{X: float64(x) + 0.5, Y: float64(y) + 0.5})
				got := c.at(x, y)
				switch {
				case d < -1.5:
					inside++
					if got < 0.999 {
						t.Fatalf("pixel (%d, %d) at distance %g: coverage %g", x, y, d, got)
					}
				case d > 1:
					outside++
					if got > 1e-3 {
						t.Fatalf("pixel (%d, %d) at distance %g: coverage %g", x, y, d, got)
					}
				}
			}
		}
		if inside == 0 || outside == 0 {
			t.Errorf("%d pixels inside, %d outside", inside, outside)
		}
	})
}

func TestCapArea(t *testing.T) {
	seg := []laser.Segment{{
		A: pt(100, 100), B: pt(300, 100),
		WidthA: 20, WidthB: 20,
	}}
	tests := []struct {
		cap  graphics.LineCapStyle
		area float64
		tol  float64
	}{
		{graphics.LineCapButt, 20 * 200, 0.01},
		{graphics.LineCapSquare, 20 * 220, 0.01},
		{graphics.LineCapRound, 20*200 + math.Pi*100, 0.005 * 4314},
	}
	for _, tc := range tests {
		t.Run(tc.cap.String(), func(t *testing.T) {
			r := NewRasterizer(viewport)
			r.Cap = tc.cap
			c := newCoverage()
			r.FillSegments(seg, c.emit)

			got := c.sum()
			if math.Abs(got-tc.area) > tc.tol {
				t.Errorf("area %g, want %g", got, tc.area)
			}
			if tc.cap == graphics.LineCapRound && got > tc.area {
				t.Errorf("polygon area %g exceeds the capsule area %g", got, tc.area)
			}
		})
	}
}

func TestContainedCircle(t *testing.T) {
	// the larger end circle contains the smaller one
	seg := []laser.Segment{{
		A: pt(200, 200), B: pt(203, 200),
		WidthA: 4, WidthB: 40,
	}}
	r := NewRasterizer(viewport)
	r.Flatness = 0.01
	c := newCoverage()
	r.FillSegments(seg, c.emit)

	want := math.Pi * 400
	if got := c.sum(); math.Abs(got-want) > 0.002*want {
		t.Errorf("area %g, want %g", got, want)
	}
	if c.at(203, 219) == 0 || c.at(203, 180) == 0 {
		t.Error("circle is not centred on the wide end")
	}
}

// TestOutline checks that the exported outline fills to the same coverage,
// and that all polygons have the same orientation.
func TestOutline(t *testing.T) {
	forAllScenarios(t, func(t *testing.T, sc testcases.Scenario, s *laser.System) {
		r := NewRasterizer(viewport)
		r.Cap = sc.Cap
		want := fillSystem(r, s)

		got := newCoverage()
		for _, l := range s.Lasers() {
			p := r.Outline(s.Segments(l))
			checkOrientation(t, p)
			r.FillNonZero(p, got.emit)
		}

		if d := cmp.Diff(want.v, got.v); d != "" {
			t.Error(d)
		}
	})
}

// checkOrientation verifies that all closed polygons of a path turn
// clockwise in a y-up frame, i.e. have non-positive signed area.
func checkOrientation(t *testing.T, p *path.Data) {
	t.Helper()

	var start, prev vec.Vec2
	var area float64
	idx := 0
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			start = p.Coords[idx]
			prev = start
			area = 0
			idx++
		case path.CmdLineTo:
			v := p.Coords[idx]
			area += prev.X*v.Y - v.X*prev.Y
			prev = v
			idx++
		case path.CmdClose:
			area += prev.X*start.Y - start.X*prev.Y
			if area > 0 {
				t.Errorf("polygon at %v has positive area %g", start, area/2)
			}
		}
	}
}

func TestDrawSystem(t *testing.T) {
	sc := testcases.All["line"][0] // horizontal, at y = 100
	s := runScenario(t, sc)

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	DrawSystem(NewRasterizer(viewport), dst, s)

	l := s.Lasers()[0]
	want := color.RGBA{R: l.Color.R, G: l.Color.G, B: l.Color.B, A: 255}
	if got := dst.RGBAAt(240, 100); got != want {
		t.Errorf("beam centre: %v, want %v", got, want)
	}
	if got := dst.RGBAAt(240, 300); got != (color.RGBA{}) {
		t.Errorf("background: %v", got)
	}
}

func TestToGray(t *testing.T) {
	buf := make([]byte, 4*2)
	emit := ToGray(buf, 4)
	emit(1, 1, []float32{0.5, 1, 0})
	want := []byte{0, 0, 0, 0, 0, 128, 255, 0}
	if d := cmp.Diff(want, buf); d != "" {
		t.Error(d)
	}
}

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

package geometry

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

var approx = cmpopts.EquateApprox(0, 1e-9)

func TestSegmentIntersect(t *testing.T) {
	tests := []struct {
		name   string
		s, o   Segment
		want   vec.Vec2
		wantOK bool
	}{
		{
			name:   "cross",
			s:      Segment{A: vec.Vec2{X: 0, Y: 0}, B: vec.Vec2{X: 10, Y: 10}},
			o:      Segment{A: vec.Vec2{X: 0, Y: 10}, B: vec.Vec2{X: 10, Y: 0}},
			want:   vec.Vec2{X: 5, Y: 5},
			wantOK: true,
		},
		{
			name:   "touching end",
			s:      Segment{A: vec.Vec2{X: 0, Y: 0}, B: vec.Vec2{X: 10, Y: 0}},
			o:      Segment{A: vec.Vec2{X: 10, Y: -5}, B: vec.Vec2{X: 10, Y: 5}},
			want:   vec.Vec2{X: 10, Y: 0},
			wantOK: true,
		},
		{
			name: "parallel",
			s:    Segment{A: vec.Vec2{X: 0, Y: 0}, B: vec.Vec2{X: 10, Y: 0}},
			o:    Segment{A: vec.Vec2{X: 0, Y: 1}, B: vec.Vec2{X: 10, Y: 1}},
		},
		{
			name: "collinear",
			s:    Segment{A: vec.Vec2{X: 0, Y: 0}, B: vec.Vec2{X: 10, Y: 0}},
			o:    Segment{A: vec.Vec2{X: 5, Y: 0}, B: vec.Vec2{X: 15, Y: 0}},
		},
		{
			name: "short",
			s:    Segment{A: vec.Vec2{X: 0, Y: 0}, B: vec.Vec2{X: 4, Y: 4}},
			o:    Segment{A: vec.Vec2{X: 0, Y: 10}, B: vec.Vec2{X: 10, Y: 0}},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := tc.s.Intersect(tc.o)
			if ok != tc.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tc.wantOK)
			}
			if ok {
				diff(t, tc.want, got, approx)
			}
		})
	}
}

func TestClosestFactor(t *testing.T) {
	s := Segment{A: vec.Vec2{X: 0, Y: 0}, B: vec.Vec2{X: 10, Y: 0}}
	tests := []struct {
		p    vec.Vec2
		want float64
	}{
		{vec.Vec2{X: 5, Y: 3}, 0.5},
		{vec.Vec2{X: -5, Y: 3}, 0},
		{vec.Vec2{X: 25, Y: -1}, 1},
		{vec.Vec2{X: 2.5, Y: 0}, 0.25},
	}
	for _, tc := range tests {
		if got := s.ClosestFactor(tc.p); math.Abs(got-tc.want) > 1e-12 {
			t.Errorf("ClosestFactor(%v) = %g, want %g", tc.p, got, tc.want)
		}
	}

	point := Segment{A: vec.Vec2{X: 1, Y: 1}, B: vec.Vec2{X: 1, Y: 1}}
	if got := point.ClosestFactor(vec.Vec2{X: 7, Y: 7}); got != 0 {
		t.Errorf("zero-length segment: got %g, want 0", got)
	}
}

func TestCapsuleDistance(t *testing.T) {
	seg := Segment{A: vec.Vec2{X: 0, Y: 0}, B: vec.Vec2{X: 10, Y: 0}}
	tests := []struct {
		name string
		c    UnevenCapsule
		p    vec.Vec2
		want float64
	}{
		{"even side", UnevenCapsule{seg, 2, 2}, vec.Vec2{X: 5, Y: 3}, 1},
		{"even inside", UnevenCapsule{seg, 2, 2}, vec.Vec2{X: 5, Y: 0}, -2},
		{"even cap A", UnevenCapsule{seg, 2, 2}, vec.Vec2{X: -4, Y: 0}, 2},
		{"even cap B", UnevenCapsule{seg, 2, 2}, vec.Vec2{X: 10, Y: 5}, 3},
		{"uneven cap A", UnevenCapsule{seg, 1, 3}, vec.Vec2{X: -4, Y: 0}, 3},
		{"uneven cap B", UnevenCapsule{seg, 1, 3}, vec.Vec2{X: 15, Y: 0}, 2},
		{"zero length", UnevenCapsule{Segment{A: vec.Vec2{}, B: vec.Vec2{}}, 1, 3}, vec.Vec2{X: 0, Y: 5}, 2},
		{
			"contained",
			UnevenCapsule{Segment{A: vec.Vec2{}, B: vec.Vec2{X: 1, Y: 0}}, 1, 5},
			vec.Vec2{X: 1, Y: 8},
			3,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.c.Distance(tc.p)
			if math.Abs(got-tc.want) > 1e-9 {
				t.Errorf("Distance(%v) = %g, want %g", tc.p, got, tc.want)
			}
		})
	}
}

// TestCapsuleSymmetry checks that the distance does not depend on the side
// of the axis the point lies on.
func TestCapsuleSymmetry(t *testing.T) {
	c := UnevenCapsule{
		Seg:     Segment{A: vec.Vec2{X: 3, Y: 4}, B: vec.Vec2{X: 20, Y: -7}},
		RadiusA: 1.5,
		RadiusB: 4,
	}
	axis := Normalize(c.Seg.B.Sub(c.Seg.A))
	normal := vec.Vec2{X: -axis.Y, Y: axis.X}
	for _, f := range []float64{-0.5, 0, 0.3, 0.8, 1.2} {
		base := Lerp(c.Seg.A, c.Seg.B, f)
		for _, d := range []float64{0.5, 3, 10} {
			left := c.Distance(base.Add(normal.Mul(d)))
			right := c.Distance(base.Sub(normal.Mul(d)))
			if math.Abs(left-right) > 1e-9 {
				t.Errorf("f=%g d=%g: %g != %g", f, d, left, right)
			}
		}
	}
}

func TestEllipseSegment(t *testing.T) {
	e := Ellipse{
		Origin: vec.Vec2{X: 100, Y: 100},
		Axes:   vec.Vec2{X: 40, Y: 10},
	}
	tests := []struct {
		name  string
		e     Ellipse
		s     Segment
		want  bool
		isErr bool
	}{
		{
			name: "through centre",
			e:    e,
			s:    Segment{A: vec.Vec2{X: 0, Y: 100}, B: vec.Vec2{X: 200, Y: 100}},
			want: true,
		},
		{
			name: "inside long axis",
			e:    e,
			s:    Segment{A: vec.Vec2{X: 118, Y: 90}, B: vec.Vec2{X: 118, Y: 110}},
			want: true,
		},
		{
			name: "miss short axis",
			e:    e,
			s:    Segment{A: vec.Vec2{X: 90, Y: 108}, B: vec.Vec2{X: 110, Y: 108}},
			want: false,
		},
		{
			name: "rotated",
			e:    Ellipse{Origin: e.Origin, Axes: e.Axes, Angle: math.Pi / 2},
			s:    Segment{A: vec.Vec2{X: 90, Y: 118}, B: vec.Vec2{X: 110, Y: 118}},
			want: true,
		},
		{
			name: "far away",
			e:    Ellipse{Origin: e.Origin, Axes: vec.Vec2{X: 0, Y: 0}},
			s:    Segment{A: vec.Vec2{X: 0, Y: 0}, B: vec.Vec2{X: 1, Y: 0}},
			want: false,
		},
		{
			name:  "zero axis",
			e:     Ellipse{Origin: e.Origin, Axes: vec.Vec2{X: 0, Y: 10}},
			s:     Segment{A: vec.Vec2{X: 0, Y: 100}, B: vec.Vec2{X: 200, Y: 100}},
			isErr: true,
		},
		{
			name:  "negative axes",
			e:     Ellipse{Origin: e.Origin, Axes: vec.Vec2{X: -10, Y: -10}},
			s:     Segment{A: vec.Vec2{X: 0, Y: 100}, B: vec.Vec2{X: 200, Y: 100}},
			isErr: true,
		},
		{
			name:  "NaN axis",
			e:     Ellipse{Origin: e.Origin, Axes: vec.Vec2{X: 20, Y: math.NaN()}},
			s:     Segment{A: vec.Vec2{X: 0, Y: 100}, B: vec.Vec2{X: 200, Y: 100}},
			isErr: true,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.e.IntersectsSegment(tc.s)
			if tc.isErr {
				if !errors.Is(err, ErrBadEllipse) {
					t.Fatalf("err = %v, want ErrBadEllipse", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got != tc.want {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestEllipseContains(t *testing.T) {
	c := Circle{Origin: vec.Vec2{X: 10, Y: 10}, Radius: 5}
	e := c.Ellipse()
	for _, tc := range []struct {
		p    vec.Vec2
		want bool
	}{
		{vec.Vec2{X: 10, Y: 10}, true},
		{vec.Vec2{X: 14.9, Y: 10}, true},
		{vec.Vec2{X: 14, Y: 14}, false},
		{vec.Vec2{X: 13, Y: 13}, true},
	} {
		got, err := e.Contains(tc.p)
		if err != nil {
			t.Fatal(err)
		}
		if got != tc.want {
			t.Errorf("Contains(%v) = %v, want %v", tc.p, got, tc.want)
		}
	}

	diff(t, rect.Rect{LLx: 5, LLy: 5, URx: 15, URy: 15}, e.BBox())

	neg := Ellipse{Origin: c.Origin, Axes: vec.Vec2{X: -10, Y: -4}}
	diff(t, rect.Rect{LLx: 5, LLy: 5, URx: 15, URy: 15}, neg.BBox())
}

func TestRects(t *testing.T) {
	r := PointRect(vec.Vec2{X: 1, Y: 2})
	if !IsZeroRect(r) {
		t.Error("point rect should be zero")
	}
	r = ExtendRect(r, vec.Vec2{X: -3, Y: 5})
	diff(t, rect.Rect{LLx: -3, LLy: 2, URx: 1, URy: 5}, r)
	r = PadRect(r, 1)
	diff(t, rect.Rect{LLx: -4, LLy: 1, URx: 2, URy: 6}, r)

	if !RectsIntersect(r, rect.Rect{LLx: 2, LLy: 6, URx: 10, URy: 10}) {
		t.Error("corner contact should intersect")
	}
	if RectsIntersect(r, rect.Rect{LLx: 2.1, LLy: 0, URx: 10, URy: 10}) {
		t.Error("disjoint rects should not intersect")
	}
	if !PointInRect(vec.Vec2{X: -4, Y: 6}, r) {
		t.Error("corner point should be inside")
	}
}

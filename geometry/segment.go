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
	"math"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// Segment is the line segment from A to B.
type Segment struct {
	A, B vec.Vec2
}

// BBox returns the smallest rectangle containing the segment.
func (s Segment) BBox() rect.Rect {
	return rect.Rect{
		LLx: min(s.A.X, s.B.X),
		LLy: min(s.A.Y, s.B.Y),
		URx: max(s.A.X, s.B.X),
		URy: max(s.A.Y, s.B.Y),
	}
}

// ClosestFactor returns f in [0, 1] such that A + f*(B-A) is the point of
// the segment closest to p. Zero-length segments return 0.
func (s Segment) ClosestFactor(p vec.Vec2) float64 {
	m := s.B.Sub(s.A)
	lm2 := m.Dot(m)
	if lm2 == 0 {
		return 0
	}
	f := p.Sub(s.A).Dot(m) / lm2
	return min(max(f, 0), 1)
}

// ClosestPoint returns the point of the segment closest to p.
func (s Segment) ClosestPoint(p vec.Vec2) vec.Vec2 {
	return Lerp(s.A, s.B, s.ClosestFactor(p))
}

// Intersect returns the crossing point of s and o.
// Parallel and collinear segments are reported as not intersecting.
func (s Segment) Intersect(o Segment) (vec.Vec2, bool) {
	s1 := s.B.Sub(s.A)
	s2 := o.B.Sub(o.A)

	d := Cross(s1, s2)
	if d == 0 {
		return vec.Vec2{}, false
	}

	w := s.A.Sub(o.A)

	// u is the parameter along o, t the parameter along s
	u := Cross(s1, w) / d
	if u < 0 || u > 1 {
		return vec.Vec2{}, false
	}
	t := Cross(s2, w) / d
	if t < 0 || t > 1 {
		return vec.Vec2{}, false
	}

	return s.A.Add(s1.Mul(t)), true
}

// UnevenCapsule is the union of all discs whose centre lies on Seg, with the
// radius interpolated linearly from RadiusA at Seg.A to RadiusB at Seg.B.
type UnevenCapsule struct {
	Seg              Segment
	RadiusA, RadiusB float64
}

// Distance returns the signed distance from p to the capsule boundary.
// Negative values mean that p is inside.
//
// The capsule is expected to satisfy RadiusA <= RadiusB.
func (c UnevenCapsule) Distance(p vec.Vec2) float64 {
	ra, rb := c.RadiusA, c.RadiusB

	p = p.Sub(c.Seg.A)
	pb := c.Seg.B.Sub(c.Seg.A)
	h := pb.Dot(pb)

	b := ra - rb
	if h <= b*b {
		// zero length, or one end circle contains the other
		if rb >= ra {
			return p.Sub(pb).Length() - rb
		}
		return p.Length() - ra
	}

	// q is p in the capsule frame (x across, y along), scaled by 1/h and
	// folded onto the positive x half-plane
	q := vec.Vec2{
		X: math.Abs(p.X*pb.Y-p.Y*pb.X) / h,
		Y: p.Dot(pb) / h,
	}

	cv := vec.Vec2{X: math.Sqrt(h - b*b), Y: b}
	k := Cross(cv, q)
	switch {
	case k < 0:
		return math.Sqrt(h*q.Dot(q)) - ra
	case k > cv.X:
		return math.Sqrt(h*(q.Dot(q)+1-2*q.Y)) - rb
	default:
		return cv.Dot(q) - ra
	}
}

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
	"math"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/laser"
)

// Outline returns the outlines of the segment capsules as a path, using
// the current CTM, Flatness and Cap settings of r.  All polygons are
// traversed in the same rotational direction, so the path can be filled
// with the nonzero winding rule.
func (r *Rasterizer) Outline(segs []laser.Segment) *path.Data {
	r.buildOutlines(segs)

	p := &path.Data{}
	for i, start := range r.outlineOffsets {
		end := len(r.outline)
		if i+1 < len(r.outlineOffsets) {
			end = r.outlineOffsets[i+1]
		}
		poly := r.outline[start:end]
		p.MoveTo(poly[0])
		for _, v := range poly[1:] {
			p.LineTo(v)
		}
		p.Close()
	}
	return p
}

// buildOutlines replaces the outline buffer with one polygon per segment.
func (r *Rasterizer) buildOutlines(segs []laser.Segment) {
	r.outline = r.outline[:0]
	r.outlineOffsets = r.outlineOffsets[:0]

	for i := range segs {
		start := len(r.outline)
		r.addCapsule(&segs[i])
		if len(r.outline)-start < 3 {
			r.outline = r.outline[:start]
			continue
		}
		r.outlineOffsets = append(r.outlineOffsets, start)
	}
}

// addCapsule appends the outline of one segment.
//
// With round ends the outline consists of the two outer tangents of the end
// circles, joined by arcs around the far side of each circle.  The polygon
// always turns clockwise (in a y-up frame).
func (r *Rasterizer) addCapsule(s *laser.Segment) {
	ra := s.WidthA / 2
	rb := s.WidthB / 2
	if ra <= 0 && rb <= 0 {
		return
	}

	ab := s.B.Sub(s.A)
	d := ab.Length()

	if r.Cap == graphics.LineCapRound && d <= math.Abs(rb-ra) {
		// one end circle contains the other
		if ra > rb {
			r.addArc(s.A, ra, vec.Vec2{X: 1}, -2*math.Pi)
		} else {
			r.addArc(s.B, rb, vec.Vec2{X: 1}, -2*math.Pi)
		}
		r.closeArc()
		return
	}
	if d < zeroLengthThreshold {
		// butt and square ends have no direction to work with
		return
	}

	u := ab.Mul(1 / d)
	n := vec.Vec2{X: -u.Y, Y: u.X}

	switch r.Cap {
	case graphics.LineCapRound:
		// w1 and w2 are the unit normals of the two tangent lines
		c := (ra - rb) / d
		phi := math.Acos(c)
		sn := math.Sqrt(1 - c*c)
		w1 := u.Mul(c).Add(n.Mul(sn))
		w2 := u.Mul(c).Sub(n.Mul(sn))

		r.outline = append(r.outline, s.A.Add(w1.Mul(ra)))
		r.addArc(s.B, rb, w1, -2*phi)
		r.addArc(s.A, ra, w2, -(2*math.Pi - 2*phi))
		r.closeArc()

	case graphics.LineCapSquare:
		a := s.A.Sub(u.Mul(ra))
		b := s.B.Add(u.Mul(rb))
		r.outline = append(r.outline,
			a.Add(n.Mul(ra)), b.Add(n.Mul(rb)),
			b.Sub(n.Mul(rb)), a.Sub(n.Mul(ra)))

	default:
		r.outline = append(r.outline,
			s.A.Add(n.Mul(ra)), s.B.Add(n.Mul(rb)),
			s.B.Sub(n.Mul(rb)), s.A.Sub(n.Mul(ra)))
	}
}

// closeArc drops the last vertex of a polygon made of full arcs, which
// coincides with its first vertex.
func (r *Rasterizer) closeArc() {
	r.outline = r.outline[:len(r.outline)-1]
}

// addArc appends the vertices of a circular arc.  startDir is the unit
// vector from the centre to the start of the arc, and sweep is the sweep
// angle in radians.  Both end points are included.
func (r *Rasterizer) addArc(center vec.Vec2, radius float64, startDir vec.Vec2, sweep float64) {
	devRadius := max(
		r.transformLinear(vec.Vec2{X: radius}).Length(),
		r.transformLinear(vec.Vec2{Y: radius}).Length())

	n := 1
	if devRadius >= r.Flatness {
		// a chord spanning angle θ deviates from the arc by r(1-cos(θ/2))
		step := 2 * math.Acos(1-r.Flatness/devRadius)
		if step <= 0 || math.IsNaN(step) {
			step = math.Pi / 4
		}
		n = max(int(math.Ceil(math.Abs(sweep)/step)), 1)
	}

	dt := sweep / float64(n)
	for i := 0; i <= n; i++ {
		sin, cos := math.Sincos(float64(i) * dt)
		dir := vec.Vec2{
			X: startDir.X*cos - startDir.Y*sin,
			Y: startDir.X*sin + startDir.Y*cos,
		}
		r.outline = append(r.outline, center.Add(dir.Mul(radius)))
	}
}

const (
	// zeroLengthThreshold is the shortest segment which has a direction.
	zeroLengthThreshold = 1e-10
)

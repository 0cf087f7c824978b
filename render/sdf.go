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

	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/laser"
	"seehuhn.de/go/laser/geometry"
)

var _ sdf.SDF2 = (*ChainSDF)(nil)

// ChainSDF is the signed distance field of a segment chain, i.e. of the
// union of the uneven capsules of its segments.
type ChainSDF struct {
	caps []geometry.UnevenCapsule
	bb   sdf.Box2
}

// NewChainSDF returns the distance field of segs.  The segments are copied,
// so the result stays valid after the next frame.  NewChainSDF returns nil
// if segs is empty.
func NewChainSDF(segs []laser.Segment) *ChainSDF {
	if len(segs) == 0 {
		return nil
	}

	c := &ChainSDF{
		caps: make([]geometry.UnevenCapsule, len(segs)),
	}
	for i := range segs {
		s := &segs[i]
		c.caps[i] = geometry.UnevenCapsule{
			Seg:     s.Line(),
			RadiusA: s.WidthA / 2,
			RadiusB: s.WidthB / 2,
		}

		r := max(s.WidthA, s.WidthB) / 2
		bb := sdf.Box2{
			Min: v2.Vec{X: min(s.A.X, s.B.X) - r, Y: min(s.A.Y, s.B.Y) - r},
			Max: v2.Vec{X: max(s.A.X, s.B.X) + r, Y: max(s.A.Y, s.B.Y) + r},
		}
		if i == 0 {
			c.bb = bb
			continue
		}
		c.bb.Min.X = min(c.bb.Min.X, bb.Min.X)
		c.bb.Min.Y = min(c.bb.Min.Y, bb.Min.Y)
		c.bb.Max.X = max(c.bb.Max.X, bb.Max.X)
		c.bb.Max.Y = max(c.bb.Max.Y, bb.Max.Y)
	}
	return c
}

// Evaluate returns the signed distance from p to the chain.
func (c *ChainSDF) Evaluate(p v2.Vec) float64 {
	q := vec.Vec2{X: p.X, Y: p.Y}
	d := math.Inf(1)
	for i := range c.caps {
		d = min(d, c.caps[i].Distance(q))
	}
	return d
}

// BoundingBox returns the bounding box of the chain.
func (c *ChainSDF) BoundingBox() sdf.Box2 {
	return c.bb
}

// SystemSDF returns the union of the distance fields of all lasers of s
// which have segments in the current frame, or nil if there are none.
func SystemSDF(s *laser.System) sdf.SDF2 {
	var parts []sdf.SDF2
	for _, l := range s.Lasers() {
		if c := NewChainSDF(s.Segments(l)); c != nil {
			parts = append(parts, c)
		}
	}
	switch len(parts) {
	case 0:
		return nil
	case 1:
		return parts[0]
	default:
		return sdf.Union2D(parts...)
	}
}

// Sample converts a distance field to pixel coverage by evaluating it at
// the pixel centres within clip.  A pixel whose centre lies on the
// boundary gets coverage 0.5, and coverage changes linearly over one pixel
// width.  The distance field is given in device coordinates.
func Sample(f sdf.SDF2, clip rect.Rect, emit EmitFunc) {
	if f == nil {
		return
	}

	bb := f.BoundingBox()
	xMin := max(int(math.Floor(bb.Min.X)), int(clip.LLx))
	xMax := min(int(math.Floor(bb.Max.X))+1, int(clip.URx))
	yMin := max(int(math.Floor(bb.Min.Y)), int(clip.LLy))
	yMax := min(int(math.Floor(bb.Max.Y))+1, int(clip.URy))
	if xMin >= xMax || yMin >= yMax {
		return
	}

	row := make([]float32, xMax-xMin)
	for y := yMin; y < yMax; y++ {
		for i := range row {
			p := v2.Vec{X: float64(xMin+i) + 0.5, Y: float64(y) + 0.5}
			row[i] = float32(min(max(0.5-f.Evaluate(p), 0), 1))
		}
		if trimmed, offset := trimZeros(row); trimmed != nil {
			emit(y, xMin+offset, trimmed)
		}
	}
}

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

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// ErrBadEllipse is returned for ellipses with a non-positive, infinite or
// NaN axis.
var ErrBadEllipse = errors.New("geometry: malformed ellipse axes")

// Ellipse is an ellipse centred at Origin.
// Axes holds the full diameters along the ellipse's own x and y axes,
// and Angle is the rotation of these axes in radians.
type Ellipse struct {
	Origin vec.Vec2
	Axes   vec.Vec2
	Angle  float64
}

// Circle is a disc of the given radius.
type Circle struct {
	Origin vec.Vec2
	Radius float64
}

// Ellipse returns the circle as an ellipse with equal axes.
func (c Circle) Ellipse() Ellipse {
	d := 2 * c.Radius
	return Ellipse{Origin: c.Origin, Axes: vec.Vec2{X: d, Y: d}}
}

// BBox returns a square which contains the ellipse for every rotation angle.
func (e Ellipse) BBox() rect.Rect {
	r := max(math.Abs(e.Axes.X), math.Abs(e.Axes.Y)) / 2
	return PadRect(PointRect(e.Origin), r)
}

func (e Ellipse) valid() bool {
	for _, a := range []float64{e.Axes.X, e.Axes.Y} {
		if !(a > 0) || math.IsInf(a, 0) {
			return false
		}
	}
	return true
}

// UnitCircleMap returns the affine map which takes the ellipse onto the unit
// circle centred at the origin.
func (e Ellipse) UnitCircleMap() (matrix.Matrix, error) {
	if !e.valid() {
		return matrix.Matrix{}, ErrBadEllipse
	}

	sx := 2 / e.Axes.X
	sy := 2 / e.Axes.Y
	sin, cos := math.Sincos(e.Angle)

	// rotate by -Angle around Origin, then scale
	m := matrix.Matrix{
		sx * cos, -sy * sin,
		sx * sin, sy * cos,
		0, 0,
	}
	o := apply(m, e.Origin)
	m[4] = -o.X
	m[5] = -o.Y
	return m, nil
}

// Contains reports whether p lies inside the ellipse or on its boundary.
func (e Ellipse) Contains(p vec.Vec2) (bool, error) {
	m, err := e.UnitCircleMap()
	if err != nil {
		return false, err
	}
	q := apply(m, p)
	return q.Dot(q) <= 1, nil
}

// IntersectsSegment reports whether the segment s touches the ellipse.
//
// Segments whose bounding box misses the bounding square of the ellipse
// are rejected before the axes are checked.
func (e Ellipse) IntersectsSegment(s Segment) (bool, error) {
	if !RectsIntersect(s.BBox(), e.BBox()) {
		return false, nil
	}

	m, err := e.UnitCircleMap()
	if err != nil {
		return false, err
	}

	t := Segment{A: apply(m, s.A), B: apply(m, s.B)}
	c := t.ClosestPoint(vec.Vec2{})
	return c.Dot(c) <= 1, nil
}

// apply returns the image of p under m.
func apply(m matrix.Matrix, p vec.Vec2) vec.Vec2 {
	return vec.Vec2{
		X: m[0]*p.X + m[2]*p.Y + m[4],
		Y: m[1]*p.X + m[3]*p.Y + m[5],
	}
}

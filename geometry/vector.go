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

// Package geometry implements the stateless 2D primitives used by the laser
// engine: line segments, uneven capsules, ellipses and axis-aligned
// rectangles.
//
// The coordinate system is y-down. For a [rect.Rect], LLx/LLy hold the
// minimum coordinates (left/top) and URx/URy the maximum coordinates
// (right/bottom).
package geometry

import (
	"math"

	"seehuhn.de/go/geom/vec"
)

// Lerp returns a + f*(b-a).
func Lerp(a, b vec.Vec2, f float64) vec.Vec2 {
	return a.Add(b.Sub(a).Mul(f))
}

// Cross returns the z component of the cross product a × b.
func Cross(a, b vec.Vec2) float64 {
	return a.X*b.Y - a.Y*b.X
}

// Normalize returns v scaled to unit length.
// The zero vector is returned unchanged.
func Normalize(v vec.Vec2) vec.Vec2 {
	l := v.Length()
	if l == 0 {
		return v
	}
	return v.Mul(1 / l)
}

// Dir returns the unit vector at the given angle (radians, measured from
// the positive x axis towards the positive y axis).
func Dir(angle float64) vec.Vec2 {
	sin, cos := math.Sincos(angle)
	return vec.Vec2{X: cos, Y: sin}
}

// Angle returns the angle of v, as used by [Dir].
func Angle(v vec.Vec2) float64 {
	return math.Atan2(v.Y, v.X)
}

// CMul returns the product of a and b, interpreted as complex numbers.
// Multiplying by a unit vector rotates.
func CMul(a, b vec.Vec2) vec.Vec2 {
	return vec.Vec2{
		X: a.X*b.X - a.Y*b.Y,
		Y: a.X*b.Y + a.Y*b.X,
	}
}

// IsFinite reports whether both coordinates of v are finite.
func IsFinite(v vec.Vec2) bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) &&
		!math.IsNaN(v.Y) && !math.IsInf(v.Y, 0)
}

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
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// PointRect returns the zero-area rectangle containing only p.
func PointRect(p vec.Vec2) rect.Rect {
	return rect.Rect{LLx: p.X, LLy: p.Y, URx: p.X, URy: p.Y}
}

// ExtendRect grows r so that it contains p.
func ExtendRect(r rect.Rect, p vec.Vec2) rect.Rect {
	r.LLx = min(r.LLx, p.X)
	r.LLy = min(r.LLy, p.Y)
	r.URx = max(r.URx, p.X)
	r.URy = max(r.URy, p.Y)
	return r
}

// PadRect moves every edge of r outwards by d.
func PadRect(r rect.Rect, d float64) rect.Rect {
	return rect.Rect{LLx: r.LLx - d, LLy: r.LLy - d, URx: r.URx + d, URy: r.URy + d}
}

// PointInRect reports whether p lies inside r, edges included.
func PointInRect(p vec.Vec2, r rect.Rect) bool {
	return p.X >= r.LLx && p.X <= r.URx && p.Y >= r.LLy && p.Y <= r.URy
}

// RectsIntersect reports whether a and b overlap.
// Rectangles which only share an edge or a corner count as intersecting.
func RectsIntersect(a, b rect.Rect) bool {
	return !(a.URy < b.LLy || a.LLy > b.URy || a.LLx > b.URx || a.URx < b.LLx)
}

// IsZeroRect reports whether r has zero width and zero height.
func IsZeroRect(r rect.Rect) bool {
	return r.LLx == r.URx && r.LLy == r.URy
}

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
	"cmp"
	"math"
	"slices"
)

// Coverage accumulation model:
//
// For each pixel we track two values:
//   cover: signed vertical extent of the edges crossing the pixel
//   area:  the same extent, weighted by the distance of the crossing from
//          the right pixel border
//
// A scanline is integrated from left to right:
//   pixel_coverage = accumulated_cover + area[i]
//   accumulated_cover += cover[i]
//
// This gives the signed area of the polygons within each pixel.  The
// nonzero rule clamps the absolute value to [0, 1], so overlapping
// capsules of the same orientation are painted once.

// accumulateEdge adds the contribution of e within scanline y to the cover
// and area buffers, which are indexed by x - bboxXMin.
func (r *Rasterizer) accumulateEdge(e *edge, y int, cover, area []float32, bboxXMin, bboxXMax int) {
	yTop := max(float64(y), min(e.y0, e.y1))
	yBot := min(float64(y+1), max(e.y0, e.y1))
	if yBot <= yTop {
		return
	}

	sign := float32(1)
	if e.y1 < e.y0 {
		sign = -1
	}

	xLeft := e.x0 + e.dxdy*(yTop-e.y0)
	xRight := e.x0 + e.dxdy*(yBot-e.y0)
	if xLeft > xRight {
		xLeft, xRight = xRight, xLeft
	}
	pixLeft := int(math.Floor(xLeft))
	pixRight := int(math.Floor(xRight))

	if pixRight < bboxXMin {
		// entirely left of the box: full coverage for the whole row
		v := sign * float32(yBot-yTop)
		cover[0] += v
		area[0] += v
		return
	}
	if pixLeft >= bboxXMax {
		return
	}

	if pixLeft == pixRight {
		r.accumulatePiece(e, yTop, yBot, sign, pixLeft, cover, area, bboxXMin, bboxXMax)
		return
	}

	// split the edge where it crosses pixel columns
	dydx := 1 / e.dxdy
	r.crossings = append(r.crossings[:0], yTop, yBot)
	for x := pixLeft + 1; x <= pixRight; x++ {
		yAtX := e.y0 + dydx*(float64(x)-e.x0)
		if yAtX > yTop && yAtX < yBot {
			r.crossings = append(r.crossings, yAtX)
		}
	}
	slices.Sort(r.crossings)

	for i := range len(r.crossings) - 1 {
		y0, y1 := r.crossings[i], r.crossings[i+1]
		if y1 <= y0 {
			continue
		}
		yMid := (y0 + y1) / 2
		pix := int(math.Floor(e.x0 + e.dxdy*(yMid-e.y0)))
		r.accumulatePiece(e, y0, y1, sign, pix, cover, area, bboxXMin, bboxXMax)
	}
}

// accumulatePiece handles the part of an edge between yTop and yBot, which
// lies within pixel column pix.
func (r *Rasterizer) accumulatePiece(e *edge, yTop, yBot float64, sign float32, pix int, cover, area []float32, bboxXMin, bboxXMax int) {
	v := sign * float32(yBot-yTop)
	if pix < bboxXMin {
		cover[0] += v
		area[0] += v
		return
	}
	if pix >= bboxXMax {
		return
	}

	yMid := (yTop + yBot) / 2
	xFrac := e.x0 + e.dxdy*(yMid-e.y0) - float64(pix)

	idx := pix - bboxXMin
	cover[idx] += v
	area[idx] += v * float32(1-xFrac)
}

// integrateScanline converts accumulated cover and area values to
// coverage, using the nonzero winding rule.  The result is stored in cover.
func integrateScanline(cover, area []float32) {
	var accum float32
	for i := range cover {
		raw := accum + area[i]
		accum += cover[i]

		if raw < 0 {
			raw = -raw
		}
		cover[i] = min(raw, 1)
	}
}

// trimZeros returns the non-zero part of coverage and its offset.
func trimZeros(coverage []float32) (trimmed []float32, offset int) {
	n := len(coverage)
	lo := 0
	for lo < n && coverage[lo] == 0 {
		lo++
	}
	if lo == n {
		return nil, 0
	}
	hi := n - 1
	for hi > lo && coverage[hi] == 0 {
		hi--
	}
	return coverage[lo : hi+1], lo
}

// scanlineRange returns the x index, relative to xMin, where e crosses the
// middle of its extent within scanline y.
func scanlineRange(e *edge, y, xMin, xMax int) (int, bool) {
	yTop := max(float64(y), min(e.y0, e.y1))
	yBot := min(float64(y+1), max(e.y0, e.y1))
	if yBot <= yTop {
		return 0, false
	}
	yMid := (yTop + yBot) / 2
	x := int(math.Floor(e.x0 + e.dxdy*(yMid-e.y0)))
	x = min(max(x, xMin), xMax-1)
	return x - xMin, true
}

// fillSmall rasterizes the collected edges using one buffer row per
// scanline of the bounding box.
func (r *Rasterizer) fillSmall(xMin, xMax, yMin, yMax int, emit EmitFunc) {
	width := xMax - xMin
	height := yMax - yMin

	size := width * height
	r.cover = slices.Grow(r.cover[:0], size)[:size]
	r.area = slices.Grow(r.area[:0], size)[:size]
	clear(r.cover)
	clear(r.area)

	r.rowXMin = slices.Grow(r.rowXMin[:0], height)[:height]
	r.rowXMax = slices.Grow(r.rowXMax[:0], height)[:height]
	for i := range r.rowXMin {
		r.rowXMin[i] = width
		r.rowXMax[i] = -1
	}

	for i := range r.edges {
		e := &r.edges[i]

		lo := max(int(math.Floor(min(e.y0, e.y1))), yMin)
		hi := min(int(math.Floor(max(e.y0, e.y1)))+1, yMax)
		for y := lo; y < hi; y++ {
			row := y - yMin
			ofs := row * width
			r.accumulateEdge(e, y, r.cover[ofs:ofs+width], r.area[ofs:ofs+width], xMin, xMax)

			if x, ok := scanlineRange(e, y, xMin, xMax); ok {
				r.rowXMin[row] = min(r.rowXMin[row], x)
				r.rowXMax[row] = max(r.rowXMax[row], x)
			}
		}
	}

	for row := range height {
		if r.rowXMax[row] < 0 {
			continue
		}
		ofs := row * width
		coverage := r.cover[ofs : ofs+width]
		integrateScanline(coverage, r.area[ofs:ofs+width])
		if trimmed, offset := trimZeros(coverage); trimmed != nil {
			emit(yMin+row, xMin+offset, trimmed)
		}
	}
}

// fillLarge rasterizes the collected edges one scanline at a time, using
// an active edge list.
func (r *Rasterizer) fillLarge(xMin, xMax, yMin, yMax int, emit EmitFunc) {
	width := xMax - xMin
	r.cover = slices.Grow(r.cover[:0], width)[:width]
	r.area = slices.Grow(r.area[:0], width)[:width]

	slices.SortFunc(r.edges, func(a, b edge) int {
		return cmp.Compare(min(a.y0, a.y1), min(b.y0, b.y1))
	})

	r.activeIdx = r.activeIdx[:0]
	next := 0
	for y := yMin; y < yMax; y++ {
		yf := float64(y)

		for next < len(r.edges) && min(r.edges[next].y0, r.edges[next].y1) < yf+1 {
			r.activeIdx = append(r.activeIdx, next)
			next++
		}
		if len(r.activeIdx) == 0 {
			continue
		}

		clear(r.cover)
		clear(r.area)

		touched := false
		for i := 0; i < len(r.activeIdx); {
			e := &r.edges[r.activeIdx[i]]
			if max(e.y0, e.y1) <= yf {
				last := len(r.activeIdx) - 1
				r.activeIdx[i] = r.activeIdx[last]
				r.activeIdx = r.activeIdx[:last]
				continue
			}

			r.accumulateEdge(e, y, r.cover, r.area, xMin, xMax)
			if _, ok := scanlineRange(e, y, xMin, xMax); ok {
				touched = true
			}
			i++
		}
		if !touched {
			continue
		}

		integrateScanline(r.cover, r.area)
		if trimmed, offset := trimZeros(r.cover); trimmed != nil {
			emit(y, xMin+offset, trimmed)
		}
	}
}

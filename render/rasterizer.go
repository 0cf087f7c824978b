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

// Package render turns the quantized segments of a laser system into pixel
// coverage.
//
// Two consumers of the segment arena are provided. [Rasterizer] fills the
// polygonal outlines of the segment capsules with exact area coverage.
// [ChainSDF] exposes a segment chain as a signed distance field, which
// [Sample] converts to coverage by evaluating it at the pixel centres.
// Both deliver their output row by row through the same emit callback.
package render

import (
	"math"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/laser"
)

// EmitFunc receives the coverage of one pixel row. The first entry of
// coverage belongs to pixel (xMin, y). The slice is only valid for the
// duration of the call.
type EmitFunc func(y, xMin int, coverage []float32)

// edge is a polygon edge in device coordinates.
type edge struct {
	x0, y0 float64
	x1, y1 float64
	dxdy   float64 // (x1-x0)/(y1-y0)
}

// Rasterizer converts laser segments to pixel coverage.
// The caller creates one instance and reuses it for every frame.
// Internal buffers grow as needed but never shrink.
type Rasterizer struct {
	// CTM maps world coordinates to device coordinates.
	// Must be a non-singular matrix.
	CTM matrix.Matrix

	// Clip defines the output region in device coordinates.
	// Must be a non-empty rectangle with integer-aligned coordinates.
	Clip rect.Rect

	// Flatness is the tolerance, in device pixels, used when approximating
	// the round ends of the capsules by polygons.  Must be > 0.
	Flatness float64

	// Cap selects the shape of the segment ends.  LineCapRound gives the
	// uneven capsules used for collision detection, LineCapButt gives the
	// trapezoid between the two end circles, and LineCapSquare extends the
	// trapezoid by the end radius in both directions.
	Cap graphics.LineCapStyle

	// smallPathThreshold is the maximum bounding box area (in pixels) for
	// which 2D buffers are used.  Larger outlines use an active edge list.
	smallPathThreshold int

	cover     []float32
	area      []float32
	edges     []edge
	activeIdx []int
	rowXMin   []int
	rowXMax   []int
	crossings []float64

	// capsule outlines, all polygons contiguous
	outline        []vec.Vec2
	outlineOffsets []int

	edgeBBoxFirst bool
	edgeDevXMin   float64
	edgeDevXMax   float64
	edgeDevYMin   float64
	edgeDevYMax   float64
}

// NewRasterizer creates a new Rasterizer with the given clip rectangle,
// the identity CTM and round segment ends.
func NewRasterizer(clip rect.Rect) *Rasterizer {
	return &Rasterizer{
		CTM:      matrix.Identity,
		Clip:     clip,
		Flatness: defaultFlatness,
		Cap:      graphics.LineCapRound,

		smallPathThreshold: smallPathThreshold,
	}
}

// Reset restores the default parameters with a new clip rectangle,
// keeping the capacity of the internal buffers.
func (r *Rasterizer) Reset(clip rect.Rect) {
	r.CTM = matrix.Identity
	r.Clip = clip
	r.Flatness = defaultFlatness
	r.Cap = graphics.LineCapRound

	r.cover = r.cover[:0]
	r.area = r.area[:0]
	r.edges = r.edges[:0]
	r.activeIdx = r.activeIdx[:0]
	r.rowXMin = r.rowXMin[:0]
	r.rowXMax = r.rowXMax[:0]
	r.crossings = r.crossings[:0]
	r.outline = r.outline[:0]
	r.outlineOffsets = r.outlineOffsets[:0]
}

// FillSegments rasterizes the union of the segment capsules.
// Overlapping capsules are painted once.
func (r *Rasterizer) FillSegments(segs []laser.Segment, emit EmitFunc) {
	r.buildOutlines(segs)
	if len(r.outlineOffsets) == 0 {
		return
	}
	xMin, xMax, yMin, yMax, ok := r.collectOutlineEdges()
	if !ok {
		return
	}
	r.fillEdges(xMin, xMax, yMin, yMax, emit)
}

// FillNonZero rasterizes a polygonal path using the nonzero winding rule.
// Curve segments are not supported and are replaced by straight lines
// to their end points.
func (r *Rasterizer) FillNonZero(p *path.Data, emit EmitFunc) {
	xMin, xMax, yMin, yMax, ok := r.collectPathEdges(p)
	if !ok {
		return
	}
	r.fillEdges(xMin, xMax, yMin, yMax, emit)
}

func (r *Rasterizer) fillEdges(xMin, xMax, yMin, yMax int, emit EmitFunc) {
	width := xMax - xMin
	height := yMax - yMin
	if width*height < r.smallPathThreshold {
		r.fillSmall(xMin, xMax, yMin, yMax, emit)
	} else {
		r.fillLarge(xMin, xMax, yMin, yMax, emit)
	}
}

// transformLinear applies the 2×2 linear part of the CTM to a vector.
func (r *Rasterizer) transformLinear(v vec.Vec2) vec.Vec2 {
	return vec.Vec2{
		X: r.CTM[0]*v.X + r.CTM[2]*v.Y,
		Y: r.CTM[1]*v.X + r.CTM[3]*v.Y,
	}
}

// collectPathEdges walks the path and builds the edge list.
func (r *Rasterizer) collectPathEdges(p *path.Data) (xMin, xMax, yMin, yMax int, ok bool) {
	r.startEdges()

	var current, subpath vec.Vec2
	coordIdx := 0
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			if current != subpath {
				r.addEdge(current, subpath)
			}
			current = p.Coords[coordIdx]
			subpath = current
			coordIdx++
		case path.CmdLineTo:
			r.addEdge(current, p.Coords[coordIdx])
			current = p.Coords[coordIdx]
			coordIdx++
		case path.CmdQuadTo:
			r.addEdge(current, p.Coords[coordIdx+1])
			current = p.Coords[coordIdx+1]
			coordIdx += 2
		case path.CmdCubeTo:
			r.addEdge(current, p.Coords[coordIdx+2])
			current = p.Coords[coordIdx+2]
			coordIdx += 3
		case path.CmdClose:
			if current != subpath {
				r.addEdge(current, subpath)
			}
			current = subpath
		}
	}
	// fills close open subpaths implicitly
	if current != subpath {
		r.addEdge(current, subpath)
	}

	return r.edgeBounds()
}

// collectOutlineEdges builds the edge list from the capsule outlines.
func (r *Rasterizer) collectOutlineEdges() (xMin, xMax, yMin, yMax int, ok bool) {
	r.startEdges()

	for i, start := range r.outlineOffsets {
		end := len(r.outline)
		if i+1 < len(r.outlineOffsets) {
			end = r.outlineOffsets[i+1]
		}
		poly := r.outline[start:end]
		if len(poly) < 3 {
			continue
		}
		for j := 1; j < len(poly); j++ {
			r.addEdge(poly[j-1], poly[j])
		}
		r.addEdge(poly[len(poly)-1], poly[0])
	}

	return r.edgeBounds()
}

func (r *Rasterizer) startEdges() {
	r.edges = r.edges[:0]
	r.edgeBBoxFirst = true
}

// edgeBounds returns the bounding box of the collected edges in device
// coordinates, clamped to the clip rectangle.
func (r *Rasterizer) edgeBounds() (xMin, xMax, yMin, yMax int, ok bool) {
	if len(r.edges) == 0 {
		return 0, 0, 0, 0, false
	}

	xMin = max(int(math.Floor(r.edgeDevXMin)), int(r.Clip.LLx))
	xMax = min(int(math.Floor(r.edgeDevXMax))+1, int(r.Clip.URx))
	yMin = max(int(math.Floor(r.edgeDevYMin)), int(r.Clip.LLy))
	yMax = min(int(math.Floor(r.edgeDevYMax))+1, int(r.Clip.URy))
	if xMin >= xMax || yMin >= yMax {
		return 0, 0, 0, 0, false
	}
	return xMin, xMax, yMin, yMax, true
}

// addEdge adds an edge given in world coordinates.
func (r *Rasterizer) addEdge(p0, p1 vec.Vec2) {
	dx0 := r.CTM[0]*p0.X + r.CTM[2]*p0.Y + r.CTM[4]
	dy0 := r.CTM[1]*p0.X + r.CTM[3]*p0.Y + r.CTM[5]
	dx1 := r.CTM[0]*p1.X + r.CTM[2]*p1.Y + r.CTM[4]
	dy1 := r.CTM[1]*p1.X + r.CTM[3]*p1.Y + r.CTM[5]

	dy := dy1 - dy0
	if dy > -horizontalEdgeThreshold && dy < horizontalEdgeThreshold {
		return
	}

	r.edges = append(r.edges, edge{
		x0: dx0, y0: dy0,
		x1: dx1, y1: dy1,
		dxdy: (dx1 - dx0) / dy,
	})

	if r.edgeBBoxFirst {
		r.edgeDevXMin = min(dx0, dx1)
		r.edgeDevXMax = max(dx0, dx1)
		r.edgeDevYMin = min(dy0, dy1)
		r.edgeDevYMax = max(dy0, dy1)
		r.edgeBBoxFirst = false
	} else {
		r.edgeDevXMin = min(r.edgeDevXMin, dx0, dx1)
		r.edgeDevXMax = max(r.edgeDevXMax, dx0, dx1)
		r.edgeDevYMin = min(r.edgeDevYMin, dy0, dy1)
		r.edgeDevYMax = max(r.edgeDevYMax, dy0, dy1)
	}
}

const (
	// defaultFlatness is the default arc tolerance in device pixels.
	defaultFlatness = 0.25

	// horizontalEdgeThreshold is the minimum vertical extent for an edge
	// to contribute to coverage.
	horizontalEdgeThreshold = 1e-10

	// smallPathThreshold is the largest bounding box area, in pixels, for
	// which the 2D buffers are used.
	smallPathThreshold = 65536
)

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

package laser

import (
	"seehuhn.de/go/geom/vec"
)

// TraceSample is a point visited by [Trace].
//
// Segment points to a copy of the current segment, in curve order. The copy
// is only valid during the callback.
type TraceSample struct {
	Segment *Segment
	Pos     vec.Vec2

	// Param is the position of Pos within Segment, from 0 at A to 1 at B.
	Param float64

	// Discontinuous is set for the first sample of each connected run of
	// segments.
	Discontinuous bool
}

// Width returns the laser width at the sample position.
func (ts *TraceSample) Width() float64 {
	return lerp(ts.Segment.WidthA, ts.Segment.WidthB, ts.Param)
}

// Time returns the curve time at the sample position, in the
// convention of [Segment].
func (ts *TraceSample) Time() float64 {
	return lerp(ts.Segment.TimeA, ts.Segment.TimeB, ts.Param)
}

// Trace walks along the quantized segments of l and calls fn at every
// multiple of step arc length, as well as at the start of every connected
// run of segments. Arc length left over at the end of one segment carries
// over to the next one.
//
// If fn returns true, the walk stops and the result of fn is returned.
// Otherwise Trace returns the zero value and false.
//
// Segments which were flipped to normalize their width order are visited in
// their original direction, where this can be detected from the connectivity
// of the chain.  At the start of a connected run the following segment
// decides the direction.
func Trace[R any](l *Laser, step float64, fn func(*TraceSample) (R, bool)) (R, bool) {
	var zero R
	segs := l.sys.Segments(l)
	if len(segs) == 0 || !(step > 0) {
		return zero, false
	}

	var ts TraceSample
	var p, prevEnd vec.Vec2
	var accum float64
	first := true

	for i := range segs {
		seg := segs[i]
		start := first || (prevEnd != seg.A && prevEnd != seg.B)
		switch {
		case start:
			if i+1 < len(segs) && joinsAtA(&seg, &segs[i+1]) {
				seg.flip()
			}
		case prevEnd != seg.A:
			seg.flip()
		}

		ts.Segment = &seg
		ts.Param = 0

		if start {
			p = seg.A
			accum = 0
			ts.Discontinuous = true
			ts.Pos = p
			if r, ok := fn(&ts); ok {
				return r, true
			}
			ts.Discontinuous = false
		}

		v := seg.B.Sub(seg.A)
		length := v.Length()
		if length > 0 {
			inv := 1 / length
			dir := v.Mul(inv)
			for rest := length; rest > 0; {
				d := min(rest, step-accum)
				accum += d
				ts.Param += d * inv
				p = p.Add(dir.Mul(d))
				rest -= d

				if accum >= step {
					accum -= step
					ts.Pos = p
					if r, ok := fn(&ts); ok {
						return r, true
					}
				}
			}
		}

		prevEnd = seg.B
		first = false
	}

	return zero, false
}

// joinsAtA reports whether seg connects to next through its A end only,
// i.e. whether seg is stored reversed.
func joinsAtA(seg, next *Segment) bool {
	atA := seg.A == next.A || seg.A == next.B
	atB := seg.B == next.A || seg.B == next.B
	return atA && !atB
}

func lerp(a, b, f float64) float64 {
	return a + (b-a)*f
}

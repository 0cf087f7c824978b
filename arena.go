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
	"errors"

	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/laser/geometry"
)

// ErrArenaFull is returned when the segments of one frame exceed
// [Config.MaxSegments].
var ErrArenaFull = errors.New("laser: segment arena full")

// Segment is a piece of a quantized laser: a capsule whose width changes
// linearly from WidthA at A to WidthB at B.
//
// Segments are stored with WidthA <= WidthB. TimeA and TimeB hold the
// negated curve time of the endpoints, measured from the start of the
// visible part of the curve.
type Segment struct {
	A, B           vec.Vec2
	WidthA, WidthB float64
	TimeA, TimeB   float64
}

// flip swaps the two ends of the segment.
func (s *Segment) flip() {
	s.A, s.B = s.B, s.A
	s.WidthA, s.WidthB = s.WidthB, s.WidthA
	s.TimeA, s.TimeB = s.TimeB, s.TimeA
}

// Line returns the centre line of the segment.
func (s *Segment) Line() geometry.Segment {
	return geometry.Segment{A: s.A, B: s.B}
}

// arena holds the segments of all lasers for the current frame.
// The buffer grows as needed but never shrinks.
type arena struct {
	segs []Segment
	max  int
}

// reset discards all segments.
func (a *arena) reset() {
	a.segs = a.segs[:0]
}

func (a *arena) len() int {
	return len(a.segs)
}

// add appends s, with the width order normalized.
func (a *arena) add(s Segment) error {
	if a.max > 0 && len(a.segs) >= a.max {
		return ErrArenaFull
	}
	if s.WidthB < s.WidthA {
		s.flip()
	}
	a.segs = append(a.segs, s)
	return nil
}

// slice returns segments [ofs, ofs+n).
func (a *arena) slice(ofs, n int) []Segment {
	return a.segs[ofs : ofs+n : ofs+n]
}

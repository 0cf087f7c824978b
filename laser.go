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

// Package laser simulates laser beams: time-parameterized curves which are
// converted into chains of width-varying capsule segments once per frame,
// and then hit-tested against the player, traced for clear effects and
// handed to renderers.
//
// A [System] owns all lasers and the shared segment arena. Calling
// [System.Step] once per frame advances the scheduled tasks, quantizes every
// laser and runs the collision and clear passes.
package laser

import (
	"fmt"
	"image/color"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/laser/geometry"
)

// ClearFlags describe why and how a hazard is cleared.
type ClearFlags uint

// These are the bits of [ClearFlags].
const (
	ClearBullets ClearFlags = 1 << iota
	ClearLasers
	ClearForce
)

func (f ClearFlags) String() string {
	if f == 0 {
		return "0"
	}
	s := ""
	for _, x := range []struct {
		bit  ClearFlags
		name string
	}{
		{ClearBullets, "bullets"},
		{ClearLasers, "lasers"},
		{ClearForce, "force"},
	} {
		if f&x.bit != 0 {
			if s != "" {
				s += "|"
			}
			s += x.name
		}
	}
	if rest := f &^ (ClearBullets | ClearLasers | ClearForce); rest != 0 {
		if s != "" {
			s += "|"
		}
		s += fmt.Sprintf("0x%x", uint(rest))
	}
	return s
}

// Laser is a beam whose shape is given by a [Rule].
//
// At frame f the visible part of the beam is the curve between the times
// (f-birth)*Speed - Timespan + TimeShift and (f-birth)*Speed + TimeShift,
// cut off at DeathTime + TimeShift.
type Laser struct {
	// Pos is the origin of the rule.
	Pos vec.Vec2

	Rule  Rule
	Color color.NRGBA

	// Timespan is the length of the visible curve, in curve time.
	Timespan float64

	// DeathTime is the number of frames after birth at which the head of the
	// beam stops advancing. The laser is deleted once the tail has caught up.
	DeathTime float64

	TimeShift float64
	Speed     float64

	// Width is the base width; the drawn width tapers towards both ends.
	Width float64

	// WidthExponent reshapes the width profile.
	// 1 gives a parabola, 0 a constant width.
	WidthExponent float64

	ClearFlags      ClearFlags
	NextGraze       int
	Unclearable     bool
	CollisionActive bool

	birth int
	gen   uint32
	alive bool

	sys    *System
	bbox   rect.Rect
	segOfs int
	segNum int
}

// Handle refers to a laser and becomes invalid when the laser is deleted.
type Handle struct {
	l   *Laser
	gen uint32
}

// Handle returns a reference to l which detects deletion.
func (l *Laser) Handle() Handle {
	return Handle{l: l, gen: l.gen}
}

// Laser returns the referenced laser, or nil if it has been deleted.
func (h Handle) Laser() *Laser {
	if h.l == nil || !h.l.alive || h.l.gen != h.gen {
		return nil
	}
	return h.l
}

// PosAt evaluates the laser's rule at curve time t.
func (l *Laser) PosAt(t float64) vec.Vec2 {
	return l.Rule.eval(l, t)
}

// Birth returns the frame in which the laser was created.
func (l *Laser) Birth() int {
	return l.birth
}

// Age returns the number of frames since the laser was created.
func (l *Laser) Age() float64 {
	return float64(l.sys.frame - l.birth)
}

// BBox returns the bounding box of the segments of the current frame,
// padded by the distance-field margin.
// For a laser without visible samples this is the zero rectangle.
func (l *Laser) BBox() rect.Rect {
	return l.bbox
}

// IsActive reports whether the laser can currently hit the player.
func (l *Laser) IsActive() bool {
	return l.CollisionActive
}

// IsClearable reports whether a non-forced clear affects the laser.
func (l *Laser) IsClearable() bool {
	return !l.Unclearable && l.IsActive()
}

// MarkCleared requests that the laser is cleared in the next consumer pass.
// Without [ClearForce], unclearable or inactive lasers are left alone.
// The return value reports whether the flags were recorded.
func (l *Laser) MarkCleared(flags ClearFlags) bool {
	if flags&ClearForce == 0 && !l.IsClearable() {
		return false
	}
	l.ClearFlags |= flags
	return true
}

// MakeStatic freezes the curve, so that the whole timespan is visible
// from the first frame on.
func (l *Laser) MakeStatic() {
	l.Speed = 0
	l.TimeShift = l.Timespan
}

// SetLineEndpoints makes a linear laser span the segment from a to b.
// It panics if the laser does not use a [LinearRule].
func (l *Laser) SetLineEndpoints(a, b vec.Vec2) {
	rd := l.LinearRule()
	rd.Velocity = b.Sub(a).Mul(1 / l.Timespan)
	l.Pos = a
}

// SetPositionDirection makes a linear laser start at pos and extend one
// viewport height in the direction dir.
func (l *Laser) SetPositionDirection(pos, dir vec.Vec2) {
	l.SetLineEndpoints(pos, pos.Add(geometry.Normalize(dir).Mul(ViewportHeight)))
}

// Charge sets the width of a line laser t frames after it was created.
// The beam first grows to width 2 over the charge delay, then expands to
// targetWidth, and shrinks to zero during the last 20 frames before
// DeathTime. The laser only hurts once it is wider than 60% of targetWidth.
func (l *Laser) Charge(t int, chargeDelay, targetWidth float64) {
	tf := float64(t)

	var w float64
	switch {
	case tf < chargeDelay-10:
		w = min(2, 2*tf/min(30, chargeDelay-10))
	case tf < l.DeathTime-20:
		w = min(targetWidth, 1.7+targetWidth/20*(tf-chargeDelay+10))
	default:
		w = max(0, targetWidth-targetWidth/20*(tf-l.DeathTime+20))
	}

	l.Width = w
	l.CollisionActive = w > targetWidth*0.6
}

// IntersectsEllipse reports whether the centre line of a visible segment
// touches e. The laser width is ignored.
func (l *Laser) IntersectsEllipse(e geometry.Ellipse) bool {
	if l.segNum < 1 {
		return false
	}
	if !geometry.RectsIntersect(e.BBox(), l.bbox) {
		return false
	}

	for _, seg := range l.sys.Segments(l) {
		hit, err := e.IntersectsSegment(geometry.Segment{A: seg.A, B: seg.B})
		if err != nil {
			l.sys.logger.Error("ellipse query failed",
				"error", err,
				"axes", e.Axes)
			return false
		}
		if hit {
			return true
		}
	}
	return false
}

// IntersectsCircle reports whether the centre line of a visible segment
// touches c.
func (l *Laser) IntersectsCircle(c geometry.Circle) bool {
	return l.IntersectsEllipse(c.Ellipse())
}

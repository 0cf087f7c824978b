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
	"math"
	"slices"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/laser/geometry"
)

// sample is a point of the laser curve.
type sample struct {
	p vec.Vec2
	t float64
}

type samplingParams struct {
	n         int
	timeShift float64 // curve time of the first sample
	timeStep  float64
}

// samplingParams computes the visible time window of l.
// The second return value is false if no part of the curve is visible.
func (s *System) samplingParams(l *Laser, step float64) (samplingParams, bool) {
	c := l.Timespan
	t := l.Age()*l.Speed - l.Timespan + l.TimeShift

	if t+l.Timespan > l.DeathTime+l.TimeShift {
		c += l.DeathTime + l.TimeShift - (t + l.Timespan)
	}
	if t < 0 {
		c += t
		t = 0
	}
	if !(c > 0) {
		return samplingParams{}, false
	}

	n := math.Ceil((c + step) / step)
	return samplingParams{
		n:         int(n),
		timeShift: t,
		timeStep:  (c + step) / n,
	}, true
}

// widthParams describe the width profile along the beam.
type widthParams struct {
	midpoint   float64
	tail       float64
	tailFactor float64
	exponent   float64
	scale      float64
}

func newWidthParams(l *Laser) widthParams {
	tail := l.Timespan * 0.625
	return widthParams{
		midpoint:   l.Timespan * 0.5,
		tail:       tail,
		tailFactor: -1 / (tail * tail),
		exponent:   l.WidthExponent,
		scale:      0.75 * l.Width,
	}
}

// at returns the width at time t, measured from the start of the visible
// window.
func (wp *widthParams) at(t float64) float64 {
	if wp.exponent == 0 {
		return wp.scale
	}

	m := t - wp.midpoint
	w := wp.tailFactor * (m - wp.tail) * (m + wp.tail)
	if wp.exponent != 1 {
		w = math.Pow(w, wp.exponent)
	}
	return wp.scale * w
}

// quantize breaks the curve of l into segments, drops segments outside the
// viewport and recomputes the bounding box of l. The segments are appended
// to the arena.
func (s *System) quantize(l *Laser) error {
	l.segOfs = s.arena.len()
	l.segNum = 0

	sp, ok := s.samplingParams(l, s.cfg.SampleStep)
	if !ok {
		l.bbox = rect.Rect{}
		return nil
	}

	margin := s.cfg.SDFRange + l.Width*0.5
	view := geometry.PadRect(s.cfg.Viewport, margin)
	wp := newWidthParams(l)

	s.fillSamples(l, sp)

	s0 := s.samples[0]
	l.bbox = geometry.PointRect(s0.p)

	var err error
	if len(s.samples) == 1 {
		if segmentVisible(s0.p, s0.p, view) {
			w := wp.at(s0.t - sp.timeShift)
			t := sp.timeShift - s0.t
			err = s.addSegment(l, Segment{
				A: s0.p, B: s0.p,
				WidthA: w, WidthB: w,
				TimeA: t, TimeB: t,
			})
		}
	} else {
		err = s.constructSegments(l, sp, &wp, view)
	}

	l.bbox = geometry.PadRect(l.bbox, margin)
	l.segNum = s.arena.len() - l.segOfs
	return err
}

// fillSamples evaluates the curve at regular time intervals.
// Samples equal to their predecessor are skipped.
func (s *System) fillSamples(l *Laser, sp samplingParams) {
	s.samples = slices.Grow(s.samples[:0], sp.n)

	t := sp.timeShift
	maxTime := sp.timeShift + l.Timespan

	prev := l.PosAt(t)
	s.samples = append(s.samples, sample{p: prev, t: t})
	t += sp.timeStep

	for i := 1; i < sp.n; i, t = i+1, min(t+sp.timeStep, maxTime) {
		p := l.PosAt(t)
		if p != prev {
			s.samples = append(s.samples, sample{p: p, t: t})
			prev = p
		}
	}

	s.samples[len(s.samples)-1].t = maxTime
}

// constructSegments joins the samples into segments. Nearly collinear runs
// of samples are merged, as long as the merged segment does not span too
// much curve time.
func (s *System) constructSegments(l *Laser, sp samplingParams, wp *widthParams, view rect.Rect) error {
	samples := s.samples
	last := len(samples) - 1
	thresTemporal := float64(sp.n) / decimationWindow

	t0 := samples[0].t
	a := samples[0].p
	w0 := wp.at(0)
	v0 := a.Sub(samples[1].p)

	for i := 1; i <= last; i++ {
		b := samples[i].p

		if i != last && samples[i].t-t0 < thresTemporal {
			v1 := b.Sub(a)
			if turn(v0, v1) < decimationAngle {
				// only merge if the curve also continues straight
				v2 := samples[i+1].p.Sub(b)
				if turn(v1, v2) < decimationAngle {
					continue
				}
			}
		}

		w := wp.at(samples[i].t - sp.timeShift)

		if segmentVisible(a, b, view) {
			err := s.addSegment(l, Segment{
				A:      a,
				B:      b,
				WidthA: w0,
				WidthB: w,
				TimeA:  sp.timeShift - t0,
				TimeB:  sp.timeShift - samples[i].t,
			})
			if err != nil {
				return err
			}
		}

		t0 = samples[i].t
		w0 = w
		v0 = b.Sub(a)
		a = b
	}
	return nil
}

// turn returns 1 - |cos θ| for the angle θ between u and v.
// The result is NaN if either vector is zero.
func turn(u, v vec.Vec2) float64 {
	cos := u.Dot(v) / math.Sqrt(u.Dot(u)*v.Dot(v))
	return 1 - math.Abs(cos)
}

func (s *System) addSegment(l *Laser, seg Segment) error {
	if err := s.arena.add(seg); err != nil {
		return err
	}
	l.bbox = geometry.ExtendRect(l.bbox, seg.A)
	l.bbox = geometry.ExtendRect(l.bbox, seg.B)
	return nil
}

// segmentVisible reports whether the segment from a to b may intersect
// bounds. The test is conservative.
func segmentVisible(a, b vec.Vec2, bounds rect.Rect) bool {
	left, right := bounds.LLx, bounds.URx
	top, bottom := bounds.LLy, bounds.URy

	if geometry.PointInRect(a, bounds) || geometry.PointInRect(b, bounds) {
		return true
	}

	if a.X < left && b.X < left ||
		a.X > right && b.X > right ||
		a.Y < top && b.Y < top ||
		a.Y > bottom && b.Y > bottom {
		return false
	}

	// one point above, the other below
	if a.X >= left && a.X <= right && b.X >= left && b.X <= right {
		return true
	}

	// otherwise the segment must cross a vertical boundary
	m := (a.Y - b.Y) / (a.X - b.X)
	c := a.Y - m*a.X
	y0 := m*left + c
	y1 := m*right + c
	return max(y0, y1) >= top && min(y0, y1) <= bottom
}

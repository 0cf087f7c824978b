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
	"fmt"
	"math"

	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/laser/geometry"
)

// BirthTime is the curve time passed to a rule once, when the laser is
// created. Rules return the laser position for this time.
const BirthTime = -math.MaxFloat64

// Rule maps curve time to a point of the laser curve.
//
// The set of rules is closed: it consists of [*LinearRule],
// [*AcceleratedRule], [*SineRule], [*SineExpandingRule], [*ArcRule] and
// [*DynamicRule]. Rule parameters may be changed while the laser is alive.
type Rule interface {
	eval(l *Laser, t float64) vec.Vec2
}

// LinearRule moves along a straight line: pos + t*Velocity.
type LinearRule struct {
	Velocity vec.Vec2
}

// NewLinearRule returns a rule for a straight beam.
func NewLinearRule(velocity vec.Vec2) *LinearRule {
	return &LinearRule{Velocity: velocity}
}

func (r *LinearRule) eval(l *Laser, t float64) vec.Vec2 {
	if t == BirthTime {
		return l.Pos
	}
	return l.Pos.Add(r.Velocity.Mul(t))
}

// AcceleratedRule follows a parabola: pos + t*Velocity + t²*HalfAccel.
type AcceleratedRule struct {
	Velocity  vec.Vec2
	HalfAccel vec.Vec2
}

// NewAcceleratedRule returns a rule with constant acceleration accel.
func NewAcceleratedRule(velocity, accel vec.Vec2) *AcceleratedRule {
	return &AcceleratedRule{Velocity: velocity, HalfAccel: accel.Mul(0.5)}
}

func (r *AcceleratedRule) eval(l *Laser, t float64) vec.Vec2 {
	if t == BirthTime {
		return l.Pos
	}
	return l.Pos.Add(r.Velocity.Add(r.HalfAccel.Mul(t)).Mul(t))
}

// SineRule oscillates perpendicular to a straight line.
type SineRule struct {
	Velocity  vec.Vec2
	Amplitude float64
	Frequency float64
	Phase     float64
}

// NewSineRule returns a rule which oscillates around the line pos + t*velocity.
func NewSineRule(velocity vec.Vec2, amplitude, frequency, phase float64) *SineRule {
	return &SineRule{
		Velocity:  velocity,
		Amplitude: amplitude,
		Frequency: frequency,
		Phase:     phase,
	}
}

func (r *SineRule) eval(l *Laser, t float64) vec.Vec2 {
	if t == BirthTime {
		return l.Pos
	}
	dir := geometry.Normalize(r.Velocity)
	normal := vec.Vec2{X: dir.Y, Y: -dir.X}
	ofs := normal.Mul(r.Amplitude * math.Sin(r.Frequency*t+r.Phase))
	return l.Pos.Add(r.Velocity.Mul(t)).Add(ofs)
}

// SineExpandingRule moves outwards at constant speed while its direction
// oscillates around the direction of Velocity.
type SineExpandingRule struct {
	Velocity  vec.Vec2
	Amplitude float64 // angle, in radians
	Frequency float64
	Phase     float64
}

// NewSineExpandingRule returns a rule whose heading oscillates by up to
// amplitude radians.
func NewSineExpandingRule(velocity vec.Vec2, amplitude, frequency, phase float64) *SineExpandingRule {
	return &SineExpandingRule{
		Velocity:  velocity,
		Amplitude: amplitude,
		Frequency: frequency,
		Phase:     phase,
	}
}

func (r *SineExpandingRule) eval(l *Laser, t float64) vec.Vec2 {
	if t == BirthTime {
		return l.Pos
	}
	angle := geometry.Angle(r.Velocity)
	speed := r.Velocity.Length()
	s := r.Frequency*t + r.Phase
	return l.Pos.Add(geometry.Dir(angle + r.Amplitude*math.Sin(s)).Mul(t * speed))
}

// ArcRule moves on a circle around the laser position.
// Radius is a complex factor, so its direction sets the phase at time zero.
type ArcRule struct {
	Radius     vec.Vec2
	TurnSpeed  float64
	TimeOffset float64
}

// NewArcRule returns a rule which turns around the laser position.
func NewArcRule(radius vec.Vec2, turnSpeed, timeOffset float64) *ArcRule {
	return &ArcRule{Radius: radius, TurnSpeed: turnSpeed, TimeOffset: timeOffset}
}

func (r *ArcRule) eval(l *Laser, t float64) vec.Vec2 {
	if t == BirthTime {
		return l.Pos
	}
	return l.Pos.Add(geometry.CMul(r.Radius, geometry.Dir(r.TurnSpeed*(t+r.TimeOffset))))
}

// DynamicRule replays the recorded positions of the laser origin.
// Curve time t maps to the history entry recorded age*speed - t frames ago;
// times outside the recorded range are clamped.
type DynamicRule struct {
	History *History
	Move    Move
}

func (r *DynamicRule) eval(l *Laser, t float64) vec.Vec2 {
	if t == BirthTime {
		return l.Pos
	}

	n := r.History.Len()
	if n == 0 {
		panic("laser: dynamic rule evaluated with empty history")
	}

	tbase := l.Age() * l.Speed
	tofs := min(max(t-tbase, float64(1-n)), 0)

	i0 := math.Floor(tofs)
	i1 := math.Ceil(tofs)
	v0 := r.History.Peek(-int(i0))
	v1 := r.History.Peek(-int(i1))
	return geometry.Lerp(v0, v1, tofs-i0)
}

// LinearRule returns the parameters of a linear laser.
// It panics if the laser uses a different rule.
func (l *Laser) LinearRule() *LinearRule {
	return ruleAs[*LinearRule](l)
}

// AcceleratedRule returns the parameters of an accelerated laser.
// It panics if the laser uses a different rule.
func (l *Laser) AcceleratedRule() *AcceleratedRule {
	return ruleAs[*AcceleratedRule](l)
}

// SineRule returns the parameters of a sine laser.
// It panics if the laser uses a different rule.
func (l *Laser) SineRule() *SineRule {
	return ruleAs[*SineRule](l)
}

// SineExpandingRule returns the parameters of an expanding sine laser.
// It panics if the laser uses a different rule.
func (l *Laser) SineExpandingRule() *SineExpandingRule {
	return ruleAs[*SineExpandingRule](l)
}

// ArcRule returns the parameters of an arc laser.
// It panics if the laser uses a different rule.
func (l *Laser) ArcRule() *ArcRule {
	return ruleAs[*ArcRule](l)
}

// DynamicRule returns the history and motion of a dynamic laser.
// It panics if the laser uses a different rule.
func (l *Laser) DynamicRule() *DynamicRule {
	return ruleAs[*DynamicRule](l)
}

func ruleAs[R Rule](l *Laser) R {
	r, ok := l.Rule.(R)
	if !ok {
		var want R
		panic(fmt.Sprintf("laser: rule is %T, not %T", l.Rule, want))
	}
	return r
}

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

	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/laser/geometry"
)

// Move describes per-frame motion of a point.
//
// Retention and Attraction are complex factors: their length scales and their
// angle rotates the vector they are applied to.
type Move struct {
	Velocity     vec.Vec2
	Acceleration vec.Vec2
	Retention    vec.Vec2

	Attraction         vec.Vec2
	AttractionPoint    vec.Vec2
	AttractionExponent float64
}

// one is the complex number 1.
var one = vec.Vec2{X: 1}

// MoveLinear moves with constant velocity.
func MoveLinear(vel vec.Vec2) Move {
	return Move{Velocity: vel, Retention: one}
}

// MoveAccelerated moves with constant acceleration.
func MoveAccelerated(vel, accel vec.Vec2) Move {
	return Move{Velocity: vel, Acceleration: accel, Retention: one}
}

// MoveAsymptotic starts with velocity vel0 and approaches vel1.
func MoveAsymptotic(vel0, vel1, retention vec.Vec2) Move {
	return Move{
		Velocity:     vel0,
		Acceleration: geometry.CMul(vel1, one.Sub(retention)),
		Retention:    retention,
	}
}

// MoveAsymptoticHalflife is like [MoveAsymptotic], with the retention given
// by the number of frames over which the velocity difference halves.
func MoveAsymptoticHalflife(vel0, vel1 vec.Vec2, halflife float64) Move {
	return MoveAsymptotic(vel0, vel1, vec.Vec2{X: math.Exp2(-1 / halflife)})
}

// MoveTowards starts with velocity vel and is pulled towards target.
func MoveTowards(vel, target, attraction vec.Vec2) Move {
	return Move{
		Velocity:           vel,
		Attraction:         attraction,
		AttractionPoint:    target,
		AttractionExponent: 1,
	}
}

// MoveTowardsExp is like [MoveTowards], but the pull grows with the given
// power of the distance to target.
func MoveTowardsExp(vel, target, attraction vec.Vec2, exponent float64) Move {
	m := MoveTowards(vel, target, attraction)
	m.AttractionExponent = exponent
	return m
}

// MoveDampen slows down by the factor retention every frame.
func MoveDampen(vel, retention vec.Vec2) Move {
	return Move{Velocity: vel, Retention: retention}
}

// Update advances pos by one frame and updates the velocity.
// It returns the velocity which was applied.
func (m *Move) Update(pos *vec.Vec2) vec.Vec2 {
	v := m.Velocity
	*pos = pos.Add(v)

	vel := m.Acceleration.Add(geometry.CMul(m.Retention, v))
	if m.Attraction != (vec.Vec2{}) {
		av := m.AttractionPoint.Sub(*pos)
		if m.AttractionExponent != 1 {
			av = av.Mul(math.Pow(av.Dot(av), m.AttractionExponent-0.5))
		}
		vel = vel.Add(geometry.CMul(m.Attraction, av))
	}
	m.Velocity = vel
	return v
}

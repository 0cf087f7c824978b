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
	"image/color"

	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/laser/geometry"
)

// Player is the point which lasers are tested against.
type Player struct {
	Pos vec.Vec2

	// Velocity is the movement during the current frame.
	// The player moved from Pos-Velocity to Pos.
	Velocity vec.Vec2
}

// Effects receives the events produced by [System.Step].
// Implementations may create, modify or clear lasers.
type Effects interface {
	// Damage is called when l hits the player.
	Damage(l *Laser)

	// Graze is called when the player passes close to l.
	// pos is the point on the surface of the beam closest to the player.
	Graze(l *Laser, pos vec.Vec2)

	// ClearItem is called for every item dropped by a cleared laser.
	ClearItem(pos vec.Vec2, flags ClearFlags)

	// ClearParticle is called for the particles of a cleared laser.
	ClearParticle(pos vec.Vec2, width float64, c color.NRGBA)
}

// NopEffects ignores all events.
type NopEffects struct{}

func (NopEffects) Damage(*Laser) {}

func (NopEffects) Graze(*Laser, vec.Vec2) {}

func (NopEffects) ClearItem(vec.Vec2, ClearFlags) {}

func (NopEffects) ClearParticle(vec.Vec2, float64, color.NRGBA) {}

// hitRadius converts a segment width into the radius of the hitbox.
func hitRadius(width float64) float64 {
	return max(width*0.5-collisionShrink, collisionMinRadius)
}

// collide tests the player against the segments of l and reports a hit.
// Grazes are reported to the effects as a side effect.
func (s *System) collide(l *Laser, plr *Player) bool {
	if !l.IsActive() || l.segNum < 1 {
		return false
	}

	graze := s.frame >= l.NextGraze
	grazeMax := s.cfg.GrazeRadius
	grazeDist := grazeMax
	var grazePos vec.Vec2

	bbox := l.bbox
	if graze {
		bbox = geometry.PadRect(bbox, grazeDist)
	}
	if !geometry.PointInRect(plr.Pos, bbox) {
		return false
	}

	moved := plr.Velocity != (vec.Vec2{})
	motion := geometry.Segment{A: plr.Pos.Sub(plr.Velocity), B: plr.Pos}

	segs := s.Segments(l)
	for i := range segs {
		seg := &segs[i]
		line := seg.Line()

		// a fast player must not pass through a thin beam
		if moved {
			if _, ok := motion.Intersect(line); ok {
				return true
			}
		}

		c := geometry.UnevenCapsule{
			Seg:     line,
			RadiusA: hitRadius(seg.WidthA),
			RadiusB: hitRadius(seg.WidthB),
		}
		d := c.Distance(plr.Pos)
		if d < 0 {
			return true
		}

		if graze && d < grazeDist {
			f := line.ClosestFactor(plr.Pos)
			gp := geometry.Lerp(line.A, line.B, f)
			out := geometry.Normalize(plr.Pos.Sub(gp))
			grazePos = gp.Add(out.Mul(0.5 * lerp(seg.WidthA, seg.WidthB, f)))
			grazeDist = d
		}
	}

	if grazeDist < grazeMax {
		s.effects.Graze(l, grazePos)
		l.NextGraze = s.frame + s.cfg.GrazeCooldown
	}

	return false
}

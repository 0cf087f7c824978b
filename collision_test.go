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
	"bytes"
	"log/slog"
	"math"
	"strings"
	"testing"

	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/laser/geometry"
)

func TestCollision(t *testing.T) {
	// A beam of width 20 has a hitbox radius of 20/2 - 4 = 6.
	tests := []struct {
		name   string
		plr    Player
		damage int
		grazes int
	}{
		{"on the axis", Player{Pos: vec.Vec2{X: 200, Y: 300}}, 1, 0},
		{"inside hitbox", Player{Pos: vec.Vec2{X: 200, Y: 305}}, 1, 0},
		{"inside beam", Player{Pos: vec.Vec2{X: 200, Y: 292}}, 0, 1},
		{"graze", Player{Pos: vec.Vec2{X: 200, Y: 315}}, 0, 1},
		{"beyond end", Player{Pos: vec.Vec2{X: 395, Y: 300}}, 0, 1},
		{"far", Player{Pos: vec.Vec2{X: 200, Y: 400}}, 0, 0},
		{
			"crossing",
			Player{Pos: vec.Vec2{X: 200, Y: 320}, Velocity: vec.Vec2{Y: 40}},
			1, 0,
		},
		{
			"moving parallel",
			Player{Pos: vec.Vec2{X: 200, Y: 320}, Velocity: vec.Vec2{X: 40}},
			0, 1,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, rec := newTestSystem(t, nil)
			newStaticLine(s, vec.Vec2{X: 100, Y: 300}, vec.Vec2{X: 380, Y: 300}, 20)
			plr := tc.plr
			mustStep(t, s, &plr)

			if rec.damage != tc.damage {
				t.Errorf("damage = %d, want %d", rec.damage, tc.damage)
			}
			if len(rec.grazes) != tc.grazes {
				t.Errorf("grazes = %d, want %d", len(rec.grazes), tc.grazes)
			}
		})
	}
}

func TestGrazeCooldown(t *testing.T) {
	s, rec := newTestSystem(t, nil)
	l := newStaticLine(s, vec.Vec2{X: 100, Y: 300}, vec.Vec2{X: 380, Y: 300}, 20)
	plr := &Player{Pos: vec.Vec2{X: 200, Y: 315}}

	for range 8 {
		mustStep(t, s, plr)
	}
	if len(rec.grazes) != 2 {
		t.Fatalf("got %d grazes in 8 frames, want 2", len(rec.grazes))
	}
	if l.NextGraze != 8 {
		t.Errorf("NextGraze = %d, want 8", l.NextGraze)
	}

	// the graze position is on the beam surface, facing the player
	diff(t, vec.Vec2{X: 200, Y: 310}, rec.grazes[0], approx)
}

func TestCollisionInactive(t *testing.T) {
	s, rec := newTestSystem(t, nil)
	l := newStaticLine(s, vec.Vec2{X: 100, Y: 300}, vec.Vec2{X: 380, Y: 300}, 20)
	l.CollisionActive = false
	mustStep(t, s, &Player{Pos: vec.Vec2{X: 200, Y: 300}})

	if rec.damage != 0 || len(rec.grazes) != 0 {
		t.Errorf("inactive laser: %d hits, %d grazes", rec.damage, len(rec.grazes))
	}
}

func TestIntersectsEllipse(t *testing.T) {
	s, _ := newTestSystem(t, nil)
	l := newStaticLine(s, vec.Vec2{X: 100, Y: 300}, vec.Vec2{X: 380, Y: 300}, 20)
	mustStep(t, s, nil)

	tests := []struct {
		name string
		e    geometry.Ellipse
		want bool
	}{
		{
			"circle on beam",
			geometry.Circle{Origin: vec.Vec2{X: 200, Y: 310}, Radius: 12}.Ellipse(),
			true,
		},
		{
			// the beam width is not taken into account
			"circle touching surface",
			geometry.Circle{Origin: vec.Vec2{X: 200, Y: 318}, Radius: 12}.Ellipse(),
			false,
		},
		{
			"flat ellipse",
			geometry.Ellipse{Origin: vec.Vec2{X: 200, Y: 320}, Axes: vec.Vec2{X: 10, Y: 50}},
			true,
		},
		{
			"rotated flat ellipse",
			geometry.Ellipse{Origin: vec.Vec2{X: 200, Y: 320}, Axes: vec.Vec2{X: 10, Y: 50}, Angle: math.Pi / 2},
			false,
		},
		{
			"bad axes",
			geometry.Ellipse{Origin: vec.Vec2{X: 200, Y: 300}, Axes: vec.Vec2{X: 0, Y: 50}},
			false,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := l.IntersectsEllipse(tc.e); got != tc.want {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}

	if !l.IntersectsCircle(geometry.Circle{Origin: vec.Vec2{X: 380, Y: 300}, Radius: 1}) {
		t.Error("circle at the end point missed")
	}
}

// TestIntersectsEllipseBadAxes checks that malformed ellipses on the beam
// are logged and reported as misses.
func TestIntersectsEllipseBadAxes(t *testing.T) {
	var buf bytes.Buffer
	s, _ := newTestSystem(t, func(cfg *Config) {
		cfg.Logger = slog.New(slog.NewTextHandler(&buf, nil))
	})
	l := newStaticLine(s, vec.Vec2{X: 100, Y: 300}, vec.Vec2{X: 380, Y: 300}, 20)
	mustStep(t, s, nil)

	for _, e := range []geometry.Ellipse{
		geometry.Circle{Origin: vec.Vec2{X: 200, Y: 300}, Radius: -5}.Ellipse(),
		{Origin: vec.Vec2{X: 200, Y: 300}, Axes: vec.Vec2{X: 0, Y: 50}},
		{Origin: vec.Vec2{X: 200, Y: 300}, Axes: vec.Vec2{X: 20, Y: math.NaN()}},
	} {
		buf.Reset()
		if l.IntersectsEllipse(e) {
			t.Errorf("axes %v: reported intersection", e.Axes)
		}
		if !strings.Contains(buf.String(), "ellipse query failed") {
			t.Errorf("axes %v: error not logged", e.Axes)
		}
	}
}

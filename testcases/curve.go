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

package testcases

import (
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/laser"
)

var curveCases = []Scenario{
	{
		Name:   "linear",
		Frames: 40,
		Cap:    graphics.LineCapRound,
		Setup: func(s *laser.System) {
			s.Create(pt(60, 80), 30, 200, red, laser.NewLinearRule(pt(4, 3)))
		},
	},
	{
		Name:   "accelerated",
		Frames: 50,
		Cap:    graphics.LineCapRound,
		Setup: func(s *laser.System) {
			s.Create(pt(400, 60), 40, 200, blue,
				laser.NewAcceleratedRule(pt(-3, 1), pt(0.05, 0.15)))
		},
	},
	{
		Name:   "sine",
		Frames: 60,
		Cap:    graphics.LineCapRound,
		Setup: func(s *laser.System) {
			s.Create(pt(240, 20), 60, 300, green, laser.NewSineRule(pt(0, 4), 40, 0.15, 0))
		},
	},
	{
		Name:   "sine_expanding",
		Frames: 60,
		Cap:    graphics.LineCapRound,
		Setup: func(s *laser.System) {
			s.Create(pt(240, 20), 60, 300, red,
				laser.NewSineExpandingRule(pt(0, 3), 0.5, 0.1, 0))
		},
	},
	{
		Name:   "arc",
		Frames: 70,
		Cap:    graphics.LineCapRound,
		Setup: func(s *laser.System) {
			s.Create(pt(240, 280), 80, 300, blue, laser.NewArcRule(pt(120, 0), 0.05, 0))
		},
	},
	{
		Name:   "static_sine",
		Frames: 1,
		Cap:    graphics.LineCapRound,
		Setup: func(s *laser.System) {
			l := s.Create(pt(60, 300), 120, 1000, green, laser.NewSineRule(pt(3, 0), 60, 0.08, 0))
			l.MakeStatic()
			l.Width = 24
		},
	},
	{
		Name:   "thick_exponent",
		Frames: 40,
		Cap:    graphics.LineCapRound,
		Setup: func(s *laser.System) {
			l := s.Create(pt(40, 40), 35, 200, red, laser.NewLinearRule(pt(5, 6)))
			l.Width = 40
			l.WidthExponent = 3
		},
	},
	{
		Name:   "fast",
		Frames: 30,
		Cap:    graphics.LineCapRound,
		Setup: func(s *laser.System) {
			l := s.Create(pt(20, 540), 30, 200, blue, laser.NewLinearRule(pt(3, -4)))
			l.Speed = 2.5
		},
	},
}

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

var dynamicCases = []Scenario{
	{
		Name:   "towards",
		Frames: 60,
		Cap:    graphics.LineCapRound,
		Setup: func(s *laser.System) {
			_, mv := s.CreateDynamic(pt(50, 50), 40, 300, red)
			*mv = laser.MoveTowards(pt(6, 0), pt(240, 400), pt(0.02, 0.02))
		},
	},
	{
		Name:   "asymptotic",
		Frames: 60,
		Cap:    graphics.LineCapRound,
		Setup: func(s *laser.System) {
			_, mv := s.CreateDynamic(pt(40, 100), 30, 300, blue)
			*mv = laser.MoveAsymptotic(pt(12, 2), pt(1, 4), pt(0.9, 0.9))
		},
	},
	{
		Name:   "falling",
		Frames: 50,
		Cap:    graphics.LineCapRound,
		Setup: func(s *laser.System) {
			_, mv := s.CreateDynamic(pt(100, 40), 25, 300, green)
			*mv = laser.MoveAccelerated(pt(4, -2), pt(0, 0.2))
		},
	},
}

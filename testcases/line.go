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
	"image/color"

	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/laser"
)

var (
	red   = color.NRGBA{R: 255, G: 40, B: 40, A: 255}
	blue  = color.NRGBA{R: 60, G: 90, B: 255, A: 255}
	green = color.NRGBA{R: 40, G: 220, B: 90, A: 200}
)

var lineCases = []Scenario{
	{
		Name:   "horizontal",
		Frames: 1,
		Cap:    graphics.LineCapRound,
		Setup:  staticLine(pt(40, 100), pt(440, 100), 16, red),
	},
	{
		Name:   "horizontal_butt",
		Frames: 1,
		Cap:    graphics.LineCapButt,
		Setup:  staticLine(pt(40, 100), pt(440, 100), 16, red),
	},
	{
		Name:   "horizontal_square",
		Frames: 1,
		Cap:    graphics.LineCapSquare,
		Setup:  staticLine(pt(40, 100), pt(440, 100), 16, red),
	},
	{
		Name:   "diagonal",
		Frames: 1,
		Cap:    graphics.LineCapRound,
		Setup:  staticLine(pt(30, 500), pt(450, 60), 24, blue),
	},
	{
		Name:   "offscreen_start",
		Frames: 1,
		Cap:    graphics.LineCapRound,
		Setup:  staticLine(pt(-200, 300), pt(300, 300), 12, green),
	},
	{
		Name:   "crossing",
		Frames: 1,
		Cap:    graphics.LineCapRound,
		Setup: func(s *laser.System) {
			staticLine(pt(60, 60), pt(420, 500), 20, red)(s)
			staticLine(pt(420, 60), pt(60, 500), 20, blue)(s)
		},
	},
	{
		Name:   "charged",
		Frames: 45,
		Cap:    graphics.LineCapRound,
		Setup: func(s *laser.System) {
			s.CreateLine(pt(240, 20), pt(0, 18), 30, 120, red)
		},
	},
	{
		Name:   "charged_fan",
		Frames: 80,
		Cap:    graphics.LineCapRound,
		Setup: func(s *laser.System) {
			for i := range 5 {
				dir := vec.Vec2{X: float64(i-2) * 4, Y: 12}
				s.CreateLine(pt(240, 40), dir, 20+10*float64(i), 200, blue)
			}
		},
	},
}

// staticLine returns a setup function for a straight laser from a to b.
func staticLine(a, b vec.Vec2, width float64, c color.NRGBA) func(*laser.System) {
	return func(s *laser.System) {
		l := s.Create(a, 4, 1000, c, laser.NewLinearRule(vec.Vec2{}))
		l.SetLineEndpoints(a, b)
		l.MakeStatic()
		l.Width = width
	}
}

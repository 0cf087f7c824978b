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

// Package testcases defines named laser scenarios.
//
// Each scenario sets up a [laser.System] and advances it for a fixed
// number of frames.  The resulting segment arena is used by the tests of
// the consumers, and can be exported to JSON by the export command.
package testcases

import (
	"fmt"

	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/laser"
)

// Scenario defines a single laser setup.
type Scenario struct {
	Name   string                // lowercase a-z and _ only
	Frames int                   // frames to run before the snapshot
	Cap    graphics.LineCapStyle // segment ends used for rendering
	Setup  func(s *laser.System) // spawns the lasers
}

// Run creates a system from cfg, applies the setup and advances the system
// by sc.Frames frames.  A nil cfg selects the default configuration.
func (sc Scenario) Run(cfg *laser.Config) (*laser.System, error) {
	s := laser.NewSystem(cfg, nil)
	sc.Setup(s)
	for range sc.Frames {
		if err := s.Step(nil); err != nil {
			return nil, fmt.Errorf("scenario %s: %w", sc.Name, err)
		}
	}
	return s, nil
}

// pt is a helper to create a vec.Vec2 from x, y coordinates.
func pt(x, y float64) vec.Vec2 {
	return vec.Vec2{X: x, Y: y}
}

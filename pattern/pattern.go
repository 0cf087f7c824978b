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

// Package pattern runs laser spawn scripts.
//
// A script is a zygomys Lisp program which is evaluated once, by [Compile].
// The builtins record spawn events on a timeline, and the resulting
// [Pattern] is a [laser.Task] which replays the timeline frame by frame:
//
//	// three beams, 10 frames apart
//	(color 255 64 64)
//	(laser_linear 100 40 0 4 30 120)
//	(wait 10)
//	(laser_sine 240 40 0 4 20 0.2 0 30 120)
//	(wait 10)
//	(laser_line 380 40 0 16 30 90)
//
// Identifiers may be written with hyphens, as in laser-linear, and comments
// may start with a semicolon.
package pattern

import (
	"fmt"
	"image/color"
	"strings"

	zygo "github.com/glycerine/zygomys/zygo"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/laser"
)

// Pattern is a compiled spawn timeline.
type Pattern struct {
	Name string

	// Origin is added to all spawn positions.
	Origin vec.Vec2

	events []event
	t      int
	next   int
}

// event is a single spawn at a given frame of the timeline.
type event struct {
	frame int
	name  string
	spawn func(s *laser.System, origin vec.Vec2) *laser.Laser
}

// Compile evaluates a pattern script and records its timeline.
func Compile(name, src string) (*Pattern, error) {
	p := &Pattern{Name: name}
	if strings.TrimSpace(src) == "" {
		return p, nil
	}

	env := zygo.NewZlispSandbox()
	defer env.Stop()

	c := &compiler{
		p:     p,
		color: color.NRGBA{R: 255, G: 255, B: 255, A: 255},
	}
	c.register(env)

	if err := env.LoadString(preprocess(src)); err != nil {
		return nil, fmt.Errorf("pattern %s: %w", name, err)
	}
	if _, err := env.Run(); err != nil {
		return nil, fmt.Errorf("pattern %s: %w", name, err)
	}
	return p, nil
}

// Len returns the number of spawn events.
func (p *Pattern) Len() int {
	return len(p.events)
}

// Duration returns the frame of the last spawn event.
func (p *Pattern) Duration() int {
	if len(p.events) == 0 {
		return 0
	}
	return p.events[len(p.events)-1].frame
}

// Reset rewinds the timeline to the start.
func (p *Pattern) Reset() {
	p.t = 0
	p.next = 0
}

// Advance spawns the lasers which are due in the current frame.
// It implements [laser.Task], and reports false once the timeline is done.
func (p *Pattern) Advance(s *laser.System) bool {
	for p.next < len(p.events) && p.events[p.next].frame <= p.t {
		p.events[p.next].spawn(s, p.Origin)
		p.next++
	}
	p.t++
	return p.next < len(p.events)
}

// preprocess converts semicolon comments to the // form used by zygomys,
// and hyphenated identifiers like laser-line to laser_line.  String
// literals are left unchanged.
func preprocess(src string) string {
	b := []byte(src)
	out := make([]byte, 0, len(b)+8)
	for i := 0; i < len(b); i++ {
		switch c := b[i]; {
		case c == '"':
			j := i + 1
			for j < len(b) && b[j] != '"' {
				if b[j] == '\\' {
					j++
				}
				j++
			}
			j = min(j, len(b)-1)
			out = append(out, b[i:j+1]...)
			i = j
		case c == ';':
			for i+1 < len(b) && b[i+1] == ';' {
				i++
			}
			out = append(out, '/', '/')
		case c == '-' && i > 0 && i+1 < len(b) && isIdent(b[i-1]) && isLetter(b[i+1]):
			out = append(out, '_')
		default:
			out = append(out, c)
		}
	}
	return string(out)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdent(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

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

package pattern

import (
	"errors"
	"fmt"
	"image/color"

	zygo "github.com/glycerine/zygomys/zygo"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/laser"
)

// compiler holds the state of a script evaluation.
type compiler struct {
	p     *Pattern
	frame int
	color color.NRGBA
	width float64
}

// spawner describes a laser builtin.  The first two arguments of every
// spawner are the position, relative to the pattern origin.
type spawner struct {
	name  string
	nargs int
	fn    func(s *laser.System, pos vec.Vec2, c color.NRGBA, a []float64) *laser.Laser
}

var spawners = []spawner{
	{"laser_linear", 6, func(s *laser.System, pos vec.Vec2, c color.NRGBA, a []float64) *laser.Laser {
		// x y vx vy timespan deathtime
		return s.Create(pos, a[4], a[5], c, laser.NewLinearRule(v(a[2], a[3])))
	}},
	{"laser_accel", 8, func(s *laser.System, pos vec.Vec2, c color.NRGBA, a []float64) *laser.Laser {
		// x y vx vy ax ay timespan deathtime
		return s.Create(pos, a[6], a[7], c, laser.NewAcceleratedRule(v(a[2], a[3]), v(a[4], a[5])))
	}},
	{"laser_sine", 9, func(s *laser.System, pos vec.Vec2, c color.NRGBA, a []float64) *laser.Laser {
		// x y vx vy amplitude frequency phase timespan deathtime
		return s.Create(pos, a[7], a[8], c, laser.NewSineRule(v(a[2], a[3]), a[4], a[5], a[6]))
	}},
	{"laser_sine_expanding", 9, func(s *laser.System, pos vec.Vec2, c color.NRGBA, a []float64) *laser.Laser {
		// x y vx vy amplitude frequency phase timespan deathtime
		return s.Create(pos, a[7], a[8], c, laser.NewSineExpandingRule(v(a[2], a[3]), a[4], a[5], a[6]))
	}},
	{"laser_arc", 8, func(s *laser.System, pos vec.Vec2, c color.NRGBA, a []float64) *laser.Laser {
		// x y rx ry turnspeed timeoffset timespan deathtime
		return s.Create(pos, a[6], a[7], c, laser.NewArcRule(v(a[2], a[3]), a[4], a[5]))
	}},
	{"laser_line", 6, func(s *laser.System, pos vec.Vec2, c color.NRGBA, a []float64) *laser.Laser {
		// x y dx dy charge duration; the length of (dx, dy) is the width
		return s.CreateLine(pos, v(a[2], a[3]), a[4], a[5], c)
	}},
	{"laser_line_ab", 7, func(s *laser.System, pos vec.Vec2, c color.NRGBA, a []float64) *laser.Laser {
		// ax ay bx by width charge duration
		b := pos.Add(v(a[2]-a[0], a[3]-a[1]))
		return s.CreateLineAB(pos, b, a[4], a[5], a[6], c)
	}},
	{"laser_dynamic", 6, func(s *laser.System, pos vec.Vec2, c color.NRGBA, a []float64) *laser.Laser {
		// x y vx vy timespan deathtime
		l, mv := s.CreateDynamic(pos, a[4], a[5], c)
		*mv = laser.MoveLinear(v(a[2], a[3]))
		return l
	}},
	{"laser_towards", 10, func(s *laser.System, pos vec.Vec2, c color.NRGBA, a []float64) *laser.Laser {
		// x y vx vy tx ty attraction_x attraction_y timespan deathtime
		l, mv := s.CreateDynamic(pos, a[8], a[9], c)
		target := pos.Add(v(a[4]-a[0], a[5]-a[1]))
		*mv = laser.MoveTowards(v(a[2], a[3]), target, v(a[6], a[7]))
		return l
	}},
}

// widthless lists the spawners which control the laser width themselves.
var widthless = map[string]bool{
	"laser_line":    true,
	"laser_line_ab": true,
}

func v(x, y float64) vec.Vec2 {
	return vec.Vec2{X: x, Y: y}
}

var errNegativeWait = errors.New("negative wait")

// register installs the pattern builtins into env.
func (c *compiler) register(env *zygo.Zlisp) {
	// (wait frames)
	env.AddFunction("wait", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		a, err := numbers(name, args, 1)
		if err != nil {
			return zygo.SexpNull, err
		}
		if a[0] < 0 {
			return zygo.SexpNull, fmt.Errorf("%s: %w", name, errNegativeWait)
		}
		c.frame += int(a[0])
		return zygo.SexpNull, nil
	})

	// (color r g b) or (color r g b a), components in 0..255
	env.AddFunction("color", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		n := 3
		if len(args) == 4 {
			n = 4
		}
		a, err := numbers(name, args, n)
		if err != nil {
			return zygo.SexpNull, err
		}
		col := color.NRGBA{A: 255}
		comp := []*uint8{&col.R, &col.G, &col.B, &col.A}
		for i, x := range a {
			if x < 0 || x > 255 {
				return zygo.SexpNull, fmt.Errorf("%s: component %g out of range", name, x)
			}
			*comp[i] = uint8(x)
		}
		c.color = col
		return zygo.SexpNull, nil
	})

	// (width w), 0 selects the default width
	env.AddFunction("width", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		a, err := numbers(name, args, 1)
		if err != nil {
			return zygo.SexpNull, err
		}
		if a[0] < 0 {
			return zygo.SexpNull, fmt.Errorf("%s: negative width %g", name, a[0])
		}
		c.width = a[0]
		return zygo.SexpNull, nil
	})

	for _, sp := range spawners {
		env.AddFunction(sp.name, func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
			a, err := numbers(name, args, sp.nargs)
			if err != nil {
				return zygo.SexpNull, err
			}
			c.add(sp, a)
			return zygo.SexpNull, nil
		})
	}
}

// add records a spawn event at the current frame.
func (c *compiler) add(sp spawner, a []float64) {
	col := c.color
	width := c.width
	if widthless[sp.name] {
		width = 0
	}
	c.p.events = append(c.p.events, event{
		frame: c.frame,
		name:  sp.name,
		spawn: func(s *laser.System, origin vec.Vec2) *laser.Laser {
			l := sp.fn(s, origin.Add(v(a[0], a[1])), col, a)
			if width > 0 {
				l.Width = width
			}
			return l
		},
	})
}

// numbers converts the arguments of a builtin to float64 values.
func numbers(name string, args []zygo.Sexp, n int) ([]float64, error) {
	if len(args) != n {
		return nil, fmt.Errorf("%s: expected %d arguments, got %d", name, n, len(args))
	}
	res := make([]float64, n)
	for i, arg := range args {
		switch x := arg.(type) {
		case *zygo.SexpInt:
			res[i] = float64(x.Val)
		case *zygo.SexpFloat:
			res[i] = x.Val
		default:
			return nil, fmt.Errorf("%s: argument %d: expected number, got %s",
				name, i+1, arg.SexpString(nil))
		}
	}
	return res, nil
}

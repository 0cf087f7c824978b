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
	"image/color"
	"log/slog"
	"math"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/laser/geometry"
)

// System owns a set of lasers and advances them frame by frame.
//
// Internal buffers grow as needed but never shrink.
// A System is not safe for concurrent use.
type System struct {
	// StageCleared forces all lasers to be cleared in every frame while it
	// is set.
	StageCleared bool

	cfg     Config
	logger  *slog.Logger
	effects Effects

	frame  int
	lasers []*Laser
	free   []*Laser

	arena   arena
	samples []sample

	tasks    []taskEntry
	lastTask TaskID
}

// NewSystem returns an empty system. If cfg is nil, [DefaultConfig] is used.
// If effects is nil, events are discarded.
func NewSystem(cfg *Config, effects Effects) *System {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if !(cfg.SampleStep > 0) {
		panic(fmt.Sprintf("laser: invalid sample step %g", cfg.SampleStep))
	}
	if effects == nil {
		effects = NopEffects{}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &System{
		cfg:     *cfg,
		logger:  logger,
		effects: effects,
		arena:   arena{max: cfg.MaxSegments},
	}
}

// Frame returns the number of completed calls to [System.Step].
func (s *System) Frame() int {
	return s.frame
}

// Config returns the configuration of the system.
func (s *System) Config() Config {
	return s.cfg
}

// Lasers returns the live lasers, in creation order.
// The slice is only valid until the next call to a method of s.
func (s *System) Lasers() []*Laser {
	return s.lasers
}

// Segments returns the segments of l for the current frame.
// The slice must not be modified, and is only valid until the next call
// to [System.Step].
func (s *System) Segments(l *Laser) []Segment {
	if l.segNum == 0 {
		return nil
	}
	return s.arena.slice(l.segOfs, l.segNum)
}

// NumSegments returns the number of segments in the arena.
func (s *System) NumSegments() int {
	return s.arena.len()
}

// Create adds a laser whose curve is given by rule.
//
// The laser starts with width 10, width exponent 1, speed 1 and collision
// enabled.
func (s *System) Create(origin vec.Vec2, timespan, deathtime float64, c color.NRGBA, rule Rule) *Laser {
	var l *Laser
	if n := len(s.free); n > 0 {
		l = s.free[n-1]
		s.free = s.free[:n-1]
	} else {
		l = &Laser{}
	}

	gen := l.gen
	*l = Laser{
		Pos:             origin,
		Rule:            rule,
		Color:           c,
		Timespan:        timespan,
		DeathTime:       deathtime,
		Speed:           1,
		Width:           10,
		WidthExponent:   1,
		CollisionActive: true,

		birth: s.frame,
		gen:   gen,
		alive: true,
		sys:   s,
	}
	l.Pos = l.PosAt(BirthTime)
	s.lasers = append(s.lasers, l)

	s.logger.Debug("laser created",
		"frame", s.frame,
		"rule", fmt.Sprintf("%T", rule),
		"timespan", timespan,
		"deathtime", deathtime)

	return l
}

// CreateLineAB adds a static line laser from a to b, which charges up over
// charge frames, reaches the given width and fades out after dur frames.
func (s *System) CreateLineAB(a, b vec.Vec2, width, charge, dur float64, c color.NRGBA) *Laser {
	// The samples are still needed for the tapered ends.
	const timespan = 4

	l := s.Create(vec.Vec2{}, timespan, dur, c, NewLinearRule(vec.Vec2{}))
	l.SetLineEndpoints(a, b)
	s.Schedule(&ChargeTask{
		Laser:       l.Handle(),
		ChargeDelay: charge,
		TargetWidth: width,
	})
	return l
}

// CreateLine adds a line laser starting at pos. The beam extends far
// beyond the viewport in the direction of dir, and the length of dir gives
// the width.
func (s *System) CreateLine(pos, dir vec.Vec2, charge, dur float64, c color.NRGBA) *Laser {
	width := dir.Length()
	b := pos.Add(dir.Mul(ViewportHeight * 1.4 / width))
	return s.CreateLineAB(pos, b, width, charge, dur, c)
}

// CreateDynamic adds a laser which traces the path of its own origin.
// The origin moves according to the returned [Move], which may be changed
// while the laser is alive.
func (s *System) CreateDynamic(pos vec.Vec2, timespan, deathtime float64, c color.NRGBA) (*Laser, *Move) {
	rule := &DynamicRule{
		History: NewHistory(int(math.Ceil(timespan)) + 2),
	}
	l := s.Create(pos, timespan, deathtime, c, rule)
	s.Schedule(&dynamicTask{laser: l.Handle(), rule: rule})
	return l, &rule.Move
}

// DeleteAll removes all lasers.
func (s *System) DeleteAll() {
	for _, l := range s.lasers {
		s.release(l)
	}
	clear(s.lasers)
	s.lasers = s.lasers[:0]
}

func (s *System) release(l *Laser) {
	s.logger.Debug("laser deleted",
		"frame", s.frame,
		"birth", l.birth)

	l.alive = false
	l.gen++
	l.Rule = nil
	l.segNum = 0
	s.free = append(s.free, l)
}

// Step advances the system by one frame.
//
// The scheduled tasks run first. Then expired lasers are deleted, all
// remaining lasers are quantized, and finally cleared lasers are dissolved
// into items while all others are tested against the player.
// If plr is nil, collision testing is skipped.
//
// If the segment arena overflows, the lasers which did not fit have no
// segments in this frame and the error wraps [ErrArenaFull].
func (s *System) Step(plr *Player) error {
	s.runTasks()
	err := s.process(plr)
	s.frame++
	return err
}

func (s *System) process(plr *Player) error {
	s.arena.reset()

	var quantErr error
	live := s.lasers[:0]
	for _, l := range s.lasers {
		if l.Age() > l.DeathTime+l.Timespan*l.Speed {
			s.release(l)
			continue
		}
		live = append(live, l)

		if quantErr == nil {
			err := s.quantize(l)
			if err != nil {
				quantErr = fmt.Errorf("frame %d: %w", s.frame, err)
				s.logger.Error("laser quantization failed",
					"frame", s.frame,
					"segments", s.arena.len(),
					"error", err)
			}
		} else {
			l.segOfs = s.arena.len()
			l.segNum = 0
			l.bbox = rect.Rect{}
		}

		if s.StageCleared {
			l.MarkCleared(ClearLasers | ClearForce)
		}
	}
	clear(s.lasers[len(live):])
	s.lasers = live

	// Effects may add lasers; these are not visited until the next frame.
	lasers := s.lasers
	for _, l := range lasers {
		if l == nil || !l.alive {
			continue
		}
		if l.ClearFlags&ClearLasers != 0 {
			s.clearNow(l)
			l.DeathTime = 0
		} else if plr != nil && s.collide(l, plr) {
			s.effects.Damage(l)
		}
	}

	return quantErr
}

// clearNow dissolves the visible part of l into items and particles.
func (s *System) clearNow(l *Laser) {
	var prevPos vec.Vec2
	var prevWidth float64

	Trace(l, s.cfg.ClearStep, func(ts *TraceSample) (struct{}, bool) {
		pos := ts.Pos
		width := ts.Width()
		s.effects.ClearItem(pos, l.ClearFlags)

		if !ts.Discontinuous {
			for _, f := range []float64{0.33, 0.66} {
				s.effects.ClearParticle(
					geometry.Lerp(prevPos, pos, f),
					lerp(prevWidth, width, f),
					l.Color)
			}
		}
		s.effects.ClearParticle(pos, width, l.Color)

		prevPos = pos
		prevWidth = width
		return struct{}{}, false
	})
}

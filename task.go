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

import "slices"

// Task is a per-frame state machine driven by a [System].
//
// Advance is called once when the task is scheduled, and then once per
// frame before the lasers are processed. It returns false when the task is
// finished. Tasks which modify a laser should hold a [Handle] and finish
// once the laser is gone.
type Task interface {
	Advance(s *System) bool
}

// TaskFunc adapts a function to the [Task] interface.
type TaskFunc func(s *System) bool

// Advance calls f(s).
func (f TaskFunc) Advance(s *System) bool {
	return f(s)
}

// TaskID identifies a scheduled task.
type TaskID uint64

type taskEntry struct {
	id   TaskID
	task Task
	done bool
}

// Schedule runs the first step of t and, unless t is finished already,
// keeps advancing it once per frame.
func (s *System) Schedule(t Task) TaskID {
	s.lastTask++
	id := s.lastTask
	if t.Advance(s) {
		s.tasks = append(s.tasks, taskEntry{id: id, task: t})
	}
	return id
}

// Cancel stops the task with the given ID. Changes already made by the task
// stay in effect. Cancelling a finished task has no effect.
func (s *System) Cancel(id TaskID) {
	for i := range s.tasks {
		if s.tasks[i].id == id {
			s.tasks[i].done = true
			return
		}
	}
}

// runTasks advances all tasks which were scheduled before the call.
func (s *System) runTasks() {
	n := len(s.tasks)
	for i := 0; i < n; i++ {
		if s.tasks[i].done {
			continue
		}
		// Advance may schedule new tasks and thereby move s.tasks
		t := s.tasks[i].task
		if !t.Advance(s) {
			s.tasks[i].done = true
		}
	}

	s.tasks = slices.DeleteFunc(s.tasks, func(e taskEntry) bool {
		return e.done
	})
}

// ChargeTask turns a linear laser into a static line which charges up:
// see [Laser.Charge].
type ChargeTask struct {
	Laser       Handle
	ChargeDelay float64
	TargetWidth float64

	t       int
	started bool
}

// Advance implements the [Task] interface.
func (c *ChargeTask) Advance(s *System) bool {
	l := c.Laser.Laser()
	if l == nil {
		return false
	}

	if !c.started {
		l.Width = 0
		l.CollisionActive = false
		l.MakeStatic()
		c.started = true
	}

	l.Charge(c.t, c.ChargeDelay, c.TargetWidth)
	c.t++
	return true
}

// dynamicTask records the motion of a dynamic laser's origin.
type dynamicTask struct {
	laser   Handle
	rule    *DynamicRule
	started bool
}

func (d *dynamicTask) Advance(s *System) bool {
	l := d.laser.Laser()
	if l == nil {
		return false
	}

	if !d.started {
		// seed the history so that interpolation has neighbours from the
		// first frame on
		for range 3 {
			d.rule.History.Push(l.Pos)
		}
		d.started = true
		return true
	}

	if l.Age() > l.DeathTime {
		return false
	}
	d.rule.Move.Update(&l.Pos)
	d.rule.History.Push(l.Pos)
	return true
}

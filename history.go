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

	"seehuhn.de/go/geom/vec"
)

// History is a fixed-capacity ring buffer of positions.
// When the buffer is full, pushing overwrites the oldest entry.
type History struct {
	buf  []vec.Vec2
	head int // index of the oldest entry
	size int
}

// NewHistory returns an empty history which holds up to capacity entries.
func NewHistory(capacity int) *History {
	if capacity < 1 {
		panic(fmt.Sprintf("laser: invalid history capacity %d", capacity))
	}
	return &History{buf: make([]vec.Vec2, capacity)}
}

// Push appends p as the newest entry.
func (h *History) Push(p vec.Vec2) {
	n := len(h.buf)
	if h.size < n {
		h.buf[(h.head+h.size)%n] = p
		h.size++
		return
	}
	h.buf[h.head] = p
	h.head = (h.head + 1) % n
}

// Peek returns the k-th oldest entry, for 0 <= k < Len().
func (h *History) Peek(k int) vec.Vec2 {
	if k < 0 || k >= h.size {
		panic(fmt.Sprintf("laser: history index %d out of range [0, %d)", k, h.size))
	}
	return h.buf[(h.head+k)%len(h.buf)]
}

// Len returns the number of stored entries.
func (h *History) Len() int {
	return h.size
}

// Cap returns the capacity of the history.
func (h *History) Cap() int {
	return len(h.buf)
}

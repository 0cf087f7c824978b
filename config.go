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
	"log/slog"

	"seehuhn.de/go/geom/rect"
)

const (
	// ViewportWidth and ViewportHeight give the size of the default playing
	// field.
	ViewportWidth  = 480
	ViewportHeight = 560

	// defaultSampleStep is the curve time between two quantization samples.
	defaultSampleStep = 0.5

	// defaultSDFRange is the distance over which the renderer's distance
	// field fades out. Segments closer than this to the viewport are kept.
	defaultSDFRange = 4.01

	// defaultGrazeRadius is the distance from the capsule surface at which a
	// laser starts to graze the player.
	defaultGrazeRadius = 42

	// defaultGrazeCooldown is the number of frames between two grazes of the
	// same laser.
	defaultGrazeCooldown = 4

	// defaultClearStep is the arc length between two clear items.
	defaultClearStep = 16

	// collisionShrink is subtracted from a segment's half-width to obtain
	// its hitbox radius.
	collisionShrink = 4

	// collisionMinRadius is the smallest hitbox radius of a segment.
	collisionMinRadius = 2

	// decimationAngle is the threshold for 1-|cos θ| below which two
	// consecutive chords count as collinear.
	decimationAngle = 1e-4

	// decimationWindow divides the sample count to give the largest time
	// span which may be merged into a single segment.
	decimationWindow = 16
)

// Config holds the tunable parameters of a [System].
type Config struct {
	// Viewport is the visible area in world coordinates (y down).
	// Segments which cannot affect this area are not emitted.
	Viewport rect.Rect

	// SampleStep is the curve time between quantization samples.
	// Must be positive.
	SampleStep float64

	// SDFRange pads the viewport and the laser bounding boxes,
	// in addition to half the laser width.
	SDFRange float64

	// GrazeRadius is the graze distance from the laser surface.
	GrazeRadius float64

	// GrazeCooldown is the number of frames between two grazes by the same
	// laser.
	GrazeCooldown int

	// ClearStep is the arc length between clear items when a laser is
	// cleared.
	ClearStep float64

	// MaxSegments bounds the size of the segment arena.
	// Zero means unbounded.
	MaxSegments int

	// Logger receives diagnostic messages. Nil means slog.Default().
	Logger *slog.Logger
}

// DefaultConfig returns the configuration for the standard playing field.
func DefaultConfig() *Config {
	return &Config{
		Viewport:      rect.Rect{LLx: 0, LLy: 0, URx: ViewportWidth, URy: ViewportHeight},
		SampleStep:    defaultSampleStep,
		SDFRange:      defaultSDFRange,
		GrazeRadius:   defaultGrazeRadius,
		GrazeCooldown: defaultGrazeCooldown,
		ClearStep:     defaultClearStep,
	}
}

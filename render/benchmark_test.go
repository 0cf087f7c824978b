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

package render

import (
	"image"
	"image/color"
	"io"
	"log/slog"
	"testing"

	"golang.org/x/image/vector"
	"seehuhn.de/go/geom/path"

	"seehuhn.de/go/laser"
	"seehuhn.de/go/laser/testcases"
)

func benchScenario(b *testing.B, category, name string) *laser.System {
	b.Helper()
	cfg := laser.DefaultConfig()
	cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	for _, sc := range testcases.All[category] {
		if sc.Name != name {
			continue
		}
		s, err := sc.Run(cfg)
		if err != nil {
			b.Fatal(err)
		}
		return s
	}
	b.Fatalf("unknown scenario %s_%s", category, name)
	return nil
}

var benchScenarios = []struct{ category, name string }{
	{"line", "charged_fan"},
	{"curve", "static_sine"},
	{"dynamic", "towards"},
}

// BenchmarkFillSegments measures the capsule rasterizer on a full frame.
func BenchmarkFillSegments(b *testing.B) {
	for _, bs := range benchScenarios {
		b.Run(bs.category+"_"+bs.name, func(b *testing.B) {
			s := benchScenario(b, bs.category, bs.name)
			r := NewRasterizer(viewport)
			dst := image.NewRGBA(image.Rect(0, 0, width, height))

			b.ReportAllocs()
			for b.Loop() {
				DrawSystem(r, dst, s)
			}
		})
	}
}

// BenchmarkVector measures x/image/vector filling the same outlines.
func BenchmarkVector(b *testing.B) {
	for _, bs := range benchScenarios {
		b.Run(bs.category+"_"+bs.name, func(b *testing.B) {
			s := benchScenario(b, bs.category, bs.name)
			r := NewRasterizer(viewport)
			var outlines []*path.Data
			for _, l := range s.Lasers() {
				outlines = append(outlines, r.Outline(s.Segments(l)))
			}

			v := vector.NewRasterizer(width, height)
			dst := image.NewAlpha(image.Rect(0, 0, width, height))
			src := image.NewUniform(color.Alpha{A: 255})

			b.ReportAllocs()
			for b.Loop() {
				for _, p := range outlines {
					v.Reset(width, height)
					addToVector(v, p)
					v.Draw(dst, dst.Bounds(), src, image.Point{})
				}
			}
		})
	}
}

// BenchmarkSample measures the distance field sampler.
func BenchmarkSample(b *testing.B) {
	for _, bs := range benchScenarios {
		b.Run(bs.category+"_"+bs.name, func(b *testing.B) {
			s := benchScenario(b, bs.category, bs.name)
			f := SystemSDF(s)
			buf := make([]byte, width*height)
			emit := ToGray(buf, width)

			for b.Loop() {
				Sample(f, viewport, emit)
			}
		})
	}
}

func addToVector(v *vector.Rasterizer, p *path.Data) {
	idx := 0
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			pt := p.Coords[idx]
			v.MoveTo(float32(pt.X), float32(pt.Y))
			idx++
		case path.CmdLineTo:
			pt := p.Coords[idx]
			v.LineTo(float32(pt.X), float32(pt.Y))
			idx++
		case path.CmdClose:
			v.ClosePath()
		}
	}
}

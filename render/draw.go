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

	"seehuhn.de/go/laser"
)

// DrawSystem composites all lasers of s onto dst, in creation order, using
// their colors.  The clip rectangle of r must lie within the bounds of dst.
func DrawSystem(r *Rasterizer, dst *image.RGBA, s *laser.System) {
	for _, l := range s.Lasers() {
		segs := s.Segments(l)
		if len(segs) == 0 {
			continue
		}
		r.FillSegments(segs, Paint(dst, l.Color))
	}
}

// Paint returns an emit callback which paints c over dst, scaled by
// the pixel coverage.
func Paint(dst *image.RGBA, c color.NRGBA) EmitFunc {
	return func(y, xMin int, coverage []float32) {
		i := dst.PixOffset(xMin, y)
		for _, cov := range coverage {
			a := float32(c.A) / 255 * cov
			px := dst.Pix[i : i+4 : i+4]
			px[0] = blend(px[0], c.R, a)
			px[1] = blend(px[1], c.G, a)
			px[2] = blend(px[2], c.B, a)
			px[3] = blend(px[3], 255, a)
			i += 4
		}
	}
}

// blend mixes premultiplied dst with the straight color component src at
// opacity a.
func blend(dst, src uint8, a float32) uint8 {
	v := float32(dst)*(1-a) + float32(src)*a
	return uint8(min(v+0.5, 255))
}

// ToGray converts coverage to 8-bit gray values in buf, which holds one
// byte per pixel with the given stride.  Pixels outside the emitted rows
// are left unchanged.
func ToGray(buf []byte, stride int) EmitFunc {
	return func(y, xMin int, coverage []float32) {
		row := buf[y*stride+xMin:]
		for i, c := range coverage {
			row[i] = byte(max(0, min(255, int(c*256))))
		}
	}
}

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

// Command export runs all laser scenarios and writes the resulting
// segment chains to JSON.
// Run from the module root directory.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"maps"
	"os"
	"slices"

	"seehuhn.de/go/laser"
	"seehuhn.de/go/laser/testcases"
)

func main() {
	outFile := flag.String("o", "testdata/scenarios.json", "output file")
	flag.Parse()

	if err := run(*outFile); err != nil {
		fmt.Fprintln(os.Stderr, "export:", err)
		os.Exit(1)
	}
}

func run(fname string) error {
	var out struct {
		Scenarios []jsonScenario `json:"scenarios"`
	}

	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, sc := range testcases.All[category] {
			s, err := sc.Run(nil)
			if err != nil {
				return err
			}
			out.Scenarios = append(out.Scenarios, toJSON(category, sc, s))
		}
	}

	f, err := os.Create(fname)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

type jsonScenario struct {
	Name    string      `json:"name"`
	Frame   int         `json:"frame"`
	LineCap string      `json:"line_cap"`
	Lasers  []jsonLaser `json:"lasers"`
}

type jsonLaser struct {
	Color    [4]uint8      `json:"color"`
	BBox     [4]float64    `json:"bbox"`
	Active   bool          `json:"active"`
	Segments []jsonSegment `json:"segments"`
}

type jsonSegment struct {
	A      [2]float64 `json:"a"`
	B      [2]float64 `json:"b"`
	WidthA float64    `json:"width_a"`
	WidthB float64    `json:"width_b"`
	TimeA  float64    `json:"time_a"`
	TimeB  float64    `json:"time_b"`
}

func toJSON(category string, sc testcases.Scenario, s *laser.System) jsonScenario {
	js := jsonScenario{
		Name:    category + "_" + sc.Name,
		Frame:   s.Frame(),
		LineCap: sc.Cap.String(),
	}
	for _, l := range s.Lasers() {
		bb := l.BBox()
		jl := jsonLaser{
			Color:  [4]uint8{l.Color.R, l.Color.G, l.Color.B, l.Color.A},
			BBox:   [4]float64{bb.LLx, bb.LLy, bb.URx, bb.URy},
			Active: l.IsActive(),
		}
		for _, seg := range s.Segments(l) {
			jl.Segments = append(jl.Segments, jsonSegment{
				A:      [2]float64{seg.A.X, seg.A.Y},
				B:      [2]float64{seg.B.X, seg.B.Y},
				WidthA: seg.WidthA,
				WidthB: seg.WidthB,
				TimeA:  seg.TimeA,
				TimeB:  seg.TimeB,
			})
		}
		js.Lasers = append(js.Lasers, jl)
	}
	return js
}

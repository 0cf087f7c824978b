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
// Command lasersandbox plays a laser pattern in the terminal.
//
// The playing field is drawn with half-block characters, so that every
// terminal cell shows two pixels.  The arrow keys move the player, c clears
// all lasers, and Esc or q quits.
package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"image/color"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
	"github.com/gdamore/tcell/v2"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/laser"
	"seehuhn.de/go/laser/pattern"
	"seehuhn.de/go/laser/render"
)

const defaultScript = `
(color 255 64 64)
(laser_linear 100 40 0 4 30 120)
(wait 10)
(color 64 160 255)
(laser_sine 240 40 0 4 20 0.2 0 30 120)
(wait 10)
(color 96 255 96)
(laser_line 380 40 0 16 30 90)
(wait 30)
(color 255 200 64)
(laser_towards 240 0 0 2 240 500 0.05 0.05 20 200)
`

const (
	frameTime   = 16 * time.Millisecond
	playerSpeed = 6
)

func main() {
	script := flag.String("script", "", "pattern script to play")
	useSDF := flag.Bool("sdf", false, "sample distance fields instead of filling outlines")
	capName := flag.String("cap", "round", "segment end style: round, butt or square")
	logFile := flag.String("log", "", "write diagnostic messages to this file")
	flag.Parse()

	err := run(*script, *capName, *logFile, *useSDF)
	if err != nil {
		fmt.Fprintln(os.Stderr, "lasersandbox:", err)
		os.Exit(1)
	}
}

func run(scriptFile, capName, logFile string, useSDF bool) error {
	var logOut io.Writer = io.Discard
	if logFile != "" {
		f, err := os.Create(logFile)
		if err != nil {
			return err
		}
		defer f.Close()
		logOut = f
	}
	logger := slog.New(slog.NewTextHandler(logOut, nil))

	var lineCap graphics.LineCapStyle
	switch capName {
	case "round":
		lineCap = graphics.LineCapRound
	case "butt":
		lineCap = graphics.LineCapButt
	case "square":
		lineCap = graphics.LineCapSquare
	default:
		return fmt.Errorf("unknown cap style %q", capName)
	}

	name, src := "default", defaultScript
	if scriptFile != "" {
		body, err := os.ReadFile(scriptFile)
		if err != nil {
			return err
		}
		name, src = scriptFile, string(body)
	}
	p, err := pattern.Compile(name, src)
	if err != nil {
		return err
	}
	logger.Info("pattern loaded", "name", p.Name, "events", p.Len(), "frames", p.Duration())

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	sb := newSandbox(screen, p, logger)
	sb.useSDF = useSDF
	sb.raster.Cap = lineCap
	return sb.loop()
}

// sandbox holds the state of a running session.
type sandbox struct {
	screen tcell.Screen
	logger *slog.Logger

	sys    *laser.System
	pat    *pattern.Pattern
	start  int
	player laser.Player

	raster *render.Rasterizer
	useSDF bool
	img    *image.RGBA
	scale  float64

	hits   int
	grazes int
}

func newSandbox(screen tcell.Screen, p *pattern.Pattern, logger *slog.Logger) *sandbox {
	sb := &sandbox{
		screen: screen,
		logger: logger,
		pat:    p,
		player: laser.Player{Pos: vec.Vec2{X: laser.ViewportWidth / 2, Y: laser.ViewportHeight * 0.8}},
	}

	cfg := laser.DefaultConfig()
	cfg.Logger = logger
	sb.sys = laser.NewSystem(cfg, sb)

	sb.raster = render.NewRasterizer(rect.Rect{URx: 1, URy: 1})
	sb.resize()

	sb.start = sb.sys.Frame()
	sb.sys.Schedule(p)
	return sb
}

// Damage implements [laser.Effects].
func (sb *sandbox) Damage(l *laser.Laser) {
	sb.hits++
	sb.logger.Debug("hit", "frame", sb.sys.Frame(), "pos", sb.player.Pos)
}

// Graze implements [laser.Effects].
func (sb *sandbox) Graze(l *laser.Laser, pos vec.Vec2) {
	sb.grazes++
}

func (sb *sandbox) ClearItem(vec.Vec2, laser.ClearFlags) {}

func (sb *sandbox) ClearParticle(vec.Vec2, float64, color.NRGBA) {}

// resize adapts the pixel buffer to the terminal size.  The viewport is
// scaled uniformly to fit, with one text row reserved for the status line.
func (sb *sandbox) resize() {
	w, h := sb.screen.Size()
	w = max(w, 1)
	h = max(h-1, 1)

	sb.scale = min(float64(w)/laser.ViewportWidth, float64(2*h)/laser.ViewportHeight)
	pw := max(int(laser.ViewportWidth*sb.scale), 1)
	ph := max(int(laser.ViewportHeight*sb.scale), 1)
	sb.img = image.NewRGBA(image.Rect(0, 0, pw, ph))

	lineCap := sb.raster.Cap
	sb.raster.Reset(rect.Rect{URx: float64(pw), URy: float64(ph)})
	sb.raster.Cap = lineCap
	sb.raster.CTM = matrix.Scale(sb.scale, sb.scale)
}

func (sb *sandbox) loop() error {
	ticker := time.NewTicker(frameTime)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			events <- sb.screen.PollEvent()
		}
	}()

	var move vec.Vec2
	for {
		select {
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventResize:
				sb.resize()
				sb.screen.Sync()
			case *tcell.EventKey:
				switch {
				case ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC:
					return nil
				case ev.Key() == tcell.KeyRune && ev.Rune() == 'q':
					return nil
				case ev.Key() == tcell.KeyRune && ev.Rune() == 'c':
					for _, l := range sb.sys.Lasers() {
						l.MarkCleared(laser.ClearLasers | laser.ClearForce)
					}
				case ev.Key() == tcell.KeyLeft:
					move.X -= playerSpeed
				case ev.Key() == tcell.KeyRight:
					move.X += playerSpeed
				case ev.Key() == tcell.KeyUp:
					move.Y -= playerSpeed
				case ev.Key() == tcell.KeyDown:
					move.Y += playerSpeed
				}
			}

		case <-ticker.C:
			if err := sb.step(move); err != nil {
				return err
			}
			move = vec.Vec2{}
			sb.draw()
		}
	}
}

// step advances the simulation by one frame.  The pattern restarts once
// it has finished and all its lasers are gone.
func (sb *sandbox) step(move vec.Vec2) error {
	old := sb.player.Pos
	sb.player.Pos.X = min(max(old.X+move.X, 0), laser.ViewportWidth)
	sb.player.Pos.Y = min(max(old.Y+move.Y, 0), laser.ViewportHeight)
	sb.player.Velocity = sb.player.Pos.Sub(old)

	err := sb.sys.Step(&sb.player)
	if errors.Is(err, laser.ErrArenaFull) {
		sb.logger.Warn("segment arena full", "frame", sb.sys.Frame())
	} else if err != nil {
		return err
	}

	if sb.sys.Frame()-sb.start > sb.pat.Duration() && len(sb.sys.Lasers()) == 0 {
		sb.pat.Reset()
		sb.start = sb.sys.Frame()
		sb.sys.Schedule(sb.pat)
	}
	return nil
}

func (sb *sandbox) draw() {
	clear(sb.img.Pix)
	if sb.useSDF {
		clip := rect.Rect{URx: float64(sb.img.Rect.Dx()), URy: float64(sb.img.Rect.Dy())}
		for _, l := range sb.sys.Lasers() {
			c := render.NewChainSDF(sb.sys.Segments(l))
			if c == nil {
				continue
			}
			render.Sample(scaledSDF{c, sb.scale}, clip, render.Paint(sb.img, l.Color))
		}
	} else {
		render.DrawSystem(sb.raster, sb.img, sb.sys)
	}

	sb.screen.Clear()
	b := sb.img.Rect
	for y := 0; y < b.Dy(); y += 2 {
		for x := range b.Dx() {
			top := sb.img.RGBAAt(x, y)
			bot := sb.img.RGBAAt(x, y+1)
			if top.A == 0 && bot.A == 0 {
				continue
			}
			style := tcell.StyleDefault.
				Foreground(tcell.NewRGBColor(int32(top.R), int32(top.G), int32(top.B))).
				Background(tcell.NewRGBColor(int32(bot.R), int32(bot.G), int32(bot.B)))
			sb.screen.SetContent(x, y/2+1, '▀', nil, style)
		}
	}

	px := int(sb.player.Pos.X * sb.scale)
	py := int(sb.player.Pos.Y*sb.scale)/2 + 1
	playerStyle := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	if sb.hits > 0 {
		playerStyle = playerStyle.Bold(true)
	}
	sb.screen.SetContent(px, py, '●', nil, playerStyle)

	mode := "raster"
	if sb.useSDF {
		mode = "sdf"
	}
	status := fmt.Sprintf(" %s  frame %d  lasers %d  segments %d  hits %d  grazes %d  [%s %s]",
		sb.pat.Name, sb.sys.Frame(), len(sb.sys.Lasers()), sb.sys.NumSegments(),
		sb.hits, sb.grazes, mode, sb.raster.Cap)
	statusStyle := tcell.StyleDefault.Reverse(true)
	for i, r := range []rune(status) {
		sb.screen.SetContent(i, 0, r, nil, statusStyle)
	}

	sb.screen.Show()
}

// scaledSDF scales a distance field uniformly by k.
type scaledSDF struct {
	f sdf.SDF2
	k float64
}

func (s scaledSDF) Evaluate(p v2.Vec) float64 {
	return s.f.Evaluate(v2.Vec{X: p.X / s.k, Y: p.Y / s.k}) * s.k
}

func (s scaledSDF) BoundingBox() sdf.Box2 {
	bb := s.f.BoundingBox()
	return sdf.Box2{
		Min: v2.Vec{X: bb.Min.X * s.k, Y: bb.Min.Y * s.k},
		Max: v2.Vec{X: bb.Max.X * s.k, Y: bb.Max.Y * s.k},
	}
}

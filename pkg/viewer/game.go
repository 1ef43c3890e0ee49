// Package viewer shows a running simulation in an ebiten window.
package viewer

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/sirupsen/logrus"
	"golang.org/x/image/font/basicfont"

	"github.com/jamiehughes5926/nbody-simulator-a3/pkg/physics"
	"github.com/jamiehughes5926/nbody-simulator-a3/pkg/simulation"
)

const (
	trailMaxLife     = 2.0 // czas życia śladu w sekundach symulacji
	maxTrailSegments = 120 // maksymalna liczba segmentów śladu na ciało
)

// TrailSegment ---
type TrailSegment struct {
	X0, Y0, X1, Y1 float64
	Life           float64
	Color          color.RGBA
}

// Game ---
type Game struct {
	sim     *simulation.Simulator
	initial []physics.Body
	offset  physics.Vec2
	width   int
	height  int

	trails  [][]TrailSegment
	lastPos []physics.Vec2
	paused  bool

	// widoczność panelu skrótów
	shortcutsVisible bool

	err error
}

// NewGame wraps sim for display. offset is added to every body position
// to get screen coordinates.
func NewGame(sim *simulation.Simulator, width, height int, offset physics.Vec2) *Game {
	g := &Game{
		sim:              sim,
		initial:          append([]physics.Body(nil), sim.Bodies...),
		offset:           offset,
		width:            width,
		height:           height,
		shortcutsVisible: true,
	}
	g.resetTrails()
	return g
}

// Run opens the window and blocks until it is closed or a step fails.
func Run(g *Game, title string) error {
	ebiten.SetWindowSize(g.width, g.height)
	ebiten.SetWindowTitle(title)
	if err := ebiten.RunGame(g); err != nil {
		return err
	}
	return g.err
}

// Update ---
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.shortcutsVisible = !g.shortcutsVisible
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.resetSimulation()
		return nil
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	if g.paused {
		if inpututil.IsKeyJustPressed(ebiten.KeyN) {
			return g.advanceOneStep()
		}
		return nil
	}
	return g.advanceOneStep()
}

// advanceOneStep ---
func (g *Game) advanceOneStep() error {
	if err := g.sim.Update(); err != nil {
		// krok się nie udał: zatrzymaj grę i oddaj błąd wywołującemu
		g.err = err
		logrus.WithError(err).Error("simulation step failed")
		return ebiten.Termination
	}

	// update śladów
	for i := range g.sim.Bodies {
		b := g.sim.Bodies[i]
		from := g.lastPos[i].Add(g.offset)
		to := b.Pos.Add(g.offset)
		g.trails[i] = append(g.trails[i], TrailSegment{
			X0: from.X, Y0: from.Y, X1: to.X, Y1: to.Y,
			Life:  trailMaxLife,
			Color: b.ColorC,
		})
		if len(g.trails[i]) > maxTrailSegments {
			g.trails[i] = g.trails[i][len(g.trails[i])-maxTrailSegments:]
		}
		g.lastPos[i] = b.Pos

		// trim by life
		kept := g.trails[i][:0]
		for _, s := range g.trails[i] {
			s.Life -= g.sim.Dt
			if s.Life > 0 {
				kept = append(kept, s)
			}
		}
		g.trails[i] = kept
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	for _, trail := range g.trails {
		for _, s := range trail {
			c := color.NRGBA{s.Color.R, s.Color.G, s.Color.B, uint8(255 * s.Life / trailMaxLife)}
			vector.StrokeLine(screen, float32(s.X0), float32(s.Y0), float32(s.X1), float32(s.Y1), 1, c, true)
		}
	}

	for i := range g.sim.Bodies {
		b := g.sim.Bodies[i]
		p := b.Pos.Add(g.offset)
		if p.X < -b.Radius || p.Y < -b.Radius || p.X > float64(g.width)+b.Radius || p.Y > float64(g.height)+b.Radius {
			continue
		}
		vector.DrawFilledCircle(screen, float32(p.X), float32(p.Y), float32(b.Radius), b.ColorC, true)
	}

	ebitenutil.DebugPrint(screen, fmt.Sprintf("Env: %s\nBodies: %d  Step: %d\nPaused: %v  TPS: %.0f",
		g.sim.Name, len(g.sim.Bodies), g.sim.Step, g.paused, ebiten.ActualTPS()))
	if g.shortcutsVisible {
		g.drawShortcuts(screen)
	}
}

func (g *Game) drawShortcuts(screen *ebiten.Image) {
	lines := []string{
		"P  pause / resume",
		"N  single step (paused)",
		"R  reset to initial bodies",
		"H  hide this help",
		"Q  quit",
	}
	x := g.width - 220
	for i, l := range lines {
		text.Draw(screen, l, basicfont.Face7x13, x, 20+i*16, color.RGBA{200, 200, 200, 255})
	}
}

func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}

// resetSimulation przywraca ciała z początku symulacji
func (g *Game) resetSimulation() {
	g.sim.Bodies = append(g.sim.Bodies[:0], g.initial...)
	g.sim.Step = 0
	g.paused = false
	g.resetTrails()
}

func (g *Game) resetTrails() {
	g.lastPos = make([]physics.Vec2, len(g.sim.Bodies))
	g.trails = make([][]TrailSegment, len(g.sim.Bodies))
	for i := range g.sim.Bodies {
		g.lastPos[i] = g.sim.Bodies[i].Pos
	}
}

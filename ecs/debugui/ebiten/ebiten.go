// Package ebiten runs a Scheduler inside an Ebiten game loop with a Dear ImGui overlay.
package ebiten

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/eidstore/ecs"
)

// ImguiBackend wraps the Ebiten-specific Dear ImGui backend implementation.
type ImguiBackend struct {
	*ebitenbackend.EbitenBackend
}

// NewImguiBackend creates the ImGui backend and its window. The ImGui ini file is disabled.
func NewImguiBackend(title string, width, height int) *ImguiBackend {
	backend := ebitenbackend.NewEbitenBackend()
	backend.CreateWindow(title, width, height)
	imgui.CurrentIO().SetIniFilename("")

	return &ImguiBackend{EbitenBackend: backend}
}

// Game implements ebiten.Game. Every Update opens an ImGui frame, ticks the
// scheduler once, and closes the frame, so systems may issue ImGui calls.
type Game struct {
	Backend   *ImguiBackend
	Scheduler *ecs.Scheduler

	// DrawScene, when set, draws below the ImGui overlay.
	DrawScene func(screen *ebiten.Image)
}

func NewGame(backend *ImguiBackend, scheduler *ecs.Scheduler) *Game {
	return &Game{
		Backend:   backend,
		Scheduler: scheduler,
	}
}

func (g *Game) Update() error {
	g.Backend.BeginFrame()
	g.Scheduler.Once(1.0 / float64(ebiten.TPS()))
	g.Backend.EndFrame()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	if g.DrawScene != nil {
		g.DrawScene(screen)
	}
	g.Backend.Draw(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.Backend.Layout(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

// Run starts the Ebiten loop and blocks until the window closes.
func (g *Game) Run() error {
	return ebiten.RunGame(g)
}

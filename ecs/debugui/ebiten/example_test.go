package ebiten_test

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/eidstore/ecs"
	"github.com/plus3/eidstore/ecs/debugui"
	debugui_ebiten "github.com/plus3/eidstore/ecs/debugui/ebiten"
)

func Example() {
	// Create Ebiten window and ImGui backend
	backend := debugui_ebiten.NewImguiBackend("ECS ImGui Example", 1280, 720)

	// Register the debug components before the storage allocates
	registry := ecs.NewComponentRegistry()
	debugui.RegisterDebugUIComponents(registry)

	storage := ecs.NewStorage(registry)

	// Entities with ImGui render functions
	ecs.Spawn(storage, &debugui.ImguiItem{
		Render: func() {
			imgui.Begin("Debug Window")
			imgui.Text("Hello from ECS!")
			imgui.End()
		},
	})
	debugui.SpawnDebugUI(storage)

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&debugui.ImguiSystem{})
	scheduler.Register(&debugui.DebugUISystem{})

	game := debugui_ebiten.NewGame(backend, scheduler)
	if err := game.Run(); err != nil {
		panic(err)
	}
}

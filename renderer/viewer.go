package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/skirmish/camera"
	"github.com/pthm-cable/skirmish/components"
	"github.com/pthm-cable/skirmish/game"
	"github.com/pthm-cable/skirmish/ui"
)

const controlsLegend = "Space: pause | .: step | +/-: speed | R: radar | Wheel: zoom | Right drag: pan | C: reset view"

// Viewer steps a match and draws it each frame.
type Viewer struct {
	match *game.Match
	cam   *camera.Camera
	arena *ArenaRenderer

	hud      *ui.HUD
	controls *ui.ControlsPanel
	agents   *ui.AgentPanel
	perf     *ui.PerfPanel
	state    ui.ControlState

	screenW, screenH int32
	panelX           int32
	showPerf         bool
}

// NewViewer lays out the arena and side panel for m. The window must already be open.
func NewViewer(m *game.Match) *Viewer {
	cfg := m.Config()
	margin := int32(cfg.Screen.Margin)
	scale := float32(cfg.Screen.Scale)
	if scale <= 0 {
		scale = 1
	}
	arenaW := float32(cfg.Arena.Width) * scale
	arenaH := float32(cfg.Arena.Height) * scale

	cam := camera.New(float32(margin), float32(margin), arenaW, arenaH, float32(cfg.Arena.Width), float32(cfg.Arena.Height))
	panelX := margin*2 + int32(arenaW)
	panelW := int32(cfg.Screen.PanelW) - margin

	controls := ui.NewControlsPanel(panelX, margin, panelW)
	fields := components.AgentFieldDescriptors(cfg.Rules.StartEnergy, cfg.Rules.MaxVelocity)

	return &Viewer{
		match:    m,
		cam:      cam,
		arena:    NewArenaRenderer(cam, cfg.Rules.RadarRange),
		hud:      ui.NewHUD(),
		controls: controls,
		agents:   ui.NewAgentPanel(panelX, margin+controls.Height()+8, panelW, fields),
		perf:     ui.NewPerfPanel(margin+10, margin+90),
		state:    ui.ControlState{Speed: 1, Overlay: true},
		screenW:  cfg.Derived.ScreenW,
		screenH:  cfg.Derived.ScreenH,
		panelX:   panelX,
	}
}

// Update handles input and advances the match.
func (v *Viewer) Update() {
	ui.HandleKeys(&v.state)
	v.handleCamera()
	if rl.IsKeyPressed(rl.KeyP) {
		v.showPerf = !v.showPerf
	}

	if v.match.Finished() {
		return
	}
	switch {
	case v.state.StepOne:
		v.match.Step()
		v.state.StepOne = false
	case !v.state.Paused:
		for i := 0; i < int(v.state.Speed); i++ {
			if !v.match.Step() {
				break
			}
		}
	}
}

// handleCamera applies mouse zoom and pan over the arena.
func (v *Viewer) handleCamera() {
	mouse := rl.GetMousePosition()
	if !v.cam.Contains(mouse.X, mouse.Y) {
		return
	}
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		v.cam.ZoomBy(1 + wheel*0.1)
	}
	if rl.IsMouseButtonDown(rl.MouseButtonRight) {
		d := rl.GetMouseDelta()
		v.cam.Pan(-d.X, -d.Y)
	}
	if rl.IsKeyPressed(rl.KeyC) {
		v.cam.Reset()
	}
}

// Draw renders one frame.
func (v *Viewer) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	agents := v.match.Agents()
	projectiles := v.match.Projectiles()

	v.arena.DrawFloor()
	if v.state.Overlay {
		for _, a := range agents {
			v.arena.DrawRadar(a)
		}
	}
	for _, a := range agents {
		v.arena.DrawAgent(a)
	}
	for _, p := range projectiles {
		v.arena.DrawProjectile(p)
	}

	// Panels draw over anything the camera pushed past the arena.
	rl.DrawRectangle(v.panelX-4, 0, v.screenW-v.panelX+4, v.screenH, rl.Black)

	alive := 0
	for _, a := range agents {
		if a.Energy.Alive {
			alive++
		}
	}
	v.hud.Draw(int32(v.cam.OriginX)+10, int32(v.cam.OriginY)+10, ui.HUDData{
		Title:    "Skirmish",
		Round:    v.match.Round(),
		Rounds:   v.match.Rounds(),
		Tick:     v.match.Tick(),
		Alive:    alive,
		Agents:   len(agents),
		Shots:    len(projectiles),
		Speed:    v.state.Speed,
		FPS:      rl.GetFPS(),
		Paused:   v.state.Paused,
		Finished: v.match.Finished(),
	})
	if v.showPerf {
		v.perf.Draw(v.match.Perf())
	}
	v.controls.Draw(&v.state)
	v.agents.Draw(agents)
	v.hud.DrawControls(v.screenH, controlsLegend)

	rl.EndDrawing()
}

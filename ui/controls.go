package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Speed limits for the ticks-per-frame slider.
const (
	MinSpeed = 1
	MaxSpeed = 20
)

// ControlState is the viewer's playback state, edited by the controls panel.
type ControlState struct {
	Paused  bool
	StepOne bool // advance a single tick while paused
	Speed   float32
	Overlay bool // draw radar arcs and gun lines
}

// ControlsPanel renders playback buttons and the speed slider.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// Height returns the panel's drawn height.
func (c *ControlsPanel) Height() int32 {
	return 118
}

// Draw renders the panel and applies clicks to s.
func (c *ControlsPanel) Draw(s *ControlState) {
	r := c.renderer
	padding := r.Theme.Padding
	r.DrawPanel(c.x, c.y, c.width, c.Height())

	x := float32(c.x + padding)
	y := float32(c.y + padding)
	half := float32(c.width-padding*3) / 2

	rl.DrawText("Controls", int32(x), int32(y), 16, rl.White)
	y += 22

	if gui.Button(rl.Rectangle{X: x, Y: y, Width: half, Height: 24}, toggleText(s.Paused, "Resume", "Pause")) {
		s.Paused = !s.Paused
	}
	if gui.Button(rl.Rectangle{X: x + half + float32(padding), Y: y, Width: half, Height: 24}, "Step") {
		s.Paused = true
		s.StepOne = true
	}
	y += 32

	rl.DrawText(fmt.Sprintf("Ticks per frame: %.0f", s.Speed), int32(x), int32(y), r.Theme.FontSize, r.Theme.LabelColor)
	y += 14
	s.Speed = gui.SliderBar(
		rl.Rectangle{X: x, Y: y, Width: float32(c.width - padding*2), Height: 14},
		"", "",
		s.Speed, MinSpeed, MaxSpeed,
	)
	y += 20

	s.Overlay = gui.CheckBox(rl.Rectangle{X: x, Y: y, Width: 12, Height: 12}, "Radar overlay", s.Overlay)
}

// HandleKeys applies keyboard shortcuts to s.
func HandleKeys(s *ControlState) {
	if rl.IsKeyPressed(rl.KeySpace) {
		s.Paused = !s.Paused
	}
	if rl.IsKeyPressed(rl.KeyPeriod) {
		s.Paused = true
		s.StepOne = true
	}
	if rl.IsKeyPressed(rl.KeyR) {
		s.Overlay = !s.Overlay
	}
	if rl.IsKeyPressed(rl.KeyEqual) && s.Speed < MaxSpeed {
		s.Speed++
	}
	if rl.IsKeyPressed(rl.KeyMinus) && s.Speed > MinSpeed {
		s.Speed--
	}
}

func toggleText(on bool, onText, offText string) string {
	if on {
		return onText
	}
	return offText
}

package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/skirmish/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title    string
	Round    int
	Rounds   int
	Tick     int64
	Alive    int
	Agents   int
	Shots    int
	Speed    float32
	FPS      int32
	Paused   bool
	Finished bool
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
	}
}

// Draw renders the HUD at the top-left of the screen.
func (h *HUD) Draw(x, y int32, data HUDData) {
	rl.DrawText(data.Title, x, y, 20, rl.White)

	rl.DrawText(
		fmt.Sprintf("Round %d/%d | Tick: %d | Alive: %d/%d | Shots: %d", data.Round, data.Rounds, data.Tick, data.Alive, data.Agents, data.Shots),
		x, y+25, 16, rl.LightGray,
	)
	rl.DrawText(fmt.Sprintf("Speed: %.0fx | FPS: %d", data.Speed, data.FPS), x, y+45, 16, rl.LightGray)

	status := "Running"
	switch {
	case data.Finished:
		status = "FINISHED"
	case data.Paused:
		status = "PAUSED"
	}
	rl.DrawText(status, x, y+65, 16, rl.Yellow)
}

// DrawControls renders the key legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-20, 14, rl.Gray)
}

// PerfPanel renders tick phase timings.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
	}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	x := p.x
	y := p.y

	rl.DrawText("Tick Phases", x, y, 16, rl.White)
	y += 20

	rl.DrawText(fmt.Sprintf("Avg: %s  (%.0f t/s)", stats.AvgTickDuration.Round(time.Microsecond), stats.TicksPerSecond), x, y, 14, rl.Yellow)
	y += 16

	for _, name := range telemetry.Phases {
		avg := stats.PhaseAvg[name]
		pct := float64(0)
		if stats.AvgTickDuration > 0 {
			pct = float64(avg) / float64(stats.AvgTickDuration) * 100
		}

		color := rl.LightGray
		if pct > 40 {
			color = rl.Red
		} else if pct > 20 {
			color = rl.Orange
		}

		rl.DrawText(fmt.Sprintf("%-12s %6s %5.1f%%", name, avg.Round(time.Microsecond), pct), x, y, 12, color)
		y += 14
	}
}

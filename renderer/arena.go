// Package renderer draws the arena, its agents and the shots in flight.
package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/skirmish/camera"
	"github.com/pthm-cable/skirmish/game"
	"github.com/pthm-cable/skirmish/ui"
)

var (
	floorColor  = rl.Color{R: 18, G: 22, B: 26, A: 255}
	gridColor   = rl.Color{R: 32, G: 38, B: 44, A: 255}
	wallColor   = rl.Color{R: 90, G: 100, B: 110, A: 255}
	shotColor   = rl.Color{R: 250, G: 240, B: 180, A: 255}
	deadColor   = rl.Color{R: 60, G: 60, B: 60, A: 160}
	gridSpacing = float32(100)
)

// ArenaRenderer draws the arena through a camera.
type ArenaRenderer struct {
	cam        *camera.Camera
	radarRange float32
}

// NewArenaRenderer creates a new arena renderer.
func NewArenaRenderer(cam *camera.Camera, radarRange float64) *ArenaRenderer {
	return &ArenaRenderer{cam: cam, radarRange: float32(radarRange)}
}

// screen maps an arena point to a raylib vector.
func (a *ArenaRenderer) screen(x, y float64) rl.Vector2 {
	sx, sy := a.cam.WorldToScreen(float32(x), float32(y))
	return rl.Vector2{X: sx, Y: sy}
}

// screenAngle converts an arena heading to raylib's screen angle, 0 = +x and clockwise.
func screenAngle(heading float64) float32 {
	return float32(heading - 90)
}

// DrawFloor fills the arena and draws its grid and walls.
func (a *ArenaRenderer) DrawFloor() {
	c := a.cam
	bl := a.screen(0, 0)
	tr := a.screen(float64(c.WorldW), float64(c.WorldH))
	rect := rl.Rectangle{X: bl.X, Y: tr.Y, Width: tr.X - bl.X, Height: bl.Y - tr.Y}
	rl.DrawRectangleRec(rect, floorColor)

	for x := gridSpacing; x < c.WorldW; x += gridSpacing {
		rl.DrawLineV(a.screen(float64(x), 0), a.screen(float64(x), float64(c.WorldH)), gridColor)
	}
	for y := gridSpacing; y < c.WorldH; y += gridSpacing {
		rl.DrawLineV(a.screen(0, float64(y)), a.screen(float64(c.WorldW), float64(y)), gridColor)
	}
	rl.DrawRectangleLinesEx(rect, 2, wallColor)
}

// DrawRadar draws the sweep an agent's radar covered on the last tick.
func (a *ArenaRenderer) DrawRadar(v game.AgentView) {
	if !v.Energy.Alive {
		return
	}
	from, to := v.Gun.PrevHeading, v.Gun.Heading
	turn := math.Remainder(to-from, 360)
	start := screenAngle(from)
	end := start + float32(turn)
	if end < start {
		start, end = end, start
	}
	if end-start < 1 {
		end = start + 1
	}

	color := ui.IndicatorColor(v.Agent.Indicators.Radar)
	color.A = 40
	center := a.screen(v.Position.X, v.Position.Y)
	rl.DrawCircleSector(center, a.cam.Scale(a.radarRange), start, end, 16, color)
}

// DrawAgent draws an agent's hull, gun and name.
func (a *ArenaRenderer) DrawAgent(v game.AgentView) {
	center := a.screen(v.Position.X, v.Position.Y)
	w := a.cam.Scale(float32(v.Hull.Width))
	h := a.cam.Scale(float32(v.Hull.Height))
	hull := rl.Rectangle{X: center.X, Y: center.Y, Width: w, Height: h}

	if !v.Energy.Alive {
		rl.DrawRectanglePro(hull, rl.Vector2{X: w / 2, Y: h / 2}, float32(v.Motion.Heading), deadColor)
		return
	}

	ind := v.Agent.Indicators
	rl.DrawRectanglePro(hull, rl.Vector2{X: w / 2, Y: h / 2}, float32(v.Motion.Heading), ui.IndicatorColor(ind.Body))

	length := math.Max(v.Hull.Width, v.Hull.Height) * 0.8
	rad := v.Gun.Heading * math.Pi / 180
	muzzle := a.screen(v.Position.X+length*math.Sin(rad), v.Position.Y+length*math.Cos(rad))
	rl.DrawLineEx(center, muzzle, 3, ui.IndicatorColor(ind.Gun))

	label := v.Agent.Name
	labelW := rl.MeasureText(label, 10)
	rl.DrawText(label, int32(center.X)-labelW/2, int32(center.Y+h/2)+4, 10, rl.LightGray)
}

// DrawProjectile draws one shot, larger for heavier power.
func (a *ArenaRenderer) DrawProjectile(p game.ProjectileView) {
	center := a.screen(p.Position.X, p.Position.Y)
	radius := a.cam.Scale(float32(1.5 + p.Projectile.Power))
	rl.DrawCircleV(center, radius, shotColor)
}

// Package camera maps arena coordinates onto the viewer's screen.
package camera

// Camera controls the viewport into the arena.
// The arena's y axis points up; the screen's points down.
type Camera struct {
	// Position is the camera center in arena coordinates
	X, Y float32

	// Zoom level (1.0 = 1:1, 2.0 = 2x magnification)
	Zoom float32

	// Viewport origin and size on screen
	OriginX, OriginY     float32
	ViewportW, ViewportH float32

	// Arena dimensions
	WorldW, WorldH float32

	// Zoom constraints
	MinZoom, MaxZoom float32
}

// New creates a camera that fits the whole arena into the viewport.
func New(originX, originY, viewportW, viewportH, worldW, worldH float32) *Camera {
	c := &Camera{
		OriginX:   originX,
		OriginY:   originY,
		ViewportW: viewportW,
		ViewportH: viewportH,
		WorldW:    worldW,
		WorldH:    worldH,
		MaxZoom:   4.0,
	}
	c.MinZoom = c.fitZoom()
	c.Reset()
	return c
}

// fitZoom is the zoom at which the whole arena fits the viewport.
func (c *Camera) fitZoom() float32 {
	return min(c.ViewportW/c.WorldW, c.ViewportH/c.WorldH)
}

// WorldToScreen converts arena coordinates to screen coordinates.
func (c *Camera) WorldToScreen(wx, wy float32) (sx, sy float32) {
	sx = c.OriginX + c.ViewportW/2 + (wx-c.X)*c.Zoom
	sy = c.OriginY + c.ViewportH/2 - (wy-c.Y)*c.Zoom
	return sx, sy
}

// ScreenToWorld converts screen coordinates to arena coordinates.
func (c *Camera) ScreenToWorld(sx, sy float32) (wx, wy float32) {
	wx = c.X + (sx-c.OriginX-c.ViewportW/2)/c.Zoom
	wy = c.Y - (sy-c.OriginY-c.ViewportH/2)/c.Zoom
	return wx, wy
}

// Scale converts an arena length to pixels.
func (c *Camera) Scale(length float32) float32 {
	return length * c.Zoom
}

// Contains reports whether a screen point lies inside the viewport.
func (c *Camera) Contains(sx, sy float32) bool {
	return sx >= c.OriginX && sx <= c.OriginX+c.ViewportW &&
		sy >= c.OriginY && sy <= c.OriginY+c.ViewportH
}

// Pan moves the camera by the given delta in screen pixels, keeping its center in the arena.
func (c *Camera) Pan(dx, dy float32) {
	c.X = clamp(c.X+dx/c.Zoom, 0, c.WorldW)
	c.Y = clamp(c.Y-dy/c.Zoom, 0, c.WorldH)
}

// SetZoom sets the zoom level, clamped to min/max.
func (c *Camera) SetZoom(zoom float32) {
	c.Zoom = clamp(zoom, c.MinZoom, c.MaxZoom)
}

// ZoomBy multiplies the current zoom by the given factor.
func (c *Camera) ZoomBy(factor float32) {
	c.SetZoom(c.Zoom * factor)
}

// Reset centers the camera on the arena at the fitting zoom.
func (c *Camera) Reset() {
	c.X = c.WorldW / 2
	c.Y = c.WorldH / 2
	c.Zoom = c.MinZoom
}

// clamp restricts a value to a range.
func clamp(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

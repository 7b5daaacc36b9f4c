package ui

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/skirmish/components"
)

// Renderer handles all UI drawing with consistent styling.
type Renderer struct {
	Theme Theme
}

// NewRenderer creates a renderer with the default theme.
func NewRenderer() *Renderer {
	return &Renderer{Theme: DefaultTheme()}
}

// DrawPanel draws a panel background with border.
func (r *Renderer) DrawPanel(x, y, width, height int32) {
	rl.DrawRectangle(x, y, width, height, r.Theme.PanelBg)
	rl.DrawRectangleLines(x, y, width, height, r.Theme.PanelBorder)
}

// DrawSectionHeader draws a section header and returns the new Y position.
func (r *Renderer) DrawSectionHeader(x, y int32, title string) int32 {
	rl.DrawText(title, x, y, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
	return y + r.Theme.LineHeight
}

// DrawLabelValue draws a label and value on the same line.
func (r *Renderer) DrawLabelValue(x, y int32, label, value string) int32 {
	rl.DrawText(label+":", x, y, r.Theme.FontSize, r.Theme.LabelColor)
	rl.DrawText(value, x+r.Theme.LabelWidth, y, r.Theme.FontSize, r.Theme.ValueColor)
	return y + r.Theme.LineHeight
}

// DrawBar draws a progress bar for a value in [lo, hi].
func (r *Renderer) DrawBar(x, y int32, label, text string, value, lo, hi float64, width int32) int32 {
	ratio := 0.0
	if hi > lo {
		ratio = math.Max(0, math.Min(1, (value-lo)/(hi-lo)))
	}

	barX := x + r.Theme.LabelWidth
	barWidth := width - r.Theme.LabelWidth - 50

	rl.DrawText(label+":", x, y, r.Theme.FontSize, r.Theme.LabelColor)
	rl.DrawRectangle(barX, y+2, barWidth, r.Theme.BarHeight, r.Theme.BarBg)
	rl.DrawRectangle(barX, y+2, int32(float64(barWidth)*ratio), r.Theme.BarHeight, r.Theme.BarFill)
	rl.DrawText(text, barX+barWidth+5, y, r.Theme.FontSize, r.Theme.ValueColor)

	return y + r.Theme.LineHeight + 2
}

// DrawEnergyBar draws an energy bar with color thresholds.
func (r *Renderer) DrawEnergyBar(x, y int32, label string, current, max float64, width int32) int32 {
	ratio := 0.0
	if max > 0 {
		ratio = math.Max(0, math.Min(1, current/max))
	}

	barX := x + r.Theme.LabelWidth
	barWidth := width - r.Theme.LabelWidth - 50

	rl.DrawText(label+":", x, y, r.Theme.FontSize, r.Theme.LabelColor)
	rl.DrawRectangle(barX, y+2, barWidth, r.Theme.BarHeight, r.Theme.BarBg)

	barColor := r.Theme.BarFillHigh
	if ratio < 0.3 {
		barColor = r.Theme.BarFillLow
	} else if ratio < 0.6 {
		barColor = r.Theme.BarFillMedium
	}
	rl.DrawRectangle(barX, y+2, int32(float64(barWidth)*ratio), r.Theme.BarHeight, barColor)
	rl.DrawText(fmt.Sprintf("%.1f", current), barX+barWidth+5, y, r.Theme.FontSize, r.Theme.ValueColor)

	return y + r.Theme.LineHeight + 2
}

// DrawCenteredBar draws a bar centered at 0 for values in [lo, hi].
func (r *Renderer) DrawCenteredBar(x, y int32, label, text string, value, lo, hi float64, width int32) int32 {
	barX := x + r.Theme.LabelWidth
	barWidth := width - r.Theme.LabelWidth - 50

	rl.DrawText(label+":", x, y, r.Theme.FontSize, r.Theme.LabelColor)
	rl.DrawRectangle(barX, y+2, barWidth, r.Theme.BarHeight, r.Theme.BarBg)

	centerX := barX + barWidth/2
	rl.DrawLine(centerX, y+2, centerX, y+2+r.Theme.BarHeight, rl.Color{R: 80, G: 80, B: 80, A: 255})

	span := math.Max(math.Abs(lo), math.Abs(hi))
	fraction := 0.0
	if span > 0 {
		fraction = math.Min(math.Abs(value)/span, 1)
	}
	fillX := centerX
	fillWidth := int32(float64(barWidth/2) * fraction)

	barColor := r.Theme.BarFillPositive
	if value < 0 {
		fillX = centerX - fillWidth
		barColor = r.Theme.BarFillNegative
	}
	rl.DrawRectangle(fillX, y+2, fillWidth, r.Theme.BarHeight, barColor)
	rl.DrawText(text, barX+barWidth+5, y, r.Theme.FontSize, r.Theme.ValueColor)

	return y + r.Theme.LineHeight + 2
}

// DrawColorSwatches draws a row of labelled swatches.
func (r *Renderer) DrawColorSwatches(x, y int32, label string, colors ...rl.Color) int32 {
	swatchSize := int32(12)
	rl.DrawText(label+":", x, y, r.Theme.FontSize, r.Theme.LabelColor)
	for i, c := range colors {
		rl.DrawRectangle(x+r.Theme.LabelWidth+int32(i)*(swatchSize+4), y+1, swatchSize, swatchSize, c)
	}
	return y + r.Theme.LineHeight
}

// DrawField renders one descriptor-driven row.
func (r *Renderer) DrawField(x, y int32, fd components.FieldDescriptor, value float64, width int32) int32 {
	text := fmt.Sprintf(fd.Format, value)
	switch {
	case fd.ID == "energy":
		return r.DrawEnergyBar(x, y, fd.Label, value, fd.Max, width)
	case fd.IsBar && fd.IsCentered:
		return r.DrawCenteredBar(x, y, fd.Label, text, value, fd.Min, fd.Max, width)
	case fd.IsBar:
		return r.DrawBar(x, y, fd.Label, text, value, fd.Min, fd.Max, width)
	default:
		return r.DrawLabelValue(x, y, fd.Label, text)
	}
}

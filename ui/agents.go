package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/skirmish/components"
	"github.com/pthm-cable/skirmish/game"
)

// AgentPanel lists every agent with its indicator colours and descriptor rows.
type AgentPanel struct {
	renderer *Renderer
	fields   []components.FieldDescriptor
	x, y     int32
	width    int32
}

// NewAgentPanel creates a new agent panel.
func NewAgentPanel(x, y, width int32, fields []components.FieldDescriptor) *AgentPanel {
	return &AgentPanel{
		renderer: NewRenderer(),
		fields:   fields,
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition updates the panel position.
func (p *AgentPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders one block per agent, top to bottom, and returns the bottom edge.
func (p *AgentPanel) Draw(agents []game.AgentView) int32 {
	r := p.renderer
	padding := r.Theme.Padding
	contentWidth := p.width - padding*2

	blockHeight := r.Theme.LineHeight*2 + int32(len(p.fields))*(r.Theme.LineHeight+2) + 6
	r.DrawPanel(p.x, p.y, p.width, blockHeight*int32(len(agents))+padding*2)

	y := p.y + padding
	for _, a := range agents {
		title := fmt.Sprintf("%s (%s)", a.Agent.Name, a.Agent.Kind)
		color := r.Theme.SectionHeader
		if !a.Energy.Alive {
			title += " - out"
			color = rl.Gray
		}
		rl.DrawText(title, p.x+padding, y, r.Theme.HeaderFontSize, color)
		y += r.Theme.LineHeight

		ind := a.Agent.Indicators
		y = r.DrawColorSwatches(p.x+padding, y, "Colours",
			IndicatorColor(ind.Body), IndicatorColor(ind.Gun), IndicatorColor(ind.Radar))

		for _, fd := range p.fields {
			value := components.AgentValue(&a.Motion, &a.Gun, &a.Energy, fd.ID)
			y = r.DrawField(p.x+padding, y, fd, value, contentWidth)
		}
		y += 6
	}
	return y + padding
}

package components

// FieldDescriptor describes a component field for the viewer's side panel.
type FieldDescriptor struct {
	ID         string  // Unique identifier
	Label      string  // Display name
	Format     string  // Printf format (e.g., "%.2f")
	Min        float64 // Minimum value (for bars)
	Max        float64 // Maximum value (for bars)
	IsCentered bool    // True for centered bar display
	IsBar      bool    // True to render as progress bar
	Group      string  // Logical grouping
}

// AgentFieldDescriptors returns metadata for the per-agent panel rows.
// Field IDs must match cases in AgentValue().
func AgentFieldDescriptors(maxEnergy, maxVelocity float64) []FieldDescriptor {
	return []FieldDescriptor{
		{ID: "energy", Label: "Energy", Format: "%.1f", Min: 0, Max: maxEnergy, IsBar: true, Group: "stats"},
		{ID: "heat", Label: "Gun heat", Format: "%.2f", Min: 0, Max: 1.6, IsBar: true, Group: "stats"},
		{ID: "velocity", Label: "Velocity", Format: "%+.1f", Min: -maxVelocity, Max: maxVelocity, IsCentered: true, IsBar: true, Group: "motion"},
		{ID: "heading", Label: "Heading", Format: "%.0f", Group: "motion"},
		{ID: "gun_heading", Label: "Gun", Format: "%.0f", Group: "motion"},
	}
}

// AgentValue extracts a panel field value by ID.
func AgentValue(m *Motion, g *Gun, e *Energy, fieldID string) float64 {
	switch fieldID {
	case "energy":
		return e.Value
	case "heat":
		return g.Heat
	case "velocity":
		return m.Velocity
	case "heading":
		return m.Heading
	case "gun_heading":
		return g.Heading
	default:
		return 0
	}
}

package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// SnapshotVersion is incremented when the format changes.
const SnapshotVersion = 1

// Snapshot records the outcome of a whole match.
type Snapshot struct {
	Version int    `json:"version"`
	RunID   string `json:"run_id"`
	RNGSeed int64  `json:"rng_seed"`

	ArenaWidth  float64 `json:"arena_width"`
	ArenaHeight float64 `json:"arena_height"`

	Rounds    int        `json:"rounds"`
	Ticks     int64      `json:"ticks"`
	Standings []Standing `json:"standings"`
}

// Standing is one agent's line in the final table.
type Standing struct {
	Agent         string  `json:"agent"`
	Kind          string  `json:"kind"`
	Wins          int     `json:"wins"`
	MeanPlacement float64 `json:"mean_placement"`
	HitRate       float64 `json:"hit_rate"`
	DamageDealt   float64 `json:"damage_dealt"`
}

// NewStandings builds the final table from the summaries, keeping their order.
func NewStandings(summaries []Summary, kinds map[string]string) []Standing {
	out := make([]Standing, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, Standing{
			Agent:         s.Agent,
			Kind:          kinds[s.Agent],
			Wins:          s.Wins,
			MeanPlacement: s.MeanPlacement,
			HitRate:       s.HitRate,
			DamageDealt:   s.MeanDamageDealt * float64(s.Rounds),
		})
	}
	return out
}

// SaveSnapshot writes a snapshot to disk.
// Returns the filepath where it was saved.
func SaveSnapshot(snapshot *Snapshot, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}

	name := "match.json"
	if snapshot.RunID != "" {
		name = fmt.Sprintf("match_%s.json", snapshot.RunID)
	}
	path := filepath.Join(dir, name)

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}

	return path, nil
}

// LoadSnapshot reads a snapshot from disk.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	if snapshot.Version != SnapshotVersion {
		return nil, fmt.Errorf("snapshot version %d, want %d", snapshot.Version, SnapshotVersion)
	}

	return &snapshot, nil
}

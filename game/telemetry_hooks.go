package game

import (
	"github.com/pthm-cable/skirmish/telemetry"
)

// recordRound flushes the round's stats into the history and the output files.
func (m *Match) recordRound() {
	stats := m.collector.Flush(m.round)
	m.history = append(m.history, stats...)

	if m.cfg.Telemetry.Enabled {
		for _, s := range stats {
			m.log.Info("round stats", "stats", s)
		}
		if every := m.cfg.Telemetry.SummaryEvery; every > 0 && m.round%every == 0 {
			telemetry.LogSummary(m.log, m.round, telemetry.Summarize(m.history))
			m.log.Info("perf", "stats", m.perf.Stats())
		}
	}

	if err := m.output.WriteRound(stats); err != nil {
		m.log.Error("failed to write round stats", "error", err)
	}
}

// writeSummary writes the cross-round summary and the match snapshot.
func (m *Match) writeSummary() {
	summaries := telemetry.Summarize(m.history)
	if m.cfg.Telemetry.Enabled {
		telemetry.LogSummary(m.log, m.round, summaries)
	}

	if m.output == nil {
		return
	}
	if err := m.output.WriteSummary(summaries); err != nil {
		m.log.Error("failed to write summary", "error", err)
	}

	path, err := telemetry.SaveSnapshot(m.createSnapshot(summaries), m.output.Dir())
	if err != nil {
		m.log.Error("failed to save snapshot", "error", err)
		return
	}
	m.log.Info("snapshot saved", "path", path)
}

// createSnapshot builds the final standings from the summaries.
func (m *Match) createSnapshot(summaries []telemetry.Summary) *telemetry.Snapshot {
	kinds := make(map[string]string, len(m.entrants))
	for _, e := range m.entrants {
		kinds[e.name] = e.kind
	}
	return &telemetry.Snapshot{
		Version:     telemetry.SnapshotVersion,
		RunID:       m.runID,
		RNGSeed:     m.seed,
		ArenaWidth:  m.cfg.Arena.Width,
		ArenaHeight: m.cfg.Arena.Height,
		Rounds:      m.round,
		Ticks:       m.totalTicks,
		Standings:   telemetry.NewStandings(summaries, kinds),
	}
}

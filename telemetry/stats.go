// Package telemetry provides per-round match statistics, summaries and CSV output.
package telemetry

import (
	"log/slog"
	"math"

	"gonum.org/v1/gonum/stat"
)

// RoundStats holds one agent's statistics for one round.
type RoundStats struct {
	RunID string `csv:"run_id"`
	Round int    `csv:"round"`
	Agent string `csv:"agent"`
	Kind  string `csv:"kind"`

	// Outcome
	Placement     int     `csv:"placement"` // 1 = last standing
	SurvivalTicks int64   `csv:"survival_ticks"`
	EndEnergy     float64 `csv:"end_energy"`

	// Gunnery
	ShotsFired  int     `csv:"shots_fired"`
	PowerSpent  float64 `csv:"power_spent"`
	Hits        int     `csv:"hits"`
	Misses      int     `csv:"misses"`
	Intercepted int     `csv:"intercepted"`
	HitRate     float64 `csv:"hit_rate"`
	DamageDealt float64 `csv:"damage_dealt"`
	DamageTaken float64 `csv:"damage_taken"`

	// Contact with walls and hulls
	WallHits   int     `csv:"wall_hits"`
	WallDamage float64 `csv:"wall_damage"`
	Rams       int     `csv:"rams"`
	Rammed     int     `csv:"rammed"`

	// Controller decisions (zero for scripted drones)
	Acquisitions      int `csv:"acquisitions"`
	Lapses            int `csv:"lapses"`
	Preemptions       int `csv:"preemptions"`
	ShotsWithheld     int `csv:"shots_withheld"`
	OpportunityShots  int `csv:"opportunity_shots"`
	ShortCharges      int `csv:"short_charges"`
	MediumCharges     int `csv:"medium_charges"`
	Evades            int `csv:"evades"`
	CourseCorrections int `csv:"course_corrections"`
	FullSweeps        int `csv:"full_sweeps"`
	ImpactTurns       int `csv:"impact_turns"`
}

// LogValue implements slog.LogValuer for structured logging.
func (s RoundStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("round", s.Round),
		slog.String("agent", s.Agent),
		slog.Int("placement", s.Placement),
		slog.Int64("survival_ticks", s.SurvivalTicks),
		slog.Float64("end_energy", s.EndEnergy),
		slog.Int("shots", s.ShotsFired),
		slog.Int("hits", s.Hits),
		slog.Float64("hit_rate", s.HitRate),
		slog.Float64("damage_dealt", s.DamageDealt),
		slog.Float64("damage_taken", s.DamageTaken),
	)
}

// Summary aggregates an agent's rounds.
type Summary struct {
	RunID           string  `csv:"run_id"`
	Agent           string  `csv:"agent"`
	Rounds          int     `csv:"rounds"`
	Wins            int     `csv:"wins"`
	MeanPlacement   float64 `csv:"mean_placement"`
	MeanSurvival    float64 `csv:"mean_survival"`
	StdSurvival     float64 `csv:"std_survival"`
	MeanDamageDealt float64 `csv:"mean_damage_dealt"`
	StdDamageDealt  float64 `csv:"std_damage_dealt"`
	MeanDamageTaken float64 `csv:"mean_damage_taken"`
	HitRate         float64 `csv:"hit_rate"`
}

// Summarize groups rounds by agent, in order of first appearance.
func Summarize(rounds []RoundStats) []Summary {
	var order []string
	byAgent := make(map[string][]RoundStats)
	for _, r := range rounds {
		if _, ok := byAgent[r.Agent]; !ok {
			order = append(order, r.Agent)
		}
		byAgent[r.Agent] = append(byAgent[r.Agent], r)
	}

	out := make([]Summary, 0, len(order))
	for _, name := range order {
		rs := byAgent[name]
		n := len(rs)
		placement := make([]float64, n)
		survival := make([]float64, n)
		dealt := make([]float64, n)
		taken := make([]float64, n)

		s := Summary{RunID: rs[0].RunID, Agent: name, Rounds: n}
		var shots, hits int
		for i, r := range rs {
			placement[i] = float64(r.Placement)
			survival[i] = float64(r.SurvivalTicks)
			dealt[i] = r.DamageDealt
			taken[i] = r.DamageTaken
			shots += r.ShotsFired
			hits += r.Hits
			if r.Placement == 1 {
				s.Wins++
			}
		}

		s.MeanPlacement = stat.Mean(placement, nil)
		s.MeanSurvival, s.StdSurvival = meanStd(survival)
		s.MeanDamageDealt, s.StdDamageDealt = meanStd(dealt)
		s.MeanDamageTaken = stat.Mean(taken, nil)
		s.HitRate = rate(hits, shots)
		out = append(out, s)
	}
	return out
}

// meanStd returns the mean and sample standard deviation; the deviation of a single sample is 0.
func meanStd(x []float64) (mean, std float64) {
	if len(x) < 2 {
		return stat.Mean(x, nil), 0
	}
	mean, std = stat.MeanStdDev(x, nil)
	if math.IsNaN(std) {
		std = 0
	}
	return mean, std
}

func rate(n, of int) float64 {
	if of == 0 {
		return 0
	}
	return float64(n) / float64(of)
}

// LogSummary logs each agent's summary using slog.
func LogSummary(logger *slog.Logger, rounds int, summaries []Summary) {
	for _, s := range summaries {
		logger.Info("summary",
			"after_rounds", rounds,
			"agent", s.Agent,
			"wins", s.Wins,
			"mean_placement", s.MeanPlacement,
			"mean_survival", s.MeanSurvival,
			"std_survival", s.StdSurvival,
			"mean_damage_dealt", s.MeanDamageDealt,
			"hit_rate", s.HitRate,
		)
	}
}

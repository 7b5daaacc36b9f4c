package telemetry

import (
	"math"
	"testing"
)

func TestSummarize(t *testing.T) {
	rounds := []RoundStats{
		{RunID: "r", Agent: "a", Placement: 1, SurvivalTicks: 100, DamageDealt: 10, ShotsFired: 4, Hits: 2},
		{RunID: "r", Agent: "b", Placement: 2, SurvivalTicks: 50, DamageDealt: 0},
		{RunID: "r", Agent: "a", Placement: 2, SurvivalTicks: 200, DamageDealt: 30, ShotsFired: 4, Hits: 1},
		{RunID: "r", Agent: "b", Placement: 1, SurvivalTicks: 200, DamageDealt: 20},
	}

	got := Summarize(rounds)
	if len(got) != 2 || got[0].Agent != "a" || got[1].Agent != "b" {
		t.Fatalf("Summarize = %+v", got)
	}

	a := got[0]
	if a.Rounds != 2 || a.Wins != 1 || a.MeanPlacement != 1.5 {
		t.Errorf("a = %+v", a)
	}
	if a.MeanSurvival != 150 || math.Abs(a.StdSurvival-math.Sqrt(5000)) > 1e-9 {
		t.Errorf("a survival = %v ± %v, want 150 ± %v", a.MeanSurvival, a.StdSurvival, math.Sqrt(5000))
	}
	if a.MeanDamageDealt != 20 || a.HitRate != 3.0/8 {
		t.Errorf("a damage = %v hit rate = %v", a.MeanDamageDealt, a.HitRate)
	}
	if got[1].HitRate != 0 {
		t.Errorf("b never fired, hit rate = %v", got[1].HitRate)
	}
}

func TestSummarizeSingleRound(t *testing.T) {
	got := Summarize([]RoundStats{{Agent: "a", SurvivalTicks: 40, DamageDealt: 5}})
	if len(got) != 1 || got[0].StdSurvival != 0 || got[0].StdDamageDealt != 0 || got[0].MeanSurvival != 40 {
		t.Errorf("Summarize = %+v", got)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	if got := Summarize(nil); len(got) != 0 {
		t.Errorf("Summarize(nil) = %+v", got)
	}
}

package main

import (
	"context"
	"io"
	"log/slog"
	"math"
	"slices"
	"sync"

	"github.com/pthm-cable/skirmish/config"
	"github.com/pthm-cable/skirmish/game"
	"github.com/pthm-cable/skirmish/telemetry"
)

// FitnessEvaluator runs headless matches and scores the tuned pilot.
type FitnessEvaluator struct {
	params     *ParamVector
	rounds     int
	maxTicks   int
	seeds      []int64
	baseConfig *config.Config
	subject    string // roster name of the pilot being tuned

	// Best run tracking
	mu          sync.Mutex
	bestFitness float64
	bestSummary *telemetry.Summary
	lastSummary telemetry.Summary // pooled summary from the most recent Evaluate call
}

// NewFitnessEvaluator creates a new evaluator. The subject is the first pilot in the roster.
func NewFitnessEvaluator(params *ParamVector, rounds, maxTicks int, seeds []int64, baseCfg *config.Config) (*FitnessEvaluator, error) {
	i := slices.IndexFunc(baseCfg.Roster, func(e config.RosterEntry) bool { return e.Kind == config.KindPilot })
	if i < 0 {
		return nil, game.ErrRoster
	}
	return &FitnessEvaluator{
		params:      params,
		rounds:      rounds,
		maxTicks:    maxTicks,
		seeds:       seeds,
		baseConfig:  baseCfg,
		subject:     baseCfg.Roster[i].Name,
		bestFitness: math.Inf(1),
	}, nil
}

// Subject returns the roster name of the pilot being tuned.
func (fe *FitnessEvaluator) Subject() string { return fe.subject }

// BestSummary returns the pooled summary of the best evaluation.
func (fe *FitnessEvaluator) BestSummary() *telemetry.Summary {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.bestSummary
}

// LastSummary returns the pooled summary of the most recent evaluation.
func (fe *FitnessEvaluator) LastSummary() telemetry.Summary {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastSummary
}

// seedResult holds the result from one seed evaluation.
type seedResult struct {
	summary telemetry.Summary
	err     error
}

// Evaluate computes fitness for raw parameter values (lower = better).
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, x)

	// Run all seeds in parallel
	results := make([]seedResult, len(fe.seeds))
	var wg sync.WaitGroup
	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			summary, err := fe.runMatch(cfg, s)
			results[idx] = seedResult{summary: summary, err: err}
		}(i, seed)
	}
	wg.Wait()

	var summaries []telemetry.Summary
	for _, r := range results {
		if r.err != nil {
			slog.Warn("evaluation failed", "error", r.err)
			return math.Inf(1)
		}
		summaries = append(summaries, r.summary)
	}
	pooled := pool(summaries)
	fitness := computeFitness(pooled)

	fe.mu.Lock()
	fe.lastSummary = pooled
	if fitness < fe.bestFitness {
		fe.bestFitness = fitness
		fe.bestSummary = &pooled
	}
	fe.mu.Unlock()

	return fitness
}

// runMatch plays one headless match and returns the subject's summary.
func (fe *FitnessEvaluator) runMatch(cfg *config.Config, seed int64) (telemetry.Summary, error) {
	m, err := game.NewMatch(game.Options{
		Config:   cfg,
		Seed:     seed,
		Rounds:   fe.rounds,
		MaxTicks: fe.maxTicks,
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	if err != nil {
		return telemetry.Summary{}, err
	}
	res, err := m.Run(context.Background())
	if err != nil {
		return telemetry.Summary{}, err
	}
	for _, s := range res.Summaries {
		if s.Agent == fe.subject {
			return s, nil
		}
	}
	return telemetry.Summary{}, game.ErrRoster
}

// copyConfig creates a copy of the base config the evaluation can modify.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	cfg := *fe.baseConfig
	cfg.Roster = slices.Clone(fe.baseConfig.Roster)
	cfg.Telemetry.Enabled = false
	return &cfg
}

// pool averages per-seed summaries, weighting each seed by its rounds.
func pool(summaries []telemetry.Summary) telemetry.Summary {
	var out telemetry.Summary
	var rounds float64
	for _, s := range summaries {
		n := float64(s.Rounds)
		out.Agent = s.Agent
		out.Rounds += s.Rounds
		out.Wins += s.Wins
		out.MeanPlacement += s.MeanPlacement * n
		out.MeanSurvival += s.MeanSurvival * n
		out.MeanDamageDealt += s.MeanDamageDealt * n
		out.MeanDamageTaken += s.MeanDamageTaken * n
		out.HitRate += s.HitRate * n
		rounds += n
	}
	if rounds == 0 {
		return out
	}
	out.MeanPlacement /= rounds
	out.MeanSurvival /= rounds
	out.MeanDamageDealt /= rounds
	out.MeanDamageTaken /= rounds
	out.HitRate /= rounds
	return out
}

// computeFitness favours low placement, then wins, then a positive damage exchange.
func computeFitness(s telemetry.Summary) float64 {
	if s.Rounds == 0 {
		return math.Inf(1)
	}
	winRate := float64(s.Wins) / float64(s.Rounds)
	exchange := (s.MeanDamageDealt - s.MeanDamageTaken) / 100
	return s.MeanPlacement - winRate - 0.25*exchange
}

// README: Training run parameters, candidate models and the selection rule.
package training

import (
	"errors"
	"math"

	"deliveryeta/internal/config"
	"deliveryeta/internal/modules/regression"
)

var ErrNoCandidates = errors.New("no candidate models to select from")

type Params struct {
	Seed         int64
	TestFraction float64
	Forest       regression.ForestParams
}

func DefaultParams() Params {
	return Params{
		Seed:         42,
		TestFraction: 0.2,
		Forest:       regression.DefaultForestParams(),
	}
}

func ParamsFromConfig(c config.TrainingConfig) Params {
	return Params{
		Seed:         c.Seed,
		TestFraction: c.TestFraction,
		Forest: regression.ForestParams{
			Trees:           c.Trees,
			MaxDepth:        c.MaxDepth,
			MinSamplesSplit: c.MinSamplesSplit,
			Seed:            c.Seed,
			Workers:         c.Workers,
		},
	}
}

type Candidate struct {
	Type    string
	Model   regression.Regressor
	Metrics regression.Metrics
}

// Select returns the candidate with the highest held-out R². Ties, and a NaN
// on the challenger side, keep the earlier candidate, so list the simpler
// model first.
func Select(candidates []Candidate) (Candidate, error) {
	if len(candidates) == 0 {
		return Candidate{}, ErrNoCandidates
	}
	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.Metrics.R2 > best.Metrics.R2 || (math.IsNaN(best.Metrics.R2) && !math.IsNaN(c.Metrics.R2)) {
			best = c
		}
	}
	return best, nil
}

// Report summarizes one training run.
type Report struct {
	Selected   Candidate
	Candidates []Candidate
	TrainRows  int
	TestRows   int
}

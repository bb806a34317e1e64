package ranking

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/matthias/jobad-composer/internal/types"
)

// ErrScoringUnavailable is returned when the primary judge and the fallback
// both failed. Callers treat every candidate as score 0.0 and keep going.
var ErrScoringUnavailable = errors.New("candidate scoring unavailable")

// Scorer scores candidate batches with a primary judge model and one
// fallback retry.
type Scorer struct {
	judge         Judge
	primaryModel  string
	fallbackModel string
}

// NewScorer creates a scorer. Empty model names select the defaults.
func NewScorer(judge Judge, primaryModel, fallbackModel string) *Scorer {
	if primaryModel == "" {
		primaryModel = DefaultJudgeModel
	}
	if fallbackModel == "" {
		fallbackModel = DefaultJudgeFallbackModel
	}
	return &Scorer{
		judge:         judge,
		primaryModel:  primaryModel,
		fallbackModel: fallbackModel,
	}
}

// ScoreAll wraps every candidate as a trajectory and scores the whole batch
// in one judge call. Rewards are opaque floats, higher is better, and only
// comparable within this batch.
func (s *Scorer) ScoreAll(ctx context.Context, candidates []types.JobBody, jobTitle string, cfg types.JobGenerationConfig) (map[int]float64, error) {
	if len(candidates) == 0 {
		return map[int]float64{}, nil
	}

	trajectories := make([]Trajectory, len(candidates))
	for i, candidate := range candidates {
		traj, err := BuildTrajectory(jobTitle, cfg, candidate)
		if err != nil {
			return nil, fmt.Errorf("failed to build trajectory %d: %w", i, err)
		}
		trajectories[i] = traj
	}

	usedModel := s.primaryModel
	scores, err := s.judge.ScoreGroup(ctx, trajectories, s.primaryModel)
	if err != nil {
		log.WithField("model", s.primaryModel).WithError(err).Warn("judge scoring failed, retrying with fallback")
		usedModel = s.fallbackModel
		scores, err = s.judge.ScoreGroup(ctx, trajectories, s.fallbackModel)
		if err != nil {
			log.WithField("model", s.fallbackModel).WithError(err).Warn("fallback judge failed")
			return nil, ErrScoringUnavailable
		}
	}

	result := make(map[int]float64, len(scores))
	for i, score := range scores {
		result[i] = score
	}

	log.WithFields(log.Fields{
		"candidates": len(candidates),
		"model":      usedModel,
	}).Debug("candidate batch scored")
	return result, nil
}

package portfolio

import (
	"fmt"
	"time"

	"github.com/wonpil/sentrev/internal/contracts"
	"github.com/wonpil/sentrev/internal/strategyconfig"
	"github.com/wonpil/sentrev/pkg/logger"
)

// Builder implements S4: optimization request construction
// ⭐ SSOT: 목적함수/제약조건 조립은 여기서만
type Builder struct {
	strategy *strategyconfig.Config
	logger   *logger.Logger
}

// NewBuilder creates a new request builder
func NewBuilder(strategy *strategyconfig.Config, log *logger.Logger) *Builder {
	return &Builder{
		strategy: strategy,
		logger:   log,
	}
}

// BuildRequest assembles the optimization request from composite scores.
// 점수의 부호를 뒤집은 알파를 목적함수로 쓴다:
// 과매도(음수 점수)는 롱, 과열(양수 점수)은 숏 후보가 된다.
func (b *Builder) BuildRequest(scores *contracts.ScoreSet, runID string) (*contracts.OptimizationRequest, error) {
	if scores == nil || scores.Count() == 0 {
		return nil, fmt.Errorf("no scores to optimize")
	}

	req := &contracts.OptimizationRequest{
		RunID: runID,
		Date:  scores.Date,
		Objective: contracts.Objective{
			Type:   contracts.ObjectiveMaximizeAlpha,
			Alphas: scores.Alphas(),
		},
		Constraints: b.Constraints(),
		SubmittedAt: time.Now(),
	}

	b.logger.WithFields(map[string]interface{}{
		"run_id":  runID,
		"date":    scores.Date.Format("2006-01-02"),
		"symbols": req.Count(),
	}).Info("Optimization request built")

	return req, nil
}

// Constraints returns the constraint set from strategy config
// SSOT: config/strategy/meanrev_us_v1.yaml portfolio
func (b *Builder) Constraints() contracts.ConstraintSet {
	p := b.strategy.Portfolio
	return contracts.ConstraintSet{
		MaxGrossExposure:  p.MaxGrossExposure,
		MaxPositionWeight: p.MaxPositionWeight,
		DollarNeutral:     p.DollarNeutral,
		Tolerance:         p.Tolerance,
	}
}

// Validate checks optimizer-echoed weights against the constraint set.
// fire-and-forget 제출이므로 운영 경로에서는 호출되지 않지만,
// 옵티마이저가 가중치를 되돌려주는 경우 검증용으로 쓴다.
func (b *Builder) Validate(weights *contracts.TargetWeights) []contracts.Violation {
	cs := b.Constraints()
	return cs.Check(weights.Weights)
}

package contracts

import (
	"fmt"
	"math"
	"time"
)

// ObjectiveType identifies the optimization objective
type ObjectiveType string

const (
	// ObjectiveMaximizeAlpha 알파 기대값 최대화
	ObjectiveMaximizeAlpha ObjectiveType = "MAXIMIZE_ALPHA"
)

// Objective is the optimization objective submitted to the optimizer
type Objective struct {
	Type   ObjectiveType      `json:"type"`
	Alphas map[string]float64 `json:"alphas"` // key: symbol
}

// ConstraintSet defines portfolio-level constraints
// ⭐ SSOT: 제약 조건 수치는 전략 설정 파일에서만 공급
type ConstraintSet struct {
	MaxGrossExposure  float64 `json:"max_gross_exposure"`  // Σ|w| 상한
	MaxPositionWeight float64 `json:"max_position_weight"` // 종목별 |w| 상한
	DollarNeutral     bool    `json:"dollar_neutral"`      // Σw ≈ 0 강제
	Tolerance         float64 `json:"tolerance"`           // 부동소수점 허용 오차
}

// Violation describes a single constraint breach
type Violation struct {
	Constraint string `json:"constraint"`
	Symbol     string `json:"symbol,omitempty"`
	Message    string `json:"message"`
}

// Check validates a weight vector against the constraint set.
// 위반이 없으면 nil을 반환한다.
func (c *ConstraintSet) Check(weights map[string]float64) []Violation {
	var violations []Violation
	tol := c.Tolerance

	gross := 0.0
	net := 0.0
	for symbol, w := range weights {
		gross += math.Abs(w)
		net += w

		if math.Abs(w) > c.MaxPositionWeight+tol {
			violations = append(violations, Violation{
				Constraint: "position_concentration",
				Symbol:     symbol,
				Message:    fmt.Sprintf("|%.6f| > %.6f", w, c.MaxPositionWeight),
			})
		}
	}

	if gross > c.MaxGrossExposure+tol {
		violations = append(violations, Violation{
			Constraint: "gross_exposure",
			Message:    fmt.Sprintf("gross %.6f > %.6f", gross, c.MaxGrossExposure),
		})
	}

	if c.DollarNeutral && math.Abs(net) > tol {
		violations = append(violations, Violation{
			Constraint: "dollar_neutral",
			Message:    fmt.Sprintf("net %.6f != 0", net),
		})
	}

	return violations
}

// OptimizationRequest is the payload submitted to the external optimizer
// ⭐ SSOT: S4 → 외부 옵티마이저 전달. 응답 가중치는 소비하지 않는다 (fire-and-forget).
type OptimizationRequest struct {
	RunID       string        `json:"run_id"`
	Date        time.Time     `json:"date"`
	Objective   Objective     `json:"objective"`
	Constraints ConstraintSet `json:"constraints"`
	SubmittedAt time.Time     `json:"submitted_at"`
}

// Count returns the number of symbols in the request
func (r *OptimizationRequest) Count() int {
	return len(r.Objective.Alphas)
}

// TargetWeights is an optional weight vector echoed back by the optimizer.
// 검증과 테스트에서만 사용한다.
type TargetWeights struct {
	Date    time.Time          `json:"date"`
	Weights map[string]float64 `json:"weights"` // key: symbol
}

// Gross returns Σ|w|
func (t *TargetWeights) Gross() float64 {
	gross := 0.0
	for _, w := range t.Weights {
		gross += math.Abs(w)
	}
	return gross
}

// Net returns Σw
func (t *TargetWeights) Net() float64 {
	net := 0.0
	for _, w := range t.Weights {
		net += w
	}
	return net
}

// Long returns the sum of positive weights
func (t *TargetWeights) Long() float64 {
	long := 0.0
	for _, w := range t.Weights {
		if w > 0 {
			long += w
		}
	}
	return long
}

// Short returns the sum of negative weights
func (t *TargetWeights) Short() float64 {
	short := 0.0
	for _, w := range t.Weights {
		if w < 0 {
			short += w
		}
	}
	return short
}

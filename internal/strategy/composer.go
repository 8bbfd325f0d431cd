package strategy

import (
	"fmt"
	"math"
	"sort"

	"github.com/wonpil/sentrev/internal/contracts"
	"github.com/wonpil/sentrev/internal/s2_factors"
	"github.com/wonpil/sentrev/internal/strategyconfig"
	"github.com/wonpil/sentrev/pkg/logger"
)

// Composer combines factor rows into composite mean-reversion scores
// ⭐ SSOT: 점수 합성은 여기서만
//
// 합성 순서:
//  1. 감성 비율 (메시지량 / 순강세) 계산, ±Inf → 1.0 치환 후 횡단면 윈저라이즈
//  2. 추적 수익률 횡단면 z-score
//  3. z-score 백분위 밴드로 거래 적격 필터 (양 극단만)
//  4. 적격 심볼: 점수 = 윈저 감성 × z-score × 추세비율 (결측 항은 1.0)
type Composer struct {
	strategy *strategyconfig.Config
	logger   *logger.Logger
}

// NewComposer creates a new score composer
func NewComposer(strategy *strategyconfig.Config, log *logger.Logger) *Composer {
	return &Composer{
		strategy: strategy,
		logger:   log,
	}
}

// Compose generates the ScoreSet from a FactorSet.
// 순수 함수: 동일 입력 → 동일 출력.
func (c *Composer) Compose(factors *contracts.FactorSet) (*contracts.ScoreSet, error) {
	if factors == nil || len(factors.Rows) == 0 {
		return nil, fmt.Errorf("empty factor set")
	}

	// 결정적 순서를 위해 심볼 정렬
	symbols := make([]string, 0, len(factors.Rows))
	for symbol := range factors.Rows {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)

	// 1. 감성 비율: ±Inf는 1.0으로 치환한 뒤 윈저라이즈
	sentiment := make([]float64, len(symbols))
	for i, symbol := range symbols {
		sentiment[i] = clampInf(factors.Rows[symbol].SentimentRatio())
	}
	w := c.strategy.Scoring.Winsorize
	sentiment = s2_factors.Winsorize(sentiment, w.LowerPct, w.UpperPct)

	// 2. 수익률 z-score
	returns := make([]float64, len(symbols))
	for i, symbol := range symbols {
		returns[i] = factors.Rows[symbol].TrailingReturn
	}
	zscores := s2_factors.ZScores(returns)

	// 3. 적격 필터: z-score 백분위가 양 극단 밴드에 속하는 심볼만
	ranks := s2_factors.PercentileRanks(zscores)
	elig := c.strategy.Scoring.Eligibility

	scoreSet := &contracts.ScoreSet{
		Date:     factors.Date,
		Scores:   make(map[string]float64),
		Filtered: make(map[string]string),
	}

	for i, symbol := range symbols {
		if math.IsNaN(ranks[i]) {
			scoreSet.Filtered[symbol] = "수익률 z-score 결측"
			continue
		}
		if !elig.LowBand.Contains(ranks[i]) && !elig.HighBand.Contains(ranks[i]) {
			scoreSet.Filtered[symbol] = fmt.Sprintf("중립 구간 (백분위 %.1f)", ranks[i])
			continue
		}

		// 4. 점수 합성: 결측/무한대 항은 1.0
		trend := factors.Rows[symbol].TrendRatio()
		score := fillOne(sentiment[i]) * fillOne(zscores[i]) * fillOne(trend)
		scoreSet.Scores[symbol] = score
	}

	c.logger.WithFields(map[string]interface{}{
		"date":     factors.Date.Format("2006-01-02"),
		"input":    len(symbols),
		"scored":   len(scoreSet.Scores),
		"filtered": len(scoreSet.Filtered),
	}).Info("Score composition completed")

	return scoreSet, nil
}

// clampInf maps ±Inf to 1.0 and passes everything else through.
// 분모 0으로 생긴 무한대는 중립값으로 본다.
func clampInf(v float64) float64 {
	if math.IsInf(v, 0) {
		return 1.0
	}
	return v
}

// fillOne maps NaN and ±Inf to the neutral multiplier 1.0.
func fillOne(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 1.0
	}
	return v
}

package contracts

import (
	"sort"
	"time"
)

// ScoreSet represents composite mean-reversion scores passed from S3 to S4
// ⭐ SSOT: S3 → S4 종합 점수 전달
type ScoreSet struct {
	Date   time.Time          `json:"date"`
	Scores map[string]float64 `json:"scores"` // key: symbol

	// 분위 필터에서 탈락한 심볼: 사유
	Filtered map[string]string `json:"filtered,omitempty"`
}

// Get returns the score for a symbol
func (s *ScoreSet) Get(symbol string) (float64, bool) {
	score, exists := s.Scores[symbol]
	return score, exists
}

// Count returns the number of scored symbols
func (s *ScoreSet) Count() int {
	return len(s.Scores)
}

// Symbols returns scored symbols in deterministic order
func (s *ScoreSet) Symbols() []string {
	symbols := make([]string, 0, len(s.Scores))
	for symbol := range s.Scores {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)
	return symbols
}

// Alphas returns the alpha view of the scores.
// 점수가 높을수록 과열(숏 후보), 낮을수록 과매도(롱 후보)이므로 부호를 뒤집는다.
func (s *ScoreSet) Alphas() map[string]float64 {
	alphas := make(map[string]float64, len(s.Scores))
	for symbol, score := range s.Scores {
		alphas[symbol] = -score
	}
	return alphas
}

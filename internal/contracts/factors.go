package contracts

import (
	"math"
	"time"
)

// FactorSet represents per-symbol factor inputs passed from S2 to S3
// ⭐ SSOT: S2 → S3 팩터 데이터 전달
type FactorSet struct {
	Date time.Time             `json:"date"`
	Rows map[string]*FactorRow `json:"rows"` // key: symbol
}

// FactorRow holds the raw factor inputs for a single symbol.
// 결측값은 NaN으로 표현한다. 합성 단계에서 1.0으로 치환된다.
type FactorRow struct {
	Symbol string `json:"symbol"`

	// 가격 추세 (종가 단순이동평균)
	SMA50  float64 `json:"sma_50"`
	SMA200 float64 `json:"sma_200"`

	// 감성 (7일 단순이동평균)
	MessageAvg   float64 `json:"message_avg"`   // 총 메시지 볼륨
	SentimentAvg float64 `json:"sentiment_avg"` // 강세 - 약세 메시지

	// 7일 추적 수익률
	TrailingReturn float64 `json:"trailing_return"`

	UpdatedAt time.Time `json:"updated_at"`
}

// NewFactorRow returns a row with every factor marked missing
func NewFactorRow(symbol string) *FactorRow {
	nan := math.NaN()
	return &FactorRow{
		Symbol:         symbol,
		SMA50:          nan,
		SMA200:         nan,
		MessageAvg:     nan,
		SentimentAvg:   nan,
		TrailingReturn: nan,
	}
}

// TrendRatio returns the long/short moving average ratio.
// 입력 결측이면 NaN, 분모가 0이면 ±Inf가 그대로 전파된다.
func (r *FactorRow) TrendRatio() float64 {
	if math.IsNaN(r.SMA50) || math.IsNaN(r.SMA200) {
		return math.NaN()
	}
	return r.SMA200 / r.SMA50
}

// SentimentRatio returns message volume over net bullish sentiment.
func (r *FactorRow) SentimentRatio() float64 {
	if math.IsNaN(r.MessageAvg) || math.IsNaN(r.SentimentAvg) {
		return math.NaN()
	}
	return r.MessageAvg / r.SentimentAvg
}

// Get returns the factor row for a symbol
func (f *FactorSet) Get(symbol string) (*FactorRow, bool) {
	row, exists := f.Rows[symbol]
	return row, exists
}

// Count returns the number of symbols with factor rows
func (f *FactorSet) Count() int {
	return len(f.Rows)
}

package strategyconfig

import "time"

// Config는 평균회귀 전략의 전체 설정
type Config struct {
	Meta      Meta      `yaml:"meta" json:"meta"`
	Universe  Universe  `yaml:"universe" json:"universe"`
	Factors   Factors   `yaml:"factors" json:"factors"`
	Scoring   Scoring   `yaml:"scoring" json:"scoring"`
	Portfolio Portfolio `yaml:"portfolio" json:"portfolio"`
	Optimizer Optimizer `yaml:"optimizer" json:"optimizer"`
}

// Meta 메타 정보
type Meta struct {
	StrategyID         string `yaml:"strategy_id" json:"strategy_id"`
	Version            string `yaml:"version" json:"version"`
	Timezone           string `yaml:"timezone" json:"timezone"`
	StagingTimeLocal   string `yaml:"staging_time_local" json:"staging_time_local"`     // HH:MM, 매 거래일 장전
	RebalanceTimeLocal string `yaml:"rebalance_time_local" json:"rebalance_time_local"` // HH:MM, 주 첫 거래일
}

// Universe S1: 투자 가능 풀
type Universe struct {
	Filters UniverseFilters `yaml:"filters" json:"filters"`
}

type UniverseFilters struct {
	MinPriceHistoryDays     int     `yaml:"min_price_history_days" json:"min_price_history_days"`
	MinSentimentHistoryDays int     `yaml:"min_sentiment_history_days" json:"min_sentiment_history_days"`
	PriceMinUSD             float64 `yaml:"price_min_usd" json:"price_min_usd"`
}

// Factors S2: 팩터 윈도우
type Factors struct {
	ReturnLookbackDays   int `yaml:"return_lookback_days" json:"return_lookback_days"`
	SentimentWindowDays  int `yaml:"sentiment_window_days" json:"sentiment_window_days"`
	TrendShortWindowDays int `yaml:"trend_short_window_days" json:"trend_short_window_days"`
	TrendLongWindowDays  int `yaml:"trend_long_window_days" json:"trend_long_window_days"`
}

// Scoring S3: 점수 합성
type Scoring struct {
	Winsorize   Winsorize   `yaml:"winsorize" json:"winsorize"`
	Eligibility Eligibility `yaml:"eligibility" json:"eligibility"`
}

// Winsorize 횡단면 백분위 절단 구간
type Winsorize struct {
	LowerPct float64 `yaml:"lower_pct" json:"lower_pct"`
	UpperPct float64 `yaml:"upper_pct" json:"upper_pct"`
}

// Eligibility z-score 백분위 밴드 (양 극단만 거래)
type Eligibility struct {
	LowBand  Band `yaml:"low_band" json:"low_band"`
	HighBand Band `yaml:"high_band" json:"high_band"`
}

type Band struct {
	Min float64 `yaml:"min" json:"min"`
	Max float64 `yaml:"max" json:"max"`
}

// Contains checks if a percentile rank falls inside the band (inclusive)
func (b Band) Contains(pct float64) bool {
	return pct >= b.Min && pct <= b.Max
}

// Portfolio S4: 제약 조건
type Portfolio struct {
	MaxGrossExposure  float64 `yaml:"max_gross_exposure" json:"max_gross_exposure"`
	MaxPositionWeight float64 `yaml:"max_position_weight" json:"max_position_weight"`
	DollarNeutral     bool    `yaml:"dollar_neutral" json:"dollar_neutral"`
	Tolerance         float64 `yaml:"tolerance" json:"tolerance"`
}

// Optimizer 외부 옵티마이저 제출 설정
type Optimizer struct {
	Objective string `yaml:"objective" json:"objective"` // MAXIMIZE_ALPHA
}

// DecisionSnapshot 의사결정 스냅샷 (재현성용)
type DecisionSnapshot struct {
	ConfigHash string    `json:"config_hash"`
	ConfigYAML string    `json:"config_yaml"`
	StrategyID string    `json:"strategy_id"`
	GitCommit  string    `json:"git_commit"`
	CreatedAt  time.Time `json:"created_at"`
}

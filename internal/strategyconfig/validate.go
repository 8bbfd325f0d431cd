package strategyconfig

import (
	"errors"
	"fmt"
	"regexp"
	"time"
)

// ValidationError 검증 실패 (프로그램 중단)
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Warning 권장 위반 (경고만)
type Warning struct {
	Code    string
	Message string
}

// Validate checks all required constraints
// 실패 시 error 반환 (프로그램 중단)
func Validate(cfg *Config) error {
	// === Meta ===
	if cfg.Meta.StrategyID == "" {
		return ValidationError{"meta.strategy_id", "required"}
	}
	if cfg.Meta.Timezone == "" {
		return ValidationError{"meta.timezone", "required"}
	}
	if _, err := time.LoadLocation(cfg.Meta.Timezone); err != nil {
		return ValidationError{"meta.timezone", err.Error()}
	}
	if err := validateHHMM(cfg.Meta.StagingTimeLocal); err != nil {
		return ValidationError{"meta.staging_time_local", err.Error()}
	}
	if err := validateHHMM(cfg.Meta.RebalanceTimeLocal); err != nil {
		return ValidationError{"meta.rebalance_time_local", err.Error()}
	}

	// staging must precede rebalance within the session
	stagingTime, _ := time.Parse("15:04", cfg.Meta.StagingTimeLocal)
	rebalanceTime, _ := time.Parse("15:04", cfg.Meta.RebalanceTimeLocal)
	if !stagingTime.Before(rebalanceTime) {
		return ValidationError{"meta", "staging_time_local must be before rebalance_time_local"}
	}

	// === Universe ===
	u := cfg.Universe.Filters
	if u.MinPriceHistoryDays <= 0 {
		return ValidationError{"universe.filters.min_price_history_days", "must be > 0"}
	}
	if u.MinSentimentHistoryDays <= 0 {
		return ValidationError{"universe.filters.min_sentiment_history_days", "must be > 0"}
	}
	if u.PriceMinUSD < 0 {
		return ValidationError{"universe.filters.price_min_usd", "must be >= 0"}
	}

	// === Factors ===
	f := cfg.Factors
	if f.ReturnLookbackDays <= 0 {
		return ValidationError{"factors.return_lookback_days", "must be > 0"}
	}
	if f.SentimentWindowDays <= 0 {
		return ValidationError{"factors.sentiment_window_days", "must be > 0"}
	}
	if f.TrendShortWindowDays <= 0 {
		return ValidationError{"factors.trend_short_window_days", "must be > 0"}
	}
	if f.TrendShortWindowDays >= f.TrendLongWindowDays {
		return ValidationError{"factors", "trend_short_window_days must be < trend_long_window_days"}
	}
	// 유니버스 최소 이력이 최장 윈도우를 감당해야 함
	if u.MinPriceHistoryDays < f.TrendLongWindowDays {
		return ValidationError{"universe.filters.min_price_history_days",
			fmt.Sprintf("must cover trend_long_window_days=%d", f.TrendLongWindowDays)}
	}

	// === Scoring ===
	w := cfg.Scoring.Winsorize
	if w.LowerPct < 0 || w.UpperPct > 100 || w.LowerPct >= w.UpperPct {
		return ValidationError{"scoring.winsorize", "must satisfy 0 <= lower_pct < upper_pct <= 100"}
	}

	low := cfg.Scoring.Eligibility.LowBand
	high := cfg.Scoring.Eligibility.HighBand
	if err := validateBand(low, "scoring.eligibility.low_band"); err != nil {
		return err
	}
	if err := validateBand(high, "scoring.eligibility.high_band"); err != nil {
		return err
	}
	if low.Max > high.Min {
		return ValidationError{"scoring.eligibility", "low_band.max must be <= high_band.min"}
	}

	// === Portfolio ===
	p := cfg.Portfolio
	if p.MaxGrossExposure <= 0 {
		return ValidationError{"portfolio.max_gross_exposure", "must be > 0"}
	}
	if p.MaxPositionWeight <= 0 || p.MaxPositionWeight > p.MaxGrossExposure {
		return ValidationError{"portfolio.max_position_weight", "must be in (0, max_gross_exposure]"}
	}
	if p.Tolerance < 0 {
		return ValidationError{"portfolio.tolerance", "must be >= 0"}
	}

	// === Optimizer ===
	if cfg.Optimizer.Objective != "MAXIMIZE_ALPHA" {
		return ValidationError{"optimizer.objective", "must be MAXIMIZE_ALPHA"}
	}

	return nil
}

// Warn checks recommended constraints (non-fatal)
func Warn(cfg *Config) []Warning {
	var warnings []Warning

	// 종목 상한이 너무 작으면 그로스 한도를 채우는 데 과도한 종목 수 필요
	p := cfg.Portfolio
	if p.MaxPositionWeight > 0 && p.MaxGrossExposure/p.MaxPositionWeight > 200 {
		warnings = append(warnings, Warning{
			Code:    "TINY_POSITION_CAP",
			Message: "max_position_weight 대비 max_gross_exposure가 큼: 200종목 이상 필요",
		})
	}

	// 감성 윈도우와 수익률 룩백이 다르면 의도 확인 필요
	if cfg.Factors.SentimentWindowDays != cfg.Factors.ReturnLookbackDays {
		warnings = append(warnings, Warning{
			Code:    "WINDOW_MISMATCH",
			Message: "sentiment_window_days != return_lookback_days: 의도된 설정인지 확인",
		})
	}

	return warnings
}

// === Helper Functions ===

func validateHHMM(s string) error {
	re := regexp.MustCompile(`^\d{2}:\d{2}$`)
	if !re.MatchString(s) {
		return errors.New("must be HH:MM format")
	}
	_, err := time.Parse("15:04", s)
	return err
}

func validateBand(b Band, field string) error {
	if b.Min < 0 || b.Max > 100 || b.Min >= b.Max {
		return ValidationError{field, "must satisfy 0 <= min < max <= 100"}
	}
	return nil
}

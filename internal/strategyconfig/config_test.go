package strategyconfig

import (
	"os"
	"testing"
)

func TestLoad(t *testing.T) {
	// 테스트용 YAML 경로
	path := "../../config/strategy/meanrev_us_v1.yaml"

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Skip("config file not found")
	}

	cfg, yamlData, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	// 기본 검증
	if cfg.Meta.StrategyID != "meanrev_us_v1" {
		t.Errorf("expected strategy_id=meanrev_us_v1, got %s", cfg.Meta.StrategyID)
	}
	if cfg.Factors.TrendLongWindowDays != 200 {
		t.Errorf("expected trend_long_window_days=200, got %d", cfg.Factors.TrendLongWindowDays)
	}
	if cfg.Portfolio.MaxPositionWeight != 0.025 {
		t.Errorf("expected max_position_weight=0.025, got %v", cfg.Portfolio.MaxPositionWeight)
	}
	if !cfg.Portfolio.DollarNeutral {
		t.Error("expected dollar_neutral=true")
	}

	// 해시 생성
	hash, err := Hash(cfg)
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	if len(hash) != 64 {
		t.Errorf("expected 64 char hash, got %d", len(hash))
	}

	// 동일 설정 → 동일 해시
	hash2, _ := Hash(cfg)
	if hash != hash2 {
		t.Error("hash not deterministic")
	}

	t.Logf("config hash: %s", hash)
	t.Logf("yaml size: %d bytes", len(yamlData))
}

func validConfig() *Config {
	return &Config{
		Meta: Meta{
			StrategyID:         "meanrev_us_v1",
			Version:            "1.0",
			Timezone:           "America/New_York",
			StagingTimeLocal:   "08:45",
			RebalanceTimeLocal: "11:00",
		},
		Universe: Universe{
			Filters: UniverseFilters{
				MinPriceHistoryDays:     200,
				MinSentimentHistoryDays: 7,
				PriceMinUSD:             1.0,
			},
		},
		Factors: Factors{
			ReturnLookbackDays:   7,
			SentimentWindowDays:  7,
			TrendShortWindowDays: 50,
			TrendLongWindowDays:  200,
		},
		Scoring: Scoring{
			Winsorize: Winsorize{LowerPct: 1, UpperPct: 95},
			Eligibility: Eligibility{
				LowBand:  Band{Min: 0, Max: 25},
				HighBand: Band{Min: 75, Max: 100},
			},
		},
		Portfolio: Portfolio{
			MaxGrossExposure:  1.0,
			MaxPositionWeight: 0.025,
			DollarNeutral:     true,
			Tolerance:         1e-9,
		},
		Optimizer: Optimizer{Objective: "MAXIMIZE_ALPHA"},
	}
}

func TestValidateOK(t *testing.T) {
	if err := Validate(validConfig()); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{
			name:   "missing strategy_id",
			mutate: func(c *Config) { c.Meta.StrategyID = "" },
			field:  "meta.strategy_id",
		},
		{
			name:   "bad timezone",
			mutate: func(c *Config) { c.Meta.Timezone = "Mars/Olympus_Mons" },
			field:  "meta.timezone",
		},
		{
			name:   "staging after rebalance",
			mutate: func(c *Config) { c.Meta.StagingTimeLocal = "12:00" },
			field:  "meta",
		},
		{
			name:   "short window above long",
			mutate: func(c *Config) { c.Factors.TrendShortWindowDays = 250 },
			field:  "factors",
		},
		{
			name:   "history shorter than long window",
			mutate: func(c *Config) { c.Universe.Filters.MinPriceHistoryDays = 100 },
			field:  "universe.filters.min_price_history_days",
		},
		{
			name:   "inverted winsorize",
			mutate: func(c *Config) { c.Scoring.Winsorize = Winsorize{LowerPct: 95, UpperPct: 1} },
			field:  "scoring.winsorize",
		},
		{
			name:   "overlapping bands",
			mutate: func(c *Config) { c.Scoring.Eligibility.LowBand.Max = 80 },
			field:  "scoring.eligibility",
		},
		{
			name:   "position cap above gross",
			mutate: func(c *Config) { c.Portfolio.MaxPositionWeight = 1.5 },
			field:  "portfolio.max_position_weight",
		},
		{
			name:   "unknown objective",
			mutate: func(c *Config) { c.Optimizer.Objective = "MINIMIZE_RISK" },
			field:  "optimizer.objective",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := Validate(cfg)
			if err == nil {
				t.Fatal("expected validation error")
			}

			verr, ok := err.(ValidationError)
			if !ok {
				t.Fatalf("expected ValidationError, got %T", err)
			}
			if verr.Field != tt.field {
				t.Errorf("field = %q, want %q", verr.Field, tt.field)
			}
		})
	}
}

func TestBandContains(t *testing.T) {
	b := Band{Min: 0, Max: 25}

	// 경계 포함
	if !b.Contains(0) || !b.Contains(25) {
		t.Error("band boundaries must be inclusive")
	}
	if b.Contains(25.01) {
		t.Error("25.01 should be outside [0, 25]")
	}
}

func TestWarn(t *testing.T) {
	cfg := validConfig()
	if w := Warn(cfg); len(w) != 0 {
		t.Errorf("expected no warnings for default config, got %v", w)
	}

	cfg.Factors.SentimentWindowDays = 14
	warnings := Warn(cfg)
	found := false
	for _, w := range warnings {
		if w.Code == "WINDOW_MISMATCH" {
			found = true
		}
	}
	if !found {
		t.Error("expected WINDOW_MISMATCH warning")
	}
}

package s2_factors

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/wonpil/sentrev/internal/contracts"
	"github.com/wonpil/sentrev/internal/strategyconfig"
	"github.com/wonpil/sentrev/pkg/config"
	"github.com/wonpil/sentrev/pkg/logger"
)

// fakePriceRepo serves canned close series per symbol
type fakePriceRepo struct {
	closes map[string][]float64
	errs   map[string]error
}

var _ contracts.PriceRepository = (*fakePriceRepo)(nil)

func (f *fakePriceRepo) GetBySymbolAndDate(ctx context.Context, symbol string, date time.Time) (*contracts.Price, error) {
	return nil, nil
}

func (f *fakePriceRepo) GetBySymbolAndDateRange(ctx context.Context, symbol string, from, to time.Time) ([]*contracts.Price, error) {
	return nil, nil
}

func (f *fakePriceRepo) GetCloses(ctx context.Context, symbol string, asOf time.Time, days int) ([]float64, error) {
	if err := f.errs[symbol]; err != nil {
		return nil, err
	}
	return f.closes[symbol], nil
}

func (f *fakePriceRepo) GetActiveSymbols(ctx context.Context, asOf time.Time, minDays int) ([]string, error) {
	return nil, nil
}

func (f *fakePriceRepo) Save(ctx context.Context, price *contracts.Price) error { return nil }

func (f *fakePriceRepo) SaveBatch(ctx context.Context, prices []*contracts.Price) error { return nil }

// fakeSentimentRepo serves canned daily sentiment per symbol
type fakeSentimentRepo struct {
	rows map[string][]*contracts.Sentiment
}

var _ contracts.SentimentRepository = (*fakeSentimentRepo)(nil)

func (f *fakeSentimentRepo) GetBySymbolAndDate(ctx context.Context, symbol string, date time.Time) (*contracts.Sentiment, error) {
	return nil, nil
}

func (f *fakeSentimentRepo) GetBySymbolAndDateRange(ctx context.Context, symbol string, from, to time.Time) ([]*contracts.Sentiment, error) {
	return f.rows[symbol], nil
}

func (f *fakeSentimentRepo) Save(ctx context.Context, sentiment *contracts.Sentiment) error {
	return nil
}

func (f *fakeSentimentRepo) SaveBatch(ctx context.Context, sentiments []*contracts.Sentiment) error {
	return nil
}

func builderStrategy() *strategyconfig.Config {
	return &strategyconfig.Config{
		Factors: strategyconfig.Factors{
			ReturnLookbackDays:   2,
			SentimentWindowDays:  2,
			TrendShortWindowDays: 2,
			TrendLongWindowDays:  3,
		},
	}
}

func builderLogger() *logger.Logger {
	return logger.New(&config.Config{Env: "test", LogLevel: "error", LogFormat: "json"})
}

func TestBuild(t *testing.T) {
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	priceRepo := &fakePriceRepo{
		closes: map[string][]float64{"AAPL": {10, 10, 12}},
	}
	sentimentRepo := &fakeSentimentRepo{
		rows: map[string][]*contracts.Sentiment{
			"AAPL": {
				{Symbol: "AAPL", TotalMessages: 10, BullMessages: 6, BearMessages: 2},
				{Symbol: "AAPL", TotalMessages: 20, BullMessages: 8, BearMessages: 4},
			},
		},
	}

	b := NewBuilder(priceRepo, sentimentRepo, builderStrategy(), builderLogger())
	universe := &contracts.Universe{Date: date, Symbols: []string{"AAPL"}}

	factorSet, err := b.Build(context.Background(), universe, date)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	row := factorSet.Rows["AAPL"]
	if row == nil {
		t.Fatal("Expected factor row for AAPL")
	}
	if !almostEqual(row.SMA50, 11) {
		t.Errorf("SMA50 = %v, want 11", row.SMA50)
	}
	if !almostEqual(row.SMA200, 32.0/3.0) {
		t.Errorf("SMA200 = %v, want %v", row.SMA200, 32.0/3.0)
	}
	if !almostEqual(row.TrailingReturn, 0.2) {
		t.Errorf("TrailingReturn = %v, want 0.2", row.TrailingReturn)
	}
	if !almostEqual(row.MessageAvg, 15) {
		t.Errorf("MessageAvg = %v, want 15", row.MessageAvg)
	}
	if !almostEqual(row.SentimentAvg, 4) {
		t.Errorf("SentimentAvg = %v, want 4", row.SentimentAvg)
	}
}

func TestBuildKeepsDegradedSymbols(t *testing.T) {
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	priceRepo := &fakePriceRepo{
		closes: map[string][]float64{"AAPL": {10, 10, 12}},
		errs:   map[string]error{"MSFT": errors.New("no price data")},
	}
	sentimentRepo := &fakeSentimentRepo{
		rows: map[string][]*contracts.Sentiment{
			"AAPL": {
				{Symbol: "AAPL", TotalMessages: 10, BullMessages: 6, BearMessages: 2},
				{Symbol: "AAPL", TotalMessages: 20, BullMessages: 8, BearMessages: 4},
			},
		},
	}

	b := NewBuilder(priceRepo, sentimentRepo, builderStrategy(), builderLogger())
	universe := &contracts.Universe{Date: date, Symbols: []string{"AAPL", "MSFT"}}

	factorSet, err := b.Build(context.Background(), universe, date)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	// 데이터 결측 심볼도 행은 유지되고 팩터는 전부 NaN
	degraded := factorSet.Rows["MSFT"]
	if degraded == nil {
		t.Fatal("Expected degraded row for MSFT")
	}
	if !math.IsNaN(degraded.SMA50) || !math.IsNaN(degraded.SentimentAvg) {
		t.Errorf("Degraded row must carry NaN factors, got SMA50=%v SentimentAvg=%v",
			degraded.SMA50, degraded.SentimentAvg)
	}

	healthy := factorSet.Rows["AAPL"]
	if healthy == nil || math.IsNaN(healthy.SMA50) {
		t.Error("Healthy symbol must keep real factor values")
	}
}

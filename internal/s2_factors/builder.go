package s2_factors

import (
	"context"
	"fmt"
	"time"

	"github.com/wonpil/sentrev/internal/contracts"
	"github.com/wonpil/sentrev/internal/strategyconfig"
	"github.com/wonpil/sentrev/pkg/logger"
)

// Builder computes per-symbol factor rows from stored data
// ⭐ SSOT: 팩터 생성 오케스트레이션은 여기서만
type Builder struct {
	priceRepo     contracts.PriceRepository
	sentimentRepo contracts.SentimentRepository
	strategy      *strategyconfig.Config
	logger        *logger.Logger
}

// NewBuilder creates a new factor builder
func NewBuilder(
	priceRepo contracts.PriceRepository,
	sentimentRepo contracts.SentimentRepository,
	strategy *strategyconfig.Config,
	log *logger.Logger,
) *Builder {
	return &Builder{
		priceRepo:     priceRepo,
		sentimentRepo: sentimentRepo,
		strategy:      strategy,
		logger:        log,
	}
}

// Build generates a FactorSet for all symbols in the universe
func (b *Builder) Build(ctx context.Context, universe *contracts.Universe, date time.Time) (*contracts.FactorSet, error) {
	b.logger.WithFields(map[string]interface{}{
		"date":         date.Format("2006-01-02"),
		"symbol_count": universe.Count(),
	}).Info("Starting factor generation")

	factorSet := &contracts.FactorSet{
		Date: date,
		Rows: make(map[string]*contracts.FactorRow),
	}

	successCount := 0
	for _, symbol := range universe.Symbols {
		row, err := b.buildRow(ctx, symbol, date)
		if err != nil {
			b.logger.WithSymbol(symbol).WithError(err).Warn("Failed to build factor row")
			// 데이터가 없어도 심볼은 유지: 결측 팩터는 합성 시 1.0으로 치환
			row = contracts.NewFactorRow(symbol)
			row.UpdatedAt = time.Now()
			factorSet.Rows[symbol] = row
			continue
		}

		factorSet.Rows[symbol] = row
		successCount++
	}

	b.logger.WithFields(map[string]interface{}{
		"total":    universe.Count(),
		"success":  successCount,
		"degraded": universe.Count() - successCount,
	}).Info("Factor generation completed")

	return factorSet, nil
}

// buildRow computes all factors for a single symbol
func (b *Builder) buildRow(ctx context.Context, symbol string, date time.Time) (*contracts.FactorRow, error) {
	row := contracts.NewFactorRow(symbol)

	f := b.strategy.Factors

	// 1. 가격 추세: 최장 윈도우만큼 종가 조회
	closes, err := b.priceRepo.GetCloses(ctx, symbol, date, f.TrendLongWindowDays)
	if err != nil {
		return nil, fmt.Errorf("load closes: %w", err)
	}

	row.SMA50 = SMA(closes, f.TrendShortWindowDays)
	row.SMA200 = SMA(closes, f.TrendLongWindowDays)

	// 2. 추적 수익률 (lookback+1 종가 필요)
	row.TrailingReturn = TrailingReturn(closes, f.ReturnLookbackDays)

	// 3. 감성: 윈도우 내 일별 메시지 집계
	from := date.AddDate(0, 0, -f.SentimentWindowDays*2) // 휴장일 여유분
	sentiments, err := b.sentimentRepo.GetBySymbolAndDateRange(ctx, symbol, from, date)
	if err != nil {
		return nil, fmt.Errorf("load sentiment: %w", err)
	}

	messages := make([]float64, 0, len(sentiments))
	netBullish := make([]float64, 0, len(sentiments))
	for _, s := range sentiments {
		messages = append(messages, s.TotalMessages)
		netBullish = append(netBullish, s.NetBullish())
	}

	row.MessageAvg = SMA(messages, f.SentimentWindowDays)
	row.SentimentAvg = SMA(netBullish, f.SentimentWindowDays)

	row.UpdatedAt = time.Now()
	return row, nil
}

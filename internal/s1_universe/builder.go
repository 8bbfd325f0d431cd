package s1_universe

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wonpil/sentrev/internal/contracts"
)

// Builder constructs the tradeable universe
type Builder struct {
	db     *pgxpool.Pool
	config Config
}

// Config holds universe filter criteria
type Config struct {
	MinPriceHistoryDays     int     `yaml:"min_price_history_days"`     // 최소 가격 이력 일수
	MinSentimentHistoryDays int     `yaml:"min_sentiment_history_days"` // 최소 감성 이력 일수
	PriceMinUSD             float64 `yaml:"price_min_usd"`              // 최소 종가 (페니스톡 제외)
}

// Candidate represents a symbol with filter criteria
type Candidate struct {
	Symbol        string
	LastClose     float64
	PriceDays     int // 보유 가격 이력 일수
	SentimentDays int // 보유 감성 이력 일수
}

// NewBuilder creates a new Universe Builder
func NewBuilder(db *pgxpool.Pool, config Config) *Builder {
	return &Builder{
		db:     db,
		config: config,
	}
}

// Build constructs the tradeable universe as of a date
// ⭐ SSOT: S1 → S2 유니버스 생성
func (b *Builder) Build(ctx context.Context, date time.Time) (*contracts.Universe, error) {
	universe := &contracts.Universe{
		Date:     date,
		Symbols:  make([]string, 0),
		Excluded: make(map[string]string),
	}

	candidates, err := b.getCandidates(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("get candidates: %w", err)
	}

	// 필터링
	for _, c := range candidates {
		reason := b.checkExclusion(c)
		if reason != "" {
			universe.Excluded[c.Symbol] = reason
			continue
		}
		universe.Symbols = append(universe.Symbols, c.Symbol)
	}

	universe.TotalCount = len(universe.Symbols)
	return universe, nil
}

// getCandidates retrieves all symbols with data coverage counts
func (b *Builder) getCandidates(ctx context.Context, date time.Time) ([]Candidate, error) {
	// Note: 감성 이력은 LEFT JOIN - 감성 데이터가 없는 심볼도 후보에 포함
	query := `
		SELECT
			p.symbol,
			p.last_close,
			p.price_days,
			COALESCE(s.sentiment_days, 0)
		FROM (
			SELECT
				symbol,
				(ARRAY_AGG(close ORDER BY trade_date DESC))[1] AS last_close,
				COUNT(*) AS price_days
			FROM market.daily_prices
			WHERE trade_date <= $1
			GROUP BY symbol
		) p
		LEFT JOIN (
			SELECT symbol, COUNT(*) AS sentiment_days
			FROM market.sentiment
			WHERE trade_date <= $1
			  AND trade_date > ($1::date - INTERVAL '30 days')
			GROUP BY symbol
		) s ON p.symbol = s.symbol
		ORDER BY p.symbol
	`

	rows, err := b.db.Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("query candidates: %w", err)
	}
	defer rows.Close()

	candidates := make([]Candidate, 0)
	for rows.Next() {
		var c Candidate
		err := rows.Scan(
			&c.Symbol,
			&c.LastClose,
			&c.PriceDays,
			&c.SentimentDays,
		)
		if err != nil {
			return nil, fmt.Errorf("scan candidate: %w", err)
		}

		candidates = append(candidates, c)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate candidates: %w", rows.Err())
	}

	return candidates, nil
}

// checkExclusion checks if a symbol should be excluded and returns the reason
func (b *Builder) checkExclusion(c Candidate) string {
	// 우선순위 순서로 체크

	// 1. 가격 이력 미달 (장기 이동평균 계산 불가)
	if c.PriceDays < b.config.MinPriceHistoryDays {
		return fmt.Sprintf("가격 이력 미달 (%d일)", c.PriceDays)
	}

	// 2. 최소 종가 미달
	if c.LastClose < b.config.PriceMinUSD {
		return fmt.Sprintf("종가 미달 ($%.2f)", c.LastClose)
	}

	// 3. 감성 이력 미달
	if c.SentimentDays < b.config.MinSentimentHistoryDays {
		return fmt.Sprintf("감성 이력 미달 (%d일)", c.SentimentDays)
	}

	return "" // 통과
}

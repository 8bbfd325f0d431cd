package repos

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/wonpil/sentrev/internal/contracts"
)

// SentimentRepository implements contracts.SentimentRepository
// ⭐ SSOT: 감성 데이터 저장/조회는 여기서만
type SentimentRepository struct {
	pool *pgxpool.Pool
}

// NewSentimentRepository creates a new sentiment repository
func NewSentimentRepository(pool *pgxpool.Pool) *SentimentRepository {
	return &SentimentRepository{pool: pool}
}

// GetBySymbolAndDate retrieves one day of sentiment for a symbol
func (r *SentimentRepository) GetBySymbolAndDate(ctx context.Context, symbol string, date time.Time) (*contracts.Sentiment, error) {
	query := `
		SELECT symbol, trade_date, total_messages, bull_messages, bear_messages
		FROM market.sentiment
		WHERE symbol = $1 AND trade_date = $2
	`

	var s contracts.Sentiment
	err := r.pool.QueryRow(ctx, query, symbol, date).Scan(
		&s.Symbol, &s.Date, &s.TotalMessages, &s.BullMessages, &s.BearMessages,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("query sentiment: %w", err)
	}

	return &s, nil
}

// GetBySymbolAndDateRange retrieves sentiment in [from, to], oldest first
func (r *SentimentRepository) GetBySymbolAndDateRange(ctx context.Context, symbol string, from, to time.Time) ([]*contracts.Sentiment, error) {
	query := `
		SELECT symbol, trade_date, total_messages, bull_messages, bear_messages
		FROM market.sentiment
		WHERE symbol = $1 AND trade_date BETWEEN $2 AND $3
		ORDER BY trade_date ASC
	`

	rows, err := r.pool.Query(ctx, query, symbol, from, to)
	if err != nil {
		return nil, fmt.Errorf("query sentiments: %w", err)
	}
	defer rows.Close()

	sentiments := make([]*contracts.Sentiment, 0)
	for rows.Next() {
		var s contracts.Sentiment
		if err := rows.Scan(&s.Symbol, &s.Date, &s.TotalMessages, &s.BullMessages, &s.BearMessages); err != nil {
			return nil, fmt.Errorf("scan sentiment: %w", err)
		}
		sentiments = append(sentiments, &s)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate sentiments: %w", rows.Err())
	}

	return sentiments, nil
}

// Save upserts a single sentiment row
func (r *SentimentRepository) Save(ctx context.Context, sentiment *contracts.Sentiment) error {
	query := `
		INSERT INTO market.sentiment (symbol, trade_date, total_messages, bull_messages, bear_messages)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (symbol, trade_date) DO UPDATE SET
			total_messages = EXCLUDED.total_messages,
			bull_messages = EXCLUDED.bull_messages,
			bear_messages = EXCLUDED.bear_messages
	`

	_, err := r.pool.Exec(ctx, query,
		sentiment.Symbol, sentiment.Date, sentiment.TotalMessages, sentiment.BullMessages, sentiment.BearMessages,
	)
	if err != nil {
		return fmt.Errorf("save sentiment: %w", err)
	}
	return nil
}

// SaveBatch upserts sentiment rows in a single transaction
func (r *SentimentRepository) SaveBatch(ctx context.Context, sentiments []*contracts.Sentiment) error {
	if len(sentiments) == 0 {
		return nil
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO market.sentiment (symbol, trade_date, total_messages, bull_messages, bear_messages)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (symbol, trade_date) DO UPDATE SET
			total_messages = EXCLUDED.total_messages,
			bull_messages = EXCLUDED.bull_messages,
			bear_messages = EXCLUDED.bear_messages
	`

	for _, s := range sentiments {
		if _, err := tx.Exec(ctx, query,
			s.Symbol, s.Date, s.TotalMessages, s.BullMessages, s.BearMessages,
		); err != nil {
			return fmt.Errorf("save sentiment %s: %w", s.Symbol, err)
		}
	}

	return tx.Commit(ctx)
}

var _ contracts.SentimentRepository = (*SentimentRepository)(nil)

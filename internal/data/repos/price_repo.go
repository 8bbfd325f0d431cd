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

// PriceRepository implements contracts.PriceRepository
// ⭐ SSOT: 가격 데이터 저장/조회는 여기서만
type PriceRepository struct {
	pool *pgxpool.Pool
}

// NewPriceRepository creates a new price repository
func NewPriceRepository(pool *pgxpool.Pool) *PriceRepository {
	return &PriceRepository{pool: pool}
}

// GetBySymbolAndDate retrieves the bar for a symbol on a date
func (r *PriceRepository) GetBySymbolAndDate(ctx context.Context, symbol string, date time.Time) (*contracts.Price, error) {
	query := `
		SELECT symbol, trade_date, open, high, low, close, volume
		FROM market.daily_prices
		WHERE symbol = $1 AND trade_date = $2
	`

	var p contracts.Price
	err := r.pool.QueryRow(ctx, query, symbol, date).Scan(
		&p.Symbol, &p.Date, &p.Open, &p.High, &p.Low, &p.Close, &p.Volume,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("query price: %w", err)
	}

	return &p, nil
}

// GetBySymbolAndDateRange retrieves bars in [from, to], oldest first
func (r *PriceRepository) GetBySymbolAndDateRange(ctx context.Context, symbol string, from, to time.Time) ([]*contracts.Price, error) {
	query := `
		SELECT symbol, trade_date, open, high, low, close, volume
		FROM market.daily_prices
		WHERE symbol = $1 AND trade_date BETWEEN $2 AND $3
		ORDER BY trade_date ASC
	`

	rows, err := r.pool.Query(ctx, query, symbol, from, to)
	if err != nil {
		return nil, fmt.Errorf("query prices: %w", err)
	}
	defer rows.Close()

	prices := make([]*contracts.Price, 0)
	for rows.Next() {
		var p contracts.Price
		if err := rows.Scan(&p.Symbol, &p.Date, &p.Open, &p.High, &p.Low, &p.Close, &p.Volume); err != nil {
			return nil, fmt.Errorf("scan price: %w", err)
		}
		prices = append(prices, &p)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate prices: %w", rows.Err())
	}

	return prices, nil
}

// GetCloses returns the last N closes up to asOf, oldest first.
// 이동평균/수익률 계산용 경량 조회.
func (r *PriceRepository) GetCloses(ctx context.Context, symbol string, asOf time.Time, days int) ([]float64, error) {
	query := `
		SELECT close FROM (
			SELECT close, trade_date
			FROM market.daily_prices
			WHERE symbol = $1 AND trade_date <= $2
			ORDER BY trade_date DESC
			LIMIT $3
		) recent
		ORDER BY trade_date ASC
	`

	rows, err := r.pool.Query(ctx, query, symbol, asOf, days)
	if err != nil {
		return nil, fmt.Errorf("query closes: %w", err)
	}
	defer rows.Close()

	closes := make([]float64, 0, days)
	for rows.Next() {
		var c float64
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("scan close: %w", err)
		}
		closes = append(closes, c)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate closes: %w", rows.Err())
	}

	return closes, nil
}

// GetActiveSymbols returns symbols with at least minDays bars up to asOf
func (r *PriceRepository) GetActiveSymbols(ctx context.Context, asOf time.Time, minDays int) ([]string, error) {
	query := `
		SELECT symbol
		FROM market.daily_prices
		WHERE trade_date <= $1
		GROUP BY symbol
		HAVING COUNT(*) >= $2
		ORDER BY symbol
	`

	rows, err := r.pool.Query(ctx, query, asOf, minDays)
	if err != nil {
		return nil, fmt.Errorf("query active symbols: %w", err)
	}
	defer rows.Close()

	symbols := make([]string, 0)
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("scan symbol: %w", err)
		}
		symbols = append(symbols, s)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate symbols: %w", rows.Err())
	}

	return symbols, nil
}

// Save upserts a single bar
func (r *PriceRepository) Save(ctx context.Context, price *contracts.Price) error {
	query := `
		INSERT INTO market.daily_prices (symbol, trade_date, open, high, low, close, volume)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (symbol, trade_date) DO UPDATE SET
			open = EXCLUDED.open,
			high = EXCLUDED.high,
			low = EXCLUDED.low,
			close = EXCLUDED.close,
			volume = EXCLUDED.volume
	`

	_, err := r.pool.Exec(ctx, query,
		price.Symbol, price.Date, price.Open, price.High, price.Low, price.Close, price.Volume,
	)
	if err != nil {
		return fmt.Errorf("save price: %w", err)
	}
	return nil
}

// SaveBatch upserts bars in a single transaction
func (r *PriceRepository) SaveBatch(ctx context.Context, prices []*contracts.Price) error {
	if len(prices) == 0 {
		return nil
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO market.daily_prices (symbol, trade_date, open, high, low, close, volume)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (symbol, trade_date) DO UPDATE SET
			open = EXCLUDED.open,
			high = EXCLUDED.high,
			low = EXCLUDED.low,
			close = EXCLUDED.close,
			volume = EXCLUDED.volume
	`

	for _, p := range prices {
		if _, err := tx.Exec(ctx, query,
			p.Symbol, p.Date, p.Open, p.High, p.Low, p.Close, p.Volume,
		); err != nil {
			return fmt.Errorf("save price %s: %w", p.Symbol, err)
		}
	}

	return tx.Commit(ctx)
}

var _ contracts.PriceRepository = (*PriceRepository)(nil)

package repos

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/wonpil/sentrev/internal/contracts"
)

// UniverseRepository implements contracts.UniverseRepository
// ⭐ SSOT: 유니버스 스냅샷 저장/조회는 여기서만
type UniverseRepository struct {
	pool *pgxpool.Pool
}

// NewUniverseRepository creates a new universe repository
func NewUniverseRepository(pool *pgxpool.Pool) *UniverseRepository {
	return &UniverseRepository{pool: pool}
}

// GetByDate retrieves the universe snapshot for a date
func (r *UniverseRepository) GetByDate(ctx context.Context, date time.Time) (*contracts.Universe, error) {
	query := `
		SELECT snapshot_date, symbols, excluded
		FROM strategy.universe_snapshots
		WHERE snapshot_date = $1
	`

	return r.scanUniverse(r.pool.QueryRow(ctx, query, date))
}

// GetLatest retrieves the most recent universe snapshot
func (r *UniverseRepository) GetLatest(ctx context.Context) (*contracts.Universe, error) {
	query := `
		SELECT snapshot_date, symbols, excluded
		FROM strategy.universe_snapshots
		ORDER BY snapshot_date DESC
		LIMIT 1
	`

	return r.scanUniverse(r.pool.QueryRow(ctx, query))
}

// Save replaces the universe snapshot for the date
func (r *UniverseRepository) Save(ctx context.Context, universe *contracts.Universe) error {
	symbols, err := json.Marshal(universe.Symbols)
	if err != nil {
		return fmt.Errorf("marshal symbols: %w", err)
	}
	excluded, err := json.Marshal(universe.Excluded)
	if err != nil {
		return fmt.Errorf("marshal excluded: %w", err)
	}

	query := `
		INSERT INTO strategy.universe_snapshots (snapshot_date, symbols, excluded)
		VALUES ($1, $2, $3)
		ON CONFLICT (snapshot_date) DO UPDATE SET
			symbols = EXCLUDED.symbols,
			excluded = EXCLUDED.excluded
	`

	if _, err := r.pool.Exec(ctx, query, universe.Date, symbols, excluded); err != nil {
		return fmt.Errorf("save universe: %w", err)
	}
	return nil
}

func (r *UniverseRepository) scanUniverse(row pgx.Row) (*contracts.Universe, error) {
	var u contracts.Universe
	var symbols, excluded []byte

	err := row.Scan(&u.Date, &symbols, &excluded)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("query universe: %w", err)
	}

	if err := json.Unmarshal(symbols, &u.Symbols); err != nil {
		return nil, fmt.Errorf("unmarshal symbols: %w", err)
	}
	if err := json.Unmarshal(excluded, &u.Excluded); err != nil {
		return nil, fmt.Errorf("unmarshal excluded: %w", err)
	}

	u.TotalCount = len(u.Symbols)
	return &u, nil
}

var _ contracts.UniverseRepository = (*UniverseRepository)(nil)

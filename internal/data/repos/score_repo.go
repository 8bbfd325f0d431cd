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

// ScoreRepository implements contracts.ScoreRepository
// ⭐ SSOT: 점수 스냅샷 저장/조회는 여기서만
type ScoreRepository struct {
	pool *pgxpool.Pool
}

// NewScoreRepository creates a new score repository
func NewScoreRepository(pool *pgxpool.Pool) *ScoreRepository {
	return &ScoreRepository{pool: pool}
}

// GetByDate retrieves the score set for a date
func (r *ScoreRepository) GetByDate(ctx context.Context, date time.Time) (*contracts.ScoreSet, error) {
	query := `
		SELECT symbol, score, filter_reason
		FROM strategy.scores
		WHERE calc_date = $1
		ORDER BY symbol
	`

	rows, err := r.pool.Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("query scores: %w", err)
	}
	defer rows.Close()

	scoreSet := &contracts.ScoreSet{
		Date:     date,
		Scores:   make(map[string]float64),
		Filtered: make(map[string]string),
	}

	for rows.Next() {
		var symbol string
		var score *float64
		var reason *string
		if err := rows.Scan(&symbol, &score, &reason); err != nil {
			return nil, fmt.Errorf("scan score: %w", err)
		}

		// 점수와 필터 사유 중 하나만 존재
		if score != nil {
			scoreSet.Scores[symbol] = *score
		} else if reason != nil {
			scoreSet.Filtered[symbol] = *reason
		}
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate scores: %w", rows.Err())
	}

	if scoreSet.Count() == 0 && len(scoreSet.Filtered) == 0 {
		return nil, nil
	}
	return scoreSet, nil
}

// GetLatest retrieves the most recent score set
func (r *ScoreRepository) GetLatest(ctx context.Context) (*contracts.ScoreSet, error) {
	// MAX() 집계는 빈 테이블에서도 NULL 한 행을 돌려주므로 LIMIT 1 조회를 쓴다
	row := r.pool.QueryRow(ctx, `
		SELECT calc_date
		FROM strategy.scores
		ORDER BY calc_date DESC
		LIMIT 1
	`)

	date, ok, err := scanLatestCalcDate(row)
	if err != nil {
		return nil, fmt.Errorf("query latest score date: %w", err)
	}
	if !ok {
		return nil, nil
	}

	return r.GetByDate(ctx, date)
}

// scanLatestCalcDate scans the newest snapshot date; ok=false면 빈 테이블
func scanLatestCalcDate(row pgx.Row) (time.Time, bool, error) {
	var date time.Time
	if err := row.Scan(&date); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return time.Time{}, false, nil
		}
		return time.Time{}, false, err
	}
	return date, true, nil
}

// Save replaces the score snapshot for the date
func (r *ScoreRepository) Save(ctx context.Context, scores *contracts.ScoreSet) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`DELETE FROM strategy.scores WHERE calc_date = $1`, scores.Date,
	); err != nil {
		return fmt.Errorf("delete old scores: %w", err)
	}

	query := `
		INSERT INTO strategy.scores (calc_date, symbol, score, filter_reason)
		VALUES ($1, $2, $3, $4)
	`

	for symbol, score := range scores.Scores {
		s := score
		if _, err := tx.Exec(ctx, query, scores.Date, symbol, &s, nil); err != nil {
			return fmt.Errorf("save score %s: %w", symbol, err)
		}
	}
	for symbol, reason := range scores.Filtered {
		rsn := reason
		if _, err := tx.Exec(ctx, query, scores.Date, symbol, nil, &rsn); err != nil {
			return fmt.Errorf("save filter reason %s: %w", symbol, err)
		}
	}

	return tx.Commit(ctx)
}

var _ contracts.ScoreRepository = (*ScoreRepository)(nil)

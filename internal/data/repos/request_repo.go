package repos

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/wonpil/sentrev/internal/contracts"
)

// RequestRepository implements contracts.RequestRepository
// ⭐ SSOT: 옵티마이저 제출 이력 저장/조회는 여기서만
//
// 요청 전문을 JSONB로 보관한다: fire-and-forget 제출이므로
// 되돌릴 해가 없고, 감사 시 제출 내용 자체가 유일한 기록이다.
type RequestRepository struct {
	pool *pgxpool.Pool
}

// NewRequestRepository creates a new request repository
func NewRequestRepository(pool *pgxpool.Pool) *RequestRepository {
	return &RequestRepository{pool: pool}
}

// GetByRunID retrieves a submitted request by run ID
func (r *RequestRepository) GetByRunID(ctx context.Context, runID string) (*contracts.OptimizationRequest, error) {
	query := `
		SELECT payload
		FROM strategy.optimization_requests
		WHERE run_id = $1
	`

	var payload []byte
	err := r.pool.QueryRow(ctx, query, runID).Scan(&payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("query request: %w", err)
	}

	return unmarshalRequest(payload)
}

// GetLatest retrieves the most recently submitted request
func (r *RequestRepository) GetLatest(ctx context.Context) (*contracts.OptimizationRequest, error) {
	query := `
		SELECT payload
		FROM strategy.optimization_requests
		ORDER BY submitted_at DESC
		LIMIT 1
	`

	var payload []byte
	err := r.pool.QueryRow(ctx, query).Scan(&payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("query latest request: %w", err)
	}

	return unmarshalRequest(payload)
}

// Save persists the submitted request
func (r *RequestRepository) Save(ctx context.Context, req *contracts.OptimizationRequest) error {
	payload, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	query := `
		INSERT INTO strategy.optimization_requests (run_id, request_date, submitted_at, payload)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (run_id) DO UPDATE SET
			submitted_at = EXCLUDED.submitted_at,
			payload = EXCLUDED.payload
	`

	if _, err := r.pool.Exec(ctx, query, req.RunID, req.Date, req.SubmittedAt, payload); err != nil {
		return fmt.Errorf("save request: %w", err)
	}
	return nil
}

func unmarshalRequest(payload []byte) (*contracts.OptimizationRequest, error) {
	var req contracts.OptimizationRequest
	if err := json.Unmarshal(payload, &req); err != nil {
		return nil, fmt.Errorf("unmarshal request: %w", err)
	}
	return &req, nil
}

var _ contracts.RequestRepository = (*RequestRepository)(nil)

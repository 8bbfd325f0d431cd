package execution

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/wonpil/sentrev/internal/contracts"
	"github.com/wonpil/sentrev/pkg/config"
	"github.com/wonpil/sentrev/pkg/httputil"
	"github.com/wonpil/sentrev/pkg/logger"
	"github.com/wonpil/sentrev/pkg/redis"
)

// Optimizer defines the interface to the external portfolio optimizer
// ⭐ SSOT: 옵티마이저 연동 인터페이스는 여기서만 정의
type Optimizer interface {
	// Submit sends an optimization request.
	// fire-and-forget: 응답 가중치는 소비하지 않는다.
	Submit(ctx context.Context, req *contracts.OptimizationRequest) (*SubmitResult, error)
}

// SubmitResult represents the submission outcome
type SubmitResult struct {
	RunID       string
	StatusCode  int
	Accepted    bool
	SubmittedAt time.Time
}

// HTTPOptimizer submits requests to the optimizer service over HTTP
type HTTPOptimizer struct {
	baseURL string
	apiKey  string
	client  *httputil.Client
	logger  *logger.Logger
}

// NewHTTPOptimizer creates an optimizer client from config
func NewHTTPOptimizer(cfg *config.Config, log *logger.Logger) *HTTPOptimizer {
	client := httputil.NewWithTimeout(cfg, log, cfg.Optimizer.Timeout).
		WithLocalLimiter(cfg.Optimizer.RateLimit)

	return &HTTPOptimizer{
		baseURL: cfg.Optimizer.BaseURL,
		apiKey:  cfg.Optimizer.APIKey,
		client:  client,
		logger:  log,
	}
}

// WithRateLimiter switches to a Redis-backed distributed rate limit.
// 다중 인스턴스 배포 시 제출 총량을 함께 제한한다.
func (o *HTTPOptimizer) WithRateLimiter(limiter *redis.RateLimiter) *HTTPOptimizer {
	o.client = o.client.WithRateLimiter(limiter, redis.OptimizerRateLimit)
	return o
}

// Submit posts the optimization request
func (o *HTTPOptimizer) Submit(ctx context.Context, req *contracts.OptimizationRequest) (*SubmitResult, error) {
	if req == nil || req.Count() == 0 {
		return nil, fmt.Errorf("empty optimization request")
	}

	url := o.baseURL + "/v1/optimize"

	headers := map[string]string{}
	if o.apiKey != "" {
		headers["Authorization"] = "Bearer " + o.apiKey
	}

	resp, err := o.client.PostJSONWithHeaders(ctx, url, req, headers)
	if err != nil {
		return nil, fmt.Errorf("submit optimization: %w", err)
	}
	defer resp.Body.Close()

	// 응답 바디는 읽되 가중치는 소비하지 않는다
	io.Copy(io.Discard, resp.Body)

	result := &SubmitResult{
		RunID:       req.RunID,
		StatusCode:  resp.StatusCode,
		Accepted:    resp.StatusCode >= 200 && resp.StatusCode < 300,
		SubmittedAt: time.Now(),
	}

	if !result.Accepted {
		o.logger.WithFields(map[string]interface{}{
			"run_id": req.RunID,
			"status": resp.StatusCode,
		}).Error("Optimizer rejected request")
		return result, fmt.Errorf("optimizer returned status %d", resp.StatusCode)
	}

	o.logger.WithFields(map[string]interface{}{
		"run_id":  req.RunID,
		"symbols": req.Count(),
		"status":  resp.StatusCode,
	}).Info("Optimization request submitted")

	return result, nil
}

// statically ensure the HTTP client satisfies the interface
var _ Optimizer = (*HTTPOptimizer)(nil)

// MockOptimizer implements Optimizer for testing
// ⭐ 실제 운영에서는 HTTPOptimizer 사용
type MockOptimizer struct {
	Requests []*contracts.OptimizationRequest
	FailWith error
}

// NewMockOptimizer creates a new mock optimizer
func NewMockOptimizer() *MockOptimizer {
	return &MockOptimizer{}
}

// Submit records the request in memory
func (m *MockOptimizer) Submit(_ context.Context, req *contracts.OptimizationRequest) (*SubmitResult, error) {
	if m.FailWith != nil {
		return nil, m.FailWith
	}

	m.Requests = append(m.Requests, req)
	return &SubmitResult{
		RunID:       req.RunID,
		StatusCode:  http.StatusOK,
		Accepted:    true,
		SubmittedAt: time.Now(),
	}, nil
}

var _ Optimizer = (*MockOptimizer)(nil)

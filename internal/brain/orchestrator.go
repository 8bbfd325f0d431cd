package brain

import (
	"context"
	"fmt"
	"time"

	"github.com/wonpil/sentrev/internal/contracts"
	"github.com/wonpil/sentrev/internal/execution"
	"github.com/wonpil/sentrev/internal/portfolio"
	"github.com/wonpil/sentrev/internal/s1_universe"
	"github.com/wonpil/sentrev/internal/s2_factors"
	"github.com/wonpil/sentrev/internal/strategy"
	"github.com/wonpil/sentrev/pkg/logger"
	"github.com/wonpil/sentrev/pkg/redis"
)

// Orchestrator coordinates the 4-stage pipeline
// ⭐ SSOT: 파이프라인 조율은 여기서만
//
// 일별 장전 스테이징: S1 → S2 → S3 (점수 저장)
// 주별 리밸런스: 저장된 점수 → S4 (제약 조립 → 옵티마이저 제출)
type Orchestrator struct {
	// Stage components
	universeBuilder *s1_universe.Builder
	factorBuilder   *s2_factors.Builder
	composer        *strategy.Composer
	requestBuilder  *portfolio.Builder
	optimizer       execution.Optimizer

	// Repositories for saving intermediate results
	universeRepo contracts.UniverseRepository
	scoreRepo    contracts.ScoreRepository
	requestRepo  contracts.RequestRepository

	// Optional snapshot cache (nil when Redis is disabled)
	cache *redis.Cache

	logger *logger.Logger
}

// RunConfig holds configuration for a pipeline run
type RunConfig struct {
	Date   time.Time
	RunID  string
	GitSHA string
	DryRun bool // If true, skip optimizer submission
}

// RunResult holds the results of a pipeline run
type RunResult struct {
	RunID           string
	Date            time.Time
	GitSHA          string
	Success         bool
	Error           error
	CompletedStages []string
	Universe        *contracts.Universe
	FactorSet       *contracts.FactorSet
	ScoreSet        *contracts.ScoreSet
	Request         *contracts.OptimizationRequest
	SubmitResult    *execution.SubmitResult
	Duration        time.Duration
}

// NewOrchestrator creates a new orchestrator
func NewOrchestrator(
	universeBuilder *s1_universe.Builder,
	factorBuilder *s2_factors.Builder,
	composer *strategy.Composer,
	requestBuilder *portfolio.Builder,
	optimizer execution.Optimizer,
	universeRepo contracts.UniverseRepository,
	scoreRepo contracts.ScoreRepository,
	requestRepo contracts.RequestRepository,
	log *logger.Logger,
) *Orchestrator {
	return &Orchestrator{
		universeBuilder: universeBuilder,
		factorBuilder:   factorBuilder,
		composer:        composer,
		requestBuilder:  requestBuilder,
		optimizer:       optimizer,
		universeRepo:    universeRepo,
		scoreRepo:       scoreRepo,
		requestRepo:     requestRepo,
		logger:          log,
	}
}

// WithCache attaches a Redis snapshot cache
func (o *Orchestrator) WithCache(cache *redis.Cache) *Orchestrator {
	o.cache = cache
	return o
}

// RunStaging executes the pre-open pipeline: S1 → S2 → S3
// 매 거래일 장전에 실행. 점수를 저장해 리밸런스가 소비하게 한다.
func (o *Orchestrator) RunStaging(ctx context.Context, config RunConfig) (*RunResult, error) {
	startTime := time.Now()

	result := &RunResult{
		RunID:           config.RunID,
		Date:            config.Date,
		GitSHA:          config.GitSHA,
		CompletedStages: make([]string, 0),
	}

	o.logger.WithRunID(config.RunID).WithFields(map[string]interface{}{
		"date":    config.Date.Format("2006-01-02"),
		"git_sha": config.GitSHA,
	}).Info("Starting staging run")

	// S1: Universe
	universe, err := o.runS1(ctx, config)
	if err != nil {
		result.Error = fmt.Errorf("S1 failed: %w", err)
		return result, result.Error
	}
	result.Universe = universe
	result.CompletedStages = append(result.CompletedStages, "S1:Universe")

	// S2: Factors
	factorSet, err := o.runS2(ctx, config, universe)
	if err != nil {
		result.Error = fmt.Errorf("S2 failed: %w", err)
		return result, result.Error
	}
	result.FactorSet = factorSet
	result.CompletedStages = append(result.CompletedStages, "S2:Factors")

	// S3: Scores
	scoreSet, err := o.runS3(ctx, config, factorSet)
	if err != nil {
		result.Error = fmt.Errorf("S3 failed: %w", err)
		return result, result.Error
	}
	result.ScoreSet = scoreSet
	result.CompletedStages = append(result.CompletedStages, "S3:Scores")

	result.Success = true
	result.Duration = time.Since(startTime)

	o.logger.WithRunID(config.RunID).WithFields(map[string]interface{}{
		"duration": result.Duration.Seconds(),
		"stages":   len(result.CompletedStages),
	}).Info("Staging run completed")

	return result, nil
}

// RunRebalance executes the weekly rebalance: stored scores → S4
// 주 첫 거래일 장 시작 90분 후 실행.
func (o *Orchestrator) RunRebalance(ctx context.Context, config RunConfig) (*RunResult, error) {
	startTime := time.Now()

	result := &RunResult{
		RunID:           config.RunID,
		Date:            config.Date,
		GitSHA:          config.GitSHA,
		CompletedStages: make([]string, 0),
	}

	o.logger.WithRunID(config.RunID).WithFields(map[string]interface{}{
		"date":    config.Date.Format("2006-01-02"),
		"dry_run": config.DryRun,
	}).Info("Starting rebalance run")

	// 장전 스테이징이 저장한 최신 점수 로드 (당일 캐시 우선)
	scoreSet, err := o.loadStagedScores(ctx, config.Date)
	if err != nil {
		result.Error = fmt.Errorf("load scores: %w", err)
		return result, result.Error
	}
	if scoreSet == nil || scoreSet.Count() == 0 {
		result.Error = fmt.Errorf("no staged scores available")
		return result, result.Error
	}
	result.ScoreSet = scoreSet

	// S4: Optimization request
	request, submitResult, err := o.runS4(ctx, config, scoreSet)
	if err != nil {
		result.Error = fmt.Errorf("S4 failed: %w", err)
		return result, result.Error
	}
	result.Request = request
	result.SubmitResult = submitResult
	result.CompletedStages = append(result.CompletedStages, "S4:Optimize")

	result.Success = true
	result.Duration = time.Since(startTime)

	o.logger.WithRunID(config.RunID).WithFields(map[string]interface{}{
		"duration": result.Duration.Seconds(),
		"symbols":  request.Count(),
	}).Info("Rebalance run completed")

	return result, nil
}

// runS1 executes S1: Universe Generation
func (o *Orchestrator) runS1(ctx context.Context, config RunConfig) (*contracts.Universe, error) {
	o.logger.WithRunID(config.RunID).WithStage("S1").Info("Running S1: Universe Generation")

	universe, err := o.universeBuilder.Build(ctx, config.Date)
	if err != nil {
		return nil, fmt.Errorf("universe build: %w", err)
	}

	if err := o.universeRepo.Save(ctx, universe); err != nil {
		return nil, fmt.Errorf("save universe: %w", err)
	}

	o.logger.WithFields(map[string]interface{}{
		"total_symbols": universe.TotalCount,
		"excluded":      len(universe.Excluded),
	}).Info("S1 completed")

	return universe, nil
}

// runS2 executes S2: Factor Generation
func (o *Orchestrator) runS2(ctx context.Context, config RunConfig, universe *contracts.Universe) (*contracts.FactorSet, error) {
	o.logger.WithRunID(config.RunID).WithStage("S2").Info("Running S2: Factor Generation")

	factorSet, err := o.factorBuilder.Build(ctx, universe, config.Date)
	if err != nil {
		return nil, fmt.Errorf("factor build: %w", err)
	}

	o.logger.WithFields(map[string]interface{}{
		"rows": factorSet.Count(),
	}).Info("S2 completed")

	return factorSet, nil
}

// runS3 executes S3: Score Composition
func (o *Orchestrator) runS3(ctx context.Context, config RunConfig, factorSet *contracts.FactorSet) (*contracts.ScoreSet, error) {
	o.logger.WithRunID(config.RunID).WithStage("S3").Info("Running S3: Score Composition")

	scoreSet, err := o.composer.Compose(factorSet)
	if err != nil {
		return nil, fmt.Errorf("score compose: %w", err)
	}

	if err := o.scoreRepo.Save(ctx, scoreSet); err != nil {
		return nil, fmt.Errorf("save scores: %w", err)
	}

	if o.cache != nil {
		key := redis.ScoreSetKey(scoreSet.Date.Format("2006-01-02"))
		if err := o.cache.Set(ctx, key, scoreSet, redis.TTLDaily); err != nil {
			o.logger.WithError(err).Warn("Failed to cache score set")
		}
	}

	o.logger.WithFields(map[string]interface{}{
		"scored":   scoreSet.Count(),
		"filtered": len(scoreSet.Filtered),
	}).Info("S3 completed")

	return scoreSet, nil
}

// runS4 executes S4: Optimization Request
func (o *Orchestrator) runS4(ctx context.Context, config RunConfig, scoreSet *contracts.ScoreSet) (*contracts.OptimizationRequest, *execution.SubmitResult, error) {
	o.logger.WithRunID(config.RunID).WithStage("S4").Info("Running S4: Optimization Request")

	request, err := o.requestBuilder.BuildRequest(scoreSet, config.RunID)
	if err != nil {
		return nil, nil, fmt.Errorf("build request: %w", err)
	}

	if config.DryRun {
		o.logger.Info("Skipping optimizer submission (dry run mode)")
		return request, nil, nil
	}

	// 제출 전에 먼저 저장: 거절된 제출도 감사 이력에 남아야 한다
	if err := o.requestRepo.Save(ctx, request); err != nil {
		return nil, nil, fmt.Errorf("save request: %w", err)
	}

	submitResult, err := o.optimizer.Submit(ctx, request)
	if err != nil {
		return nil, nil, fmt.Errorf("submit request: %w", err)
	}

	o.logger.WithFields(map[string]interface{}{
		"symbols": request.Count(),
		"status":  submitResult.StatusCode,
	}).Info("S4 completed")

	return request, submitResult, nil
}

// loadStagedScores loads the scores staged for the given date,
// trying the Redis cache before falling back to the database.
func (o *Orchestrator) loadStagedScores(ctx context.Context, date time.Time) (*contracts.ScoreSet, error) {
	if o.cache != nil {
		var cached contracts.ScoreSet
		key := redis.ScoreSetKey(date.Format("2006-01-02"))
		found, err := o.cache.Get(ctx, key, &cached)
		if err == nil && found && len(cached.Scores) > 0 {
			return &cached, nil
		}
	}

	return o.scoreRepo.GetLatest(ctx)
}

// GenerateRunID generates a unique run ID
func GenerateRunID() string {
	return fmt.Sprintf("run_%s", time.Now().Format("20060102_150405"))
}

package commands

import (
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/wonpil/sentrev/internal/brain"
	"github.com/wonpil/sentrev/internal/data/repos"
	"github.com/wonpil/sentrev/internal/execution"
	"github.com/wonpil/sentrev/internal/portfolio"
	"github.com/wonpil/sentrev/internal/s1_universe"
	"github.com/wonpil/sentrev/internal/s2_factors"
	"github.com/wonpil/sentrev/internal/strategy"
	"github.com/wonpil/sentrev/internal/strategyconfig"
	"github.com/wonpil/sentrev/pkg/config"
	"github.com/wonpil/sentrev/pkg/database"
	"github.com/wonpil/sentrev/pkg/logger"
	"github.com/wonpil/sentrev/pkg/redis"
)

// appDeps holds all wired application dependencies
// ⭐ SSOT: 의존성 조립은 여기서만
type appDeps struct {
	cfg      *config.Config
	log      *logger.Logger
	db       *database.DB
	rdb      *redis.Client
	cache    *redis.Cache
	strategy *strategyconfig.Config
	snapshot *strategyconfig.DecisionSnapshot
	location *time.Location

	universeRepo *repos.UniverseRepository
	scoreRepo    *repos.ScoreRepository
	requestRepo  *repos.RequestRepository

	orchestrator *brain.Orchestrator
}

// initDeps loads config and wires up the full dependency graph
func initDeps() (*appDeps, error) {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	// 2. Initialize logger
	log := logger.New(cfg)

	// 3. Load strategy config (fail fast on invalid params)
	strategyCfg, yamlData, err := strategyconfig.Load(cfg.StrategyConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load strategy config: %w", err)
	}

	snapshot, err := strategyconfig.NewDecisionSnapshot(strategyCfg, yamlData, getGitSHA())
	if err != nil {
		return nil, fmt.Errorf("build decision snapshot: %w", err)
	}

	log.WithFields(map[string]interface{}{
		"strategy_id": strategyCfg.Meta.StrategyID,
		"config_hash": snapshot.ConfigHash[:12],
	}).Info("Strategy config loaded")

	location, err := time.LoadLocation(strategyCfg.Meta.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone: %w", err)
	}

	// 4. Connect to database
	db, err := database.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	log.Info("Connected to database")

	// 5. Connect to Redis (no-op mode when disabled)
	rdb, err := redis.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	cache := redis.NewCache(rdb, "sentrev")

	// 6. Create repositories
	priceRepo := repos.NewPriceRepository(db.Pool)
	sentimentRepo := repos.NewSentimentRepository(db.Pool)
	universeRepo := repos.NewUniverseRepository(db.Pool)
	scoreRepo := repos.NewScoreRepository(db.Pool)
	requestRepo := repos.NewRequestRepository(db.Pool)

	// 7. Create S1: Universe Builder
	universeBuilder := s1_universe.NewBuilder(db.Pool, s1_universe.Config{
		MinPriceHistoryDays:     strategyCfg.Universe.Filters.MinPriceHistoryDays,
		MinSentimentHistoryDays: strategyCfg.Universe.Filters.MinSentimentHistoryDays,
		PriceMinUSD:             strategyCfg.Universe.Filters.PriceMinUSD,
	})

	// 8. Create S2: Factor Builder
	factorBuilder := s2_factors.NewBuilder(priceRepo, sentimentRepo, strategyCfg, log)

	// 9. Create S3: Score Composer
	composer := strategy.NewComposer(strategyCfg, log)

	// 10. Create S4: Request Builder + Optimizer client
	requestBuilder := portfolio.NewBuilder(strategyCfg, log)

	optimizer := execution.NewHTTPOptimizer(cfg, log)
	if rdb.Enabled() {
		optimizer.WithRateLimiter(redis.NewRateLimiter(rdb, "sentrev"))
	}

	// 11. Create Orchestrator
	orchestrator := brain.NewOrchestrator(
		universeBuilder,
		factorBuilder,
		composer,
		requestBuilder,
		optimizer,
		universeRepo,
		scoreRepo,
		requestRepo,
		log,
	).WithCache(cache)

	return &appDeps{
		cfg:          cfg,
		log:          log,
		db:           db,
		rdb:          rdb,
		cache:        cache,
		strategy:     strategyCfg,
		snapshot:     snapshot,
		location:     location,
		universeRepo: universeRepo,
		scoreRepo:    scoreRepo,
		requestRepo:  requestRepo,
		orchestrator: orchestrator,
	}, nil
}

// close releases database and Redis connections
func (d *appDeps) close() {
	if d.db != nil {
		d.db.Close()
	}
	if d.rdb != nil {
		d.rdb.Close()
	}
}

// getGitSHA returns the short git commit for decision snapshots
func getGitSHA() string {
	cmd := exec.Command("git", "rev-parse", "--short", "HEAD")
	output, err := cmd.Output()
	if err != nil {
		return "unknown"
	}
	return strings.TrimSpace(string(output))
}

package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonpil/sentrev/internal/api"
	"github.com/wonpil/sentrev/internal/api/handlers"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "API 서버 시작",
	Long: `REST API 서버를 시작합니다.

이 명령어는:
- HTTP API 서버 시작
- 점수/유니버스/제출 이력 조회 엔드포인트 제공

Endpoints:
  GET  /health                              - Health check
  GET  /api/v1/strategy/scores/latest       - 최신 점수 조회
  GET  /api/v1/strategy/scores/{date}       - 날짜별 점수 조회
  GET  /api/v1/strategy/universe/latest     - 최신 유니버스 조회
  GET  /api/v1/strategy/requests/latest     - 최신 최적화 요청 조회
  GET  /api/v1/strategy/config              - 전략 설정 스냅샷
  GET  /api/v1/system/health                - DB 상태 조회

Example:
  go run ./cmd/sentrev api
  go run ./cmd/sentrev api --port 8080`,
	RunE: runAPIServer,
}

var (
	apiPort string
)

func init() {
	rootCmd.AddCommand(apiCmd)

	// Flags
	apiCmd.Flags().StringVar(&apiPort, "port", "8080", "API 서버 포트")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	fmt.Println("=== sentrev API Server ===")

	deps, err := initDeps()
	if err != nil {
		return fmt.Errorf("init dependencies: %w", err)
	}
	defer deps.close()

	// Override port if flag is set
	if apiPort != "" {
		deps.cfg.Port = apiPort
	}

	log := deps.log

	// Create handlers and router
	strategyHandler := handlers.NewStrategyHandler(
		deps.universeRepo,
		deps.scoreRepo,
		deps.requestRepo,
		deps.snapshot,
		log,
	)
	systemHandler := handlers.NewSystemHandler(deps.db, nil, log)

	router := api.NewRouter(strategyHandler, systemHandler, log)

	// Create server
	server := api.New(deps.cfg, log, router)

	// Start server with graceful shutdown
	go func() {
		if err := server.Start(); err != nil {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	log.Info("API server started successfully")
	fmt.Printf("\n✅ Server running on http://localhost:%s\n", deps.cfg.Port)
	fmt.Println("\nPress Ctrl+C to stop")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Info("Server stopped")
	return nil
}

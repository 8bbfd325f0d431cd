package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonpil/sentrev/internal/brain"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "파이프라인 수동 실행",
	Long: `파이프라인을 스케줄과 무관하게 즉시 실행합니다.

Subcommands:
  staging   - 장전 스테이징 (S1→S2→S3, 점수 저장)
  rebalance - 리밸런스 (저장된 점수 → S4 최적화 요청 제출)

Example:
  go run ./cmd/sentrev run staging
  go run ./cmd/sentrev run staging --date 2026-03-02
  go run ./cmd/sentrev run rebalance --dry-run`,
}

var (
	runStagingCmd = &cobra.Command{
		Use:   "staging",
		Short: "장전 스테이징 실행",
		RunE:  runStaging,
	}

	runRebalanceCmd = &cobra.Command{
		Use:   "rebalance",
		Short: "리밸런스 실행",
		RunE:  runRebalance,
	}

	// Flags
	runDate   string
	runDryRun bool
)

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.AddCommand(runStagingCmd)
	runCmd.AddCommand(runRebalanceCmd)

	runCmd.PersistentFlags().StringVar(&runDate, "date", "", "실행 날짜 (YYYY-MM-DD, 기본: 오늘)")
	runRebalanceCmd.Flags().BoolVar(&runDryRun, "dry-run", false, "요청 생성만, 제출 생략")
}

func runStaging(cmd *cobra.Command, args []string) error {
	fmt.Println("=== sentrev Pre-Open Staging ===")

	deps, date, runConfig, err := prepareRun()
	if err != nil {
		return err
	}
	defer deps.close()

	fmt.Printf("\n📅 Run Date: %s\n", date.Format("2006-01-02"))
	fmt.Printf("🚀 Starting staging run: %s\n\n", runConfig.RunID)

	result, err := deps.orchestrator.RunStaging(cmd.Context(), runConfig)
	if err != nil {
		return fmt.Errorf("staging run failed: %w", err)
	}

	printRunResult(result)
	return nil
}

func runRebalance(cmd *cobra.Command, args []string) error {
	fmt.Println("=== sentrev Weekly Rebalance ===")

	deps, date, runConfig, err := prepareRun()
	if err != nil {
		return err
	}
	defer deps.close()

	runConfig.DryRun = runDryRun

	fmt.Printf("\n📅 Run Date: %s\n", date.Format("2006-01-02"))
	fmt.Printf("🔧 Dry Run: %v\n", runDryRun)
	fmt.Printf("🚀 Starting rebalance run: %s\n\n", runConfig.RunID)

	result, err := deps.orchestrator.RunRebalance(cmd.Context(), runConfig)
	if err != nil {
		return fmt.Errorf("rebalance run failed: %w", err)
	}

	printRunResult(result)
	return nil
}

// prepareRun resolves the run date and wires dependencies
func prepareRun() (*appDeps, time.Time, brain.RunConfig, error) {
	var date time.Time
	if runDate != "" {
		parsed, err := time.Parse("2006-01-02", runDate)
		if err != nil {
			return nil, time.Time{}, brain.RunConfig{}, fmt.Errorf("invalid date format: %w", err)
		}
		date = parsed
	} else {
		date = time.Now()
	}

	deps, err := initDeps()
	if err != nil {
		return nil, time.Time{}, brain.RunConfig{}, fmt.Errorf("init dependencies: %w", err)
	}

	runConfig := brain.RunConfig{
		Date:   date,
		RunID:  brain.GenerateRunID(),
		GitSHA: getGitSHA(),
	}

	return deps, date, runConfig, nil
}

func printRunResult(result *brain.RunResult) {
	fmt.Println("\n✅ Run Completed")
	fmt.Println()

	// Summary
	fmt.Printf("Run ID: %s\n", result.RunID)
	fmt.Printf("Date: %s\n", result.Date.Format("2006-01-02"))
	fmt.Printf("Duration: %.2fs\n", result.Duration.Seconds())
	fmt.Printf("Success: %v\n", result.Success)
	fmt.Println()

	// Stages
	fmt.Println("Completed Stages:")
	for _, stage := range result.CompletedStages {
		fmt.Printf("  ✅ %s\n", stage)
	}
	fmt.Println()

	// Results
	if result.Universe != nil {
		fmt.Printf("Universe: %d symbols (%d excluded)\n", result.Universe.Count(), len(result.Universe.Excluded))
	}
	if result.FactorSet != nil {
		fmt.Printf("Factors: %d rows\n", result.FactorSet.Count())
	}
	if result.ScoreSet != nil {
		fmt.Printf("Scores: %d scored, %d filtered\n", result.ScoreSet.Count(), len(result.ScoreSet.Filtered))
	}
	if result.Request != nil {
		fmt.Printf("Request: %d alphas (run %s)\n", result.Request.Count(), result.Request.RunID)
	}
	if result.SubmitResult != nil {
		fmt.Printf("Submitted: HTTP %d at %s\n",
			result.SubmitResult.StatusCode,
			result.SubmitResult.SubmittedAt.Format(time.RFC3339))
	}
}

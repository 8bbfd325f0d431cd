package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/wonpil/sentrev/internal/scheduler"
	"github.com/wonpil/sentrev/internal/scheduler/jobs"
)

// schedulerCmd represents the scheduler command
var schedulerCmd = &cobra.Command{
	Use:   "scheduler",
	Short: "스케줄러 관리",
	Long: `스케줄러를 시작하거나 작업을 관리합니다.

이 명령어는:
- 스케줄러 데몬 시작
- 등록된 작업 조회
- 작업 실행 이력 조회

Subcommands:
  start   - 스케줄러 시작
  run     - 특정 작업 즉시 실행

Example:
  go run ./cmd/sentrev scheduler start
  go run ./cmd/sentrev scheduler run preopen_staging`,
}

var (
	schedulerStartCmd = &cobra.Command{
		Use:   "start",
		Short: "스케줄러 시작",
		Long: `스케줄러를 시작하고 등록된 모든 작업을 스케줄합니다.

등록되는 작업 (미 동부 시간 기준):
- preopen_staging: 평일 08:45 (S1→S2→S3, 점수 저장)
- weekly_rebalance: 평일 11:00 (주 첫 거래일만 실제 실행)

스케줄러는 Ctrl+C로 종료할 수 있습니다.`,
		RunE: runScheduler,
	}

	schedulerRunCmd = &cobra.Command{
		Use:   "run [job_name]",
		Short: "특정 작업 즉시 실행",
		Args:  cobra.ExactArgs(1),
		RunE:  runSchedulerJob,
	}

	schedulerDryRun bool
)

func init() {
	rootCmd.AddCommand(schedulerCmd)
	schedulerCmd.AddCommand(schedulerStartCmd)
	schedulerCmd.AddCommand(schedulerRunCmd)

	schedulerCmd.PersistentFlags().BoolVar(&schedulerDryRun, "dry-run", false, "리밸런스 제출 생략")
}

func runScheduler(cmd *cobra.Command, args []string) error {
	fmt.Println("=== sentrev Scheduler ===")

	sched, deps, err := initScheduler()
	if err != nil {
		return fmt.Errorf("init scheduler: %w", err)
	}
	defer deps.close()

	// Start scheduler
	sched.Start()

	fmt.Println("\n✅ Scheduler started successfully")
	fmt.Println("\nRegistered jobs:")
	for _, jobName := range sched.GetAllJobs() {
		fmt.Printf("  - %s\n", jobName)
	}
	fmt.Println("\nPress Ctrl+C to stop")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	sched.Stop()
	return nil
}

func runSchedulerJob(cmd *cobra.Command, args []string) error {
	jobName := args[0]

	sched, deps, err := initScheduler()
	if err != nil {
		return fmt.Errorf("init scheduler: %w", err)
	}
	defer deps.close()

	fmt.Printf("🚀 Running job: %s\n", jobName)

	if err := sched.RunJob(jobName); err != nil {
		return fmt.Errorf("run job: %w", err)
	}

	// RunJob은 비동기라 완료를 기다린다
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	return nil
}

// initScheduler wires the scheduler with both pipeline jobs
func initScheduler() (*scheduler.Scheduler, *appDeps, error) {
	deps, err := initDeps()
	if err != nil {
		return nil, nil, err
	}

	calendar := jobs.NewTradingCalendar(deps.location)

	sched := scheduler.New(deps.log, deps.location)

	stagingJob := jobs.NewStagingJob(deps.orchestrator, calendar, deps.log)
	if err := sched.AddJob(stagingJob); err != nil {
		return nil, nil, fmt.Errorf("add staging job: %w", err)
	}

	rebalanceJob := jobs.NewRebalanceJob(deps.orchestrator, calendar, deps.log, schedulerDryRun)
	if err := sched.AddJob(rebalanceJob); err != nil {
		return nil, nil, fmt.Errorf("add rebalance job: %w", err)
	}

	return sched, deps, nil
}

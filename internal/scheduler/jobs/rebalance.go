package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/wonpil/sentrev/internal/brain"
	"github.com/wonpil/sentrev/pkg/logger"
)

// RebalanceJob submits the weekly optimization request
// ⭐ SSOT: 주간 리밸런스 스케줄은 이 Job에서만
//
// 매주 첫 거래일 11:00 ET(장 시작 90분 후)에 실행한다.
// 월요일 휴장이면 화요일 11:00에 실행된다.
type RebalanceJob struct {
	orchestrator *brain.Orchestrator
	calendar     *TradingCalendar
	logger       *logger.Logger
	dryRun       bool
}

// NewRebalanceJob creates a new rebalance job
func NewRebalanceJob(o *brain.Orchestrator, cal *TradingCalendar, log *logger.Logger, dryRun bool) *RebalanceJob {
	return &RebalanceJob{
		orchestrator: o,
		calendar:     cal,
		logger:       log,
		dryRun:       dryRun,
	}
}

// Name returns the job name
func (j *RebalanceJob) Name() string {
	return "weekly_rebalance"
}

// Schedule returns the cron schedule (weekdays 11:00 ET, with seconds)
// 주 첫 거래일 여부는 Run에서 판단한다.
func (j *RebalanceJob) Schedule() string {
	return "0 0 11 * * MON-FRI"
}

// Run executes the rebalance if today is the week's first trading day
func (j *RebalanceJob) Run(ctx context.Context) error {
	now := time.Now()

	if !j.calendar.IsFirstTradingDayOfWeek(now) {
		j.logger.WithField("date", now.Format("2006-01-02")).
			Info("Not the first trading day of the week, skipping rebalance")
		return nil
	}

	runConfig := brain.RunConfig{
		Date:   now,
		RunID:  brain.GenerateRunID(),
		DryRun: j.dryRun,
	}

	result, err := j.orchestrator.RunRebalance(ctx, runConfig)
	if err != nil {
		return fmt.Errorf("rebalance run: %w", err)
	}

	fields := map[string]interface{}{
		"run_id":  result.RunID,
		"symbols": result.Request.Count(),
		"dry_run": j.dryRun,
	}
	if result.SubmitResult != nil {
		fields["status"] = result.SubmitResult.StatusCode
	}
	j.logger.WithFields(fields).Info("Scheduled rebalance completed")

	return nil
}

package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/wonpil/sentrev/internal/brain"
	"github.com/wonpil/sentrev/pkg/logger"
)

// StagingJob runs the pre-open pipeline every trading day
// ⭐ SSOT: 장전 스테이징 스케줄은 이 Job에서만
//
// 08:45 ET에 S1 → S2 → S3를 실행해 점수를 저장한다.
// 주 첫 거래일의 리밸런스는 이 점수를 소비한다.
type StagingJob struct {
	orchestrator *brain.Orchestrator
	calendar     *TradingCalendar
	logger       *logger.Logger
}

// NewStagingJob creates a new staging job
func NewStagingJob(o *brain.Orchestrator, cal *TradingCalendar, log *logger.Logger) *StagingJob {
	return &StagingJob{
		orchestrator: o,
		calendar:     cal,
		logger:       log,
	}
}

// Name returns the job name
func (j *StagingJob) Name() string {
	return "preopen_staging"
}

// Schedule returns the cron schedule (weekdays 08:45 ET, with seconds)
func (j *StagingJob) Schedule() string {
	return "0 45 8 * * MON-FRI"
}

// Run executes the pre-open staging pipeline
func (j *StagingJob) Run(ctx context.Context) error {
	now := time.Now()

	if !j.calendar.IsTradingDay(now) {
		j.logger.WithField("date", now.Format("2006-01-02")).
			Info("Market holiday, skipping staging")
		return nil
	}

	runConfig := brain.RunConfig{
		Date:  now,
		RunID: brain.GenerateRunID(),
	}

	result, err := j.orchestrator.RunStaging(ctx, runConfig)
	if err != nil {
		return fmt.Errorf("staging run: %w", err)
	}

	j.logger.WithFields(map[string]interface{}{
		"run_id":   result.RunID,
		"scored":   result.ScoreSet.Count(),
		"filtered": len(result.ScoreSet.Filtered),
	}).Info("Scheduled staging completed")

	return nil
}

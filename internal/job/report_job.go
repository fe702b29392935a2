package job

import (
	"Pulse/internal/pkg/consts"
	"Pulse/internal/pkg/logger"
	"Pulse/internal/pkg/redis"
	"Pulse/internal/service"
	"context"
	log "log/slog"
	"time"

	"github.com/google/uuid"
)

// dispatchLockTTL 单次报告分发的锁时长，覆盖最慢一轮投递即可
const dispatchLockTTL = 10 * time.Minute

// ReportJob 一种报告周期对应一个实例，共用同一套分发逻辑
type ReportJob struct {
	reportSvc service.ReportService
	window    time.Duration
	header    string
	lockKey   string
}

func NewWeeklyReportJob(reportSvc service.ReportService) *ReportJob {
	return &ReportJob{
		reportSvc: reportSvc,
		window:    service.WindowWeekly,
		header:    "Weekly Metrics Report",
		lockKey:   consts.ReportDispatchLock + "weekly",
	}
}

func NewMonthlyReportJob(reportSvc service.ReportService) *ReportJob {
	return &ReportJob{
		reportSvc: reportSvc,
		window:    service.WindowMonthly,
		header:    "Monthly Metrics Report",
		lockKey:   consts.ReportDispatchLock + "monthly",
	}
}

func NewYearlyReportJob(reportSvc service.ReportService) *ReportJob {
	return &ReportJob{
		reportSvc: reportSvc,
		window:    service.WindowYearly,
		header:    "Yearly Metrics Report",
		lockKey:   consts.ReportDispatchLock + "yearly",
	}
}

func (s *ReportJob) Run() {
	traceID := "job-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	// 多实例部署时只允许一个实例发报告
	lockVal := uuid.NewString()
	lock, err := redis.TryLock(ctx, s.lockKey, lockVal, dispatchLockTTL, 1)
	if err != nil {
		log.ErrorContext(ctx, "acquire dispatch lock error", "key", s.lockKey, "err", err)
		return
	}
	if !lock {
		log.InfoContext(ctx, "dispatch lock held elsewhere, skipping", "key", s.lockKey)
		return
	}
	defer redis.UnLock(ctx, s.lockKey, lockVal)

	log.InfoContext(ctx, "Running scheduled report", "header", s.header)
	if err := s.reportSvc.DispatchReports(ctx, s.window, s.header); err != nil {
		log.ErrorContext(ctx, "scheduled report dispatch error", "header", s.header, "err", err)
		return
	}
	log.InfoContext(ctx, "Scheduled report dispatched", "header", s.header)
}

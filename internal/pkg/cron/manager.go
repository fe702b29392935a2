package cron

import (
	"Pulse/internal/api/config"
	"Pulse/internal/job"
	"fmt"
	log "log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

type Manager struct {
	engine     *cron.Cron
	cfg        config.ReportConfig
	weeklyJob  *job.ReportJob
	monthlyJob *job.ReportJob
	yearlyJob  *job.ReportJob
}

func NewCronManager(cfg config.ReportConfig, weeklyJob, monthlyJob, yearlyJob *job.ReportJob) (*Manager, error) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid report timezone %q: %w", cfg.Timezone, err)
	}

	return &Manager{
		engine:     cron.New(cron.WithSeconds(), cron.WithLocation(loc)),
		cfg:        cfg,
		weeklyJob:  weeklyJob,
		monthlyJob: monthlyJob,
		yearlyJob:  yearlyJob,
	}, nil
}

// RegisterJobs 注册定时任务
func (s *Manager) RegisterJobs() error {
	if _, err := s.engine.AddJob(s.cfg.WeeklySpec, s.weeklyJob); err != nil {
		return err
	}
	if _, err := s.engine.AddJob(s.cfg.MonthlySpec, s.monthlyJob); err != nil {
		return err
	}
	if _, err := s.engine.AddJob(s.cfg.YearlySpec, s.yearlyJob); err != nil {
		return err
	}
	return nil
}

func (s *Manager) Start() {
	log.Info("Cron 定时任务引擎启动")
	s.engine.Start()
}

func (s *Manager) Stop() {
	log.Info("Cron 定时任务引擎停止")
	s.engine.Stop()
}

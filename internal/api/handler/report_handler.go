package handler

import (
	"Pulse/internal/api/dto"
	"Pulse/internal/pkg/response"
	"Pulse/internal/pkg/util"
	"Pulse/internal/service"
	log "log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

var windowByName = map[string]time.Duration{
	"daily":   service.WindowDaily,
	"weekly":  service.WindowWeekly,
	"monthly": service.WindowMonthly,
	"yearly":  service.WindowYearly,
	"all":     service.WindowAll,
}

type ReportHandler struct {
	reportSvc      service.ReportService
	leaderboardSvc service.LeaderboardService
}

func NewReportHandler(reportSvc service.ReportService, leaderboardSvc service.LeaderboardService) *ReportHandler {
	return &ReportHandler{
		reportSvc:      reportSvc,
		leaderboardSvc: leaderboardSvc,
	}
}

// TriggerWeekly 手动触发一次周报，便于联调
func (s *ReportHandler) TriggerWeekly(c *gin.Context) {
	s.trigger(c, service.WindowWeekly, "Weekly Metrics Report", "Weekly report triggered")
}

func (s *ReportHandler) TriggerMonthly(c *gin.Context) {
	s.trigger(c, service.WindowMonthly, "Monthly Metrics Report", "Monthly report triggered")
}

func (s *ReportHandler) TriggerYearly(c *gin.Context) {
	s.trigger(c, service.WindowYearly, "Yearly Metrics Report", "Yearly report triggered")
}

func (s *ReportHandler) trigger(c *gin.Context, window time.Duration, header, reply string) {
	ctx := c.Request.Context()
	if err := s.reportSvc.DispatchReports(ctx, window, header); err != nil {
		log.ErrorContext(ctx, "Manual report dispatch failed", "header", header, "err", err)
		response.Error(c, err)
		return
	}
	c.String(http.StatusOK, reply)
}

// Leaderboard JSON 形式的排行榜查询
func (s *ReportHandler) Leaderboard(c *gin.Context) {
	var query dto.LeaderboardQueryDTO
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	if err := util.ValidateDTO(&query); err != nil {
		response.Fail(c, response.BadRequest, err.Error())
		return
	}

	window := service.WindowAll
	if query.Window != "" {
		window = windowByName[query.Window]
	}

	users, err := s.leaderboardSvc.TopUsers(c.Request.Context(), query.TeamID, window, query.Limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, users)
}

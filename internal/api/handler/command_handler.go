package handler

import (
	"Pulse/internal/api/dto"
	"Pulse/internal/pkg/slack"
	"Pulse/internal/pkg/util"
	"Pulse/internal/service"
	"errors"
	"fmt"
	log "log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

type CommandHandler struct {
	commandSvc service.CommandService
	reportSvc  service.ReportService
	sender     service.MessageSender
}

func NewCommandHandler(commandSvc service.CommandService, reportSvc service.ReportService, sender service.MessageSender) *CommandHandler {
	return &CommandHandler{
		commandSvc: commandSvc,
		reportSvc:  reportSvc,
		sender:     sender,
	}
}

// Metrics /metrics 斜杠命令入口
func (s *CommandHandler) Metrics(c *gin.Context) {
	ctx := c.Request.Context()

	var cmd dto.SlashCommandDTO
	if err := c.ShouldBind(&cmd); err != nil {
		c.Status(http.StatusOK)
		return
	}
	if err := util.ValidateDTO(&cmd); err != nil {
		c.Status(http.StatusOK)
		return
	}

	blocks, text, err := s.commandSvc.BuildMetricsReply(ctx, cmd.TeamID, cmd.Text)

	var usageErr *service.UsageError
	if errors.As(err, &usageErr) {
		// 参数非法：把用法提示回贴到发起命令的频道即可
		hint := usageErr.Hint
		if sendErr := s.sender.PostMessage(ctx, cmd.ChannelID,
			[]slack.Block{slack.SectionBlock(hint)}, hint); sendErr != nil {
			log.ErrorContext(ctx, "Post usage hint failed", "err", sendErr)
		}
		log.WarnContext(ctx, "Invalid metrics command", "team", cmd.TeamID, "text", cmd.Text)
		c.Status(http.StatusOK)
		return
	}
	if err != nil {
		log.ErrorContext(ctx, "Build metrics reply failed", "team", cmd.TeamID, "err", err)
		c.String(http.StatusInternalServerError, fmt.Sprintf("Error generating metrics: %v", err))
		return
	}

	if err := s.sender.PostMessage(ctx, cmd.ChannelID, blocks, text); err != nil {
		log.ErrorContext(ctx, "Post metrics report failed", "team", cmd.TeamID, "err", err)
		c.String(http.StatusInternalServerError, fmt.Sprintf("Error posting metrics: %v", err))
		return
	}

	log.InfoContext(ctx, "Posted metrics report", "team", cmd.TeamID, "channel", cmd.ChannelID)
	c.Status(http.StatusOK)
}

// SetReportChannel /set-report-channel 斜杠命令入口
func (s *CommandHandler) SetReportChannel(c *gin.Context) {
	ctx := c.Request.Context()

	var cmd dto.SlashCommandDTO
	if err := c.ShouldBind(&cmd); err != nil {
		c.Status(http.StatusOK)
		return
	}
	if err := util.ValidateDTO(&cmd); err != nil {
		c.Status(http.StatusOK)
		return
	}

	if err := s.reportSvc.SetReportChannel(ctx, cmd.TeamID, cmd.ChannelID, cmd.ChannelName); err != nil {
		log.ErrorContext(ctx, "Set report channel failed", "team", cmd.TeamID, "err", err)
		c.String(http.StatusInternalServerError, fmt.Sprintf("Error setting report channel: %v", err))
		return
	}
	c.Status(http.StatusOK)
}

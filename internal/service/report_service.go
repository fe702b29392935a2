package service

import (
	"Pulse/internal/pkg/slack"
	"Pulse/internal/repository"
	"context"
	"fmt"
	log "log/slog"
	"time"
)

// MessageSender 出站消息投递的协作方
type MessageSender interface {
	PostMessage(ctx context.Context, channelID string, blocks []slack.Block, text string) error
}

type ReportService interface {
	DispatchReports(ctx context.Context, window time.Duration, header string) error
	SetReportChannel(ctx context.Context, teamID, channelID, channelName string) error
}

type reportServiceImpl struct {
	metricRepo        repository.MetricRepo
	reportChannelRepo repository.ReportChannelRepo
	leaderboardSvc    LeaderboardService
	sender            MessageSender
	defaultChannel    string
}

func NewReportService(
	metricRepo repository.MetricRepo,
	reportChannelRepo repository.ReportChannelRepo,
	leaderboardSvc LeaderboardService,
	sender MessageSender,
	defaultChannel string,
) ReportService {
	return &reportServiceImpl{
		metricRepo:        metricRepo,
		reportChannelRepo: reportChannelRepo,
		leaderboardSvc:    leaderboardSvc,
		sender:            sender,
		defaultChannel:    defaultChannel,
	}
}

// DispatchReports 对所有有活跃记录的团队各生成一份全量排行并投递
// 单个团队投递失败只记日志，不中断其余团队
func (s *reportServiceImpl) DispatchReports(ctx context.Context, window time.Duration, header string) error {
	teams, err := s.metricRepo.DistinctTeams(ctx)
	if err != nil {
		return fmt.Errorf("list teams failed: %w", err)
	}

	for _, teamID := range teams {
		channelID, err := s.reportChannelRepo.GetReportChannel(ctx, teamID)
		if err != nil {
			log.ErrorContext(ctx, "Resolve report channel failed", "team", teamID, "err", err)
			continue
		}
		if channelID == "" {
			channelID = s.defaultChannel
		}

		users, err := s.leaderboardSvc.TopUsers(ctx, teamID, window, 0)
		if err != nil {
			log.ErrorContext(ctx, "Aggregate leaderboard failed", "team", teamID, "err", err)
			continue
		}

		blocks, text := slack.RenderLeaderboard(users, header, 0)

		if err := s.sender.PostMessage(ctx, channelID, blocks, text); err != nil {
			log.ErrorContext(ctx, "Post report failed", "team", teamID, "channel", channelID, "err", err)
			continue
		}
		log.InfoContext(ctx, "Posted report", "team", teamID, "channel", channelID, "header", header)
	}
	return nil
}

// SetReportChannel 记录团队的报告频道并回贴确认消息
func (s *reportServiceImpl) SetReportChannel(ctx context.Context, teamID, channelID, channelName string) error {
	if err := s.reportChannelRepo.SetReportChannel(ctx, teamID, channelID); err != nil {
		return err
	}

	confirmation := fmt.Sprintf("Weekly reports will now be posted to #%s.", channelName)
	err := s.sender.PostMessage(ctx, channelID,
		[]slack.Block{slack.SectionBlock(confirmation)}, confirmation)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSendFailure, err)
	}

	log.InfoContext(ctx, "Set report channel", "team", teamID, "channel", channelID)
	return nil
}

package service

import (
	"Pulse/internal/model"
	"Pulse/internal/repository"
	"context"
	"errors"
	log "log/slog"
	"time"
)

type IngestService interface {
	RecordMessage(ctx context.Context, teamID, userID, channelID string, ts float64, threadTS *float64) error
	RecordReaction(ctx context.Context, teamID, userID, channelID string) error
}

type ingestServiceImpl struct {
	metricRepo repository.MetricRepo
}

func NewIngestService(metricRepo repository.MetricRepo) IngestService {
	return &ingestServiceImpl{metricRepo: metricRepo}
}

// RecordMessage 消息事件：首次出现的三元组插入初始计数，否则原子自增
// 线程回复额外写入与父消息的时间差，时钟乱序产生的负值按原样保留
func (s *ingestServiceImpl) RecordMessage(ctx context.Context, teamID, userID, channelID string, ts float64, threadTS *float64) error {
	err := s.upsertCounter(ctx, teamID, userID, channelID, 1, 0, s.metricRepo.IncrementMessageCount)
	if err != nil {
		return err
	}

	if threadTS != nil {
		responseTime := ts - *threadTS
		if err := s.metricRepo.SetResponseTime(ctx, teamID, userID, channelID, responseTime); err != nil {
			return err
		}
	}

	log.InfoContext(ctx, "Recorded message", "team", teamID, "user", userID, "channel", channelID)
	return nil
}

// RecordReaction 表情事件：新记录从 (0, 1) 起步
func (s *ingestServiceImpl) RecordReaction(ctx context.Context, teamID, userID, channelID string) error {
	err := s.upsertCounter(ctx, teamID, userID, channelID, 0, 1, s.metricRepo.IncrementReactionCount)
	if err != nil {
		return err
	}

	log.InfoContext(ctx, "Recorded reaction", "team", teamID, "user", userID, "channel", channelID)
	return nil
}

// upsertCounter 先查后插，插入撞唯一键说明并发写同一三元组，回退为自增
func (s *ingestServiceImpl) upsertCounter(
	ctx context.Context,
	teamID, userID, channelID string,
	initialMessages, initialReactions int64,
	increment func(ctx context.Context, recordID uint64) error,
) error {
	metric, err := s.metricRepo.FindRecord(ctx, teamID, userID, channelID)
	if err != nil {
		return err
	}

	if metric != nil {
		return increment(ctx, metric.ID)
	}

	err = s.metricRepo.InsertRecord(ctx, &model.Metric{
		TeamID:        teamID,
		UserID:        userID,
		ChannelID:     channelID,
		MessageCount:  initialMessages,
		ReactionCount: initialReactions,
		RecordedAt:    time.Now(),
	})
	if err == nil {
		return nil
	}
	if !errors.Is(err, repository.ErrDuplicateMetric) {
		return err
	}

	metric, err = s.metricRepo.FindRecord(ctx, teamID, userID, channelID)
	if err != nil {
		return err
	}
	if metric == nil {
		return UnExpectedError
	}
	return increment(ctx, metric.ID)
}

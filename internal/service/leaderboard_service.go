package service

import (
	"Pulse/internal/api/dto"
	"Pulse/internal/repository"
	"context"
	"fmt"
	"time"

	"github.com/jinzhu/copier"
)

// 排行榜支持的时间窗，零值表示不限时间
const (
	WindowDaily   = 24 * time.Hour
	WindowWeekly  = 7 * 24 * time.Hour
	WindowMonthly = 30 * 24 * time.Hour
	WindowYearly  = 365 * 24 * time.Hour
	WindowAll     = time.Duration(0)
)

type LeaderboardService interface {
	TopUsers(ctx context.Context, teamID string, window time.Duration, limit int) ([]*dto.UserActivityDTO, error)
}

type leaderboardServiceImpl struct {
	metricRepo repository.MetricRepo
	// botUserID 机器人自身身份，聚合时始终排除
	botUserID string
}

func NewLeaderboardService(metricRepo repository.MetricRepo, botUserID string) LeaderboardService {
	return &leaderboardServiceImpl{
		metricRepo: metricRepo,
		botUserID:  botUserID,
	}
}

// TopUsers 按消息数降序、表情数降序返回前 limit 名用户
// limit <= 0 返回全量，空结果是合法输出而非错误
func (s *leaderboardServiceImpl) TopUsers(ctx context.Context, teamID string, window time.Duration, limit int) ([]*dto.UserActivityDTO, error) {
	rows, err := s.metricRepo.AggregateByUser(ctx, teamID, window, s.botUserID, limit)
	if err != nil {
		return nil, err
	}

	users := make([]*dto.UserActivityDTO, 0, len(rows))
	for _, row := range rows {
		var user dto.UserActivityDTO
		if err := copier.Copy(&user, row); err != nil {
			return nil, err
		}

		user.AvgResponseTime = "N/A"
		if row.AvgResponseTime != nil {
			user.AvgResponseTime = fmt.Sprintf("%.2fs", *row.AvgResponseTime)
		}
		users = append(users, &user)
	}
	return users, nil
}

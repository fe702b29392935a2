package repository

import (
	"Pulse/internal/model"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

// ErrDuplicateMetric 同一三元组已存在记录时由 InsertRecord 返回
var ErrDuplicateMetric = errors.New("metric record already exists for this triple")

type MetricRepo interface {
	FindRecord(ctx context.Context, teamID, userID, channelID string) (*model.Metric, error)
	InsertRecord(ctx context.Context, metric *model.Metric) error
	IncrementMessageCount(ctx context.Context, recordID uint64) error
	IncrementReactionCount(ctx context.Context, recordID uint64) error
	SetResponseTime(ctx context.Context, teamID, userID, channelID string, seconds float64) error
	AggregateByUser(ctx context.Context, teamID string, window time.Duration, excludedUserID string, limit int) ([]*model.UserAggregate, error)
	DistinctTeams(ctx context.Context) ([]string, error)
}

type metricRepoImpl struct {
	db *gorm.DB
}

func NewMetricRepository(db *gorm.DB) MetricRepo {
	return &metricRepoImpl{db: db}
}

func (s *metricRepoImpl) FindRecord(ctx context.Context, teamID, userID, channelID string) (*model.Metric, error) {
	var metric model.Metric
	err := s.db.WithContext(ctx).
		Where("team_id = ? AND user_id = ? AND channel_id = ?", teamID, userID, channelID).
		First(&metric).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &metric, nil
}

func (s *metricRepoImpl) InsertRecord(ctx context.Context, metric *model.Metric) error {
	err := s.db.WithContext(ctx).Create(metric).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateMetric
	}
	return err
}

// IncrementMessageCount 数据库侧原子自增，避免并发丢更新
func (s *metricRepoImpl) IncrementMessageCount(ctx context.Context, recordID uint64) error {
	return s.db.WithContext(ctx).Model(&model.Metric{}).
		Where("id = ?", recordID).
		UpdateColumns(map[string]interface{}{
			"message_count": gorm.Expr("message_count + 1"),
			"recorded_at":   time.Now(),
		}).Error
}

func (s *metricRepoImpl) IncrementReactionCount(ctx context.Context, recordID uint64) error {
	return s.db.WithContext(ctx).Model(&model.Metric{}).
		Where("id = ?", recordID).
		UpdateColumns(map[string]interface{}{
			"reaction_count": gorm.Expr("reaction_count + 1"),
			"recorded_at":    time.Now(),
		}).Error
}

// SetResponseTime 只保留最近一次线程回复耗时，查询时再做平均
func (s *metricRepoImpl) SetResponseTime(ctx context.Context, teamID, userID, channelID string, seconds float64) error {
	return s.db.WithContext(ctx).Model(&model.Metric{}).
		Where("team_id = ? AND user_id = ? AND channel_id = ?", teamID, userID, channelID).
		UpdateColumn("response_time", seconds).Error
}

// AggregateByUser 按用户聚合排行
// window <= 0 表示不限时间，limit <= 0 表示不截断
func (s *metricRepoImpl) AggregateByUser(ctx context.Context, teamID string, window time.Duration, excludedUserID string, limit int) ([]*model.UserAggregate, error) {
	rows := make([]*model.UserAggregate, 0)

	query := s.db.WithContext(ctx).Model(&model.Metric{}).
		Select("user_id, SUM(message_count) AS message_count, SUM(reaction_count) AS reaction_count, AVG(response_time) AS avg_response_time").
		Where("team_id = ?", teamID).
		Where("user_id <> ?", excludedUserID)

	if window > 0 {
		query = query.Where("recorded_at >= ?", time.Now().Add(-window))
	}

	query = query.Group("user_id").
		Order("message_count DESC, reaction_count DESC")

	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *metricRepoImpl) DistinctTeams(ctx context.Context) ([]string, error) {
	teams := make([]string, 0)
	err := s.db.WithContext(ctx).Model(&model.Metric{}).
		Distinct().
		Pluck("team_id", &teams).Error
	if err != nil {
		return nil, err
	}
	return teams, nil
}

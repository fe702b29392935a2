package repository

import (
	"Pulse/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReportChannelRepo interface {
	GetReportChannel(ctx context.Context, teamID string) (string, error)
	SetReportChannel(ctx context.Context, teamID, channelID string) error
}

type reportChannelRepoImpl struct {
	db *gorm.DB
}

func NewReportChannelRepository(db *gorm.DB) ReportChannelRepo {
	return &reportChannelRepoImpl{db: db}
}

// GetReportChannel 未配置时返回空串，不视为错误
func (s *reportChannelRepoImpl) GetReportChannel(ctx context.Context, teamID string) (string, error) {
	var channel model.ReportChannel
	err := s.db.WithContext(ctx).
		Where("team_id = ?", teamID).
		First(&channel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return channel.ChannelID, nil
}

// SetReportChannel upsert，后写覆盖
func (s *reportChannelRepoImpl) SetReportChannel(ctx context.Context, teamID, channelID string) error {
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "team_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"channel_id", "updated_at"}),
	}).Create(&model.ReportChannel{
		TeamID:    teamID,
		ChannelID: channelID,
	}).Error
}

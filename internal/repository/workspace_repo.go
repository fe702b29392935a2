package repository

import (
	"Pulse/internal/model"
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type WorkspaceRepo interface {
	SaveWorkspace(ctx context.Context, teamID, botToken string) error
}

type workspaceRepoImpl struct {
	db *gorm.DB
}

func NewWorkspaceRepository(db *gorm.DB) WorkspaceRepo {
	return &workspaceRepoImpl{db: db}
}

// SaveWorkspace 重复安装时覆盖旧的 bot token
func (s *workspaceRepoImpl) SaveWorkspace(ctx context.Context, teamID, botToken string) error {
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "team_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"bot_token"}),
	}).Create(&model.Workspace{
		TeamID:   teamID,
		BotToken: botToken,
	}).Error
}

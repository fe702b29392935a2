package model

import "time"

// Workspace OAuth 安装完成后保存的工作区凭据
type Workspace struct {
	ID        uint64 `gorm:"primaryKey"`
	TeamID    string `gorm:"type:varchar(32);not null;uniqueIndex"`
	BotToken  string `gorm:"type:varchar(128);not null"`
	CreatedAt time.Time
}

func (Workspace) TableName() string {
	return "workspaces"
}

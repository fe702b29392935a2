package model

import "time"

// ReportChannel 每个团队一条，记录定期报告投递的目标频道
type ReportChannel struct {
	ID        uint64 `gorm:"primaryKey"`
	TeamID    string `gorm:"type:varchar(32);not null;uniqueIndex"`
	ChannelID string `gorm:"type:varchar(32);not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (ReportChannel) TableName() string {
	return "report_channels"
}

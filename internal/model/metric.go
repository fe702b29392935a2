package model

import "time"

// Metric 按 (team_id, user_id, channel_id) 三元组维护的活跃度计数
// 同一三元组最多存在一行，首次事件时创建，之后只做原子自增
type Metric struct {
	ID            uint64    `gorm:"primaryKey"`
	TeamID        string    `gorm:"type:varchar(32);not null;uniqueIndex:idx_team_user_channel,priority:1"`
	UserID        string    `gorm:"type:varchar(32);not null;uniqueIndex:idx_team_user_channel,priority:2"`
	ChannelID     string    `gorm:"type:varchar(32);not null;uniqueIndex:idx_team_user_channel,priority:3"`
	MessageCount  int64     `gorm:"not null;default:0"`
	ReactionCount int64     `gorm:"not null;default:0"`
	ResponseTime  *float64  // 最近一次线程回复耗时（秒），覆盖写入而非累计
	RecordedAt    time.Time `gorm:"not null;index"`
}

func (Metric) TableName() string {
	return "metrics"
}

// UserAggregate 聚合查询的派生结果，不落库
// MessageCount / ReactionCount 为该用户在各频道记录上的求和
type UserAggregate struct {
	UserID          string   `gorm:"column:user_id"`
	MessageCount    int64    `gorm:"column:message_count"`
	ReactionCount   int64    `gorm:"column:reaction_count"`
	AvgResponseTime *float64 `gorm:"column:avg_response_time"`
}

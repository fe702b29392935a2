package dto

// UserActivityDTO 排行榜中的一行
type UserActivityDTO struct {
	UserID        string `json:"user_id"`
	MessageCount  int64  `json:"message_count"`
	ReactionCount int64  `json:"reaction_count"`
	// AvgResponseTime 已格式化（"3.50s"），无线程回复数据时为 "N/A"
	AvgResponseTime string `json:"avg_response_time"`
}

// LeaderboardQueryDTO REST 排行榜查询参数
type LeaderboardQueryDTO struct {
	TeamID string `form:"team_id" validate:"required"`
	Window string `form:"window" validate:"omitempty,oneof=daily weekly monthly yearly all"`
	Limit  int    `form:"limit" validate:"omitempty,min=1,max=100"`
}

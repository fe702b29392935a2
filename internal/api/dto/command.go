package dto

// SlashCommandDTO /metrics 与 /set-report-channel 的表单载荷
type SlashCommandDTO struct {
	TeamID      string `form:"team_id" validate:"required"`
	ChannelID   string `form:"channel_id" validate:"required"`
	ChannelName string `form:"channel_name"`
	Text        string `form:"text"`
}

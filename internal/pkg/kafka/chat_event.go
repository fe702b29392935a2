package kafka

// 事件总线上归一化聊天事件的 kind 取值
const (
	EventKindMessage  = "message"
	EventKindReaction = "reaction_added"
)

// ChatEvent 事件总线推送的归一化聊天事件
// Timestamp / ThreadTS 为秒级时间戳，线程回复时 ThreadTS 指向父消息
type ChatEvent struct {
	Kind      string   `json:"kind"`
	TeamID    string   `json:"team_id"`
	UserID    string   `json:"user_id"`
	ChannelID string   `json:"channel_id"`
	Timestamp float64  `json:"timestamp"`
	ThreadTS  *float64 `json:"thread_ts,omitempty"`
}

// Valid 必填字段齐全才值得入账
func (e *ChatEvent) Valid() bool {
	if e.TeamID == "" || e.UserID == "" || e.ChannelID == "" {
		return false
	}
	return e.Kind == EventKindMessage || e.Kind == EventKindReaction
}

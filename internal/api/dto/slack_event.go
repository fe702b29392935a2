package dto

// EventEnvelope Slack 事件回调的外层信封
type EventEnvelope struct {
	Type      string     `json:"type"`
	Challenge string     `json:"challenge"`
	TeamID    string     `json:"team_id"`
	Event     InnerEvent `json:"event"`
}

// InnerEvent 信封内的具体事件
// message 事件使用 Channel/TS/ThreadTS，reaction_added 使用 Item.Channel
type InnerEvent struct {
	Type     string    `json:"type"`
	Subtype  string    `json:"subtype"`
	BotID    string    `json:"bot_id"`
	User     string    `json:"user"`
	Channel  string    `json:"channel"`
	TS       string    `json:"ts"`
	ThreadTS string    `json:"thread_ts"`
	Item     EventItem `json:"item"`
}

// EventItem reaction_added 事件中被加表情的对象
type EventItem struct {
	Type    string `json:"type"`
	Channel string `json:"channel"`
	TS      string `json:"ts"`
}

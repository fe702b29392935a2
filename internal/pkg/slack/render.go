package slack

import (
	"Pulse/internal/api/dto"
	"fmt"
	"strings"
)

// NoActivityText 无活跃数据时的占位文案，同时作为纯文本降级
const NoActivityText = "No user activity found."

// RenderLeaderboard 将排行榜渲染为 Block Kit 消息与纯文本降级
// bottomN > 0 时追加 "Bottom N" 区块：取已渲染榜单末尾 N 行倒序，
// 不单独发起逆序查询
func RenderLeaderboard(users []*dto.UserActivityDTO, header string, bottomN int) ([]Block, string) {
	blocks := []Block{
		HeaderBlock(header),
		DividerBlock(),
	}

	lines := make([]string, 0, len(users))
	for _, u := range users {
		lines = append(lines, fmt.Sprintf(
			"*User <@%s>:* 👁️ %d messages, 👍 %d reactions, ⏱️ %s avg response",
			u.UserID, u.MessageCount, u.ReactionCount, u.AvgResponseTime,
		))
	}

	if len(lines) > 0 {
		blocks = append(blocks, SectionBlock(strings.Join(lines, "\n")))
	} else {
		blocks = append(blocks, SectionBlock(NoActivityText))
	}

	if bottomN > 0 {
		blocks = append(blocks,
			HeaderBlock(fmt.Sprintf("Bottom %d Active Users", bottomN)),
			DividerBlock(),
			SectionBlock(bottomSection(lines, bottomN)),
		)
	}

	text := NoActivityText
	if len(lines) > 0 {
		text = strings.Join(lines, "\n")
	}
	return blocks, text
}

func bottomSection(lines []string, n int) string {
	if len(lines) == 0 {
		return NoActivityText
	}
	if n > len(lines) {
		n = len(lines)
	}
	tail := lines[len(lines)-n:]

	reversed := make([]string, 0, len(tail))
	for i := len(tail) - 1; i >= 0; i-- {
		reversed = append(reversed, tail[i])
	}
	return strings.Join(reversed, "\n")
}

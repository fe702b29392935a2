package service

import (
	"Pulse/internal/pkg/slack"
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// defaultCommandLimit 未显式指定人数时的默认名次
const defaultCommandLimit = 5

var usageHints = map[string]string{
	"weekly":    "Invalid number. Usage: `/metrics weekly [number]` (e.g., `/metrics weekly 5`)",
	"monthly":   "Invalid number. Usage: `/metrics monthly [number]` (e.g., `/metrics monthly 5`)",
	"yearly":    "Invalid number. Usage: `/metrics yearly [number]` (e.g., `/metrics yearly 5`)",
	"top_users": "Invalid number. Usage: `/metrics top_users [number]` (e.g., `/metrics top_users 5`)",
	"default":   "Invalid command. Usage: `/metrics [number]`, `/metrics weekly [number]`, `/metrics monthly [number]`, `/metrics yearly [number]`, or `/metrics top_users [number]` (e.g., `/metrics 5`)",
}

type CommandService interface {
	BuildMetricsReply(ctx context.Context, teamID, text string) ([]slack.Block, string, error)
}

type commandServiceImpl struct {
	leaderboardSvc LeaderboardService
}

func NewCommandService(leaderboardSvc LeaderboardService) CommandService {
	return &commandServiceImpl{leaderboardSvc: leaderboardSvc}
}

// BuildMetricsReply 解析 /metrics 子命令并渲染排行榜
// 参数不是合法整数时返回 *UsageError，不触发任何聚合查询
func (s *commandServiceImpl) BuildMetricsReply(ctx context.Context, teamID, text string) ([]slack.Block, string, error) {
	args := strings.Fields(strings.TrimSpace(text))

	if len(args) == 0 {
		return s.reply(ctx, teamID, WindowDaily, defaultCommandLimit, "Top Active Users", true)
	}

	switch args[0] {
	case "weekly":
		return s.windowedReply(ctx, teamID, args, WindowWeekly, "Weekly Metrics Report")
	case "monthly":
		return s.windowedReply(ctx, teamID, args, WindowMonthly, "Monthly Metrics Report")
	case "yearly":
		return s.windowedReply(ctx, teamID, args, WindowYearly, "Yearly Metrics Report")
	case "top_users":
		limit, err := parseLimit(args, "top_users")
		if err != nil {
			return nil, "", err
		}
		return s.reply(ctx, teamID, WindowDaily, limit, fmt.Sprintf("Top %d Active Users", limit), false)
	default:
		limit, err := strconv.Atoi(args[0])
		if err != nil || limit < 1 {
			return nil, "", &UsageError{Subcommand: "default", Hint: usageHints["default"]}
		}
		return s.reply(ctx, teamID, WindowDaily, limit, "Top Active Users", true)
	}
}

func (s *commandServiceImpl) windowedReply(ctx context.Context, teamID string, args []string, window time.Duration, headerPrefix string) ([]slack.Block, string, error) {
	limit, err := parseLimit(args, args[0])
	if err != nil {
		return nil, "", err
	}
	header := fmt.Sprintf("%s (Top %d Active Users)", headerPrefix, limit)
	return s.reply(ctx, teamID, window, limit, header, true)
}

func (s *commandServiceImpl) reply(ctx context.Context, teamID string, window time.Duration, limit int, header string, showBottom bool) ([]slack.Block, string, error) {
	users, err := s.leaderboardSvc.TopUsers(ctx, teamID, window, limit)
	if err != nil {
		return nil, "", err
	}

	bottomN := 0
	if showBottom {
		bottomN = limit
	}
	blocks, text := slack.RenderLeaderboard(users, header, bottomN)
	return blocks, text, nil
}

// parseLimit 人数参数必须是正整数，0 或负数视同非法参数
func parseLimit(args []string, subcommand string) (int, error) {
	if len(args) < 2 {
		return defaultCommandLimit, nil
	}
	limit, err := strconv.Atoi(args[1])
	if err != nil || limit < 1 {
		return 0, &UsageError{Subcommand: subcommand, Hint: usageHints[subcommand]}
	}
	return limit, nil
}

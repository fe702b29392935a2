package service_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"Pulse/internal/model"
	"Pulse/internal/service"
)

func newCommandService(repo *fakeMetricRepo) service.CommandService {
	return service.NewCommandService(service.NewLeaderboardService(repo, ""))
}

func TestBuildMetricsReply(t *testing.T) {
	t.Parallel()

	t.Run("Empty text uses daily window with default limit", func(t *testing.T) {
		t.Parallel()
		repo := newFakeMetricRepo()
		repo.aggregateRows = []*model.UserAggregate{
			{UserID: "U1", MessageCount: 3, ReactionCount: 1},
		}
		svc := newCommandService(repo)

		blocks, _, err := svc.BuildMetricsReply(context.Background(), "T1", "")
		require.NoError(t, err)

		require.Len(t, repo.aggregateCalls, 1)
		require.Equal(t, service.WindowDaily, repo.aggregateCalls[0].window)
		require.Equal(t, 5, repo.aggregateCalls[0].limit)

		require.Equal(t, "Top Active Users", blocks[0].Text.Text)
		// 默认命令同时渲染 Bottom 区块
		require.Equal(t, "Bottom 5 Active Users", blocks[3].Text.Text)
	})

	t.Run("Bare number overrides the limit", func(t *testing.T) {
		t.Parallel()
		repo := newFakeMetricRepo()
		svc := newCommandService(repo)

		_, _, err := svc.BuildMetricsReply(context.Background(), "T1", "10")
		require.NoError(t, err)

		require.Len(t, repo.aggregateCalls, 1)
		require.Equal(t, service.WindowDaily, repo.aggregateCalls[0].window)
		require.Equal(t, 10, repo.aggregateCalls[0].limit)
	})

	t.Run("Weekly subcommand", func(t *testing.T) {
		t.Parallel()
		repo := newFakeMetricRepo()
		svc := newCommandService(repo)

		blocks, _, err := svc.BuildMetricsReply(context.Background(), "T1", "weekly 3")
		require.NoError(t, err)
		require.Equal(t, service.WindowWeekly, repo.aggregateCalls[0].window)
		require.Equal(t, 3, repo.aggregateCalls[0].limit)
		require.Equal(t, "Weekly Metrics Report (Top 3 Active Users)", blocks[0].Text.Text)
	})

	t.Run("Monthly and yearly subcommands default the limit", func(t *testing.T) {
		t.Parallel()
		repo := newFakeMetricRepo()
		svc := newCommandService(repo)

		blocks, _, err := svc.BuildMetricsReply(context.Background(), "T1", "monthly")
		require.NoError(t, err)
		require.Equal(t, service.WindowMonthly, repo.aggregateCalls[0].window)
		require.Equal(t, 5, repo.aggregateCalls[0].limit)
		require.Equal(t, "Monthly Metrics Report (Top 5 Active Users)", blocks[0].Text.Text)

		blocks, _, err = svc.BuildMetricsReply(context.Background(), "T1", "yearly")
		require.NoError(t, err)
		require.Equal(t, service.WindowYearly, repo.aggregateCalls[1].window)
		require.Equal(t, "Yearly Metrics Report (Top 5 Active Users)", blocks[0].Text.Text)
	})

	t.Run("Top users subcommand skips the bottom section", func(t *testing.T) {
		t.Parallel()
		repo := newFakeMetricRepo()
		repo.aggregateRows = []*model.UserAggregate{
			{UserID: "U1", MessageCount: 3, ReactionCount: 1},
		}
		svc := newCommandService(repo)

		blocks, _, err := svc.BuildMetricsReply(context.Background(), "T1", "top_users 2")
		require.NoError(t, err)

		require.Equal(t, "Top 2 Active Users", blocks[0].Text.Text)
		for _, b := range blocks {
			if b.Text != nil {
				require.False(t, strings.HasPrefix(b.Text.Text, "Bottom"))
			}
		}
	})

	t.Run("Bad numeric argument returns usage hint without querying", func(t *testing.T) {
		t.Parallel()
		repo := newFakeMetricRepo()
		svc := newCommandService(repo)

		_, _, err := svc.BuildMetricsReply(context.Background(), "T1", "weekly five")
		require.Error(t, err)

		var usageErr *service.UsageError
		require.ErrorAs(t, err, &usageErr)
		require.Equal(t, "weekly", usageErr.Subcommand)
		require.Contains(t, usageErr.Hint, "/metrics weekly [number]")
		require.ErrorIs(t, err, service.ErrInvalidArgument)

		require.Empty(t, repo.aggregateCalls)
	})

	t.Run("Zero or negative limit returns usage hint without querying", func(t *testing.T) {
		t.Parallel()
		repo := newFakeMetricRepo()
		repo.aggregateRows = []*model.UserAggregate{
			{UserID: "U1", MessageCount: 9, ReactionCount: 2},
			{UserID: "U2", MessageCount: 4, ReactionCount: 1},
		}
		svc := newCommandService(repo)

		for _, text := range []string{"0", "-3", "weekly 0", "top_users -1"} {
			_, _, err := svc.BuildMetricsReply(context.Background(), "T1", text)

			var usageErr *service.UsageError
			require.ErrorAs(t, err, &usageErr, "text %q", text)
		}

		// 非法人数不能泄漏成全量查询
		require.Empty(t, repo.aggregateCalls)
	})

	t.Run("Unknown subcommand returns the default hint", func(t *testing.T) {
		t.Parallel()
		repo := newFakeMetricRepo()
		svc := newCommandService(repo)

		_, _, err := svc.BuildMetricsReply(context.Background(), "T1", "bogus")
		require.Error(t, err)

		var usageErr *service.UsageError
		require.ErrorAs(t, err, &usageErr)
		require.Equal(t, "default", usageErr.Subcommand)
		require.Contains(t, usageErr.Hint, "Invalid command. Usage:")

		require.Empty(t, repo.aggregateCalls)
	})
}

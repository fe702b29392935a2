package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"Pulse/internal/model"
	"Pulse/internal/service"
)

func newReportService(repo *fakeMetricRepo, channels *fakeChannelRepo, sender *fakeSender) service.ReportService {
	leaderboard := service.NewLeaderboardService(repo, "")
	return service.NewReportService(repo, channels, leaderboard, sender, "#general")
}

func TestDispatchReports(t *testing.T) {
	t.Parallel()

	t.Run("Posts one report per team to its configured channel", func(t *testing.T) {
		t.Parallel()
		repo := newFakeMetricRepo()
		repo.teams = []string{"T1", "T2"}
		repo.aggregateRows = []*model.UserAggregate{
			{UserID: "U1", MessageCount: 5, ReactionCount: 2},
		}
		channels := newFakeChannelRepo()
		channels.channels["T1"] = "C-REPORTS"
		sender := newFakeSender()
		svc := newReportService(repo, channels, sender)

		err := svc.DispatchReports(context.Background(), service.WindowWeekly, "Weekly Metrics Report")
		require.NoError(t, err)

		require.Len(t, sender.posts, 2)
		require.Equal(t, "C-REPORTS", sender.posts[0].channelID)
		// 未配置频道的团队落到默认频道
		require.Equal(t, "#general", sender.posts[1].channelID)
		require.Equal(t, "Weekly Metrics Report", sender.posts[0].blocks[0].Text.Text)
	})

	t.Run("Report uses the full window leaderboard", func(t *testing.T) {
		t.Parallel()
		repo := newFakeMetricRepo()
		repo.teams = []string{"T1"}
		channels := newFakeChannelRepo()
		sender := newFakeSender()
		svc := newReportService(repo, channels, sender)

		err := svc.DispatchReports(context.Background(), service.WindowMonthly, "Monthly Metrics Report")
		require.NoError(t, err)

		require.Len(t, repo.aggregateCalls, 1)
		require.Equal(t, service.WindowMonthly, repo.aggregateCalls[0].window)
		require.Equal(t, 0, repo.aggregateCalls[0].limit)
	})

	t.Run("One failed delivery does not block the other teams", func(t *testing.T) {
		t.Parallel()
		repo := newFakeMetricRepo()
		repo.teams = []string{"T1", "T2", "T3"}
		channels := newFakeChannelRepo()
		channels.channels["T2"] = "C-BROKEN"
		sender := newFakeSender()
		sender.failFor["C-BROKEN"] = errors.New("channel_not_found")
		svc := newReportService(repo, channels, sender)

		err := svc.DispatchReports(context.Background(), service.WindowWeekly, "Weekly Metrics Report")
		require.NoError(t, err)

		require.Len(t, sender.posts, 2)
	})

	t.Run("Listing teams failure aborts the run", func(t *testing.T) {
		t.Parallel()
		repo := newFakeMetricRepo()
		repo.teamsErr = errors.New("connection refused")
		svc := newReportService(repo, newFakeChannelRepo(), newFakeSender())

		err := svc.DispatchReports(context.Background(), service.WindowWeekly, "Weekly Metrics Report")
		require.Error(t, err)
	})
}

func TestSetReportChannel(t *testing.T) {
	t.Parallel()

	t.Run("Stores the channel and posts a confirmation", func(t *testing.T) {
		t.Parallel()
		channels := newFakeChannelRepo()
		sender := newFakeSender()
		svc := newReportService(newFakeMetricRepo(), channels, sender)

		err := svc.SetReportChannel(context.Background(), "T1", "C42", "reports")
		require.NoError(t, err)

		require.Equal(t, "C42", channels.channels["T1"])
		require.Len(t, sender.posts, 1)
		require.Equal(t, "C42", sender.posts[0].channelID)
		require.Equal(t, "Weekly reports will now be posted to #reports.", sender.posts[0].text)
	})

	t.Run("Confirmation failure is reported as send failure", func(t *testing.T) {
		t.Parallel()
		channels := newFakeChannelRepo()
		sender := newFakeSender()
		sender.failFor["C42"] = errors.New("not_in_channel")
		svc := newReportService(newFakeMetricRepo(), channels, sender)

		err := svc.SetReportChannel(context.Background(), "T1", "C42", "reports")
		require.ErrorIs(t, err, service.ErrSendFailure)
		// 频道映射本身已经写入
		require.Equal(t, "C42", channels.channels["T1"])
	})

	t.Run("Storage failure comes back untouched", func(t *testing.T) {
		t.Parallel()
		channels := newFakeChannelRepo()
		channels.setErr = errors.New("deadlock found")
		sender := newFakeSender()
		svc := newReportService(newFakeMetricRepo(), channels, sender)

		err := svc.SetReportChannel(context.Background(), "T1", "C42", "reports")
		require.Error(t, err)
		require.Empty(t, sender.posts)
	})
}

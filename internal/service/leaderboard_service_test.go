package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"Pulse/internal/model"
	"Pulse/internal/service"
)

func TestTopUsers(t *testing.T) {
	t.Parallel()

	t.Run("Formats aggregate rows into activity entries", func(t *testing.T) {
		t.Parallel()
		repo := newFakeMetricRepo()
		repo.aggregateRows = []*model.UserAggregate{
			{UserID: "U1", MessageCount: 10, ReactionCount: 4, AvgResponseTime: floatPtr(3.5)},
			{UserID: "U2", MessageCount: 7, ReactionCount: 9, AvgResponseTime: nil},
		}
		svc := service.NewLeaderboardService(repo, "BBOT")

		users, err := svc.TopUsers(context.Background(), "T1", service.WindowDaily, 5)
		require.NoError(t, err)
		require.Len(t, users, 2)

		require.Equal(t, "U1", users[0].UserID)
		require.EqualValues(t, 10, users[0].MessageCount)
		require.EqualValues(t, 4, users[0].ReactionCount)
		require.Equal(t, "3.50s", users[0].AvgResponseTime)

		require.Equal(t, "N/A", users[1].AvgResponseTime)
	})

	t.Run("Passes window, limit and bot exclusion to the repository", func(t *testing.T) {
		t.Parallel()
		repo := newFakeMetricRepo()
		svc := service.NewLeaderboardService(repo, "BBOT")

		_, err := svc.TopUsers(context.Background(), "T1", service.WindowWeekly, 3)
		require.NoError(t, err)

		require.Len(t, repo.aggregateCalls, 1)
		call := repo.aggregateCalls[0]
		require.Equal(t, "T1", call.teamID)
		require.Equal(t, service.WindowWeekly, call.window)
		require.Equal(t, "BBOT", call.excluded)
		require.Equal(t, 3, call.limit)
	})

	t.Run("Empty aggregate is an empty list, not an error", func(t *testing.T) {
		t.Parallel()
		repo := newFakeMetricRepo()
		svc := service.NewLeaderboardService(repo, "")

		users, err := svc.TopUsers(context.Background(), "T1", service.WindowAll, 0)
		require.NoError(t, err)
		require.Empty(t, users)
	})

	t.Run("Repository failure is propagated", func(t *testing.T) {
		t.Parallel()
		repo := newFakeMetricRepo()
		repo.aggregateErr = errors.New("connection refused")
		svc := service.NewLeaderboardService(repo, "")

		_, err := svc.TopUsers(context.Background(), "T1", service.WindowDaily, 5)
		require.Error(t, err)
	})
}

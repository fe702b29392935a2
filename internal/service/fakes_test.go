package service_test

import (
	"context"
	"sync"
	"time"

	"Pulse/internal/model"
	"Pulse/internal/pkg/slack"
	"Pulse/internal/repository"
)

// fakeMetricRepo 以 (team, user, channel) 为键的内存实现
// insertConflicts > 0 时前几次插入返回唯一键冲突，模拟并发写
type fakeMetricRepo struct {
	mu sync.Mutex

	nextID          uint64
	records         map[[3]string]*model.Metric
	insertConflicts int

	aggregateRows  []*model.UserAggregate
	aggregateErr   error
	aggregateCalls []aggregateCall

	teams       []string
	teamsErr    error
	findErr     error
	findNilOnce bool
	insertErr   error
}

type aggregateCall struct {
	teamID   string
	window   time.Duration
	excluded string
	limit    int
}

func newFakeMetricRepo() *fakeMetricRepo {
	return &fakeMetricRepo{
		nextID:  1,
		records: make(map[[3]string]*model.Metric),
	}
}

func key(teamID, userID, channelID string) [3]string {
	return [3]string{teamID, userID, channelID}
}

func (f *fakeMetricRepo) FindRecord(_ context.Context, teamID, userID, channelID string) (*model.Metric, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	if f.findNilOnce {
		f.findNilOnce = false
		return nil, nil
	}
	m, ok := f.records[key(teamID, userID, channelID)]
	if !ok {
		return nil, nil
	}
	clone := *m
	return &clone, nil
}

func (f *fakeMetricRepo) InsertRecord(_ context.Context, metric *model.Metric) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertErr != nil {
		return f.insertErr
	}
	if f.insertConflicts > 0 {
		f.insertConflicts--
		return repository.ErrDuplicateMetric
	}
	k := key(metric.TeamID, metric.UserID, metric.ChannelID)
	if _, ok := f.records[k]; ok {
		return repository.ErrDuplicateMetric
	}
	clone := *metric
	clone.ID = f.nextID
	f.nextID++
	f.records[k] = &clone
	return nil
}

func (f *fakeMetricRepo) IncrementMessageCount(_ context.Context, recordID uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range f.records {
		if m.ID == recordID {
			m.MessageCount++
			m.RecordedAt = time.Now()
			return nil
		}
	}
	return nil
}

func (f *fakeMetricRepo) IncrementReactionCount(_ context.Context, recordID uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range f.records {
		if m.ID == recordID {
			m.ReactionCount++
			m.RecordedAt = time.Now()
			return nil
		}
	}
	return nil
}

func (f *fakeMetricRepo) SetResponseTime(_ context.Context, teamID, userID, channelID string, seconds float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if m, ok := f.records[key(teamID, userID, channelID)]; ok {
		m.ResponseTime = &seconds
	}
	return nil
}

func (f *fakeMetricRepo) AggregateByUser(_ context.Context, teamID string, window time.Duration, excludedUserID string, limit int) ([]*model.UserAggregate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.aggregateCalls = append(f.aggregateCalls, aggregateCall{
		teamID:   teamID,
		window:   window,
		excluded: excludedUserID,
		limit:    limit,
	})
	if f.aggregateErr != nil {
		return nil, f.aggregateErr
	}
	return f.aggregateRows, nil
}

func (f *fakeMetricRepo) DistinctTeams(_ context.Context) ([]string, error) {
	if f.teamsErr != nil {
		return nil, f.teamsErr
	}
	return f.teams, nil
}

func (f *fakeMetricRepo) record(teamID, userID, channelID string) *model.Metric {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.records[key(teamID, userID, channelID)]
	if !ok {
		return nil
	}
	clone := *m
	return &clone
}

// fakeChannelRepo 内存版报告频道映射
type fakeChannelRepo struct {
	channels map[string]string
	getErr   error
	setErr   error
}

func newFakeChannelRepo() *fakeChannelRepo {
	return &fakeChannelRepo{channels: make(map[string]string)}
}

func (f *fakeChannelRepo) GetReportChannel(_ context.Context, teamID string) (string, error) {
	if f.getErr != nil {
		return "", f.getErr
	}
	return f.channels[teamID], nil
}

func (f *fakeChannelRepo) SetReportChannel(_ context.Context, teamID, channelID string) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.channels[teamID] = channelID
	return nil
}

// fakeSender 记录每次投递，failFor 中的频道投递失败
type fakeSender struct {
	posts   []postedMessage
	failFor map[string]error
}

type postedMessage struct {
	channelID string
	blocks    []slack.Block
	text      string
}

func newFakeSender() *fakeSender {
	return &fakeSender{failFor: make(map[string]error)}
}

func (f *fakeSender) PostMessage(_ context.Context, channelID string, blocks []slack.Block, text string) error {
	if err, ok := f.failFor[channelID]; ok {
		return err
	}
	f.posts = append(f.posts, postedMessage{channelID: channelID, blocks: blocks, text: text})
	return nil
}

func floatPtr(v float64) *float64 {
	return &v
}

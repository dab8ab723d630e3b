package projection

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"syncpay-insights/domain"
)

var now = time.Date(2026, time.March, 15, 14, 0, 0, 0, time.UTC)

func messageAt(at time.Time) domain.Message {
	return domain.Message{Role: domain.RoleUser, Content: "m", Timestamp: at}
}

func TestTimeline_GroupsByDay(t *testing.T) {
	req := require.New(t)

	messages := []domain.Message{
		messageAt(now.AddDate(0, 0, -2)),
		messageAt(now.AddDate(0, 0, -1)),
		messageAt(now.AddDate(0, 0, -1).Add(time.Hour)),
		messageAt(now.Add(-time.Hour)),
	}

	groups := Timeline(messages, now)
	req.Len(groups, 3)
	req.Equal("Mar 13", groups[0].Label)
	req.Equal("Yesterday", groups[1].Label)
	req.Len(groups[1].Messages, 2)
	req.Equal("Today", groups[2].Label)
}

func TestTimeline_Empty(t *testing.T) {
	require.Empty(t, Timeline(nil, now))
}

func TestDateLabel(t *testing.T) {
	req := require.New(t)

	tests := []struct {
		name  string
		at    time.Time
		label string
	}{
		{name: "Same day", at: now.Add(-2 * time.Hour), label: "Today"},
		{name: "Previous day", at: now.AddDate(0, 0, -1), label: "Yesterday"},
		{name: "Same year", at: time.Date(2026, time.January, 3, 9, 0, 0, 0, time.UTC), label: "Jan 3"},
		{name: "Previous year", at: time.Date(2025, time.December, 31, 9, 0, 0, 0, time.UTC), label: "Dec 31, 2025"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req.Equal(tt.label, DateLabel(tt.at, now))
		})
	}
}

func TestRelativeTime(t *testing.T) {
	req := require.New(t)

	tests := []struct {
		name    string
		elapsed time.Duration
		label   string
	}{
		{name: "Just now", elapsed: 3 * time.Second, label: "Just now"},
		{name: "Seconds", elapsed: 42 * time.Second, label: "42 sec ago"},
		{name: "One minute", elapsed: 90 * time.Second, label: "1 min ago"},
		{name: "Minutes", elapsed: 12 * time.Minute, label: "12 min ago"},
		{name: "One hour", elapsed: 70 * time.Minute, label: "1 hour ago"},
		{name: "Hours", elapsed: 5 * time.Hour, label: "5 hours ago"},
		{name: "One day", elapsed: 30 * time.Hour, label: "1 day ago"},
		{name: "Days", elapsed: 3 * 24 * time.Hour, label: "3 days ago"},
		{name: "One week", elapsed: 8 * 24 * time.Hour, label: "1 week ago"},
		{name: "Weeks", elapsed: 20 * 24 * time.Hour, label: "2 weeks ago"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req.Equal(tt.label, RelativeTime(now.Add(-tt.elapsed), now))
		})
	}
}

func TestRelativeTime_FallsBackToDate(t *testing.T) {
	at := now.Add(-40 * 24 * time.Hour)
	require.Equal(t, "Feb 3, 2026", RelativeTime(at, now))
}

func TestSessionDuration(t *testing.T) {
	req := require.New(t)

	req.Equal("0 min", SessionDuration(nil, now))
	req.Equal("< 1 min", SessionDuration([]domain.Message{messageAt(now.Add(-30 * time.Second))}, now))
	req.Equal("12 min", SessionDuration([]domain.Message{messageAt(now.Add(-12 * time.Minute))}, now))
	req.Equal("2h 5m", SessionDuration([]domain.Message{messageAt(now.Add(-125 * time.Minute))}, now))
}

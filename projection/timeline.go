// Package projection builds read-only views of the session transcript.
// Handles date grouping and human-readable time formatting.
// Does not mutate the session or interact with the UI directly.
package projection

import (
	"fmt"
	"time"

	"syncpay-insights/domain"
)

// TimelineGroup is a run of consecutive messages sharing a date label.
type TimelineGroup struct {
	Label    string
	Messages []domain.Message
}

// Timeline groups messages under Today/Yesterday/date headers,
// preserving arrival order.
func Timeline(messages []domain.Message, now time.Time) []TimelineGroup {
	var groups []TimelineGroup
	for _, message := range messages {
		label := DateLabel(message.Timestamp, now)
		if len(groups) == 0 || groups[len(groups)-1].Label != label {
			groups = append(groups, TimelineGroup{Label: label})
		}
		last := &groups[len(groups)-1]
		last.Messages = append(last.Messages, message)
	}
	return groups
}

// DateLabel returns "Today", "Yesterday", or a short date.
func DateLabel(at, now time.Time) string {
	day := func(t time.Time) time.Time {
		y, m, d := t.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
	}
	today := day(now)
	messageDay := day(at.In(now.Location()))

	switch {
	case messageDay.Equal(today):
		return "Today"
	case messageDay.Equal(today.AddDate(0, 0, -1)):
		return "Yesterday"
	case messageDay.Year() == today.Year():
		return messageDay.Format("Jan 2")
	default:
		return messageDay.Format("Jan 2, 2006")
	}
}

// RelativeTime renders an instant relative to now ("Just now", "5 min ago").
func RelativeTime(at, now time.Time) string {
	elapsed := now.Sub(at)
	seconds := int(elapsed.Seconds())

	switch {
	case seconds < 10:
		return "Just now"
	case seconds < 60:
		return fmt.Sprintf("%d sec ago", seconds)
	}

	minutes := seconds / 60
	if minutes < 60 {
		if minutes == 1 {
			return "1 min ago"
		}
		return fmt.Sprintf("%d min ago", minutes)
	}

	hours := minutes / 60
	if hours < 24 {
		if hours == 1 {
			return "1 hour ago"
		}
		return fmt.Sprintf("%d hours ago", hours)
	}

	days := hours / 24
	if days < 7 {
		if days == 1 {
			return "1 day ago"
		}
		return fmt.Sprintf("%d days ago", days)
	}

	weeks := days / 7
	if weeks < 4 {
		if weeks == 1 {
			return "1 week ago"
		}
		return fmt.Sprintf("%d weeks ago", weeks)
	}
	return at.Format("Jan 2, 2006")
}

// SessionDuration reports how long the conversation has been running,
// measured from the first message.
func SessionDuration(messages []domain.Message, now time.Time) string {
	if len(messages) == 0 {
		return "0 min"
	}
	minutes := int(now.Sub(messages[0].Timestamp).Minutes())
	switch {
	case minutes < 1:
		return "< 1 min"
	case minutes < 60:
		return fmt.Sprintf("%d min", minutes)
	}
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}

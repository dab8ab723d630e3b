package intent

import (
	"log/slog"
	"testing"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

func TestClassifier_Classify(t *testing.T) {
	req := require.New(t)
	classifier, err := NewClassifier(logs.GetLoggerFromLevel(slog.LevelDebug))
	req.NoError(err)

	tests := []struct {
		name       string
		utterance  string
		detected   bool
		categories []Category
		suggested  string
	}{
		{
			name:       "Trend keyword suggests a line chart",
			utterance:  "What's our revenue trend?",
			detected:   true,
			categories: []Category{CategoryTrend, CategoryMetrics},
			suggested:  "line",
		},
		{
			name:       "Comparison keyword suggests a bar chart",
			utterance:  "Compare credit and debit volumes",
			detected:   true,
			categories: []Category{CategoryComparison},
			suggested:  "bar",
		},
		{
			name:       "Distribution keyword suggests a pie chart",
			utterance:  "Give me the breakdown of failures",
			detected:   true,
			categories: []Category{CategoryDistribution},
			suggested:  "pie",
		},
		{
			name:       "Explicit request wins over everything",
			utterance:  "Show chart of the breakdown trend",
			detected:   true,
			categories: []Category{CategoryExplicit, CategoryTrend, CategoryDistribution},
			suggested:  "auto",
		},
		{
			name:       "Case insensitive matching",
			utterance:  "MONTHLY numbers please",
			detected:   true,
			categories: []Category{CategoryTrend},
			suggested:  "line",
		},
		{
			name:      "No chart intent",
			utterance: "Hello, who are you?",
			detected:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := classifier.Classify(tt.utterance)
			req.Equal(tt.detected, result.Detected)
			req.Equal(tt.categories, result.Categories)
			req.Equal(tt.suggested, result.SuggestedType)
		})
	}
}

func TestClassifier_PriorityOrder(t *testing.T) {
	req := require.New(t)
	classifier, err := NewClassifier(logs.GetLoggerFromLevel(slog.LevelDebug))
	req.NoError(err)

	// Trend beats distribution and comparison when explicit is absent.
	result := classifier.Classify("compare the breakdown over time")
	req.True(result.Detected)
	req.Equal("line", result.SuggestedType)
	req.Equal(CategoryTrend, result.Categories[0])
}

func TestClassifier_DetectsLanguage(t *testing.T) {
	req := require.New(t)
	classifier, err := NewClassifier(logs.GetLoggerFromLevel(slog.LevelDebug))
	req.NoError(err)

	result := classifier.Classify("Show me the revenue trend for the last six months, please and thank you")
	req.Equal("en", result.Language)
}

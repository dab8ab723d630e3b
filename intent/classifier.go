// Package intent decides whether an outgoing utterance is asking for a
// chart. The scan is advisory: it toggles the includeCharts flag on the
// transport request and feeds a UI hint, it never blocks a send.
package intent

import (
	"log/slog"
	"strings"

	"github.com/abadojack/whatlanggo"
	goahocorasick "github.com/anknown/ahocorasick"
)

type Category string

const (
	CategoryExplicit     Category = "explicit"
	CategoryTrend        Category = "trend"
	CategoryComparison   Category = "comparison"
	CategoryDistribution Category = "distribution"
	CategoryMetrics      Category = "metrics"
)

// keywords groups the fixed detection vocabulary by category.
var keywords = map[Category][]string{
	CategoryExplicit: {
		"show chart", "show graph", "show plot", "create chart", "create graph",
		"visualize", "visualization", "draw chart", "draw graph", "display chart",
		"as a chart", "as a graph", "in a chart", "in a graph", "chart this",
		"graph this", "plot this",
	},
	CategoryTrend: {
		"trend", "over time", "timeline", "history", "historical",
		"progression", "growth over", "change over", "monthly", "weekly",
		"daily", "yearly", "last 6 months", "last 12 months", "past year",
	},
	CategoryComparison: {
		"compare", "comparison", "versus", "vs", "against", "difference between",
		"how does", "relative to",
	},
	CategoryDistribution: {
		"breakdown", "distribution", "split", "composition", "proportion",
		"percentage", "share of", "by category", "by type", "per",
	},
	CategoryMetrics: {
		"revenue trend", "transaction volume", "user growth", "success rate",
		"failure rate", "peak hours", "top performing",
	},
}

// suggestions maps the winning category to the chart kind hinted to the UI.
var suggestions = map[Category]string{
	CategoryTrend:        "line",
	CategoryComparison:   "bar",
	CategoryDistribution: "pie",
	CategoryExplicit:     "auto",
	CategoryMetrics:      "auto",
}

// priority resolves the suggested type when several categories match.
var priority = []Category{
	CategoryExplicit, CategoryTrend, CategoryDistribution, CategoryComparison, CategoryMetrics,
}

// Classification is the outcome of scanning one utterance.
type Classification struct {
	Detected      bool
	Categories    []Category
	SuggestedType string
	Language      string // ISO 639-1 code of the detected utterance language
}

type Classifier struct {
	matcher    *goahocorasick.Machine
	categories map[string]Category
	log        *slog.Logger
}

// NewClassifier builds the Aho-Corasick automaton over the full keyword
// vocabulary, keeping a reverse map from matched pattern to category.
func NewClassifier(log *slog.Logger) (*Classifier, error) {
	categories := make(map[string]Category)
	var patterns [][]rune
	for category, words := range keywords {
		for _, w := range words {
			categories[w] = category
			patterns = append(patterns, []rune(w))
		}
	}

	m := new(goahocorasick.Machine)
	if err := m.Build(patterns); err != nil {
		return nil, err
	}
	return &Classifier{matcher: m, categories: categories, log: log}, nil
}

// Classify scans the utterance case-insensitively against every keyword
// category. Detection order follows the fixed priority list so the
// result is stable regardless of match positions.
func (c *Classifier) Classify(utterance string) Classification {
	lowered := []rune(strings.ToLower(utterance))

	matched := make(map[Category]bool)
	for _, term := range c.matcher.MultiPatternSearch(lowered, false) {
		if category, ok := c.categories[string(term.Word)]; ok {
			matched[category] = true
		}
	}

	result := Classification{
		Language: whatlanggo.Detect(utterance).Lang.Iso6391(),
	}
	for _, category := range priority {
		if matched[category] {
			result.Categories = append(result.Categories, category)
		}
	}
	result.Detected = len(result.Categories) > 0
	if result.Detected {
		result.SuggestedType = suggestions[result.Categories[0]]
	}
	return result
}

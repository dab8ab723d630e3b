package domain

import (
	"encoding/json"
	"sort"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ChartLabels names the axes of a rendered chart.
type ChartLabels struct {
	X string `json:"x,omitempty"`
	Y string `json:"y,omitempty"`
}

// ChartPayload is a validated description of a chart embedded in an
// assistant reply. Data is a list of records keyed by column name.
type ChartPayload struct {
	Type     string           `json:"type" validate:"required,oneof=line bar pie donut area"`
	Title    string           `json:"title" validate:"required"`
	Data     []map[string]any `json:"data"`
	Labels   *ChartLabels     `json:"labels,omitempty"`
	DataKeys []string         `json:"dataKeys,omitempty"`
}

// ValidChart reports whether the payload satisfies the chart contract:
// a known type, a non-empty title, and list-shaped data. An empty data
// list is valid; an absent one is not.
func ValidChart(c ChartPayload) bool {
	if c.Data == nil {
		return false
	}
	return validate.Struct(c) == nil
}

// DecodeChart parses raw JSON into a chart payload and validates it.
// Malformed input yields ok=false, never an error.
func DecodeChart(raw []byte) (ChartPayload, bool) {
	var c ChartPayload
	if err := json.Unmarshal(raw, &c); err != nil {
		return ChartPayload{}, false
	}
	if !ValidChart(c) {
		return ChartPayload{}, false
	}
	return c, true
}

// ChartShaped reports whether a decoded generic block looks like a chart
// before full validation: the three mandatory fields are present and the
// type is one of the known kinds. Used to tell chart-bearing ```json
// blocks apart from ordinary ones.
func ChartShaped(v map[string]json.RawMessage) bool {
	if _, ok := v["title"]; !ok {
		return false
	}
	if _, ok := v["data"]; !ok {
		return false
	}
	rawType, ok := v["type"]
	if !ok {
		return false
	}
	var kind string
	if err := json.Unmarshal(rawType, &kind); err != nil {
		return false
	}
	switch kind {
	case "line", "bar", "pie", "donut", "area":
		return true
	}
	return false
}

// ResolvedDataKeys returns the series keys to render: the explicit
// dataKeys when provided, otherwise the numeric columns of the first
// record, sorted for stable output.
func (c ChartPayload) ResolvedDataKeys() []string {
	if len(c.DataKeys) > 0 {
		return c.DataKeys
	}
	if len(c.Data) == 0 {
		return nil
	}
	var keys []string
	for k, v := range c.Data[0] {
		switch v.(type) {
		case float64, int, int64, json.Number:
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidChart(t *testing.T) {
	req := require.New(t)

	tests := []struct {
		name  string
		chart ChartPayload
		valid bool
	}{
		{
			name:  "Valid bar chart",
			chart: ChartPayload{Type: "bar", Title: "Q1", Data: []map[string]any{{"m": 1, "rev": 10}}},
			valid: true,
		},
		{
			name:  "Empty data list is valid",
			chart: ChartPayload{Type: "line", Title: "Empty", Data: []map[string]any{}},
			valid: true,
		},
		{
			name:  "Missing data",
			chart: ChartPayload{Type: "pie", Title: "No data"},
			valid: false,
		},
		{
			name:  "Missing title",
			chart: ChartPayload{Type: "area", Data: []map[string]any{}},
			valid: false,
		},
		{
			name:  "Missing type",
			chart: ChartPayload{Title: "No type", Data: []map[string]any{}},
			valid: false,
		},
		{
			name:  "Unknown type",
			chart: ChartPayload{Type: "scatter", Title: "Nope", Data: []map[string]any{}},
			valid: false,
		},
		{
			name:  "Donut is a known type",
			chart: ChartPayload{Type: "donut", Title: "Split", Data: []map[string]any{}},
			valid: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req.Equal(tt.valid, ValidChart(tt.chart), "chart=%+v", tt.chart)
		})
	}
}

func TestDecodeChart(t *testing.T) {
	req := require.New(t)

	tests := []struct {
		name string
		raw  string
		ok   bool
	}{
		{
			name: "Well formed",
			raw:  `{"type":"bar","title":"Q1","data":[{"m":1,"rev":10}]}`,
			ok:   true,
		},
		{
			name: "Not JSON at all",
			raw:  `{"type":"bar",`,
			ok:   false,
		},
		{
			name: "Data is not list shaped",
			raw:  `{"type":"bar","title":"Q1","data":"oops"}`,
			ok:   false,
		},
		{
			name: "Data is an object",
			raw:  `{"type":"bar","title":"Q1","data":{"m":1}}`,
			ok:   false,
		},
		{
			name: "Null candidate",
			raw:  `null`,
			ok:   false,
		},
		{
			name: "Scalar candidate",
			raw:  `42`,
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := DecodeChart([]byte(tt.raw))
			req.Equal(tt.ok, ok)
		})
	}
}

func TestDecodeChart_KeepsOptionalFields(t *testing.T) {
	req := require.New(t)

	raw := `{"type":"line","title":"Revenue","data":[{"month":"Jan","rev":10}],` +
		`"labels":{"x":"Month","y":"EUR"},"dataKeys":["rev"]}`
	chart, ok := DecodeChart([]byte(raw))
	req.True(ok)
	req.Equal("line", chart.Type)
	req.NotNil(chart.Labels)
	req.Equal("Month", chart.Labels.X)
	req.Equal([]string{"rev"}, chart.DataKeys)
}

func TestResolvedDataKeys(t *testing.T) {
	req := require.New(t)

	explicit := ChartPayload{DataKeys: []string{"rev"}}
	req.Equal([]string{"rev"}, explicit.ResolvedDataKeys())

	derived, ok := DecodeChart([]byte(`{"type":"bar","title":"Q1","data":[{"month":"Jan","rev":10,"cost":4}]}`))
	req.True(ok)
	req.Equal([]string{"cost", "rev"}, derived.ResolvedDataKeys())

	empty := ChartPayload{Data: []map[string]any{}}
	req.Nil(empty.ResolvedDataKeys())
}

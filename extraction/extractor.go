// Package extraction pulls embedded chart payloads out of assistant
// free text. Two fenced encodings are recognized: blocks tagged as
// chart blocks, and generic json blocks whose decoded shape looks like
// a chart. Decode failures are swallowed and logged, never propagated.
package extraction

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"syncpay-insights/domain"
)

var (
	chartBlockRe = regexp.MustCompile("(?s)```chart\\s*(.*?)```")
	jsonBlockRe  = regexp.MustCompile("(?s)```json\\s*(.*?)```")
)

// Result is the outcome of one extraction pass: the text with every
// recognized chart-bearing block removed, and the validated payloads in
// the order they appeared (chart-tagged blocks first, then json blocks).
type Result struct {
	CleanText string
	Charts    []domain.ChartPayload
}

type Extractor struct {
	log *slog.Logger
}

func NewExtractor(log *slog.Logger) *Extractor {
	return &Extractor{log: log}
}

// Extract scans raw assistant text for embedded chart blocks.
// Chart-tagged blocks are always removed from the text, valid or not.
// Generic json blocks are removed only when chart-shaped; ordinary json
// blocks stay untouched in the prose.
func (e *Extractor) Extract(raw string) Result {
	var charts []domain.ChartPayload

	for _, match := range chartBlockRe.FindAllStringSubmatch(raw, -1) {
		payload, ok := domain.DecodeChart([]byte(strings.TrimSpace(match[1])))
		if !ok {
			e.log.Warn(fmt.Sprintf("Dropping malformed chart block (%d bytes)", len(match[1])))
			continue
		}
		charts = append(charts, payload)
	}
	text := chartBlockRe.ReplaceAllString(raw, "")

	for _, match := range jsonBlockRe.FindAllStringSubmatch(raw, -1) {
		body := strings.TrimSpace(match[1])

		var shaped map[string]json.RawMessage
		if err := json.Unmarshal([]byte(body), &shaped); err != nil {
			continue
		}
		if !domain.ChartShaped(shaped) {
			continue
		}

		// Recognized as chart-bearing: the block leaves the text even
		// when full validation rejects the payload.
		text = strings.Replace(text, match[0], "", 1)

		payload, ok := domain.DecodeChart([]byte(body))
		if !ok {
			e.log.Warn(fmt.Sprintf("Dropping chart-shaped json block that failed validation (%d bytes)", len(body)))
			continue
		}
		charts = append(charts, payload)
	}

	return Result{CleanText: strings.TrimSpace(text), Charts: charts}
}

// Package chatapi is the HTTP client for the remote insights assistant.
// The boundary is consumed as-is: one JSON POST per utterance, a
// human-readable message on every failure path, and tolerant decoding
// of the chart list (a bad chart drops, it never fails the response).
package chatapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"syncpay-insights/contract"
	"syncpay-insights/domain"
)

const chatEndpoint = "/api/v1/admin/insights/chat"

type Client struct {
	baseURL string
	token   string
	http    *http.Client
	log     *slog.Logger
}

func NewClient(baseURL, token string, timeout time.Duration, log *slog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

type chatRequest struct {
	Message        string `json:"message"`
	ConversationID string `json:"conversationId,omitempty"`
	IncludeCharts  bool   `json:"includeCharts"`
}

type chatResponse struct {
	Message          string            `json:"message"`
	ConversationID   string            `json:"conversationId"`
	Timestamp        string            `json:"timestamp"`
	ProcessingTimeMs int64             `json:"processingTimeMs"`
	Charts           []json.RawMessage `json:"charts"`
}

type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Send posts one utterance to the assistant endpoint.
func (c *Client) Send(ctx context.Context, req contract.ChatRequest) (contract.ChatResponse, error) {
	body, err := json.Marshal(chatRequest{
		Message:        req.Message,
		ConversationID: req.ConversationID,
		IncludeCharts:  req.IncludeCharts,
	})
	if err != nil {
		return contract.ChatResponse{}, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+chatEndpoint, bytes.NewReader(body))
	if err != nil {
		return contract.ChatResponse{}, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.token)
	}

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		c.log.Warn(fmt.Sprintf("Chat request failed: %v", err))
		return contract.ChatResponse{}, fmt.Errorf("network error, please check your connection")
	}
	defer func() { _ = httpResp.Body.Close() }()

	raw, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return contract.ChatResponse{}, fmt.Errorf("network error, please check your connection")
	}

	if httpResp.StatusCode != http.StatusOK {
		var failure errorResponse
		if err = json.Unmarshal(raw, &failure); err == nil && failure.Message != "" {
			return contract.ChatResponse{}, fmt.Errorf("%s", failure.Message)
		}
		return contract.ChatResponse{}, fmt.Errorf("request failed with status %d", httpResp.StatusCode)
	}

	var decoded chatResponse
	if err = json.Unmarshal(raw, &decoded); err != nil {
		return contract.ChatResponse{}, fmt.Errorf("unexpected response from assistant")
	}

	response := contract.ChatResponse{
		Message:          decoded.Message,
		ConversationID:   decoded.ConversationID,
		Timestamp:        decoded.Timestamp,
		ProcessingTimeMs: decoded.ProcessingTimeMs,
	}
	for _, rawChart := range decoded.Charts {
		chart, ok := domain.DecodeChart(rawChart)
		if !ok {
			c.log.Warn(fmt.Sprintf("Dropping invalid chart from response (%d bytes)", len(rawChart)))
			continue
		}
		response.Charts = append(response.Charts, chart)
	}
	return response, nil
}

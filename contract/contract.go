//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"context"

	"syncpay-insights/domain"
)

// ChatRequest is one outgoing call to the remote insights assistant.
type ChatRequest struct {
	Message        string
	ConversationID string // empty until the first successful exchange
	IncludeCharts  bool
}

// ChatResponse is the remote assistant's answer to one request.
type ChatResponse struct {
	Message          string
	ConversationID   string
	Timestamp        string
	ProcessingTimeMs int64
	Charts           []domain.ChartPayload
}

// ChatTransport is the remote boundary of the engine. Implementations
// return a human-readable error on network failure or non-success
// status; the engine never inspects anything beyond the error message.
type ChatTransport interface {
	Send(ctx context.Context, req ChatRequest) (ChatResponse, error)
}

// MessageSink observes messages as the session store appends them.
// Sinks must not fail the append: errors are the sink's own concern.
type MessageSink interface {
	Consume(message domain.Message)
}

// HistoryRepository is the durable gateway for the conversation
// snapshot and the independently persisted privacy flag.
type HistoryRepository interface {
	Save(messages []domain.Message, conversationID string) error
	Load() (*domain.Snapshot, error)
	Clear() error
	SaveFlag() bool
	SetSaveFlag(enabled bool) error
}

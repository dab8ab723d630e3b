// Package domain contains core concepts of the insights session engine.
// This file defines the conversation Message and its metadata.
// Messages are immutable except for status and metadata, which change
// only through the session store's explicit update operations.
package domain

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// MessageStatus tracks the delivery state of a user message.
// Meaningful only for RoleUser; assistant messages carry none.
type MessageStatus string

const (
	StatusSending MessageStatus = "sending"
	StatusSent    MessageStatus = "sent"
	StatusError   MessageStatus = "error"
)

// Metadata carries structured extras attached to a message.
type Metadata struct {
	Charts           []ChartPayload `json:"charts,omitempty"`
	InsightType      string         `json:"insightType,omitempty"`
	ProcessingTimeMs int64          `json:"processingTimeMs,omitempty"`
}

// Empty reports whether the metadata holds nothing worth keeping.
func (m Metadata) Empty() bool {
	return len(m.Charts) == 0 && m.InsightType == "" && m.ProcessingTimeMs == 0
}

// Message represents one turn of the conversation.
type Message struct {
	ID        uuid.UUID     `json:"id"`
	Role      Role          `json:"role"`
	Content   string        `json:"content"`
	Timestamp time.Time     `json:"timestamp"`
	Status    MessageStatus `json:"status,omitempty"`
	Metadata  *Metadata     `json:"metadata,omitempty"`
}

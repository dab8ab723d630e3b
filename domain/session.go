package domain

import "time"

// Snapshot is the durable form of a conversation: the ordered message
// log, the remote conversation binding, and the instant it was written.
type Snapshot struct {
	Messages       []Message `json:"messages"`
	ConversationID string    `json:"conversationId,omitempty"`
	SavedAt        time.Time `json:"savedAt"`
}

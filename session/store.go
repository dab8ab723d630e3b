// Package session owns the mutable conversation state: the ordered
// message log, the remote conversation binding, the loading and error
// flags, and the privacy toggle gating durable persistence. The store
// is the single mutable resource of the engine; it is written only by
// the send orchestrator and by direct user actions.
package session

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"syncpay-insights/contract"
	"syncpay-insights/domain"
)

type Store struct {
	mu      sync.Mutex
	log     *slog.Logger
	history contract.HistoryRepository
	sinks   []contract.MessageSink

	messages       []domain.Message
	conversationID string
	loading        bool
	lastError      string
	saveHistory    bool
}

// NewStore creates an empty session. The privacy flag is restored from
// its independently persisted slot and defaults to enabled.
func NewStore(history contract.HistoryRepository, log *slog.Logger) *Store {
	return &Store{
		log:         log,
		history:     history,
		saveHistory: history.SaveFlag(),
	}
}

// AddSink registers an observer notified after every append.
func (s *Store) AddSink(sinks ...contract.MessageSink) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sinks = append(s.sinks, sinks...)
}

// AddMessage creates a message with a fresh id and the current instant,
// sanitizes its metadata, appends it to the log, and persists when the
// privacy flag allows. It always succeeds.
func (s *Store) AddMessage(role domain.Role, content string, status domain.MessageStatus, metadata *domain.Metadata) domain.Message {
	if role != domain.RoleUser {
		status = ""
	}
	message := domain.Message{
		ID:        uuid.New(),
		Role:      role,
		Content:   content,
		Timestamp: time.Now().UTC(),
		Status:    status,
		Metadata:  sanitizeMetadata(metadata),
	}

	s.mu.Lock()
	s.messages = append(s.messages, message)
	s.persistLocked()
	sinks := s.sinks
	s.mu.Unlock()

	for _, sink := range sinks {
		sink.Consume(message)
	}
	return message
}

// UpdateMessageStatus replaces the status of the matching message.
// Unknown ids are a no-op: a late reconciliation against a cleared
// session must stay harmless.
func (s *Store) UpdateMessageStatus(id uuid.UUID, status domain.MessageStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.messages {
		if s.messages[i].ID == id {
			s.messages[i].Status = status
			s.persistLocked()
			return
		}
	}
}

// UpdateMessageMetadata shallow-merges sanitized metadata into the
// matching message. Unknown ids are a no-op.
func (s *Store) UpdateMessageMetadata(id uuid.UUID, metadata domain.Metadata) {
	sanitized := sanitizeMetadata(&metadata)
	if sanitized == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.messages {
		if s.messages[i].ID != id {
			continue
		}
		merged := domain.Metadata{}
		if s.messages[i].Metadata != nil {
			merged = *s.messages[i].Metadata
		}
		if sanitized.Charts != nil {
			merged.Charts = sanitized.Charts
		}
		if sanitized.InsightType != "" {
			merged.InsightType = sanitized.InsightType
		}
		if sanitized.ProcessingTimeMs != 0 {
			merged.ProcessingTimeMs = sanitized.ProcessingTimeMs
		}
		s.messages[i].Metadata = &merged
		s.persistLocked()
		return
	}
}

// Clear empties the log, drops the conversation binding and any active
// error, and purges the durable record regardless of the privacy flag.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = nil
	s.conversationID = ""
	s.lastError = ""
	if err := s.history.Clear(); err != nil {
		s.log.Error(fmt.Sprintf("Failed to purge history record: %v", err))
	}
}

// SetConversationID binds the session to a remote conversation.
func (s *Store) SetConversationID(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conversationID = id
	s.persistLocked()
}

func (s *Store) ConversationID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conversationID
}

func (s *Store) SetLoading(loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = loading
}

func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// SetError overwrites the single user-visible error slot.
// An empty message clears it.
func (s *Store) SetError(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastError = message
}

func (s *Store) Error() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastError
}

// SetSaveHistory toggles the privacy flag. Disabling purges the durable
// record immediately; enabling persists the current in-memory session
// if it has any messages.
func (s *Store) SetSaveHistory(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saveHistory = enabled
	if err := s.history.SetSaveFlag(enabled); err != nil {
		s.log.Error(fmt.Sprintf("Failed to persist save-history flag: %v", err))
	}
	if !enabled {
		if err := s.history.Clear(); err != nil {
			s.log.Error(fmt.Sprintf("Failed to purge history record: %v", err))
		}
		return
	}
	if len(s.messages) > 0 {
		s.persistLocked()
	}
}

func (s *Store) SaveHistory() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveHistory
}

// LoadHistory rehydrates the session from the durable record. The
// in-memory log is replaced wholesale, never merged. A disabled privacy
// flag or an absent/expired record leaves the session untouched.
func (s *Store) LoadHistory() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.saveHistory {
		return
	}
	snapshot, err := s.history.Load()
	if err != nil {
		s.log.Error(fmt.Sprintf("Failed to load history, starting empty: %v", err))
		return
	}
	if snapshot == nil || len(snapshot.Messages) == 0 {
		return
	}
	s.messages = snapshot.Messages
	s.conversationID = snapshot.ConversationID
}

// Restore replaces the session content outright, persisting when allowed.
func (s *Store) Restore(messages []domain.Message, conversationID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = messages
	s.conversationID = conversationID
	s.persistLocked()
}

// Messages returns a copy of the ordered log.
func (s *Store) Messages() []domain.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := make([]domain.Message, len(s.messages))
	copy(copied, s.messages)
	return copied
}

// HasCharts reports whether the message carries metadata charts.
func (s *Store) HasCharts(id uuid.UUID) bool {
	return len(s.ChartsByMessage(id)) > 0
}

// ChartsByMessage returns the metadata charts of the matching message.
func (s *Store) ChartsByMessage(id uuid.UUID) []domain.ChartPayload {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.messages {
		if s.messages[i].ID == id && s.messages[i].Metadata != nil {
			return s.messages[i].Metadata.Charts
		}
	}
	return nil
}

// persistLocked writes the snapshot when the privacy flag allows.
// Losing durability is acceptable, crashing the session is not, so I/O
// failures are logged and swallowed here.
func (s *Store) persistLocked() {
	if !s.saveHistory {
		return
	}
	copied := make([]domain.Message, len(s.messages))
	copy(copied, s.messages)
	if err := s.history.Save(copied, s.conversationID); err != nil {
		s.log.Error(fmt.Sprintf("Failed to save history: %v", err))
	}
}

// sanitizeMetadata drops invalid charts and collapses to nil when
// nothing valid remains, so empty metadata never reaches the log.
func sanitizeMetadata(metadata *domain.Metadata) *domain.Metadata {
	if metadata == nil {
		return nil
	}
	sanitized := domain.Metadata{
		InsightType:      metadata.InsightType,
		ProcessingTimeMs: metadata.ProcessingTimeMs,
	}
	valid := lo.Filter(metadata.Charts, func(chart domain.ChartPayload, _ int) bool {
		return domain.ValidChart(chart)
	})
	if len(valid) > 0 {
		sanitized.Charts = valid
	}
	if sanitized.Empty() {
		return nil
	}
	return &sanitized
}

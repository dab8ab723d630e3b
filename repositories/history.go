package repositories

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/dgraph-io/badger/v4"

	"syncpay-insights/domain"
)

const (
	historyKey  = "insights:history"
	saveFlagKey = "insights:save_history"
)

// HistoryRepository persists the conversation snapshot in BadgerDB
// under a single well-known key. Records carry a bounded lifetime: a
// badger entry TTL plus an explicit savedAt check on load, so an
// expired snapshot is treated as absent even if badger has not yet
// reclaimed it (lazy expiry, no background sweep).
type HistoryRepository struct {
	db  *badger.DB
	log *slog.Logger
	ttl time.Duration
	now func() time.Time
}

func NewHistoryRepository(db *badger.DB, log *slog.Logger, ttl time.Duration) *HistoryRepository {
	return &HistoryRepository{db: db, log: log, ttl: ttl, now: time.Now}
}

// Save overwrites the durable snapshot with the current message log and
// conversation binding, stamped with the current instant.
func (r *HistoryRepository) Save(messages []domain.Message, conversationID string) error {
	snapshot := domain.Snapshot{
		Messages:       messages,
		ConversationID: conversationID,
		SavedAt:        r.now().UTC(),
	}
	bytes, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}
	return r.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry([]byte(historyKey), bytes).WithTTL(r.ttl)
		return txn.SetEntry(entry)
	})
}

// Load returns the stored snapshot, or nil when there is none. Expired
// and corrupt records are deleted and reported as absent: durable
// history is a best-effort cache, never a reason to fail the caller.
func (r *HistoryRepository) Load() (*domain.Snapshot, error) {
	var bytes []byte
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(historyKey))
		if err != nil {
			return err
		}
		bytes, err = item.ValueCopy(nil)
		return err
	})
	if err == badger.ErrKeyNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var snapshot domain.Snapshot
	if err = json.Unmarshal(bytes, &snapshot); err != nil {
		r.log.Warn(fmt.Sprintf("Corrupt history record, clearing slot: %v", err))
		return nil, r.Clear()
	}

	if r.now().Sub(snapshot.SavedAt) > r.ttl {
		r.log.Debug(fmt.Sprintf("History record expired (saved %s), deleting", snapshot.SavedAt))
		return nil, r.Clear()
	}
	return &snapshot, nil
}

// Clear deletes the snapshot unconditionally.
func (r *HistoryRepository) Clear() error {
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(historyKey))
	})
}

// SaveFlag reads the independently persisted privacy toggle.
// Missing or unreadable values default to enabled.
func (r *HistoryRepository) SaveFlag() bool {
	enabled := true
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(saveFlagKey))
		if err != nil {
			return err
		}
		return item.Value(func(value []byte) error {
			parsed, err := strconv.ParseBool(string(value))
			if err != nil {
				return err
			}
			enabled = parsed
			return nil
		})
	})
	if err != nil && err != badger.ErrKeyNotFound {
		r.log.Warn(fmt.Sprintf("Could not read save-history flag, defaulting to enabled: %v", err))
	}
	return enabled
}

// SetSaveFlag persists the privacy toggle. The flag itself never expires.
func (r *HistoryRepository) SetSaveFlag(enabled bool) error {
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(saveFlagKey), []byte(strconv.FormatBool(enabled)))
	})
}

// Package search maintains a full-text index over the session
// transcript. The index lives in memory and is rebuilt with the
// session: it consumes appends as a message sink and is reset when the
// conversation is cleared.
package search

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/blugelabs/bluge"

	"syncpay-insights/domain"
)

// Hit is one search result, best first.
type Hit struct {
	ID      string
	Role    string
	Content string
	Score   float64
}

type Index struct {
	mu     sync.Mutex
	writer *bluge.Writer
	log    *slog.Logger
}

func NewIndex(log *slog.Logger) (*Index, error) {
	writer, err := bluge.OpenWriter(bluge.InMemoryOnlyConfig())
	if err != nil {
		return nil, fmt.Errorf("could not open search index: %w", err)
	}
	return &Index{writer: writer, log: log}, nil
}

// Consume indexes an appended message. Implements contract.MessageSink:
// indexing failures are logged, never surfaced to the store.
func (i *Index) Consume(message domain.Message) {
	doc := bluge.NewDocument(message.ID.String()).
		AddField(bluge.NewTextField("content", message.Content).StoreValue()).
		AddField(bluge.NewKeywordField("role", string(message.Role)).StoreValue()).
		AddField(bluge.NewDateTimeField("at", message.Timestamp))

	i.mu.Lock()
	defer i.mu.Unlock()
	if err := i.writer.Update(doc.ID(), doc); err != nil {
		i.log.Error(fmt.Sprintf("Failed to index message %s: %v", message.ID, err))
	}
}

// Search runs a match query over message content, optionally filtered
// by role.
func (i *Index) Search(ctx context.Context, query *Query) ([]Hit, error) {
	i.mu.Lock()
	writer := i.writer
	i.mu.Unlock()

	reader, err := writer.Reader()
	if err != nil {
		return nil, err
	}
	defer func() { _ = reader.Close() }()

	match := bluge.NewMatchQuery(query.Terms).SetField("content")
	var q bluge.Query = match
	if query.Role != "" {
		boolean := bluge.NewBooleanQuery()
		boolean.AddMust(match)
		boolean.AddMust(bluge.NewTermQuery(query.Role).SetField("role"))
		q = boolean
	}

	iterator, err := reader.Search(ctx, bluge.NewTopNSearch(query.Limit, q))
	if err != nil {
		return nil, err
	}

	var hits []Hit
	for {
		next, err := iterator.Next()
		if err != nil {
			return nil, err
		}
		if next == nil {
			break
		}
		hit := Hit{Score: next.Score}
		err = next.VisitStoredFields(func(field string, value []byte) bool {
			switch field {
			case "_id":
				hit.ID = string(value)
			case "content":
				hit.Content = string(value)
			case "role":
				hit.Role = string(value)
			}
			return true
		})
		if err != nil {
			return nil, err
		}
		hits = append(hits, hit)
	}
	return hits, nil
}

// Reset drops every indexed document by swapping in a fresh writer.
func (i *Index) Reset() error {
	writer, err := bluge.OpenWriter(bluge.InMemoryOnlyConfig())
	if err != nil {
		return err
	}
	i.mu.Lock()
	old := i.writer
	i.writer = writer
	i.mu.Unlock()
	return old.Close()
}

// Close releases the underlying writer.
func (i *Index) Close() error {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.writer.Close()
}

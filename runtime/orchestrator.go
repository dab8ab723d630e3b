// Package runtime drives the request lifecycle of an outgoing
// utterance: validation, optimistic insert, the single outstanding
// transport call, reconciliation, and the one-shot retry path. It
// contains no domain rules beyond the send protocol itself.
package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"syncpay-insights/contract"
	"syncpay-insights/domain"
	"syncpay-insights/errors"
	"syncpay-insights/intent"
	"syncpay-insights/session"
)

const (
	MinUtteranceLen = 2
	MaxUtteranceLen = 1000
)

type Orchestrator struct {
	mu         sync.Mutex
	log        *slog.Logger
	store      *session.Store
	transport  contract.ChatTransport
	classifier *intent.Classifier

	errorDismissAfter time.Duration
	thinkingHintAfter time.Duration
	onThinking        func()

	sending       bool
	lastUtterance string
	lastMessageID uuid.UUID
	errorTimer    Timer
	thinkingTimer Timer
}

func NewOrchestrator(log *slog.Logger, store *session.Store, transport contract.ChatTransport,
	classifier *intent.Classifier, errorDismissAfter, thinkingHintAfter time.Duration) *Orchestrator {
	return &Orchestrator{
		log:               log,
		store:             store,
		transport:         transport,
		classifier:        classifier,
		errorDismissAfter: errorDismissAfter,
		thinkingHintAfter: thinkingHintAfter,
	}
}

// SetThinkingHint registers the callback fired once when a remote call
// has been outstanding longer than the configured delay.
func (o *Orchestrator) SetThinkingHint(fn func()) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.onThinking = fn
}

// Send runs the full protocol for one utterance. Rejected input causes
// no state change; a transport failure marks the optimistic message and
// arms the retry path. Only one call may be outstanding at a time.
func (o *Orchestrator) Send(ctx context.Context, utterance string) error {
	trimmed := strings.TrimSpace(utterance)
	if length := len([]rune(trimmed)); length < MinUtteranceLen {
		return errors.ErrUtteranceTooShort
	} else if length > MaxUtteranceLen {
		return errors.ErrUtteranceTooLong
	}

	if !o.beginSend() {
		return errors.ErrSendInFlight
	}
	defer o.endSend()

	classification := o.classifier.Classify(trimmed)
	o.log.Debug(fmt.Sprintf("Utterance classified: lang=%s charts=%v suggested=%s",
		classification.Language, classification.Detected, classification.SuggestedType))

	message := o.store.AddMessage(domain.RoleUser, trimmed, domain.StatusSending, nil)

	o.mu.Lock()
	o.lastUtterance = trimmed
	o.lastMessageID = message.ID
	o.mu.Unlock()

	o.clearError()
	o.store.SetLoading(true)
	o.scheduleThinkingHint()

	response, err := o.transport.Send(ctx, contract.ChatRequest{
		Message:        trimmed,
		ConversationID: o.store.ConversationID(),
		IncludeCharts:  classification.Detected,
	})
	if err != nil {
		o.store.UpdateMessageStatus(message.ID, domain.StatusError)
		o.fail(err)
		return err
	}

	o.reconcile(message.ID, response)
	return nil
}

// Retry re-enters the remote call with the previously stored utterance.
// No new user message is inserted; on success the failed message is
// marked sent and the assistant reply appended.
func (o *Orchestrator) Retry(ctx context.Context) error {
	o.mu.Lock()
	utterance := o.lastUtterance
	messageID := o.lastMessageID
	o.mu.Unlock()
	if utterance == "" {
		return errors.ErrNothingToRetry
	}

	if !o.beginSend() {
		return errors.ErrSendInFlight
	}
	defer o.endSend()

	classification := o.classifier.Classify(utterance)

	o.clearError()
	o.store.SetLoading(true)
	o.scheduleThinkingHint()

	response, err := o.transport.Send(ctx, contract.ChatRequest{
		Message:        utterance,
		ConversationID: o.store.ConversationID(),
		IncludeCharts:  classification.Detected,
	})
	if err != nil {
		o.fail(err)
		return err
	}

	o.reconcile(messageID, response)
	return nil
}

// DismissError clears the error slot and the pending auto-dismiss.
func (o *Orchestrator) DismissError() {
	o.clearError()
}

func (o *Orchestrator) clearError() {
	o.errorTimer.Cancel()
	o.store.SetError("")
}

// beginSend gates re-entrancy: exactly one outstanding call per
// orchestrator instance.
func (o *Orchestrator) beginSend() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.sending {
		return false
	}
	o.sending = true
	return true
}

// endSend is the guaranteed terminal cleanup: loading flag, thinking
// hint, and the re-entrancy guard are released on every path.
func (o *Orchestrator) endSend() {
	o.thinkingTimer.Cancel()
	o.store.SetLoading(false)
	o.mu.Lock()
	o.sending = false
	o.mu.Unlock()
}

func (o *Orchestrator) scheduleThinkingHint() {
	o.mu.Lock()
	hint := o.onThinking
	o.mu.Unlock()
	if hint == nil {
		return
	}
	o.thinkingTimer.Schedule(o.thinkingHintAfter, hint)
}

// fail records the transport failure in the single error slot and arms
// the auto-dismiss. A superseding error reschedules the timer.
func (o *Orchestrator) fail(err error) {
	message := err.Error()
	o.log.Warn(fmt.Sprintf("Send failed: %s", message))
	o.store.SetError(message)
	o.errorTimer.Schedule(o.errorDismissAfter, func() {
		o.store.SetError("")
	})
}

// reconcile applies a successful response: first-exchange binding of
// the conversation id, sent status on the user message, and the
// assistant reply with its transport-supplied charts.
func (o *Orchestrator) reconcile(userMessageID uuid.UUID, response contract.ChatResponse) {
	if o.store.ConversationID() == "" && response.ConversationID != "" {
		o.store.SetConversationID(response.ConversationID)
	}
	o.store.UpdateMessageStatus(userMessageID, domain.StatusSent)
	o.store.AddMessage(domain.RoleAssistant, response.Message, "", &domain.Metadata{
		Charts:           response.Charts,
		ProcessingTimeMs: response.ProcessingTimeMs,
	})
	if response.ProcessingTimeMs > 0 {
		o.log.Debug(fmt.Sprintf("Assistant replied in %dms", response.ProcessingTimeMs))
	}
}

package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"syncpay-insights/contract"
	"syncpay-insights/domain"
	"syncpay-insights/errors"
	"syncpay-insights/intent"
	"syncpay-insights/mocks"
	"syncpay-insights/session"
)

type fixture struct {
	store        *session.Store
	transport    *mocks.MockChatTransport
	orchestrator *Orchestrator
}

func newFixture(t *testing.T, errorDismissAfter, thinkingHintAfter time.Duration) *fixture {
	t.Helper()
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	ctrl := gomock.NewController(t)

	history := mocks.NewMockHistoryRepository(ctrl)
	history.EXPECT().SaveFlag().Return(true).AnyTimes()
	history.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	history.EXPECT().Clear().Return(nil).AnyTimes()

	classifier, err := intent.NewClassifier(log)
	require.NoError(t, err)

	store := session.NewStore(history, log)
	transport := mocks.NewMockChatTransport(ctrl)
	return &fixture{
		store:        store,
		transport:    transport,
		orchestrator: NewOrchestrator(log, store, transport, classifier, errorDismissAfter, thinkingHintAfter),
	}
}

func TestSend_SuccessfulExchange(t *testing.T) {
	req := require.New(t)
	f := newFixture(t, time.Minute, time.Minute)

	f.transport.EXPECT().
		Send(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, request contract.ChatRequest) (contract.ChatResponse, error) {
			// The user message must already be visible and optimistic
			// while the call is outstanding.
			messages := f.store.Messages()
			req.Len(messages, 1)
			req.Equal(domain.StatusSending, messages[0].Status)
			req.True(f.store.Loading())

			req.Equal("What's our revenue trend?", request.Message)
			req.Empty(request.ConversationID)
			req.True(request.IncludeCharts)
			return contract.ChatResponse{
				Message:          "Revenue is trending up.",
				ConversationID:   "abc",
				ProcessingTimeMs: 1200,
				Charts: []domain.ChartPayload{
					{Type: "line", Title: "Revenue", Data: []map[string]any{{"m": "Jan", "rev": 10.0}}},
				},
			}, nil
		})

	req.NoError(f.orchestrator.Send(context.Background(), "What's our revenue trend?"))

	req.Equal("abc", f.store.ConversationID())
	req.False(f.store.Loading())
	req.Empty(f.store.Error())

	messages := f.store.Messages()
	req.Len(messages, 2)
	req.Equal(domain.StatusSent, messages[0].Status)
	req.Equal(domain.RoleAssistant, messages[1].Role)
	req.Equal("Revenue is trending up.", messages[1].Content)
	req.NotNil(messages[1].Metadata)
	req.Len(messages[1].Metadata.Charts, 1)
	req.Equal(int64(1200), messages[1].Metadata.ProcessingTimeMs)
}

func TestSend_RejectsOutOfBoundsInput(t *testing.T) {
	req := require.New(t)
	f := newFixture(t, time.Minute, time.Minute)

	err := f.orchestrator.Send(context.Background(), " h ")
	req.ErrorIs(err, errors.ErrUtteranceTooShort)

	err = f.orchestrator.Send(context.Background(), strings.Repeat("a", MaxUtteranceLen+1))
	req.ErrorIs(err, errors.ErrUtteranceTooLong)

	// Rejected input leaves the session untouched.
	req.Empty(f.store.Messages())
	req.Empty(f.store.Error())
	req.False(f.store.Loading())
}

func TestSend_TransportFailure(t *testing.T) {
	req := require.New(t)
	f := newFixture(t, time.Minute, time.Minute)

	f.transport.EXPECT().
		Send(gomock.Any(), gomock.Any()).
		Return(contract.ChatResponse{}, fmt.Errorf("network error, please check your connection"))

	err := f.orchestrator.Send(context.Background(), "show me a chart")
	req.Error(err)

	messages := f.store.Messages()
	req.Len(messages, 1)
	req.Equal(domain.StatusError, messages[0].Status)
	req.Equal("network error, please check your connection", f.store.Error())
	req.False(f.store.Loading())
}

func TestSend_ErrorAutoDismisses(t *testing.T) {
	req := require.New(t)
	f := newFixture(t, 30*time.Millisecond, time.Minute)

	f.transport.EXPECT().
		Send(gomock.Any(), gomock.Any()).
		Return(contract.ChatResponse{}, fmt.Errorf("boom"))

	req.Error(f.orchestrator.Send(context.Background(), "show me a chart"))
	req.Equal("boom", f.store.Error())

	req.Eventually(func() bool {
		return f.store.Error() == ""
	}, time.Second, 5*time.Millisecond)
}

func TestSend_RejectsConcurrentCall(t *testing.T) {
	req := require.New(t)
	f := newFixture(t, time.Minute, time.Minute)

	entered := make(chan struct{})
	release := make(chan struct{})
	f.transport.EXPECT().
		Send(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, contract.ChatRequest) (contract.ChatResponse, error) {
			close(entered)
			<-release
			return contract.ChatResponse{Message: "done"}, nil
		})

	firstDone := make(chan error, 1)
	go func() {
		firstDone <- f.orchestrator.Send(context.Background(), "first question")
	}()

	<-entered
	err := f.orchestrator.Send(context.Background(), "second question")
	req.ErrorIs(err, errors.ErrSendInFlight)

	close(release)
	req.NoError(<-firstDone)
	req.Len(f.store.Messages(), 2)
}

func TestRetry_ReusesFailedUtterance(t *testing.T) {
	req := require.New(t)
	f := newFixture(t, time.Minute, time.Minute)

	f.transport.EXPECT().
		Send(gomock.Any(), gomock.Any()).
		Return(contract.ChatResponse{}, fmt.Errorf("boom"))
	req.Error(f.orchestrator.Send(context.Background(), "compare credit and debit"))

	f.transport.EXPECT().
		Send(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, request contract.ChatRequest) (contract.ChatResponse, error) {
			req.Equal("compare credit and debit", request.Message)
			req.True(request.IncludeCharts)
			return contract.ChatResponse{Message: "Here you go.", ConversationID: "abc"}, nil
		})

	req.NoError(f.orchestrator.Retry(context.Background()))

	// No duplicate user message, and the failed one is now sent.
	messages := f.store.Messages()
	req.Len(messages, 2)
	req.Equal(domain.RoleUser, messages[0].Role)
	req.Equal(domain.StatusSent, messages[0].Status)
	req.Equal(domain.RoleAssistant, messages[1].Role)
	req.Empty(f.store.Error())
}

func TestRetry_NothingToRetry(t *testing.T) {
	req := require.New(t)
	f := newFixture(t, time.Minute, time.Minute)

	err := f.orchestrator.Retry(context.Background())
	req.ErrorIs(err, errors.ErrNothingToRetry)
}

func TestSend_ThinkingHintFiresOnSlowCall(t *testing.T) {
	req := require.New(t)
	f := newFixture(t, time.Minute, 20*time.Millisecond)

	fired := make(chan struct{}, 1)
	f.orchestrator.SetThinkingHint(func() {
		fired <- struct{}{}
	})

	f.transport.EXPECT().
		Send(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, contract.ChatRequest) (contract.ChatResponse, error) {
			select {
			case <-fired:
			case <-time.After(time.Second):
				t.Error("thinking hint never fired")
			}
			return contract.ChatResponse{Message: "slow reply"}, nil
		})

	req.NoError(f.orchestrator.Send(context.Background(), "show me a chart"))
}

func TestSend_ThinkingHintCancelledOnFastCall(t *testing.T) {
	req := require.New(t)
	f := newFixture(t, time.Minute, 50*time.Millisecond)

	fired := false
	f.orchestrator.SetThinkingHint(func() { fired = true })

	f.transport.EXPECT().
		Send(gomock.Any(), gomock.Any()).
		Return(contract.ChatResponse{Message: "fast reply"}, nil)

	req.NoError(f.orchestrator.Send(context.Background(), "show me a chart"))

	time.Sleep(100 * time.Millisecond)
	req.False(fired)
}

func TestDismissError(t *testing.T) {
	req := require.New(t)
	f := newFixture(t, time.Hour, time.Minute)

	f.transport.EXPECT().
		Send(gomock.Any(), gomock.Any()).
		Return(contract.ChatResponse{}, fmt.Errorf("boom"))
	req.Error(f.orchestrator.Send(context.Background(), "show me a chart"))
	req.Equal("boom", f.store.Error())

	f.orchestrator.DismissError()
	req.Empty(f.store.Error())
}

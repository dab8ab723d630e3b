package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/gookit/color"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"

	"syncpay-insights/domain"
	"syncpay-insights/errors"
	"syncpay-insights/extraction"
	"syncpay-insights/infrastructure/chatapi"
	"syncpay-insights/intent"
	"syncpay-insights/internal"
	"syncpay-insights/projection"
	"syncpay-insights/repositories"
	"syncpay-insights/runtime"
	"syncpay-insights/search"
	"syncpay-insights/session"
)

var suggestedPrompts = []string{
	"Show me revenue trend for last 6 months",
	"What's our user growth rate?",
	"Analyze transaction success rates",
	"Suggest ways to increase revenue",
	"Show peak transaction hours",
	"What are the common transaction failures?",
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// run initializes all components, drives the console loop, and centralizes
// error reporting so deferred cleanup (database close) always executes.
func run() error {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	// 2. Database (BadgerDB)
	db, err := badger.Open(badger.DefaultOptions(config.BadgerFilepath).
		WithLoggingLevel(badger.WARNING))
	if err != nil {
		return fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		log.Info("Closing BadgerDB...")
		_ = db.Close()
	}()

	// 3. Engine wiring
	history := repositories.NewHistoryRepository(db, log, config.HistoryTTL)
	store := session.NewStore(history, log)

	index, err := search.NewIndex(log)
	if err != nil {
		return err
	}
	defer func() { _ = index.Close() }()
	store.AddSink(index)

	classifier, err := intent.NewClassifier(log)
	if err != nil {
		return fmt.Errorf("classifier build failed: %w", err)
	}

	transport := chatapi.NewClient(config.APIBaseURL, config.APIToken, config.RequestTimeout, log)
	orchestrator := runtime.NewOrchestrator(log, store, transport, classifier,
		config.ErrorDismissAfter, config.ThinkingHintAfter)
	orchestrator.SetThinkingHint(func() {
		color.Gray.Println("Assistant is still thinking...")
	})
	extractor := extraction.NewExtractor(log)

	// 4. Rehydrate previous session (within TTL, privacy flag allowing)
	store.LoadHistory()
	for _, message := range store.Messages() {
		index.Consume(message)
	}

	// 5. Context & Signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 6. Optional storage inspector
	if config.DebugPort > 0 {
		internal.StartDebugServer(db, config.DebugPort, "/inspect", historyMapper, func() map[string]any {
			return map[string]any{
				"Messages":     len(store.Messages()),
				"Conversation": store.ConversationID(),
				"Duration":     projection.SessionDuration(store.Messages(), time.Now()),
			}
		})
		log.Info(fmt.Sprintf("Inspector available at http://localhost:%d/inspect", config.DebugPort))
	}

	console := &console{
		config:       config,
		store:        store,
		orchestrator: orchestrator,
		extractor:    extractor,
		index:        index,
	}
	return console.loop(ctx)
}

type console struct {
	config       internal.Config
	store        *session.Store
	orchestrator *runtime.Orchestrator
	extractor    *extraction.Extractor
	index        *search.Index
}

func (c *console) loop(ctx context.Context) error {
	c.printWelcome()

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 64*1024), 64*1024)
	c.prompt()

	for scanner.Scan() {
		if ctx.Err() != nil {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			c.prompt()
			continue
		}
		if strings.HasPrefix(line, "/") {
			if quit := c.handleCommand(ctx, line); quit {
				return nil
			}
			c.prompt()
			continue
		}

		c.send(ctx, line)
		c.prompt()
	}
	return scanner.Err()
}

func (c *console) printWelcome() {
	color.Cyan.Println("SyncPay Insights — ask anything about your business data.")
	color.Gray.Println("Commands: /retry /clear /restart /history on|off /find <terms> /show /quit")
	if len(c.store.Messages()) == 0 {
		fmt.Println("Try one of these:")
		for _, prompt := range suggestedPrompts {
			fmt.Printf("  - %s\n", prompt)
		}
		return
	}
	fmt.Printf("Restored %d messages (session %s)\n",
		len(c.store.Messages()), projection.SessionDuration(c.store.Messages(), time.Now()))
}

func (c *console) prompt() {
	color.Green.Print("> ")
}

func (c *console) send(ctx context.Context, line string) {
	if threshold := c.config.CharWarningThreshold; len([]rune(line)) > threshold {
		color.Yellow.Printf("Long message: %d/%d characters\n", len([]rune(line)), runtime.MaxUtteranceLen)
	}

	err := c.orchestrator.Send(ctx, line)
	switch err {
	case nil:
		c.renderLastReply()
	case errors.ErrUtteranceTooShort, errors.ErrUtteranceTooLong:
		color.Yellow.Printf("Keep messages between %d and %d characters.\n",
			runtime.MinUtteranceLen, runtime.MaxUtteranceLen)
	default:
		c.renderError()
	}
}

func (c *console) handleCommand(ctx context.Context, line string) (quit bool) {
	command := strings.Fields(line)[0]
	switch command {
	case "/quit", "/exit":
		return true
	case "/retry":
		switch err := c.orchestrator.Retry(ctx); err {
		case nil:
			color.Gray.Println("Message resent successfully")
			c.renderLastReply()
		case errors.ErrNothingToRetry:
			color.Yellow.Println("Nothing to retry.")
		default:
			c.renderError()
		}
	case "/clear":
		c.clearSession("Chat cleared")
	case "/restart":
		c.clearSession("Conversation restarted")
	case "/history":
		c.toggleHistory(line)
	case "/find":
		c.find(ctx, line)
	case "/show":
		c.renderTranscript()
	default:
		color.Yellow.Printf("Unknown command %s\n", command)
	}
	return false
}

func (c *console) clearSession(notice string) {
	c.store.Clear()
	if err := c.index.Reset(); err != nil {
		color.Yellow.Printf("Search index reset failed: %v\n", err)
	}
	color.Gray.Println(notice)
}

func (c *console) toggleHistory(line string) {
	parts := strings.Fields(line)
	if len(parts) != 2 || (parts[1] != "on" && parts[1] != "off") {
		color.Yellow.Println("Usage: /history on|off")
		return
	}
	enabled := parts[1] == "on"
	c.store.SetSaveHistory(enabled)
	if enabled {
		color.Gray.Println("History saving enabled")
		return
	}
	color.Gray.Println("History saving disabled, stored conversation deleted")
}

func (c *console) find(ctx context.Context, line string) {
	query := search.ParseQuery(line)
	if query.Terms == "" {
		color.Yellow.Println("Usage: /find <terms> [--role user|assistant] [--limit N]")
		return
	}
	hits, err := c.index.Search(ctx, query)
	if err != nil {
		color.Red.Printf("Search failed: %v\n", err)
		return
	}
	if len(hits) == 0 {
		fmt.Println("No matches.")
		return
	}
	for _, hit := range hits {
		color.Cyan.Printf("[%s] ", hit.Role)
		fmt.Println(firstLine(hit.Content))
	}
}

// renderLastReply prints the newest assistant message: chart blocks are
// pulled out of the text at display time, then combined with the
// transport-supplied metadata charts (text-extracted first).
func (c *console) renderLastReply() {
	messages := c.store.Messages()
	if len(messages) == 0 {
		return
	}
	last := messages[len(messages)-1]
	if last.Role != domain.RoleAssistant {
		return
	}

	result := c.extractor.Extract(last.Content)
	charts := result.Charts
	if last.Metadata != nil {
		charts = append(charts, last.Metadata.Charts...)
	}

	color.Cyan.Print("assistant: ")
	fmt.Println(result.CleanText)
	for _, chart := range charts {
		renderChart(chart)
	}
	if last.Metadata != nil && last.Metadata.ProcessingTimeMs > 0 {
		color.Gray.Printf("(answered in %dms)\n", last.Metadata.ProcessingTimeMs)
	}
}

func (c *console) renderError() {
	if message := c.store.Error(); message != "" {
		color.Red.Println(message)
	}
	color.Gray.Println("Type /retry to resend your last message.")
}

func (c *console) renderTranscript() {
	messages := c.store.Messages()
	if len(messages) == 0 {
		fmt.Println("No messages yet.")
		return
	}
	now := time.Now()
	for _, group := range projection.Timeline(messages, now) {
		color.Magenta.Printf("--- %s ---\n", group.Label)
		for _, message := range group.Messages {
			role := color.Cyan
			if message.Role == domain.RoleUser {
				role = color.Green
			}
			role.Printf("%s ", message.Role)
			color.Gray.Printf("(%s", projection.RelativeTime(message.Timestamp, now))
			if message.Status != "" {
				color.Gray.Printf(", %s", message.Status)
			}
			color.Gray.Print(") ")
			fmt.Println(firstLine(message.Content))
		}
	}
	color.Gray.Printf("Session duration: %s\n", projection.SessionDuration(messages, now))
}

// renderChart prints the chart data records as a table; the terminal
// front end renders data, not pixels.
func renderChart(chart domain.ChartPayload) {
	color.Magenta.Printf("%s [%s]\n", chart.Title, chart.Type)
	if len(chart.Data) == 0 {
		color.Gray.Println("(no data points)")
		return
	}

	keys := chart.ResolvedDataKeys()
	var label string
	for k := range chart.Data[0] {
		if !lo.Contains(keys, k) {
			label = k
			break
		}
	}

	headers := keys
	if label != "" {
		headers = append([]string{label}, keys...)
	}
	if chart.Labels != nil && chart.Labels.X != "" && label != "" {
		headers[0] = fmt.Sprintf("%s (%s)", label, chart.Labels.X)
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader(headers)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	for _, record := range chart.Data {
		var row []string
		if label != "" {
			row = append(row, fmt.Sprintf("%v", record[label]))
		}
		for _, key := range keys {
			row = append(row, fmt.Sprintf("%v", record[key]))
		}
		table.Append(row)
	}
	table.Render()
}

func historyMapper(key string, val []byte) internal.InspectRow {
	row := internal.DefaultMapper(key, val)
	var snapshot domain.Snapshot
	if err := json.Unmarshal(val, &snapshot); err != nil {
		return row
	}
	row.Type = "HISTORY"
	row.Detail = fmt.Sprintf("%d messages, conversation %q, saved %s",
		len(snapshot.Messages), snapshot.ConversationID, snapshot.SavedAt.Format(time.RFC822))
	return row
}

func firstLine(content string) string {
	if idx := strings.IndexByte(content, '\n'); idx >= 0 {
		return content[:idx] + " …"
	}
	return content
}

// Package service runs one chat exchange: parse the message, fold it into the
// filter state, ground the assistant on the filtered set and log the turns.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/printcon-atlas/atlas-backend/internal/assistant/domain"
	"github.com/printcon-atlas/atlas-backend/internal/assistant/llm"
	"github.com/printcon-atlas/atlas-backend/internal/assistant/parser"
	"github.com/printcon-atlas/atlas-backend/internal/assistant/summary"
	catalog "github.com/printcon-atlas/atlas-backend/internal/catalog/domain"
	"github.com/printcon-atlas/atlas-backend/internal/dashboard/events"
	"github.com/printcon-atlas/atlas-backend/internal/dashboard/filter"
	"github.com/printcon-atlas/atlas-backend/internal/logging"
)

const (
	MessageUnavailable = "AI assistant unavailable (API key not found)"
	MessageReset       = "Filters reset! Showing all projects."

	errorPreviewLen = 50
)

type Config struct {
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration
}

func DefaultConfig() Config {
	return Config{MaxTokens: 150, Temperature: 0.7, Timeout: 30 * time.Second}
}

type Orchestrator struct {
	gen llm.Generator
	cfg Config
}

// NewOrchestrator builds an orchestrator. A nil gen leaves the assistant
// unavailable while filter commands keep working.
func NewOrchestrator(gen llm.Generator, cfg Config) *Orchestrator {
	def := DefaultConfig()
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = def.MaxTokens
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	return &Orchestrator{gen: gen, cfg: cfg}
}

type Input struct {
	Message string
	State   filter.State
	History []domain.Turn
	Display []domain.Turn
}

type Output struct {
	State         filter.State    `json:"state"`
	History       []domain.Turn   `json:"-"`
	Display       []domain.Turn   `json:"display"`
	Intent        parser.Intent   `json:"intent"`
	FilterApplied bool            `json:"filter_applied"`
	Confirmation  string          `json:"confirmation,omitempty"`
	Summary       summary.Summary `json:"summary"`
	Err           error           `json:"-"`

	// Turns added by this exchange. HistoryTurns is empty when the
	// generator failed.
	HistoryTurns []domain.Turn `json:"-"`
	DisplayTurns []domain.Turn `json:"-"`
}

// Handle never fails: generator errors become an error turn in Display, the
// folded filter state is kept, and History is left untouched.
func (o *Orchestrator) Handle(ctx context.Context, cat *catalog.Catalog, in Input) Output {
	msg := strings.TrimSpace(in.Message)
	if msg == "" {
		return Output{State: in.State, History: in.History, Display: in.Display}
	}

	intent := parser.Parse(msg)
	state, applied, confirmation := Fold(cat, in.State, intent)
	state = events.Reconcile(cat, state)

	sum := summary.Build(filter.Apply(cat, state), state)

	out := Output{
		State:         state,
		History:       in.History,
		Intent:        intent,
		FilterApplied: applied,
		Confirmation:  confirmation,
		Summary:       sum,
	}

	history := domain.Append(in.History, domain.HistoryLimit, domain.UserTurn(msg))
	reply, err := o.generate(ctx, sum, history, msg, confirmation)
	if err != nil {
		out.Err = err
		logging.NewLogger(ctx).LogError("assistant.generate", err)
		out.DisplayTurns = []domain.Turn{domain.UserTurn(msg), domain.ErrorTurn(withConfirmation(confirmation, errorText(err)))}
		out.Display = domain.Append(in.Display, domain.DisplayLimit, out.DisplayTurns...)
		return out
	}

	out.HistoryTurns = []domain.Turn{domain.UserTurn(msg), domain.AssistantTurn(reply)}
	out.History = domain.Append(in.History, domain.HistoryLimit, out.HistoryTurns...)
	out.DisplayTurns = []domain.Turn{domain.UserTurn(msg), domain.AssistantTurn(withConfirmation(confirmation, reply))}
	out.Display = domain.Append(in.Display, domain.DisplayLimit, out.DisplayTurns...)
	return out
}

// Merge applies a finished exchange to a session read after the generator
// returned. The intent is folded again onto state so events dispatched while
// the call was running are kept, and the new turns are appended to history
// and display.
func Merge(cat *catalog.Catalog, out Output, state filter.State, history, display []domain.Turn) (filter.State, []domain.Turn, []domain.Turn) {
	state, _, _ = Fold(cat, state, out.Intent)
	state = events.Reconcile(cat, state)
	if len(out.HistoryTurns) > 0 {
		history = domain.Append(history, domain.HistoryLimit, out.HistoryTurns...)
	}
	if len(out.DisplayTurns) > 0 {
		display = domain.Append(display, domain.DisplayLimit, out.DisplayTurns...)
	}
	return state, history, display
}

func withConfirmation(confirmation, text string) string {
	if confirmation == "" {
		return text
	}
	return confirmation + "\n\n" + text
}

func (o *Orchestrator) generate(ctx context.Context, sum summary.Summary, history []domain.Turn, msg, confirmation string) (string, error) {
	if o.gen == nil {
		return "", domain.ErrAssistantUnavailable
	}

	messages := make([]llm.Message, len(history))
	for i, t := range history {
		messages[i] = llm.Message{Role: t.Role, Content: t.Content}
	}
	if confirmation != "" {
		messages[len(messages)-1].Content = fmt.Sprintf("Filter applied: %s. %s", confirmation, msg)
	}

	cctx, cancel := context.WithTimeout(ctx, o.cfg.Timeout)
	defer cancel()

	reply, err := o.gen.Generate(cctx, llm.Request{
		System:      sum.Context(),
		Messages:    messages,
		MaxTokens:   o.cfg.MaxTokens,
		Temperature: o.cfg.Temperature,
	})
	if errors.Is(err, llm.ErrNoAPIKey) {
		return "", fmt.Errorf("%w: %v", domain.ErrAssistantUnavailable, err)
	}
	return reply, err
}

// Fold applies intent to s. Reset wins over any material or year in the same
// message and restores the catalog's full year span. The search text is kept.
func Fold(cat *catalog.Catalog, s filter.State, intent parser.Intent) (filter.State, bool, string) {
	if intent.Reset {
		minY, maxY := cat.Bounds()
		s.Material = filter.MaterialAll
		s.YearRange = filter.NewYearRange(minY, maxY)
		return s, true, MessageReset
	}

	var applied []string
	if intent.Material != nil {
		s.Material = string(*intent.Material)
		applied = append(applied, "Material: "+s.Material)
	}
	if intent.YearRange != nil {
		s.YearRange = *intent.YearRange
		applied = append(applied, fmt.Sprintf("Years: %d-%d", s.YearRange.Min(), s.YearRange.Max()))
	}
	if len(applied) == 0 {
		return s, false, ""
	}
	return s, true, "Filters applied: " + strings.Join(applied, ", ")
}

func errorText(err error) string {
	if errors.Is(err, domain.ErrAssistantUnavailable) {
		return MessageUnavailable
	}
	text := err.Error()
	if r := []rune(text); len(r) > errorPreviewLen {
		text = string(r[:errorPreviewLen])
	}
	return "AI error: " + text + "..."
}

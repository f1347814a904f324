package journey

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rkapur/pathwise/internal/llm"
	"github.com/rkapur/pathwise/internal/store"
)

// Config holds generation and retry settings for the staged pipeline.
type Config struct {
	// MaxTokens caps each stage completion.
	MaxTokens int

	// Temperature for stage generation. Chat uses the same value.
	Temperature float64

	// ParseRetries is how many times a stage re-invokes the provider
	// after a malformed response before giving up with a StageFailure.
	ParseRetries int
}

// DefaultConfig returns the settings used by the app.
func DefaultConfig() Config {
	return Config{
		MaxTokens:    4096,
		Temperature:  0.7,
		ParseRetries: 2,
	}
}

// Controller drives one learning journey through the staged pipeline:
// prerequisites → subtopic selection → roadmap → summary → resources →
// open-ended chat. It owns the journey's StageContext exclusively; the
// provider it calls is stateless and may be shared across sessions.
//
// All methods are safe for use from the single UI goroutine plus the
// command goroutines Bubble Tea spawns; a mutex serializes them. Stage
// transitions themselves are strictly sequential: each stage's prompt
// depends on the previous stage's confirmed result.
type Controller struct {
	provider llm.Provider
	events   store.EventRepo // may be nil
	cfg      Config

	mu        sync.Mutex
	journeyID string
	state     State
	sc        StageContext
	chat      []ChatTurn
	fatal     bool
	lastErr   error
}

// New creates a Controller in the Idle state. events may be nil to
// disable journey persistence.
func New(provider llm.Provider, cfg Config, events store.EventRepo) *Controller {
	return &Controller{
		provider: provider,
		events:   events,
		cfg:      cfg,
		state:    StateIdle,
	}
}

// State returns the current state-machine position.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// JourneyID returns the UUID grouping this journey's events, or "".
func (c *Controller) JourneyID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.journeyID
}

// Context returns a snapshot of the accumulated stage context.
func (c *Controller) Context() StageContext {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sc
}

// ChatLog returns a copy of the conversation log.
func (c *Controller) ChatLog() []ChatTurn {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]ChatTurn, len(c.chat))
	copy(out, c.chat)
	return out
}

// LastErr returns the error surfaced by the most recent Run or Chat,
// or nil after a success.
func (c *Controller) LastErr() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// Fatal reports whether the session is unrecoverable (rejected credential).
func (c *Controller) Fatal() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fatal
}

// Start begins a journey for the given topic: Idle → PrereqPending.
// The topic is immutable for the session; Reset first to change it.
func (c *Controller) Start(topic string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateIdle {
		return fmt.Errorf("cannot start a journey in state %s", c.state)
	}
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return fmt.Errorf("topic must not be empty")
	}

	if c.journeyID == "" {
		c.journeyID = uuid.NewString()
	}
	c.sc = StageContext{Topic: topic}
	c.chat = nil
	c.lastErr = nil
	c.state = StatePrereqPending
	c.logEvent("start", "", "")
	return nil
}

// Run executes the pipeline for the current *Pending stage: build the
// prompt, call the provider, parse the response. On success the result
// is stored (never empty) and the state advances to the matching
// Confirmed/Ready state. On any model or parse error the state is
// unchanged and the error is surfaced for a user-triggered retry.
// Malformed responses are retried internally up to the configured cap,
// then reported as a terminal *StageFailure with the raw text preserved.
func (c *Controller) Run(ctx context.Context) (*StageResult, error) {
	c.mu.Lock()
	if c.fatal {
		c.mu.Unlock()
		return nil, ErrSessionFailed
	}
	stage, ok := c.state.PendingStage()
	if !ok {
		state := c.state
		c.mu.Unlock()
		return nil, fmt.Errorf("no stage is pending in state %s", state)
	}
	sc := c.sc
	c.mu.Unlock()

	req, err := BuildPrompt(stage, &sc)
	if err != nil {
		// Sequencing defect; abort rather than attempt partial
		// progress, but record it like any other failed run.
		return nil, c.runFailed(stage, err)
	}
	req.MaxTokens = c.cfg.MaxTokens
	req.Temperature = c.cfg.Temperature

	ctx = llm.WithPurpose(ctx, stage.String())

	var lastParseErr *ParseError
	attempts := 0
	for {
		resp, err := c.provider.Generate(ctx, req)
		if err != nil {
			return nil, c.runFailed(stage, err)
		}

		result, err := ParseStage(stage, resp.Content)
		if err != nil {
			var pe *ParseError
			if errors.As(err, &pe) && attempts < c.cfg.ParseRetries {
				// The same prompt may yield a well-formed response on retry.
				attempts++
				lastParseErr = pe
				continue
			}
			if errors.As(err, &pe) {
				lastParseErr = pe
			}
			fail := &StageFailure{
				Stage:    stage,
				Attempts: attempts + 1,
				Err:      err,
			}
			if lastParseErr != nil {
				fail.Raw = lastParseErr.Raw
			}
			return nil, c.runFailed(stage, fail)
		}

		return c.runSucceeded(stage, result)
	}
}

// runSucceeded stores the result and advances Pending → Confirmed/Ready.
func (c *Controller) runSucceeded(stage StageKind, result *StageResult) (*StageResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// A completed stage result is always non-empty.
	if result.Empty() {
		err := &ParseError{Stage: stage, Kind: ParseEmpty}
		c.lastErr = err
		return nil, err
	}

	switch stage {
	case StagePrerequisites:
		c.sc.Prerequisites = result.Items
	case StageSubtopics:
		c.sc.Subtopics = result.Items
		c.sc.Selected = nil
	case StageRoadmap:
		c.sc.Roadmap = result.Roadmap
	case StageSummary:
		c.sc.Summary = result.Summary
	case StageResources:
		c.sc.Resources = result.Resources
	}

	c.state = readyState(stage)
	c.lastErr = nil
	c.logEvent("ready", stage.String(), marshalPayload(result))
	return result, nil
}

// runFailed records the failure. Cancellation reverts the state to the
// last confirmed position; a rejected credential poisons the session;
// everything else leaves the *Pending state unchanged for retry.
func (c *Controller) runFailed(stage StageKind, err error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lastErr = err

	if errors.Is(err, context.Canceled) {
		c.state = lastConfirmed(c.state)
		return err
	}

	var unauth *llm.ErrUnauthorized
	if errors.As(err, &unauth) {
		c.fatal = true
	}

	c.logEvent("failed", stage.String(), marshalPayload(map[string]string{"error": err.Error()}))
	return err
}

// Confirm advances a Confirmed/Ready state to the next stage's Pending
// state. From ResourcesReady it enters the terminal ChatActive state.
func (c *Controller) Confirm() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StateSubtopicConfirmed && len(c.sc.Selected) == 0 {
		return fmt.Errorf("select at least one subtopic before continuing")
	}

	next, ok := nextPending(c.state)
	if !ok {
		return fmt.Errorf("nothing to confirm in state %s", c.state)
	}
	confirmed, _ := c.state.ReadyStage()
	c.state = next
	if next == StateChatActive {
		c.logEvent("chat", StageChat.String(), "")
	} else {
		c.logEvent("confirmed", confirmed.String(), "")
	}
	return nil
}

// SetProficiency records the learner's self-ratings on the confirmed
// prerequisites. Legal once prerequisites are confirmed; calling it
// again from a later position is a revision, which rewinds the state
// and invalidates every downstream stage result. Upstream results are
// untouched.
func (c *Controller) SetProficiency(levels map[string]Proficiency) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.revisable(StatePrereqConfirmed); err != nil {
		return err
	}

	c.sc.Proficiency = levels
	if c.state != StatePrereqConfirmed {
		c.sc.invalidateAfter(StagePrerequisites)
		c.state = StatePrereqConfirmed
		c.logEvent("revised", StagePrerequisites.String(), "")
	}
	return nil
}

// SelectSubtopics records which of the confirmed subtopics the learner
// wants to study. Same revision semantics as SetProficiency: revising
// from a later position invalidates downstream results only.
func (c *Controller) SelectSubtopics(names []string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.revisable(StateSubtopicConfirmed); err != nil {
		return err
	}

	for _, name := range names {
		if !contains(c.sc.Subtopics, name) {
			return fmt.Errorf("unknown subtopic %q", name)
		}
	}

	c.sc.Selected = names
	if c.state != StateSubtopicConfirmed {
		c.sc.invalidateAfter(StageSubtopics)
		c.state = StateSubtopicConfirmed
		c.logEvent("revised", StageSubtopics.String(), "")
	}
	return nil
}

// revisable checks that a selection for the stage confirmed at `base`
// may be (re)entered now: either the controller sits exactly at base,
// or at a later settled (non-pending) state.
func (c *Controller) revisable(base State) error {
	if c.state == base {
		return nil
	}
	if c.state > base && !c.pending() {
		return nil
	}
	return fmt.Errorf("cannot revise in state %s", c.state)
}

func (c *Controller) pending() bool {
	_, ok := c.state.PendingStage()
	return ok
}

// Chat sends a free-form message in the terminal ChatActive state and
// returns the assistant's turn. Both turns are appended to the log and
// persisted; the log is never mutated otherwise.
func (c *Controller) Chat(ctx context.Context, input string) (*ChatTurn, error) {
	c.mu.Lock()
	if c.fatal {
		c.mu.Unlock()
		return nil, ErrSessionFailed
	}
	if c.state != StateChatActive {
		state := c.state
		c.mu.Unlock()
		return nil, fmt.Errorf("chat is not active in state %s", state)
	}
	input = strings.TrimSpace(input)
	if input == "" {
		c.mu.Unlock()
		return nil, fmt.Errorf("message must not be empty")
	}
	sc := c.sc
	log := make([]ChatTurn, len(c.chat))
	copy(log, c.chat)
	c.mu.Unlock()

	req, err := BuildChatRequest(&sc, log, input)
	if err != nil {
		return nil, err
	}
	req.MaxTokens = c.cfg.MaxTokens
	req.Temperature = c.cfg.Temperature

	resp, err := c.provider.Generate(llm.WithPurpose(ctx, StageChat.String()), req)
	if err != nil {
		c.mu.Lock()
		c.lastErr = err
		var unauth *llm.ErrUnauthorized
		if errors.As(err, &unauth) {
			c.fatal = true
		}
		c.mu.Unlock()
		return nil, err
	}

	reply := strings.TrimSpace(string(resp.Content))
	if reply == "" {
		err := &llm.ErrInvalidResponse{Err: fmt.Errorf("empty chat reply")}
		c.mu.Lock()
		c.lastErr = err
		c.mu.Unlock()
		return nil, err
	}

	now := time.Now()
	userTurn := ChatTurn{Role: llm.RoleUser, Content: input, At: now}
	assistantTurn := ChatTurn{Role: llm.RoleAssistant, Content: reply, At: now}

	c.mu.Lock()
	c.chat = append(c.chat, userTurn, assistantTurn)
	c.lastErr = nil
	c.mu.Unlock()

	c.persistTurn(userTurn)
	c.persistTurn(assistantTurn)

	return &assistantTurn, nil
}

// Reset abandons the journey and returns to Idle for a new topic.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.journeyID != "" {
		c.logEvent("reset", "", "")
	}
	c.journeyID = ""
	c.sc = StageContext{}
	c.chat = nil
	c.state = StateIdle
	c.fatal = false
	c.lastErr = nil
}

// logEvent appends a journey event, best-effort. Called with c.mu held.
func (c *Controller) logEvent(action, stage, payload string) {
	if c.events == nil || c.journeyID == "" {
		return
	}
	_ = c.events.AppendJourneyEvent(context.Background(), store.JourneyEventData{
		JourneyID: c.journeyID,
		Topic:     c.sc.Topic,
		Stage:     stage,
		Action:    action,
		Payload:   payload,
	})
}

func (c *Controller) persistTurn(turn ChatTurn) {
	c.mu.Lock()
	events, id := c.events, c.journeyID
	c.mu.Unlock()
	if events == nil || id == "" {
		return
	}
	_ = events.AppendChatTurn(context.Background(), store.ChatEventData{
		JourneyID: id,
		Role:      string(turn.Role),
		Content:   turn.Content,
	})
}

func marshalPayload(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

func contains(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}

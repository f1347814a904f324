package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEventRecord is a stored LLM request event.
type LLMRequestEventRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// LLMUsageStats aggregates token usage per purpose label.
type LLMUsageStats struct {
	Purpose      string
	Requests     int
	Failures     int
	InputTokens  int
	OutputTokens int
}

// LLMModelUsage aggregates token usage per model, for cost estimation.
type LLMModelUsage struct {
	Model        string
	Requests     int
	InputTokens  int
	OutputTokens int
}

// JourneyEventData captures one stage lifecycle transition.
type JourneyEventData struct {
	JourneyID string
	Topic     string
	Stage     string // empty for start/reset
	Action    string // start, ready, confirmed, revised, failed, chat, reset
	Payload   string // JSON-encoded stage result or error detail
}

// JourneyEventRecord is a stored journey event.
type JourneyEventRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	JourneyEventData
}

// JourneySummary is the folded view of one journey's events,
// used by the history screen and the history command.
type JourneySummary struct {
	JourneyID  string
	Topic      string
	StartedAt  time.Time
	LastStage  string
	Confirmed  int // number of confirmed stages
	Failed     bool
	ChatActive bool
}

// ChatEventData captures one chat turn.
type ChatEventData struct {
	JourneyID string
	Role      string // user or assistant
	Content   string
}

// ChatEventRecord is a stored chat turn.
type ChatEventRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	ChatEventData
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns LLM request events, newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEventRecord, error)

	// GetLLMEvent returns a single LLM request event by ID, or nil.
	GetLLMEvent(ctx context.Context, id int) (*LLMRequestEventRecord, error)

	// LLMUsageByPurpose aggregates token usage grouped by purpose label.
	LLMUsageByPurpose(ctx context.Context) ([]LLMUsageStats, error)

	// LLMUsageByModel aggregates token usage grouped by model ID.
	LLMUsageByModel(ctx context.Context) ([]LLMModelUsage, error)

	// AppendJourneyEvent records a stage lifecycle transition.
	AppendJourneyEvent(ctx context.Context, data JourneyEventData) error

	// QueryJourneySummaries folds journey events into per-journey
	// summaries, newest journey first. Sequence and time filters
	// select whole journeys by their first event.
	QueryJourneySummaries(ctx context.Context, opts QueryOpts) ([]JourneySummary, error)

	// AppendChatTurn records one chat turn.
	AppendChatTurn(ctx context.Context, data ChatEventData) error

	// QueryChatTurns returns the chat turns for a journey in order.
	QueryChatTurns(ctx context.Context, journeyID string, opts QueryOpts) ([]ChatEventRecord, error)
}

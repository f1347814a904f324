package store

import (
	"context"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open("file::memory:?cache=shared")
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.Client() == nil {
		t.Fatal("expected non-nil ent client")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so we skip journal_mode here. It is tested with file-based DBs.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()
	ctx := context.Background()

	sc, err := newSequenceCounter(db)
	if err != nil {
		t.Fatalf("new sequence counter: %v", err)
	}

	var seqs []int64
	for i := 0; i < 5; i++ {
		seq, err := sc.Next(ctx)
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		seqs = append(seqs, seq)
	}

	// Should be monotonically increasing starting from 1.
	for i, seq := range seqs {
		expected := int64(i + 1)
		if seq != expected {
			t.Errorf("seq[%d] = %d, want %d", i, seq, expected)
		}
	}
}

func TestLLMEventAppendAndQuery(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	events := []LLMRequestEventData{
		{Provider: "anthropic", Model: "claude-haiku", Purpose: "prerequisites", InputTokens: 100, OutputTokens: 50, LatencyMs: 900, Success: true},
		{Provider: "anthropic", Model: "claude-haiku", Purpose: "roadmap", InputTokens: 200, OutputTokens: 150, LatencyMs: 1200, Success: true},
		{Provider: "anthropic", Model: "claude-haiku", Purpose: "roadmap", InputTokens: 180, OutputTokens: 0, LatencyMs: 400, Success: false, ErrorMessage: "rate limited"},
	}
	for i, e := range events {
		if err := repo.AppendLLMRequest(ctx, e); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	// Newest first.
	got, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 events, got %d", len(got))
	}
	if got[0].Purpose != "roadmap" || got[0].Success {
		t.Errorf("expected newest event to be the failed roadmap call, got %+v", got[0])
	}
	if got[2].Purpose != "prerequisites" {
		t.Errorf("expected oldest event last, got %+v", got[2])
	}

	// Limit applies after ordering.
	got, err = repo.QueryLLMEvents(ctx, QueryOpts{Limit: 1})
	if err != nil {
		t.Fatalf("query with limit: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 event, got %d", len(got))
	}

	// Lookup by ID round-trips the full record.
	rec, err := repo.GetLLMEvent(ctx, got[0].ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if rec == nil {
		t.Fatal("expected record")
	}
	if rec.ErrorMessage != "rate limited" {
		t.Errorf("error message = %q, want 'rate limited'", rec.ErrorMessage)
	}

	// Unknown ID returns nil, not an error.
	rec, err = repo.GetLLMEvent(ctx, 99999)
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if rec != nil {
		t.Fatalf("expected nil for missing ID, got %+v", rec)
	}
}

func TestLLMUsageByPurpose(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	events := []LLMRequestEventData{
		{Provider: "openai", Model: "gpt-4o-mini", Purpose: "chat", InputTokens: 10, OutputTokens: 20, Success: true},
		{Provider: "openai", Model: "gpt-4o-mini", Purpose: "chat", InputTokens: 30, OutputTokens: 40, Success: false},
		{Provider: "openai", Model: "gpt-4o-mini", Purpose: "summary", InputTokens: 5, OutputTokens: 6, Success: true},
	}
	for i, e := range events {
		if err := repo.AppendLLMRequest(ctx, e); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	stats, err := repo.LLMUsageByPurpose(ctx)
	if err != nil {
		t.Fatalf("usage by purpose: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("expected 2 purposes, got %d", len(stats))
	}

	byPurpose := make(map[string]LLMUsageStats)
	for _, st := range stats {
		byPurpose[st.Purpose] = st
	}

	chat := byPurpose["chat"]
	if chat.Requests != 2 || chat.Failures != 1 {
		t.Errorf("chat stats = %+v, want 2 requests with 1 failure", chat)
	}
	if chat.InputTokens != 40 || chat.OutputTokens != 60 {
		t.Errorf("chat tokens = %d/%d, want 40/60", chat.InputTokens, chat.OutputTokens)
	}

	summary := byPurpose["summary"]
	if summary.Requests != 1 || summary.Failures != 0 {
		t.Errorf("summary stats = %+v, want 1 request with 0 failures", summary)
	}
}

func TestLLMUsageByModel(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	events := []LLMRequestEventData{
		{Provider: "anthropic", Model: "claude-haiku-4-5", Purpose: "prerequisites", InputTokens: 100, OutputTokens: 50, Success: true},
		{Provider: "anthropic", Model: "claude-haiku-4-5", Purpose: "chat", InputTokens: 20, OutputTokens: 30, Success: true},
		{Provider: "openai", Model: "gpt-4o-mini", Purpose: "chat", InputTokens: 15, OutputTokens: 25, Success: true},
	}
	for i, e := range events {
		if err := repo.AppendLLMRequest(ctx, e); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	usage, err := repo.LLMUsageByModel(ctx)
	if err != nil {
		t.Fatalf("usage by model: %v", err)
	}
	if len(usage) != 2 {
		t.Fatalf("expected 2 models, got %d", len(usage))
	}

	byModel := make(map[string]LLMModelUsage)
	for _, u := range usage {
		byModel[u.Model] = u
	}

	haiku := byModel["claude-haiku-4-5"]
	if haiku.Requests != 2 || haiku.InputTokens != 120 || haiku.OutputTokens != 80 {
		t.Errorf("haiku usage = %+v, want 2 requests with 120/80 tokens", haiku)
	}
}

func TestJourneySummariesFolding(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	// Journey A: completed through chat.
	a := []JourneyEventData{
		{JourneyID: "a", Topic: "Linear Algebra", Action: "start"},
		{JourneyID: "a", Topic: "Linear Algebra", Stage: "prerequisites", Action: "ready"},
		{JourneyID: "a", Topic: "Linear Algebra", Stage: "prerequisites", Action: "confirmed"},
		{JourneyID: "a", Topic: "Linear Algebra", Stage: "subtopics", Action: "ready"},
		{JourneyID: "a", Topic: "Linear Algebra", Stage: "subtopics", Action: "confirmed"},
		{JourneyID: "a", Topic: "Linear Algebra", Stage: "resources", Action: "chat"},
	}
	// Journey B: failed at roadmap, no recovery.
	b := []JourneyEventData{
		{JourneyID: "b", Topic: "Topology", Action: "start"},
		{JourneyID: "b", Topic: "Topology", Stage: "prerequisites", Action: "ready"},
		{JourneyID: "b", Topic: "Topology", Stage: "roadmap", Action: "failed"},
	}
	for i, e := range append(a, b...) {
		if err := repo.AppendJourneyEvent(ctx, e); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	sums, err := repo.QueryJourneySummaries(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("summaries: %v", err)
	}
	if len(sums) != 2 {
		t.Fatalf("expected 2 journeys, got %d", len(sums))
	}

	// Newest journey first.
	if sums[0].JourneyID != "b" {
		t.Fatalf("expected journey b first, got %q", sums[0].JourneyID)
	}
	if !sums[0].Failed {
		t.Error("expected journey b marked failed")
	}
	if sums[0].LastStage != "prerequisites" {
		t.Errorf("journey b last stage = %q, want 'prerequisites'", sums[0].LastStage)
	}

	if sums[1].JourneyID != "a" || sums[1].Topic != "Linear Algebra" {
		t.Fatalf("unexpected journey a summary: %+v", sums[1])
	}
	if sums[1].Confirmed != 2 {
		t.Errorf("journey a confirmed = %d, want 2", sums[1].Confirmed)
	}
	if !sums[1].ChatActive {
		t.Error("expected journey a chat active")
	}
	if sums[1].Failed {
		t.Error("journey a should not be failed")
	}
}

func TestJourneyFailureClearedByLaterProgress(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	events := []JourneyEventData{
		{JourneyID: "j", Topic: "Calculus", Action: "start"},
		{JourneyID: "j", Topic: "Calculus", Stage: "prerequisites", Action: "failed"},
		{JourneyID: "j", Topic: "Calculus", Stage: "prerequisites", Action: "ready"},
	}
	for i, e := range events {
		if err := repo.AppendJourneyEvent(ctx, e); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	sums, err := repo.QueryJourneySummaries(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("summaries: %v", err)
	}
	if len(sums) != 1 {
		t.Fatalf("expected 1 journey, got %d", len(sums))
	}
	if sums[0].Failed {
		t.Error("a later ready should clear the failed flag")
	}
}

func TestJourneySummariesLimit(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for _, id := range []string{"one", "two", "three"} {
		err := repo.AppendJourneyEvent(ctx, JourneyEventData{JourneyID: id, Topic: id, Action: "start"})
		if err != nil {
			t.Fatalf("append %s: %v", id, err)
		}
	}

	sums, err := repo.QueryJourneySummaries(ctx, QueryOpts{Limit: 2})
	if err != nil {
		t.Fatalf("summaries: %v", err)
	}
	if len(sums) != 2 {
		t.Fatalf("expected 2 journeys, got %d", len(sums))
	}
	if sums[0].JourneyID != "three" || sums[1].JourneyID != "two" {
		t.Errorf("expected newest two journeys, got %q and %q", sums[0].JourneyID, sums[1].JourneyID)
	}
}

func TestJourneySummariesSequenceFilter(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	// One start event per journey: sequences 1, 2, 3.
	for _, id := range []string{"one", "two", "three"} {
		err := repo.AppendJourneyEvent(ctx, JourneyEventData{JourneyID: id, Topic: id, Action: "start"})
		if err != nil {
			t.Fatalf("append %s: %v", id, err)
		}
	}

	sums, err := repo.QueryJourneySummaries(ctx, QueryOpts{After: 1})
	if err != nil {
		t.Fatalf("summaries after: %v", err)
	}
	if len(sums) != 2 || sums[0].JourneyID != "three" || sums[1].JourneyID != "two" {
		t.Errorf("After=1 returned %+v, want journeys three and two", sums)
	}

	sums, err = repo.QueryJourneySummaries(ctx, QueryOpts{Before: 3})
	if err != nil {
		t.Fatalf("summaries before: %v", err)
	}
	if len(sums) != 2 || sums[0].JourneyID != "two" || sums[1].JourneyID != "one" {
		t.Errorf("Before=3 returned %+v, want journeys two and one", sums)
	}
}

func TestJourneySummariesTimeWindow(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	before := time.Now().Add(-time.Minute)
	if err := repo.AppendJourneyEvent(ctx, JourneyEventData{JourneyID: "j", Topic: "Sets", Action: "start"}); err != nil {
		t.Fatalf("append: %v", err)
	}
	after := time.Now().Add(time.Minute)

	sums, err := repo.QueryJourneySummaries(ctx, QueryOpts{From: before, To: after})
	if err != nil {
		t.Fatalf("summaries: %v", err)
	}
	if len(sums) != 1 {
		t.Fatalf("window covering the start = %d journeys, want 1", len(sums))
	}

	sums, err = repo.QueryJourneySummaries(ctx, QueryOpts{From: after})
	if err != nil {
		t.Fatalf("summaries: %v", err)
	}
	if len(sums) != 0 {
		t.Errorf("window after the start = %d journeys, want 0", len(sums))
	}
}

func TestChatTurnsOrdered(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	turns := []ChatEventData{
		{JourneyID: "j1", Role: "user", Content: "What is a vector space?"},
		{JourneyID: "j1", Role: "assistant", Content: "A set closed under addition and scaling."},
		{JourneyID: "j2", Role: "user", Content: "unrelated"},
		{JourneyID: "j1", Role: "user", Content: "Give me an example."},
	}
	for i, turn := range turns {
		if err := repo.AppendChatTurn(ctx, turn); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	got, err := repo.QueryChatTurns(ctx, "j1", QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 turns for j1, got %d", len(got))
	}
	if got[0].Role != "user" || got[1].Role != "assistant" {
		t.Errorf("unexpected turn order: %q then %q", got[0].Role, got[1].Role)
	}
	if got[2].Content != "Give me an example." {
		t.Errorf("last turn = %q", got[2].Content)
	}

	// Sequences are strictly increasing.
	for i := 1; i < len(got); i++ {
		if got[i].Sequence <= got[i-1].Sequence {
			t.Errorf("sequence not increasing at %d: %d <= %d", i, got[i].Sequence, got[i-1].Sequence)
		}
	}

	// After filters by sequence.
	rest, err := repo.QueryChatTurns(ctx, "j1", QueryOpts{After: got[0].Sequence})
	if err != nil {
		t.Fatalf("query after: %v", err)
	}
	if len(rest) != 2 || rest[0].Sequence != got[1].Sequence {
		t.Errorf("After=%d returned %d turns, want the 2 later ones", got[0].Sequence, len(rest))
	}
}

func TestAutoMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	for _, table := range []string{"journey_events", "chat_events", "llm_request_events"} {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Fatalf("query sqlite_master for %s: %v", table, err)
		}
		if name != table {
			t.Errorf("table name = %q, want %q", name, table)
		}
	}
}

package journey

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rkapur/pathwise/internal/llm"
	"github.com/rkapur/pathwise/internal/store"
)

// journeyEventRecorder captures journey event actions; the embedded
// interface covers the methods the controller never calls.
type journeyEventRecorder struct {
	store.EventRepo
	actions []string
}

func (r *journeyEventRecorder) AppendJourneyEvent(_ context.Context, data store.JourneyEventData) error {
	r.actions = append(r.actions, data.Action)
	return nil
}

func stageJSON(t *testing.T, v any) json.RawMessage {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func prereqResponse(t *testing.T) llm.MockResponse {
	return llm.MockResponse{Content: stageJSON(t, map[string]any{
		"prerequisites": []string{"Basic algebra", "Functions", "Set notation"},
	})}
}

func subtopicsResponse(t *testing.T) llm.MockResponse {
	return llm.MockResponse{Content: stageJSON(t, map[string]any{
		"subtopics": []string{"Vector spaces", "Eigenvalues", "Determinants", "Orthogonality"},
	})}
}

func roadmapResponse(t *testing.T) llm.MockResponse {
	return llm.MockResponse{Content: stageJSON(t, map[string]any{
		"weeks": []map[string]any{
			{"week": 1, "focus": "Vector spaces", "tasks": []string{"Read chapter 1"}},
			{"week": 2, "focus": "Eigenvalues", "tasks": []string{"Compute spectra"}},
		},
		"pitfalls":      []string{"Skipping proofs"},
		"time_estimate": "2 weeks",
	})}
}

func summaryResponse(t *testing.T) llm.MockResponse {
	return llm.MockResponse{Content: stageJSON(t, map[string]string{
		"concepts": "Spans and bases.",
		"examples": "Rotations in the plane.",
		"pitfalls": "Confusing rank with dimension.",
	})}
}

func resourcesResponse(t *testing.T) llm.MockResponse {
	return llm.MockResponse{Content: stageJSON(t, map[string]any{
		"resources": []map[string]string{
			{"title": "Linear Algebra Done Right", "kind": "book", "detail": "Axler."},
		},
	})}
}

// runStage drives one Run and fails the test on error.
func runStage(t *testing.T, c *Controller) *StageResult {
	t.Helper()
	result, err := c.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() in state %s: %v", c.State(), err)
	}
	return result
}

func TestController_FullJourney(t *testing.T) {
	mock := llm.NewMockProvider(
		prereqResponse(t),
		subtopicsResponse(t),
		roadmapResponse(t),
		summaryResponse(t),
		resourcesResponse(t),
		llm.MockResponse{Content: json.RawMessage("An infinite basis is fine in general vector spaces.")},
	)
	c := New(mock, DefaultConfig(), nil)

	if err := c.Start("Linear Algebra"); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if c.State() != StatePrereqPending {
		t.Fatalf("state = %s, want prereq-pending", c.State())
	}
	if c.JourneyID() == "" {
		t.Error("JourneyID is empty after Start")
	}

	result := runStage(t, c)
	if len(result.Items) != 3 {
		t.Fatalf("prerequisites = %v", result.Items)
	}
	if c.State() != StatePrereqConfirmed {
		t.Fatalf("state = %s, want prereq-confirmed", c.State())
	}

	if err := c.SetProficiency(map[string]Proficiency{
		"Basic algebra": ProficiencyIntermediate,
		"Functions":     ProficiencyBeginner,
	}); err != nil {
		t.Fatalf("SetProficiency() error = %v", err)
	}
	if err := c.Confirm(); err != nil {
		t.Fatalf("Confirm() error = %v", err)
	}

	result = runStage(t, c)
	if len(result.Items) != 4 {
		t.Fatalf("subtopics = %v", result.Items)
	}
	if err := c.SelectSubtopics([]string{"Vector spaces", "Eigenvalues"}); err != nil {
		t.Fatalf("SelectSubtopics() error = %v", err)
	}
	if err := c.Confirm(); err != nil {
		t.Fatalf("Confirm() error = %v", err)
	}

	result = runStage(t, c)
	if result.Roadmap == nil || len(result.Roadmap.Weeks) != 2 {
		t.Fatalf("roadmap = %+v", result.Roadmap)
	}
	if err := c.Confirm(); err != nil {
		t.Fatal(err)
	}

	result = runStage(t, c)
	if result.Summary == nil || result.Summary.Concepts == "" {
		t.Fatalf("summary = %+v", result.Summary)
	}
	if err := c.Confirm(); err != nil {
		t.Fatal(err)
	}

	result = runStage(t, c)
	if len(result.Resources) != 1 {
		t.Fatalf("resources = %v", result.Resources)
	}
	if err := c.Confirm(); err != nil {
		t.Fatal(err)
	}
	if c.State() != StateChatActive {
		t.Fatalf("state = %s, want chat-active", c.State())
	}

	turn, err := c.Chat(context.Background(), "Can a basis be infinite?")
	if err != nil {
		t.Fatalf("Chat() error = %v", err)
	}
	if turn.Role != llm.RoleAssistant || turn.Content == "" {
		t.Errorf("turn = %+v", turn)
	}
	log := c.ChatLog()
	if len(log) != 2 {
		t.Fatalf("len(ChatLog) = %d, want 2", len(log))
	}
	if log[0].Role != llm.RoleUser || log[1].Role != llm.RoleAssistant {
		t.Errorf("log roles = %s, %s", log[0].Role, log[1].Role)
	}
}

func TestController_StartRejectsEmptyTopic(t *testing.T) {
	c := New(llm.NewMockProvider(), DefaultConfig(), nil)
	if err := c.Start("   "); err == nil {
		t.Error("expected error for blank topic")
	}
	if c.State() != StateIdle {
		t.Errorf("state = %s, want idle", c.State())
	}
}

func TestController_RunWithNothingPending(t *testing.T) {
	c := New(llm.NewMockProvider(), DefaultConfig(), nil)
	if _, err := c.Run(context.Background()); err == nil {
		t.Error("expected error when no stage is pending")
	}
}

func TestController_TemplateErrorRecorded(t *testing.T) {
	mock := llm.NewMockProvider()
	repo := &journeyEventRecorder{}
	c := New(mock, DefaultConfig(), repo)

	if err := c.Start("Linear Algebra"); err != nil {
		t.Fatal(err)
	}
	// Force the roadmap stage without the selected subtopics its
	// prompt requires.
	c.mu.Lock()
	c.state = StateRoadmapPending
	c.mu.Unlock()

	_, err := c.Run(context.Background())
	var te *TemplateError
	if !errors.As(err, &te) {
		t.Fatalf("error = %v, want *TemplateError", err)
	}
	if mock.CallCount() != 0 {
		t.Errorf("CallCount = %d, want 0 before the prompt is built", mock.CallCount())
	}
	if !errors.As(c.LastErr(), &te) {
		t.Errorf("LastErr() = %v, want the template error recorded", c.LastErr())
	}

	var failed bool
	for _, action := range repo.actions {
		if action == "failed" {
			failed = true
		}
	}
	if !failed {
		t.Errorf("journey events = %v, want a failed event", repo.actions)
	}
}

func TestController_ParseFailureKeepsStatePending(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ParseRetries = 0
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage(`{"prerequisites": []}`)},
	)
	c := New(mock, cfg, nil)

	if err := c.Start("Linear Algebra"); err != nil {
		t.Fatal(err)
	}
	_, err := c.Run(context.Background())

	var sf *StageFailure
	if !errors.As(err, &sf) {
		t.Fatalf("error = %v, want *StageFailure", err)
	}
	var pe *ParseError
	if !errors.As(err, &pe) || pe.Kind != ParseEmpty {
		t.Fatalf("error = %v, want wrapped ParseEmpty", err)
	}
	if c.State() != StatePrereqPending {
		t.Errorf("state = %s, want prereq-pending (retryable)", c.State())
	}

	// A user-triggered retry runs the same stage again and can succeed.
	mock.AddResponse(prereqResponse(t))
	if _, err := c.Run(context.Background()); err != nil {
		t.Fatalf("retry Run() error = %v", err)
	}
	if c.State() != StatePrereqConfirmed {
		t.Errorf("state = %s, want prereq-confirmed", c.State())
	}
}

func TestController_ParseRetryWithinRun(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ParseRetries = 2
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage("no structure at all")},
		prereqResponse(t),
	)
	c := New(mock, cfg, nil)

	if err := c.Start("Linear Algebra"); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v, want internal retry to recover", err)
	}
	if mock.CallCount() != 2 {
		t.Errorf("CallCount = %d, want 2", mock.CallCount())
	}
}

func TestController_StageFailurePreservesRaw(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ParseRetries = 1
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage(`{"wrong": 1}`)},
		llm.MockResponse{Content: json.RawMessage(`{"wrong": 2}`)},
	)
	c := New(mock, cfg, nil)

	if err := c.Start("Topology"); err != nil {
		t.Fatal(err)
	}
	_, err := c.Run(context.Background())

	var sf *StageFailure
	if !errors.As(err, &sf) {
		t.Fatalf("error = %v, want *StageFailure", err)
	}
	if sf.Attempts != 2 {
		t.Errorf("Attempts = %d, want 2", sf.Attempts)
	}
	if sf.Raw == "" {
		t.Error("Raw not preserved on stage failure")
	}
}

func TestController_RateLimitLeavesStateForRetry(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Err: &llm.ErrRateLimit{}},
		prereqResponse(t),
	)
	c := New(mock, DefaultConfig(), nil)

	if err := c.Start("Linear Algebra"); err != nil {
		t.Fatal(err)
	}
	_, err := c.Run(context.Background())
	var rl *llm.ErrRateLimit
	if !errors.As(err, &rl) {
		t.Fatalf("error = %v, want *ErrRateLimit", err)
	}
	if c.State() != StatePrereqPending {
		t.Fatalf("state = %s, want prereq-pending", c.State())
	}

	if _, err := c.Run(context.Background()); err != nil {
		t.Fatalf("retry Run() error = %v", err)
	}
	if c.State() != StatePrereqConfirmed {
		t.Errorf("state = %s, want prereq-confirmed", c.State())
	}
}

func TestController_UnauthorizedPoisonsSession(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Err: &llm.ErrUnauthorized{}},
	)
	c := New(mock, DefaultConfig(), nil)

	if err := c.Start("Linear Algebra"); err != nil {
		t.Fatal(err)
	}
	_, err := c.Run(context.Background())
	var unauth *llm.ErrUnauthorized
	if !errors.As(err, &unauth) {
		t.Fatalf("error = %v, want *ErrUnauthorized", err)
	}
	if !c.Fatal() {
		t.Fatal("session not marked fatal")
	}

	// Every later call refuses without touching the provider.
	mock.AddResponse(prereqResponse(t))
	if _, err := c.Run(context.Background()); !errors.Is(err, ErrSessionFailed) {
		t.Errorf("Run() after fatal = %v, want ErrSessionFailed", err)
	}
	if _, err := c.Chat(context.Background(), "hello"); !errors.Is(err, ErrSessionFailed) {
		t.Errorf("Chat() after fatal = %v, want ErrSessionFailed", err)
	}
	if mock.CallCount() != 1 {
		t.Errorf("CallCount = %d, want 1", mock.CallCount())
	}

	// Reset clears the fatal flag for a fresh session.
	c.Reset()
	if c.Fatal() {
		t.Error("Fatal still set after Reset")
	}
	if c.State() != StateIdle {
		t.Errorf("state = %s, want idle", c.State())
	}
}

func TestController_CancelRevertsToLastConfirmed(t *testing.T) {
	mock := llm.NewMockProvider(
		prereqResponse(t),
		llm.MockResponse{Err: context.Canceled},
	)
	c := New(mock, DefaultConfig(), nil)

	if err := c.Start("Linear Algebra"); err != nil {
		t.Fatal(err)
	}
	runStage(t, c)
	if err := c.Confirm(); err != nil {
		t.Fatal(err)
	}
	if c.State() != StateSubtopicPending {
		t.Fatalf("state = %s, want subtopic-pending", c.State())
	}

	_, err := c.Run(context.Background())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled", err)
	}
	if c.State() != StatePrereqConfirmed {
		t.Errorf("state = %s, want prereq-confirmed after cancel", c.State())
	}
	// Prior results are intact.
	if len(c.Context().Prerequisites) == 0 {
		t.Error("prerequisites lost on cancel")
	}
}

func TestController_ConfirmRequiresSelection(t *testing.T) {
	mock := llm.NewMockProvider(prereqResponse(t), subtopicsResponse(t))
	c := New(mock, DefaultConfig(), nil)

	if err := c.Start("Linear Algebra"); err != nil {
		t.Fatal(err)
	}
	runStage(t, c)
	if err := c.Confirm(); err != nil {
		t.Fatal(err)
	}
	runStage(t, c)

	if err := c.Confirm(); err == nil {
		t.Fatal("expected Confirm to fail with no subtopics selected")
	}
	if err := c.SelectSubtopics([]string{"Eigenvalues"}); err != nil {
		t.Fatal(err)
	}
	if err := c.Confirm(); err != nil {
		t.Fatalf("Confirm() error = %v", err)
	}
	if c.State() != StateRoadmapPending {
		t.Errorf("state = %s, want roadmap-pending", c.State())
	}
}

func TestController_SelectUnknownSubtopic(t *testing.T) {
	mock := llm.NewMockProvider(prereqResponse(t), subtopicsResponse(t))
	c := New(mock, DefaultConfig(), nil)

	if err := c.Start("Linear Algebra"); err != nil {
		t.Fatal(err)
	}
	runStage(t, c)
	if err := c.Confirm(); err != nil {
		t.Fatal(err)
	}
	runStage(t, c)

	if err := c.SelectSubtopics([]string{"Category theory"}); err == nil {
		t.Error("expected error for a subtopic the model never offered")
	}
}

func TestController_RevisionInvalidatesDownstream(t *testing.T) {
	mock := llm.NewMockProvider(
		prereqResponse(t),
		subtopicsResponse(t),
		roadmapResponse(t),
	)
	c := New(mock, DefaultConfig(), nil)

	if err := c.Start("Linear Algebra"); err != nil {
		t.Fatal(err)
	}
	runStage(t, c)
	if err := c.Confirm(); err != nil {
		t.Fatal(err)
	}
	runStage(t, c)
	if err := c.SelectSubtopics([]string{"Vector spaces"}); err != nil {
		t.Fatal(err)
	}
	if err := c.Confirm(); err != nil {
		t.Fatal(err)
	}
	runStage(t, c)
	if c.State() != StateRoadmapReady {
		t.Fatalf("state = %s, want roadmap-ready", c.State())
	}

	// Re-rating prerequisites from here rewinds the journey to the
	// proficiency step and drops everything built on the old ratings.
	if err := c.SetProficiency(map[string]Proficiency{
		"Basic algebra": ProficiencyAdvanced,
	}); err != nil {
		t.Fatalf("SetProficiency() error = %v", err)
	}
	if c.State() != StatePrereqConfirmed {
		t.Fatalf("state = %s, want prereq-confirmed", c.State())
	}
	sc := c.Context()
	if len(sc.Prerequisites) == 0 {
		t.Error("upstream prerequisites lost on revision")
	}
	if sc.Subtopics != nil || sc.Selected != nil || sc.Roadmap != nil {
		t.Errorf("downstream results survived revision: %+v", sc)
	}
}

func TestController_RevisionRejectedMidRun(t *testing.T) {
	mock := llm.NewMockProvider(prereqResponse(t))
	c := New(mock, DefaultConfig(), nil)

	if err := c.Start("Linear Algebra"); err != nil {
		t.Fatal(err)
	}
	// Still prereq-pending: nothing confirmed to rate yet.
	if err := c.SetProficiency(map[string]Proficiency{"x": ProficiencyBeginner}); err == nil {
		t.Error("expected SetProficiency to fail before prerequisites are confirmed")
	}
}

func TestController_ChatFailureLeavesLogUntouched(t *testing.T) {
	mock := llm.NewMockProvider(
		prereqResponse(t),
		subtopicsResponse(t),
		roadmapResponse(t),
		summaryResponse(t),
		resourcesResponse(t),
		llm.MockResponse{Err: &llm.ErrProviderUnavailable{}},
	)
	c := New(mock, DefaultConfig(), nil)

	if err := c.Start("Linear Algebra"); err != nil {
		t.Fatal(err)
	}
	for c.State() != StateChatActive {
		runStage(t, c)
		if c.State() == StateSubtopicConfirmed {
			if err := c.SelectSubtopics([]string{"Eigenvalues"}); err != nil {
				t.Fatal(err)
			}
		}
		if err := c.Confirm(); err != nil {
			t.Fatal(err)
		}
	}

	_, err := c.Chat(context.Background(), "What is a determinant?")
	var unavailable *llm.ErrProviderUnavailable
	if !errors.As(err, &unavailable) {
		t.Fatalf("error = %v, want *ErrProviderUnavailable", err)
	}
	if len(c.ChatLog()) != 0 {
		t.Errorf("len(ChatLog) = %d after failed send, want 0", len(c.ChatLog()))
	}

	// The failed message can be resent.
	mock.AddResponse(llm.MockResponse{Content: json.RawMessage("It measures volume scaling.")})
	if _, err := c.Chat(context.Background(), "What is a determinant?"); err != nil {
		t.Fatalf("resend Chat() error = %v", err)
	}
	if len(c.ChatLog()) != 2 {
		t.Errorf("len(ChatLog) = %d, want 2", len(c.ChatLog()))
	}
}

func TestController_ChatRejectedBeforeActive(t *testing.T) {
	mock := llm.NewMockProvider(prereqResponse(t))
	c := New(mock, DefaultConfig(), nil)

	if err := c.Start("Linear Algebra"); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Chat(context.Background(), "hello"); err == nil {
		t.Error("expected Chat to fail before the journey reaches the chat state")
	}
}

func TestController_ResetReturnsToIdle(t *testing.T) {
	mock := llm.NewMockProvider(prereqResponse(t))
	c := New(mock, DefaultConfig(), nil)

	if err := c.Start("Linear Algebra"); err != nil {
		t.Fatal(err)
	}
	runStage(t, c)
	id := c.JourneyID()

	c.Reset()
	if c.State() != StateIdle {
		t.Fatalf("state = %s, want idle", c.State())
	}
	if c.Context().Topic != "" {
		t.Error("context not cleared by Reset")
	}

	// A new journey gets a fresh identity.
	if err := c.Start("Topology"); err != nil {
		t.Fatal(err)
	}
	if c.JourneyID() == id {
		t.Error("JourneyID reused across journeys")
	}
}

func TestController_PurposeLabelsSent(t *testing.T) {
	mock := llm.NewMockProvider(prereqResponse(t))
	c := New(mock, DefaultConfig(), nil)

	if err := c.Start("Linear Algebra"); err != nil {
		t.Fatal(err)
	}
	runStage(t, c)

	if len(mock.Calls) != 1 {
		t.Fatalf("CallCount = %d, want 1", len(mock.Calls))
	}
	req := mock.Calls[0]
	if req.Schema == nil || req.Schema.Name != "topic-prerequisites" {
		t.Errorf("request schema = %+v", req.Schema)
	}
	if req.MaxTokens != DefaultConfig().MaxTokens {
		t.Errorf("MaxTokens = %d", req.MaxTokens)
	}
	if req.Temperature != DefaultConfig().Temperature {
		t.Errorf("Temperature = %v", req.Temperature)
	}
}

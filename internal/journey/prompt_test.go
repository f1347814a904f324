package journey

import (
	"errors"
	"strings"
	"testing"

	"github.com/rkapur/pathwise/internal/llm"
)

func TestBuildPrompt_Prerequisites(t *testing.T) {
	sc := &StageContext{Topic: "Linear Algebra"}

	req, err := BuildPrompt(StagePrerequisites, sc)
	if err != nil {
		t.Fatalf("BuildPrompt() error = %v", err)
	}
	if req.System == "" {
		t.Error("System prompt is empty")
	}
	if len(req.Messages) != 1 {
		t.Fatalf("len(Messages) = %d, want 1", len(req.Messages))
	}
	if !strings.Contains(req.Messages[0].Content, "Linear Algebra") {
		t.Error("prompt does not mention the topic")
	}
	if req.Schema == nil {
		t.Error("prerequisites request has no schema")
	}
}

func TestBuildPrompt_MissingTopic(t *testing.T) {
	_, err := BuildPrompt(StagePrerequisites, &StageContext{})

	var te *TemplateError
	if !errors.As(err, &te) {
		t.Fatalf("error = %v, want *TemplateError", err)
	}
	if te.Missing != "topic" {
		t.Errorf("Missing = %q, want topic", te.Missing)
	}
}

func TestBuildPrompt_SubtopicsIncludesProficiency(t *testing.T) {
	sc := &StageContext{
		Topic:         "Linear Algebra",
		Prerequisites: []string{"Basic algebra", "Functions"},
		Proficiency: map[string]Proficiency{
			"Basic algebra": ProficiencyAdvanced,
			"Functions":     ProficiencyBeginner,
		},
	}

	req, err := BuildPrompt(StageSubtopics, sc)
	if err != nil {
		t.Fatalf("BuildPrompt() error = %v", err)
	}
	msg := req.Messages[0].Content
	if !strings.Contains(msg, "Basic algebra: Advanced") {
		t.Errorf("prompt missing advanced rating:\n%s", msg)
	}
	if !strings.Contains(msg, "Functions: Beginner") {
		t.Errorf("prompt missing beginner rating:\n%s", msg)
	}
}

func TestBuildPrompt_SubtopicsWithoutPrerequisites(t *testing.T) {
	_, err := BuildPrompt(StageSubtopics, &StageContext{Topic: "Topology"})

	var te *TemplateError
	if !errors.As(err, &te) {
		t.Fatalf("error = %v, want *TemplateError", err)
	}
	if te.Stage != StageSubtopics {
		t.Errorf("Stage = %v, want StageSubtopics", te.Stage)
	}
}

func TestBuildPrompt_RoadmapRequiresSelection(t *testing.T) {
	sc := &StageContext{
		Topic:     "Linear Algebra",
		Subtopics: []string{"Vector spaces", "Eigenvalues"},
	}

	if _, err := BuildPrompt(StageRoadmap, sc); err == nil {
		t.Fatal("expected error with no selected subtopics")
	}

	sc.Selected = []string{"Eigenvalues"}
	req, err := BuildPrompt(StageRoadmap, sc)
	if err != nil {
		t.Fatalf("BuildPrompt() error = %v", err)
	}
	if !strings.Contains(req.Messages[0].Content, "Eigenvalues") {
		t.Error("prompt does not mention the chosen subtopic")
	}
}

func TestBuildPrompt_SummaryRequiresRoadmap(t *testing.T) {
	sc := &StageContext{
		Topic:    "Linear Algebra",
		Selected: []string{"Eigenvalues"},
	}

	var te *TemplateError
	if _, err := BuildPrompt(StageSummary, sc); !errors.As(err, &te) {
		t.Fatalf("error = %v, want *TemplateError", err)
	}

	sc.Roadmap = &Roadmap{Weeks: []RoadmapWeek{{Week: 1, Focus: "Basics"}}}
	if _, err := BuildPrompt(StageSummary, sc); err != nil {
		t.Fatalf("BuildPrompt() error = %v", err)
	}
}

func TestBuildPrompt_ChatStageRejected(t *testing.T) {
	_, err := BuildPrompt(StageChat, &StageContext{Topic: "Topology"})

	var te *TemplateError
	if !errors.As(err, &te) {
		t.Fatalf("error = %v, want *TemplateError", err)
	}
}

func TestBuildChatRequest(t *testing.T) {
	sc := &StageContext{
		Topic:         "Linear Algebra",
		Prerequisites: []string{"Basic algebra"},
		Proficiency:   map[string]Proficiency{"Basic algebra": ProficiencyIntermediate},
		Selected:      []string{"Vector spaces"},
	}
	log := []ChatTurn{
		{Role: llm.RoleUser, Content: "What is a basis?"},
		{Role: llm.RoleAssistant, Content: "A minimal spanning set."},
	}

	req, err := BuildChatRequest(sc, log, "Can a basis be infinite?")
	if err != nil {
		t.Fatalf("BuildChatRequest() error = %v", err)
	}
	if req.Schema != nil {
		t.Error("chat request should have no schema")
	}
	// Grounding message, canned ack, two logged turns, new input.
	if len(req.Messages) != 5 {
		t.Fatalf("len(Messages) = %d, want 5", len(req.Messages))
	}
	grounding := req.Messages[0].Content
	if !strings.Contains(grounding, "Linear Algebra") || !strings.Contains(grounding, "Vector spaces") {
		t.Errorf("grounding message incomplete:\n%s", grounding)
	}
	last := req.Messages[len(req.Messages)-1]
	if last.Role != llm.RoleUser || last.Content != "Can a basis be infinite?" {
		t.Errorf("last message = %+v, want the new input", last)
	}
}

func TestBuildChatRequest_DoesNotMutateLog(t *testing.T) {
	sc := &StageContext{Topic: "Topology"}
	log := []ChatTurn{{Role: llm.RoleUser, Content: "hi"}}

	if _, err := BuildChatRequest(sc, log, "another question"); err != nil {
		t.Fatalf("BuildChatRequest() error = %v", err)
	}
	if len(log) != 1 {
		t.Errorf("len(log) = %d after build, want 1", len(log))
	}
}

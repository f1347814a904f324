package journey

import (
	"errors"
	"testing"
	"unicode/utf8"
)

func TestParsePrerequisites_JSONObject(t *testing.T) {
	raw := []byte(`{"prerequisites": ["Basic algebra", "Set notation", "Functions"]}`)

	result, err := ParseStage(StagePrerequisites, raw)
	if err != nil {
		t.Fatalf("ParseStage() error = %v", err)
	}
	if len(result.Items) != 3 {
		t.Fatalf("len(Items) = %d, want 3", len(result.Items))
	}
	if result.Items[0] != "Basic algebra" {
		t.Errorf("Items[0] = %q, want %q", result.Items[0], "Basic algebra")
	}
}

func TestParsePrerequisites_BareArray(t *testing.T) {
	raw := []byte(`["Limits", "Derivatives"]`)

	result, err := ParseStage(StagePrerequisites, raw)
	if err != nil {
		t.Fatalf("ParseStage() error = %v", err)
	}
	if len(result.Items) != 2 {
		t.Errorf("len(Items) = %d, want 2", len(result.Items))
	}
}

func TestParsePrerequisites_FencedJSON(t *testing.T) {
	raw := []byte("```json\n{\"prerequisites\": [\"Vectors\"]}\n```")

	result, err := ParseStage(StagePrerequisites, raw)
	if err != nil {
		t.Fatalf("ParseStage() error = %v", err)
	}
	if len(result.Items) != 1 || result.Items[0] != "Vectors" {
		t.Errorf("Items = %v, want [Vectors]", result.Items)
	}
}

func TestParsePrerequisites_BulletFallback(t *testing.T) {
	raw := []byte("Here are the prerequisites:\n- Matrices\n- Gaussian elimination\n1. Determinants")

	result, err := ParseStage(StagePrerequisites, raw)
	if err != nil {
		t.Fatalf("ParseStage() error = %v", err)
	}
	if len(result.Items) != 3 {
		t.Fatalf("len(Items) = %d, want 3: %v", len(result.Items), result.Items)
	}
	if result.Items[2] != "Determinants" {
		t.Errorf("Items[2] = %q, want %q", result.Items[2], "Determinants")
	}
}

func TestParsePrerequisites_UnicodeBullets(t *testing.T) {
	raw := []byte("• Vectors\n• Matrices\n* Eigenvalues")

	result, err := ParseStage(StagePrerequisites, raw)
	if err != nil {
		t.Fatalf("ParseStage() error = %v", err)
	}
	want := []string{"Vectors", "Matrices", "Eigenvalues"}
	if len(result.Items) != len(want) {
		t.Fatalf("len(Items) = %d, want %d: %v", len(result.Items), len(want), result.Items)
	}
	for i, item := range result.Items {
		if item != want[i] {
			t.Errorf("Items[%d] = %q, want %q", i, item, want[i])
		}
		if !utf8.ValidString(item) {
			t.Errorf("Items[%d] = %q is not valid UTF-8", i, item)
		}
	}
}

func TestParsePrerequisites_EmptyResponse(t *testing.T) {
	for _, raw := range [][]byte{nil, []byte("   "), []byte("```json\n```")} {
		_, err := ParseStage(StagePrerequisites, raw)
		var pe *ParseError
		if !errors.As(err, &pe) {
			t.Fatalf("ParseStage(%q) error = %v, want *ParseError", raw, err)
		}
		if pe.Kind != ParseEmpty {
			t.Errorf("ParseStage(%q) kind = %v, want ParseEmpty", raw, pe.Kind)
		}
	}
}

func TestParsePrerequisites_EmptyList(t *testing.T) {
	_, err := ParseStage(StagePrerequisites, []byte(`{"prerequisites": []}`))

	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("error = %v, want *ParseError", err)
	}
	if pe.Kind != ParseEmpty {
		t.Errorf("kind = %v, want ParseEmpty", pe.Kind)
	}
}

func TestParsePrerequisites_WhitespaceItemsDropped(t *testing.T) {
	result, err := ParseStage(StagePrerequisites, []byte(`{"prerequisites": ["  Topology ", "", "   "]}`))
	if err != nil {
		t.Fatalf("ParseStage() error = %v", err)
	}
	if len(result.Items) != 1 || result.Items[0] != "Topology" {
		t.Errorf("Items = %v, want [Topology]", result.Items)
	}
}

func TestParsePrerequisites_MissingField(t *testing.T) {
	_, err := ParseStage(StagePrerequisites, []byte(`{"topics": ["a"]}`))

	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("error = %v, want *ParseError", err)
	}
	if pe.Kind != ParseUnexpectedShape {
		t.Errorf("kind = %v, want ParseUnexpectedShape", pe.Kind)
	}
}

func TestParseError_PreservesRaw(t *testing.T) {
	raw := `{"wrong": true}`
	_, err := ParseStage(StageSubtopics, []byte(raw))

	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("error = %v, want *ParseError", err)
	}
	if pe.Raw != raw {
		t.Errorf("Raw = %q, want %q", pe.Raw, raw)
	}
}

func TestParseRoadmap(t *testing.T) {
	raw := []byte(`{
		"weeks": [
			{"week": 2, "focus": "Eigenvalues", "tasks": ["Compute spectra"]},
			{"week": 1, "focus": "Vector spaces", "tasks": ["Read chapter 1", "Exercises 1-10"]}
		],
		"pitfalls": ["Skipping proofs"],
		"time_estimate": "4 weeks at 5 hours/week"
	}`)

	result, err := ParseStage(StageRoadmap, raw)
	if err != nil {
		t.Fatalf("ParseStage() error = %v", err)
	}
	rm := result.Roadmap
	if rm == nil {
		t.Fatal("Roadmap is nil")
	}
	if len(rm.Weeks) != 2 {
		t.Fatalf("len(Weeks) = %d, want 2", len(rm.Weeks))
	}
	// Weeks come back ordered regardless of response order.
	if rm.Weeks[0].Week != 1 || rm.Weeks[1].Week != 2 {
		t.Errorf("weeks out of order: %v", rm.Weeks)
	}
	if rm.TimeEstimate == "" {
		t.Error("TimeEstimate is empty")
	}
}

func TestParseRoadmap_NoWeeks(t *testing.T) {
	_, err := ParseStage(StageRoadmap, []byte(`{"weeks": [], "pitfalls": []}`))

	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("error = %v, want *ParseError", err)
	}
	if pe.Kind != ParseEmpty {
		t.Errorf("kind = %v, want ParseEmpty", pe.Kind)
	}
}

func TestParseRoadmap_WeekWithoutFocus(t *testing.T) {
	_, err := ParseStage(StageRoadmap, []byte(`{"weeks": [{"week": 1, "tasks": ["x"]}]}`))

	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("error = %v, want *ParseError", err)
	}
	if pe.Kind != ParseUnexpectedShape {
		t.Errorf("kind = %v, want ParseUnexpectedShape", pe.Kind)
	}
}

func TestParseRoadmap_NotAnObject(t *testing.T) {
	_, err := ParseStage(StageRoadmap, []byte(`just study hard for a month`))

	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("error = %v, want *ParseError", err)
	}
	if pe.Kind != ParseUnexpectedShape {
		t.Errorf("kind = %v, want ParseUnexpectedShape", pe.Kind)
	}
}

func TestParseSummary_JSON(t *testing.T) {
	raw := []byte(`{"concepts": "Spans and bases", "examples": "R^2 rotations", "pitfalls": "Confusing rank and dimension"}`)

	result, err := ParseStage(StageSummary, raw)
	if err != nil {
		t.Fatalf("ParseStage() error = %v", err)
	}
	if result.Summary.Concepts != "Spans and bases" {
		t.Errorf("Concepts = %q", result.Summary.Concepts)
	}
}

func TestParseSummary_ProseFallback(t *testing.T) {
	raw := []byte(`## Concepts
A vector space is a set closed under addition and scaling.

## Examples
The plane R^2 with the usual operations.

## Pitfalls
Not every subset is a subspace.`)

	result, err := ParseStage(StageSummary, raw)
	if err != nil {
		t.Fatalf("ParseStage() error = %v", err)
	}
	if result.Summary.Examples == "" {
		t.Error("Examples is empty after prose parse")
	}
	if result.Summary.Pitfalls != "Not every subset is a subspace." {
		t.Errorf("Pitfalls = %q", result.Summary.Pitfalls)
	}
}

func TestParseSummary_MissingSection(t *testing.T) {
	_, err := ParseStage(StageSummary, []byte(`{"concepts": "x", "examples": "y"}`))

	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("error = %v, want *ParseError", err)
	}
	if pe.Kind != ParseUnexpectedShape {
		t.Errorf("kind = %v, want ParseUnexpectedShape", pe.Kind)
	}
}

func TestParseResources(t *testing.T) {
	raw := []byte(`{"resources": [
		{"title": "Linear Algebra Done Right", "kind": "book", "detail": "Axler, 3rd ed."},
		{"title": "", "kind": "video", "detail": "dropped"},
		{"title": "3Blue1Brown series", "kind": "video", "detail": "Essence of linear algebra"}
	]}`)

	result, err := ParseStage(StageResources, raw)
	if err != nil {
		t.Fatalf("ParseStage() error = %v", err)
	}
	if len(result.Resources) != 2 {
		t.Fatalf("len(Resources) = %d, want 2 (empty title dropped)", len(result.Resources))
	}
	if result.Resources[1].Kind != "video" {
		t.Errorf("Resources[1].Kind = %q, want video", result.Resources[1].Kind)
	}
}

func TestParseResources_BareArray(t *testing.T) {
	raw := []byte(`[{"title": "MIT 18.06", "kind": "course", "detail": "OCW lectures"}]`)

	result, err := ParseStage(StageResources, raw)
	if err != nil {
		t.Fatalf("ParseStage() error = %v", err)
	}
	if len(result.Resources) != 1 {
		t.Errorf("len(Resources) = %d, want 1", len(result.Resources))
	}
}

func TestParseResources_AllTitlesEmpty(t *testing.T) {
	_, err := ParseStage(StageResources, []byte(`{"resources": [{"title": " ", "kind": "book"}]}`))

	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("error = %v, want *ParseError", err)
	}
	if pe.Kind != ParseEmpty {
		t.Errorf("kind = %v, want ParseEmpty", pe.Kind)
	}
}

func TestCleanFences(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"```json\n{\"a\":1}\n```", "{\"a\":1}\n"},
		{"```\n{\"a\":1}\n```", "{\"a\":1}\n"},
		{"{\"a\":1}", "{\"a\":1}"},
		{"no fences here", "no fences here"},
	}
	for _, tt := range tests {
		if got := cleanFences(tt.in); got != tt.want {
			t.Errorf("cleanFences(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

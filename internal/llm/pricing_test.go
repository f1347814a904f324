package llm

import (
	"math"
	"testing"
)

func TestLookupCost(t *testing.T) {
	t.Run("exact match", func(t *testing.T) {
		c := LookupCost("gpt-4o-mini")
		if c == nil {
			t.Fatal("expected pricing for gpt-4o-mini")
		}
		if c.InputPerMTok != 0.15 {
			t.Fatalf("expected 0.15, got %v", c.InputPerMTok)
		}
	})

	t.Run("openrouter vendor prefix", func(t *testing.T) {
		c := LookupCost("google/gemini-2.0-flash")
		if c == nil {
			t.Fatal("expected pricing via vendor-prefixed ID")
		}
		if c.InputPerMTok != 0.1 {
			t.Fatalf("expected 0.1, got %v", c.InputPerMTok)
		}
	})

	t.Run("unknown model", func(t *testing.T) {
		if c := LookupCost("mystery-model-9000"); c != nil {
			t.Fatalf("expected nil, got %+v", c)
		}
	})
}

func TestModelCost_Cost(t *testing.T) {
	c := ModelCost{InputPerMTok: 2, OutputPerMTok: 8}
	got := c.Cost(500_000, 250_000)
	want := 1.0 + 2.0
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("Cost() = %v, want %v", got, want)
	}
}

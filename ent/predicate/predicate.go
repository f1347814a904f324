// Code generated by ent, DO NOT EDIT.

package predicate

import (
	"entgo.io/ent/dialect/sql"
)

// ChatEvent is the predicate function for chatevent builders.
type ChatEvent func(*sql.Selector)

// JourneyEvent is the predicate function for journeyevent builders.
type JourneyEvent func(*sql.Selector)

// LLMRequestEvent is the predicate function for llmrequestevent builders.
type LLMRequestEvent func(*sql.Selector)

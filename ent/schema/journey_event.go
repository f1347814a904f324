package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// JourneyEvent records stage lifecycle transitions within a learning journey:
// a journey starts when a topic is entered and accumulates one event per
// stage outcome (ready, confirmed, revised, failed) until reset.
type JourneyEvent struct {
	ent.Schema
}

func (JourneyEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (JourneyEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("journey_id").
			NotEmpty().
			Comment("UUID grouping events for one topic session"),
		field.String("topic").
			NotEmpty().
			Comment("Free-text topic the journey is about"),
		field.String("stage").
			Comment("Stage name: prerequisites, subtopics, roadmap, summary, resources, chat; empty for start/reset"),
		field.String("action").
			NotEmpty().
			Comment("start, ready, confirmed, revised, failed, chat, reset"),
		field.Text("payload").
			Default("").
			Comment("JSON-encoded stage result or error detail"),
	}
}

func (JourneyEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("journey_id"),
		index.Fields("action"),
	}
}

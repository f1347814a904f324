package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// ChatEvent records one role-tagged turn of the open-ended chat that
// follows the staged pipeline. Turns are append-only.
type ChatEvent struct {
	ent.Schema
}

func (ChatEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (ChatEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("journey_id").
			NotEmpty().
			Comment("UUID of the journey this turn belongs to"),
		field.String("role").
			NotEmpty().
			Comment("user or assistant"),
		field.Text("content").
			NotEmpty().
			Comment("Message text"),
	}
}

func (ChatEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("journey_id"),
	}
}

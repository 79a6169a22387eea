package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// SessionEvent records session lifecycle events (start/end).
type SessionEvent struct {
	ent.Schema
}

func (SessionEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (SessionEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("session_id").
			NotEmpty().
			Comment("UUID grouping events in a session"),
		field.String("drill").
			NotEmpty().
			Comment("arithmetic, sequence or flags"),
		field.String("action").
			NotEmpty().
			Comment("start or end"),
		field.String("end_reason").
			Optional().
			Comment("exhausted, reset or restart (on end only)"),
		field.Int("questions_served").
			Default(0).
			Comment("Total questions (on end only)"),
		field.Int("correct_answers").
			Default(0).
			Comment("Total correct (on end only)"),
		field.Int64("duration_ms").
			Default(0).
			Comment("Session wall time in milliseconds (on end only)"),
		field.String("rank").
			Optional().
			Comment("Rank title earned (on end only)"),
		field.Text("config").
			Optional().
			Comment("JSON drill configuration (on start only)"),
	}
}

func (SessionEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("session_id"),
		index.Fields("action"),
	}
}

package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// AnswerEvent records a single graded answer within a session.
type AnswerEvent struct {
	ent.Schema
}

func (AnswerEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (AnswerEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("session_id").
			NotEmpty().
			Comment("Links to SessionEvent"),
		field.String("drill").
			NotEmpty().
			Comment("arithmetic, sequence or flags"),
		field.String("prompt").
			NotEmpty().
			Comment("The expression, sequence or country asked"),
		field.String("expected").
			NotEmpty().
			Comment("The canonical correct answer"),
		field.String("submitted").
			Optional().
			Comment("What the learner entered"),
		field.Bool("correct").
			Comment("Whether the answer was correct"),
		field.Int64("elapsed_ms").
			Comment("Milliseconds from input prompt to answer"),
	}
}

func (AnswerEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("session_id"),
		index.Fields("drill"),
		index.Fields("correct"),
	}
}

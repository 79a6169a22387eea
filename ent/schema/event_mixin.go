package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
	"entgo.io/ent/schema/mixin"
)

// EventMixin holds the ordering fields every journal event carries.
type EventMixin struct {
	mixin.Schema
}

func (EventMixin) Fields() []ent.Field {
	return []ent.Field{
		field.Int64("sequence").
			Unique().
			Immutable().
			Comment("Global sequence shared by every event table"),
		field.Time("timestamp").
			Default(func() time.Time { return time.Now().UTC() }).
			Immutable().
			Comment("UTC time the event was written"),
	}
}

func (EventMixin) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("timestamp"),
	}
}

// EventTable pairs an event schema with its table name.
type EventTable struct {
	Name   string
	Schema ent.Interface
}

// EventTables lists the journal tables in creation order.
func EventTables() []EventTable {
	return []EventTable{
		{Name: "session_events", Schema: SessionEvent{}},
		{Name: "answer_events", Schema: AnswerEvent{}},
	}
}

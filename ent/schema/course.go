package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// Course is a generated course: its plan plus the module content built so
// far. Module content is stored as an opaque JSON blob; the domain layer
// owns its shape.
type Course struct {
	ent.Schema
}

func (Course) Fields() []ent.Field {
	return []ent.Field{
		field.String("course_id").
			Unique().
			Immutable().
			Comment("External UUID handle"),
		field.Text("prompt").
			Default("").
			Comment("Original user prompt"),
		field.String("title").
			NotEmpty(),
		field.JSON("topics", []string{}).
			Comment("Full ordered module plan"),
		field.JSON("pending_topics", []string{}).
			Optional().
			Comment("Topics not yet generated, in order"),
		field.Bytes("modules").
			Optional().
			Comment("JSON object mapping topic to module content"),
		field.Time("created_at").
			Default(time.Now).
			Immutable(),
	}
}

func (Course) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("course_id"),
		index.Fields("created_at"),
	}
}

// Code generated by ent, DO NOT EDIT.

package migrate

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

var (
	// ChatEventsColumns holds the columns for the "chat_events" table.
	ChatEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "journey_id", Type: field.TypeString},
		{Name: "role", Type: field.TypeString},
		{Name: "content", Type: field.TypeString, Size: 2147483647},
	}
	// ChatEventsTable holds the schema information for the "chat_events" table.
	ChatEventsTable = &schema.Table{
		Name:       "chat_events",
		Columns:    ChatEventsColumns,
		PrimaryKey: []*schema.Column{ChatEventsColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "chatevent_sequence",
				Unique:  false,
				Columns: []*schema.Column{ChatEventsColumns[1]},
			},
			{
				Name:    "chatevent_timestamp",
				Unique:  false,
				Columns: []*schema.Column{ChatEventsColumns[2]},
			},
			{
				Name:    "chatevent_journey_id",
				Unique:  false,
				Columns: []*schema.Column{ChatEventsColumns[3]},
			},
		},
	}
	// JourneyEventsColumns holds the columns for the "journey_events" table.
	JourneyEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "journey_id", Type: field.TypeString},
		{Name: "topic", Type: field.TypeString},
		{Name: "stage", Type: field.TypeString},
		{Name: "action", Type: field.TypeString},
		{Name: "payload", Type: field.TypeString, Size: 2147483647, Default: ""},
	}
	// JourneyEventsTable holds the schema information for the "journey_events" table.
	JourneyEventsTable = &schema.Table{
		Name:       "journey_events",
		Columns:    JourneyEventsColumns,
		PrimaryKey: []*schema.Column{JourneyEventsColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "journeyevent_sequence",
				Unique:  false,
				Columns: []*schema.Column{JourneyEventsColumns[1]},
			},
			{
				Name:    "journeyevent_timestamp",
				Unique:  false,
				Columns: []*schema.Column{JourneyEventsColumns[2]},
			},
			{
				Name:    "journeyevent_journey_id",
				Unique:  false,
				Columns: []*schema.Column{JourneyEventsColumns[3]},
			},
			{
				Name:    "journeyevent_action",
				Unique:  false,
				Columns: []*schema.Column{JourneyEventsColumns[6]},
			},
		},
	}
	// LlmRequestEventsColumns holds the columns for the "llm_request_events" table.
	LlmRequestEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "provider", Type: field.TypeString},
		{Name: "model", Type: field.TypeString},
		{Name: "purpose", Type: field.TypeString},
		{Name: "input_tokens", Type: field.TypeInt, Default: 0},
		{Name: "output_tokens", Type: field.TypeInt, Default: 0},
		{Name: "latency_ms", Type: field.TypeInt64, Default: 0},
		{Name: "success", Type: field.TypeBool},
		{Name: "error_message", Type: field.TypeString, Default: ""},
		{Name: "request_body", Type: field.TypeString, Size: 2147483647, Default: ""},
		{Name: "response_body", Type: field.TypeString, Size: 2147483647, Default: ""},
	}
	// LlmRequestEventsTable holds the schema information for the "llm_request_events" table.
	LlmRequestEventsTable = &schema.Table{
		Name:       "llm_request_events",
		Columns:    LlmRequestEventsColumns,
		PrimaryKey: []*schema.Column{LlmRequestEventsColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "llmrequestevent_sequence",
				Unique:  false,
				Columns: []*schema.Column{LlmRequestEventsColumns[1]},
			},
			{
				Name:    "llmrequestevent_timestamp",
				Unique:  false,
				Columns: []*schema.Column{LlmRequestEventsColumns[2]},
			},
			{
				Name:    "llmrequestevent_provider",
				Unique:  false,
				Columns: []*schema.Column{LlmRequestEventsColumns[3]},
			},
			{
				Name:    "llmrequestevent_purpose",
				Unique:  false,
				Columns: []*schema.Column{LlmRequestEventsColumns[5]},
			},
			{
				Name:    "llmrequestevent_success",
				Unique:  false,
				Columns: []*schema.Column{LlmRequestEventsColumns[9]},
			},
		},
	}
	// Tables holds all the tables in the schema.
	Tables = []*schema.Table{
		ChatEventsTable,
		JourneyEventsTable,
		LlmRequestEventsTable,
	}
)

func init() {
}

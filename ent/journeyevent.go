// Code generated by ent, DO NOT EDIT.

package ent

import (
	"fmt"
	"strings"
	"time"

	"entgo.io/ent"
	"entgo.io/ent/dialect/sql"
	"github.com/rkapur/pathwise/ent/journeyevent"
)

// JourneyEvent is the model entity for the JourneyEvent schema.
type JourneyEvent struct {
	config `json:"-"`
	// ID of the ent.
	ID int `json:"id,omitempty"`
	// Monotonically increasing global sequence number
	Sequence int64 `json:"sequence,omitempty"`
	// UTC wall-clock time of the event
	Timestamp time.Time `json:"timestamp,omitempty"`
	// UUID grouping events for one topic session
	JourneyID string `json:"journey_id,omitempty"`
	// Free-text topic the journey is about
	Topic string `json:"topic,omitempty"`
	// Stage name: prerequisites, subtopics, roadmap, summary, resources, chat; empty for start/reset
	Stage string `json:"stage,omitempty"`
	// start, ready, confirmed, revised, failed, chat, reset
	Action string `json:"action,omitempty"`
	// JSON-encoded stage result or error detail
	Payload      string `json:"payload,omitempty"`
	selectValues sql.SelectValues
}

// scanValues returns the types for scanning values from sql.Rows.
func (*JourneyEvent) scanValues(columns []string) ([]any, error) {
	values := make([]any, len(columns))
	for i := range columns {
		switch columns[i] {
		case journeyevent.FieldID, journeyevent.FieldSequence:
			values[i] = new(sql.NullInt64)
		case journeyevent.FieldJourneyID, journeyevent.FieldTopic, journeyevent.FieldStage, journeyevent.FieldAction, journeyevent.FieldPayload:
			values[i] = new(sql.NullString)
		case journeyevent.FieldTimestamp:
			values[i] = new(sql.NullTime)
		default:
			values[i] = new(sql.UnknownType)
		}
	}
	return values, nil
}

// assignValues assigns the values that were returned from sql.Rows (after scanning)
// to the JourneyEvent fields.
func (_m *JourneyEvent) assignValues(columns []string, values []any) error {
	if m, n := len(values), len(columns); m < n {
		return fmt.Errorf("mismatch number of scan values: %d != %d", m, n)
	}
	for i := range columns {
		switch columns[i] {
		case journeyevent.FieldID:
			value, ok := values[i].(*sql.NullInt64)
			if !ok {
				return fmt.Errorf("unexpected type %T for field id", value)
			}
			_m.ID = int(value.Int64)
		case journeyevent.FieldSequence:
			if value, ok := values[i].(*sql.NullInt64); !ok {
				return fmt.Errorf("unexpected type %T for field sequence", values[i])
			} else if value.Valid {
				_m.Sequence = value.Int64
			}
		case journeyevent.FieldTimestamp:
			if value, ok := values[i].(*sql.NullTime); !ok {
				return fmt.Errorf("unexpected type %T for field timestamp", values[i])
			} else if value.Valid {
				_m.Timestamp = value.Time
			}
		case journeyevent.FieldJourneyID:
			if value, ok := values[i].(*sql.NullString); !ok {
				return fmt.Errorf("unexpected type %T for field journey_id", values[i])
			} else if value.Valid {
				_m.JourneyID = value.String
			}
		case journeyevent.FieldTopic:
			if value, ok := values[i].(*sql.NullString); !ok {
				return fmt.Errorf("unexpected type %T for field topic", values[i])
			} else if value.Valid {
				_m.Topic = value.String
			}
		case journeyevent.FieldStage:
			if value, ok := values[i].(*sql.NullString); !ok {
				return fmt.Errorf("unexpected type %T for field stage", values[i])
			} else if value.Valid {
				_m.Stage = value.String
			}
		case journeyevent.FieldAction:
			if value, ok := values[i].(*sql.NullString); !ok {
				return fmt.Errorf("unexpected type %T for field action", values[i])
			} else if value.Valid {
				_m.Action = value.String
			}
		case journeyevent.FieldPayload:
			if value, ok := values[i].(*sql.NullString); !ok {
				return fmt.Errorf("unexpected type %T for field payload", values[i])
			} else if value.Valid {
				_m.Payload = value.String
			}
		default:
			_m.selectValues.Set(columns[i], values[i])
		}
	}
	return nil
}

// Value returns the ent.Value that was dynamically selected and assigned to the JourneyEvent.
// This includes values selected through modifiers, order, etc.
func (_m *JourneyEvent) Value(name string) (ent.Value, error) {
	return _m.selectValues.Get(name)
}

// Update returns a builder for updating this JourneyEvent.
// Note that you need to call JourneyEvent.Unwrap() before calling this method if this JourneyEvent
// was returned from a transaction, and the transaction was committed or rolled back.
func (_m *JourneyEvent) Update() *JourneyEventUpdateOne {
	return NewJourneyEventClient(_m.config).UpdateOne(_m)
}

// Unwrap unwraps the JourneyEvent entity that was returned from a transaction after it was closed,
// so that all future queries will be executed through the driver which created the transaction.
func (_m *JourneyEvent) Unwrap() *JourneyEvent {
	_tx, ok := _m.config.driver.(*txDriver)
	if !ok {
		panic("ent: JourneyEvent is not a transactional entity")
	}
	_m.config.driver = _tx.drv
	return _m
}

// String implements the fmt.Stringer.
func (_m *JourneyEvent) String() string {
	var builder strings.Builder
	builder.WriteString("JourneyEvent(")
	builder.WriteString(fmt.Sprintf("id=%v, ", _m.ID))
	builder.WriteString("sequence=")
	builder.WriteString(fmt.Sprintf("%v", _m.Sequence))
	builder.WriteString(", ")
	builder.WriteString("timestamp=")
	builder.WriteString(_m.Timestamp.Format(time.ANSIC))
	builder.WriteString(", ")
	builder.WriteString("journey_id=")
	builder.WriteString(_m.JourneyID)
	builder.WriteString(", ")
	builder.WriteString("topic=")
	builder.WriteString(_m.Topic)
	builder.WriteString(", ")
	builder.WriteString("stage=")
	builder.WriteString(_m.Stage)
	builder.WriteString(", ")
	builder.WriteString("action=")
	builder.WriteString(_m.Action)
	builder.WriteString(", ")
	builder.WriteString("payload=")
	builder.WriteString(_m.Payload)
	builder.WriteByte(')')
	return builder.String()
}

// JourneyEvents is a parsable slice of JourneyEvent.
type JourneyEvents []*JourneyEvent

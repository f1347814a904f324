// Code generated by ent, DO NOT EDIT.

package chatevent

import (
	"time"

	"entgo.io/ent/dialect/sql"
	"github.com/rkapur/pathwise/ent/predicate"
)

// ID filters vertices based on their ID field.
func ID(id int) predicate.ChatEvent {
	return predicate.ChatEvent(sql.FieldEQ(FieldID, id))
}

// IDEQ applies the EQ predicate on the ID field.
func IDEQ(id int) predicate.ChatEvent {
	return predicate.ChatEvent(sql.FieldEQ(FieldID, id))
}

// IDNEQ applies the NEQ predicate on the ID field.
func IDNEQ(id int) predicate.ChatEvent {
	return predicate.ChatEvent(sql.FieldNEQ(FieldID, id))
}

// IDIn applies the In predicate on the ID field.
func IDIn(ids ...int) predicate.ChatEvent {
	return predicate.ChatEvent(sql.FieldIn(FieldID, ids...))
}

// IDNotIn applies the NotIn predicate on the ID field.
func IDNotIn(ids ...int) predicate.ChatEvent {
	return predicate.ChatEvent(sql.FieldNotIn(FieldID, ids...))
}

// IDGT applies the GT predicate on the ID field.
func IDGT(id int) predicate.ChatEvent {
	return predicate.ChatEvent(sql.FieldGT(FieldID, id))
}

// IDGTE applies the GTE predicate on the ID field.
func IDGTE(id int) predicate.ChatEvent {
	return predicate.ChatEvent(sql.FieldGTE(FieldID, id))
}

// IDLT applies the LT predicate on the ID field.
func IDLT(id int) predicate.ChatEvent {
	return predicate.ChatEvent(sql.FieldLT(FieldID, id))
}

// IDLTE applies the LTE predicate on the ID field.
func IDLTE(id int) predicate.ChatEvent {
	return predicate.ChatEvent(sql.FieldLTE(FieldID, id))
}

// Sequence applies equality check predicate on the "sequence" field. It's identical to SequenceEQ.
func Sequence(v int64) predicate.ChatEvent {
	return predicate.ChatEvent(sql.FieldEQ(FieldSequence, v))
}

// Timestamp applies equality check predicate on the "timestamp" field. It's identical to TimestampEQ.
func Timestamp(v time.Time) predicate.ChatEvent {
	return predicate.ChatEvent(sql.FieldEQ(FieldTimestamp, v))
}

// JourneyID applies equality check predicate on the "journey_id" field. It's identical to JourneyIDEQ.
func JourneyID(v string) predicate.ChatEvent {
	return predicate.ChatEvent(sql.FieldEQ(FieldJourneyID, v))
}

// Role applies equality check predicate on the "role" field. It's identical to RoleEQ.
func Role(v string) predicate.ChatEvent {
	return predicate.ChatEvent(sql.FieldEQ(FieldRole, v))
}

// Content applies equality check predicate on the "content" field. It's identical to ContentEQ.
func Content(v string) predicate.ChatEvent {
	return predicate.ChatEvent(sql.FieldEQ(FieldContent, v))
}

// SequenceEQ applies the EQ predicate on the "sequence" field.
func SequenceEQ(v int64) predicate.ChatEvent {
	return predicate.ChatEvent(sql.FieldEQ(FieldSequence, v))
}

// SequenceNEQ applies the NEQ predicate on the "sequence" field.
func SequenceNEQ(v int64) predicate.ChatEvent {
	return predicate.ChatEvent(sql.FieldNEQ(FieldSequence, v))
}

// SequenceIn applies the In predicate on the "sequence" field.
func SequenceIn(vs ...int64) predicate.ChatEvent {
	return predicate.ChatEvent(sql.FieldIn(FieldSequence, vs...))
}

// SequenceNotIn applies the NotIn predicate on the "sequence" field.
func SequenceNotIn(vs ...int64) predicate.ChatEvent {
	return predicate.ChatEvent(sql.FieldNotIn(FieldSequence, vs...))
}

// SequenceGT applies the GT predicate on the "sequence" field.
func SequenceGT(v int64) predicate.ChatEvent {
	return predicate.ChatEvent(sql.FieldGT(FieldSequence, v))
}

// SequenceGTE applies the GTE predicate on the "sequence" field.
func SequenceGTE(v int64) predicate.ChatEvent {
	return predicate.ChatEvent(sql.FieldGTE(FieldSequence, v))
}

// SequenceLT applies the LT predicate on the "sequence" field.
func SequenceLT(v int64) predicate.ChatEvent {
	return predicate.ChatEvent(sql.FieldLT(FieldSequence, v))
}

// SequenceLTE applies the LTE predicate on the "sequence" field.
func SequenceLTE(v int64) predicate.ChatEvent {
	return predicate.ChatEvent(sql.FieldLTE(FieldSequence, v))
}

// TimestampEQ applies the EQ predicate on the "timestamp" field.
func TimestampEQ(v time.Time) predicate.ChatEvent {
	return predicate.ChatEvent(sql.FieldEQ(FieldTimestamp, v))
}

// TimestampNEQ applies the NEQ predicate on the "timestamp" field.
func TimestampNEQ(v time.Time) predicate.ChatEvent {
	return predicate.ChatEvent(sql.FieldNEQ(FieldTimestamp, v))
}

// TimestampIn applies the In predicate on the "timestamp" field.
func TimestampIn(vs ...time.Time) predicate.ChatEvent {
	return predicate.ChatEvent(sql.FieldIn(FieldTimestamp, vs...))
}

// TimestampNotIn applies the NotIn predicate on the "timestamp" field.
func TimestampNotIn(vs ...time.Time) predicate.ChatEvent {
	return predicate.ChatEvent(sql.FieldNotIn(FieldTimestamp, vs...))
}

// TimestampGT applies the GT predicate on the "timestamp" field.
func TimestampGT(v time.Time) predicate.ChatEvent {
	return predicate.ChatEvent(sql.FieldGT(FieldTimestamp, v))
}

// TimestampGTE applies the GTE predicate on the "timestamp" field.
func TimestampGTE(v time.Time) predicate.ChatEvent {
	return predicate.ChatEvent(sql.FieldGTE(FieldTimestamp, v))
}

// TimestampLT applies the LT predicate on the "timestamp" field.
func TimestampLT(v time.Time) predicate.ChatEvent {
	return predicate.ChatEvent(sql.FieldLT(FieldTimestamp, v))
}

// TimestampLTE applies the LTE predicate on the "timestamp" field.
func TimestampLTE(v time.Time) predicate.ChatEvent {
	return predicate.ChatEvent(sql.FieldLTE(FieldTimestamp, v))
}

// JourneyIDEQ applies the EQ predicate on the "journey_id" field.
func JourneyIDEQ(v string) predicate.ChatEvent {
	return predicate.ChatEvent(sql.FieldEQ(FieldJourneyID, v))
}

// JourneyIDNEQ applies the NEQ predicate on the "journey_id" field.
func JourneyIDNEQ(v string) predicate.ChatEvent {
	return predicate.ChatEvent(sql.FieldNEQ(FieldJourneyID, v))
}

// JourneyIDIn applies the In predicate on the "journey_id" field.
func JourneyIDIn(vs ...string) predicate.ChatEvent {
	return predicate.ChatEvent(sql.FieldIn(FieldJourneyID, vs...))
}

// JourneyIDNotIn applies the NotIn predicate on the "journey_id" field.
func JourneyIDNotIn(vs ...string) predicate.ChatEvent {
	return predicate.ChatEvent(sql.FieldNotIn(FieldJourneyID, vs...))
}

// JourneyIDGT applies the GT predicate on the "journey_id" field.
func JourneyIDGT(v string) predicate.ChatEvent {
	return predicate.ChatEvent(sql.FieldGT(FieldJourneyID, v))
}

// JourneyIDGTE applies the GTE predicate on the "journey_id" field.
func JourneyIDGTE(v string) predicate.ChatEvent {
	return predicate.ChatEvent(sql.FieldGTE(FieldJourneyID, v))
}

// JourneyIDLT applies the LT predicate on the "journey_id" field.
func JourneyIDLT(v string) predicate.ChatEvent {
	return predicate.ChatEvent(sql.FieldLT(FieldJourneyID, v))
}

// JourneyIDLTE applies the LTE predicate on the "journey_id" field.
func JourneyIDLTE(v string) predicate.ChatEvent {
	return predicate.ChatEvent(sql.FieldLTE(FieldJourneyID, v))
}

// JourneyIDContains applies the Contains predicate on the "journey_id" field.
func JourneyIDContains(v string) predicate.ChatEvent {
	return predicate.ChatEvent(sql.FieldContains(FieldJourneyID, v))
}

// JourneyIDHasPrefix applies the HasPrefix predicate on the "journey_id" field.
func JourneyIDHasPrefix(v string) predicate.ChatEvent {
	return predicate.ChatEvent(sql.FieldHasPrefix(FieldJourneyID, v))
}

// JourneyIDHasSuffix applies the HasSuffix predicate on the "journey_id" field.
func JourneyIDHasSuffix(v string) predicate.ChatEvent {
	return predicate.ChatEvent(sql.FieldHasSuffix(FieldJourneyID, v))
}

// JourneyIDEqualFold applies the EqualFold predicate on the "journey_id" field.
func JourneyIDEqualFold(v string) predicate.ChatEvent {
	return predicate.ChatEvent(sql.FieldEqualFold(FieldJourneyID, v))
}

// JourneyIDContainsFold applies the ContainsFold predicate on the "journey_id" field.
func JourneyIDContainsFold(v string) predicate.ChatEvent {
	return predicate.ChatEvent(sql.FieldContainsFold(FieldJourneyID, v))
}

// RoleEQ applies the EQ predicate on the "role" field.
func RoleEQ(v string) predicate.ChatEvent {
	return predicate.ChatEvent(sql.FieldEQ(FieldRole, v))
}

// RoleNEQ applies the NEQ predicate on the "role" field.
func RoleNEQ(v string) predicate.ChatEvent {
	return predicate.ChatEvent(sql.FieldNEQ(FieldRole, v))
}

// RoleIn applies the In predicate on the "role" field.
func RoleIn(vs ...string) predicate.ChatEvent {
	return predicate.ChatEvent(sql.FieldIn(FieldRole, vs...))
}

// RoleNotIn applies the NotIn predicate on the "role" field.
func RoleNotIn(vs ...string) predicate.ChatEvent {
	return predicate.ChatEvent(sql.FieldNotIn(FieldRole, vs...))
}

// RoleGT applies the GT predicate on the "role" field.
func RoleGT(v string) predicate.ChatEvent {
	return predicate.ChatEvent(sql.FieldGT(FieldRole, v))
}

// RoleGTE applies the GTE predicate on the "role" field.
func RoleGTE(v string) predicate.ChatEvent {
	return predicate.ChatEvent(sql.FieldGTE(FieldRole, v))
}

// RoleLT applies the LT predicate on the "role" field.
func RoleLT(v string) predicate.ChatEvent {
	return predicate.ChatEvent(sql.FieldLT(FieldRole, v))
}

// RoleLTE applies the LTE predicate on the "role" field.
func RoleLTE(v string) predicate.ChatEvent {
	return predicate.ChatEvent(sql.FieldLTE(FieldRole, v))
}

// RoleContains applies the Contains predicate on the "role" field.
func RoleContains(v string) predicate.ChatEvent {
	return predicate.ChatEvent(sql.FieldContains(FieldRole, v))
}

// RoleHasPrefix applies the HasPrefix predicate on the "role" field.
func RoleHasPrefix(v string) predicate.ChatEvent {
	return predicate.ChatEvent(sql.FieldHasPrefix(FieldRole, v))
}

// RoleHasSuffix applies the HasSuffix predicate on the "role" field.
func RoleHasSuffix(v string) predicate.ChatEvent {
	return predicate.ChatEvent(sql.FieldHasSuffix(FieldRole, v))
}

// RoleEqualFold applies the EqualFold predicate on the "role" field.
func RoleEqualFold(v string) predicate.ChatEvent {
	return predicate.ChatEvent(sql.FieldEqualFold(FieldRole, v))
}

// RoleContainsFold applies the ContainsFold predicate on the "role" field.
func RoleContainsFold(v string) predicate.ChatEvent {
	return predicate.ChatEvent(sql.FieldContainsFold(FieldRole, v))
}

// ContentEQ applies the EQ predicate on the "content" field.
func ContentEQ(v string) predicate.ChatEvent {
	return predicate.ChatEvent(sql.FieldEQ(FieldContent, v))
}

// ContentNEQ applies the NEQ predicate on the "content" field.
func ContentNEQ(v string) predicate.ChatEvent {
	return predicate.ChatEvent(sql.FieldNEQ(FieldContent, v))
}

// ContentIn applies the In predicate on the "content" field.
func ContentIn(vs ...string) predicate.ChatEvent {
	return predicate.ChatEvent(sql.FieldIn(FieldContent, vs...))
}

// ContentNotIn applies the NotIn predicate on the "content" field.
func ContentNotIn(vs ...string) predicate.ChatEvent {
	return predicate.ChatEvent(sql.FieldNotIn(FieldContent, vs...))
}

// ContentGT applies the GT predicate on the "content" field.
func ContentGT(v string) predicate.ChatEvent {
	return predicate.ChatEvent(sql.FieldGT(FieldContent, v))
}

// ContentGTE applies the GTE predicate on the "content" field.
func ContentGTE(v string) predicate.ChatEvent {
	return predicate.ChatEvent(sql.FieldGTE(FieldContent, v))
}

// ContentLT applies the LT predicate on the "content" field.
func ContentLT(v string) predicate.ChatEvent {
	return predicate.ChatEvent(sql.FieldLT(FieldContent, v))
}

// ContentLTE applies the LTE predicate on the "content" field.
func ContentLTE(v string) predicate.ChatEvent {
	return predicate.ChatEvent(sql.FieldLTE(FieldContent, v))
}

// ContentContains applies the Contains predicate on the "content" field.
func ContentContains(v string) predicate.ChatEvent {
	return predicate.ChatEvent(sql.FieldContains(FieldContent, v))
}

// ContentHasPrefix applies the HasPrefix predicate on the "content" field.
func ContentHasPrefix(v string) predicate.ChatEvent {
	return predicate.ChatEvent(sql.FieldHasPrefix(FieldContent, v))
}

// ContentHasSuffix applies the HasSuffix predicate on the "content" field.
func ContentHasSuffix(v string) predicate.ChatEvent {
	return predicate.ChatEvent(sql.FieldHasSuffix(FieldContent, v))
}

// ContentEqualFold applies the EqualFold predicate on the "content" field.
func ContentEqualFold(v string) predicate.ChatEvent {
	return predicate.ChatEvent(sql.FieldEqualFold(FieldContent, v))
}

// ContentContainsFold applies the ContainsFold predicate on the "content" field.
func ContentContainsFold(v string) predicate.ChatEvent {
	return predicate.ChatEvent(sql.FieldContainsFold(FieldContent, v))
}

// And groups predicates with the AND operator between them.
func And(predicates ...predicate.ChatEvent) predicate.ChatEvent {
	return predicate.ChatEvent(sql.AndPredicates(predicates...))
}

// Or groups predicates with the OR operator between them.
func Or(predicates ...predicate.ChatEvent) predicate.ChatEvent {
	return predicate.ChatEvent(sql.OrPredicates(predicates...))
}

// Not applies the not operator on the given predicate.
func Not(p predicate.ChatEvent) predicate.ChatEvent {
	return predicate.ChatEvent(sql.NotPredicates(p))
}

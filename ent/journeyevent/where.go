// Code generated by ent, DO NOT EDIT.

package journeyevent

import (
	"time"

	"entgo.io/ent/dialect/sql"
	"github.com/rkapur/pathwise/ent/predicate"
)

// ID filters vertices based on their ID field.
func ID(id int) predicate.JourneyEvent {
	return predicate.JourneyEvent(sql.FieldEQ(FieldID, id))
}

// IDEQ applies the EQ predicate on the ID field.
func IDEQ(id int) predicate.JourneyEvent {
	return predicate.JourneyEvent(sql.FieldEQ(FieldID, id))
}

// IDNEQ applies the NEQ predicate on the ID field.
func IDNEQ(id int) predicate.JourneyEvent {
	return predicate.JourneyEvent(sql.FieldNEQ(FieldID, id))
}

// IDIn applies the In predicate on the ID field.
func IDIn(ids ...int) predicate.JourneyEvent {
	return predicate.JourneyEvent(sql.FieldIn(FieldID, ids...))
}

// IDNotIn applies the NotIn predicate on the ID field.
func IDNotIn(ids ...int) predicate.JourneyEvent {
	return predicate.JourneyEvent(sql.FieldNotIn(FieldID, ids...))
}

// IDGT applies the GT predicate on the ID field.
func IDGT(id int) predicate.JourneyEvent {
	return predicate.JourneyEvent(sql.FieldGT(FieldID, id))
}

// IDGTE applies the GTE predicate on the ID field.
func IDGTE(id int) predicate.JourneyEvent {
	return predicate.JourneyEvent(sql.FieldGTE(FieldID, id))
}

// IDLT applies the LT predicate on the ID field.
func IDLT(id int) predicate.JourneyEvent {
	return predicate.JourneyEvent(sql.FieldLT(FieldID, id))
}

// IDLTE applies the LTE predicate on the ID field.
func IDLTE(id int) predicate.JourneyEvent {
	return predicate.JourneyEvent(sql.FieldLTE(FieldID, id))
}

// Sequence applies equality check predicate on the "sequence" field. It's identical to SequenceEQ.
func Sequence(v int64) predicate.JourneyEvent {
	return predicate.JourneyEvent(sql.FieldEQ(FieldSequence, v))
}

// Timestamp applies equality check predicate on the "timestamp" field. It's identical to TimestampEQ.
func Timestamp(v time.Time) predicate.JourneyEvent {
	return predicate.JourneyEvent(sql.FieldEQ(FieldTimestamp, v))
}

// JourneyID applies equality check predicate on the "journey_id" field. It's identical to JourneyIDEQ.
func JourneyID(v string) predicate.JourneyEvent {
	return predicate.JourneyEvent(sql.FieldEQ(FieldJourneyID, v))
}

// Topic applies equality check predicate on the "topic" field. It's identical to TopicEQ.
func Topic(v string) predicate.JourneyEvent {
	return predicate.JourneyEvent(sql.FieldEQ(FieldTopic, v))
}

// Stage applies equality check predicate on the "stage" field. It's identical to StageEQ.
func Stage(v string) predicate.JourneyEvent {
	return predicate.JourneyEvent(sql.FieldEQ(FieldStage, v))
}

// Action applies equality check predicate on the "action" field. It's identical to ActionEQ.
func Action(v string) predicate.JourneyEvent {
	return predicate.JourneyEvent(sql.FieldEQ(FieldAction, v))
}

// Payload applies equality check predicate on the "payload" field. It's identical to PayloadEQ.
func Payload(v string) predicate.JourneyEvent {
	return predicate.JourneyEvent(sql.FieldEQ(FieldPayload, v))
}

// SequenceEQ applies the EQ predicate on the "sequence" field.
func SequenceEQ(v int64) predicate.JourneyEvent {
	return predicate.JourneyEvent(sql.FieldEQ(FieldSequence, v))
}

// SequenceNEQ applies the NEQ predicate on the "sequence" field.
func SequenceNEQ(v int64) predicate.JourneyEvent {
	return predicate.JourneyEvent(sql.FieldNEQ(FieldSequence, v))
}

// SequenceIn applies the In predicate on the "sequence" field.
func SequenceIn(vs ...int64) predicate.JourneyEvent {
	return predicate.JourneyEvent(sql.FieldIn(FieldSequence, vs...))
}

// SequenceNotIn applies the NotIn predicate on the "sequence" field.
func SequenceNotIn(vs ...int64) predicate.JourneyEvent {
	return predicate.JourneyEvent(sql.FieldNotIn(FieldSequence, vs...))
}

// SequenceGT applies the GT predicate on the "sequence" field.
func SequenceGT(v int64) predicate.JourneyEvent {
	return predicate.JourneyEvent(sql.FieldGT(FieldSequence, v))
}

// SequenceGTE applies the GTE predicate on the "sequence" field.
func SequenceGTE(v int64) predicate.JourneyEvent {
	return predicate.JourneyEvent(sql.FieldGTE(FieldSequence, v))
}

// SequenceLT applies the LT predicate on the "sequence" field.
func SequenceLT(v int64) predicate.JourneyEvent {
	return predicate.JourneyEvent(sql.FieldLT(FieldSequence, v))
}

// SequenceLTE applies the LTE predicate on the "sequence" field.
func SequenceLTE(v int64) predicate.JourneyEvent {
	return predicate.JourneyEvent(sql.FieldLTE(FieldSequence, v))
}

// TimestampEQ applies the EQ predicate on the "timestamp" field.
func TimestampEQ(v time.Time) predicate.JourneyEvent {
	return predicate.JourneyEvent(sql.FieldEQ(FieldTimestamp, v))
}

// TimestampNEQ applies the NEQ predicate on the "timestamp" field.
func TimestampNEQ(v time.Time) predicate.JourneyEvent {
	return predicate.JourneyEvent(sql.FieldNEQ(FieldTimestamp, v))
}

// TimestampIn applies the In predicate on the "timestamp" field.
func TimestampIn(vs ...time.Time) predicate.JourneyEvent {
	return predicate.JourneyEvent(sql.FieldIn(FieldTimestamp, vs...))
}

// TimestampNotIn applies the NotIn predicate on the "timestamp" field.
func TimestampNotIn(vs ...time.Time) predicate.JourneyEvent {
	return predicate.JourneyEvent(sql.FieldNotIn(FieldTimestamp, vs...))
}

// TimestampGT applies the GT predicate on the "timestamp" field.
func TimestampGT(v time.Time) predicate.JourneyEvent {
	return predicate.JourneyEvent(sql.FieldGT(FieldTimestamp, v))
}

// TimestampGTE applies the GTE predicate on the "timestamp" field.
func TimestampGTE(v time.Time) predicate.JourneyEvent {
	return predicate.JourneyEvent(sql.FieldGTE(FieldTimestamp, v))
}

// TimestampLT applies the LT predicate on the "timestamp" field.
func TimestampLT(v time.Time) predicate.JourneyEvent {
	return predicate.JourneyEvent(sql.FieldLT(FieldTimestamp, v))
}

// TimestampLTE applies the LTE predicate on the "timestamp" field.
func TimestampLTE(v time.Time) predicate.JourneyEvent {
	return predicate.JourneyEvent(sql.FieldLTE(FieldTimestamp, v))
}

// JourneyIDEQ applies the EQ predicate on the "journey_id" field.
func JourneyIDEQ(v string) predicate.JourneyEvent {
	return predicate.JourneyEvent(sql.FieldEQ(FieldJourneyID, v))
}

// JourneyIDNEQ applies the NEQ predicate on the "journey_id" field.
func JourneyIDNEQ(v string) predicate.JourneyEvent {
	return predicate.JourneyEvent(sql.FieldNEQ(FieldJourneyID, v))
}

// JourneyIDIn applies the In predicate on the "journey_id" field.
func JourneyIDIn(vs ...string) predicate.JourneyEvent {
	return predicate.JourneyEvent(sql.FieldIn(FieldJourneyID, vs...))
}

// JourneyIDNotIn applies the NotIn predicate on the "journey_id" field.
func JourneyIDNotIn(vs ...string) predicate.JourneyEvent {
	return predicate.JourneyEvent(sql.FieldNotIn(FieldJourneyID, vs...))
}

// JourneyIDGT applies the GT predicate on the "journey_id" field.
func JourneyIDGT(v string) predicate.JourneyEvent {
	return predicate.JourneyEvent(sql.FieldGT(FieldJourneyID, v))
}

// JourneyIDGTE applies the GTE predicate on the "journey_id" field.
func JourneyIDGTE(v string) predicate.JourneyEvent {
	return predicate.JourneyEvent(sql.FieldGTE(FieldJourneyID, v))
}

// JourneyIDLT applies the LT predicate on the "journey_id" field.
func JourneyIDLT(v string) predicate.JourneyEvent {
	return predicate.JourneyEvent(sql.FieldLT(FieldJourneyID, v))
}

// JourneyIDLTE applies the LTE predicate on the "journey_id" field.
func JourneyIDLTE(v string) predicate.JourneyEvent {
	return predicate.JourneyEvent(sql.FieldLTE(FieldJourneyID, v))
}

// JourneyIDContains applies the Contains predicate on the "journey_id" field.
func JourneyIDContains(v string) predicate.JourneyEvent {
	return predicate.JourneyEvent(sql.FieldContains(FieldJourneyID, v))
}

// JourneyIDHasPrefix applies the HasPrefix predicate on the "journey_id" field.
func JourneyIDHasPrefix(v string) predicate.JourneyEvent {
	return predicate.JourneyEvent(sql.FieldHasPrefix(FieldJourneyID, v))
}

// JourneyIDHasSuffix applies the HasSuffix predicate on the "journey_id" field.
func JourneyIDHasSuffix(v string) predicate.JourneyEvent {
	return predicate.JourneyEvent(sql.FieldHasSuffix(FieldJourneyID, v))
}

// JourneyIDEqualFold applies the EqualFold predicate on the "journey_id" field.
func JourneyIDEqualFold(v string) predicate.JourneyEvent {
	return predicate.JourneyEvent(sql.FieldEqualFold(FieldJourneyID, v))
}

// JourneyIDContainsFold applies the ContainsFold predicate on the "journey_id" field.
func JourneyIDContainsFold(v string) predicate.JourneyEvent {
	return predicate.JourneyEvent(sql.FieldContainsFold(FieldJourneyID, v))
}

// TopicEQ applies the EQ predicate on the "topic" field.
func TopicEQ(v string) predicate.JourneyEvent {
	return predicate.JourneyEvent(sql.FieldEQ(FieldTopic, v))
}

// TopicNEQ applies the NEQ predicate on the "topic" field.
func TopicNEQ(v string) predicate.JourneyEvent {
	return predicate.JourneyEvent(sql.FieldNEQ(FieldTopic, v))
}

// TopicIn applies the In predicate on the "topic" field.
func TopicIn(vs ...string) predicate.JourneyEvent {
	return predicate.JourneyEvent(sql.FieldIn(FieldTopic, vs...))
}

// TopicNotIn applies the NotIn predicate on the "topic" field.
func TopicNotIn(vs ...string) predicate.JourneyEvent {
	return predicate.JourneyEvent(sql.FieldNotIn(FieldTopic, vs...))
}

// TopicGT applies the GT predicate on the "topic" field.
func TopicGT(v string) predicate.JourneyEvent {
	return predicate.JourneyEvent(sql.FieldGT(FieldTopic, v))
}

// TopicGTE applies the GTE predicate on the "topic" field.
func TopicGTE(v string) predicate.JourneyEvent {
	return predicate.JourneyEvent(sql.FieldGTE(FieldTopic, v))
}

// TopicLT applies the LT predicate on the "topic" field.
func TopicLT(v string) predicate.JourneyEvent {
	return predicate.JourneyEvent(sql.FieldLT(FieldTopic, v))
}

// TopicLTE applies the LTE predicate on the "topic" field.
func TopicLTE(v string) predicate.JourneyEvent {
	return predicate.JourneyEvent(sql.FieldLTE(FieldTopic, v))
}

// TopicContains applies the Contains predicate on the "topic" field.
func TopicContains(v string) predicate.JourneyEvent {
	return predicate.JourneyEvent(sql.FieldContains(FieldTopic, v))
}

// TopicHasPrefix applies the HasPrefix predicate on the "topic" field.
func TopicHasPrefix(v string) predicate.JourneyEvent {
	return predicate.JourneyEvent(sql.FieldHasPrefix(FieldTopic, v))
}

// TopicHasSuffix applies the HasSuffix predicate on the "topic" field.
func TopicHasSuffix(v string) predicate.JourneyEvent {
	return predicate.JourneyEvent(sql.FieldHasSuffix(FieldTopic, v))
}

// TopicEqualFold applies the EqualFold predicate on the "topic" field.
func TopicEqualFold(v string) predicate.JourneyEvent {
	return predicate.JourneyEvent(sql.FieldEqualFold(FieldTopic, v))
}

// TopicContainsFold applies the ContainsFold predicate on the "topic" field.
func TopicContainsFold(v string) predicate.JourneyEvent {
	return predicate.JourneyEvent(sql.FieldContainsFold(FieldTopic, v))
}

// StageEQ applies the EQ predicate on the "stage" field.
func StageEQ(v string) predicate.JourneyEvent {
	return predicate.JourneyEvent(sql.FieldEQ(FieldStage, v))
}

// StageNEQ applies the NEQ predicate on the "stage" field.
func StageNEQ(v string) predicate.JourneyEvent {
	return predicate.JourneyEvent(sql.FieldNEQ(FieldStage, v))
}

// StageIn applies the In predicate on the "stage" field.
func StageIn(vs ...string) predicate.JourneyEvent {
	return predicate.JourneyEvent(sql.FieldIn(FieldStage, vs...))
}

// StageNotIn applies the NotIn predicate on the "stage" field.
func StageNotIn(vs ...string) predicate.JourneyEvent {
	return predicate.JourneyEvent(sql.FieldNotIn(FieldStage, vs...))
}

// StageGT applies the GT predicate on the "stage" field.
func StageGT(v string) predicate.JourneyEvent {
	return predicate.JourneyEvent(sql.FieldGT(FieldStage, v))
}

// StageGTE applies the GTE predicate on the "stage" field.
func StageGTE(v string) predicate.JourneyEvent {
	return predicate.JourneyEvent(sql.FieldGTE(FieldStage, v))
}

// StageLT applies the LT predicate on the "stage" field.
func StageLT(v string) predicate.JourneyEvent {
	return predicate.JourneyEvent(sql.FieldLT(FieldStage, v))
}

// StageLTE applies the LTE predicate on the "stage" field.
func StageLTE(v string) predicate.JourneyEvent {
	return predicate.JourneyEvent(sql.FieldLTE(FieldStage, v))
}

// StageContains applies the Contains predicate on the "stage" field.
func StageContains(v string) predicate.JourneyEvent {
	return predicate.JourneyEvent(sql.FieldContains(FieldStage, v))
}

// StageHasPrefix applies the HasPrefix predicate on the "stage" field.
func StageHasPrefix(v string) predicate.JourneyEvent {
	return predicate.JourneyEvent(sql.FieldHasPrefix(FieldStage, v))
}

// StageHasSuffix applies the HasSuffix predicate on the "stage" field.
func StageHasSuffix(v string) predicate.JourneyEvent {
	return predicate.JourneyEvent(sql.FieldHasSuffix(FieldStage, v))
}

// StageEqualFold applies the EqualFold predicate on the "stage" field.
func StageEqualFold(v string) predicate.JourneyEvent {
	return predicate.JourneyEvent(sql.FieldEqualFold(FieldStage, v))
}

// StageContainsFold applies the ContainsFold predicate on the "stage" field.
func StageContainsFold(v string) predicate.JourneyEvent {
	return predicate.JourneyEvent(sql.FieldContainsFold(FieldStage, v))
}

// ActionEQ applies the EQ predicate on the "action" field.
func ActionEQ(v string) predicate.JourneyEvent {
	return predicate.JourneyEvent(sql.FieldEQ(FieldAction, v))
}

// ActionNEQ applies the NEQ predicate on the "action" field.
func ActionNEQ(v string) predicate.JourneyEvent {
	return predicate.JourneyEvent(sql.FieldNEQ(FieldAction, v))
}

// ActionIn applies the In predicate on the "action" field.
func ActionIn(vs ...string) predicate.JourneyEvent {
	return predicate.JourneyEvent(sql.FieldIn(FieldAction, vs...))
}

// ActionNotIn applies the NotIn predicate on the "action" field.
func ActionNotIn(vs ...string) predicate.JourneyEvent {
	return predicate.JourneyEvent(sql.FieldNotIn(FieldAction, vs...))
}

// ActionGT applies the GT predicate on the "action" field.
func ActionGT(v string) predicate.JourneyEvent {
	return predicate.JourneyEvent(sql.FieldGT(FieldAction, v))
}

// ActionGTE applies the GTE predicate on the "action" field.
func ActionGTE(v string) predicate.JourneyEvent {
	return predicate.JourneyEvent(sql.FieldGTE(FieldAction, v))
}

// ActionLT applies the LT predicate on the "action" field.
func ActionLT(v string) predicate.JourneyEvent {
	return predicate.JourneyEvent(sql.FieldLT(FieldAction, v))
}

// ActionLTE applies the LTE predicate on the "action" field.
func ActionLTE(v string) predicate.JourneyEvent {
	return predicate.JourneyEvent(sql.FieldLTE(FieldAction, v))
}

// ActionContains applies the Contains predicate on the "action" field.
func ActionContains(v string) predicate.JourneyEvent {
	return predicate.JourneyEvent(sql.FieldContains(FieldAction, v))
}

// ActionHasPrefix applies the HasPrefix predicate on the "action" field.
func ActionHasPrefix(v string) predicate.JourneyEvent {
	return predicate.JourneyEvent(sql.FieldHasPrefix(FieldAction, v))
}

// ActionHasSuffix applies the HasSuffix predicate on the "action" field.
func ActionHasSuffix(v string) predicate.JourneyEvent {
	return predicate.JourneyEvent(sql.FieldHasSuffix(FieldAction, v))
}

// ActionEqualFold applies the EqualFold predicate on the "action" field.
func ActionEqualFold(v string) predicate.JourneyEvent {
	return predicate.JourneyEvent(sql.FieldEqualFold(FieldAction, v))
}

// ActionContainsFold applies the ContainsFold predicate on the "action" field.
func ActionContainsFold(v string) predicate.JourneyEvent {
	return predicate.JourneyEvent(sql.FieldContainsFold(FieldAction, v))
}

// PayloadEQ applies the EQ predicate on the "payload" field.
func PayloadEQ(v string) predicate.JourneyEvent {
	return predicate.JourneyEvent(sql.FieldEQ(FieldPayload, v))
}

// PayloadNEQ applies the NEQ predicate on the "payload" field.
func PayloadNEQ(v string) predicate.JourneyEvent {
	return predicate.JourneyEvent(sql.FieldNEQ(FieldPayload, v))
}

// PayloadIn applies the In predicate on the "payload" field.
func PayloadIn(vs ...string) predicate.JourneyEvent {
	return predicate.JourneyEvent(sql.FieldIn(FieldPayload, vs...))
}

// PayloadNotIn applies the NotIn predicate on the "payload" field.
func PayloadNotIn(vs ...string) predicate.JourneyEvent {
	return predicate.JourneyEvent(sql.FieldNotIn(FieldPayload, vs...))
}

// PayloadGT applies the GT predicate on the "payload" field.
func PayloadGT(v string) predicate.JourneyEvent {
	return predicate.JourneyEvent(sql.FieldGT(FieldPayload, v))
}

// PayloadGTE applies the GTE predicate on the "payload" field.
func PayloadGTE(v string) predicate.JourneyEvent {
	return predicate.JourneyEvent(sql.FieldGTE(FieldPayload, v))
}

// PayloadLT applies the LT predicate on the "payload" field.
func PayloadLT(v string) predicate.JourneyEvent {
	return predicate.JourneyEvent(sql.FieldLT(FieldPayload, v))
}

// PayloadLTE applies the LTE predicate on the "payload" field.
func PayloadLTE(v string) predicate.JourneyEvent {
	return predicate.JourneyEvent(sql.FieldLTE(FieldPayload, v))
}

// PayloadContains applies the Contains predicate on the "payload" field.
func PayloadContains(v string) predicate.JourneyEvent {
	return predicate.JourneyEvent(sql.FieldContains(FieldPayload, v))
}

// PayloadHasPrefix applies the HasPrefix predicate on the "payload" field.
func PayloadHasPrefix(v string) predicate.JourneyEvent {
	return predicate.JourneyEvent(sql.FieldHasPrefix(FieldPayload, v))
}

// PayloadHasSuffix applies the HasSuffix predicate on the "payload" field.
func PayloadHasSuffix(v string) predicate.JourneyEvent {
	return predicate.JourneyEvent(sql.FieldHasSuffix(FieldPayload, v))
}

// PayloadEqualFold applies the EqualFold predicate on the "payload" field.
func PayloadEqualFold(v string) predicate.JourneyEvent {
	return predicate.JourneyEvent(sql.FieldEqualFold(FieldPayload, v))
}

// PayloadContainsFold applies the ContainsFold predicate on the "payload" field.
func PayloadContainsFold(v string) predicate.JourneyEvent {
	return predicate.JourneyEvent(sql.FieldContainsFold(FieldPayload, v))
}

// And groups predicates with the AND operator between them.
func And(predicates ...predicate.JourneyEvent) predicate.JourneyEvent {
	return predicate.JourneyEvent(sql.AndPredicates(predicates...))
}

// Or groups predicates with the OR operator between them.
func Or(predicates ...predicate.JourneyEvent) predicate.JourneyEvent {
	return predicate.JourneyEvent(sql.OrPredicates(predicates...))
}

// Not applies the not operator on the given predicate.
func Not(p predicate.JourneyEvent) predicate.JourneyEvent {
	return predicate.JourneyEvent(sql.NotPredicates(p))
}

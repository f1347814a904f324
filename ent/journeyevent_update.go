// Code generated by ent, DO NOT EDIT.

package ent

import (
	"context"
	"errors"
	"fmt"

	"entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/sqlgraph"
	"entgo.io/ent/schema/field"
	"github.com/rkapur/pathwise/ent/journeyevent"
	"github.com/rkapur/pathwise/ent/predicate"
)

// JourneyEventUpdate is the builder for updating JourneyEvent entities.
type JourneyEventUpdate struct {
	config
	hooks    []Hook
	mutation *JourneyEventMutation
}

// Where appends a list predicates to the JourneyEventUpdate builder.
func (_u *JourneyEventUpdate) Where(ps ...predicate.JourneyEvent) *JourneyEventUpdate {
	_u.mutation.Where(ps...)
	return _u
}

// SetJourneyID sets the "journey_id" field.
func (_u *JourneyEventUpdate) SetJourneyID(v string) *JourneyEventUpdate {
	_u.mutation.SetJourneyID(v)
	return _u
}

// SetNillableJourneyID sets the "journey_id" field if the given value is not nil.
func (_u *JourneyEventUpdate) SetNillableJourneyID(v *string) *JourneyEventUpdate {
	if v != nil {
		_u.SetJourneyID(*v)
	}
	return _u
}

// SetTopic sets the "topic" field.
func (_u *JourneyEventUpdate) SetTopic(v string) *JourneyEventUpdate {
	_u.mutation.SetTopic(v)
	return _u
}

// SetNillableTopic sets the "topic" field if the given value is not nil.
func (_u *JourneyEventUpdate) SetNillableTopic(v *string) *JourneyEventUpdate {
	if v != nil {
		_u.SetTopic(*v)
	}
	return _u
}

// SetStage sets the "stage" field.
func (_u *JourneyEventUpdate) SetStage(v string) *JourneyEventUpdate {
	_u.mutation.SetStage(v)
	return _u
}

// SetNillableStage sets the "stage" field if the given value is not nil.
func (_u *JourneyEventUpdate) SetNillableStage(v *string) *JourneyEventUpdate {
	if v != nil {
		_u.SetStage(*v)
	}
	return _u
}

// SetAction sets the "action" field.
func (_u *JourneyEventUpdate) SetAction(v string) *JourneyEventUpdate {
	_u.mutation.SetAction(v)
	return _u
}

// SetNillableAction sets the "action" field if the given value is not nil.
func (_u *JourneyEventUpdate) SetNillableAction(v *string) *JourneyEventUpdate {
	if v != nil {
		_u.SetAction(*v)
	}
	return _u
}

// SetPayload sets the "payload" field.
func (_u *JourneyEventUpdate) SetPayload(v string) *JourneyEventUpdate {
	_u.mutation.SetPayload(v)
	return _u
}

// SetNillablePayload sets the "payload" field if the given value is not nil.
func (_u *JourneyEventUpdate) SetNillablePayload(v *string) *JourneyEventUpdate {
	if v != nil {
		_u.SetPayload(*v)
	}
	return _u
}

// Mutation returns the JourneyEventMutation object of the builder.
func (_u *JourneyEventUpdate) Mutation() *JourneyEventMutation {
	return _u.mutation
}

// Save executes the query and returns the number of nodes affected by the update operation.
func (_u *JourneyEventUpdate) Save(ctx context.Context) (int, error) {
	return withHooks(ctx, _u.sqlSave, _u.mutation, _u.hooks)
}

// SaveX is like Save, but panics if an error occurs.
func (_u *JourneyEventUpdate) SaveX(ctx context.Context) int {
	affected, err := _u.Save(ctx)
	if err != nil {
		panic(err)
	}
	return affected
}

// Exec executes the query.
func (_u *JourneyEventUpdate) Exec(ctx context.Context) error {
	_, err := _u.Save(ctx)
	return err
}

// ExecX is like Exec, but panics if an error occurs.
func (_u *JourneyEventUpdate) ExecX(ctx context.Context) {
	if err := _u.Exec(ctx); err != nil {
		panic(err)
	}
}

// check runs all checks and user-defined validators on the builder.
func (_u *JourneyEventUpdate) check() error {
	if v, ok := _u.mutation.JourneyID(); ok {
		if err := journeyevent.JourneyIDValidator(v); err != nil {
			return &ValidationError{Name: "journey_id", err: fmt.Errorf(`ent: validator failed for field "JourneyEvent.journey_id": %w`, err)}
		}
	}
	if v, ok := _u.mutation.Topic(); ok {
		if err := journeyevent.TopicValidator(v); err != nil {
			return &ValidationError{Name: "topic", err: fmt.Errorf(`ent: validator failed for field "JourneyEvent.topic": %w`, err)}
		}
	}
	if v, ok := _u.mutation.Action(); ok {
		if err := journeyevent.ActionValidator(v); err != nil {
			return &ValidationError{Name: "action", err: fmt.Errorf(`ent: validator failed for field "JourneyEvent.action": %w`, err)}
		}
	}
	return nil
}

func (_u *JourneyEventUpdate) sqlSave(ctx context.Context) (_node int, err error) {
	if err := _u.check(); err != nil {
		return _node, err
	}
	_spec := sqlgraph.NewUpdateSpec(journeyevent.Table, journeyevent.Columns, sqlgraph.NewFieldSpec(journeyevent.FieldID, field.TypeInt))
	if ps := _u.mutation.predicates; len(ps) > 0 {
		_spec.Predicate = func(selector *sql.Selector) {
			for i := range ps {
				ps[i](selector)
			}
		}
	}
	if value, ok := _u.mutation.JourneyID(); ok {
		_spec.SetField(journeyevent.FieldJourneyID, field.TypeString, value)
	}
	if value, ok := _u.mutation.Topic(); ok {
		_spec.SetField(journeyevent.FieldTopic, field.TypeString, value)
	}
	if value, ok := _u.mutation.Stage(); ok {
		_spec.SetField(journeyevent.FieldStage, field.TypeString, value)
	}
	if value, ok := _u.mutation.Action(); ok {
		_spec.SetField(journeyevent.FieldAction, field.TypeString, value)
	}
	if value, ok := _u.mutation.Payload(); ok {
		_spec.SetField(journeyevent.FieldPayload, field.TypeString, value)
	}
	if _node, err = sqlgraph.UpdateNodes(ctx, _u.driver, _spec); err != nil {
		if _, ok := err.(*sqlgraph.NotFoundError); ok {
			err = &NotFoundError{journeyevent.Label}
		} else if sqlgraph.IsConstraintError(err) {
			err = &ConstraintError{msg: err.Error(), wrap: err}
		}
		return 0, err
	}
	_u.mutation.done = true
	return _node, nil
}

// JourneyEventUpdateOne is the builder for updating a single JourneyEvent entity.
type JourneyEventUpdateOne struct {
	config
	fields   []string
	hooks    []Hook
	mutation *JourneyEventMutation
}

// SetJourneyID sets the "journey_id" field.
func (_u *JourneyEventUpdateOne) SetJourneyID(v string) *JourneyEventUpdateOne {
	_u.mutation.SetJourneyID(v)
	return _u
}

// SetNillableJourneyID sets the "journey_id" field if the given value is not nil.
func (_u *JourneyEventUpdateOne) SetNillableJourneyID(v *string) *JourneyEventUpdateOne {
	if v != nil {
		_u.SetJourneyID(*v)
	}
	return _u
}

// SetTopic sets the "topic" field.
func (_u *JourneyEventUpdateOne) SetTopic(v string) *JourneyEventUpdateOne {
	_u.mutation.SetTopic(v)
	return _u
}

// SetNillableTopic sets the "topic" field if the given value is not nil.
func (_u *JourneyEventUpdateOne) SetNillableTopic(v *string) *JourneyEventUpdateOne {
	if v != nil {
		_u.SetTopic(*v)
	}
	return _u
}

// SetStage sets the "stage" field.
func (_u *JourneyEventUpdateOne) SetStage(v string) *JourneyEventUpdateOne {
	_u.mutation.SetStage(v)
	return _u
}

// SetNillableStage sets the "stage" field if the given value is not nil.
func (_u *JourneyEventUpdateOne) SetNillableStage(v *string) *JourneyEventUpdateOne {
	if v != nil {
		_u.SetStage(*v)
	}
	return _u
}

// SetAction sets the "action" field.
func (_u *JourneyEventUpdateOne) SetAction(v string) *JourneyEventUpdateOne {
	_u.mutation.SetAction(v)
	return _u
}

// SetNillableAction sets the "action" field if the given value is not nil.
func (_u *JourneyEventUpdateOne) SetNillableAction(v *string) *JourneyEventUpdateOne {
	if v != nil {
		_u.SetAction(*v)
	}
	return _u
}

// SetPayload sets the "payload" field.
func (_u *JourneyEventUpdateOne) SetPayload(v string) *JourneyEventUpdateOne {
	_u.mutation.SetPayload(v)
	return _u
}

// SetNillablePayload sets the "payload" field if the given value is not nil.
func (_u *JourneyEventUpdateOne) SetNillablePayload(v *string) *JourneyEventUpdateOne {
	if v != nil {
		_u.SetPayload(*v)
	}
	return _u
}

// Mutation returns the JourneyEventMutation object of the builder.
func (_u *JourneyEventUpdateOne) Mutation() *JourneyEventMutation {
	return _u.mutation
}

// Where appends a list predicates to the JourneyEventUpdate builder.
func (_u *JourneyEventUpdateOne) Where(ps ...predicate.JourneyEvent) *JourneyEventUpdateOne {
	_u.mutation.Where(ps...)
	return _u
}

// Select allows selecting one or more fields (columns) of the returned entity.
// The default is selecting all fields defined in the entity schema.
func (_u *JourneyEventUpdateOne) Select(field string, fields ...string) *JourneyEventUpdateOne {
	_u.fields = append([]string{field}, fields...)
	return _u
}

// Save executes the query and returns the updated JourneyEvent entity.
func (_u *JourneyEventUpdateOne) Save(ctx context.Context) (*JourneyEvent, error) {
	return withHooks(ctx, _u.sqlSave, _u.mutation, _u.hooks)
}

// SaveX is like Save, but panics if an error occurs.
func (_u *JourneyEventUpdateOne) SaveX(ctx context.Context) *JourneyEvent {
	node, err := _u.Save(ctx)
	if err != nil {
		panic(err)
	}
	return node
}

// Exec executes the query on the entity.
func (_u *JourneyEventUpdateOne) Exec(ctx context.Context) error {
	_, err := _u.Save(ctx)
	return err
}

// ExecX is like Exec, but panics if an error occurs.
func (_u *JourneyEventUpdateOne) ExecX(ctx context.Context) {
	if err := _u.Exec(ctx); err != nil {
		panic(err)
	}
}

// check runs all checks and user-defined validators on the builder.
func (_u *JourneyEventUpdateOne) check() error {
	if v, ok := _u.mutation.JourneyID(); ok {
		if err := journeyevent.JourneyIDValidator(v); err != nil {
			return &ValidationError{Name: "journey_id", err: fmt.Errorf(`ent: validator failed for field "JourneyEvent.journey_id": %w`, err)}
		}
	}
	if v, ok := _u.mutation.Topic(); ok {
		if err := journeyevent.TopicValidator(v); err != nil {
			return &ValidationError{Name: "topic", err: fmt.Errorf(`ent: validator failed for field "JourneyEvent.topic": %w`, err)}
		}
	}
	if v, ok := _u.mutation.Action(); ok {
		if err := journeyevent.ActionValidator(v); err != nil {
			return &ValidationError{Name: "action", err: fmt.Errorf(`ent: validator failed for field "JourneyEvent.action": %w`, err)}
		}
	}
	return nil
}

func (_u *JourneyEventUpdateOne) sqlSave(ctx context.Context) (_node *JourneyEvent, err error) {
	if err := _u.check(); err != nil {
		return _node, err
	}
	_spec := sqlgraph.NewUpdateSpec(journeyevent.Table, journeyevent.Columns, sqlgraph.NewFieldSpec(journeyevent.FieldID, field.TypeInt))
	id, ok := _u.mutation.ID()
	if !ok {
		return nil, &ValidationError{Name: "id", err: errors.New(`ent: missing "JourneyEvent.id" for update`)}
	}
	_spec.Node.ID.Value = id
	if fields := _u.fields; len(fields) > 0 {
		_spec.Node.Columns = make([]string, 0, len(fields))
		_spec.Node.Columns = append(_spec.Node.Columns, journeyevent.FieldID)
		for _, f := range fields {
			if !journeyevent.ValidColumn(f) {
				return nil, &ValidationError{Name: f, err: fmt.Errorf("ent: invalid field %q for query", f)}
			}
			if f != journeyevent.FieldID {
				_spec.Node.Columns = append(_spec.Node.Columns, f)
			}
		}
	}
	if ps := _u.mutation.predicates; len(ps) > 0 {
		_spec.Predicate = func(selector *sql.Selector) {
			for i := range ps {
				ps[i](selector)
			}
		}
	}
	if value, ok := _u.mutation.JourneyID(); ok {
		_spec.SetField(journeyevent.FieldJourneyID, field.TypeString, value)
	}
	if value, ok := _u.mutation.Topic(); ok {
		_spec.SetField(journeyevent.FieldTopic, field.TypeString, value)
	}
	if value, ok := _u.mutation.Stage(); ok {
		_spec.SetField(journeyevent.FieldStage, field.TypeString, value)
	}
	if value, ok := _u.mutation.Action(); ok {
		_spec.SetField(journeyevent.FieldAction, field.TypeString, value)
	}
	if value, ok := _u.mutation.Payload(); ok {
		_spec.SetField(journeyevent.FieldPayload, field.TypeString, value)
	}
	_node = &JourneyEvent{config: _u.config}
	_spec.Assign = _node.assignValues
	_spec.ScanValues = _node.scanValues
	if err = sqlgraph.UpdateNode(ctx, _u.driver, _spec); err != nil {
		if _, ok := err.(*sqlgraph.NotFoundError); ok {
			err = &NotFoundError{journeyevent.Label}
		} else if sqlgraph.IsConstraintError(err) {
			err = &ConstraintError{msg: err.Error(), wrap: err}
		}
		return nil, err
	}
	_u.mutation.done = true
	return _node, nil
}

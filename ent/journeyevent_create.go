// Code generated by ent, DO NOT EDIT.

package ent

import (
	"context"
	"errors"
	"fmt"
	"time"

	"entgo.io/ent/dialect/sql/sqlgraph"
	"entgo.io/ent/schema/field"
	"github.com/rkapur/pathwise/ent/journeyevent"
)

// JourneyEventCreate is the builder for creating a JourneyEvent entity.
type JourneyEventCreate struct {
	config
	mutation *JourneyEventMutation
	hooks    []Hook
}

// SetSequence sets the "sequence" field.
func (_c *JourneyEventCreate) SetSequence(v int64) *JourneyEventCreate {
	_c.mutation.SetSequence(v)
	return _c
}

// SetTimestamp sets the "timestamp" field.
func (_c *JourneyEventCreate) SetTimestamp(v time.Time) *JourneyEventCreate {
	_c.mutation.SetTimestamp(v)
	return _c
}

// SetNillableTimestamp sets the "timestamp" field if the given value is not nil.
func (_c *JourneyEventCreate) SetNillableTimestamp(v *time.Time) *JourneyEventCreate {
	if v != nil {
		_c.SetTimestamp(*v)
	}
	return _c
}

// SetJourneyID sets the "journey_id" field.
func (_c *JourneyEventCreate) SetJourneyID(v string) *JourneyEventCreate {
	_c.mutation.SetJourneyID(v)
	return _c
}

// SetTopic sets the "topic" field.
func (_c *JourneyEventCreate) SetTopic(v string) *JourneyEventCreate {
	_c.mutation.SetTopic(v)
	return _c
}

// SetStage sets the "stage" field.
func (_c *JourneyEventCreate) SetStage(v string) *JourneyEventCreate {
	_c.mutation.SetStage(v)
	return _c
}

// SetAction sets the "action" field.
func (_c *JourneyEventCreate) SetAction(v string) *JourneyEventCreate {
	_c.mutation.SetAction(v)
	return _c
}

// SetPayload sets the "payload" field.
func (_c *JourneyEventCreate) SetPayload(v string) *JourneyEventCreate {
	_c.mutation.SetPayload(v)
	return _c
}

// SetNillablePayload sets the "payload" field if the given value is not nil.
func (_c *JourneyEventCreate) SetNillablePayload(v *string) *JourneyEventCreate {
	if v != nil {
		_c.SetPayload(*v)
	}
	return _c
}

// Mutation returns the JourneyEventMutation object of the builder.
func (_c *JourneyEventCreate) Mutation() *JourneyEventMutation {
	return _c.mutation
}

// Save creates the JourneyEvent in the database.
func (_c *JourneyEventCreate) Save(ctx context.Context) (*JourneyEvent, error) {
	_c.defaults()
	return withHooks(ctx, _c.sqlSave, _c.mutation, _c.hooks)
}

// SaveX calls Save and panics if Save returns an error.
func (_c *JourneyEventCreate) SaveX(ctx context.Context) *JourneyEvent {
	v, err := _c.Save(ctx)
	if err != nil {
		panic(err)
	}
	return v
}

// Exec executes the query.
func (_c *JourneyEventCreate) Exec(ctx context.Context) error {
	_, err := _c.Save(ctx)
	return err
}

// ExecX is like Exec, but panics if an error occurs.
func (_c *JourneyEventCreate) ExecX(ctx context.Context) {
	if err := _c.Exec(ctx); err != nil {
		panic(err)
	}
}

// defaults sets the default values of the builder before save.
func (_c *JourneyEventCreate) defaults() {
	if _, ok := _c.mutation.Timestamp(); !ok {
		v := journeyevent.DefaultTimestamp()
		_c.mutation.SetTimestamp(v)
	}
	if _, ok := _c.mutation.Payload(); !ok {
		v := journeyevent.DefaultPayload
		_c.mutation.SetPayload(v)
	}
}

// check runs all checks and user-defined validators on the builder.
func (_c *JourneyEventCreate) check() error {
	if _, ok := _c.mutation.Sequence(); !ok {
		return &ValidationError{Name: "sequence", err: errors.New(`ent: missing required field "JourneyEvent.sequence"`)}
	}
	if _, ok := _c.mutation.Timestamp(); !ok {
		return &ValidationError{Name: "timestamp", err: errors.New(`ent: missing required field "JourneyEvent.timestamp"`)}
	}
	if _, ok := _c.mutation.JourneyID(); !ok {
		return &ValidationError{Name: "journey_id", err: errors.New(`ent: missing required field "JourneyEvent.journey_id"`)}
	}
	if v, ok := _c.mutation.JourneyID(); ok {
		if err := journeyevent.JourneyIDValidator(v); err != nil {
			return &ValidationError{Name: "journey_id", err: fmt.Errorf(`ent: validator failed for field "JourneyEvent.journey_id": %w`, err)}
		}
	}
	if _, ok := _c.mutation.Topic(); !ok {
		return &ValidationError{Name: "topic", err: errors.New(`ent: missing required field "JourneyEvent.topic"`)}
	}
	if v, ok := _c.mutation.Topic(); ok {
		if err := journeyevent.TopicValidator(v); err != nil {
			return &ValidationError{Name: "topic", err: fmt.Errorf(`ent: validator failed for field "JourneyEvent.topic": %w`, err)}
		}
	}
	if _, ok := _c.mutation.Stage(); !ok {
		return &ValidationError{Name: "stage", err: errors.New(`ent: missing required field "JourneyEvent.stage"`)}
	}
	if _, ok := _c.mutation.Action(); !ok {
		return &ValidationError{Name: "action", err: errors.New(`ent: missing required field "JourneyEvent.action"`)}
	}
	if v, ok := _c.mutation.Action(); ok {
		if err := journeyevent.ActionValidator(v); err != nil {
			return &ValidationError{Name: "action", err: fmt.Errorf(`ent: validator failed for field "JourneyEvent.action": %w`, err)}
		}
	}
	if _, ok := _c.mutation.Payload(); !ok {
		return &ValidationError{Name: "payload", err: errors.New(`ent: missing required field "JourneyEvent.payload"`)}
	}
	return nil
}

func (_c *JourneyEventCreate) sqlSave(ctx context.Context) (*JourneyEvent, error) {
	if err := _c.check(); err != nil {
		return nil, err
	}
	_node, _spec := _c.createSpec()
	if err := sqlgraph.CreateNode(ctx, _c.driver, _spec); err != nil {
		if sqlgraph.IsConstraintError(err) {
			err = &ConstraintError{msg: err.Error(), wrap: err}
		}
		return nil, err
	}
	id := _spec.ID.Value.(int64)
	_node.ID = int(id)
	_c.mutation.id = &_node.ID
	_c.mutation.done = true
	return _node, nil
}

func (_c *JourneyEventCreate) createSpec() (*JourneyEvent, *sqlgraph.CreateSpec) {
	var (
		_node = &JourneyEvent{config: _c.config}
		_spec = sqlgraph.NewCreateSpec(journeyevent.Table, sqlgraph.NewFieldSpec(journeyevent.FieldID, field.TypeInt))
	)
	if value, ok := _c.mutation.Sequence(); ok {
		_spec.SetField(journeyevent.FieldSequence, field.TypeInt64, value)
		_node.Sequence = value
	}
	if value, ok := _c.mutation.Timestamp(); ok {
		_spec.SetField(journeyevent.FieldTimestamp, field.TypeTime, value)
		_node.Timestamp = value
	}
	if value, ok := _c.mutation.JourneyID(); ok {
		_spec.SetField(journeyevent.FieldJourneyID, field.TypeString, value)
		_node.JourneyID = value
	}
	if value, ok := _c.mutation.Topic(); ok {
		_spec.SetField(journeyevent.FieldTopic, field.TypeString, value)
		_node.Topic = value
	}
	if value, ok := _c.mutation.Stage(); ok {
		_spec.SetField(journeyevent.FieldStage, field.TypeString, value)
		_node.Stage = value
	}
	if value, ok := _c.mutation.Action(); ok {
		_spec.SetField(journeyevent.FieldAction, field.TypeString, value)
		_node.Action = value
	}
	if value, ok := _c.mutation.Payload(); ok {
		_spec.SetField(journeyevent.FieldPayload, field.TypeString, value)
		_node.Payload = value
	}
	return _node, _spec
}

// JourneyEventCreateBulk is the builder for creating many JourneyEvent entities in bulk.
type JourneyEventCreateBulk struct {
	config
	err      error
	builders []*JourneyEventCreate
}

// Save creates the JourneyEvent entities in the database.
func (_c *JourneyEventCreateBulk) Save(ctx context.Context) ([]*JourneyEvent, error) {
	if _c.err != nil {
		return nil, _c.err
	}
	specs := make([]*sqlgraph.CreateSpec, len(_c.builders))
	nodes := make([]*JourneyEvent, len(_c.builders))
	mutators := make([]Mutator, len(_c.builders))
	for i := range _c.builders {
		func(i int, root context.Context) {
			builder := _c.builders[i]
			builder.defaults()
			var mut Mutator = MutateFunc(func(ctx context.Context, m Mutation) (Value, error) {
				mutation, ok := m.(*JourneyEventMutation)
				if !ok {
					return nil, fmt.Errorf("unexpected mutation type %T", m)
				}
				if err := builder.check(); err != nil {
					return nil, err
				}
				builder.mutation = mutation
				var err error
				nodes[i], specs[i] = builder.createSpec()
				if i < len(mutators)-1 {
					_, err = mutators[i+1].Mutate(root, _c.builders[i+1].mutation)
				} else {
					spec := &sqlgraph.BatchCreateSpec{Nodes: specs}
					// Invoke the actual operation on the latest mutation in the chain.
					if err = sqlgraph.BatchCreate(ctx, _c.driver, spec); err != nil {
						if sqlgraph.IsConstraintError(err) {
							err = &ConstraintError{msg: err.Error(), wrap: err}
						}
					}
				}
				if err != nil {
					return nil, err
				}
				mutation.id = &nodes[i].ID
				if specs[i].ID.Value != nil {
					id := specs[i].ID.Value.(int64)
					nodes[i].ID = int(id)
				}
				mutation.done = true
				return nodes[i], nil
			})
			for i := len(builder.hooks) - 1; i >= 0; i-- {
				mut = builder.hooks[i](mut)
			}
			mutators[i] = mut
		}(i, ctx)
	}
	if len(mutators) > 0 {
		if _, err := mutators[0].Mutate(ctx, _c.builders[0].mutation); err != nil {
			return nil, err
		}
	}
	return nodes, nil
}

// SaveX is like Save, but panics if an error occurs.
func (_c *JourneyEventCreateBulk) SaveX(ctx context.Context) []*JourneyEvent {
	v, err := _c.Save(ctx)
	if err != nil {
		panic(err)
	}
	return v
}

// Exec executes the query.
func (_c *JourneyEventCreateBulk) Exec(ctx context.Context) error {
	_, err := _c.Save(ctx)
	return err
}

// ExecX is like Exec, but panics if an error occurs.
func (_c *JourneyEventCreateBulk) ExecX(ctx context.Context) {
	if err := _c.Exec(ctx); err != nil {
		panic(err)
	}
}

// Code generated by ent, DO NOT EDIT.

package ent

import (
	"context"
	"errors"
	"fmt"

	"entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/sqlgraph"
	"entgo.io/ent/dialect/sql/sqljson"
	"entgo.io/ent/schema/field"
	"github.com/anand-106/coursegen/ent/course"
	"github.com/anand-106/coursegen/ent/predicate"
)

// CourseUpdate is the builder for updating Course entities.
type CourseUpdate struct {
	config
	hooks    []Hook
	mutation *CourseMutation
}

// Where appends a list predicates to the CourseUpdate builder.
func (_u *CourseUpdate) Where(ps ...predicate.Course) *CourseUpdate {
	_u.mutation.Where(ps...)
	return _u
}

// SetPrompt sets the "prompt" field.
func (_u *CourseUpdate) SetPrompt(v string) *CourseUpdate {
	_u.mutation.SetPrompt(v)
	return _u
}

// SetNillablePrompt sets the "prompt" field if the given value is not nil.
func (_u *CourseUpdate) SetNillablePrompt(v *string) *CourseUpdate {
	if v != nil {
		_u.SetPrompt(*v)
	}
	return _u
}

// SetTitle sets the "title" field.
func (_u *CourseUpdate) SetTitle(v string) *CourseUpdate {
	_u.mutation.SetTitle(v)
	return _u
}

// SetNillableTitle sets the "title" field if the given value is not nil.
func (_u *CourseUpdate) SetNillableTitle(v *string) *CourseUpdate {
	if v != nil {
		_u.SetTitle(*v)
	}
	return _u
}

// SetTopics sets the "topics" field.
func (_u *CourseUpdate) SetTopics(v []string) *CourseUpdate {
	_u.mutation.SetTopics(v)
	return _u
}

// AppendTopics appends value to the "topics" field.
func (_u *CourseUpdate) AppendTopics(v []string) *CourseUpdate {
	_u.mutation.AppendTopics(v)
	return _u
}

// SetPendingTopics sets the "pending_topics" field.
func (_u *CourseUpdate) SetPendingTopics(v []string) *CourseUpdate {
	_u.mutation.SetPendingTopics(v)
	return _u
}

// AppendPendingTopics appends value to the "pending_topics" field.
func (_u *CourseUpdate) AppendPendingTopics(v []string) *CourseUpdate {
	_u.mutation.AppendPendingTopics(v)
	return _u
}

// ClearPendingTopics clears the value of the "pending_topics" field.
func (_u *CourseUpdate) ClearPendingTopics() *CourseUpdate {
	_u.mutation.ClearPendingTopics()
	return _u
}

// SetModules sets the "modules" field.
func (_u *CourseUpdate) SetModules(v []byte) *CourseUpdate {
	_u.mutation.SetModules(v)
	return _u
}

// ClearModules clears the value of the "modules" field.
func (_u *CourseUpdate) ClearModules() *CourseUpdate {
	_u.mutation.ClearModules()
	return _u
}

// Mutation returns the CourseMutation object of the builder.
func (_u *CourseUpdate) Mutation() *CourseMutation {
	return _u.mutation
}

// Save executes the query and returns the number of nodes affected by the update operation.
func (_u *CourseUpdate) Save(ctx context.Context) (int, error) {
	return withHooks(ctx, _u.sqlSave, _u.mutation, _u.hooks)
}

// SaveX is like Save, but panics if an error occurs.
func (_u *CourseUpdate) SaveX(ctx context.Context) int {
	affected, err := _u.Save(ctx)
	if err != nil {
		panic(err)
	}
	return affected
}

// Exec executes the query.
func (_u *CourseUpdate) Exec(ctx context.Context) error {
	_, err := _u.Save(ctx)
	return err
}

// ExecX is like Exec, but panics if an error occurs.
func (_u *CourseUpdate) ExecX(ctx context.Context) {
	if err := _u.Exec(ctx); err != nil {
		panic(err)
	}
}

// check runs all checks and user-defined validators on the builder.
func (_u *CourseUpdate) check() error {
	if v, ok := _u.mutation.Title(); ok {
		if err := course.TitleValidator(v); err != nil {
			return &ValidationError{Name: "title", err: fmt.Errorf(`ent: validator failed for field "Course.title": %w`, err)}
		}
	}
	return nil
}

func (_u *CourseUpdate) sqlSave(ctx context.Context) (_node int, err error) {
	if err := _u.check(); err != nil {
		return _node, err
	}
	_spec := sqlgraph.NewUpdateSpec(course.Table, course.Columns, sqlgraph.NewFieldSpec(course.FieldID, field.TypeInt))
	if ps := _u.mutation.predicates; len(ps) > 0 {
		_spec.Predicate = func(selector *sql.Selector) {
			for i := range ps {
				ps[i](selector)
			}
		}
	}
	if value, ok := _u.mutation.Prompt(); ok {
		_spec.SetField(course.FieldPrompt, field.TypeString, value)
	}
	if value, ok := _u.mutation.Title(); ok {
		_spec.SetField(course.FieldTitle, field.TypeString, value)
	}
	if value, ok := _u.mutation.Topics(); ok {
		_spec.SetField(course.FieldTopics, field.TypeJSON, value)
	}
	if value, ok := _u.mutation.AppendedTopics(); ok {
		_spec.AddModifier(func(u *sql.UpdateBuilder) {
			sqljson.Append(u, course.FieldTopics, value)
		})
	}
	if value, ok := _u.mutation.PendingTopics(); ok {
		_spec.SetField(course.FieldPendingTopics, field.TypeJSON, value)
	}
	if value, ok := _u.mutation.AppendedPendingTopics(); ok {
		_spec.AddModifier(func(u *sql.UpdateBuilder) {
			sqljson.Append(u, course.FieldPendingTopics, value)
		})
	}
	if _u.mutation.PendingTopicsCleared() {
		_spec.ClearField(course.FieldPendingTopics, field.TypeJSON)
	}
	if value, ok := _u.mutation.Modules(); ok {
		_spec.SetField(course.FieldModules, field.TypeBytes, value)
	}
	if _u.mutation.ModulesCleared() {
		_spec.ClearField(course.FieldModules, field.TypeBytes)
	}
	if _node, err = sqlgraph.UpdateNodes(ctx, _u.driver, _spec); err != nil {
		if _, ok := err.(*sqlgraph.NotFoundError); ok {
			err = &NotFoundError{course.Label}
		} else if sqlgraph.IsConstraintError(err) {
			err = &ConstraintError{msg: err.Error(), wrap: err}
		}
		return 0, err
	}
	_u.mutation.done = true
	return _node, nil
}

// CourseUpdateOne is the builder for updating a single Course entity.
type CourseUpdateOne struct {
	config
	fields   []string
	hooks    []Hook
	mutation *CourseMutation
}

// SetPrompt sets the "prompt" field.
func (_u *CourseUpdateOne) SetPrompt(v string) *CourseUpdateOne {
	_u.mutation.SetPrompt(v)
	return _u
}

// SetNillablePrompt sets the "prompt" field if the given value is not nil.
func (_u *CourseUpdateOne) SetNillablePrompt(v *string) *CourseUpdateOne {
	if v != nil {
		_u.SetPrompt(*v)
	}
	return _u
}

// SetTitle sets the "title" field.
func (_u *CourseUpdateOne) SetTitle(v string) *CourseUpdateOne {
	_u.mutation.SetTitle(v)
	return _u
}

// SetNillableTitle sets the "title" field if the given value is not nil.
func (_u *CourseUpdateOne) SetNillableTitle(v *string) *CourseUpdateOne {
	if v != nil {
		_u.SetTitle(*v)
	}
	return _u
}

// SetTopics sets the "topics" field.
func (_u *CourseUpdateOne) SetTopics(v []string) *CourseUpdateOne {
	_u.mutation.SetTopics(v)
	return _u
}

// AppendTopics appends value to the "topics" field.
func (_u *CourseUpdateOne) AppendTopics(v []string) *CourseUpdateOne {
	_u.mutation.AppendTopics(v)
	return _u
}

// SetPendingTopics sets the "pending_topics" field.
func (_u *CourseUpdateOne) SetPendingTopics(v []string) *CourseUpdateOne {
	_u.mutation.SetPendingTopics(v)
	return _u
}

// AppendPendingTopics appends value to the "pending_topics" field.
func (_u *CourseUpdateOne) AppendPendingTopics(v []string) *CourseUpdateOne {
	_u.mutation.AppendPendingTopics(v)
	return _u
}

// ClearPendingTopics clears the value of the "pending_topics" field.
func (_u *CourseUpdateOne) ClearPendingTopics() *CourseUpdateOne {
	_u.mutation.ClearPendingTopics()
	return _u
}

// SetModules sets the "modules" field.
func (_u *CourseUpdateOne) SetModules(v []byte) *CourseUpdateOne {
	_u.mutation.SetModules(v)
	return _u
}

// ClearModules clears the value of the "modules" field.
func (_u *CourseUpdateOne) ClearModules() *CourseUpdateOne {
	_u.mutation.ClearModules()
	return _u
}

// Mutation returns the CourseMutation object of the builder.
func (_u *CourseUpdateOne) Mutation() *CourseMutation {
	return _u.mutation
}

// Where appends a list predicates to the CourseUpdate builder.
func (_u *CourseUpdateOne) Where(ps ...predicate.Course) *CourseUpdateOne {
	_u.mutation.Where(ps...)
	return _u
}

// Select allows selecting one or more fields (columns) of the returned entity.
// The default is selecting all fields defined in the entity schema.
func (_u *CourseUpdateOne) Select(field string, fields ...string) *CourseUpdateOne {
	_u.fields = append([]string{field}, fields...)
	return _u
}

// Save executes the query and returns the updated Course entity.
func (_u *CourseUpdateOne) Save(ctx context.Context) (*Course, error) {
	return withHooks(ctx, _u.sqlSave, _u.mutation, _u.hooks)
}

// SaveX is like Save, but panics if an error occurs.
func (_u *CourseUpdateOne) SaveX(ctx context.Context) *Course {
	node, err := _u.Save(ctx)
	if err != nil {
		panic(err)
	}
	return node
}

// Exec executes the query on the entity.
func (_u *CourseUpdateOne) Exec(ctx context.Context) error {
	_, err := _u.Save(ctx)
	return err
}

// ExecX is like Exec, but panics if an error occurs.
func (_u *CourseUpdateOne) ExecX(ctx context.Context) {
	if err := _u.Exec(ctx); err != nil {
		panic(err)
	}
}

// check runs all checks and user-defined validators on the builder.
func (_u *CourseUpdateOne) check() error {
	if v, ok := _u.mutation.Title(); ok {
		if err := course.TitleValidator(v); err != nil {
			return &ValidationError{Name: "title", err: fmt.Errorf(`ent: validator failed for field "Course.title": %w`, err)}
		}
	}
	return nil
}

func (_u *CourseUpdateOne) sqlSave(ctx context.Context) (_node *Course, err error) {
	if err := _u.check(); err != nil {
		return _node, err
	}
	_spec := sqlgraph.NewUpdateSpec(course.Table, course.Columns, sqlgraph.NewFieldSpec(course.FieldID, field.TypeInt))
	id, ok := _u.mutation.ID()
	if !ok {
		return nil, &ValidationError{Name: "id", err: errors.New(`ent: missing "Course.id" for update`)}
	}
	_spec.Node.ID.Value = id
	if fields := _u.fields; len(fields) > 0 {
		_spec.Node.Columns = make([]string, 0, len(fields))
		_spec.Node.Columns = append(_spec.Node.Columns, course.FieldID)
		for _, f := range fields {
			if !course.ValidColumn(f) {
				return nil, &ValidationError{Name: f, err: fmt.Errorf("ent: invalid field %q for query", f)}
			}
			if f != course.FieldID {
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
	if value, ok := _u.mutation.Prompt(); ok {
		_spec.SetField(course.FieldPrompt, field.TypeString, value)
	}
	if value, ok := _u.mutation.Title(); ok {
		_spec.SetField(course.FieldTitle, field.TypeString, value)
	}
	if value, ok := _u.mutation.Topics(); ok {
		_spec.SetField(course.FieldTopics, field.TypeJSON, value)
	}
	if value, ok := _u.mutation.AppendedTopics(); ok {
		_spec.AddModifier(func(u *sql.UpdateBuilder) {
			sqljson.Append(u, course.FieldTopics, value)
		})
	}
	if value, ok := _u.mutation.PendingTopics(); ok {
		_spec.SetField(course.FieldPendingTopics, field.TypeJSON, value)
	}
	if value, ok := _u.mutation.AppendedPendingTopics(); ok {
		_spec.AddModifier(func(u *sql.UpdateBuilder) {
			sqljson.Append(u, course.FieldPendingTopics, value)
		})
	}
	if _u.mutation.PendingTopicsCleared() {
		_spec.ClearField(course.FieldPendingTopics, field.TypeJSON)
	}
	if value, ok := _u.mutation.Modules(); ok {
		_spec.SetField(course.FieldModules, field.TypeBytes, value)
	}
	if _u.mutation.ModulesCleared() {
		_spec.ClearField(course.FieldModules, field.TypeBytes)
	}
	_node = &Course{config: _u.config}
	_spec.Assign = _node.assignValues
	_spec.ScanValues = _node.scanValues
	if err = sqlgraph.UpdateNode(ctx, _u.driver, _spec); err != nil {
		if _, ok := err.(*sqlgraph.NotFoundError); ok {
			err = &NotFoundError{course.Label}
		} else if sqlgraph.IsConstraintError(err) {
			err = &ConstraintError{msg: err.Error(), wrap: err}
		}
		return nil, err
	}
	_u.mutation.done = true
	return _node, nil
}

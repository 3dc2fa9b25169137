package topology

import (
	"slices"
	"strconv"

	"github.com/kbukum/smcemu/errors"
	"github.com/kbukum/smcemu/message"
	"github.com/kbukum/smcemu/validation"
	"github.com/kbukum/smcemu/value"
)

// SourceType is the variant of a Source.
type SourceType string

const (
	// SourceModuleConfiguration reads another configuration's output.
	// Params: configuration name, get type, count last, event driven.
	SourceModuleConfiguration SourceType = "MODULE_CONFIGURATION"
	// SourceExecutionContext reads another execution context's output.
	// Params: execution context address, get type, count last, event driven.
	SourceExecutionContext SourceType = "EXECUTION_CONTEXT"
	// SourceStaticValue feeds one constant value.
	SourceStaticValue SourceType = "STATIC_VALUE"
	// SourceMultipart groups a nested source list.
	SourceMultipart SourceType = "MULTIPART"
	// SourceCaller reads the values passed by the caller of a managed run.
	SourceCaller SourceType = "CALLER"
	// SourceCallerRelativeName reads a named caller value.
	SourceCallerRelativeName SourceType = "CALLER_RELATIVE_NAME"
	// SourceObjectArray feeds one object array.
	SourceObjectArray SourceType = "OBJECT_ARRAY"
)

var sourceParamCounts = map[SourceType]int{
	SourceModuleConfiguration: 4,
	SourceExecutionContext:    4,
	SourceStaticValue:         1,
	SourceMultipart:           0,
	SourceCaller:              0,
	SourceCallerRelativeName:  1,
	SourceObjectArray:         1,
}

// ParamCount returns the fixed number of parameters of the variant.
func (t SourceType) ParamCount() (int, bool) {
	n, ok := sourceParamCounts[t]
	return n, ok
}

func checkSourceParams(t SourceType, params []value.Value) error {
	n, ok := t.ParamCount()
	if !ok {
		return errors.UnsupportedSourceType(t)
	}
	v := validation.New().
		Custom(len(params) == n, "params", "expected "+strconv.Itoa(n)+" parameter(s) for "+string(t))
	if len(params) == n {
		switch t {
		case SourceModuleConfiguration, SourceExecutionContext, SourceCallerRelativeName:
			v.Custom(params[0].Type() == value.TypeString, "params[0]", "must be a STRING name")
		case SourceObjectArray:
			v.Custom(params[0].Type() == value.TypeObjectArray, "params[0]", "must be an OBJECT_ARRAY")
		}
	}
	return v.Validate()
}

// SourceList is an ordered list of sources. An ExecutionContext is a source
// list; a MULTIPART source owns a nested one.
type SourceList struct {
	ec      *ExecutionContext
	parent  *Source
	sources []*Source
}

func (l *SourceList) address() string {
	if l.parent != nil {
		return l.parent.Address()
	}
	if l.ec != nil {
		return l.ec.Address()
	}
	return ""
}

// CountSource returns the number of sources.
func (l *SourceList) CountSource() int { return len(l.sources) }

// Source returns the source at id.
func (l *SourceList) Source(id int) (*Source, error) {
	if err := validation.Index("source", id, len(l.sources)); err != nil {
		return nil, err
	}
	return l.sources[id], nil
}

// CreateSource appends a source of variant t.
func (l *SourceList) CreateSource(rec Recorder, t SourceType, params ...value.Value) (*Source, error) {
	if err := checkSourceParams(t, params); err != nil {
		return nil, err
	}
	s := &Source{list: l, order: len(l.sources)}
	s.reset(t, params)
	l.sources = append(l.sources, s)
	record(rec, message.TypeSourceCreate, "%s", s.Address())
	return s, nil
}

// UpdateSource replaces the variant and parameters of the source at id.
// Filters are kept; a nested list is kept only while the source stays
// MULTIPART.
func (l *SourceList) UpdateSource(rec Recorder, id int, t SourceType, params ...value.Value) error {
	if err := validation.Index("source", id, len(l.sources)); err != nil {
		return err
	}
	if err := checkSourceParams(t, params); err != nil {
		return err
	}
	s := l.sources[id]
	s.reset(t, params)
	record(rec, message.TypeSourceUpdate, "%s", s.Address())
	return nil
}

// RemoveSource removes the source at id and renumbers the rest.
func (l *SourceList) RemoveSource(rec Recorder, id int) error {
	if err := validation.Index("source", id, len(l.sources)); err != nil {
		return err
	}
	addr := l.sources[id].Address()
	l.sources = slices.Delete(l.sources, id, id+1)
	for i, s := range l.sources {
		s.order = i
	}
	record(rec, message.TypeSourceRemove, "%s", addr)
	return nil
}

// Source is one input feed of an execution context.
type Source struct {
	list    *SourceList
	typ     SourceType
	params  []value.Value
	order   int
	filters []*Filter
	nested  *SourceList
}

func (s *Source) reset(t SourceType, params []value.Value) {
	s.typ = t
	s.params = append([]value.Value(nil), params...)
	switch {
	case t == SourceMultipart && s.nested == nil:
		s.nested = &SourceList{parent: s}
	case t != SourceMultipart:
		s.nested = nil
	}
}

func (s *Source) Type() SourceType { return s.typ }

// Order returns the position of the source among its siblings.
func (s *Source) Order() int { return s.order }

// Params returns a copy of the variant parameters.
func (s *Source) Params() []value.Value { return append([]value.Value(nil), s.params...) }

// Param returns the parameter at id.
func (s *Source) Param(id int) (value.Value, error) {
	if err := validation.Index("source param", id, len(s.params)); err != nil {
		return value.Value{}, err
	}
	return s.params[id], nil
}

// Address returns "configuration.executionContext.order", extended by one
// order per MULTIPART level.
func (s *Source) Address() string {
	return s.list.address() + "." + strconv.Itoa(s.order)
}

// Nested returns the nested source list of a MULTIPART source, nil otherwise.
func (s *Source) Nested() *SourceList { return s.nested }

// CountFilters returns the number of attached filters.
func (s *Source) CountFilters() int { return len(s.filters) }

// Filter returns the filter at id.
func (s *Source) Filter(id int) (*Filter, error) {
	if err := validation.Index("filter", id, len(s.filters)); err != nil {
		return nil, err
	}
	return s.filters[id], nil
}

// CreateFilter appends a filter of variant t.
func (s *Source) CreateFilter(rec Recorder, t FilterType, params ...value.Value) (*Filter, error) {
	f, err := NewFilter(t, params...)
	if err != nil {
		return nil, err
	}
	s.filters = append(s.filters, f)
	record(rec, message.TypeFilterCreate, "%s %d", s.Address(), len(s.filters)-1)
	return f, nil
}

// UpdateFilter replaces the filter at id.
func (s *Source) UpdateFilter(rec Recorder, id int, t FilterType, params ...value.Value) error {
	if err := validation.Index("filter", id, len(s.filters)); err != nil {
		return err
	}
	f, err := NewFilter(t, params...)
	if err != nil {
		return err
	}
	s.filters[id] = f
	record(rec, message.TypeFilterUpdate, "%s %d", s.Address(), id)
	return nil
}

// RemoveFilter removes the filter at id.
func (s *Source) RemoveFilter(rec Recorder, id int) error {
	if err := validation.Index("filter", id, len(s.filters)); err != nil {
		return err
	}
	s.filters = slices.Delete(s.filters, id, id+1)
	record(rec, message.TypeFilterRemove, "%s %d", s.Address(), id)
	return nil
}

// Apply runs the attached filters over msgs in order.
func (s *Source) Apply(msgs []message.Message) []message.Message {
	for _, f := range s.filters {
		msgs = f.Apply(msgs)
	}
	return msgs
}

package topology

import (
	"strconv"
	"strings"

	"github.com/kbukum/smcemu/errors"
	"github.com/kbukum/smcemu/message"
	"github.com/kbukum/smcemu/validation"
	"github.com/kbukum/smcemu/value"
)

// FilterType is the variant of a Filter.
type FilterType string

const (
	// FilterPosition params: from, to, period, fromEnd.
	FilterPosition FilterType = "POSITION"
	// FilterNumber params: min, max.
	FilterNumber FilterType = "NUMBER"
	// FilterStringEqual params: text, equal.
	FilterStringEqual FilterType = "STRING_EQUAL"
	// FilterStringContain params: text, contain.
	FilterStringContain FilterType = "STRING_CONTAIN"
	// FilterObjectPaths params: comma separated dotted paths.
	FilterObjectPaths FilterType = "OBJECT_PATHS"
)

var filterParamCounts = map[FilterType]int{
	FilterPosition:      4,
	FilterNumber:        2,
	FilterStringEqual:   2,
	FilterStringContain: 2,
	FilterObjectPaths:   1,
}

// ParamCount returns the fixed number of parameters of the variant.
func (t FilterType) ParamCount() (int, bool) {
	n, ok := filterParamCounts[t]
	return n, ok
}

// Filter refines the messages a source contributes.
type Filter struct {
	typ    FilterType
	params []value.Value

	from, to, period int64
	fromEnd          bool
	min, max         float64
	text             string
	match            bool
	paths            []string
}

// NewFilter validates params against the variant and builds a filter.
func NewFilter(t FilterType, params ...value.Value) (*Filter, error) {
	n, ok := t.ParamCount()
	if !ok {
		return nil, errors.UnsupportedFilterType(t)
	}
	if len(params) != n {
		return nil, errors.InvalidArgument("params", "expected "+strconv.Itoa(n)+" parameter(s) for "+string(t))
	}

	f := &Filter{typ: t, params: append([]value.Value(nil), params...)}
	v := validation.New()
	var okA, okB, okC, okD bool
	switch t {
	case FilterPosition:
		f.from, okA = params[0].AsInt64()
		f.to, okB = params[1].AsInt64()
		f.period, okC = params[2].AsInt64()
		f.fromEnd, okD = params[3].AsBool()
		v.Custom(okA, "from", "must be an integer").
			Custom(okB, "to", "must be an integer").
			Custom(okC, "period", "must be an integer").
			Custom(okD, "from_end", "must be a boolean")
	case FilterNumber:
		f.min, okA = params[0].AsFloat64()
		f.max, okB = params[1].AsFloat64()
		v.Custom(okA, "min", "must be a number").
			Custom(okB, "max", "must be a number")
	case FilterStringEqual, FilterStringContain:
		f.text, okA = params[0].AsString()
		f.match, okB = params[1].AsBool()
		v.Custom(okA, "text", "must be a string").
			Custom(okB, "flag", "must be a boolean")
	case FilterObjectPaths:
		var raw string
		raw, okA = params[0].AsString()
		v.Custom(okA, "paths", "must be a string")
		for _, p := range strings.Split(raw, ",") {
			if p = strings.TrimSpace(p); p != "" {
				f.paths = append(f.paths, p)
			}
		}
		v.NotEmpty("paths", len(f.paths))
	}
	if err := v.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *Filter) Type() FilterType { return f.typ }

// Params returns a copy of the variant parameters.
func (f *Filter) Params() []value.Value { return append([]value.Value(nil), f.params...) }

// Apply returns the messages the filter keeps, in their original order.
func (f *Filter) Apply(msgs []message.Message) []message.Message {
	out := make([]message.Message, 0, len(msgs))
	for i, m := range msgs {
		if f.keep(i, len(msgs), m.Value()) {
			out = append(out, m)
		}
	}
	return out
}

func (f *Filter) keep(i, n int, v value.Value) bool {
	switch f.typ {
	case FilterPosition:
		pos := int64(i)
		if f.fromEnd {
			pos = int64(n - 1 - i)
		}
		if f.period > 0 {
			pos %= f.period
		}
		return pos >= f.from && (f.to < 0 || pos < f.to)
	case FilterNumber:
		if !v.Type().IsNumber() {
			return false
		}
		x, _ := v.AsFloat64()
		return x >= f.min && x <= f.max
	case FilterStringEqual:
		s, ok := v.AsString()
		return ok && (s == f.text) == f.match
	case FilterStringContain:
		s, ok := v.AsString()
		return ok && strings.Contains(s, f.text) == f.match
	case FilterObjectPaths:
		arr, ok := v.AsObjectArray()
		if !ok {
			return false
		}
		for _, p := range f.paths {
			if !arr.HasPath(p) {
				return false
			}
		}
		return true
	}
	return false
}

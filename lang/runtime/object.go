package runtime

import (
	"iter"
	"slices"
	"strings"
)

// Object is a mutable set of named properties that remembers the order in
// which they were first set.
type Object struct {
	props map[string]Value
	keys  []string
}

// NewObject returns an empty object.
func NewObject() *Object {
	return &Object{props: make(map[string]Value)}
}

// Get returns the property named key.
func (o *Object) Get(key string) (Value, bool) {
	v, ok := o.props[key]

	return v, ok
}

// Has reports whether the property exists.
func (o *Object) Has(key string) bool {
	_, ok := o.props[key]

	return ok
}

// Set adds or replaces a property. New keys are appended to the order.
func (o *Object) Set(key string, v Value) *Object {
	if o.props == nil {
		o.props = make(map[string]Value)
	}

	if _, ok := o.props[key]; !ok {
		o.keys = append(o.keys, key)
	}

	o.props[key] = v

	return o
}

// Len returns the number of properties.
func (o *Object) Len() int { return len(o.keys) }

// Keys returns the property names in insertion order.
func (o *Object) Keys() []string { return slices.Clone(o.keys) }

// All returns an iterator over the properties in insertion order.
func (o *Object) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		for _, k := range o.keys {
			if !yield(k, o.props[k]) {
				return
			}
		}
	}
}

// Replace discards the properties of o and copies those of other, keeping
// the identity of o so that every reference to it observes the change.
func (o *Object) Replace(other *Object) {
	if o == other {
		return
	}

	o.props = make(map[string]Value, other.Len())
	o.keys = nil

	for k, v := range other.All() {
		o.Set(k, v)
	}
}

func (o *Object) String() string {
	if o.Len() == 0 {
		return "{}"
	}

	var sb strings.Builder

	sb.WriteString("{ ")

	for i, k := range o.keys {
		if i > 0 {
			sb.WriteString(", ")
		}

		sb.WriteString(k)
		sb.WriteString(": ")

		if s, ok := o.props[k].(String); ok {
			sb.WriteString(`"` + string(s) + `"`)
		} else {
			sb.WriteString(o.props[k].String())
		}
	}

	sb.WriteString(" }")

	return sb.String()
}

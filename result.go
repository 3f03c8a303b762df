package convexenv

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Env is the result of Create: one value per declared variable plus the two
// platform fields. Values are string, float64 or bool; an unset optional
// variable holds nil.
type Env struct {
	SiteURL  string
	CloudURL string

	keys   []string
	values map[string]any
}

func newEnv(size int) *Env {
	return &Env{
		keys:   make([]string, 0, size),
		values: make(map[string]any, size),
	}
}

func (e *Env) set(key string, value any) {
	if _, ok := e.values[key]; !ok {
		e.keys = append(e.keys, key)
	}
	e.values[key] = value
}

// Keys returns the declared variable names in declaration order.
func (e *Env) Keys() []string {
	out := make([]string, len(e.keys))
	copy(out, e.keys)
	return out
}

// Get returns the value of key and whether key is part of the result.
// The reserved platform fields are always part of the result.
func (e *Env) Get(key string) (any, bool) {
	switch key {
	case SiteURLKey:
		return e.SiteURL, true
	case CloudURLKey:
		return e.CloudURL, true
	}
	v, ok := e.values[key]
	return v, ok
}

// GetString returns the value of a string, literal or union variable.
// ok is false when the variable is undeclared, unset or of another kind.
func (e *Env) GetString(key string) (string, bool) {
	return Lookup[string](e, key)
}

// GetNumber returns the value of a number variable.
func (e *Env) GetNumber(key string) (float64, bool) {
	return Lookup[float64](e, key)
}

// GetBool returns the value of a boolean variable.
func (e *Env) GetBool(key string) (bool, bool) {
	return Lookup[bool](e, key)
}

// Lookup returns the value of key as T.
func Lookup[T any](e *Env, key string) (T, bool) {
	var zero T
	v, ok := e.Get(key)
	if !ok || v == nil {
		return zero, false
	}
	t, ok := v.(T)
	if !ok {
		return zero, false
	}
	return t, true
}

// Map returns a copy of every field, reserved platform fields included.
func (e *Env) Map() map[string]any {
	out := make(map[string]any, len(e.values)+2)
	out[SiteURLKey] = e.SiteURL
	out[CloudURLKey] = e.CloudURL
	for k, v := range e.values {
		out[k] = v
	}
	return out
}

// MarshalJSON writes the platform fields followed by the declared variables in order.
func (e *Env) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range e.orderedKeys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		v, _ := e.Get(key)
		keyJSON, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		valueJSON, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("marshal %s: %w", key, err)
		}
		buf.Write(keyJSON)
		buf.WriteByte(':')
		buf.Write(valueJSON)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML produces an ordered mapping, as MarshalJSON does.
func (e *Env) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, key := range e.orderedKeys() {
		v, _ := e.Get(key)
		var valueNode yaml.Node
		if err := valueNode.Encode(v); err != nil {
			return nil, fmt.Errorf("marshal %s: %w", key, err)
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
			&valueNode,
		)
	}
	return node, nil
}

func (e *Env) orderedKeys() []string {
	return append([]string{SiteURLKey, CloudURLKey}, e.keys...)
}

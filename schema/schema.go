package schema

// Entry is a single named declaration in a Schema
type Entry struct {
	Name      string
	Validator Validator
}

// Field builds an Entry.
func Field(name string, v Validator) Entry {
	return Entry{Name: name, Validator: v}
}

// Schema is an ordered mapping from variable name to Validator.
// Names are unique and iteration follows declaration order.
type Schema struct {
	entries []Entry
	index   map[string]int
}

// New builds a Schema from entries. A repeated name replaces the earlier
// validator but keeps the position of its first declaration.
func New(entries ...Entry) Schema {
	var s Schema
	for _, e := range entries {
		s = s.with(e.Name, e.Validator)
	}
	return s
}

// With returns a copy of s with name declared as v.
func (s Schema) With(name string, v Validator) Schema {
	return s.with(name, v)
}

// Merge returns a schema containing s followed by every entry of others,
// with later declarations of a name overriding earlier ones.
func (s Schema) Merge(others ...Schema) Schema {
	out := s.clone()
	for _, o := range others {
		for _, e := range o.entries {
			out.set(e.Name, e.Validator)
		}
	}
	return out
}

// Merge combines schemas left to right, as Schema.Merge does.
func Merge(schemas ...Schema) Schema {
	return Schema{}.Merge(schemas...)
}

// Get returns the validator declared for name.
func (s Schema) Get(name string) (Validator, bool) {
	i, ok := s.index[name]
	if !ok {
		return Validator{}, false
	}
	return s.entries[i].Validator, true
}

// Has reports whether name is declared.
func (s Schema) Has(name string) bool {
	_, ok := s.index[name]
	return ok
}

// Len returns the number of declared variables.
func (s Schema) Len() int {
	return len(s.entries)
}

// Keys returns the declared names in order.
func (s Schema) Keys() []string {
	keys := make([]string, len(s.entries))
	for i, e := range s.entries {
		keys[i] = e.Name
	}
	return keys
}

// Fields returns the entries in declaration order.
func (s Schema) Fields() []Entry {
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

func (s Schema) with(name string, v Validator) Schema {
	out := s.clone()
	out.set(name, v)
	return out
}

func (s Schema) clone() Schema {
	out := Schema{
		entries: make([]Entry, len(s.entries), len(s.entries)+1),
		index:   make(map[string]int, len(s.entries)+1),
	}
	copy(out.entries, s.entries)
	for k, i := range s.index {
		out.index[k] = i
	}
	return out
}

// set mutates s in place; only called on fresh clones.
func (s *Schema) set(name string, v Validator) {
	if i, ok := s.index[name]; ok {
		s.entries[i].Validator = v
		return
	}
	s.index[name] = len(s.entries)
	s.entries = append(s.entries, Entry{Name: name, Validator: v})
}

// Equal reports whether both schemas declare the same names, in the same order, with equal validators.
func (s Schema) Equal(other Schema) bool {
	if len(s.entries) != len(other.entries) {
		return false
	}
	for i, e := range s.entries {
		o := other.entries[i]
		if e.Name != o.Name || !e.Validator.Equal(o.Validator) {
			return false
		}
	}
	return true
}

package backend

import (
	"iter"
	"log/slog"
	"maps"
	"slices"

	"github.com/ardnew/ilc/il"
)

// Decl pairs a name with its declared type.
type Decl struct {
	Name string
	Type il.Type
}

// NameRegistry maps identifier names to their declared types.
//
// Each name has at most one type. A NameRegistry is not safe for concurrent
// mutation; give each compilation its own instance and use [NameRegistry.Clone]
// to open a nested scope.
type NameRegistry struct {
	names map[string]il.Type
}

// NewNameRegistry returns a registry seeded with decls. A name that appears
// more than once keeps its first type.
func NewNameRegistry(decls ...Decl) *NameRegistry {
	r := &NameRegistry{names: make(map[string]il.Type, len(decls))}

	for _, d := range decls {
		_ = r.Add(d.Name, d.Type)
	}

	return r
}

// Add declares name with type t. It fails with [*NamePresentError] when name
// is already declared, leaving the existing entry untouched.
func (r *NameRegistry) Add(name string, t il.Type) error {
	if r.names == nil {
		r.names = make(map[string]il.Type)
	}

	if _, ok := r.names[name]; ok {
		return &NamePresentError{Name: name}
	}

	r.names[name] = t.Clone()

	return nil
}

// Get returns the type declared for name, or [*NameNotFoundError].
func (r *NameRegistry) Get(name string) (il.Type, error) {
	if r != nil {
		if t, ok := r.names[name]; ok {
			return t.Clone(), nil
		}
	}

	return il.Type{}, &NameNotFoundError{Name: name}
}

// IsDefined reports whether name is declared.
func (r *NameRegistry) IsDefined(name string) bool {
	if r == nil {
		return false
	}

	_, ok := r.names[name]

	return ok
}

// Clone returns an independent copy of r. Declarations added to either copy
// are never visible through the other.
func (r *NameRegistry) Clone() *NameRegistry {
	c := &NameRegistry{names: make(map[string]il.Type, r.Len())}

	if r != nil {
		for name, t := range r.names {
			c.names[name] = t.Clone()
		}
	}

	return c
}

// Len returns the number of declared names.
func (r *NameRegistry) Len() int {
	if r == nil {
		return 0
	}

	return len(r.names)
}

// Names yields every declared name in lexical order.
func (r *NameRegistry) Names() iter.Seq[string] {
	return func(yield func(string) bool) {
		if r == nil {
			return
		}

		for _, name := range slices.Sorted(maps.Keys(r.names)) {
			if !yield(name) {
				return
			}
		}
	}
}

// All yields every declaration in lexical order of name.
func (r *NameRegistry) All() iter.Seq[Decl] {
	return func(yield func(Decl) bool) {
		for name := range r.Names() {
			if !yield(Decl{Name: name, Type: r.names[name].Clone()}) {
				return
			}
		}
	}
}

// LogValue implements slog.LogValuer.
func (r *NameRegistry) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, r.Len())

	for d := range r.All() {
		attrs = append(attrs, slog.String(d.Name, d.Type.String()))
	}

	return slog.GroupValue(attrs...)
}

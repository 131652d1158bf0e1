package alert

import (
	"sort"

	"github.com/hashicorp/go-multierror"
)

// Definition is a fully resolved alert type.
type Definition struct {
	Name        string
	Glyph       string
	VectorImage string
}

// CustomType is a caller supplied, possibly partial, alert type definition.
// An empty field means "not supplied".
type CustomType struct {
	Glyph       string
	VectorImage string
}

// Source tells where a registry entry came from.
type Source string

const (
	SourceBuiltin  Source = "builtin"
	SourceCustom   Source = "custom"
	SourceOverride Source = "override"
)

// Registry is the merged view of the built-in catalog and custom types.
// It is immutable once built.
type Registry struct {
	defs    map[string]Definition
	sources map[string]Source
}

// NewRegistry overlays custom onto the built-in catalog. Overrides of built-in
// names keep the catalog value for every field left empty; new names must
// supply both a glyph and a vector image. All invalid entries are reported
// together, each matching ErrConfiguration.
func NewRegistry(custom map[string]CustomType) (*Registry, error) {
	r := &Registry{
		defs:    make(map[string]Definition, len(catalog)+len(custom)),
		sources: make(map[string]Source, len(catalog)+len(custom)),
	}
	for name, def := range catalog {
		r.defs[name] = def
		r.sources[name] = SourceBuiltin
	}

	// Sorted so error output is stable.
	names := make([]string, 0, len(custom))
	for name := range custom {
		names = append(names, name)
	}
	sort.Strings(names)

	var result *multierror.Error
	for _, name := range names {
		ct := custom[name]
		if !isTypeName(name) {
			result = multierror.Append(result, &ConfigError{Type: name, Reason: "name must contain only letters, digits and hyphens"})
			continue
		}

		if base, ok := catalog[name]; ok {
			if ct.Glyph != "" {
				base.Glyph = ct.Glyph
			}
			if ct.VectorImage != "" {
				base.VectorImage = ct.VectorImage
			}
			r.defs[name] = base
			r.sources[name] = SourceOverride
			continue
		}

		switch {
		case ct.Glyph == "" && ct.VectorImage == "":
			result = multierror.Append(result, &ConfigError{Type: name, Reason: "glyph and vector image are required"})
			continue
		case ct.Glyph == "":
			result = multierror.Append(result, &ConfigError{Type: name, Reason: "glyph is required"})
			continue
		case ct.VectorImage == "":
			result = multierror.Append(result, &ConfigError{Type: name, Reason: "vector image is required"})
			continue
		}

		r.defs[name] = Definition{Name: name, Glyph: ct.Glyph, VectorImage: ct.VectorImage}
		r.sources[name] = SourceCustom
	}

	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}
	return r, nil
}

// Resolve returns the definition registered under name.
func (r *Registry) Resolve(name string) (Definition, error) {
	def, ok := r.defs[name]
	if !ok {
		return Definition{}, &UnknownTypeError{Type: name}
	}
	return def, nil
}

// Source reports where name was defined. ok is false for unknown names.
func (r *Registry) Source(name string) (Source, bool) {
	src, ok := r.sources[name]
	return src, ok
}

// Names returns every resolvable type name in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.defs))
	for name := range r.defs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func isTypeName(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isTypeNameByte(s[i]) {
			return false
		}
	}
	return true
}

func isTypeNameByte(c byte) bool {
	return c == '-' ||
		('a' <= c && c <= 'z') ||
		('A' <= c && c <= 'Z') ||
		('0' <= c && c <= '9')
}

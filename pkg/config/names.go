package config

import (
	"fmt"
	"sort"

	"github.com/samber/lo"
)

// NameResolver maps canonical compose service names to friendly display
// aliases and back. Services without an alias display as themselves.
type NameResolver struct {
	aliases   map[string]string
	canonical map[string]string
}

// NewNameResolver validates that no two services share an alias.
func NewNameResolver(aliases map[string]string) (*NameResolver, error) {
	r := &NameResolver{
		aliases:   make(map[string]string, len(aliases)),
		canonical: make(map[string]string, len(aliases)),
	}

	// sorted so the error names the same pair on every run
	names := lo.Keys(aliases)
	sort.Strings(names)

	for _, name := range names {
		alias := aliases[name]
		if other, ok := r.canonical[alias]; ok {
			return nil, &ConfigError{
				Msg: fmt.Sprintf("duplicate service name alias %q for %q and %q in %s", alias, other, name, LocalOverrideFileName),
			}
		}
		r.aliases[name] = alias
		r.canonical[alias] = name
	}

	return r, nil
}

// Resolve returns the display name of a service.
func (r *NameResolver) Resolve(canonical string) string {
	if alias, ok := r.aliases[canonical]; ok {
		return alias
	}
	return canonical
}

// ReverseResolve returns the service name behind a display name.
func (r *NameResolver) ReverseResolve(display string) string {
	if name, ok := r.canonical[display]; ok {
		return name
	}
	return display
}

// Aliases returns a copy of the canonical -> alias mapping.
func (r *NameResolver) Aliases() map[string]string {
	out := make(map[string]string, len(r.aliases))
	for name, alias := range r.aliases {
		out[name] = alias
	}
	return out
}

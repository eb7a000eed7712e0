package persona

import (
	"fmt"
	"strings"

	"github.com/hotker/blog-collector-go/internal/domain"
)

// DefaultPersonaID is used when triage is disabled or returns an identifier
// that is not registered.
const DefaultPersonaID = "geek"

var ErrNotFound = fmt.Errorf("persona not found")

// Registry is the static catalog of editorial voices. It is assembled once
// at process start and read-only afterwards.
type Registry struct {
	ordered []*domain.Persona
	byID    map[string]*domain.Persona
}

// NewRegistry builds a registry from the built-in persona table. When enabled
// is non-empty, only the named personas are registered; unknown names are
// ignored so a stale flag cannot empty the registry by accident.
func NewRegistry(enabled []string) *Registry {
	r := &Registry{
		byID: make(map[string]*domain.Persona),
	}

	allow := make(map[string]bool, len(enabled))
	for _, id := range enabled {
		allow[strings.ToLower(strings.TrimSpace(id))] = true
	}

	for _, p := range builtinPersonas {
		if len(allow) > 0 && !allow[p.ID] {
			continue
		}
		persona := p
		r.ordered = append(r.ordered, &persona)
		r.byID[persona.ID] = &persona
	}

	if len(r.ordered) == 0 {
		for _, p := range builtinPersonas {
			persona := p
			r.ordered = append(r.ordered, &persona)
			r.byID[persona.ID] = &persona
		}
	}

	return r
}

// List returns personas in their declaration order.
func (r *Registry) List() []*domain.Persona {
	return r.ordered
}

func (r *Registry) Get(id string) (*domain.Persona, error) {
	p, ok := r.byID[strings.ToLower(strings.TrimSpace(id))]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return p, nil
}

// Has reports whether id names a registered persona.
func (r *Registry) Has(id string) bool {
	_, ok := r.byID[strings.ToLower(strings.TrimSpace(id))]
	return ok
}

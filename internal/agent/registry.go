package agent

import (
	"sort"
	"strings"

	"github.com/dishaajyoti/vedicai/internal/domain"
)

// Constructor builds a DomainAgent from shared dependencies.
type Constructor func(Deps) DomainAgent

// AgentInfo describes one distinct agent implementation.
type AgentInfo struct {
	Type        string `json:"type"`
	Description string `json:"description"`
}

// Registry maps domain identifiers to agent constructors. Several
// identifiers may alias the same constructor; aliased sub-specialties share
// one implementation and knowledge namespace. The registry is constructed
// once at startup and injected into the request layer.
type Registry struct {
	deps         Deps
	constructors map[string]Constructor
}

// NewRegistry creates a registry with the default agent table.
func NewRegistry(deps Deps) *Registry {
	r := &Registry{
		deps:         deps,
		constructors: make(map[string]Constructor),
	}

	r.Register("jyotisha", NewJyotishaAgent)
	r.Register("vastu", NewVastuAgent)
	r.Register("numerology", NewNumerologyAgent)
	r.Register("palmistry", NewPalmistryAgent)

	// Jyotisha sub-specialties share the jyotisha implementation.
	r.Register("gems-stones", NewJyotishaAgent)
	r.Register("muhurta", NewJyotishaAgent)
	r.Register("prashna", NewJyotishaAgent)
	r.Register("remedies", NewJyotishaAgent)

	return r
}

// Register adds or replaces an agent constructor under the given identifier.
func (r *Registry) Register(domainID string, c Constructor) {
	r.constructors[normalizeID(domainID)] = c
}

// Resolve returns the agent for the identifier. The comparison is
// case-insensitive and trims whitespace.
func (r *Registry) Resolve(domainID string) (DomainAgent, error) {
	c, ok := r.constructors[normalizeID(domainID)]
	if !ok {
		return nil, domain.NewUnknownDomainError(normalizeID(domainID), r.DomainIDs())
	}
	return c(r.deps), nil
}

// DomainIDs returns all registered identifiers, aliases included, sorted.
func (r *Registry) DomainIDs() []string {
	ids := make([]string, 0, len(r.constructors))
	for id := range r.constructors {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// List returns one entry per distinct agent implementation, so aliases are
// invisible in listings even though they resolve independently.
func (r *Registry) List() []AgentInfo {
	seen := make(map[string]bool)
	infos := make([]AgentInfo, 0, len(r.constructors))

	for _, id := range r.DomainIDs() {
		a := r.constructors[id](r.deps)
		if seen[a.DomainID()] {
			continue
		}
		seen[a.DomainID()] = true
		infos = append(infos, AgentInfo{
			Type:        a.DomainID(),
			Description: a.Description(),
		})
	}

	return infos
}

func normalizeID(domainID string) string {
	return strings.ToLower(strings.TrimSpace(domainID))
}

// Package roles holds the process-wide role name lookup. The role set is
// a deployment-time constant (admin, staff, customer): the registry is
// populated once before the first request is served and never mutated,
// so concurrent reads need no locking.
package roles

import (
	"context"
	"errors"

	"github.com/cineplex/reservation-system/internal/core/domain"
)

var ErrNoRoles = errors.New("no roles loaded")

// Source is the minimal read surface the registry needs at startup.
// ports.RoleRepository satisfies it.
type Source interface {
	ListAll(ctx context.Context) ([]domain.Role, error)
}

// Registry provides bidirectional role name <-> id lookup.
type Registry struct {
	byName map[string]int
	byID   map[int]string
}

// NewRegistry builds a registry from an explicit role list.
func NewRegistry(list []domain.Role) *Registry {
	r := &Registry{
		byName: make(map[string]int, len(list)),
		byID:   make(map[int]string, len(list)),
	}
	for _, role := range list {
		r.byName[role.Name] = role.ID
		r.byID[role.ID] = role.Name
	}
	return r
}

// Load reads all role records and builds the registry. Startup must not
// proceed on an empty role table; that indicates unseeded storage.
func Load(ctx context.Context, repo Source) (*Registry, error) {
	list, err := repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, ErrNoRoles
	}
	return NewRegistry(list), nil
}

// IDOf returns the id for a role name.
func (r *Registry) IDOf(name string) (int, bool) {
	id, ok := r.byName[name]
	return id, ok
}

// NameOf returns the name for a role id.
func (r *Registry) NameOf(id int) (string, bool) {
	name, ok := r.byID[id]
	return name, ok
}

package ports

import (
	"context"

	"github.com/cineplex/reservation-system/internal/core/domain"
)

// RoleRepository reads role records. It is consumed exactly once, at
// startup, to build the role registry.
type RoleRepository interface {
	ListAll(ctx context.Context) ([]domain.Role, error)
}

package roles

import (
	"context"
	"errors"
	"testing"

	"github.com/cineplex/reservation-system/internal/core/domain"
)

type stubSource struct {
	list []domain.Role
	err  error
}

func (s *stubSource) ListAll(context.Context) ([]domain.Role, error) {
	return s.list, s.err
}

func TestRegistry_Lookups(t *testing.T) {
	r := NewRegistry([]domain.Role{
		{ID: 1, Name: domain.RoleAdmin},
		{ID: 2, Name: domain.RoleStaff},
		{ID: 3, Name: domain.RoleCustomer},
	})

	id, ok := r.IDOf(domain.RoleStaff)
	if !ok || id != 2 {
		t.Fatalf("IDOf(staff) = %d, %v", id, ok)
	}

	name, ok := r.NameOf(3)
	if !ok || name != domain.RoleCustomer {
		t.Fatalf("NameOf(3) = %q, %v", name, ok)
	}

	if _, ok := r.IDOf("superuser"); ok {
		t.Fatalf("unknown role name must not resolve")
	}
	if _, ok := r.NameOf(99); ok {
		t.Fatalf("unknown role id must not resolve")
	}
}

func TestLoad(t *testing.T) {
	src := &stubSource{list: []domain.Role{{ID: 1, Name: domain.RoleAdmin}}}

	r, err := Load(context.Background(), src)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if name, ok := r.NameOf(1); !ok || name != domain.RoleAdmin {
		t.Fatalf("NameOf(1) = %q, %v", name, ok)
	}
}

func TestLoad_EmptySource(t *testing.T) {
	if _, err := Load(context.Background(), &stubSource{}); !errors.Is(err, ErrNoRoles) {
		t.Fatalf("expected ErrNoRoles, got %v", err)
	}
}

func TestLoad_SourceError(t *testing.T) {
	wantErr := errors.New("storage down")
	if _, err := Load(context.Background(), &stubSource{err: wantErr}); !errors.Is(err, wantErr) {
		t.Fatalf("expected source error, got %v", err)
	}
}

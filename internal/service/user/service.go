package user

import (
	"context"

	"github.com/google/uuid"

	"github.com/careops/hospital-api/internal/apperrors"
	"github.com/careops/hospital-api/internal/model"
	"github.com/careops/hospital-api/internal/repository"
	"github.com/careops/hospital-api/internal/service/authz"
)

// Service covers the staff administration surface: listing and removing
// accounts. Role reassignment is deliberately absent.
type Service struct {
	repo  repository.UserRepository
	authz *authz.Service
}

func NewService(repo repository.UserRepository, authzSvc *authz.Service) *Service {
	return &Service{repo: repo, authz: authzSvc}
}

func (s *Service) List(ctx context.Context, actor model.Actor) ([]*model.User, error) {
	if s.authz.Evaluate(actor.Role, authz.ResourceUsersList, authz.Ownership{}) != authz.Allow {
		return nil, apperrors.PermissionDenied()
	}
	return s.repo.List(ctx)
}

func (s *Service) Delete(ctx context.Context, actor model.Actor, id uuid.UUID) error {
	if s.authz.Evaluate(actor.Role, authz.ResourceUsersDelete, authz.Ownership{}) != authz.Allow {
		return apperrors.PermissionDenied()
	}

	if actor.ID == id {
		return apperrors.Validation("id", "cannot delete your own account")
	}

	target, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}

	// An org_admin cannot remove a superuser account.
	if target.Role == model.RoleGlobalAdmin && actor.Role != model.RoleGlobalAdmin {
		return apperrors.PermissionDenied()
	}

	return s.repo.Delete(ctx, id)
}

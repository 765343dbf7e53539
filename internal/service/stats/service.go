package stats

import (
	"context"
	"fmt"

	"github.com/careops/hospital-api/internal/apperrors"
	"github.com/careops/hospital-api/internal/model"
	"github.com/careops/hospital-api/internal/repository"
	"github.com/careops/hospital-api/internal/service/authz"
)

// Service produces role-filtered read projections. It never mutates
// workflow state; reads are safely cancelable and retryable.
type Service struct {
	repo  repository.StatsRepository
	authz *authz.Service
}

func NewService(repo repository.StatsRepository, authzSvc *authz.Service) *Service {
	return &Service{repo: repo, authz: authzSvc}
}

// ComputeStats reads one consistent snapshot and blanks every field outside
// the actor's permission scope before it leaves this service.
func (s *Service) ComputeStats(ctx context.Context, actor model.Actor) (*model.OverviewStats, error) {
	if s.authz.Evaluate(actor.Role, authz.ResourceStatsView, authz.Ownership{}) != authz.Allow {
		return nil, apperrors.PermissionDenied()
	}

	snap, err := s.repo.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read stats snapshot: %w", err)
	}

	filtered := s.authz.FilterStats(actor.Role, *snap)
	return &filtered, nil
}

func (s *Service) FinanceStats(ctx context.Context, actor model.Actor) (*model.FinanceStats, error) {
	if s.authz.Evaluate(actor.Role, authz.ResourceFinanceStats, authz.Ownership{}) != authz.Allow {
		return nil, apperrors.PermissionDenied()
	}
	return s.repo.FinanceStats(ctx)
}

func (s *Service) DeptRevenue(ctx context.Context, actor model.Actor) ([]*model.DeptRevenue, error) {
	if s.authz.Evaluate(actor.Role, authz.ResourceFinanceStats, authz.Ownership{}) != authz.Allow {
		return nil, apperrors.PermissionDenied()
	}
	return s.repo.DeptRevenue(ctx)
}

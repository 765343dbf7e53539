package payment

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/careops/hospital-api/internal/apperrors"
	"github.com/careops/hospital-api/internal/model"
	"github.com/careops/hospital-api/internal/repository"
	"github.com/careops/hospital-api/internal/service/authz"
	"github.com/careops/hospital-api/internal/service/event"
)

// Service owns payment order lifecycle mutation. Orders are generated by
// the billing collaborator; this service only lists and settles them.
type Service struct {
	repo   repository.PaymentRepository
	authz  *authz.Service
	events *event.Service
}

func NewService(repo repository.PaymentRepository, authzSvc *authz.Service, events *event.Service) *Service {
	return &Service{
		repo:   repo,
		authz:  authzSvc,
		events: events,
	}
}

func (s *Service) ListUnpaid(ctx context.Context, actor model.Actor) ([]*model.PaymentOrder, error) {
	return s.list(ctx, actor, authz.ResourcePaymentList, model.PaymentStatusUnpaid)
}

func (s *Service) ListHistory(ctx context.Context, actor model.Actor) ([]*model.PaymentOrder, error) {
	return s.list(ctx, actor, authz.ResourcePaymentHistory, model.PaymentStatusPaid)
}

func (s *Service) list(ctx context.Context, actor model.Actor, resource authz.Resource, status model.PaymentStatus) ([]*model.PaymentOrder, error) {
	if s.authz.Evaluate(actor.Role, resource, authz.Ownership{}) != authz.Allow {
		return nil, apperrors.PermissionDenied()
	}

	if actor.Role == model.RoleGeneralUser {
		return s.repo.ListByPatientAndStatus(ctx, actor.Username, status)
	}
	return s.repo.ListByStatus(ctx, status)
}

// Settle moves an order Unpaid → Paid exactly once. A second attempt is
// rejected with AlreadySettled — distinct from both success and NotFound,
// so a cashier sees "no action needed" rather than a double charge. A
// general_user settling someone else's order gets NotFound: the record's
// existence is never confirmed to an unauthorized viewer.
func (s *Service) Settle(ctx context.Context, actor model.Actor, orderID uuid.UUID) (*model.PaymentOrder, error) {
	// Role membership is checked before the order is fetched, so a role
	// with no settle permission gets the same answer for real and missing
	// ids and cannot probe which orders exist.
	if s.authz.Evaluate(actor.Role, authz.ResourcePaymentSettle, authz.Ownership{}) != authz.Allow {
		return nil, apperrors.PermissionDenied()
	}

	order, err := s.repo.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}

	own := authz.Ownership{ActorName: actor.Username, OwnerName: order.PatientName}
	if s.authz.Evaluate(actor.Role, authz.ResourcePaymentSettle, own) != authz.Allow {
		// Only a general_user aiming at another patient's order reaches
		// this branch; existence is masked.
		return nil, apperrors.NotFound("payment order")
	}

	if order.Status == model.PaymentStatusPaid {
		return nil, apperrors.AlreadySettled()
	}

	swapped, err := s.repo.CompareAndSetStatus(ctx, orderID, model.PaymentStatusUnpaid, model.PaymentStatusPaid)
	if err != nil {
		return nil, fmt.Errorf("failed to settle order: %w", err)
	}
	if !swapped {
		// A concurrent settle won the compare-and-set.
		return nil, apperrors.AlreadySettled()
	}

	order.Status = model.PaymentStatusPaid

	if err := s.events.Emit(ctx, model.EventPaymentSettled, order); err != nil {
		log.Warn().Err(err).Str("order_id", orderID.String()).Msg("failed to emit payment event")
	}
	return order, nil
}

package booking

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/careops/hospital-api/internal/apperrors"
	"github.com/careops/hospital-api/internal/model"
	"github.com/careops/hospital-api/internal/repository"
	"github.com/careops/hospital-api/internal/service/authz"
	"github.com/careops/hospital-api/internal/service/directory"
	"github.com/careops/hospital-api/internal/service/event"
)

// Service owns booking lifecycle mutation. Every operation takes the actor
// explicitly and re-checks permission here, independent of the route gate.
type Service struct {
	repo      repository.BookingRepository
	directory *directory.Service
	authz     *authz.Service
	events    *event.Service
}

func NewService(repo repository.BookingRepository, directory *directory.Service, authzSvc *authz.Service, events *event.Service) *Service {
	return &Service{
		repo:      repo,
		directory: directory,
		authz:     authzSvc,
		events:    events,
	}
}

// Create files a new booking in Pending state. A general_user always books
// under their own name; the request's patient_name is overridden, not
// merely defaulted, so a tampered client cannot file under someone else.
func (s *Service) Create(ctx context.Context, actor model.Actor, req *model.CreateBookingRequest) (*model.Booking, error) {
	if s.authz.Evaluate(actor.Role, authz.ResourceBookingsCreate, authz.Ownership{}) != authz.Allow {
		return nil, apperrors.PermissionDenied()
	}

	if actor.Role == model.RoleGeneralUser {
		req.PatientName = actor.Username
	}

	if err := s.validate(req); err != nil {
		return nil, err
	}

	if req.DoctorID != nil {
		if err := s.directory.ValidatePairing(ctx, req.Department, *req.DoctorID); err != nil {
			return nil, err
		}
	}

	booking := &model.Booking{
		ID:          uuid.New(),
		PatientName: req.PatientName,
		Age:         req.Age,
		Gender:      req.Gender,
		Department:  req.Department,
		DoctorID:    req.DoctorID,
		Status:      model.BookingStatusPending,
	}

	if err := s.repo.Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	if err := s.events.Emit(ctx, model.EventBookingCreated, booking); err != nil {
		log.Warn().Err(err).Str("booking_id", booking.ID.String()).Msg("failed to emit booking event")
	}

	return booking, nil
}

// Advance moves a booking Pending → Completed. Re-advancing an already
// Completed booking is a no-op success so a double-submitted "mark seen"
// cannot corrupt state or surface a spurious error.
func (s *Service) Advance(ctx context.Context, actor model.Actor, id uuid.UUID) (*model.Booking, error) {
	if s.authz.Evaluate(actor.Role, authz.ResourceBookingsAdvance, authz.Ownership{}) != authz.Allow {
		return nil, apperrors.PermissionDenied()
	}

	swapped, err := s.repo.CompareAndSetStatus(ctx, id, model.BookingStatusPending, model.BookingStatusCompleted)
	if err != nil {
		return nil, fmt.Errorf("failed to advance booking: %w", err)
	}

	booking, getErr := s.repo.Get(ctx, id)
	if getErr != nil {
		return nil, getErr
	}

	if swapped {
		if err := s.events.Emit(ctx, model.EventBookingCompleted, booking); err != nil {
			log.Warn().Err(err).Str("booking_id", id.String()).Msg("failed to emit booking event")
		}
	}
	return booking, nil
}

// List returns all bookings for staff and only the actor's own for
// general_user. The filter is applied at the query boundary.
func (s *Service) List(ctx context.Context, actor model.Actor) ([]*model.Booking, error) {
	if s.authz.Evaluate(actor.Role, authz.ResourceBookingsList, authz.Ownership{}) != authz.Allow {
		return nil, apperrors.PermissionDenied()
	}

	if actor.Role == model.RoleGeneralUser {
		return s.repo.ListByPatient(ctx, actor.Username)
	}
	return s.repo.List(ctx)
}

func (s *Service) validate(req *model.CreateBookingRequest) error {
	if req.PatientName == "" {
		return apperrors.Validation("patient_name", "required")
	}
	if req.Age < model.MinPatientAge || req.Age > model.MaxPatientAge {
		return apperrors.Validation("age", fmt.Sprintf("must be between %d and %d", model.MinPatientAge, model.MaxPatientAge))
	}
	if req.Gender == "" {
		return apperrors.Validation("gender", "required")
	}
	if !req.Department.Valid() {
		return apperrors.Validation("department", "unknown department")
	}
	return nil
}

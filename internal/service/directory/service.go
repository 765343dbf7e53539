package directory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/careops/hospital-api/internal/apperrors"
	"github.com/careops/hospital-api/internal/model"
	"github.com/careops/hospital-api/internal/repository"
)

// Service resolves the department taxonomy and doctor assignments. The
// directory is read-mostly configuration data, so doctor lists are cached
// with a refresh TTL; staleness only reuses a correct-but-older roster.
type Service struct {
	repo  repository.DoctorRepository
	cache *cache.Cache
}

type Config struct {
	CacheTTL        time.Duration
	CleanupInterval time.Duration
}

func DefaultConfig() Config {
	return Config{
		CacheTTL:        5 * time.Minute,
		CleanupInterval: 15 * time.Minute,
	}
}

func NewService(repo repository.DoctorRepository, cfg Config) *Service {
	return &Service{
		repo:  repo,
		cache: cache.New(cfg.CacheTTL, cfg.CleanupInterval),
	}
}

// ListDoctors returns the department's doctors in stable id order.
func (s *Service) ListDoctors(ctx context.Context, dept model.Department) ([]*model.Doctor, error) {
	if !dept.Valid() {
		return nil, apperrors.Validation("department", "unknown department")
	}

	key := "dept:" + dept.String()
	if cached, ok := s.cache.Get(key); ok {
		return cached.([]*model.Doctor), nil
	}

	doctors, err := s.repo.ListByDepartment(ctx, dept)
	if err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}

	s.cache.Set(key, doctors, cache.DefaultExpiration)
	return doctors, nil
}

// ListAllDoctors returns the full roster across departments.
func (s *Service) ListAllDoctors(ctx context.Context) ([]*model.Doctor, error) {
	if cached, ok := s.cache.Get("all"); ok {
		return cached.([]*model.Doctor), nil
	}

	doctors, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}

	s.cache.Set("all", doctors, cache.DefaultExpiration)
	return doctors, nil
}

// ValidatePairing checks that the doctor exists and belongs to the given
// department. This runs server-side on every booking creation: the client's
// department cascade is a UX convenience, never a security boundary.
func (s *Service) ValidatePairing(ctx context.Context, dept model.Department, doctorID uuid.UUID) error {
	if !dept.Valid() {
		return apperrors.Validation("department", "unknown department")
	}

	doctor, err := s.repo.Get(ctx, doctorID)
	if err != nil {
		if apperrors.Is(err, apperrors.CodeNotFound) {
			return apperrors.Validation("doctor_id", "doctor does not exist")
		}
		return fmt.Errorf("failed to resolve doctor: %w", err)
	}

	if doctor.Department != dept {
		return apperrors.Validation("doctor_id", "doctor does not belong to the selected department")
	}
	return nil
}

// Invalidate drops cached rosters after an administrative change.
func (s *Service) Invalidate() {
	s.cache.Flush()
}

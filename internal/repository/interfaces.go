package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/careops/hospital-api/internal/model"
)

// All repository interfaces in one file.
type (
	UserRepository interface {
		Create(ctx context.Context, user *model.User) error
		Get(ctx context.Context, id uuid.UUID) (*model.User, error)
		GetByUsername(ctx context.Context, username string) (*model.User, error)
		List(ctx context.Context) ([]*model.User, error)
		Delete(ctx context.Context, id uuid.UUID) error
	}

	DoctorRepository interface {
		Get(ctx context.Context, id uuid.UUID) (*model.Doctor, error)
		List(ctx context.Context) ([]*model.Doctor, error)
		ListByDepartment(ctx context.Context, dept model.Department) ([]*model.Doctor, error)
	}

	BookingRepository interface {
		Create(ctx context.Context, booking *model.Booking) error
		Get(ctx context.Context, id uuid.UUID) (*model.Booking, error)
		List(ctx context.Context) ([]*model.Booking, error)
		ListByPatient(ctx context.Context, patientName string) ([]*model.Booking, error)
		// CompareAndSetStatus atomically moves the booking from one status
		// to another; false means the booking was not in the expected state.
		CompareAndSetStatus(ctx context.Context, id uuid.UUID, from, to model.BookingStatus) (bool, error)
	}

	PaymentRepository interface {
		Get(ctx context.Context, id uuid.UUID) (*model.PaymentOrder, error)
		ListByStatus(ctx context.Context, status model.PaymentStatus) ([]*model.PaymentOrder, error)
		ListByPatientAndStatus(ctx context.Context, patientName string, status model.PaymentStatus) ([]*model.PaymentOrder, error)
		CompareAndSetStatus(ctx context.Context, id uuid.UUID, from, to model.PaymentStatus) (bool, error)
	}

	MedicineRepository interface {
		List(ctx context.Context) ([]*model.Medicine, error)
	}

	// StatsRepository reads aggregate projections. Snapshot runs inside a
	// single transaction so its figures are internally consistent.
	StatsRepository interface {
		Snapshot(ctx context.Context) (*model.StatsSnapshot, error)
		FinanceStats(ctx context.Context) (*model.FinanceStats, error)
		DeptRevenue(ctx context.Context) ([]*model.DeptRevenue, error)
	}

	OutboxRepository interface {
		Create(ctx context.Context, event *model.OutboxEvent) error
		GetPending(ctx context.Context, limit int) ([]*model.OutboxEvent, error)
		MarkPublished(ctx context.Context, id uuid.UUID) error
		MarkFailed(ctx context.Context, id uuid.UUID) error
	}
)

package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/careops/hospital-api/internal/apperrors"
	"github.com/careops/hospital-api/internal/model"
)

func (r *bookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	query := `
		INSERT INTO bookings (
			id, patient_name, age, gender, department, doctor_id,
			status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	booking.CreatedAt = time.Now()
	booking.UpdatedAt = booking.CreatedAt

	_, err := r.db.ExecContext(ctx, query,
		booking.ID,
		booking.PatientName,
		booking.Age,
		booking.Gender,
		booking.Department,
		booking.DoctorID,
		booking.Status,
		booking.CreatedAt,
		booking.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

func (r *bookingRepository) Get(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
	query := `
		SELECT id, patient_name, age, gender, department, doctor_id,
			   status, created_at, updated_at
		FROM bookings
		WHERE id = $1
	`
	var booking model.Booking
	err := r.db.GetContext(ctx, &booking, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("booking")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return &booking, nil
}

func (r *bookingRepository) List(ctx context.Context) ([]*model.Booking, error) {
	query := `
		SELECT id, patient_name, age, gender, department, doctor_id,
			   status, created_at, updated_at
		FROM bookings
		ORDER BY created_at DESC
	`
	var bookings []*model.Booking
	if err := r.db.SelectContext(ctx, &bookings, query); err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}

// ListByPatient filters at the query boundary so other patients' records
// are never materialized into a self-scoped result set.
func (r *bookingRepository) ListByPatient(ctx context.Context, patientName string) ([]*model.Booking, error) {
	query := `
		SELECT id, patient_name, age, gender, department, doctor_id,
			   status, created_at, updated_at
		FROM bookings
		WHERE patient_name = $1
		ORDER BY created_at DESC
	`
	var bookings []*model.Booking
	if err := r.db.SelectContext(ctx, &bookings, query, patientName); err != nil {
		return nil, fmt.Errorf("failed to list bookings by patient: %w", err)
	}
	return bookings, nil
}

// CompareAndSetStatus is the single atomic transition point: the row moves
// from → to only if it is still in the expected state.
func (r *bookingRepository) CompareAndSetStatus(ctx context.Context, id uuid.UUID, from, to model.BookingStatus) (bool, error) {
	query := `
		UPDATE bookings
		SET status = $1, updated_at = $2
		WHERE id = $3 AND status = $4
	`
	result, err := r.db.ExecContext(ctx, query, to, time.Now(), id, from)
	if err != nil {
		return false, fmt.Errorf("failed to update booking status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rows == 1, nil
}

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

func (r *paymentRepository) Get(ctx context.Context, id uuid.UUID) (*model.PaymentOrder, error) {
	query := `
		SELECT id, patient_name, total_amount, status, created_at, updated_at
		FROM payment_orders
		WHERE id = $1
	`
	var order model.PaymentOrder
	err := r.db.GetContext(ctx, &order, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("payment order")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get payment order: %w", err)
	}
	return &order, nil
}

func (r *paymentRepository) ListByStatus(ctx context.Context, status model.PaymentStatus) ([]*model.PaymentOrder, error) {
	query := `
		SELECT id, patient_name, total_amount, status, created_at, updated_at
		FROM payment_orders
		WHERE status = $1
		ORDER BY created_at DESC
	`
	var orders []*model.PaymentOrder
	if err := r.db.SelectContext(ctx, &orders, query, status); err != nil {
		return nil, fmt.Errorf("failed to list payment orders: %w", err)
	}
	return orders, nil
}

func (r *paymentRepository) ListByPatientAndStatus(ctx context.Context, patientName string, status model.PaymentStatus) ([]*model.PaymentOrder, error) {
	query := `
		SELECT id, patient_name, total_amount, status, created_at, updated_at
		FROM payment_orders
		WHERE patient_name = $1 AND status = $2
		ORDER BY created_at DESC
	`
	var orders []*model.PaymentOrder
	if err := r.db.SelectContext(ctx, &orders, query, patientName, status); err != nil {
		return nil, fmt.Errorf("failed to list payment orders by patient: %w", err)
	}
	return orders, nil
}

// CompareAndSetStatus guarantees the exactly-once settlement property: of
// two concurrent settles only one UPDATE matches the Unpaid predicate.
func (r *paymentRepository) CompareAndSetStatus(ctx context.Context, id uuid.UUID, from, to model.PaymentStatus) (bool, error) {
	query := `
		UPDATE payment_orders
		SET status = $1, updated_at = $2
		WHERE id = $3 AND status = $4
	`
	result, err := r.db.ExecContext(ctx, query, to, time.Now(), id, from)
	if err != nil {
		return false, fmt.Errorf("failed to update payment status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rows == 1, nil
}

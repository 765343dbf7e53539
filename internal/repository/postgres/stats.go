package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/careops/hospital-api/internal/model"
)

// Snapshot reads every aggregate inside one read-only transaction so the
// figures cannot straddle a settlement applied between two queries.
func (r *statsRepository) Snapshot(ctx context.Context) (*model.StatsSnapshot, error) {
	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, fmt.Errorf("failed to begin stats transaction: %w", err)
	}
	defer tx.Rollback()

	var snap model.StatsSnapshot

	if err := tx.GetContext(ctx, &snap.Income,
		`SELECT COALESCE(SUM(total_amount), 0) FROM payment_orders WHERE status = $1`,
		model.PaymentStatusPaid,
	); err != nil {
		return nil, fmt.Errorf("failed to read income: %w", err)
	}

	if err := tx.GetContext(ctx, &snap.PatientCount,
		`SELECT COUNT(*) FROM bookings`,
	); err != nil {
		return nil, fmt.Errorf("failed to count patients: %w", err)
	}

	if err := tx.GetContext(ctx, &snap.DoctorCount,
		`SELECT COUNT(*) FROM doctors`,
	); err != nil {
		return nil, fmt.Errorf("failed to count doctors: %w", err)
	}

	if err := tx.GetContext(ctx, &snap.MedicineKind,
		`SELECT COUNT(*) FROM medicines`,
	); err != nil {
		return nil, fmt.Errorf("failed to count medicines: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit stats transaction: %w", err)
	}
	return &snap, nil
}

func (r *statsRepository) FinanceStats(ctx context.Context) (*model.FinanceStats, error) {
	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, fmt.Errorf("failed to begin finance transaction: %w", err)
	}
	defer tx.Rollback()

	var stats model.FinanceStats

	row := struct {
		Total float64 `db:"total"`
		Count int     `db:"count"`
	}{}
	if err := tx.GetContext(ctx, &row,
		`SELECT COALESCE(SUM(total_amount), 0) AS total, COUNT(*) AS count
		 FROM payment_orders WHERE status = $1`,
		model.PaymentStatusPaid,
	); err != nil {
		return nil, fmt.Errorf("failed to read settled totals: %w", err)
	}
	stats.TotalIncome = row.Total
	stats.OrderCount = row.Count
	if row.Count > 0 {
		stats.AvgTransaction = row.Total / float64(row.Count)
	}

	if err := tx.GetContext(ctx, &stats.TodayIncome,
		`SELECT COALESCE(SUM(total_amount), 0)
		 FROM payment_orders
		 WHERE status = $1 AND updated_at >= date_trunc('day', now())`,
		model.PaymentStatusPaid,
	); err != nil {
		return nil, fmt.Errorf("failed to read today income: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit finance transaction: %w", err)
	}
	return &stats, nil
}

// DeptRevenue attributes settled orders to departments through the
// patient's bookings and ranks the totals.
func (r *statsRepository) DeptRevenue(ctx context.Context) ([]*model.DeptRevenue, error) {
	query := `
		SELECT b.department AS department, COALESCE(SUM(p.total_amount), 0) AS total
		FROM payment_orders p
		JOIN bookings b ON b.patient_name = p.patient_name
		WHERE p.status = $1
		GROUP BY b.department
		ORDER BY total DESC
	`
	var rows []*model.DeptRevenue
	if err := r.db.SelectContext(ctx, &rows, query, model.PaymentStatusPaid); err != nil {
		return nil, fmt.Errorf("failed to read department revenue: %w", err)
	}
	return rows, nil
}

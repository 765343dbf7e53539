package postgres

import (
	"context"
	"fmt"

	"github.com/careops/hospital-api/internal/model"
)

func (r *medicineRepository) List(ctx context.Context) ([]*model.Medicine, error) {
	query := `
		SELECT id, name, stock, unit, created_at
		FROM medicines
		ORDER BY name ASC
	`
	var medicines []*model.Medicine
	if err := r.db.SelectContext(ctx, &medicines, query); err != nil {
		return nil, fmt.Errorf("failed to list medicines: %w", err)
	}
	return medicines, nil
}

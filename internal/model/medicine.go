package model

import (
	"time"

	"github.com/google/uuid"
)

// Medicine is a storehouse inventory item. Only the distinct-kind count
// feeds the statistics snapshot; stock bookkeeping stays on this surface.
type Medicine struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Stock     int       `db:"stock" json:"stock"`
	Unit      string    `db:"unit" json:"unit"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

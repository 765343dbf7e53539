package model

import (
	"time"

	"github.com/google/uuid"
)

// Doctor belongs to exactly one department. Bookings validate the
// (department, doctor) pairing against this record at creation time only;
// a later department change does not retroactively invalidate bookings.
type Doctor struct {
	ID         uuid.UUID  `db:"id" json:"id"`
	Username   string     `db:"username" json:"username"`
	Department Department `db:"department" json:"department"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
}

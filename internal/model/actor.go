package model

import "github.com/google/uuid"

// Actor is the authenticated identity attached to every request. It is
// always passed explicitly into service operations, never read from
// ambient storage, so the decision logic stays testable without a session.
type Actor struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Role     Role      `json:"role"`
}

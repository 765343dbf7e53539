package model

import (
	"time"

	"github.com/google/uuid"
)

type PaymentStatus string

const (
	PaymentStatusUnpaid PaymentStatus = "Unpaid"
	PaymentStatusPaid   PaymentStatus = "Paid"
)

// PaymentOrder is a billable record generated by the billing collaborator
// when clinical service is rendered. This service only settles it; the
// amount is opaque and never recomputed here.
type PaymentOrder struct {
	ID          uuid.UUID     `db:"id" json:"id"`
	PatientName string        `db:"patient_name" json:"patient_name"`
	TotalAmount float64       `db:"total_amount" json:"total_amount"`
	Status      PaymentStatus `db:"status" json:"status"`
	CreatedAt   time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time     `db:"updated_at" json:"updated_at"`
}

type SettleRequest struct {
	OrderID uuid.UUID `json:"order_id" binding:"required"`
}

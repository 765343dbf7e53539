package model

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "Pending"
	BookingStatusCompleted BookingStatus = "Completed"
)

// Booking is a scheduled clinical visit. Status moves Pending → Completed
// exactly once and never back.
type Booking struct {
	ID          uuid.UUID     `db:"id" json:"id"`
	PatientName string        `db:"patient_name" json:"patient_name"`
	Age         int           `db:"age" json:"age"`
	Gender      string        `db:"gender" json:"gender"`
	Department  Department    `db:"department" json:"department"`
	DoctorID    *uuid.UUID    `db:"doctor_id" json:"doctor_id,omitempty"`
	Status      BookingStatus `db:"status" json:"status"`
	CreatedAt   time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time     `db:"updated_at" json:"updated_at"`
}

type CreateBookingRequest struct {
	PatientName string     `json:"patient_name" binding:"required,max=64"`
	Age         int        `json:"age" binding:"required"`
	Gender      string     `json:"gender" binding:"required"`
	Department  Department `json:"department" binding:"required,department"`
	DoctorID    *uuid.UUID `json:"doctor_id"`
}

const (
	MinPatientAge = 1
	MaxPatientAge = 120
)

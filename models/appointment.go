package models

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// ErrInvalidTransition marks lifecycle violations so handlers can answer 400
// instead of treating them as backend failures.
var ErrInvalidTransition = errors.New("invalid status transition")

type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusRejected  AppointmentStatus = "rejected"
)

type Appointment struct {
	gorm.Model
	PatientID   uint              `json:"patient_id"`
	Patient     Patient           `json:"patient,omitempty" gorm:"foreignKey:PatientID"`
	DentistID   *uint             `json:"dentist_id"` // nil until HR or a dentist assigns one
	Dentist     *Dentist          `json:"dentist,omitempty" gorm:"foreignKey:DentistID"`
	Date        time.Time         `json:"date"`
	Time        string            `json:"time"`
	Service     string            `json:"service"`
	TreatmentID *uint             `json:"treatment_id"`
	Treatment   *Treatment        `json:"treatment,omitempty" gorm:"foreignKey:TreatmentID"`
	Amount      float64           `json:"amount"`
	Status      AppointmentStatus `json:"status"`
	Notes       string            `json:"notes"`
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.Status == "" {
		a.Status = StatusPending
	}
	return nil
}

// ValidateTransition reports whether moving to newStatus follows an allowed
// edge: pending -> confirmed/rejected/cancelled, confirmed -> completed.
// Completed, cancelled and rejected are terminal.
func (a *Appointment) ValidateTransition(newStatus AppointmentStatus) error {
	switch a.Status {
	case StatusPending:
		if newStatus != StatusConfirmed && newStatus != StatusRejected && newStatus != StatusCancelled {
			return fmt.Errorf("invalid transition from pending to %s: %w", newStatus, ErrInvalidTransition)
		}
	case StatusConfirmed:
		if newStatus != StatusCompleted {
			return fmt.Errorf("invalid transition from confirmed to %s: %w", newStatus, ErrInvalidTransition)
		}
	case StatusCompleted, StatusCancelled, StatusRejected:
		return fmt.Errorf("no transitions allowed from %s: %w", a.Status, ErrInvalidTransition)
	default:
		return fmt.Errorf("unknown status %q: %w", a.Status, ErrInvalidTransition)
	}
	return nil
}

// UpdateStatus validates the edge and persists the new status.
func (a *Appointment) UpdateStatus(tx *gorm.DB, newStatus AppointmentStatus) error {
	if err := a.ValidateTransition(newStatus); err != nil {
		return err
	}
	a.Status = newStatus
	return tx.Save(a).Error
}

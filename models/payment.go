package models

import (
	"time"

	"gorm.io/gorm"
)

type PaymentStatus string

const (
	PaymentPaid    PaymentStatus = "paid"
	PaymentPartial PaymentStatus = "partial"
	PaymentUnpaid  PaymentStatus = "unpaid"
)

type Payment struct {
	gorm.Model
	PatientID     uint          `json:"patient_id"`
	Patient       Patient       `json:"patient,omitempty" gorm:"foreignKey:PatientID"`
	DentistID     *uint         `json:"dentist_id"`
	Dentist       *Dentist      `json:"dentist,omitempty" gorm:"foreignKey:DentistID"`
	AppointmentID *uint         `json:"appointment_id"`
	Amount        float64       `json:"amount"`
	Method        string        `json:"method"`
	Status        PaymentStatus `json:"status"`
	Description   string        `json:"description"`
	Date          time.Time     `json:"date"`
}

type PatientBalance struct {
	TotalPaid    float64 `json:"total_paid"`
	TotalBalance float64 `json:"total_balance"`
	Total        float64 `json:"total"`
}

// ComputePatientBalance sums payment amounts by status. Partial and unpaid
// rows both count toward the outstanding balance.
func ComputePatientBalance(payments []Payment) PatientBalance {
	var b PatientBalance
	for _, p := range payments {
		switch p.Status {
		case PaymentPaid:
			b.TotalPaid += p.Amount
		case PaymentPartial, PaymentUnpaid:
			b.TotalBalance += p.Amount
		}
	}
	b.Total = b.TotalPaid + b.TotalBalance
	return b
}

type DentistEarnings struct {
	TotalEarned    float64 `json:"total_earned"`
	TotalPending   float64 `json:"total_pending"`
	TotalCompleted int     `json:"total_completed"`
	Count          int     `json:"count"`
}

// ComputeDentistEarnings aggregates a dentist's payment rows. Partial payments
// count toward earnings rather than pending, while TotalCompleted counts only
// fully paid rows. The asymmetry is intentional and relied on by the earnings
// dashboard.
func ComputeDentistEarnings(payments []Payment) DentistEarnings {
	e := DentistEarnings{Count: len(payments)}
	for _, p := range payments {
		switch p.Status {
		case PaymentPaid:
			e.TotalEarned += p.Amount
			e.TotalCompleted++
		case PaymentPartial:
			e.TotalEarned += p.Amount
		case PaymentUnpaid:
			e.TotalPending += p.Amount
		}
	}
	return e
}

package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputePatientBalance(t *testing.T) {
	payments := []Payment{
		{Amount: 100, Status: PaymentPaid},
		{Amount: 50, Status: PaymentPartial},
		{Amount: 30, Status: PaymentUnpaid},
	}

	b := ComputePatientBalance(payments)

	assert.Equal(t, 100.0, b.TotalPaid)
	assert.Equal(t, 80.0, b.TotalBalance, "partial and unpaid both count as outstanding")
	assert.Equal(t, 180.0, b.Total)
}

func TestComputePatientBalanceEmpty(t *testing.T) {
	b := ComputePatientBalance(nil)
	assert.Zero(t, b.TotalPaid)
	assert.Zero(t, b.TotalBalance)
	assert.Zero(t, b.Total)
}

func TestComputeDentistEarnings(t *testing.T) {
	payments := []Payment{
		{Amount: 200, Status: PaymentPaid},
		{Amount: 40, Status: PaymentPartial},
		{Amount: 60, Status: PaymentUnpaid},
	}

	e := ComputeDentistEarnings(payments)

	assert.Equal(t, 240.0, e.TotalEarned, "partial amounts count as earned")
	assert.Equal(t, 60.0, e.TotalPending)
	assert.Equal(t, 1, e.TotalCompleted, "only fully paid rows count as completed")
	assert.Equal(t, 3, e.Count)
}

func TestComputeDentistEarningsEmpty(t *testing.T) {
	e := ComputeDentistEarnings([]Payment{})
	assert.Zero(t, e.TotalEarned)
	assert.Zero(t, e.TotalPending)
	assert.Zero(t, e.TotalCompleted)
	assert.Zero(t, e.Count)
}

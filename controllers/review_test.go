package controllers

import (
	"testing"

	"salonbook-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestReviewEligibilityCompletedAppointment(t *testing.T) {
	customer := uuid.New()
	owner := uuid.New()
	appointment := &models.Appointment{CustomerID: customer, Status: models.AppointmentCompleted}

	err := CheckReviewEligibility(appointment, customer, owner, false)
	assert.NoError(t, err)
}

func TestReviewEligibilityRejectsUncompleted(t *testing.T) {
	customer := uuid.New()
	owner := uuid.New()

	for _, status := range []string{models.AppointmentPending, models.AppointmentConfirmed, models.AppointmentCancelled} {
		appointment := &models.Appointment{CustomerID: customer, Status: status}
		err := CheckReviewEligibility(appointment, customer, owner, false)
		assert.ErrorIs(t, err, ErrReviewNotCompleted, "status %s must not be reviewable", status)
	}
}

func TestReviewEligibilityRejectsOtherCustomer(t *testing.T) {
	appointment := &models.Appointment{CustomerID: uuid.New(), Status: models.AppointmentCompleted}

	err := CheckReviewEligibility(appointment, uuid.New(), uuid.New(), false)
	assert.ErrorIs(t, err, ErrReviewNotCustomer)
}

func TestReviewEligibilityRejectsShopOwner(t *testing.T) {
	owner := uuid.New()
	appointment := &models.Appointment{CustomerID: owner, Status: models.AppointmentCompleted}

	err := CheckReviewEligibility(appointment, owner, owner, false)
	assert.ErrorIs(t, err, ErrReviewOwnShop)
}

func TestReviewEligibilityRejectsDuplicate(t *testing.T) {
	customer := uuid.New()
	appointment := &models.Appointment{CustomerID: customer, Status: models.AppointmentCompleted}

	err := CheckReviewEligibility(appointment, customer, uuid.New(), true)
	assert.ErrorIs(t, err, ErrAlreadyReviewed)
}

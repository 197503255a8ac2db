package services

import (
	"testing"

	"salonbook-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCheckSelectionsValid(t *testing.T) {
	selections := []SlotSelection{
		{ShowtimeID: uuid.New(), ServiceID: uuid.New()},
		{ShowtimeID: uuid.New(), ServiceID: uuid.New()},
	}
	assert.NoError(t, CheckSelections(selections))
}

func TestCheckSelectionsRejectsEmpty(t *testing.T) {
	assert.ErrorIs(t, CheckSelections(nil), ErrEmptySelection)
	assert.ErrorIs(t, CheckSelections([]SlotSelection{}), ErrEmptySelection)
}

func TestCheckSelectionsRejectsMissingService(t *testing.T) {
	selections := []SlotSelection{
		{ShowtimeID: uuid.New(), ServiceID: uuid.New()},
		{ShowtimeID: uuid.New()},
	}
	assert.ErrorIs(t, CheckSelections(selections), ErrMissingService)
}

func TestCheckSelectionsRejectsDuplicateShowtime(t *testing.T) {
	showtime := uuid.New()
	selections := []SlotSelection{
		{ShowtimeID: showtime, ServiceID: uuid.New()},
		{ShowtimeID: showtime, ServiceID: uuid.New()},
	}
	assert.ErrorIs(t, CheckSelections(selections), ErrDuplicateShowtime)
}

func TestSelectionTotal(t *testing.T) {
	items := []models.AppointmentItem{
		{ServiceName: "Haircut", ServicePrice: 200},
		{ServiceName: "Shave", ServicePrice: 80},
	}
	assert.Equal(t, 280.0, SelectionTotal(items))
}

func TestSelectionTotalRestoredAfterDeselect(t *testing.T) {
	items := []models.AppointmentItem{
		{ServiceName: "Haircut", ServicePrice: 200},
	}
	assert.Equal(t, 200.0, SelectionTotal(items))

	// Deselecting the showtime removes its assigned service line
	items = items[:0]
	assert.Equal(t, 0.0, SelectionTotal(items))
}

func TestAvailabilityCacheKey(t *testing.T) {
	shopID := uuid.New()
	assert.Equal(t, "availability:"+shopID.String(), AvailabilityCacheKey(shopID))
}

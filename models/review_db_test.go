package models

import (
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func openReviewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Review{}))
	return db
}

func TestReviewUniquePerLiveAppointment(t *testing.T) {
	db := openReviewTestDB(t)

	appointmentID := uuid.New()
	first := Review{
		ShopID:        uuid.New(),
		AppointmentID: appointmentID,
		UserID:        uuid.New(),
		Rating:        5,
		Status:        ReviewApproved,
	}
	require.NoError(t, db.Create(&first).Error)

	duplicate := Review{
		ShopID:        first.ShopID,
		AppointmentID: appointmentID,
		UserID:        first.UserID,
		Rating:        4,
		Status:        ReviewApproved,
	}
	assert.ErrorIs(t, db.Create(&duplicate).Error, gorm.ErrDuplicatedKey)

	// A moderation soft delete frees the appointment for a resubmission.
	require.NoError(t, db.Delete(&first).Error)

	resubmitted := Review{
		ShopID:        first.ShopID,
		AppointmentID: appointmentID,
		UserID:        first.UserID,
		Rating:        4,
		Status:        ReviewApproved,
	}
	assert.NoError(t, db.Create(&resubmitted).Error)
}

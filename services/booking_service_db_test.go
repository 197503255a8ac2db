package services

import (
	"os"
	"testing"
	"time"

	"salonbook-backend/config"
	"salonbook-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	if config.Log == nil {
		config.Log = zap.NewNop().Sugar()
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Shop{},
		&models.ShopService{},
		&models.TimeSlot{},
		&models.Showtime{},
		&models.Appointment{},
		&models.AppointmentItem{},
	))
	return db
}

type bookingFixture struct {
	shop      models.Shop
	service   models.ShopService
	showtimes []models.Showtime
}

func seedBookableShop(t *testing.T, db *gorm.DB, startsAt ...time.Time) bookingFixture {
	t.Helper()

	shop := models.Shop{
		OwnerID:        uuid.New(),
		Name:           "Fixture Salon",
		Email:          "fixture@example.com",
		Phone:          "+15550000000",
		Status:         models.ShopStatusOpen,
		ApprovalStatus: models.ApprovalApproved,
	}
	require.NoError(t, db.Create(&shop).Error)

	service := models.ShopService{
		ShopID:   shop.ID,
		Name:     "Haircut",
		Price:    120,
		Duration: 30,
		IsActive: true,
	}
	require.NoError(t, db.Create(&service).Error)

	day := startsAt[0]
	slot := models.TimeSlot{
		ShopID: shop.ID,
		Date:   time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location()),
	}
	require.NoError(t, db.Create(&slot).Error)

	fix := bookingFixture{shop: shop, service: service}
	for _, at := range startsAt {
		showtime := models.Showtime{TimeSlotID: slot.ID, StartsAt: at}
		require.NoError(t, db.Create(&showtime).Error)
		fix.showtimes = append(fix.showtimes, showtime)
	}
	return fix
}

func appointmentCount(t *testing.T, db *gorm.DB, shopID uuid.UUID) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(&models.Appointment{}).Where("shop_id = ?", shopID).Count(&count).Error)
	return count
}

func showtimeBooked(t *testing.T, db *gorm.DB, id uuid.UUID) bool {
	t.Helper()
	var st models.Showtime
	require.NoError(t, db.First(&st, "id = ?", id).Error)
	return st.IsBooked
}

func TestBookLostRaceReturnsShowtimeTaken(t *testing.T) {
	db := openTestDB(t)
	svc := NewBookingService(db, nil)
	fix := seedBookableShop(t, db, time.Now().Add(24*time.Hour))

	sel := []SlotSelection{{ShowtimeID: fix.showtimes[0].ID, ServiceID: fix.service.ID}}

	first, err := svc.Book(uuid.New(), fix.shop.ID, sel)
	require.NoError(t, err)
	assert.Equal(t, models.AppointmentPending, first.Status)
	assert.Equal(t, 120.0, first.Total)

	_, err = svc.Book(uuid.New(), fix.shop.ID, sel)
	assert.ErrorIs(t, err, ErrShowtimeTaken)

	assert.EqualValues(t, 1, appointmentCount(t, db, fix.shop.ID))
	assert.True(t, showtimeBooked(t, db, fix.showtimes[0].ID))
}

func TestBookRollsBackWholeSelectionOnOneTakenShowtime(t *testing.T) {
	db := openTestDB(t)
	svc := NewBookingService(db, nil)
	fix := seedBookableShop(t, db,
		time.Now().Add(24*time.Hour),
		time.Now().Add(25*time.Hour),
	)

	_, err := svc.Book(uuid.New(), fix.shop.ID, []SlotSelection{
		{ShowtimeID: fix.showtimes[0].ID, ServiceID: fix.service.ID},
	})
	require.NoError(t, err)

	_, err = svc.Book(uuid.New(), fix.shop.ID, []SlotSelection{
		{ShowtimeID: fix.showtimes[0].ID, ServiceID: fix.service.ID},
		{ShowtimeID: fix.showtimes[1].ID, ServiceID: fix.service.ID},
	})
	assert.ErrorIs(t, err, ErrShowtimeTaken)

	// The losing booking must leave nothing behind: no appointment row and
	// the free showtime still free.
	assert.EqualValues(t, 1, appointmentCount(t, db, fix.shop.ID))
	assert.False(t, showtimeBooked(t, db, fix.showtimes[1].ID))
}

func TestBookRejectsPastShowtime(t *testing.T) {
	db := openTestDB(t)
	svc := NewBookingService(db, nil)
	fix := seedBookableShop(t, db, time.Now().Add(-1*time.Hour))

	_, err := svc.Book(uuid.New(), fix.shop.ID, []SlotSelection{
		{ShowtimeID: fix.showtimes[0].ID, ServiceID: fix.service.ID},
	})
	assert.ErrorIs(t, err, ErrShowtimeInPast)

	assert.EqualValues(t, 0, appointmentCount(t, db, fix.shop.ID))
	assert.False(t, showtimeBooked(t, db, fix.showtimes[0].ID))
}

func TestCancelReleasesShowtimes(t *testing.T) {
	db := openTestDB(t)
	svc := NewBookingService(db, nil)
	fix := seedBookableShop(t, db, time.Now().Add(24*time.Hour))

	customer := uuid.New()
	appointment, err := svc.Book(customer, fix.shop.ID, []SlotSelection{
		{ShowtimeID: fix.showtimes[0].ID, ServiceID: fix.service.ID},
	})
	require.NoError(t, err)

	err = svc.Cancel(appointment.ID, uuid.New())
	assert.ErrorIs(t, err, ErrNotAppointmentOwner)
	assert.True(t, showtimeBooked(t, db, fix.showtimes[0].ID))

	require.NoError(t, svc.Cancel(appointment.ID, customer))

	var reloaded models.Appointment
	require.NoError(t, db.First(&reloaded, "id = ?", appointment.ID).Error)
	assert.Equal(t, models.AppointmentCancelled, reloaded.Status)
	assert.False(t, showtimeBooked(t, db, fix.showtimes[0].ID))
}

func TestForceCancelFreesShowtimesFromAnyStatus(t *testing.T) {
	db := openTestDB(t)
	svc := NewBookingService(db, nil)
	fix := seedBookableShop(t, db, time.Now().Add(24*time.Hour))

	appointment, err := svc.Book(uuid.New(), fix.shop.ID, []SlotSelection{
		{ShowtimeID: fix.showtimes[0].ID, ServiceID: fix.service.ID},
	})
	require.NoError(t, err)
	require.NoError(t, svc.Confirm(appointment.ID))
	require.NoError(t, svc.Complete(appointment.ID))

	require.NoError(t, svc.ForceCancel(appointment.ID))

	var reloaded models.Appointment
	require.NoError(t, db.First(&reloaded, "id = ?", appointment.ID).Error)
	assert.Equal(t, models.AppointmentCancelled, reloaded.Status)
	assert.False(t, showtimeBooked(t, db, fix.showtimes[0].ID))

	// A repeat is a no-op, not an error.
	assert.NoError(t, svc.ForceCancel(appointment.ID))
}

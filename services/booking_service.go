package services

import (
	"errors"
	"fmt"
	"time"

	"salonbook-backend/config"
	"salonbook-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrShopNotFound        = errors.New("shop not found")
	ErrShopNotBookable     = errors.New("shop is not accepting bookings")
	ErrEmptySelection      = errors.New("no showtimes selected")
	ErrMissingService      = errors.New("every selected showtime needs a service")
	ErrDuplicateShowtime   = errors.New("showtime selected more than once")
	ErrShowtimeNotFound    = errors.New("showtime not found for this shop")
	ErrShowtimeInPast      = errors.New("showtime is in the past")
	ErrShowtimeTaken       = errors.New("showtime already booked")
	ErrServiceNotFound     = errors.New("service not found for this shop")
	ErrNotAppointmentOwner = errors.New("appointment belongs to another customer")
	ErrNotCancellable      = errors.New("appointment can no longer be cancelled")
	ErrBadStatusChange     = errors.New("invalid appointment status transition")
)

// SlotSelection is one showtime with the service the customer picked for it.
type SlotSelection struct {
	ShowtimeID uuid.UUID
	ServiceID  uuid.UUID
}

type BookingService struct {
	db       *gorm.DB
	notifier *NotificationService
}

func NewBookingService(db *gorm.DB, notifier *NotificationService) *BookingService {
	return &BookingService{db: db, notifier: notifier}
}

// CheckSelections rejects empty submissions, showtimes without a service and
// double-picked showtimes before anything touches the database.
func CheckSelections(selections []SlotSelection) error {
	if len(selections) == 0 {
		return ErrEmptySelection
	}
	seen := make(map[uuid.UUID]bool, len(selections))
	for _, sel := range selections {
		if sel.ShowtimeID == uuid.Nil {
			return ErrShowtimeNotFound
		}
		if sel.ServiceID == uuid.Nil {
			return ErrMissingService
		}
		if seen[sel.ShowtimeID] {
			return ErrDuplicateShowtime
		}
		seen[sel.ShowtimeID] = true
	}
	return nil
}

// SelectionTotal sums the denormalized service prices of the booking lines.
func SelectionTotal(items []models.AppointmentItem) float64 {
	var total float64
	for _, item := range items {
		total += item.ServicePrice
	}
	return total
}

// AvailabilityCacheKey is shared with the availability endpoint so booking
// and cancellation can invalidate the cached slot list.
func AvailabilityCacheKey(shopID uuid.UUID) string {
	return fmt.Sprintf("availability:%s", shopID)
}

// Book reserves the selected showtimes and creates a pending appointment.
// Each showtime is flipped with a conditional update inside one transaction;
// losing the race on any of them rolls the whole booking back.
func (s *BookingService) Book(customerID, shopID uuid.UUID, selections []SlotSelection) (*models.Appointment, error) {
	if err := CheckSelections(selections); err != nil {
		return nil, err
	}

	var shop models.Shop
	if err := s.db.First(&shop, "id = ?", shopID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShopNotFound
		}
		return nil, err
	}
	if shop.ApprovalStatus != models.ApprovalApproved || shop.Status == models.ShopStatusClosed {
		return nil, ErrShopNotBookable
	}

	serviceByID := make(map[uuid.UUID]models.ShopService)
	var shopServices []models.ShopService
	if err := s.db.Where("shop_id = ? AND is_active = ?", shopID, true).Find(&shopServices).Error; err != nil {
		return nil, err
	}
	for _, svc := range shopServices {
		serviceByID[svc.ID] = svc
	}

	showtimeIDs := make([]uuid.UUID, 0, len(selections))
	for _, sel := range selections {
		showtimeIDs = append(showtimeIDs, sel.ShowtimeID)
	}

	// Resolve showtimes through their slot to pin them to this shop.
	var showtimes []models.Showtime
	if err := s.db.
		Joins("JOIN time_slots ON time_slots.id = showtimes.time_slot_id").
		Where("showtimes.id IN ? AND time_slots.shop_id = ?", showtimeIDs, shopID).
		Find(&showtimes).Error; err != nil {
		return nil, err
	}
	showtimeByID := make(map[uuid.UUID]models.Showtime, len(showtimes))
	for _, st := range showtimes {
		showtimeByID[st.ID] = st
	}

	now := time.Now()
	items := make([]models.AppointmentItem, 0, len(selections))
	for _, sel := range selections {
		showtime, ok := showtimeByID[sel.ShowtimeID]
		if !ok {
			return nil, ErrShowtimeNotFound
		}
		// Client clocks are advisory only; the server clock decides.
		if !showtime.StartsAt.After(now) {
			return nil, ErrShowtimeInPast
		}
		svc, ok := serviceByID[sel.ServiceID]
		if !ok {
			return nil, ErrServiceNotFound
		}
		items = append(items, models.AppointmentItem{
			ShowtimeID:   showtime.ID,
			ServiceID:    svc.ID,
			ServiceName:  svc.Name,
			ServicePrice: svc.Price,
			StartsAt:     showtime.StartsAt,
		})
	}

	appointment := models.Appointment{
		ID:         uuid.New(),
		ShopID:     shopID,
		CustomerID: customerID,
		Status:     models.AppointmentPending,
		Total:      SelectionTotal(items),
		Items:      items,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		for _, id := range showtimeIDs {
			res := tx.Model(&models.Showtime{}).
				Where("id = ? AND is_booked = ?", id, false).
				Update("is_booked", true)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return ErrShowtimeTaken
			}
		}
		return tx.Create(&appointment).Error
	})
	if err != nil {
		return nil, err
	}

	config.CacheDelete(AvailabilityCacheKey(shopID))
	if s.notifier != nil {
		s.notifier.BookingCreated(&appointment)
	}
	return &appointment, nil
}

// Confirm moves a pending appointment to confirmed. Used by the payment
// callback; the guarded update keeps repeated callbacks idempotent-safe.
func (s *BookingService) Confirm(appointmentID uuid.UUID) error {
	res := s.db.Model(&models.Appointment{}).
		Where("id = ? AND status = ?", appointmentID, models.AppointmentPending).
		Update("status", models.AppointmentConfirmed)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrBadStatusChange
	}
	return nil
}

// Complete marks a confirmed appointment as done, unlocking reviews.
func (s *BookingService) Complete(appointmentID uuid.UUID) error {
	res := s.db.Model(&models.Appointment{}).
		Where("id = ? AND status = ?", appointmentID, models.AppointmentConfirmed).
		Update("status", models.AppointmentCompleted)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrBadStatusChange
	}
	return nil
}

// Cancel lets the owning customer cancel a pending or confirmed appointment
// whose earliest showtime is still in the future, releasing its showtimes.
func (s *BookingService) Cancel(appointmentID, customerID uuid.UUID) error {
	var appointment models.Appointment
	if err := s.db.Preload("Items").First(&appointment, "id = ?", appointmentID).Error; err != nil {
		return err
	}
	if appointment.CustomerID != customerID {
		return ErrNotAppointmentOwner
	}
	if appointment.Status != models.AppointmentPending && appointment.Status != models.AppointmentConfirmed {
		return ErrNotCancellable
	}
	now := time.Now()
	for _, item := range appointment.Items {
		if !item.StartsAt.After(now) {
			return ErrNotCancellable
		}
	}

	if err := s.release(&appointment); err != nil {
		return err
	}

	config.CacheDelete(AvailabilityCacheKey(appointment.ShopID))
	if s.notifier != nil {
		appointment.Status = models.AppointmentCancelled
		s.notifier.BookingCancelled(&appointment)
	}
	return nil
}

// ForceCancel cancels an appointment from any status and frees its showtimes.
// Admin-only path; ownership, time and forward-only checks do not apply.
func (s *BookingService) ForceCancel(appointmentID uuid.UUID) error {
	var appointment models.Appointment
	if err := s.db.Preload("Items").First(&appointment, "id = ?", appointmentID).Error; err != nil {
		return err
	}
	if appointment.Status == models.AppointmentCancelled {
		return nil
	}

	showtimeIDs := make([]uuid.UUID, 0, len(appointment.Items))
	for _, item := range appointment.Items {
		showtimeIDs = append(showtimeIDs, item.ShowtimeID)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Appointment{}).
			Where("id = ?", appointment.ID).
			Update("status", models.AppointmentCancelled).Error; err != nil {
			return err
		}
		if len(showtimeIDs) == 0 {
			return nil
		}
		return tx.Model(&models.Showtime{}).
			Where("id IN ? AND is_booked = ?", showtimeIDs, true).
			Update("is_booked", false).Error
	})
	if err != nil {
		return err
	}

	config.CacheDelete(AvailabilityCacheKey(appointment.ShopID))
	if s.notifier != nil {
		appointment.Status = models.AppointmentCancelled
		s.notifier.BookingCancelled(&appointment)
	}
	return nil
}

// ExpirePending cancels pending appointments older than the payment TTL and
// releases their showtimes. Returns how many were expired.
func (s *BookingService) ExpirePending(ttl time.Duration) (int, error) {
	cutoff := time.Now().Add(-ttl)

	var stale []models.Appointment
	if err := s.db.Preload("Items").
		Where("status = ? AND created_at < ?", models.AppointmentPending, cutoff).
		Find(&stale).Error; err != nil {
		return 0, err
	}

	expired := 0
	for i := range stale {
		if err := s.release(&stale[i]); err != nil {
			config.Log.Errorf("Failed to expire appointment %s: %v", stale[i].ID, err)
			continue
		}
		config.CacheDelete(AvailabilityCacheKey(stale[i].ShopID))
		expired++
	}
	return expired, nil
}

// release flips the appointment to cancelled and frees its showtimes in one
// transaction. The is_booked guard keeps a double release harmless.
func (s *BookingService) release(appointment *models.Appointment) error {
	showtimeIDs := make([]uuid.UUID, 0, len(appointment.Items))
	for _, item := range appointment.Items {
		showtimeIDs = append(showtimeIDs, item.ShowtimeID)
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Appointment{}).
			Where("id = ? AND status IN ?", appointment.ID,
				[]string{models.AppointmentPending, models.AppointmentConfirmed}).
			Update("status", models.AppointmentCancelled)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotCancellable
		}
		if len(showtimeIDs) == 0 {
			return nil
		}
		return tx.Model(&models.Showtime{}).
			Where("id IN ? AND is_booked = ?", showtimeIDs, true).
			Update("is_booked", false).Error
	})
}

// services/reminder_service.go
package services

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"salonbook-backend/config"
	"salonbook-backend/models"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// ReminderService runs the scheduled housekeeping: day-before appointment
// reminder SMS, expiry of unpaid pending bookings and purge of long-past
// time slots.
type ReminderService struct {
	db       *gorm.DB
	booking  *BookingService
	notifier *NotificationService
}

func NewReminderService(db *gorm.DB, booking *BookingService, notifier *NotificationService) *ReminderService {
	return &ReminderService{db: db, booking: booking, notifier: notifier}
}

func (s *ReminderService) StartScheduler() {
	c := cron.New()

	// Day-before reminders at 9 AM
	c.AddFunc("0 9 * * *", s.SendAppointmentReminders)

	// Expire unpaid pending bookings hourly
	c.AddFunc("@hourly", s.ExpirePendingBookings)

	// Purge stale slots nightly at 3 AM
	c.AddFunc("0 3 * * *", s.PurgeStaleSlots)

	c.Start()
	config.Log.Info("Reminder scheduler started")
}

// SendAppointmentReminders texts every customer with a confirmed appointment
// starting tomorrow.
func (s *ReminderService) SendAppointmentReminders() {
	config.Log.Info("Starting daily reminder processing...")

	tomorrow := time.Now().AddDate(0, 0, 1)
	dayStart := time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), 0, 0, 0, 0, tomorrow.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	var appointments []models.Appointment
	err := s.db.Preload("Items").
		Where("status = ?", models.AppointmentConfirmed).
		Where("id IN (?)", s.db.Model(&models.AppointmentItem{}).
			Select("appointment_id").
			Where("starts_at >= ? AND starts_at < ?", dayStart, dayEnd)).
		Find(&appointments).Error
	if err != nil {
		config.Log.Errorf("Failed to fetch tomorrow's appointments: %v", err)
		return
	}

	for _, appointment := range appointments {
		var customer models.User
		if err := s.db.First(&customer, "id = ?", appointment.CustomerID).Error; err != nil {
			config.Log.Errorf("Appointment %s: customer lookup failed: %v", appointment.ID, err)
			continue
		}
		var shop models.Shop
		if err := s.db.First(&shop, "id = ?", appointment.ShopID).Error; err != nil {
			config.Log.Errorf("Appointment %s: shop lookup failed: %v", appointment.ID, err)
			continue
		}

		if len(appointment.Items) == 0 {
			continue
		}
		earliest := appointment.Items[0].StartsAt
		for _, item := range appointment.Items {
			if item.StartsAt.Before(earliest) {
				earliest = item.StartsAt
			}
		}

		body := fmt.Sprintf("Hi %s, reminder: your appointment at %s is tomorrow at %s.",
			customer.Name, shop.Name, earliest.Format("3:04 PM"))
		if err := s.notifier.SendSMS(customer.Phone, body); err != nil {
			config.Log.Errorf("Failed to send reminder to %s: %v", customer.Phone, err)
		}
	}

	config.Log.Info("Daily reminder processing completed")
}

// ExpirePendingBookings releases slots held by bookings whose payment never
// arrived within the TTL.
func (s *ReminderService) ExpirePendingBookings() {
	ttlMinutes := 30
	if env := os.Getenv("PAYMENT_TTL_MINUTES"); env != "" {
		if m, err := strconv.Atoi(env); err == nil {
			ttlMinutes = m
		}
	}

	expired, err := s.booking.ExpirePending(time.Duration(ttlMinutes) * time.Minute)
	if err != nil {
		config.Log.Errorf("Failed to expire pending bookings: %v", err)
		return
	}
	if expired > 0 {
		config.Log.Infof("Expired %d unpaid pending bookings", expired)
	}
}

// PurgeStaleSlots deletes time slots older than the retention window.
func (s *ReminderService) PurgeStaleSlots() {
	retentionDays := 30
	if env := os.Getenv("SLOT_RETENTION_DAYS"); env != "" {
		if d, err := strconv.Atoi(env); err == nil {
			retentionDays = d
		}
	}
	cutoff := time.Now().AddDate(0, 0, -retentionDays)

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var slotIDs []string
		if err := tx.Model(&models.TimeSlot{}).
			Where("date < ?", cutoff).
			Pluck("id", &slotIDs).Error; err != nil {
			return err
		}
		if len(slotIDs) == 0 {
			return nil
		}
		if err := tx.Where("time_slot_id IN ?", slotIDs).Delete(&models.Showtime{}).Error; err != nil {
			return err
		}
		if err := tx.Where("id IN ?", slotIDs).Delete(&models.TimeSlot{}).Error; err != nil {
			return err
		}
		config.Log.Infof("Purged %d stale time slots", len(slotIDs))
		return nil
	})
	if err != nil {
		config.Log.Errorf("Failed to purge stale slots: %v", err)
	}
}

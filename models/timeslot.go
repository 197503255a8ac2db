package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TimeSlot groups the bookable showtimes of one shop for one calendar date.
type TimeSlot struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key"`
	ShopID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_shop_date,priority:1"`
	Date   time.Time `gorm:"type:date;not null;uniqueIndex:idx_shop_date,priority:2"`

	Showtimes []Showtime `gorm:"foreignKey:TimeSlotID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (t *TimeSlot) BeforeCreate(tx *gorm.DB) (err error) {
	t.ID = uuid.New()
	return
}

// Showtime is a single bookable instant. IsBooked only flips false->true
// through the guarded update in the booking service, and back through
// cancellation or pending-booking expiry.
type Showtime struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key"`
	TimeSlotID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_slot_time,priority:1"`
	StartsAt   time.Time `gorm:"not null;uniqueIndex:idx_slot_time,priority:2"`
	IsBooked   bool      `gorm:"default:false"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (s *Showtime) BeforeCreate(tx *gorm.DB) (err error) {
	s.ID = uuid.New()
	return
}

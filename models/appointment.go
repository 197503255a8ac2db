package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	AppointmentPending   = "pending"
	AppointmentConfirmed = "confirmed"
	AppointmentCompleted = "completed"
	AppointmentCancelled = "cancelled"
)

type Appointment struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key"`
	ShopID     uuid.UUID `gorm:"type:uuid;index;not null"`
	CustomerID uuid.UUID `gorm:"type:uuid;index;not null"`

	Status string  `gorm:"type:varchar(20);default:'pending'"` // pending, confirmed, completed, cancelled
	Total  float64 `gorm:"type:decimal(10,2);not null"`

	Items []AppointmentItem `gorm:"foreignKey:AppointmentID"`

	gorm.Model
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return
}

// AppointmentItem pairs one reserved showtime with the service chosen for it.
// Service name and price are denormalized so later catalog edits do not
// rewrite booking history.
type AppointmentItem struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key"`
	AppointmentID uuid.UUID `gorm:"type:uuid;index;not null"`
	ShowtimeID    uuid.UUID `gorm:"type:uuid;index;not null"`
	ServiceID     uuid.UUID `gorm:"type:uuid;not null"`

	ServiceName  string    `gorm:"not null"`
	ServicePrice float64   `gorm:"type:decimal(10,2);not null"`
	StartsAt     time.Time `gorm:"not null"`
}

func (i *AppointmentItem) BeforeCreate(tx *gorm.DB) (err error) {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return
}

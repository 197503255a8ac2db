package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ReviewApproved = "approved"
	ReviewRejected = "rejected"
)

type Review struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key"`
	ShopID        uuid.UUID `gorm:"type:uuid;index;not null"`
	// One live review per appointment. The index is partial so an admin
	// soft delete frees the slot for a resubmission.
	AppointmentID uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_reviews_appointment,where:deleted_at IS NULL;not null"`
	UserID        uuid.UUID `gorm:"type:uuid;index;not null"`

	Rating  int    `gorm:"not null"` // 1-5
	Comment string `gorm:"type:text"`

	Status string `gorm:"type:varchar(20);default:'approved'"` // approved or rejected

	gorm.Model
}

func (r *Review) BeforeCreate(tx *gorm.DB) (err error) {
	r.ID = uuid.New()
	return
}

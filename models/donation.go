package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Donation struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key"`
	Name   string    `gorm:"not null"`
	Email  string
	Amount float64 `gorm:"type:decimal(10,2);not null"`
	Note   string  `gorm:"type:text"`

	gorm.Model
}

func (d *Donation) BeforeCreate(tx *gorm.DB) (err error) {
	d.ID = uuid.New()
	return
}

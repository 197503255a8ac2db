package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Contact struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key"`
	Name    string    `gorm:"not null"`
	Email   string    `gorm:"not null"`
	Phone   string
	Message string `gorm:"type:text;not null"`

	gorm.Model
}

func (c *Contact) BeforeCreate(tx *gorm.DB) (err error) {
	c.ID = uuid.New()
	return
}

package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ShopStatusOpen   = "open"
	ShopStatusBreak  = "break"
	ShopStatusClosed = "closed"

	ApprovalPending  = "pending"
	ApprovalApproved = "approved"
	ApprovalRejected = "rejected"
)

type Shop struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key"`
	OwnerID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`

	Name  string `gorm:"not null"`
	Email string `gorm:"not null"`
	Phone string `gorm:"not null"`

	Street   string
	City     string `gorm:"index"`
	District string `gorm:"index"`
	State    string `gorm:"index"`
	Pin      string

	Latitude  float64 `gorm:"default:0"`
	Longitude float64 `gorm:"default:0"`

	Status         string `gorm:"type:varchar(20);default:'open'"`    // open, break, closed
	ApprovalStatus string `gorm:"type:varchar(20);default:'pending'"` // pending, approved, rejected

	AverageRating float64 `gorm:"type:decimal(3,2);default:0.0"`
	TotalReviews  int     `gorm:"default:0"`

	Services []ShopService `gorm:"foreignKey:ShopID"`

	gorm.Model
}

func (s *Shop) BeforeCreate(tx *gorm.DB) (err error) {
	s.ID = uuid.New()
	return
}

type ShopService struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key"`
	ShopID uuid.UUID `gorm:"type:uuid;index;not null"`

	Name     string  `gorm:"not null"`
	Price    float64 `gorm:"type:decimal(10,2);not null"`
	Duration int     // in minutes
	IsActive bool    `gorm:"default:true"`

	gorm.Model
}

func (s *ShopService) BeforeCreate(tx *gorm.DB) (err error) {
	s.ID = uuid.New()
	return
}

// controllers/shop.go
package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"salonbook-backend/config"
	"salonbook-backend/models"
	"salonbook-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ShopServiceInput struct {
	Name     string  `json:"name" binding:"required"`
	Price    float64 `json:"price" binding:"required,min=0"`
	Duration int     `json:"duration" binding:"min=0"` // in minutes
}

type RegisterShopInput struct {
	Name      string  `json:"name" binding:"required"`
	Email     string  `json:"email" binding:"required,email"`
	Phone     string  `json:"phone" binding:"required"`
	Street    string  `json:"street"`
	City      string  `json:"city" binding:"required"`
	District  string  `json:"district"`
	State     string  `json:"state" binding:"required"`
	Pin       string  `json:"pin"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`

	Services []ShopServiceInput `json:"services" binding:"required,min=1,dive"`
}

type UpdateShopInput struct {
	Name      *string  `json:"name"`
	Email     *string  `json:"email"`
	Phone     *string  `json:"phone"`
	Street    *string  `json:"street"`
	City      *string  `json:"city"`
	District  *string  `json:"district"`
	State     *string  `json:"state"`
	Pin       *string  `json:"pin"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Status    *string  `json:"status" binding:"omitempty,oneof=open break closed"`

	Services *[]ShopServiceInput `json:"services" binding:"omitempty,min=1,dive"`
}

// RegisterShop creates a pending shop for the calling owner
func RegisterShop(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}
	ownerUUID, err := uuid.Parse(userID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid user ID format")
		return
	}

	var input RegisterShopInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if !utils.ValidatePhone(input.Phone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
		return
	}
	if input.Pin != "" && !utils.ValidatePin(input.Pin) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid pin code format")
		return
	}

	// One shop per owner
	var existingShop models.Shop
	if err := config.DB.Where("owner_id = ?", ownerUUID).First(&existingShop).Error; err == nil {
		utils.RespondWithError(c, http.StatusConflict, "Owner already has a registered shop")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	shop := models.Shop{
		OwnerID:        ownerUUID,
		Name:           input.Name,
		Email:          input.Email,
		Phone:          input.Phone,
		Street:         input.Street,
		City:           input.City,
		District:       input.District,
		State:          input.State,
		Pin:            input.Pin,
		Latitude:       input.Latitude,
		Longitude:      input.Longitude,
		Status:         models.ShopStatusOpen,
		ApprovalStatus: models.ApprovalPending,
	}
	for _, svc := range input.Services {
		shop.Services = append(shop.Services, models.ShopService{
			Name:     svc.Name,
			Price:    svc.Price,
			Duration: svc.Duration,
			IsActive: true,
		})
	}

	if err := config.DB.Create(&shop).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to register shop")
		return
	}

	c.JSON(http.StatusCreated, shop)
}

// GetShop returns one shop's profile, services and rating aggregates
func GetShop(c *gin.Context) {
	shopUUID, err := uuid.Parse(c.Param("shopId"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid shop ID format")
		return
	}

	var shop models.Shop
	if err := config.DB.Preload("Services", "is_active = ?", true).
		First(&shop, "id = ?", shopUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Shop not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, shop)
}

// GetApprovedShops lists the public directory with optional location filters.
// When lat/lng are supplied, results are ordered nearest first.
func GetApprovedShops(c *gin.Context) {
	query := config.DB.Model(&models.Shop{}).
		Preload("Services", "is_active = ?", true).
		Where("approval_status = ?", models.ApprovalApproved)

	if state := c.Query("state"); state != "" {
		query = query.Where("state = ?", state)
	}
	if district := c.Query("district"); district != "" {
		query = query.Where("district = ?", district)
	}
	if city := c.Query("city"); city != "" {
		query = query.Where("city = ?", city)
	}

	var lat, lng float64
	hasCoords := false
	if latStr, lngStr := c.Query("lat"), c.Query("lng"); latStr != "" && lngStr != "" {
		var latErr, lngErr error
		lat, latErr = strconv.ParseFloat(latStr, 64)
		lng, lngErr = strconv.ParseFloat(lngStr, 64)
		if latErr != nil || lngErr != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid coordinates")
			return
		}
		hasCoords = true
	}

	if hasCoords {
		// Haversine distance in kilometers, nearest first. Values went
		// through ParseFloat so interpolation is safe here.
		query = query.Order(fmt.Sprintf(
			"6371 * acos(least(1.0, cos(radians(%f)) * cos(radians(latitude)) * cos(radians(longitude) - radians(%f)) + sin(radians(%f)) * sin(radians(latitude))))",
			lat, lng, lat))
	} else {
		query = query.Order("average_rating DESC")
	}

	var shops []models.Shop
	if err := query.Find(&shops).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve shops")
		return
	}

	c.JSON(http.StatusOK, shops)
}

// GetMyShop returns the calling owner's shop
func GetMyShop(c *gin.Context) {
	shop, ok := shopForOwner(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, shop)
}

// UpdateShop updates the calling owner's shop profile, status and services
func UpdateShop(c *gin.Context) {
	shop, ok := shopForOwner(c)
	if !ok {
		return
	}

	var input UpdateShopInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.Name != nil {
		shop.Name = *input.Name
	}
	if input.Email != nil {
		shop.Email = *input.Email
	}
	if input.Phone != nil {
		if !utils.ValidatePhone(*input.Phone) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
			return
		}
		shop.Phone = *input.Phone
	}
	if input.Street != nil {
		shop.Street = *input.Street
	}
	if input.City != nil {
		shop.City = *input.City
	}
	if input.District != nil {
		shop.District = *input.District
	}
	if input.State != nil {
		shop.State = *input.State
	}
	if input.Pin != nil {
		if *input.Pin != "" && !utils.ValidatePin(*input.Pin) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid pin code format")
			return
		}
		shop.Pin = *input.Pin
	}
	if input.Latitude != nil {
		shop.Latitude = *input.Latitude
	}
	if input.Longitude != nil {
		shop.Longitude = *input.Longitude
	}
	if input.Status != nil {
		shop.Status = *input.Status
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if input.Services != nil {
			// Replace the catalog; booking history keeps denormalized copies
			if err := tx.Where("shop_id = ?", shop.ID).Delete(&models.ShopService{}).Error; err != nil {
				return err
			}
			shop.Services = nil
			for _, svc := range *input.Services {
				shop.Services = append(shop.Services, models.ShopService{
					ShopID:   shop.ID,
					Name:     svc.Name,
					Price:    svc.Price,
					Duration: svc.Duration,
					IsActive: true,
				})
			}
		}
		return tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(shop).Error
	})
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update shop")
		return
	}

	c.JSON(http.StatusOK, shop)
}

// shopForOwner loads the shop owned by the calling user, responding with the
// appropriate error when it cannot.
func shopForOwner(c *gin.Context) (*models.Shop, bool) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return nil, false
	}
	ownerUUID, err := uuid.Parse(userID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid user ID format")
		return nil, false
	}

	var shop models.Shop
	if err := config.DB.Preload("Services").Where("owner_id = ?", ownerUUID).First(&shop).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Shop not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return nil, false
	}
	return &shop, true
}

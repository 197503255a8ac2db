// controllers/appointment.go
package controllers

import (
	"errors"
	"net/http"

	"salonbook-backend/config"
	"salonbook-backend/models"
	"salonbook-backend/services"
	"salonbook-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Booking is set at startup with the shared booking service.
var Booking *services.BookingService

type SelectionInput struct {
	ShowtimeID uuid.UUID `json:"showtimeId" binding:"required"`
	ServiceID  uuid.UUID `json:"serviceId" binding:"required"`
}

type BookAppointmentInput struct {
	ShopID     uuid.UUID        `json:"shopId" binding:"required"`
	Selections []SelectionInput `json:"selections" binding:"required,min=1,dive"`
}

// BookAppointment reserves the selected showtimes and creates a pending
// appointment. A lost race on any showtime returns 409 with nothing booked.
func BookAppointment(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}
	customerUUID, err := uuid.Parse(userID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid user ID format")
		return
	}

	var input BookAppointmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	selections := make([]services.SlotSelection, 0, len(input.Selections))
	for _, sel := range input.Selections {
		selections = append(selections, services.SlotSelection{
			ShowtimeID: sel.ShowtimeID,
			ServiceID:  sel.ServiceID,
		})
	}

	appointment, err := Booking.Book(customerUUID, input.ShopID, selections)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrShopNotFound):
			utils.RespondWithError(c, http.StatusNotFound, "Shop not found")
		case errors.Is(err, services.ErrShowtimeTaken):
			utils.RespondWithError(c, http.StatusConflict, "One or more showtimes were just booked by someone else")
		case errors.Is(err, services.ErrEmptySelection),
			errors.Is(err, services.ErrMissingService),
			errors.Is(err, services.ErrDuplicateShowtime),
			errors.Is(err, services.ErrShowtimeNotFound),
			errors.Is(err, services.ErrShowtimeInPast),
			errors.Is(err, services.ErrServiceNotFound),
			errors.Is(err, services.ErrShopNotBookable):
			utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		default:
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create appointment")
		}
		return
	}

	c.JSON(http.StatusCreated, appointment)
}

// GetMyAppointments lists the calling customer's appointments
func GetMyAppointments(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}
	customerUUID, err := uuid.Parse(userID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid user ID format")
		return
	}

	var appointments []models.Appointment
	if err := config.DB.Preload("Items").
		Where("customer_id = ?", customerUUID).
		Order("created_at DESC").
		Find(&appointments).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve appointments")
		return
	}

	c.JSON(http.StatusOK, appointments)
}

// GetShopAppointments lists bookings at the calling owner's shop
func GetShopAppointments(c *gin.Context) {
	shop, ok := shopForOwner(c)
	if !ok {
		return
	}

	query := config.DB.Preload("Items").Where("shop_id = ?", shop.ID)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var appointments []models.Appointment
	if err := query.Order("created_at DESC").Find(&appointments).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve appointments")
		return
	}

	c.JSON(http.StatusOK, appointments)
}

// PaymentCallback confirms a pending appointment once the external gateway
// reports success
func PaymentCallback(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}
	customerUUID, err := uuid.Parse(userID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid user ID format")
		return
	}

	appointmentUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid appointment ID format")
		return
	}

	var appointment models.Appointment
	if err := config.DB.First(&appointment, "id = ?", appointmentUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Appointment not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}
	if appointment.CustomerID != customerUUID {
		utils.RespondWithError(c, http.StatusForbidden, "Appointment belongs to another customer")
		return
	}

	if err := Booking.Confirm(appointmentUUID); err != nil {
		if errors.Is(err, services.ErrBadStatusChange) {
			utils.RespondWithError(c, http.StatusConflict, "Appointment is not pending")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to confirm appointment")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Appointment confirmed"})
}

// CancelAppointment cancels the calling customer's future appointment and
// releases its showtimes
func CancelAppointment(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}
	customerUUID, err := uuid.Parse(userID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid user ID format")
		return
	}

	appointmentUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid appointment ID format")
		return
	}

	if err := Booking.Cancel(appointmentUUID, customerUUID); err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			utils.RespondWithError(c, http.StatusNotFound, "Appointment not found")
		case errors.Is(err, services.ErrNotAppointmentOwner):
			utils.RespondWithError(c, http.StatusForbidden, "Appointment belongs to another customer")
		case errors.Is(err, services.ErrNotCancellable):
			utils.RespondWithError(c, http.StatusConflict, "Appointment can no longer be cancelled")
		default:
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to cancel appointment")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Appointment cancelled"})
}

// CompleteAppointment lets the shop owner mark a confirmed appointment done,
// which unlocks the review gate for the customer
func CompleteAppointment(c *gin.Context) {
	shop, ok := shopForOwner(c)
	if !ok {
		return
	}

	appointmentUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid appointment ID format")
		return
	}

	var appointment models.Appointment
	if err := config.DB.First(&appointment, "id = ?", appointmentUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Appointment not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}
	if appointment.ShopID != shop.ID {
		utils.RespondWithError(c, http.StatusForbidden, "Appointment belongs to another shop")
		return
	}

	if err := Booking.Complete(appointmentUUID); err != nil {
		if errors.Is(err, services.ErrBadStatusChange) {
			utils.RespondWithError(c, http.StatusConflict, "Only confirmed appointments can be completed")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to complete appointment")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Appointment completed"})
}

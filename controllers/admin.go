// controllers/admin.go
package controllers

import (
	"errors"
	"net/http"

	"salonbook-backend/config"
	"salonbook-backend/models"
	"salonbook-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AdminUpdateUserInput struct {
	IsActive *bool   `json:"isActive"`
	Role     *string `json:"role" binding:"omitempty,oneof=customer owner admin"`
}

type AdminUpdateShopInput struct {
	ApprovalStatus *string `json:"approvalStatus" binding:"omitempty,oneof=pending approved rejected"`
	Status         *string `json:"status" binding:"omitempty,oneof=open break closed"`
}

type AdminUpdateReviewInput struct {
	Status string `json:"status" binding:"required,oneof=approved rejected"`
}

type AdminUpdateAppointmentInput struct {
	Status string `json:"status" binding:"required,oneof=pending confirmed completed cancelled"`
}

// AdminListUsers lists all accounts
func AdminListUsers(c *gin.Context) {
	var users []models.User
	if err := config.DB.Order("created_at DESC").Find(&users).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve users")
		return
	}
	c.JSON(http.StatusOK, users)
}

// AdminUpdateUser activates/deactivates an account or changes its role
func AdminUpdateUser(c *gin.Context) {
	userUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid user ID format")
		return
	}

	var input AdminUpdateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var user models.User
	if err := config.DB.First(&user, "id = ?", userUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "User not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}
	if input.Role != nil {
		user.Role = *input.Role
	}

	if err := config.DB.Save(&user).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update user")
		return
	}

	c.JSON(http.StatusOK, user)
}

// AdminDeleteUser soft deletes an account
func AdminDeleteUser(c *gin.Context) {
	userUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid user ID format")
		return
	}

	result := config.DB.Where("id = ?", userUUID).Delete(&models.User{})
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete user")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "User not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}

// AdminListShops lists shops of any approval status, optionally filtered
func AdminListShops(c *gin.Context) {
	query := config.DB.Preload("Services")
	if status := c.Query("approvalStatus"); status != "" {
		query = query.Where("approval_status = ?", status)
	}

	var shops []models.Shop
	if err := query.Order("created_at DESC").Find(&shops).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve shops")
		return
	}
	c.JSON(http.StatusOK, shops)
}

// AdminUpdateShop approves/rejects a shop or overrides its status
func AdminUpdateShop(c *gin.Context) {
	shopUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid shop ID format")
		return
	}

	var input AdminUpdateShopInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var shop models.Shop
	if err := config.DB.First(&shop, "id = ?", shopUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Shop not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.ApprovalStatus != nil {
		shop.ApprovalStatus = *input.ApprovalStatus
	}
	if input.Status != nil {
		shop.Status = *input.Status
	}

	if err := config.DB.Save(&shop).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update shop")
		return
	}

	c.JSON(http.StatusOK, shop)
}

// AdminListContacts lists contact-form messages
func AdminListContacts(c *gin.Context) {
	var contacts []models.Contact
	if err := config.DB.Order("created_at DESC").Find(&contacts).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve contacts")
		return
	}
	c.JSON(http.StatusOK, contacts)
}

// AdminDeleteContact removes a contact-form message
func AdminDeleteContact(c *gin.Context) {
	contactUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid contact ID format")
		return
	}

	result := config.DB.Where("id = ?", contactUUID).Delete(&models.Contact{})
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete contact")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Contact not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Contact deleted successfully"})
}

// AdminListReviews lists reviews, optionally by moderation status
func AdminListReviews(c *gin.Context) {
	query := config.DB.Model(&models.Review{})
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var reviews []models.Review
	if err := query.Order("created_at DESC").Find(&reviews).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve reviews")
		return
	}
	c.JSON(http.StatusOK, reviews)
}

// AdminModerateReview approves or rejects a review and refreshes the shop's
// aggregates
func AdminModerateReview(c *gin.Context) {
	reviewUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid review ID format")
		return
	}

	var input AdminUpdateReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var review models.Review
	if err := config.DB.First(&review, "id = ?", reviewUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Review not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&review).Update("status", input.Status).Error; err != nil {
			return err
		}
		return recomputeShopRating(tx, review.ShopID)
	})
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to moderate review")
		return
	}

	c.JSON(http.StatusOK, review)
}

// AdminDeleteReview removes a review and refreshes the shop's aggregates
func AdminDeleteReview(c *gin.Context) {
	reviewUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid review ID format")
		return
	}

	var review models.Review
	if err := config.DB.First(&review, "id = ?", reviewUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Review not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&review).Error; err != nil {
			return err
		}
		return recomputeShopRating(tx, review.ShopID)
	})
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete review")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Review deleted successfully"})
}

// AdminOverrideAppointment sets any appointment status, the only path that
// may move a status backward
func AdminOverrideAppointment(c *gin.Context) {
	appointmentUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid appointment ID format")
		return
	}

	var input AdminUpdateAppointmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
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

	// Cancelling must also free the reserved showtimes, same as a customer
	// cancellation.
	if input.Status == models.AppointmentCancelled {
		if err := Booking.ForceCancel(appointment.ID); err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to cancel appointment")
			return
		}
		appointment.Status = models.AppointmentCancelled
		c.JSON(http.StatusOK, appointment)
		return
	}

	if err := config.DB.Model(&appointment).Update("status", input.Status).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update appointment")
		return
	}

	c.JSON(http.StatusOK, appointment)
}

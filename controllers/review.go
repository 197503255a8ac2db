// controllers/review.go
package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"salonbook-backend/config"
	"salonbook-backend/models"
	"salonbook-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrReviewNotCompleted = errors.New("only completed appointments can be reviewed")
	ErrReviewNotCustomer  = errors.New("appointment belongs to another customer")
	ErrReviewOwnShop      = errors.New("shop owners cannot review their own shop")
	ErrAlreadyReviewed    = errors.New("you have already reviewed this appointment")
)

type SubmitReviewInput struct {
	ShopID        uuid.UUID `json:"shopId" binding:"required"`
	AppointmentID uuid.UUID `json:"appointmentId" binding:"required"`
	Rating        int       `json:"rating" binding:"required,min=1,max=5"`
	Comment       string    `json:"comment"`
}

// CheckReviewEligibility applies the review gate: the appointment must be
// completed, belong to the reviewer, not be at the reviewer's own shop and
// not be reviewed yet.
func CheckReviewEligibility(appointment *models.Appointment, reviewerID, shopOwnerID uuid.UUID, hasReviewed bool) error {
	if appointment.CustomerID != reviewerID {
		return ErrReviewNotCustomer
	}
	if appointment.Status != models.AppointmentCompleted {
		return ErrReviewNotCompleted
	}
	if reviewerID == shopOwnerID {
		return ErrReviewOwnShop
	}
	if hasReviewed {
		return ErrAlreadyReviewed
	}
	return nil
}

// SubmitReview creates the one allowed review for an appointment and
// refreshes the shop's rating aggregates
func SubmitReview(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}
	reviewerUUID, err := uuid.Parse(userID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid user ID format")
		return
	}

	var input SubmitReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var appointment models.Appointment
	if err := config.DB.First(&appointment, "id = ?", input.AppointmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Appointment not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}
	if appointment.ShopID != input.ShopID {
		utils.RespondWithError(c, http.StatusBadRequest, "Appointment does not belong to this shop")
		return
	}

	var shop models.Shop
	if err := config.DB.First(&shop, "id = ?", appointment.ShopID).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	var existing models.Review
	hasReviewed := false
	if err := config.DB.Where("appointment_id = ?", appointment.ID).First(&existing).Error; err == nil {
		hasReviewed = true
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	if err := CheckReviewEligibility(&appointment, reviewerUUID, shop.OwnerID, hasReviewed); err != nil {
		switch {
		case errors.Is(err, ErrAlreadyReviewed):
			// Clients treat this message as a benign "already reviewed" signal
			utils.RespondWithError(c, http.StatusBadRequest, "You have already reviewed this appointment")
		case errors.Is(err, ErrReviewNotCustomer):
			utils.RespondWithError(c, http.StatusForbidden, err.Error())
		default:
			utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		}
		return
	}

	review := models.Review{
		ShopID:        appointment.ShopID,
		AppointmentID: appointment.ID,
		UserID:        reviewerUUID,
		Rating:        input.Rating,
		Comment:       input.Comment,
		Status:        models.ReviewApproved,
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&review).Error; err != nil {
			return err
		}
		return recomputeShopRating(tx, appointment.ShopID)
	})
	if err != nil {
		// Unique index on appointment_id closes the pre-check race
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.RespondWithError(c, http.StatusBadRequest, "You have already reviewed this appointment")
			return
		}
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to submit review")
		return
	}

	c.JSON(http.StatusCreated, review)
}

// GetShopReviews lists a shop's approved reviews with pagination and sorting
func GetShopReviews(c *gin.Context) {
	shopUUID, err := uuid.Parse(c.Param("shopId"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid shop ID format")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if limit < 1 || limit > 100 {
		limit = 10
	}

	query := config.DB.Model(&models.Review{}).
		Where("shop_id = ? AND status = ?", shopUUID, models.ReviewApproved)

	if ratingStr := c.Query("rating"); ratingStr != "" {
		rating, err := strconv.Atoi(ratingStr)
		if err != nil || rating < 1 || rating > 5 {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid rating filter")
			return
		}
		query = query.Where("rating = ?", rating)
	}

	switch c.DefaultQuery("sort", "newest") {
	case "newest":
		query = query.Order("created_at DESC")
	case "oldest":
		query = query.Order("created_at ASC")
	case "highest":
		query = query.Order("rating DESC, created_at DESC")
	case "lowest":
		query = query.Order("rating ASC, created_at DESC")
	default:
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid sort, expected newest|oldest|highest|lowest")
		return
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to count reviews")
		return
	}

	var reviews []models.Review
	if err := query.Offset((page - 1) * limit).Limit(limit).Find(&reviews).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve reviews")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reviews": reviews,
		"page":    page,
		"limit":   limit,
		"total":   total,
	})
}

// GetMyReviews lists the calling user's reviews
func GetMyReviews(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}
	reviewerUUID, err := uuid.Parse(userID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid user ID format")
		return
	}

	var reviews []models.Review
	if err := config.DB.Where("user_id = ?", reviewerUUID).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve reviews")
		return
	}

	c.JSON(http.StatusOK, reviews)
}

// recomputeShopRating refreshes the denormalized aggregates from approved
// reviews
func recomputeShopRating(tx *gorm.DB, shopID uuid.UUID) error {
	var result struct {
		Count int64
		Avg   float64
	}
	err := tx.Model(&models.Review{}).
		Select("COUNT(*) AS count, COALESCE(AVG(rating), 0) AS avg").
		Where("shop_id = ? AND status = ?", shopID, models.ReviewApproved).
		Scan(&result).Error
	if err != nil {
		return err
	}

	return tx.Model(&models.Shop{}).
		Where("id = ?", shopID).
		Updates(map[string]interface{}{
			"average_rating": result.Avg,
			"total_reviews":  result.Count,
		}).Error
}

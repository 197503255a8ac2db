// controllers/donation.go
package controllers

import (
	"net/http"

	"salonbook-backend/config"
	"salonbook-backend/models"
	"salonbook-backend/utils"

	"github.com/gin-gonic/gin"
)

type DonateInput struct {
	Name   string  `json:"name" binding:"required"`
	Email  string  `json:"email" binding:"omitempty,email"`
	Amount float64 `json:"amount" binding:"required,gt=0"`
	Note   string  `json:"note"`
}

// Donate records a donation
func Donate(c *gin.Context) {
	var input DonateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	donation := models.Donation{
		Name:   input.Name,
		Email:  input.Email,
		Amount: input.Amount,
		Note:   input.Note,
	}

	if err := config.DB.Create(&donation).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to record donation")
		return
	}

	c.JSON(http.StatusCreated, donation)
}

// GetReceivedDonations lists all donations, newest first
func GetReceivedDonations(c *gin.Context) {
	var donations []models.Donation
	if err := config.DB.Order("created_at DESC").Find(&donations).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve donations")
		return
	}

	c.JSON(http.StatusOK, donations)
}

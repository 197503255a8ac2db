// controllers/otp.go
package controllers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"salonbook-backend/config"
	"salonbook-backend/models"
	"salonbook-backend/services"
	"salonbook-backend/utils"

	"github.com/gin-gonic/gin"
)

// Notifier is set at startup so OTP codes go out through the shared Twilio
// client.
var Notifier *services.NotificationService

const otpTTL = 5 * time.Minute

type SendOTPInput struct {
	Phone string `json:"phone" binding:"required"`
}

type VerifyOTPInput struct {
	Phone string `json:"phone" binding:"required"`
	Code  string `json:"code" binding:"required,len=6"`
}

func otpKey(phone string) string {
	return "otp:" + phone
}

func SendOTP(c *gin.Context) {
	var input SendOTPInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if !utils.ValidatePhone(input.Phone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
		return
	}

	code := utils.GenerateOTP(6)
	if err := config.RDB.Set(context.Background(), otpKey(input.Phone), code, otpTTL).Err(); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to store OTP")
		return
	}

	body := fmt.Sprintf("Your verification code is %s. It expires in 5 minutes.", code)
	if err := Notifier.SendSMS(input.Phone, body); err != nil {
		config.Log.Errorf("Failed to send OTP to %s: %v", input.Phone, err)
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to send OTP")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "OTP sent"})
}

func VerifyOTP(c *gin.Context) {
	var input VerifyOTPInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	stored, err := config.RDB.Get(context.Background(), otpKey(input.Phone)).Result()
	if err != nil || stored != input.Code {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid or expired OTP")
		return
	}

	config.RDB.Del(context.Background(), otpKey(input.Phone))

	if err := config.DB.Model(&models.User{}).
		Where("phone = ?", input.Phone).
		Update("is_verified", true).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to verify user")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Phone verified"})
}

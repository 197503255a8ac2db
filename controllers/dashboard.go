// controllers/dashboard.go
package controllers

import (
	"net/http"
	"time"

	"salonbook-backend/config"
	"salonbook-backend/models"
	"salonbook-backend/utils"

	"github.com/gin-gonic/gin"
)

type DashboardOverview struct {
	TotalAppointments int64           `json:"totalAppointments"`
	MonthlyRevenue    float64         `json:"monthlyRevenue"`
	UpcomingToday     int64           `json:"upcomingToday"`
	PendingBookings   int64           `json:"pendingBookings"`
	AverageRating     float64         `json:"averageRating"`
	TotalReviews      int             `json:"totalReviews"`
	RecentBookings    []RecentBooking `json:"recentBookings"`
}

type RecentBooking struct {
	ID       string  `json:"id"`
	Status   string  `json:"status"`
	Total    float64 `json:"total"`
	BookedAt string  `json:"bookedAt"`
}

// GetDashboardOverview summarizes the calling owner's shop activity
func GetDashboardOverview(c *gin.Context) {
	shop, ok := shopForOwner(c)
	if !ok {
		return
	}

	var overview DashboardOverview
	overview.AverageRating = shop.AverageRating
	overview.TotalReviews = shop.TotalReviews

	config.DB.Model(&models.Appointment{}).
		Where("shop_id = ? AND status != ?", shop.ID, models.AppointmentCancelled).
		Count(&overview.TotalAppointments)

	config.DB.Model(&models.Appointment{}).
		Where("shop_id = ? AND status = ?", shop.ID, models.AppointmentPending).
		Count(&overview.PendingBookings)

	// This month's revenue from completed appointments
	now := time.Now()
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	config.DB.Model(&models.Appointment{}).
		Where("shop_id = ? AND status = ? AND updated_at >= ?",
			shop.ID, models.AppointmentCompleted, firstOfMonth).
		Select("COALESCE(SUM(total), 0)").Scan(&overview.MonthlyRevenue)

	// Confirmed bookings with a showtime later today
	dayEnd := utils.BeginningOfDay(now).AddDate(0, 0, 1)
	config.DB.Model(&models.Appointment{}).
		Where("shop_id = ? AND status = ?", shop.ID, models.AppointmentConfirmed).
		Where("id IN (?)", config.DB.Model(&models.AppointmentItem{}).
			Select("appointment_id").
			Where("starts_at >= ? AND starts_at < ?", now, dayEnd)).
		Count(&overview.UpcomingToday)

	var recent []models.Appointment
	config.DB.Where("shop_id = ?", shop.ID).
		Order("created_at DESC").
		Limit(5).
		Find(&recent)
	for _, appointment := range recent {
		overview.RecentBookings = append(overview.RecentBookings, RecentBooking{
			ID:       appointment.ID.String(),
			Status:   appointment.Status,
			Total:    appointment.Total,
			BookedAt: appointment.CreatedAt.Format(time.RFC3339),
		})
	}

	c.JSON(http.StatusOK, overview)
}

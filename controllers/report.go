// controllers/report.go
package controllers

import (
	"net/http"
	"time"

	"salonbook-backend/config"
	"salonbook-backend/models"
	"salonbook-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ReportController handles all reporting functions
type ReportController struct{}

// AnalyticsSummary represents the analytics data
type AnalyticsSummary struct {
	CurrentMonthRevenue   float64          `json:"currentMonthRevenue"`
	MonthGrowth           float64          `json:"monthGrowth"`
	CurrentQuarterRevenue float64          `json:"currentQuarterRevenue"`
	QuarterGrowth         float64          `json:"quarterGrowth"`
	CurrentYearRevenue    float64          `json:"currentYearRevenue"`
	YearGrowth            float64          `json:"yearGrowth"`
	TopServices           []ServiceSummary `json:"topServices"`
	QuickStats            QuickStatistics  `json:"quickStats"`
}

type ServiceSummary struct {
	Name    string  `json:"name"`
	Count   int     `json:"count"`
	Revenue float64 `json:"revenue"`
}

type QuickStatistics struct {
	TotalAppointments int64   `json:"totalAppointments"`
	CompletedCount    int64   `json:"completedCount"`
	CancelledCount    int64   `json:"cancelledCount"`
	AvgBookingValue   float64 `json:"avgBookingValue"`
}

// GetReportAnalytics returns the owner's revenue and booking analytics
func (rc *ReportController) GetReportAnalytics(c *gin.Context) {
	shop, ok := shopForOwner(c)
	if !ok {
		return
	}

	now := time.Now()
	currentYear, currentMonth, _ := now.Date()
	loc := now.Location()

	firstOfMonth := time.Date(currentYear, currentMonth, 1, 0, 0, 0, 0, loc)
	firstOfYear := time.Date(currentYear, 1, 1, 0, 0, 0, 0, loc)

	var summary AnalyticsSummary

	currentMonthRevenue, err := rc.getRevenue(shop.ID, firstOfMonth, now)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get monthly revenue")
		return
	}
	lastMonthRevenue, err := rc.getRevenue(shop.ID, firstOfMonth.AddDate(0, -1, 0), firstOfMonth)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get last month revenue")
		return
	}

	quarterStart := rc.getQuarterStart(now)
	currentQuarterRevenue, err := rc.getRevenue(shop.ID, quarterStart, now)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get quarterly revenue")
		return
	}
	lastQuarterRevenue, err := rc.getRevenue(shop.ID, quarterStart.AddDate(0, -3, 0), quarterStart)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get last quarter revenue")
		return
	}

	currentYearRevenue, err := rc.getRevenue(shop.ID, firstOfYear, now)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get yearly revenue")
		return
	}
	lastYearRevenue, err := rc.getRevenue(shop.ID, firstOfYear.AddDate(-1, 0, 0), firstOfYear)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get last year revenue")
		return
	}

	summary.CurrentMonthRevenue = currentMonthRevenue
	summary.MonthGrowth = rc.growth(currentMonthRevenue, lastMonthRevenue)
	summary.CurrentQuarterRevenue = currentQuarterRevenue
	summary.QuarterGrowth = rc.growth(currentQuarterRevenue, lastQuarterRevenue)
	summary.CurrentYearRevenue = currentYearRevenue
	summary.YearGrowth = rc.growth(currentYearRevenue, lastYearRevenue)

	// Top services by completed booking lines this year
	rows, err := config.DB.Model(&models.AppointmentItem{}).
		Select("appointment_items.service_name AS name, COUNT(*) AS count, SUM(appointment_items.service_price) AS revenue").
		Joins("JOIN appointments ON appointments.id = appointment_items.appointment_id").
		Where("appointments.shop_id = ? AND appointments.status = ? AND appointments.updated_at >= ?",
			shop.ID, models.AppointmentCompleted, firstOfYear).
		Group("appointment_items.service_name").
		Order("revenue DESC").
		Limit(5).
		Rows()
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get top services")
		return
	}
	defer rows.Close()
	for rows.Next() {
		var svc ServiceSummary
		if err := rows.Scan(&svc.Name, &svc.Count, &svc.Revenue); err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to scan top services")
			return
		}
		summary.TopServices = append(summary.TopServices, svc)
	}

	config.DB.Model(&models.Appointment{}).
		Where("shop_id = ?", shop.ID).Count(&summary.QuickStats.TotalAppointments)
	config.DB.Model(&models.Appointment{}).
		Where("shop_id = ? AND status = ?", shop.ID, models.AppointmentCompleted).
		Count(&summary.QuickStats.CompletedCount)
	config.DB.Model(&models.Appointment{}).
		Where("shop_id = ? AND status = ?", shop.ID, models.AppointmentCancelled).
		Count(&summary.QuickStats.CancelledCount)
	if summary.QuickStats.CompletedCount > 0 {
		summary.QuickStats.AvgBookingValue = currentYearRevenue / float64(summary.QuickStats.CompletedCount)
	}

	c.JSON(http.StatusOK, summary)
}

func (rc *ReportController) getRevenue(shopID uuid.UUID, from, to time.Time) (float64, error) {
	var revenue float64
	err := config.DB.Model(&models.Appointment{}).
		Where("shop_id = ? AND status = ? AND updated_at >= ? AND updated_at < ?",
			shopID, models.AppointmentCompleted, from, to).
		Select("COALESCE(SUM(total), 0)").Scan(&revenue).Error
	return revenue, err
}

func (rc *ReportController) getQuarterStart(t time.Time) time.Time {
	quarterMonth := time.Month(((int(t.Month())-1)/3)*3 + 1)
	return time.Date(t.Year(), quarterMonth, 1, 0, 0, 0, 0, t.Location())
}

func (rc *ReportController) growth(current, previous float64) float64 {
	if previous == 0 {
		return 0
	}
	return (current - previous) / previous * 100
}

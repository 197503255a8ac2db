// controllers/timeslot.go
package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"time"

	"salonbook-backend/config"
	"salonbook-backend/models"
	"salonbook-backend/services"
	"salonbook-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ShowtimeAvailable = "available"
	ShowtimePast      = "past"
	ShowtimeBooked    = "booked"

	availabilityCacheTTL = 20 * time.Second
)

type GenerateSlotsInput struct {
	Date            string   `json:"date" binding:"required"` // YYYY-MM-DD
	Open            string   `json:"open"`                    // HH:MM
	Close           string   `json:"close"`                   // HH:MM
	IntervalMinutes int      `json:"intervalMinutes" binding:"omitempty,min=5"`
	Times           []string `json:"times"` // explicit HH:MM list, overrides the window
}

type ShowtimeView struct {
	ID       uuid.UUID `json:"id"`
	StartsAt time.Time `json:"startsAt"`
	IsBooked bool      `json:"isBooked"`
	Status   string    `json:"status"`
}

type TimeSlotView struct {
	ID        uuid.UUID      `json:"id"`
	Date      string         `json:"date"`
	Showtimes []ShowtimeView `json:"showtimes"`
}

// ShowtimeStatus resolves the rendered state of a showtime against the
// server clock. Booked wins over past.
func ShowtimeStatus(startsAt time.Time, isBooked bool, now time.Time) string {
	if isBooked {
		return ShowtimeBooked
	}
	if !startsAt.After(now) {
		return ShowtimePast
	}
	return ShowtimeAvailable
}

// BuildTimes expands an open/close window with a step, or an explicit HH:MM
// list, into concrete instants on the given date.
func BuildTimes(date time.Time, open, close string, intervalMinutes int, times []string) ([]time.Time, error) {
	day := utils.BeginningOfDay(date)

	atClock := func(clock string) (time.Time, error) {
		parsed, err := time.Parse("15:04", clock)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid time %q, expected HH:MM", clock)
		}
		return day.Add(time.Duration(parsed.Hour())*time.Hour + time.Duration(parsed.Minute())*time.Minute), nil
	}

	if len(times) > 0 {
		out := make([]time.Time, 0, len(times))
		for _, clock := range times {
			t, err := atClock(clock)
			if err != nil {
				return nil, err
			}
			out = append(out, t)
		}
		sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
		return out, nil
	}

	if open == "" || close == "" || intervalMinutes <= 0 {
		return nil, errors.New("either times or open/close/intervalMinutes is required")
	}
	start, err := atClock(open)
	if err != nil {
		return nil, err
	}
	end, err := atClock(close)
	if err != nil {
		return nil, err
	}
	if !end.After(start) {
		return nil, errors.New("close must be after open")
	}

	var out []time.Time
	for t := start; t.Before(end); t = t.Add(time.Duration(intervalMinutes) * time.Minute) {
		out = append(out, t)
	}
	return out, nil
}

// GenerateSlots creates the showtimes of one date for the calling owner's
// shop. Regeneration adds missing times only and never touches booked rows.
func GenerateSlots(c *gin.Context) {
	shop, ok := shopForOwner(c)
	if !ok {
		return
	}
	shopUUID, err := uuid.Parse(c.Param("shopId"))
	if err != nil || shopUUID != shop.ID {
		utils.RespondWithError(c, http.StatusForbidden, "Shop does not belong to this owner")
		return
	}

	var input GenerateSlotsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	date, err := time.ParseInLocation("2006-01-02", input.Date, time.Local)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
		return
	}
	if date.Before(utils.BeginningOfDay(time.Now())) {
		utils.RespondWithError(c, http.StatusBadRequest, "Cannot create slots for a past date")
		return
	}

	instants, err := BuildTimes(date, input.Open, input.Close, input.IntervalMinutes, input.Times)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	if len(instants) == 0 {
		utils.RespondWithError(c, http.StatusBadRequest, "Window produced no showtimes")
		return
	}

	var slot models.TimeSlot
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("shop_id = ? AND date = ?", shop.ID, date).
			First(&slot).Error; err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			slot = models.TimeSlot{ShopID: shop.ID, Date: date}
			if err := tx.Create(&slot).Error; err != nil {
				return err
			}
		}

		var existing []models.Showtime
		if err := tx.Where("time_slot_id = ?", slot.ID).Find(&existing).Error; err != nil {
			return err
		}
		present := make(map[time.Time]bool, len(existing))
		for _, st := range existing {
			present[st.StartsAt.Truncate(time.Minute)] = true
		}

		for _, instant := range instants {
			if present[instant.Truncate(time.Minute)] {
				continue
			}
			showtime := models.Showtime{TimeSlotID: slot.ID, StartsAt: instant}
			if err := tx.Create(&showtime).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate slots")
		return
	}

	config.CacheDelete(services.AvailabilityCacheKey(shop.ID))

	if err := config.DB.Preload("Showtimes", func(db *gorm.DB) *gorm.DB {
		return db.Order("starts_at ASC")
	}).First(&slot, "id = ?", slot.ID).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load generated slot")
		return
	}

	c.JSON(http.StatusCreated, slotView(slot, time.Now()))
}

// GetAvailability lists a shop's slots, date ascending with showtimes time
// ascending, each showtime annotated available/past/booked against the
// server clock. Responses are cached briefly to absorb client polling.
func GetAvailability(c *gin.Context) {
	shopUUID, err := uuid.Parse(c.Param("shopId"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid shop ID format")
		return
	}

	cacheKey := services.AvailabilityCacheKey(shopUUID)
	if data, ok := config.CacheGet(cacheKey); ok {
		c.Data(http.StatusOK, "application/json", data)
		return
	}

	var slots []models.TimeSlot
	if err := config.DB.
		Preload("Showtimes", func(db *gorm.DB) *gorm.DB {
			return db.Order("starts_at ASC")
		}).
		Where("shop_id = ?", shopUUID).
		Order("date ASC").
		Find(&slots).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve availability")
		return
	}

	now := time.Now()
	views := make([]TimeSlotView, 0, len(slots))
	for _, slot := range slots {
		views = append(views, slotView(slot, now))
	}

	body, err := json.Marshal(views)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to encode availability")
		return
	}
	config.CacheSet(cacheKey, body, availabilityCacheTTL)

	c.Data(http.StatusOK, "application/json", body)
}

func slotView(slot models.TimeSlot, now time.Time) TimeSlotView {
	view := TimeSlotView{
		ID:        slot.ID,
		Date:      slot.Date.Format("2006-01-02"),
		Showtimes: make([]ShowtimeView, 0, len(slot.Showtimes)),
	}
	for _, st := range slot.Showtimes {
		view.Showtimes = append(view.Showtimes, ShowtimeView{
			ID:       st.ID,
			StartsAt: st.StartsAt,
			IsBooked: st.IsBooked,
			Status:   ShowtimeStatus(st.StartsAt, st.IsBooked, now),
		})
	}
	return view
}

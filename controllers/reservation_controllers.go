package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/THEBEST7192/Katta-Helse/schedule"
	"github.com/THEBEST7192/Katta-Helse/services"
	"github.com/THEBEST7192/Katta-Helse/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ReservationController struct {
	Service *services.ReservationService
}

func NewReservationController(db *gorm.DB) *ReservationController {
	return &ReservationController{Service: services.NewReservationService(db)}
}

// CreateReservation books a slot. The requested time must pass the opening
// hours check before anything is written; the store itself does not care.
func (rc *ReservationController) CreateReservation(c *gin.Context) {
	var req struct {
		Name    string `json:"name" binding:"required"`
		Email   string `json:"email" binding:"required"`
		Date    string `json:"date" binding:"required"`
		Time    string `json:"time" binding:"required"`
		Message string `json:"message"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("name, email, date and time are required"))
		return
	}

	open, err := schedule.IsOpenAt(req.Date, req.Time)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if !open {
		utils.RespondError(c, http.StatusBadRequest, errors.New("requested time is outside opening hours"))
		return
	}

	detail, err := rc.Service.Create(req.Name, req.Email, req.Date, req.Time, req.Message)
	if err != nil {
		utils.ErrorLogger.Printf("Error saving reservation: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, errors.New("internal server error"))
		return
	}

	utils.InfoLogger.Printf("Reservation %d created for %s %s", detail.ID, detail.Date, detail.Time)
	c.JSON(http.StatusCreated, detail)
}

// GetReservations is the staff view: identity-joined upcoming reservations.
// Authentication happens in the middleware in front of this handler.
func (rc *ReservationController) GetReservations(c *gin.Context) {
	rows, err := rc.Service.ListUpcoming(time.Now())
	if err != nil {
		utils.ErrorLogger.Printf("Error fetching reservations: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, errors.New("internal server error"))
		return
	}
	c.JSON(http.StatusOK, rows)
}

// GetPublicReservations exposes only occupied {date, time} slots.
func (rc *ReservationController) GetPublicReservations(c *gin.Context) {
	slots, err := rc.Service.ListUpcomingPublic(time.Now())
	if err != nil {
		utils.ErrorLogger.Printf("Error fetching public reservations: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, errors.New("internal server error"))
		return
	}
	c.JSON(http.StatusOK, slots)
}

// GetAvailableHours backs the booking form's hour dropdown. Advisory only;
// CreateReservation re-checks every submission.
func (rc *ReservationController) GetAvailableHours(c *gin.Context) {
	date, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("date must be YYYY-MM-DD"))
		return
	}

	hours := schedule.AvailableHours(date, time.Now())
	utils.RespondJSON(c, http.StatusOK, "Available hours", gin.H{"hours": hours})
}

// GetAvailableMinutes backs the booking form's minute dropdown.
func (rc *ReservationController) GetAvailableMinutes(c *gin.Context) {
	date, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("date must be YYYY-MM-DD"))
		return
	}
	hour, err := strconv.Atoi(c.Query("hour"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("hour must be a number"))
		return
	}

	minutes := schedule.AvailableMinutes(date, hour, time.Now())
	utils.RespondJSON(c, http.StatusOK, "Available minutes", gin.H{"minutes": minutes})
}

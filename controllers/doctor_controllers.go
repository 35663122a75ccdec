package controllers

import (
	"errors"
	"net/http"

	"github.com/THEBEST7192/Katta-Helse/services"
	"github.com/THEBEST7192/Katta-Helse/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type DoctorController struct {
	Gate    *services.DoctorAuthService
	Service *services.ReservationService
}

func NewDoctorController(db *gorm.DB) *DoctorController {
	return &DoctorController{
		Gate:    services.NewDoctorAuthService(db),
		Service: services.NewReservationService(db),
	}
}

// Login verifies staff credentials and hands out a session token. The
// not-configured state gets its own code so the frontend can render a
// setup-required message instead of a login form; unknown username and
// wrong password share one code.
func (dc *DoctorController) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("username and password are required"))
		return
	}

	doctor, err := dc.Gate.Verify(req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotConfigured):
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "no doctors registered yet",
				"code":    "staff_not_configured",
			})
		case errors.Is(err, services.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "invalid username or password",
				"code":    "invalid_credentials",
			})
		default:
			utils.ErrorLogger.Printf("Login check failed: %v", err)
			utils.RespondError(c, http.StatusInternalServerError, errors.New("internal server error"))
		}
		return
	}

	token, err := utils.GenerateToken(doctor.ID, doctor.Username)
	if err != nil {
		utils.ErrorLogger.Printf("Error generating token: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, errors.New("internal server error"))
		return
	}

	utils.InfoLogger.Printf("Doctor %s logged in", doctor.Username)
	c.JSON(http.StatusOK, gin.H{"success": true, "token": token})
}

// CheckDoctors reports whether any staff credential exists. Unauthenticated
// on purpose: it only decides which error UI the frontend shows.
func (dc *DoctorController) CheckDoctors(c *gin.Context) {
	count, err := dc.Service.CountDoctors()
	if err != nil {
		utils.ErrorLogger.Printf("Error counting doctors: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, errors.New("internal server error"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"hasDoctors": count > 0})
}

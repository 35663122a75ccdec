package router

import (
	"time"

	"github.com/THEBEST7192/Katta-Helse/config"
	"github.com/THEBEST7192/Katta-Helse/controllers"
	"github.com/THEBEST7192/Katta-Helse/middlewares"
	"github.com/THEBEST7192/Katta-Helse/services"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.LoggerMiddleware())
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddleware(cfg.AllowedOrigins))

	// Global limiter for every request, same window as the original server.
	globalLimiter := middlewares.NewRateLimiter(100, 15*time.Minute)
	r.Use(globalLimiter.RateLimit())

	reservationCtrl := controllers.NewReservationController(db)
	doctorCtrl := controllers.NewDoctorController(db)
	gate := services.NewDoctorAuthService(db)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// Login and booking share one stricter limiter, same window as the
	// original server.
	strict := middlewares.NewStrictRateLimiter(10, 10*time.Minute)

	api := r.Group("/api")
	{
		api.POST("/reservations", strict, reservationCtrl.CreateReservation)
		api.GET("/reservations/public", reservationCtrl.GetPublicReservations)
		api.POST("/login", strict, doctorCtrl.Login)
		api.GET("/doctors/check", doctorCtrl.CheckDoctors)

		// Slot pickers for the booking form.
		api.GET("/schedule/hours", reservationCtrl.GetAvailableHours)
		api.GET("/schedule/minutes", reservationCtrl.GetAvailableMinutes)

		staff := api.Group("/")
		staff.Use(middlewares.StaffAuthMiddleware(gate))
		{
			staff.GET("/reservations", reservationCtrl.GetReservations)
		}
	}

	return r
}

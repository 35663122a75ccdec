package main

import (
	"log"
	"os"

	"github.com/THEBEST7192/Katta-Helse/config"
	"github.com/THEBEST7192/Katta-Helse/database"
	"github.com/THEBEST7192/Katta-Helse/models"
	"github.com/THEBEST7192/Katta-Helse/router"
	"github.com/THEBEST7192/Katta-Helse/services"
	"github.com/THEBEST7192/Katta-Helse/utils"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading: %v", err)
	}

	utils.InitLogger()
	cfg := config.Load()

	db, err := config.InitDB(cfg)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}

	autoMigrate(db)

	gate := services.NewDoctorAuthService(db)
	if err := gate.SeedDoctor(cfg.DoctorUsername, cfg.DoctorPassword); err != nil {
		utils.ErrorLogger.Printf("Doctor seed failed: %v", err)
	}

	sweeper := services.NewRetentionSweeper(db, cfg.RetentionDays)
	sweeper.Interval = cfg.SweepInterval
	sweeper.Start()
	defer sweeper.Stop()

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := router.SetupRouter(cfg, db)
	r.SetTrustedProxies([]string{"127.0.0.1", "localhost"})

	utils.InfoLogger.Printf("Server running on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}

func autoMigrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.Email{},
		&models.Phone{},
		&models.User{},
		&models.Reservation{},
		&models.Doctor{},
	)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}

	// Databases from the flat-table era still carry name/email columns on
	// reservations; lift those rows into the normalized schema once.
	if err := database.MigrateLegacySchema(db); err != nil {
		utils.ErrorLogger.Fatalf("Failed to migrate legacy schema: %v", err)
	}

	utils.InfoLogger.Println("AutoMigrate completed.")
}

package services

import (
	"time"

	"github.com/THEBEST7192/Katta-Helse/models"
	"github.com/THEBEST7192/Katta-Helse/utils"
	"gorm.io/gorm"
)

// RetentionSweeper deletes reservations past the retention window and then
// the identity rows they orphan. It runs once at startup and on every tick;
// a failed run is logged and the next tick simply tries again.
type RetentionSweeper struct {
	DB            *gorm.DB
	StopChan      chan struct{}
	Interval      time.Duration
	RetentionDays int
}

func NewRetentionSweeper(db *gorm.DB, retentionDays int) *RetentionSweeper {
	return &RetentionSweeper{
		DB:            db,
		StopChan:      make(chan struct{}),
		Interval:      24 * time.Hour,
		RetentionDays: retentionDays,
	}
}

func (rs *RetentionSweeper) Start() {
	go func() {
		rs.runOnce()

		ticker := time.NewTicker(rs.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				rs.runOnce()
			case <-rs.StopChan:
				return
			}
		}
	}()
}

func (rs *RetentionSweeper) Stop() {
	close(rs.StopChan)
}

func (rs *RetentionSweeper) runOnce() {
	if err := rs.Sweep(time.Now()); err != nil {
		utils.ErrorLogger.Printf("Retention sweep failed: %v", err)
	}
}

// Sweep performs one cleanup pass as a single transaction. Reservations go
// first so their users become orphans before the orphan passes run.
func (rs *RetentionSweeper) Sweep(now time.Time) error {
	cutoff := now.AddDate(0, 0, -rs.RetentionDays).Format("2006-01-02")

	return rs.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("date < ?", cutoff).Delete(&models.Reservation{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			utils.InfoLogger.Printf("Retention sweep removed %d reservations older than %s", res.RowsAffected, cutoff)
		}

		// A NULL user_id (flat-era row not yet migrated) would poison the
		// NOT IN comparison and keep every user alive.
		if err := tx.Where("id NOT IN (?)",
			tx.Session(&gorm.Session{NewDB: true}).Model(&models.Reservation{}).Select("user_id").Where("user_id IS NOT NULL"),
		).Delete(&models.User{}).Error; err != nil {
			return err
		}

		if err := tx.Where("id NOT IN (?)",
			tx.Session(&gorm.Session{NewDB: true}).Model(&models.User{}).Select("email_id").Where("email_id IS NOT NULL"),
		).Delete(&models.Email{}).Error; err != nil {
			return err
		}

		return tx.Where("id NOT IN (?)",
			tx.Session(&gorm.Session{NewDB: true}).Model(&models.User{}).Select("phone_id").Where("phone_id IS NOT NULL"),
		).Delete(&models.Phone{}).Error
	})
}

package database

import (
	"strings"

	"github.com/THEBEST7192/Katta-Helse/models"
	"github.com/THEBEST7192/Katta-Helse/utils"
	"gorm.io/gorm"
)

// flatRow mirrors the first-generation reservations table, where requester
// name and contact lived directly on the reservation.
type flatRow struct {
	ID    uint
	Name  string
	Email string
}

// MigrateLegacySchema lifts rows out of the old flat reservations table into
// the normalized users/emails/phones schema, then drops the orphaned columns.
// Runs after AutoMigrate and is a no-op on an already-normalized database.
func MigrateLegacySchema(db *gorm.DB) error {
	m := db.Migrator()
	if !m.HasColumn(&models.Reservation{}, "email") {
		return nil
	}

	var rows []flatRow
	if err := db.Table("reservations").
		Select("id, name, email").
		Where("user_id IS NULL OR user_id = 0").
		Scan(&rows).Error; err != nil {
		return err
	}

	if len(rows) > 0 {
		err := db.Transaction(func(tx *gorm.DB) error {
			for _, row := range rows {
				user := models.User{Name: row.Name}

				if strings.Contains(row.Email, "@") {
					email := models.Email{Address: row.Email}
					if err := tx.Where(models.Email{Address: row.Email}).FirstOrCreate(&email).Error; err != nil {
						return err
					}
					user.EmailID = &email.ID
				} else {
					phone := models.Phone{Number: row.Email}
					if err := tx.Where(models.Phone{Number: row.Email}).FirstOrCreate(&phone).Error; err != nil {
						return err
					}
					user.PhoneID = &phone.ID
				}

				if err := tx.Create(&user).Error; err != nil {
					return err
				}
				if err := tx.Model(&models.Reservation{}).
					Where("id = ?", row.ID).
					Update("user_id", user.ID).Error; err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return err
		}
		utils.InfoLogger.Printf("Migrated %d legacy flat reservations into normalized schema", len(rows))
	}

	for _, column := range []string{"name", "email"} {
		if m.HasColumn(&models.Reservation{}, column) {
			if err := m.DropColumn(&models.Reservation{}, column); err != nil {
				return err
			}
		}
	}
	return nil
}

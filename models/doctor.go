package models

import "time"

// Doctor is a staff credential. Rows are provisioned out of band (or via the
// startup seed); the API only ever reads them.
type Doctor struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"type:varchar(255); unique; not null" json:"username"`
	PasswordHash string    `gorm:"type:varchar(255); not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

package models

import "time"

// Reservation stores the booked slot. Date is "YYYY-MM-DD" and Time is "HH:MM"
// so ordering and range filters stay lexicographic on both mysql and sqlite.
type Reservation struct {
	ID uint `gorm:"primaryKey" json:"id"`
	// UserID stays nullable at the schema level so the column can be added
	// to a populated flat-era table before the legacy migration fills it.
	UserID    uint      `gorm:"index" json:"user_id"`
	Date      string    `gorm:"type:varchar(10); not null; index" json:"date"`
	Time      string    `gorm:"type:varchar(5); not null" json:"time"`
	Message   string    `gorm:"type:text" json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

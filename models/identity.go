package models

// Email is a normalized contact row, unique on the address. Kept alive only
// while at least one User references it; the retention sweeper removes orphans.
type Email struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Address string `gorm:"type:varchar(255); unique; not null" json:"address"`
}

// Phone is the counterpart for contacts without an "@".
type Phone struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	Number string `gorm:"type:varchar(64); unique; not null" json:"number"`
}

// User ties a requester name to at most one Email and one Phone. A fresh User
// row is created per reservation, so the same person may own several rows.
type User struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Name    string `gorm:"type:varchar(255); not null" json:"name"`
	EmailID *uint  `gorm:"index" json:"email_id,omitempty"`
	PhoneID *uint  `gorm:"index" json:"phone_id,omitempty"`
}

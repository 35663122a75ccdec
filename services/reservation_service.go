package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/THEBEST7192/Katta-Helse/models"
	"gorm.io/gorm"
)

type ReservationService struct {
	DB *gorm.DB
}

func NewReservationService(db *gorm.DB) *ReservationService {
	return &ReservationService{DB: db}
}

// ReservationDetail is the identity-joined row shown to staff. The contact
// value keeps the "email" key on the wire even when it holds a phone number,
// matching what the frontend has always consumed.
type ReservationDetail struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Date      string    `json:"date"`
	Time      string    `json:"time"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// PublicSlot is the stripped public view: when, never who.
type PublicSlot struct {
	Date string `json:"date"`
	Time string `json:"time"`
}

// Create books a slot. The contact is classified as email or phone by the
// presence of "@", the identity row is upserted on its unique value, and a
// fresh User row is created per reservation. All three writes share one
// transaction.
func (s *ReservationService) Create(name, contact, date, clock, message string) (*ReservationDetail, error) {
	var created models.Reservation

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		user := models.User{Name: name}

		if strings.Contains(contact, "@") {
			email := models.Email{Address: contact}
			if err := tx.Where(models.Email{Address: contact}).FirstOrCreate(&email).Error; err != nil {
				// A concurrent insert of the same address wins the unique
				// constraint; the row exists now, so use it.
				if lookupErr := tx.Where("address = ?", contact).First(&email).Error; lookupErr != nil {
					return err
				}
			}
			user.EmailID = &email.ID
		} else {
			phone := models.Phone{Number: contact}
			if err := tx.Where(models.Phone{Number: contact}).FirstOrCreate(&phone).Error; err != nil {
				if lookupErr := tx.Where("number = ?", contact).First(&phone).Error; lookupErr != nil {
					return err
				}
			}
			user.PhoneID = &phone.ID
		}

		if err := tx.Create(&user).Error; err != nil {
			return err
		}

		created = models.Reservation{
			UserID:  user.ID,
			Date:    date,
			Time:    clock,
			Message: message,
		}
		return tx.Create(&created).Error
	})
	if err != nil {
		return nil, err
	}

	return &ReservationDetail{
		ID:        created.ID,
		Name:      name,
		Email:     contact,
		Date:      created.Date,
		Time:      created.Time,
		Message:   created.Message,
		CreatedAt: created.CreatedAt,
	}, nil
}

// upcomingFilter keeps reservations strictly in the future, plus today's from
// the current hour onwards. ISO strings compare lexicographically, so this
// works the same on mysql and sqlite.
func (s *ReservationService) upcomingFilter(tx *gorm.DB, now time.Time) *gorm.DB {
	today := now.Format("2006-01-02")
	hourFloor := fmt.Sprintf("%02d:00", now.Hour())
	return tx.Where("reservations.date > ? OR (reservations.date = ? AND reservations.time >= ?)",
		today, today, hourFloor)
}

// ListUpcoming returns upcoming reservations ordered by date then time,
// joined with requester identity for the staff view.
func (s *ReservationService) ListUpcoming(now time.Time) ([]ReservationDetail, error) {
	rows := []ReservationDetail{}
	err := s.upcomingFilter(s.DB.Table("reservations"), now).
		Select("reservations.id, users.name, COALESCE(emails.address, phones.number, '') AS email, " +
			"reservations.date, reservations.time, reservations.message, reservations.created_at").
		Joins("JOIN users ON users.id = reservations.user_id").
		Joins("LEFT JOIN emails ON emails.id = users.email_id").
		Joins("LEFT JOIN phones ON phones.id = users.phone_id").
		Order("reservations.date ASC, reservations.time ASC").
		Scan(&rows).Error
	return rows, err
}

// ListUpcomingPublic returns the same window as ListUpcoming but only the
// occupied slots, with no personal data.
func (s *ReservationService) ListUpcomingPublic(now time.Time) ([]PublicSlot, error) {
	slots := []PublicSlot{}
	err := s.upcomingFilter(s.DB.Model(&models.Reservation{}), now).
		Select("reservations.date, reservations.time").
		Order("reservations.date ASC, reservations.time ASC").
		Scan(&slots).Error
	return slots, err
}

// CountDoctors reports how many staff credentials exist; zero means login is
// in the not-configured state.
func (s *ReservationService) CountDoctors() (int64, error) {
	var count int64
	err := s.DB.Model(&models.Doctor{}).Count(&count).Error
	return count, err
}

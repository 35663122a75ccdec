package services

import (
	"errors"

	"github.com/THEBEST7192/Katta-Helse/models"
	"github.com/THEBEST7192/Katta-Helse/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	// ErrNotConfigured means no staff credential exists at all; the client
	// should show a setup-required message instead of a login form.
	ErrNotConfigured = errors.New("no doctors configured")
	// ErrInvalidCredentials covers both unknown username and wrong password.
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// dummyHash keeps the bcrypt cost constant for unknown usernames.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

type DoctorAuthService struct {
	DB *gorm.DB
}

func NewDoctorAuthService(db *gorm.DB) *DoctorAuthService {
	return &DoctorAuthService{DB: db}
}

// Verify checks a username/password pair against the stored bcrypt hash.
// Returns ErrNotConfigured when zero doctors exist, ErrInvalidCredentials on
// any mismatch, and the doctor row on success.
func (s *DoctorAuthService) Verify(username, password string) (*models.Doctor, error) {
	var count int64
	if err := s.DB.Model(&models.Doctor{}).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, ErrNotConfigured
	}

	var doctor models.Doctor
	if err := s.DB.Where("username = ?", username).First(&doctor).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(password))
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(doctor.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return &doctor, nil
}

// SeedDoctor provisions the initial credential from the environment when the
// doctors table is still empty. No-op otherwise; the API never writes doctors.
func (s *DoctorAuthService) SeedDoctor(username, password string) error {
	if username == "" || password == "" {
		return nil
	}

	var count int64
	if err := s.DB.Model(&models.Doctor{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	doctor := models.Doctor{Username: username, PasswordHash: string(hashed)}
	if err := s.DB.Create(&doctor).Error; err != nil {
		return err
	}
	utils.InfoLogger.Printf("Seeded doctor credential for %s", username)
	return nil
}

package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/THEBEST7192/Katta-Helse/models"
	"github.com/THEBEST7192/Katta-Helse/services"
)

func TestVerifyNotConfigured(t *testing.T) {
	db := setupTestDB(t)
	gate := services.NewDoctorAuthService(db)

	_, err := gate.Verify("doktor", "hemmelig")
	assert.ErrorIs(t, err, services.ErrNotConfigured)
}

func TestVerifyOutcomes(t *testing.T) {
	db := setupTestDB(t)
	gate := services.NewDoctorAuthService(db)
	require.NoError(t, gate.SeedDoctor("doktor", "hemmelig"))

	doctor, err := gate.Verify("doktor", "hemmelig")
	require.NoError(t, err)
	assert.Equal(t, "doktor", doctor.Username)

	_, err = gate.Verify("doktor", "feil")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)

	// Unknown username must be indistinguishable from a wrong password.
	_, err = gate.Verify("ukjent", "hemmelig")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
}

func TestSeedDoctorIsProvisioningOnly(t *testing.T) {
	db := setupTestDB(t)
	gate := services.NewDoctorAuthService(db)

	// Empty credentials skip seeding entirely.
	require.NoError(t, gate.SeedDoctor("", ""))
	var count int64
	db.Model(&models.Doctor{}).Count(&count)
	assert.Equal(t, int64(0), count)

	require.NoError(t, gate.SeedDoctor("doktor", "hemmelig"))
	// A second seed with a doctor present is a no-op.
	require.NoError(t, gate.SeedDoctor("annen", "passord"))

	db.Model(&models.Doctor{}).Count(&count)
	assert.Equal(t, int64(1), count)

	var doctor models.Doctor
	require.NoError(t, db.First(&doctor).Error)
	assert.Equal(t, "doktor", doctor.Username)
	// Stored value is a bcrypt hash, never the plain password.
	assert.NotEqual(t, "hemmelig", doctor.PasswordHash)
	assert.Contains(t, doctor.PasswordHash, "$2a$")
}

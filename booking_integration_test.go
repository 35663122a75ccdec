package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/THEBEST7192/Katta-Helse/config"
	"github.com/THEBEST7192/Katta-Helse/models"
	"github.com/THEBEST7192/Katta-Helse/router"
	"github.com/THEBEST7192/Katta-Helse/services"
	"github.com/THEBEST7192/Katta-Helse/utils"
)

func TestMain(m *testing.M) {
	utils.InitLogger()
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func setupIntegration(t *testing.T) (*gorm.DB, *gin.Engine) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Email{},
		&models.Phone{},
		&models.User{},
		&models.Reservation{},
		&models.Doctor{},
	))

	cfg := &config.Config{
		AllowedOrigins: []string{"http://localhost:8001"},
		RetentionDays:  1,
	}
	return db, router.SetupRouter(cfg, db)
}

func doRequest(t *testing.T, r *gin.Engine, method, path string, payload interface{}, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var body *bytes.Buffer
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, path, body)
	require.NoError(t, err)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// nextThursday picks a Thursday at least two days out so the upcoming-window
// filter always includes it.
func nextThursday() string {
	d := time.Now().AddDate(0, 0, 2)
	for d.Weekday() != time.Thursday {
		d = d.AddDate(0, 0, 1)
	}
	return d.Format("2006-01-02")
}

// TestBookingEndToEnd walks the whole flow: book a valid slot, get rejected
// on an out-of-hours slot, read the public calendar, then unlock the staff
// view via login.
func TestBookingEndToEnd(t *testing.T) {
	db, r := setupIntegration(t)
	require.NoError(t, services.NewDoctorAuthService(db).SeedDoctor("doktor", "hemmelig"))

	thursday := nextThursday()

	// Thursday 14:00 is the inclusive closing boundary.
	w := doRequest(t, r, http.MethodPost, "/api/reservations", map[string]string{
		"name":    "Ola Nordmann",
		"email":   "ola@example.com",
		"date":    thursday,
		"time":    "14:00",
		"message": "halsbetennelse",
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	// Thursday 14:15 is past closing.
	w = doRequest(t, r, http.MethodPost, "/api/reservations", map[string]string{
		"name":  "Kari Nordmann",
		"email": "kari@example.com",
		"date":  thursday,
		"time":  "14:15",
	}, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)

	// Public calendar shows the slot but no personal data.
	w = doRequest(t, r, http.MethodGet, "/api/reservations/public", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var slots []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &slots))
	require.Len(t, slots, 1)
	assert.Equal(t, thursday, slots[0]["date"])
	assert.Equal(t, "14:00", slots[0]["time"])
	assert.NotContains(t, slots[0], "name")
	assert.NotContains(t, slots[0], "email")

	// Staff view stays closed without credentials.
	w = doRequest(t, r, http.MethodGet, "/api/reservations", nil, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.NotContains(t, w.Body.String(), "ola@example.com")

	// Login, then read the identity-joined staff view with the token.
	w = doRequest(t, r, http.MethodPost, "/api/login", map[string]string{
		"username": "doktor",
		"password": "hemmelig",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var loginResp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &loginResp))
	assert.Equal(t, true, loginResp["success"])
	token := loginResp["token"].(string)

	w = doRequest(t, r, http.MethodGet, "/api/reservations", nil, map[string]string{
		"Authorization": "Bearer " + token,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var rows []services.ReservationDetail
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "Ola Nordmann", rows[0].Name)
	assert.Equal(t, "ola@example.com", rows[0].Email)
	assert.Equal(t, "halsbetennelse", rows[0].Message)
}

func TestCORSPreflight(t *testing.T) {
	_, r := setupIntegration(t)

	w := doRequest(t, r, http.MethodOptions, "/api/reservations", nil, map[string]string{
		"Origin": "http://localhost:8001",
	})
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:8001", w.Header().Get("Access-Control-Allow-Origin"))

	w = doRequest(t, r, http.MethodOptions, "/api/reservations", nil, map[string]string{
		"Origin": "http://evil.example.com",
	})
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestStrictRateLimitOnLogin(t *testing.T) {
	db, r := setupIntegration(t)
	require.NoError(t, services.NewDoctorAuthService(db).SeedDoctor("doktor", "hemmelig"))

	limited := false
	for i := 0; i < 15; i++ {
		w := doRequest(t, r, http.MethodPost, "/api/login", map[string]string{
			"username": "doktor",
			"password": "feil",
		}, nil)
		if w.Code == http.StatusTooManyRequests {
			limited = true
			break
		}
	}
	assert.True(t, limited, "expected the strict limiter to trip within 15 attempts")
}

func TestPing(t *testing.T) {
	_, r := setupIntegration(t)

	w := doRequest(t, r, http.MethodGet, "/ping", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "pong")
}

package utils

import (
	"errors"
	"os"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	jwtSecret     []byte
	jwtSecretOnce sync.Once
)

// secret is resolved lazily so a JWT_SECRET from .env is seen even though
// godotenv only loads after package init.
func secret() []byte {
	jwtSecretOnce.Do(func() {
		s := os.Getenv("JWT_SECRET")
		if s == "" {
			// Development fallback, override via .env in any real deployment.
			s = "KattaHelseDevSecret"
		}
		jwtSecret = []byte(s)
	})
	return jwtSecret
}

// DoctorClaims is the payload of the session token handed out by /api/login.
type DoctorClaims struct {
	DoctorID uint   `json:"doctor_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

func GenerateToken(doctorID uint, username string) (string, error) {
	claims := &DoctorClaims{
		DoctorID: doctorID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(12 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "katta-helse",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret())
}

func ParseToken(tokenString string) (*DoctorClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &DoctorClaims{}, func(token *jwt.Token) (interface{}, error) {
		return secret(), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !token.Valid {
		return nil, errors.New("invalid or expired token")
	}

	claims, ok := token.Claims.(*DoctorClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

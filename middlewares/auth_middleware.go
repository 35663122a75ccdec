package middlewares

import (
	"errors"
	"net/http"
	"strings"

	"github.com/THEBEST7192/Katta-Helse/services"
	"github.com/THEBEST7192/Katta-Helse/utils"
	"github.com/gin-gonic/gin"
)

// StaffAuthMiddleware guards staff-only endpoints. It accepts either the
// session token from /api/login as a Bearer header, or raw x-username and
// x-password headers verified against the gate. Anything else fails closed.
func StaffAuthMiddleware(gate *services.DoctorAuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			claims, err := utils.ParseToken(tokenString)
			if err != nil {
				utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid or expired token"))
				c.Abort()
				return
			}
			c.Set("doctor_id", claims.DoctorID)
			c.Set("doctor_username", claims.Username)
			c.Next()
			return
		}

		username := c.GetHeader("x-username")
		password := c.GetHeader("x-password")
		if username == "" && password == "" {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("credentials required"))
			c.Abort()
			return
		}

		doctor, err := gate.Verify(username, password)
		if err != nil {
			if errors.Is(err, services.ErrNotConfigured) || errors.Is(err, services.ErrInvalidCredentials) {
				utils.RespondError(c, http.StatusUnauthorized, errors.New("unauthorized"))
			} else {
				utils.ErrorLogger.Printf("Staff auth check failed: %v", err)
				utils.RespondError(c, http.StatusInternalServerError, errors.New("internal server error"))
			}
			c.Abort()
			return
		}

		c.Set("doctor_id", doctor.ID)
		c.Set("doctor_username", doctor.Username)
		c.Next()
	}
}

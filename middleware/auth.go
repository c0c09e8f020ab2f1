package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	doctorRepo "medibook/database/repository/doctor"
	userRepo "medibook/database/repository/user"
	"medibook/utils"
)

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return "", false
	}
	token := strings.TrimPrefix(authHeader, "Bearer ")
	return token, token != ""
}

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
}

// JWTAuthUserMiddleware authenticates a patient token and pins it against
// the token hash stored on the account.
func JWTAuthUserMiddleware(repo userRepo.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			abortUnauthorized(c)
			return
		}

		subject, role, err := utils.ExtractClaimsFromToken(tokenString)
		if err != nil || subject == "" || role != "patient" {
			abortUnauthorized(c)
			return
		}

		usr, err := repo.GetByID(subject)
		if err != nil || usr == nil {
			abortUnauthorized(c)
			return
		}
		if usr.TokenHash == "" || usr.TokenHash != utils.HashToken(tokenString) {
			abortUnauthorized(c)
			return
		}

		c.Set("userID", subject)
		c.Next()
	}
}

// JWTAuthDoctorMiddleware authenticates a doctor token the same way.
func JWTAuthDoctorMiddleware(repo doctorRepo.DoctorRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			abortUnauthorized(c)
			return
		}

		subject, role, err := utils.ExtractClaimsFromToken(tokenString)
		if err != nil || subject == "" || role != "doctor" {
			abortUnauthorized(c)
			return
		}

		doc, err := repo.GetByID(subject)
		if err != nil || doc == nil {
			abortUnauthorized(c)
			return
		}
		if doc.TokenHash == "" || doc.TokenHash != utils.HashToken(tokenString) {
			abortUnauthorized(c)
			return
		}

		c.Set("doctorID", subject)
		c.Next()
	}
}

// JWTAuthAdminMiddleware authenticates the admin console token. The admin
// account is configured, not stored, so only the role claim is checked.
func JWTAuthAdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			abortUnauthorized(c)
			return
		}

		_, role, err := utils.ExtractClaimsFromToken(tokenString)
		if err != nil || role != "admin" {
			abortUnauthorized(c)
			return
		}

		c.Next()
	}
}

package middleware

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/hakimfr/reservia/internal/helpers"
	"github.com/hakimfr/reservia/internal/models"
)

// JWTAuthMiddleware validates the bearer token and stores the caller's
// id and role in the request context. Services never read this ambient
// state; handlers extract it with CurrentUser and pass it explicitly.
func JWTAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			helpers.RespondWithError(c, http.StatusUnauthorized, "Missing or malformed authorization header.")
			c.Abort()
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		secret := os.Getenv("JWT_SECRET")
		token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			helpers.RespondWithError(c, http.StatusUnauthorized, "Invalid or expired token.")
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			helpers.RespondWithError(c, http.StatusUnauthorized, "Invalid token claims.")
			c.Abort()
			return
		}
		userIDStr, _ := claims["user_id"].(string)
		role, _ := claims["role"].(string)
		userID, err := uuid.Parse(userIDStr)
		if err != nil || role == "" {
			helpers.RespondWithError(c, http.StatusUnauthorized, "Invalid token claims.")
			c.Abort()
			return
		}

		c.Set("user_id", userID)
		c.Set("role", role)
		c.Next()
	}
}

// CurrentUser rebuilds the authenticated caller from the JWT claims set
// by JWTAuthMiddleware. The returned user carries what authorization
// checks need: id and role.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		return nil, false
	}
	role, exists := c.Get("role")
	if !exists {
		return nil, false
	}
	id, ok := userID.(uuid.UUID)
	if !ok {
		return nil, false
	}
	name, _ := role.(string)
	return &models.User{ID: id, Role: models.Role{Name: name}}, true
}

package middleware

import (
	"errors"
	"net/http"
	"os"
	"strings"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"

	"github.com/hands-live/api-go/utils"
)

// AuthMiddleware rejects requests without a valid bearer token and stores
// the caller's claims on the context.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := parseBearerToken(c.GetHeader("Authorization"))
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			c.Abort()
			return
		}

		c.Set(string(utils.UserContextKey), claims)
		c.Next()
	}
}

// OptionalAuthMiddleware stores claims when a valid token is present and
// lets anonymous requests through. Used on public reads that personalize
// their response for logged-in members.
func OptionalAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if authHeader := c.GetHeader("Authorization"); authHeader != "" {
			if claims, err := parseBearerToken(authHeader); err == nil {
				c.Set(string(utils.UserContextKey), claims)
			}
		}
		c.Next()
	}
}

func parseBearerToken(authHeader string) (*utils.UserClaims, error) {
	if authHeader == "" {
		return nil, errors.New("Authorization header is required")
	}

	bearerToken := strings.Split(authHeader, " ")
	if len(bearerToken) != 2 {
		return nil, errors.New("Invalid token format")
	}

	claims := jwt.MapClaims{}
	parsedToken, err := jwt.ParseWithClaims(bearerToken[1], claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !parsedToken.Valid {
		return nil, errors.New("Invalid token")
	}

	userID, ok := claims["user_id"].(float64)
	if !ok {
		return nil, errors.New("Invalid token claims")
	}
	role, ok := claims["role"].(string)
	if !ok {
		return nil, errors.New("Invalid token claims")
	}

	return &utils.UserClaims{UserID: uint(userID), Role: role}, nil
}

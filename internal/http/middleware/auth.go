package middleware

import (
	"context"
	"net/http"
	"strings"

	"lending_backend/internal/domain"
	"lending_backend/internal/service"

	"github.com/gin-gonic/gin"
)

// Context keys set by JWT
const (
	UserKey   = "user"
	UserIDKey = "user_id"
)

// UserFinder loads the principal named by a token
type UserFinder interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// JWT resolves the bearer token into the current user. Requests without a
// valid token or with an unknown or inactive user stop here with 401.
func JWT(users UserFinder) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := BearerToken(c.Request)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization required"})
			return
		}
		authenticate(c, users, token)
	}
}

// QueryJWT is JWT for clients that cannot set headers (websockets): the token
// comes from the "token" query parameter.
func QueryJWT(users UserFinder) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token required"})
			return
		}
		authenticate(c, users, token)
	}
}

func authenticate(c *gin.Context, users UserFinder, token string) {
	userID, err := service.ParseJWT(token)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	user, err := users.GetByID(c.Request.Context(), userID)
	if err != nil || user == nil || !user.IsActive {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	c.Set(UserKey, user)
	c.Set(UserIDKey, user.ID)
	c.Next()
}

// BearerToken extracts the token of an "Authorization: Bearer <token>" header
func BearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// CurrentUser returns the user stored by JWT
func CurrentUser(c *gin.Context) (*domain.User, bool) {
	v, ok := c.Get(UserKey)
	if !ok {
		return nil, false
	}
	u, ok := v.(*domain.User)
	return u, ok && u != nil
}

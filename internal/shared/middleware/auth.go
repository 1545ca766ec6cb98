package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/MiguelRodac/api-books/internal/shared/apperror"
	"github.com/MiguelRodac/api-books/internal/shared/response"
	"github.com/MiguelRodac/api-books/pkg/jwt"
)

// Context keys mà Auth gate set cho downstream handlers
const (
	CtxUserID = "userID"
	CtxEmail  = "userEmail"
	CtxToken  = "rawToken"
)

// Auth - guard xác thực JWT token cho mọi protected route
// Fail fast với 401 qua envelope, guarded handler không bao giờ chạy
func Auth(tokens *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Lấy token từ Authorization header
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.AbortError(c, apperror.Unauthorized("Token not provided"))
			return
		}

		// 2. Extract token từ "Bearer <token>"
		// Malformed nhưng non-empty header cũng không được bypass
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			response.AbortError(c, apperror.Unauthorized("Invalid authorization header format"))
			return
		}
		token := parts[1]

		// 3. Verify qua Token Manager
		claims, err := tokens.Verify(token)
		if err != nil {
			response.AbortError(c, apperror.Unauthorized("Invalid token"))
			return
		}

		userID, err := claims.Subject()
		if err != nil {
			response.AbortError(c, apperror.Unauthorized("Invalid token"))
			return
		}

		// 4. Attach identity vào gin context + request context
		c.Set(CtxUserID, userID)
		c.Set(CtxEmail, claims.Email)
		c.Set(CtxToken, token)

		ctx := context.WithValue(c.Request.Context(), auth{}, userID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

type auth struct{}

// UserIDFromContext lấy identity subject từ request context
func UserIDFromContext(ctx context.Context) (interface{}, bool) {
	v := ctx.Value(auth{})
	return v, v != nil
}

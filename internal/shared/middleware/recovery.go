package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/MiguelRodac/api-books/internal/shared/apperror"
	"github.com/MiguelRodac/api-books/internal/shared/response"
)

func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().
					Str("request_id", c.GetString("request_id")).
					Interface("error", err).
					Msg("Panic recovered")

				// Panics đi qua cùng envelope như mọi failure khác
				response.AbortError(c, apperror.Internal("Internal server error").
					Wrap(fmt.Errorf("panic: %v", err)))
			}
		}()

		c.Next()
	}
}

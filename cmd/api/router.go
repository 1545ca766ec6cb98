package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/MiguelRodac/api-books/internal/shared/middleware"
	"github.com/MiguelRodac/api-books/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	authGuard := middleware.Auth(c.JWTManager)

	v1 := router.Group("/api/v1")
	{
		// Health check
		v1.GET("/health", healthCheckHandler(c))

		setupAuthRoutes(v1, c, authGuard)
		setupUserRoutes(v1, c, authGuard)
		setupAuthorRoutes(v1, c, authGuard)
		setupBookRoutes(v1, c, authGuard)
		setupAdminRoutes(v1, c, authGuard)
	}

	return router
}

// ========================================
// AUTH ROUTES
// ========================================
// register/login public, phần còn lại sau auth gate
func setupAuthRoutes(v1 *gin.RouterGroup, c *container.Container, authGuard gin.HandlerFunc) {
	auth := v1.Group("/auth")
	{
		auth.POST("/register", c.UserHandler.Register)
		auth.POST("/login", c.UserHandler.Login)
		auth.GET("/me", authGuard, c.UserHandler.Me)
		auth.GET("/refresh", authGuard, c.UserHandler.Refresh)
		auth.POST("/logout", authGuard, c.UserHandler.Logout)
	}
}

// ========================================
// USER ROUTES
// ========================================
func setupUserRoutes(v1 *gin.RouterGroup, c *container.Container, authGuard gin.HandlerFunc) {
	users := v1.Group("/users")
	users.Use(authGuard)
	{
		users.GET("", c.UserHandler.Index)
		users.GET("/:id_user", c.UserHandler.Show)
		users.PUT("/:id_user", c.UserHandler.Update)
		users.DELETE("/:id_user", c.UserHandler.Destroy)
	}
}

// ========================================
// AUTHOR ROUTES
// ========================================
func setupAuthorRoutes(v1 *gin.RouterGroup, c *container.Container, authGuard gin.HandlerFunc) {
	authors := v1.Group("/authors")
	authors.Use(authGuard)
	{
		authors.GET("", c.AuthorHandler.Index)
		authors.POST("", c.AuthorHandler.Store)
		authors.GET("/:id_author", c.AuthorHandler.Show)
		authors.PUT("/:id_author", c.AuthorHandler.Update)
		authors.DELETE("/:id_author", c.AuthorHandler.Destroy)
		authors.GET("/:id_author/books", c.BookHandler.IndexByAuthor)
	}
}

// ========================================
// BOOK ROUTES
// ========================================
func setupBookRoutes(v1 *gin.RouterGroup, c *container.Container, authGuard gin.HandlerFunc) {
	books := v1.Group("/books")
	books.Use(authGuard)
	{
		books.GET("", c.BookHandler.Index)
		books.POST("", c.BookHandler.Store)
		books.GET("/:id_book", c.BookHandler.Show)
		books.PUT("/:id_book", c.BookHandler.Update)
		books.DELETE("/:id_book", c.BookHandler.Destroy)
	}
}

// ========================================
// ADMIN ROUTES
// ========================================
func setupAdminRoutes(v1 *gin.RouterGroup, c *container.Container, authGuard gin.HandlerFunc) {
	admin := v1.Group("/admin")
	admin.Use(authGuard)
	{
		admin.POST("/reconcile", c.AuthorHandler.TriggerReconcile)
	}
}

// ========================================
// HEALTH CHECK HANDLER
// ========================================
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
			"services":  gin.H{},
		}

		// Check database
		dbStatus := "ok"
		if appCtx.DB == nil || appCtx.DB.Pool == nil {
			dbStatus = "disconnected"
			health["status"] = "degraded"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.DB.HealthCheck(ctx); err != nil {
				dbStatus = fmt.Sprintf("error: %v", err)
				health["status"] = "degraded"
			}
		}

		// Check redis
		redisStatus := "ok"
		if appCtx.Cache == nil {
			redisStatus = "disconnected"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.Cache.Ping(ctx); err != nil {
				redisStatus = fmt.Sprintf("error: %v", err)
			}
		}

		health["services"] = gin.H{
			"database": dbStatus,
			"redis":    redisStatus,
		}

		statusCode := http.StatusOK
		if dbStatus != "ok" {
			statusCode = http.StatusServiceUnavailable
		}

		c.JSON(statusCode, health)
	}
}

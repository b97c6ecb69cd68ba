// Package app wires the HTTP routers for both services
package app

import (
	"fmt"
	"time"

	"taskhub/collab-api/app/root"
	"taskhub/collab-api/app/user"
	"taskhub/collab-api/config"
	"taskhub/collab-api/db"
	"taskhub/collab-api/internal"
	"taskhub/collab-api/internal/service"
	"taskhub/collab-api/pkg/middleware"
	"taskhub/collab-api/pkg/security"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const maxBodySize = 1 << 20 // 1 MiB, everything here is small JSON

// NewUsersRouter builds the users service: registration, login,
// verification, profile, password and session management
func NewUsersRouter(cfg *config.Config) (*gin.Engine, error) {
	d := &internal.Deps{Cfg: cfg}

	database, err := db.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database, %w", err)
	}
	d.DB = database

	d.Argon = security.NewArgon()
	d.Tokens = security.NewTokenIssuer(cfg, database)
	d.Mail = service.NewDispatcher(cfg)

	router := newEngine(cfg)

	jwt := middleware.NewJWTMiddleware(database, d.Tokens)
	rateLimiter := middleware.RateLimiterMiddleware(middleware.RateLimiterConfig{
		RequestsPerSecond: cfg.RateLimit,
		Burst:             cfg.RateLimit * 2,
	})

	m := router.Group("/api", rateLimiter, middleware.BodySizeLimiter(maxBodySize))
	{
		// HEAD /api/heartbeat		-> Used to check if the server is alive
		m.HEAD("/heartbeat", root.Heartbeat)

		// GET /api/validate		-> Validates a JWT access token
		m.GET("/validate", jwt, root.Validate)
	}

	u := m.Group("/users")
	{
		// POST /api/users			-> Registers a new user
		u.POST("", func(c *gin.Context) { user.UserRegister(c, d) })

		// POST /api/users/login		-> Logs in a user and returns a token pair
		u.POST("/login", func(c *gin.Context) { user.UserLogin(c, d) })

		// POST /api/users/verify		-> Checks a verification code
		u.POST("/verify", func(c *gin.Context) { user.UserVerify(c, d) })

		// POST /api/users/token/refresh	-> Mints a new access token
		u.POST("/token/refresh", func(c *gin.Context) { user.UserTokenRefresh(c, d) })

		// POST /api/users/logout		-> Blacklists a refresh token
		u.POST("/logout", jwt, func(c *gin.Context) { user.UserLogout(c, d) })

		// POST /api/users/change-password	-> Swaps the stored password hash
		u.POST("/change-password", jwt, func(c *gin.Context) { user.UserChangePassword(c, d) })

		// GET /api/users/me			-> Returns the basic info of the caller
		u.GET("/me", jwt, func(c *gin.Context) { user.UserFetch(c, d) })

		// GET  /api/users/profile		-> Returns the caller's profile
		// PUT  /api/users/profile		-> Partially updates the caller's profile
		u.GET("/profile", jwt, func(c *gin.Context) { user.ProfileFetch(c, d) })
		u.PUT("/profile", jwt, func(c *gin.Context) { user.ProfileUpdate(c, d) })

		// GET /api/users			-> Lists users with filters
		u.GET("", jwt, func(c *gin.Context) { user.UserList(c, d) })

		// GET /api/users/:id			-> Returns a single user
		u.GET("/:id", jwt, func(c *gin.Context) { user.UserDetails(c, d) })
	}

	// Abandoned codes get a week, dead blacklist rows a day
	service.CodeCleanup(time.Hour*24, time.Hour*24*7, database)
	service.TokenCleanup(time.Hour*24, database)

	return router, nil
}

func newEngine(cfg *config.Config) *gin.Engine {
	router := gin.New()

	router.Use(
		cors.New(cors.Config{
			AllowOrigins:     cfg.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
		ginzap.RecoveryWithZap(zap.L(), true),
		middleware.NewRequestIDMiddleware(),
		ginzap.Ginzap(zap.L(), time.RFC3339, true),
	)

	router.HandleMethodNotAllowed = true

	return router
}

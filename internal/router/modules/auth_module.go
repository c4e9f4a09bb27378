package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fretops/fretops-api/internal/container"
	handlers "github.com/fretops/fretops-api/internal/interface/http"
	"github.com/fretops/fretops-api/internal/interface/middleware"
	"github.com/fretops/fretops-api/pkg/helpers"
)

// AuthModule wires account routes.
// Public: POST /api/auth/register, POST /api/auth/login, POST /api/auth/refresh
// Protected: POST /api/auth/logout, GET /api/auth/profile
type AuthModule struct {
	Handler *handlers.AuthHandler
	JWT     *helpers.JWTManager
}

func NewAuthModule(h *handlers.AuthHandler, jwt *helpers.JWTManager) *AuthModule {
	return &AuthModule{Handler: h, JWT: jwt}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	registerLimiter := middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByIPAndPath())
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP())
	refreshLimiter := middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByIP())

	rg.POST("/auth/register", registerLimiter, m.Handler.Register)
	rg.POST("/auth/login", loginLimiter, m.Handler.Login)
	rg.POST("/auth/refresh", refreshLimiter, m.Handler.Refresh)

	auth := rg.Group("/auth")
	auth.Use(middleware.Auth(container.GetRedis(), m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID()))
	{
		auth.POST("/logout", m.Handler.Logout)
		auth.GET("/profile", m.Handler.Profile)
	}
}

package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fretops/fretops-api/internal/container"
	handlers "github.com/fretops/fretops-api/internal/interface/http"
	"github.com/fretops/fretops-api/internal/interface/middleware"
	"github.com/fretops/fretops-api/pkg/helpers"
)

// UploadModule exposes the authenticated attachment upload endpoint.
type UploadModule struct {
	Handler *handlers.UploadHandler
	JWT     *helpers.JWTManager
}

func NewUploadModule(h *handlers.UploadHandler, jwt *helpers.JWTManager) *UploadModule {
	return &UploadModule{Handler: h, JWT: jwt}
}

func (m *UploadModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/uploads")
	g.Use(middleware.Auth(container.GetRedis(), m.JWT))
	g.Use(middleware.RateLimit(container.GetRedis(), 30, time.Minute, middleware.KeyByUserID()))
	g.POST("", m.Handler.Upload)
}

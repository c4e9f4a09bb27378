package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/fretops/fretops-api/internal/interface/http"
)

// HealthModule exposes the service and database liveness endpoints.
type HealthModule struct {
	Handler *handlers.HealthHandler
}

func NewHealthModule(h *handlers.HealthHandler) *HealthModule {
	return &HealthModule{Handler: h}
}

func (m *HealthModule) Register(rg *gin.RouterGroup) {
	rg.GET("/health", m.Handler.Liveness)
	rg.GET("/database-health", m.Handler.DatabaseHealth)
}

package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/fretops/fretops-api/internal/interface/http"
)

// SettingsModule exposes the per-user preferences.
type SettingsModule struct {
	Handler *handlers.SettingsHandler
}

func NewSettingsModule(h *handlers.SettingsHandler) *SettingsModule {
	return &SettingsModule{Handler: h}
}

func (m *SettingsModule) Register(rg *gin.RouterGroup) {
	rg.GET("/user-settings/:userId", m.Handler.Get)
	rg.POST("/user-settings/:userId", writeLimiter(), m.Handler.Save)
}

package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/fretops/fretops-api/internal/interface/http"
)

// DevisModule exposes quotes; creation goes through the notifying handler.
type DevisModule struct {
	Handler *handlers.DevisHandler
}

func NewDevisModule(h *handlers.DevisHandler) *DevisModule {
	return &DevisModule{Handler: h}
}

func (m *DevisModule) Register(rg *gin.RouterGroup) {
	registerCrud(rg.Group("/devis"), m.Handler.CrudHandler, m.Handler.Create)
}

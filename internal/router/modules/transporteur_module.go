package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/fretops/fretops-api/internal/interface/http"
)

// TransporteurModule exposes the carrier CRUD surface plus type, zone and
// capacity lookups.
type TransporteurModule struct {
	Handler *handlers.TransporteurHandler
}

func NewTransporteurModule(h *handlers.TransporteurHandler) *TransporteurModule {
	return &TransporteurModule{Handler: h}
}

func (m *TransporteurModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/transporteurs")
	g.GET("/types", m.Handler.Types)
	g.GET("/zones", m.Handler.Zones)
	g.GET("/type/:type", m.Handler.FindByType)
	g.GET("/zone/:zone", m.Handler.FindByZone)
	g.GET("/capacite", m.Handler.FindByCapacite)
	g.GET("/stats/type", m.Handler.StatsByType)
	registerCrud(g, m.Handler.CrudHandler, nil)
}

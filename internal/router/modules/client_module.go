package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/fretops/fretops-api/internal/interface/http"
)

// ClientModule exposes the client CRUD surface plus the sector, size, status
// and VIP lookups.
type ClientModule struct {
	Handler *handlers.ClientHandler
}

func NewClientModule(h *handlers.ClientHandler) *ClientModule {
	return &ClientModule{Handler: h}
}

func (m *ClientModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/clients")
	g.GET("/secteurs", m.Handler.Secteurs)
	g.GET("/secteur/:secteur", m.Handler.FindBySecteur)
	g.GET("/taille/:taille", m.Handler.FindByTaille)
	g.GET("/statut/:statut", m.Handler.FindByStatut)
	g.GET("/vip", m.Handler.FindVIP)
	g.GET("/stats/secteur", m.Handler.StatsBySecteur)
	g.GET("/stats/taille", m.Handler.StatsByTaille)
	registerCrud(g, m.Handler.CrudHandler, nil)
}

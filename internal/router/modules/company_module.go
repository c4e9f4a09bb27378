package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/fretops/fretops-api/internal/interface/http"
)

// CompanyModule exposes the company information sheet: the standard entity
// routes plus the phone and logo lookups the frontend uses.
type CompanyModule struct {
	Handler *handlers.CompanyHandler
}

func NewCompanyModule(h *handlers.CompanyHandler) *CompanyModule {
	return &CompanyModule{Handler: h}
}

func (m *CompanyModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/company")
	registerCrud(g, m.Handler.CrudHandler, m.Handler.Create)
	g.GET("/phone", m.Handler.Phone)
	g.GET("/:id/logo", m.Handler.Logo)
}

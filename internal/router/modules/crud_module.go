package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fretops/fretops-api/internal/container"
	handlers "github.com/fretops/fretops-api/internal/interface/http"
	"github.com/fretops/fretops-api/internal/interface/middleware"
)

// writeLimiter throttles mutating endpoints per IP. It is a no-op when Redis
// is not configured.
func writeLimiter() gin.HandlerFunc {
	return middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByIP())
}

// registerCrud mounts the standard entity routes on a group. Static segments
// (stats, bulk, health) are declared alongside the :id parameter, Gin resolves
// them before the parameter route.
func registerCrud(g *gin.RouterGroup, h *handlers.CrudHandler, create gin.HandlerFunc) {
	wl := writeLimiter()
	if create == nil {
		create = h.Create
	}
	g.POST("", wl, create)
	g.GET("", h.FindAll)
	g.GET("/stats", h.Stats)
	g.GET("/health", h.Health)
	g.POST("/bulk", wl, h.BulkCreate)
	g.GET("/:id", h.FindByID)
	g.PUT("/:id", wl, h.Update)
	g.DELETE("/:id", wl, h.Delete)
}

// CrudModule exposes the plain CRUD surface of one entity.
type CrudModule struct {
	Prefix  string
	Handler *handlers.CrudHandler
}

func NewCrudModule(prefix string, h *handlers.CrudHandler) *CrudModule {
	return &CrudModule{Prefix: prefix, Handler: h}
}

func (m *CrudModule) Register(rg *gin.RouterGroup) {
	registerCrud(rg.Group("/"+m.Prefix), m.Handler, nil)
}

package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fretops/fretops-api/internal/container"
	handlers "github.com/fretops/fretops-api/internal/interface/http"
	"github.com/fretops/fretops-api/internal/interface/middleware"
)

// MessageModule exposes contact messages. Creation is public and tighter
// rate-limited, it feeds the contact form.
type MessageModule struct {
	Handler *handlers.MessageHandler
}

func NewMessageModule(h *handlers.MessageHandler) *MessageModule {
	return &MessageModule{Handler: h}
}

func (m *MessageModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/messages")
	contactLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath())
	g.POST("", contactLimiter, m.Handler.Create)

	h := m.Handler.CrudHandler
	wl := writeLimiter()
	g.GET("", h.FindAll)
	g.GET("/stats", h.Stats)
	g.GET("/health", h.Health)
	g.POST("/bulk", wl, h.BulkCreate)
	g.GET("/:id", h.FindByID)
	g.PUT("/:id", wl, h.Update)
	g.DELETE("/:id", wl, h.Delete)
}

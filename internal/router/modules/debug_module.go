package modules

import (
	"expvar"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fretops/fretops-api/internal/container"
	"github.com/fretops/fretops-api/internal/interface/middleware"
)

// DebugModule publishes process counters through expvar.
type DebugModule struct{}

func NewDebugModule() *DebugModule { return &DebugModule{} }

func (m *DebugModule) Register(rg *gin.RouterGroup) {
	rl := middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByIP())
	rg.GET("/debug/vars", rl, gin.WrapH(expvar.Handler()))
}

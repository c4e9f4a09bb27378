package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/fretops/fretops-api/internal/interface/http"
)

// NoteModule exposes the per-user notepad.
type NoteModule struct {
	Handler *handlers.NoteHandler
}

func NewNoteModule(h *handlers.NoteHandler) *NoteModule {
	return &NoteModule{Handler: h}
}

func (m *NoteModule) Register(rg *gin.RouterGroup) {
	rg.GET("/notes/:userId", m.Handler.Get)
	rg.POST("/notes/:userId", writeLimiter(), m.Handler.Save)
}

package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/fretops/fretops-api/internal/domain/entity"
)

// ClientHandler adds the client-specific lookups on top of the generic CRUD
// surface.
type ClientHandler struct {
	*CrudHandler
}

func NewClientHandler(crud *CrudHandler) *ClientHandler {
	return &ClientHandler{CrudHandler: crud}
}

func (h *ClientHandler) FindBySecteur(c *gin.Context) {
	res := entity.ClientsBySecteur(c.Request.Context(), h.Store, c.Param("secteur"))
	h.Respond(c, res, http.StatusOK)
}

func (h *ClientHandler) FindByTaille(c *gin.Context) {
	res := entity.ClientsByTaille(c.Request.Context(), h.Store, c.Param("taille"))
	h.Respond(c, res, http.StatusOK)
}

func (h *ClientHandler) FindByStatut(c *gin.Context) {
	res := entity.ClientsByStatut(c.Request.Context(), h.Store, c.Param("statut"))
	h.Respond(c, res, http.StatusOK)
}

// FindVIP lists clients whose order history reaches the threshold (default 10).
func (h *ClientHandler) FindVIP(c *gin.Context) {
	seuil := 10
	if v, err := strconv.Atoi(c.Query("seuil")); err == nil && v > 0 {
		seuil = v
	}
	res := entity.ClientsVIP(c.Request.Context(), h.Store, seuil)
	h.Respond(c, res, http.StatusOK)
}

func (h *ClientHandler) StatsBySecteur(c *gin.Context) {
	h.Respond(c, h.Store.CountByField(c.Request.Context(), "secteurActivite", false), http.StatusOK)
}

func (h *ClientHandler) StatsByTaille(c *gin.Context) {
	h.Respond(c, h.Store.CountByField(c.Request.Context(), "tailleEntreprise", false), http.StatusOK)
}

func (h *ClientHandler) Secteurs(c *gin.Context) {
	h.Respond(c, h.Store.DistinctNonEmpty(c.Request.Context(), "secteurActivite"), http.StatusOK)
}

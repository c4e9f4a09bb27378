package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/fretops/fretops-api/internal/domain/entity"
)

// TransporteurHandler adds the carrier-specific lookups on top of the generic
// CRUD surface.
type TransporteurHandler struct {
	*CrudHandler
}

func NewTransporteurHandler(crud *CrudHandler) *TransporteurHandler {
	return &TransporteurHandler{CrudHandler: crud}
}

func (h *TransporteurHandler) FindByType(c *gin.Context) {
	res := entity.TransporteursByType(c.Request.Context(), h.Store, c.Param("type"))
	h.Respond(c, res, http.StatusOK)
}

func (h *TransporteurHandler) FindByZone(c *gin.Context) {
	res := entity.TransporteursByZone(c.Request.Context(), h.Store, c.Param("zone"))
	h.Respond(c, res, http.StatusOK)
}

// FindByCapacite filters by capacity range; capaciteMin and capaciteMax are
// optional and combine into an open or closed interval.
func (h *TransporteurHandler) FindByCapacite(c *gin.Context) {
	min, _ := strconv.Atoi(c.Query("capaciteMin"))
	max, _ := strconv.Atoi(c.Query("capaciteMax"))
	res := entity.TransporteursByCapacite(c.Request.Context(), h.Store, min, max)
	h.Respond(c, res, http.StatusOK)
}

func (h *TransporteurHandler) StatsByType(c *gin.Context) {
	h.Respond(c, h.Store.CountByField(c.Request.Context(), "typesTransport", true), http.StatusOK)
}

func (h *TransporteurHandler) Types(c *gin.Context) {
	h.Respond(c, h.Store.DistinctNonEmpty(c.Request.Context(), "typesTransport"), http.StatusOK)
}

func (h *TransporteurHandler) Zones(c *gin.Context) {
	h.Respond(c, h.Store.DistinctNonEmpty(c.Request.Context(), "zonesGeographiques"), http.StatusOK)
}

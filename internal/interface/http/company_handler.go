package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/fretops/fretops-api/internal/store"
	"github.com/fretops/fretops-api/pkg/response"
)

// CompanyHandler serves the company's own information sheet. The sheet is a
// singleton: Create refuses a second document, the frontend edits the
// existing one instead.
type CompanyHandler struct {
	*CrudHandler
}

func NewCompanyHandler(crud *CrudHandler) *CompanyHandler {
	return &CompanyHandler{CrudHandler: crud}
}

// Create rejects the request with a 409 when a sheet already exists.
func (h *CompanyHandler) Create(c *gin.Context) {
	_, err := h.Store.Collection().FindOne(c.Request.Context(), bson.M{})
	switch {
	case err == nil:
		response.Error[any](c, http.StatusConflict, "Une fiche entreprise existe déjà. Veuillez la modifier.", nil)
		return
	case err != store.ErrNoDocument:
		h.Logger.WithError(err).Error("company uniqueness check failed")
		response.Error[any](c, http.StatusInternalServerError, "Erreur lors de la vérification d'unicité.", nil)
		return
	}
	h.CrudHandler.Create(c)
}

// Phone returns the phone number of the company sheet.
func (h *CompanyHandler) Phone(c *gin.Context) {
	rec, err := h.Store.Collection().FindOne(c.Request.Context(), bson.M{})
	if err == store.ErrNoDocument {
		response.Error[any](c, http.StatusNotFound, "Entreprise non trouvé", nil)
		return
	}
	if err != nil {
		h.Logger.WithError(err).Error("company lookup failed")
		response.Error[any](c, http.StatusInternalServerError, "Erreur lors de la récupération des infos société", nil)
		return
	}
	response.Success(c, http.StatusOK, map[string]any{"phone": recString(rec, "phone")}, "Téléphone récupéré", nil)
}

// Logo returns the logo reference of a company sheet. External URLs and
// uploaded files are distinguished so the frontend knows whether to proxy.
func (h *CompanyHandler) Logo(c *gin.Context) {
	res := h.Store.FindByID(c.Request.Context(), c.Param("id"))
	if !res.Success {
		h.Respond(c, res, http.StatusOK)
		return
	}
	rec, _ := res.Data.(store.Record)
	logo := recString(rec, "logo")
	if logo == "" {
		response.Error[any](c, http.StatusNotFound, "Logo non trouvé", nil)
		return
	}
	kind := "local"
	if strings.HasPrefix(logo, "http") {
		kind = "external"
	}
	response.Success(c, http.StatusOK, map[string]any{"logo": logo, "type": kind}, "Logo récupéré", nil)
}

package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/fretops/fretops-api/internal/store"
	"github.com/fretops/fretops-api/pkg/response"
	"github.com/fretops/fretops-api/pkg/validation"
)

// defaultRefreshInterval is applied when a user never saved settings, in
// milliseconds.
const defaultRefreshInterval = 60000

// SettingsHandler serves per-user preferences: one document per userId,
// upserted on save, like the notepad.
type SettingsHandler struct {
	Coll   store.Collection
	Logger *logrus.Logger
}

func NewSettingsHandler(coll store.Collection, logger *logrus.Logger) *SettingsHandler {
	return &SettingsHandler{Coll: coll, Logger: logger}
}

// Get returns the user's settings, or the defaults when none were saved yet.
func (h *SettingsHandler) Get(c *gin.Context) {
	userID := c.Param("userId")
	rec, err := h.Coll.FindOne(c.Request.Context(), bson.M{"userId": userID})
	if err == store.ErrNoDocument {
		rec = store.Record{"userId": userID, "autoRefreshInterval": defaultRefreshInterval}
	} else if err != nil {
		h.Logger.WithError(err).Error("settings lookup failed")
		response.Error[any](c, http.StatusInternalServerError, "Erreur lors de la récupération des paramètres", nil)
		return
	}
	response.Success(c, http.StatusOK, rec, "Paramètres récupérés", nil)
}

type saveSettingsRequest struct {
	AutoRefreshInterval int `json:"autoRefreshInterval"`
}

// Save upserts the user's settings, falling back to the default interval when
// none is supplied.
func (h *SettingsHandler) Save(c *gin.Context) {
	userID := c.Param("userId")
	var req saveSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "payload invalide", validation.ToDetails(err))
		return
	}
	if req.AutoRefreshInterval <= 0 {
		req.AutoRefreshInterval = defaultRefreshInterval
	}

	now := time.Now().UTC()
	set := bson.M{
		"userId":              userID,
		"autoRefreshInterval": req.AutoRefreshInterval,
		"updatedAt":           now,
	}
	matched, err := h.Coll.UpdateOne(c.Request.Context(), bson.M{"userId": userID}, set)
	if err == nil && matched == 0 {
		doc := store.Record(set).Clone()
		doc["createdAt"] = now
		_, err = h.Coll.InsertOne(c.Request.Context(), doc)
	}
	if err != nil {
		h.Logger.WithError(err).Error("settings save failed")
		response.Error[any](c, http.StatusInternalServerError, "Erreur lors de la sauvegarde des paramètres", nil)
		return
	}
	response.Success(c, http.StatusOK, map[string]any{"autoRefreshInterval": req.AutoRefreshInterval}, "Paramètres sauvegardés avec succès", nil)
}

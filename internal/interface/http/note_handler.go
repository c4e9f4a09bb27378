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

// NoteHandler serves the per-user notepad: one document per userId, replaced
// wholesale on save. It works on the collection directly because the notepad
// is keyed by userId, not by the document identifier.
type NoteHandler struct {
	Coll   store.Collection
	Logger *logrus.Logger
}

func NewNoteHandler(coll store.Collection, logger *logrus.Logger) *NoteHandler {
	return &NoteHandler{Coll: coll, Logger: logger}
}

// Get returns the user's notepad, or an empty one when none was saved yet.
func (h *NoteHandler) Get(c *gin.Context) {
	userID := c.Param("userId")
	rec, err := h.Coll.FindOne(c.Request.Context(), bson.M{"userId": userID})
	if err == store.ErrNoDocument {
		rec = store.Record{"userId": userID, "notes": []interface{}{}}
	} else if err != nil {
		h.Logger.WithError(err).Error("notes lookup failed")
		response.Error[any](c, http.StatusInternalServerError, "Erreur lors de la récupération des notes", nil)
		return
	}
	response.Success(c, http.StatusOK, rec, "Notes récupérées", nil)
}

type saveNotesRequest struct {
	Notes []interface{} `json:"notes"`
}

// Save upserts the user's notepad with the supplied notes array.
func (h *NoteHandler) Save(c *gin.Context) {
	userID := c.Param("userId")
	var req saveNotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "payload invalide", validation.ToDetails(err))
		return
	}
	if req.Notes == nil {
		req.Notes = []interface{}{}
	}

	now := time.Now().UTC()
	set := bson.M{
		"userId":    userID,
		"notes":     req.Notes,
		"updatedAt": now,
	}
	matched, err := h.Coll.UpdateOne(c.Request.Context(), bson.M{"userId": userID}, set)
	if err == nil && matched == 0 {
		doc := store.Record(set).Clone()
		doc["createdAt"] = now
		_, err = h.Coll.InsertOne(c.Request.Context(), doc)
	}
	if err != nil {
		h.Logger.WithError(err).Error("notes save failed")
		response.Error[any](c, http.StatusInternalServerError, "Erreur lors de la sauvegarde des notes", nil)
		return
	}
	response.Success[any](c, http.StatusOK, map[string]any{"notes": req.Notes}, "Notes sauvegardées avec succès", nil)
}

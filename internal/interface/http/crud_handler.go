package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/fretops/fretops-api/internal/store"
	"github.com/fretops/fretops-api/pkg/response"
	"github.com/fretops/fretops-api/pkg/validation"
)

// reserved query keys of the list endpoint; everything else becomes an
// exact-match filter.
var reservedQueryKeys = map[string]bool{
	"page":   true,
	"limit":  true,
	"sort":   true,
	"order":  true,
	"search": true,
}

// CrudHandler exposes one entity store over HTTP. It owns the translation of
// the store envelope to status codes: validation and identifier failures map
// to 400, missing records to 404, storage failures to 500.
type CrudHandler struct {
	Store  *store.Store
	Logger *logrus.Logger
}

func NewCrudHandler(s *store.Store, logger *logrus.Logger) *CrudHandler {
	return &CrudHandler{Store: s, Logger: logger}
}

func statusFor(res store.Result, successStatus int) int {
	if res.Success {
		return successStatus
	}
	switch res.Code {
	case store.CodeNotFound:
		return http.StatusNotFound
	case store.CodeValidationFailed, store.CodeInvalidIdentifier:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Respond writes a store result as an API response.
func (h *CrudHandler) Respond(c *gin.Context, res store.Result, successStatus int) {
	if res.Success {
		var meta interface{}
		if res.Pagination != nil {
			meta = res.Pagination
		}
		response.Success(c, successStatus, res.Data, res.Message, meta)
		return
	}

	var details interface{} = string(res.Code)
	if res.Code == store.CodeValidationFailed {
		details = res.Reasons
	}
	response.Error[any](c, statusFor(res, successStatus), res.Message, details)
}

func (h *CrudHandler) Create(c *gin.Context) {
	var body store.Record
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error[any](c, http.StatusBadRequest, "payload invalide", validation.ToDetails(err))
		return
	}
	h.Respond(c, h.Store.Create(c.Request.Context(), body), http.StatusCreated)
}

// ListOptionsFromQuery builds store list options from the request query.
func ListOptionsFromQuery(c *gin.Context) store.ListOptions {
	opts := store.ListOptions{
		SortField: c.Query("sort"),
		SortDesc:  c.DefaultQuery("order", "desc") == "desc",
		Search:    c.Query("search"),
	}
	if page, err := strconv.Atoi(c.Query("page")); err == nil {
		opts.Page = page
	}
	if limit, err := strconv.Atoi(c.Query("limit")); err == nil {
		opts.Limit = limit
	}

	filter := bson.M{}
	for key, values := range c.Request.URL.Query() {
		if reservedQueryKeys[key] || len(values) == 0 {
			continue
		}
		filter[key] = values[0]
	}
	if len(filter) > 0 {
		opts.Filter = filter
	}
	return opts
}

func (h *CrudHandler) FindAll(c *gin.Context) {
	opts := ListOptionsFromQuery(c)
	h.Respond(c, h.Store.FindAll(c.Request.Context(), opts), http.StatusOK)
}

func (h *CrudHandler) FindByID(c *gin.Context) {
	h.Respond(c, h.Store.FindByID(c.Request.Context(), c.Param("id")), http.StatusOK)
}

func (h *CrudHandler) Update(c *gin.Context) {
	var body store.Record
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error[any](c, http.StatusBadRequest, "payload invalide", validation.ToDetails(err))
		return
	}
	h.Respond(c, h.Store.Update(c.Request.Context(), c.Param("id"), body), http.StatusOK)
}

func (h *CrudHandler) Delete(c *gin.Context) {
	h.Respond(c, h.Store.Delete(c.Request.Context(), c.Param("id")), http.StatusOK)
}

type bulkCreateRequest struct {
	Entities []store.Record `json:"entities" binding:"required,min=1"`
}

func (h *CrudHandler) BulkCreate(c *gin.Context) {
	var req bulkCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "le champ 'entities' doit être un tableau non vide", validation.ToDetails(err))
		return
	}
	h.Respond(c, h.Store.BulkCreate(c.Request.Context(), req.Entities), http.StatusCreated)
}

func (h *CrudHandler) Stats(c *gin.Context) {
	h.Respond(c, h.Store.Stats(c.Request.Context()), http.StatusOK)
}

// Health reports liveness of the entity's collection through a stats probe.
func (h *CrudHandler) Health(c *gin.Context) {
	res := h.Store.Stats(c.Request.Context())
	if !res.Success {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":    "unhealthy",
			"entity":    h.Store.Name(),
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"entity":    h.Store.Name(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"stats":     res.Data,
	})
}

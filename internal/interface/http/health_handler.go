package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/fretops/fretops-api/internal/store"
)

// HealthHandler reports service and database liveness.
type HealthHandler struct {
	Stores []*store.Store
	// Ping checks the database connection; nil means no database check.
	Ping   func(ctx context.Context) error
	Logger *logrus.Logger
}

func NewHealthHandler(stores []*store.Store, ping func(ctx context.Context) error, logger *logrus.Logger) *HealthHandler {
	return &HealthHandler{Stores: stores, Ping: ping, Logger: logger}
}

// Liveness verifies the database connection with a ping.
func (h *HealthHandler) Liveness(c *gin.Context) {
	if h.Ping != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()
		if err := h.Ping(ctx); err != nil {
			h.Logger.WithError(err).Warn("database ping failed")
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"timestamp": time.Now().UTC().Format(time.RFC3339),
			})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

type collectionProbe struct {
	Collection   string `json:"collection"`
	Status       string `json:"status"`
	ResponseTime string `json:"responseTime"`
	Error        string `json:"error,omitempty"`
}

// DatabaseHealth probes every collection with a count and reports per-collection
// latency. The overall status is healthy when every probe succeeds, partial when
// some do, unhealthy when none do.
func (h *HealthHandler) DatabaseHealth(c *gin.Context) {
	probes := make([]collectionProbe, 0, len(h.Stores))
	healthy := 0
	for _, s := range h.Stores {
		start := time.Now()
		_, err := s.Collection().CountDocuments(c.Request.Context(), bson.M{})
		probe := collectionProbe{
			Collection:   s.Name(),
			ResponseTime: time.Since(start).String(),
		}
		if err != nil {
			probe.Status = "unhealthy"
			probe.Error = err.Error()
			h.Logger.WithError(err).WithField("collection", s.Name()).Warn("collection probe failed")
		} else {
			probe.Status = "healthy"
			healthy++
		}
		probes = append(probes, probe)
	}

	status := "healthy"
	code := http.StatusOK
	switch {
	case healthy == 0 && len(h.Stores) > 0:
		status = "unhealthy"
		code = http.StatusServiceUnavailable
	case healthy < len(h.Stores):
		status = "partial"
	}

	c.JSON(code, gin.H{
		"status":      status,
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
		"collections": probes,
	})
}

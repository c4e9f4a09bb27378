package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/fretops/fretops-api/internal/store"
	"github.com/fretops/fretops-api/pkg/helpers"
	"github.com/fretops/fretops-api/pkg/mailer"
	"github.com/fretops/fretops-api/pkg/response"
	"github.com/fretops/fretops-api/pkg/validation"
)

// Notifier publishes email jobs for records that warrant an administrator
// notification. Publishing is best-effort: a queue failure is logged and the
// request still succeeds, matching the behavior where a saved record is never
// rolled back because an email could not be sent.
type Notifier struct {
	Pub    *helpers.RabbitPublisher
	To     string
	Logger *logrus.Logger
}

func (n *Notifier) publish(job mailer.EmailJob) {
	if n == nil || n.Pub == nil || n.To == "" {
		return
	}
	job.To = n.To
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := n.Pub.PublishJSON(ctx, job); err != nil && n.Logger != nil {
		n.Logger.WithError(err).Warn("email notification publish failed")
	}
}

func recString(rec store.Record, key string) string {
	if rec == nil {
		return ""
	}
	v, _ := rec[key].(string)
	return v
}

func recValue(rec store.Record, key string) string {
	if rec == nil || rec[key] == nil {
		return ""
	}
	return fmt.Sprintf("%v", rec[key])
}

// MessageHandler persists contact messages and notifies the administrator.
type MessageHandler struct {
	*CrudHandler
	Notifier *Notifier
}

func NewMessageHandler(crud *CrudHandler, notifier *Notifier) *MessageHandler {
	return &MessageHandler{CrudHandler: crud, Notifier: notifier}
}

func (h *MessageHandler) Create(c *gin.Context) {
	var body store.Record
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error[any](c, http.StatusBadRequest, "payload invalide", validation.ToDetails(err))
		return
	}

	res := h.Store.Create(c.Request.Context(), body)
	if res.Success {
		rec, _ := res.Data.(store.Record)
		h.Notifier.publish(mailer.EmailJob{
			Subject:  fmt.Sprintf("Nouveau message de %s", recString(rec, "name")),
			Template: "contact_message",
			Data: map[string]any{
				"Name":    recString(rec, "name"),
				"Email":   recString(rec, "email"),
				"Phone":   recString(rec, "phone"),
				"Sujet":   recString(rec, "sujet"),
				"Message": recString(rec, "message"),
			},
		})
	}
	h.Respond(c, res, http.StatusCreated)
}

// DevisHandler persists quotes and notifies the administrator on creation.
type DevisHandler struct {
	*CrudHandler
	Notifier *Notifier
}

func NewDevisHandler(crud *CrudHandler, notifier *Notifier) *DevisHandler {
	return &DevisHandler{CrudHandler: crud, Notifier: notifier}
}

func (h *DevisHandler) Create(c *gin.Context) {
	var body store.Record
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error[any](c, http.StatusBadRequest, "payload invalide", validation.ToDetails(err))
		return
	}

	res := h.Store.Create(c.Request.Context(), body)
	if res.Success {
		rec, _ := res.Data.(store.Record)
		devisID := recString(rec, "devisID")
		if devisID == "" {
			devisID = "Sans numéro"
		}
		h.Notifier.publish(mailer.EmailJob{
			Subject:  fmt.Sprintf("Nouveau devis créé - %s", devisID),
			Template: "devis_created",
			Data: map[string]any{
				"DevisID":  recString(rec, "devisID"),
				"Client":   recValue(rec, "client"),
				"TotalTTC": recValue(rec, "totalTTC"),
			},
		})
	}
	h.Respond(c, res, http.StatusCreated)
}

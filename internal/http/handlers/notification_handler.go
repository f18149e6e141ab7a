// README: Notification feed handlers.
package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"packpal/internal/http/middleware"
	"packpal/internal/modules/notification"
	"packpal/internal/types"
)

type NotificationHandler struct {
	notifications *notification.Service
}

func NewNotificationHandler(svc *notification.Service) *NotificationHandler {
	return &NotificationHandler{notifications: svc}
}

func (h *NotificationHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	items, err := h.notifications.ListByRecipient(c.Request.Context(), types.ID(middleware.CallerUID(c)), limit)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	out := make([]gin.H, 0, len(items))
	for _, n := range items {
		out = append(out, gin.H{
			"id":         n.ID,
			"title":      n.Title,
			"body":       n.Body,
			"data":       n.Data,
			"read":       n.Read,
			"created_at": n.CreatedAt.Format(time.RFC3339),
		})
	}
	writeJSON(c, http.StatusOK, gin.H{"notifications": out})
}

// MarkRead is keyed on the caller so one user cannot mark another's
// notifications.
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		writeError(c, http.StatusBadRequest, "missing notification id")
		return
	}
	ok, err := h.notifications.MarkRead(c.Request.Context(), types.ID(id), types.ID(middleware.CallerUID(c)))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	if !ok {
		writeError(c, http.StatusNotFound, "notification not found")
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"id": id, "read": true})
}

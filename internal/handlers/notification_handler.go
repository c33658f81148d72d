package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/clinic-scheduler/internal/middleware"
	"github.com/BruksfildServices01/clinic-scheduler/internal/notification"
)

type NotificationHandler struct {
	inbox  notification.Inbox
	logger *zap.Logger
}

func NewNotificationHandler(inbox notification.Inbox, logger *zap.Logger) *NotificationHandler {
	return &NotificationHandler{inbox: inbox, logger: logger}
}

// List: GET /api/notifications?unseen=true
func (h *NotificationHandler) List(c *gin.Context) {
	unseen := c.Query("unseen") == "true"

	list, err := h.inbox.List(c.Request.Context(), middleware.UserID(c), unseen)
	if err != nil {
		h.logger.Error("list notifications", zap.Error(err))
		httperr.Internal(c, "notifications_list_failed", "Could not load notifications.")
		return
	}

	httpresp.List(c, list)
}

func (h *NotificationHandler) MarkAllSeen(c *gin.Context) {
	n, err := h.inbox.MarkAllSeen(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		h.logger.Error("mark notifications seen", zap.Error(err))
		httperr.Internal(c, "notifications_update_failed", "Could not update notifications.")
		return
	}

	httpresp.OK(c, gin.H{"updated": n})
}

package handler

import (
	"net/http"
	"strconv"

	"github.com/agrovia/farm-api/internal/api/middleware"
	"github.com/agrovia/farm-api/internal/api/response"
	"github.com/agrovia/farm-api/internal/service"
)

// NotificationHandler handles the notification inbox
type NotificationHandler struct {
	notificationService *service.NotificationService
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(notificationService *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// List returns the caller's most recent notifications
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			response.BadRequest(w, "invalid limit")
			return
		}
		limit = parsed
	}

	notifications, err := h.notificationService.ListMine(r.Context(), userID, limit)
	if err != nil {
		respondError(w, err)
		return
	}

	response.OK(w, notifications)
}

package handler

import (
	"encoding/json"
	"net/http"

	"github.com/agrovia/farm-api/internal/api/middleware"
	"github.com/agrovia/farm-api/internal/api/response"
	"github.com/agrovia/farm-api/internal/domain"
	"github.com/agrovia/farm-api/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// InvitationHandler handles invitation endpoints
type InvitationHandler struct {
	invitationService *service.InvitationService
}

// NewInvitationHandler creates a new invitation handler
func NewInvitationHandler(invitationService *service.InvitationService) *InvitationHandler {
	return &InvitationHandler{invitationService: invitationService}
}

// Create invites a registered user to a farm
func (h *InvitationHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	var input domain.InvitationCreate
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := validate.Struct(input); err != nil {
		respondValidation(w, err)
		return
	}

	invitation, err := h.invitationService.Create(r.Context(), userID, input)
	if err != nil {
		respondError(w, err)
		return
	}

	response.Created(w, invitation)
}

// Respond accepts or rejects a pending invitation
func (h *InvitationHandler) Respond(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	invitationID, err := uuid.Parse(chi.URLParam(r, "invitationID"))
	if err != nil {
		response.BadRequest(w, "invalid invitation ID")
		return
	}

	var input domain.InvitationRespond
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := validate.Struct(input); err != nil {
		respondValidation(w, err)
		return
	}

	invitation, err := h.invitationService.Respond(r.Context(), userID, invitationID, input)
	if err != nil {
		respondError(w, err)
		return
	}

	response.OK(w, invitation)
}

package handler

import (
	"encoding/json"
	"net/http"

	"github.com/agrovia/farm-api/internal/api/response"
	"github.com/agrovia/farm-api/internal/domain"
	"github.com/agrovia/farm-api/internal/service"
)

// CollaboratorHandler handles farm collaborator endpoints
type CollaboratorHandler struct {
	collaboratorService *service.CollaboratorService
}

// NewCollaboratorHandler creates a new collaborator handler
func NewCollaboratorHandler(collaboratorService *service.CollaboratorService) *CollaboratorHandler {
	return &CollaboratorHandler{collaboratorService: collaboratorService}
}

// List returns the active members of a farm
func (h *CollaboratorHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, farmID, ok := callerAndFarm(w, r)
	if !ok {
		return
	}

	collaborators, err := h.collaboratorService.List(r.Context(), userID, farmID)
	if err != nil {
		respondError(w, err)
		return
	}

	response.OK(w, collaborators)
}

// UpdateRole changes a collaborator's role
func (h *CollaboratorHandler) UpdateRole(w http.ResponseWriter, r *http.Request) {
	userID, farmID, ok := callerAndFarm(w, r)
	if !ok {
		return
	}

	var input domain.CollaboratorRoleUpdate
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := validate.Struct(input); err != nil {
		respondValidation(w, err)
		return
	}

	if err := h.collaboratorService.UpdateRole(r.Context(), userID, farmID, input); err != nil {
		respondError(w, err)
		return
	}

	response.NoContent(w)
}

// Remove deactivates a collaborator's membership
func (h *CollaboratorHandler) Remove(w http.ResponseWriter, r *http.Request) {
	userID, farmID, ok := callerAndFarm(w, r)
	if !ok {
		return
	}

	var input domain.CollaboratorRemove
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := validate.Struct(input); err != nil {
		respondValidation(w, err)
		return
	}

	if err := h.collaboratorService.Remove(r.Context(), userID, farmID, input); err != nil {
		respondError(w, err)
		return
	}

	response.NoContent(w)
}

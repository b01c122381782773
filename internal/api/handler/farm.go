package handler

import (
	"encoding/json"
	"net/http"

	"github.com/agrovia/farm-api/internal/api/middleware"
	"github.com/agrovia/farm-api/internal/api/response"
	"github.com/agrovia/farm-api/internal/domain"
	"github.com/agrovia/farm-api/internal/service"
)

// FarmHandler handles farm endpoints
type FarmHandler struct {
	farmService *service.FarmService
}

// NewFarmHandler creates a new farm handler
func NewFarmHandler(farmService *service.FarmService) *FarmHandler {
	return &FarmHandler{farmService: farmService}
}

// Create handles farm creation
func (h *FarmHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	var input domain.FarmCreate
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := validate.Struct(input); err != nil {
		respondValidation(w, err)
		return
	}

	farm, err := h.farmService.Create(r.Context(), userID, input)
	if err != nil {
		respondError(w, err)
		return
	}

	response.Created(w, farm)
}

// List returns the caller's farms with their role on each
func (h *FarmHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	farms, err := h.farmService.List(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}

	response.OK(w, farms)
}

// Get returns a single farm the caller is a member of
func (h *FarmHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	farmID, ok := middleware.GetFarmID(r.Context())
	if !ok {
		response.BadRequest(w, "missing farm ID")
		return
	}

	summary, err := h.farmService.Get(r.Context(), userID, farmID)
	if err != nil {
		respondError(w, err)
		return
	}

	response.OK(w, summary)
}

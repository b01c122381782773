package handler

import (
	"encoding/json"
	"net/http"

	"github.com/agrovia/farm-api/internal/api/response"
	"github.com/agrovia/farm-api/internal/domain"
	"github.com/agrovia/farm-api/internal/service"
)

// PlotHandler handles plot endpoints
type PlotHandler struct {
	plotService *service.PlotService
}

// NewPlotHandler creates a new plot handler
func NewPlotHandler(plotService *service.PlotService) *PlotHandler {
	return &PlotHandler{plotService: plotService}
}

// Create adds a plot to a farm
func (h *PlotHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, farmID, ok := callerAndFarm(w, r)
	if !ok {
		return
	}

	var input domain.PlotCreate
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := validate.Struct(input); err != nil {
		respondValidation(w, err)
		return
	}

	plot, err := h.plotService.Create(r.Context(), userID, farmID, input)
	if err != nil {
		respondError(w, err)
		return
	}

	response.Created(w, plot)
}

// List returns the active plots of a farm
func (h *PlotHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, farmID, ok := callerAndFarm(w, r)
	if !ok {
		return
	}

	plots, err := h.plotService.List(r.Context(), userID, farmID)
	if err != nil {
		respondError(w, err)
		return
	}

	response.OK(w, plots)
}

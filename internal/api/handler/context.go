package handler

import (
	"net/http"

	"github.com/agrovia/farm-api/internal/api/middleware"
	"github.com/agrovia/farm-api/internal/api/response"
	"github.com/google/uuid"
)

// callerAndFarm pulls the authenticated user and the routed farm from the
// request context, writing the error response itself on failure.
func callerAndFarm(w http.ResponseWriter, r *http.Request) (uuid.UUID, uuid.UUID, bool) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return uuid.Nil, uuid.Nil, false
	}

	farmID, ok := middleware.GetFarmID(r.Context())
	if !ok {
		response.BadRequest(w, "missing farm ID")
		return uuid.Nil, uuid.Nil, false
	}

	return userID, farmID, true
}

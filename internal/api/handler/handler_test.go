package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/agrovia/farm-api/internal/api/response"
	"github.com/agrovia/farm-api/internal/domain"
)

func TestHealthCheck(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	rec := httptest.NewRecorder()

	HealthCheck(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	var resp map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp["success"] != true {
		t.Error("expected success to be true")
	}
}

func TestRespondError_StatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"not found", domain.ErrFarmNotFound, http.StatusNotFound},
		{"authentication", domain.ErrInvalidToken, http.StatusUnauthorized},
		{"authorization", domain.ErrPermissionDenied, http.StatusForbidden},
		{"membership", domain.ErrNotAMember, http.StatusForbidden},
		{"validation", domain.ErrAlreadyMember, http.StatusConflict},
		{"configuration", domain.ErrStateNotFound, http.StatusInternalServerError},
		{"wrapped", fmt.Errorf("context: %w", domain.ErrInvitationPending), http.StatusConflict},
		{"opaque", errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			respondError(rec, tt.err)
			if rec.Code != tt.status {
				t.Errorf("expected status %d, got %d", tt.status, rec.Code)
			}
		})
	}
}

func TestRespondError_HidesInternalDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	respondError(rec, errors.New("pq: password authentication failed"))

	var resp struct {
		Error *response.ErrorBody `json:"error"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.Error == nil {
		t.Fatal("expected an error body")
	}
	if resp.Error.Code != "internal_error" || resp.Error.Message != "internal server error" {
		t.Errorf("internal detail leaked: %+v", resp.Error)
	}
}

func TestRespondValidation_FieldMap(t *testing.T) {
	type body struct {
		Email string `validate:"required,email"`
	}
	err := validate.Struct(body{Email: "not-an-email"})
	if err == nil {
		t.Fatal("expected a validation error")
	}

	rec := httptest.NewRecorder()
	respondValidation(rec, err)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
	}

	var resp struct {
		Error *response.ErrorBody `json:"error"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.Error == nil || resp.Error.Code != "invalid_request" {
		t.Fatalf("expected invalid_request error body, got %+v", resp.Error)
	}
	if resp.Error.Fields["Email"] != "invalid email format" {
		t.Errorf("expected field detail for Email, got %v", resp.Error.Fields)
	}
}

func TestRespondError_DomainCode(t *testing.T) {
	rec := httptest.NewRecorder()
	respondError(rec, domain.ErrNotTheInvitee)

	var resp struct {
		Error map[string]string `json:"error"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.Error["code"] != "not_the_invitee" {
		t.Errorf("expected code not_the_invitee, got %q", resp.Error["code"])
	}
}

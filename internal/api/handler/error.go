package handler

import (
	"errors"
	"net/http"

	"github.com/agrovia/farm-api/internal/api/response"
	"github.com/agrovia/farm-api/internal/domain"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
)

var validate = validator.New()

// respondError maps a domain error kind to an HTTP status. Anything that
// is not a domain error is a server fault and stays opaque to the client.
func respondError(w http.ResponseWriter, err error) {
	var derr *domain.Error
	if errors.As(err, &derr) {
		switch derr.Kind {
		case domain.KindNotFound:
			response.Fail(w, http.StatusNotFound, derr.Code, derr.Message)
		case domain.KindAuthentication:
			response.Fail(w, http.StatusUnauthorized, derr.Code, derr.Message)
		case domain.KindAuthorization:
			response.Fail(w, http.StatusForbidden, derr.Code, derr.Message)
		case domain.KindValidation:
			response.Fail(w, http.StatusConflict, derr.Code, derr.Message)
		default:
			log.Error().Err(err).Msg("request failed")
			response.Fail(w, http.StatusInternalServerError, "internal_error", "internal server error")
		}
		return
	}

	log.Error().Err(err).Msg("request failed")
	response.Fail(w, http.StatusInternalServerError, "internal_error", "internal server error")
}

// respondValidation turns validator errors into a field-keyed message map
func respondValidation(w http.ResponseWriter, err error) {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		fields := make(map[string]string)
		for _, e := range validationErrors {
			field := e.Field()
			switch e.Tag() {
			case "required":
				fields[field] = "field is required"
			case "email":
				fields[field] = "invalid email format"
			case "min":
				fields[field] = "must be at least " + e.Param()
			case "max":
				fields[field] = "must be at most " + e.Param()
			case "oneof":
				fields[field] = "must be one of: " + e.Param()
			case "gt":
				fields[field] = "must be greater than " + e.Param()
			case "gte":
				fields[field] = "must be at least " + e.Param()
			case "lte":
				fields[field] = "must be at most " + e.Param()
			default:
				fields[field] = "validation failed on " + e.Tag()
			}
		}
		response.Invalid(w, fields)
		return
	}
	response.BadRequest(w, err.Error())
}

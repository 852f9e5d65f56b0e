package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/camden-git/rosterbackend/apperrors"
)

// APIErrorDetail represents a single error in the standardized error response.
type APIErrorDetail struct {
	Code   string `json:"code"`
	Status string `json:"status"`
	Detail string `json:"detail"`
}

// APIErrorResponse represents the standardized error response body.
type APIErrorResponse struct {
	Errors []APIErrorDetail `json:"errors"`
}

// WriteAPIError writes a standardized error response with the given HTTP status, code, and detail.
func WriteAPIError(w http.ResponseWriter, httpStatus int, code string, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatus)

	resp := APIErrorResponse{
		Errors: []APIErrorDetail{
			{
				Code:   code,
				Status: strconv.Itoa(httpStatus),
				Detail: detail,
			},
		},
	}

	_ = json.NewEncoder(w).Encode(resp)
}

// writeError maps a core error kind onto an HTTP status and standardized body.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		WriteAPIError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, apperrors.ErrDuplicateKey):
		WriteAPIError(w, http.StatusConflict, "duplicate_key", err.Error())
	case errors.Is(err, apperrors.ErrInvalidOperation):
		WriteAPIError(w, http.StatusBadRequest, "invalid_operation", err.Error())
	case errors.Is(err, apperrors.ErrValidation):
		WriteAPIError(w, http.StatusBadRequest, "validation_failure", err.Error())
	default:
		log.Printf("internal error: %v", err)
		WriteAPIError(w, http.StatusInternalServerError, "internal", "internal server error")
	}
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

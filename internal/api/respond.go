package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"shareit/internal/apperr"
	"shareit/internal/models"

	"github.com/go-chi/chi/v5"
)

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]string{"error": message})
}

// respondError maps a classified error to its HTTP status. Unclassified
// errors surface as 500 with the raw message.
func respondError(w http.ResponseWriter, err error) {
	writeError(w, statusFor(err), err.Error())
}

func statusFor(err error) int {
	kind, ok := apperr.KindOf(err)
	if !ok {
		return http.StatusInternalServerError
	}
	switch kind {
	case apperr.Validation:
		return http.StatusBadRequest
	case apperr.Conflict:
		return http.StatusConflict
	case apperr.NotFound, apperr.Ownership, apperr.WrongCustomer, apperr.SelfBooking:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// callerID reads the caller identity header. There is no real
// authentication; the gateway and clients identify callers by id.
func callerID(r *http.Request) (int64, error) {
	raw := r.Header.Get(models.HeaderUserID)
	if raw == "" {
		return 0, apperr.Validationf("header %s is required", models.HeaderUserID)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.Validationf("header %s must be a positive integer", models.HeaderUserID)
	}
	return id, nil
}

func pathID(r *http.Request, param string) (int64, error) {
	raw := chi.URLParam(r, param)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.Validationf("%s must be a positive integer", param)
	}
	return id, nil
}

// parsePage reads from/size query params, applying the configured default
// size when absent.
func (s *HTTPServer) parsePage(r *http.Request) (models.Page, error) {
	page := models.Page{From: 0, Size: s.pageSize}

	if raw := r.URL.Query().Get("from"); raw != "" {
		from, err := strconv.Atoi(raw)
		if err != nil || from < 0 {
			return page, apperr.Validationf("from must be a non-negative integer")
		}
		page.From = from
	}
	if raw := r.URL.Query().Get("size"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil || size <= 0 {
			return page, apperr.Validationf("size must be a positive integer")
		}
		page.Size = size
	}
	return page, nil
}

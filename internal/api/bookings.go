package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"shareit/internal/apperr"
	"shareit/internal/models"
)

type bookingRequest struct {
	ItemID  int64     `json:"item_id"`
	StartAt time.Time `json:"start_at"`
	EndAt   time.Time `json:"end_at"`
}

func (s *HTTPServer) handleCreateBooking(w http.ResponseWriter, r *http.Request) {
	bookerID, err := callerID(r)
	if err != nil {
		respondError(w, err)
		return
	}

	var req bookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.ItemID <= 0 {
		respondError(w, apperr.Validationf("item_id is required"))
		return
	}

	view, err := s.bookings.CreateBooking(r.Context(), bookerID, req.ItemID, req.StartAt, req.EndAt)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, view)
}

func (s *HTTPServer) handleApproveBooking(w http.ResponseWriter, r *http.Request) {
	caller, err := callerID(r)
	if err != nil {
		respondError(w, err)
		return
	}
	bookingID, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	approved, err := strconv.ParseBool(r.URL.Query().Get("approved"))
	if err != nil {
		respondError(w, apperr.Validationf("approved must be true or false"))
		return
	}

	view, err := s.bookings.ApproveBooking(r.Context(), caller, bookingID, approved)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *HTTPServer) handleGetBooking(w http.ResponseWriter, r *http.Request) {
	caller, err := callerID(r)
	if err != nil {
		respondError(w, err)
		return
	}
	bookingID, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	view, err := s.bookings.GetBooking(r.Context(), caller, bookingID)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *HTTPServer) handleListBookingsForBooker(w http.ResponseWriter, r *http.Request) {
	s.listBookings(w, r, s.bookings.ListForBooker)
}

func (s *HTTPServer) handleListBookingsForOwner(w http.ResponseWriter, r *http.Request) {
	s.listBookings(w, r, s.bookings.ListForOwner)
}

func (s *HTTPServer) listBookings(
	w http.ResponseWriter,
	r *http.Request,
	list func(ctx context.Context, callerID int64, state string, page models.Page) ([]models.BookingView, error),
) {
	caller, err := callerID(r)
	if err != nil {
		respondError(w, err)
		return
	}
	page, err := s.parsePage(r)
	if err != nil {
		respondError(w, err)
		return
	}

	state := r.URL.Query().Get("state")
	if state == "" {
		state = models.StateAll
	}

	views, err := list(r.Context(), caller, state, page)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, views)
}

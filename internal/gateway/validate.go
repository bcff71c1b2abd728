package gateway

import (
	"encoding/json"
	"io"
	"net/http"
	"net/mail"
	"strconv"
	"strings"
	"time"

	"shareit/internal/models"

	"github.com/go-chi/chi/v5"
)

// maxBodySize bounds request bodies read for validation.
const maxBodySize = 1 << 20

// passThrough relays without local checks.
func (s *Server) passThrough(w http.ResponseWriter, r *http.Request) {
	s.relay.Forward(w, r, nil)
}

func (s *Server) requireCaller(w http.ResponseWriter, r *http.Request) {
	if !s.checkCaller(w, r) {
		return
	}
	s.relay.Forward(w, r, nil)
}

func (s *Server) requireID(w http.ResponseWriter, r *http.Request) {
	if !s.checkID(w, r) {
		return
	}
	s.relay.Forward(w, r, nil)
}

func (s *Server) requirePage(w http.ResponseWriter, r *http.Request) {
	if !s.checkPage(w, r) {
		return
	}
	s.relay.Forward(w, r, nil)
}

func (s *Server) requireCallerAndID(w http.ResponseWriter, r *http.Request) {
	if !s.checkCaller(w, r) || !s.checkID(w, r) {
		return
	}
	s.relay.Forward(w, r, nil)
}

func (s *Server) requireCallerAndPage(w http.ResponseWriter, r *http.Request) {
	if !s.checkCaller(w, r) || !s.checkPage(w, r) {
		return
	}
	s.relay.Forward(w, r, nil)
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	body, ok := s.decodeBody(w, r, &req)
	if !ok {
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		writeError(w, http.StatusBadRequest, "a valid email is required")
		return
	}
	s.relay.Forward(w, r, body)
}

func (s *Server) handlePatchUser(w http.ResponseWriter, r *http.Request) {
	if !s.checkID(w, r) {
		return
	}
	var patch models.UserPatch
	body, ok := s.decodeBody(w, r, &patch)
	if !ok {
		return
	}
	if patch.Email != nil {
		if _, err := mail.ParseAddress(*patch.Email); err != nil {
			writeError(w, http.StatusBadRequest, "a valid email is required")
			return
		}
	}
	s.relay.Forward(w, r, body)
}

func (s *Server) handleCreateItem(w http.ResponseWriter, r *http.Request) {
	if !s.checkCaller(w, r) {
		return
	}
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Available   *bool  `json:"available"`
	}
	body, ok := s.decodeBody(w, r, &req)
	if !ok {
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	if strings.TrimSpace(req.Description) == "" {
		writeError(w, http.StatusBadRequest, "description is required")
		return
	}
	if req.Available == nil {
		writeError(w, http.StatusBadRequest, "available is required")
		return
	}
	s.relay.Forward(w, r, body)
}

// handleCreateBooking enforces the strict variant of the window rule: both
// endpoints must be in the future when the request crosses the edge.
func (s *Server) handleCreateBooking(w http.ResponseWriter, r *http.Request) {
	if !s.checkCaller(w, r) {
		return
	}
	var req struct {
		ItemID  int64      `json:"item_id"`
		StartAt *time.Time `json:"start_at"`
		EndAt   *time.Time `json:"end_at"`
	}
	body, ok := s.decodeBody(w, r, &req)
	if !ok {
		return
	}
	if req.ItemID <= 0 {
		writeError(w, http.StatusBadRequest, "item_id is required")
		return
	}
	if req.StartAt == nil || req.EndAt == nil {
		writeError(w, http.StatusBadRequest, "start_at and end_at are required")
		return
	}
	now := time.Now()
	if !req.StartAt.After(now) || !req.EndAt.After(now) {
		writeError(w, http.StatusBadRequest, "booking window must be in the future")
		return
	}
	if !req.EndAt.After(*req.StartAt) {
		writeError(w, http.StatusBadRequest, "end_at must be after start_at")
		return
	}
	s.relay.Forward(w, r, body)
}

func (s *Server) handleApproveBooking(w http.ResponseWriter, r *http.Request) {
	if !s.checkCaller(w, r) || !s.checkID(w, r) {
		return
	}
	if _, err := strconv.ParseBool(r.URL.Query().Get("approved")); err != nil {
		writeError(w, http.StatusBadRequest, "approved must be true or false")
		return
	}
	s.relay.Forward(w, r, nil)
}

func (s *Server) handleAddComment(w http.ResponseWriter, r *http.Request) {
	if !s.checkCaller(w, r) || !s.checkID(w, r) {
		return
	}
	var req struct {
		Text string `json:"text"`
	}
	body, ok := s.decodeBody(w, r, &req)
	if !ok {
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}
	s.relay.Forward(w, r, body)
}

func (s *Server) handleCreateRequest(w http.ResponseWriter, r *http.Request) {
	if !s.checkCaller(w, r) {
		return
	}
	var req struct {
		Description string `json:"description"`
	}
	body, ok := s.decodeBody(w, r, &req)
	if !ok {
		return
	}
	if strings.TrimSpace(req.Description) == "" {
		writeError(w, http.StatusBadRequest, "description is required")
		return
	}
	s.relay.Forward(w, r, body)
}

func (s *Server) handleListBookings(w http.ResponseWriter, r *http.Request) {
	if !s.checkCaller(w, r) || !s.checkPage(w, r) {
		return
	}
	if state := r.URL.Query().Get("state"); state != "" && !models.ValidState(state) {
		writeError(w, http.StatusBadRequest, "Unknown state: "+state)
		return
	}
	s.relay.Forward(w, r, nil)
}

// decodeBody reads and parses the body, returning the raw bytes for the
// relay. A false return means an error response was already written.
func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, dest interface{}) ([]byte, bool) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read request body")
		return nil, false
	}
	if err := json.Unmarshal(body, dest); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return nil, false
	}
	return body, true
}

func (s *Server) checkCaller(w http.ResponseWriter, r *http.Request) bool {
	raw := r.Header.Get(models.HeaderUserID)
	if raw == "" {
		writeError(w, http.StatusBadRequest, "header "+models.HeaderUserID+" is required")
		return false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "header "+models.HeaderUserID+" must be a positive integer")
		return false
	}
	return true
}

func (s *Server) checkID(w http.ResponseWriter, r *http.Request) bool {
	raw := chi.URLParam(r, "id")
	if id, err := strconv.ParseInt(raw, 10, 64); err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "id must be a positive integer")
		return false
	}
	return true
}

func (s *Server) checkPage(w http.ResponseWriter, r *http.Request) bool {
	if raw := r.URL.Query().Get("from"); raw != "" {
		if from, err := strconv.Atoi(raw); err != nil || from < 0 {
			writeError(w, http.StatusBadRequest, "from must be a non-negative integer")
			return false
		}
	}
	if raw := r.URL.Query().Get("size"); raw != "" {
		if size, err := strconv.Atoi(raw); err != nil || size <= 0 {
			writeError(w, http.StatusBadRequest, "size must be a positive integer")
			return false
		}
	}
	return true
}

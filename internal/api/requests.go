package api

import (
	"encoding/json"
	"net/http"
)

func (s *HTTPServer) handleCreateRequest(w http.ResponseWriter, r *http.Request) {
	requesterID, err := callerID(r)
	if err != nil {
		respondError(w, err)
		return
	}

	var req struct {
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	request, err := s.requests.CreateRequest(r.Context(), requesterID, req.Description)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, request)
}

func (s *HTTPServer) handleListOwnRequests(w http.ResponseWriter, r *http.Request) {
	requesterID, err := callerID(r)
	if err != nil {
		respondError(w, err)
		return
	}

	views, err := s.requests.ListOwn(r.Context(), requesterID)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *HTTPServer) handleListAllRequests(w http.ResponseWriter, r *http.Request) {
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

	views, err := s.requests.ListAll(r.Context(), caller, page)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *HTTPServer) handleGetRequest(w http.ResponseWriter, r *http.Request) {
	caller, err := callerID(r)
	if err != nil {
		respondError(w, err)
		return
	}
	requestID, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	view, err := s.requests.GetRequest(r.Context(), caller, requestID)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

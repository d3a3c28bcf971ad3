package api

import (
	"encoding/json"
	"net/http"

	"shareit/internal/models"
)

func (s *Server) createRequest(w http.ResponseWriter, r *http.Request) {
	requesterID, err := actorID(r)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	var req models.CreateRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	request, err := s.requests.CreateRequest(r.Context(), requesterID, &req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, request)
}

func (s *Server) getUserRequests(w http.ResponseWriter, r *http.Request) {
	requesterID, err := actorID(r)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	requests, err := s.requests.GetUserRequests(r.Context(), requesterID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, requests)
}

func (s *Server) getAllRequests(w http.ResponseWriter, r *http.Request) {
	if _, err := actorID(r); err != nil {
		writeDomainError(w, err)
		return
	}

	requests, err := s.requests.GetAllRequests(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, requests)
}

func (s *Server) getRequest(w http.ResponseWriter, r *http.Request) {
	actor, err := actorID(r)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	requestID, err := pathID(r, "id")
	if err != nil {
		writeDomainError(w, err)
		return
	}

	request, err := s.requests.GetRequest(r.Context(), actor, requestID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, request)
}

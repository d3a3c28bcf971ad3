package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"shareit/internal/models"
)

func (s *Server) createBooking(w http.ResponseWriter, r *http.Request) {
	bookerID, err := actorID(r)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	var req models.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	booking, err := s.bookings.CreateBooking(r.Context(), bookerID, &req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, booking)
}

func (s *Server) setApproved(w http.ResponseWriter, r *http.Request) {
	actor, err := actorID(r)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	bookingID, err := pathID(r, "id")
	if err != nil {
		writeDomainError(w, err)
		return
	}

	approved, err := strconv.ParseBool(r.URL.Query().Get("approved"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "approved query parameter must be true or false")
		return
	}

	booking, err := s.bookings.SetApproved(r.Context(), actor, bookingID, approved)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (s *Server) getBooking(w http.ResponseWriter, r *http.Request) {
	actor, err := actorID(r)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	bookingID, err := pathID(r, "id")
	if err != nil {
		writeDomainError(w, err)
		return
	}

	booking, err := s.bookings.GetBooking(r.Context(), actor, bookingID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (s *Server) listBookerBookings(w http.ResponseWriter, r *http.Request) {
	bookerID, err := actorID(r)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	bookings, err := s.bookings.ListBookerBookings(r.Context(), bookerID, r.URL.Query().Get("state"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bookings)
}

func (s *Server) listOwnerBookings(w http.ResponseWriter, r *http.Request) {
	ownerID, err := actorID(r)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	bookings, err := s.bookings.ListOwnerBookings(r.Context(), ownerID, r.URL.Query().Get("state"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bookings)
}

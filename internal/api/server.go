// Package api exposes the HTTP surface. The acting user is identified by
// the X-Sharer-User-Id header on every route that needs one.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"shareit/internal/config"
	"shareit/internal/domain"
	"shareit/internal/service"
)

const userHeader = "X-Sharer-User-Id"

type Server struct {
	users    *service.UserService
	items    *service.ItemService
	bookings *service.BookingService
	requests *service.RequestService
	limiter  domain.RateLimiter
	cfg      config.ServerConfig
	rlCfg    config.RateLimitConfig
	server   *http.Server
	log      zerolog.Logger
}

func NewServer(
	cfg config.ServerConfig,
	rlCfg config.RateLimitConfig,
	users *service.UserService,
	items *service.ItemService,
	bookings *service.BookingService,
	requests *service.RequestService,
	limiter domain.RateLimiter,
	logger *zerolog.Logger,
) *Server {
	s := &Server{
		users:    users,
		items:    items,
		bookings: bookings,
		requests: requests,
		limiter:  limiter,
		cfg:      cfg,
		rlCfg:    rlCfg,
		log:      logger.With().Str("component", "api").Logger(),
	}

	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       time.Duration(cfg.ReadTimeoutSec) * time.Second,
		WriteTimeout:      time.Duration(cfg.WriteTimeoutSec) * time.Second,
	}

	return s
}

// Handler assembles the route table with the middleware chain applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /users", s.createUser)
	mux.HandleFunc("GET /users/{id}", s.getUser)
	mux.HandleFunc("PATCH /users/{id}", s.updateUser)
	mux.HandleFunc("DELETE /users/{id}", s.deleteUser)

	mux.HandleFunc("POST /items", s.createItem)
	mux.HandleFunc("GET /items", s.getOwnerItems)
	mux.HandleFunc("GET /items/search", s.searchItems)
	mux.HandleFunc("GET /items/{id}", s.getItem)
	mux.HandleFunc("PATCH /items/{id}", s.updateItem)
	mux.HandleFunc("POST /items/{id}/comment", s.addComment)

	mux.HandleFunc("POST /bookings", s.createBooking)
	mux.HandleFunc("GET /bookings", s.listBookerBookings)
	mux.HandleFunc("GET /bookings/owner", s.listOwnerBookings)
	mux.HandleFunc("GET /bookings/{id}", s.getBooking)
	mux.HandleFunc("PATCH /bookings/{id}", s.setApproved)

	mux.HandleFunc("POST /requests", s.createRequest)
	mux.HandleFunc("GET /requests", s.getUserRequests)
	mux.HandleFunc("GET /requests/all", s.getAllRequests)
	mux.HandleFunc("GET /requests/{id}", s.getRequest)

	mux.HandleFunc("GET /admin/bookings/export", s.exportBookings)
	mux.HandleFunc("GET /healthz", s.healthz)

	var handler http.Handler = mux
	handler = s.metricsMiddleware(handler)
	handler = s.rateLimitMiddleware(handler)
	handler = s.loggingMiddleware(handler)
	handler = requestIDMiddleware(handler)
	return handler
}

func (s *Server) Start() error {
	s.log.Info().Str("addr", s.server.Addr).Msg("http server listening")
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Server) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// actorID reads the acting user from the request header. A missing or
// malformed header is a 400, not a 401; the id is trusted as-is.
func actorID(r *http.Request) (int64, error) {
	raw := r.Header.Get(userHeader)
	if raw == "" {
		return 0, domain.Validation("%s header is required", userHeader)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.Validation("%s header must be a positive integer", userHeader)
	}
	return id, nil
}

func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.Validation("%s must be a positive integer", name)
	}
	return id, nil
}

package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/roomboard/roomboard/internal/auth"
	"github.com/roomboard/roomboard/internal/photostore"
	"github.com/roomboard/roomboard/internal/service"
	"github.com/roomboard/roomboard/internal/validate"
)

type Server struct {
	service    *service.RoomService
	resolver   *auth.Resolver
	photoStg   photostore.PhotoStore
	mux        *http.ServeMux
	corsOrigin string
	logger     zerolog.Logger
}

func NewServer(svc *service.RoomService, resolver *auth.Resolver, photoStg photostore.PhotoStore, corsOrigin string, logger zerolog.Logger) *Server {
	s := &Server{
		service:    svc,
		resolver:   resolver,
		photoStg:   photoStg,
		mux:        http.NewServeMux(),
		corsOrigin: corsOrigin,
		logger:     logger.With().Str("component", "web").Logger(),
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /rooms", s.handleGetRooms)
	s.mux.HandleFunc("POST /rooms", s.handleCreateRoom)
	s.mux.HandleFunc("PUT /rooms", s.handleUpdateRoom)
	s.mux.HandleFunc("DELETE /rooms", s.handleDeleteRoom)
	s.mux.HandleFunc("POST /rooms/subscribe", s.handleSubscribe)
	s.mux.HandleFunc("POST /rooms/contact", s.handleContact)
	s.mux.HandleFunc("POST /rooms/photo", s.handleUploadPhoto)
	s.mux.HandleFunc("GET /photos/{key}", s.handleGetPhoto)
}

// corsHeaders attaches the cross-origin allow headers to every response,
// success and failure alike, and short-circuits preflight requests.
func corsHeaders(origin string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", origin)
		h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// statusRecorder wraps http.ResponseWriter to capture the written status code.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func requestLogger(logger zerolog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Int64("duration_ms", time.Since(start).Milliseconds()).
			Msg("request")
	})
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	requestLogger(s.logger, corsHeaders(s.corsOrigin, s.mux)).ServeHTTP(w, r)
}

func (s *Server) ListenAndServe(addr string) error {
	s.logger.Info().Str("addr", addr).Msg("starting server")
	srv := &http.Server{
		Addr:         addr,
		Handler:      s,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	return srv.ListenAndServe()
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// decodeJSON decodes the request body into v, wrapping any failure (including
// an empty body) in validate.JSONError so the dispatcher renders it as 400.
func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return &validate.JSONError{Err: err}
	}
	return nil
}

// writeError maps the service's error taxonomy onto the HTTP contract:
// validation kinds to 400, missing identity to 401, ownership to 403,
// unknown ids to 404. Anything else is a 500 carrying the error message
// verbatim, matching the contract this service replaces.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	var (
		missingErr    *validate.MissingFieldError
		validationErr *validate.ValidationError
		jsonErr       *validate.JSONError
		notFoundErr   *service.NotFoundError
		forbiddenErr  *service.ForbiddenError
	)

	switch {
	case errors.As(err, &missingErr), errors.As(err, &validationErr), errors.As(err, &jsonErr):
		writeJSON(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrUnauthorized):
		writeJSON(w, http.StatusUnauthorized, "Unauthorized")
	case errors.As(err, &forbiddenErr):
		writeJSON(w, http.StatusForbidden, err.Error())
	case errors.As(err, &notFoundErr):
		writeJSON(w, http.StatusNotFound, err.Error())
	default:
		s.logger.Error().Err(err).Msg("internal error")
		writeJSON(w, http.StatusInternalServerError, err.Error())
	}
}

// identity resolves the caller, treating a missing or unverifiable token as
// anonymous; operations needing an identity reject that downstream.
func (s *Server) identity(r *http.Request) *auth.Identity {
	identity, err := s.resolver.Identity(r)
	if err != nil {
		return nil
	}
	return identity
}

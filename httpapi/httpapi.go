// Package httpapi exposes the Replan Pipeline over HTTP (spec.md §6.1):
// POST /v1/replan, POST /v1/replan/undo, GET /healthz, routed with
// github.com/go-chi/chi/v5.
package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"elasticreplan/model"
	"elasticreplan/replan"
	"elasticreplan/store"
)

// Server wires the replan strategy and session store to chi routes.
type Server struct {
	Strategy replan.ReplanStrategy
	Store    store.Store
	Log      *zap.SugaredLogger

	router chi.Router
}

// NewServer builds a ready-to-serve Server with its routes registered.
func NewServer(strategy replan.ReplanStrategy, sessionStore store.Store, log *zap.SugaredLogger) *Server {
	s := &Server{Strategy: strategy, Store: sessionStore, Log: log}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(zapRequestLogger(log))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/replan", s.handleReplan)
		r.Post("/replan/undo", s.handleUndo)
	})

	s.router = r
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// zapRequestLogger adapts go.uber.org/zap's SugaredLogger into chi's
// middleware.Logger shape, the structured-request-logging pattern named
// in SPEC_FULL.md §6.1.
func zapRequestLogger(log *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			if log != nil {
				log.Infow("http request",
					"method", r.Method, "path", r.URL.Path,
					"status", ww.Status(), "bytes", ww.BytesWritten(),
					"durationMs", time.Since(start).Seconds()*1000,
					"requestId", middleware.GetReqID(r.Context()))
			}
		})
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type replanRequest struct {
	Itinerary  *model.Itinerary        `json:"itinerary"`
	Disruption *model.DisruptionEvent  `json:"disruption"`
}

type replanResponse struct {
	Itinerary *model.Itinerary `json:"itinerary"`
	Diff      *model.Diff      `json:"diff"`
	Meta      replan.Meta      `json:"meta"`
}

func (s *Server) handleReplan(w http.ResponseWriter, r *http.Request) {
	var req replanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "BAD_REQUEST", "malformed request body")
		return
	}
	if req.Itinerary == nil || req.Disruption == nil {
		writeError(w, http.StatusUnprocessableEntity, "BAD_REQUEST", "itinerary and disruption are required")
		return
	}
	if err := req.Itinerary.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "INVALID_ITINERARY", err.Error())
		return
	}

	next, diff, meta, err := s.Strategy.Replan(r.Context(), req.Itinerary, req.Disruption)
	if err != nil {
		statusCode, code := classifyError(err)
		writeError(w, statusCode, code, err.Error())
		return
	}

	if s.Store != nil {
		s.Store.PutItinerary(r.Context(), next.ID, next)
		s.Store.PushDisruption(r.Context(), next.ID, req.Disruption)
	}

	writeJSON(w, http.StatusOK, replanResponse{Itinerary: next, Diff: diff, Meta: meta})
}

func (s *Server) handleUndo(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SessionID string `json:"sessionId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.SessionID == "" {
		writeError(w, http.StatusUnprocessableEntity, "BAD_REQUEST", "sessionId is required")
		return
	}
	if s.Store == nil {
		writeError(w, http.StatusInternalServerError, "STORE_UNAVAILABLE", "session store not configured")
		return
	}
	prev, ok := s.Store.GetPreviousItinerary(r.Context(), req.SessionID)
	if !ok {
		writeError(w, http.StatusUnprocessableEntity, "NO_PREVIOUS_VERSION", "no previous itinerary to restore")
		return
	}
	s.Store.PutItinerary(r.Context(), req.SessionID, prev)
	writeJSON(w, http.StatusOK, map[string]*model.Itinerary{"itinerary": prev})
}

// classifyError maps a pipeline error to an HTTP status and stable error
// code per spec.md §7: user-input-class failures are 422, everything
// else (unexpected solver/oracle faults) is 500.
func classifyError(err error) (int, string) {
	switch err {
	case replan.ErrTooFewActiveStops:
		return http.StatusUnprocessableEntity, "TOO_FEW_ACTIVE_STOPS"
	case replan.ErrInfeasible:
		return http.StatusUnprocessableEntity, "INFEASIBLE"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR"
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	var body errorBody
	body.Error.Code = code
	body.Error.Message = message
	writeJSON(w, status, body)
}

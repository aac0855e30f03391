package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	appai "github.com/bryanwahyu/ideacheck/internal/application/ai"
	appideas "github.com/bryanwahyu/ideacheck/internal/application/ideas"
	domai "github.com/bryanwahyu/ideacheck/internal/domain/ai"
	"github.com/bryanwahyu/ideacheck/internal/domain/ideas"
	"github.com/bryanwahyu/ideacheck/internal/middleware"
)

const maxBodyBytes = 64 << 10

// Options tune the middleware stack.
type Options struct {
	Logger         *zap.Logger
	CorsOrigins    []string
	APIKeys        map[string]string
	RateLimiter    *middleware.RateLimiter // nil disables rate limiting; owner stops it
	HealthCheckers map[string]middleware.HealthChecker
}

type Router struct {
	ideasSvc *appideas.Service
	aiSvc    *appai.Service
	logger   *zap.Logger
}

func NewRouter(ideasSvc *appideas.Service, aiSvc *appai.Service, opts Options) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Router{ideasSvc: ideasSvc, aiSvc: aiSvc, logger: logger}

	origins := opts.CorsOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	mux := chi.NewRouter()
	mux.Use(chimw.RequestID)
	mux.Use(chimw.RealIP)
	mux.Use(middleware.LoggingMiddleware(logger))
	mux.Use(chimw.Recoverer)
	mux.Use(middleware.MetricsMiddleware)
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))
	mux.Use(middleware.APIKeyAuth(opts.APIKeys))
	if opts.RateLimiter != nil {
		mux.Use(opts.RateLimiter.Middleware)
	}

	mux.Get("/health", middleware.HealthHandler(opts.HealthCheckers))
	mux.Get("/health/live", middleware.LivenessHandler)
	mux.Get("/health/ready", middleware.ReadinessHandler(opts.HealthCheckers))
	mux.Get("/metrics", middleware.MetricsHandler)

	// original route, kept for existing clients
	mux.Post("/validate", r.wrap(r.handleValidate))

	mux.Route("/v1", func(rt chi.Router) {
		rt.Post("/validate", r.wrap(r.handleValidate))
		rt.Get("/ideas", r.wrap(r.handleHistory))
		rt.Post("/advise", r.wrap(r.handleAdvise))
		rt.Post("/archive", r.wrap(r.handleArchive))
	})

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

// badRequest marks client errors that are not domain sentinels.
type badRequest struct{ err error }

func (e badRequest) Error() string { return e.err.Error() }
func (e badRequest) Unwrap() error { return e.err }

func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		err := h(w, req)
		if err == nil {
			return
		}
		var br badRequest
		switch {
		case errors.Is(err, ideas.ErrBlankInput):
			middleware.IncrementBlankRejected()
			writeError(w, http.StatusBadRequest, ideas.BlankInputMessage)
		case errors.As(err, &br):
			writeError(w, http.StatusBadRequest, br.Error())
		case errors.Is(err, domai.ErrQuotaExceeded):
			writeError(w, http.StatusTooManyRequests, "ai quota exceeded")
		case errors.Is(err, domai.ErrDisabled), errors.Is(err, appideas.ErrArchiveDisabled):
			writeError(w, http.StatusServiceUnavailable, err.Error())
		default:
			r.logger.Error("request failed",
				zap.String("path", req.URL.Path),
				zap.String("request_id", chimw.GetReqID(req.Context())),
				zap.Error(err))
			writeError(w, http.StatusInternalServerError, err.Error())
		}
	}
}

type ideaRequest struct {
	Idea string `json:"idea"`
	Save bool   `json:"save"`
}

func decodeIdea(w http.ResponseWriter, req *http.Request) (ideaRequest, error) {
	var body ideaRequest
	req.Body = http.MaxBytesReader(w, req.Body, maxBodyBytes)
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return body, badRequest{fmt.Errorf("invalid request body: %w", err)}
	}
	body.Idea = middleware.SanitizeString(body.Idea)
	if err := middleware.ValidateIdeaLength(body.Idea); err != nil {
		return body, badRequest{err}
	}
	return body, nil
}

// POST /validate, /v1/validate
// Body: {"idea": "...", "save": false}
// Without save the response is the bare result mapping; with save it is the stored record.
func (r *Router) handleValidate(w http.ResponseWriter, req *http.Request) error {
	body, err := decodeIdea(w, req)
	if err != nil {
		return err
	}

	if !body.Save {
		results, err := r.ideasSvc.Validate(body.Idea)
		if err != nil {
			return err
		}
		middleware.IncrementValidated()
		return writeJSON(w, http.StatusOK, results)
	}

	rec, err := r.ideasSvc.ValidateAndSave(req.Context(), body.Idea)
	if err != nil {
		return err
	}
	middleware.IncrementValidated()
	middleware.IncrementSaved()
	return writeJSON(w, http.StatusCreated, rec)
}

// GET /v1/ideas?limit=20
func (r *Router) handleHistory(w http.ResponseWriter, req *http.Request) error {
	limit := 0
	if v := req.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return badRequest{fmt.Errorf("invalid limit %q", v)}
		}
		limit = middleware.ValidateLimit(n)
	}

	list, err := r.ideasSvc.History(req.Context(), limit)
	if err != nil {
		return err
	}
	if list == nil {
		list = []*ideas.ResultRecord{}
	}
	return writeJSON(w, http.StatusOK, list)
}

// POST /v1/advise
// Body: {"idea": "..."}
func (r *Router) handleAdvise(w http.ResponseWriter, req *http.Request) error {
	if !r.aiSvc.Enabled() {
		return domai.ErrDisabled
	}
	body, err := decodeIdea(w, req)
	if err != nil {
		return err
	}
	adv, err := r.aiSvc.Advise(req.Context(), body.Idea)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, adv)
}

// POST /v1/archive
func (r *Router) handleArchive(w http.ResponseWriter, req *http.Request) error {
	url, err := r.ideasSvc.Archive(req.Context())
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, map[string]any{
		"url":        url,
		"archivedAt": time.Now().UTC(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

package chi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/profilematch/internal/domain"
	"github.com/kailas-cloud/profilematch/internal/logger"
	healthuc "github.com/kailas-cloud/profilematch/internal/usecase/health"
	matchuc "github.com/kailas-cloud/profilematch/internal/usecase/match"
	"github.com/kailas-cloud/profilematch/internal/version"
)

// defaultMaxBodyBytes bounds request bodies when the server is built without WithMaxBodyBytes.
const defaultMaxBodyBytes = 4 << 20

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// errorResponse is the body of every failed request.
type errorResponse struct {
	Error string `json:"error"`
}

// Server serves the ranking API.
type Server struct {
	matcher       matchuc.Matcher
	health        *healthuc.Service
	logger        *zap.Logger
	maxBodyBytes  int64
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(matcher matchuc.Matcher, health *healthuc.Service, logger *zap.Logger) *Server {
	s := &Server{
		matcher:      matcher,
		health:       health,
		logger:       logger,
		maxBodyBytes: defaultMaxBodyBytes,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrMalformedRequest, http.StatusBadRequest),
		sentinelHandler(domain.ErrTooManyCandidates, http.StatusRequestEntityTooLarge),
		// Core failures map to 500 with the message in the body.
		sentinelHandler(domain.ErrMissingField, http.StatusInternalServerError),
		sentinelHandler(domain.ErrEmptyCorpus, http.StatusInternalServerError),
		sentinelHandler(domain.ErrLookup, http.StatusInternalServerError),
	}
	return s
}

// WithMaxBodyBytes bounds the request body size.
func (s *Server) WithMaxBodyBytes(n int64) *Server {
	if n > 0 {
		s.maxBodyBytes = n
	}
	return s
}

// Routes registers the API on r.
func (s *Server) Routes(r chi.Router) {
	r.Post("/find-similar-profiles", s.FindSimilarProfiles)
	r.Get("/health", s.HealthCheck)
	r.Get("/version", s.Version)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
}

// FindSimilarProfiles handles POST /find-similar-profiles.
func (s *Server) FindSimilarProfiles(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxBodyBytes))
	if err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	req, err := matchuc.DecodeRequest(body)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	ctx := logger.With(r.Context(),
		zap.String("user_id", req.User.ID()),
		zap.Int("candidates", len(req.Profiles)),
	)
	results, err := s.matcher.FindSimilar(ctx, &req)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	// Encode before committing the status so a failure can still become a 500.
	data, err := json.Marshal(matchuc.NewResponse(results))
	if err != nil {
		logger.FromContext(ctx).Error("Failed to encode ranking response", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeBody(w, http.StatusOK, data)
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	status := http.StatusOK
	if report.Status != healthuc.Healthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, report)
}

// Version handles GET /version.
func (s *Server) Version(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, version.Get())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		status = http.StatusInternalServerError
		data, _ = json.Marshal(errorResponse{Error: "internal error"})
	}
	writeBody(w, status, data)
}

func writeBody(w http.ResponseWriter, status int, data []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(data, '\n'))
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// safeDomainMessage returns the client-facing message of a domain error.
// Wrapping context added by inner layers is dropped; unknown errors become "internal error".
func safeDomainMessage(err error) string {
	var mfe *domain.MissingFieldError
	if errors.As(err, &mfe) {
		return mfe.Error()
	}
	var le *domain.LookupError
	if errors.As(err, &le) {
		return le.Error()
	}
	var cle *domain.CandidateLimitError
	if errors.As(err, &cle) {
		return cle.Error()
	}
	if errors.Is(err, domain.ErrMalformedRequest) {
		return err.Error()
	}
	if errors.Is(err, domain.ErrEmptyCorpus) {
		return domain.ErrEmptyCorpus.Error()
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal error")
}

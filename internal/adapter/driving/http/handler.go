// Package httphandler implements the HTTP driving adapter for the commit activity endpoint.
package httphandler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/ericfisherdev/weeklycommits/internal/application"
)

// maxBodyBytes caps the request body of the commit activity endpoint.
const maxBodyBytes = 1 << 20

// Handler is the HTTP driving adapter that serves the commit activity endpoint.
type Handler struct {
	activity *application.ActivityService
	timeout  time.Duration
	logger   *slog.Logger
}

// NewHandler creates a Handler. timeout bounds the processing of one request;
// zero disables it.
func NewHandler(activity *application.ActivityService, timeout time.Duration, logger *slog.Logger) *Handler {
	return &Handler{
		activity: activity,
		timeout:  timeout,
		logger:   logger,
	}
}

// NewServeMux creates an http.Handler with all routes registered and wrapped
// with logging and recovery middleware. When limiter is non-nil it rate limits
// the commit activity route; /healthz is never limited.
func NewServeMux(h *Handler, limiter *rate.Limiter, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()

	var weeklyCommits http.Handler = http.HandlerFunc(h.WeeklyCommits)
	if limiter != nil {
		weeklyCommits = rateLimitMiddleware(limiter, weeklyCommits)
	}

	mux.HandleFunc("GET /healthz", h.Health)
	mux.Handle("/", weeklyCommits)

	// Recovery innermost so panics are caught before logging.
	return loggingMiddleware(logger, recoveryMiddleware(logger, mux))
}

// weeklyCommitsRequest is the JSON body of the commit activity endpoint.
type weeklyCommitsRequest struct {
	EncryptedToken *string `json:"encryptedToken"`
}

// decodeWeeklyCommitsRequest reads exactly one JSON value from body.
func decodeWeeklyCommitsRequest(body io.Reader) (weeklyCommitsRequest, error) {
	var req weeklyCommitsRequest

	dec := json.NewDecoder(body)
	if err := dec.Decode(&req); err != nil {
		return req, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return req, errors.New("unexpected data after request body")
	}

	return req, nil
}

// WeeklyCommits decrypts the submitted token and returns the token owner's
// commit counts per day over the trailing week.
func (h *Handler) WeeklyCommits(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	req, err := decodeWeeklyCommitsRequest(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil || req.EncryptedToken == nil {
		writeText(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ctx := r.Context()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	series, err := h.activity.WeeklyActivity(ctx, *req.EncryptedToken)
	if err != nil {
		h.logger.Error("error processing request", "error", err)
		writeText(w, http.StatusInternalServerError, "error processing request")
		return
	}

	resp := make([]DailyCountResponse, 0, len(series))
	for _, d := range series {
		resp = append(resp, toDailyCountResponse(d))
	}

	writeJSON(w, http.StatusOK, resp)
}

// Health reports that the process is serving requests.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

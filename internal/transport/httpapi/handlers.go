package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jacobbvfx/instagram-scraper/internal/domain"
	"github.com/jacobbvfx/instagram-scraper/internal/usecase"
)

type feedRequest struct {
	ProfileID string `json:"profile_id"`
	First     *int   `json:"first"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(true)
	_ = enc.Encode(v)
}

func writeCORS(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
}

func errorBody(code, message string) map[string]any {
	return map[string]any{"error": code, "message": message}
}

// FeedHandler serves POST feed requests and answers CORS preflights.
func FeedHandler(uc usecase.FeedUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeCORS(w)

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		if r.Method != http.MethodPost {
			writeJSON(w, http.StatusMethodNotAllowed, errorBody("method_not_allowed", "use POST"))
			return
		}

		requestID := uuid.NewString()

		var body feedRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody("invalid_request", "request body must be valid JSON"))
			return
		}

		start := time.Now()
		payload, err := uc.GetFeed(r.Context(), body.ProfileID, body.First)
		if err != nil {
			status, code, message := mapError(err)
			zap.L().Warn("feed request failed",
				zap.String("request_id", requestID),
				zap.String("profile_id", body.ProfileID),
				zap.Int("status", status),
				zap.Error(err))
			writeJSON(w, status, errorBody(code, message))
			return
		}

		zap.L().Info("feed request served",
			zap.String("request_id", requestID),
			zap.String("profile_id", body.ProfileID),
			zap.Int("first", payload.First),
			zap.Duration("duration", time.Since(start)))
		writeJSON(w, http.StatusOK, payload)
	}
}

func mapError(err error) (status int, code, message string) {
	var upstreamErr *domain.UpstreamError
	var imageErr *domain.ImageError

	switch {
	case errors.Is(err, domain.ErrMissingProfileID):
		return http.StatusBadRequest, "invalid_request", "profile_id is required"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "upstream_timeout", "the content provider took too long to respond"
	case errors.As(err, &upstreamErr):
		return http.StatusBadGateway, "upstream_error", "failed to query the content provider"
	case errors.As(err, &imageErr):
		return http.StatusBadGateway, "image_error", "failed to fetch a post image"
	default:
		return http.StatusInternalServerError, "internal_error", "internal error"
	}
}

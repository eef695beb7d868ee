package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jacobbvfx/instagram-scraper/internal/domain"
)

type stubFeed struct {
	payload *domain.FeedPayload
	err     error
}

func (s *stubFeed) GetFeed(ctx context.Context, profileID string, first *int) (*domain.FeedPayload, error) {
	if profileID == "" {
		return nil, domain.ErrMissingProfileID
	}
	if s.err != nil {
		return nil, s.err
	}
	return s.payload, nil
}

func doRequest(t *testing.T, uc *stubFeed, method, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, "/posts", strings.NewReader(body))
	rec := httptest.NewRecorder()
	FeedHandler(uc)(rec, req)
	return rec
}

func TestFeedHandlerPreflight(t *testing.T) {
	rec := doRequest(t, &stubFeed{}, http.MethodOptions, "")

	require.Equal(t, http.StatusOK, rec.Code)
	require.Empty(t, rec.Body.String())
	require.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	require.Equal(t, "GET, POST", rec.Header().Get("Access-Control-Allow-Methods"))
	require.Equal(t, "Content-Type", rec.Header().Get("Access-Control-Allow-Headers"))
}

func TestFeedHandlerMethodNotAllowed(t *testing.T) {
	rec := doRequest(t, &stubFeed{}, http.MethodGet, "")
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestFeedHandlerMissingProfileID(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "absent field", body: `{"first": 5}`},
		{name: "empty string", body: `{"profile_id": "", "first": 5}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, &stubFeed{}, http.MethodPost, tt.body)
			require.Equal(t, http.StatusBadRequest, rec.Code)

			var body map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			require.Contains(t, body, "error")
			require.Contains(t, body, "message")
		})
	}
}

func TestFeedHandlerBadJSONBody(t *testing.T) {
	rec := doRequest(t, &stubFeed{}, http.MethodPost, `{"profile_id":`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFeedHandlerSuccess(t *testing.T) {
	uc := &stubFeed{payload: &domain.FeedPayload{
		First: 2,
		Total: 99,
		Result: []domain.Post{
			{ID: 1, Shortcode: "bbb", Image: "aW1hZ2Ui", Date: "2020-09-14"},
			{ID: 0, Shortcode: "aaa", Image: "aW1hZ2Ui", Date: "2020-09-13"},
		},
	}}

	rec := doRequest(t, uc, http.MethodPost, `{"profile_id": "abc", "first": 2}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

	var body struct {
		First  int           `json:"first"`
		Total  int           `json:"total"`
		Result []domain.Post `json:"result"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, 2, body.First)
	require.Equal(t, 99, body.Total)
	require.Len(t, body.Result, 2)
	require.Equal(t, 1, body.Result[0].ID)
}

func TestFeedHandlerErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "upstream failure",
			err:        &domain.UpstreamError{Reason: "unexpected status 500"},
			wantStatus: http.StatusBadGateway,
			wantCode:   "upstream_error",
		},
		{
			name:       "image failure",
			err:        &domain.ImageError{URL: "https://cdn.example/x", Err: errors.New("refused")},
			wantStatus: http.StatusBadGateway,
			wantCode:   "image_error",
		},
		{
			name:       "upstream deadline",
			err:        &domain.UpstreamError{Reason: "query failed", Err: context.DeadlineExceeded},
			wantStatus: http.StatusGatewayTimeout,
			wantCode:   "upstream_timeout",
		},
		{
			name:       "unknown failure",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "internal_error",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, &stubFeed{err: tt.err}, http.MethodPost, `{"profile_id": "abc"}`)
			require.Equal(t, tt.wantStatus, rec.Code)

			var body map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			require.Equal(t, tt.wantCode, body["error"])
			require.NotEmpty(t, body["message"])
		})
	}
}

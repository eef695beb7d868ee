package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/jacobbvfx/instagram-scraper/internal/domain"
)

const (
	defaultBaseURL   = "https://www.instagram.com"
	defaultQueryHash = "e769aa130647d2354c40ea6a439bfc08"
	userAgent        = "instagram-scraper/1.0"
)

// HTTPClient is the subset of *http.Client the upstream package depends on.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client queries the provider's GraphQL endpoint for the first page of a
// profile's timeline. It never paginates and never retries.
type Client struct {
	client    HTTPClient
	baseURL   string
	queryHash string
}

type Config struct {
	BaseURL   string
	QueryHash string
	Client    HTTPClient
	Timeout   time.Duration
}

func NewClient(cfg Config) *Client {
	c := &Client{
		client:    cfg.Client,
		baseURL:   cfg.BaseURL,
		queryHash: cfg.QueryHash,
	}
	if c.baseURL == "" {
		c.baseURL = defaultBaseURL
	}
	if c.queryHash == "" {
		c.queryHash = defaultQueryHash
	}
	if c.client == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		c.client = &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout:   5 * time.Second,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				TLSHandshakeTimeout: 5 * time.Second,
				MaxIdleConns:        100,
				IdleConnTimeout:     90 * time.Second,
			},
		}
	}
	return c
}

var _ domain.FeedSource = (*Client)(nil)

type captionEdges struct {
	Edges []struct {
		Node struct {
			Text string `json:"text"`
		} `json:"node"`
	} `json:"edges"`
}

type mediaNode struct {
	Shortcode    string       `json:"shortcode"`
	DisplayURL   string       `json:"display_url"`
	ThumbnailSrc string       `json:"thumbnail_src"`
	TakenAt      int64        `json:"taken_at_timestamp"`
	Caption      captionEdges `json:"edge_media_to_caption"`
}

type queryResponse struct {
	Data struct {
		User *struct {
			Timeline *struct {
				Count int `json:"count"`
				Edges []struct {
					Node mediaNode `json:"node"`
				} `json:"edges"`
			} `json:"edge_owner_to_timeline_media"`
		} `json:"user"`
	} `json:"data"`
}

func (c *Client) FetchPosts(ctx context.Context, profileID string, first int) (*domain.FeedPage, error) {
	variables, err := json.Marshal(map[string]any{"id": profileID, "first": first})
	if err != nil {
		return nil, &domain.UpstreamError{Reason: "failed to encode query variables", Err: err}
	}

	target := c.baseURL + "/graphql/query/?query_hash=" + c.queryHash +
		"&variables=" + url.QueryEscape(string(variables))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, &domain.UpstreamError{Reason: "failed to build request", Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &domain.UpstreamError{Reason: "query failed", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &domain.UpstreamError{Reason: fmt.Sprintf("unexpected status %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.UpstreamError{Reason: "failed to read response", Err: err}
	}

	var parsed queryResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, &domain.UpstreamError{Reason: "response is not valid JSON", Err: err}
	}
	if parsed.Data.User == nil || parsed.Data.User.Timeline == nil {
		return nil, &domain.UpstreamError{Reason: "response is missing the timeline"}
	}

	timeline := parsed.Data.User.Timeline
	page := &domain.FeedPage{
		Total:       timeline.Count,
		Descriptors: make([]domain.PostDescriptor, 0, len(timeline.Edges)),
	}
	for _, edge := range timeline.Edges {
		node := edge.Node
		caption := ""
		if len(node.Caption.Edges) > 0 {
			caption = node.Caption.Edges[0].Node.Text
		}
		page.Descriptors = append(page.Descriptors, domain.PostDescriptor{
			Caption:   caption,
			Thumbnail: node.ThumbnailSrc,
			ImageURL:  node.DisplayURL,
			Shortcode: node.Shortcode,
			TakenAt:   node.TakenAt,
		})
	}
	return page, nil
}

// Package unsplash is a minimal client for the Unsplash photo search API.
package unsplash

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const (
	// DefaultBaseURL is the Unsplash API root.
	DefaultBaseURL = "https://api.unsplash.com"
	// PerPage is the fixed page size requested from Unsplash.
	PerPage = 20
)

var (
	// ErrEmptyQuery is returned when the search query is empty
	ErrEmptyQuery = errors.New("query cannot be empty")
	// ErrNoAccessKey is returned when no Unsplash access key is configured
	ErrNoAccessKey = errors.New("unsplash access key not set")
)

// PhotoURLs holds the display URL set for one photo.
type PhotoURLs struct {
	Raw     string `json:"raw"`
	Full    string `json:"full"`
	Regular string `json:"regular"`
	Small   string `json:"small"`
	Thumb   string `json:"thumb"`
}

// Photographer identifies the owner of a photo.
type Photographer struct {
	Name     string `json:"name"`
	Username string `json:"username"`
}

// Photo is one search hit as returned by Unsplash.
type Photo struct {
	ID             string       `json:"id"`
	URLs           PhotoURLs    `json:"urls"`
	AltDescription string       `json:"alt_description"`
	Description    string       `json:"description"`
	User           Photographer `json:"user"`
	Likes          int          `json:"likes"`
}

// SearchResult is the paged response of a photo search.
type SearchResult struct {
	Total      int     `json:"total"`
	TotalPages int     `json:"total_pages"`
	Results    []Photo `json:"results"`
}

// Client talks to the Unsplash API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	accessKey  string
}

// NewClient creates a client using the default Unsplash endpoint.
func NewClient(accessKey string) *Client {
	return NewClientWithBaseURL(accessKey, DefaultBaseURL)
}

// NewClientWithBaseURL creates a client against a custom endpoint (for testing).
func NewClientWithBaseURL(accessKey, baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    baseURL,
		accessKey:  accessKey,
	}
}

// SearchPhotos runs a photo search for the given query with a fixed page
// size of PerPage. Non-2xx responses are reported as errors; no retry is
// attempted.
func (c *Client) SearchPhotos(ctx context.Context, query string) (*SearchResult, error) {
	if query == "" {
		return nil, ErrEmptyQuery
	}
	if c.accessKey == "" {
		return nil, ErrNoAccessKey
	}

	endpoint := fmt.Sprintf("%s/search/photos?query=%s&per_page=%d",
		c.baseURL, url.QueryEscape(query), PerPage)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Client-ID "+c.accessKey)
	req.Header.Set("Accept-Version", "v1")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("unsplash request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unsplash returned status %d", resp.StatusCode)
	}

	var result SearchResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode unsplash response: %w", err)
	}

	return &result, nil
}

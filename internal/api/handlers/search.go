package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/kalichetiAravindreddy/image-search/internal/api"
	"github.com/kalichetiAravindreddy/image-search/internal/api/middleware"
	"github.com/kalichetiAravindreddy/image-search/internal/domain"
	"github.com/kalichetiAravindreddy/image-search/internal/service"
)

type SearchService interface {
	RecordAndSearch(ctx context.Context, user *domain.User, term string) (*service.SearchOutput, error)
	History(ctx context.Context, user *domain.User) ([]*domain.SearchRecord, error)
	TopSearches(ctx context.Context) ([]*domain.TopSearch, error)
}

type SearchHandler struct {
	svc SearchService
}

func NewSearchHandler(svc SearchService) *SearchHandler {
	return &SearchHandler{svc: svc}
}

type SearchRequest struct {
	Term string `json:"term"`
}

type ImageURLsResponse struct {
	Raw     string `json:"raw"`
	Full    string `json:"full"`
	Regular string `json:"regular"`
	Small   string `json:"small"`
	Thumb   string `json:"thumb"`
}

type ImageUserResponse struct {
	Name     string `json:"name"`
	Username string `json:"username"`
}

type ImageResponse struct {
	ID             string            `json:"id"`
	URLs           ImageURLsResponse `json:"urls"`
	AltDescription string            `json:"alt_description"`
	Description    string            `json:"description"`
	User           ImageUserResponse `json:"user"`
	Likes          int               `json:"likes"`
}

type SearchDataResponse struct {
	Term    string           `json:"term"`
	Total   int              `json:"total"`
	Results []*ImageResponse `json:"results"`
}

type HistoryEntryResponse struct {
	Term      string `json:"term"`
	Timestamp string `json:"timestamp"`
}

type TopSearchResponse struct {
	Term  string `json:"term"`
	Count int    `json:"count"`
}

// Search logs the search and proxies the upstream results.
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user := middleware.GetUser(r.Context())

	out, err := h.svc.RecordAndSearch(r.Context(), user, req.Term)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	results := make([]*ImageResponse, 0, len(out.Results))
	for _, photo := range out.Results {
		results = append(results, &ImageResponse{
			ID: photo.ID,
			URLs: ImageURLsResponse{
				Raw:     photo.URLs.Raw,
				Full:    photo.URLs.Full,
				Regular: photo.URLs.Regular,
				Small:   photo.URLs.Small,
				Thumb:   photo.URLs.Thumb,
			},
			AltDescription: photo.AltDescription,
			Description:    photo.Description,
			User: ImageUserResponse{
				Name:     photo.User.Name,
				Username: photo.User.Username,
			},
			Likes: photo.Likes,
		})
	}

	api.Success(w, http.StatusOK, SearchDataResponse{
		Term:    out.Term,
		Total:   out.Total,
		Results: results,
	})
}

// History returns the calling user's recent searches.
func (h *SearchHandler) History(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())

	records, err := h.svc.History(r.Context(), user)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	entries := make([]*HistoryEntryResponse, 0, len(records))
	for _, rec := range records {
		entries = append(entries, &HistoryEntryResponse{
			Term:      rec.Term,
			Timestamp: rec.CreatedAt.UTC().Format(time.RFC3339),
		})
	}

	api.Success(w, http.StatusOK, entries)
}

// TopSearches returns the global most-searched terms. Public.
func (h *SearchHandler) TopSearches(w http.ResponseWriter, r *http.Request) {
	top, err := h.svc.TopSearches(r.Context())
	if err != nil {
		api.HandleError(w, err)
		return
	}

	entries := make([]*TopSearchResponse, 0, len(top))
	for _, t := range top {
		entries = append(entries, &TopSearchResponse{
			Term:  t.Term,
			Count: t.Count,
		})
	}

	api.Success(w, http.StatusOK, entries)
}

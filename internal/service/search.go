package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kalichetiAravindreddy/image-search/internal/domain"
	"github.com/kalichetiAravindreddy/image-search/internal/telemetry"
	"github.com/kalichetiAravindreddy/image-search/internal/unsplash"
)

const (
	// HistoryLimit caps how many records History returns.
	HistoryLimit = 20
	// TopSearchesLimit caps how many terms TopSearches returns.
	TopSearchesLimit = 5
)

// SearchRecordRepository persists the append-only search log.
type SearchRecordRepository interface {
	Create(ctx context.Context, rec *domain.SearchRecord) error
	ListByUser(ctx context.Context, userID string, limit int) ([]*domain.SearchRecord, error)
	TopTerms(ctx context.Context, limit int) ([]*domain.TopSearch, error)
}

// ImageSearchClient queries the upstream image provider.
type ImageSearchClient interface {
	SearchPhotos(ctx context.Context, query string) (*unsplash.SearchResult, error)
}

// UUIDGenerator defines interface for UUID generation (for testing)
type UUIDGenerator interface {
	NewString() string
}

// DefaultUUIDGenerator is the default UUID generator using google/uuid
type DefaultUUIDGenerator struct{}

// NewString generates a new UUID string
func (g *DefaultUUIDGenerator) NewString() string {
	return uuid.NewString()
}

// SearchService orchestrates authenticated searches: it logs the search,
// queries the upstream provider and answers the two read queries built on
// the log. It holds no state of its own; identity is passed explicitly
// into every operation.
type SearchService struct {
	searchRepo SearchRecordRepository
	images     ImageSearchClient
	uuidGen    UUIDGenerator
}

// NewSearchService creates a new SearchService instance
func NewSearchService(searchRepo SearchRecordRepository, images ImageSearchClient) *SearchService {
	return &SearchService{
		searchRepo: searchRepo,
		images:     images,
		uuidGen:    &DefaultUUIDGenerator{},
	}
}

// NewSearchServiceWithUUIDGen creates a new SearchService with custom UUID generator (for testing)
func NewSearchServiceWithUUIDGen(searchRepo SearchRecordRepository, images ImageSearchClient, uuidGen UUIDGenerator) *SearchService {
	return &SearchService{
		searchRepo: searchRepo,
		images:     images,
		uuidGen:    uuidGen,
	}
}

// SearchOutput is the result of one search call.
type SearchOutput struct {
	Term    string
	Total   int
	Results []unsplash.Photo
}

// RecordAndSearch logs one search event for the user and queries the
// upstream provider with the trimmed term. The record is written before
// the upstream call and persists even when that call fails. Two calls
// with the same term produce two records: every call is a new event.
func (s *SearchService) RecordAndSearch(ctx context.Context, user *domain.User, term string) (*SearchOutput, error) {
	if user == nil {
		return nil, domain.ErrNotAuthenticated
	}

	trimmed := strings.TrimSpace(term)
	if trimmed == "" {
		return nil, domain.ErrEmptySearchTerm
	}

	ctx, span := telemetry.StartSpan(ctx, "SearchService.RecordAndSearch", telemetry.SpanAttributes{
		UserID: user.ID,
		Term:   trimmed,
	})
	defer span.End()

	rec := domain.NewSearchRecord(s.uuidGen.NewString(), user.ID, trimmed, time.Now().UTC())
	if err := domain.ValidateSearchRecord(rec); err != nil {
		return nil, domain.NewDomainErrorWithCause(domain.ErrCodeValidation, "invalid search record", err)
	}

	if err := s.searchRepo.Create(ctx, rec); err != nil {
		span.SetError(err)
		return nil, domain.NewStoreError("recording search", err)
	}

	result, err := s.images.SearchPhotos(ctx, trimmed)
	if err != nil {
		span.SetError(err)
		return nil, domain.NewUpstreamError(err)
	}

	return &SearchOutput{
		Term:    trimmed,
		Total:   result.Total,
		Results: result.Results,
	}, nil
}

// History returns the calling user's own records, most recent first,
// capped at HistoryLimit.
func (s *SearchService) History(ctx context.Context, user *domain.User) ([]*domain.SearchRecord, error) {
	if user == nil {
		return nil, domain.ErrNotAuthenticated
	}

	records, err := s.searchRepo.ListByUser(ctx, user.ID, HistoryLimit)
	if err != nil {
		return nil, domain.NewStoreError("loading search history", err)
	}
	return records, nil
}

// TopSearches aggregates across all users' records, grouped by exact
// term, count descending, capped at TopSearchesLimit. Public: no
// identity required.
func (s *SearchService) TopSearches(ctx context.Context) ([]*domain.TopSearch, error) {
	top, err := s.searchRepo.TopTerms(ctx, TopSearchesLimit)
	if err != nil {
		return nil, domain.NewStoreError("aggregating top searches", err)
	}
	return top, nil
}

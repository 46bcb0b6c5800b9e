package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/kalichetiAravindreddy/image-search/internal/api/handlers"
	"github.com/kalichetiAravindreddy/image-search/internal/api/middleware"
	"github.com/kalichetiAravindreddy/image-search/internal/domain"
	"github.com/kalichetiAravindreddy/image-search/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSessionValidator struct {
	mock.Mock
}

func (m *MockSessionValidator) UserForToken(ctx context.Context, token string) (*domain.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type MockSearchService struct {
	mock.Mock
}

func (m *MockSearchService) RecordAndSearch(ctx context.Context, user *domain.User, term string) (*service.SearchOutput, error) {
	args := m.Called(ctx, user, term)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SearchOutput), args.Error(1)
}

func (m *MockSearchService) History(ctx context.Context, user *domain.User) ([]*domain.SearchRecord, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.SearchRecord), args.Error(1)
}

func (m *MockSearchService) TopSearches(ctx context.Context) ([]*domain.TopSearch, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.TopSearch), args.Error(1)
}

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) LoginURL(state string) string {
	args := m.Called(state)
	return args.String(0)
}

func (m *MockAuthService) HandleCallback(ctx context.Context, code string) (*domain.User, string, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).(*domain.User), args.String(1), args.Error(2)
}

func (m *MockAuthService) Logout(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func newTestRouter(validator middleware.SessionValidator, searchSvc handlers.SearchService, authSvc handlers.AuthService) http.Handler {
	return NewRouter(RouterConfig{
		SessionValidator: validator,
		AuthHandler:      handlers.NewAuthHandler(authSvc, "http://localhost:3000", 24*time.Hour, false),
		SearchHandler:    handlers.NewSearchHandler(searchSvc),
	})
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(new(MockSessionValidator), new(MockSearchService), new(MockAuthService))

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestTopSearchesIsPublic(t *testing.T) {
	searchSvc := new(MockSearchService)
	searchSvc.On("TopSearches", mock.Anything).Return([]*domain.TopSearch{{Term: "mountains", Count: 3}}, nil)
	router := newTestRouter(new(MockSessionValidator), searchSvc, new(MockAuthService))

	req := httptest.NewRequest(http.MethodGet, "/api/top-searches", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "mountains")
}

func TestSearchRequiresSession(t *testing.T) {
	searchSvc := new(MockSearchService)
	router := newTestRouter(new(MockSessionValidator), searchSvc, new(MockAuthService))

	body, _ := json.Marshal(map[string]string{"term": "mountains"})
	req := httptest.NewRequest(http.MethodPost, "/api/search", bytes.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	searchSvc.AssertNotCalled(t, "RecordAndSearch")
}

func TestSearchWithSessionCookie(t *testing.T) {
	validator := new(MockSessionValidator)
	user := &domain.User{ID: "u1", GoogleID: "g-123", DisplayName: "Test User", Email: "test@example.com"}
	validator.On("UserForToken", mock.Anything, "tok-123").Return(user, nil)

	searchSvc := new(MockSearchService)
	searchSvc.On("RecordAndSearch", mock.Anything, user, "mountains").Return(&service.SearchOutput{
		Term:  "mountains",
		Total: 7,
	}, nil)

	router := newTestRouter(validator, searchSvc, new(MockAuthService))

	body, _ := json.Marshal(map[string]string{"term": "mountains"})
	req := httptest.NewRequest(http.MethodPost, "/api/search", bytes.NewReader(body))
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: "tok-123"})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"term":"mountains"`)
	searchSvc.AssertExpectations(t)
}

func TestHistoryRequiresSession(t *testing.T) {
	router := newTestRouter(new(MockSessionValidator), new(MockSearchService), new(MockAuthService))

	req := httptest.NewRequest(http.MethodGet, "/api/search/history", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCurrentUserWithoutSession(t *testing.T) {
	router := newTestRouter(new(MockSessionValidator), new(MockSearchService), new(MockAuthService))

	req := httptest.NewRequest(http.MethodGet, "/api/auth/user", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":false,"user":null}`, w.Body.String())
}

func TestGoogleLoginRedirects(t *testing.T) {
	authSvc := new(MockAuthService)
	authSvc.On("LoginURL", mock.AnythingOfType("string")).Return("https://accounts.google.com/o/oauth2/auth")
	router := newTestRouter(new(MockSessionValidator), new(MockSearchService), authSvc)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/google", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "https://accounts.google.com/o/oauth2/auth", w.Header().Get("Location"))
}

func TestUnknownRoute(t *testing.T) {
	router := newTestRouter(new(MockSessionValidator), new(MockSearchService), new(MockAuthService))

	req := httptest.NewRequest(http.MethodGet, "/api/nope", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRequestBodyTooLarge(t *testing.T) {
	validator := new(MockSessionValidator)
	user := &domain.User{ID: "u1", GoogleID: "g-123", DisplayName: "Test User", Email: "test@example.com"}
	validator.On("UserForToken", mock.Anything, "tok-123").Return(user, nil)

	router := newTestRouter(validator, new(MockSearchService), new(MockAuthService))

	huge := bytes.Repeat([]byte("a"), 2*1024*1024)
	req := httptest.NewRequest(http.MethodPost, "/api/search", bytes.NewReader(huge))
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: "tok-123"})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.NotEqual(t, http.StatusOK, w.Code)
}

package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/kalichetiAravindreddy/image-search/internal/api/middleware"
	"github.com/kalichetiAravindreddy/image-search/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

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

func newAuthHandler(svc AuthService) *AuthHandler {
	return NewAuthHandler(svc, "http://localhost:3000", 24*time.Hour, false)
}

func findCookie(t *testing.T, w *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestGoogleLogin(t *testing.T) {
	svc := new(MockAuthService)
	svc.On("LoginURL", mock.AnythingOfType("string")).Return("https://accounts.google.com/o/oauth2/auth?state=xyz")
	handler := newAuthHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/google", nil)
	w := httptest.NewRecorder()

	handler.GoogleLogin(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "https://accounts.google.com/o/oauth2/auth?state=xyz", w.Header().Get("Location"))

	state := findCookie(t, w, "imgsearch_oauth_state")
	require.NotNil(t, state)
	assert.NotEmpty(t, state.Value)
	assert.True(t, state.HttpOnly)
	assert.Equal(t, int((10 * time.Minute).Seconds()), state.MaxAge)
}

func TestGoogleCallback(t *testing.T) {
	svc := new(MockAuthService)
	user := testUser()
	svc.On("HandleCallback", mock.Anything, "auth-code").Return(user, "session-token", nil)
	handler := newAuthHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/google/callback?state=xyz&code=auth-code", nil)
	req.AddCookie(&http.Cookie{Name: "imgsearch_oauth_state", Value: "xyz"})
	w := httptest.NewRecorder()

	handler.GoogleCallback(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "http://localhost:3000/dashboard", w.Header().Get("Location"))

	session := findCookie(t, w, middleware.SessionCookieName)
	require.NotNil(t, session)
	assert.Equal(t, "session-token", session.Value)
	assert.True(t, session.HttpOnly)
	assert.Equal(t, int((24 * time.Hour).Seconds()), session.MaxAge)

	state := findCookie(t, w, "imgsearch_oauth_state")
	require.NotNil(t, state)
	assert.Equal(t, -1, state.MaxAge)
	svc.AssertExpectations(t)
}

func TestGoogleCallbackStateMismatch(t *testing.T) {
	svc := new(MockAuthService)
	handler := newAuthHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/google/callback?state=other&code=auth-code", nil)
	req.AddCookie(&http.Cookie{Name: "imgsearch_oauth_state", Value: "xyz"})
	w := httptest.NewRecorder()

	handler.GoogleCallback(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "http://localhost:3000/login", w.Header().Get("Location"))
	assert.Nil(t, findCookie(t, w, middleware.SessionCookieName))
	svc.AssertNotCalled(t, "HandleCallback")
}

func TestGoogleCallbackMissingStateCookie(t *testing.T) {
	svc := new(MockAuthService)
	handler := newAuthHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/google/callback?state=xyz&code=auth-code", nil)
	w := httptest.NewRecorder()

	handler.GoogleCallback(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "http://localhost:3000/login", w.Header().Get("Location"))
	svc.AssertNotCalled(t, "HandleCallback")
}

func TestGoogleCallbackExchangeFailure(t *testing.T) {
	svc := new(MockAuthService)
	svc.On("HandleCallback", mock.Anything, "bad-code").
		Return(nil, "", domain.NewDomainError(domain.ErrCodeUnauthorized, "login failed"))
	handler := newAuthHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/google/callback?state=xyz&code=bad-code", nil)
	req.AddCookie(&http.Cookie{Name: "imgsearch_oauth_state", Value: "xyz"})
	w := httptest.NewRecorder()

	handler.GoogleCallback(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "http://localhost:3000/login", w.Header().Get("Location"))
	assert.Nil(t, findCookie(t, w, middleware.SessionCookieName))
}

func TestCurrentUser(t *testing.T) {
	svc := new(MockAuthService)
	handler := newAuthHandler(svc)
	user := testUser()
	user.Avatar = "https://example.com/a.png"

	req := requestWithUser(httptest.NewRequest(http.MethodGet, "/api/auth/user", nil), user)
	w := httptest.NewRecorder()

	handler.CurrentUser(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp CurrentUserResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.True(t, resp.Success)
	require.NotNil(t, resp.User)
	assert.Equal(t, "u1", resp.User.ID)
	assert.Equal(t, "Test User", resp.User.Name)
	assert.Equal(t, "test@example.com", resp.User.Email)
	assert.Equal(t, "https://example.com/a.png", resp.User.Avatar)
}

func TestCurrentUserAnonymous(t *testing.T) {
	svc := new(MockAuthService)
	handler := newAuthHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/user", nil)
	w := httptest.NewRecorder()

	handler.CurrentUser(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":false,"user":null}`, w.Body.String())
}

func TestLogout(t *testing.T) {
	svc := new(MockAuthService)
	svc.On("Logout", mock.Anything, "session-token").Return(nil)
	handler := newAuthHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/logout", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: "session-token"})
	w := httptest.NewRecorder()

	handler.Logout(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"message":"Logged out successfully"}`, w.Body.String())

	session := findCookie(t, w, middleware.SessionCookieName)
	require.NotNil(t, session)
	assert.Equal(t, -1, session.MaxAge)
	svc.AssertExpectations(t)
}

func TestLogoutWithoutCookie(t *testing.T) {
	svc := new(MockAuthService)
	svc.On("Logout", mock.Anything, "").Return(nil)
	handler := newAuthHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/logout", nil)
	w := httptest.NewRecorder()

	handler.Logout(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"message":"Logged out successfully"}`, w.Body.String())
}

func TestLogoutFailure(t *testing.T) {
	svc := new(MockAuthService)
	svc.On("Logout", mock.Anything, "session-token").
		Return(domain.NewStoreError("deleting session", errors.New("connection closed")))
	handler := newAuthHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/logout", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: "session-token"})
	w := httptest.NewRecorder()

	handler.Logout(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Logout failed")
}

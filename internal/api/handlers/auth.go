package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/kalichetiAravindreddy/image-search/internal/api"
	"github.com/kalichetiAravindreddy/image-search/internal/api/middleware"
	"github.com/kalichetiAravindreddy/image-search/internal/domain"
)

const stateCookieName = "imgsearch_oauth_state"

type AuthService interface {
	LoginURL(state string) string
	HandleCallback(ctx context.Context, code string) (*domain.User, string, error)
	Logout(ctx context.Context, token string) error
}

type AuthHandler struct {
	svc          AuthService
	clientURL    string
	sessionTTL   time.Duration
	cookieSecure bool
}

func NewAuthHandler(svc AuthService, clientURL string, sessionTTL time.Duration, cookieSecure bool) *AuthHandler {
	return &AuthHandler{
		svc:          svc,
		clientURL:    clientURL,
		sessionTTL:   sessionTTL,
		cookieSecure: cookieSecure,
	}
}

type UserResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar"`
}

// CurrentUserResponse keeps the login-state shape of the original API:
// success is false with a null user when nobody is logged in.
type CurrentUserResponse struct {
	Success bool          `json:"success"`
	User    *UserResponse `json:"user"`
}

type LogoutResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// GoogleLogin starts the OAuth flow: remember a state nonce in a short
// lived cookie and redirect to the Google consent page.
func (h *AuthHandler) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	state := uuid.NewString()

	http.SetCookie(w, &http.Cookie{
		Name:     stateCookieName,
		Value:    state,
		Path:     "/",
		MaxAge:   int((10 * time.Minute).Seconds()),
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, h.svc.LoginURL(state), http.StatusFound)
}

// GoogleCallback finishes the OAuth flow. Any failure sends the browser
// back to the client's login page; success sets the session cookie and
// lands on the dashboard.
func (h *AuthHandler) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	stateCookie, err := r.Cookie(stateCookieName)
	if err != nil || stateCookie.Value == "" || stateCookie.Value != r.URL.Query().Get("state") {
		http.Redirect(w, r, h.clientURL+"/login", http.StatusFound)
		return
	}

	// The state cookie is single use.
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookieSecure,
	})

	_, token, err := h.svc.HandleCallback(r.Context(), r.URL.Query().Get("code"))
	if err != nil {
		http.Redirect(w, r, h.clientURL+"/login", http.StatusFound)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.sessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, h.clientURL+"/dashboard", http.StatusFound)
}

// CurrentUser reports the logged-in user, or success:false with a null
// user when the request carries no valid session.
func (h *AuthHandler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	if user == nil {
		api.JSON(w, http.StatusOK, CurrentUserResponse{Success: false, User: nil})
		return
	}

	api.JSON(w, http.StatusOK, CurrentUserResponse{
		Success: true,
		User: &UserResponse{
			ID:     user.ID,
			Name:   user.DisplayName,
			Email:  user.Email,
			Avatar: user.Avatar,
		},
	})
}

// Logout destroys the session and clears the cookie.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	var token string
	if cookie, err := r.Cookie(middleware.SessionCookieName); err == nil {
		token = cookie.Value
	}

	if err := h.svc.Logout(r.Context(), token); err != nil {
		api.Error(w, http.StatusInternalServerError, "Logout failed")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookieSecure,
	})

	api.JSON(w, http.StatusOK, LogoutResponse{Success: true, Message: "Logged out successfully"})
}

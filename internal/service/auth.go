package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"log"
	"time"

	"github.com/kalichetiAravindreddy/image-search/internal/domain"
	"github.com/kalichetiAravindreddy/image-search/internal/google"
)

const sessionTokenBytes = 32

// UserRepository persists users keyed by their Google identity.
type UserRepository interface {
	Upsert(ctx context.Context, u *domain.User) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	UpdateAvatar(ctx context.Context, id, avatar string) error
}

// SessionRepository persists session tokens (hashed).
type SessionRepository interface {
	Create(ctx context.Context, s *domain.Session) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*domain.Session, error)
	DeleteByTokenHash(ctx context.Context, tokenHash string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// IdentityProvider runs the OAuth code flow against Google.
type IdentityProvider interface {
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (*google.Profile, error)
}

// AvatarStore mirrors a remote avatar into object storage, returning the
// URL to serve it from.
type AvatarStore interface {
	MirrorAvatar(ctx context.Context, userID, sourceURL string) (string, error)
}

// AuthService materializes users from the OAuth callback and manages
// cookie sessions.
type AuthService struct {
	users      UserRepository
	sessions   SessionRepository
	identity   IdentityProvider
	avatars    AvatarStore // nil when S3 is not configured
	sessionTTL time.Duration
	uuidGen    UUIDGenerator
}

func NewAuthService(users UserRepository, sessions SessionRepository, identity IdentityProvider, sessionTTL time.Duration) *AuthService {
	return &AuthService{
		users:      users,
		sessions:   sessions,
		identity:   identity,
		sessionTTL: sessionTTL,
		uuidGen:    &DefaultUUIDGenerator{},
	}
}

// WithAvatarStore enables best-effort avatar mirroring.
func (s *AuthService) WithAvatarStore(avatars AvatarStore) *AuthService {
	s.avatars = avatars
	return s
}

// WithUUIDGen overrides the UUID generator (for testing).
func (s *AuthService) WithUUIDGen(uuidGen UUIDGenerator) *AuthService {
	s.uuidGen = uuidGen
	return s
}

// LoginURL returns the provider consent URL for the given state.
func (s *AuthService) LoginURL(state string) string {
	return s.identity.AuthCodeURL(state)
}

// HandleCallback exchanges the authorization code, upserts the asserted
// user (refreshing name, email and avatar on re-login) and opens a new
// session. It returns the user and the opaque session token for the
// cookie.
func (s *AuthService) HandleCallback(ctx context.Context, code string) (*domain.User, string, error) {
	if code == "" {
		return nil, "", domain.NewDomainError(domain.ErrCodeUnauthorized, "missing authorization code")
	}

	profile, err := s.identity.Exchange(ctx, code)
	if err != nil {
		return nil, "", domain.NewDomainErrorWithCause(domain.ErrCodeUnauthorized, "login failed", err)
	}

	now := time.Now().UTC()

	displayName := profile.Name
	if displayName == "" {
		displayName = profile.Email
	}

	user := domain.NewUser(s.uuidGen.NewString(), profile.Subject, displayName, profile.Email, profile.Picture, now)
	if err := domain.ValidateUser(user); err != nil {
		return nil, "", domain.NewDomainErrorWithCause(domain.ErrCodeUnauthorized, "incomplete identity assertion", err)
	}

	stored, err := s.users.Upsert(ctx, user)
	if err != nil {
		return nil, "", domain.NewStoreError("saving user", err)
	}

	if s.avatars != nil && stored.Avatar != "" {
		if mirrored, err := s.avatars.MirrorAvatar(ctx, stored.ID, stored.Avatar); err != nil {
			log.Printf("avatar mirror failed for user %s: %v", stored.ID, err)
		} else if err := s.users.UpdateAvatar(ctx, stored.ID, mirrored); err != nil {
			log.Printf("avatar update failed for user %s: %v", stored.ID, err)
		} else {
			stored.Avatar = mirrored
		}
	}

	token, err := generateSessionToken()
	if err != nil {
		return nil, "", domain.NewDomainErrorWithCause(domain.ErrCodeInternalError, "failed to generate session token", err)
	}

	session := &domain.Session{
		ID:        s.uuidGen.NewString(),
		UserID:    stored.ID,
		TokenHash: hashToken(token),
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionTTL),
	}
	if err := domain.ValidateSession(session); err != nil {
		return nil, "", domain.NewDomainErrorWithCause(domain.ErrCodeInternalError, "invalid session", err)
	}

	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, "", domain.NewStoreError("saving session", err)
	}

	return stored, token, nil
}

// UserForToken resolves an opaque session token to its user. Unknown and
// expired tokens both come back as unauthorized.
func (s *AuthService) UserForToken(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, domain.ErrNotAuthenticated
	}

	session, err := s.sessions.GetByTokenHash(ctx, hashToken(token))
	if err != nil {
		if err == domain.ErrSessionNotFound {
			return nil, domain.ErrNotAuthenticated
		}
		return nil, domain.NewStoreError("loading session", err)
	}

	if session.IsExpired(time.Now().UTC()) {
		// Best effort cleanup; the purge worker sweeps anything missed.
		if err := s.sessions.DeleteByTokenHash(ctx, session.TokenHash); err != nil && err != domain.ErrSessionNotFound {
			log.Printf("failed to delete expired session %s: %v", session.ID, err)
		}
		return nil, domain.ErrSessionExpired
	}

	user, err := s.users.GetByID(ctx, session.UserID)
	if err != nil {
		if err == domain.ErrUserNotFound {
			return nil, domain.ErrNotAuthenticated
		}
		return nil, domain.NewStoreError("loading user", err)
	}

	return user, nil
}

// Logout destroys the session for the given token. Logging out an
// already-dead session is not an error.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	err := s.sessions.DeleteByTokenHash(ctx, hashToken(token))
	if err != nil && err != domain.ErrSessionNotFound {
		return domain.NewStoreError("deleting session", err)
	}
	return nil
}

// PurgeExpiredSessions removes all sessions past their expiry.
func (s *AuthService) PurgeExpiredSessions(ctx context.Context) (int64, error) {
	return s.sessions.DeleteExpired(ctx, time.Now().UTC())
}

func generateSessionToken() (string, error) {
	bytes := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

func hashToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return hex.EncodeToString(h[:])
}

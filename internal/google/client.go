// Package google handles the Google OAuth code flow and ID token verification.
package google

import (
	"context"
	"errors"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"
)

const issuer = "https://accounts.google.com"

// ErrNoIDToken is returned when the token exchange response carries no ID token
var ErrNoIDToken = errors.New("no id_token in token response")

// Profile is the verified identity extracted from a Google ID token.
type Profile struct {
	Subject string
	Name    string
	Email   string
	Picture string
}

// Client wraps the OAuth2 config and OIDC verifier for Google sign-in.
type Client struct {
	oauth    *oauth2.Config
	verifier *oidc.IDTokenVerifier
}

// Config holds the OAuth client registration.
type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

// NewClient discovers the Google OIDC endpoints and builds the OAuth config.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	provider, err := oidc.NewProvider(ctx, issuer)
	if err != nil {
		return nil, fmt.Errorf("failed to create OIDC provider: %w", err)
	}

	oauth := &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		RedirectURL:  cfg.RedirectURL,
		Endpoint:     provider.Endpoint(),
		Scopes:       []string{oidc.ScopeOpenID, "profile", "email"},
	}

	return &Client{
		oauth:    oauth,
		verifier: provider.Verifier(&oidc.Config{ClientID: cfg.ClientID}),
	}, nil
}

// AuthCodeURL returns the Google consent page URL for the given state.
func (c *Client) AuthCodeURL(state string) string {
	return c.oauth.AuthCodeURL(state)
}

// Exchange trades the authorization code for tokens, verifies the ID token
// and returns the asserted profile.
func (c *Client) Exchange(ctx context.Context, code string) (*Profile, error) {
	token, err := c.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange authorization code: %w", err)
	}

	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok {
		return nil, ErrNoIDToken
	}

	idToken, err := c.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return nil, fmt.Errorf("failed to verify ID token: %w", err)
	}

	var claims struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Picture string `json:"picture"`
	}
	if err := idToken.Claims(&claims); err != nil {
		return nil, fmt.Errorf("failed to parse ID token claims: %w", err)
	}

	return &Profile{
		Subject: idToken.Subject,
		Name:    claims.Name,
		Email:   claims.Email,
		Picture: claims.Picture,
	}, nil
}

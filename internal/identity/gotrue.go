package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/golang-jwt/jwt/v5"
)

const (
	maxRetries     = 3
	retryInterval  = 200 * time.Millisecond
	defaultTimeout = 10 * time.Second
)

// GoTrueConfig holds configuration for the GoTrue-compatible provider client
type GoTrueConfig struct {
	// BaseURL is the root of the auth API, e.g. https://xyz.supabase.co/auth/v1
	BaseURL string
	// APIKey is sent as the apikey header with every request
	APIKey string
	// JWTSecret, when set, enables local HS256 verification of session tokens
	// so ResolveToken avoids a provider round-trip per request
	JWTSecret string
	// Timeout bounds each provider HTTP call
	Timeout time.Duration
}

// GoTrueResolver resolves credentials against a GoTrue-compatible auth API
type GoTrueResolver struct {
	cfg        GoTrueConfig
	httpClient *http.Client
}

// NewGoTrueResolver creates a resolver for a GoTrue-compatible provider
func NewGoTrueResolver(cfg GoTrueConfig) *GoTrueResolver {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	return &GoTrueResolver{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// SignInWithPassword exchanges email+password for a session token
func (r *GoTrueResolver) SignInWithPassword(ctx context.Context, email, password string) (*Session, error) {
	body, err := json.Marshal(map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode sign-in request: %w", err)
	}

	var session Session
	status, respBody, err := r.do(ctx, http.MethodPost, "/token?grant_type=password", "", body)
	if err != nil {
		return nil, err
	}
	switch {
	case status == http.StatusOK:
		if err := json.Unmarshal(respBody, &session); err != nil {
			return nil, fmt.Errorf("failed to decode sign-in response: %w", err)
		}
		return &session, nil
	case status == http.StatusBadRequest || status == http.StatusUnauthorized || status == http.StatusUnprocessableEntity:
		return nil, ErrInvalidCredentials
	default:
		return nil, fmt.Errorf("identity provider returned status %d", status)
	}
}

// ResolveToken verifies a session token and returns the identity it belongs
// to. With a configured JWT secret the token is verified locally; otherwise
// the provider's user endpoint is consulted.
func (r *GoTrueResolver) ResolveToken(ctx context.Context, token string) (*User, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}

	if r.cfg.JWTSecret != "" {
		return r.resolveLocal(token)
	}

	status, respBody, err := r.do(ctx, http.MethodGet, "/user", token, nil)
	if err != nil {
		return nil, err
	}
	if status == http.StatusUnauthorized || status == http.StatusForbidden {
		return nil, ErrInvalidToken
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("identity provider returned status %d", status)
	}

	var user User
	if err := json.Unmarshal(respBody, &user); err != nil {
		return nil, fmt.Errorf("failed to decode user response: %w", err)
	}
	if user.ID == "" {
		return nil, ErrInvalidToken
	}
	return &user, nil
}

// sessionClaims are the registered claims plus the email claim GoTrue embeds
type sessionClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

// resolveLocal verifies the HS256 signature and expiry of a provider-issued
// token without a network call
func (r *GoTrueResolver) resolveLocal(token string) (*User, error) {
	claims := &sessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(r.cfg.JWTSecret), nil
	})
	if err != nil || !parsed.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return &User{ID: claims.Subject, Email: claims.Email}, nil
}

// do performs a provider request, retrying transient failures with backoff.
// 4xx responses are returned to the caller without retry.
func (r *GoTrueResolver) do(ctx context.Context, method, path, bearer string, body []byte) (int, []byte, error) {
	var status int
	var respBody []byte

	operation := func() error {
		var reader io.Reader
		if body != nil {
			reader = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(ctx, method, r.cfg.BaseURL+path, reader)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("failed to create request: %w", err))
		}
		req.Header.Set("apikey", r.cfg.APIKey)
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		if bearer != "" {
			req.Header.Set("Authorization", "Bearer "+bearer)
		}

		resp, err := r.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("identity provider request failed: %w", err)
		}
		defer func() { _ = resp.Body.Close() }()

		respBody, err = io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("failed to read provider response: %w", err)
		}

		status = resp.StatusCode
		if status >= http.StatusInternalServerError {
			return fmt.Errorf("identity provider returned status %d", status)
		}
		return nil
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(retryInterval), maxRetries),
		ctx,
	)
	if err := backoff.Retry(operation, policy); err != nil {
		return 0, nil, err
	}
	return status, respBody, nil
}

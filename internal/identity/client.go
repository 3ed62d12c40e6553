// Package identity wraps the Google Identity Toolkit REST endpoints the
// Firebase web SDK uses for email/password sessions. The backend proxies
// these so browsers never hold the web API key. Failures come back as
// opaque errors carrying the upstream message; nothing here retries.
package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const defaultBaseURL = "https://identitytoolkit.googleapis.com"

// Client calls the Identity Toolkit. A token-bucket limiter caps the
// request rate: the login and registration endpoints sit in front of this
// and are brute-forceable without it.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	limiter *rate.Limiter
}

// NewClient builds a client. baseURL overrides the Google endpoint for
// tests; pass "" for production.
func NewClient(apiKey, baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 10 * time.Second},
		limiter: rate.NewLimiter(rate.Limit(10), 20),
	}
}

// Session is the token bundle the Identity Toolkit returns.
type Session struct {
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    string `json:"expiresIn"`
	LocalID      string `json:"localId"`
	Email        string `json:"email"`
	DisplayName  string `json:"displayName,omitempty"`
}

type authRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type updateRequest struct {
	IDToken           string `json:"idToken"`
	DisplayName       string `json:"displayName"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type toolkitError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// SignUp registers a new email/password account.
func (c *Client) SignUp(ctx context.Context, email, password string) (*Session, error) {
	return c.post(ctx, "accounts:signUp", authRequest{Email: email, Password: password, ReturnSecureToken: true})
}

// SignIn exchanges credentials for a session.
func (c *Client) SignIn(ctx context.Context, email, password string) (*Session, error) {
	return c.post(ctx, "accounts:signInWithPassword", authRequest{Email: email, Password: password, ReturnSecureToken: true})
}

// UpdateDisplayName sets the display name on the account behind idToken.
func (c *Client) UpdateDisplayName(ctx context.Context, idToken, name string) error {
	_, err := c.post(ctx, "accounts:update", updateRequest{IDToken: idToken, DisplayName: name})
	return err
}

func (c *Client) post(ctx context.Context, endpoint string, body any) (*Session, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("identity rate limit: %w", err)
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode %s request: %w", endpoint, err)
	}

	url := fmt.Sprintf("%s/v1/%s?key=%s", c.baseURL, endpoint, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create %s request: %w", endpoint, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("identity request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var te toolkitError
		if err := json.NewDecoder(resp.Body).Decode(&te); err == nil && te.Error.Message != "" {
			return nil, fmt.Errorf("%s: %s (status %d)", endpoint, te.Error.Message, resp.StatusCode)
		}
		return nil, fmt.Errorf("%s: status %d", endpoint, resp.StatusCode)
	}

	var s Session
	if err := json.NewDecoder(resp.Body).Decode(&s); err != nil {
		return nil, fmt.Errorf("decode %s response: %w", endpoint, err)
	}
	return &s, nil
}

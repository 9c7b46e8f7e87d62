// Package api is the HappyMeal REST client: one configured wrapper that
// owns base URL, JSON handling and bearer tokens, plus one file of thin
// service functions per server resource group. Every call in the repo
// goes through Client.do; nothing talks to the server on the side.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/jxhee99/HappyMeal/internal/session"
)

const apiPrefix = "/api"

// refreshSkew refreshes proactively when the access token expires this
// close to now, instead of burning a request on a guaranteed 401.
const refreshSkew = time.Minute

// ErrLoginRequired reports that no usable credentials remain; the
// session has already been cleared when it is returned.
var ErrLoginRequired = errors.New("login required")

// Error is a server error response: HTTP status plus the server's own
// message, surfaced verbatim to the caller.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server responded %d", e.Status)
	}
	return fmt.Sprintf("server responded %d: %s", e.Status, e.Message)
}

type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Session    *session.Store

	refreshMu sync.Mutex
}

func NewClient(baseURL string, store *session.Store) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
		Session:    store,
	}
}

// do issues one request and decodes the JSON body into out (which may
// be nil). On a 401 with a stored refresh token it refreshes once and
// retries the original call once; a failed refresh clears the session
// and returns ErrLoginRequired.
func (c *Client) do(ctx context.Context, method, path string, params url.Values, body, out any) error {
	token := c.freshAccessToken(ctx)

	status, raw, err := c.send(ctx, method, path, params, body, token)
	if err != nil {
		return err
	}
	if status == http.StatusUnauthorized && c.Session.TokenPair().RefreshToken != "" {
		if err := c.refresh(ctx); err != nil {
			return err
		}
		status, raw, err = c.send(ctx, method, path, params, body, c.Session.TokenPair().AccessToken)
		if err != nil {
			return err
		}
	}
	if status < 200 || status >= 300 {
		return decodeError(status, raw)
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

func (c *Client) send(ctx context.Context, method, path string, params url.Values, body any, token string) (int, []byte, error) {
	u := c.BaseURL + apiPrefix + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return 0, nil, fmt.Errorf("marshal %s %s payload: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return 0, nil, fmt.Errorf("create %s %s request: %w", method, path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("connect to server: %w", err)
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("read %s %s response: %w", method, path, err)
	}
	return resp.StatusCode, raw, nil
}

// freshAccessToken returns the stored access token, refreshing first
// when its exp claim is within refreshSkew. The claim is read without
// signature verification; the server remains the authority and a wrong
// guess only costs the reactive 401 path.
func (c *Client) freshAccessToken(ctx context.Context) string {
	pair := c.Session.TokenPair()
	if pair.AccessToken == "" {
		return ""
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(pair.AccessToken, claims); err == nil {
		if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
			if time.Until(exp.Time) < refreshSkew && pair.RefreshToken != "" {
				if err := c.refresh(ctx); err == nil {
					return c.Session.TokenPair().AccessToken
				}
			}
		}
	}
	return pair.AccessToken
}

// refresh exchanges the refresh token once; concurrent callers share a
// single exchange.
func (c *Client) refresh(ctx context.Context) error {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	pair := c.Session.TokenPair()
	if pair.RefreshToken == "" {
		return ErrLoginRequired
	}
	status, raw, err := c.send(ctx, http.MethodPost, "/auth/refresh",
		nil, map[string]string{"refreshToken": pair.RefreshToken}, "")
	if err != nil {
		return err
	}
	if status < 200 || status >= 300 {
		_ = c.Session.Logout()
		return fmt.Errorf("%w: token refresh rejected (%d)", ErrLoginRequired, status)
	}
	var next session.Tokens
	if err := json.Unmarshal(raw, &next); err != nil {
		return fmt.Errorf("decode refresh response: %w", err)
	}
	if next.RefreshToken == "" {
		next.RefreshToken = pair.RefreshToken
	}
	return c.Session.SetTokens(next)
}

func decodeError(status int, raw []byte) error {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	_ = json.Unmarshal(raw, &payload)
	msg := payload.Message
	if msg == "" {
		msg = payload.Error
	}
	if msg == "" {
		msg = strings.TrimSpace(string(raw))
	}
	return &Error{Status: status, Message: msg}
}

// StatusOf extracts the HTTP status from a service error, 0 when the
// error never reached the server.
func StatusOf(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

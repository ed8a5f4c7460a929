package stayflexi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"flexisync/internal/adapters/observability"
	"flexisync/internal/domain"
)

const (
	loginPath    = "/auth/login"
	bookingsPath = "/core/api/v1/reservation/navigationGetRoomBookings"
)

// tokenKeys: the login response has carried its token under different
// names across PMS versions. First match wins.
var tokenKeys = []string{"token", "accessToken", "access_token", "jwt", "data.token"}

type Client struct {
	base    string
	hc      *http.Client
	session *Session
	rl      *rate.Limiter
}

func New(base string, session *Session, rps int) (*Client, error) {
	if session == nil {
		return nil, fmt.Errorf("session is required")
	}
	if rps <= 0 {
		rps = 2
	}
	return &Client{
		base:    strings.TrimRight(base, "/"),
		hc:      &http.Client{Timeout: 30 * time.Second},
		session: session,
		rl:      rate.NewLimiter(rate.Limit(rps), rps),
	}, nil
}

// FetchBookings retrieves the raw booking payloads for one property and
// date range. Outcomes: records on success; domain.ErrUnauthorized (after
// at most one re-login) on an auth failure, wrapping ErrNoCredentials
// when no login is possible at all; any other error is transport-level
// and surfaced immediately with no retry.
func (c *Client) FetchBookings(ctx context.Context, hotelID string, from, to time.Time) ([]map[string]any, error) {
	tok, err := c.ensureToken(ctx)
	if err != nil {
		return nil, err
	}

	body, status, err := c.postBookings(ctx, tok, hotelID, from, to)
	if err != nil {
		return nil, err
	}
	if status == http.StatusUnauthorized {
		// one re-authentication, one retry; a second 401 is final
		if !c.session.HasCredentials() {
			return nil, fmt.Errorf("%w: token rejected", domain.ErrUnauthorized)
		}
		if err := c.login(ctx); err != nil {
			return nil, err
		}
		body, status, err = c.postBookings(ctx, c.session.Token(), hotelID, from, to)
		if err != nil {
			return nil, err
		}
		if status == http.StatusUnauthorized {
			return nil, fmt.Errorf("%w: retry after re-login rejected", domain.ErrUnauthorized)
		}
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("bookings fetch: status %d: %s", status, strings.TrimSpace(string(body)))
	}

	return extractBookings(body)
}

func (c *Client) ensureToken(ctx context.Context) (string, error) {
	if tok := c.session.Token(); tok != "" {
		return tok, nil
	}
	if !c.session.HasCredentials() {
		// an auth condition, not a transport one: the sync engine must
		// abort and surface the remediation instead of walking units
		return "", fmt.Errorf("%w: %w", domain.ErrUnauthorized, ErrNoCredentials)
	}
	if err := c.login(ctx); err != nil {
		return "", err
	}
	return c.session.Token(), nil
}

// login exchanges the credential pair for a bearer token.
func (c *Client) login(ctx context.Context) error {
	payload, _ := json.Marshal(map[string]string{
		"email":    c.session.Email,
		"password": c.session.Password,
	})

	body, status, err := c.post(ctx, c.base+loginPath, "", payload, "login")
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	if status == http.StatusUnauthorized || status == http.StatusForbidden {
		return fmt.Errorf("%w: login rejected", domain.ErrUnauthorized)
	}
	if status != http.StatusOK {
		return fmt.Errorf("login: status %d: %s", status, strings.TrimSpace(string(body)))
	}

	var resp map[string]any
	if err := json.Unmarshal(body, &resp); err != nil {
		return fmt.Errorf("login: decode response: %w", err)
	}
	for _, key := range tokenKeys {
		if tok := lookupString(resp, key); tok != "" {
			c.session.SetToken(tok)
			return nil
		}
	}
	return fmt.Errorf("login: no token in response")
}

func (c *Client) postBookings(ctx context.Context, token, hotelID string, from, to time.Time) ([]byte, int, error) {
	payload, _ := json.Marshal(map[string]string{
		"hotelId": hotelID,
		"from":    from.Format("2006-01-02"),
		"to":      to.Format("2006-01-02"),
	})
	return c.post(ctx, c.base+bookingsPath, token, payload, "bookings")
}

func (c *Client) post(ctx context.Context, url, token string, payload []byte, endpoint string) ([]byte, int, error) {
	if err := c.rl.Wait(ctx); err != nil {
		return nil, 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "flexisync/1.0")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, 0, ctx.Err()
		}
		observability.ObserveExternal("stayflexi", endpoint, 0, time.Since(start))
		return nil, 0, fmt.Errorf("stayflexi %s: %w", endpoint, err)
	}
	defer resp.Body.Close()
	observability.ObserveExternal("stayflexi", endpoint, resp.StatusCode, time.Since(start))

	body, err := io.ReadAll(io.LimitReader(resp.Body, 32<<20))
	if err != nil {
		return nil, 0, fmt.Errorf("stayflexi %s: read body: %w", endpoint, err)
	}
	return body, resp.StatusCode, nil
}

func lookupString(m map[string]any, path string) string {
	cur := any(m)
	for _, part := range strings.Split(path, ".") {
		obj, ok := cur.(map[string]any)
		if !ok {
			return ""
		}
		cur = obj[part]
	}
	s, _ := cur.(string)
	return s
}

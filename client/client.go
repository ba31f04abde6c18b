// Package client talks to a running furigo host.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ZaguanLabs/furigo"
	"github.com/gorilla/websocket"
)

// DefaultBaseURL is the address the host listens on by default.
const DefaultBaseURL = "http://127.0.0.1:8787"

// Client is an HTTP and websocket client for the host.
type Client struct {
	baseURL string
	http    *http.Client
	dialer  *websocket.Dialer
}

// Option is a functional option for configuring the Client.
type Option func(*Client)

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.http = c
	}
}

// New creates a Client for the host at baseURL.
func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		dialer:  websocket.DefaultDialer,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

type errorResponse struct {
	Error string `json:"error"`
}

func (c *Client) do(ctx context.Context, method, path string, body any, want int, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", furigo.UserAgent())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != want {
		var apiErr errorResponse
		if json.NewDecoder(resp.Body).Decode(&apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("%s %s: %s (status %d)", method, path, apiErr.Error, resp.StatusCode)
		}
		return fmt.Errorf("%s %s: unexpected status %d", method, path, resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// Menu lists the host's context-menu entries.
func (c *Client) Menu(ctx context.Context) ([]furigo.MenuItem, error) {
	var items []furigo.MenuItem
	if err := c.do(ctx, http.MethodGet, "/api/menu", nil, http.StatusOK, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Click activates a menu entry with the selected text. It returns the loading
// placeholder; the translation arrives later.
func (c *Client) Click(ctx context.Context, click furigo.MenuClick) (furigo.TranslationResult, error) {
	var result furigo.TranslationResult
	err := c.do(ctx, http.MethodPost, "/api/menu/click", click, http.StatusAccepted, &result)
	return result, err
}

// GetTranslation pulls the latest result.
func (c *Client) GetTranslation(ctx context.Context) (furigo.TranslationResult, error) {
	var result furigo.TranslationResult
	err := c.do(ctx, http.MethodGet, "/api/translation", nil, http.StatusOK, &result)
	return result, err
}

// Preference reads the stored preference.
func (c *Client) Preference(ctx context.Context) (furigo.UserPreference, error) {
	var pref furigo.UserPreference
	if err := c.do(ctx, http.MethodGet, "/api/preferences", nil, http.StatusOK, &pref); err != nil {
		return furigo.DefaultPreference(), err
	}
	return pref, nil
}

// SetPreference stores pref on the host.
func (c *Client) SetPreference(ctx context.Context, pref furigo.UserPreference) error {
	return c.do(ctx, http.MethodPut, "/api/preferences", pref, http.StatusOK, nil)
}

// LoadPreference reads the preference so a remote surface can use the host
// as its preference store.
func (c *Client) LoadPreference(ctx context.Context) (furigo.UserPreference, error) {
	return c.Preference(ctx)
}

// SavePreference stores pref on the host.
func (c *Client) SavePreference(ctx context.Context, pref furigo.UserPreference) error {
	return c.SetPreference(ctx, pref)
}

func (c *Client) wsURL() (string, error) {
	u, err := url.Parse(c.baseURL + "/ws")
	if err != nil {
		return "", fmt.Errorf("parse base URL: %w", err)
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	return u.String(), nil
}

// Subscribe calls fn for every pushed message until ctx is done or the
// connection drops. It returns nil when ctx ends the subscription.
func (c *Client) Subscribe(ctx context.Context, fn func(furigo.Message)) error {
	wsURL, err := c.wsURL()
	if err != nil {
		return err
	}

	conn, _, err := c.dialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return fmt.Errorf("websocket dial: %w", err)
	}
	defer conn.Close()

	stop := context.AfterFunc(ctx, func() {
		conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
		conn.Close()
	})
	defer stop()

	for {
		var msg furigo.Message
		if err := conn.ReadJSON(&msg); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return fmt.Errorf("websocket read: %w", err)
		}
		fn(msg)
	}
}

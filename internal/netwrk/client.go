package netwrk

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"
	"time"

	"djirgha/internal/board"
)

const (
	CurrentPath = "/current/"
	TurnPath    = "/turn/"
	// HotSeatPath binds a board to the session cookie. /current/ and /turn/
	// fail until it has been visited once.
	HotSeatPath = "/hot-seat/"

	maxBody = 1 << 20
)

// Client talks to the game server. All state it returns is authoritative.
type Client struct {
	base *url.URL
	http *http.Client

	mu     sync.Mutex
	opened bool
}

func NewClient(server string, timeout time.Duration) (*Client, error) {
	base, err := url.Parse(server)
	if err != nil {
		return nil, fmt.Errorf("server url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("server url %q: scheme must be http or https", server)
	}
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}

	return &Client{
		base: base,
		http: &http.Client{
			Timeout:   timeout,
			Jar:       jar,
			Transport: NewLoggingRoundTripper(http.DefaultTransport),
		},
	}, nil
}

// URL resolves an escaped endpoint path against the server base.
func (c *Client) URL(path string) string {
	rel := strings.TrimPrefix(path, "/")
	ref := &url.URL{Path: rel, RawPath: rel}
	if p, err := url.PathUnescape(rel); err == nil {
		ref.Path = p
	}
	return c.base.ResolveReference(ref).String()
}

// Open starts the server session. Current and Turn call it on first use, so
// calling it directly is only needed to surface errors early.
func (c *Client) Open(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.opened {
		return nil
	}
	if _, err := c.send(ctx, c.URL(HotSeatPath), "text/html"); err != nil {
		return err
	}
	c.opened = true
	return nil
}

// NewGame replaces the session's board with a fresh one. The server answers
// with a redirect back to the hot seat page, which the client follows.
func (c *Client) NewGame(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, err := c.send(ctx, c.URL(HotSeatPath)+"?newgame=1", "text/html"); err != nil {
		return err
	}
	c.opened = true
	return nil
}

// Current fetches the whole board state.
func (c *Client) Current(ctx context.Context) (board.Response, error) {
	return c.Get(ctx, CurrentPath)
}

// Turn asks the server to play the named point.
func (c *Client) Turn(ctx context.Context, point string) (board.Response, error) {
	return c.Get(ctx, TurnPath+url.PathEscape(point))
}

func (c *Client) Get(ctx context.Context, path string) (board.Response, error) {
	if err := c.Open(ctx); err != nil {
		return board.Response{}, err
	}

	target := c.URL(path)
	body, err := c.send(ctx, target, "application/json")
	if err != nil {
		return board.Response{}, err
	}

	var r board.Response
	if err := json.Unmarshal(body, &r); err != nil {
		return board.Response{}, &ProtocolError{URL: target, Err: err}
	}
	if r.Points == nil {
		return board.Response{}, &ProtocolError{URL: target, Err: ErrNoPoints}
	}
	return r, nil
}

// send issues a GET and returns the body of a 2xx reply.
func (c *Client) send(ctx context.Context, target, accept string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, &NetworkError{Op: http.MethodGet, URL: target, Err: err}
	}
	req.Header.Set("Accept", accept)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &NetworkError{Op: http.MethodGet, URL: target, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &NetworkError{Op: http.MethodGet, URL: target, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, &NetworkError{Op: http.MethodGet, URL: target, Err: err}
	}
	return body, nil
}

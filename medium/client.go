// Package medium is a minimal client for the Medium publishing API
// described at https://github.com/Medium/medium-api-docs
package medium

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
)

// DefaultBaseURL is the root of the Medium REST API
const DefaultBaseURL = "https://api.medium.com"

const requestTimeout = 30 * time.Second

// Content formats accepted by CreatePost
const (
	FormatMarkdown = "markdown"
	FormatHTML     = "html"
)

// Publish statuses accepted by CreatePost
const (
	StatusDraft    = "draft"
	StatusPublic   = "public"
	StatusUnlisted = "unlisted"
)

// User is the account that owns an integration token
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	URL      string `json:"url"`
	ImageURL string `json:"imageUrl"`
}

// CreatePostRequest is the payload for creating a post
type CreatePostRequest struct {
	Title         string   `json:"title"`
	ContentFormat string   `json:"contentFormat"`
	Content       string   `json:"content"`
	Tags          []string `json:"tags,omitempty"`
	CanonicalURL  string   `json:"canonicalUrl,omitempty"`
	PublishStatus string   `json:"publishStatus,omitempty"`
}

// Post is a post as returned by Medium after creation
type Post struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	AuthorID      string   `json:"authorId"`
	Tags          []string `json:"tags"`
	URL           string   `json:"url"`
	CanonicalURL  string   `json:"canonicalUrl"`
	PublishStatus string   `json:"publishStatus"`
	PublishedAt   int64    `json:"publishedAt"`
	License       string   `json:"license"`
	LicenseURL    string   `json:"licenseUrl"`
}

// envelope wraps every successful response
type envelope struct {
	Data json.RawMessage `json:"data"`
}

// ErrorDetail is one entry in the errors array of a failed response
type ErrorDetail struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// APIError is returned when Medium responds with a non-2xx status
type APIError struct {
	StatusCode int
	Status     string
	Errors     []ErrorDetail `json:"errors"`
}

func (e *APIError) Error() string {
	if len(e.Errors) == 0 {
		return fmt.Sprintf("server said: %s", e.Status)
	}
	var msgs []string
	for _, d := range e.Errors {
		msgs = append(msgs, fmt.Sprintf("%s (code %d)", d.Message, d.Code))
	}
	return fmt.Sprintf("server said: %s: %s", e.Status, strings.Join(msgs, "; "))
}

// Client makes API calls to Medium
type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

// Option configures a client
type Option func(*Client)

// WithBaseURL points the client at a different API root
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimSuffix(u, "/") }
}

// WithHTTPClient sets the underlying http client that authenticated sessions wrap
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithLogger sets the logger for request tracing
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.log = l }
}

// New creates a new client
func New(opts ...Option) *Client {
	c := Client{
		baseURL: DefaultBaseURL,
		http:    &http.Client{Timeout: requestTimeout},
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(&c)
	}
	return &c
}

// Session is an authenticated connection to Medium
type Session struct {
	http *http.Client
}

// Authenticate creates a session that sends token as a bearer token with
// every request. Medium integration tokens do not expire, so no request is
// made until the session is used.
func (c *Client) Authenticate(ctx context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, errors.New("a Medium access token is required")
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.http)
	ts := oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: token,
		TokenType:   "Bearer",
	})
	return &Session{http: oauth2.NewClient(ctx, ts)}, nil
}

// CurrentUser fetches the user that owns the session's token
func (c *Client) CurrentUser(ctx context.Context, s *Session) (*User, error) {
	var u User
	if err := c.do(ctx, s, http.MethodGet, "/v1/me", nil, &u); err != nil {
		return nil, fmt.Errorf("error fetching current user: %w", err)
	}
	return &u, nil
}

// CreatePost creates a post under the given user
func (c *Client) CreatePost(ctx context.Context, s *Session, userID string, r CreatePostRequest) (*Post, error) {
	if userID == "" {
		return nil, errors.New("cannot create a post without a user id")
	}

	var p Post
	path := fmt.Sprintf("/v1/users/%s/posts", userID)
	if err := c.do(ctx, s, http.MethodPost, path, r, &p); err != nil {
		return nil, fmt.Errorf("error creating post: %w", err)
	}
	return &p, nil
}

// do performs a single request and decodes the data field of the response into out
func (c *Client) do(ctx context.Context, s *Session, method, path string, in, out interface{}) error {
	if s == nil || s.http == nil {
		return errors.New("not authenticated")
	}

	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("error marshalling request: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Charset", "utf-8")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.log.Debug().Str("method", method).Str("url", req.URL.String()).Msg("medium request")

	resp, err := s.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	buf, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("error reading response: %w", err)
	}

	c.log.Debug().Int("status", resp.StatusCode).Int("bytes", len(buf)).Msg("medium response")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := APIError{StatusCode: resp.StatusCode, Status: resp.Status}
		if err := json.Unmarshal(buf, &apiErr); err != nil {
			c.log.Debug().Str("body", string(buf)).Msg("could not decode error response")
		}
		return &apiErr
	}

	var env envelope
	if err := json.Unmarshal(buf, &env); err != nil {
		return fmt.Errorf("error decoding response payload: %w", err)
	}
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("error decoding response data: %w", err)
		}
	}
	return nil
}

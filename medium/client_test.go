package medium

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *Client {
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(WithBaseURL(srv.URL), WithHTTPClient(srv.Client()))
}

func TestCurrentUser(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v1/me", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		w.Write([]byte(`{"data":{"id":"5303d74c64f66366f00cb9b2a94f3251bf5","username":"majelbstoat","name":"Jamie Talbot","url":"https://medium.com/@majelbstoat"}}`))
	})

	ctx := context.Background()
	s, err := c.Authenticate(ctx, "secret")
	require.NoError(t, err)

	u, err := c.CurrentUser(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, "5303d74c64f66366f00cb9b2a94f3251bf5", u.ID)
	assert.Equal(t, "majelbstoat", u.Username)
}

func TestCreatePost(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/users/u1/posts", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]interface{}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Hello World", body["title"])
		assert.Equal(t, "markdown", body["contentFormat"])
		assert.Equal(t, "draft", body["publishStatus"])
		assert.Equal(t, "https://www.latenightswift.com/2020/01/01/hello-world/", body["canonicalUrl"])
		assert.Equal(t, []interface{}{"Swift", "iOS App Development", "Xcode"}, body["tags"])

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"data":{"id":"e6f36a","title":"Hello World","authorId":"u1","url":"https://medium.com/@x/e6f36a","publishStatus":"draft","tags":["Swift"]}}`))
	})

	ctx := context.Background()
	s, err := c.Authenticate(ctx, "secret")
	require.NoError(t, err)

	p, err := c.CreatePost(ctx, s, "u1", CreatePostRequest{
		Title:         "Hello World",
		ContentFormat: FormatMarkdown,
		Content:       "# Hello World",
		Tags:          []string{"Swift", "iOS App Development", "Xcode"},
		CanonicalURL:  "https://www.latenightswift.com/2020/01/01/hello-world/",
		PublishStatus: StatusDraft,
	})
	require.NoError(t, err)
	assert.Equal(t, "e6f36a", p.ID)
	assert.Equal(t, "https://medium.com/@x/e6f36a", p.URL)
	assert.Equal(t, StatusDraft, p.PublishStatus)
}

func TestAPIError(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"errors":[{"message":"Token was invalid.","code":6003}]}`))
	})

	ctx := context.Background()
	s, err := c.Authenticate(ctx, "bad")
	require.NoError(t, err)

	_, err = c.CurrentUser(ctx, s)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	require.Len(t, apiErr.Errors, 1)
	assert.Equal(t, 6003, apiErr.Errors[0].Code)
	assert.Contains(t, err.Error(), "Token was invalid.")
}

func TestAPIErrorWithoutBody(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	ctx := context.Background()
	s, err := c.Authenticate(ctx, "secret")
	require.NoError(t, err)

	_, err = c.CreatePost(ctx, s, "u1", CreatePostRequest{Title: "x"})
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
}

func TestAuthenticateRequiresToken(t *testing.T) {
	_, err := New().Authenticate(context.Background(), "")
	assert.Error(t, err)
}

func TestNotAuthenticated(t *testing.T) {
	_, err := New().CurrentUser(context.Background(), nil)
	assert.Error(t, err)
}

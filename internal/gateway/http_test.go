package gateway

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/exoshivam/folio/internal/common"
	"github.com/exoshivam/folio/internal/gateway/gatewaytest"
	"github.com/exoshivam/folio/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T, srv *gatewaytest.Server, opts ...Option) *HTTPClient {
	t.Helper()
	c, err := NewHTTPClient(srv.APIURL(), 5*time.Second, opts...)
	require.NoError(t, err)
	return c
}

func newServer(t *testing.T) *gatewaytest.Server {
	t.Helper()
	srv := gatewaytest.New()
	t.Cleanup(srv.Close)
	return srv
}

func TestNewHTTPClient_RejectsBadURL(t *testing.T) {
	_, err := NewHTTPClient("localhost:5000/api", time.Second)
	require.Error(t, err)
	_, err = NewHTTPClient("://nope", time.Second)
	require.Error(t, err)
}

func TestHTTPClient_ReadEndpoints(t *testing.T) {
	srv := newServer(t)
	srv.SetProfile(&models.Profile{ID: "me", Username: "exo", FullName: "Shivam"})
	srv.SetSkills(models.Skill{ID: "s1", Name: "Go", OrderIndex: 1})
	srv.AddItems(models.CategoryProjects, models.WorkItem{ID: "p1", Title: "Weather App", Likes: 3})
	srv.AddItems(models.CategoryHackathons, models.WorkItem{ID: "h1", Title: "Hack"})
	srv.SetActive(models.ActiveProject{ID: "a1", Title: "Robot", Status: "building", Progress: 40})
	c := newClient(t, srv)
	ctx := context.Background()

	p, err := c.Profile(ctx)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "Shivam", p.FullName)

	skills, err := c.Skills(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.Skill{{ID: "s1", Name: "Go", OrderIndex: 1}}, skills)

	projects, err := c.Projects(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, 3, projects[0].Likes)

	feed, err := c.Explore(ctx)
	require.NoError(t, err)
	assert.Len(t, feed[models.CategoryProjects], 1)
	assert.Len(t, feed[models.CategoryHackathons], 1)

	active, err := c.ActiveProjects(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, 40, active[0].Progress)
}

func TestHTTPClient_ToggleLikeReturnsServerCount(t *testing.T) {
	srv := newServer(t)
	srv.AddItems(models.CategoryProjects, models.WorkItem{ID: "p1", Likes: 3})
	c := newClient(t, srv)

	w, err := c.ToggleLike(context.Background(), "p1", models.ActionLike)
	require.NoError(t, err)
	assert.Equal(t, 4, w.Likes)

	w, err = c.ToggleLike(context.Background(), "p1", models.ActionUnlike)
	require.NoError(t, err)
	assert.Equal(t, 3, w.Likes)
}

func TestHTTPClient_CommentsLifecycle(t *testing.T) {
	srv := newServer(t)
	srv.AddItems(models.CategoryProjects, models.WorkItem{ID: "p1"})
	c := newClient(t, srv)
	ctx := context.Background()

	created, err := c.PostComment(ctx, "p1", models.NewComment{Text: "first", UserID: "u1", Username: "alice"})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "u1", created.AuthorID)

	_, err = c.PostComment(ctx, "p1", models.NewComment{Text: "second", UserID: "u1", Username: "alice"})
	require.NoError(t, err)

	list, err := c.Comments(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "second", list[0].Text, "server returns most recent first")

	err = c.DeleteComment(ctx, created.ID, "someone-else")
	var se *common.ServerError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusForbidden, se.Status)
	assert.Equal(t, "Not authorized to delete this comment", se.Public())

	require.NoError(t, c.DeleteComment(ctx, created.ID, "u1"))
	assert.Equal(t, 1, srv.CommentCount("p1"))
}

func TestHTTPClient_AuthAndBearerToken(t *testing.T) {
	srv := newServer(t)
	ctx := context.Background()

	var token string
	c := newClient(t, srv, WithTokenSource(func(context.Context) (string, bool) { return token, token != "" }))

	res, err := c.SignUp(ctx, models.Credentials{Username: "alice", Email: "a@example.org", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "alice", res.User.Username)
	assert.NotEmpty(t, res.Token)
	assert.Empty(t, srv.LastAuthorization())

	_, err = c.SignUp(ctx, models.Credentials{Username: "alice", Email: "a@example.org", Password: "pw"})
	require.ErrorIs(t, err, common.ErrServer)
	assert.Equal(t, "User already exists", common.PublicMessage(err, "Authentication failed"))

	_, err = c.SignIn(ctx, "a@example.org", "wrong")
	require.ErrorIs(t, err, common.ErrServer)

	res, err = c.SignIn(ctx, "a@example.org", "pw")
	require.NoError(t, err)
	token = res.Token

	_, err = c.Skills(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Bearer "+token, srv.LastAuthorization())
}

func TestHTTPClient_ContactAndAdmin(t *testing.T) {
	srv := newServer(t)
	c := newClient(t, srv)
	ctx := context.Background()

	msg := models.ContactMessage{Name: "Bob", Email: "b@example.org", Subject: "Hi", Message: "Hello"}
	require.NoError(t, c.SubmitContact(ctx, msg))
	assert.Equal(t, []models.ContactMessage{msg}, srv.Contacts())

	created, err := c.CreateProject(ctx, models.WorkItem{Title: "New"})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	updated, err := c.UpdateProject(ctx, created.ID, models.WorkItem{Title: "Renamed"})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)

	p, err := c.UpdateProfile(ctx, models.Profile{Username: "exo", Bio: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "hi", p.Bio)

	require.NoError(t, c.DeleteProject(ctx, created.ID))
	err = c.DeleteProject(ctx, created.ID)
	require.ErrorIs(t, err, common.ErrServer)
}

func TestHTTPClient_ServerErrorWithoutMessage(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>bad gateway</html>"))
	}))
	defer ts.Close()

	c, err := NewHTTPClient(ts.URL, time.Second)
	require.NoError(t, err)

	_, err = c.Skills(context.Background())
	var se *common.ServerError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusBadGateway, se.Status)
	assert.Equal(t, common.GenericFailureMessage, se.Public())
}

func TestHTTPClient_DecodeError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"not":"a list"}`))
	}))
	defer ts.Close()

	c, err := NewHTTPClient(ts.URL, time.Second)
	require.NoError(t, err)

	_, err = c.Comments(context.Background(), "p1")
	require.ErrorIs(t, err, common.ErrDecode)
}

func TestHTTPClient_NetworkError(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	base := ts.URL
	ts.Close()

	c, err := NewHTTPClient(base, time.Second)
	require.NoError(t, err)

	_, err = c.Explore(context.Background())
	require.ErrorIs(t, err, common.ErrNetwork)
	assert.True(t, IsNetwork(err))
	assert.False(t, errors.Is(err, common.ErrServer))
}

func TestHTTPClient_TimeoutIsNetworkError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer ts.Close()

	c, err := NewHTTPClient(ts.URL, 50*time.Millisecond)
	require.NoError(t, err)

	_, err = c.Profile(context.Background())
	require.ErrorIs(t, err, common.ErrNetwork)
}

func TestHTTPClient_EscapesPathSegments(t *testing.T) {
	var (
		mu  sync.Mutex
		got string
	)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		got = r.URL.EscapedPath()
		mu.Unlock()
		_, _ = w.Write([]byte(`[]`))
	}))
	defer ts.Close()

	c, err := NewHTTPClient(ts.URL+"/api/", time.Second)
	require.NoError(t, err)

	_, err = c.Comments(context.Background(), "a/b c")
	require.NoError(t, err)
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, "/api/projects/a%2Fb%20c/comments", got)
}

func TestHTTPClient_SendsRequestID(t *testing.T) {
	var mu sync.Mutex
	ids := map[string]bool{}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		ids[r.Header.Get(common.RequestIDHeaderName)] = true
		mu.Unlock()
		_, _ = w.Write([]byte(`[]`))
	}))
	defer ts.Close()

	c, err := NewHTTPClient(ts.URL, time.Second)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		_, err = c.Skills(context.Background())
		require.NoError(t, err)
	}
	mu.Lock()
	defer mu.Unlock()
	assert.Len(t, ids, 3)
	assert.False(t, ids[""])
}

func TestHTTPClient_ProfileNullIsAbsent(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`null`))
	}))
	defer ts.Close()

	c, err := NewHTTPClient(ts.URL, time.Second)
	require.NoError(t, err)
	p, err := c.Profile(context.Background())
	require.NoError(t, err)
	assert.Nil(t, p)
}

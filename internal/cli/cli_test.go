package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/exoshivam/folio/internal/config"
	"github.com/exoshivam/folio/internal/gateway/gatewaytest"
	"github.com/exoshivam/folio/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type harness struct {
	t   *testing.T
	srv *gatewaytest.Server
	dir string
}

// newHarness isolates a CLI run from the user's environment and points it
// at a fake API.
func newHarness(t *testing.T) *harness {
	t.Helper()
	for _, k := range []string{
		config.EnvConfig, config.EnvAPIURL, config.EnvDataDir, config.EnvDBFile,
		config.EnvEphemeral, config.EnvLogDriver, config.EnvLogLevel, config.EnvShareOrigin,
	} {
		t.Setenv(k, "")
	}
	dir := t.TempDir()
	t.Chdir(dir)

	old := isTerminal
	isTerminal = func(int) bool { return false }
	t.Cleanup(func() { isTerminal = old })

	srv := gatewaytest.New()
	t.Cleanup(srv.Close)
	srv.AddItems(models.CategoryProjects,
		models.WorkItem{ID: "p1", Title: "Weather App", Technologies: []string{"React"}, Likes: 10},
		models.WorkItem{ID: "p2", Title: "Chess Engine", Technologies: []string{"Go"}, Likes: 3},
	)
	srv.AddAccount(models.User{ID: "u1", Username: "alice", Email: "alice@example.com"}, "secret")
	return &harness{t: t, srv: srv, dir: dir}
}

func (h *harness) run(stdin string, args ...string) (string, error) {
	h.t.Helper()
	var out, errOut bytes.Buffer
	full := append([]string{"--api", h.srv.APIURL(), "--data-dir", filepath.Join(h.dir, "data")}, args...)
	err := Execute(context.Background(), full, strings.NewReader(stdin), &out, &errOut)
	return out.String(), err
}

func (h *harness) signIn() {
	h.t.Helper()
	out, err := h.run("alice@example.com\nsecret\n", "signin")
	require.NoError(h.t, err)
	require.Contains(h.t, out, "Logged in as alice")
}

func TestExecute_HelpDoesNotOpenStore(t *testing.T) {
	h := newHarness(t)
	out, err := h.run("", "--help")
	require.NoError(t, err)

	_, err = h.run("", "help")
	require.NoError(t, err)
	assert.Contains(t, out, "like")
	assert.Contains(t, out, "shell")

	_, statErr := os.Stat(filepath.Join(h.dir, "data"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestExecute_LikeStatePersistsBetweenRuns(t *testing.T) {
	h := newHarness(t)

	out, err := h.run("", "like", "p1")
	require.NoError(t, err)
	assert.Contains(t, out, "Liked p1 · 11 likes")

	out, err = h.run("", "explore")
	require.NoError(t, err)
	assert.Contains(t, out, "♥ 11")

	out, err = h.run("", "like", "p1")
	require.NoError(t, err)
	assert.Contains(t, out, "Unliked p1 · 10 likes")
	assert.Equal(t, 10, h.srv.Likes("p1"))
}

func TestExecute_LikeServerFailureIsReported(t *testing.T) {
	h := newHarness(t)
	h.srv.FailNext("like", 500)

	_, err := h.run("", "like", "p1")
	require.Error(t, err)
	assert.True(t, IsReported(err))

	out, err := h.run("", "like", "p1")
	require.NoError(t, err)
	assert.Contains(t, out, "Liked p1", "a failed toggle must not flip the stored flag")
}

func TestExecute_CommentRequiresSignIn(t *testing.T) {
	h := newHarness(t)
	out, err := h.run("", "comment", "p1", "Nice")
	require.Error(t, err)
	assert.True(t, IsReported(err))
	assert.Contains(t, out, "Please sign in first")
	assert.Zero(t, h.srv.CommentCount("p1"))
}

func TestExecute_SignInCommentAndDelete(t *testing.T) {
	h := newHarness(t)
	h.signIn()

	out, err := h.run("", "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "alice <alice@example.com>")

	out, err = h.run("", "comment", "p1", "Nice", "work")
	require.NoError(t, err)
	assert.Contains(t, out, "Comment posted")
	assert.Contains(t, out, "Nice work")
	require.Equal(t, 1, h.srv.CommentCount("p1"))
	assert.True(t, strings.HasPrefix(h.srv.LastAuthorization(), "Bearer "))

	out, err = h.run("", "comments", "p1")
	require.NoError(t, err)
	assert.Contains(t, out, "(yours)")

	id := commentID(t, out)
	out, err = h.run("", "uncomment", "p1", id)
	require.NoError(t, err)
	assert.Contains(t, out, "Comment deleted")
	assert.Contains(t, out, "No comments yet", "remaining comments come from the updated cache")
	assert.Zero(t, h.srv.CommentCount("p1"))

	out, err = h.run("", "logout")
	require.NoError(t, err)
	assert.Contains(t, out, "Signed out")

	out, err = h.run("", "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "Not signed in")
}

// commentID picks the first "[id]" out of rendered comments.
func commentID(t *testing.T, out string) string {
	t.Helper()
	start := strings.Index(out, "[")
	end := strings.Index(out, "]")
	require.True(t, start >= 0 && end > start, "no comment id in %q", out)
	return out[start+1 : end]
}

func TestExecute_SignInWrongPassword(t *testing.T) {
	h := newHarness(t)
	out, err := h.run("alice@example.com\nnope\n", "signin")
	require.Error(t, err)
	assert.True(t, IsReported(err))
	assert.Contains(t, out, "Invalid email or password")
	assert.NotContains(t, out, "Logged in")

	out, _ = h.run("", "whoami")
	assert.Contains(t, out, "Not signed in")
}

func TestExecute_SearchAndHistory(t *testing.T) {
	h := newHarness(t)

	out, err := h.run("", "search", "react")
	require.NoError(t, err)
	assert.Contains(t, out, "Weather App")
	assert.NotContains(t, out, "Chess Engine")

	out, err = h.run("", "search", "nothing", "matches")
	require.NoError(t, err)
	assert.Contains(t, out, "No results")

	out, err = h.run("", "history")
	require.NoError(t, err)
	assert.Contains(t, out, "1. nothing matches")
	assert.Contains(t, out, "2. react")

	_, err = h.run("", "history", "--clear")
	require.NoError(t, err)
	out, _ = h.run("", "history")
	assert.Contains(t, out, "No recent searches")
}

func TestExecute_ThemeIsRemembered(t *testing.T) {
	h := newHarness(t)

	out, err := h.run("", "theme")
	require.NoError(t, err)
	assert.Contains(t, out, "Mode: Dark")
	assert.Contains(t, out, "Accent: orange")

	_, err = h.run("", "theme", "--light", "--accent", "blue")
	require.NoError(t, err)

	out, err = h.run("", "theme")
	require.NoError(t, err)
	assert.Contains(t, out, "Mode: Light")
	assert.Contains(t, out, "Accent: blue")

	_, err = h.run("", "theme", "--accent", "green")
	require.Error(t, err)
}

func TestExecute_ContactPromptsForMissingFields(t *testing.T) {
	h := newHarness(t)
	out, err := h.run("ann@example.com\nHello\nLine one\nLine two\n\n", "contact", "--name", "Ann")
	require.NoError(t, err)
	assert.Contains(t, out, "Message sent!")

	require.Len(t, h.srv.Contacts(), 1)
	got := h.srv.Contacts()[0]
	assert.Equal(t, models.ContactMessage{
		Name: "Ann", Email: "ann@example.com", Subject: "Hello", Message: "Line one\nLine two",
	}, got)
}

func TestExecute_ContactValidation(t *testing.T) {
	h := newHarness(t)
	out, err := h.run("", "contact", "--name", "Ann")
	require.Error(t, err)
	assert.Contains(t, out, "Email is required")
	assert.Empty(t, h.srv.Contacts())
}

func TestExecute_EphemeralLeavesNoDatabase(t *testing.T) {
	h := newHarness(t)
	out, err := h.run("", "like", "p2", "--ephemeral")
	require.NoError(t, err)
	assert.Contains(t, out, "Liked p2 · 4 likes")

	_, statErr := os.Stat(filepath.Join(h.dir, "data"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestExecute_Share(t *testing.T) {
	h := newHarness(t)
	out, err := h.run("", "share", "p 1")
	require.NoError(t, err)
	assert.Contains(t, out, "http://localhost:5173?project=p+1")
}

func TestExecute_AdminNeedsSession(t *testing.T) {
	h := newHarness(t)
	out, err := h.run("", "admin", "add-project", "--title", "New")
	require.Error(t, err)
	assert.Contains(t, out, "Please sign in first")

	h.signIn()
	out, err = h.run("", "admin", "add-project", "--title", "New", "--tech", "Go,SQLite")
	require.NoError(t, err)
	assert.Contains(t, out, "Created New")
}

func TestShell_RunsCommandsUntilQuit(t *testing.T) {
	h := newHarness(t)
	out, err := h.run("like p1\nbogus\n\nsignin\nalice@example.com\nsecret\nquit\nlike p1\n", "shell")
	require.NoError(t, err)

	assert.Contains(t, out, "folio > ")
	assert.Contains(t, out, "Liked p1 · 11 likes")
	assert.Contains(t, out, `unknown command "bogus"`)
	assert.Contains(t, out, "Logged in as alice")
	assert.Contains(t, out, "folio (alice) > ")
	assert.Contains(t, out, "Bye!")
	assert.Equal(t, 11, h.srv.Likes("p1"), "input after quit must not run")
}

func TestShell_StopsAtEOF(t *testing.T) {
	h := newHarness(t)
	out, err := h.run("home", "shell")
	require.NoError(t, err)
	assert.Equal(t, 1, h.srv.Hits("profile"))
	assert.NotContains(t, out, "Bye!")
}

package gateway

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
	"time"

	"github.com/exoshivam/folio/internal/common"
	"github.com/exoshivam/folio/internal/logging"
	"github.com/exoshivam/folio/internal/models"
	"github.com/google/uuid"
)

// TokenSource yields the bearer token to attach, if any.
type TokenSource func(ctx context.Context) (token string, ok bool)

type HTTPClient struct {
	baseURL string
	http    *http.Client
	token   TokenSource
	log     logging.Logger
}

type Option func(*HTTPClient)

func WithHTTPClient(h *http.Client) Option {
	return func(c *HTTPClient) { c.http = h }
}

func WithTokenSource(ts TokenSource) Option {
	return func(c *HTTPClient) { c.token = ts }
}

func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) { c.log = l }
}

// NewHTTPClient builds a client for the API rooted at baseURL, e.g.
// "https://api.example.org/api". timeout bounds each request; zero means no
// bound.
func NewHTTPClient(baseURL string, timeout time.Duration, opts ...Option) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid api base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid api base url %q: scheme must be http or https", baseURL)
	}

	c := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     logging.Nop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

func (c *HTTPClient) endpoint(segments ...string) string {
	var b strings.Builder
	b.WriteString(c.baseURL)
	for _, s := range segments {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(s))
	}
	return b.String()
}

// do sends body (if non-nil) as JSON and decodes a 2xx response into out
// (if non-nil).
func (c *HTTPClient) do(ctx context.Context, method, target string, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	reqID := uuid.NewString()
	req.Header.Set(common.RequestIDHeaderName, reqID)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != nil {
		if tok, ok := c.token(ctx); ok {
			req.Header.Set(common.AuthorizationHeaderName, "Bearer "+tok)
		}
	}

	log := c.log.With("method", method, "url", target, "request_id", reqID)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		log.Debug(ctx, "request failed", "error", err)
		return fmt.Errorf("%w: %s %s: %v", common.ErrNetwork, method, target, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read body: %v", common.ErrNetwork, err)
	}
	log.Debug(ctx, "request done", "status", resp.StatusCode, "elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &common.ServerError{Status: resp.StatusCode, Message: errorMessage(data)}
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: %s %s: %v", common.ErrDecode, method, target, err)
	}
	return nil
}

// errorMessage extracts {"error": "..."} or {"message": "..."} from an error
// body; anything else yields "".
func errorMessage(data []byte) string {
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return ""
	}
	if body.Error != "" {
		return body.Error
	}
	return body.Message
}

// IsNetwork reports whether err is a transport failure rather than an
// answer from the API.
func IsNetwork(err error) bool {
	return errors.Is(err, common.ErrNetwork)
}

func (c *HTTPClient) Profile(ctx context.Context) (*models.Profile, error) {
	var p *models.Profile
	if err := c.do(ctx, http.MethodGet, c.endpoint("profile"), nil, &p); err != nil {
		return nil, err
	}
	return p, nil
}

func (c *HTTPClient) Skills(ctx context.Context) ([]models.Skill, error) {
	var s []models.Skill
	if err := c.do(ctx, http.MethodGet, c.endpoint("skills"), nil, &s); err != nil {
		return nil, err
	}
	return s, nil
}

func (c *HTTPClient) Projects(ctx context.Context) ([]models.WorkItem, error) {
	var p []models.WorkItem
	if err := c.do(ctx, http.MethodGet, c.endpoint("projects"), nil, &p); err != nil {
		return nil, err
	}
	return p, nil
}

func (c *HTTPClient) Explore(ctx context.Context) (models.ExploreFeed, error) {
	feed := models.ExploreFeed{}
	if err := c.do(ctx, http.MethodGet, c.endpoint("explore"), nil, &feed); err != nil {
		return nil, err
	}
	return feed, nil
}

func (c *HTTPClient) ActiveProjects(ctx context.Context) ([]models.ActiveProject, error) {
	var a []models.ActiveProject
	if err := c.do(ctx, http.MethodGet, c.endpoint("active-projects"), nil, &a); err != nil {
		return nil, err
	}
	return a, nil
}

func (c *HTTPClient) ToggleLike(ctx context.Context, itemID string, action models.LikeAction) (*models.WorkItem, error) {
	var w models.WorkItem
	body := map[string]models.LikeAction{"action": action}
	if err := c.do(ctx, http.MethodPatch, c.endpoint("projects", itemID, "like"), body, &w); err != nil {
		return nil, err
	}
	return &w, nil
}

func (c *HTTPClient) Comments(ctx context.Context, itemID string) ([]models.Comment, error) {
	var cs []models.Comment
	if err := c.do(ctx, http.MethodGet, c.endpoint("projects", itemID, "comments"), nil, &cs); err != nil {
		return nil, err
	}
	return cs, nil
}

func (c *HTTPClient) PostComment(ctx context.Context, itemID string, nc models.NewComment) (*models.Comment, error) {
	var created models.Comment
	if err := c.do(ctx, http.MethodPost, c.endpoint("projects", itemID, "comments"), nc, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *HTTPClient) DeleteComment(ctx context.Context, commentID, userID string) error {
	body := map[string]string{"userId": userID}
	return c.do(ctx, http.MethodDelete, c.endpoint("comments", commentID), body, nil)
}

func (c *HTTPClient) SignIn(ctx context.Context, email, password string) (*models.AuthResult, error) {
	var res models.AuthResult
	creds := models.Credentials{Email: email, Password: password}
	if err := c.do(ctx, http.MethodPost, c.endpoint("auth", "signin"), creds, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *HTTPClient) SignUp(ctx context.Context, creds models.Credentials) (*models.AuthResult, error) {
	var res models.AuthResult
	if err := c.do(ctx, http.MethodPost, c.endpoint("auth", "signup"), creds, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *HTTPClient) SubmitContact(ctx context.Context, msg models.ContactMessage) error {
	return c.do(ctx, http.MethodPost, c.endpoint("contact"), msg, nil)
}

func (c *HTTPClient) UpdateProfile(ctx context.Context, p models.Profile) (*models.Profile, error) {
	var out models.Profile
	if err := c.do(ctx, http.MethodPut, c.endpoint("profile"), p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) CreateProject(ctx context.Context, w models.WorkItem) (*models.WorkItem, error) {
	var out models.WorkItem
	if err := c.do(ctx, http.MethodPost, c.endpoint("projects"), w, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) UpdateProject(ctx context.Context, id string, w models.WorkItem) (*models.WorkItem, error) {
	var out models.WorkItem
	if err := c.do(ctx, http.MethodPut, c.endpoint("projects", id), w, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) DeleteProject(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, c.endpoint("projects", id), nil, nil)
}

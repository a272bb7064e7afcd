package services

import (
	"context"
	"sync"

	"github.com/exoshivam/folio/internal/gateway"
	"github.com/exoshivam/folio/internal/models"
)

// fakeClient implements gateway.Client for unit tests. Only the methods a
// test configures do anything useful; every call is counted.
type fakeClient struct {
	mu    sync.Mutex
	calls map[string]int

	likes     map[string]int
	likeErr   error
	likeGate  chan struct{}
	likeEnter chan string

	comments   map[string][]models.Comment
	commentErr error
	postErr    error
	deleteErr  error
	lastDelete [2]string

	profile    *models.Profile
	profileErr error
	skills     []models.Skill
	skillsErr  error
	projects   []models.WorkItem
	projectErr error
	feed       models.ExploreFeed
	feedErr    error
	active     []models.ActiveProject

	authRes *models.AuthResult
	authErr error

	contactErr error
	contacts   []models.ContactMessage
}

var _ gateway.Client = (*fakeClient)(nil)

func newFakeClient() *fakeClient {
	return &fakeClient{
		calls:    make(map[string]int),
		likes:    make(map[string]int),
		comments: make(map[string][]models.Comment),
	}
}

func (f *fakeClient) hit(name string) {
	f.mu.Lock()
	f.calls[name]++
	f.mu.Unlock()
}

func (f *fakeClient) Calls(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeClient) Profile(context.Context) (*models.Profile, error) {
	f.hit("profile")
	return f.profile, f.profileErr
}

func (f *fakeClient) Skills(context.Context) ([]models.Skill, error) {
	f.hit("skills")
	return append([]models.Skill(nil), f.skills...), f.skillsErr
}

func (f *fakeClient) Projects(context.Context) ([]models.WorkItem, error) {
	f.hit("projects")
	return append([]models.WorkItem(nil), f.projects...), f.projectErr
}

func (f *fakeClient) Explore(context.Context) (models.ExploreFeed, error) {
	f.hit("explore")
	return f.feed, f.feedErr
}

func (f *fakeClient) ActiveProjects(context.Context) ([]models.ActiveProject, error) {
	f.hit("active")
	return append([]models.ActiveProject(nil), f.active...), nil
}

func (f *fakeClient) ToggleLike(ctx context.Context, itemID string, action models.LikeAction) (*models.WorkItem, error) {
	f.hit("like")
	if f.likeEnter != nil {
		f.likeEnter <- itemID
	}
	if f.likeGate != nil {
		select {
		case <-f.likeGate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.likeErr != nil {
		return nil, f.likeErr
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	switch action {
	case models.ActionLike:
		f.likes[itemID]++
	case models.ActionUnlike:
		if f.likes[itemID] > 0 {
			f.likes[itemID]--
		}
	}
	return &models.WorkItem{ID: itemID, Likes: f.likes[itemID]}, nil
}

func (f *fakeClient) Comments(_ context.Context, itemID string) ([]models.Comment, error) {
	f.hit("comments")
	if f.commentErr != nil {
		return nil, f.commentErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Comment(nil), f.comments[itemID]...), nil
}

func (f *fakeClient) PostComment(_ context.Context, itemID string, nc models.NewComment) (*models.Comment, error) {
	f.hit("post-comment")
	if f.postErr != nil {
		return nil, f.postErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	c := models.Comment{ID: "srv-" + nc.Text, Text: nc.Text, Username: nc.Username, AuthorID: nc.UserID}
	f.comments[itemID] = append([]models.Comment{c}, f.comments[itemID]...)
	return &c, nil
}

func (f *fakeClient) DeleteComment(_ context.Context, commentID, userID string) error {
	f.hit("delete-comment")
	f.mu.Lock()
	f.lastDelete = [2]string{commentID, userID}
	f.mu.Unlock()
	return f.deleteErr
}

func (f *fakeClient) SignIn(context.Context, string, string) (*models.AuthResult, error) {
	f.hit("signin")
	return f.authRes, f.authErr
}

func (f *fakeClient) SignUp(context.Context, models.Credentials) (*models.AuthResult, error) {
	f.hit("signup")
	return f.authRes, f.authErr
}

func (f *fakeClient) SubmitContact(_ context.Context, msg models.ContactMessage) error {
	f.hit("contact")
	if f.contactErr != nil {
		return f.contactErr
	}
	f.mu.Lock()
	f.contacts = append(f.contacts, msg)
	f.mu.Unlock()
	return nil
}

func (f *fakeClient) UpdateProfile(_ context.Context, p models.Profile) (*models.Profile, error) {
	f.hit("update-profile")
	return &p, nil
}

func (f *fakeClient) CreateProject(_ context.Context, w models.WorkItem) (*models.WorkItem, error) {
	f.hit("create-project")
	w.ID = "new"
	return &w, nil
}

func (f *fakeClient) UpdateProject(_ context.Context, id string, w models.WorkItem) (*models.WorkItem, error) {
	f.hit("update-project")
	w.ID = id
	return &w, nil
}

func (f *fakeClient) DeleteProject(context.Context, string) error {
	f.hit("delete-project")
	return nil
}

// fakeSession is an in-memory Session.
type fakeSession struct {
	mu    sync.Mutex
	token string
	user  *models.User
	err   error
}

func signedIn(u models.User) *fakeSession {
	return &fakeSession{token: "tok", user: &u}
}

func (s *fakeSession) IsAuthenticated(context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token != ""
}

func (s *fakeSession) CurrentUser(context.Context) (*models.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil, false
	}
	u := *s.user
	return &u, true
}

func (s *fakeSession) Establish(_ context.Context, token string, user models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.token, s.user = token, &user
	return nil
}

func (s *fakeSession) Clear(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token, s.user = "", nil
	return nil
}

// Package gatewaytest provides an in-process fake of the portfolio REST API
// for tests. It keeps its data in memory and mimics the reference backend:
// a raw like counter without per-user membership, newest-first comments and
// {"error": "..."} bodies on failure.
package gatewaytest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/exoshivam/folio/internal/models"
	"github.com/gorilla/mux"
)

type account struct {
	user     models.User
	password string
}

type Server struct {
	*httptest.Server

	mu        sync.Mutex
	profile   *models.Profile
	skills    []models.Skill
	feed      models.ExploreFeed
	active    []models.ActiveProject
	comments  map[string][]models.Comment
	accounts  map[string]account
	contacts  []models.ContactMessage
	hits      map[string]int
	failures  map[string]int
	nextID    int
	likeGate  chan struct{}
	lastAuthz string
}

// New starts a server; the API root is URL()+"/api".
func New() *Server {
	s := &Server{
		feed:     models.ExploreFeed{},
		comments: make(map[string][]models.Comment),
		accounts: make(map[string]account),
		hits:     make(map[string]int),
		failures: make(map[string]int),
	}

	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()
	api.Use(s.count)
	api.HandleFunc("/profile", s.getProfile).Methods(http.MethodGet).Name("profile")
	api.HandleFunc("/profile", s.putProfile).Methods(http.MethodPut).Name("update-profile")
	api.HandleFunc("/skills", s.getSkills).Methods(http.MethodGet).Name("skills")
	api.HandleFunc("/projects", s.getProjects).Methods(http.MethodGet).Name("projects")
	api.HandleFunc("/projects", s.createProject).Methods(http.MethodPost).Name("create-project")
	api.HandleFunc("/projects/{id}", s.updateProject).Methods(http.MethodPut).Name("update-project")
	api.HandleFunc("/projects/{id}", s.deleteProject).Methods(http.MethodDelete).Name("delete-project")
	api.HandleFunc("/projects/{id}/like", s.like).Methods(http.MethodPatch).Name("like")
	api.HandleFunc("/projects/{id}/comments", s.listComments).Methods(http.MethodGet).Name("comments")
	api.HandleFunc("/projects/{id}/comments", s.postComment).Methods(http.MethodPost).Name("post-comment")
	api.HandleFunc("/comments/{id}", s.deleteComment).Methods(http.MethodDelete).Name("delete-comment")
	api.HandleFunc("/explore", s.getExplore).Methods(http.MethodGet).Name("explore")
	api.HandleFunc("/active-projects", s.getActive).Methods(http.MethodGet).Name("active-projects")
	api.HandleFunc("/auth/signin", s.signIn).Methods(http.MethodPost).Name("signin")
	api.HandleFunc("/auth/signup", s.signUp).Methods(http.MethodPost).Name("signup")
	api.HandleFunc("/contact", s.contact).Methods(http.MethodPost).Name("contact")

	s.Server = httptest.NewServer(r)
	return s
}

// APIURL is the base URL to hand to gateway.NewHTTPClient.
func (s *Server) APIURL() string {
	return s.URL + "/api"
}

// count records hits per route name and serves queued failures.
func (s *Server) count(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := ""
		if route := mux.CurrentRoute(r); route != nil {
			name = route.GetName()
		}
		s.mu.Lock()
		s.hits[name]++
		s.lastAuthz = r.Header.Get("Authorization")
		status := s.failures[name]
		delete(s.failures, name)
		s.mu.Unlock()

		if status != 0 {
			writeError(w, status, fmt.Sprintf("injected failure on %s", name))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// ---- seeding & inspection ----

func (s *Server) SetProfile(p *models.Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile = p
}

func (s *Server) SetSkills(sk ...models.Skill) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.skills = sk
}

func (s *Server) AddItems(cat models.Category, items ...models.WorkItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.feed[cat] = append(s.feed[cat], items...)
}

func (s *Server) SetActive(a ...models.ActiveProject) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = a
}

func (s *Server) AddAccount(u models.User, password string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[u.Email] = account{user: u, password: password}
}

func (s *Server) SeedComments(itemID string, cs ...models.Comment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.comments[itemID] = append(s.comments[itemID], cs...)
}

// FailNext makes the next request to the named route answer status.
func (s *Server) FailNext(route string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[route] = status
}

// Hits is the number of requests the named route received.
func (s *Server) Hits(route string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[route]
}

// LastAuthorization is the Authorization header of the latest request.
func (s *Server) LastAuthorization() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastAuthz
}

// HoldLikes blocks like requests until the returned func is called.
func (s *Server) HoldLikes() (release func()) {
	gate := make(chan struct{})
	s.mu.Lock()
	s.likeGate = gate
	s.mu.Unlock()
	var once sync.Once
	return func() { once.Do(func() { close(gate) }) }
}

func (s *Server) Likes(itemID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if it := s.findLocked(itemID); it != nil {
		return it.Likes
	}
	return -1
}

func (s *Server) Contacts() []models.ContactMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.ContactMessage(nil), s.contacts...)
}

func (s *Server) CommentCount(itemID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.comments[itemID])
}

func (s *Server) findLocked(id string) *models.WorkItem {
	for _, cat := range models.Categories {
		items := s.feed[cat]
		for i := range items {
			if items[i].ID == id {
				return &items[i]
			}
		}
	}
	return nil
}

func (s *Server) newIDLocked(prefix string) string {
	s.nextID++
	return fmt.Sprintf("%s%d", prefix, s.nextID)
}

// ---- handlers ----

func (s *Server) getProfile(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.profile == nil {
		writeError(w, http.StatusNotFound, "Profile not found")
		return
	}
	writeJSON(w, http.StatusOK, s.profile)
}

func (s *Server) putProfile(w http.ResponseWriter, r *http.Request) {
	var p models.Profile
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid body")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile = &p
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) getSkills(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, append([]models.Skill{}, s.skills...))
}

func (s *Server) getProjects(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, append([]models.WorkItem{}, s.feed[models.CategoryProjects]...))
}

func (s *Server) createProject(w http.ResponseWriter, r *http.Request) {
	var it models.WorkItem
	if err := json.NewDecoder(r.Body).Decode(&it); err != nil || it.Title == "" {
		writeError(w, http.StatusBadRequest, "Title is required")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	it.ID = s.newIDLocked("p")
	s.feed[models.CategoryProjects] = append(s.feed[models.CategoryProjects], it)
	writeJSON(w, http.StatusCreated, it)
}

func (s *Server) updateProject(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var in models.WorkItem
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid body")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	it := s.findLocked(id)
	if it == nil {
		writeError(w, http.StatusNotFound, "Project not found")
		return
	}
	likes := it.Likes
	*it = in
	it.ID, it.Likes = id, likes
	writeJSON(w, http.StatusOK, it)
}

func (s *Server) deleteProject(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, cat := range models.Categories {
		items := s.feed[cat]
		for i := range items {
			if items[i].ID == id {
				s.feed[cat] = append(items[:i:i], items[i+1:]...)
				writeJSON(w, http.StatusOK, map[string]string{"message": "Project deleted"})
				return
			}
		}
	}
	writeError(w, http.StatusNotFound, "Project not found")
}

func (s *Server) like(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var body struct {
		Action models.LikeAction `json:"action"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid body")
		return
	}

	s.mu.Lock()
	gate := s.likeGate
	s.mu.Unlock()
	if gate != nil {
		select {
		case <-gate:
		case <-r.Context().Done():
			return
		case <-time.After(5 * time.Second):
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	it := s.findLocked(id)
	if it == nil {
		writeError(w, http.StatusNotFound, "Project not found")
		return
	}
	switch body.Action {
	case models.ActionLike:
		it.Likes++
	case models.ActionUnlike:
		if it.Likes > 0 {
			it.Likes--
		}
	default:
		writeError(w, http.StatusBadRequest, "Invalid action")
		return
	}
	writeJSON(w, http.StatusOK, it)
}

func (s *Server) listComments(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, append([]models.Comment{}, s.comments[id]...))
}

func (s *Server) postComment(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var nc models.NewComment
	if err := json.NewDecoder(r.Body).Decode(&nc); err != nil || nc.Text == "" || nc.UserID == "" {
		writeError(w, http.StatusBadRequest, "Text and userId are required")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c := models.Comment{
		ID:        s.newIDLocked("c"),
		Text:      nc.Text,
		Username:  nc.Username,
		AuthorID:  nc.UserID,
		CreatedAt: models.Timestamp{Time: time.Now().UTC().Truncate(time.Second)},
	}
	s.comments[id] = append([]models.Comment{c}, s.comments[id]...)
	writeJSON(w, http.StatusCreated, c)
}

func (s *Server) deleteComment(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var body struct {
		UserID string `json:"userId"`
	}
	_ = json.NewDecoder(r.Body).Decode(&body)

	s.mu.Lock()
	defer s.mu.Unlock()
	for item, cs := range s.comments {
		for i, c := range cs {
			if c.ID != id {
				continue
			}
			if c.AuthorID != body.UserID {
				writeError(w, http.StatusForbidden, "Not authorized to delete this comment")
				return
			}
			s.comments[item] = append(cs[:i:i], cs[i+1:]...)
			writeJSON(w, http.StatusOK, map[string]string{"message": "Comment deleted"})
			return
		}
	}
	writeError(w, http.StatusNotFound, "Comment not found")
}

func (s *Server) getExplore(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[models.Category][]models.WorkItem, len(s.feed))
	for k, v := range s.feed {
		out[k] = append([]models.WorkItem{}, v...)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) getActive(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, append([]models.ActiveProject{}, s.active...))
}

func (s *Server) signIn(w http.ResponseWriter, r *http.Request) {
	var creds models.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid body")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	acc, ok := s.accounts[creds.Email]
	if !ok || acc.password != creds.Password {
		writeError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	writeJSON(w, http.StatusOK, models.AuthResult{Token: Token(acc.user), User: acc.user})
}

func (s *Server) signUp(w http.ResponseWriter, r *http.Request) {
	var creds models.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil || creds.Username == "" || creds.Email == "" || creds.Password == "" {
		writeError(w, http.StatusBadRequest, "Username, email and password are required")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.accounts[creds.Email]; exists {
		writeError(w, http.StatusConflict, "User already exists")
		return
	}
	u := models.User{ID: s.newIDLocked("u"), Username: creds.Username, Email: creds.Email}
	s.accounts[creds.Email] = account{user: u, password: creds.Password}
	writeJSON(w, http.StatusCreated, models.AuthResult{Token: Token(u), User: u})
}

func (s *Server) contact(w http.ResponseWriter, r *http.Request) {
	var msg models.ContactMessage
	if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid body")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.contacts = append(s.contacts, msg)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Message sent"})
}

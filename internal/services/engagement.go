package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/exoshivam/folio/internal/common"
	"github.com/exoshivam/folio/internal/gateway"
	"github.com/exoshivam/folio/internal/logging"
	"github.com/exoshivam/folio/internal/models"
	"github.com/exoshivam/folio/internal/store"
)

// EngagementService reconciles local like flags and cached comment lists
// with the API's confirmed responses.
//
// Contract:
//   - ToggleLike: send the negation of the local flag; on success store the
//     flag and the server's count. A second call for the same item while one
//     is pending returns common.ErrInFlight without a request.
//   - LoadComments: replace the cached list with the server's.
//   - PostComment: require a session and 1..500 characters, then prepend
//     the server's comment to the cached list.
//   - DeleteComment: require a session whose user wrote the comment.
//
// Nothing local changes when a call fails.
type EngagementService interface {
	Liked(ctx context.Context, itemID string) bool
	LikeCount(itemID string) (int, bool)
	ObserveCounts(items ...models.WorkItem)
	ToggleLike(ctx context.Context, itemID string) (models.LikeResult, error)
	LoadComments(ctx context.Context, itemID string) ([]models.Comment, error)
	CachedComments(itemID string) []models.Comment
	PostComment(ctx context.Context, itemID, text string) (*models.Comment, error)
	DeleteComment(ctx context.Context, itemID, commentID string) error
}

type engagementService struct {
	client  gateway.Client
	store   store.Store
	session Session
	log     logging.Logger

	mu       sync.Mutex
	liked    map[string]bool
	counts   map[string]int
	inFlight map[string]struct{}
	comments map[string][]models.Comment
}

func NewEngagementService(client gateway.Client, st store.Store, sess Session, log logging.Logger) EngagementService {
	return &engagementService{
		client:   client,
		store:    st,
		session:  sess,
		log:      log,
		liked:    make(map[string]bool),
		counts:   make(map[string]int),
		inFlight: make(map[string]struct{}),
		comments: make(map[string][]models.Comment),
	}
}

// Liked reports the local flag, reading it from the store the first time an
// item is seen.
func (s *engagementService) Liked(ctx context.Context, itemID string) bool {
	s.mu.Lock()
	v, ok := s.liked[itemID]
	s.mu.Unlock()
	if ok {
		return v
	}

	val, present, err := s.store.Get(ctx, common.LikeKey(itemID))
	if err != nil {
		s.log.Warn(ctx, "reading like flag failed", "item", itemID, "error", err)
		return false
	}
	v = present && val == "true"

	s.mu.Lock()
	defer s.mu.Unlock()
	if cur, ok := s.liked[itemID]; ok {
		// a toggle completed meanwhile
		return cur
	}
	s.liked[itemID] = v
	return v
}

func (s *engagementService) LikeCount(itemID string) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.counts[itemID]
	return n, ok
}

// ObserveCounts records server-provided counts from a fresh listing.
func (s *engagementService) ObserveCounts(items ...models.WorkItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, it := range items {
		if it.ID == "" {
			continue
		}
		if _, pending := s.inFlight[it.ID]; pending {
			continue
		}
		s.counts[it.ID] = it.Likes
	}
}

func (s *engagementService) ToggleLike(ctx context.Context, itemID string) (models.LikeResult, error) {
	if strings.TrimSpace(itemID) == "" {
		return models.LikeResult{}, common.NewValidationError("id", "Missing item id")
	}

	s.mu.Lock()
	if _, pending := s.inFlight[itemID]; pending {
		s.mu.Unlock()
		return models.LikeResult{}, fmt.Errorf("toggle like %s: %w", itemID, common.ErrInFlight)
	}
	s.inFlight[itemID] = struct{}{}
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.inFlight, itemID)
		s.mu.Unlock()
	}()

	wasLiked := s.Liked(ctx, itemID)
	action := models.ActionLike
	if wasLiked {
		action = models.ActionUnlike
	}

	item, err := s.client.ToggleLike(ctx, itemID, action)
	if err != nil {
		return models.LikeResult{}, fmt.Errorf("toggle like %s: %w", itemID, err)
	}

	nowLiked := !wasLiked
	if err := s.persistLike(ctx, itemID, nowLiked); err != nil {
		return models.LikeResult{}, fmt.Errorf("toggle like %s: %w", itemID, err)
	}

	s.mu.Lock()
	s.liked[itemID] = nowLiked
	s.counts[itemID] = item.Likes
	s.mu.Unlock()

	s.log.Debug(ctx, "like toggled", "item", itemID, "action", string(action), "likes", item.Likes)
	return models.LikeResult{Liked: nowLiked, Likes: item.Likes}, nil
}

func (s *engagementService) persistLike(ctx context.Context, itemID string, liked bool) error {
	key := common.LikeKey(itemID)
	if liked {
		return s.store.Set(ctx, key, "true")
	}
	return s.store.Remove(ctx, key)
}

func (s *engagementService) LoadComments(ctx context.Context, itemID string) ([]models.Comment, error) {
	list, err := s.client.Comments(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("load comments for %s: %w", itemID, err)
	}
	if list == nil {
		list = []models.Comment{}
	}

	s.mu.Lock()
	s.comments[itemID] = list
	s.mu.Unlock()

	return cloneComments(list), nil
}

func (s *engagementService) CachedComments(itemID string) []models.Comment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneComments(s.comments[itemID])
}

func (s *engagementService) PostComment(ctx context.Context, itemID, text string) (*models.Comment, error) {
	user, ok := s.currentUser(ctx)
	if !ok {
		return nil, common.SignInRequired("comment")
	}
	if err := ValidateComment(text); err != nil {
		return nil, err
	}

	c, err := s.client.PostComment(ctx, itemID, models.NewComment{
		Text:     text,
		UserID:   user.ID,
		Username: user.Username,
	})
	if err != nil {
		return nil, fmt.Errorf("post comment on %s: %w", itemID, err)
	}

	s.mu.Lock()
	s.comments[itemID] = append([]models.Comment{*c}, s.comments[itemID]...)
	s.mu.Unlock()
	return c, nil
}

func (s *engagementService) DeleteComment(ctx context.Context, itemID, commentID string) error {
	user, ok := s.currentUser(ctx)
	if !ok {
		return common.SignInRequired("delete comments")
	}

	s.mu.Lock()
	cached, known := findComment(s.comments[itemID], commentID)
	s.mu.Unlock()
	if known && cached.AuthorID != user.ID {
		return fmt.Errorf("delete comment %s: %w", commentID, common.ErrForbidden)
	}

	if err := s.client.DeleteComment(ctx, commentID, user.ID); err != nil {
		var se *common.ServerError
		if errors.As(err, &se) && se.Status == http.StatusForbidden {
			err = errors.Join(err, common.ErrForbidden)
		}
		return fmt.Errorf("delete comment %s: %w", commentID, err)
	}

	s.mu.Lock()
	list := s.comments[itemID]
	for i := range list {
		if list[i].ID == commentID {
			s.comments[itemID] = append(list[:i:i], list[i+1:]...)
			break
		}
	}
	s.mu.Unlock()
	return nil
}

// currentUser gates on the token first; a token without a readable user
// record is not enough to act on someone's behalf.
func (s *engagementService) currentUser(ctx context.Context) (*models.User, bool) {
	if !s.session.IsAuthenticated(ctx) {
		return nil, false
	}
	return s.session.CurrentUser(ctx)
}

// ValidateComment rejects empty or over-long comment text. Length is
// counted in characters after trimming.
func ValidateComment(text string) error {
	if strings.TrimSpace(text) == "" {
		return common.NewValidationError("text", "Comment cannot be empty")
	}
	if utf8.RuneCountInString(strings.TrimSpace(text)) > common.MaxCommentLength {
		return common.NewValidationError("text", fmt.Sprintf("Comment must be at most %d characters", common.MaxCommentLength))
	}
	return nil
}

func findComment(list []models.Comment, id string) (models.Comment, bool) {
	for _, c := range list {
		if c.ID == id {
			return c, true
		}
	}
	return models.Comment{}, false
}

// cloneComments keeps nil as nil and empty as empty.
func cloneComments(list []models.Comment) []models.Comment {
	return slices.Clone(list)
}

package services

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/exoshivam/folio/internal/common"
	"github.com/exoshivam/folio/internal/logging"
	"github.com/exoshivam/folio/internal/models"
	"github.com/exoshivam/folio/internal/store"
)

// MaxSearchHistory bounds the recent-search list.
const MaxSearchHistory = 5

// Search returns the items whose title, description, technologies or
// category label contain query, ignoring case. Matches keep their snapshot
// order. A blank query matches nothing.
func Search(items []models.FeedItem, query string) []models.FeedItem {
	q := strings.ToLower(strings.TrimSpace(query))
	out := []models.FeedItem{}
	if q == "" {
		return out
	}
	for _, it := range items {
		if containsFold(q, it.Title, it.Description, it.CategoryLabel()) || containsFold(q, it.Technologies...) {
			out = append(out, it)
		}
	}
	return out
}

// FilterActive applies the same matching to active projects, minus the
// category.
func FilterActive(items []models.ActiveProject, query string) []models.ActiveProject {
	q := strings.ToLower(strings.TrimSpace(query))
	out := []models.ActiveProject{}
	if q == "" {
		return out
	}
	for _, it := range items {
		if containsFold(q, it.Title, it.Description) || containsFold(q, it.Technologies...) {
			out = append(out, it)
		}
	}
	return out
}

// q must already be lower-cased.
func containsFold(q string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

func sortFeed(items []models.FeedItem) {
	sort.SliceStable(items, func(i, j int) bool { return items[i].OrderIndex < items[j].OrderIndex })
}

func sortActive(items []models.ActiveProject) {
	sort.SliceStable(items, func(i, j int) bool { return items[i].OrderIndex < items[j].OrderIndex })
}

// SearchHistory keeps the most recent distinct queries, newest first, as a
// JSON array under the searchHistory key.
type SearchHistory struct {
	store store.Store
	log   logging.Logger

	// read-modify-write of one key
	mu sync.Mutex
}

func NewSearchHistory(st store.Store, log logging.Logger) *SearchHistory {
	return &SearchHistory{store: st, log: log}
}

// List never fails; unreadable history is logged and treated as empty.
func (h *SearchHistory) List(ctx context.Context) []string {
	raw, ok, err := h.store.Get(ctx, common.KeySearchHistory)
	if err != nil {
		h.log.Warn(ctx, "reading search history failed", "error", err)
		return []string{}
	}
	if !ok {
		return []string{}
	}
	var list []string
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		h.log.Warn(ctx, "stored search history is malformed, ignoring it", "error", fmt.Errorf("%w: %v", common.ErrDecode, err))
		return []string{}
	}
	if list == nil {
		list = []string{}
	}
	return list
}

// Push records query as the most recent search. Blank queries are ignored.
func (h *SearchHistory) Push(ctx context.Context, query string) ([]string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	current := h.List(ctx)
	if strings.TrimSpace(query) == "" {
		return current, nil
	}

	updated := make([]string, 0, MaxSearchHistory)
	updated = append(updated, query)
	for _, q := range current {
		if q != query && !slices.Contains(updated, q) {
			updated = append(updated, q)
		}
	}
	if len(updated) > MaxSearchHistory {
		updated = updated[:MaxSearchHistory]
	}

	encoded, err := json.Marshal(updated)
	if err != nil {
		return current, fmt.Errorf("encode search history: %w", err)
	}
	if err := h.store.Set(ctx, common.KeySearchHistory, string(encoded)); err != nil {
		return current, fmt.Errorf("save search history: %w", err)
	}
	return updated, nil
}

func (h *SearchHistory) Clear(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.store.Remove(ctx, common.KeySearchHistory); err != nil {
		return fmt.Errorf("clear search history: %w", err)
	}
	return nil
}

package services

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/exoshivam/folio/internal/common"
	"github.com/exoshivam/folio/internal/gateway"
	"github.com/exoshivam/folio/internal/logging"
	"github.com/exoshivam/folio/internal/models"
	"golang.org/x/sync/errgroup"
)

// PortfolioService reads the public portfolio and performs the owner's
// content edits.
type PortfolioService interface {
	Home(ctx context.Context) *models.Home
	Snapshot(ctx context.Context) ([]models.FeedItem, error)
	Explore(ctx context.Context, category models.Category) ([]models.FeedItem, error)
	Item(ctx context.Context, id string) (*models.FeedItem, error)
	ActiveProjects(ctx context.Context, query string) ([]models.ActiveProject, error)

	UpdateProfile(ctx context.Context, p models.Profile) (*models.Profile, error)
	CreateProject(ctx context.Context, w models.WorkItem) (*models.WorkItem, error)
	UpdateProject(ctx context.Context, id string, w models.WorkItem) (*models.WorkItem, error)
	DeleteProject(ctx context.Context, id string) error
}

type portfolioService struct {
	client     gateway.Client
	engagement EngagementService
	session    Session
	log        logging.Logger
}

func NewPortfolioService(client gateway.Client, engagement EngagementService, sess Session, log logging.Logger) PortfolioService {
	return &portfolioService{client: client, engagement: engagement, session: sess, log: log}
}

// Home loads profile, skills and projects concurrently. A failed part
// degrades to nil/empty on its own and is only logged.
func (p *portfolioService) Home(ctx context.Context) *models.Home {
	home := &models.Home{Skills: []models.Skill{}, Projects: []models.WorkItem{}}

	var g errgroup.Group
	g.Go(func() error {
		prof, err := p.client.Profile(ctx)
		if err != nil {
			p.log.Warn(ctx, "profile unavailable", "error", err)
			return nil
		}
		home.Profile = prof
		return nil
	})
	g.Go(func() error {
		skills, err := p.client.Skills(ctx)
		if err != nil {
			p.log.Warn(ctx, "skills unavailable", "error", err)
			return nil
		}
		models.SortSkills(skills)
		home.Skills = skills
		return nil
	})
	g.Go(func() error {
		projects, err := p.client.Projects(ctx)
		if err != nil {
			p.log.Warn(ctx, "projects unavailable", "error", err)
			return nil
		}
		models.SortWorkItems(projects)
		p.engagement.ObserveCounts(projects...)
		home.Projects = projects
		return nil
	})
	_ = g.Wait()

	return home
}

// Snapshot flattens the explore feed in category order with the items of
// each category as the API listed them. Search runs over this order.
func (p *portfolioService) Snapshot(ctx context.Context) ([]models.FeedItem, error) {
	feed, err := p.client.Explore(ctx)
	if err != nil {
		return nil, fmt.Errorf("load explore feed: %w", err)
	}

	out := make([]models.FeedItem, 0)
	for _, cat := range models.Categories {
		for _, it := range feed[cat] {
			out = append(out, models.FeedItem{
				WorkItem: it,
				Category: cat,
				Liked:    p.engagement.Liked(ctx, it.ID),
			})
		}
		p.engagement.ObserveCounts(feed[cat]...)
	}
	return out, nil
}

// Explore is the feed ordered by order_index. An empty category means all.
func (p *portfolioService) Explore(ctx context.Context, category models.Category) ([]models.FeedItem, error) {
	if category != "" && !category.Valid() {
		return nil, common.NewValidationError("category", fmt.Sprintf("Unknown category %q", category))
	}
	items, err := p.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	if category != "" {
		filtered := items[:0]
		for _, it := range items {
			if it.Category == category {
				filtered = append(filtered, it)
			}
		}
		items = filtered
	}
	sortFeed(items)
	return items, nil
}

func (p *portfolioService) Item(ctx context.Context, id string) (*models.FeedItem, error) {
	items, err := p.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID == id {
			return &items[i], nil
		}
	}
	return nil, fmt.Errorf("work item %q: %w", id, common.ErrNotFound)
}

// ActiveProjects lists in-progress builds ordered by order_index. A blank
// query returns them all.
func (p *portfolioService) ActiveProjects(ctx context.Context, query string) ([]models.ActiveProject, error) {
	list, err := p.client.ActiveProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("load active projects: %w", err)
	}
	sortActive(list)
	if strings.TrimSpace(query) == "" {
		return list, nil
	}
	return FilterActive(list, query), nil
}

func (p *portfolioService) UpdateProfile(ctx context.Context, prof models.Profile) (*models.Profile, error) {
	if !p.session.IsAuthenticated(ctx) {
		return nil, common.SignInRequired("edit the profile")
	}
	out, err := p.client.UpdateProfile(ctx, prof)
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return out, nil
}

func (p *portfolioService) CreateProject(ctx context.Context, w models.WorkItem) (*models.WorkItem, error) {
	if !p.session.IsAuthenticated(ctx) {
		return nil, common.SignInRequired("create projects")
	}
	if strings.TrimSpace(w.Title) == "" {
		return nil, common.NewValidationError("title", "Title is required")
	}
	out, err := p.client.CreateProject(ctx, w)
	if err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	return out, nil
}

func (p *portfolioService) UpdateProject(ctx context.Context, id string, w models.WorkItem) (*models.WorkItem, error) {
	if !p.session.IsAuthenticated(ctx) {
		return nil, common.SignInRequired("edit projects")
	}
	out, err := p.client.UpdateProject(ctx, id, w)
	if err != nil {
		return nil, fmt.Errorf("update project %s: %w", id, err)
	}
	return out, nil
}

func (p *portfolioService) DeleteProject(ctx context.Context, id string) error {
	if !p.session.IsAuthenticated(ctx) {
		return common.SignInRequired("delete projects")
	}
	if err := p.client.DeleteProject(ctx, id); err != nil {
		return fmt.Errorf("delete project %s: %w", id, err)
	}
	return nil
}

// ShareURL is the link that opens a single project on the web front end.
func ShareURL(origin, id string) string {
	return strings.TrimRight(origin, "/") + "?project=" + url.QueryEscape(id)
}

package models

import (
	"encoding/json"
	"sort"
)

// WorkItem is a portfolio entry: a project, experiment, hackathon entry,
// side idea or IoT build. Likes is the server's authoritative counter.
type WorkItem struct {
	ID           string    `json:"id,omitempty"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	ImageURLs    []string  `json:"image_urls"`
	ProjectURL   string    `json:"project_url"`
	Technologies []string  `json:"technologies"`
	Likes        int       `json:"likes"`
	OrderIndex   int       `json:"order_index"`
	CreatedAt    Timestamp `json:"created_at"`
}

func (w *WorkItem) UnmarshalJSON(b []byte) error {
	type alias WorkItem
	var raw struct {
		alias
		MongoID string `json:"_id"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*w = WorkItem(raw.alias)
	w.ID = pickID(raw.MongoID, raw.ID)
	if w.Likes < 0 {
		w.Likes = 0
	}
	return nil
}

// SortWorkItems orders items by OrderIndex, keeping the input order for ties.
func SortWorkItems(items []WorkItem) {
	sort.SliceStable(items, func(i, j int) bool { return items[i].OrderIndex < items[j].OrderIndex })
}

// Category keys of the explore feed.
type Category string

const (
	CategoryProjects    Category = "projects"
	CategoryExperiments Category = "experiments"
	CategoryHackathons  Category = "hackathons"
	CategorySideIdeas   Category = "side_ideas"
	CategoryIoTWorks    Category = "iot_works"
)

// Categories lists the feed categories in display order.
var Categories = []Category{
	CategoryProjects,
	CategoryExperiments,
	CategoryHackathons,
	CategorySideIdeas,
	CategoryIoTWorks,
}

var categoryLabels = map[Category]string{
	CategoryProjects:    "Projects",
	CategoryExperiments: "Experiments",
	CategoryHackathons:  "Hackathons",
	CategorySideIdeas:   "Side Ideas",
	CategoryIoTWorks:    "IoT Works",
}

func (c Category) Label() string {
	if l, ok := categoryLabels[c]; ok {
		return l
	}
	return string(c)
}

func (c Category) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

// ExploreFeed is the /explore response keyed by category.
type ExploreFeed map[Category][]WorkItem

// FeedItem is a work item placed in its category, with the local like flag.
type FeedItem struct {
	WorkItem
	Category Category `json:"category"`
	Liked    bool     `json:"liked"`
}

func (f FeedItem) CategoryLabel() string {
	return f.Category.Label()
}

// ActiveProject is an in-progress build listed on the profile header.
type ActiveProject struct {
	ID           string   `json:"id,omitempty"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	ImageURLs    []string `json:"image_urls"`
	ProjectURL   string   `json:"project_url"`
	Technologies []string `json:"technologies"`
	Status       string   `json:"status"`
	Progress     int      `json:"progress"`
	OrderIndex   int      `json:"order_index"`
}

func (a *ActiveProject) UnmarshalJSON(b []byte) error {
	type alias ActiveProject
	var raw struct {
		alias
		MongoID string `json:"_id"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*a = ActiveProject(raw.alias)
	a.ID = pickID(raw.MongoID, raw.ID)
	return nil
}

// LikeAction is the body of a like toggle.
type LikeAction string

const (
	ActionLike   LikeAction = "like"
	ActionUnlike LikeAction = "unlike"
)

// LikeResult is the confirmed outcome of a toggle.
type LikeResult struct {
	Liked bool
	Likes int
}

package models

import (
	"encoding/json"
	"sort"
)

type Profile struct {
	ID             string    `json:"id,omitempty"`
	Username       string    `json:"username"`
	FullName       string    `json:"full_name"`
	Bio            string    `json:"bio"`
	Website        string    `json:"website"`
	GithubURL      string    `json:"github_url,omitempty"`
	AvatarURL      string    `json:"avatar_url"`
	ProjectsCount  int       `json:"projects_count"`
	ViewsCount     int       `json:"views_count"`
	FollowingCount int       `json:"following_count"`
	CreatedAt      Timestamp `json:"created_at"`
	UpdatedAt      Timestamp `json:"updated_at"`
}

func (p *Profile) UnmarshalJSON(b []byte) error {
	type alias Profile
	var raw struct {
		alias
		MongoID string `json:"_id"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*p = Profile(raw.alias)
	p.ID = pickID(raw.MongoID, raw.ID)
	return nil
}

type Skill struct {
	ID         string `json:"id,omitempty"`
	Name       string `json:"name"`
	Icon       string `json:"icon"`
	OrderIndex int    `json:"order_index"`
}

func (s *Skill) UnmarshalJSON(b []byte) error {
	type alias Skill
	var raw struct {
		alias
		MongoID string `json:"_id"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*s = Skill(raw.alias)
	s.ID = pickID(raw.MongoID, raw.ID)
	return nil
}

func SortSkills(skills []Skill) {
	sort.SliceStable(skills, func(i, j int) bool { return skills[i].OrderIndex < skills[j].OrderIndex })
}

// Home is everything the landing screen shows. Profile is nil when the API
// returned none.
type Home struct {
	Profile  *Profile
	Skills   []Skill
	Projects []WorkItem
}

// ContactMessage is the contact form payload.
type ContactMessage struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

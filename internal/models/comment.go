package models

import "encoding/json"

// Comment on a work item. AuthorID is the only field consulted when
// deciding whether the current user may delete it.
type Comment struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Username  string    `json:"username"`
	AuthorID  string    `json:"userId"`
	CreatedAt Timestamp `json:"created_at"`
}

func (c *Comment) UnmarshalJSON(b []byte) error {
	type alias Comment
	var raw struct {
		alias
		MongoID string `json:"_id"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*c = Comment(raw.alias)
	c.ID = pickID(raw.MongoID, raw.ID)
	return nil
}

// NewComment is the body posted to create a comment.
type NewComment struct {
	Text     string `json:"text"`
	UserID   string `json:"userId"`
	Username string `json:"username"`
}

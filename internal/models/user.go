package models

import "encoding/json"

// User is the authenticated account as returned by the auth endpoints and
// persisted under the "user" key.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

func (u *User) UnmarshalJSON(b []byte) error {
	type alias User
	var raw struct {
		alias
		MongoID string `json:"_id"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*u = User(raw.alias)
	u.ID = pickID(raw.MongoID, raw.ID)
	return nil
}

// AuthResult is the body of a successful sign-in or sign-up.
type AuthResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Credentials for sign-in; Username is only sent on sign-up.
type Credentials struct {
	Username string `json:"username,omitempty"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

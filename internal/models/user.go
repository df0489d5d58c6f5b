package models

type User struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"` // don’t expose hash
}

// Session identifies the caller of a request. It is attached to the request
// context by the auth middleware and handed to whatever needs it.
type Session struct {
	UserID int `json:"userId"`
}

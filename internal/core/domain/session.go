package domain

import "time"

// AdminProfile is the signed-in administrator as reported by the API.
type AdminProfile struct {
	ID    FlexString `json:"id"`
	Name  string     `json:"name"`
	Email string     `json:"email"`
	Role  string     `json:"role"`
}

// Session is the console's explicit auth state: created at login, loaded on
// each request, deleted at logout. Token is the API bearer token.
type Session struct {
	ID        string       `json:"id"`
	Token     string       `json:"token"`
	Admin     AdminProfile `json:"admin"`
	LoggedIn  bool         `json:"logged_in"`
	CreatedAt time.Time    `json:"created_at"`
	ExpiresAt time.Time    `json:"expires_at"`
}

// Active reports whether the session may still be used at now.
func (s *Session) Active(now time.Time) bool {
	return s != nil && s.LoggedIn && s.Token != "" && now.Before(s.ExpiresAt)
}

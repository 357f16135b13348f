// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
// Entities mirror the server's canonical representations; the backend
// remains authoritative for all of them.
package entity

import "time"

// User is the core identity entity, mirroring a backend user account.
// Cross-references from other entities (e.g. a work's staff assignments)
// are held as identifiers, never as live pointers to a User.
type User struct {
	ID                 string        `json:"_id"`
	Name               string        `json:"name"`
	Email              string        `json:"email"`
	Role               Role          `json:"role"`
	ProfilePic         string        `json:"profilePic,omitempty"`
	TotalWorkCompleted int           `json:"totalWorkCompleted"`
	Notifications      Notifications `json:"notifications"`
	CreatedAt          time.Time     `json:"createdAt,omitzero"`
	UpdatedAt          time.Time     `json:"updatedAt,omitzero"`
}

// Notifications holds a user's notification channel preferences.
type Notifications struct {
	Email    bool `json:"email"`
	WhatsApp bool `json:"whatsapp"`
}

// DefaultNotifications returns the preferences applied when the server
// has none recorded for a user.
func DefaultNotifications() Notifications {
	return Notifications{Email: true, WhatsApp: true}
}

// Session pairs the authenticated user with the bearer token issued for
// them. Token is non-empty exactly when User is non-nil.
type Session struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

// IsAuthenticated reports whether the session holds a logged-in identity.
func (s *Session) IsAuthenticated() bool {
	return s != nil && s.User != nil && s.Token != ""
}

package entity

// Wedding is a showcased wedding event on the marketing site.
type Wedding struct {
	ID          string `json:"_id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image"`
}

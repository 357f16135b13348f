package entity

// MenuItem is a dish offered by the catering business.
type MenuItem struct {
	ID       string  `json:"_id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Category string  `json:"category"`
	Image    string  `json:"image"`
}

// Category is a named menu grouping. Deleting a category cascades to its
// items on the server; the client refetches rather than reconciling.
type Category struct {
	Name string `json:"name"`
}

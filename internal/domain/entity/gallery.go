package entity

// GalleryImage is one image of the paginated public gallery. Image holds
// the asset-host URL; the client never stores image bytes.
type GalleryImage struct {
	ID    string `json:"_id"`
	Image string `json:"image"`
}

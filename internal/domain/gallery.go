package domain

import "time"

type GalleryImage struct {
	ID         uint      `json:"id"`
	EventID    *uint     `json:"event_id"`
	ImageURL   string    `json:"image_url"`
	Caption    string    `json:"caption"`
	UploadedBy uint      `json:"uploaded_by"`
	CreatedAt  time.Time `json:"created_at"`
}

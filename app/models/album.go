package models

import (
	"time"
)

// Album represents a named collection of photos sharing a theme.
// Counts, year ranges and cover URLs are derived from the photo list at
// read time and never stored on the record.
type Album struct {
	ID           string    `bson:"id" json:"id"`
	Name         string    `bson:"name" json:"name" validate:"required,min=1,max=255"`
	Description  string    `bson:"description,omitempty" json:"description"`
	Theme        string    `bson:"theme,omitempty" json:"theme"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
	CoverPhotoID string    `bson:"cover_photo_id,omitempty" json:"cover_photo_id,omitempty"`
}

package models

import (
	"time"
)

// GallerySnapshot is the aggregate fetched on load and held in memory by the
// gallery engine.
type GallerySnapshot struct {
	Photos []Photo `json:"photos"`
	Albums []Album `json:"albums"`
}

// DeletionLogEntry is an append-only tombstone written when a photo is
// deleted, so an out-of-band job can clean up the orphaned media asset.
// It is write-only and best-effort from this system's point of view.
type DeletionLogEntry struct {
	PhotoID   string    `bson:"photo_id" json:"photo_id"`
	URL       string    `bson:"url" json:"url"`
	AlbumID   string    `bson:"album_id,omitempty" json:"album_id"`
	DeletedAt time.Time `bson:"deleted_at" json:"deleted_at"`
}

// ExifMetadata is the structured record produced by metadata extraction.
// Every field is optional; an all-nil record is a valid result for images
// without EXIF data.
type ExifMetadata struct {
	CapturedAt          *time.Time
	CameraMake          *string
	CameraModel         *string
	FNumber             *float64
	ExposureTimeSeconds *float64
	ISO                 *int
	FocalLengthMM       *float64
	GPS                 *GPSCoordinate
	LocationName        *string
}

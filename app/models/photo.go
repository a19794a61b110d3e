package models

import (
	"time"
)

// AspectClass is the coarse layout bucket derived once from pixel dimensions.
type AspectClass string

const (
	AspectLandscape AspectClass = "landscape"
	AspectPortrait  AspectClass = "portrait"
	AspectSquare    AspectClass = "square"
)

// GPSCoordinate is a WGS84 point extracted from EXIF data.
type GPSCoordinate struct {
	Latitude  float64 `bson:"latitude" json:"latitude"`
	Longitude float64 `bson:"longitude" json:"longitude"`
}

// Photo represents one uploaded image. Optional fields are pointers with
// omitempty so the persisted document never contains nulls.
type Photo struct {
	ID         string    `bson:"id" json:"id"`
	URL        string    `bson:"url" json:"url"`
	UploadDate time.Time `bson:"upload_date" json:"upload_date"`
	Title      string    `bson:"title" json:"title"`
	AlbumID    string    `bson:"album_id,omitempty" json:"album_id"`

	CapturedAt          *time.Time     `bson:"captured_at,omitempty" json:"captured_at,omitempty"`
	CameraMake          *string        `bson:"camera_make,omitempty" json:"camera_make,omitempty"`
	CameraModel         *string        `bson:"camera_model,omitempty" json:"camera_model,omitempty"`
	FNumber             *float64       `bson:"f_number,omitempty" json:"f_number,omitempty"`
	ExposureTimeSeconds *float64       `bson:"exposure_time_seconds,omitempty" json:"exposure_time_seconds,omitempty"`
	ISO                 *int           `bson:"iso,omitempty" json:"iso,omitempty"`
	FocalLengthMM       *float64       `bson:"focal_length_mm,omitempty" json:"focal_length_mm,omitempty"`
	GPSCoordinate       *GPSCoordinate `bson:"gps_coordinate,omitempty" json:"gps_coordinate,omitempty"`
	LocationName        *string        `bson:"location_name,omitempty" json:"location_name,omitempty"`

	Width            *int        `bson:"width,omitempty" json:"width,omitempty"`
	Height           *int        `bson:"height,omitempty" json:"height,omitempty"`
	AspectRatioClass AspectClass `bson:"aspect_ratio_class" json:"aspect_ratio_class"`

	// ChunkID is the physical storage location the photo currently lives in.
	// It is a gateway artifact, never persisted inside the photo itself.
	ChunkID string `bson:"-" json:"-"`
}

// BestDate returns the capture timestamp when known, the upload date otherwise.
// All chronological derivations sort on this.
func (p Photo) BestDate() time.Time {
	if p.CapturedAt != nil {
		return *p.CapturedAt
	}
	return p.UploadDate
}

// GridSpan returns how many grid columns the photo occupies in the
// fixed-column masonry layout.
func (p Photo) GridSpan() int {
	if p.AspectRatioClass == AspectLandscape {
		return 2
	}
	return 1
}

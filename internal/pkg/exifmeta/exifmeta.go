package exifmeta

import (
	"fmt"
	"io"

	"github.com/disintegration/imaging"
	"github.com/gofiber/fiber/v2/log"
	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/mknote"

	"github.com/glimmerpics/glimmer/app/models"
)

func init() {
	// Register Nikon and Canon maker notes
	exif.RegisterParsers(mknote.All...)
}

// Extract reads EXIF metadata from an image stream. Images without EXIF data
// are common and yield an empty record, not an error.
func Extract(r io.Reader) (models.ExifMetadata, error) {
	meta := models.ExifMetadata{}

	x, err := exif.Decode(r)
	if err != nil {
		log.Info(fmt.Sprintf("[ExifMeta] No EXIF data found: %v", err))
		return meta, nil
	}

	// Capture timestamp
	if dt, err := x.DateTime(); err == nil {
		meta.CapturedAt = &dt
	}

	// Camera make and model (strip quotes)
	if tag, err := x.Get(exif.Make); err == nil {
		if s, err := tag.StringVal(); err == nil && s != "" {
			meta.CameraMake = &s
		}
	}
	if tag, err := x.Get(exif.Model); err == nil {
		if s, err := tag.StringVal(); err == nil && s != "" {
			meta.CameraModel = &s
		}
	}

	// Aperture (F-Number)
	if tag, err := x.Get(exif.FNumber); err == nil {
		if v, err := tag.Float(0); err == nil {
			meta.FNumber = &v
		}
	}

	// Exposure time in seconds (stored as a rational)
	if tag, err := x.Get(exif.ExposureTime); err == nil {
		if num, den, err := tag.Rat2(0); err == nil && den != 0 {
			secs := float64(num) / float64(den)
			meta.ExposureTimeSeconds = &secs
		}
	}

	// ISO
	if tag, err := x.Get(exif.ISOSpeedRatings); err == nil {
		if v, err := tag.Int(0); err == nil {
			meta.ISO = &v
		}
	}

	// Focal length
	if tag, err := x.Get(exif.FocalLength); err == nil {
		if v, err := tag.Float(0); err == nil {
			meta.FocalLengthMM = &v
		}
	}

	// GPS coordinates
	if lat, long, err := x.LatLong(); err == nil {
		meta.GPS = &models.GPSCoordinate{Latitude: lat, Longitude: long}
	}

	return meta, nil
}

// Dimensions decodes an image stream and returns its pixel width and height.
// Decoding honors the EXIF orientation flag, so rotated phone shots report
// their displayed dimensions rather than the sensor's.
func Dimensions(r io.Reader) (int, int, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return 0, 0, fmt.Errorf("error decoding image: %w", err)
	}
	bounds := img.Bounds()
	return bounds.Dx(), bounds.Dy(), nil
}

// AspectClassFor buckets pixel dimensions into a layout class. Exactly square
// images are their own class.
func AspectClassFor(width, height int) models.AspectClass {
	switch {
	case width > height:
		return models.AspectLandscape
	case width < height:
		return models.AspectPortrait
	default:
		return models.AspectSquare
	}
}

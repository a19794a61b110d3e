package gallery

import (
	"context"
	"io"

	"github.com/glimmerpics/glimmer/app/models"
	"github.com/glimmerpics/glimmer/internal/pkg/exifmeta"
)

// Store defines the remote document gateway operations the engine depends
// on. The chunked MongoDB implementation lives in app/gateway/docstore.
type Store interface {
	FetchSnapshot(ctx context.Context) (*models.GallerySnapshot, error)
	CreatePhoto(ctx context.Context, photo models.Photo) (string, error)
	UpdatePhoto(ctx context.Context, photoID, chunkID string, patch models.PhotoPatch) error
	DeletePhoto(ctx context.Context, photoID, chunkID string) error
	CreateAlbum(ctx context.Context, album models.Album) error
	UpdateAlbum(ctx context.Context, albumID string, patch models.AlbumPatch) error
	DeleteAlbum(ctx context.Context, albumID string) error
	BulkReassignAlbum(ctx context.Context, locations []models.PhotoLocation, newAlbumID string) error
	ClearAlbumAssignments(ctx context.Context, albumID string) error
	CountAlbumPhotos(ctx context.Context, albumID string) (int, error)
	AppendDeletionLog(ctx context.Context, entry models.DeletionLogEntry) error
}

// MediaUploader uploads a raw image file to the CDN and returns its
// canonical delivery URL.
type MediaUploader interface {
	Upload(ctx context.Context, filename string, file io.Reader) (string, error)
}

// MetadataExtractor produces EXIF metadata and pixel dimensions from a raw
// image stream.
type MetadataExtractor interface {
	Extract(r io.Reader) (models.ExifMetadata, error)
	Dimensions(r io.Reader) (int, int, error)
}

// Geocoder resolves a coordinate to a best-effort place name.
type Geocoder interface {
	ReverseGeocode(ctx context.Context, lat, lon float64) (string, error)
}

// ExifExtractor is the default MetadataExtractor backed by goexif.
type ExifExtractor struct{}

func (ExifExtractor) Extract(r io.Reader) (models.ExifMetadata, error) {
	return exifmeta.Extract(r)
}

func (ExifExtractor) Dimensions(r io.Reader) (int, int, error) {
	return exifmeta.Dimensions(r)
}

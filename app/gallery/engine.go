package gallery

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"

	"github.com/glimmerpics/glimmer/app/models"
	"github.com/glimmerpics/glimmer/internal/pkg/apperrors"
	"github.com/glimmerpics/glimmer/internal/pkg/exifmeta"
)

// batchGroupSize bounds how many upload pipelines run concurrently during a
// batch upload. Groups run sequentially.
const batchGroupSize = 3

// Engine owns the in-memory gallery model: the photo and album collections,
// all mutation operations against the remote gateways, and the optimistic
// local updates applied after remote success. Mutations always replace whole
// slices, never edit them in place.
type Engine struct {
	mu      sync.RWMutex
	photos  []models.Photo
	albums  []models.Album
	loading bool
	lastErr error

	store Store
	media MediaUploader
	meta  MetadataExtractor
	geo   Geocoder
}

func NewEngine(store Store, media MediaUploader, meta MetadataExtractor, geo Geocoder) *Engine {
	return &Engine{
		photos: []models.Photo{},
		albums: []models.Album{},
		store:  store,
		media:  media,
		meta:   meta,
		geo:    geo,
	}
}

// Photos returns a copy of the current photo list, newest insertions first.
func (e *Engine) Photos() []models.Photo {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return append([]models.Photo(nil), e.photos...)
}

// Albums returns a copy of the current album list.
func (e *Engine) Albums() []models.Album {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return append([]models.Album(nil), e.albums...)
}

// Loading reports whether an initial load is still in flight.
func (e *Engine) Loading() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.loading
}

// LastError returns the error recorded by the most recent failed load.
func (e *Engine) LastError() error {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.lastErr
}

// Load fetches the full snapshot, repairs dangling album references and
// replaces the in-memory state. Concurrent calls race; the last one to
// finish wins, which is fine because each result is a pure function of what
// the gateway returned.
func (e *Engine) Load(ctx context.Context) error {
	e.mu.Lock()
	e.loading = true
	e.mu.Unlock()

	snap, err := e.store.FetchSnapshot(ctx)

	e.mu.Lock()
	defer e.mu.Unlock()
	e.loading = false

	if err != nil {
		e.lastErr = err
		e.photos = []models.Photo{}
		e.albums = []models.Album{}
		return fmt.Errorf("failed to load gallery: %w", err)
	}

	e.lastErr = nil
	e.photos = repairDanglingAlbums(snap.Photos, snap.Albums)
	e.albums = append([]models.Album(nil), snap.Albums...)
	return nil
}

// repairDanglingAlbums coerces photos whose album no longer exists back to
// uncategorized, so no photo ever references a missing album.
func repairDanglingAlbums(photos []models.Photo, albums []models.Album) []models.Photo {
	known := make(map[string]bool, len(albums))
	for _, a := range albums {
		known[a.ID] = true
	}

	repaired := make([]models.Photo, len(photos))
	for i, p := range photos {
		if p.AlbumID != "" && !known[p.AlbumID] {
			log.Warnf("[Gallery] Photo %s referenced missing album %s, marking uncategorized", p.ID, p.AlbumID)
			p.AlbumID = ""
		}
		repaired[i] = p
	}
	return repaired
}

// UploadFile is an in-memory raw image file handed to the upload operations.
type UploadFile struct {
	Name string
	Data []byte
}

// UploadRequest carries the inputs of a single photo upload. Metadata, when
// already extracted by the caller, skips a second extraction pass.
type UploadRequest struct {
	File     UploadFile
	Title    string
	AlbumID  string
	Metadata *models.ExifMetadata
}

// UploadPhoto runs the full upload pipeline: metadata, geocoding, media
// upload, dimension decode, persistence, then the optimistic local insert.
// Only the media upload and the persistence step can fail the operation;
// every other collaborator failure degrades to an absent value.
func (e *Engine) UploadPhoto(ctx context.Context, req UploadRequest) (models.Photo, error) {
	meta := e.resolveMetadata(ctx, req)

	url, err := e.media.Upload(ctx, req.File.Name, bytes.NewReader(req.File.Data))
	if err != nil {
		return models.Photo{}, fmt.Errorf("failed to upload %s: %w", req.File.Name, err)
	}

	photo := models.Photo{
		ID:         newRecordID(),
		URL:        url,
		UploadDate: time.Now(),
		Title:      req.Title,
		AlbumID:    req.AlbumID,

		CapturedAt:          meta.CapturedAt,
		CameraMake:          meta.CameraMake,
		CameraModel:         meta.CameraModel,
		FNumber:             meta.FNumber,
		ExposureTimeSeconds: meta.ExposureTimeSeconds,
		ISO:                 meta.ISO,
		FocalLengthMM:       meta.FocalLengthMM,
		GPSCoordinate:       meta.GPS,
		LocationName:        meta.LocationName,
	}

	if w, h, err := e.meta.Dimensions(bytes.NewReader(req.File.Data)); err == nil {
		photo.Width = &w
		photo.Height = &h
		photo.AspectRatioClass = exifmeta.AspectClassFor(w, h)
	} else {
		log.Warnf("[Gallery] Could not decode dimensions for %s: %v", req.File.Name, err)
		photo.AspectRatioClass = models.AspectLandscape
	}

	chunkID, err := e.store.CreatePhoto(ctx, photo)
	if err != nil {
		return models.Photo{}, fmt.Errorf("failed to persist photo %s: %w", photo.ID, err)
	}
	photo.ChunkID = chunkID

	e.mu.Lock()
	e.photos = append([]models.Photo{photo}, e.photos...)
	e.mu.Unlock()

	return photo, nil
}

// resolveMetadata obtains the EXIF record (precomputed or extracted) and
// fills in a reverse-geocoded place name when coordinates are present.
// Failures here never abort the upload.
func (e *Engine) resolveMetadata(ctx context.Context, req UploadRequest) models.ExifMetadata {
	var meta models.ExifMetadata
	if req.Metadata != nil {
		meta = *req.Metadata
	} else if extracted, err := e.meta.Extract(bytes.NewReader(req.File.Data)); err != nil {
		log.Warnf("[Gallery] Metadata extraction failed for %s: %v", req.File.Name, err)
	} else {
		meta = extracted
	}

	if meta.GPS != nil && meta.LocationName == nil {
		name, err := e.geo.ReverseGeocode(ctx, meta.GPS.Latitude, meta.GPS.Longitude)
		if err != nil {
			log.Warnf("[Gallery] Reverse geocoding failed for %s: %v", req.File.Name, err)
		} else if name != "" {
			meta.LocationName = &name
		}
	}
	return meta
}

// BatchUploadPhotos uploads files in sequential groups of three, with the
// uploads inside a group running concurrently. A failure anywhere in a group
// fails the whole batch; files from already-completed groups stay uploaded.
func (e *Engine) BatchUploadPhotos(ctx context.Context, files []UploadFile, albumID string, onProgress func(completed, total int)) error {
	total := len(files)
	completed := 0

	for start := 0; start < total; start += batchGroupSize {
		end := start + batchGroupSize
		if end > total {
			end = total
		}
		group := files[start:end]

		var wg sync.WaitGroup
		errs := make([]error, len(group))
		for i, file := range group {
			wg.Add(1)
			go func(i int, file UploadFile) {
				defer wg.Done()
				_, err := e.UploadPhoto(ctx, UploadRequest{
					File:    file,
					Title:   DefaultTitle(file.Name),
					AlbumID: albumID,
				})
				errs[i] = err
			}(i, file)
		}
		wg.Wait()

		for _, err := range errs {
			if err != nil {
				return fmt.Errorf("batch upload failed after %d of %d files: %w", completed, total, err)
			}
		}

		completed += len(group)
		if onProgress != nil {
			onProgress(completed, total)
		}
	}

	return nil
}

// DefaultTitle strips the extension off a filename; used when an upload
// carries no explicit title.
func DefaultTitle(filename string) string {
	return strings.TrimSuffix(filename, filepath.Ext(filename))
}

// UpdatePhotoDetails persists a partial update to the photo's chunk and
// applies the same merge locally. The photo must already be known to the
// engine. A new album id is not validated against the album list; that is
// the caller's responsibility.
func (e *Engine) UpdatePhotoDetails(ctx context.Context, photoID string, patch models.PhotoPatch) error {
	photo, ok := e.findPhoto(photoID)
	if !ok {
		return apperrors.NotFoundf("photo %s is not loaded", photoID)
	}

	if err := e.store.UpdatePhoto(ctx, photoID, photo.ChunkID, patch); err != nil {
		return fmt.Errorf("failed to update photo %s: %w", photoID, err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	next := make([]models.Photo, len(e.photos))
	for i, p := range e.photos {
		if p.ID == photoID {
			if patch.Title != nil {
				p.Title = *patch.Title
			}
			if patch.AlbumID != nil {
				p.AlbumID = *patch.AlbumID
			}
		}
		next[i] = p
	}
	e.photos = next
	return nil
}

// DeletePhotoItem deletes a photo: tombstone (best effort), remote removal,
// local removal, then the orphan-album check against an authoritative
// post-delete count from the store.
func (e *Engine) DeletePhotoItem(ctx context.Context, photoID string) error {
	photo, ok := e.findPhoto(photoID)
	if !ok {
		return apperrors.NotFoundf("photo %s is not loaded", photoID)
	}

	entry := models.DeletionLogEntry{
		PhotoID:   photo.ID,
		URL:       photo.URL,
		AlbumID:   photo.AlbumID,
		DeletedAt: time.Now(),
	}
	if err := e.store.AppendDeletionLog(ctx, entry); err != nil {
		log.Warnf("[Gallery] Could not write deletion log entry for %s: %v", photoID, err)
	}

	if err := e.store.DeletePhoto(ctx, photoID, photo.ChunkID); err != nil {
		return fmt.Errorf("failed to delete photo %s: %w", photoID, err)
	}

	e.mu.Lock()
	next := make([]models.Photo, 0, len(e.photos)-1)
	for _, p := range e.photos {
		if p.ID != photoID {
			next = append(next, p)
		}
	}
	e.photos = next
	e.mu.Unlock()

	if photo.AlbumID != "" {
		if err := e.cleanupEmptiedAlbum(ctx, photo.AlbumID); err != nil {
			return err
		}
	}
	return nil
}

// cleanupEmptiedAlbum deletes the album when the store confirms it has no
// photos left. The check runs against the store, not the in-memory list,
// because chunked storage makes the local list a stale witness.
func (e *Engine) cleanupEmptiedAlbum(ctx context.Context, albumID string) error {
	count, err := e.store.CountAlbumPhotos(ctx, albumID)
	if err != nil {
		log.Warnf("[Gallery] Orphan check for album %s failed: %v", albumID, err)
		return nil
	}
	if count > 0 {
		return nil
	}

	if err := e.store.DeleteAlbum(ctx, albumID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("failed to delete emptied album %s: %w", albumID, err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	next := make([]models.Album, 0, len(e.albums))
	for _, a := range e.albums {
		if a.ID != albumID {
			next = append(next, a)
		}
	}
	e.albums = next
	return nil
}

func (e *Engine) findPhoto(photoID string) (models.Photo, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	for _, p := range e.photos {
		if p.ID == photoID {
			return p, true
		}
	}
	return models.Photo{}, false
}

func (e *Engine) findAlbum(albumID string) (models.Album, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	for _, a := range e.albums {
		if a.ID == albumID {
			return a, true
		}
	}
	return models.Album{}, false
}

// newRecordID generates a client-side unique id: millisecond timestamp plus
// a random suffix.
func newRecordID() string {
	return fmt.Sprintf("%d-%s", time.Now().UnixMilli(), uuid.NewString()[:8])
}

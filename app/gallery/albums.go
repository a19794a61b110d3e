package gallery

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/glimmerpics/glimmer/app/models"
	"github.com/glimmerpics/glimmer/internal/pkg/apperrors"
)

// CreateAlbum allocates a new album, persists it and appends it to local
// state. Display order is always re-derived, so the append position carries
// no meaning.
func (e *Engine) CreateAlbum(ctx context.Context, name, description, theme string) (models.Album, error) {
	if strings.TrimSpace(name) == "" {
		return models.Album{}, apperrors.ValidationFailedf("album name is required")
	}

	album := models.Album{
		ID:          newRecordID(),
		Name:        name,
		Description: description,
		Theme:       theme,
		CreatedAt:   time.Now(),
	}

	if err := e.store.CreateAlbum(ctx, album); err != nil {
		return models.Album{}, fmt.Errorf("failed to create album %q: %w", name, err)
	}

	e.mu.Lock()
	e.albums = append(append([]models.Album(nil), e.albums...), album)
	e.mu.Unlock()

	return album, nil
}

// UpdateAlbum applies a partial update to one album. When the patch renames
// the theme, every sibling album still carrying oldTheme is re-pointed to
// the new name first: one remote update per sibling, fanned out concurrently
// and jointly awaited. The rename cascades or the operation fails.
func (e *Engine) UpdateAlbum(ctx context.Context, albumID string, patch models.AlbumPatch, oldTheme string) error {
	if _, ok := e.findAlbum(albumID); !ok {
		return apperrors.NotFoundf("album %s is not loaded", albumID)
	}

	renaming := patch.Theme != nil && oldTheme != "" && *patch.Theme != oldTheme
	if renaming {
		if err := e.renameThemeSiblings(ctx, albumID, oldTheme, *patch.Theme); err != nil {
			return err
		}
	}

	if err := e.store.UpdateAlbum(ctx, albumID, patch); err != nil {
		return fmt.Errorf("failed to update album %s: %w", albumID, err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	next := make([]models.Album, len(e.albums))
	for i, a := range e.albums {
		if renaming && a.ID != albumID && a.Theme == oldTheme {
			a.Theme = *patch.Theme
		}
		if a.ID == albumID {
			a = applyAlbumPatch(a, patch)
		}
		next[i] = a
	}
	e.albums = next
	return nil
}

// renameThemeSiblings fans out one remote update per sibling album on the
// old theme, all issued concurrently and jointly awaited.
func (e *Engine) renameThemeSiblings(ctx context.Context, exceptID, oldTheme, newTheme string) error {
	e.mu.RLock()
	var siblingIDs []string
	for _, a := range e.albums {
		if a.ID != exceptID && a.Theme == oldTheme {
			siblingIDs = append(siblingIDs, a.ID)
		}
	}
	e.mu.RUnlock()

	if len(siblingIDs) == 0 {
		return nil
	}

	var wg sync.WaitGroup
	errs := make([]error, len(siblingIDs))
	for i, id := range siblingIDs {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			theme := newTheme
			errs[i] = e.store.UpdateAlbum(ctx, id, models.AlbumPatch{Theme: &theme})
		}(i, id)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return fmt.Errorf("theme rename failed for album %s: %w", siblingIDs[i], err)
		}
	}
	return nil
}

func applyAlbumPatch(album models.Album, patch models.AlbumPatch) models.Album {
	if patch.Name != nil {
		album.Name = *patch.Name
	}
	if patch.Description != nil {
		album.Description = *patch.Description
	}
	if patch.Theme != nil {
		album.Theme = *patch.Theme
	}
	if patch.CoverPhotoID != nil {
		album.CoverPhotoID = *patch.CoverPhotoID
	}
	return album
}

// DeleteAlbumItem deletes the album remotely, detaches its photos
// server-side in one bulk update, then repairs local state to match.
func (e *Engine) DeleteAlbumItem(ctx context.Context, albumID string) error {
	if _, ok := e.findAlbum(albumID); !ok {
		return apperrors.NotFoundf("album %s is not loaded", albumID)
	}

	if err := e.store.DeleteAlbum(ctx, albumID); err != nil {
		return fmt.Errorf("failed to delete album %s: %w", albumID, err)
	}
	if err := e.store.ClearAlbumAssignments(ctx, albumID); err != nil {
		return fmt.Errorf("failed to detach photos of album %s: %w", albumID, err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	albums := make([]models.Album, 0, len(e.albums))
	for _, a := range e.albums {
		if a.ID != albumID {
			albums = append(albums, a)
		}
	}
	e.albums = albums

	photos := make([]models.Photo, len(e.photos))
	for i, p := range e.photos {
		if p.AlbumID == albumID {
			p.AlbumID = ""
		}
		photos[i] = p
	}
	e.photos = photos
	return nil
}

// TransferAlbumPhotos reassigns every photo of the source album to the
// target in one bulk remote operation, optionally deletes the source, and
// always concludes with a full resynchronizing reload: the bulk write
// touches chunked records whose identities the caller cannot patch locally
// with confidence.
func (e *Engine) TransferAlbumPhotos(ctx context.Context, sourceAlbumID, targetAlbumID string, deleteSourceAfter bool) error {
	e.mu.RLock()
	var locations []models.PhotoLocation
	for _, p := range e.photos {
		if p.AlbumID == sourceAlbumID {
			locations = append(locations, models.PhotoLocation{PhotoID: p.ID, ChunkID: p.ChunkID})
		}
	}
	e.mu.RUnlock()

	if err := e.store.BulkReassignAlbum(ctx, locations, targetAlbumID); err != nil {
		return fmt.Errorf("failed to transfer photos from album %s: %w", sourceAlbumID, err)
	}

	if deleteSourceAfter {
		if err := e.store.DeleteAlbum(ctx, sourceAlbumID); err != nil {
			return fmt.Errorf("failed to delete source album %s: %w", sourceAlbumID, err)
		}
	}

	return e.Load(ctx)
}

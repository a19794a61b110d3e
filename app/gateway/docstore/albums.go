package docstore

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/glimmerpics/glimmer/app/models"
	"github.com/glimmerpics/glimmer/internal/pkg/apperrors"
)

// CreateAlbum appends the album to the metadata document's album list.
func (s *Store) CreateAlbum(ctx context.Context, album models.Album) error {
	if _, err := s.ensureMeta(ctx); err != nil {
		return err
	}

	_, err := s.col.UpdateOne(ctx,
		bson.M{"_id": metaDocID},
		bson.M{"$push": bson.M{"albums": album}},
	)
	if err != nil {
		return apperrors.RemoteUnavailablef("failed to create album %s: %v", album.ID, err)
	}

	invalidateSnapshot()
	return nil
}

// UpdateAlbum applies a partial update to one album record.
func (s *Store) UpdateAlbum(ctx context.Context, albumID string, patch models.AlbumPatch) error {
	set := albumSetFields(patch)
	if len(set) == 0 {
		return nil
	}

	res, err := s.col.UpdateOne(ctx,
		bson.M{"_id": metaDocID, "albums.id": albumID},
		bson.M{"$set": set},
	)
	if err != nil {
		return apperrors.RemoteUnavailablef("failed to update album %s: %v", albumID, err)
	}
	if res.MatchedCount == 0 {
		return apperrors.NotFoundf("album %s does not exist", albumID)
	}

	invalidateSnapshot()
	return nil
}

// albumSetFields maps a patch to positional $set fields against the matched
// album array element.
func albumSetFields(patch models.AlbumPatch) bson.M {
	set := bson.M{}
	if patch.Name != nil {
		set["albums.$.name"] = *patch.Name
	}
	if patch.Description != nil {
		set["albums.$.description"] = *patch.Description
	}
	if patch.Theme != nil {
		set["albums.$.theme"] = *patch.Theme
	}
	if patch.CoverPhotoID != nil {
		set["albums.$.cover_photo_id"] = *patch.CoverPhotoID
	}
	return set
}

// DeleteAlbum removes the album record from the metadata document.
func (s *Store) DeleteAlbum(ctx context.Context, albumID string) error {
	res, err := s.col.UpdateOne(ctx,
		bson.M{"_id": metaDocID},
		bson.M{"$pull": bson.M{"albums": bson.M{"id": albumID}}},
	)
	if err != nil {
		return apperrors.RemoteUnavailablef("failed to delete album %s: %v", albumID, err)
	}
	if res.ModifiedCount == 0 {
		return apperrors.NotFoundf("album %s does not exist", albumID)
	}

	invalidateSnapshot()
	return nil
}

func arrayFilters(filters ...interface{}) *options.UpdateOptions {
	return options.Update().SetArrayFilters(options.ArrayFilters{Filters: filters})
}

package docstore

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/glimmerpics/glimmer/app/models"
	"github.com/glimmerpics/glimmer/internal/pkg/apperrors"
)

// CreatePhoto appends the photo to the last chunk when it has spare capacity,
// otherwise allocates a fresh chunk and records it in the metadata document's
// chunk list. Returns the id of the chunk the photo was written into.
func (s *Store) CreatePhoto(ctx context.Context, photo models.Photo) (string, error) {
	meta, err := s.ensureMeta(ctx)
	if err != nil {
		return "", err
	}

	// Location handles never get persisted inside the photo.
	photo.ChunkID = ""

	if len(meta.ChunkIDs) > 0 {
		last := meta.ChunkIDs[len(meta.ChunkIDs)-1]
		res, err := s.col.UpdateOne(ctx,
			bson.M{
				"_id":   last,
				"$expr": bson.M{"$lt": bson.A{bson.M{"$size": "$photos"}, ChunkCapacity}},
			},
			bson.M{"$push": bson.M{"photos": photo}},
		)
		if err != nil {
			return "", apperrors.RemoteUnavailablef("failed to append photo: %v", err)
		}
		if res.ModifiedCount == 1 {
			invalidateSnapshot()
			return last, nil
		}
		// Last chunk is full; fall through to allocation.
	}

	chunkID := newChunkID()
	if _, err := s.col.InsertOne(ctx, chunkDoc{ID: chunkID, Photos: []models.Photo{photo}}); err != nil {
		return "", apperrors.RemoteUnavailablef("failed to allocate photo chunk: %v", err)
	}
	if _, err := s.col.UpdateOne(ctx,
		bson.M{"_id": metaDocID},
		bson.M{"$addToSet": bson.M{"chunk_ids": chunkID}},
	); err != nil {
		return "", apperrors.RemoteUnavailablef("failed to register photo chunk: %v", err)
	}

	invalidateSnapshot()
	return chunkID, nil
}

// UpdatePhoto applies a partial update to a photo inside its owning chunk.
func (s *Store) UpdatePhoto(ctx context.Context, photoID, chunkID string, patch models.PhotoPatch) error {
	set := photoSetFields(patch)
	if len(set) == 0 {
		return nil
	}

	res, err := s.col.UpdateOne(ctx,
		bson.M{"_id": chunkID, "photos.id": photoID},
		bson.M{"$set": set},
	)
	if err != nil {
		return apperrors.RemoteUnavailablef("failed to update photo %s: %v", photoID, err)
	}
	if res.MatchedCount == 0 {
		return apperrors.NotFoundf("photo %s not in chunk %s", photoID, chunkID)
	}

	invalidateSnapshot()
	return nil
}

// photoSetFields maps a patch to positional $set fields against the matched
// photo array element.
func photoSetFields(patch models.PhotoPatch) bson.M {
	set := bson.M{}
	if patch.Title != nil {
		set["photos.$.title"] = *patch.Title
	}
	if patch.AlbumID != nil {
		set["photos.$.album_id"] = *patch.AlbumID
	}
	return set
}

// DeletePhoto removes a photo from its owning chunk.
func (s *Store) DeletePhoto(ctx context.Context, photoID, chunkID string) error {
	res, err := s.col.UpdateOne(ctx,
		bson.M{"_id": chunkID},
		bson.M{"$pull": bson.M{"photos": bson.M{"id": photoID}}},
	)
	if err != nil {
		return apperrors.RemoteUnavailablef("failed to delete photo %s: %v", photoID, err)
	}
	if res.MatchedCount == 0 {
		return apperrors.NotFoundf("chunk %s does not exist", chunkID)
	}
	if res.ModifiedCount == 0 {
		return apperrors.NotFoundf("photo %s not in chunk %s", photoID, chunkID)
	}

	invalidateSnapshot()
	return nil
}

// BulkReassignAlbum moves every named photo to the new album in a single
// round trip, so large transfers do not trigger request throttling.
func (s *Store) BulkReassignAlbum(ctx context.Context, locations []models.PhotoLocation, newAlbumID string) error {
	if len(locations) == 0 {
		return nil
	}

	chunkIDs := make([]string, 0, len(locations))
	photoIDs := make([]string, 0, len(locations))
	seen := make(map[string]bool, len(locations))
	for _, loc := range locations {
		photoIDs = append(photoIDs, loc.PhotoID)
		if !seen[loc.ChunkID] {
			seen[loc.ChunkID] = true
			chunkIDs = append(chunkIDs, loc.ChunkID)
		}
	}

	_, err := s.col.UpdateMany(ctx,
		bson.M{"_id": bson.M{"$in": chunkIDs}},
		bson.M{"$set": bson.M{"photos.$[p].album_id": newAlbumID}},
		arrayFilters(bson.M{"p.id": bson.M{"$in": photoIDs}}),
	)
	if err != nil {
		return apperrors.RemoteUnavailablef("failed to reassign %d photos: %v", len(locations), err)
	}

	invalidateSnapshot()
	return nil
}

// ClearAlbumAssignments detaches every photo of the album across all chunks,
// leaving them uncategorized. One round trip.
func (s *Store) ClearAlbumAssignments(ctx context.Context, albumID string) error {
	_, err := s.col.UpdateMany(ctx,
		bson.M{"photos.album_id": albumID},
		bson.M{"$unset": bson.M{"photos.$[p].album_id": ""}},
		arrayFilters(bson.M{"p.album_id": albumID}),
	)
	if err != nil {
		return apperrors.RemoteUnavailablef("failed to clear album %s assignments: %v", albumID, err)
	}

	invalidateSnapshot()
	return nil
}

// CountAlbumPhotos counts the album's photos across all chunks. Used for the
// authoritative orphan-album check after a deletion.
func (s *Store) CountAlbumPhotos(ctx context.Context, albumID string) (int, error) {
	pipeline := []bson.M{
		{"$match": bson.M{"photos.album_id": albumID}},
		{"$unwind": "$photos"},
		{"$match": bson.M{"photos.album_id": albumID}},
		{"$count": "n"},
	}

	cursor, err := s.col.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, apperrors.RemoteUnavailablef("failed to count album %s photos: %v", albumID, err)
	}

	var result []struct {
		N int `bson:"n"`
	}
	if err := cursor.All(ctx, &result); err != nil {
		return 0, apperrors.RemoteUnavailablef("failed to decode album count: %v", err)
	}
	if len(result) == 0 {
		return 0, nil
	}
	return result[0].N, nil
}

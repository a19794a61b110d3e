package docstore

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/glimmerpics/glimmer/app/models"
	"github.com/glimmerpics/glimmer/internal/pkg/apperrors"
	"github.com/glimmerpics/glimmer/internal/pkg/cache"
	"github.com/glimmerpics/glimmer/internal/pkg/env"
)

const (
	// ChunkCapacity caps how many photos a single chunk document holds,
	// keeping every document under the store's size ceiling.
	ChunkCapacity = 500

	metaDocID = "gallery:meta"
	logDocID  = "gallery:deletion_log"

	chunkIDPrefix = "chunk:"

	snapshotCacheKey = "gallery:snapshot"
	snapshotCacheTTL = 5 * time.Minute
)

// metaDoc is the metadata document: the single albums collection plus the
// authoritative ordered list of chunk ids.
type metaDoc struct {
	ID       string         `bson:"_id"`
	Albums   []models.Album `bson:"albums"`
	ChunkIDs []string       `bson:"chunk_ids"`
}

// chunkDoc is one size-bounded photo chunk.
type chunkDoc struct {
	ID     string         `bson:"_id"`
	Photos []models.Photo `bson:"photos"`
}

// Store is the remote document gateway, backed by a single MongoDB
// collection holding the meta document, the chunk documents and the
// deletion log document.
type Store struct {
	col *mongo.Collection
}

// Connect dials MongoDB using environment configuration and returns a ready
// Store.
func Connect(ctx context.Context) (*Store, error) {
	uri := env.GetEnv("MONGO_URI", "")
	if uri == "" {
		return nil, apperrors.ConfigurationMissingf("MONGO_URI is not set")
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, apperrors.RemoteUnavailablef("failed to connect to document store: %v", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, apperrors.RemoteUnavailablef("document store is not reachable: %v", err)
	}

	db := env.GetEnv("MONGO_DATABASE", "glimmer")
	col := client.Database(db).Collection("gallery")

	log.Infof("[DocStore] Connected to %s/gallery", db)
	return NewStore(col), nil
}

// NewStore wraps an existing collection handle.
func NewStore(col *mongo.Collection) *Store {
	return &Store{col: col}
}

// ensureMeta lazily initializes the metadata document and returns it.
func (s *Store) ensureMeta(ctx context.Context) (*metaDoc, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	res := s.col.FindOneAndUpdate(ctx,
		bson.M{"_id": metaDocID},
		bson.M{"$setOnInsert": bson.M{
			"albums":    []models.Album{},
			"chunk_ids": []string{},
		}},
		opts,
	)

	meta := &metaDoc{}
	if err := res.Decode(meta); err != nil {
		return nil, apperrors.RemoteUnavailablef("failed to read gallery metadata: %v", err)
	}
	return meta, nil
}

// FetchSnapshot returns the full gallery aggregate. A store that has never
// been written to yields empty slices, not an error. Each returned photo is
// annotated with the id of the chunk it lives in.
func (s *Store) FetchSnapshot(ctx context.Context) (*models.GallerySnapshot, error) {
	if snap, ok := readSnapshotCache(); ok {
		return snap, nil
	}

	meta, err := s.ensureMeta(ctx)
	if err != nil {
		return nil, err
	}

	snap := &models.GallerySnapshot{
		Photos: []models.Photo{},
		Albums: meta.Albums,
	}
	if snap.Albums == nil {
		snap.Albums = []models.Album{}
	}

	if len(meta.ChunkIDs) > 0 {
		cursor, err := s.col.Find(ctx, bson.M{"_id": bson.M{"$in": meta.ChunkIDs}})
		if err != nil {
			return nil, apperrors.RemoteUnavailablef("failed to read photo chunks: %v", err)
		}
		var chunks []chunkDoc
		if err := cursor.All(ctx, &chunks); err != nil {
			return nil, apperrors.RemoteUnavailablef("failed to decode photo chunks: %v", err)
		}
		snap.Photos = assemblePhotos(meta.ChunkIDs, chunks)
	}

	writeSnapshotCache(snap)
	return snap, nil
}

// assemblePhotos flattens chunk documents into one photo list following the
// metadata document's authoritative chunk order, annotating each photo with
// its location.
func assemblePhotos(order []string, chunks []chunkDoc) []models.Photo {
	byID := make(map[string]chunkDoc, len(chunks))
	for _, c := range chunks {
		byID[c.ID] = c
	}

	photos := []models.Photo{}
	for _, id := range order {
		chunk, ok := byID[id]
		if !ok {
			continue
		}
		for _, p := range chunk.Photos {
			p.ChunkID = chunk.ID
			photos = append(photos, p)
		}
	}
	return photos
}

// cachedSnapshot carries chunk locations explicitly, since Photo keeps its
// location out of its own serialized form.
type cachedSnapshot struct {
	Photos    []models.Photo `json:"photos"`
	Locations []string       `json:"locations"`
	Albums    []models.Album `json:"albums"`
}

func readSnapshotCache() (*models.GallerySnapshot, bool) {
	raw, err := cache.Get(snapshotCacheKey)
	if err != nil {
		return nil, false
	}

	var cached cachedSnapshot
	if err := json.Unmarshal([]byte(raw), &cached); err != nil || len(cached.Locations) != len(cached.Photos) {
		return nil, false
	}

	snap := &models.GallerySnapshot{Photos: cached.Photos, Albums: cached.Albums}
	for i := range snap.Photos {
		snap.Photos[i].ChunkID = cached.Locations[i]
	}
	if snap.Photos == nil {
		snap.Photos = []models.Photo{}
	}
	if snap.Albums == nil {
		snap.Albums = []models.Album{}
	}
	return snap, true
}

func writeSnapshotCache(snap *models.GallerySnapshot) {
	cached := cachedSnapshot{
		Photos:    snap.Photos,
		Locations: make([]string, len(snap.Photos)),
		Albums:    snap.Albums,
	}
	for i, p := range snap.Photos {
		cached.Locations[i] = p.ChunkID
	}

	raw, err := json.Marshal(cached)
	if err != nil {
		log.Warnf("[DocStore] Failed to serialize snapshot cache: %v", err)
		return
	}
	if err := cache.Set(snapshotCacheKey, string(raw), snapshotCacheTTL); err != nil {
		log.Warnf("[DocStore] Failed to write snapshot cache: %v", err)
	}
}

// invalidateSnapshot drops the cached snapshot after any mutation. Cache
// failures are never fatal.
func invalidateSnapshot() {
	if err := cache.Delete(snapshotCacheKey); err != nil {
		log.Warnf("[DocStore] Failed to invalidate snapshot cache: %v", err)
	}
}

// AppendDeletionLog appends a tombstone entry to the deletion log document.
// Fire-and-forget from the engine's point of view.
func (s *Store) AppendDeletionLog(ctx context.Context, entry models.DeletionLogEntry) error {
	opts := options.Update().SetUpsert(true)
	_, err := s.col.UpdateOne(ctx,
		bson.M{"_id": logDocID},
		bson.M{"$push": bson.M{"entries": entry}},
		opts,
	)
	if err != nil {
		return apperrors.RemoteUnavailablef("failed to append deletion log entry: %v", err)
	}
	return nil
}

func newChunkID() string {
	return chunkIDPrefix + uuid.NewString()
}

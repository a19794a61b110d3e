package models

// PhotoPatch is a partial update to a photo's mutable fields. Nil means
// "leave unchanged".
type PhotoPatch struct {
	Title   *string `json:"title,omitempty"`
	AlbumID *string `json:"album_id,omitempty"`
}

// AlbumPatch is a partial update to an album's mutable fields.
type AlbumPatch struct {
	Name         *string `json:"name,omitempty"`
	Description  *string `json:"description,omitempty"`
	Theme        *string `json:"theme,omitempty"`
	CoverPhotoID *string `json:"cover_photo_id,omitempty"`
}

// PhotoLocation names a photo together with the physical chunk that holds it.
type PhotoLocation struct {
	PhotoID string `json:"photo_id"`
	ChunkID string `json:"chunk_id"`
}

package viewmodel

import (
	"github.com/glimmerpics/glimmer/app/gateway/media"
	"github.com/glimmerpics/glimmer/app/models"
	"github.com/glimmerpics/glimmer/internal/pkg/sizing"
)

// PhotoView is a photo prepared for display: the canonical record plus the
// delivery URLs sized for the caller's viewport.
type PhotoView struct {
	models.Photo
	DisplayURL   string `json:"display_url"`
	ThumbnailURL string `json:"thumbnail_url"`
	GridSpan     int    `json:"grid_span"`
}

// NewPhotoView resolves the optimal display and thumbnail URLs for one photo
// given the caller's viewport width and device pixel ratio.
func NewPhotoView(p models.Photo, viewportWidthPx int, devicePixelRatio float64) PhotoView {
	displayWidth := sizing.OptimalWidth(viewportWidthPx, devicePixelRatio, p.AspectRatioClass)
	thumbWidth := sizing.ThumbnailSize(viewportWidthPx)

	return PhotoView{
		Photo:        p,
		DisplayURL:   media.BuildDeliveryURL(p.URL, displayWidth),
		ThumbnailURL: media.BuildDeliveryURL(p.URL, thumbWidth),
		GridSpan:     p.GridSpan(),
	}
}

// NewPhotoViews maps a photo sequence, preserving order.
func NewPhotoViews(photos []models.Photo, viewportWidthPx int, devicePixelRatio float64) []PhotoView {
	views := make([]PhotoView, len(photos))
	for i, p := range photos {
		views[i] = NewPhotoView(p, viewportWidthPx, devicePixelRatio)
	}
	return views
}

package viewmodel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glimmerpics/glimmer/app/models"
)

func TestNewPhotoView(t *testing.T) {
	p := models.Photo{
		ID:               "p1",
		URL:              "https://res.cloudinary.com/demo/image/upload/v1/beach.jpg",
		AspectRatioClass: models.AspectLandscape,
	}

	view := NewPhotoView(p, 640, 1.0)

	assert.Equal(t, "p1", view.ID)
	assert.Contains(t, view.DisplayURL, "w_640,c_limit,f_auto,q_auto")
	assert.Contains(t, view.ThumbnailURL, "w_500")
	assert.Equal(t, 2, view.GridSpan)
}

func TestNewPhotoView_MobileThumbnail(t *testing.T) {
	p := models.Photo{
		URL:              "https://res.cloudinary.com/demo/image/upload/v1/beach.jpg",
		AspectRatioClass: models.AspectPortrait,
	}

	view := NewPhotoView(p, 375, 2.0)
	assert.Contains(t, view.ThumbnailURL, "w_200")
	assert.Equal(t, 1, view.GridSpan)
}

func TestNewPhotoViews_PreservesOrder(t *testing.T) {
	photos := []models.Photo{
		{ID: "a", URL: "https://res.cloudinary.com/demo/image/upload/v1/a.jpg"},
		{ID: "b", URL: "https://res.cloudinary.com/demo/image/upload/v1/b.jpg"},
	}

	views := NewPhotoViews(photos, 1024, 1.0)
	require.Len(t, views, 2)
	assert.Equal(t, "a", views[0].ID)
	assert.Equal(t, "b", views[1].ID)
}

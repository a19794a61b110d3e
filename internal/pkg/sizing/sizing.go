package sizing

import (
	"github.com/glimmerpics/glimmer/app/models"
)

// Breakpoint ladder: candidate request widths, ascending. Keeping the set
// small keeps the CDN cache hot.
var breakpoints = []int{320, 480, 640, 768, 1024, 1280, 1600, 1920, 2560}

const (
	// MaxDevicePixelRatio guards against runaway request sizes on
	// very-high-density displays.
	MaxDevicePixelRatio = 2.0

	// MinRequestWidth is the floor below which quality degrades visibly.
	MinRequestWidth = 320

	// Aspect-dependent ceilings. Portrait images render narrower than
	// landscape ones, so they never need the full ladder.
	maxLandscapeWidth = 1920
	maxSquareWidth    = 1440
	maxPortraitWidth  = 1080
)

// Thumbnail sizes
const (
	LargeThumbnailSize = 500
	SmallThumbnailSize = 200

	// MobileBreakpoint is the viewport width below which the small
	// thumbnail tier is used.
	MobileBreakpoint = 768
)

// OptimalWidth maps a viewport width, device pixel ratio and aspect class to
// the transformation width that should be requested from the CDN.
func OptimalWidth(viewportWidthPx int, devicePixelRatio float64, aspect models.AspectClass) int {
	ratio := devicePixelRatio
	if ratio > MaxDevicePixelRatio {
		ratio = MaxDevicePixelRatio
	}
	if ratio <= 0 {
		ratio = 1
	}

	target := int(float64(viewportWidthPx) * ratio)

	// Snap up to the smallest breakpoint covering the target.
	width := breakpoints[len(breakpoints)-1]
	for _, bp := range breakpoints {
		if bp >= target {
			width = bp
			break
		}
	}

	if ceiling := ceilingFor(aspect); width > ceiling {
		width = ceiling
	}
	if width < MinRequestWidth {
		width = MinRequestWidth
	}
	return width
}

func ceilingFor(aspect models.AspectClass) int {
	switch aspect {
	case models.AspectPortrait:
		return maxPortraitWidth
	case models.AspectSquare:
		return maxSquareWidth
	default:
		return maxLandscapeWidth
	}
}

// ThumbnailSize picks the thumbnail tier for a viewport. A two-tier table,
// not interpolated.
func ThumbnailSize(viewportWidthPx int) int {
	if viewportWidthPx < MobileBreakpoint {
		return SmallThumbnailSize
	}
	return LargeThumbnailSize
}

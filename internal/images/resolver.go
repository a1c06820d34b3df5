package images

import (
	"strings"

	"oncampus/internal/catalog"
)

// Image is a displayable picture for a card. Hint is empty for direct URLs.
type Image struct {
	URL  string
	Hint string
}

// Resolver maps image keys to displayable images.
type Resolver struct {
	byID map[string]catalog.PlaceholderImage
}

func NewResolver(table []catalog.PlaceholderImage) *Resolver {
	byID := make(map[string]catalog.PlaceholderImage, len(table))
	for _, img := range table {
		if _, dup := byID[img.ID]; !dup {
			byID[img.ID] = img
		}
	}
	return &Resolver{byID: byID}
}

// Default resolves against the compiled placeholder table.
func Default() *Resolver {
	return NewResolver(catalog.PlaceholderImages())
}

// Resolve returns the image for imageID. Keys starting with "http" are used
// verbatim; other keys are looked up in the table. ok is false when there is
// nothing to show.
func (r *Resolver) Resolve(imageID string) (img Image, ok bool) {
	if strings.HasPrefix(imageID, "http") {
		return Image{URL: imageID}, true
	}
	p, found := r.byID[imageID]
	if !found || p.ImageURL == "" {
		return Image{}, false
	}
	return Image{URL: p.ImageURL, Hint: p.ImageHint}, true
}

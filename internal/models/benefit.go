package models

// Benefit is a student discount or offer. RedirectURL is optional.
type Benefit struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Provider    string `json:"provider"`
	Description string `json:"description"`
	Category    string `json:"category"`
	ImageID     string `json:"imageId"`
	RedirectURL string `json:"redirectUrl,omitempty"`
}

func (b Benefit) Identity() string { return b.ID }

func (b Benefit) ImageKey() string { return b.ImageID }

func (b Benefit) Stamp(id, imageID string) Benefit {
	b.ID = id
	b.ImageID = imageID
	return b
}

// HasRedirect reports whether the benefit links out to the provider.
func (b Benefit) HasRedirect() bool { return b.RedirectURL != "" }

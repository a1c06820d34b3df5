package models

// Club is a student club listed in the club directory.
type Club struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	ImageID     string `json:"imageId"`
}

func (c Club) Identity() string { return c.ID }

func (c Club) ImageKey() string { return c.ImageID }

// Stamp returns a copy of the club carrying the given identity and image key.
func (c Club) Stamp(id, imageID string) Club {
	c.ID = id
	c.ImageID = imageID
	return c
}

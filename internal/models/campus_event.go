package models

import (
	"sort"
	"time"
)

// CampusEvent is a workshop, seminar or fest. Date holds an ISO-8601 string
// exactly as it was submitted.
type CampusEvent struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Location    string `json:"location"`
	ImageID     string `json:"imageId"`
}

func (e CampusEvent) Identity() string { return e.ID }

func (e CampusEvent) ImageKey() string { return e.ImageID }

func (e CampusEvent) Stamp(id, imageID string) CampusEvent {
	e.ID = id
	e.ImageID = imageID
	return e
}

var eventDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// StartsAt parses Date. The boolean is false when Date is not a recognised
// ISO-8601 form.
func (e CampusEvent) StartsAt() (time.Time, bool) {
	for _, layout := range eventDateLayouts {
		if t, err := time.Parse(layout, e.Date); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// SortEventsByDate orders events by start time. Events whose date does not
// parse keep their relative order after the dated ones.
func SortEventsByDate(events []CampusEvent) {
	sort.SliceStable(events, func(i, j int) bool {
		ti, okI := events[i].StartsAt()
		tj, okJ := events[j].StartsAt()
		switch {
		case okI && okJ:
			return ti.Before(tj)
		case okI:
			return true
		default:
			return false
		}
	})
}

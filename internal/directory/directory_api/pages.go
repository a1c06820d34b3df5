package directory_api

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"oncampus/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/*.html"))

const eventDateLayout = "January 2, 2006 at 3:04 PM"

type card struct {
	Title       string
	Subtitle    string
	Badge       string
	Description string
	ImageURL    string
	ImageHint   string
	Details     []string
	LinkURL     string
	LinkLabel   string
	ButtonLabel string
}

type pageData struct {
	Active  string
	Heading string
	Tagline string
	Ready   bool
	Wide    bool
	Cards   []card
}

// ClubsPage renders the club directory.
func (h *Handler) ClubsPage(w http.ResponseWriter, r *http.Request) {
	clubs := h.Directory.Clubs.Items()
	cards := make([]card, 0, len(clubs))
	for _, c := range clubs {
		cd := card{
			Title:       c.Name,
			Badge:       c.Category,
			Description: c.Description,
			ButtonLabel: "Join Club",
		}
		h.attachImage(&cd, c.ImageID)
		cards = append(cards, cd)
	}

	h.render(w, pageData{
		Active:  "clubs",
		Heading: "Club Directory",
		Tagline: "Find your community. Discover and join student clubs.",
		Ready:   h.Directory.Clubs.Initialized(),
		Cards:   cards,
	})
}

// EventsPage renders events sorted by date.
func (h *Handler) EventsPage(w http.ResponseWriter, r *http.Request) {
	events := h.Directory.Events.Items()
	models.SortEventsByDate(events)

	cards := make([]card, 0, len(events))
	for _, e := range events {
		cd := card{
			Title:       e.Title,
			Description: e.Description,
			Details:     []string{formatEventDate(e), e.Location},
		}
		h.attachImage(&cd, e.ImageID)
		cards = append(cards, cd)
	}

	h.render(w, pageData{
		Active:  "events",
		Heading: "Current/Upcoming Events",
		Tagline: "Workshops, seminars, and fests happening around you.",
		Ready:   h.Directory.Events.Initialized(),
		Wide:    true,
		Cards:   cards,
	})
}

// BenefitsPage renders the benefits hub; benefits with a redirect get a
// Redeem link.
func (h *Handler) BenefitsPage(w http.ResponseWriter, r *http.Request) {
	benefits := h.Directory.Benefits.Items()
	cards := make([]card, 0, len(benefits))
	for _, b := range benefits {
		cd := card{
			Title:       b.Title,
			Subtitle:    b.Provider,
			Badge:       b.Category,
			Description: b.Description,
		}
		if b.HasRedirect() {
			cd.LinkURL = b.RedirectURL
			cd.LinkLabel = "Redeem"
		}
		h.attachImage(&cd, b.ImageID)
		cards = append(cards, cd)
	}

	h.render(w, pageData{
		Active:  "benefits",
		Heading: "Benefits Hub",
		Tagline: "Exclusive discounts and offers for Indian students.",
		Ready:   h.Directory.Benefits.Initialized(),
		Cards:   cards,
	})
}

func (h *Handler) attachImage(cd *card, imageID string) {
	if img, ok := h.Images.Resolve(imageID); ok {
		cd.ImageURL = img.URL
		cd.ImageHint = img.Hint
	}
}

func formatEventDate(e models.CampusEvent) string {
	t, ok := e.StartsAt()
	if !ok {
		return e.Date
	}
	return t.Format(eventDateLayout)
}

func (h *Handler) render(w http.ResponseWriter, data pageData) {
	var buf bytes.Buffer
	if err := pageTemplate.ExecuteTemplate(&buf, "page.html", data); err != nil {
		h.Logger.Error("PAGES", fmt.Sprintf("render %s: %v", data.Active, err))
		http.Error(w, "Error rendering page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	buf.WriteTo(w)
}

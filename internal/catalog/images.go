package catalog

// PlaceholderImage is a stock image addressed by a short key.
type PlaceholderImage struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
	ImageHint   string `json:"imageHint"`
}

// Image key pools used when a new entry arrives without an image.
var (
	ClubImagePool    = []string{"club-1", "club-2", "club-3", "club-4", "club-5"}
	EventImagePool   = []string{"event-1", "event-2", "event-3"}
	BenefitImagePool = []string{"benefit-1", "benefit-2", "benefit-3", "benefit-4", "benefit-5"}
)

var placeholderImages = []PlaceholderImage{
	{ID: "club-1", Description: "Students coding together", ImageURL: "https://picsum.photos/seed/club1/600/400", ImageHint: "students coding"},
	{ID: "club-2", Description: "Theatre stage with lights", ImageURL: "https://picsum.photos/seed/club2/600/400", ImageHint: "theatre stage"},
	{ID: "club-3", Description: "Camera on a tripod", ImageURL: "https://picsum.photos/seed/club3/600/400", ImageHint: "camera photography"},
	{ID: "club-4", Description: "Small robot on a desk", ImageURL: "https://picsum.photos/seed/club4/600/400", ImageHint: "robot workshop"},
	{ID: "club-5", Description: "Band performing live", ImageURL: "https://picsum.photos/seed/club5/600/400", ImageHint: "live music"},
	{ID: "event-1", Description: "Crowd at an outdoor festival", ImageURL: "https://picsum.photos/seed/event1/600/400", ImageHint: "festival crowd"},
	{ID: "event-2", Description: "Workshop in a lecture hall", ImageURL: "https://picsum.photos/seed/event2/600/400", ImageHint: "lecture workshop"},
	{ID: "event-3", Description: "Booths at a career fair", ImageURL: "https://picsum.photos/seed/event3/600/400", ImageHint: "career fair"},
	{ID: "benefit-1", Description: "Laptop with code on screen", ImageURL: "https://picsum.photos/seed/benefit1/600/400", ImageHint: "laptop code"},
	{ID: "benefit-2", Description: "Headphones on a desk", ImageURL: "https://picsum.photos/seed/benefit2/600/400", ImageHint: "headphones music"},
	{ID: "benefit-3", Description: "Tablet and notebook", ImageURL: "https://picsum.photos/seed/benefit3/600/400", ImageHint: "tablet study"},
	{ID: "benefit-4", Description: "Plate of food in a canteen", ImageURL: "https://picsum.photos/seed/benefit4/600/400", ImageHint: "canteen food"},
	{ID: "benefit-5", Description: "Desk with a planner", ImageURL: "https://picsum.photos/seed/benefit5/600/400", ImageHint: "planner desk"},
}

// PlaceholderImages returns a copy of the placeholder table.
func PlaceholderImages() []PlaceholderImage {
	out := make([]PlaceholderImage, len(placeholderImages))
	copy(out, placeholderImages)
	return out
}

// Package catalog holds the compiled-in default collections. Editing any of
// the slices below changes the seed fingerprint, and the next start reseeds
// the persisted collection for that kind.
package catalog

import "oncampus/internal/models"

// Clubs returns the default club directory.
func Clubs() []models.Club {
	return []models.Club{
		{
			ID:          "1",
			Name:        "Coding Club",
			Description: "Weekly hack nights, competitive programming practice and open-source sprints for every skill level.",
			Category:    "Technology",
			ImageID:     "club-1",
		},
		{
			ID:          "2",
			Name:        "Dramatics Society",
			Description: "Street plays, stage productions and improv workshops throughout the semester.",
			Category:    "Arts",
			ImageID:     "club-2",
		},
		{
			ID:          "3",
			Name:        "Photography Club",
			Description: "Photo walks around campus, editing sessions and an annual exhibition.",
			Category:    "Arts",
			ImageID:     "club-3",
		},
		{
			ID:          "4",
			Name:        "Robotics Club",
			Description: "Design, build and race autonomous robots for inter-college competitions.",
			Category:    "Technology",
			ImageID:     "club-4",
		},
		{
			ID:          "5",
			Name:        "Music Society",
			Description: "Jam sessions, band practice rooms and performances at every campus fest.",
			Category:    "Music",
			ImageID:     "club-5",
		},
	}
}

// Events returns the default event calendar.
func Events() []models.CampusEvent {
	return []models.CampusEvent{
		{
			ID:          "1",
			Title:       "Freshers' Welcome Fest",
			Description: "Meet the clubs, enjoy live music and grab free food on the main lawn.",
			Date:        "2025-08-22T17:00:00.000Z",
			Location:    "Main Lawn",
			ImageID:     "event-1",
		},
		{
			ID:          "2",
			Title:       "Intro to Machine Learning Workshop",
			Description: "A hands-on session covering the basics of supervised learning with Python.",
			Date:        "2025-09-05T10:30:00.000Z",
			Location:    "Computer Lab 3",
			ImageID:     "event-2",
		},
		{
			ID:          "3",
			Title:       "Career Fair 2025",
			Description: "Over forty companies hiring interns and graduates. Bring your resume.",
			Date:        "2025-10-14T09:00:00.000Z",
			Location:    "Convention Hall",
			ImageID:     "event-3",
		},
	}
}

// Benefits returns the default student benefits.
func Benefits() []models.Benefit {
	return []models.Benefit{
		{
			ID:          "1",
			Title:       "GitHub Student Developer Pack",
			Provider:    "GitHub",
			Description: "Free access to developer tools, cloud credits and domains while you are a student.",
			Category:    "Software",
			ImageID:     "benefit-1",
			RedirectURL: "https://education.github.com/pack",
		},
		{
			ID:          "2",
			Title:       "Spotify Premium Student",
			Provider:    "Spotify",
			Description: "Premium music streaming at a discounted student price.",
			Category:    "Entertainment",
			ImageID:     "benefit-2",
			RedirectURL: "https://www.spotify.com/in-en/student/",
		},
		{
			ID:          "3",
			Title:       "Apple Education Pricing",
			Provider:    "Apple",
			Description: "Reduced prices on Mac and iPad for university students.",
			Category:    "Hardware",
			ImageID:     "benefit-3",
			RedirectURL: "https://www.apple.com/in/shop/back-to-school",
		},
		{
			ID:          "4",
			Title:       "Canteen Combo Discount",
			Provider:    "Campus Canteen",
			Description: "Ten percent off combo meals on showing your student ID.",
			Category:    "Food",
			ImageID:     "benefit-4",
		},
		{
			ID:          "5",
			Title:       "Notion Plus for Education",
			Provider:    "Notion",
			Description: "The Plus plan free for students with a school email address.",
			Category:    "Software",
			ImageID:     "benefit-5",
			RedirectURL: "https://www.notion.so/product/notion-for-education",
		},
	}
}

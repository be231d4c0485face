// Package board holds the pure functions behind the dashboard: the
// filter/search/sort pipeline, the stats counters and relative timestamps.
package board

import (
	"sort"
	"strings"

	"helpboard/app/models"
)

// CommunityBase is the fixed offset added to the community size figure.
const CommunityBase = 10

// Stats are the dashboard counters.
type Stats struct {
	Active    int `json:"activeCount"`
	Closed    int `json:"closedCount"`
	Helped    int `json:"helpCount"`
	Community int `json:"communityCount"`
}

// Filter returns the posts matching category and term, open posts first.
// An empty category or models.AllCategories matches every post. The term
// matches case-insensitively against name and description, never contact.
// Within the open and closed groups the input order is preserved; posts
// itself is not reordered.
func Filter(posts []models.Post, category, term string) []models.Post {
	term = strings.ToLower(term)
	filtered := make([]models.Post, 0, len(posts))
	for _, p := range posts {
		if matchesCategory(p, category) && matchesTerm(p, term) {
			filtered = append(filtered, p)
		}
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		return !filtered[i].Closed && filtered[j].Closed
	})
	return filtered
}

func matchesCategory(p models.Post, category string) bool {
	return category == "" || category == models.AllCategories || p.Category == category
}

func matchesTerm(p models.Post, term string) bool {
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Name), term) ||
		strings.Contains(strings.ToLower(p.Description), term)
}

// ComputeStats derives the dashboard counters. Closed and Helped come from
// the persisted counters, not from the collection, because closed posts may
// since have been deleted.
func ComputeStats(posts []models.Post, counters models.Counters) Stats {
	active := 0
	for _, p := range posts {
		if !p.Closed {
			active++
		}
	}
	return Stats{
		Active:    active,
		Closed:    counters.Closed,
		Helped:    counters.Helped,
		Community: CommunityBase + len(posts) + counters.Closed,
	}
}

package revx

import (
	"sort"
	"strconv"
	"strings"
)

// Filter is a client-side project filter. Zero-valued fields are inactive:
// an empty Search matches everything, an empty TagIDs set passes every
// project, a nil Category skips the category check. Active criteria are
// combined with AND.
type Filter struct {
	// Search matches case-insensitively against the title, the
	// description, and each tag name.
	Search string
	// TagIDs passes projects carrying at least one of the given tags.
	TagIDs []uint64
	// Category passes projects whose legacy category field is exactly
	// equal to the given value.
	Category *string
}

// Apply returns the projects matching the filter, preserving their input
// order.
func (f Filter) Apply(projects []Project) []Project {
	out := make([]Project, 0, len(projects))
	for _, p := range projects {
		if f.matches(&p) {
			out = append(out, p)
		}
	}
	return out
}

func (f Filter) matches(p *Project) bool {
	if f.Search != "" && !matchesSearch(p, f.Search) {
		return false
	}
	if len(f.TagIDs) > 0 && !hasAnyTag(p, f.TagIDs) {
		return false
	}
	if f.Category != nil {
		if p.Category == nil || *p.Category != *f.Category {
			return false
		}
	}
	return true
}

func matchesSearch(p *Project, query string) bool {
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(p.Title), q) {
		return true
	}
	if strings.Contains(strings.ToLower(p.Description), q) {
		return true
	}
	for _, t := range p.Tags {
		if strings.Contains(strings.ToLower(t.Name), q) {
			return true
		}
	}
	return false
}

func hasAnyTag(p *Project, tagIDs []uint64) bool {
	for _, t := range p.Tags {
		for _, id := range tagIDs {
			if t.ID == id {
				return true
			}
		}
	}
	return false
}

// TopRatedCount is how many projects TopRated returns at most.
const TopRatedCount = 6

// TopRated returns the highest-rated projects, best first. Projects
// without reviews rank as zero. The sort is stable, so equally rated
// projects keep their input order. The input slice is not modified.
func TopRated(projects []Project) []Project {
	sorted := make([]Project, len(projects))
	copy(sorted, projects)
	sort.SliceStable(sorted, func(i, j int) bool {
		return ratingOrZero(&sorted[i]) > ratingOrZero(&sorted[j])
	})
	if len(sorted) > TopRatedCount {
		sorted = sorted[:TopRatedCount]
	}
	return sorted
}

func ratingOrZero(p *Project) float64 {
	if p.AvgRating == nil {
		return 0
	}
	return *p.AvgRating
}

// SanitizeTagIDs drops ids that do not exist in the tag catalog, so stale
// selections never reach the server. Order of the surviving ids is kept.
func SanitizeTagIDs(ids []uint64, catalog []Tag) []uint64 {
	known := make(map[uint64]struct{}, len(catalog))
	for _, t := range catalog {
		known[t.ID] = struct{}{}
	}
	out := make([]uint64, 0, len(ids))
	for _, id := range ids {
		if _, ok := known[id]; ok {
			out = append(out, id)
		}
	}
	return out
}

// formatRating renders an average rating with one decimal place.
func formatRating(r float64) string {
	return strconv.FormatFloat(r, 'f', 1, 64)
}

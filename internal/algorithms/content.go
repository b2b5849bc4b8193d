package algorithms

import (
	"sort"
	"strings"

	"influmatch_backend/internal/models"
	"influmatch_backend/internal/services/dto"
)

// ContentMatch is one content-based candidate score. All three values are
// in [0,1].
type ContentMatch struct {
	CreatorID         string
	ContentSimilarity float64 // Jaccard token overlap
	Relevance         float64 // preference-dimension match
	Score             float64 // (similarity + relevance) / 2
}

// ContentMatcher represents every creator as a bag of lower-cased tokens
// (categories, audience interests, content categories, specialties) and
// scores candidates by token overlap with the campaign's desired attributes.
type ContentMatcher struct {
	profiles map[string]map[string]bool
}

func NewContentMatcher() *ContentMatcher {
	return &ContentMatcher{profiles: make(map[string]map[string]bool)}
}

// BuildProfiles tokenizes the creator corpus. Calling it again replaces the
// corpus wholesale.
func (m *ContentMatcher) BuildProfiles(creators []models.CreatorProfile) {
	profiles := make(map[string]map[string]bool, len(creators))
	for i := range creators {
		profiles[creators[i].ID] = creatorTokens(&creators[i])
	}
	m.profiles = profiles
}

// Match scores every candidate against the criteria and returns them sorted
// descending by score (stable: ties keep candidate order).
func (m *ContentMatcher) Match(criteria *dto.MatchingCriteria, candidates []models.CreatorProfile) []ContentMatch {
	query := queryTokens(criteria)

	results := make([]ContentMatch, 0, len(candidates))
	for i := range candidates {
		candidate := &candidates[i]

		tokens, ok := m.profiles[candidate.ID]
		if !ok {
			tokens = creatorTokens(candidate)
		}

		similarity := jaccard(query, tokens)
		relevance := m.relevance(criteria, candidate)

		results = append(results, ContentMatch{
			CreatorID:         candidate.ID,
			ContentSimilarity: similarity,
			Relevance:         relevance,
			Score:             (similarity + relevance) / 2.0,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return results
}

// relevance averages up to four preference dimensions: platform ratio,
// location (binary: any overlap counts), language ratio and category ratio.
// With no preferences specified the candidate gets a neutral 0.5.
func (m *ContentMatcher) relevance(criteria *dto.MatchingCriteria, creator *models.CreatorProfile) float64 {
	if criteria == nil {
		return 0.5
	}
	prefs := criteria.Preferences

	var ratios []float64

	if len(prefs.Platforms) > 0 {
		matched := 0
		for _, platform := range prefs.Platforms {
			if creator.HasPlatform(platform) {
				matched++
			}
		}
		ratios = append(ratios, float64(matched)/float64(len(prefs.Platforms)))
	}

	if len(prefs.Locations) > 0 {
		if overlapRatio(prefs.Locations, creator.Locations) > 0 {
			ratios = append(ratios, 1.0)
		} else {
			ratios = append(ratios, 0.0)
		}
	}

	if len(prefs.Languages) > 0 {
		ratios = append(ratios, overlapRatio(prefs.Languages, creator.Languages))
	}

	if len(prefs.Categories) > 0 {
		ratios = append(ratios, overlapRatio(prefs.Categories, creator.Categories))
	}

	if len(ratios) == 0 {
		return 0.5
	}

	sum := 0.0
	for _, r := range ratios {
		sum += r
	}
	return sum / float64(len(ratios))
}

// CreatorSimilarity reports Jaccard similarity between two creators' token
// profiles. Used for the "similar creators" lookup.
func CreatorSimilarity(a, b *models.CreatorProfile) float64 {
	return jaccard(creatorTokens(a), creatorTokens(b))
}

// creatorTokens collects the creator's describable attributes into one
// lower-cased token set.
func creatorTokens(creator *models.CreatorProfile) map[string]bool {
	tokens := make(map[string]bool)

	addTokens(tokens, creator.Categories)
	addTokens(tokens, creator.GetAudience().Interests)
	addTokens(tokens, creator.GetContent().PrimaryCategories)
	addTokens(tokens, creator.GetPerformance().Specialties)

	return tokens
}

// queryTokens builds the query bag: preference categories, campaign audience
// interests and campaign goal types.
func queryTokens(criteria *dto.MatchingCriteria) map[string]bool {
	tokens := make(map[string]bool)
	if criteria == nil {
		return tokens
	}

	addTokens(tokens, criteria.Preferences.Categories)

	if criteria.Campaign != nil {
		if criteria.Campaign.TargetAudience != nil {
			addTokens(tokens, criteria.Campaign.TargetAudience.Interests)
		}
		for _, goal := range criteria.Campaign.Goals {
			tokens[strings.ToLower(string(goal.Type))] = true
		}
	}

	return tokens
}

func addTokens(set map[string]bool, values []string) {
	for _, v := range values {
		v = strings.ToLower(strings.TrimSpace(v))
		if v != "" {
			set[v] = true
		}
	}
}

// jaccard = |intersection| / |union|; two empty sets give 0.
func jaccard(a, b map[string]bool) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}

	intersection := 0
	for token := range a {
		if b[token] {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

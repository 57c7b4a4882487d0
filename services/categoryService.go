package services

import (
	"log"
	"sort"
	"strings"

	"github.com/jacksandom/unitmapper/models"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

type CategoryService struct {
	categories []string
}

func NewCategoryService() *CategoryService {
	return &CategoryService{categories: models.CanonicalCategories}
}

func (s *CategoryService) Categories() []string {
	return s.categories
}

// MatchCategory normalizes a free-text model answer onto the canonical set.
// The free-text pass has no schema enforcement, so answers arrive with
// varying case, quoting, and surrounding prose; this is a best-effort cleanup
// for the report, not a guarantee.
func (s *CategoryService) MatchCategory(answer string) models.CategoryMatch {
	cleaned := cleanAnswer(answer)
	if cleaned == "" {
		return models.CategoryMatch{Input: answer}
	}

	// Exact case-insensitive hit first.
	for _, category := range s.categories {
		if strings.EqualFold(cleaned, category) {
			return models.CategoryMatch{
				Input:    answer,
				Category: category,
				Matched:  true,
				Exact:    true,
			}
		}
	}

	// The model often wraps the category in a sentence; a canonical name
	// contained verbatim in the answer beats fuzzy scoring.
	loweredAnswer := strings.ToLower(cleaned)
	for _, category := range s.categories {
		if strings.Contains(loweredAnswer, strings.ToLower(category)) {
			return models.CategoryMatch{
				Input:    answer,
				Category: category,
				Matched:  true,
			}
		}
	}

	ranks := fuzzy.RankFindNormalizedFold(cleaned, s.categories)
	if len(ranks) == 0 {
		log.Printf("[WARN] No canonical category matched answer %q", answer)
		return models.CategoryMatch{Input: answer}
	}

	sort.Sort(ranks)
	best := ranks[0]

	return models.CategoryMatch{
		Input:    answer,
		Category: best.Target,
		Matched:  true,
		Rank:     best.Distance,
	}
}

// cleanAnswer strips the quoting and trailing punctuation models tend to
// decorate a bare answer with.
func cleanAnswer(answer string) string {
	cleaned := strings.TrimSpace(answer)
	cleaned = strings.Trim(cleaned, "\"'`")
	cleaned = strings.TrimSuffix(cleaned, ".")
	return strings.TrimSpace(cleaned)
}

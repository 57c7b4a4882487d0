package services

import (
	"testing"
)

func TestMatchCategory(t *testing.T) {
	service := NewCategoryService()

	tests := []struct {
		name     string
		answer   string
		category string
		matched  bool
		exact    bool
	}{
		{
			name:     "exact match",
			answer:   "Cardiology",
			category: "Cardiology",
			matched:  true,
			exact:    true,
		},
		{
			name:     "case insensitive match",
			answer:   "cardiology",
			category: "Cardiology",
			matched:  true,
			exact:    true,
		},
		{
			name:     "quoted answer",
			answer:   `"Intensive Care Unit"`,
			category: "Intensive Care Unit",
			matched:  true,
			exact:    true,
		},
		{
			name:     "trailing period",
			answer:   "Accident and Emergency.",
			category: "Accident and Emergency",
			matched:  true,
			exact:    true,
		},
		{
			name:     "category embedded in a sentence",
			answer:   "The best match is Paediatrics for this label",
			category: "Paediatrics",
			matched:  true,
		},
		{
			name:     "typo tolerance",
			answer:   "Cardiolgy",
			category: "Cardiology",
			matched:  true,
		},
		{
			name:    "empty answer",
			answer:  "",
			matched: false,
		},
		{
			name:    "whitespace only",
			answer:  "   ",
			matched: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			match := service.MatchCategory(tt.answer)

			if match.Matched != tt.matched {
				t.Fatalf("MatchCategory(%q).Matched = %v, expected %v", tt.answer, match.Matched, tt.matched)
			}
			if match.Category != tt.category {
				t.Errorf("MatchCategory(%q).Category = %q, expected %q", tt.answer, match.Category, tt.category)
			}
			if match.Exact != tt.exact {
				t.Errorf("MatchCategory(%q).Exact = %v, expected %v", tt.answer, match.Exact, tt.exact)
			}
			if match.Input != tt.answer {
				t.Errorf("MatchCategory(%q).Input = %q, expected the original answer", tt.answer, match.Input)
			}
		})
	}
}

func TestCategoriesIsClosedSet(t *testing.T) {
	service := NewCategoryService()
	categories := service.Categories()

	if len(categories) == 0 {
		t.Fatal("canonical category set must not be empty")
	}

	seen := make(map[string]bool, len(categories))
	for _, category := range categories {
		if seen[category] {
			t.Errorf("duplicate canonical category: %q", category)
		}
		seen[category] = true
	}
}

package internal

import (
	"sort"
	"strings"
)

// detectedCategory is a category implied by the routine text and the keywords that implied it
type detectedCategory struct {
	category string
	keywords []string
}

// CategoryGroup classifies a category into a routine group
func CategoryGroup(category string) string {
	c := strings.ToLower(category)
	if c == "" {
		return GroupOther
	}
	if strings.Contains(c, "makeup") || c == "mascara" || c == "foundation" {
		return GroupMakeup
	}
	if strings.Contains(c, "hair") {
		return GroupHaircare
	}
	if c == "fragrance" || c == "perfume" {
		return GroupFragrance
	}
	if c == "men's grooming" {
		return GroupMens
	}
	for _, s := range SkincareCategories {
		if c == s {
			return GroupSkincare
		}
	}
	return GroupOther
}

// SuggestMissingProducts proposes one catalogue product for every routine step
// category found in text that the selection does not already cover. Output is in
// detection order and depends only on its inputs.
func SuggestMissingProducts(products []Product, selected []SelectedProduct, text string) []Suggestion {
	found := detectCategories(text)
	if len(found) == 0 {
		return []Suggestion{}
	}

	selectedCategories := make(map[string]bool, len(selected))
	for _, s := range selected {
		selectedCategories[strings.ToLower(s.Category)] = true
	}

	allowed := allowedGroups(selected, found)
	allowAll := len(allowed) == 0

	suggestions := make([]Suggestion, 0, len(found))
	for _, dc := range found {
		if selectedCategories[dc.category] {
			continue
		}
		candidate, ok := findCandidate(products, dc.category, dc.keywords)
		if !ok {
			continue
		}
		if allowAll || allowed[CategoryGroup(candidate.Category)] {
			suggestions = append(suggestions, Suggestion{Category: dc.category, Product: candidate})
		}
	}
	return suggestions
}

// detectCategories scans text for table keywords in table order
func detectCategories(text string) []detectedCategory {
	lc := strings.ToLower(text)
	var found []detectedCategory
	index := make(map[string]int)

	for _, kc := range KeywordCategories {
		if !strings.Contains(lc, kc.Keyword) {
			continue
		}
		for _, cat := range kc.Categories {
			key := strings.ToLower(cat)
			i, ok := index[key]
			if !ok {
				i = len(found)
				index[key] = i
				found = append(found, detectedCategory{category: key})
			}
			if !containsString(found[i].keywords, kc.Keyword) {
				found[i].keywords = append(found[i].keywords, kc.Keyword)
			}
		}
	}
	return found
}

// allowedGroups returns the groups suggestions may come from. The selection's
// groups win unless they are only "other"; otherwise the most mentioned group is
// allowed, plus the runner-up when its count is at least max(1, top-1).
// An empty result means every group is allowed.
func allowedGroups(selected []SelectedProduct, found []detectedCategory) map[string]bool {
	allowed := make(map[string]bool)

	selectedGroups := make(map[string]bool)
	for _, s := range selected {
		selectedGroups[CategoryGroup(s.Category)] = true
	}
	if len(selectedGroups) > 0 && !(len(selectedGroups) == 1 && selectedGroups[GroupOther]) {
		for g := range selectedGroups {
			allowed[g] = true
		}
		return allowed
	}

	type groupCount struct {
		group string
		count int
	}
	var counts []groupCount
	index := make(map[string]int)
	for _, dc := range found {
		g := CategoryGroup(dc.category)
		i, ok := index[g]
		if !ok {
			i = len(counts)
			index[g] = i
			counts = append(counts, groupCount{group: g})
		}
		counts[i].count += len(dc.keywords)
	}

	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].count > counts[j].count
	})

	if len(counts) > 0 {
		allowed[counts[0].group] = true
		if len(counts) > 1 && counts[1].count >= max(1, counts[0].count-1) {
			allowed[counts[1].group] = true
		}
	}
	return allowed
}

// findCandidate returns the first product matching, in order: exact category with
// a keyword in name or description, exact category, any hair category for hair
// targets, then any product mentioning a keyword
func findCandidate(products []Product, category string, keywords []string) (Product, bool) {
	tc := strings.ToLower(category)

	for _, p := range products {
		if strings.ToLower(p.Category) == tc && mentionsAny(p, keywords) {
			return p, true
		}
	}
	for _, p := range products {
		if strings.ToLower(p.Category) == tc {
			return p, true
		}
	}
	if strings.Contains(tc, "hair") {
		for _, p := range products {
			if strings.Contains(strings.ToLower(p.Category), "hair") {
				return p, true
			}
		}
	}
	for _, k := range keywords {
		for _, p := range products {
			if mentionsAny(p, []string{k}) {
				return p, true
			}
		}
	}
	return Product{}, false
}

func mentionsAny(p Product, keywords []string) bool {
	name := strings.ToLower(p.Name)
	desc := strings.ToLower(p.Description)
	for _, k := range keywords {
		if strings.Contains(name, k) || strings.Contains(desc, k) {
			return true
		}
	}
	return false
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

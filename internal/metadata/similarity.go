package metadata

import "strings"

// similarity scores how well query matches candidate, the bespoke formula
// this cascade's Provider B uses to pick among multi-result responses:
// exact match wins outright, a substring match scales by 0.8, anything else
// falls back to Jaccard word overlap. The 0.8 constant is not derived from
// anything else in this package; it is preserved exactly as specified.
func similarity(query, candidate string) float64 {
	a := strings.ToLower(strings.TrimSpace(query))
	b := strings.ToLower(strings.TrimSpace(candidate))

	if a == b {
		return 1.0
	}

	if strings.Contains(a, b) || strings.Contains(b, a) {
		shorter, longer := len(a), len(b)
		if shorter > longer {
			shorter, longer = longer, shorter
		}
		if longer == 0 {
			return 0.0
		}
		return 0.8 * float64(shorter) / float64(longer)
	}

	return jaccard(a, b)
}

func jaccard(a, b string) float64 {
	setA := wordSet(a)
	setB := wordSet(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0.0
	}

	intersection := 0
	for w := range setA {
		if setB[w] {
			intersection++
		}
	}

	denom := len(setA)
	if len(setB) > denom {
		denom = len(setB)
	}

	return float64(intersection) / float64(denom)
}

func wordSet(s string) map[string]bool {
	words := strings.Fields(s)
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}

// bestSimilarity scores query against both the primary and original-language
// candidate names and keeps the higher of the two, per the resolver's
// two-name scoring rule.
func bestSimilarity(query, primary, original string) float64 {
	s := similarity(query, primary)
	if original != "" {
		if alt := similarity(query, original); alt > s {
			s = alt
		}
	}
	return s
}

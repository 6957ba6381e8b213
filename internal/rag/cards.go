package rag

import "strings"

const (
	cardCandidates    = 2
	cardMinTokenRunes = 3
)

// SelectCards decides which product card, if any, to surface next to the
// generated answer. Only candidates with both a URL and an image qualify.
// Visual queries always get the top candidate; otherwise a card is shown
// only when the answer text actually mentions the product, so the card never
// contradicts the prose.
func SelectCards(products []ScoredUnit, answerText string, isVisual bool) []ProductCard {
	var qualifying []ScoredUnit
	for _, p := range products {
		if p.Unit.URL != "" && p.Unit.ImageURL != "" {
			qualifying = append(qualifying, p)
		}
	}
	if len(qualifying) == 0 {
		return nil
	}

	if isVisual {
		return []ProductCard{toCard(qualifying[0])}
	}

	answer := strings.ToLower(answerText)
	limit := cardCandidates
	if len(qualifying) < limit {
		limit = len(qualifying)
	}
	for _, candidate := range qualifying[:limit] {
		if titleMentioned(candidate.Unit.Title, answer) {
			return []ProductCard{toCard(candidate)}
		}
	}
	return nil
}

// titleMentioned reports whether any title token of at least three runes
// appears in the lowercased answer.
func titleMentioned(title, answer string) bool {
	for _, token := range strings.Fields(strings.ToLower(title)) {
		if len([]rune(token)) < cardMinTokenRunes {
			continue
		}
		if strings.Contains(answer, token) {
			return true
		}
	}
	return false
}

func toCard(u ScoredUnit) ProductCard {
	return ProductCard{
		Title:    u.Unit.Title,
		URL:      u.Unit.URL,
		ImageURL: u.Unit.ImageURL,
		Price:    u.Unit.Price,
	}
}

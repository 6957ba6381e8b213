package rag

import (
	"fmt"
	"strings"

	"shopassist/internal/model"
)

const (
	snippetMaxChars    = 600
	lowConfidenceScore = 0.45
)

// BuildContext renders the retrieved units and contact facts into the
// bounded text block handed to the answering model. Section order is fixed:
// products, pages, contact info, confidence note; empty sections are
// omitted entirely.
func BuildContext(products, pages []ScoredUnit, facts []model.StoreFact, bestScore float64, isProductQuery bool) string {
	var b strings.Builder

	if len(products) > 0 {
		b.WriteString("PRODUCTS:\n")
		for i, p := range products {
			writeUnitEntry(&b, i+1, p)
		}
	}

	if len(pages) > 0 {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString("STORE INFO:\n")
		for i, p := range pages {
			writeUnitEntry(&b, i+1, p)
		}
	}

	if contact := renderContactInfo(facts); contact != "" {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(contact)
	}

	if isProductQuery && bestScore < lowConfidenceScore {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString("NOTE: No product matched the question with high confidence. Be cautious and do not invent product details.\n")
	}

	return b.String()
}

func writeUnitEntry(b *strings.Builder, index int, u ScoredUnit) {
	header := fmt.Sprintf("%d. %s", index, u.Unit.Title)
	if u.Unit.Price != "" {
		header += " (Price: " + u.Unit.Price + ")"
	}
	header += fmt.Sprintf(" [relevance %.2f]", u.Score)
	if u.Unit.Kind == model.KindProduct {
		if u.Unit.ImageURL != "" {
			header += " [image available]"
		} else {
			header += " [no image]"
		}
	}
	b.WriteString(header + "\n")
	b.WriteString(snippet(u.Unit.Text) + "\n")
}

func snippet(text string) string {
	runes := []rune(text)
	if len(runes) <= snippetMaxChars {
		return text
	}
	return string(runes[:snippetMaxChars]) + "..."
}

// renderContactInfo groups deduplicated facts by type; empty when no facts.
func renderContactInfo(facts []model.StoreFact) string {
	byType := map[string][]string{}
	seen := map[string]bool{}
	for _, f := range facts {
		key := f.FactType + "|" + f.Value
		if seen[key] {
			continue
		}
		seen[key] = true
		byType[f.FactType] = append(byType[f.FactType], f.Value)
	}
	if len(byType) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("CONTACT INFO:\n")
	for _, entry := range []struct {
		factType string
		label    string
	}{
		{model.FactTypeEmail, "Email"},
		{model.FactTypePhone, "Phone"},
		{model.FactTypeAddress, "Address"},
	} {
		for _, value := range byType[entry.factType] {
			b.WriteString(entry.label + ": " + value + "\n")
		}
	}
	return b.String()
}

package rag

import (
	"regexp"
	"strings"

	"shopassist/internal/model"
)

// Contact patterns are deliberately heuristic: they must not miss well-formed
// contact data in Swedish or English store pages, and the occasional false
// positive for phones and addresses is accepted.
var (
	emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)

	// Optional leading +, then digits with space/hyphen separators.
	phonePattern = regexp.MustCompile(`\+?\d[\d \-]{6,}\d`)

	// Nordic-style street address: capitalized street token with an optional
	// house number, a 5-digit postal code (optionally split 3+2) and a
	// capitalized city token.
	addressPattern = regexp.MustCompile(`([A-ZÅÄÖ][\pL0-9.]+(?: \d+[A-Za-z]?)?)[, ]+(\d{3})\s?(\d{2})\s+([A-ZÅÄÖ][\pL]+)`)
)

const minPhoneDigits = 9

// ExtractFacts scans free text for contact-like patterns and returns
// deduplicated facts. Pure function: no persistence, never fails.
func ExtractFacts(text string) []Fact {
	var facts []Fact
	facts = append(facts, extractEmails(text)...)
	facts = append(facts, extractPhones(text)...)
	facts = append(facts, extractAddresses(text)...)
	return facts
}

func extractEmails(text string) []Fact {
	var facts []Fact
	seen := map[string]bool{}
	for _, match := range emailPattern.FindAllString(text, -1) {
		if seen[match] {
			continue
		}
		seen[match] = true
		facts = append(facts, Fact{Type: model.FactTypeEmail, Value: match})
	}
	return facts
}

func extractPhones(text string) []Fact {
	var facts []Fact
	seen := map[string]bool{}
	for _, match := range phonePattern.FindAllString(text, -1) {
		value := strings.TrimSpace(match)
		if countDigits(value) < minPhoneDigits || seen[value] {
			continue
		}
		seen[value] = true
		facts = append(facts, Fact{Type: model.FactTypePhone, Value: value})
	}
	return facts
}

func extractAddresses(text string) []Fact {
	var facts []Fact
	seen := map[string]bool{}
	for _, match := range addressPattern.FindAllStringSubmatch(text, -1) {
		street := strings.TrimSpace(match[1])
		// A street without a house number is almost always a false positive
		// (company names, headings) rather than an address.
		if countDigits(street) == 0 {
			continue
		}
		value := street + ", " + match[2] + " " + match[3] + " " + match[4]
		if seen[value] {
			continue
		}
		seen[value] = true
		facts = append(facts, Fact{Type: model.FactTypeAddress, Value: value})
	}
	return facts
}

func countDigits(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}

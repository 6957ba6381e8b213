package rag

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Keyword tables are data, not control flow, so adding a locale means
// extending a list. Each list mixes Swedish and English terms because a
// shopper's message language is not guaranteed to match the store language.
var (
	visualTerms = []string{
		"visa", "visa mig", "bild", "bilder", "foto", "hur ser",
		"show", "show me", "picture", "pictures", "image", "photo", "look like", "looks like",
	}
	availabilityTerms = []string{
		"i lager", "finns", "tillgänglig", "slutsåld", "slut i lager", "beställningsvara",
		"in stock", "available", "availability", "sold out", "out of stock", "restock",
	}
	productTerms = []string{
		"produkt", "pris", "kostar", "köpa", "köp", "beställa", "storlek", "färg", "material", "rea",
		"product", "price", "cost", "buy", "purchase", "order", "size", "color", "colour", "sale", "cheap",
	}
	generalInfoTerms = []string{
		"frakt", "leverans", "retur", "returnera", "öppettider", "betalning", "garanti", "villkor", "byta",
		"shipping", "delivery", "return", "refund", "opening hours", "payment", "warranty", "policy", "exchange",
	}
	contactTerms = []string{
		"kontakt", "kontakta", "mejl", "e-post", "epost", "telefon", "telefonnummer", "adress", "nå er",
		"contact", "email", "e-mail", "phone", "phone number", "address", "reach you", "call you",
	}

	greetingTokens = map[string]bool{
		"hej": true, "hejsan": true, "hallå": true, "tjena": true, "tja": true,
		"god morgon": true, "god kväll": true, "goddag": true,
		"hi": true, "hello": true, "hey": true, "yo": true,
		"good morning": true, "good evening": true, "howdy": true,
	}

	// Short acknowledgments and continuations that signal a follow-up turn.
	followUpPattern = regexp.MustCompile(`^(ja|nej|ok|okej|tack|gärna|och|den|det|vilken|visst|yes|no|ok(ay)?|thanks|thank you|sure|and|what about|which one|that one)\b`)
)

const followUpMaxLength = 30
const historyWindow = 4

// Classify derives a QueryContext from a user message, the short chat
// history and the caller-configured language. Pure function of its inputs;
// language is passed through, never detected from content.
func Classify(message string, history []string, lang Language) QueryContext {
	msg := strings.ToLower(strings.TrimSpace(message))
	recent := strings.ToLower(strings.Join(lastN(history, historyWindow), " "))

	qc := QueryContext{
		IsVisual:       matchesAny(msg, visualTerms),
		IsAvailability: matchesAny(msg, availabilityTerms),
		IsProductQuery: matchesAny(msg, productTerms),
		IsGeneralInfo:  matchesAny(msg, generalInfoTerms),
		IsContact:      matchesAny(msg, contactTerms),
		IsGreeting:     isGreeting(msg),
		IsFollowUp:     isFollowUp(msg, history),
		Language:       lang,
	}

	// A short follow-up inherits product intent from the recent turns, so
	// "and the blue one?" still retrieves products.
	if qc.IsFollowUp && !qc.IsProductQuery && matchesAny(recent, productTerms) {
		qc.IsProductQuery = true
	}
	return qc
}

func matchesAny(text string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(text, term) {
			return true
		}
	}
	return false
}

// isGreeting requires the entire message, after trailing punctuation is
// stripped, to be a known greeting token.
func isGreeting(msg string) bool {
	trimmed := strings.TrimRight(msg, " !?.,")
	return greetingTokens[trimmed]
}

func isFollowUp(msg string, history []string) bool {
	if len(history) == 0 {
		return false
	}
	return followUpPattern.MatchString(msg) || utf8.RuneCountInString(msg) < followUpMaxLength
}

func lastN(entries []string, n int) []string {
	if len(entries) <= n {
		return entries
	}
	return entries[len(entries)-n:]
}

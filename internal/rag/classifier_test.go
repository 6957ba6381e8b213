package rag

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyGreeting(t *testing.T) {
	for _, msg := range []string{"Hej!", "hello", "  HEJ  ", "Good morning.", "tjena"} {
		qc := Classify(msg, nil, LanguageSwedish)
		assert.True(t, qc.IsGreeting, "message %q", msg)
	}
}

func TestClassifyGreetingMustBeWholeMessage(t *testing.T) {
	qc := Classify("hej, do you have rings?", nil, LanguageSwedish)
	assert.False(t, qc.IsGreeting)
}

func TestClassifyVisualIntent(t *testing.T) {
	qc := Classify("Can you show me a picture of the ring?", nil, LanguageEnglish)
	assert.True(t, qc.IsVisual)
	assert.False(t, qc.IsGreeting)

	qc = Classify("hur ser halsbandet ut?", nil, LanguageSwedish)
	assert.True(t, qc.IsVisual)
}

func TestClassifyAvailabilityAndProduct(t *testing.T) {
	qc := Classify("Is the blue mug in stock and what is the price?", nil, LanguageEnglish)
	assert.True(t, qc.IsAvailability)
	assert.True(t, qc.IsProductQuery)
	assert.False(t, qc.IsGeneralInfo)
}

func TestClassifyGeneralInfoAndContact(t *testing.T) {
	qc := Classify("Vad kostar frakt och hur kontaktar jag er?", nil, LanguageSwedish)
	assert.True(t, qc.IsGeneralInfo)
	assert.True(t, qc.IsContact)
	assert.True(t, qc.IsProductQuery) // "kostar"
}

func TestClassifyFollowUpNeedsHistory(t *testing.T) {
	qc := Classify("and the blue one?", nil, LanguageEnglish)
	assert.False(t, qc.IsFollowUp)

	qc = Classify("and the blue one?", []string{"what rings do you sell?"}, LanguageEnglish)
	assert.True(t, qc.IsFollowUp)
}

func TestClassifyShortMessageWithHistoryIsFollowUp(t *testing.T) {
	qc := Classify("the silver variant", []string{"show me your necklaces"}, LanguageEnglish)
	assert.True(t, qc.IsFollowUp)
}

func TestClassifyFollowUpInheritsProductIntent(t *testing.T) {
	history := []string{"what is the price of the lapis ring?", "It costs $40."}
	qc := Classify("and the blue one?", history, LanguageEnglish)
	assert.True(t, qc.IsFollowUp)
	assert.True(t, qc.IsProductQuery)
}

func TestClassifyFollowUpHistoryWindow(t *testing.T) {
	// The product turn is older than the inspected window, so no intent
	// carries over.
	history := []string{
		"what is the price of the lapis ring?",
		"It costs $40.",
		"do you ship to Norway?",
		"Yes, we do.",
		"thanks, how long does it take?",
		"Usually 3-5 days.",
	}
	qc := Classify("and the blue one?", history, LanguageEnglish)
	assert.True(t, qc.IsFollowUp)
	assert.False(t, qc.IsProductQuery)
}

func TestClassifyLanguagePassthrough(t *testing.T) {
	assert.Equal(t, LanguageEnglish, Classify("hello", nil, LanguageEnglish).Language)
	assert.Equal(t, LanguageSwedish, Classify("hello", nil, LanguageSwedish).Language)
}

package rag

import (
	"math/rand"
	"strings"
)

// Personality configures the assistant's voice for a store. Unknown or
// missing option values resolve to documented defaults at construction
// time, never at use time.
type Personality struct {
	Tone                string `json:"tone"`                 // friendly|professional|casual|luxurious
	GreetingStyle       string `json:"greeting_style"`       // warm|brief|enthusiastic
	ExpertiseLevel      string `json:"expertise_level"`      // helpful|expert|casual
	BrandVoice          string `json:"brand_voice"`
	SpecialInstructions string `json:"special_instructions"`
}

const (
	DefaultTone           = "friendly"
	DefaultGreetingStyle  = "warm"
	DefaultExpertiseLevel = "helpful"
)

var (
	validTones           = map[string]bool{"friendly": true, "professional": true, "casual": true, "luxurious": true}
	validGreetingStyles  = map[string]bool{"warm": true, "brief": true, "enthusiastic": true}
	validExpertiseLevels = map[string]bool{"helpful": true, "expert": true, "casual": true}
)

// ResolvePersonality returns p with every enumerated field normalized to a
// recognized option, falling back to the default for unknown values.
func ResolvePersonality(p Personality) Personality {
	p.Tone = pickOption(p.Tone, validTones, DefaultTone)
	p.GreetingStyle = pickOption(p.GreetingStyle, validGreetingStyles, DefaultGreetingStyle)
	p.ExpertiseLevel = pickOption(p.ExpertiseLevel, validExpertiseLevels, DefaultExpertiseLevel)
	p.BrandVoice = strings.TrimSpace(p.BrandVoice)
	p.SpecialInstructions = strings.TrimSpace(p.SpecialInstructions)
	return p
}

func pickOption(value string, valid map[string]bool, fallback string) string {
	v := strings.ToLower(strings.TrimSpace(value))
	if valid[v] {
		return v
	}
	return fallback
}

var toneDescriptions = map[string]string{
	"friendly":     "warm and approachable",
	"professional": "polished and precise",
	"casual":       "relaxed and informal",
	"luxurious":    "refined and exclusive",
}

var expertiseDescriptions = map[string]string{
	"helpful": "a helpful store assistant",
	"expert":  "a product expert with deep catalog knowledge",
	"casual":  "a laid-back shopping companion",
}

// SystemPrompt renders the persona message placed first in every completion
// request.
func SystemPrompt(storeName string, p Personality, lang Language) string {
	var b strings.Builder
	b.WriteString("You are " + expertiseDescriptions[p.ExpertiseLevel] + " for the online store " + storeName + ". ")
	b.WriteString("Your tone is " + toneDescriptions[p.Tone] + ". ")
	if lang == LanguageSwedish {
		b.WriteString("Answer in Swedish. ")
	} else {
		b.WriteString("Answer in English. ")
	}
	b.WriteString("Base every answer only on the provided store context. ")
	b.WriteString("If the context does not contain the answer, say so instead of guessing.")
	if p.BrandVoice != "" {
		b.WriteString(" Brand voice: " + p.BrandVoice + ".")
	}
	if p.SpecialInstructions != "" {
		b.WriteString(" Additional instructions: " + p.SpecialInstructions)
	}
	return b.String()
}

var greetings = map[Language][]string{
	LanguageSwedish: {
		"Hej! Vad kan jag hjälpa dig med idag?",
		"Hej hej! Letar du efter något särskilt?",
		"Hejsan! Fråga mig gärna om våra produkter.",
		"Hej! Kul att du tittar in. Hur kan jag hjälpa till?",
	},
	LanguageEnglish: {
		"Hi there! What can I help you with today?",
		"Hello! Looking for anything in particular?",
		"Hey! Feel free to ask me about our products.",
		"Hi! Great to see you. How can I help?",
	},
}

// Greeter picks localized greeting replies. The random source is injected
// so tests can seed it.
type Greeter struct {
	rng *rand.Rand
}

func NewGreeter(rng *rand.Rand) *Greeter {
	return &Greeter{rng: rng}
}

func (g *Greeter) Greeting(lang Language) string {
	options := greetings[lang]
	if len(options) == 0 {
		options = greetings[LanguageSwedish]
	}
	return options[g.rng.Intn(len(options))]
}

package rag

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopassist/internal/model"
)

func scoredProduct(title, price, imageURL, text string, score float64) ScoredUnit {
	return ScoredUnit{
		Unit: model.CatalogItem{
			Kind:     model.KindProduct,
			Title:    title,
			Price:    price,
			ImageURL: imageURL,
			Text:     text,
		},
		Score: score,
	}
}

func TestBuildContextSectionOrder(t *testing.T) {
	products := []ScoredUnit{scoredProduct("Blue Mug", "$12", "https://x/mug.jpg", "A blue mug.", 0.81)}
	pages := []ScoredUnit{{
		Unit:  model.CatalogItem{Kind: model.KindPage, Title: "Shipping", Text: "We ship worldwide."},
		Score: 0.66,
	}}
	facts := []model.StoreFact{{FactType: model.FactTypeEmail, Value: "shop@example.com"}}

	out := BuildContext(products, pages, facts, 0.81, true)

	prodIdx := strings.Index(out, "PRODUCTS:\n")
	pageIdx := strings.Index(out, "STORE INFO:\n")
	contactIdx := strings.Index(out, "CONTACT INFO:\n")
	require.GreaterOrEqual(t, prodIdx, 0)
	require.Greater(t, pageIdx, prodIdx)
	require.Greater(t, contactIdx, pageIdx)
	assert.NotContains(t, out, "NOTE:")
}

func TestBuildContextProductEntryFormat(t *testing.T) {
	products := []ScoredUnit{scoredProduct("Blue Mug", "$12", "https://x/mug.jpg", "A blue mug.", 0.812)}

	out := BuildContext(products, nil, nil, 0.812, true)

	assert.Contains(t, out, "1. Blue Mug (Price: $12) [relevance 0.81] [image available]\n")
	assert.Contains(t, out, "A blue mug.\n")
}

func TestBuildContextNoImageMarker(t *testing.T) {
	products := []ScoredUnit{scoredProduct("Plain Mug", "", "", "A mug.", 0.60)}

	out := BuildContext(products, nil, nil, 0.60, true)

	assert.Contains(t, out, "1. Plain Mug [relevance 0.60] [no image]\n")
	assert.NotContains(t, out, "(Price:")
}

func TestBuildContextPagesHaveNoImageMarker(t *testing.T) {
	pages := []ScoredUnit{{
		Unit:  model.CatalogItem{Kind: model.KindPage, Title: "Returns", Text: "30 days."},
		Score: 0.70,
	}}
	out := BuildContext(nil, pages, nil, 0.70, false)

	assert.Contains(t, out, "1. Returns [relevance 0.70]\n")
	assert.NotContains(t, out, "[image available]")
	assert.NotContains(t, out, "[no image]")
}

func TestBuildContextSnippetTruncation(t *testing.T) {
	long := strings.Repeat("å", 700) // multibyte, counted in runes
	products := []ScoredUnit{scoredProduct("Long", "", "", long, 0.55)}

	out := BuildContext(products, nil, nil, 0.55, true)

	assert.Contains(t, out, strings.Repeat("å", 600)+"...\n")
	assert.NotContains(t, out, strings.Repeat("å", 601))
}

func TestBuildContextLowConfidenceNote(t *testing.T) {
	out := BuildContext(nil, nil, nil, 0.30, true)
	assert.Contains(t, out, "NOTE: No product matched the question with high confidence.")

	// Non-product queries never carry the note.
	out = BuildContext(nil, nil, nil, 0.30, false)
	assert.NotContains(t, out, "NOTE:")

	// Confident answers never carry the note.
	out = BuildContext(nil, nil, nil, 0.80, true)
	assert.NotContains(t, out, "NOTE:")
}

func TestBuildContextContactGroupingAndDedup(t *testing.T) {
	facts := []model.StoreFact{
		{FactType: model.FactTypePhone, Value: "+46 70 123 45 67"},
		{FactType: model.FactTypeEmail, Value: "shop@example.com"},
		{FactType: model.FactTypeEmail, Value: "shop@example.com"},
		{FactType: model.FactTypeAddress, Value: "Storgatan 12, 114 55 Stockholm"},
	}
	out := BuildContext(nil, nil, facts, 0.9, false)

	assert.Equal(t, 1, strings.Count(out, "Email: shop@example.com\n"))
	emailIdx := strings.Index(out, "Email:")
	phoneIdx := strings.Index(out, "Phone:")
	addrIdx := strings.Index(out, "Address:")
	require.GreaterOrEqual(t, emailIdx, 0)
	assert.Greater(t, phoneIdx, emailIdx)
	assert.Greater(t, addrIdx, phoneIdx)
}

func TestBuildContextEmptyInputs(t *testing.T) {
	assert.Empty(t, BuildContext(nil, nil, nil, 0.9, false))
}

package rag

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopassist/internal/model"
)

func TestCosineSimilaritySelf(t *testing.T) {
	v := []float32{0.1, 0.2, 0.3}
	assert.InDelta(t, 1.0, CosineSimilarity(v, v), 1e-9)
}

func TestCosineSimilaritySymmetry(t *testing.T) {
	a := []float32{1, 2, 3}
	b := []float32{-2, 0.5, 4}
	assert.InDelta(t, CosineSimilarity(a, b), CosineSimilarity(b, a), 1e-12)
}

func TestCosineSimilarityOpposite(t *testing.T) {
	a := []float32{1, 0}
	b := []float32{-1, 0}
	assert.InDelta(t, -1.0, CosineSimilarity(a, b), 1e-9)
}

func TestCosineSimilaritySentinel(t *testing.T) {
	assert.Equal(t, -1.0, CosineSimilarity(nil, []float32{1}))
	assert.Equal(t, -1.0, CosineSimilarity([]float32{1}, nil))
	assert.Equal(t, -1.0, CosineSimilarity([]float32{1, 2}, []float32{1}))
	assert.Equal(t, -1.0, CosineSimilarity([]float32{0, 0}, []float32{1, 2}))
	assert.False(t, math.IsNaN(CosineSimilarity([]float32{0, 0}, []float32{0, 0})))
}

// scoredItem builds a unit-norm 2D vector whose cosine against query
// (1, 0) equals score exactly (up to float32 rounding).
func scoredItem(kind, unitID string, inStock bool, score float64) model.CatalogItem {
	it := model.CatalogItem{Kind: kind, UnitID: unitID, InStock: inStock}
	it.SetEmbedding([]float32{float32(score), float32(math.Sqrt(1 - score*score))})
	return it
}

var queryVec = []float32{1, 0}

func TestRankExcludesOutOfStockBeforeScoring(t *testing.T) {
	units := []model.CatalogItem{
		scoredItem(model.KindProduct, "gone", false, 0.99),
		scoredItem(model.KindProduct, "here", true, 0.50),
	}
	res := Rank(queryVec, units, QueryContext{})

	require.Len(t, res.Products, 1)
	assert.Equal(t, "here", res.Products[0].Unit.UnitID)
	// BestScore reflects the best in-stock product, not the excluded one.
	assert.InDelta(t, 0.50, res.BestScore, 1e-6)
}

func TestRankPagesIgnoreStock(t *testing.T) {
	units := []model.CatalogItem{
		scoredItem(model.KindPage, "faq#0", false, 0.80),
	}
	res := Rank(queryVec, units, QueryContext{})
	require.Len(t, res.Pages, 1)
	assert.Equal(t, "faq#0", res.Pages[0].Unit.UnitID)
}

func TestRankVisualThresholdLowered(t *testing.T) {
	units := []model.CatalogItem{
		scoredItem(model.KindProduct, "borderline", true, 0.35),
	}

	res := Rank(queryVec, units, QueryContext{})
	assert.Empty(t, res.Products, "0.35 is below the default threshold")

	res = Rank(queryVec, units, QueryContext{IsVisual: true})
	require.Len(t, res.Products, 1)
	assert.Equal(t, "borderline", res.Products[0].Unit.UnitID)
}

func TestRankCaps(t *testing.T) {
	var units []model.CatalogItem
	for i := 0; i < 15; i++ {
		units = append(units, scoredItem(model.KindProduct, fmt.Sprintf("p%d", i), true, 0.90))
	}
	for i := 0; i < 5; i++ {
		units = append(units, scoredItem(model.KindPage, fmt.Sprintf("pg%d", i), true, 0.90))
	}

	res := Rank(queryVec, units, QueryContext{})
	assert.Len(t, res.Products, 6)
	assert.Len(t, res.Pages, 3)

	res = Rank(queryVec, units, QueryContext{IsVisual: true})
	assert.Len(t, res.Products, 3)

	res = Rank(queryVec, units, QueryContext{IsGeneralInfo: true})
	assert.Len(t, res.Products, 12)

	// General info wins over visual for the cap; the threshold stays visual.
	res = Rank(queryVec, units, QueryContext{IsGeneralInfo: true, IsVisual: true})
	assert.Len(t, res.Products, 12)
}

func TestRankStableTieOrder(t *testing.T) {
	units := []model.CatalogItem{
		scoredItem(model.KindProduct, "first", true, 0.75),
		scoredItem(model.KindProduct, "second", true, 0.75),
		scoredItem(model.KindProduct, "third", true, 0.75),
	}
	res := Rank(queryVec, units, QueryContext{})

	require.Len(t, res.Products, 3)
	assert.Equal(t, "first", res.Products[0].Unit.UnitID)
	assert.Equal(t, "second", res.Products[1].Unit.UnitID)
	assert.Equal(t, "third", res.Products[2].Unit.UnitID)
}

func TestRankBestScoreComputedBeforeThreshold(t *testing.T) {
	units := []model.CatalogItem{
		scoredItem(model.KindProduct, "weak", true, 0.20),
	}
	res := Rank(queryVec, units, QueryContext{})

	assert.Empty(t, res.Products)
	assert.InDelta(t, 0.20, res.BestScore, 1e-6)
}

func TestRankNoUnits(t *testing.T) {
	res := Rank(queryVec, nil, QueryContext{})
	assert.Empty(t, res.Products)
	assert.Empty(t, res.Pages)
	assert.Zero(t, res.BestScore)
}

func TestRankMalformedEmbeddingSortsLast(t *testing.T) {
	broken := model.CatalogItem{Kind: model.KindProduct, UnitID: "broken", InStock: true}
	units := []model.CatalogItem{
		broken,
		scoredItem(model.KindProduct, "good", true, 0.60),
	}
	res := Rank(queryVec, units, QueryContext{})

	require.Len(t, res.Products, 1)
	assert.Equal(t, "good", res.Products[0].Unit.UnitID)
}

package rag

import (
	"math"
	"sort"

	"shopassist/internal/model"
)

// Retrieval thresholds and caps encode a precision/recall trade-off: visual
// queries tolerate lower confidence because the caller wants to show
// something, general-info queries want breadth.
const (
	productThreshold       = 0.38
	productThresholdVisual = 0.32
	pageThreshold          = 0.45

	maxProducts            = 6
	maxProductsVisual      = 3
	maxProductsGeneralInfo = 12
	maxPages               = 3
)

// CosineSimilarity returns the cosine of the angle between a and b in
// [-1, 1]. Mismatched lengths, missing vectors and zero norms return the -1
// sentinel rather than NaN, so malformed items sort to the bottom instead of
// failing a ranking pass.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(b) == 0 || len(a) != len(b) {
		return -1
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return -1
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// Rank scores every catalog unit against the query embedding and returns
// the thresholded, capped product and page lists, ordered descending by
// score with ties kept in original catalog order. Out-of-stock products are
// excluded before scoring; pages are never stock-filtered.
func Rank(queryVec []float32, units []model.CatalogItem, qc QueryContext) RankResult {
	var products, pages []ScoredUnit
	for _, unit := range units {
		if unit.Kind == model.KindProduct && !unit.InStock {
			continue
		}
		scored := ScoredUnit{Unit: unit, Score: CosineSimilarity(queryVec, unit.EmbeddingVector())}
		switch unit.Kind {
		case model.KindProduct:
			products = append(products, scored)
		case model.KindPage:
			pages = append(pages, scored)
		}
	}

	sortByScore(products)
	sortByScore(pages)

	best := 0.0
	if len(products) > 0 {
		best = products[0].Score
	}

	prodThreshold := productThreshold
	if qc.IsVisual {
		prodThreshold = productThresholdVisual
	}
	prodCap := maxProducts
	switch {
	case qc.IsGeneralInfo:
		prodCap = maxProductsGeneralInfo
	case qc.IsVisual:
		prodCap = maxProductsVisual
	}

	return RankResult{
		Products:  takeAbove(products, prodThreshold, prodCap),
		Pages:     takeAbove(pages, pageThreshold, maxPages),
		BestScore: best,
	}
}

func sortByScore(units []ScoredUnit) {
	sort.SliceStable(units, func(i, j int) bool {
		return units[i].Score > units[j].Score
	})
}

func takeAbove(units []ScoredUnit, threshold float64, limit int) []ScoredUnit {
	var kept []ScoredUnit
	for _, u := range units {
		if u.Score < threshold {
			break // sorted descending, nothing further qualifies
		}
		kept = append(kept, u)
		if len(kept) == limit {
			break
		}
	}
	return kept
}

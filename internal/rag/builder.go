package rag

import (
	"fmt"
	"strings"

	"shopassist/internal/model"
)

// BuildUnits normalizes raw products and pages into embeddable catalog
// items. Embeddings are left unset; StoreID is filled in by the caller.
// Products come first, then pages, each group in input order.
func BuildUnits(products []ProductInput, pages []PageInput) []model.CatalogItem {
	var units []model.CatalogItem
	for _, p := range products {
		if unit, ok := buildProductUnit(p); ok {
			units = append(units, unit)
		}
	}
	for _, p := range pages {
		units = append(units, buildPageUnits(p)...)
	}
	return units
}

// buildProductUnit derives the embeddable text for one product: title, short
// description, description, categories and a price line, joined by blank
// lines. Products with no derivable text are skipped.
func buildProductUnit(p ProductInput) (model.CatalogItem, bool) {
	parts := make([]string, 0, 5)
	for _, s := range []string{p.Title, p.ShortDescription, p.Description} {
		if t := strings.TrimSpace(s); t != "" {
			parts = append(parts, t)
		}
	}
	if cats := joinCategories(p.Categories); cats != "" {
		parts = append(parts, cats)
	}
	if price := strings.TrimSpace(p.Price); price != "" {
		parts = append(parts, "Price: "+price)
	}
	if len(parts) == 0 {
		return model.CatalogItem{}, false
	}

	stock := strings.TrimSpace(p.StockStatus)
	if stock == "" {
		stock = "instock"
	}
	return model.CatalogItem{
		Kind:        model.KindProduct,
		UnitID:      p.ID,
		SourceID:    p.ID,
		Text:        strings.Join(parts, "\n\n"),
		Title:       strings.TrimSpace(p.Title),
		URL:         strings.TrimSpace(p.URL),
		ImageURL:    strings.TrimSpace(p.ImageURL),
		Price:       strings.TrimSpace(p.Price),
		StockStatus: stock,
		InStock:     !strings.EqualFold(stock, "outofstock"),
	}, true
}

// buildPageUnits chunks a page over title plus content and emits one unit
// per non-empty chunk. Chunks of a page share the page ID as source and get
// "<page_id>#<chunk_index>" unit IDs.
func buildPageUnits(p PageInput) []model.CatalogItem {
	combined := strings.TrimSpace(strings.TrimSpace(p.Title) + "\n\n" + strings.TrimSpace(p.Content))
	if combined == "" {
		return nil
	}

	var units []model.CatalogItem
	for i, chunk := range Chunk(combined, DefaultChunkSize, DefaultChunkOverlap) {
		if chunk == "" {
			continue
		}
		units = append(units, model.CatalogItem{
			Kind:        model.KindPage,
			UnitID:      fmt.Sprintf("%s#%d", p.ID, i),
			SourceID:    p.ID,
			Text:        chunk,
			Title:       strings.TrimSpace(p.Title),
			URL:         strings.TrimSpace(p.URL),
			StockStatus: "instock",
			InStock:     true,
		})
	}
	return units
}

func joinCategories(categories []string) string {
	kept := make([]string, 0, len(categories))
	for _, c := range categories {
		if t := strings.TrimSpace(c); t != "" {
			kept = append(kept, t)
		}
	}
	return strings.Join(kept, ", ")
}

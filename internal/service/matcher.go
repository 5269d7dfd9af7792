package service

import (
	"log"

	"go-resell-sync/internal/clover"
	"go-resell-sync/internal/model"
)

// matchProduct finds the store product a Clover item corresponds to.
// Precedence: explicit POS link, then SKU, then barcode against Clover's code
// field. First positional match wins; name matching is deliberately not done.
// Returns the index into products, or -1.
func matchProduct(item clover.Item, products []model.Product) int {
	match := -1
	candidates := 0

	for i := range products {
		p := &products[i]
		if p.CloverItemID != "" && p.CloverItemID == item.ID {
			// A link match always wins, regardless of SKU/barcode hits found
			// earlier in the scan.
			return i
		}
	}

	for i := range products {
		p := &products[i]
		if item.SKU != "" && p.SKU != "" && p.SKU == item.SKU {
			candidates++
			if match == -1 {
				match = i
			}
			continue
		}
		if item.Code != "" && p.Barcode != "" && p.Barcode == item.Code {
			candidates++
			if match == -1 {
				match = i
			}
		}
	}

	if candidates > 1 {
		log.Printf("Warning: clover item %s (%s) matches %d store products; using first match — clean up duplicate SKUs/barcodes", item.ID, item.Name, candidates)
	}

	return match
}

// matchLineItem resolves a Clover order line to a store product by link id
// first, then by exact name. Returns -1 when nothing matches.
func matchLineItem(line clover.LineItem, products []model.Product) int {
	if line.Item != nil && line.Item.ID != "" {
		for i := range products {
			if products[i].CloverItemID == line.Item.ID {
				return i
			}
		}
	}
	if line.Name != "" {
		for i := range products {
			if products[i].Name == line.Name {
				return i
			}
		}
	}
	return -1
}

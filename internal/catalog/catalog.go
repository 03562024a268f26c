// Package catalog implements the storefront's data-shaping rules:
// text/category filtering, the featured/regular split, gallery facets
// and the WhatsApp ordering link. Everything here is pure; fetching is
// the repository layer's job.
package catalog

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/AdamZoda/voiture/internal/model"
)

// FeaturedCap is the maximum number of featured products shown in the
// suggestions row. The partition itself is unbounded; only display is
// truncated.
const FeaturedCap = 4

// Filter returns the products matching a free-text search and a
// category selection. A product matches when the search term is empty
// or a case-insensitive substring of its name or description, and the
// category is empty or equals the product's category exactly.
func Filter(products []model.Product, search, category string) []model.Product {
	search = strings.ToLower(search)

	matched := make([]model.Product, 0, len(products))
	for _, p := range products {
		if !matchesSearch(p, search) {
			continue
		}
		if category != "" && (p.Category == nil || *p.Category != category) {
			continue
		}
		matched = append(matched, p)
	}
	return matched
}

func matchesSearch(p model.Product, search string) bool {
	if search == "" {
		return true
	}
	if strings.Contains(strings.ToLower(p.Name), search) {
		return true
	}
	return p.Description != nil && strings.Contains(strings.ToLower(*p.Description), search)
}

// Partition splits products into the featured and regular groups.
// The two groups are disjoint and together cover the input.
func Partition(products []model.Product) (featured, regular []model.Product) {
	featured = make([]model.Product, 0, FeaturedCap)
	regular = make([]model.Product, 0, len(products))
	for _, p := range products {
		if p.Featured {
			featured = append(featured, p)
		} else {
			regular = append(regular, p)
		}
	}
	return featured, regular
}

// DisplayFeatured truncates the featured group to FeaturedCap entries.
func DisplayFeatured(featured []model.Product) []model.Product {
	if len(featured) > FeaturedCap {
		return featured[:FeaturedCap]
	}
	return featured
}

// Facets returns the distinct categories present in the given product
// list, in first-seen order. The gallery offers these as its filter
// options, so a category with no products never appears here even
// though it exists in the categories table.
func Facets(products []model.Product) []string {
	seen := make(map[string]bool, len(products))
	facets := make([]string, 0, len(products))
	for _, p := range products {
		if p.Category == nil || *p.Category == "" {
			continue
		}
		if !seen[*p.Category] {
			seen[*p.Category] = true
			facets = append(facets, *p.Category)
		}
	}
	return facets
}

// FormatPrice renders a price as a dollar amount with two fraction
// digits, e.g. 9.5 -> "$9.50". Any stored numeric value is tolerated;
// rounding follows Go's formatting of the nearest IEEE-754 double.
func FormatPrice(price float64) string {
	return fmt.Sprintf("$%.2f", price)
}

// OrderMessage builds the pre-filled chat message for a product.
func OrderMessage(p model.Product) string {
	return fmt.Sprintf("Hello, I'm interested in the product: %s - %s", p.Name, FormatPrice(p.Price))
}

// OrderLink builds the WhatsApp deep link for ordering a product.
// number is the destination contact in international format without
// the leading plus sign.
func OrderLink(number string, p model.Product) string {
	// QueryEscape uses '+' for spaces; the chat deep link expects
	// percent-encoding throughout.
	encoded := strings.ReplaceAll(url.QueryEscape(OrderMessage(p)), "+", "%20")
	return fmt.Sprintf("https://wa.me/%s?text=%s", number, encoded)
}

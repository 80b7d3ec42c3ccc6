package agent

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	catalogdomain "github.com/smallbiznis/supportly/internal/catalog/domain"
)

const (
	productNotFoundText = "I'm sorry, I couldn't find that product. Product not found"
	productMissingText  = "I'm sorry, I couldn't find that product in our database."
)

func formatSearch(results []catalogdomain.SearchResult, query string) string {
	if len(results) == 0 {
		return fmt.Sprintf("I'm sorry, I couldn't find any products matching '%s'. Could you try a different search?", query)
	}

	lines := []string{fmt.Sprintf("Here are some products that match your search for '%s':", query)}
	for i, product := range results {
		if i == maxListedProducts {
			break
		}
		line := fmt.Sprintf("%d. **%s** by %s - %s", i+1, product.Name, product.BrandName, money(product.EffectivePrice()))
		if product.AvgRating > 0 {
			line += fmt.Sprintf(" (Rating: %s/5)", number(product.AvgRating))
		}
		lines = append(lines, line)
	}
	lines = append(lines, "\nWould you like more details about any of these products? Or would you like to refine your search?")
	return strings.Join(lines, "\n")
}

func formatDetails(details *catalogdomain.ProductDetails) string {
	priceText := money(details.Price)
	if details.IsOnSale && details.SalePrice != nil {
		discount := catalogdomain.DiscountPercent(details.Price, details.SalePrice, true)
		priceText = fmt.Sprintf("%s (%s - %.0f%% off)", money(*details.SalePrice), money(details.Price), discount)
	}

	description := "No description available."
	if details.Description != nil && strings.TrimSpace(*details.Description) != "" {
		description = *details.Description
	}

	lines := []string{
		"# " + details.Name,
		fmt.Sprintf("**Brand**: %s | **Category**: %s", details.BrandName, details.CategoryName),
		"**Price**: " + priceText,
		"",
		description,
		"",
		fmt.Sprintf("**Rating**: %s/5 (%d reviews)", number(details.Reviews.AverageRating), details.Reviews.Count),
	}

	sizes, colors := inStockVariants(details.Inventory)
	if len(sizes) > 0 {
		lines = append(lines, "**Available Sizes**: "+strings.Join(sizes, ", "))
	}
	if len(colors) > 0 {
		lines = append(lines, "**Available Colors**: "+strings.Join(colors, ", "))
	}

	if len(details.RelatedProducts) > 0 {
		lines = append(lines, "\n**You might also like**:")
		for i, related := range details.RelatedProducts {
			if i == maxRelatedSuggestion {
				break
			}
			lines = append(lines, fmt.Sprintf("%d. %s - %s", i+1, related.Name, money(related.EffectivePrice())))
		}
	}

	lines = append(lines, "\nWhat would you like to know about this product? You can ask about sizes, colors, or reviews.")
	return strings.Join(lines, "\n")
}

func formatAvailability(product *catalogdomain.ProductDetail, inventory *catalogdomain.Inventory, size, color string) string {
	name := product.Name
	switch {
	case inventory == nil:
		return fmt.Sprintf("I'm sorry, the %s is not available in size %s and color %s. Would you like to check other sizes or colors?", name, size, color)
	case inventory.Quantity <= 0:
		return fmt.Sprintf("I'm sorry, the %s in size %s and color %s is currently out of stock. Would you like to check other sizes or colors?", name, size, color)
	case inventory.Quantity < 5:
		return fmt.Sprintf("Good news! The %s is available in size %s and color %s, but there are only %d left in stock. Would you like to purchase it?", name, size, color, inventory.Quantity)
	default:
		return fmt.Sprintf("Great news! The %s is available in size %s and color %s. Would you like to add it to your cart?", name, size, color)
	}
}

func formatCategory(products []catalogdomain.CategoryProduct, categoryName string) string {
	if len(products) == 0 {
		return fmt.Sprintf("I'm sorry, I couldn't find any products in the '%s' category. Would you like to browse a different category?", categoryName)
	}

	lines := []string{fmt.Sprintf("Here are some popular products in the '%s' category:", categoryName)}
	for i, product := range products {
		if i == maxListedProducts {
			break
		}
		lines = append(lines, fmt.Sprintf("%d. **%s** by %s - %s", i+1, product.Name, product.BrandName, money(product.EffectivePrice())))
	}
	lines = append(lines, "\nWould you like more details about any of these products? Or would you like to see more products in this category?")
	return strings.Join(lines, "\n")
}

func inStockVariants(items []catalogdomain.Inventory) ([]string, []string) {
	sizes := map[string]struct{}{}
	colors := map[string]struct{}{}
	for _, item := range items {
		if item.Quantity <= 0 {
			continue
		}
		sizes[item.Size] = struct{}{}
		colors[item.Color] = struct{}{}
	}
	return sortedSet(sizes), sortedSet(colors)
}

func sortedSet(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for value := range set {
		out = append(out, value)
	}
	sort.Strings(out)
	return out
}

func money(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

// number renders v with at most two decimals and no trailing zeros.
func number(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}

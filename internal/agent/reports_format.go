package agent

import (
	"fmt"
	"strings"

	catalogdomain "github.com/smallbiznis/supportly/internal/catalog/domain"
)

func formatInventoryReport(r *catalogdomain.InventoryReport) string {
	var b strings.Builder
	b.WriteString("## Inventory Report\n\n")
	b.WriteString("### Summary\n")
	fmt.Fprintf(&b, "- Total Product Models: %d\n", r.TotalProducts)
	fmt.Fprintf(&b, "- Total Inventory Items: %d\n", r.TotalQuantity)
	fmt.Fprintf(&b, "- Total Value: %s\n", money(r.TotalValue))
	fmt.Fprintf(&b, "- Discounted Value: %s\n", money(r.DiscountedValue))
	fmt.Fprintf(&b, "- Total Discount: %s\n\n", money(r.TotalDiscount))

	writeGroups(&b, "Brand Summary", r.BrandSummary)
	writeGroups(&b, "Category Summary", r.CategorySummary)

	if len(r.Products) > 0 {
		shown := min(sampleProducts, len(r.Products))
		fmt.Fprintf(&b, "### Sample Products (showing %d of %d product models)\n", shown, len(r.Products))
		for i, p := range r.Products[:shown] {
			fmt.Fprintf(&b, "%d. **%s** (%s)\n", i+1, p.Name, p.Brand)
			fmt.Fprintf(&b, "   Price: %s", money(p.Price))
			if p.IsOnSale && p.SalePrice != nil {
				fmt.Fprintf(&b, " Sale: %s (%.0f%% off)\n", money(*p.SalePrice), p.DiscountPercentage)
			} else {
				b.WriteString("\n")
			}
			fmt.Fprintf(&b, "   Quantity: %d items | Sizes: %s... | Colors: %s...\n",
				p.TotalQuantity,
				preview(strings.Join(p.AvailableSizes, ", ")),
				preview(strings.Join(p.AvailableColors, ", ")),
			)
		}
	}
	return b.String()
}

func writeGroups(b *strings.Builder, title string, groups []catalogdomain.GroupInventory) {
	if len(groups) == 0 {
		return
	}
	fmt.Fprintf(b, "### %s\n", title)
	for _, g := range groups {
		fmt.Fprintf(b, "- %s: %d product models, %d items, value: %s\n", g.Name, g.Count, g.TotalQuantity, money(g.TotalValue))
	}
	b.WriteString("\n")
}

func formatPriceAnalysis(r *catalogdomain.PriceAnalysis) string {
	var b strings.Builder
	b.WriteString("## Price Analysis Report\n\n")
	b.WriteString("### Discount Summary\n")
	fmt.Fprintf(&b, "- Average Discount: %.1f%%\n", r.DiscountSummary.AverageDiscount)
	fmt.Fprintf(&b, "- Max Discount: %.1f%%\n", r.DiscountSummary.MaxDiscount)
	fmt.Fprintf(&b, "- Products on Sale: %d\n\n", r.DiscountSummary.ProductsOnSale)

	if len(r.PriceRanges) > 0 {
		b.WriteString("### Price Ranges\n")
		for _, pr := range r.PriceRanges {
			fmt.Fprintf(&b, "- %s: %d products\n", pr.Label, pr.Count)
		}
		b.WriteString("\n")
	}

	if len(r.DiscountedProducts) > 0 {
		shown := min(sampleProducts, len(r.DiscountedProducts))
		fmt.Fprintf(&b, "### Top Discounted Products (showing %d of %d products)\n", shown, len(r.DiscountedProducts))
		for i, p := range r.DiscountedProducts[:shown] {
			writeDiscounted(&b, i, p)
		}
	}
	return b.String()
}

func formatMostDiscounted(products []catalogdomain.DiscountedProduct) string {
	var b strings.Builder
	b.WriteString("## Most Discounted Products\n\n")
	if len(products) == 0 {
		b.WriteString("We don't currently have any products on sale.\n")
		return b.String()
	}

	fmt.Fprintf(&b, "Here are our most discounted products (showing %d products):\n\n", len(products))
	for i, p := range products {
		writeDiscounted(&b, i, p)
	}
	return b.String()
}

func writeDiscounted(b *strings.Builder, i int, p catalogdomain.DiscountedProduct) {
	brand := p.BrandName
	if brand == "" {
		brand = "Unknown"
	}
	fmt.Fprintf(b, "%d. **%s** (%s)\n", i+1, p.Name, brand)
	fmt.Fprintf(b, "   Price: %s Sale: %s (%.0f%% off)\n", money(p.Price), money(p.SalePrice), p.DiscountPercentage)
}

func preview(s string) string {
	runes := []rune(s)
	if len(runes) <= variantPreviewLen {
		return s
	}
	return string(runes[:variantPreviewLen])
}

package agent

import (
	"regexp"
	"strconv"
	"strings"
)

// SearchParams are the catalog filters recognised in a free-text query.
type SearchParams struct {
	Query    string   `json:"query,omitempty"`
	PriceMin *float64 `json:"price_min,omitempty"`
	PriceMax *float64 `json:"price_max,omitempty"`
	Color    string   `json:"color,omitempty"`
	Size     string   `json:"size,omitempty"`
}

var (
	brandPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)brand\s*:\s*([a-zA-Z0-9 ]+)`),
		regexp.MustCompile(`(?i)by\s+([a-zA-Z]+)`),
		regexp.MustCompile(`(?i)from\s+([a-zA-Z]+)`),
	}
	priceRangePattern = regexp.MustCompile(`(?i)(?:between|from)\s*\$?(\d+)\s*(?:and|to|-)\s*\$?(\d+)`)
	minPricePattern   = regexp.MustCompile(`(?i)(?:over|above|more than|min|minimum)\s*\$?(\d+)`)
	maxPricePattern   = regexp.MustCompile(`(?i)(?:under|below|less than|max|maximum)\s*\$?(\d+)`)
	colorPattern      = regexp.MustCompile(`(?i)(?:color|colour)\s*:\s*([a-zA-Z]+)|([a-zA-Z]+)\s+(?:color|colour)s?`)
	sizePattern       = regexp.MustCompile(`(?i)(?:size)\s*:\s*([a-zA-Z0-9.]+)|size\s+([a-zA-Z0-9.]+)`)
)

// ExtractSearchParams pulls brand, price, color and size hints out of text.
// When no brand is named, the text minus the recognised fragments becomes the
// query.
func ExtractSearchParams(text string) SearchParams {
	var params SearchParams
	brandFound := false

	for _, pattern := range brandPatterns {
		if m := pattern.FindStringSubmatch(text); m != nil {
			params.Query = strings.TrimSpace(m[1])
			brandFound = true
			break
		}
	}

	if m := priceRangePattern.FindStringSubmatch(text); m != nil {
		params.PriceMin = parsePrice(m[1])
		params.PriceMax = parsePrice(m[2])
	} else {
		if m := minPricePattern.FindStringSubmatch(text); m != nil {
			params.PriceMin = parsePrice(m[1])
		}
		if m := maxPricePattern.FindStringSubmatch(text); m != nil {
			params.PriceMax = parsePrice(m[1])
		}
	}

	if m := colorPattern.FindStringSubmatch(text); m != nil {
		params.Color = strings.TrimSpace(firstGroup(m))
	}
	if m := sizePattern.FindStringSubmatch(text); m != nil {
		params.Size = strings.TrimSpace(firstGroup(m))
	}

	if !brandFound {
		clean := text
		if params.PriceMin != nil {
			clean = minPricePattern.ReplaceAllString(clean, "")
		}
		if params.PriceMax != nil {
			clean = maxPricePattern.ReplaceAllString(clean, "")
		}
		if params.Color != "" {
			clean = colorPattern.ReplaceAllString(clean, "")
		}
		if params.Size != "" {
			clean = sizePattern.ReplaceAllString(clean, "")
		}
		clean = priceRangePattern.ReplaceAllString(clean, "")
		params.Query = strings.Join(strings.Fields(clean), " ")
	}

	return params
}

func firstGroup(m []string) string {
	for _, group := range m[1:] {
		if group != "" {
			return group
		}
	}
	return ""
}

func parsePrice(raw string) *float64 {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}

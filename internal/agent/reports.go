package agent

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	catalogdomain "github.com/smallbiznis/supportly/internal/catalog/domain"
	llmdomain "github.com/smallbiznis/supportly/internal/llm/domain"
	"go.uber.org/zap"
)

const (
	ReportInventory      = "inventory"
	ReportPriceAnalysis  = "price_analysis"
	ReportMostDiscounted = "most_discounted"
)

const (
	defaultDiscountedLimit = 5
	maxDiscountedLimit     = 50
	sampleProducts         = 5
	variantPreviewLen      = 30
)

var (
	pricingPattern   = regexp.MustCompile(`(?i)price analysis|pricing|price ranges?`)
	discountPattern  = regexp.MustCompile(`(?i)\b(discount\w*|deals?|on sale|sale)\b`)
	percentPattern   = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*%`)
	topNPattern      = regexp.MustCompile(`(?i)\b(?:top|first|best)\s+(\d+)`)
	fallbackSuggests = []string{"Show inventory report", "Show price analysis", "What are your most discounted products?"}
)

// ReportRequest is the report type and filters resolved from a message.
type ReportRequest struct {
	Type               string  `json:"report_type"`
	CategoryID         *int64  `json:"category_id,omitempty"`
	BrandID            *int64  `json:"brand_id,omitempty"`
	MinDiscountPercent float64 `json:"min_discount_percent,omitempty"`
	Limit              int     `json:"limit,omitempty"`
}

type Report struct {
	Request     ReportRequest `json:"request"`
	Data        any           `json:"data,omitempty"`
	Response    string        `json:"response"`
	Suggestions []string      `json:"suggestions"`
}

// ReportsAgent produces inventory and pricing reports for store staff.
type ReportsAgent struct {
	catalog catalogdomain.Service
	llm     llmdomain.Client
	log     *zap.Logger
}

func NewReportsAgent(p Params) *ReportsAgent {
	return &ReportsAgent{
		catalog: p.Catalog,
		llm:     p.LLM,
		log:     p.Log.Named("agent.reports"),
	}
}

// Respond never fails: errors become apologetic text.
func (a *ReportsAgent) Respond(ctx context.Context, text string) *Report {
	req, err := a.ParseRequest(ctx, text)
	if err != nil {
		a.log.Error("resolve report request failed", zap.Error(err))
		return a.fallback(ctx, text)
	}

	report := &Report{Request: req, Suggestions: reportSuggestions(req.Type)}
	data, err := a.generate(ctx, req)
	if err != nil {
		a.log.Error("generate report failed", zap.String("report_type", req.Type), zap.Error(err))
		report.Response = "I'm sorry, but I encountered an error while generating the report: " + reportErrorReason(err)
		return report
	}

	report.Data = data
	switch v := data.(type) {
	case *catalogdomain.InventoryReport:
		report.Response = formatInventoryReport(v)
	case *catalogdomain.PriceAnalysis:
		report.Response = formatPriceAnalysis(v)
	case []catalogdomain.DiscountedProduct:
		report.Response = formatMostDiscounted(v)
	}
	return report
}

// ParseRequest picks the report type from keywords and resolves brand and
// category names mentioned in text.
func (a *ReportsAgent) ParseRequest(ctx context.Context, text string) (ReportRequest, error) {
	req := ReportRequest{Type: DetectReportType(text)}
	lowered := strings.ToLower(text)

	categories, err := a.catalog.ListCategories(ctx)
	if err != nil {
		return req, err
	}
	if category := longestCategoryMatch(lowered, categories); category != nil {
		req.CategoryID = &category.ID
	}

	switch req.Type {
	case ReportInventory:
		brands, err := a.catalog.ListBrands(ctx)
		if err != nil {
			return req, err
		}
		if brand := longestBrandMatch(lowered, brands); brand != nil {
			req.BrandID = &brand.ID
		}
	case ReportPriceAnalysis:
		if m := percentPattern.FindStringSubmatch(text); m != nil {
			if v, err := strconv.ParseFloat(m[1], 64); err == nil && v <= 100 {
				req.MinDiscountPercent = v
			}
		}
	case ReportMostDiscounted:
		req.Limit = defaultDiscountedLimit
		if m := topNPattern.FindStringSubmatch(text); m != nil {
			if v, err := strconv.Atoi(m[1]); err == nil && v > 0 {
				req.Limit = min(v, maxDiscountedLimit)
			}
		}
	}
	return req, nil
}

// DetectReportType defaults to the inventory report.
func DetectReportType(text string) string {
	switch {
	case pricingPattern.MatchString(text):
		return ReportPriceAnalysis
	case discountPattern.MatchString(text):
		return ReportMostDiscounted
	default:
		return ReportInventory
	}
}

func (a *ReportsAgent) generate(ctx context.Context, req ReportRequest) (any, error) {
	switch req.Type {
	case ReportInventory:
		return a.catalog.InventoryReport(ctx, catalogdomain.InventoryReportFilter{
			CategoryID: req.CategoryID,
			BrandID:    req.BrandID,
		})
	case ReportPriceAnalysis:
		return a.catalog.PriceAnalysis(ctx, catalogdomain.PriceAnalysisFilter{
			MinDiscountPercent: req.MinDiscountPercent,
			CategoryID:         req.CategoryID,
		})
	case ReportMostDiscounted:
		return a.catalog.MostDiscounted(ctx, catalogdomain.MostDiscountedFilter{
			Limit:      req.Limit,
			CategoryID: req.CategoryID,
		})
	}
	return nil, fmt.Errorf("unknown report type: %s", req.Type)
}

func (a *ReportsAgent) fallback(ctx context.Context, text string) *Report {
	report := &Report{
		Request:     ReportRequest{Type: DetectReportType(text)},
		Response:    "I'm sorry, I couldn't generate that report right now. Is there anything else I can help you with?",
		Suggestions: fallbackSuggests,
	}
	if a.llm == nil {
		return report
	}

	prompt := strings.Join([]string{
		"You are a helpful customer support bot for our shoe store.",
		"You need to provide reports about our inventory and products.",
		"An error occurred while trying to generate the report.",
		"Apologize for this error and offer general assistance.",
		"---",
		"User message: " + text,
		"---",
	}, "\n")
	out, err := a.llm.Complete(ctx, prompt)
	if err != nil {
		a.log.Warn("report fallback completion failed", zap.Error(err))
		return report
	}
	report.Response = out
	return report
}

func reportSuggestions(reportType string) []string {
	switch reportType {
	case ReportInventory:
		return []string{"Show me a price analysis report", "What are your most discounted products?", "Show me Nike inventory only"}
	case ReportPriceAnalysis:
		return []string{"Show me inventory report", "What are your most discounted products?", "Show price analysis for running shoes"}
	case ReportMostDiscounted:
		return []string{"Show me inventory report", "Show me a price analysis report", "Tell me more about the first product"}
	}
	return fallbackSuggests
}

func reportErrorReason(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "the request timed out"
	case errors.Is(err, catalogdomain.ErrInvalidSearchFilter):
		return "the report filters are not valid"
	default:
		return "the report data is unavailable right now"
	}
}

func longestCategoryMatch(text string, categories []catalogdomain.Category) *catalogdomain.Category {
	var best *catalogdomain.Category
	for i := range categories {
		name := strings.ToLower(categories[i].Name)
		if !containsWord(text, name) {
			continue
		}
		if best == nil || len(name) > len(best.Name) {
			best = &categories[i]
		}
	}
	return best
}

func longestBrandMatch(text string, brands []catalogdomain.Brand) *catalogdomain.Brand {
	var best *catalogdomain.Brand
	for i := range brands {
		name := strings.ToLower(brands[i].Name)
		if !containsWord(text, name) {
			continue
		}
		if best == nil || len(name) > len(best.Name) {
			best = &brands[i]
		}
	}
	return best
}

// containsWord matches needle in text on word boundaries.
func containsWord(text, needle string) bool {
	if strings.TrimSpace(needle) == "" {
		return false
	}
	pattern := `\b` + regexp.QuoteMeta(needle) + `\b`
	matched, err := regexp.MatchString(pattern, text)
	return err == nil && matched
}

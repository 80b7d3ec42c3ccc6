package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	catalogdomain "github.com/smallbiznis/supportly/internal/catalog/domain"
)

type searchProductsRequest struct {
	Query string `json:"query"`
}

type productDetailsRequest struct {
	ProductID string `json:"product_id"`
}

type availabilityRequest struct {
	ProductID string `json:"product_id"`
	Size      string `json:"size"`
	Color     string `json:"color"`
}

type categoryProductsRequest struct {
	CategoryName string `json:"category_name"`
}

type agentResponse struct {
	Response string `json:"response"`
	Data     gin.H  `json:"data"`
}

func (s *Server) SearchProducts(c *gin.Context) {
	var req searchProductsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	query := strings.TrimSpace(req.Query)
	if query == "" {
		AbortWithError(c, newValidationError("query", "required", "query is required"))
		return
	}

	result, err := s.products.Search(c.Request.Context(), query)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, agentResponse{
		Response: result.Response,
		Data:     gin.H{"results": result.Data.Results},
	})
}

func (s *Server) ProductDetails(c *gin.Context) {
	var req productDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	productID := strings.TrimSpace(req.ProductID)
	if productID == "" {
		AbortWithError(c, newValidationError("product_id", "required", "product_id is required"))
		return
	}

	result, err := s.products.Details(c.Request.Context(), productID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	details := gin.H{}
	if result.Data != nil {
		details = gin.H{"details": result.Data}
	}
	c.JSON(http.StatusOK, agentResponse{Response: result.Response, Data: details})
}

func (s *Server) ProductAvailability(c *gin.Context) {
	var req availabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.ProductID = strings.TrimSpace(req.ProductID)
	req.Size = strings.TrimSpace(req.Size)
	req.Color = strings.TrimSpace(req.Color)
	switch {
	case req.ProductID == "":
		AbortWithError(c, newValidationError("product_id", "required", "product_id is required"))
		return
	case req.Size == "":
		AbortWithError(c, newValidationError("size", "required", "size is required"))
		return
	case req.Color == "":
		AbortWithError(c, newValidationError("color", "required", "color is required"))
		return
	}

	result, err := s.products.Availability(c.Request.Context(), req.ProductID, req.Size, req.Color)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, agentResponse{
		Response: result.Response,
		Data: gin.H{
			"available": result.Data.Available,
			"product":   result.Data.Product,
			"inventory": result.Data.Inventory,
		},
	})
}

func (s *Server) CategoryProducts(c *gin.Context) {
	var req categoryProductsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	name := strings.TrimSpace(req.CategoryName)
	if name == "" {
		AbortWithError(c, newValidationError("category_name", "required", "category_name is required"))
		return
	}

	result, err := s.products.CategoryProducts(c.Request.Context(), name)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, agentResponse{
		Response: result.Response,
		Data:     gin.H{"products": result.Data},
	})
}

func (s *Server) RawSearch(c *gin.Context) {
	var query struct {
		Query      string `form:"query"`
		CategoryID string `form:"category_id"`
		BrandID    string `form:"brand_id"`
		PriceMin   string `form:"price_min"`
		PriceMax   string `form:"price_max"`
		Size       string `form:"size"`
		Color      string `form:"color"`
		Limit      string `form:"limit"`
		Offset     string `form:"offset"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	categoryID, err := parseOptionalInt64(query.CategoryID)
	if err != nil {
		AbortWithError(c, newValidationError("category_id", "invalid_category_id", "invalid category_id"))
		return
	}
	brandID, err := parseOptionalInt64(query.BrandID)
	if err != nil {
		AbortWithError(c, newValidationError("brand_id", "invalid_brand_id", "invalid brand_id"))
		return
	}
	priceMin, err := parseOptionalFloat(query.PriceMin)
	if err != nil {
		AbortWithError(c, newValidationError("price_min", "invalid_price_min", "invalid price_min"))
		return
	}
	priceMax, err := parseOptionalFloat(query.PriceMax)
	if err != nil {
		AbortWithError(c, newValidationError("price_max", "invalid_price_max", "invalid price_max"))
		return
	}
	limit, err := parseBoundedInt(query.Limit, 10, 1, 100)
	if err != nil {
		AbortWithError(c, newValidationError("limit", "invalid_limit", "limit must be between 1 and 100"))
		return
	}
	offset, err := parseBoundedInt(query.Offset, 0, 0, int(^uint32(0)>>1))
	if err != nil {
		AbortWithError(c, newValidationError("offset", "invalid_offset", "offset must not be negative"))
		return
	}

	items, err := s.catalogSvc.Search(c.Request.Context(), catalogdomain.SearchFilter{
		Query:      strings.TrimSpace(query.Query),
		CategoryID: categoryID,
		BrandID:    brandID,
		PriceMin:   priceMin,
		PriceMax:   priceMax,
		Size:       strings.TrimSpace(query.Size),
		Color:      strings.TrimSpace(query.Color),
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": items})
}

func (s *Server) RawProduct(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.catalogSvc.GetProductDetails(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) RawCategoryProducts(c *gin.Context) {
	var query struct {
		IncludeSubcategories string `form:"include_subcategories"`
		Limit                string `form:"limit"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	include, err := parseOptionalBool(query.IncludeSubcategories)
	if err != nil {
		AbortWithError(c, newValidationError("include_subcategories", "invalid_include_subcategories", "invalid include_subcategories"))
		return
	}
	limit, err := parseBoundedInt(query.Limit, 10, 1, 100)
	if err != nil {
		AbortWithError(c, newValidationError("limit", "invalid_limit", "limit must be between 1 and 100"))
		return
	}

	req := catalogdomain.CategoryProductsRequest{
		CategoryName:         strings.TrimSpace(c.Param("name")),
		IncludeSubcategories: true,
		Limit:                limit,
	}
	if include != nil {
		req.IncludeSubcategories = *include
	}

	items, err := s.catalogSvc.GetCategoryProducts(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": items})
}

func (s *Server) ListBrands(c *gin.Context) {
	items, err := s.catalogSvc.ListBrands(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": items})
}

func (s *Server) ListCategories(c *gin.Context) {
	items, err := s.catalogSvc.ListCategories(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": items})
}

package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	catalogdomain "github.com/smallbiznis/supportly/internal/catalog/domain"
)

// bindCatalogWrite decodes the JSON body into T, aborting with a request
// validation error when it does not decode.
func bindCatalogWrite[T any](c *gin.Context) (T, bool) {
	var req T
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return req, false
	}
	return req, true
}

func (s *Server) CreateBrand(c *gin.Context) {
	req, ok := bindCatalogWrite[catalogdomain.CreateBrandRequest](c)
	if !ok {
		return
	}

	brand, err := s.catalogSvc.CreateBrand(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": brand})
}

func (s *Server) CreateCategory(c *gin.Context) {
	req, ok := bindCatalogWrite[catalogdomain.CreateCategoryRequest](c)
	if !ok {
		return
	}

	category, err := s.catalogSvc.CreateCategory(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": category})
}

func (s *Server) CreateProduct(c *gin.Context) {
	req, ok := bindCatalogWrite[catalogdomain.CreateProductRequest](c)
	if !ok {
		return
	}

	product, err := s.catalogSvc.CreateProduct(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": product})
}

func (s *Server) AddInventory(c *gin.Context) {
	req, ok := bindCatalogWrite[catalogdomain.SetInventoryRequest](c)
	if !ok {
		return
	}

	item, err := s.catalogSvc.AddInventory(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": item})
}

// UpdateStock sets the quantity of an existing inventory row.
func (s *Server) UpdateStock(c *gin.Context) {
	req, ok := bindCatalogWrite[catalogdomain.SetInventoryRequest](c)
	if !ok {
		return
	}

	item, err := s.catalogSvc.UpdateStock(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": item})
}

func (s *Server) AddReview(c *gin.Context) {
	req, ok := bindCatalogWrite[catalogdomain.AddReviewRequest](c)
	if !ok {
		return
	}

	review, err := s.catalogSvc.AddReview(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": review})
}

func (s *Server) RelateProducts(c *gin.Context) {
	req, ok := bindCatalogWrite[catalogdomain.RelateProductsRequest](c)
	if !ok {
		return
	}

	relation, err := s.catalogSvc.RelateProducts(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": relation})
}

func (s *Server) RefreshSearchView(c *gin.Context) {
	if err := s.catalogSvc.RefreshSearchView(c.Request.Context()); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

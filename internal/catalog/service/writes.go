package service

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/smallbiznis/supportly/internal/catalog/domain"
	pkgdb "github.com/smallbiznis/supportly/pkg/db"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

func (s *Service) CreateBrand(ctx context.Context, req domain.CreateBrandRequest) (*domain.Brand, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}

	now := s.clock.Now()
	brand := &domain.Brand{
		Name:        name,
		Slug:        slugPtr(name),
		Description: trimmedPtr(req.Description),
		LogoURL:     trimmedPtr(req.LogoURL),
		WebsiteURL:  trimmedPtr(req.WebsiteURL),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.CreateBrand(ctx, s.db, brand); err != nil {
		if pkgdb.IsDuplicateKeyErr(err) {
			return nil, domain.ErrDuplicateBrand
		}
		return nil, err
	}
	s.cache.Invalidate()
	return brand, nil
}

func (s *Service) CreateCategory(ctx context.Context, req domain.CreateCategoryRequest) (*domain.Category, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}
	if req.ParentID != nil && *req.ParentID <= 0 {
		return nil, domain.ErrInvalidCategory
	}

	now := s.clock.Now()
	category := &domain.Category{
		Name:        name,
		Slug:        slugPtr(name),
		Description: trimmedPtr(req.Description),
		ParentID:    req.ParentID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.CreateCategory(ctx, s.db, category); err != nil {
		switch {
		case pkgdb.IsDuplicateKeyErr(err):
			return nil, domain.ErrDuplicateCategory
		case pkgdb.IsForeignKeyErr(err):
			return nil, domain.ErrInvalidCategory
		}
		return nil, err
	}
	s.cache.Invalidate()
	return category, nil
}

func (s *Service) CreateProduct(ctx context.Context, req domain.CreateProductRequest) (*domain.Product, error) {
	id := strings.TrimSpace(req.ID)
	if id == "" {
		id = uuid.NewString()
	} else {
		parsed, err := parseProductID(id)
		if err != nil {
			return nil, err
		}
		id = parsed
	}

	sku := strings.TrimSpace(req.SKU)
	if sku == "" {
		return nil, domain.ErrInvalidSKU
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}
	if req.BrandID <= 0 {
		return nil, domain.ErrInvalidBrand
	}
	if req.CategoryID <= 0 {
		return nil, domain.ErrInvalidCategory
	}
	if req.Price < 0 {
		return nil, domain.ErrInvalidPrice
	}
	if req.SalePrice != nil && (*req.SalePrice < 0 || *req.SalePrice > req.Price) {
		return nil, domain.ErrInvalidSalePrice
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	attributes, err := jsonOrDefault(req.Attributes, "{}")
	if err != nil {
		return nil, err
	}
	images, err := jsonOrDefault(req.Images, "[]")
	if err != nil {
		return nil, err
	}
	metadata, err := jsonOrDefault(req.Metadata, "{}")
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	product := &domain.Product{
		ID:          id,
		SKU:         sku,
		Name:        name,
		Description: trimmedPtr(req.Description),
		BrandID:     req.BrandID,
		CategoryID:  req.CategoryID,
		Price:       req.Price,
		SalePrice:   req.SalePrice,
		IsOnSale:    req.IsOnSale,
		IsFeatured:  req.IsFeatured,
		IsActive:    active,
		Attributes:  attributes,
		Images:      images,
		Metadata:    metadata,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.CreateProduct(ctx, s.db, product); err != nil {
		switch {
		case pkgdb.IsDuplicateKeyErr(err):
			return nil, domain.ErrDuplicateSKU
		case pkgdb.IsForeignKeyErr(err):
			return nil, domain.ErrInvalidBrand
		case pkgdb.IsCheckViolationErr(err):
			return nil, domain.ErrInvalidPrice
		}
		return nil, err
	}
	return product, nil
}

func (s *Service) AddInventory(ctx context.Context, req domain.SetInventoryRequest) (*domain.Inventory, error) {
	item, err := s.inventoryFromRequest(req)
	if err != nil {
		return nil, err
	}
	if err := s.repo.CreateInventory(ctx, s.db, item); err != nil {
		switch {
		case pkgdb.IsDuplicateKeyErr(err):
			return nil, domain.ErrDuplicateInventory
		case pkgdb.IsForeignKeyErr(err):
			return nil, domain.ErrNotFound
		case pkgdb.IsCheckViolationErr(err):
			return nil, domain.ErrInvalidQuantity
		}
		return nil, err
	}
	return item, nil
}

// UpdateStock sets the quantity of an existing (product, size, color) row.
func (s *Service) UpdateStock(ctx context.Context, req domain.SetInventoryRequest) (*domain.Inventory, error) {
	target, err := s.inventoryFromRequest(req)
	if err != nil {
		return nil, err
	}

	item, err := s.repo.FindInventory(ctx, s.db, target.ProductID, target.Size, target.Color)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}

	if err := s.repo.UpdateInventoryQuantity(ctx, s.db, item.ID, target.Quantity); err != nil {
		if pkgdb.IsCheckViolationErr(err) {
			return nil, domain.ErrInvalidQuantity
		}
		return nil, err
	}
	s.log.Debug("stock updated",
		zap.String("product_id", item.ProductID),
		zap.String("size", item.Size),
		zap.String("color", item.Color),
		zap.Int("from", item.Quantity),
		zap.Int("to", target.Quantity),
	)
	item.Quantity = target.Quantity
	item.UpdatedAt = s.clock.Now()
	return item, nil
}

func (s *Service) AddReview(ctx context.Context, req domain.AddReviewRequest) (*domain.Review, error) {
	productID, err := parseProductID(req.ProductID)
	if err != nil {
		return nil, err
	}
	if req.Rating < 1 || req.Rating > 5 {
		return nil, domain.ErrInvalidRating
	}
	metadata, err := jsonOrDefault(req.Metadata, "{}")
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	review := &domain.Review{
		ProductID:        productID,
		CustomerName:     trimmedPtr(req.CustomerName),
		Rating:           req.Rating,
		ReviewText:       trimmedPtr(req.ReviewText),
		VerifiedPurchase: req.VerifiedPurchase,
		Metadata:         metadata,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.repo.CreateReview(ctx, s.db, review); err != nil {
		switch {
		case pkgdb.IsCheckViolationErr(err):
			return nil, domain.ErrInvalidRating
		case pkgdb.IsForeignKeyErr(err):
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return review, nil
}

func (s *Service) RelateProducts(ctx context.Context, req domain.RelateProductsRequest) (*domain.ProductRelation, error) {
	productID, err := parseProductID(req.ProductID)
	if err != nil {
		return nil, err
	}
	relatedID, err := parseProductID(req.RelatedProductID)
	if err != nil {
		return nil, err
	}
	if productID == relatedID {
		return nil, domain.ErrInvalidRelation
	}
	relationType := strings.TrimSpace(req.RelationType)
	if !validRelationType(relationType) {
		return nil, domain.ErrInvalidRelation
	}

	relation := &domain.ProductRelation{
		ProductID:        productID,
		RelatedProductID: relatedID,
		RelationType:     relationType,
		CreatedAt:        s.clock.Now(),
	}
	if err := s.repo.CreateRelation(ctx, s.db, relation); err != nil {
		switch {
		case pkgdb.IsDuplicateKeyErr(err):
			return nil, domain.ErrDuplicateRelation
		case pkgdb.IsCheckViolationErr(err):
			return nil, domain.ErrInvalidRelation
		case pkgdb.IsForeignKeyErr(err):
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return relation, nil
}

func (s *Service) inventoryFromRequest(req domain.SetInventoryRequest) (*domain.Inventory, error) {
	productID, err := parseProductID(req.ProductID)
	if err != nil {
		return nil, err
	}
	size := strings.TrimSpace(req.Size)
	if size == "" {
		return nil, domain.ErrInvalidSize
	}
	color := strings.TrimSpace(req.Color)
	if color == "" {
		return nil, domain.ErrInvalidColor
	}
	if req.Quantity < 0 {
		return nil, domain.ErrInvalidQuantity
	}
	location, err := jsonOrDefault(req.LocationData, "{}")
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	return &domain.Inventory{
		ProductID:    productID,
		Size:         size,
		Color:        color,
		Quantity:     req.Quantity,
		LocationData: location,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

func validRelationType(value string) bool {
	switch value {
	case domain.RelationSimilar, domain.RelationAlternative, domain.RelationAccessory, domain.RelationRecommendedWith:
		return true
	}
	return false
}

func jsonOrDefault[T any](value T, fallback string) (datatypes.JSON, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	if string(raw) == "null" {
		return datatypes.JSON(fallback), nil
	}
	return datatypes.JSON(raw), nil
}

func trimmedPtr(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func slugPtr(name string) *string {
	value := slug.Make(name)
	if value == "" {
		return nil
	}
	return &value
}

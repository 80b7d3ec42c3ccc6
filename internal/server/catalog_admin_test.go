package server

import (
	"context"
	"net/http"
	"testing"

	catalogdomain "github.com/smallbiznis/supportly/internal/catalog/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (f *fakeCatalogService) CreateBrand(ctx context.Context, req catalogdomain.CreateBrandRequest) (*catalogdomain.Brand, error) {
	_ = ctx
	f.lastWrite = req
	if f.writeErr != nil {
		return nil, f.writeErr
	}
	return &catalogdomain.Brand{ID: 13, Name: req.Name}, nil
}

func (f *fakeCatalogService) CreateCategory(ctx context.Context, req catalogdomain.CreateCategoryRequest) (*catalogdomain.Category, error) {
	_ = ctx
	f.lastWrite = req
	if f.writeErr != nil {
		return nil, f.writeErr
	}
	return &catalogdomain.Category{ID: 27, Name: req.Name, ParentID: req.ParentID}, nil
}

func (f *fakeCatalogService) CreateProduct(ctx context.Context, req catalogdomain.CreateProductRequest) (*catalogdomain.Product, error) {
	_ = ctx
	f.lastWrite = req
	if f.writeErr != nil {
		return nil, f.writeErr
	}
	return &catalogdomain.Product{ID: testProductID, SKU: req.SKU, Name: req.Name, Price: req.Price}, nil
}

func (f *fakeCatalogService) AddInventory(ctx context.Context, req catalogdomain.SetInventoryRequest) (*catalogdomain.Inventory, error) {
	_ = ctx
	f.lastWrite = req
	if f.writeErr != nil {
		return nil, f.writeErr
	}
	return &catalogdomain.Inventory{ID: 1, ProductID: req.ProductID, Size: req.Size, Color: req.Color, Quantity: req.Quantity}, nil
}

func (f *fakeCatalogService) UpdateStock(ctx context.Context, req catalogdomain.SetInventoryRequest) (*catalogdomain.Inventory, error) {
	_ = ctx
	f.lastWrite = req
	if f.writeErr != nil {
		return nil, f.writeErr
	}
	return &catalogdomain.Inventory{ID: 1, ProductID: req.ProductID, Size: req.Size, Color: req.Color, Quantity: req.Quantity}, nil
}

func (f *fakeCatalogService) AddReview(ctx context.Context, req catalogdomain.AddReviewRequest) (*catalogdomain.Review, error) {
	_ = ctx
	f.lastWrite = req
	if f.writeErr != nil {
		return nil, f.writeErr
	}
	return &catalogdomain.Review{ID: 5, ProductID: req.ProductID, Rating: req.Rating}, nil
}

func (f *fakeCatalogService) RelateProducts(ctx context.Context, req catalogdomain.RelateProductsRequest) (*catalogdomain.ProductRelation, error) {
	_ = ctx
	f.lastWrite = req
	if f.writeErr != nil {
		return nil, f.writeErr
	}
	return &catalogdomain.ProductRelation{ID: 9, ProductID: req.ProductID, RelatedProductID: req.RelatedProductID, RelationType: req.RelationType}, nil
}

func (f *fakeCatalogService) RefreshSearchView(ctx context.Context) error {
	_ = ctx
	f.refreshes++
	return f.writeErr
}

func TestCatalogWrites(t *testing.T) {
	relatedID := "5c1d2e3f-4a5b-4c6d-8e7f-9a0b1c2d3e4f"

	cases := []struct {
		name   string
		method string
		path   string
		body   string
		status int
		want   any
	}{
		{
			name:   "brand",
			method: http.MethodPost,
			path:   "/products/raw/brands",
			body:   `{"name":"Hoka","website_url":"https://www.hoka.com"}`,
			status: http.StatusCreated,
			want:   catalogdomain.CreateBrandRequest{Name: "Hoka", WebsiteURL: ptrTo("https://www.hoka.com")},
		},
		{
			name:   "category",
			method: http.MethodPost,
			path:   "/products/raw/categories",
			body:   `{"name":"Trail","parent_id":4}`,
			status: http.StatusCreated,
			want:   catalogdomain.CreateCategoryRequest{Name: "Trail", ParentID: ptrTo(int64(4))},
		},
		{
			name:   "product",
			method: http.MethodPost,
			path:   "/products/raw/product",
			body:   `{"sku":"HOKA-27-0001","name":"Hoka Speedgoat","brand_id":13,"category_id":27,"price":155}`,
			status: http.StatusCreated,
			want: catalogdomain.CreateProductRequest{
				SKU: "HOKA-27-0001", Name: "Hoka Speedgoat", BrandID: 13, CategoryID: 27, Price: 155,
			},
		},
		{
			name:   "inventory",
			method: http.MethodPost,
			path:   "/products/raw/inventory",
			body:   `{"product_id":"` + testProductID + `","size":"10","color":"Black","quantity":4}`,
			status: http.StatusCreated,
			want:   catalogdomain.SetInventoryRequest{ProductID: testProductID, Size: "10", Color: "Black", Quantity: 4},
		},
		{
			name:   "stock update",
			method: http.MethodPut,
			path:   "/products/raw/inventory",
			body:   `{"product_id":"` + testProductID + `","size":"10","color":"Black","quantity":0}`,
			status: http.StatusOK,
			want:   catalogdomain.SetInventoryRequest{ProductID: testProductID, Size: "10", Color: "Black"},
		},
		{
			name:   "review",
			method: http.MethodPost,
			path:   "/products/raw/reviews",
			body:   `{"product_id":"` + testProductID + `","rating":5,"verified_purchase":true}`,
			status: http.StatusCreated,
			want:   catalogdomain.AddReviewRequest{ProductID: testProductID, Rating: 5, VerifiedPurchase: true},
		},
		{
			name:   "relation",
			method: http.MethodPost,
			path:   "/products/raw/relations",
			body:   `{"product_id":"` + testProductID + `","related_product_id":"` + relatedID + `","relation_type":"similar"}`,
			status: http.StatusCreated,
			want:   catalogdomain.RelateProductsRequest{ProductID: testProductID, RelatedProductID: relatedID, RelationType: "similar"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ts := newTestServer(t)

			resp := ts.do(tc.method, tc.path, tc.body)
			require.Equal(t, tc.status, resp.Code, resp.Body.String())
			assert.Equal(t, tc.want, ts.catalog.lastWrite)

			body := decodeBody(t, resp)
			assert.NotNil(t, body["data"])
		})
	}
}

func TestCatalogWriteErrors(t *testing.T) {
	cases := []struct {
		name   string
		method string
		path   string
		body   string
		err    error
		status int
		typ    string
		field  string
		code   string
	}{
		{
			name: "duplicate brand", method: http.MethodPost, path: "/products/raw/brands", body: `{"name":"Nike"}`,
			err: catalogdomain.ErrDuplicateBrand, status: http.StatusConflict, typ: "conflict",
		},
		{
			name: "duplicate sku", method: http.MethodPost, path: "/products/raw/product", body: `{"sku":"NIKE-06-0001","name":"Pegasus"}`,
			err: catalogdomain.ErrDuplicateSKU, status: http.StatusConflict, typ: "conflict",
		},
		{
			name: "duplicate inventory", method: http.MethodPost, path: "/products/raw/inventory", body: `{"size":"10","color":"Black"}`,
			err: catalogdomain.ErrDuplicateInventory, status: http.StatusConflict, typ: "conflict",
		},
		{
			name: "duplicate relation", method: http.MethodPost, path: "/products/raw/relations", body: `{"relation_type":"similar"}`,
			err: catalogdomain.ErrDuplicateRelation, status: http.StatusConflict, typ: "conflict",
		},
		{
			name: "blank category name", method: http.MethodPost, path: "/products/raw/categories", body: `{"name":" "}`,
			err: catalogdomain.ErrInvalidName, status: http.StatusBadRequest, typ: "validation_error", field: "name", code: "invalid_name",
		},
		{
			name: "sale above price", method: http.MethodPost, path: "/products/raw/product", body: `{"price":50,"sale_price":80}`,
			err: catalogdomain.ErrInvalidSalePrice, status: http.StatusBadRequest, typ: "validation_error", field: "sale_price", code: "invalid_sale_price",
		},
		{
			name: "rating out of range", method: http.MethodPost, path: "/products/raw/reviews", body: `{"rating":6}`,
			err: catalogdomain.ErrInvalidRating, status: http.StatusBadRequest, typ: "validation_error", field: "rating", code: "invalid_rating",
		},
		{
			name: "negative stock", method: http.MethodPut, path: "/products/raw/inventory", body: `{"quantity":-1}`,
			err: catalogdomain.ErrInvalidQuantity, status: http.StatusBadRequest, typ: "validation_error", field: "quantity", code: "invalid_quantity",
		},
		{
			name: "unknown inventory row", method: http.MethodPut, path: "/products/raw/inventory", body: `{"size":"15","color":"Gold"}`,
			err: catalogdomain.ErrNotFound, status: http.StatusNotFound, typ: "not_found",
		},
		{
			name: "malformed body", method: http.MethodPost, path: "/products/raw/reviews", body: `{"rating":"five"}`,
			status: http.StatusBadRequest, typ: "validation_error", field: "request", code: "invalid_request",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ts := newTestServer(t)
			ts.catalog.writeErr = tc.err

			resp := ts.do(tc.method, tc.path, tc.body)
			require.Equal(t, tc.status, resp.Code, resp.Body.String())

			payload := decodeBody(t, resp)["error"].(map[string]any)
			assert.Equal(t, tc.typ, payload["type"])
			if tc.code == "" {
				return
			}
			errs := payload["errors"].([]any)
			require.Len(t, errs, 1)
			assert.Equal(t, tc.field, errs[0].(map[string]any)["field"])
			assert.Equal(t, tc.code, errs[0].(map[string]any)["code"])
		})
	}
}

func TestRefreshSearchView(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.do(http.MethodPost, "/products/raw/refresh", "")
	assert.Equal(t, http.StatusNoContent, resp.Code)
	assert.Equal(t, 1, ts.catalog.refreshes)
	assert.Empty(t, resp.Body.String())
}

func ptrTo[T any](v T) *T { return &v }

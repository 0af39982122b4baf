package catalog

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/erp/backoffice/internal/application/validation"
	"github.com/erp/backoffice/internal/domain/catalog"
	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/erp/backoffice/internal/infrastructure/logger"
)

// Product types understood by the accounting service.
const (
	ProductTypeInventoryItem = "InventoryItem"
	ProductTypeService       = "Service"
	ProductTypeWork          = "Work"
)

// ProductService handles product catalog operations
type ProductService struct {
	repo catalog.ProductRepository
}

// NewProductService creates a new ProductService
func NewProductService(repo catalog.ProductRepository) *ProductService {
	return &ProductService{repo: repo}
}

// List returns one page of products
func (s *ProductService) List(ctx context.Context, q shared.ListQuery) (shared.PageResult[ProductResponse], error) {
	q.SortBy = sortField(q.SortBy, "description", "sku", "price")
	page, err := s.repo.List(ctx, q)
	if err != nil {
		return shared.PageResult[ProductResponse]{}, err
	}
	return shared.MapPage(page, ToProductResponse), nil
}

// GetByID returns a product
func (s *ProductService) GetByID(ctx context.Context, id string) (*ProductResponse, error) {
	if err := validation.ID("id", id); err != nil {
		return nil, err
	}
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToProductResponse(*p)
	return &resp, nil
}

// Preview validates the form and returns the product that would be sent.
func (s *ProductService) Preview(_ context.Context, id string, in ProductInput) (*ProductResponse, error) {
	if err := validation.OptionalID("id", id); err != nil {
		return nil, err
	}
	p, err := buildProduct(id, in)
	if err != nil {
		return nil, err
	}
	resp := ToProductResponse(*p)
	return &resp, nil
}

// Create creates a product
func (s *ProductService) Create(ctx context.Context, in ProductInput) (*ProductResponse, error) {
	p, err := buildProduct("", in)
	if err != nil {
		return nil, err
	}
	created, err := s.repo.Create(ctx, p)
	if err != nil {
		return nil, err
	}
	logger.L(ctx).Info("product created",
		zap.String("product_id", created.ID),
		zap.String("sku", created.SKU),
	)
	resp := ToProductResponse(*created)
	return &resp, nil
}

// Update replaces the whole product
func (s *ProductService) Update(ctx context.Context, id string, in ProductInput) (*ProductResponse, error) {
	if err := validation.ID("id", id); err != nil {
		return nil, err
	}
	p, err := buildProduct(id, in)
	if err != nil {
		return nil, err
	}
	updated, err := s.repo.Update(ctx, p)
	if err != nil {
		return nil, err
	}
	resp := ToProductResponse(*updated)
	return &resp, nil
}

func buildProduct(id string, in ProductInput) (*catalog.Product, error) {
	in.Description = strings.TrimSpace(in.Description)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	productType := in.ProductType
	if productType == "" {
		productType = ProductTypeInventoryItem
	}
	return &catalog.Product{
		Ref:         shared.NewRef(shared.TypeProduct, id),
		SKU:         strings.TrimSpace(in.SKU),
		Description: in.Description,
		ProductType: productType,
		Unit:        shared.NewRef(shared.TypeUnit, in.UnitID),
		Category:    shared.NewRef(shared.TypeProductCategory, in.CategoryID),
		Price:       in.Price.Round(2),
		Comment:     in.Comment,
	}, nil
}

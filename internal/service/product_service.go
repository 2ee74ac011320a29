package service

import (
	"context"
	"fmt"

	"urban-turban/internal/model"
	"urban-turban/internal/repository"

	"github.com/rs/zerolog"
)

// productService implements ProductService.
type productService struct {
	productRepo repository.ProductRepository
	logger      zerolog.Logger
}

// NewProductService creates a new product service.
func NewProductService(productRepo repository.ProductRepository, logger zerolog.Logger) ProductService {
	return &productService{
		productRepo: productRepo,
		logger:      logger.With().Str("service", "product").Logger(),
	}
}

// List returns all active products with variants.
func (s *productService) List(ctx context.Context) ([]model.ProductWithVariants, error) {
	products, err := s.productRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// GetBySlug returns one product with variants.
func (s *productService) GetBySlug(ctx context.Context, slug string) (*model.ProductWithVariants, error) {
	product, err := s.productRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil {
		return nil, model.ErrProductNotFound
	}
	return product, nil
}

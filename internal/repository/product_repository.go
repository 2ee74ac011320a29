package repository

import (
	"context"
	"errors"
	"fmt"

	"urban-turban/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// productRepository implements the ProductRepository interface using PostgreSQL.
type productRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(pool *pgxpool.Pool, logger zerolog.Logger) ProductRepository {
	return &productRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "product").Logger(),
	}
}

const productColumns = `id, name, slug, price, description, micro_story, images, is_active, created_at, updated_at`

func scanProduct(row pgx.Row) (*model.Product, error) {
	var p model.Product
	err := row.Scan(&p.ID, &p.Name, &p.Slug, &p.Price, &p.Description,
		&p.MicroStory, &p.Images, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ListActive retrieves all active products with their variants.
func (r *productRepository) ListActive(ctx context.Context) ([]model.ProductWithVariants, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE is_active = TRUE
		ORDER BY name
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query products")
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []model.ProductWithVariants
	for rows.Next() {
		var p model.Product
		err := rows.Scan(&p.ID, &p.Name, &p.Slug, &p.Price, &p.Description,
			&p.MicroStory, &p.Images, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, model.ProductWithVariants{Product: p})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	for i := range products {
		variants, err := r.variantsForProduct(ctx, products[i].ID)
		if err != nil {
			return nil, err
		}
		products[i].Variants = variants
	}

	return products, nil
}

// GetBySlug retrieves a product with variants by slug.
func (r *productRepository) GetBySlug(ctx context.Context, slug string) (*model.ProductWithVariants, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE slug = $1`

	product, err := scanProduct(r.pool.QueryRow(ctx, query, slug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("slug", slug).Msg("product not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("slug", slug).Msg("failed to query product")
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	variants, err := r.variantsForProduct(ctx, product.ID)
	if err != nil {
		return nil, err
	}

	return &model.ProductWithVariants{Product: *product, Variants: variants}, nil
}

// GetVariantDetail retrieves a variant joined with its product.
func (r *productRepository) GetVariantDetail(ctx context.Context, variantID uuid.UUID) (*model.VariantDetail, error) {
	query := `
		SELECT v.id, v.product_id, v.color, v.sku, v.stock_quantity,
		       p.name, p.slug, p.price, p.is_active
		FROM product_variants v
		JOIN products p ON p.id = v.product_id
		WHERE v.id = $1
	`

	var d model.VariantDetail
	err := r.pool.QueryRow(ctx, query, variantID).Scan(
		&d.ID, &d.ProductID, &d.Color, &d.SKU, &d.StockQuantity,
		&d.ProductName, &d.ProductSlug, &d.ProductPrice, &d.ProductIsActive,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("variant_id", variantID.String()).Msg("variant not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("variant_id", variantID.String()).Msg("failed to query variant")
		return nil, fmt.Errorf("failed to query variant: %w", err)
	}

	return &d, nil
}

func (r *productRepository) variantsForProduct(ctx context.Context, productID uuid.UUID) ([]model.ProductVariant, error) {
	query := `
		SELECT id, product_id, color, sku, stock_quantity
		FROM product_variants
		WHERE product_id = $1
		ORDER BY sku
	`

	rows, err := r.pool.Query(ctx, query, productID)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", productID.String()).Msg("failed to query variants")
		return nil, fmt.Errorf("failed to query variants: %w", err)
	}
	defer rows.Close()

	var variants []model.ProductVariant
	for rows.Next() {
		var v model.ProductVariant
		if err := rows.Scan(&v.ID, &v.ProductID, &v.Color, &v.SKU, &v.StockQuantity); err != nil {
			return nil, fmt.Errorf("failed to scan variant: %w", err)
		}
		variants = append(variants, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating variants: %w", err)
	}

	return variants, nil
}

package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product represents a catalog product. Price is the current list price;
// orders snapshot it at purchase time and never read it again.
type Product struct {
	ID          uuid.UUID       `json:"id" db:"id"`
	Name        string          `json:"name" db:"name"`
	Slug        string          `json:"slug" db:"slug"`
	Price       decimal.Decimal `json:"price" db:"price"`
	Description string          `json:"description" db:"description"`
	MicroStory  string          `json:"microStory" db:"micro_story"`
	Images      []string        `json:"images" db:"images"`
	IsActive    bool            `json:"isActive" db:"is_active"`
	CreatedAt   time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time       `json:"updatedAt" db:"updated_at"`
}

// ProductVariant is a purchasable SKU-level specialization of a product.
type ProductVariant struct {
	ID            uuid.UUID `json:"id" db:"id"`
	ProductID     uuid.UUID `json:"productId" db:"product_id"`
	Color         string    `json:"color" db:"color"`
	SKU           string    `json:"sku" db:"sku"`
	StockQuantity int       `json:"stockQuantity" db:"stock_quantity"`
}

// ProductWithVariants is the catalog read model.
type ProductWithVariants struct {
	Product
	Variants []ProductVariant `json:"variants"`
}

// VariantDetail joins a variant with the product fields checkout and cart
// display need: name, current price, active flag.
type VariantDetail struct {
	ProductVariant
	ProductName     string          `json:"productName"`
	ProductSlug     string          `json:"productSlug"`
	ProductPrice    decimal.Decimal `json:"productPrice"`
	ProductIsActive bool            `json:"productIsActive"`
}

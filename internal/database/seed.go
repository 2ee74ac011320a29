package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"urban-turban/internal/auth"
	"urban-turban/internal/config"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Seed populates the flagship product and the admin account. It is
// idempotent: existing rows are left alone, except that the admin account is
// promoted to the admin role if it lost it.
func Seed(ctx context.Context, pool *pgxpool.Pool, cfg config.SeedConfig, logger zerolog.Logger) error {
	if err := seedProducts(ctx, pool, logger); err != nil {
		return err
	}
	return seedAdmin(ctx, pool, cfg, logger)
}

func seedProducts(ctx context.Context, pool *pgxpool.Pool, logger zerolog.Logger) error {
	var count int
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&count); err != nil {
		return fmt.Errorf("failed to count products: %w", err)
	}
	if count > 0 {
		return nil
	}

	productID := uuid.New()
	images, err := json.Marshal([]string{"/products/urban-essential.jpg"})
	if err != nil {
		return fmt.Errorf("failed to marshal product images: %w", err)
	}

	_, err = pool.Exec(ctx, `
		INSERT INTO products (id, name, slug, price, description, micro_story, images, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, TRUE)
	`,
		productID,
		"The Urban Essential",
		"urban-essential-cap",
		decimal.RequireFromString("799.00"),
		"A minimalist dad cap designed for the modern urban explorer. Crafted from 100% premium cotton twill with an adjustable strap.",
		"Inspired by the concrete jungle, built for comfort. The Urban Essential isn't just a cap; it's a statement of calm confidence amidst the chaos.",
		images,
	)
	if err != nil {
		return fmt.Errorf("failed to seed product: %w", err)
	}

	variants := []struct {
		color string
		sku   string
		stock int
	}{
		{"Black", "UE-BLK-001", 100},
		{"Beige", "UE-BGE-001", 100},
		{"Olive", "UE-OLV-001", 0},
	}

	for _, v := range variants {
		_, err := pool.Exec(ctx, `
			INSERT INTO product_variants (id, product_id, color, sku, stock_quantity)
			VALUES ($1, $2, $3, $4, $5)
		`, uuid.New(), productID, v.color, v.sku, v.stock)
		if err != nil {
			return fmt.Errorf("failed to seed variant %s: %w", v.sku, err)
		}
	}

	logger.Info().
		Str("product_id", productID.String()).
		Int("variants", len(variants)).
		Msg("seeded catalog")

	return nil
}

func seedAdmin(ctx context.Context, pool *pgxpool.Pool, cfg config.SeedConfig, logger zerolog.Logger) error {
	var existingID uuid.UUID
	var existingRole string
	err := pool.QueryRow(ctx,
		`SELECT id, role FROM users WHERE email = $1`, cfg.AdminEmail,
	).Scan(&existingID, &existingRole)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("failed to look up admin account: %w", err)
	}
	if err == nil {
		if existingRole != string(auth.RoleAdmin) {
			if _, err := pool.Exec(ctx,
				`UPDATE users SET role = $1, updated_at = now() WHERE id = $2`,
				string(auth.RoleAdmin), existingID,
			); err != nil {
				return fmt.Errorf("failed to promote admin account: %w", err)
			}
		}
		return nil
	}

	hash, err := auth.HashPassword(cfg.AdminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	_, err = pool.Exec(ctx, `
		INSERT INTO users (id, email, password_hash, name, role, is_active)
		VALUES ($1, $2, $3, $4, $5, TRUE)
	`, uuid.New(), cfg.AdminEmail, hash, "System Admin", string(auth.RoleAdmin))
	if err != nil {
		return fmt.Errorf("failed to seed admin account: %w", err)
	}

	logger.Info().Str("email", cfg.AdminEmail).Msg("seeded admin account")

	return nil
}

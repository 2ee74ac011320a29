package integration

import (
	"context"
	"testing"
	"time"

	"urban-turban/internal/database"
	"urban-turban/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// SetupTestDB creates a PostgreSQL test container, applies the schema and
// returns a ready connection pool.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	pool, err := database.NewPoolFromConnString(ctx, connStr, zerolog.Nop())
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	if err := database.Migrate(ctx, pool); err != nil {
		t.Fatalf("failed to apply schema: %v", err)
	}

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
		ConnStr:   connStr,
	}
}

// InsertProduct inserts a product with one variant and returns both IDs.
func (db *TestDB) InsertProduct(t *testing.T, name, slug string, price decimal.Decimal, active bool) (productID, variantID uuid.UUID) {
	t.Helper()

	ctx := context.Background()
	productID = uuid.New()
	variantID = uuid.New()

	_, err := db.Pool.Exec(ctx, `
		INSERT INTO products (id, name, slug, price, description, micro_story, images, is_active)
		VALUES ($1, $2, $3, $4, '', '', '[]'::jsonb, $5)`,
		productID, name, slug, price, active)
	if err != nil {
		t.Fatalf("failed to insert product: %v", err)
	}

	_, err = db.Pool.Exec(ctx, `
		INSERT INTO product_variants (id, product_id, color, sku, stock_quantity)
		VALUES ($1, $2, 'Black', $3, 100)`,
		variantID, productID, slug+"-BLK")
	if err != nil {
		t.Fatalf("failed to insert variant: %v", err)
	}

	return productID, variantID
}

// InsertUser inserts a user with the given role and returns its ID.
func (db *TestDB) InsertUser(t *testing.T, email, role string) uuid.UUID {
	t.Helper()

	ctx := context.Background()
	id := uuid.New()

	_, err := db.Pool.Exec(ctx, `
		INSERT INTO users (id, email, password_hash, name, role, is_active)
		VALUES ($1, $2, 'x', 'Test User', $3, TRUE)`,
		id, email, role)
	if err != nil {
		t.Fatalf("failed to insert user: %v", err)
	}

	return id
}

// InsertCart inserts a cart, optionally owned by a user.
func (db *TestDB) InsertCart(t *testing.T, userID *uuid.UUID) uuid.UUID {
	t.Helper()

	ctx := context.Background()
	id := uuid.New()

	_, err := db.Pool.Exec(ctx,
		`INSERT INTO carts (id, user_id) VALUES ($1, $2)`, id, userID)
	if err != nil {
		t.Fatalf("failed to insert cart: %v", err)
	}

	return id
}

// GetOrder reads an order row directly for assertions.
func (db *TestDB) GetOrder(t *testing.T, orderID uuid.UUID) *model.Order {
	t.Helper()

	ctx := context.Background()
	var o model.Order
	err := db.Pool.QueryRow(ctx, `
		SELECT id, user_id, status, total_amount, payment_provider,
		       tracking_number, cancellation_reason, refund_status, created_at
		FROM orders WHERE id = $1`, orderID).
		Scan(&o.ID, &o.UserID, &o.Status, &o.TotalAmount, &o.PaymentProvider,
			&o.TrackingNumber, &o.CancellationReason, &o.RefundStatus, &o.CreatedAt)
	if err != nil {
		t.Fatalf("failed to read order: %v", err)
	}

	return &o
}

package integration

import (
	"context"
	"sync"
	"testing"

	"urban-turban/internal/model"
	"urban-turban/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	logger := zerolog.Nop()
	repo := repository.NewCartRepository(testDB.Pool, logger)

	ctx := context.Background()

	_, variantID := testDB.InsertProduct(t, "The Urban Essential", "the-urban-essential", decimal.NewFromFloat(799.00), true)

	t.Run("UpsertItem increments existing line", func(t *testing.T) {
		cartID := testDB.InsertCart(t, nil)

		require.NoError(t, repo.UpsertItem(ctx, cartID, variantID, 1))
		require.NoError(t, repo.UpsertItem(ctx, cartID, variantID, 2))

		items, err := repo.GetItemViews(ctx, cartID)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, 3, items[0].Quantity)
	})

	t.Run("concurrent adds of one variant produce one line", func(t *testing.T) {
		cartID := testDB.InsertCart(t, nil)

		const workers = 10
		var wg sync.WaitGroup
		errs := make(chan error, workers)
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				errs <- repo.UpsertItem(ctx, cartID, variantID, 1)
			}()
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			require.NoError(t, err)
		}

		items, err := repo.GetItemViews(ctx, cartID)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, workers, items[0].Quantity)
	})

	t.Run("SetItemQuantity reports missing line", func(t *testing.T) {
		updated, err := repo.SetItemQuantity(ctx, uuid.New(), 5)
		require.NoError(t, err)
		assert.False(t, updated)
	})

	t.Run("RemoveItem is idempotent", func(t *testing.T) {
		require.NoError(t, repo.RemoveItem(ctx, uuid.New()))
	})

	t.Run("item view carries current price and active flag", func(t *testing.T) {
		cartID := testDB.InsertCart(t, nil)
		require.NoError(t, repo.UpsertItem(ctx, cartID, variantID, 2))

		items, err := repo.GetItemViews(ctx, cartID)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.True(t, items[0].UnitPrice.Equal(decimal.NewFromFloat(799.00)))
		assert.True(t, items[0].ProductIsActive)
		assert.True(t, items[0].LineTotal().Equal(decimal.NewFromFloat(1598.00)))
	})
}

func TestOrderRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	logger := zerolog.Nop()
	orderRepo := repository.NewOrderRepository(testDB.Pool, logger)

	ctx := context.Background()

	userID := testDB.InsertUser(t, "shopper@example.com", "customer")
	_, variantID := testDB.InsertProduct(t, "The Urban Essential", "the-urban-essential", decimal.NewFromFloat(799.00), true)

	createOrder := func(t *testing.T, status model.OrderStatus) *model.Order {
		t.Helper()

		tx, err := orderRepo.BeginTx(ctx)
		require.NoError(t, err)

		order := &model.Order{
			ID:              uuid.New(),
			UserID:          userID,
			Status:          status,
			TotalAmount:     decimal.NewFromFloat(1598.00),
			PaymentProvider: "cod",
		}
		require.NoError(t, orderRepo.CreateOrder(ctx, tx, order))
		require.NoError(t, orderRepo.CreateOrderItems(ctx, tx, []model.OrderItem{
			{
				ID:               uuid.New(),
				OrderID:          order.ID,
				ProductVariantID: variantID,
				Quantity:         2,
				PriceAtPurchase:  decimal.NewFromFloat(799.00),
			},
		}))
		require.NoError(t, tx.Commit(ctx))

		return order
	}

	t.Run("create and read back", func(t *testing.T) {
		order := createOrder(t, model.OrderStatusPending)

		got, err := orderRepo.GetByID(ctx, order.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, model.OrderStatusPending, got.Status)
		assert.True(t, got.TotalAmount.Equal(decimal.NewFromFloat(1598.00)))

		items, err := orderRepo.GetItemViews(ctx, order.ID)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "The Urban Essential", items[0].ProductName)
		assert.True(t, items[0].PriceAtPurchase.Equal(decimal.NewFromFloat(799.00)))
	})

	t.Run("price snapshot survives a price change", func(t *testing.T) {
		order := createOrder(t, model.OrderStatusPending)

		_, err := testDB.Pool.Exec(ctx, `UPDATE products SET price = 999.00 WHERE slug = 'the-urban-essential'`)
		require.NoError(t, err)

		items, err := orderRepo.GetItemViews(ctx, order.ID)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.True(t, items[0].PriceAtPurchase.Equal(decimal.NewFromFloat(799.00)))

		got, err := orderRepo.GetByID(ctx, order.ID)
		require.NoError(t, err)
		assert.True(t, got.TotalAmount.Equal(decimal.NewFromFloat(1598.00)))

		_, err = testDB.Pool.Exec(ctx, `UPDATE products SET price = 799.00 WHERE slug = 'the-urban-essential'`)
		require.NoError(t, err)
	})

	t.Run("payment row round trip", func(t *testing.T) {
		order := createOrder(t, model.OrderStatusPaid)

		tx, err := orderRepo.BeginTx(ctx)
		require.NoError(t, err)
		ref := "mock_upi_mock_1_1"
		require.NoError(t, orderRepo.CreatePayment(ctx, tx, &model.Payment{
			ID:         uuid.New(),
			OrderID:    order.ID,
			Provider:   "upi_mock",
			Status:     model.PaymentStatusSuccess,
			ExternalID: &ref,
		}))
		require.NoError(t, tx.Commit(ctx))

		payment, err := orderRepo.GetPayment(ctx, order.ID)
		require.NoError(t, err)
		require.NotNil(t, payment)
		assert.Equal(t, model.PaymentStatusSuccess, payment.Status)
		require.NotNil(t, payment.ExternalID)
		assert.Equal(t, ref, *payment.ExternalID)
	})

	t.Run("COD order has no payment row", func(t *testing.T) {
		order := createOrder(t, model.OrderStatusPending)

		payment, err := orderRepo.GetPayment(ctx, order.ID)
		require.NoError(t, err)
		assert.Nil(t, payment)
	})

	t.Run("UpdateStatus persists cancellation fields", func(t *testing.T) {
		order := createOrder(t, model.OrderStatusPaid)

		tx, err := orderRepo.BeginTx(ctx)
		require.NoError(t, err)

		locked, err := orderRepo.GetForUpdate(ctx, tx, order.ID)
		require.NoError(t, err)
		require.NotNil(t, locked)

		reason := "changed my mind"
		refund := model.RefundStatusProcessing
		locked.Status = model.OrderStatusCancelled
		locked.CancellationReason = &reason
		locked.RefundStatus = &refund
		require.NoError(t, orderRepo.UpdateStatus(ctx, tx, locked))
		require.NoError(t, tx.Commit(ctx))

		got := testDB.GetOrder(t, order.ID)
		assert.Equal(t, model.OrderStatusCancelled, got.Status)
		require.NotNil(t, got.CancellationReason)
		assert.Equal(t, reason, *got.CancellationReason)
		require.NotNil(t, got.RefundStatus)
		assert.Equal(t, model.RefundStatusProcessing, *got.RefundStatus)
	})

	t.Run("ListByUser is scoped and newest first", func(t *testing.T) {
		otherID := testDB.InsertUser(t, "other@example.com", "customer")

		orders, err := orderRepo.ListByUser(ctx, otherID)
		require.NoError(t, err)
		assert.Empty(t, orders)

		mine, err := orderRepo.ListByUser(ctx, userID)
		require.NoError(t, err)
		require.NotEmpty(t, mine)
		for i := 1; i < len(mine); i++ {
			assert.False(t, mine[i].CreatedAt.After(mine[i-1].CreatedAt))
		}
	})
}

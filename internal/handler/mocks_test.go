package handler

import (
	"context"

	"urban-turban/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockAuthService is a mock implementation of service.AuthService.
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, req *model.LoginRequest, guestCartID *uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, req, guestCartID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockAuthService) GetUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

// MockCartService is a mock implementation of service.CartService.
type MockCartService struct {
	mock.Mock
}

func (m *MockCartService) ResolveCart(ctx context.Context, userID, sessionCartID *uuid.UUID) (*model.Cart, error) {
	args := m.Called(ctx, userID, sessionCartID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Cart), args.Error(1)
}

func (m *MockCartService) GetCart(ctx context.Context, cartID uuid.UUID) (*model.CartView, error) {
	args := m.Called(ctx, cartID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CartView), args.Error(1)
}

func (m *MockCartService) AddItem(ctx context.Context, cartID, variantID uuid.UUID, quantity int) (*model.CartView, error) {
	args := m.Called(ctx, cartID, variantID, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CartView), args.Error(1)
}

func (m *MockCartService) SetItemQuantity(ctx context.Context, cartID, itemID uuid.UUID, quantity int) (*model.CartView, error) {
	args := m.Called(ctx, cartID, itemID, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CartView), args.Error(1)
}

func (m *MockCartService) RemoveItem(ctx context.Context, cartID, itemID uuid.UUID) (*model.CartView, error) {
	args := m.Called(ctx, cartID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CartView), args.Error(1)
}

func (m *MockCartService) Clear(ctx context.Context, cartID uuid.UUID) (*model.CartView, error) {
	args := m.Called(ctx, cartID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CartView), args.Error(1)
}

// MockOrderService is a mock implementation of service.OrderService.
type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) Create(ctx context.Context, userID, cartID uuid.UUID, paymentProvider string) (*model.OrderDetail, error) {
	args := m.Called(ctx, userID, cartID, paymentProvider)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.OrderDetail), args.Error(1)
}

func (m *MockOrderService) List(ctx context.Context, userID uuid.UUID) ([]model.OrderDetail, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.OrderDetail), args.Error(1)
}

func (m *MockOrderService) Get(ctx context.Context, userID, orderID uuid.UUID) (*model.OrderDetail, error) {
	args := m.Called(ctx, userID, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.OrderDetail), args.Error(1)
}

func (m *MockOrderService) Cancel(ctx context.Context, userID, orderID uuid.UUID, reason string) (*model.OrderDetail, error) {
	args := m.Called(ctx, userID, orderID, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.OrderDetail), args.Error(1)
}

func (m *MockOrderService) ListAll(ctx context.Context) ([]model.OrderDetail, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.OrderDetail), args.Error(1)
}

func (m *MockOrderService) UpdateStatus(ctx context.Context, orderID uuid.UUID, status model.OrderStatus, trackingNumber *string) (*model.OrderDetail, error) {
	args := m.Called(ctx, orderID, status, trackingNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.OrderDetail), args.Error(1)
}

package service

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/stretchr/testify/mock"
)

// MockCatalogCache is a mock type for the CatalogCache type
type MockCatalogCache struct {
	mock.Mock
}

type MockCatalogCache_Expecter struct {
	mock *mock.Mock
}

func (_m *MockCatalogCache) EXPECT() *MockCatalogCache_Expecter {
	return &MockCatalogCache_Expecter{mock: &_m.Mock}
}

func (_m *MockCatalogCache) Products(ctx context.Context, load func(context.Context) ([]*entity.Product, error)) ([]*entity.Product, error) {
	ret := _m.Called(ctx, load)

	if fn, ok := ret.Get(0).(func(context.Context, func(context.Context) ([]*entity.Product, error)) ([]*entity.Product, error)); ok {
		return fn(ctx, load)
	}
	products, _ := ret.Get(0).([]*entity.Product)

	return products, ret.Error(1)
}

type MockCatalogCache_Products_Call struct {
	*mock.Call
}

func (_e *MockCatalogCache_Expecter) Products(ctx, load any) *MockCatalogCache_Products_Call {
	return &MockCatalogCache_Products_Call{Call: _e.mock.On("Products", ctx, load)}
}

func (_c *MockCatalogCache_Products_Call) Return(products []*entity.Product, err error) *MockCatalogCache_Products_Call {
	_c.Call.Return(products, err)

	return _c
}

// RunAndReturn makes the mock call through to the loader, like a cache miss.
func (_c *MockCatalogCache_Products_Call) RunAndReturn(run func(context.Context, func(context.Context) ([]*entity.Product, error)) ([]*entity.Product, error)) *MockCatalogCache_Products_Call {
	_c.Call.Return(run, nil)

	return _c
}

func (_m *MockCatalogCache) Invalidate(ctx context.Context) error {
	ret := _m.Called(ctx)

	return ret.Error(0)
}

type MockCatalogCache_Invalidate_Call struct {
	*mock.Call
}

func (_e *MockCatalogCache_Expecter) Invalidate(ctx any) *MockCatalogCache_Invalidate_Call {
	return &MockCatalogCache_Invalidate_Call{Call: _e.mock.On("Invalidate", ctx)}
}

func (_c *MockCatalogCache_Invalidate_Call) Return(err error) *MockCatalogCache_Invalidate_Call {
	_c.Call.Return(err)

	return _c
}

// NewMockCatalogCache creates a new instance of MockCatalogCache. It also registers a cleanup function to assert the mocks expectations.
func NewMockCatalogCache(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockCatalogCache {
	m := &MockCatalogCache{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

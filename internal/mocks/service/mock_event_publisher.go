package service

import (
	"context"

	"storefront/internal/domain/service"

	"github.com/stretchr/testify/mock"
)

// MockEventPublisher is a mock type for the EventPublisher type
type MockEventPublisher struct {
	mock.Mock
}

type MockEventPublisher_Expecter struct {
	mock *mock.Mock
}

func (_m *MockEventPublisher) EXPECT() *MockEventPublisher_Expecter {
	return &MockEventPublisher_Expecter{mock: &_m.Mock}
}

func (_m *MockEventPublisher) PublishOrderEvent(ctx context.Context, event *service.OrderEvent) error {
	ret := _m.Called(ctx, event)

	return ret.Error(0)
}

type MockEventPublisher_PublishOrderEvent_Call struct {
	*mock.Call
}

func (_e *MockEventPublisher_Expecter) PublishOrderEvent(ctx, event any) *MockEventPublisher_PublishOrderEvent_Call {
	return &MockEventPublisher_PublishOrderEvent_Call{Call: _e.mock.On("PublishOrderEvent", ctx, event)}
}

func (_c *MockEventPublisher_PublishOrderEvent_Call) Return(err error) *MockEventPublisher_PublishOrderEvent_Call {
	_c.Call.Return(err)

	return _c
}

func (_c *MockEventPublisher_PublishOrderEvent_Call) Run(run func(ctx context.Context, event *service.OrderEvent)) *MockEventPublisher_PublishOrderEvent_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args.Get(0).(context.Context), args.Get(1).(*service.OrderEvent))
	})

	return _c
}

func (_m *MockEventPublisher) Close() error {
	ret := _m.Called()

	return ret.Error(0)
}

type MockEventPublisher_Close_Call struct {
	*mock.Call
}

func (_e *MockEventPublisher_Expecter) Close() *MockEventPublisher_Close_Call {
	return &MockEventPublisher_Close_Call{Call: _e.mock.On("Close")}
}

func (_c *MockEventPublisher_Close_Call) Return(err error) *MockEventPublisher_Close_Call {
	_c.Call.Return(err)

	return _c
}

// NewMockEventPublisher creates a new instance of MockEventPublisher. It also registers a cleanup function to assert the mocks expectations.
func NewMockEventPublisher(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockEventPublisher {
	m := &MockEventPublisher{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

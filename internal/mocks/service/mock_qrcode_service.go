package service

import (
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockQRCodeService is a mock type for the QRCodeService type
type MockQRCodeService struct {
	mock.Mock
}

type MockQRCodeService_Expecter struct {
	mock *mock.Mock
}

func (_m *MockQRCodeService) EXPECT() *MockQRCodeService_Expecter {
	return &MockQRCodeService_Expecter{mock: &_m.Mock}
}

func (_m *MockQRCodeService) GenerateOrderQR(orderID uuid.UUID) ([]byte, error) {
	ret := _m.Called(orderID)

	png, _ := ret.Get(0).([]byte)

	return png, ret.Error(1)
}

type MockQRCodeService_GenerateOrderQR_Call struct {
	*mock.Call
}

func (_e *MockQRCodeService_Expecter) GenerateOrderQR(orderID any) *MockQRCodeService_GenerateOrderQR_Call {
	return &MockQRCodeService_GenerateOrderQR_Call{Call: _e.mock.On("GenerateOrderQR", orderID)}
}

func (_c *MockQRCodeService_GenerateOrderQR_Call) Return(png []byte, err error) *MockQRCodeService_GenerateOrderQR_Call {
	_c.Call.Return(png, err)

	return _c
}

// NewMockQRCodeService creates a new instance of MockQRCodeService. It also registers a cleanup function to assert the mocks expectations.
func NewMockQRCodeService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockQRCodeService {
	m := &MockQRCodeService{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

package service

import (
	"time"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockTokenService is a mock type for the TokenService type
type MockTokenService struct {
	mock.Mock
}

type MockTokenService_Expecter struct {
	mock *mock.Mock
}

func (_m *MockTokenService) EXPECT() *MockTokenService_Expecter {
	return &MockTokenService_Expecter{mock: &_m.Mock}
}

func (_m *MockTokenService) IssueAccessToken(userID uuid.UUID, role entity.Role) (string, time.Time, error) {
	ret := _m.Called(userID, role)

	expiresAt, _ := ret.Get(1).(time.Time)

	return ret.String(0), expiresAt, ret.Error(2)
}

type MockTokenService_IssueAccessToken_Call struct {
	*mock.Call
}

func (_e *MockTokenService_Expecter) IssueAccessToken(userID, role any) *MockTokenService_IssueAccessToken_Call {
	return &MockTokenService_IssueAccessToken_Call{Call: _e.mock.On("IssueAccessToken", userID, role)}
}

func (_c *MockTokenService_IssueAccessToken_Call) Return(token string, expiresAt time.Time, err error) *MockTokenService_IssueAccessToken_Call {
	_c.Call.Return(token, expiresAt, err)

	return _c
}

func (_m *MockTokenService) ParseAccessToken(token string) (*service.AccessClaims, error) {
	ret := _m.Called(token)

	claims, _ := ret.Get(0).(*service.AccessClaims)

	return claims, ret.Error(1)
}

type MockTokenService_ParseAccessToken_Call struct {
	*mock.Call
}

func (_e *MockTokenService_Expecter) ParseAccessToken(token any) *MockTokenService_ParseAccessToken_Call {
	return &MockTokenService_ParseAccessToken_Call{Call: _e.mock.On("ParseAccessToken", token)}
}

func (_c *MockTokenService_ParseAccessToken_Call) Return(claims *service.AccessClaims, err error) *MockTokenService_ParseAccessToken_Call {
	_c.Call.Return(claims, err)

	return _c
}

// NewMockTokenService creates a new instance of MockTokenService. It also registers a cleanup function to assert the mocks expectations.
func NewMockTokenService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockTokenService {
	m := &MockTokenService{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

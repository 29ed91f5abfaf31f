package impl

import (
	"context"
	"testing"
	"time"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	mockSvc "storefront/internal/mocks/service"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type userServiceFixtures struct {
	*storeFixtures
	service      usecase.UserUsecase
	hasher       *mockSvc.MockPasswordHasher
	tokenService *mockSvc.MockTokenService
}

func createTestUserService(t *testing.T) userServiceFixtures {
	f := newStoreFixtures(t)
	hasher := mockSvc.NewMockPasswordHasher(t)
	tokenService := mockSvc.NewMockTokenService(t)

	service := NewUserService(UserServiceParams{
		TxManager:    f.txManager,
		UserRepo:     f.users,
		ProductRepo:  f.products,
		WishlistRepo: f.wishlist,
		CartRepo:     f.carts,
		Hasher:       hasher,
		TokenService: tokenService,
		Config:       f.cfg,
		Logger:       f.logger,
	})

	return userServiceFixtures{storeFixtures: f, service: service, hasher: hasher, tokenService: tokenService}
}

func TestUserService_Register(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()

	fx.hasher.EXPECT().Hash("secret1").Return("hashed", nil).Once()

	user, err := fx.service.Register(ctx, usecase.RegisterInput{
		Name:     " Amina Nakato ",
		Email:    "Amina@Example.com",
		Password: "secret1",
	})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, user.ID)
	assert.Equal(t, "Amina Nakato", user.Name)
	assert.Equal(t, "amina@example.com", user.Email)
	assert.Equal(t, entity.RoleUser, user.Role)
	assert.True(t, user.IsActive)
	assert.Equal(t, "hashed", user.PasswordHash)
}

func TestUserService_RegisterRejectsDuplicateEmail(t *testing.T) {
	fx := createTestUserService(t)
	fx.seedUser(t, "Existing", "taken@example.com")

	_, err := fx.service.Register(context.Background(), usecase.RegisterInput{
		Name:     "Someone",
		Email:    "taken@example.com",
		Password: "secret1",
	})

	assert.ErrorIs(t, err, domainerrors.ErrUserAlreadyExists)
}

func TestUserService_RegisterValidation(t *testing.T) {
	tests := []struct {
		name  string
		input usecase.RegisterInput
	}{
		{name: "missing name", input: usecase.RegisterInput{Email: "a@b.co", Password: "secret1"}},
		{name: "missing password", input: usecase.RegisterInput{Name: "A", Email: "a@b.co"}},
		{name: "email without domain dot", input: usecase.RegisterInput{Name: "A", Email: "a@b", Password: "secret1"}},
		{name: "email with space", input: usecase.RegisterInput{Name: "A", Email: "a b@c.io", Password: "secret1"}},
		{name: "short password", input: usecase.RegisterInput{Name: "A", Email: "a@b.co", Password: "12345"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := createTestUserService(t)

			_, err := fx.service.Register(context.Background(), tt.input)

			assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
		})
	}
}

func TestUserService_Login(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()
	user := fx.seedUser(t, "Amina", "amina@example.com")
	expiresAt := time.Now().Add(time.Hour)

	fx.hasher.EXPECT().Check("secret1", "hash").Return(true).Once()
	fx.tokenService.EXPECT().IssueAccessToken(user.ID, entity.RoleUser).Return("token", expiresAt, nil).Once()

	out, err := fx.service.Login(ctx, usecase.LoginInput{Email: "AMINA@example.com", Password: "secret1"})
	require.NoError(t, err)

	assert.Equal(t, "token", out.AccessToken)
	assert.Equal(t, expiresAt, out.ExpiresAt)
	assert.Equal(t, user.ID, out.User.ID)
}

func TestUserService_LoginFailures(t *testing.T) {
	t.Run("unknown email", func(t *testing.T) {
		fx := createTestUserService(t)

		_, err := fx.service.Login(context.Background(), usecase.LoginInput{Email: "nobody@example.com", Password: "x"})

		assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
	})

	t.Run("wrong password", func(t *testing.T) {
		fx := createTestUserService(t)
		fx.seedUser(t, "Amina", "amina@example.com")
		fx.hasher.EXPECT().Check("wrong", "hash").Return(false).Once()

		_, err := fx.service.Login(context.Background(), usecase.LoginInput{Email: "amina@example.com", Password: "wrong"})

		assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
	})

	t.Run("deactivated account", func(t *testing.T) {
		fx := createTestUserService(t)
		user := fx.seedUser(t, "Amina", "amina@example.com")
		user.IsActive = false
		require.NoError(t, fx.users.Update(context.Background(), user))
		fx.hasher.EXPECT().Check("secret1", "hash").Return(true).Once()

		_, err := fx.service.Login(context.Background(), usecase.LoginInput{Email: "amina@example.com", Password: "secret1"})

		assert.ErrorIs(t, err, domainerrors.ErrAccountDisabled)
	})
}

func TestUserService_UpdateMe(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()
	user := fx.seedUser(t, "Amina", "amina@example.com")

	name := "Amina N."
	password := "newsecret"
	address := entity.Address{Line1: "Plot 4", City: "Kampala", Country: "UG"}
	fx.hasher.EXPECT().Hash(password).Return("rehashed", nil).Once()

	updated, err := fx.service.UpdateMe(ctx, user.ID, usecase.UpdateProfileInput{
		Name:     &name,
		Password: &password,
		Address:  &address,
	})
	require.NoError(t, err)

	stored, err := fx.users.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Amina N.", stored.Name)
	assert.Equal(t, "rehashed", stored.PasswordHash)
	assert.Equal(t, address, stored.Address)
	assert.Equal(t, "amina@example.com", updated.Email)
	assert.Equal(t, entity.RoleUser, updated.Role)
}

func TestUserService_UpdateMeRejectsShortPassword(t *testing.T) {
	fx := createTestUserService(t)
	user := fx.seedUser(t, "Amina", "amina@example.com")
	short := "abc"

	_, err := fx.service.UpdateMe(context.Background(), user.ID, usecase.UpdateProfileInput{Password: &short})

	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestUserService_ListUsersPagination(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()
	for i := range 23 {
		fx.seedUser(t, "User", "user"+string(rune('a'+i))+"@example.com")
	}

	page, err := fx.service.ListUsers(ctx, 3, 10)
	require.NoError(t, err)
	assert.Len(t, page.Users, 3)
	assert.Equal(t, usecase.Pagination{Page: 3, Limit: 10, Total: 23, Pages: 3}, page.Pagination)

	defaults, err := fx.service.ListUsers(ctx, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, defaults.Pagination.Page)
	assert.Equal(t, 10, defaults.Pagination.Limit)

	capped, err := fx.service.ListUsers(ctx, 1, 500)
	require.NoError(t, err)
	assert.Equal(t, 100, capped.Pagination.Limit)
	assert.Equal(t, 1, capped.Pagination.Pages)
}

func TestUserService_GetUserIncludesWishlistAndCart(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()
	user := fx.seedUser(t, "Amina", "amina@example.com")
	product := fx.seedProduct(t, "Trail Shoes", 90000, 5)
	require.NoError(t, fx.wishlist.Add(ctx, user.ID, product.ID))

	detail, err := fx.service.GetUser(ctx, user.ID)
	require.NoError(t, err)

	require.Len(t, detail.Wishlist, 1)
	assert.Equal(t, product.ID, detail.Wishlist[0].ID)
	assert.True(t, detail.Cart.IsEmpty())
	assert.Equal(t, "UGX", detail.Cart.Currency)

	_, err = fx.service.GetUser(ctx, uuid.New())
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}

func TestUserService_DeleteUser(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()
	user := fx.seedUser(t, "Amina", "amina@example.com")
	product := fx.seedProduct(t, "Trail Shoes", 90000, 5)

	cart := entity.NewCart(user.ID, "UGX")
	cart.Add(product, 1)
	require.NoError(t, fx.carts.Save(ctx, cart))
	require.NoError(t, fx.wishlist.Add(ctx, user.ID, product.ID))

	require.NoError(t, fx.service.DeleteUser(ctx, user.ID))

	_, err := fx.users.FindByID(ctx, user.ID)
	assert.Error(t, err)
	ids, err := fx.wishlist.ProductIDs(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, ids)

	assert.ErrorIs(t, fx.service.DeleteUser(ctx, user.ID), domainerrors.ErrUserNotFound)
}

func TestUserService_DeleteUserWithOrdersConflicts(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()
	user := fx.seedUser(t, "Amina", "amina@example.com")
	fx.seedOrder(t, user, entity.OrderDelivered, 1000)

	err := fx.service.DeleteUser(ctx, user.ID)

	assert.ErrorIs(t, err, domainerrors.ErrUserHasOrders)
	_, err = fx.users.FindByID(ctx, user.ID)
	assert.NoError(t, err)
}

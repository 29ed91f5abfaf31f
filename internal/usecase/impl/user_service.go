// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"regexp"
	"strings"

	"storefront/config"
	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/errors"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

const minPasswordLength = 6

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// userService implements the UserUsecase interface.
type userService struct {
	txManager    repository.TransactionManager
	userRepo     repository.UserRepository
	productRepo  repository.ProductRepository
	wishlistRepo repository.WishlistRepository
	cartRepo     repository.CartRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	currency     string
	logger       *slog.Logger
}

// UserServiceParams holds dependencies for UserService, injected by Fx.
type UserServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	UserRepo     repository.UserRepository
	ProductRepo  repository.ProductRepository
	WishlistRepo repository.WishlistRepository
	CartRepo     repository.CartRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Config       *config.Config
	Logger       *slog.Logger
}

// NewUserService is the constructor for userService. It receives all dependencies as interfaces.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		txManager:    params.TxManager,
		userRepo:     params.UserRepo,
		productRepo:  params.ProductRepo,
		wishlistRepo: params.WishlistRepo,
		cartRepo:     params.CartRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		currency:     storeCurrency(params.Config),
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return domainerrors.ErrValidationFailed.WithDetails("password must be at least 6 characters")
	}

	return nil
}

// Register creates a shopper account. Duplicate emails are rejected up front
// and, for concurrent registrations, by the unique index.
func (srv *userService) Register(ctx context.Context, input usecase.RegisterInput) (*entity.User, error) {
	name := strings.TrimSpace(input.Name)
	email := normalizeEmail(input.Email)
	if name == "" || email == "" || input.Password == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("name, email and password are required")
	}
	if !emailPattern.MatchString(email) {
		return nil, domainerrors.ErrValidationFailed.WithDetails("email is not valid")
	}
	if err := validatePassword(input.Password); err != nil {
		return nil, err
	}

	exists, err := srv.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, errors.Wrap(err, "failed to check email")
	}
	if exists {
		srv.log(ctx).Info("Registration rejected, email in use", slog.String("email", email))

		return nil, domainerrors.ErrUserAlreadyExists.WithDetails("email is already registered")
	}

	hash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, domainerrors.ErrPasswordHashFailed
	}

	user := entity.NewUser(name, email, hash)
	user.Phone = strings.TrimSpace(input.Phone)
	user.Address = input.Address
	if err := srv.userRepo.Create(ctx, user); err != nil {
		return nil, errors.Wrap(err, "failed to create user")
	}

	srv.log(ctx).Info("User registered", slog.Any("userID", user.ID))

	return user, nil
}

// Login verifies credentials and issues an access token. Unknown emails,
// wrong passwords and deactivated accounts all answer 401.
func (srv *userService) Login(ctx context.Context, input usecase.LoginInput) (*usecase.LoginOutput, error) {
	user, err := srv.userRepo.FindByEmail(ctx, normalizeEmail(input.Email))
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, domainerrors.ErrInvalidCredentials
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find user")
	}

	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		srv.log(ctx).Info("Login failed", slog.Any("userID", user.ID))

		return nil, domainerrors.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, domainerrors.ErrAccountDisabled
	}

	token, expiresAt, err := srv.tokenService.IssueAccessToken(user.ID, user.Role)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue access token")
	}

	return &usecase.LoginOutput{AccessToken: token, ExpiresAt: expiresAt, User: user}, nil
}

func (srv *userService) Me(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, translateNotFound(err)
	}

	return user, nil
}

// UpdateMe applies self-service profile changes. Email, role and identity are not editable here.
func (srv *userService) UpdateMe(ctx context.Context, userID uuid.UUID, input usecase.UpdateProfileInput) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, translateNotFound(err)
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, domainerrors.ErrValidationFailed.WithDetails("name cannot be empty")
		}
		user.Name = name
	}
	if input.Phone != nil {
		user.Phone = strings.TrimSpace(*input.Phone)
	}
	if input.ProfileImage != nil {
		user.ProfileImage = strings.TrimSpace(*input.ProfileImage)
	}
	if input.Address != nil {
		user.Address = *input.Address
	}
	if input.Password != nil {
		if err := validatePassword(*input.Password); err != nil {
			return nil, err
		}
		hash, err := srv.hasher.Hash(*input.Password)
		if err != nil {
			srv.log(ctx).Error("Failed to hash password during profile update", slog.Any("error", err))

			return nil, domainerrors.ErrPasswordHashFailed
		}
		user.PasswordHash = hash
	}

	if err := srv.userRepo.Update(ctx, user); err != nil {
		return nil, errors.Wrap(err, "failed to update user")
	}

	return user, nil
}

func (srv *userService) ListUsers(ctx context.Context, page, limit int) (*usecase.UserPage, error) {
	page, limit = normalizePage(page, limit)

	users, total, err := srv.userRepo.List(ctx, (page-1)*limit, limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list users")
	}

	return &usecase.UserPage{
		Users: users,
		Pagination: usecase.Pagination{
			Page:  page,
			Limit: limit,
			Total: total,
			Pages: pageCount(total, limit),
		},
	}, nil
}

// GetUser returns the account together with its wishlist products and cart.
func (srv *userService) GetUser(ctx context.Context, userID uuid.UUID) (*usecase.UserDetail, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, translateNotFound(err)
	}

	ids, err := srv.wishlistRepo.ProductIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	wishlist, err := srv.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	cart, err := srv.cartRepo.FindByUserID(ctx, userID)
	if errors.Is(err, repository.ErrCartNotFound) {
		cart = entity.NewCart(userID, srv.currency)
	} else if err != nil {
		return nil, err
	}

	return &usecase.UserDetail{User: user, Wishlist: wishlist, Cart: cart}, nil
}

// DeleteUser removes the account with its cart, wishlist and checkout.
// Accounts with order history are kept (409).
func (srv *userService) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if _, err := repoFactory.UserRepo().FindByID(ctx, userID); err != nil {
			return translateNotFound(err)
		}
		if err := repoFactory.CartRepo().DeleteByUserID(ctx, userID); err != nil {
			return err
		}
		if err := repoFactory.WishlistRepo().Clear(ctx, userID); err != nil {
			return err
		}
		if err := repoFactory.CheckoutRepo().DeleteByUserID(ctx, userID); err != nil {
			return err
		}

		return repoFactory.UserRepo().Delete(ctx, userID)
	})
	if err != nil {
		srv.log(ctx).Warn("Failed to delete user", slog.Any("userID", userID), slog.Any("error", err))

		return err
	}

	srv.log(ctx).Info("User deleted", slog.Any("userID", userID))

	return nil
}

func storeCurrency(cfg *config.Config) string {
	if cfg == nil || cfg.Store == nil || cfg.Store.Currency == "" {
		return "UGX"
	}

	return cfg.Store.Currency
}

package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	"storefront/internal/domain/listing"
	"storefront/internal/domain/repository"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

type customerService struct {
	userRepo  repository.UserRepository
	orderRepo repository.OrderRepository
	logger    *slog.Logger
}

type CustomerServiceParams struct {
	fx.In

	UserRepo  repository.UserRepository
	OrderRepo repository.OrderRepository
	Logger    *slog.Logger
}

func NewCustomerService(params CustomerServiceParams) usecase.CustomerUsecase {
	return &customerService{
		userRepo:  params.UserRepo,
		orderRepo: params.OrderRepo,
		logger:    params.Logger,
	}
}

func (srv *customerService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// List joins every account with its order history. totalOrders counts all
// orders, totalSpent only those that count toward revenue.
func (srv *customerService) List(ctx context.Context, filter usecase.CustomerFilter) (*usecase.CustomerView, error) {
	users, err := srv.userRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	orders, err := srv.orderRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	summaries := summarizeCustomers(users, orders)

	filtered := listing.Apply(summaries, customerComparator(filter.Sort),
		func(c *entity.CustomerSummary) bool {
			return listing.ContainsFold(filter.Query, c.User.Name, c.User.Email, c.User.Phone)
		},
		listing.Equals(filter.Role, func(c *entity.CustomerSummary) string { return string(c.User.Role) }),
		customerStatusPredicate(filter.Status),
	)

	return &usecase.CustomerView{Customers: filtered, Stats: customerStats(summaries)}, nil
}

func summarizeCustomers(users []*entity.User, orders []*entity.Order) []*entity.CustomerSummary {
	byUser := make(map[uuid.UUID]*entity.CustomerSummary, len(users))
	summaries := make([]*entity.CustomerSummary, 0, len(users))
	for _, u := range users {
		s := &entity.CustomerSummary{User: u, TotalSpent: decimal.Zero}
		byUser[u.ID] = s
		summaries = append(summaries, s)
	}

	for _, o := range orders {
		s, ok := byUser[o.UserID]
		if !ok {
			continue
		}
		s.TotalOrders++
		if o.Status.CountsTowardRevenue() {
			s.TotalSpent = s.TotalSpent.Add(o.TotalAmount)
		}
	}

	return summaries
}

func customerStatusPredicate(status string) listing.Predicate[*entity.CustomerSummary] {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case productStatusActive:
		return func(c *entity.CustomerSummary) bool { return c.User.IsActive }
	case productStatusInactive:
		return func(c *entity.CustomerSummary) bool { return !c.User.IsActive }
	default:
		return nil
	}
}

func customerComparator(sort string) func(a, b *entity.CustomerSummary) int {
	joined := func(c *entity.CustomerSummary) time.Time { return c.User.CreatedAt }

	switch strings.ToLower(strings.TrimSpace(sort)) {
	case "oldest":
		return listing.Oldest(joined)
	case "most-orders":
		return listing.Descending(func(c *entity.CustomerSummary) int { return c.TotalOrders })
	case "highest-spent":
		return func(a, b *entity.CustomerSummary) int { return b.TotalSpent.Cmp(a.TotalSpent) }
	default:
		return listing.Newest(joined)
	}
}

func customerStats(summaries []*entity.CustomerSummary) usecase.CustomerStats {
	stats := usecase.CustomerStats{Total: len(summaries), TotalRevenue: decimal.Zero}
	for _, c := range summaries {
		if c.User.IsActive {
			stats.Active++
		} else {
			stats.Inactive++
		}
		stats.TotalOrders += c.TotalOrders
		stats.TotalRevenue = stats.TotalRevenue.Add(c.TotalSpent)
	}

	return stats
}

func (srv *customerService) ToggleActive(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, translateNotFound(err)
	}

	user.IsActive = !user.IsActive
	if err := srv.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Customer status toggled", slog.Any("userID", userID), slog.Bool("active", user.IsActive))

	return user, nil
}

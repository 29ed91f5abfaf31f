package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/listing"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/errors"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

const recentOrdersLimit = 5

type orderService struct {
	txManager   repository.TransactionManager
	orderRepo   repository.OrderRepository
	userRepo    repository.UserRepository
	productRepo repository.ProductRepository
	publisher   service.EventPublisher
	qrcode      service.QRCodeService
	logger      *slog.Logger
}

type OrderServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	OrderRepo   repository.OrderRepository
	UserRepo    repository.UserRepository
	ProductRepo repository.ProductRepository
	Publisher   service.EventPublisher
	QRCode      service.QRCodeService
	Logger      *slog.Logger
}

func NewOrderService(params OrderServiceParams) usecase.OrderUsecase {
	return &orderService{
		txManager:   params.TxManager,
		orderRepo:   params.OrderRepo,
		userRepo:    params.UserRepo,
		productRepo: params.ProductRepo,
		publisher:   params.Publisher,
		qrcode:      params.QRCode,
		logger:      params.Logger,
	}
}

func (srv *orderService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *orderService) MyOrders(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error) {
	return srv.orderRepo.ListByUser(ctx, userID)
}

// MyOrder hides other customers' orders behind a 404.
func (srv *orderService) MyOrder(ctx context.Context, userID, orderID uuid.UUID) (*entity.Order, error) {
	order, err := srv.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, domainerrors.ErrOrderNotFound
	}

	return order, nil
}

// TrackingQR renders the PNG tracking code for one of the caller's orders.
func (srv *orderService) TrackingQR(ctx context.Context, userID, orderID uuid.UUID) ([]byte, error) {
	order, err := srv.MyOrder(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}

	png, err := srv.qrcode.GenerateOrderQR(order.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate tracking code")
	}

	return png, nil
}

func (srv *orderService) List(ctx context.Context, filter usecase.OrderFilter) (*usecase.OrderView, error) {
	orders, err := srv.orderRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	filtered := listing.Apply(orders, orderComparator(filter.Sort),
		func(o *entity.Order) bool {
			name, email := customerOf(o)

			return listing.ContainsFold(filter.Query, o.ID.String(), name, email)
		},
		listing.Equals(filter.Status, func(o *entity.Order) string { return string(o.Status) }),
	)

	return &usecase.OrderView{Orders: filtered, Stats: orderStats(orders)}, nil
}

func customerOf(o *entity.Order) (string, string) {
	if o.Customer == nil {
		return "", ""
	}

	return o.Customer.Name, o.Customer.Email
}

func orderComparator(sort string) func(a, b *entity.Order) int {
	placedAt := func(o *entity.Order) time.Time { return o.PlacedAt }

	switch strings.ToLower(strings.TrimSpace(sort)) {
	case "oldest":
		return listing.Oldest(placedAt)
	case "highest":
		return func(a, b *entity.Order) int { return b.TotalAmount.Cmp(a.TotalAmount) }
	case "lowest":
		return func(a, b *entity.Order) int { return a.TotalAmount.Cmp(b.TotalAmount) }
	default:
		return listing.Newest(placedAt)
	}
}

func orderStats(orders []*entity.Order) usecase.OrderStats {
	stats := usecase.OrderStats{
		Total:        len(orders),
		ByStatus:     make(map[entity.OrderStatus]int, len(entity.OrderStatuses)),
		TotalRevenue: entity.Revenue(orders),
	}
	for _, s := range entity.OrderStatuses {
		stats.ByStatus[s] = 0
	}
	for _, o := range orders {
		stats.ByStatus[o.Status]++
	}

	return stats
}

func (srv *orderService) Get(ctx context.Context, orderID uuid.UUID) (*entity.Order, error) {
	order, err := srv.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, translateNotFound(err)
	}

	return order, nil
}

// UpdateStatus moves an order to any status. Cancel and Refund are the guarded paths.
func (srv *orderService) UpdateStatus(ctx context.Context, orderID uuid.UUID, status entity.OrderStatus) (*entity.Order, error) {
	if !status.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WithDetails("unknown order status " + string(status))
	}

	return srv.transition(ctx, orderID, status, nil)
}

func (srv *orderService) Cancel(ctx context.Context, orderID uuid.UUID) (*entity.Order, error) {
	return srv.transition(ctx, orderID, entity.OrderCancelled, func(o *entity.Order, _ repository.RepositoryFactory) error {
		if !o.CanCancel() {
			return domainerrors.ErrInvalidOrderTransition.WithDetails("only pending or paid orders can be cancelled")
		}

		return nil
	})
}

// Refund also marks the order's payment refunded.
func (srv *orderService) Refund(ctx context.Context, orderID uuid.UUID) (*entity.Order, error) {
	return srv.transition(ctx, orderID, entity.OrderRefunded, func(o *entity.Order, repoFactory repository.RepositoryFactory) error {
		if !o.CanRefund() {
			return domainerrors.ErrInvalidOrderTransition.WithDetails("only delivered orders can be refunded")
		}

		paymentRepo := repoFactory.PaymentRepo()
		payment, err := paymentRepo.FindByOrderID(ctx, o.ID)
		if errors.Is(err, repository.ErrPaymentNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		payment.Status = entity.PaymentRefunded
		if err := paymentRepo.Update(ctx, payment); err != nil {
			return err
		}
		o.Payment = payment

		return nil
	})
}

// transition loads the order, runs guard and persists the new status in one
// transaction, then publishes order.status_changed.
func (srv *orderService) transition(
	ctx context.Context,
	orderID uuid.UUID,
	status entity.OrderStatus,
	guard func(*entity.Order, repository.RepositoryFactory) error,
) (*entity.Order, error) {
	var (
		order    *entity.Order
		previous entity.OrderStatus
	)
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		orderRepo := repoFactory.OrderRepo()

		var err error
		order, err = orderRepo.FindByID(ctx, orderID)
		if err != nil {
			return translateNotFound(err)
		}
		if guard != nil {
			if err := guard(order, repoFactory); err != nil {
				return err
			}
		}

		previous = order.Status
		order.Status = status

		return orderRepo.UpdateStatus(ctx, order)
	})
	if err != nil {
		return nil, translateNotFound(err)
	}

	srv.log(ctx).Info("Order status changed",
		slog.Any("orderID", orderID),
		slog.String("from", string(previous)),
		slog.String("to", string(status)))

	publishOrderEvent(ctx, srv.publisher, srv.log(ctx), newOrderEvent(service.EventOrderStatusChanged, order, previous))

	return order, nil
}

// Dashboard summarises the store for the admin landing page.
func (srv *orderService) Dashboard(ctx context.Context) (*usecase.Dashboard, error) {
	orders, err := srv.orderRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	customers, err := srv.userRepo.CountByRole(ctx, entity.RoleUser)
	if err != nil {
		return nil, err
	}
	products, err := srv.productRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	recent, err := srv.orderRepo.ListRecent(ctx, recentOrdersLimit)
	if err != nil {
		return nil, err
	}

	return &usecase.Dashboard{
		TotalSales:     entity.Revenue(orders),
		TotalOrders:    len(orders),
		TotalCustomers: customers,
		TotalProducts:  products,
		RecentOrders:   recent,
	}, nil
}

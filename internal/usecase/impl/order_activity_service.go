package impl

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

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

type orderActivityService struct {
	orderRepo    repository.OrderRepository
	activityRepo repository.OrderActivityRepository
	logger       *slog.Logger
	now          func() time.Time
}

type OrderActivityServiceParams struct {
	fx.In

	OrderRepo    repository.OrderRepository
	ActivityRepo repository.OrderActivityRepository
	Logger       *slog.Logger
}

func NewOrderActivityService(params OrderActivityServiceParams) usecase.OrderActivityUsecase {
	return &orderActivityService{
		orderRepo:    params.OrderRepo,
		activityRepo: params.ActivityRepo,
		logger:       params.Logger,
		now:          time.Now,
	}
}

func (srv *orderActivityService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *orderActivityService) Record(ctx context.Context, messageID string, event *service.OrderEvent) (*entity.OrderActivity, error) {
	if messageID == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("message id is required")
	}
	if event == nil {
		return nil, domainerrors.ErrValidationFailed.WithDetails("event is required")
	}
	if event.Type != service.EventOrderPlaced && event.Type != service.EventOrderStatusChanged {
		return nil, domainerrors.ErrValidationFailed.WithDetails("unknown event type " + event.Type)
	}

	orderID, err := uuid.Parse(event.OrderID)
	if err != nil {
		return nil, domainerrors.ErrValidationFailed.WithDetails("invalid order id")
	}
	status := entity.OrderStatus(event.Status)
	previous := entity.OrderStatus(event.PreviousStatus)
	if !status.IsValid() || (previous != "" && !previous.IsValid()) {
		return nil, domainerrors.ErrValidationFailed.WithDetails("invalid order status")
	}

	if _, err := srv.orderRepo.FindByID(ctx, orderID); err != nil {
		return nil, translateNotFound(err)
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode order event")
	}

	occurredAt := event.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = srv.now().UTC()
	}

	activity := &entity.OrderActivity{
		OrderID:        orderID,
		MessageID:      messageID,
		Type:           event.Type,
		Status:         status,
		PreviousStatus: previous,
		RequestID:      event.RequestID,
		Payload:        payload,
		OccurredAt:     occurredAt,
	}

	written, err := srv.activityRepo.Record(ctx, activity)
	if err != nil {
		return nil, err
	}
	if !written {
		srv.log(ctx).Info("Order event already recorded",
			slog.String("messageID", messageID),
			slog.Any("orderID", orderID))

		return activity, nil
	}

	srv.log(ctx).Info("Order event recorded",
		slog.String("type", event.Type),
		slog.Any("orderID", orderID),
		slog.String("status", event.Status))

	return activity, nil
}

func (srv *orderActivityService) Timeline(ctx context.Context, orderID uuid.UUID) ([]*entity.OrderActivity, error) {
	if _, err := srv.orderRepo.FindByID(ctx, orderID); err != nil {
		return nil, translateNotFound(err)
	}

	return srv.activityRepo.ListByOrder(ctx, orderID)
}

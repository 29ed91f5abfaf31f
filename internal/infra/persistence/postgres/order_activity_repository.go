package postgres

import (
	"context"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/errors"
	"storefront/internal/infra/persistence/model"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type orderActivityRepository struct {
	db *gorm.DB
}

func NewOrderActivityRepository(db *gorm.DB) repository.OrderActivityRepository {
	return &orderActivityRepository{db: db}
}

func (repo *orderActivityRepository) Record(ctx context.Context, activity *entity.OrderActivity) (bool, error) {
	payload := activity.Payload
	if len(payload) == 0 {
		payload = []byte("{}")
	}

	row := &model.OrderActivityModel{
		UUIDKey:        model.UUIDKey{ID: activity.ID},
		OrderID:        activity.OrderID,
		MessageID:      activity.MessageID,
		Type:           activity.Type,
		Status:         string(activity.Status),
		PreviousStatus: string(activity.PreviousStatus),
		RequestID:      activity.RequestID,
		Payload:        datatypes.JSON(payload),
		OccurredAt:     activity.OccurredAt,
	}

	result := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "message_id"}}, DoNothing: true}).
		Create(row)
	if result.Error != nil {
		return false, domainerrors.NewDatabaseExecuteError(result.Error, "failed to record order activity")
	}
	if result.RowsAffected == 0 {
		return false, nil
	}

	activity.ID = row.ID
	activity.CreatedAt = row.CreatedAt

	return true, nil
}

func (repo *orderActivityRepository) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]*entity.OrderActivity, error) {
	var rows []*model.OrderActivityModel
	err := repo.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("occurred_at ASC").
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list order activity")
	}

	return mapSlice(rows, toOrderActivityDomain), nil
}

func toOrderActivityDomain(data *model.OrderActivityModel) *entity.OrderActivity {
	return &entity.OrderActivity{
		ID:             data.ID,
		OrderID:        data.OrderID,
		MessageID:      data.MessageID,
		Type:           data.Type,
		Status:         entity.OrderStatus(data.Status),
		PreviousStatus: entity.OrderStatus(data.PreviousStatus),
		RequestID:      data.RequestID,
		Payload:        []byte(data.Payload),
		OccurredAt:     data.OccurredAt,
		CreatedAt:      data.CreatedAt,
	}
}

package postgres

import (
	"context"
	"time"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/errors"
	"storefront/internal/infra/persistence/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"
)

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepository{db: db}
}

func (repo *orderRepository) query(ctx context.Context) *gorm.DB {
	return repo.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("User").
		Preload("Payment")
}

func (repo *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	orderM := fromOrderDomain(order)

	if err := repo.db.WithContext(ctx).Omit("User", "Payment").Create(orderM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrUserNotFound.WrapMessage("order customer does not exist")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create order")
	}

	order.ID = orderM.ID
	order.CreatedAt = orderM.CreatedAt
	order.UpdatedAt = orderM.UpdatedAt

	return nil
}

// FindByID reads from the primary so a status change made by the same
// request is visible immediately.
func (repo *orderRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	var orderM model.OrderModel
	if err := repo.query(ctx).Clauses(dbresolver.Write).First(&orderM, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find order by id")
	}

	return toOrderDomain(&orderM), nil
}

func (repo *orderRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error) {
	var rows []*model.OrderModel
	err := repo.query(ctx).
		Where("user_id = ?", userID).
		Order("placed_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list orders for user")
	}

	return mapSlice(rows, toOrderDomain), nil
}

func (repo *orderRepository) ListAll(ctx context.Context) ([]*entity.Order, error) {
	var rows []*model.OrderModel
	if err := repo.query(ctx).Order("placed_at DESC").Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list orders")
	}

	return mapSlice(rows, toOrderDomain), nil
}

func (repo *orderRepository) ListRecent(ctx context.Context, limit int) ([]*entity.Order, error) {
	var rows []*model.OrderModel
	if err := repo.query(ctx).Order("placed_at DESC").Limit(limit).Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list recent orders")
	}

	return mapSlice(rows, toOrderDomain), nil
}

// UpdateStatus writes Status and stamps UpdatedAt on order.
func (repo *orderRepository) UpdateStatus(ctx context.Context, order *entity.Order) error {
	now := time.Now()
	result := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Where("id = ?", order.ID).
		Updates(map[string]any{"status": string(order.Status), "updated_at": now})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update order status")
	}
	if result.RowsAffected == 0 {
		return repository.ErrOrderNotFound
	}
	order.UpdatedAt = now

	return nil
}

func (repo *orderRepository) AttachPayment(ctx context.Context, orderID, paymentID uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Where("id = ?", orderID).
		Update("payment_id", paymentID)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to attach payment")
	}
	if result.RowsAffected == 0 {
		return repository.ErrOrderNotFound
	}

	return nil
}

type paymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) repository.PaymentRepository {
	return &paymentRepository{db: db}
}

func (repo *paymentRepository) Create(ctx context.Context, payment *entity.Payment) error {
	paymentM := fromPaymentDomain(payment)

	if err := repo.db.WithContext(ctx).Create(paymentM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to create payment")
	}

	payment.ID = paymentM.ID
	payment.CreatedAt = paymentM.CreatedAt
	payment.UpdatedAt = paymentM.UpdatedAt

	return nil
}

func (repo *paymentRepository) FindByOrderID(ctx context.Context, orderID uuid.UUID) (*entity.Payment, error) {
	var paymentM model.PaymentModel
	if err := repo.db.WithContext(ctx).First(&paymentM, "order_id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrPaymentNotFound
		}

		return nil, errors.Wrap(err, "failed to find payment")
	}

	return toPaymentDomain(&paymentM), nil
}

func (repo *paymentRepository) Update(ctx context.Context, payment *entity.Payment) error {
	paymentM := fromPaymentDomain(payment)

	if err := repo.db.WithContext(ctx).Save(paymentM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to update payment")
	}
	payment.UpdatedAt = paymentM.UpdatedAt

	return nil
}

type inventoryRepository struct {
	db *gorm.DB
}

func NewInventoryRepository(db *gorm.DB) repository.InventoryRepository {
	return &inventoryRepository{db: db}
}

func (repo *inventoryRepository) Append(ctx context.Context, entries ...*entity.InventoryEntry) error {
	if len(entries) == 0 {
		return nil
	}

	rows := make([]*model.InventoryEntryModel, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, &model.InventoryEntryModel{
			UUIDKey:   model.UUIDKey{ID: e.ID},
			ProductID: e.ProductID,
			Change:    e.Change,
			Reason:    string(e.Reason),
			OrderID:   e.OrderID,
			CreatedBy: e.CreatedBy,
		})
	}

	if err := repo.db.WithContext(ctx).Create(&rows).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to append inventory entries")
	}

	for i, row := range rows {
		entries[i].ID = row.ID
		entries[i].CreatedAt = row.CreatedAt
	}

	return nil
}

func (repo *inventoryRepository) List(ctx context.Context, productID *uuid.UUID, limit int) ([]*entity.InventoryEntry, error) {
	db := repo.db.WithContext(ctx).Order("created_at DESC").Order("id DESC")
	if productID != nil {
		db = db.Where("product_id = ?", *productID)
	}
	if limit > 0 {
		db = db.Limit(limit)
	}

	var rows []*model.InventoryEntryModel
	if err := db.Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list inventory entries")
	}

	return mapSlice(rows, toInventoryEntryDomain), nil
}

// --- Mapper Functions ---

func toOrderDomain(data *model.OrderModel) *entity.Order {
	items := make([]entity.OrderItem, 0, len(data.Items))
	for _, item := range data.Items {
		items = append(items, entity.OrderItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
			Total:     item.Total,
		})
	}

	var payment *entity.Payment
	if data.Payment != nil {
		payment = toPaymentDomain(data.Payment)
	}

	return &entity.Order{
		ID:              data.ID,
		UserID:          data.UserID,
		Customer:        toUserDomain(data.User),
		Items:           items,
		ShippingAddress: toShippingDomain(data.Shipping),
		Delivery:        toDeliveryDomain(data.Delivery),
		PaymentID:       data.PaymentID,
		Payment:         payment,
		TotalAmount:     data.TotalAmount,
		Currency:        data.Currency,
		Status:          entity.OrderStatus(data.Status),
		PlacedAt:        data.PlacedAt,
		CreatedAt:       data.CreatedAt,
		UpdatedAt:       data.UpdatedAt,
	}
}

func fromOrderDomain(data *entity.Order) *model.OrderModel {
	items := make([]model.OrderItemModel, 0, len(data.Items))
	for i, item := range data.Items {
		items = append(items, model.OrderItemModel{
			Position:  i,
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
			Total:     item.Total,
		})
	}

	return &model.OrderModel{
		UUIDKey:     model.UUIDKey{ID: data.ID},
		UserID:      data.UserID,
		Items:       items,
		Shipping:    fromShippingDomain(data.ShippingAddress),
		Delivery:    fromDeliveryDomain(data.Delivery),
		PaymentID:   data.PaymentID,
		TotalAmount: data.TotalAmount,
		Currency:    data.Currency,
		Status:      string(data.Status),
		PlacedAt:    data.PlacedAt,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}

func toPaymentDomain(data *model.PaymentModel) *entity.Payment {
	return &entity.Payment{
		ID:            data.ID,
		OrderID:       data.OrderID,
		UserID:        data.UserID,
		Method:        entity.PaymentMethod(data.Method),
		Provider:      entity.PaymentProvider(data.Provider),
		TransactionID: data.TransactionID,
		Amount:        data.Amount,
		Currency:      data.Currency,
		Status:        entity.PaymentStatus(data.Status),
		PaidAt:        data.PaidAt,
		CreatedAt:     data.CreatedAt,
		UpdatedAt:     data.UpdatedAt,
	}
}

func fromPaymentDomain(data *entity.Payment) *model.PaymentModel {
	return &model.PaymentModel{
		UUIDKey:       model.UUIDKey{ID: data.ID},
		OrderID:       data.OrderID,
		UserID:        data.UserID,
		Method:        string(data.Method),
		Provider:      string(data.Provider),
		TransactionID: data.TransactionID,
		Amount:        data.Amount,
		Currency:      data.Currency,
		Status:        string(data.Status),
		PaidAt:        data.PaidAt,
		CreatedAt:     data.CreatedAt,
		UpdatedAt:     data.UpdatedAt,
	}
}

func toInventoryEntryDomain(data *model.InventoryEntryModel) *entity.InventoryEntry {
	return &entity.InventoryEntry{
		ID:        data.ID,
		ProductID: data.ProductID,
		Change:    data.Change,
		Reason:    entity.InventoryReason(data.Reason),
		OrderID:   data.OrderID,
		CreatedBy: data.CreatedBy,
		CreatedAt: data.CreatedAt,
	}
}

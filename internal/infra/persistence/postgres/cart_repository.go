package postgres

import (
	"context"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/errors"
	"storefront/internal/infra/persistence/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type cartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) repository.CartRepository {
	return &cartRepository{db: db}
}

func (repo *cartRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Cart, error) {
	var cartM model.CartModel
	err := repo.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		First(&cartM, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCartNotFound
		}

		return nil, errors.Wrap(err, "failed to find cart")
	}

	return toCartDomain(&cartM), nil
}

// Save upserts the cart row and rewrites its lines. Callers that need the
// two statements to be atomic run it inside a transaction.
func (repo *cartRepository) Save(ctx context.Context, cart *entity.Cart) error {
	cartM := fromCartDomain(cart)
	db := repo.db.WithContext(ctx)

	var err error
	if cartM.ID == uuid.Nil {
		err = db.Omit(clause.Associations).Create(cartM).Error
	} else {
		err = db.Omit(clause.Associations).Save(cartM).Error
	}
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to save cart")
	}

	if err := db.Where("cart_id = ?", cartM.ID).Delete(&model.CartItemModel{}).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to clear cart items")
	}
	if len(cartM.Items) > 0 {
		for i := range cartM.Items {
			cartM.Items[i].CartID = cartM.ID
		}
		if err := db.Create(&cartM.Items).Error; err != nil {
			return domainerrors.NewDatabaseExecuteError(err, "failed to save cart items")
		}
	}

	cart.ID = cartM.ID
	cart.CreatedAt = cartM.CreatedAt
	cart.UpdatedAt = cartM.UpdatedAt

	return nil
}

// DeleteByUserID removes the cart and its lines. A missing cart is not an error.
func (repo *cartRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	db := repo.db.WithContext(ctx)
	err := db.Where("cart_id IN (?)", db.Model(&model.CartModel{}).Select("id").Where("user_id = ?", userID)).
		Delete(&model.CartItemModel{}).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete cart items")
	}
	if err := db.Delete(&model.CartModel{}, "user_id = ?", userID).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete cart")
	}

	return nil
}

type checkoutRepository struct {
	db *gorm.DB
}

func NewCheckoutRepository(db *gorm.DB) repository.CheckoutRepository {
	return &checkoutRepository{db: db}
}

func (repo *checkoutRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Checkout, error) {
	var checkoutM model.CheckoutModel
	if err := repo.db.WithContext(ctx).First(&checkoutM, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCheckoutNotFound
		}

		return nil, errors.Wrap(err, "failed to find checkout")
	}

	return toCheckoutDomain(&checkoutM), nil
}

func (repo *checkoutRepository) Save(ctx context.Context, checkout *entity.Checkout) error {
	checkoutM := fromCheckoutDomain(checkout)
	db := repo.db.WithContext(ctx)

	var err error
	if checkoutM.ID == uuid.Nil {
		err = db.Create(checkoutM).Error
	} else {
		err = db.Save(checkoutM).Error
	}
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to save checkout")
	}

	checkout.ID = checkoutM.ID
	checkout.CreatedAt = checkoutM.CreatedAt
	checkout.UpdatedAt = checkoutM.UpdatedAt

	return nil
}

func (repo *checkoutRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	err := repo.db.WithContext(ctx).Delete(&model.CheckoutModel{}, "user_id = ?", userID).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete checkout")
	}

	return nil
}

// --- Mapper Functions ---

func toCartDomain(data *model.CartModel) *entity.Cart {
	items := make([]entity.CartItem, 0, len(data.Items))
	for _, item := range data.Items {
		items = append(items, entity.CartItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Image:     item.Image,
			Quantity:  item.Quantity,
			Price:     item.Price,
			Total:     item.Total,
		})
	}

	return &entity.Cart{
		ID:         data.ID,
		UserID:     data.UserID,
		Items:      items,
		TotalItems: data.TotalItems,
		TotalPrice: data.TotalPrice,
		Currency:   data.Currency,
		CreatedAt:  data.CreatedAt,
		UpdatedAt:  data.UpdatedAt,
	}
}

func fromCartDomain(data *entity.Cart) *model.CartModel {
	items := make([]model.CartItemModel, 0, len(data.Items))
	for i, item := range data.Items {
		items = append(items, model.CartItemModel{
			CartID:    data.ID,
			Position:  i,
			ProductID: item.ProductID,
			Name:      item.Name,
			Image:     item.Image,
			Quantity:  item.Quantity,
			Price:     item.Price,
			Total:     item.Total,
		})
	}

	return &model.CartModel{
		UUIDKey:    model.UUIDKey{ID: data.ID},
		UserID:     data.UserID,
		Items:      items,
		TotalItems: data.TotalItems,
		TotalPrice: data.TotalPrice,
		Currency:   data.Currency,
		CreatedAt:  data.CreatedAt,
		UpdatedAt:  data.UpdatedAt,
	}
}

func toCheckoutDomain(data *model.CheckoutModel) *entity.Checkout {
	return &entity.Checkout{
		ID:       data.ID,
		UserID:   data.UserID,
		Address:  toShippingDomain(data.Shipping),
		Delivery: toDeliveryDomain(data.Delivery),
		Payment: entity.PaymentDetails{
			Provider:   entity.PaymentProvider(data.PaymentProvider),
			Phone:      data.PaymentPhone,
			CardName:   data.PaymentCardName,
			CardExpiry: data.PaymentCardExpiry,
			CardLast4:  data.PaymentCardLast4,
		},
		AddressComplete:  data.AddressComplete,
		DeliveryComplete: data.DeliveryComplete,
		PaymentComplete:  data.PaymentComplete,
		CreatedAt:        data.CreatedAt,
		UpdatedAt:        data.UpdatedAt,
	}
}

// fromCheckoutDomain has no columns for the full card number or CVV.
func fromCheckoutDomain(data *entity.Checkout) *model.CheckoutModel {
	return &model.CheckoutModel{
		UUIDKey:           model.UUIDKey{ID: data.ID},
		UserID:            data.UserID,
		Shipping:          fromShippingDomain(data.Address),
		Delivery:          fromDeliveryDomain(data.Delivery),
		PaymentProvider:   string(data.Payment.Provider),
		PaymentPhone:      data.Payment.Phone,
		PaymentCardName:   data.Payment.CardName,
		PaymentCardExpiry: data.Payment.CardExpiry,
		PaymentCardLast4:  data.Payment.CardLast4,
		AddressComplete:   data.AddressComplete,
		DeliveryComplete:  data.DeliveryComplete,
		PaymentComplete:   data.PaymentComplete,
		CreatedAt:         data.CreatedAt,
		UpdatedAt:         data.UpdatedAt,
	}
}

func toShippingDomain(data model.ShippingColumns) entity.ShippingAddress {
	return entity.ShippingAddress{
		FirstName: data.FirstName,
		LastName:  data.LastName,
		Phone:     data.Phone,
		Email:     data.Email,
		Address:   data.Address,
		Region:    data.Region,
		City:      data.City,
	}
}

func fromShippingDomain(data entity.ShippingAddress) model.ShippingColumns {
	return model.ShippingColumns{
		FirstName: data.FirstName,
		LastName:  data.LastName,
		Phone:     data.Phone,
		Email:     data.Email,
		Address:   data.Address,
		Region:    data.Region,
		City:      data.City,
	}
}

func toDeliveryDomain(data model.DeliveryColumns) entity.DeliveryDetails {
	return entity.DeliveryDetails{Method: data.Method, Date: data.Date, Time: data.Time}
}

func fromDeliveryDomain(data entity.DeliveryDetails) model.DeliveryColumns {
	return model.DeliveryColumns{Method: data.Method, Date: data.Date, Time: data.Time}
}

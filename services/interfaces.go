package services

import (
	"context"

	"food-ordering-backend/models"
	"food-ordering-backend/rbac"
)

// OrderStore is the persistence contract the order lifecycle runs against.
// WithTransaction must give fn a serializable read-validate-write unit: no
// other writer may interleave on the entities fn touches. Lookups return
// ErrNotFound when the entity is absent and ErrTransient on timeouts.
type OrderStore interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	RestaurantByID(ctx context.Context, restaurantID string) (*models.Restaurant, error)
	MenuItemByID(ctx context.Context, menuItemID string) (*models.MenuItem, error)
	PaymentMethodByID(ctx context.Context, paymentMethodID string) (*models.PaymentMethod, error)

	OrderByID(ctx context.Context, orderID string) (*models.Order, error)
	OrderItemsByOrder(ctx context.Context, orderID string) ([]models.OrderItem, error)
	InsertOrder(ctx context.Context, order *models.Order) error
	InsertOrderItem(ctx context.Context, item *models.OrderItem) error
	AddToOrderTotal(ctx context.Context, orderID string, delta int64) error

	// UpdateOrderStatus is a compare-and-swap: the write applies only while
	// the order still has status from. It reports whether the swap happened.
	UpdateOrderStatus(ctx context.Context, orderID, from, to string, total *int64, paymentMethodID *string) (bool, error)

	ListOrders(ctx context.Context, scope rbac.CountryScope, startIndex, recordPerPage int64) ([]models.Order, error)
}

// PaymentStore is the persistence contract for payment methods.
type PaymentStore interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	PaymentMethodByID(ctx context.Context, paymentMethodID string) (*models.PaymentMethod, error)
	InsertPaymentMethod(ctx context.Context, method *models.PaymentMethod) error
	UpdatePaymentMethod(ctx context.Context, paymentMethodID string, provider *string, isDefault *bool) error
	ClearDefaultFlags(ctx context.Context, userID, exceptID string) error
	SetDefaultFlag(ctx context.Context, paymentMethodID string) error
	ListPaymentMethods(ctx context.Context, userID string, startIndex, recordPerPage int64) ([]models.PaymentMethod, error)
}

package services

import (
	"context"
	"fmt"
	"time"

	"food-ordering-backend/models"
	"food-ordering-backend/rbac"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderService owns the order state machine. Every mutation authorizes
// first, then validates and writes inside one store transaction, so a
// deny or a failed precondition never leaves a partial write behind.
type OrderService struct {
	store OrderStore
}

func NewOrderService(store OrderStore) *OrderService {
	return &OrderService{store: store}
}

// restaurantCountry resolves the country an order is scoped to.
func (s *OrderService) restaurantCountry(ctx context.Context, restaurantID string) (string, error) {
	restaurant, err := s.store.RestaurantByID(ctx, restaurantID)
	if err != nil {
		return "", err
	}
	return *restaurant.Country, nil
}

func (s *OrderService) CreateOrder(ctx context.Context, principal rbac.Principal, restaurantID string) (*models.Order, error) {
	country, err := s.restaurantCountry(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	if err := rbac.Authorize(principal, rbac.ActionCreateOrder, country); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	order := models.Order{
		ID:            primitive.NewObjectID(),
		User_id:       &principal.Uid,
		Restaurant_id: &restaurantID,
		Status:        models.StatusCreated,
		Total_amount:  0,
		Created_at:    now,
		Updated_at:    now,
	}
	order.Order_id = order.ID.Hex()

	if err := s.store.InsertOrder(ctx, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *OrderService) AddItem(ctx context.Context, principal rbac.Principal, orderID, menuItemID string, quantity int64) (*models.OrderItem, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be at least 1", ErrInvalidState)
	}

	var item *models.OrderItem
	err := s.store.WithTransaction(ctx, func(ctx context.Context) error {
		order, err := s.store.OrderByID(ctx, orderID)
		if err != nil {
			return err
		}
		country, err := s.restaurantCountry(ctx, *order.Restaurant_id)
		if err != nil {
			return err
		}
		if err := rbac.Authorize(principal, rbac.ActionAddOrderItem, country); err != nil {
			return err
		}
		if principal.Role != rbac.RoleAdmin && *order.User_id != principal.Uid {
			return fmt.Errorf("%w: not your order", rbac.ErrPermissionDenied)
		}
		if order.Status != models.StatusCreated {
			return fmt.Errorf("%w: order is %s", ErrInvalidState, order.Status)
		}

		menuItem, err := s.store.MenuItemByID(ctx, menuItemID)
		if err != nil {
			return err
		}
		if *menuItem.Restaurant_id != *order.Restaurant_id {
			return fmt.Errorf("%w: menu item belongs to another restaurant", ErrNotFound)
		}
		if menuItem.Is_available == nil || !*menuItem.Is_available {
			return fmt.Errorf("%w: menu item unavailable", ErrNotFound)
		}

		now := time.Now().UTC()
		unitPrice := *menuItem.Price
		item = &models.OrderItem{
			ID:           primitive.NewObjectID(),
			Order_id:     &orderID,
			Menu_item_id: &menuItemID,
			Quantity:     &quantity,
			Unit_price:   &unitPrice,
			Created_at:   now,
			Updated_at:   now,
		}
		item.Order_item_id = item.ID.Hex()

		if err := s.store.InsertOrderItem(ctx, item); err != nil {
			return err
		}
		// Running total is display-only; checkout recomputes from snapshots.
		return s.store.AddToOrderTotal(ctx, orderID, quantity*unitPrice)
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (s *OrderService) Checkout(ctx context.Context, principal rbac.Principal, orderID, paymentMethodID string) (*models.Order, error) {
	var placed *models.Order
	err := s.store.WithTransaction(ctx, func(ctx context.Context) error {
		order, err := s.store.OrderByID(ctx, orderID)
		if err != nil {
			return err
		}
		country, err := s.restaurantCountry(ctx, *order.Restaurant_id)
		if err != nil {
			return err
		}
		if err := rbac.Authorize(principal, rbac.ActionCheckoutOrder, country); err != nil {
			return err
		}
		if !models.CanTransition(order.Status, models.StatusPlaced) {
			return fmt.Errorf("%w: cannot checkout a %s order", ErrInvalidState, order.Status)
		}

		items, err := s.store.OrderItemsByOrder(ctx, orderID)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return fmt.Errorf("%w: order has no items", ErrInvalidState)
		}

		method, err := s.store.PaymentMethodByID(ctx, paymentMethodID)
		if err != nil {
			return err
		}
		if *method.User_id != *order.User_id {
			return fmt.Errorf("%w: payment method does not belong to the ordering user", ErrNotFound)
		}

		// Authoritative total, computed from the unit price snapshots only.
		var total int64
		for _, it := range items {
			total += *it.Quantity * *it.Unit_price
		}

		swapped, err := s.store.UpdateOrderStatus(ctx, orderID, models.StatusCreated, models.StatusPlaced, &total, &paymentMethodID)
		if err != nil {
			return err
		}
		if !swapped {
			return fmt.Errorf("%w: order already left %s", ErrInvalidState, models.StatusCreated)
		}

		order.Status = models.StatusPlaced
		order.Total_amount = total
		order.Payment_method_id = &paymentMethodID
		placed = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return placed, nil
}

func (s *OrderService) Cancel(ctx context.Context, principal rbac.Principal, orderID string) (*models.Order, error) {
	var cancelled *models.Order
	err := s.store.WithTransaction(ctx, func(ctx context.Context) error {
		order, err := s.store.OrderByID(ctx, orderID)
		if err != nil {
			return err
		}
		country, err := s.restaurantCountry(ctx, *order.Restaurant_id)
		if err != nil {
			return err
		}
		if err := rbac.Authorize(principal, rbac.ActionCancelOrder, country); err != nil {
			return err
		}
		if !models.CanTransition(order.Status, models.StatusCancelled) {
			return fmt.Errorf("%w: cannot cancel a %s order", ErrInvalidState, order.Status)
		}

		swapped, err := s.store.UpdateOrderStatus(ctx, orderID, models.StatusPlaced, models.StatusCancelled, nil, nil)
		if err != nil {
			return err
		}
		if !swapped {
			return fmt.Errorf("%w: order already left %s", ErrInvalidState, models.StatusPlaced)
		}

		order.Status = models.StatusCancelled
		cancelled = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cancelled, nil
}

// ListOrders returns the orders visible to principal: every country for
// ADMIN, the principal's own country for everyone else.
func (s *OrderService) ListOrders(ctx context.Context, principal rbac.Principal, startIndex, recordPerPage int64) ([]models.Order, error) {
	scope := rbac.ScopeFilter(principal)
	return s.store.ListOrders(ctx, scope, startIndex, recordPerPage)
}

// GetOrder fetches one order, hiding it behind ErrNotFound when the order's
// country is outside the principal's scope.
func (s *OrderService) GetOrder(ctx context.Context, principal rbac.Principal, orderID string) (*models.Order, error) {
	order, err := s.store.OrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	country, err := s.restaurantCountry(ctx, *order.Restaurant_id)
	if err != nil {
		return nil, err
	}
	if !rbac.ScopeFilter(principal).Matches(country) {
		return nil, fmt.Errorf("%w: order not in scope", ErrNotFound)
	}
	return order, nil
}

func (s *OrderService) GetOrderItems(ctx context.Context, principal rbac.Principal, orderID string) ([]models.OrderItem, error) {
	if _, err := s.GetOrder(ctx, principal, orderID); err != nil {
		return nil, err
	}
	return s.store.OrderItemsByOrder(ctx, orderID)
}

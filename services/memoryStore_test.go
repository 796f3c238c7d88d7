package services

import (
	"context"
	"sync"
	"time"

	"food-ordering-backend/models"
	"food-ordering-backend/rbac"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// memoryStore is a test double for OrderStore and PaymentStore. Transactions
// serialize on txMu, which gives the same no-interleaving guarantee the Mongo
// session transaction provides in production; mu keeps individual map
// accesses race-free.
type memoryStore struct {
	txMu sync.Mutex
	mu   sync.Mutex

	restaurants    map[string]models.Restaurant
	menuItems      map[string]models.MenuItem
	orders         map[string]models.Order
	orderSeq       []string
	orderItems     map[string][]models.OrderItem
	paymentMethods map[string]models.PaymentMethod
	paymentSeq     []string
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		restaurants:    make(map[string]models.Restaurant),
		menuItems:      make(map[string]models.MenuItem),
		orders:         make(map[string]models.Order),
		orderItems:     make(map[string][]models.OrderItem),
		paymentMethods: make(map[string]models.PaymentMethod),
	}
}

func (m *memoryStore) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.txMu.Lock()
	defer m.txMu.Unlock()
	return fn(ctx)
}

func (m *memoryStore) RestaurantByID(ctx context.Context, restaurantID string) (*models.Restaurant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	restaurant, ok := m.restaurants[restaurantID]
	if !ok {
		return nil, ErrNotFound
	}
	return &restaurant, nil
}

func (m *memoryStore) MenuItemByID(ctx context.Context, menuItemID string) (*models.MenuItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	menuItem, ok := m.menuItems[menuItemID]
	if !ok {
		return nil, ErrNotFound
	}
	return &menuItem, nil
}

func (m *memoryStore) PaymentMethodByID(ctx context.Context, paymentMethodID string) (*models.PaymentMethod, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	method, ok := m.paymentMethods[paymentMethodID]
	if !ok {
		return nil, ErrNotFound
	}
	return &method, nil
}

func (m *memoryStore) OrderByID(ctx context.Context, orderID string) (*models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	order, ok := m.orders[orderID]
	if !ok {
		return nil, ErrNotFound
	}
	return &order, nil
}

func (m *memoryStore) OrderItemsByOrder(ctx context.Context, orderID string) ([]models.OrderItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	items := make([]models.OrderItem, len(m.orderItems[orderID]))
	copy(items, m.orderItems[orderID])
	return items, nil
}

func (m *memoryStore) InsertOrder(ctx context.Context, order *models.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders[order.Order_id] = *order
	m.orderSeq = append(m.orderSeq, order.Order_id)
	return nil
}

func (m *memoryStore) InsertOrderItem(ctx context.Context, item *models.OrderItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orderItems[*item.Order_id] = append(m.orderItems[*item.Order_id], *item)
	return nil
}

func (m *memoryStore) AddToOrderTotal(ctx context.Context, orderID string, delta int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	order, ok := m.orders[orderID]
	if !ok {
		return ErrNotFound
	}
	order.Total_amount += delta
	m.orders[orderID] = order
	return nil
}

func (m *memoryStore) UpdateOrderStatus(ctx context.Context, orderID, from, to string, total *int64, paymentMethodID *string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	order, ok := m.orders[orderID]
	if !ok || order.Status != from {
		return false, nil
	}
	order.Status = to
	order.Updated_at = time.Now().UTC()
	if total != nil {
		order.Total_amount = *total
	}
	if paymentMethodID != nil {
		id := *paymentMethodID
		order.Payment_method_id = &id
	}
	m.orders[orderID] = order
	return true, nil
}

func (m *memoryStore) ListOrders(ctx context.Context, scope rbac.CountryScope, startIndex, recordPerPage int64) ([]models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var visible []models.Order
	for _, id := range m.orderSeq {
		order := m.orders[id]
		restaurant, ok := m.restaurants[*order.Restaurant_id]
		if !ok || !scope.Matches(*restaurant.Country) {
			continue
		}
		visible = append(visible, order)
	}
	if startIndex >= int64(len(visible)) {
		return nil, nil
	}
	visible = visible[startIndex:]
	if recordPerPage < int64(len(visible)) {
		visible = visible[:recordPerPage]
	}
	return visible, nil
}

func (m *memoryStore) InsertPaymentMethod(ctx context.Context, method *models.PaymentMethod) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.paymentMethods[method.Payment_method_id] = *method
	m.paymentSeq = append(m.paymentSeq, method.Payment_method_id)
	return nil
}

func (m *memoryStore) UpdatePaymentMethod(ctx context.Context, paymentMethodID string, provider *string, isDefault *bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	method, ok := m.paymentMethods[paymentMethodID]
	if !ok {
		return ErrNotFound
	}
	if provider != nil {
		method.Provider = provider
	}
	if isDefault != nil {
		method.Is_default = *isDefault
	}
	m.paymentMethods[paymentMethodID] = method
	return nil
}

func (m *memoryStore) ClearDefaultFlags(ctx context.Context, userID, exceptID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, method := range m.paymentMethods {
		if *method.User_id == userID && id != exceptID && method.Is_default {
			method.Is_default = false
			m.paymentMethods[id] = method
		}
	}
	return nil
}

func (m *memoryStore) SetDefaultFlag(ctx context.Context, paymentMethodID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	method, ok := m.paymentMethods[paymentMethodID]
	if !ok {
		return ErrNotFound
	}
	method.Is_default = true
	m.paymentMethods[paymentMethodID] = method
	return nil
}

func (m *memoryStore) ListPaymentMethods(ctx context.Context, userID string, startIndex, recordPerPage int64) ([]models.PaymentMethod, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var methods []models.PaymentMethod
	for _, id := range m.paymentSeq {
		method := m.paymentMethods[id]
		if *method.User_id == userID {
			methods = append(methods, method)
		}
	}
	if startIndex >= int64(len(methods)) {
		return nil, nil
	}
	methods = methods[startIndex:]
	if recordPerPage < int64(len(methods)) {
		methods = methods[:recordPerPage]
	}
	return methods, nil
}

// seeding helpers

func (m *memoryStore) seedRestaurant(id, name, country string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.restaurants[id] = models.Restaurant{
		ID:            primitive.NewObjectID(),
		Restaurant_id: id,
		Name:          &name,
		Country:       &country,
	}
}

func (m *memoryStore) seedMenuItem(id, restaurantID string, price int64, available bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	name := "item " + id
	m.menuItems[id] = models.MenuItem{
		ID:            primitive.NewObjectID(),
		Menu_item_id:  id,
		Restaurant_id: &restaurantID,
		Name:          &name,
		Price:         &price,
		Is_available:  &available,
	}
}

func (m *memoryStore) setMenuItemPrice(id string, price int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	menuItem := m.menuItems[id]
	menuItem.Price = &price
	m.menuItems[id] = menuItem
}

func (m *memoryStore) seedPaymentMethod(id, userID string, isDefault bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	methodType := "CARD"
	provider := "visa"
	lastFour := "4242"
	m.paymentMethods[id] = models.PaymentMethod{
		ID:                primitive.NewObjectID(),
		Payment_method_id: id,
		User_id:           &userID,
		Type:              &methodType,
		Provider:          &provider,
		Last_four:         &lastFour,
		Is_default:        isDefault,
	}
	m.paymentSeq = append(m.paymentSeq, id)
}

func (m *memoryStore) defaultCount(userID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for _, method := range m.paymentMethods {
		if *method.User_id == userID && method.Is_default {
			count++
		}
	}
	return count
}

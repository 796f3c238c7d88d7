package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"food-ordering-backend/database"
	"food-ordering-backend/models"
	"food-ordering-backend/rbac"
	"food-ordering-backend/services"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore implements services.OrderStore and services.PaymentStore.
// Multi-document units run in a driver session transaction; single-document
// status changes are a filtered UpdateOne, so the expected current status is
// part of the write itself.
type MongoStore struct {
	client         *mongo.Client
	restaurants    *mongo.Collection
	menuItems      *mongo.Collection
	orders         *mongo.Collection
	orderItems     *mongo.Collection
	paymentMethods *mongo.Collection
}

func NewMongoStore(client *mongo.Client) *MongoStore {
	return &MongoStore{
		client:         client,
		restaurants:    database.OpenCollection(client, "restaurant"),
		menuItems:      database.OpenCollection(client, "menuItem"),
		orders:         database.OpenCollection(client, "order"),
		orderItems:     database.OpenCollection(client, "orderItem"),
		paymentMethods: database.OpenCollection(client, "paymentMethod"),
	}
}

// storeErr keeps service-level errors intact and folds driver failures into
// the taxonomy: no document -> NotFound, anything else -> Transient.
func storeErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, services.ErrNotFound) ||
		errors.Is(err, services.ErrInvalidState) ||
		errors.Is(err, services.ErrTransient) ||
		errors.Is(err, rbac.ErrPermissionDenied) {
		return err
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return services.ErrNotFound
	}
	return fmt.Errorf("%w: %v", services.ErrTransient, err)
}

func (s *MongoStore) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	session, err := s.client.StartSession()
	if err != nil {
		return storeErr(err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return storeErr(err)
}

func (s *MongoStore) RestaurantByID(ctx context.Context, restaurantID string) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	err := s.restaurants.FindOne(ctx, bson.M{"restaurant_id": restaurantID}).Decode(&restaurant)
	if err != nil {
		return nil, storeErr(err)
	}
	return &restaurant, nil
}

func (s *MongoStore) MenuItemByID(ctx context.Context, menuItemID string) (*models.MenuItem, error) {
	var menuItem models.MenuItem
	err := s.menuItems.FindOne(ctx, bson.M{"menu_item_id": menuItemID}).Decode(&menuItem)
	if err != nil {
		return nil, storeErr(err)
	}
	return &menuItem, nil
}

func (s *MongoStore) PaymentMethodByID(ctx context.Context, paymentMethodID string) (*models.PaymentMethod, error) {
	var method models.PaymentMethod
	err := s.paymentMethods.FindOne(ctx, bson.M{"payment_method_id": paymentMethodID}).Decode(&method)
	if err != nil {
		return nil, storeErr(err)
	}
	return &method, nil
}

func (s *MongoStore) OrderByID(ctx context.Context, orderID string) (*models.Order, error) {
	var order models.Order
	err := s.orders.FindOne(ctx, bson.M{"order_id": orderID}).Decode(&order)
	if err != nil {
		return nil, storeErr(err)
	}
	return &order, nil
}

func (s *MongoStore) OrderItemsByOrder(ctx context.Context, orderID string) ([]models.OrderItem, error) {
	cursor, err := s.orderItems.Find(ctx, bson.M{"order_id": orderID})
	if err != nil {
		return nil, storeErr(err)
	}
	var items []models.OrderItem
	if err := cursor.All(ctx, &items); err != nil {
		return nil, storeErr(err)
	}
	return items, nil
}

func (s *MongoStore) InsertOrder(ctx context.Context, order *models.Order) error {
	_, err := s.orders.InsertOne(ctx, order)
	return storeErr(err)
}

func (s *MongoStore) InsertOrderItem(ctx context.Context, item *models.OrderItem) error {
	_, err := s.orderItems.InsertOne(ctx, item)
	return storeErr(err)
}

func (s *MongoStore) AddToOrderTotal(ctx context.Context, orderID string, delta int64) error {
	_, err := s.orders.UpdateOne(
		ctx,
		bson.M{"order_id": orderID},
		bson.D{
			{Key: "$inc", Value: bson.D{{Key: "total_amount", Value: delta}}},
			{Key: "$set", Value: bson.D{{Key: "updated_at", Value: time.Now().UTC()}}},
		},
	)
	return storeErr(err)
}

func (s *MongoStore) UpdateOrderStatus(ctx context.Context, orderID, from, to string, total *int64, paymentMethodID *string) (bool, error) {
	setObj := bson.D{
		{Key: "status", Value: to},
		{Key: "updated_at", Value: time.Now().UTC()},
	}
	if total != nil {
		setObj = append(setObj, bson.E{Key: "total_amount", Value: *total})
	}
	if paymentMethodID != nil {
		setObj = append(setObj, bson.E{Key: "payment_method_id", Value: *paymentMethodID})
	}

	// The status filter makes this a compare-and-swap: a concurrent writer
	// that already moved the order leaves MatchedCount at zero.
	result, err := s.orders.UpdateOne(
		ctx,
		bson.M{"order_id": orderID, "status": from},
		bson.D{{Key: "$set", Value: setObj}},
		options.Update().SetUpsert(false),
	)
	if err != nil {
		return false, storeErr(err)
	}
	return result.MatchedCount > 0, nil
}

func (s *MongoStore) ListOrders(ctx context.Context, scope rbac.CountryScope, startIndex, recordPerPage int64) ([]models.Order, error) {
	pipeline := mongo.Pipeline{}
	if !scope.All {
		// Orders carry no country of their own; join the restaurant and
		// filter on its country.
		pipeline = append(pipeline,
			bson.D{{Key: "$lookup", Value: bson.D{
				{Key: "from", Value: "restaurant"},
				{Key: "localField", Value: "restaurant_id"},
				{Key: "foreignField", Value: "restaurant_id"},
				{Key: "as", Value: "restaurant"},
			}}},
			bson.D{{Key: "$unwind", Value: bson.D{
				{Key: "path", Value: "$restaurant"},
				{Key: "preserveNullAndEmptyArrays", Value: false},
			}}},
			bson.D{{Key: "$match", Value: bson.D{{Key: "restaurant.country", Value: scope.Country}}}},
			bson.D{{Key: "$project", Value: bson.D{{Key: "restaurant", Value: 0}}}},
		)
	}
	pipeline = append(pipeline,
		bson.D{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}}}},
		bson.D{{Key: "$skip", Value: startIndex}},
		bson.D{{Key: "$limit", Value: recordPerPage}},
	)

	cursor, err := s.orders.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, storeErr(err)
	}
	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, storeErr(err)
	}
	return orders, nil
}

func (s *MongoStore) InsertPaymentMethod(ctx context.Context, method *models.PaymentMethod) error {
	_, err := s.paymentMethods.InsertOne(ctx, method)
	return storeErr(err)
}

func (s *MongoStore) UpdatePaymentMethod(ctx context.Context, paymentMethodID string, provider *string, isDefault *bool) error {
	var updateObj bson.D
	if provider != nil {
		updateObj = append(updateObj, bson.E{Key: "provider", Value: *provider})
	}
	if isDefault != nil {
		updateObj = append(updateObj, bson.E{Key: "is_default", Value: *isDefault})
	}
	updateObj = append(updateObj, bson.E{Key: "updated_at", Value: time.Now().UTC()})

	result, err := s.paymentMethods.UpdateOne(
		ctx,
		bson.M{"payment_method_id": paymentMethodID},
		bson.D{{Key: "$set", Value: updateObj}},
	)
	if err != nil {
		return storeErr(err)
	}
	if result.MatchedCount == 0 {
		return services.ErrNotFound
	}
	return nil
}

func (s *MongoStore) ClearDefaultFlags(ctx context.Context, userID, exceptID string) error {
	_, err := s.paymentMethods.UpdateMany(
		ctx,
		bson.M{
			"user_id":           userID,
			"payment_method_id": bson.M{"$ne": exceptID},
			"is_default":        true,
		},
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "is_default", Value: false},
			{Key: "updated_at", Value: time.Now().UTC()},
		}}},
	)
	return storeErr(err)
}

func (s *MongoStore) SetDefaultFlag(ctx context.Context, paymentMethodID string) error {
	result, err := s.paymentMethods.UpdateOne(
		ctx,
		bson.M{"payment_method_id": paymentMethodID},
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "is_default", Value: true},
			{Key: "updated_at", Value: time.Now().UTC()},
		}}},
	)
	if err != nil {
		return storeErr(err)
	}
	if result.MatchedCount == 0 {
		return services.ErrNotFound
	}
	return nil
}

func (s *MongoStore) ListPaymentMethods(ctx context.Context, userID string, startIndex, recordPerPage int64) ([]models.PaymentMethod, error) {
	opts := options.Find().SetSkip(startIndex).SetLimit(recordPerPage)
	cursor, err := s.paymentMethods.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, storeErr(err)
	}
	var methods []models.PaymentMethod
	if err := cursor.All(ctx, &methods); err != nil {
		return nil, storeErr(err)
	}
	return methods, nil
}

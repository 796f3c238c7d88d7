package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Unit_price is the menu price snapshot taken when the item was added.
// Checkout sums these snapshots; later menu edits never touch them.
type OrderItem struct {
	ID            primitive.ObjectID `bson:"_id"`
	Order_item_id string             `json:"order_item_id"`
	Order_id      *string            `json:"order_id" validate:"required"`
	Menu_item_id  *string            `json:"menu_item_id" validate:"required"`
	Quantity      *int64             `json:"quantity" validate:"required,min=1"`
	Unit_price    *int64             `json:"unit_price" validate:"required,min=0"`
	Created_at    time.Time          `json:"created_at"`
	Updated_at    time.Time          `json:"updated_at"`
}

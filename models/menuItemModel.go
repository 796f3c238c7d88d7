package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Price is stored in minor currency units (cents) so item totals stay exact.
type MenuItem struct {
	ID            primitive.ObjectID `bson:"_id"`
	Name          *string            `json:"name" validate:"required,min=2,max=150"`
	Description   *string            `json:"description"`
	Price         *int64             `json:"price" validate:"required,min=0"`
	Is_available  *bool              `json:"is_available"`
	Restaurant_id *string            `json:"restaurant_id" validate:"required"`
	Created_at    time.Time          `json:"created_at"`
	Updated_at    time.Time          `json:"updated_at"`
	Menu_item_id  string             `json:"menu_item_id"`
}

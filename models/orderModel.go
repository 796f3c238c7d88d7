package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	StatusCreated   = "CREATED"
	StatusPlaced    = "PLACED"
	StatusCancelled = "CANCELLED"
)

// orderTransitions is the closed transition table; anything not listed is illegal.
var orderTransitions = map[string]string{
	StatusCreated: StatusPlaced,
	StatusPlaced:  StatusCancelled,
}

// CanTransition reports whether from -> to is a legal order status transition.
func CanTransition(from, to string) bool {
	next, ok := orderTransitions[from]
	return ok && next == to
}

type Order struct {
	ID                primitive.ObjectID `bson:"_id"`
	Order_id          string             `json:"order_id"`
	User_id           *string            `json:"user_id"`
	Restaurant_id     *string            `json:"restaurant_id" validate:"required"`
	Status            string             `json:"status" validate:"required,eq=CREATED|eq=PLACED|eq=CANCELLED"`
	Total_amount      int64              `json:"total_amount"`
	Payment_method_id *string            `json:"payment_method_id"`
	Created_at        time.Time          `json:"created_at"`
	Updated_at        time.Time          `json:"updated_at"`
}

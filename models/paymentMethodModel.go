package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PaymentMethod struct {
	ID                primitive.ObjectID `bson:"_id"`
	Payment_method_id string             `json:"payment_method_id"`
	User_id           *string            `json:"user_id" validate:"required"`
	Type              *string            `json:"type" validate:"required,eq=CARD|eq=UPI"`
	Provider          *string            `json:"provider" validate:"required,min=2,max=100"`
	Last_four         *string            `json:"last_four" validate:"required,len=4"`
	Is_default        bool               `json:"is_default"`
	Created_at        time.Time          `json:"created_at"`
	Updated_at        time.Time          `json:"updated_at"`
}

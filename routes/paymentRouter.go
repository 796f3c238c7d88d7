package routes

import (
	controller "food-ordering-backend/controllers"

	"github.com/gin-gonic/gin"
)

func PaymentRoutes(incomingRoutes *gin.Engine) {
	incomingRoutes.GET("/payments", controller.GetPaymentMethods())
	incomingRoutes.POST("/payments", controller.AddPaymentMethod())
	incomingRoutes.PUT("/payments/:payment_method_id", controller.UpdatePaymentMethod())
	incomingRoutes.PATCH("/payments/:payment_method_id/default", controller.SetDefaultPaymentMethod())
}

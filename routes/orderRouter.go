package routes

import (
	controller "food-ordering-backend/controllers"

	"github.com/gin-gonic/gin"
)

func OrderRoutes(incomingRoutes *gin.Engine) {
	incomingRoutes.GET("/orders", controller.GetOrders())
	incomingRoutes.GET("/orders/:order_id", controller.GetOrder())
	incomingRoutes.GET("/orders/:order_id/items", controller.GetOrderItemsByOrder())
	incomingRoutes.POST("/orders", controller.CreateOrder())
	incomingRoutes.POST("/orders/:order_id/items", controller.AddOrderItem())
	incomingRoutes.POST("/orders/:order_id/checkout", controller.CheckoutOrder())
	incomingRoutes.PATCH("/orders/:order_id/cancel", controller.CancelOrder())
}

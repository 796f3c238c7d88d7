package routes

import (
	controller "food-ordering-backend/controllers"

	"github.com/gin-gonic/gin"
)

func RestaurantRoutes(incomingRoutes *gin.Engine) {
	incomingRoutes.GET("/restaurants", controller.GetRestaurants())
	incomingRoutes.GET("/restaurants/:restaurant_id", controller.GetRestaurant())
	incomingRoutes.POST("/restaurants", controller.CreateRestaurant())
}

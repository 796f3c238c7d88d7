package routes

import (
	controller "food-ordering-backend/controllers"

	"github.com/gin-gonic/gin"
)

func MenuItemRoutes(incomingRoutes *gin.Engine) {
	incomingRoutes.POST("/menu-items", controller.CreateMenuItem())
	incomingRoutes.GET("/menu-items/:restaurant_id", controller.GetMenuItemsByRestaurant())
	incomingRoutes.PATCH("/menu-items/:menu_item_id/availability", controller.ToggleMenuItemAvailability())
}

package controllers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"food-ordering-backend/database"
	"food-ordering-backend/middleware"
	"food-ordering-backend/models"
	"food-ordering-backend/rbac"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var menuItemCollection *mongo.Collection = database.OpenCollection(database.Client, "menuItem")

func CreateMenuItem() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		var menuItem models.MenuItem
		if err := c.BindJSON(&menuItem); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if validationErr := validate.Struct(&menuItem); validationErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
			return
		}

		var restaurant models.Restaurant
		err := restaurantCollection.FindOne(ctx, bson.M{"restaurant_id": menuItem.Restaurant_id}).Decode(&restaurant)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "restaurant not found"})
			return
		}

		principal := middleware.PrincipalFromContext(c)
		if err := rbac.Authorize(principal, rbac.ActionManageMenu, *restaurant.Country); err != nil {
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
			return
		}

		if menuItem.Is_available == nil {
			available := true
			menuItem.Is_available = &available
		}
		menuItem.Created_at = time.Now().UTC()
		menuItem.Updated_at = time.Now().UTC()
		menuItem.ID = primitive.NewObjectID()
		menuItem.Menu_item_id = menuItem.ID.Hex()

		result, err := menuItemCollection.InsertOne(ctx, menuItem)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "menu item was not created"})
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

func GetMenuItemsByRestaurant() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		restaurantId := c.Param("restaurant_id")
		var restaurant models.Restaurant
		err := restaurantCollection.FindOne(ctx, bson.M{"restaurant_id": restaurantId}).Decode(&restaurant)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "restaurant not found"})
			return
		}

		principal := middleware.PrincipalFromContext(c)
		if err := rbac.Authorize(principal, rbac.ActionViewRestaurant, *restaurant.Country); err != nil {
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
			return
		}

		recordPerPage, err := strconv.Atoi(c.DefaultQuery("recordPerPage", "10"))
		if err != nil || recordPerPage < 1 {
			recordPerPage = 10
		}
		page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
		if err != nil || page < 1 {
			page = 1
		}
		startIndex := (page - 1) * recordPerPage

		opts := options.Find().SetSkip(int64(startIndex)).SetLimit(int64(recordPerPage))
		result, err := menuItemCollection.Find(ctx, bson.M{"restaurant_id": restaurantId}, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while listing menu items"})
			return
		}
		var menuItems []models.MenuItem
		if err := result.All(ctx, &menuItems); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while decoding menu items"})
			return
		}
		c.JSON(http.StatusOK, menuItems)
	}
}

func ToggleMenuItemAvailability() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		menuItemId := c.Param("menu_item_id")
		var menuItem models.MenuItem
		err := menuItemCollection.FindOne(ctx, bson.M{"menu_item_id": menuItemId}).Decode(&menuItem)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "menu item not found"})
			return
		}

		var restaurant models.Restaurant
		err = restaurantCollection.FindOne(ctx, bson.M{"restaurant_id": menuItem.Restaurant_id}).Decode(&restaurant)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "restaurant not found"})
			return
		}

		principal := middleware.PrincipalFromContext(c)
		if err := rbac.Authorize(principal, rbac.ActionManageMenu, *restaurant.Country); err != nil {
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
			return
		}

		available := menuItem.Is_available == nil || !*menuItem.Is_available
		_, err = menuItemCollection.UpdateOne(
			ctx,
			bson.M{"menu_item_id": menuItemId},
			bson.D{{Key: "$set", Value: bson.D{
				{Key: "is_available", Value: available},
				{Key: "updated_at", Value: time.Now().UTC()},
			}}},
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "availability update failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"menu_item_id": menuItemId, "is_available": available})
	}
}

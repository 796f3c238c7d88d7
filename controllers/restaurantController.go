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

var restaurantCollection *mongo.Collection = database.OpenCollection(database.Client, "restaurant")

func CreateRestaurant() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		var restaurant models.Restaurant
		if err := c.BindJSON(&restaurant); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if validationErr := validate.Struct(&restaurant); validationErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
			return
		}

		principal := middleware.PrincipalFromContext(c)
		if err := rbac.Authorize(principal, rbac.ActionManageRestaurant, *restaurant.Country); err != nil {
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
			return
		}

		restaurant.Created_at = time.Now().UTC()
		restaurant.Updated_at = time.Now().UTC()
		restaurant.ID = primitive.NewObjectID()
		restaurant.Restaurant_id = restaurant.ID.Hex()

		result, err := restaurantCollection.InsertOne(ctx, restaurant)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "restaurant was not created"})
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

func GetRestaurants() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		recordPerPage, err := strconv.Atoi(c.DefaultQuery("recordPerPage", "10"))
		if err != nil || recordPerPage < 1 {
			recordPerPage = 10
		}
		page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
		if err != nil || page < 1 {
			page = 1
		}
		startIndex := (page - 1) * recordPerPage

		// Non-admins only see restaurants in their own country.
		principal := middleware.PrincipalFromContext(c)
		scope := rbac.ScopeFilter(principal)
		filter := bson.M{}
		if !scope.All {
			filter["country"] = scope.Country
		}

		opts := options.Find().SetSkip(int64(startIndex)).SetLimit(int64(recordPerPage))
		result, err := restaurantCollection.Find(ctx, filter, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while listing restaurants"})
			return
		}
		var allRestaurants []models.Restaurant
		if err := result.All(ctx, &allRestaurants); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while decoding restaurants"})
			return
		}
		c.JSON(http.StatusOK, allRestaurants)
	}
}

func GetRestaurant() gin.HandlerFunc {
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

		// Out-of-scope restaurants stay invisible rather than forbidden.
		principal := middleware.PrincipalFromContext(c)
		if !rbac.ScopeFilter(principal).Matches(*restaurant.Country) {
			c.JSON(http.StatusNotFound, gin.H{"error": "restaurant not found"})
			return
		}
		c.JSON(http.StatusOK, restaurant)
	}
}

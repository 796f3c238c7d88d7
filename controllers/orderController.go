package controllers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"food-ordering-backend/database"
	"food-ordering-backend/middleware"
	"food-ordering-backend/rbac"
	"food-ordering-backend/repositories"
	"food-ordering-backend/services"

	"github.com/gin-gonic/gin"
)

var store = repositories.NewMongoStore(database.Client)
var orderService = services.NewOrderService(store)

// errStatus maps the service error taxonomy onto HTTP statuses.
func errStatus(err error) int {
	switch {
	case errors.Is(err, rbac.ErrPermissionDenied):
		return http.StatusForbidden
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrInvalidState):
		return http.StatusConflict
	case errors.Is(err, services.ErrTransient):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

type createOrderRequest struct {
	Restaurant_id *string `json:"restaurant_id" validate:"required"`
}

type addOrderItemRequest struct {
	Menu_item_id *string `json:"menu_item_id" validate:"required"`
	Quantity     *int64  `json:"quantity" validate:"required"`
}

type checkoutRequest struct {
	Payment_method_id *string `json:"payment_method_id" validate:"required"`
}

func CreateOrder() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 100*time.Second)
		defer cancel()

		var req createOrderRequest
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if validationErr := validate.Struct(&req); validationErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
			return
		}

		principal := middleware.PrincipalFromContext(c)
		order, err := orderService.CreateOrder(ctx, principal, *req.Restaurant_id)
		if err != nil {
			c.JSON(errStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

func AddOrderItem() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 100*time.Second)
		defer cancel()

		orderId := c.Param("order_id")
		var req addOrderItemRequest
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if validationErr := validate.Struct(&req); validationErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
			return
		}

		principal := middleware.PrincipalFromContext(c)
		item, err := orderService.AddItem(ctx, principal, orderId, *req.Menu_item_id, *req.Quantity)
		if err != nil {
			c.JSON(errStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, item)
	}
}

func CheckoutOrder() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 100*time.Second)
		defer cancel()

		orderId := c.Param("order_id")
		var req checkoutRequest
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if validationErr := validate.Struct(&req); validationErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
			return
		}

		principal := middleware.PrincipalFromContext(c)
		order, err := orderService.Checkout(ctx, principal, orderId, *req.Payment_method_id)
		if err != nil {
			c.JSON(errStatus(err), gin.H{"error": err.Error()})
			return
		}
		notifyOrderEvent("orderPlaced", order)
		c.JSON(http.StatusOK, order)
	}
}

func CancelOrder() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 100*time.Second)
		defer cancel()

		orderId := c.Param("order_id")
		principal := middleware.PrincipalFromContext(c)
		order, err := orderService.Cancel(ctx, principal, orderId)
		if err != nil {
			c.JSON(errStatus(err), gin.H{"error": err.Error()})
			return
		}
		notifyOrderEvent("orderCancelled", order)
		c.JSON(http.StatusOK, order)
	}
}

func GetOrders() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 100*time.Second)
		defer cancel()

		recordPerPage, err := strconv.Atoi(c.DefaultQuery("recordPerPage", "10"))
		if err != nil || recordPerPage < 1 {
			recordPerPage = 10
		}
		page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
		if err != nil || page < 1 {
			page = 1
		}
		startIndex := int64((page - 1) * recordPerPage)

		principal := middleware.PrincipalFromContext(c)
		orders, err := orderService.ListOrders(ctx, principal, startIndex, int64(recordPerPage))
		if err != nil {
			c.JSON(errStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

func GetOrder() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 100*time.Second)
		defer cancel()

		orderId := c.Param("order_id")
		principal := middleware.PrincipalFromContext(c)
		order, err := orderService.GetOrder(ctx, principal, orderId)
		if err != nil {
			c.JSON(errStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

func GetOrderItemsByOrder() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 100*time.Second)
		defer cancel()

		orderId := c.Param("order_id")
		principal := middleware.PrincipalFromContext(c)
		items, err := orderService.GetOrderItems(ctx, principal, orderId)
		if err != nil {
			c.JSON(errStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

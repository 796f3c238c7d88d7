package controllers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"food-ordering-backend/middleware"
	"food-ordering-backend/models"
	"food-ordering-backend/services"

	"github.com/gin-gonic/gin"
)

var paymentService = services.NewPaymentService(store)

type updatePaymentMethodRequest struct {
	Provider   *string `json:"provider"`
	Is_default *bool   `json:"is_default"`
}

func AddPaymentMethod() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 100*time.Second)
		defer cancel()

		var method models.PaymentMethod
		if err := c.BindJSON(&method); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		principal := middleware.PrincipalFromContext(c)
		if method.User_id == nil {
			method.User_id = &principal.Uid
		}
		if validationErr := validate.Struct(&method); validationErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
			return
		}

		created, err := paymentService.AddPaymentMethod(ctx, principal, &method)
		if err != nil {
			c.JSON(errStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, created)
	}
}

func SetDefaultPaymentMethod() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 100*time.Second)
		defer cancel()

		paymentMethodId := c.Param("payment_method_id")
		principal := middleware.PrincipalFromContext(c)
		if err := paymentService.SetDefault(ctx, principal, paymentMethodId); err != nil {
			c.JSON(errStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "default payment method updated"})
	}
}

func UpdatePaymentMethod() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 100*time.Second)
		defer cancel()

		paymentMethodId := c.Param("payment_method_id")
		var req updatePaymentMethodRequest
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		principal := middleware.PrincipalFromContext(c)
		if err := paymentService.UpdatePaymentMethod(ctx, principal, paymentMethodId, req.Provider, req.Is_default); err != nil {
			c.JSON(errStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "payment method updated"})
	}
}

func GetPaymentMethods() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 100*time.Second)
		defer cancel()

		recordPerPage, err := strconv.Atoi(c.DefaultQuery("recordPerPage", "20"))
		if err != nil || recordPerPage < 1 {
			recordPerPage = 20
		}
		page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
		if err != nil || page < 1 {
			page = 1
		}
		startIndex := int64((page - 1) * recordPerPage)

		principal := middleware.PrincipalFromContext(c)
		userId := c.DefaultQuery("user_id", principal.Uid)

		methods, err := paymentService.ListPaymentMethods(ctx, principal, userId, startIndex, int64(recordPerPage))
		if err != nil {
			c.JSON(errStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, methods)
	}
}

package middleware

import (
	"net/http"

	"food-ordering-backend/helpers"
	"food-ordering-backend/rbac"

	"github.com/gin-gonic/gin"
)

// Authentication validates the bearer token and stashes the resolved
// principal on the gin context for the handlers.
func Authentication() gin.HandlerFunc {
	return func(c *gin.Context) {
		clientToken := c.Request.Header.Get("token")
		if clientToken == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "no authorization token provided"})
			c.Abort()
			return
		}
		claims, msg := helpers.ValidateToken(clientToken)
		if msg != "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": msg})
			c.Abort()
			return
		}
		c.Set("email", claims.Email)
		c.Set("name", claims.Name)
		c.Set("uid", claims.Uid)
		c.Set("role", claims.Role)
		c.Set("country", claims.Country)
		c.Next()
	}
}

// PrincipalFromContext rebuilds the rbac principal a handler acts as.
func PrincipalFromContext(c *gin.Context) rbac.Principal {
	return rbac.Principal{
		Uid:     c.GetString("uid"),
		Role:    c.GetString("role"),
		Country: c.GetString("country"),
	}
}

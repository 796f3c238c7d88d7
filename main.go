package main

import (
	"log"
	"net/http"
	"os"
	"time"

	middleware "food-ordering-backend/middleware"
	routes "food-ordering-backend/routes"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found, relying on environment")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}

	router := gin.New()
	router.Use(gin.Logger())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:9000"},
		AllowMethods:     []string{"POST", "GET", "PATCH", "DELETE", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "token"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Page not found"})
	})

	// Signup, login and the websocket endpoint stay open; everything else
	// requires a valid token.
	routes.UserRoutes(router)
	router.Use(middleware.Authentication())
	routes.AuthenticatedUserRoutes(router)
	routes.RestaurantRoutes(router)
	routes.MenuItemRoutes(router)
	routes.OrderRoutes(router)
	routes.PaymentRoutes(router)

	router.Run(":" + port)
}

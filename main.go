package main

import (
	"fmt"
	"log"
	"os"

	"crmportal-backend/config"
	"crmportal-backend/models"
	"crmportal-backend/routes"
	"crmportal-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func init() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	config.InitLogger()
	config.ConnectDB()

	config.DB.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.AdminUser{},
		&models.Customer{},
		&models.Service{},
		&models.Invoice{},
		&models.SalesActivity{},
	)
}

func main() {
	sweeper := services.NewInvoiceSweeper(config.DB, config.Logger)
	sweeper.StartScheduler()
	defer sweeper.Stop()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r := routes.SetupRouter()
	printRoutes(r)
	r.Run(":" + port)
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}

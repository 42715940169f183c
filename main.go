package main

import (
	"fmt"
	"log"
	"os"

	"coachpro-backend/config"
	"coachpro-backend/models"
	"coachpro-backend/routes"
	"coachpro-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func init() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	config.ConnectDB()

	config.DB.AutoMigrate(
		&models.Academy{},
		&models.User{},
		&models.Client{},
		&models.Program{},
		&models.PricingPreset{},
		&models.PaymentPlan{},
		&models.Installment{},
		&models.Payment{},
		&models.Ticket{},
		&models.NotificationLog{},
	)
}

func main() {
	services.NewOverdueService(config.DB).StartScheduler()

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

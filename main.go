package main

import (
	"fmt"
	"log"
	"os"

	"salonbook-backend/config"
	"salonbook-backend/controllers"
	"salonbook-backend/models"
	"salonbook-backend/routes"
	"salonbook-backend/services"

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
	config.ConnectRedis()

	config.DB.AutoMigrate(
		&models.User{},
		&models.Shop{},
		&models.ShopService{},
		&models.TimeSlot{},
		&models.Showtime{},
		&models.Appointment{},
		&models.AppointmentItem{},
		&models.Review{},
		&models.Donation{},
		&models.Contact{},
	)
}

func main() {
	mqConn, err := services.NewMQConn(os.Getenv("RABBITMQ_URL"))
	if err != nil {
		config.Log.Warnf("RabbitMQ connection failed: %v", err)
		mqConn = nil
	}

	notifier := services.NewNotificationService(mqConn)
	booking := services.NewBookingService(config.DB, notifier)
	controllers.Notifier = notifier
	controllers.Booking = booking

	reminder := services.NewReminderService(config.DB, booking, notifier)
	reminder.StartScheduler()

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

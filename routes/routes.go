package routes

import (
	"os"
	"strings"

	"salonbook-backend/config"
	"salonbook-backend/controllers"
	"salonbook-backend/models"
	"salonbook-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	allowedOrigins := []string{"http://localhost:3000"}
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		allowedOrigins = strings.Split(env, ",")
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", controllers.Me)
	}

	otp := r.Group("/otp")
	{
		otp.POST("/send", controllers.SendOTP)
		otp.POST("/verify", controllers.VerifyOTP)
	}

	// Public browse surface
	r.GET("/shop/approvedshops", controllers.GetApprovedShops)
	r.GET("/shop/shoplists/:shopId", controllers.GetShop)
	r.GET("/time/shops/:shopId/available", controllers.GetAvailability)
	r.GET("/reviews/shop/:shopId", controllers.GetShopReviews)
	r.POST("/form/contact", controllers.SubmitContact)
	r.POST("/donate", controllers.Donate)

	authed := r.Group("/")
	authed.Use(utils.AuthMiddleware())
	{
		// Shop owner surface
		owner := authed.Group("/", utils.RequireRole(models.RoleOwner))
		{
			owner.POST("/shop/register", controllers.RegisterShop)
			owner.GET("/shop/me", controllers.GetMyShop)
			owner.PUT("/shop/me", controllers.UpdateShop)
			owner.POST("/time/shops/:shopId/slots", controllers.GenerateSlots)
			owner.GET("/appointments/shop", controllers.GetShopAppointments)
			owner.PUT("/appointments/:id/complete", controllers.CompleteAppointment)

			reportController := controllers.ReportController{}
			owner.GET("/api/reports", reportController.GetReportAnalytics)
			owner.GET("/api/dashboard", controllers.GetDashboardOverview)
		}

		// Customer surface
		authed.POST("/appointments", controllers.BookAppointment)
		authed.GET("/appointments/user", controllers.GetMyAppointments)
		authed.POST("/appointments/:id/payment-callback", controllers.PaymentCallback)
		authed.PUT("/appointments/:id/cancel", controllers.CancelAppointment)
		authed.POST("/reviews/submit-review", controllers.SubmitReview)
		authed.GET("/reviews/user", controllers.GetMyReviews)

		// Admin moderation
		admin := authed.Group("/admin", utils.RequireRole(models.RoleAdmin))
		{
			admin.GET("/users", controllers.AdminListUsers)
			admin.PUT("/users/:id", controllers.AdminUpdateUser)
			admin.DELETE("/users/:id", controllers.AdminDeleteUser)

			admin.GET("/shops", controllers.AdminListShops)
			admin.PUT("/shops/:id", controllers.AdminUpdateShop)

			admin.GET("/contacts", controllers.AdminListContacts)
			admin.DELETE("/contacts/:id", controllers.AdminDeleteContact)

			admin.GET("/reviews", controllers.AdminListReviews)
			admin.PUT("/reviews/:id", controllers.AdminModerateReview)
			admin.DELETE("/reviews/:id", controllers.AdminDeleteReview)

			admin.PUT("/appointments/:id/status", controllers.AdminOverrideAppointment)
		}

		authed.GET("/received-donations", utils.RequireRole(models.RoleAdmin), controllers.GetReceivedDonations)
	}

	return r
}

package routes

import (
	"salonsync-backend/config"
	"salonsync-backend/controllers"
	"salonsync-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:3000",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	// Webhook endpoints are called by the scheduling and commerce
	// platforms; they carry no bearer token.
	webhooks := r.Group("/webhooks")
	{
		webhooks.POST("/booking", controllers.BookingWebhook)
		webhooks.POST("/shopify/order-paid", controllers.ShopifyOrderPaidWebhook)
	}

	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", controllers.Me)
	}

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	{
		// Order routes
		orders := api.Group("/orders")
		{
			orders.GET("", controllers.GetOrders)
			orders.POST("", controllers.CreateManualOrder)
			orders.GET("/:id", controllers.GetOrder)
			orders.POST("/:id/void", controllers.VoidOrder)
			orders.POST("/:id/restore", controllers.RestoreOrder)
			orders.PUT("/:id/appointment-date", controllers.FixAppointmentDate)
			orders.POST("/:id/adjustments", controllers.CreateAdjustment)
			orders.GET("/:id/adjustments", controllers.GetAdjustments)
		}

		// Stylist routes
		stylists := api.Group("/stylists")
		{
			stylists.GET("", controllers.GetStylists)
			stylists.POST("", controllers.CreateStylist)
			stylists.PUT("/:id", controllers.UpdateStylist)
			stylists.PUT("/:id/tiers", controllers.SetStylistTiers)
			stylists.PUT("/:id/pin", controllers.SetStylistPin)
		}

		// Settings routes
		settings := api.Group("/settings")
		{
			settings.GET("", controllers.GetSettings)
			settings.PUT("", controllers.UpdateSettings)
		}

		// Reports routes
		reportController := controllers.ReportController{}
		api.GET("/reports/payouts", reportController.GetPayoutReport)
	}

	return r
}

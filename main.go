package main

import (
	"fmt"
	"log"
	"os"
	"salonsync-backend/config"
	"salonsync-backend/models"
	"salonsync-backend/routes"
	"salonsync-backend/services"
	"salonsync-backend/shopify"

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
		&models.User{},
		&models.Stylist{},
		&models.CommissionTier{},
		&models.Order{},
		&models.CommissionAdjustment{},
		&models.SyncSettings{},
		&models.TimeEntry{},
	)
}

func main() {
	startReconcileScheduler()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r := routes.SetupRouter()
	printRoutes(r)
	r.Run(":" + port)
}

// startReconcileScheduler wires the nightly sweep that promotes drafts paid
// while a webhook was missed.
func startReconcileScheduler() {
	settings, err := models.LoadSyncSettings(config.DB)
	if err != nil {
		log.Printf("Reconcile scheduler not started: %v", err)
		return
	}
	bridge := shopify.NewClient(settings.ShopifyDomain, settings.ShopifyToken)
	sync := services.NewSyncService(config.DB, bridge)
	services.NewReconcileService(config.DB, bridge, sync).StartScheduler()
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}

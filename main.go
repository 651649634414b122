package main

import (
	"fmt"
	"log"
	"os"

	"fintrack-backend/config"
	"fintrack-backend/controllers"
	"fintrack-backend/gateway"
	"fintrack-backend/models"
	"fintrack-backend/routes"
	"fintrack-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func init() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	config.ConnectDB(os.Getenv("DB_URL"))

	config.DB.AutoMigrate(
		&models.User{},
		&models.Appointment{},
		&models.NotificationPreference{},
		&models.MessageTemplate{},
		&models.NotificationLog{},
		&models.QueuedMessage{},
	)

	if err := seedDefaultTemplates(config.DB); err != nil {
		log.Printf("Failed to seed default templates: %v", err)
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	dispatcher := &gateway.Dispatcher{
		WhatsApp: gateway.NewWhatsAppClient(cfg.Gateway, cfg.GatewayTimeout),
		SMS:      gateway.NewSMSClient(cfg.Twilio),
	}

	reminders := services.NewReminderService(config.DB, dispatcher)
	queue := services.NewQueueService(config.DB, dispatcher, cfg.QueueBatchSize)

	if _, err := services.StartScheduler(cfg, reminders, queue); err != nil {
		log.Fatalf("Failed to start scheduler: %v", err)
	}

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})

	r := routes.SetupRouter(routes.Deps{
		Cron:     &controllers.CronController{Reminders: reminders, Queue: queue},
		Instance: &controllers.InstanceController{Client: dispatcher.WhatsApp},
		Redis:    redisClient,
	})
	printRoutes(r)
	r.Run(":" + cfg.Port)
}

// seedDefaultTemplates makes sure every lead-time bucket has at least a
// default template, so a fresh install can send reminders out of the box.
func seedDefaultTemplates(db *gorm.DB) error {
	defaults := []models.MessageTemplate{
		{
			Type:      models.TemplateReminderShort,
			Body:      "Reminder: {title} at {time}. {description}",
			IsActive:  true,
			IsDefault: true,
		},
		{
			Type:      models.TemplateReminderCustom,
			Body:      "Coming up: {title} at {time} in {location}.",
			IsActive:  true,
			IsDefault: true,
		},
		{
			Type:      models.TemplateReminder24h,
			Body:      "Tomorrow: {title} on {date} at {time} in {location}. {description}",
			IsActive:  true,
			IsDefault: true,
		},
	}

	for _, template := range defaults {
		var count int64
		if err := db.Model(&models.MessageTemplate{}).
			Where("type = ?", template.Type).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			if err := db.Create(&template).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}

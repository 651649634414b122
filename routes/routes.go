package routes

import (
	"time"

	"fintrack-backend/config"
	"fintrack-backend/controllers"
	"fintrack-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// Deps carries the stateful controllers the router wires up.
type Deps struct {
	Cron     *controllers.CronController
	Instance *controllers.InstanceController
	Redis    *redis.Client
}

func SetupRouter(deps Deps) *gin.Engine {
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
		// Appointment routes
		appointments := api.Group("/appointments")
		{
			appointments.POST("", controllers.CreateAppointment)
			appointments.GET("", controllers.GetAppointments)
			appointments.GET("/:id", controllers.GetAppointment)
			appointments.PUT("/:id/complete", controllers.CompleteAppointment)
			appointments.PUT("/:id/cancel", controllers.CancelAppointment)
		}

		// Notification preference routes
		preferences := api.Group("/preferences")
		{
			preferences.GET("", controllers.GetPreference)
			preferences.PUT("", controllers.UpdatePreference)
			preferences.POST("/verify", controllers.VerifyNumber)
		}

		// Operator surfaces: delivery log, queue backlog, gateway instance
		admin := api.Group("/admin")
		{
			admin.GET("/notifications", controllers.GetNotificationLogs)
			admin.GET("/queue", controllers.GetQueuedMessages)
			admin.POST("/test-send", utils.RateLimiter(deps.Redis, 20, time.Minute), controllers.TestSend)
			admin.GET("/instance/state", deps.Instance.GetConnectionState)
			admin.GET("/instance/connect", deps.Instance.Connect)
		}
	}

	// Trigger endpoints for an external time-based invoker
	cron := r.Group("/internal/cron")
	cron.Use(utils.CronAuthMiddleware())
	{
		cron.POST("/reminders", deps.Cron.RunReminders)
		cron.POST("/queue", deps.Cron.RunQueue)
	}

	return r
}

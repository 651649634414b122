// config/config.go
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
)

// GatewayConfig points at the WhatsApp gateway instance used for sends.
type GatewayConfig struct {
	BaseURL  string `validate:"required,url"`
	Instance string `validate:"required"`
	APIKey   string `validate:"required"`
}

// TwilioConfig is the SMS fallback used when a recipient has no
// WhatsApp-capable number.
type TwilioConfig struct {
	AccountSID  string
	AuthToken   string
	PhoneNumber string
}

// App is the full application configuration. It is loaded once at startup and
// passed by value into every component that needs it; nothing reads the
// environment after Load returns.
type App struct {
	Port      string
	DBURL     string `validate:"required"`
	RedisAddr string

	Gateway GatewayConfig
	Twilio  TwilioConfig

	ReminderCron string `validate:"required"`
	QueueCron    string `validate:"required"`

	QueueBatchSize int           `validate:"gte=1"`
	GatewayTimeout time.Duration `validate:"gt=0"`
}

// Load reads the environment into an App and validates it.
func Load() (App, error) {
	cfg := App{
		Port:      envOr("PORT", "8080"),
		DBURL:     os.Getenv("DB_URL"),
		RedisAddr: envOr("REDIS_ADDR", "localhost:6379"),
		Gateway: GatewayConfig{
			BaseURL:  os.Getenv("GATEWAY_BASE_URL"),
			Instance: os.Getenv("GATEWAY_INSTANCE"),
			APIKey:   os.Getenv("GATEWAY_API_KEY"),
		},
		Twilio: TwilioConfig{
			AccountSID:  os.Getenv("TWILIO_ACCOUNT_SID"),
			AuthToken:   os.Getenv("TWILIO_AUTH_TOKEN"),
			PhoneNumber: os.Getenv("TWILIO_PHONE_NUMBER"),
		},
		ReminderCron:   envOr("REMINDER_CRON", "*/5 * * * *"),
		QueueCron:      envOr("QUEUE_CRON", "* * * * *"),
		QueueBatchSize: envIntOr("QUEUE_BATCH_SIZE", 10),
		GatewayTimeout: 10 * time.Second,
	}

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return App{}, err
	}
	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

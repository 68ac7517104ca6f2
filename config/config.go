package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Server struct {
		Env      string `envconfig:"ENV"`
		LogLevel string `envconfig:"LOG_LEVEL"`
		Port     string `envconfig:"PORT"`
		Host     string `envconfig:"HOST"`
		Shutdown struct {
			CleanupPeriodSeconds int64 `envconfig:"CLEANUP_PERIOD_SECONDS"`
			GracePeriodSeconds   int64 `envconfig:"GRACE_PERIOD_SECONDS"`
		} `envconfig:"SHUTDOWN"`
	} `envconfig:"SERVER"`

	App struct {
		Name      string `envconfig:"APP_NAME"`
		Timezone  string `envconfig:"TIMEZONE"`
		ClientURL string `envconfig:"CLIENT_URL"`
		CORS      struct {
			AllowCredentials bool     `envconfig:"ALLOW_CREDENTIALS"`
			AllowedHeaders   []string `envconfig:"ALLOWED_HEADERS"`
			AllowedMethods   []string `envconfig:"ALLOWED_METHODS"`
			AllowedOrigins   []string `envconfig:"ALLOWED_ORIGINS"`
			Enable           bool     `envconfig:"ENABLE"`
			MaxAgeSeconds    int      `envconfig:"MAX_AGE_SECONDS"`
		} `envconfig:"CORS"`
		RateLimiter struct {
			Enable        bool `envconfig:"ENABLE"`
			MaxRequests   int  `envconfig:"MAX_REQUESTS"`
			WindowSeconds int  `envconfig:"WINDOW_SECONDS"`
		} `envconfig:"RATE_LIMITER"`
		APIKey string `envconfig:"API_KEY"`
	} `envconfig:"APP"`

	Cache struct {
		Redis struct {
			Primary struct {
				Host     string `envconfig:"HOST"`
				Port     string `envconfig:"PORT"`
				Password string `envconfig:"PASSWORD"`
				DB       int    `envconfig:"DB"`
			} `envconfig:"PRIMARY"`
		} `envconfig:"REDIS"`
		TTL int `envconfig:"TTL"`
	} `envconfig:"CACHE"`

	JWT struct {
		AccessSecret     string `envconfig:"ACCESS_SECRET"`
		RefreshSecret    string `envconfig:"REFRESH_SECRET"`
		AccessExpireMin  int    `envconfig:"ACCESS_EXPIRE_MIN"`
		RefreshExpireMin int    `envconfig:"REFRESH_EXPIRE_MIN"`
	} `envconfig:"JWT"`

	DB struct {
		Postgres struct {
			MaxRetry       int    `envconfig:"MAX_RETRY"`
			RetryWaitTime  int    `envconfig:"RETRY_WAIT_TIME"`
			MigrationTable string `envconfig:"MIGRATION_TABLE"`
			AutoMigrate    bool   `envconfig:"AUTO_MIGRATE"`
			Prefix         string `envconfig:"PREFIX"`
			Read           struct {
				Host     string `envconfig:"HOST"`
				Port     string `envconfig:"PORT"`
				Username string `envconfig:"USER"`
				Password string `envconfig:"PASSWORD"`
				Name     string `envconfig:"NAME"`
				Timezone string `envconfig:"TIMEZONE"`
				SSLMode  string `envconfig:"SSL_MODE"`
			} `envconfig:"READ"`
			Write struct {
				Host     string `envconfig:"HOST"`
				Port     string `envconfig:"PORT"`
				Username string `envconfig:"USER"`
				Password string `envconfig:"PASSWORD"`
				Name     string `envconfig:"NAME"`
				Timezone string `envconfig:"TIMEZONE"`
				SSLMode  string `envconfig:"SSL_MODE"`
			} `envconfig:"WRITE"`
		} `envconfig:"POSTGRES"`
	} `envconfig:"DB"`

	External struct {
		Otel struct {
			Endpoint string `envconfig:"ENDPOINT"`
		} `envconfig:"OTEL"`
		S3 struct {
			BucketName      string `envconfig:"BUCKET_NAME"`
			PublicDomain    string `envconfig:"PUBLIC_DOMAIN"`
			APIEndpoint     string `envconfig:"API_ENDPOINT"`
			AccessKeyID     string `envconfig:"ACCESS_KEY_ID"`
			SecretAccessKey string `envconfig:"SECRET_ACCESS_KEY"`
		} `envconfig:"S3"`
		Toss struct {
			BaseURL        string  `envconfig:"BASE_URL"         default:"https://api.tosspayments.com/v1"`
			SecretKey      string  `envconfig:"SECRET_KEY"`
			WebhookSecret  string  `envconfig:"WEBHOOK_SECRET"`
			TimeoutSeconds int     `envconfig:"TIMEOUT_SECONDS"  default:"10"`
			RatePerSecond  float64 `envconfig:"RATE_PER_SECOND"  default:"10"`
			Burst          int     `envconfig:"BURST"            default:"5"`
		} `envconfig:"TOSS"`
		SMTP struct {
			Enable   bool   `envconfig:"ENABLE"`
			Host     string `envconfig:"HOST"`
			Port     int    `envconfig:"PORT"     default:"587"`
			Username string `envconfig:"USERNAME"`
			Password string `envconfig:"PASSWORD"`
			From     string `envconfig:"FROM"`
		} `envconfig:"SMTP"`
	} `envconfig:"EXTERNAL"`

	Kafka struct {
		Enable  bool     `envconfig:"ENABLE"`
		Brokers []string `envconfig:"BROKERS"`
		Topic   string   `envconfig:"TOPIC"   default:"booking.events"`
		SASL    struct {
			Username string `envconfig:"USERNAME"`
			Password string `envconfig:"PASSWORD"`
		} `envconfig:"SASL"`
		ConsumerGroup string `envconfig:"CONSUMER_GROUP"`
	} `envconfig:"KAFKA"`

	Metrics struct {
		Enable    bool   `envconfig:"ENABLE"    default:"true"`
		Namespace string `envconfig:"NAMESPACE" default:"cleanbook"`
	} `envconfig:"METRICS"`

	Business struct {
		OpenHour          int   `envconfig:"OPEN_HOUR"           default:"9"`
		CloseHour         int   `envconfig:"CLOSE_HOUR"          default:"18"`
		WorkDays          []int `envconfig:"WORK_DAYS"           default:"1,2,3,4,5,6"`
		CancelWindowHours int   `envconfig:"CANCEL_WINDOW_HOURS" default:"24"`
		DefaultDuration   int   `envconfig:"DEFAULT_DURATION"    default:"120"`
		NumberMaxAttempts int   `envconfig:"NUMBER_MAX_ATTEMPTS" default:"5"`
		ReferralBonus     int64 `envconfig:"REFERRAL_BONUS"      default:"10000"`
		ReviewEditDays    int   `envconfig:"REVIEW_EDIT_DAYS"    default:"7"`
		MinimumCharge     int64 `envconfig:"MINIMUM_CHARGE"      default:"50000"`
		CancellationFee   int64 `envconfig:"CANCELLATION_FEE"    default:"10000"`
		ResetTokenMinutes int   `envconfig:"RESET_TOKEN_MINUTES" default:"10"`
	} `envconfig:"BUSINESS"`
}

// Load reads the optional .env file and the process environment into a new Config.
// The returned value is owned by the caller and passed explicitly to every component.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Warn().Err(err).Msg("Could not load .env file, continuing with existing environment variables")
	} else {
		log.Info().Msg("Successfully loaded variables from .env file into environment")
	}

	cfg := &Config{}

	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	log.Info().Msg("Service configuration initialized successfully")

	return cfg, nil
}

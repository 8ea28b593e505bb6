package utils

import (
	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Session  SessionConfig
	Gateway  GatewayConfig
	Booking  BookingConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

type SessionConfig struct {
	ExpiryHours int
}

// GatewayConfig holds the hosted-checkout provider settings.
type GatewayConfig struct {
	ServerKey   string
	ClientKey   string
	SnapBaseURL string
	APIBaseURL  string
	FinishURL   string
	ErrorURL    string
	PendingURL  string
	ExpiryHours int
}

type BookingConfig struct {
	CodePrefix string
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("SESSION_EXPIRY_HOURS", 24)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("GATEWAY_SNAP_BASE_URL", "https://app.sandbox.midtrans.com")
	viper.SetDefault("GATEWAY_API_BASE_URL", "https://api.sandbox.midtrans.com")
	viper.SetDefault("GATEWAY_EXPIRY_HOURS", 24)
	viper.SetDefault("BOOKING_CODE_PREFIX", "TRV")

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		Session: SessionConfig{
			ExpiryHours: viper.GetInt("SESSION_EXPIRY_HOURS"),
		},
		Gateway: GatewayConfig{
			ServerKey:   viper.GetString("GATEWAY_SERVER_KEY"),
			ClientKey:   viper.GetString("GATEWAY_CLIENT_KEY"),
			SnapBaseURL: viper.GetString("GATEWAY_SNAP_BASE_URL"),
			APIBaseURL:  viper.GetString("GATEWAY_API_BASE_URL"),
			FinishURL:   viper.GetString("GATEWAY_FINISH_URL"),
			ErrorURL:    viper.GetString("GATEWAY_ERROR_URL"),
			PendingURL:  viper.GetString("GATEWAY_PENDING_URL"),
			ExpiryHours: viper.GetInt("GATEWAY_EXPIRY_HOURS"),
		},
		Booking: BookingConfig{
			CodePrefix: viper.GetString("BOOKING_CODE_PREFIX"),
		},
	}

	return config, nil
}

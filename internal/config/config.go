// File: internal/config/config.go
package config

import "time"

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Kafka    KafkaConfig    `mapstructure:"kafka"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	OAuth    OAuthConfig    `mapstructure:"oauth"`
	Email    EmailConfig    `mapstructure:"email"`
	Gateway  GatewayConfig  `mapstructure:"gateway"`
	Security SecurityConfig `mapstructure:"security"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Admin    AdminConfig    `mapstructure:"admin"`
}

type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Host        string        `mapstructure:"host"`
	Port        int           `mapstructure:"port"`
	User        string        `mapstructure:"user"`
	Password    string        `mapstructure:"password"`
	DBName      string        `mapstructure:"dbname"`
	SSLMode     string        `mapstructure:"sslmode"`
	MaxConns    int           `mapstructure:"max_conns"`
	MinConns    int           `mapstructure:"min_conns"`
	ConnMaxLife time.Duration `mapstructure:"conn_max_life"`
	AutoMigrate bool          `mapstructure:"auto_migrate"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type KafkaConfig struct {
	Brokers         []string `mapstructure:"brokers"`
	UserEventsTopic string   `mapstructure:"user_events_topic"`
}

// JWTConfig holds the token material. Secret is the base64-encoded HMAC key
// shared with the gateway; both binaries read the same value.
type JWTConfig struct {
	Secret                string        `mapstructure:"secret"`
	AccessTokenTTL        time.Duration `mapstructure:"access_token_ttl"`
	RefreshTokenTTL       time.Duration `mapstructure:"refresh_token_ttl"`
	PasswordResetTokenTTL time.Duration `mapstructure:"password_reset_token_ttl"`
}

type OAuthConfig struct {
	GoogleClientID     string `mapstructure:"google_client_id"`
	GoogleClientSecret string `mapstructure:"google_client_secret"`
	GoogleRedirectURL  string `mapstructure:"google_redirect_url"`
	// SuccessRedirectURL is the frontend page that receives the issued tokens
	// as query parameters. Error redirects go to the URL's site root.
	SuccessRedirectURL string `mapstructure:"success_redirect_url"`
}

type EmailConfig struct {
	Host        string `mapstructure:"host"`
	Port        int    `mapstructure:"port"`
	Username    string `mapstructure:"username"`
	Password    string `mapstructure:"password"`
	From        string `mapstructure:"from"`
	FrontendURL string `mapstructure:"frontend_url"`
}

// GatewayRoute maps one protected prefix to its upstream service.
type GatewayRoute struct {
	Prefix   string `mapstructure:"prefix"`
	Upstream string `mapstructure:"upstream"`
}

type GatewayConfig struct {
	Routes []GatewayRoute `mapstructure:"routes"`
}

// RateLimitRule defines the configuration for a specific rate limit.
type RateLimitRule struct {
	Enabled bool          `mapstructure:"enabled"`
	Limit   int           `mapstructure:"limit"`
	Window  time.Duration `mapstructure:"window"`
}

type RateLimitConfig struct {
	Enabled        bool          `mapstructure:"enabled"`
	LoginIP        RateLimitRule `mapstructure:"login_ip"`
	RegisterIP     RateLimitRule `mapstructure:"register_ip"`
	ForgotPassword RateLimitRule `mapstructure:"forgot_password"`
}

type SecurityConfig struct {
	RateLimiting RateLimitConfig `mapstructure:"rate_limiting"`
}

type LoggingConfig struct {
	Level       string `mapstructure:"level"`
	Environment string `mapstructure:"environment"`
}

// AdminConfig holds the fixed-admin bootstrap credentials.
type AdminConfig struct {
	Email    string `mapstructure:"email"`
	Password string `mapstructure:"password"`
	FullName string `mapstructure:"full_name"`
}

// File: internal/config/loader.go
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// LoadConfig загружает конфигурацию из файла и переменных окружения.
// envPrefix различает бинарники (AUTH для identity-service, GATEWAY для
// api-gateway), чтобы их переменные окружения не пересекались.
func LoadConfig(envPrefix string) (*Config, error) {
	// Установка значений по умолчанию
	setDefaults()

	env := strings.ToLower(os.Getenv("APP_ENV"))
	if env == "" {
		env = "development"
	}
	if env == "development" {
		// .env подхватывается только в разработке
		_ = godotenv.Load()
	}

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		viper.SetConfigFile(path)
	} else {
		viper.SetConfigName(fmt.Sprintf("config.%s", env))
		viper.SetConfigType("yaml")
		viper.AddConfigPath("./configs")
		viper.AddConfigPath(".")
	}

	// Чтение переменных окружения
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Чтение конфигурационного файла
	if err := viper.ReadInConfig(); err != nil {
		// Если файл не найден, используем только переменные окружения
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

// setDefaults устанавливает значения по умолчанию для конфигурации
func setDefaults() {
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", "10s")
	viper.SetDefault("server.write_timeout", "10s")
	viper.SetDefault("server.idle_timeout", "60s")
	viper.SetDefault("server.shutdown_timeout", "15s")

	viper.SetDefault("database.sslmode", "disable")
	viper.SetDefault("database.auto_migrate", true)

	viper.SetDefault("jwt.access_token_ttl", "1h")
	viper.SetDefault("jwt.refresh_token_ttl", "168h")
	viper.SetDefault("jwt.password_reset_token_ttl", "30m")

	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.environment", "development")

	viper.SetDefault("security.rate_limiting.enabled", false)

	viper.SetDefault("admin.email", "admin@withfy.com")
	viper.SetDefault("admin.full_name", "Default Admin")
}

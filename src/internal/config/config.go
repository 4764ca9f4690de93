package config

import (
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds every runtime setting; it is built once in main and injected
// into the components that need it.
type Config struct {
	ServerPort           string `mapstructure:"SERVER_PORT"`
	DatabaseDSN          string `mapstructure:"DATABASE_DSN"`
	MigrationsDir        string `mapstructure:"MIGRATIONS_DIR"`
	RabbitMQURL          string `mapstructure:"RABBITMQ_URL"`
	NotificationExchange string `mapstructure:"NOTIFICATION_EXCHANGE"`
	AdminChannelID       string `mapstructure:"ADMIN_CHANNEL_ID"`
	AdminChannelKey      string `mapstructure:"ADMIN_CHANNEL_KEY"`
}

func Load(path string) (Config, error) {
	viper.AddConfigPath(path)
	viper.SetConfigName(".env")
	viper.SetConfigType("env")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("DATABASE_DSN", "Host=localhost;Port=5432;Database=bank_db;Username=postgres;Password=postgres;Timeout=30;CommandTimeout=30")
	viper.SetDefault("MIGRATIONS_DIR", filepath.Join("src", "migrations"))
	viper.SetDefault("NOTIFICATION_EXCHANGE", "banking.notifications")

	_ = viper.BindEnv("SERVER_PORT")
	_ = viper.BindEnv("DATABASE_DSN")
	_ = viper.BindEnv("MIGRATIONS_DIR")
	_ = viper.BindEnv("RABBITMQ_URL")
	_ = viper.BindEnv("NOTIFICATION_EXCHANGE")
	_ = viper.BindEnv("ADMIN_CHANNEL_ID")
	_ = viper.BindEnv("ADMIN_CHANNEL_KEY")

	// The .env file is optional; environment values take over when it is
	// missing or unreadable.
	_ = viper.ReadInConfig()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}

	cfg.DatabaseDSN = normalizeConnectionString(strings.TrimSpace(cfg.DatabaseDSN))
	cfg.AdminChannelID = strings.TrimSpace(cfg.AdminChannelID)
	cfg.AdminChannelKey = strings.TrimSpace(cfg.AdminChannelKey)

	return cfg, nil
}

// normalizeConnectionString accepts semicolon key=value connection strings and
// rewrites them into libpq keyword form. Plain libpq strings pass through.
func normalizeConnectionString(raw string) string {
	if !strings.Contains(raw, ";") {
		return raw
	}

	parts := strings.Split(raw, ";")
	out := make([]string, 0, len(parts))
	hasSSLMode := false

	for _, part := range parts {
		p := strings.TrimSpace(part)
		if p == "" {
			continue
		}

		kv := strings.SplitN(p, "=", 2)
		if len(kv) != 2 {
			continue
		}

		key := strings.ToLower(strings.TrimSpace(kv[0]))
		val := strings.TrimSpace(kv[1])

		switch key {
		case "host":
			out = append(out, "host="+val)
		case "port":
			out = append(out, "port="+val)
		case "database":
			out = append(out, "dbname="+val)
		case "username":
			out = append(out, "user="+val)
		case "password":
			out = append(out, "password="+val)
		case "timeout", "connect timeout":
			out = append(out, "connect_timeout="+val)
		case "commandtimeout", "command timeout":
			out = append(out, "statement_timeout="+val+"s")
		case "sslmode":
			hasSSLMode = true
			out = append(out, "sslmode="+val)
		default:
			out = append(out, key+"="+val)
		}
	}

	if len(out) == 0 {
		return raw
	}

	if !hasSSLMode {
		out = append(out, "sslmode=disable")
	}

	return strings.Join(out, " ")
}

package config

import (
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Server       Server
	Database     Database
	SMTP         SMTP
	Notification Notification
}

type Server struct {
	Port string
}
type Database struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

// SMTP holds credentials for outbound notification mail. When Host is empty
// the mailer runs in mock mode and logs messages instead of sending them.
type SMTP struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type Notification struct {
	// TrackedFields lists the profile fields whose changes are reported
	// to admins. Bio is excluded from the default set.
	TrackedFields   []string
	DispatchTimeout time.Duration
}

func NewConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("NOTIFY_TRACKED_FIELDS", "name,email,phone,company,position")
	viper.SetDefault("NOTIFY_DISPATCH_TIMEOUT_SECONDS", 10)

	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
	}

	var config Config

	config.Server.Port = viper.GetString("SERVER_PORT")
	config.Database.Host = viper.GetString("DATABASE_HOST")
	config.Database.Port = viper.GetString("DATABASE_PORT")
	config.Database.User = viper.GetString("DATABASE_USER")
	config.Database.Password = viper.GetString("DATABASE_PASSWORD")
	config.Database.Name = viper.GetString("DATABASE_NAME")

	config.SMTP.Host = viper.GetString("SMTP_HOST")
	config.SMTP.Port = viper.GetInt("SMTP_PORT")
	config.SMTP.Username = viper.GetString("SMTP_USERNAME")
	config.SMTP.Password = viper.GetString("SMTP_PASSWORD")
	config.SMTP.From = viper.GetString("SMTP_FROM")

	config.Notification.TrackedFields = splitFields(viper.GetString("NOTIFY_TRACKED_FIELDS"))
	config.Notification.DispatchTimeout = time.Duration(viper.GetInt("NOTIFY_DISPATCH_TIMEOUT_SECONDS")) * time.Second

	log.Info().Str("server_port", config.Server.Port).Strs("tracked_fields", config.Notification.TrackedFields).Msg("Config loaded")
	return &config, nil
}

// splitFields parses a comma-separated field list, dropping empty entries.
func splitFields(raw string) []string {
	var fields []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			fields = append(fields, trimmed)
		}
	}
	return fields
}

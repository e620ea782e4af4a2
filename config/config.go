package config

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Server   Server
	Database Database
	JWT      JWT
	Mail     Mail
	Import   Import
	Admin    Bootstrap
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

type JWT struct {
	Secret      string
	ExpiryHours int
}

// Mail is injected into the dispatcher; the transactional API is tried first
// and SMTP is the fallback path.
type Mail struct {
	APIURL      string
	APIKey      string
	SenderName  string
	SenderEmail string
	SMTPHost    string
	SMTPPort    int
	SMTPUser    string
	SMTPPass    string
	// SendDelayMS is the fixed pause between bulk messages, throttling the
	// third-party API.
	SendDelayMS int
	PortalURL   string
}

type Import struct {
	MaxUploadBytes int64
}

// Bootstrap seeds the first admin account when the table is empty.
type Bootstrap struct {
	Name     string
	Email    string
	Password string
}

func NewConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()

	viper.SetDefault("JWT_EXPIRY_HOURS", 12)
	viper.SetDefault("MAIL_SEND_DELAY_MS", 500)
	viper.SetDefault("IMPORT_MAX_UPLOAD_BYTES", 5*1024*1024)

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

	config.JWT.Secret = viper.GetString("JWT_SECRET")
	config.JWT.ExpiryHours = viper.GetInt("JWT_EXPIRY_HOURS")

	config.Mail.APIURL = viper.GetString("MAIL_API_URL")
	config.Mail.APIKey = viper.GetString("MAIL_API_KEY")
	config.Mail.SenderName = viper.GetString("MAIL_SENDER_NAME")
	config.Mail.SenderEmail = viper.GetString("MAIL_SENDER_EMAIL")
	config.Mail.SMTPHost = viper.GetString("MAIL_SMTP_HOST")
	config.Mail.SMTPPort = viper.GetInt("MAIL_SMTP_PORT")
	config.Mail.SMTPUser = viper.GetString("MAIL_SMTP_USER")
	config.Mail.SMTPPass = viper.GetString("MAIL_SMTP_PASS")
	config.Mail.SendDelayMS = viper.GetInt("MAIL_SEND_DELAY_MS")
	config.Mail.PortalURL = viper.GetString("PORTAL_URL")

	config.Import.MaxUploadBytes = viper.GetInt64("IMPORT_MAX_UPLOAD_BYTES")

	config.Admin.Name = viper.GetString("BOOTSTRAP_ADMIN_NAME")
	config.Admin.Email = viper.GetString("BOOTSTRAP_ADMIN_EMAIL")
	config.Admin.Password = viper.GetString("BOOTSTRAP_ADMIN_PASSWORD")

	log.Info().Str("port", config.Server.Port).Msg("Config loaded")
	return &config, nil
}

package config

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Server   Server
	Database Database
	Mail     Mail
	Report   Report
	Auth     Auth
}

type Server struct {
	Port    string
	BaseURL string
}

type Database struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type Mail struct {
	Host        string
	Port        int
	User        string
	Password    string
	AdminEmail  string
	AdminEmails string
}

type Report struct {
	PDFDir   string
	LogoPath string
	FontPath string
}

type Auth struct {
	UsersFile string
}

func NewConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
	}

	viper.SetDefault("PORT", "3000")
	viper.SetDefault("SMTP_HOST", "smtp.gmail.com")
	viper.SetDefault("SMTP_PORT", 587)
	viper.SetDefault("PDF_DIR", "./pdfs")
	viper.SetDefault("USERS_FILE", "./public/users.json")

	// Nudge operators about anything the pipeline needs; none of these is
	// fatal so the server can still come up in partial configurations.
	for _, key := range []string{
		"DB_USER", "DB_PASSWORD", "DB_HOST", "DB_NAME",
		"EMAIL_USER", "EMAIL_PASS", "ADMIN_EMAIL", "ADMIN_EMAILS",
	} {
		if !viper.IsSet(key) || viper.GetString(key) == "" {
			log.Warn().Str("key", key).Msg("Missing ENV")
		}
	}

	var config Config

	config.Server.Port = viper.GetString("PORT")
	config.Server.BaseURL = viper.GetString("PUBLIC_BASE_URL")
	if config.Server.BaseURL == "" {
		config.Server.BaseURL = fmt.Sprintf("http://localhost:%s", config.Server.Port)
	}

	config.Database.Host = viper.GetString("DB_HOST")
	config.Database.Port = viper.GetString("DB_PORT")
	config.Database.User = viper.GetString("DB_USER")
	config.Database.Password = viper.GetString("DB_PASSWORD")
	config.Database.Name = viper.GetString("DB_NAME")

	config.Mail.Host = viper.GetString("SMTP_HOST")
	config.Mail.Port = viper.GetInt("SMTP_PORT")
	config.Mail.User = viper.GetString("EMAIL_USER")
	config.Mail.Password = viper.GetString("EMAIL_PASS")
	config.Mail.AdminEmail = viper.GetString("ADMIN_EMAIL")
	config.Mail.AdminEmails = viper.GetString("ADMIN_EMAILS")

	config.Report.PDFDir = viper.GetString("PDF_DIR")
	config.Report.LogoPath = viper.GetString("LOGO_PATH")
	config.Report.FontPath = viper.GetString("FONT_PATH")

	config.Auth.UsersFile = viper.GetString("USERS_FILE")

	log.Info().Str("port", config.Server.Port).Str("base_url", config.Server.BaseURL).Msg("Config loaded")
	return &config, nil
}

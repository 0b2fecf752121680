package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

var (
	// ErrReadConfig возвращается, если файл конфигурации не удалось прочитать или разобрать
	ErrReadConfig = errors.New("config: failed to read config file")

	// ErrInvalidConfig возвращается при некорректных значениях конфигурации
	ErrInvalidConfig = errors.New("config: invalid configuration")
)

// Переменные окружения, перекрывающие значения из config.toml
const (
	EnvDBPassword          = "DB_PASSWORD"
	EnvAdminPassword       = "ADMIN_PASSWORD"
	EnvResendAPIKey        = "RESEND_API_KEY"
	EnvCallMeBotAPIKey     = "CALLMEBOT_APIKEY"
	EnvWhatsAppOwnerNumber = "WHATSAPP_OWNER_NUMBER"
	EnvAdminEmail          = "ADMIN_EMAIL"
)

type Config struct {
	Server        ServerConfig        `toml:"server"`
	Database      DatabaseConfig      `toml:"database"`
	Logs          LogsConfig          `toml:"logs"`
	Metrics       MetricsConfig       `toml:"metrics"`
	App           AppConfig           `toml:"app"`
	Admin         AdminConfig         `toml:"admin"`
	Notifications NotificationsConfig `toml:"notifications"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
	RunMigrations   bool   `toml:"run_migrations"`
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:     d.DBName,
		RawQuery: url.Values{"sslmode": []string{d.SSLMode}}.Encode(),
	}
	return u.String()
}

type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type AppConfig struct {
	// Timezone часовой пояс студии (IANA), в нем считаются "сегодня" и "сейчас"
	Timezone string `toml:"timezone"`
}

// Location часовой пояс студии
func (a AppConfig) Location() (*time.Location, error) {
	if a.Timezone == "" {
		return time.Local, nil
	}
	return time.LoadLocation(a.Timezone)
}

type AdminConfig struct {
	Password      string `toml:"password"`
	SessionTTL    int    `toml:"session_ttl"` // минуты
	SecureCookies bool   `toml:"secure_cookies"`
}

type NotificationsConfig struct {
	Enabled        bool    `toml:"enabled"`
	Timeout        int     `toml:"timeout"` // секунды на одну отправку
	AdminEmail     string  `toml:"admin_email"`
	StudioName     string  `toml:"studio_name"`
	ResendURL      string  `toml:"resend_url"`
	ResendAPIKey   string  `toml:"resend_api_key"`
	ResendFrom     string  `toml:"resend_from"`
	CallMeBotURL   string  `toml:"callmebot_url"`
	CallMeBotKey   string  `toml:"callmebot_apikey"`
	WhatsAppNumber string  `toml:"whatsapp_owner_number"`
	WhatsAppRPS    float64 `toml:"whatsapp_rps"`
}

// Load загружает конфигурацию из TOML файла
// Секреты из окружения (и .env, если он есть) перекрывают значения файла
func Load(path string) (*Config, error) {
	// .env необязателен
	_ = godotenv.Load()

	cfg := defaults()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrReadConfig, path, err)
	}

	cfg.applyEnv(os.Getenv)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
			RunMigrations:   true,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "studio-booking",
		},
		Admin: AdminConfig{
			SessionTTL: 12 * 60,
		},
		Notifications: NotificationsConfig{
			Timeout:      10,
			StudioName:   "Studio",
			ResendURL:    "https://api.resend.com",
			CallMeBotURL: "https://api.callmebot.com",
			WhatsAppRPS:  0.2,
		},
	}
}

func (c *Config) applyEnv(getenv func(string) string) {
	override := func(dst *string, key string) {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			*dst = v
		}
	}

	override(&c.Database.Password, EnvDBPassword)
	override(&c.Admin.Password, EnvAdminPassword)
	override(&c.Notifications.ResendAPIKey, EnvResendAPIKey)
	override(&c.Notifications.CallMeBotKey, EnvCallMeBotAPIKey)
	override(&c.Notifications.WhatsAppNumber, EnvWhatsAppOwnerNumber)
	override(&c.Notifications.AdminEmail, EnvAdminEmail)
}

// Validate проверяет обязательные поля
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port must be in 1..65535", ErrInvalidConfig)
	}
	if c.Database.Host == "" || c.Database.DBName == "" || c.Database.User == "" {
		return fmt.Errorf("%w: database host, dbname and user are required", ErrInvalidConfig)
	}
	if c.Admin.Password == "" {
		return fmt.Errorf("%w: admin password is required (%s)", ErrInvalidConfig, EnvAdminPassword)
	}
	if c.Admin.SessionTTL <= 0 {
		return fmt.Errorf("%w: admin.session_ttl must be positive", ErrInvalidConfig)
	}
	if _, err := c.App.Location(); err != nil {
		return fmt.Errorf("%w: app.timezone: %v", ErrInvalidConfig, err)
	}
	if c.Notifications.Enabled && c.Notifications.WhatsAppRPS <= 0 {
		return fmt.Errorf("%w: notifications.whatsapp_rps must be positive", ErrInvalidConfig)
	}
	return nil
}

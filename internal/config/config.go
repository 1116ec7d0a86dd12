// Package config предоставляет структуры и функцию для загрузки конфига.
// Основной источник — yaml-файл по пути CONFIG_PATH, секреты и адреса
// внешних систем можно переопределить переменными окружения.
package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config общая структура для хранения настроек приложения.
type Config struct {
	Env                     string   `yaml:"env" env:"ENV" env-default:"local"`
	StorageConnectionString string   `yaml:"storage_connection_string" env:"STORAGE_CONNECTION_STRING"`
	FrontendURL             string   `yaml:"frontend_url" env:"FRONTEND_URL" env-default:"http://localhost:3000"`
	CORSAllowedOrigins      []string `yaml:"cors_allowed_origins" env:"CORS_ALLOWED_ORIGINS"`
	HTTPServer              `yaml:"http_server"`
	RedisConnection         `yaml:"redis_connection"`
	Rabbit                  `yaml:"rabbitmq"`
	JWTToken                `yaml:"jwttoken"`
	Email                   `yaml:"email"`
}

// HTTPServer структура для настройки сервера.
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp" env-default:":8080"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp" env-default:"10s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// RedisConnection структура для настройки подключения к redis.
type RedisConnection struct {
	AddressRedis string        `yaml:"addressredis" env:"REDIS_ADDRESS"`
	Password     string        `yaml:"password" env:"REDIS_PASSWORD"`
	User         string        `yaml:"user"`
	DB           int           `yaml:"db"`
	MaxRetries   int           `yaml:"max_retries" env-default:"3"`
	DialTimeout  time.Duration `yaml:"dial_timeout" env-default:"5s"`
	TimeoutRedis time.Duration `yaml:"timeoutredis" env-default:"3s"`
}

// Rabbit структура для настройки подключения к RabbitMQ.
type Rabbit struct {
	RabbitURL      string        `yaml:"url" env:"RABBITMQ_URL"`
	ConnectRetries int           `yaml:"connect_retries" env-default:"5"`
	ConnectDelay   time.Duration `yaml:"connect_delay" env-default:"3s"`
}

// JWTToken структура для работы с сессионными токенами.
type JWTToken struct {
	JWTSecretKey string        `yaml:"jwt_secret_key" env:"JWT_SECRET_KEY"`
	TokenTTL     time.Duration `yaml:"token_ttl" env:"TOKEN_TTL" env-default:"24h"`
}

// Email структура для настройки исходящей почты.
type Email struct {
	EmailFrom string `yaml:"from" env:"EMAIL_FROM" env-default:"noreply@imbasubvault.com"`
	SMTPHost  string `yaml:"smtp_host" env:"SMTP_HOST" env-default:"localhost"`
	SMTPPort  int    `yaml:"smtp_port" env:"SMTP_PORT" env-default:"1025"`
	SMTPUser  string `yaml:"smtp_user" env:"SMTP_USER"`
	SMTPPass  string `yaml:"smtp_pass" env:"SMTP_PASS"`
}

// MustLoad загружает конфиг и завершает процесс при любой ошибке.
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("file: %s - does not exist", configPath)
	}
	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return &cfg
}

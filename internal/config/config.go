package config

import (
	"log"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

type PaymentConfig struct {
	Env        string `yaml:"env"`
	HTTPServer `yaml:"http_server"`
	OrderDB    `yaml:"order_db"`
	LogConfig  `yaml:"log_config"`
	SSLCommerz `yaml:"sslcommerz"`
	SMTP       `yaml:"smtp"`
	Kafka      `yaml:"kafka-service"`
	Redis      `yaml:"redis-service"`
}

type HTTPServer struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
	// PublicBaseURL is the origin the gateway redirects back to; callback
	// URLs handed to the gateway at initiation are built from it.
	PublicBaseURL string `yaml:"public_base_url" env:"PUBLIC_BASE_URL"`
}

type OrderDB struct {
	Dsn            string `yaml:"dsn" env:"ORDER_DB_DSN"`
	MigrationsPath string `yaml:"migrations_path" env:"ORDER_DB_MIGRATIONS_PATH"`
}

type LogConfig struct {
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
	LogOutput string `yaml:"log_output"`
}

type SSLCommerz struct {
	StoreID        string `yaml:"store_id" env:"SSL_COMMERZ_STORE_ID"`
	StorePassword  string `yaml:"store_passwd" env:"SSL_COMMERZ_STORE_PASSWORD"`
	Live           bool   `yaml:"live"`
	TimeoutSeconds int    `yaml:"timeout_seconds" env-default:"10"`
}

type SMTP struct {
	Host       string `yaml:"host" env-default:"smtp.gmail.com"`
	Port       int    `yaml:"port" env-default:"465"`
	Username   string `yaml:"username" env:"EMAIL_USER"`
	Password   string `yaml:"password" env:"EMAIL_PASS"`
	AdminEmail string `yaml:"admin_email" env:"ADMIN_EMAIL"`
}

type Kafka struct {
	Host  string `yaml:"host"`
	Port  string `yaml:"port"`
	Topic string `yaml:"topic" env-default:"payment-events"`
}

type Redis struct {
	Addr string `yaml:"addr" env:"REDIS_ADDR"`
}

func MustLoad() *PaymentConfig {

	// Processing env config variable and file
	configPath := os.Getenv("PAYMENT_CONFIG_PATH")

	if configPath == "" {
		log.Fatalf("PAYMENT_CONFIG_PATH was not found\n")
	}

	if _, err := os.Stat(configPath); err != nil {
		log.Fatalf("failed to find config file: %v\n", err)
	}

	// YAML to struct object
	var cfg PaymentConfig
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("failed to read config file: %v", err)
	}

	return &cfg
}

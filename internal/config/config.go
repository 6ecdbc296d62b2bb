package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type StoreConfig struct {
	Env        string `yaml:"env"`
	HTTPServer `yaml:"http_server"`
	StoreDB    `yaml:"store_db"`
	LogConfig  `yaml:"log_config"`
	KafkaService `yaml:"kafka-service"`
	Auth       `yaml:"auth"`
	Geo        `yaml:"geo"`
}

type HTTPServer struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

type StoreDB struct {
	Dsn            string `yaml:"dsn"`
	MigrationsPath string `yaml:"migrations_path"`
}

type LogConfig struct {
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
	LogOutput string `yaml:"log_output"`
}

type KafkaService struct {
	Host    string `yaml:"host"`
	Port    string `yaml:"port"`
	Topic   string `yaml:"topic"`
	Enabled bool   `yaml:"enabled"`
}

type Auth struct {
	Secret        string        `yaml:"secret" env:"TOKEN_SECRET"`
	RefreshSecret string        `yaml:"refresh_secret" env:"REFRESH_TOKEN_SECRET"`
	TokenTTL      time.Duration `yaml:"token_ttl"`
	RefreshTTL    time.Duration `yaml:"refresh_ttl"`
}

type Geo struct {
	Precision uint `yaml:"precision"`
}

func MustLoad() *StoreConfig {

	// Processing env config variable and file
	configPath := os.Getenv("STORE_CONFIG_PATH")

	if configPath == "" {
		log.Fatalf("STORE_CONFIG_PATH was not found\n")
	}

	if _, err := os.Stat(configPath); err != nil {
		log.Fatalf("failed to find config file: %v\n", err)
	}

	// YAML to struct object
	var cfg StoreConfig
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("failed to read config file: %v", err)
	}

	return &cfg
}

package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Environment      string
	ServicePort      string
	MetricsPort      string
	CatalogAPIConfig CatalogAPIConfig
	AdminPassword    string
	JWTSecret        string
	KafkaConfig      KafkaConfig
	TracingConfig    TracingConfig
}

type CatalogAPIConfig struct {
	BaseURL string
}

type KafkaConfig struct {
	BrokerAddress string
	BrokerTopic   string
}

type TracingConfig struct {
	CollectorHost string
}

func CreateNewConfig() *Config {
	godotenv.Load(".env")

	conf := Config{
		Environment: os.Getenv("ENVIRONMENT"),
		ServicePort: os.Getenv("SERVICE_PORT"),
		MetricsPort: os.Getenv("METRICS_PORT"),
		CatalogAPIConfig: CatalogAPIConfig{
			BaseURL: os.Getenv("CATALOG_API_BASE_URL"),
		},
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		KafkaConfig: KafkaConfig{
			BrokerAddress: os.Getenv("BROKER_ADDRESS"),
			BrokerTopic:   os.Getenv("BROKER_TOPIC"),
		},
		TracingConfig: TracingConfig{
			CollectorHost: os.Getenv("COLLECTOR_HOST"),
		},
	}

	if conf.CatalogAPIConfig.BaseURL == "" {
		conf.CatalogAPIConfig.BaseURL = "http://localhost:5000/api"
	}

	return &conf
}

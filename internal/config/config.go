package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Delivery DeliveryConfig
	Kafka    KafkaConfig
	Board    BoardConfig
	Log      LogConfig
}

type ServerConfig struct {
	Port int
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type DeliveryConfig struct {
	QuoteURL string
	Timeout  time.Duration
}

type KafkaConfig struct {
	Brokers []string
	Topic   string
}

type BoardConfig struct {
	APIBaseURL   string
	PollInterval time.Duration
	AutoPrint    bool
}

type LogConfig struct {
	Level string
}

func Load() (*Config, error) {
	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", 3005)
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", 3306)
	viper.SetDefault("DB_USER", "brutus")
	viper.SetDefault("DB_PASSWORD", "secret")
	viper.SetDefault("DB_NAME", "brutus")
	viper.SetDefault("DB_MAX_OPEN_CONNS", 25)
	viper.SetDefault("DB_MAX_IDLE_CONNS", 5)
	viper.SetDefault("DB_CONN_MAX_LIFETIME", "5m")
	viper.SetDefault("DELIVERY_QUOTE_URL", "http://localhost:3006/quote")
	viper.SetDefault("DELIVERY_QUOTE_TIMEOUT", "10s")
	viper.SetDefault("KAFKA_BROKERS", "localhost:9092")
	viper.SetDefault("KAFKA_ORDER_TOPIC", "order-created")
	viper.SetDefault("BOARD_API_BASE_URL", "http://localhost:3005")
	viper.SetDefault("BOARD_POLL_INTERVAL", "5s")
	viper.SetDefault("BOARD_AUTO_PRINT", false)
	viper.SetDefault("LOG_LEVEL", "info")

	connMaxLifetime, err := time.ParseDuration(viper.GetString("DB_CONN_MAX_LIFETIME"))
	if err != nil {
		return nil, err
	}

	quoteTimeout, err := time.ParseDuration(viper.GetString("DELIVERY_QUOTE_TIMEOUT"))
	if err != nil {
		return nil, err
	}

	pollInterval, err := time.ParseDuration(viper.GetString("BOARD_POLL_INTERVAL"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: viper.GetInt("SERVER_PORT"),
		},
		Database: DatabaseConfig{
			Host:            viper.GetString("DB_HOST"),
			Port:            viper.GetInt("DB_PORT"),
			User:            viper.GetString("DB_USER"),
			Password:        viper.GetString("DB_PASSWORD"),
			Name:            viper.GetString("DB_NAME"),
			MaxOpenConns:    viper.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    viper.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: connMaxLifetime,
		},
		Delivery: DeliveryConfig{
			QuoteURL: viper.GetString("DELIVERY_QUOTE_URL"),
			Timeout:  quoteTimeout,
		},
		Kafka: KafkaConfig{
			Brokers: viper.GetStringSlice("KAFKA_BROKERS"),
			Topic:   viper.GetString("KAFKA_ORDER_TOPIC"),
		},
		Board: BoardConfig{
			APIBaseURL:   viper.GetString("BOARD_API_BASE_URL"),
			PollInterval: pollInterval,
			AutoPrint:    viper.GetBool("BOARD_AUTO_PRINT"),
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
	}

	return cfg, nil
}

package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Upstream  UpstreamConfig
	Kafka     KafkaConfig
	Observ    ObservabilityConfig
	Inventory InventoryConfig
}

type ServerConfig struct {
	InventoryPort string
	OrdersPort    string
	GatewayPort   string
	Env           string
}

type UpstreamConfig struct {
	InventoryURL string
	OrdersURL    string
	// ClientTimeout bounds reads against a dependency; CreateTimeout bounds
	// the gateway's order creation call, which spans one inventory round
	// trip per line item.
	ClientTimeout time.Duration
	CreateTimeout time.Duration
}

type KafkaConfig struct {
	Brokers       []string
	TopicOrder    string
	ConsumerGroup string
}

// Enabled reports whether the order event stream is configured.
func (k KafkaConfig) Enabled() bool {
	return len(k.Brokers) > 0
}

type ObservabilityConfig struct {
	JaegerEndpoint string
}

type InventoryConfig struct {
	LowStockThreshold int
}

func Load() *Config {
	_ = godotenv.Load()

	clientTimeout, _ := strconv.Atoi(getEnv("HTTP_CLIENT_TIMEOUT_SECONDS", "10"))
	createTimeout, _ := strconv.Atoi(getEnv("ORDER_CREATE_TIMEOUT_SECONDS", "30"))
	lowStock, _ := strconv.Atoi(getEnv("LOW_STOCK_THRESHOLD", "10"))

	var brokers []string
	if raw := getEnv("KAFKA_BROKERS", ""); raw != "" {
		brokers = strings.Split(raw, ",")
	}

	cfg := &Config{
		Server: ServerConfig{
			InventoryPort: getEnv("INVENTORY_PORT", "8000"),
			OrdersPort:    getEnv("ORDERS_PORT", "8001"),
			GatewayPort:   getEnv("GATEWAY_PORT", "8080"),
			Env:           getEnv("ENV", "development"),
		},
		Upstream: UpstreamConfig{
			InventoryURL:  getEnv("INVENTORY_API_URL", "http://localhost:8000"),
			OrdersURL:     getEnv("ORDERS_API_URL", "http://localhost:8001"),
			ClientTimeout: time.Duration(clientTimeout) * time.Second,
			CreateTimeout: time.Duration(createTimeout) * time.Second,
		},
		Kafka: KafkaConfig{
			Brokers:       brokers,
			TopicOrder:    getEnv("KAFKA_TOPIC_ORDER_EVENTS", "order-events"),
			ConsumerGroup: getEnv("KAFKA_CONSUMER_GROUP", "inventory-alerts-group"),
		},
		Observ: ObservabilityConfig{
			JaegerEndpoint: getEnv("JAEGER_ENDPOINT", "http://localhost:14268/api/traces"),
		},
		Inventory: InventoryConfig{
			LowStockThreshold: lowStock,
		},
	}

	log.Printf("Config loaded: env=%s", cfg.Server.Env)
	return cfg
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

package config

import (
	"os"
	"time"
)

type Config struct {
	HTTPAddr string

	MongoURL string
	DBName   string

	ShopifyStoreDomain     string
	ShopifyStorefrontToken string
	ShopifyAdminToken      string
	ShopifyAPIVersion      string

	RazorpayKeyID     string
	RazorpayKeySecret string

	RabbitURL      string
	EventsExchange string

	HTTPClientTimeout   time.Duration
	ShutdownGracePeriod time.Duration
}

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return def
}

func Load() Config {
	return Config{
		HTTPAddr:               getEnv("HTTP_ADDR", ":8000"),
		MongoURL:               getEnv("MONGO_URL", "mongodb://localhost:27017"),
		DBName:                 getEnv("DB_NAME", "undhyu"),
		ShopifyStoreDomain:     getEnv("SHOPIFY_STORE_DOMAIN", ""),
		ShopifyStorefrontToken: getEnv("SHOPIFY_STOREFRONT_ACCESS_TOKEN", ""),
		ShopifyAdminToken:      getEnv("SHOPIFY_ADMIN_ACCESS_TOKEN", ""),
		ShopifyAPIVersion:      getEnv("SHOPIFY_API_VERSION", "2024-01"),
		RazorpayKeyID:          getEnv("RAZORPAY_KEY_ID", ""),
		RazorpayKeySecret:      getEnv("RAZORPAY_KEY_SECRET", ""),
		RabbitURL:              getEnv("RABBIT_URL", ""),
		EventsExchange:         getEnv("EVENTS_EXCHANGE", "checkout.events"),
		HTTPClientTimeout:      parseDuration("HTTP_CLIENT_TIMEOUT", 30*time.Second),
		ShutdownGracePeriod:    parseDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
	}
}

func parseDuration(key string, def time.Duration) time.Duration {
	if raw, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(raw); err == nil {
			return d
		}
	}
	return def
}

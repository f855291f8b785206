package config

import (
	"os"
	"strconv"
)

type Config struct {
	Addr        string
	DatabaseURL string
	RedisAddr   string
	RedisPass   string
	RedisDB     int
	JWTSecret   string

	// checkout pricing, in base currency
	ShippingFlatRate      float64
	FreeShippingThreshold float64
}

func Load() Config {
	addr := os.Getenv("SHOP_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}

	return Config{
		Addr:                  addr,
		DatabaseURL:           os.Getenv("DATABASE_URL"),
		RedisAddr:             redisAddr,
		RedisPass:             os.Getenv("REDIS_PASSWORD"),
		RedisDB:               envInt("REDIS_DB", 0),
		JWTSecret:             os.Getenv("JWT_SECRET"),
		ShippingFlatRate:      envFloat("SHIPPING_FLAT_RATE", 99),
		FreeShippingThreshold: envFloat("FREE_SHIPPING_THRESHOLD", 2000),
	}
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

package config

import (
	"os"
	"strconv"
	"time"
)

// Client captures configuration for the partnerdesk client and its side
// listeners.
type Client struct {
	// APIBaseURL is the upstream partnership registry, e.g. http://localhost:8080.
	APIBaseURL string
	// HTTPTimeout bounds every upstream round trip.
	HTTPTimeout time.Duration
	// SettleDelay is the quiet period after the last email keystroke before
	// the status probe fires.
	SettleDelay time.Duration
	// PageSize is the per-department page size of the directory view.
	PageSize int
	// MetricsAddr serves the Prometheus handler; empty disables it.
	MetricsAddr string
	// MockAddr is where the embedded registry mock listens.
	MockAddr string
	Redis    RedisConfig
}

// RedisConfig configures the optional Redis-backed session store. An empty
// URL means sessions stay in memory.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// FromEnv builds a Client config from environment variables so main stays lean.
func FromEnv() Client {
	return Client{
		APIBaseURL:  stringEnv("PARTNERDESK_API_URL", "http://localhost:8080"),
		HTTPTimeout: durationEnv("PARTNERDESK_HTTP_TIMEOUT", 10*time.Second),
		SettleDelay: durationEnv("PARTNERDESK_SETTLE_DELAY", 500*time.Millisecond),
		PageSize:    intEnv("PARTNERDESK_PAGE_SIZE", 6),
		MetricsAddr: os.Getenv("PARTNERDESK_METRICS_ADDR"),
		MockAddr:    stringEnv("PARTNERDESK_MOCK_ADDR", ":8080"),
		Redis: RedisConfig{
			URL:          os.Getenv("PARTNERDESK_REDIS_URL"),
			PoolSize:     intEnv("PARTNERDESK_REDIS_POOL_SIZE", 5),
			MinIdleConns: intEnv("PARTNERDESK_REDIS_MIN_IDLE", 1),
			DialTimeout:  durationEnv("PARTNERDESK_REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  durationEnv("PARTNERDESK_REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: durationEnv("PARTNERDESK_REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
	}
}

func stringEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func intEnv(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

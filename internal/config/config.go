package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Supported storage backends.
const (
	StoreFile   = "file"
	StoreRedis  = "redis"
	StoreBolt   = "bolt"
	StoreMemory = "memory"
)

type Config struct {
	ListenAddr      string        // ex: ":4000", derived from PORT
	ShutdownTimeout time.Duration // ex: 5s
	RequestTimeout  time.Duration // per-request handler deadline

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	Store    string // file | redis | bolt | memory
	DataFile string // JSON collection for the file store
	BoltFile string // database file for the bolt store
	SeedFile string // optional YAML seed, applied only to an empty catalog

	// Redis, used when Store == "redis"
	RedisAddr           string
	RedisUser           string
	RedisPassword       string
	RedisDB             int
	RedisKeyPrefix      string        // ex: "toolshelf:"
	RedisDT             time.Duration // dial timeout
	RedisRT             time.Duration // read timeout
	RedisWT             time.Duration // write timeout
	RedisPoolSize       int
	RedisConnectTimeout time.Duration // total time to retry connecting at startup
	RedisRetryInterval  time.Duration // initial wait between retries, grows exponentially
	RedisMaxWait        time.Duration // max wait between retries
	RedisPingTimeout    time.Duration
	RedisWarnThreshold  int

	CORSOrigins  []string // allowed origins, "*" for any
	MetricsCIDRS []string // optional, restrict /metrics and /infra to these IPs or CIDRs
	TrustProxy   bool     // true => trust X-Forwarded-For headers

	WriteBurst        int // per-IP burst of mutating requests, 0 disables limiting
	WriteRefillPerMin int // tokens regained per minute

	MetricsRefresh time.Duration // records gauge re-count interval, 0 disables
}

func Load() *Config {
	cfg := &Config{
		// Server settings
		ListenAddr:      listenAddr("PORT", 4000),
		ShutdownTimeout: mustDuration("TOOLSHELF_SHUTDOWN_TIMEOUT", 5*time.Second),
		RequestTimeout:  mustDuration("TOOLSHELF_REQUEST_TIMEOUT", 15*time.Second),

		// Logging
		LogLevel:  getenv("TOOLSHELF_LOG_LEVEL", "info"),
		PrettyLog: mustBool("TOOLSHELF_PRETTY_LOG", true),

		// Storage
		Store:    strings.ToLower(getenv("TOOLSHELF_STORE", StoreFile)),
		DataFile: getenv("TOOLSHELF_DATA_FILE", "data/tools.json"),
		BoltFile: getenv("TOOLSHELF_BOLT_FILE", "data/tools.db"),
		SeedFile: getenv("TOOLSHELF_SEED_FILE", ""),

		// Redis settings
		RedisAddr:           getenv("TOOLSHELF_REDIS_ADDR", ""),
		RedisUser:           getenv("TOOLSHELF_REDIS_USERNAME", ""),
		RedisPassword:       getenv("TOOLSHELF_REDIS_PASSWORD", ""),
		RedisDB:             getenvInt("TOOLSHELF_REDIS_DB", 0),
		RedisKeyPrefix:      getenv("TOOLSHELF_REDIS_KEY_PREFIX", "toolshelf:"),
		RedisDT:             mustDuration("TOOLSHELF_REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:             mustDuration("TOOLSHELF_REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:             mustDuration("TOOLSHELF_REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisPoolSize:       getenvInt("TOOLSHELF_REDIS_POOL_SIZE", 10),
		RedisConnectTimeout: mustDuration("TOOLSHELF_REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:  mustDuration("TOOLSHELF_REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisMaxWait:        mustDuration("TOOLSHELF_REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:    mustDuration("TOOLSHELF_REDIS_PING_TIMEOUT", 5*time.Second),
		RedisWarnThreshold:  getenvInt("TOOLSHELF_REDIS_WARN_THRESHOLD", 3),

		// Access
		CORSOrigins:  splitAndTrim(getenv("TOOLSHELF_CORS_ORIGINS", "*")),
		MetricsCIDRS: parseAllowedIPs(getenv("TOOLSHELF_METRICS_CIDRS", "")),
		TrustProxy:   mustBool("TOOLSHELF_TRUST_PROXY", false),

		WriteBurst:        getenvInt("TOOLSHELF_WRITE_BURST", 0),
		WriteRefillPerMin: getenvInt("TOOLSHELF_WRITE_REFILL_PER_MIN", 30),

		MetricsRefresh: mustDuration("TOOLSHELF_METRICS_REFRESH", 30*time.Second),
	}

	if err := cfg.validate(); err != nil {
		panic(fmt.Sprintf("❌ FATAL: %v", err))
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		if cfgCopy.RedisPassword != "" {
			cfgCopy.RedisPassword = "***REDACTED***"
		}
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
	}

	return cfg
}

func (c *Config) validate() error {
	switch c.Store {
	case StoreFile, StoreBolt, StoreMemory:
	case StoreRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("TOOLSHELF_REDIS_ADDR is required when TOOLSHELF_STORE=redis")
		}
	default:
		return fmt.Errorf("unknown TOOLSHELF_STORE %q (want file, redis, bolt or memory)", c.Store)
	}
	if len(c.CORSOrigins) == 0 {
		return fmt.Errorf("TOOLSHELF_CORS_ORIGINS must list at least one origin")
	}
	return nil
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// listenAddr turns a bare port number into a listen address. A value that is
// not a valid port is fatal.
func listenAddr(key string, def int) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fmt.Sprintf(":%d", def)
	}
	port, err := strconv.Atoi(v)
	if err != nil || port < 0 || port > 65535 {
		panic(fmt.Sprintf("❌ FATAL: Invalid port value for %s: %s", key, v))
	}
	return fmt.Sprintf(":%d", port)
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func parseAllowedIPs(allowed string) []string {
	if allowed == "" {
		return nil
	}
	ips := make([]string, 0, 4)
	for _, ip := range splitAndTrim(allowed) {
		if ip != "" {
			ips = append(ips, ip)
		}
	}
	return ips
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}

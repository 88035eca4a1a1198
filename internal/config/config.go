package config

import (
	"log"
	"os"
	"strings"
	"time"

	"larek/internal/domain"
)

type Config struct {
	Port           string
	APIOrigin      string // gateway origin, e.g. http://localhost:9090
	APIBase        string // APIOrigin + /api/weblarek
	CDNBase        string // APIOrigin + /content/weblarek
	DBDSN          string // larekd only
	MediaDir       string // larekd only
	LogFile        string
	DefaultPayment domain.Payment
	GatewayTimeout time.Duration
}

func Load() Config {
	port := getenv("PORT", "8080")
	origin := strings.TrimRight(getenv("API_ORIGIN", "http://localhost:9090"), "/")
	dsn := getenv("DB_DSN", "larekd.db")
	media := getenv("MEDIA_DIR", "./web/media")
	logFile := getenv("LOG_FILE", "")

	pay, ok := domain.ParsePayment(getenv("DEFAULT_PAYMENT", string(domain.PaymentOnline)))
	if !ok {
		// An unset default forces the user to pick a method explicitly.
		pay = domain.PaymentUnset
	}

	timeout := 10 * time.Second
	if v := os.Getenv("GATEWAY_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			timeout = d
		} else {
			log.Printf("[config] bad GATEWAY_TIMEOUT %q, using %s", v, timeout)
		}
	}

	cfg := Config{
		Port:           port,
		APIOrigin:      origin,
		APIBase:        origin + "/api/weblarek",
		CDNBase:        origin + "/content/weblarek",
		DBDSN:          dsn,
		MediaDir:       media,
		LogFile:        logFile,
		DefaultPayment: pay,
		GatewayTimeout: timeout,
	}
	log.Printf("[config] PORT=%s API_ORIGIN=%s DEFAULT_PAYMENT=%q GATEWAY_TIMEOUT=%s",
		cfg.Port, cfg.APIOrigin, cfg.DefaultPayment, cfg.GatewayTimeout)
	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

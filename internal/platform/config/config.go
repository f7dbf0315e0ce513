package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string
	Environment     string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
	HealthTimeout   time.Duration
	MaxBodyBytes    int64

	AdminToken     string
	AdminTokenHash string
	AjaxURL        string
	SiteURL        string
	TrustedProxies string

	License  License
	Vendor   Vendor
	Database DatabaseConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
}

// License describes the licensed plugin and where its license lives.
type License struct {
	PluginName       string
	ItemName         string
	Version          string
	Author           string
	StoreURL         string
	KeyOption        string
	StatusOption     string
	PageURL          string
	SettingsScreenID string
	TextDomain       string
	Locale           string
	RemoteTimeout    time.Duration
}

// Vendor configures the marketplace vendor dashboard.
type Vendor struct {
	DashboardBaseURL string
	CatalogPath      string
	JWTSigningKey    string
	JWTIssuer        string
	TokenTTL         time.Duration
}

// DatabaseConfig configures the optional Postgres option store.
type DatabaseConfig struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// RedisConfig configures the optional Redis dismissal store.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// KafkaConfig configures optional publishing of dismissal events.
type KafkaConfig struct {
	Brokers         string
	ClientID        string
	Topic           string
	Acks            string
	Retries         int
	DeliveryTimeout time.Duration
}

// FromEnv builds a Server config from environment variables so main stays lean.
// A .env file in the working directory is loaded first when present; real
// environment variables always win.
func FromEnv() Server {
	_ = godotenv.Load()

	return Server{
		Addr:            getEnv("BKAP_ADDR", ":8080"),
		Environment:     getEnv("BKAP_ENV", "development"),
		RequestTimeout:  getDuration("BKAP_REQUEST_TIMEOUT", 30*time.Second),
		ShutdownTimeout: getDuration("BKAP_SHUTDOWN_TIMEOUT", 10*time.Second),
		HealthTimeout:   getDuration("BKAP_HEALTH_TIMEOUT", 2*time.Second),
		MaxBodyBytes:    int64(getInt("BKAP_MAX_BODY_BYTES", 1<<20)),
		AdminToken:      os.Getenv("BKAP_ADMIN_TOKEN"),
		AdminTokenHash:  os.Getenv("BKAP_ADMIN_TOKEN_HASH"),
		AjaxURL:         getEnv("BKAP_AJAX_URL", "http://localhost:8080/admin/admin-ajax"),
		SiteURL:         getEnv("BKAP_SITE_URL", "http://localhost:8080"),
		TrustedProxies:  os.Getenv("BKAP_TRUSTED_PROXIES"),
		License: License{
			PluginName:       getEnv("BKAP_PLUGIN_NAME", "Booking & Appointment Plugin for WooCommerce"),
			ItemName:         getEnv("BKAP_ITEM_NAME", "Booking & Appointment Plugin for WooCommerce"),
			Version:          getEnv("BKAP_VERSION", "5.19.0"),
			Author:           getEnv("BKAP_AUTHOR", "Tyche Softwares"),
			StoreURL:         getEnv("BKAP_STORE_URL", "https://www.tychesoftwares.com/"),
			KeyOption:        getEnv("BKAP_LICENSE_KEY_OPTION", "edd_sample_license_key"),
			StatusOption:     getEnv("BKAP_LICENSE_STATUS_OPTION", "edd_sample_license_status"),
			PageURL:          getEnv("BKAP_LICENSE_PAGE_URL", "/admin/license"),
			SettingsScreenID: getEnv("BKAP_LICENSE_SCREEN_ID", "bkap_booking_page_booking_license_page"),
			TextDomain:       getEnv("BKAP_TEXT_DOMAIN", "woocommerce-booking"),
			Locale:           getEnv("BKAP_LOCALE", "en_US"),
			RemoteTimeout:    getDuration("BKAP_LICENSE_REMOTE_TIMEOUT", 15*time.Second),
		},
		Vendor: Vendor{
			DashboardBaseURL: getEnv("BKAP_VENDOR_DASHBOARD_URL", "/vendor/dashboard"),
			CatalogPath:      os.Getenv("BKAP_VENDOR_CATALOG"),
			JWTSigningKey:    getEnv("BKAP_VENDOR_JWT_KEY", "dev-vendor-key-change-in-production"),
			JWTIssuer:        getEnv("BKAP_VENDOR_JWT_ISSUER", "bkap"),
			TokenTTL:         getDuration("BKAP_VENDOR_TOKEN_TTL", 12*time.Hour),
		},
		Database: DatabaseConfig{
			URL:             os.Getenv("DATABASE_URL"),
			MaxOpenConns:    getInt("DATABASE_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getInt("DATABASE_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getDuration("DATABASE_CONN_MAX_LIFETIME", 5*time.Minute),
		},
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     getInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: getInt("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  getDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  getDuration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: getDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Kafka: KafkaConfig{
			Brokers:         os.Getenv("KAFKA_BROKERS"),
			ClientID:        getEnv("KAFKA_CLIENT_ID", "bkap"),
			Topic:           getEnv("KAFKA_NOTICE_TOPIC", "bkap.notice.dismissed"),
			Acks:            getEnv("KAFKA_ACKS", "all"),
			Retries:         getInt("KAFKA_RETRIES", 3),
			DeliveryTimeout: getDuration("KAFKA_DELIVERY_TIMEOUT", 30*time.Second),
		},
	}
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

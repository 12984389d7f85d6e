package config

import (
	"os"
	"strconv"
	"time"
)

type DashboardConfig struct {
	InvoicesPath   string
	LoginPath      string
	HomePath       string
	ItemsPerPage   int
	PageCacheTTL   time.Duration
	SessionCookie  string
	CustomerImages string
	SecureCookies  bool
}

func LoadDashboardConfig() *DashboardConfig {
	return &DashboardConfig{
		InvoicesPath:   getEnv("DASHBOARD_INVOICES_PATH", "/dashboard/invoices"),
		LoginPath:      getEnv("DASHBOARD_LOGIN_PATH", "/login"),
		HomePath:       getEnv("DASHBOARD_HOME_PATH", "/dashboard"),
		ItemsPerPage:   getEnvAsInt("DASHBOARD_ITEMS_PER_PAGE", 6),
		PageCacheTTL:   getEnvAsDuration("DASHBOARD_PAGE_CACHE_TTL", 10*time.Minute),
		SessionCookie:  getEnv("DASHBOARD_SESSION_COOKIE", "session"),
		CustomerImages: getEnv("DASHBOARD_CUSTOMER_IMAGES", "./public/customers"),
		SecureCookies:  getEnvAsBool("DASHBOARD_SECURE_COOKIES", false),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.Atoi(val); err == nil && intVal > 0 {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if duration, err := time.ParseDuration(val); err == nil {
			return duration
		}
	}
	return defaultVal
}

func getEnvAsBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return defaultVal
}

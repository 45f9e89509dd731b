// Package config provides configuration management for the bot.
// It loads environment variables and makes them available throughout the application.
package config

import (
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

// Storage backends
const (
	StorageFile  = "file"
	StorageMongo = "mongo"
)

// Watch modes
const (
	WatchMessage  = "message"
	WatchPresence = "presence"
)

// Config holds all configuration values for the bot
type Config struct {
	// Discord
	BotToken   string
	DevGuildID string

	// Storage
	StorageBackend string
	DataDir        string

	// MongoDB
	MongoDBURL string
	DBName     string

	// MQTT
	MQTTHost     string
	MQTTPort     string
	MQTTUser     string
	MQTTPassword string

	// Web Server
	Port            string
	WebAllowedHosts string

	// Environment
	Environment string

	// Webhooks
	ErrorWebhook string
	LogsWebhook  string

	// Moderation
	AuditChannel string
	BannedWords  []string
	BlockLinks   bool

	// SpamGuard
	SpamThreshold int
	SpamWindow    time.Duration

	// Leveling
	XPMin          int
	XPMax          int
	LevelCurveBase int

	// Activity watcher
	WatchMode string
}

var (
	Version   = "Dev-Local"
	BuildTime = "Hoy"
)

// cfg holds the global configuration instance
var (
	cfg     *Config
	cfgOnce sync.Once
)

// resetForTesting resets the configuration for testing purposes.
// This function should only be called from test code.
func resetForTesting() {
	cfg = nil
	cfgOnce = sync.Once{}
}

// loadConfig performs the actual configuration loading
func loadConfig() {
	// Load .env file if it exists (ignoring error if it doesn't)
	_ = godotenv.Load()

	cfg = &Config{
		// Discord
		BotToken:   getEnv("botToken", ""),
		DevGuildID: getEnv("devGuildId", ""),

		// Storage
		StorageBackend: strings.ToLower(getEnv("STORAGE_BACKEND", StorageFile)),
		DataDir:        getEnv("DATA_DIR", "./data"),

		// MongoDB
		MongoDBURL: getEnv("mongodbUrl", "mongodb://localhost:27017"),
		DBName:     getEnv("dbName", "PancyGuard"),

		// MQTT
		MQTTHost:     getEnv("MQTT_Host", ""),
		MQTTPort:     getEnv("MQTT_Port", "1883"),
		MQTTUser:     getEnv("MQTT_User", ""),
		MQTTPassword: getEnv("MQTT_Password", ""),

		// Web Server
		Port:            getEnv("PORT", "3000"),
		WebAllowedHosts: getEnv("WEB_ALLOWED_HOSTS", ""),

		// Environment
		Environment: getEnv("enviroment", "dev"),

		// Webhooks
		ErrorWebhook: getEnv("errorWebhook", ""),
		LogsWebhook:  getEnv("logsWebhook", ""),

		// Moderation
		AuditChannel: getEnv("AUDIT_CHANNEL", "mod-logs"),
		BannedWords:  getEnvList("BANNED_WORDS"),
		BlockLinks:   getEnvBool("BLOCK_LINKS", false),

		// SpamGuard
		SpamThreshold: getEnvInt("SPAM_THRESHOLD", 5),
		SpamWindow:    time.Duration(getEnvInt("SPAM_WINDOW_SECONDS", 5)) * time.Second,

		// Leveling
		XPMin:          getEnvInt("XP_MIN", 5),
		XPMax:          getEnvInt("XP_MAX", 15),
		LevelCurveBase: getEnvInt("LEVEL_CURVE_BASE", 100),

		// Activity watcher
		WatchMode: strings.ToLower(getEnv("WATCH_MODE", WatchMessage)),
	}
}

// Load initializes the configuration from environment variables
func Load() (*Config, error) {
	cfgOnce.Do(loadConfig)
	return cfg, nil
}

// Get returns the current configuration
func Get() *Config {
	// Use sync.Once to ensure thread-safe initialization if Load wasn't called
	cfgOnce.Do(loadConfig)
	return cfg
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt parses an integer variable, falling back on missing or malformed values
func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvList splits a comma separated variable, dropping empty items
func getEnvList(key string) []string {
	var out []string
	for _, item := range strings.Split(os.Getenv(key), ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// IsProd returns true if the environment is production
func (c *Config) IsProd() bool {
	return c.Environment == "prod"
}

// UsesMongo returns true when snapshots are persisted in MongoDB
func (c *Config) UsesMongo() bool {
	return c.StorageBackend == StorageMongo
}

// MQTTEnabled returns true when an MQTT broker has been configured
func (c *Config) MQTTEnabled() bool {
	return c.MQTTHost != ""
}

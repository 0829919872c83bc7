package config

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// AppConfig holds all runtime configuration. Sensitive values have no
// defaults in code and must come from the config file or the environment.
type AppConfig struct {
	AppPort       string `json:"app_port"`
	JWTSecret     string `json:"jwt_secret"`
	TokenTTLHours int    `json:"token_ttl_hours"`

	MongoURI      string `json:"mongo_uri"`
	MongoDatabase string `json:"mongo_database"`

	AllowedOrigins []string `json:"allowed_origins"`

	GinMode string `json:"gin_mode"`
	GinPath string `json:"gin_log_path"`

	LogLevel      string `json:"log_level"`
	LogPath       string `json:"log_path"`
	LogMaxSizeMB  int    `json:"log_max_size_mb"`
	LogMaxBackups int    `json:"log_max_backups"`
	LogMaxAgeDays int    `json:"log_max_age_days"`
	LogCompress   bool   `json:"log_compress"`

	RateLimitPerMinute int `json:"rate_limit_per_minute"`

	RedisHost     string `json:"redis_host"`
	RedisPort     int    `json:"redis_port"`
	RedisDB       int    `json:"redis_db"`
	RedisPassword string `json:"redis_password"`

	UploadDir       string `json:"upload_dir"`
	UploadMaxSizeMB int    `json:"upload_max_size_mb"`
}

var cfg AppConfig
var loaded bool

// Load reads configuration once during boot. Precedence: config/config.json,
// then built-in defaults, then environment variable overrides. A missing JWT
// secret is tolerated here; token operations fail with a 500 at request time.
func Load() AppConfig {
	if loaded {
		return cfg
	}

	if err := loadJSONConfig(filepath.Join("config", "config.json"), &cfg); err != nil {
		log.Printf("config: ignoring invalid config.json: %v", err)
	}
	applyDefaults(&cfg)
	applyEnvOverrides(&cfg)

	if cfg.JWTSecret == "" {
		log.Print("config: JWT_SECRET is not set; authenticated requests will fail")
	}

	loaded = true
	return cfg
}

// Get returns the cached configuration, loading it if necessary.
func Get() AppConfig {
	if !loaded {
		return Load()
	}
	return cfg
}

func loadJSONConfig(path string, out *AppConfig) error {
	f, err := os.Open(path)
	if err != nil {
		return nil // missing file is fine
	}
	defer f.Close()
	return json.NewDecoder(f).Decode(out)
}

func applyDefaults(c *AppConfig) {
	if c.AppPort == "" {
		c.AppPort = "5000"
	}
	if c.TokenTTLHours == 0 {
		c.TokenTTLHours = 72
	}
	if c.MongoURI == "" {
		c.MongoURI = "mongodb://localhost:27017"
	}
	if c.MongoDatabase == "" {
		c.MongoDatabase = "ideahub"
	}
	if len(c.AllowedOrigins) == 0 {
		c.AllowedOrigins = []string{"*"}
	}
	if c.GinMode == "" {
		c.GinMode = "release"
	}
	if c.GinPath == "" {
		c.GinPath = filepath.Join("logs", "gin.log")
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.LogPath == "" {
		c.LogPath = filepath.Join("logs", "app.log")
	}
	if c.RateLimitPerMinute == 0 {
		c.RateLimitPerMinute = 60
	}
	if c.RedisHost == "" {
		c.RedisHost = "127.0.0.1"
	}
	if c.RedisPort == 0 {
		c.RedisPort = 6379
	}
	if c.UploadDir == "" {
		c.UploadDir = filepath.Join("static", "uploads")
	}
	if c.UploadMaxSizeMB == 0 {
		c.UploadMaxSizeMB = 50
	}
}

func applyEnvOverrides(c *AppConfig) {
	setString(&c.AppPort, "PORT")
	setString(&c.JWTSecret, "JWT_SECRET")
	setInt(&c.TokenTTLHours, "TOKEN_TTL_HOURS")
	setString(&c.MongoURI, "MONGODB_URI")
	setString(&c.MongoDatabase, "MONGODB_DATABASE")
	setList(&c.AllowedOrigins, "ALLOWED_ORIGINS")
	setString(&c.GinMode, "GIN_MODE")
	setString(&c.GinPath, "GIN_LOG_PATH")
	setString(&c.LogLevel, "LOG_LEVEL")
	setString(&c.LogPath, "LOG_PATH")
	setInt(&c.LogMaxSizeMB, "LOG_MAX_SIZE_MB")
	setInt(&c.LogMaxBackups, "LOG_MAX_BACKUPS")
	setInt(&c.LogMaxAgeDays, "LOG_MAX_AGE_DAYS")
	setBool(&c.LogCompress, "LOG_COMPRESS")
	setInt(&c.RateLimitPerMinute, "RATE_LIMIT_PER_MINUTE")
	setString(&c.RedisHost, "REDIS_HOST")
	setInt(&c.RedisPort, "REDIS_PORT")
	setInt(&c.RedisDB, "REDIS_DB")
	setString(&c.RedisPassword, "REDIS_PASSWORD")
	setString(&c.UploadDir, "UPLOAD_DIR")
	setInt(&c.UploadMaxSizeMB, "UPLOAD_MAX_SIZE_MB")
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

func setList(dst *[]string, key string) {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if s := strings.TrimSpace(p); s != "" {
				out = append(out, s)
			}
		}
		if len(out) > 0 {
			*dst = out
		}
	}
}

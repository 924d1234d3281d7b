package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/kobopay/bvn-bulk-service/internal/log"
)

// Cache providers
const (
	CacheProviderMemory = "memory"
	CacheProviderRedis  = "redis"
)

// Configuration holds the project configuration
type Configuration struct {
	ServerPort int
	Database   Database   `mapstructure:"Database"`
	Cache      Cache      `mapstructure:"Cache"`
	Processing Processing `mapstructure:"Processing"`
	Provider   Provider   `mapstructure:"Provider"`
	Downstream Downstream `mapstructure:"Downstream"`
	Log        Log        `mapstructure:"Log"`
}

// Database has the database configuration
// URL: The database connection string
type Database struct {
	URL string `mapstructure:"Url" tip:"The Datasource name locator"`
}

// Cache configuration
type Cache struct {
	Provider string `mapstructure:"Provider" tip:"Cache provider (memory | redis)"`
	Url      string `mapstructure:"Url" tip:"The redis url to use as a cache"`
}

// Processing tunes the bulk record processing loop
type Processing struct {
	BatchSize   int           `mapstructure:"BatchSize" tip:"Max records claimed per loop iteration"`
	Delay       time.Duration `mapstructure:"Delay" tip:"Throttle delay between loop iterations"`
	MaxInFlight int           `mapstructure:"MaxInFlight" tip:"Max concurrent provider calls per iteration"`
}

// Provider holds the third party verification provider configuration
type Provider struct {
	BaseURL   string        `mapstructure:"BaseUrl" tip:"Verification provider base url"`
	SecretKey string        `mapstructure:"SecretKey" tip:"Verification provider secret key"`
	Timeout   time.Duration `mapstructure:"Timeout" tip:"Verification provider request timeout"`
}

// Downstream holds the node service configuration used for completion side effects
type Downstream struct {
	NodeServiceURL string        `mapstructure:"NodeServiceUrl" tip:"Downstream node service base url"`
	Timeout        time.Duration `mapstructure:"Timeout" tip:"Downstream request timeout"`
}

// Log holds runtime configurations
//
// Level: The minimum log level to show on logs. Values can be
//
//	 -4: Debug
//		0: Info
//		4: Warning
//		8: Error
//	 The default log level is debug
//
// Mode: Log mode is the format of the log. It can be text or json
// 1: JSON
// 2: Text
// The default log format is JSON
type Log struct {
	Level int `mapstructure:"Level" tip:"Minimum level to log: (-4:Debug, 0:Info, 4:Warning, 8:Error)"`
	Mode  int `mapstructure:"Mode" tip:"Log format (1: JSON, 2:Structured text)"`
}

const (
	defaultServerPort  = 3001
	defaultBatchSize   = 500
	defaultMaxInFlight = 100
	defaultHTTPTimeout = 30 * time.Second
)

// Sanitize performs some basic checks and sanitizations in the configuration.
// Returns nil if config is acceptable, error otherwise.
func (c *Configuration) Sanitize(ctx context.Context) error {
	if c.Database.URL == "" {
		return fmt.Errorf("database url is required")
	}
	if c.Processing.Delay <= 0 {
		return fmt.Errorf("processing delay is required and must be positive")
	}
	if c.Processing.BatchSize <= 0 {
		log.Info(ctx, "batch size not set, using default", "batchSize", defaultBatchSize)
		c.Processing.BatchSize = defaultBatchSize
	}
	if c.Processing.MaxInFlight <= 0 {
		c.Processing.MaxInFlight = defaultMaxInFlight
	}
	if c.ServerPort == 0 {
		c.ServerPort = defaultServerPort
	}
	if c.Provider.Timeout <= 0 {
		c.Provider.Timeout = defaultHTTPTimeout
	}
	if c.Downstream.Timeout <= 0 {
		c.Downstream.Timeout = defaultHTTPTimeout
	}
	if c.Cache.Provider == "" {
		c.Cache.Provider = CacheProviderMemory
	}
	if c.Cache.Provider == CacheProviderRedis && c.Cache.Url == "" {
		return fmt.Errorf("cache url is required when the cache provider is redis")
	}
	return nil
}

// SanitizeLive adds the checks only required when live bulks will be processed.
func (c *Configuration) SanitizeLive() error {
	if c.Provider.BaseURL == "" {
		return fmt.Errorf("provider base url is required in live mode")
	}
	if c.Provider.SecretKey == "" {
		return fmt.Errorf("provider secret key is required in live mode")
	}
	return nil
}

// Load loads the configuration from a file
func Load(fileName string) (*Configuration, error) {
	if err := godotenv.Load(); err == nil {
		log.Debug(context.Background(), ".env file loaded")
	}
	bindEnv()
	pathFlag := viper.GetString("config")
	if _, err := os.Stat(pathFlag); err == nil {
		ext := filepath.Ext(pathFlag)
		if len(ext) > 1 {
			ext = ext[1:]
		}
		name := strings.Split(filepath.Base(pathFlag), ".")[0]
		viper.AddConfigPath(".")
		viper.SetConfigName(name)
		viper.SetConfigType(ext)
	} else {
		// Read default config file.
		viper.AddConfigPath(".")
		viper.SetConfigType("toml")
		if fileName == "" {
			viper.SetConfigName("config")
		} else {
			viper.SetConfigName(fileName)
		}
	}

	config := &Configuration{
		Log: Log{
			Level: log.LevelDebug,
			Mode:  log.OutputText,
		},
	}
	ctx := context.Background()
	if err := viper.ReadInConfig(); err != nil {
		log.Info(ctx, "config file not loaded, relying on env vars", "err", err)
	}
	if err := viper.Unmarshal(config); err != nil {
		log.Error(ctx, "error unmarshalling config file", "err", err)
	}
	return config, nil
}

func bindEnv() {
	viper.SetEnvPrefix("BVNBULK")
	_ = viper.BindEnv("ServerPort", "BVNBULK_SERVER_PORT")

	_ = viper.BindEnv("Database.Url", "BVNBULK_DATABASE_URL")

	_ = viper.BindEnv("Cache.Provider", "BVNBULK_CACHE_PROVIDER")
	_ = viper.BindEnv("Cache.Url", "BVNBULK_REDIS_URL")

	_ = viper.BindEnv("Processing.BatchSize", "BVNBULK_BATCH_SIZE")
	_ = viper.BindEnv("Processing.Delay", "BVNBULK_DELAY_TIMEOUT")
	_ = viper.BindEnv("Processing.MaxInFlight", "BVNBULK_MAX_IN_FLIGHT")

	_ = viper.BindEnv("Provider.BaseUrl", "BVNBULK_MONO_BASEURL")
	_ = viper.BindEnv("Provider.SecretKey", "BVNBULK_MONO_SEC_KEY")
	_ = viper.BindEnv("Provider.Timeout", "BVNBULK_PROVIDER_TIMEOUT")

	_ = viper.BindEnv("Downstream.NodeServiceUrl", "BVNBULK_NODE_SERVICE")
	_ = viper.BindEnv("Downstream.Timeout", "BVNBULK_DOWNSTREAM_TIMEOUT")

	_ = viper.BindEnv("Log.Level", "BVNBULK_LOG_LEVEL")
	_ = viper.BindEnv("Log.Mode", "BVNBULK_LOG_MODE")

	viper.AutomaticEnv()
}

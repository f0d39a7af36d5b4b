package config

import (
	"time"

	"github.com/spf13/viper"
	"github.com/wb-go/wbf/zlog"
)

// Config holds the main configuration for the application.
type Config struct {
	Server    Server    `mapstructure:"server"`
	Storage   Storage   `mapstructure:"storage"`
	Kafka     Kafka     `mapstructure:"kafka"`
	Retry     Retry     `mapstructure:"retry"`
	Download  Download  `mapstructure:"download"`
	Normalize Normalize `mapstructure:"normalize"`
	Watermark Watermark `mapstructure:"watermark"`
	WorkDir   string    `mapstructure:"work_dir"` // local directory for in-flight files
}

// Server holds HTTP server-related configuration.
type Server struct {
	HTTPPort string `mapstructure:"http_port"` // HTTP port to listen on
}

// Storage holds configuration for the normalized-image storage backend.
type Storage struct {
	Backend    string `mapstructure:"backend"`  // "s3" or "local"
	BaseDir    string `mapstructure:"base_dir"` // base directory for the local backend
	Endpoint   string `mapstructure:"endpoint"`
	AccessKey  string `mapstructure:"access_key"`
	SecretKey  string `mapstructure:"secret_key"`
	BucketName string `mapstructure:"bucket_name"`
	UseSSL     bool   `mapstructure:"use_ssl"`
}

// Kafka holds configuration for the task queue.
type Kafka struct {
	GroupID string   `mapstructure:"group_id"` // consumer group ID
	Topic   string   `mapstructure:"topic"`    // task topic name
	Brokers []string `mapstructure:"brokers"`  // list of broker addresses
}

// Retry defines retry policy configuration for Kafka and downloads.
type Retry struct {
	Attempts int           `mapstructure:"attempts"` // number of retry attempts
	Delay    time.Duration `mapstructure:"delay"`    // initial delay between retries
	Backoff  float64       `mapstructure:"backoff"`  // backoff multiplier for delays
}

// Download holds configuration for the image download client.
type Download struct {
	Timeout time.Duration `mapstructure:"timeout"` // per-request timeout
}

// Normalize holds the default constraints applied by queued tasks that do
// not carry their own.
type Normalize struct {
	MaxWidth  int   `mapstructure:"max_width"`
	MaxHeight int   `mapstructure:"max_height"`
	MaxSize   int64 `mapstructure:"max_size"` // bytes
}

// Watermark holds the optional branding stamp configuration.
type Watermark struct {
	Text     string `mapstructure:"text"`      // empty disables watermarking
	FontPath string `mapstructure:"font_path"` // empty uses the built-in face
}

// MustLoad loads the configuration from the specified file path.
// It panics if the configuration file cannot be loaded or unmarshaled.
func MustLoad(path string) *Config {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		zlog.Logger.Panic().Err(err).Msg("failed to load config")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		zlog.Logger.Panic().Err(err).Msg("failed to unmarshal config")
	}

	return &cfg
}

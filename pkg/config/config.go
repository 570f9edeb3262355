package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix 是所有環境變數的前綴，例如 THENUMBERS_SERVER_PORT
const EnvPrefix = "THENUMBERS"

// EnvConfigFile 指定配置文件的完整路徑
const EnvConfigFile = "THENUMBERS_CONFIG"

// ErrInvalidRange 表示數字範圍設定不合法
var ErrInvalidRange = errors.New("invalid number range")

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Log       LogConfig       `mapstructure:"log"`
	Numbers   NumbersConfig   `mapstructure:"numbers"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	Debug           bool          `mapstructure:"debug"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	CORSOrigins     []string      `mapstructure:"cors_origins"`
}

// Address 回傳 host:port 形式的監聽地址
func (c ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// NumbersConfig 定義兩個數字端點的取值範圍
type NumbersConfig struct {
	Even   RangeConfig `mapstructure:"even"`
	Random RangeConfig `mapstructure:"random"`
}

// RangeConfig 是閉區間 [Min, Max]
type RangeConfig struct {
	Min int `mapstructure:"min"`
	Max int `mapstructure:"max"`
}

// Validate 檢查 Min <= Max，並且區間大小 Max-Min+1 不超過 int 的範圍
func (r RangeConfig) Validate() error {
	if r.Min > r.Max {
		return fmt.Errorf("%w: min %d is greater than max %d", ErrInvalidRange, r.Min, r.Max)
	}
	// Min <= Max 時無號相減不會回繞
	if uint64(r.Max)-uint64(r.Min) >= math.MaxInt {
		return fmt.Errorf("%w: [%d, %d] is too wide", ErrInvalidRange, r.Min, r.Max)
	}
	return nil
}

// ValidateEven 除了 Validate 之外，還要求區間內至少有一個偶數
func (r RangeConfig) ValidateEven() error {
	if err := r.Validate(); err != nil {
		return err
	}
	if r.Min == r.Max && r.Min%2 != 0 {
		return fmt.Errorf("%w: [%d, %d] contains no even number", ErrInvalidRange, r.Min, r.Max)
	}
	return nil
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

type TelemetryConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	Endpoint    string `mapstructure:"endpoint"`
	Insecure    bool   `mapstructure:"insecure"`
	ServiceName string `mapstructure:"service_name"`
}

// Load 讀取配置文件和環境變數。找不到預設的配置文件時只使用預設值
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path := os.Getenv(EnvConfigFile); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./pkg/config")
		v.AddConfigPath(".")

		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate 檢查配置是否可以用來啟動服務
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server: invalid port %d", c.Server.Port)
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("server: shutdown_timeout must be positive")
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log: invalid level %q (must be debug, info, warn, or error)", c.Log.Level)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("log: invalid format %q (must be text or json)", c.Log.Format)
	}

	if err := c.Numbers.Even.ValidateEven(); err != nil {
		return fmt.Errorf("numbers.even: %w", err)
	}
	if err := c.Numbers.Random.Validate(); err != nil {
		return fmt.Errorf("numbers.random: %w", err)
	}

	if c.Metrics.Enabled {
		if !strings.HasPrefix(c.Metrics.Path, "/") {
			return fmt.Errorf("metrics: path %q must start with /", c.Metrics.Path)
		}
		if strings.ContainsAny(c.Metrics.Path, ":*") {
			return fmt.Errorf("metrics: path %q must not contain route parameters", c.Metrics.Path)
		}
	}
	if c.Telemetry.Enabled && c.Telemetry.Endpoint == "" {
		return fmt.Errorf("telemetry: endpoint is required when enabled")
	}

	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 5000)
	v.SetDefault("server.debug", false)
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 10*time.Second)
	v.SetDefault("server.shutdown_timeout", 15*time.Second)
	v.SetDefault("server.cors_origins", []string{})

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("numbers.even.min", 0)
	v.SetDefault("numbers.even.max", 100)
	v.SetDefault("numbers.random.min", 0)
	v.SetDefault("numbers.random.max", 100)

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")

	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("telemetry.endpoint", "")
	v.SetDefault("telemetry.insecure", true)
	v.SetDefault("telemetry.service_name", "thenumbers")
}

// Package configs provides configuration structures and utilities for the
// MT Store storefront. It offers mechanisms for loading, validating, and
// saving configuration from JSON and YAML files, and a viper-backed loader
// with hot reload.
//
// Package configs 提供MT Store商店前端的配置结构和工具。
// 它提供从JSON和YAML文件加载、验证和保存配置的机制，
// 以及基于viper的支持热重载的加载器。
package configs

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/Humphrey-He/mtstore/pkg/browse"
	"github.com/Humphrey-He/mtstore/pkg/i18n"
	"github.com/Humphrey-He/mtstore/pkg/pricing"
)

// Config represents the complete configuration for the storefront.
// It is organized into logical sections for different components.
//
// Config 表示商店前端的完整配置。
// 按不同组件的逻辑部分进行组织。
type Config struct {
	// Store contains the storefront identity and catalog source
	// Store 包含商店标识和目录来源
	Store StoreConfig `json:"store" yaml:"store"`

	// Pricing defines shipping and tax rules
	// Pricing 定义运费和税费规则
	Pricing PricingConfig `json:"pricing" yaml:"pricing"`

	// Browse configures the shop page filter/sort engine
	// Browse 配置商店页面的过滤排序引擎
	Browse BrowseConfig `json:"browse" yaml:"browse"`

	// Server configures the HTTP adapter
	// Server 配置HTTP适配器
	Server ServerConfig `json:"server" yaml:"server"`

	// Countdown configures the deals countdown
	// Countdown 配置优惠倒计时
	Countdown CountdownConfig `json:"countdown" yaml:"countdown"`

	// Metrics configures Prometheus metrics
	// Metrics 配置Prometheus指标
	Metrics MetricsConfig `json:"metrics" yaml:"metrics"`

	// Log configures the logging behavior
	// Log 配置日志行为
	Log LogConfig `json:"log" yaml:"log"`

	// Extensions configures optional features like hot reloading
	// Extensions 配置可选功能，如热重载
	Extensions ExtensionsConfig `json:"extensions" yaml:"extensions"`
}

// StoreConfig contains settings for the storefront itself.
//
// StoreConfig 包含商店本身的设置。
type StoreConfig struct {
	// Name is the store name used in logs and metric labels
	// Name 是用于日志和指标标签的商店名称
	Name string `json:"name" yaml:"name"`

	// DefaultLanguage is the language new sessions start with ("en", "vi")
	// DefaultLanguage 是新会话的初始语言（"en"、"vi"）
	DefaultLanguage string `json:"default_language" yaml:"default_language"`

	// CatalogFile overrides the embedded catalog when set
	// CatalogFile 设置后覆盖内置目录
	CatalogFile string `json:"catalog_file" yaml:"catalog_file"`

	// TranslationsFile overrides the embedded translation table when set
	// TranslationsFile 设置后覆盖内置翻译表
	TranslationsFile string `json:"translations_file" yaml:"translations_file"`
}

// PricingConfig contains the cart pricing rules. Amounts are decimal strings
// so they are parsed exactly.
//
// PricingConfig 包含购物车定价规则。金额使用十进制字符串以便精确解析。
type PricingConfig struct {
	// FreeShippingOver is the subtotal that must be exceeded for free shipping
	// FreeShippingOver 是免运费必须超过的小计金额
	FreeShippingOver string `json:"free_shipping_over" yaml:"free_shipping_over"`

	// FlatShipping is the shipping fee below the threshold
	// FlatShipping 是未达到阈值时的运费
	FlatShipping string `json:"flat_shipping" yaml:"flat_shipping"`

	// TaxRate is the flat tax rate, e.g. "0.10"
	// TaxRate 是统一税率，例如"0.10"
	TaxRate string `json:"tax_rate" yaml:"tax_rate"`
}

// Rules converts the section into pricing rules.
//
// Returns:
//   - pricing.Rules: The parsed rules
//   - error: An error if an amount is not a valid decimal
func (p PricingConfig) Rules() (pricing.Rules, error) {
	parse := func(field, s string) (decimal.Decimal, error) {
		d, err := decimal.NewFromString(strings.TrimSpace(s))
		if err != nil {
			return decimal.Decimal{}, fmt.Errorf("pricing.%s: %w", field, err)
		}
		if d.IsNegative() {
			return decimal.Decimal{}, fmt.Errorf("pricing.%s must be non-negative", field)
		}
		return d, nil
	}

	over, err := parse("free_shipping_over", p.FreeShippingOver)
	if err != nil {
		return pricing.Rules{}, err
	}
	flat, err := parse("flat_shipping", p.FlatShipping)
	if err != nil {
		return pricing.Rules{}, err
	}
	rate, err := parse("tax_rate", p.TaxRate)
	if err != nil {
		return pricing.Rules{}, err
	}
	if rate.GreaterThan(decimal.NewFromInt(1)) {
		return pricing.Rules{}, fmt.Errorf("pricing.tax_rate must be between 0 and 1")
	}
	return pricing.Rules{FreeShippingOver: over, FlatShipping: flat, TaxRate: rate}, nil
}

// BrowseConfig contains settings for the filter/sort engine.
//
// BrowseConfig 包含过滤排序引擎的设置。
type BrowseConfig struct {
	// CacheSize is the number of memoised query results
	// CacheSize 是缓存的查询结果数量
	CacheSize int `json:"cache_size" yaml:"cache_size"`

	// DefaultSort is the sort key the shop page starts with
	// DefaultSort 是商店页面的初始排序键
	DefaultSort string `json:"default_sort" yaml:"default_sort"`
}

// ServerConfig contains settings for the HTTP adapter.
//
// ServerConfig 包含HTTP适配器的设置。
type ServerConfig struct {
	// Port is the HTTP listen port
	// Port 是HTTP监听端口
	Port int `json:"port" yaml:"port"`

	// Mode is the gin mode ("debug", "release", "test")
	// Mode 是gin运行模式（"debug"、"release"、"test"）
	Mode string `json:"mode" yaml:"mode"`

	// ReadTimeout limits reading a request
	// ReadTimeout 限制读取请求的时间
	ReadTimeout time.Duration `json:"read_timeout" yaml:"read_timeout"`

	// WriteTimeout limits writing a response
	// WriteTimeout 限制写入响应的时间
	WriteTimeout time.Duration `json:"write_timeout" yaml:"write_timeout"`

	// ShutdownTimeout bounds graceful shutdown
	// ShutdownTimeout 限制优雅关闭的时间
	ShutdownTimeout time.Duration `json:"shutdown_timeout" yaml:"shutdown_timeout"`
}

// CountdownConfig contains settings for the deals countdown.
//
// CountdownConfig 包含优惠倒计时的设置。
type CountdownConfig struct {
	// Start is the value the countdown starts from and wraps back to
	// Start 是倒计时的起始值和回绕值
	Start time.Duration `json:"start" yaml:"start"`

	// Interval is the tick interval
	// Interval 是滴答间隔
	Interval time.Duration `json:"interval" yaml:"interval"`
}

// MetricsConfig contains settings for metrics collection.
//
// MetricsConfig 包含指标收集的设置。
type MetricsConfig struct {
	// Enable determines whether metrics collection is active
	// Enable 确定是否启用指标收集
	Enable bool `json:"enable" yaml:"enable"`

	// Level controls the detail of metrics collection ("basic", "detailed", "disabled")
	// Level 控制指标收集的详细程度（"basic"、"detailed"、"disabled"）
	Level string `json:"level" yaml:"level"`

	// Path is the HTTP path serving Prometheus metrics
	// Path 是提供Prometheus指标的HTTP路径
	Path string `json:"path" yaml:"path"`

	// RuntimeCollectors adds Go runtime and process metrics
	// RuntimeCollectors 添加Go运行时和进程指标
	RuntimeCollectors bool `json:"runtime_collectors" yaml:"runtime_collectors"`
}

// LogConfig contains settings for logging.
// These settings control the logging behavior, including
// log level, format, and output destination.
//
// LogConfig 包含日志记录的设置。
// 这些设置控制日志行为，包括日志级别、格式和输出目的地。
type LogConfig struct {
	// Level sets the minimum log level ("debug", "info", "warn", "error")
	// Level 设置最低日志级别（"debug"、"info"、"warn"、"error"）
	Level string `json:"level" yaml:"level"`

	// Format specifies the log format ("text", "json")
	// Format 指定日志格式（"text"、"json"）
	Format string `json:"format" yaml:"format"`

	// Output determines where logs are written ("stdout", "stderr", "file")
	// Output 确定日志写入的位置（"stdout"、"stderr"、"file"）
	Output string `json:"output" yaml:"output"`

	// FilePath is the path to the log file when Output is "file"
	// FilePath 是当Output为"file"时的日志文件路径
	FilePath string `json:"file_path" yaml:"file_path"`

	// MaxSizeMB is the maximum log file size before rotation
	// MaxSizeMB 是轮换前的最大日志文件大小（MB）
	MaxSizeMB int `json:"max_size_mb" yaml:"max_size_mb"`

	// MaxBackups is the number of rotated log files to keep
	// MaxBackups 是要保留的轮换日志文件数量
	MaxBackups int `json:"max_backups" yaml:"max_backups"`

	// MaxAgeDays is the maximum age of log files in days
	// MaxAgeDays 是日志文件的最大保留天数
	MaxAgeDays int `json:"max_age_days" yaml:"max_age_days"`
}

// ExtensionsConfig contains settings for extensions.
//
// ExtensionsConfig 包含扩展的设置。
type ExtensionsConfig struct {
	// HotReload contains settings for dynamic configuration reloading
	// HotReload 包含动态配置重新加载的设置
	HotReload HotReloadConfig `json:"hot_reload" yaml:"hot_reload"`
}

// HotReloadConfig contains settings for hot reloading.
// These settings control how configuration changes are
// detected and applied without restart.
//
// HotReloadConfig 包含热重载的设置。
// 这些设置控制如何检测和应用配置更改而无需重启。
type HotReloadConfig struct {
	// Enable determines whether hot reloading is active
	// Enable 确定是否启用热重载
	Enable bool `json:"enable" yaml:"enable"`

	// WatchInterval is the minimum time between two applied reloads
	// WatchInterval 是两次应用重载之间的最短时间
	WatchInterval time.Duration `json:"watch_interval" yaml:"watch_interval"`
}

// DefaultConfig returns a new Config with default values.
// The pricing defaults are free shipping over 100, a flat 15 otherwise,
// and a 10% tax.
//
// DefaultConfig 返回具有默认值的新Config。
// 定价默认值为：超过100免运费，否则统一15，税率10%。
//
// Returns:
//   - *Config: A new configuration instance with default values
//
// 返回：
//   - *Config: 具有默认值的新配置实例
func DefaultConfig() *Config {
	return &Config{
		Store: StoreConfig{
			Name:            "mtstore",
			DefaultLanguage: "en",
		},
		Pricing: PricingConfig{
			FreeShippingOver: "100",
			FlatShipping:     "15",
			TaxRate:          "0.10",
		},
		Browse: BrowseConfig{
			CacheSize:   128,
			DefaultSort: "newest",
		},
		Server: ServerConfig{
			Port:            8080,
			Mode:            "release",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    10 * time.Second,
			ShutdownTimeout: 5 * time.Second,
		},
		Countdown: CountdownConfig{
			Start:    12*time.Hour + 34*time.Minute + 56*time.Second,
			Interval: time.Second,
		},
		Metrics: MetricsConfig{
			Enable: true,
			Level:  "basic",
			Path:   "/metrics",
		},
		Log: LogConfig{
			Level:      "info",
			Format:     "json",
			Output:     "stdout",
			FilePath:   "/var/log/mtstore.log",
			MaxSizeMB:  100,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
		Extensions: ExtensionsConfig{
			HotReload: HotReloadConfig{
				Enable:        false,
				WatchInterval: 30 * time.Second,
			},
		},
	}
}

// LoadFromFile loads configuration from a file.
// It supports both YAML and JSON formats, automatically
// detecting the format based on the file extension.
//
// LoadFromFile 从文件加载配置。
// 它支持YAML和JSON格式，根据文件扩展名自动检测格式。
//
// Parameters:
//   - filename: Path to the configuration file
//
// Returns:
//   - *Config: The loaded configuration
//   - error: An error if loading fails
func LoadFromFile(filename string) (*Config, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open configuration file: %w", err)
	}
	defer file.Close()

	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	switch ext {
	case "yaml", "yml", "json":
	default:
		return nil, fmt.Errorf("unsupported configuration file format: .%s", ext)
	}
	return LoadFromReader(file, ext)
}

// LoadFromReader loads configuration from an io.Reader.
// Missing fields keep their default values.
//
// LoadFromReader 从io.Reader加载配置。
// 缺失的字段保留默认值。
//
// Parameters:
//   - r: The reader providing the configuration data
//   - format: The format of the data ("json", "yaml", or "yml")
//
// Returns:
//   - *Config: The loaded configuration
//   - error: An error if loading fails
func LoadFromReader(r io.Reader, format string) (*Config, error) {
	config := DefaultConfig()
	var err error

	switch strings.ToLower(format) {
	case "yaml", "yml":
		err = yaml.NewDecoder(r).Decode(config)
	case "json":
		err = json.NewDecoder(r).Decode(config)
	default:
		return nil, fmt.Errorf("unsupported configuration format: %s", format)
	}

	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a file.
// It supports both YAML and JSON formats, automatically
// selecting the format based on the file extension.
//
// SaveToFile 将配置保存到文件。
// 它支持YAML和JSON格式，根据文件扩展名自动选择格式。
//
// Parameters:
//   - filename: Path where the configuration will be saved
//
// Returns:
//   - error: An error if saving fails
func (c *Config) SaveToFile(filename string) error {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".yaml", ".yml", ".json":
	default:
		return fmt.Errorf("unsupported configuration file format: %s", ext)
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create configuration file: %w", err)
	}
	defer file.Close()

	if ext == ".json" {
		encoder := json.NewEncoder(file)
		encoder.SetIndent("", "  ")
		err = encoder.Encode(c)
	} else {
		encoder := yaml.NewEncoder(file)
		defer encoder.Close()
		err = encoder.Encode(c)
	}

	if err != nil {
		return fmt.Errorf("failed to encode configuration: %w", err)
	}

	return nil
}

// Validate validates the configuration.
// It checks that all settings have valid values.
//
// Validate 验证配置。
// 它检查所有设置是否具有有效值。
//
// Returns:
//   - error: An error describing the validation failure, or nil if valid
func (c *Config) Validate() error {
	// Validate store settings
	// 验证商店设置
	if strings.TrimSpace(c.Store.Name) == "" {
		return fmt.Errorf("store.name must not be empty")
	}
	if _, err := i18n.ParseLanguage(c.Store.DefaultLanguage); err != nil {
		return fmt.Errorf("store.default_language must be one of: en, vi")
	}

	// Validate pricing settings
	// 验证定价设置
	if _, err := c.Pricing.Rules(); err != nil {
		return err
	}

	// Validate browse settings
	// 验证浏览设置
	if c.Browse.CacheSize <= 0 {
		return fmt.Errorf("browse.cache_size must be positive")
	}
	if _, err := browse.ParseSortKey(c.Browse.DefaultSort); err != nil {
		return fmt.Errorf("browse.default_sort must be one of: newest, priceLowToHigh, priceHighToLow, topRated")
	}

	// Validate server settings
	// 验证服务器设置
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535")
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
		// Valid modes
		// 有效模式
	default:
		return fmt.Errorf("server.mode must be one of: debug, release, test")
	}
	if c.Server.ReadTimeout < 0 || c.Server.WriteTimeout < 0 || c.Server.ShutdownTimeout < 0 {
		return fmt.Errorf("server timeouts must be non-negative")
	}

	// Validate countdown settings
	// 验证倒计时设置
	if c.Countdown.Start < time.Second {
		return fmt.Errorf("countdown.start must be at least 1 second")
	}
	if c.Countdown.Interval <= 0 {
		return fmt.Errorf("countdown.interval must be positive")
	}

	// Validate metrics settings
	// 验证指标设置
	if c.Metrics.Enable {
		switch c.Metrics.Level {
		case "basic", "detailed", "disabled":
			// Valid levels
			// 有效级别
		default:
			return fmt.Errorf("metrics.level must be one of: basic, detailed, disabled")
		}
		if !strings.HasPrefix(c.Metrics.Path, "/") {
			return fmt.Errorf("metrics.path must start with '/'")
		}
	}

	// Validate log settings
	// 验证日志设置
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
		// Valid levels
		// 有效级别
	default:
		return fmt.Errorf("log.level must be one of: debug, info, warn, error")
	}
	switch c.Log.Format {
	case "text", "json":
		// Valid formats
		// 有效格式
	default:
		return fmt.Errorf("log.format must be one of: text, json")
	}
	switch c.Log.Output {
	case "stdout", "stderr", "file":
		// Valid outputs
		// 有效输出
	default:
		return fmt.Errorf("log.output must be one of: stdout, stderr, file")
	}
	if c.Log.Output == "file" && c.Log.FilePath == "" {
		return fmt.Errorf("log.file_path must be specified when log.output is 'file'")
	}
	if c.Log.MaxSizeMB <= 0 {
		return fmt.Errorf("log.max_size_mb must be positive")
	}
	if c.Log.MaxBackups < 0 {
		return fmt.Errorf("log.max_backups must be non-negative")
	}
	if c.Log.MaxAgeDays < 0 {
		return fmt.Errorf("log.max_age_days must be non-negative")
	}

	// Validate extensions settings
	// 验证扩展设置
	if c.Extensions.HotReload.Enable && c.Extensions.HotReload.WatchInterval < time.Second {
		return fmt.Errorf("extensions.hot_reload.watch_interval must be at least 1 second")
	}

	return nil
}

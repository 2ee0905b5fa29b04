// Package configs provides configuration structures and utilities for the storefront.
// This file implements Viper-based configuration management with hot reloading support.
//
// Package configs 提供商店前端的配置结构和工具。
// 本文件实现基于Viper的配置管理，支持热重载。
package configs

import (
	"fmt"
	"path/filepath"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// EnvPrefix prefixes environment variables that override file values,
// e.g. MTSTORE_SERVER_PORT overrides server.port.
const EnvPrefix = "MTSTORE"

// ViperConfig wraps a Config with Viper functionality for hot reloading.
// It provides thread-safe access to configuration and supports dynamic
// updates when the underlying configuration file changes.
//
// ViperConfig 使用Viper功能包装Config以支持热重载。
// 它提供对配置的线程安全访问，并支持在底层配置文件更改时进行动态更新。
type ViperConfig struct {
	config      *Config         // Current configuration / 当前配置
	viper       *viper.Viper    // Viper instance for configuration management / 用于配置管理的Viper实例
	configFile  string          // Path to the configuration file / 配置文件路径
	logger      *zap.Logger     // Logger for reload events / 重载事件日志
	mu          sync.RWMutex    // Mutex for thread-safe access / 用于线程安全访问的互斥锁
	subscribers []func(*Config) // List of subscribers to notify on config changes / 配置更改时要通知的订阅者列表
	closeChan   chan struct{}   // Stops the polling watcher / 停止轮询监视器
	closeOnce   sync.Once       // Ensures close happens once / 确保只关闭一次
}

// ViperOption configures a ViperConfig.
type ViperOption func(*ViperConfig)

// WithLogger sets the logger used for reload events.
//
// WithLogger 设置重载事件使用的日志记录器。
func WithLogger(logger *zap.Logger) ViperOption {
	return func(vc *ViperConfig) {
		if logger != nil {
			vc.logger = logger
		}
	}
}

// NewViperConfig creates a new ViperConfig.
// It loads configuration from the specified file, applies environment
// overrides, and validates it.
//
// NewViperConfig 创建一个新的ViperConfig。
// 它从指定的文件加载配置，应用环境变量覆盖并验证。
//
// Parameters:
//   - configFile: Path to the configuration file
//   - opts: Optional settings
//
// Returns:
//   - *ViperConfig: A new ViperConfig instance
//   - error: An error if loading or validation fails
func NewViperConfig(configFile string, opts ...ViperOption) (*ViperConfig, error) {
	v := viper.New()

	// Set up viper
	// 设置viper
	v.SetConfigFile(configFile)
	v.SetConfigType(strings.TrimPrefix(filepath.Ext(configFile), "."))
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read the config file
	// 读取配置文件
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	vc := &ViperConfig{
		viper:       v,
		configFile:  configFile,
		logger:      zap.NewNop(),
		subscribers: make([]func(*Config), 0),
		closeChan:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(vc)
	}

	config, err := vc.decode()
	if err != nil {
		return nil, err
	}
	vc.config = config
	return vc, nil
}

// decode unmarshals the current viper state over the defaults and validates it.
func (vc *ViperConfig) decode() (*Config, error) {
	config := DefaultConfig()

	// Unmarshal the config file into the config struct using the yaml tags
	// 使用yaml标签将配置文件解析到配置结构中
	if err := vc.viper.Unmarshal(config, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "yaml"
	}); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate config
	// 验证配置
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return config, nil
}

// apply stores a new configuration and notifies subscribers.
func (vc *ViperConfig) apply(newConfig *Config) {
	vc.mu.Lock()
	vc.config = newConfig
	subscribers := make([]func(*Config), len(vc.subscribers))
	copy(subscribers, vc.subscribers)
	vc.mu.Unlock()

	// Notify subscribers
	// 通知订阅者
	for _, subscriber := range subscribers {
		subscriber(newConfig)
	}
}

// EnableHotReload enables hot reloading of the configuration file.
// When the configuration file changes, the configuration is automatically
// reloaded and all subscribers are notified. Invalid changes are logged
// and ignored.
//
// EnableHotReload 启用配置文件的热重载。
// 当配置文件更改时，配置会自动重新加载，并通知所有订阅者。
// 无效的更改会被记录并忽略。
func (vc *ViperConfig) EnableHotReload() {
	vc.viper.OnConfigChange(func(e fsnotify.Event) {
		vc.logger.Info("config file changed", zap.String("file", e.Name), zap.String("op", e.Op.String()))

		newConfig, err := vc.decode()
		if err != nil {
			vc.logger.Warn("config reload rejected", zap.Error(err))
			return
		}
		vc.apply(newConfig)
	})
	vc.viper.WatchConfig()
}

// Subscribe adds a subscriber that will be notified when the configuration changes.
// The subscriber function is called with the new configuration as its argument.
//
// Subscribe 添加一个在配置更改时将被通知的订阅者。
// 订阅者函数将以新配置作为其参数被调用。
//
// Parameters:
//   - subscriber: A function to call when the configuration changes
func (vc *ViperConfig) Subscribe(subscriber func(*Config)) {
	vc.mu.Lock()
	defer vc.mu.Unlock()
	vc.subscribers = append(vc.subscribers, subscriber)
}

// Get returns the current configuration.
// This method is thread-safe and can be called concurrently.
//
// Get 返回当前配置。
// 此方法是线程安全的，可以并发调用。
func (vc *ViperConfig) Get() *Config {
	vc.mu.RLock()
	defer vc.mu.RUnlock()
	return vc.config
}

// Reload re-reads the configuration file and applies it when it differs
// from the current configuration. It reports whether anything changed.
//
// Reload 重新读取配置文件，与当前配置不同时应用。返回是否有变化。
func (vc *ViperConfig) Reload() (bool, error) {
	if err := vc.viper.ReadInConfig(); err != nil {
		return false, fmt.Errorf("failed to read config file: %w", err)
	}
	newConfig, err := vc.decode()
	if err != nil {
		return false, err
	}

	vc.mu.RLock()
	changed := !configsEqual(vc.config, newConfig)
	vc.mu.RUnlock()

	if changed {
		vc.logger.Info("config file changed", zap.String("file", vc.configFile))
		vc.apply(newConfig)
	}
	return changed, nil
}

// Close stops the polling watcher started by LoadViperConfigWithWatcher.
//
// Close 停止LoadViperConfigWithWatcher启动的轮询监视器。
func (vc *ViperConfig) Close() {
	vc.closeOnce.Do(func() {
		close(vc.closeChan)
	})
}

// LoadViperConfig loads a configuration from a file using Viper.
// It optionally enables hot reloading based on the enableHotReload parameter.
//
// LoadViperConfig 使用Viper从文件加载配置。
// 它根据enableHotReload参数可选地启用热重载。
//
// Parameters:
//   - configFile: Path to the configuration file
//   - enableHotReload: Whether to enable hot reloading
//   - opts: Optional settings
//
// Returns:
//   - *ViperConfig: A new ViperConfig instance
//   - error: An error if loading fails
func LoadViperConfig(configFile string, enableHotReload bool, opts ...ViperOption) (*ViperConfig, error) {
	vc, err := NewViperConfig(configFile, opts...)
	if err != nil {
		return nil, err
	}

	if enableHotReload {
		vc.EnableHotReload()
	}

	return vc, nil
}

// LoadViperConfigWithWatcher loads a configuration from a file using Viper and sets up a watcher
// that periodically checks for changes in the configuration file.
// This is an alternative to fsnotify-based hot reloading for environments
// where file system notifications are unreliable. Call Close to stop it.
//
// LoadViperConfigWithWatcher 使用Viper从文件加载配置，并设置一个定期检查
// 配置文件变化的监视器。这是基于fsnotify的热重载的替代方案。调用Close停止。
//
// Parameters:
//   - configFile: Path to the configuration file
//   - watchInterval: How often to check for changes
//   - opts: Optional settings
//
// Returns:
//   - *ViperConfig: A new ViperConfig instance
//   - error: An error if loading fails
func LoadViperConfigWithWatcher(configFile string, watchInterval time.Duration, opts ...ViperOption) (*ViperConfig, error) {
	vc, err := NewViperConfig(configFile, opts...)
	if err != nil {
		return nil, err
	}

	// Start a goroutine to watch for changes
	// 启动一个goroutine来监视更改
	go func() {
		ticker := time.NewTicker(watchInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if _, err := vc.Reload(); err != nil {
					vc.logger.Warn("config reload rejected", zap.Error(err))
				}
			case <-vc.closeChan:
				return
			}
		}
	}()

	return vc, nil
}

// configsEqual checks if two configs are equal.
//
// configsEqual 检查两个配置是否相等。
func configsEqual(c1, c2 *Config) bool {
	return reflect.DeepEqual(c1, c2)
}

// Package configs provides configuration structures and utilities for the storefront.
// This file contains tests for the configuration functionality.
//
// Package configs 提供商店前端的配置结构和工具。
// 本文件包含配置功能的测试。
package configs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

// TestDefaultConfig verifies that DefaultConfig returns a properly initialized Config
// with the expected default values for important settings.
//
// TestDefaultConfig 验证DefaultConfig返回一个正确初始化的Config，
// 包含重要设置的预期默认值。
func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()
	if config == nil {
		t.Fatal("DefaultConfig() returned nil")
	}

	// Test default values
	// 测试默认值
	if config.Store.DefaultLanguage != "en" {
		t.Errorf("Expected Store.DefaultLanguage to be 'en', got '%s'", config.Store.DefaultLanguage)
	}
	if config.Browse.CacheSize != 128 {
		t.Errorf("Expected Browse.CacheSize to be 128, got %d", config.Browse.CacheSize)
	}
	if config.Countdown.Start != 12*time.Hour+34*time.Minute+56*time.Second {
		t.Errorf("Expected Countdown.Start to be 12h34m56s, got %s", config.Countdown.Start)
	}
	if err := config.Validate(); err != nil {
		t.Errorf("Default config should be valid, got: %v", err)
	}

	rules, err := config.Pricing.Rules()
	if err != nil {
		t.Fatalf("Failed to parse default pricing rules: %v", err)
	}
	if !rules.FreeShippingOver.Equal(decimal.NewFromInt(100)) {
		t.Errorf("Expected free shipping over 100, got %s", rules.FreeShippingOver)
	}
	if !rules.FlatShipping.Equal(decimal.NewFromInt(15)) {
		t.Errorf("Expected flat shipping 15, got %s", rules.FlatShipping)
	}
	if !rules.TaxRate.Equal(decimal.RequireFromString("0.1")) {
		t.Errorf("Expected tax rate 0.1, got %s", rules.TaxRate)
	}
}

// TestLoadAndSaveConfig tests the ability to save and load configuration
// to and from files in both YAML and JSON formats.
//
// TestLoadAndSaveConfig 测试将配置保存到文件和从文件加载配置的能力，
// 包括YAML和JSON两种格式。
func TestLoadAndSaveConfig(t *testing.T) {
	tempDir := t.TempDir()

	// Test YAML
	// 测试YAML
	yamlPath := filepath.Join(tempDir, "config.yaml")
	config := DefaultConfig()
	config.Store.DefaultLanguage = "vi"
	config.Pricing.TaxRate = "0.08"
	config.Countdown.Start = time.Hour

	if err := config.SaveToFile(yamlPath); err != nil {
		t.Fatalf("Failed to save YAML config: %v", err)
	}
	loadedConfig, err := LoadFromFile(yamlPath)
	if err != nil {
		t.Fatalf("Failed to load YAML config: %v", err)
	}

	if loadedConfig.Store.DefaultLanguage != "vi" {
		t.Errorf("Expected Store.DefaultLanguage to be 'vi', got '%s'", loadedConfig.Store.DefaultLanguage)
	}
	if loadedConfig.Pricing.TaxRate != "0.08" {
		t.Errorf("Expected Pricing.TaxRate to be '0.08', got '%s'", loadedConfig.Pricing.TaxRate)
	}
	if loadedConfig.Countdown.Start != time.Hour {
		t.Errorf("Expected Countdown.Start to be 1h, got %s", loadedConfig.Countdown.Start)
	}

	// Test JSON
	// 测试JSON
	jsonPath := filepath.Join(tempDir, "config.json")
	config.Server.Port = 9090
	config.Browse.DefaultSort = "topRated"

	if err := config.SaveToFile(jsonPath); err != nil {
		t.Fatalf("Failed to save JSON config: %v", err)
	}
	loadedConfig, err = LoadFromFile(jsonPath)
	if err != nil {
		t.Fatalf("Failed to load JSON config: %v", err)
	}

	if loadedConfig.Server.Port != 9090 {
		t.Errorf("Expected Server.Port to be 9090, got %d", loadedConfig.Server.Port)
	}
	if loadedConfig.Browse.DefaultSort != "topRated" {
		t.Errorf("Expected Browse.DefaultSort to be 'topRated', got '%s'", loadedConfig.Browse.DefaultSort)
	}

	// Unsupported extensions are rejected
	// 不支持的扩展名会被拒绝
	if err := config.SaveToFile(filepath.Join(tempDir, "config.toml")); err == nil {
		t.Error("Expected error saving .toml config")
	}
	if _, err := os.Stat(filepath.Join(tempDir, "config.toml")); !os.IsNotExist(err) {
		t.Error("Rejected save should not create a file")
	}
}

// TestLoadFromReaderKeepsDefaults verifies that sections absent from the
// document keep their defaults and that an empty document is accepted.
//
// TestLoadFromReaderKeepsDefaults 验证文档中缺失的部分保留默认值，且空文档可被接受。
func TestLoadFromReaderKeepsDefaults(t *testing.T) {
	config, err := LoadFromReader(strings.NewReader("pricing:\n  flat_shipping: \"9.99\"\n"), "yaml")
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if config.Pricing.FlatShipping != "9.99" {
		t.Errorf("Expected flat shipping '9.99', got '%s'", config.Pricing.FlatShipping)
	}
	if config.Pricing.FreeShippingOver != "100" {
		t.Errorf("Expected free shipping default '100', got '%s'", config.Pricing.FreeShippingOver)
	}

	if _, err := LoadFromReader(strings.NewReader(""), "yaml"); err != nil {
		t.Errorf("Empty document should load defaults, got: %v", err)
	}
	if _, err := LoadFromReader(strings.NewReader("{}"), "toml"); err == nil {
		t.Error("Expected error for unsupported format")
	}
}

// TestSavedConfigHasOnlyKnownSections verifies that a saved file holds only
// the sections the storefront reads, and that an unknown section in an
// older file is ignored on load.
//
// TestSavedConfigHasOnlyKnownSections 验证保存的文件只包含商店读取的部分，
// 且旧文件中的未知部分在加载时被忽略。
func TestSavedConfigHasOnlyKnownSections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := DefaultConfig().SaveToFile(path); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read saved config: %v", err)
	}
	if strings.Contains(string(data), "extra:") {
		t.Errorf("Saved config should not contain an extra section:\n%s", data)
	}

	config, err := LoadFromReader(strings.NewReader("extra:\n  theme: dark\nstore:\n  name: Legacy\n"), "yaml")
	if err != nil {
		t.Fatalf("Failed to load config with unknown section: %v", err)
	}
	if config.Store.Name != "Legacy" {
		t.Errorf("Expected store name 'Legacy', got '%s'", config.Store.Name)
	}
}

// TestValidate tests the Validate method to ensure it correctly identifies
// valid and invalid configurations according to the defined constraints.
//
// TestValidate 测试Validate方法，确保它能根据定义的约束
// 正确识别有效和无效的配置。
func TestValidate(t *testing.T) {
	tests := []struct {
		name        string        // Test case name / 测试用例名称
		modifyFunc  func(*Config) // Function to modify config / 修改配置的函数
		expectError bool          // Whether validation should fail / 验证是否应该失败
	}{
		{
			name:        "Valid default config",
			modifyFunc:  func(c *Config) {},
			expectError: false,
		},
		{
			name: "Invalid store.default_language",
			modifyFunc: func(c *Config) {
				c.Store.DefaultLanguage = "fr"
			},
			expectError: true,
		},
		{
			name: "Invalid pricing.tax_rate not a decimal",
			modifyFunc: func(c *Config) {
				c.Pricing.TaxRate = "ten percent"
			},
			expectError: true,
		},
		{
			name: "Invalid pricing.tax_rate above 1",
			modifyFunc: func(c *Config) {
				c.Pricing.TaxRate = "1.5"
			},
			expectError: true,
		},
		{
			name: "Invalid pricing.flat_shipping negative",
			modifyFunc: func(c *Config) {
				c.Pricing.FlatShipping = "-1"
			},
			expectError: true,
		},
		{
			name: "Invalid browse.default_sort",
			modifyFunc: func(c *Config) {
				c.Browse.DefaultSort = "cheapest"
			},
			expectError: true,
		},
		{
			name: "Invalid server.port",
			modifyFunc: func(c *Config) {
				c.Server.Port = 70000
			},
			expectError: true,
		},
		{
			name: "Invalid server.mode",
			modifyFunc: func(c *Config) {
				c.Server.Mode = "production"
			},
			expectError: true,
		},
		{
			name: "Invalid countdown.start",
			modifyFunc: func(c *Config) {
				c.Countdown.Start = 0
			},
			expectError: true,
		},
		{
			name: "Invalid metrics.path",
			modifyFunc: func(c *Config) {
				c.Metrics.Path = "metrics"
			},
			expectError: true,
		},
		{
			name: "Metrics path ignored when disabled",
			modifyFunc: func(c *Config) {
				c.Metrics.Enable = false
				c.Metrics.Path = ""
			},
			expectError: false,
		},
		{
			name: "Invalid log.level",
			modifyFunc: func(c *Config) {
				c.Log.Level = "invalid"
			},
			expectError: true,
		},
		{
			name: "File output without path",
			modifyFunc: func(c *Config) {
				c.Log.Output = "file"
				c.Log.FilePath = ""
			},
			expectError: true,
		},
		{
			name: "Hot reload interval too short",
			modifyFunc: func(c *Config) {
				c.Extensions.HotReload.Enable = true
				c.Extensions.HotReload.WatchInterval = time.Millisecond
			},
			expectError: true,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			config := DefaultConfig()
			test.modifyFunc(config)
			err := config.Validate()
			if test.expectError && err == nil {
				t.Error("Expected validation error, but got nil")
			}
			if !test.expectError && err != nil {
				t.Errorf("Expected no validation error, but got: %v", err)
			}
		})
	}
}

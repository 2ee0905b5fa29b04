package core

import (
	"fmt"
	"os"
	"sync"

	"go.uber.org/zap"

	"github.com/Humphrey-He/mtstore/configs"
	"github.com/Humphrey-He/mtstore/internal/countdown"
	"github.com/Humphrey-He/mtstore/internal/metrics"
	"github.com/Humphrey-He/mtstore/pkg/browse"
	"github.com/Humphrey-He/mtstore/pkg/catalog"
	"github.com/Humphrey-He/mtstore/pkg/i18n"
	"github.com/Humphrey-He/mtstore/pkg/pricing"
	"github.com/Humphrey-He/mtstore/pkg/storefront"
)

// Factory creates storefront sessions that share one catalog, translation
// table, logger and metrics collector. The settings that may change at
// runtime (pricing rules, default language, default sort) are swapped by
// Apply and picked up by sessions created afterwards.
type Factory struct {
	catalog    *catalog.Store
	translator *i18n.Translator
	logger     *zap.Logger
	metrics    *metrics.Metrics
	countdown  *countdown.Countdown
	cacheSize  int

	mu          sync.RWMutex
	rules       pricing.Rules
	language    i18n.Language
	defaultSort browse.SortKey
}

// NewFactory creates a Factory from a configuration. The catalog and the
// translation table are read from the configured files, or from the
// embedded defaults when no file is set.
//
// Parameters:
//   - cfg: The storefront configuration
//   - options: Optional settings
//
// Returns:
//   - *Factory: A new factory
//   - error: An error if the configuration or a data file is invalid
func NewFactory(cfg *configs.Config, options ...Option) (*Factory, error) {
	if cfg == nil {
		cfg = configs.DefaultConfig()
	}
	f := &Factory{
		logger:    zap.NewNop(),
		cacheSize: cfg.Browse.CacheSize,
	}
	for _, option := range options {
		option(f)
	}

	if err := f.Apply(cfg); err != nil {
		return nil, err
	}

	if f.catalog == nil {
		store, err := loadCatalog(cfg.Store.CatalogFile)
		if err != nil {
			return nil, err
		}
		f.catalog = store
	}
	if f.translator == nil {
		t, err := loadTranslator(cfg.Store.TranslationsFile)
		if err != nil {
			return nil, err
		}
		f.translator = t
	}
	return f, nil
}

func loadCatalog(path string) (*catalog.Store, error) {
	if path == "" {
		return catalog.Default(), nil
	}
	return catalog.LoadFile(path)
}

func loadTranslator(path string) (*i18n.Translator, error) {
	if path == "" {
		return i18n.Default(), nil
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open translations: %w", err)
	}
	defer file.Close()
	return i18n.Load(file)
}

// Apply swaps the runtime settings of cfg in. Sessions already created keep
// theirs until the caller updates them.
//
// Parameters:
//   - cfg: The new configuration
//
// Returns:
//   - error: An error if a setting cannot be parsed
func (f *Factory) Apply(cfg *configs.Config) error {
	rules, err := cfg.Pricing.Rules()
	if err != nil {
		return err
	}
	lang, err := i18n.ParseLanguage(cfg.Store.DefaultLanguage)
	if err != nil {
		return err
	}
	sort, err := browse.ParseSortKey(cfg.Browse.DefaultSort)
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.rules = rules
	f.language = lang
	f.defaultSort = sort
	return nil
}

// Rules returns the current pricing rules.
func (f *Factory) Rules() pricing.Rules {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.rules
}

// Language returns the current default language.
func (f *Factory) Language() i18n.Language {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.language
}

// Catalog returns the shared catalog.
func (f *Factory) Catalog() *catalog.Store {
	return f.catalog
}

// Create creates a new session. The options are applied after the factory
// defaults, so they may override them.
//
// Parameters:
//   - options: Session options
//
// Returns:
//   - *storefront.Session: A new session
//   - error: An error if creation fails
func (f *Factory) Create(options ...storefront.Option) (*storefront.Session, error) {
	f.mu.RLock()
	defaults := []storefront.Option{
		storefront.WithLanguage(f.language),
		storefront.WithRules(f.rules),
		storefront.WithDefaultSort(f.defaultSort),
		storefront.WithCacheSize(f.cacheSize),
		storefront.WithTranslator(f.translator),
		storefront.WithLogger(f.logger),
		storefront.WithMetrics(f.metrics),
		storefront.WithCountdown(f.countdown),
	}
	f.mu.RUnlock()

	return storefront.New(f.catalog, append(defaults, options...)...)
}

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/thenarrator2/Zepto-Blinkit-Sales/internal/summary"
)

// AppConfig is the whole application configuration, loaded from
// config.toml next to the executable. Platform and analytics settings
// can change at runtime over the API while uploads are processing, so
// reads and writes go through the accessor methods, which share a lock.
type AppConfig struct {
	Server    ServerConfig              `toml:"server"`
	Data      DataConfig                `toml:"data"`
	Platforms map[string]PlatformConfig `toml:"platforms"`
	Analytics AnalyticsConfig           `toml:"analytics"`

	mu sync.RWMutex
}

// ServerConfig holds the HTTP server settings.
type ServerConfig struct {
	Port    int  `toml:"port"`
	DevMode bool `toml:"dev_mode"`
}

// DataConfig names the on-disk data directory.
type DataConfig struct {
	DataDir string `toml:"data_dir"`
}

// PlatformConfig describes one platform's export format: which sheet
// the data lives on, which source columns map to the canonical fields,
// and the unit price used for revenue estimates. Adding a platform is a
// config edit, not a code change.
type PlatformConfig struct {
	Sheet      string  `toml:"sheet"`
	SKUColumn  string  `toml:"sku_column"`
	CityColumn string  `toml:"city_column"`
	DateColumn string  `toml:"date_column"`
	QtyColumn  string  `toml:"qty_column"`
	UnitPrice  float64 `toml:"unit_price"`
}

// AnalyticsConfig holds alerting and ranking thresholds.
type AnalyticsConfig struct {
	LowStockThreshold     float64 `toml:"low_stock_threshold"`
	HighPriorityThreshold float64 `toml:"high_priority_threshold"`
	TopPerformersCount    int     `toml:"top_performers_count"`
}

// LoadConfigInfo carries metadata about how the config was loaded.
type LoadConfigInfo struct {
	PortSpecified bool
}

// DefaultConfig matches the reference deployment: Zepto and Blinkit
// exports with their known sheet and column names.
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:    20341,
			DevMode: false,
		},
		Data: DataConfig{
			DataDir: "data",
		},
		Platforms: map[string]PlatformConfig{
			"zepto": {
				Sheet:      "Zepto Sales",
				SKUColumn:  "SKU Name",
				CityColumn: "City",
				DateColumn: "Sales Date",
				QtyColumn:  "Quantity",
				UnitPrice:  120,
			},
			"blinkit": {
				Sheet:      "Blinkit Sales",
				SKUColumn:  "item_name",
				CityColumn: "city_name",
				DateColumn: "date",
				QtyColumn:  "qty",
				UnitPrice:  110,
			},
		},
		Analytics: AnalyticsConfig{
			LowStockThreshold:     50,
			HighPriorityThreshold: 25,
			TopPerformersCount:    10,
		},
	}
}

// Columns converts one platform entry into the immutable value the
// schema mapper takes.
func (c *AppConfig) Columns(platform string) (summary.PlatformColumns, error) {
	p, ok := c.Platform(platform)
	if !ok {
		return summary.PlatformColumns{}, fmt.Errorf("unknown platform %q", platform)
	}
	return summary.PlatformColumns{
		Platform: platform,
		SKU:      p.SKUColumn,
		City:     p.CityColumn,
		Date:     p.DateColumn,
		Qty:      p.QtyColumn,
	}, nil
}

// Platform returns one platform entry.
func (c *AppConfig) Platform(id string) (PlatformConfig, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.Platforms[id]
	return p, ok
}

// PlatformIDs lists configured platforms in stable order.
func (c *AppConfig) PlatformIDs() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ids := make([]string, 0, len(c.Platforms))
	for id := range c.Platforms {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// UnitPrices collects the per-platform unit prices for revenue
// estimates.
func (c *AppConfig) UnitPrices() map[string]float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	prices := make(map[string]float64, len(c.Platforms))
	for id, p := range c.Platforms {
		prices[id] = p.UnitPrice
	}
	return prices
}

// Snapshot returns an independent copy of the configuration. A
// processing run takes one at the start so the whole run sees one
// consistent config, no matter what the API changes meanwhile.
func (c *AppConfig) Snapshot() *AppConfig {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := &AppConfig{
		Server:    c.Server,
		Data:      c.Data,
		Platforms: make(map[string]PlatformConfig, len(c.Platforms)),
		Analytics: c.Analytics,
	}
	for id, p := range c.Platforms {
		out.Platforms[id] = p
	}
	return out
}

// Apply replaces the given platform entries and, when non-nil, the
// analytics thresholds. Entries not named stay untouched.
func (c *AppConfig) Apply(platforms map[string]PlatformConfig, analytics *AnalyticsConfig) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for id, p := range platforms {
		c.Platforms[id] = p
	}
	if analytics != nil {
		c.Analytics = *analytics
	}
}

// GetExeDir returns the directory of the running executable.
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

func isPortSpecifiedInToml(data []byte) bool {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return false
	}
	serverAny, ok := raw["server"]
	if !ok {
		return false
	}
	serverMap, ok := serverAny.(map[string]any)
	if !ok {
		return false
	}
	_, ok = serverMap["port"]
	return ok
}

// LoadConfigWithInfo loads config.toml from the executable's directory
// and reports load metadata. A missing file yields the defaults.
func LoadConfigWithInfo() (*AppConfig, LoadConfigInfo, error) {
	info := LoadConfigInfo{}
	config := DefaultConfig()

	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}

	configPath := filepath.Join(exeDir, "config.toml")

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return config, info, nil
		}
		return nil, info, err
	}

	info.PortSpecified = isPortSpecifiedInToml(data)

	if err := toml.Unmarshal(data, config); err != nil {
		return nil, info, err
	}

	if v := os.Getenv("SALESBOARD_DATA_DIR"); v != "" {
		config.Data.DataDir = v
	}

	return config, info, nil
}

// LoadConfig loads config.toml from the executable's directory.
func LoadConfig() (*AppConfig, error) {
	config, _, err := LoadConfigWithInfo()
	return config, err
}

// SaveConfig writes the configuration back to config.toml.
func SaveConfig(config *AppConfig) error {
	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}

	configPath := filepath.Join(exeDir, "config.toml")

	data, err := toml.Marshal(config)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0644)
}

// EnsureDataDir creates the data directory and its subdirectories next
// to the executable.
func EnsureDataDir(config *AppConfig) (string, error) {
	dataDir := config.Data.DataDir
	if !filepath.IsAbs(dataDir) {
		exeDir, err := GetExeDir()
		if err != nil {
			exeDir = "."
		}
		dataDir = filepath.Join(exeDir, dataDir)
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", err
	}

	for _, subdir := range []string{"uploads", "exports"} {
		if err := os.MkdirAll(filepath.Join(dataDir, subdir), 0755); err != nil {
			return "", err
		}
	}

	return dataDir, nil
}

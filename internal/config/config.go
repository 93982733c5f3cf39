package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all settings. Precedence, lowest to highest: built-in
// defaults, the optional YAML file named by CONFIG_PATH, environment
// variables (including a .env file).
type Config struct {
	ProductsPath  string `yaml:"products_xlsx"`
	PricesPath    string `yaml:"prices_xlsx"`
	OutputDir     string `yaml:"output_dir"`
	DBPath        string `yaml:"db_path"`
	DropDir       string `yaml:"drop_dir"`
	LocationsPath string `yaml:"locations_path"`
	Limit         int    `yaml:"limit"`
	Seed          int64  `yaml:"seed"`
	EnableWatcher bool   `yaml:"enable_watcher"`
	Environment   string `yaml:"environment"`
}

func defaults() Config {
	return Config{
		ProductsPath: "./data/products.xlsx",
		PricesPath:   "./data/prices.xlsx",
		OutputDir:    "./out",
		DBPath:       "./appraisals.db",
		DropDir:      "./drop",
		Limit:        250,
		Environment:  "local",
	}
}

// Load reads configuration from the optional YAML file, environment, and
// optional .env file.
func Load() Config {
	_ = godotenv.Load()

	cfg := defaults()
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config file %s: %v", path, err)
		} else if err := yaml.Unmarshal(raw, &cfg); err != nil {
			log.Printf("config file %s: %v", path, err)
		}
	}

	cfg.ProductsPath = getenv("PRODUCTS_XLSX", cfg.ProductsPath)
	cfg.PricesPath = getenv("PRICES_XLSX", cfg.PricesPath)
	cfg.OutputDir = getenv("OUTPUT_DIR", cfg.OutputDir)
	cfg.DBPath = getenv("DB_PATH", cfg.DBPath)
	cfg.DropDir = getenv("DROP_DIR", cfg.DropDir)
	cfg.LocationsPath = getenv("LOCATIONS_PATH", cfg.LocationsPath)
	cfg.Limit = clampInt(getenvInt("APPRAISAL_LIMIT", cfg.Limit), 1, 10000)
	cfg.Seed = getenvInt64("SEED", cfg.Seed)
	cfg.EnableWatcher = getenvBool("ENABLE_WATCHER", cfg.EnableWatcher)
	cfg.Environment = getenv("ENVIRONMENT", cfg.Environment)

	log.Printf("config: products=%s prices=%s out=%s db=%s limit=%d env=%s",
		cfg.ProductsPath, cfg.PricesPath, cfg.OutputDir, cfg.DBPath, cfg.Limit, cfg.Environment)
	return cfg
}

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func getenvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func getenvInt64(key string, def int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return def
	}
	return n
}

func getenvBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// Now returns utc time helper for deterministic timestamps.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}

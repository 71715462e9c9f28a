package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
)

const EnvPrefix = "PONSIV"

type Config struct {
	Port       string
	StateDir   string
	Backend    string // file | sqlite
	DBDSN      string
	CatalogDir string
	MediaDir   string
	LogFile    string
	LogLevel   string
	LogPretty  bool
	BcryptCost int
}

func defaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("state_dir", "./data")
	v.SetDefault("backend", "file")
	v.SetDefault("db_dsn", "ponsiv.db") // sqlite file in project root
	v.SetDefault("catalog_dir", "./catalog")
	v.SetDefault("media_dir", "./media")
	v.SetDefault("log_file", "./ponsiv.log")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_pretty", false)
	v.SetDefault("bcrypt_cost", bcrypt.DefaultCost)
}

// Load reads path (or ./ponsiv.yaml when path is empty and the file exists),
// then lets PONSIV_* environment variables override it.
func Load(path string) (Config, error) {
	v := viper.New()
	defaults(v)
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("ponsiv")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := Config{
		Port:       v.GetString("port"),
		StateDir:   v.GetString("state_dir"),
		Backend:    strings.ToLower(v.GetString("backend")),
		DBDSN:      v.GetString("db_dsn"),
		CatalogDir: v.GetString("catalog_dir"),
		MediaDir:   v.GetString("media_dir"),
		LogFile:    v.GetString("log_file"),
		LogLevel:   v.GetString("log_level"),
		LogPretty:  v.GetBool("log_pretty"),
		BcryptCost: v.GetInt("bcrypt_cost"),
	}
	switch cfg.Backend {
	case "file", "sqlite":
	default:
		return Config{}, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
	if cfg.BcryptCost < bcrypt.MinCost || cfg.BcryptCost > bcrypt.MaxCost {
		cfg.BcryptCost = bcrypt.DefaultCost
	}
	log.Printf("[config] PORT=%s BACKEND=%s STATE_DIR=%s DB_DSN=%s CATALOG_DIR=%s MEDIA_DIR=%s LOG_FILE=%s",
		cfg.Port, cfg.Backend, cfg.StateDir, cfg.DBDSN, cfg.CatalogDir, cfg.MediaDir, cfg.LogFile)
	return cfg, nil
}

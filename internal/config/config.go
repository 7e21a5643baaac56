package config

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
	Backup   BackupConfig   `yaml:"backup"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
	Mode string `yaml:"mode"` // debug, release, test
}

type DatabaseConfig struct {
	Driver string `yaml:"driver"` // sqlite, mysql, postgres, memory
	DSN    string `yaml:"dsn"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// BackupConfig controls the automatic nightly backup.
type BackupConfig struct {
	AutoEnabled bool `yaml:"auto_enabled"`
	Hour        int  `yaml:"hour"`
	Minute      int  `yaml:"minute"`
	KeepCount   int  `yaml:"keep_count"`
}

func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = "config.yaml"
	}

	var cfg *Config

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		cfg = DefaultConfig()
	} else {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, err
		}
		var fileCfg Config
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			return nil, err
		}
		cfg = &fileCfg
	}

	cfg.overrideFromEnv()
	cfg.fillDefaults()
	return cfg, nil
}

func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: "8080",
			Mode: "debug",
		},
		Database: DatabaseConfig{
			Driver: "sqlite",
			DSN:    "eva-config.db",
		},
		Log: LogConfig{Level: "info"},
		Backup: BackupConfig{
			AutoEnabled: true,
			Hour:        2,
			Minute:      30,
			KeepCount:   14,
		},
	}
}

func (c *Config) overrideFromEnv() {
	if v := os.Getenv("EVA_SERVER_HOST"); v != "" {
		c.Server.Host = v
	}
	if v := os.Getenv("EVA_SERVER_PORT"); v != "" {
		c.Server.Port = v
	}
	if v := os.Getenv("EVA_SERVER_MODE"); v != "" {
		c.Server.Mode = v
	}
	if v := os.Getenv("EVA_DB_DRIVER"); v != "" {
		c.Database.Driver = v
	}
	if v := os.Getenv("EVA_DB_DSN"); v != "" {
		c.Database.DSN = v
	}
	if v := os.Getenv("EVA_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("EVA_BACKUP_KEEP"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Backup.KeepCount = n
		}
	}
}

// fillDefaults repairs zero values left by a sparse config file.
func (c *Config) fillDefaults() {
	def := DefaultConfig()
	if c.Server.Port == "" {
		c.Server.Port = def.Server.Port
	}
	if c.Server.Mode == "" {
		c.Server.Mode = def.Server.Mode
	}
	if c.Database.Driver == "" {
		c.Database.Driver = def.Database.Driver
	}
	if c.Database.DSN == "" && c.Database.Driver != "memory" {
		c.Database.DSN = def.Database.DSN
	}
	if c.Log.Level == "" {
		c.Log.Level = def.Log.Level
	}
	if c.Backup.KeepCount <= 0 {
		c.Backup.KeepCount = def.Backup.KeepCount
	}
}

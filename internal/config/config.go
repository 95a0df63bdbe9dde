package config

import (
	"os"
	"path"
	"time"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Public  Public
	private Private
}

type Public struct {
	Pg             Pg            `yaml:"pg"`
	Port           string        `yaml:"port"`
	LogLevel       string        `yaml:"log_level"`
	LogJSON        bool          `yaml:"log_json"`
	JwtTTL         time.Duration `yaml:"jwt_ttl"`
	SecureCookies  bool          `yaml:"secure_cookies"`
	AllowedOrigins []string      `yaml:"allowed_origins"`
	StaticDir      string        `yaml:"static_dir"`
	BoardPageSize  int           `yaml:"board_page_size"`
}

type Pg struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Dbname   string `yaml:"dbname"`
}

type Private struct {
	JwtKey         string `yaml:"jwt_key"`
	GoogleClientId string `yaml:"google_client_id"`
}

func (c *Config) JwtKey() string {
	return c.private.JwtKey
}

func (c *Config) JwtTTL() time.Duration {
	return c.Public.JwtTTL
}

func (c *Config) GoogleClientId() string {
	return c.private.GoogleClientId
}

func mustLoadPath(configPath string, output interface{}) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		panic("can't read config file")
	}

	if err = yaml.Unmarshal(configFile, output); err != nil {
		panic("can't unmarshal config file")
	}
}

func MustLoad(configFolder string) *Config {
	var public Public
	mustLoadPath(path.Join(configFolder, "public.yaml"), &public)

	var private Private
	mustLoadPath(path.Join(configFolder, "private.yaml"), &private)

	cfg := &Config{public, private}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Public.Port == "" {
		c.Public.Port = "3030"
	}
	if c.Public.LogLevel == "" {
		c.Public.LogLevel = "info"
	}
	if c.Public.JwtTTL == 0 {
		c.Public.JwtTTL = 24 * time.Hour
	}
	if c.Public.BoardPageSize == 0 {
		c.Public.BoardPageSize = 3
	}
	if c.Public.StaticDir == "" {
		c.Public.StaticDir = "public"
	}
}

// NewForTest builds a config without touching the filesystem.
func NewForTest(public Public, private Private) *Config {
	cfg := &Config{public, private}
	cfg.applyDefaults()
	return cfg
}

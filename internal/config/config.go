package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/spf13/pflag"
)

// LogConfig настройки логирования
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ClientConfig настройки CLI клиента
type ClientConfig struct {
	Log    LogConfig `mapstructure:"log"`
	Server struct {
		URL string `mapstructure:"url"`
	} `mapstructure:"server"`
	Storage struct {
		Path string `mapstructure:"path"`
	} `mapstructure:"storage"`
	Cache struct {
		StaleTime   time.Duration `mapstructure:"stale_time"`
		MaxInactive int           `mapstructure:"max_inactive"`
	} `mapstructure:"cache"`
	HTTP struct {
		Timeout time.Duration `mapstructure:"timeout"`
	} `mapstructure:"http"`
}

// ClientDefaults значения по умолчанию для клиента
func ClientDefaults() map[string]any {
	return map[string]any{
		"server.url":         "http://localhost:8080",
		"storage.path":       "optimizeai-client.db",
		"cache.stale_time":   "30s",
		"cache.max_inactive": 100,
		"http.timeout":       "30s",
		"log.level":          "warn",
		"log.format":         "text",
	}
}

// LoadClient загружает конфигурацию клиента
// flags может быть nil; распознаются флаги server, db и log-level
func LoadClient(configFile string, flags *pflag.FlagSet) (*ClientConfig, error) {
	loader := NewLoader(EnvPrefix)
	if flags != nil {
		loader.BindFlag("server.url", flags.Lookup("server"))
		loader.BindFlag("storage.path", flags.Lookup("db"))
		loader.BindFlag("log.level", flags.Lookup("log-level"))
	}

	cfg := &ClientConfig{}
	if _, err := loader.Load(configFile, ClientDefaults(), cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate проверяет согласованность настроек клиента
func (c *ClientConfig) Validate() error {
	u, err := url.Parse(c.Server.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid server url %q", c.Server.URL)
	}
	if c.Storage.Path == "" {
		return fmt.Errorf("storage path cannot be empty")
	}
	if c.Cache.StaleTime < 0 {
		return fmt.Errorf("cache stale time cannot be negative")
	}
	if c.HTTP.Timeout <= 0 {
		return fmt.Errorf("http timeout must be positive")
	}
	return nil
}

// ServerConfig настройки dev сервера
type ServerConfig struct {
	Log    LogConfig `mapstructure:"log"`
	Server struct {
		Addr string `mapstructure:"addr"`
	} `mapstructure:"server"`
	Database struct {
		Path string `mapstructure:"path"`
	} `mapstructure:"database"`
	Auth struct {
		JWTSecret string        `mapstructure:"jwt_secret"`
		TokenTTL  time.Duration `mapstructure:"token_ttl"`
		ResetTTL  time.Duration `mapstructure:"reset_ttl"`
	} `mapstructure:"auth"`
	RateLimit struct {
		Requests int           `mapstructure:"requests"`
		Window   time.Duration `mapstructure:"window"`
	} `mapstructure:"ratelimit"`
}

// ServerDefaults значения по умолчанию для сервера
func ServerDefaults() map[string]any {
	return map[string]any{
		"server.addr":        ":8080",
		"database.path":      "optimizeai.db",
		"auth.jwt_secret":    "",
		"auth.token_ttl":     "24h",
		"auth.reset_ttl":     "1h",
		"ratelimit.requests": 20,
		"ratelimit.window":   "1m",
		"log.level":          "info",
		"log.format":         "text",
	}
}

// LoadServer загружает конфигурацию сервера
// flags может быть nil; распознаются флаги addr, db и log-level
func LoadServer(configFile string, flags *pflag.FlagSet) (*ServerConfig, error) {
	loader := NewLoader(EnvPrefix)
	if flags != nil {
		loader.BindFlag("server.addr", flags.Lookup("addr"))
		loader.BindFlag("database.path", flags.Lookup("db"))
		loader.BindFlag("log.level", flags.Lookup("log-level"))
	}

	cfg := &ServerConfig{}
	if _, err := loader.Load(configFile, ServerDefaults(), cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate проверяет согласованность настроек сервера
func (c *ServerConfig) Validate() error {
	// HS256 требует ключ не короче 32 байт
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 bytes (set OPTIMIZEAI_AUTH_JWT_SECRET)")
	}
	if c.Auth.TokenTTL <= 0 || c.Auth.ResetTTL <= 0 {
		return fmt.Errorf("auth ttl values must be positive")
	}
	if c.RateLimit.Requests <= 0 || c.RateLimit.Window <= 0 {
		return fmt.Errorf("ratelimit values must be positive")
	}
	return nil
}

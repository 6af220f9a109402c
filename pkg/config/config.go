package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DefaultAPIURL es el host de respaldo cuando SEVA_API_URL no está definido.
const DefaultAPIURL = "http://localhost:8000/api/v1"

// Config agrupa la configuración de la consola (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	HTTP    HTTPConfig
	API     APIConfig
	Session SessionConfig
	Storage StorageConfig
	DB      DBConfig
	Redis   RedisConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// HTTPConfig configuración del servidor HTTP local de la consola.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// APIConfig configuración del cliente REST contra el backend SEVA.
type APIConfig struct {
	BaseURL               string
	Timeout               time.Duration
	RateLimitQPS          float64 // 0 = sin límite
	RateLimitBurst        int
	EnrichmentConcurrency int
}

// SessionConfig tiempos acotados del coordinador de sesión y de las cargas de listados.
type SessionConfig struct {
	ReloadTimeout   time.Duration
	ListLoadTimeout time.Duration
}

// StorageConfig almacenamiento persistente "del lado cliente" (tokens y espejo de onboarding).
type StorageConfig struct {
	Driver     string // memory, file, postgres, redis
	Path       string // archivo JSON para el driver file
	Passphrase string // si no está vacío, el archivo se cifra
	Namespace  string // separa instalaciones que comparten postgres/redis
}

// DBConfig configuración de PostgreSQL (solo con STORAGE_DRIVER=postgres).
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devuelve el connection string para PostgreSQL con URL encoding para caracteres especiales.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// RedisConfig configuración de Redis (solo con STORAGE_DRIVER=redis).
type RedisConfig struct {
	URL string
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, SEVA_API_URL, STORAGE_DRIVER, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "seva-admin"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "127.0.0.1"),
			Port: getInt(v, "HTTP_PORT", 8090),
		},
		API: APIConfig{
			BaseURL:               strings.TrimRight(getString(v, "SEVA_API_URL", DefaultAPIURL), "/"),
			Timeout:               getSeconds(v, "API_TIMEOUT_SECONDS", 30),
			RateLimitQPS:          getFloat(v, "API_RATE_LIMIT_QPS", 0),
			RateLimitBurst:        getInt(v, "API_RATE_LIMIT_BURST", 10),
			EnrichmentConcurrency: getInt(v, "ENRICHMENT_CONCURRENCY", 4),
		},
		Session: SessionConfig{
			ReloadTimeout:   getSeconds(v, "SESSION_RELOAD_TIMEOUT_SECONDS", 10),
			ListLoadTimeout: getSeconds(v, "LIST_LOAD_TIMEOUT_SECONDS", 15),
		},
		Storage: StorageConfig{
			Driver:     strings.ToLower(getString(v, "STORAGE_DRIVER", "file")),
			Path:       getString(v, "STORAGE_PATH", "seva-storage.json"),
			Passphrase: getString(v, "STORAGE_PASSPHRASE", ""),
			Namespace:  getString(v, "STORAGE_NAMESPACE", "default"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "seva_admin"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			URL: getString(v, "REDIS_URL", "redis://localhost:6379/0"),
		},
	}

	if _, err := url.ParseRequestURI(cfg.API.BaseURL); err != nil {
		return nil, fmt.Errorf("SEVA_API_URL inválido: %w", err)
	}
	switch cfg.Storage.Driver {
	case "memory", "file", "postgres", "redis":
	default:
		return nil, fmt.Errorf("STORAGE_DRIVER desconocido: %q", cfg.Storage.Driver)
	}
	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(v.GetString(key))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getFloat(v *viper.Viper, key string, def float64) float64 {
	if v.IsSet(key) {
		f, err := strconv.ParseFloat(v.GetString(key), 64)
		if err != nil {
			return def
		}
		return f
	}
	return def
}

// getSeconds lee un entero de segundos y lo devuelve como duración.
func getSeconds(v *viper.Viper, key string, def int) time.Duration {
	return time.Duration(getInt(v, key, def)) * time.Second
}

package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App      AppConfig
	HTTP     HTTPConfig
	JWT      JWTConfig
	Admin    AdminConfig
	Upstream UpstreamConfig
	Redis    RedisConfig
	Audit    AuditConfig
	DB       DBConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host           string
	Port           int
	RequestTimeout time.Duration // plazo de cada request de la API, incluidas sus llamadas al backend
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// JWTConfig configuración de JWT.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// AdminConfig credenciales del operador del painel. PasswordHash es un hash bcrypt.
type AdminConfig struct {
	Email        string
	PasswordHash string
}

// UpstreamConfig backend REST de parcerias, OSCs, lojas y campanhas.
type UpstreamConfig struct {
	BaseURL          string
	APIToken         string
	Timeout          time.Duration
	MaxResponseBytes int64
	StatusEncoding   string // "label" (por defecto) o "number"
}

// RedisConfig guarda el candado por fila de los toggles. Vacío = candado en memoria.
type RedisConfig struct {
	URL      string
	Address  string
	Password string
	DB       int
	LockTTL  time.Duration // por defecto cubre relectura, update y refetch con margen
}

// Enabled indica si hay Redis configurado.
func (c RedisConfig) Enabled() bool {
	return c.URL != "" || c.Address != ""
}

// AuditConfig activa la bitácora en PostgreSQL.
type AuditConfig struct {
	Enabled bool
}

// DBConfig configuración de PostgreSQL.
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

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, UPSTREAM_BASE_URL, JWT_SECRET, etc.
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

// ToggleLockTTL vida del candado de un toggle: tres llamadas al backend (relectura, update y
// refetch) de hasta upstreamTimeout cada una, más un margen.
func ToggleLockTTL(upstreamTimeout time.Duration) time.Duration {
	return 3*upstreamTimeout + 5*time.Second
}

func fromViper(v *viper.Viper) (*Config, error) {
	upstreamTimeout := time.Duration(getInt(v, "UPSTREAM_TIMEOUT_SECONDS", 15)) * time.Second
	lockTTL := ToggleLockTTL(upstreamTimeout)
	if v.IsSet("TOGGLE_LOCK_TTL_SECONDS") {
		lockTTL = time.Duration(getInt(v, "TOGGLE_LOCK_TTL_SECONDS", 0)) * time.Second
	}

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "parcerias-admin"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		HTTP: HTTPConfig{
			Host:           getString(v, "HTTP_HOST", "0.0.0.0"),
			Port:           getInt(v, "HTTP_PORT", 8080),
			RequestTimeout: time.Duration(getInt(v, "HTTP_REQUEST_TIMEOUT_SECONDS", 60)) * time.Second,
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 60),
			Issuer:     getString(v, "JWT_ISSUER", "parcerias-admin"),
		},
		Admin: AdminConfig{
			Email:        getString(v, "ADMIN_EMAIL", ""),
			PasswordHash: getString(v, "ADMIN_PASSWORD_HASH", ""),
		},
		Upstream: UpstreamConfig{
			BaseURL:          strings.TrimRight(getString(v, "UPSTREAM_BASE_URL", "http://localhost:3001/api"), "/"),
			APIToken:         getString(v, "UPSTREAM_API_TOKEN", ""),
			Timeout:          upstreamTimeout,
			MaxResponseBytes: int64(getInt(v, "UPSTREAM_MAX_RESPONSE_BYTES", 32<<20)),
			StatusEncoding:   strings.ToLower(getString(v, "UPSTREAM_STATUS_ENCODING", "label")),
		},
		Redis: RedisConfig{
			URL:      getString(v, "REDIS_URL", ""),
			Address:  getString(v, "REDIS_ADDR", ""),
			Password: getString(v, "REDIS_PASSWORD", ""),
			DB:       getInt(v, "REDIS_DB", 0),
			LockTTL:  lockTTL,
		},
		Audit: AuditConfig{
			Enabled: getBool(v, "AUDIT_ENABLED", false),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "parcerias_admin"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
	}

	switch cfg.Upstream.StatusEncoding {
	case "label", "number":
	default:
		return nil, fmt.Errorf("config: UPSTREAM_STATUS_ENCODING inválido %q (use label o number)", cfg.Upstream.StatusEncoding)
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

func getBool(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		return v.GetBool(key)
	}
	return def
}

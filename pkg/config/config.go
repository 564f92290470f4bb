package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la consola (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	HTTP    HTTPConfig
	Session SessionConfig
	Auth    AuthConfig
	Backend BackendConfig
	Poller  PollerConfig
	Seen    SeenConfig
	DB      DBConfig
	Redis   RedisConfig
	Resend  ResendConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// SessionConfig configuración de la cookie de sesión firmada.
type SessionConfig struct {
	Secret     string
	CookieName string
	Lifetime   time.Duration // 24 h por defecto
	Secure     bool          // true en producción con HTTPS
	Issuer     string
}

// AuthConfig modo de autenticación: "backend" delega en la API; "local" usa un admin configurado.
type AuthConfig struct {
	Mode              string
	AdminEmail        string
	AdminPasswordHash string // bcrypt
	AdminName         string
}

// BackendConfig API REST externa que es dueña de los datos.
type BackendConfig struct {
	BaseURL       string
	SessionCookie string // nombre de la cookie de sesión del backend
	ServiceToken  string // credencial del poller (sin usuario)
	Timeout       time.Duration
}

// PollerConfig configuración del chequeo de estado físico del hardware.
type PollerConfig struct {
	Enabled  bool
	Interval time.Duration
}

// SeenConfig dónde se guardan los ids de alertas ya mostradas: memory, redis o postgres.
type SeenConfig struct {
	Store string
}

// DBConfig configuración de PostgreSQL (solo para SEEN_STORE=postgres).
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

// RedisConfig configuración de Redis (solo para SEEN_STORE=redis).
type RedisConfig struct {
	Addr string
	DB   int
}

// ResendConfig credenciales del relay del formulario de contacto.
type ResendConfig struct {
	APIKey  string
	BaseURL string
	From    string
	To      string
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, API_BASE_URL, SECRET_KEY, etc.
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
	env := getString(v, "APP_ENV", "development")
	cfg := &Config{
		App: AppConfig{
			Env:      env,
			Name:     getString(v, "APP_NAME", "consola-hardware"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8000),
		},
		Session: SessionConfig{
			Secret:     getString(v, "SECRET_KEY", "dev-secret-key-change-in-production"),
			CookieName: getString(v, "SESSION_COOKIE_NAME", "consola_session"),
			Lifetime:   getDuration(v, "SESSION_LIFETIME", 24*time.Hour),
			Secure:     getBool(v, "SESSION_COOKIE_SECURE", env == "production"),
			Issuer:     getString(v, "SESSION_ISSUER", "consola-hardware"),
		},
		Auth: AuthConfig{
			Mode:              getString(v, "AUTH_MODE", "backend"),
			AdminEmail:        getString(v, "ADMIN_EMAIL", ""),
			AdminPasswordHash: getString(v, "ADMIN_PASSWORD_HASH", ""),
			AdminName:         getString(v, "ADMIN_NAME", "Administrador"),
		},
		Backend: BackendConfig{
			BaseURL:       strings.TrimRight(getString(v, "API_BASE_URL", "http://localhost:5000"), "/"),
			SessionCookie: getString(v, "BACKEND_SESSION_COOKIE", "session"),
			ServiceToken:  getString(v, "BACKEND_SERVICE_TOKEN", ""),
			Timeout:       getDuration(v, "BACKEND_TIMEOUT", 10*time.Second),
		},
		Poller: PollerConfig{
			Enabled:  getBool(v, "POLLER_ENABLED", true),
			Interval: getDuration(v, "POLLER_INTERVAL", 10*time.Second),
		},
		Seen: SeenConfig{
			Store: getString(v, "SEEN_STORE", "memory"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "consola"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Addr: getString(v, "REDIS_ADDR", "localhost:6379"),
			DB:   getInt(v, "REDIS_DB", 0),
		},
		Resend: ResendConfig{
			APIKey:  getString(v, "RESEND_API_KEY", ""),
			BaseURL: getString(v, "RESEND_BASE_URL", "https://api.resend.com"),
			From:    getString(v, "CONTACT_FROM", "Consola <onboarding@resend.dev>"),
			To:      getString(v, "CONTACT_TO", ""),
		},
	}

	switch cfg.Auth.Mode {
	case "backend", "local":
	default:
		return nil, fmt.Errorf("config: AUTH_MODE inválido %q (backend|local)", cfg.Auth.Mode)
	}
	switch cfg.Seen.Store {
	case "memory", "redis", "postgres":
	default:
		return nil, fmt.Errorf("config: SEEN_STORE inválido %q (memory|redis|postgres)", cfg.Seen.Store)
	}
	if cfg.Poller.Interval <= 0 {
		return nil, fmt.Errorf("config: POLLER_INTERVAL debe ser positivo")
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

// getDuration acepta "10s", "5m" o un número entero de segundos.
func getDuration(v *viper.Viper, key string, def time.Duration) time.Duration {
	if !v.IsSet(key) {
		return def
	}
	raw := strings.TrimSpace(v.GetString(key))
	if n, err := strconv.Atoi(raw); err == nil {
		return time.Duration(n) * time.Second
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return def
	}
	return d
}

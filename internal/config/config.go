package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	// Server
	Port           int    `mapstructure:"PORT"`
	Env            string `mapstructure:"APP_ENV"` // development | production
	WorkerPoolSize int    `mapstructure:"WORKER_POOL_SIZE"`

	// Remote sheet services (Apps Script deployments). Any empty URL falls
	// back to the legacy monolith endpoint.
	LegacyURL   string `mapstructure:"SHEETS_LEGACY_URL"`
	AuthURL     string `mapstructure:"SHEETS_AUTH_URL"`
	CatalogURL  string `mapstructure:"SHEETS_CATALOG_URL"`
	WriteURL    string `mapstructure:"SHEETS_WRITE_URL"`
	UsersURL    string `mapstructure:"SHEETS_USERS_URL"`
	FeedbackURL string `mapstructure:"SHEETS_FEEDBACK_URL"`

	// Redis
	RedisURL string `mapstructure:"REDIS_URL"`

	// Session cache
	SesionCacheTTLSeconds int `mapstructure:"SESION_CACHE_TTL_SECONDS"`

	// Catalog
	RecientesVentana int    `mapstructure:"RECIENTES_VENTANA"`
	SnapshotDBPath   string `mapstructure:"SNAPSHOT_DB_PATH"`
	RefrescoMinutos  int    `mapstructure:"CATALOGO_REFRESCO_MINUTOS"` // 0 disables the background refresh

	// SMTP — problem-report notifications
	SMTPHost             string `mapstructure:"SMTP_HOST"`
	SMTPPort             int    `mapstructure:"SMTP_PORT"`
	SMTPUser             string `mapstructure:"SMTP_USER"`
	SMTPPassword         string `mapstructure:"SMTP_PASSWORD"`
	ReporteDestinatarios string `mapstructure:"REPORTE_DESTINATARIOS"` // comma-separated

	// Ficha PDF export
	PDFStoragePath string `mapstructure:"PDF_STORAGE_PATH"`
}

// Destinatarios splits the configured problem-report recipient list.
func (c *Config) Destinatarios() []string {
	var out []string
	for _, d := range strings.Split(c.ReporteDestinatarios, ",") {
		if d = strings.TrimSpace(d); d != "" {
			out = append(out, d)
		}
	}
	return out
}

// Load reads configuration from environment variables (and optional .env file).
func Load() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Sensible defaults for development
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("WORKER_POOL_SIZE", 3)
	viper.SetDefault("REDIS_URL", "redis://localhost:6379/0")
	viper.SetDefault("SESION_CACHE_TTL_SECONDS", 60)
	viper.SetDefault("RECIENTES_VENTANA", 4)
	viper.SetDefault("SNAPSHOT_DB_PATH", "/tmp/gpspedia/snapshot.db")
	viper.SetDefault("CATALOGO_REFRESCO_MINUTOS", 30)
	viper.SetDefault("SMTP_PORT", 587)
	viper.SetDefault("PDF_STORAGE_PATH", "/tmp/gpspedia/fichas")

	// Optional .env file for local development — does not fail if missing
	_ = viper.ReadInConfig()

	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

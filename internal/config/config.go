package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App             App             `mapstructure:",squash"`
	Server          Server          `mapstructure:",squash"`
	Database        Database        `mapstructure:",squash"`
	GoogleAds       GoogleAds       `mapstructure:",squash"`
	Auth            Auth            `mapstructure:",squash"`
	Umbler          Umbler          `mapstructure:",squash"`
	Dashboard       Dashboard       `mapstructure:",squash"`
	TokenRefreshJob TokenRefreshJob `mapstructure:",squash"`
	CampaignSyncJob CampaignSyncJob `mapstructure:",squash"`
	LogCleanupJob   LogCleanupJob   `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

type GoogleAds struct {
	BaseURL    string `mapstructure:"google_ads_base_url"`
	Version    string `mapstructure:"google_ads_version"`
	URL        string `mapstructure:"-"`
	OAuthURL   string `mapstructure:"google_ads_oauth_url"`
	LoginCID   string `mapstructure:"google_ads_login_customer_id"`
	CacheTTL   int    `mapstructure:"google_ads_cache_ttl_seconds"`
	TimeoutSec int    `mapstructure:"google_ads_request_timeout_seconds"`
}

type Auth struct {
	Secret          string `mapstructure:"auth_secret"`
	TokenTTLMinutes int    `mapstructure:"auth_token_ttl_minutes"`
}

type Umbler struct {
	AuditLogCapacity int `mapstructure:"umbler_audit_log_capacity"`
}

type Dashboard struct {
	AggregateWorkers int `mapstructure:"dashboard_aggregate_workers"`
}

type TokenRefreshJob struct {
	CronSchedule        string `mapstructure:"token_refresh_cron"`
	ExpiryBufferMinutes int    `mapstructure:"token_refresh_expiry_buffer_minutes"`
	Enabled             bool   `mapstructure:"token_refresh_enabled"`
}

type CampaignSyncJob struct {
	CronSchedule        string `mapstructure:"campaign_sync_cron"`
	RequestDelaySeconds int    `mapstructure:"campaign_sync_request_delay_seconds"`
	MaxConcurrentJobs   int    `mapstructure:"campaign_sync_max_concurrent_jobs"`
	Enabled             bool   `mapstructure:"campaign_sync_enabled"`
}

type LogCleanupJob struct {
	CronSchedule   string `mapstructure:"log_cleanup_cron"`
	RetentionHours int    `mapstructure:"log_cleanup_retention_hours"`
	Enabled        bool   `mapstructure:"log_cleanup_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/ads_dashboard")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("GOOGLE_ADS_BASE_URL", "https://googleads.googleapis.com")
	viper.SetDefault("GOOGLE_ADS_VERSION", "v16")
	viper.SetDefault("GOOGLE_ADS_OAUTH_URL", "https://oauth2.googleapis.com/token")
	viper.SetDefault("GOOGLE_ADS_LOGIN_CUSTOMER_ID", "")
	viper.SetDefault("GOOGLE_ADS_CACHE_TTL_SECONDS", 300) // 5 minutos
	viper.SetDefault("GOOGLE_ADS_REQUEST_TIMEOUT_SECONDS", 30)

	viper.SetDefault("AUTH_SECRET", "your_secret_key")
	viper.SetDefault("AUTH_TOKEN_TTL_MINUTES", 480)

	viper.SetDefault("UMBLER_AUDIT_LOG_CAPACITY", 1000)
	viper.SetDefault("DASHBOARD_AGGREGATE_WORKERS", 5)

	// Defaults das cron jobs
	viper.SetDefault("TOKEN_REFRESH_CRON", "*/30 * * * *") // A cada 30 minutos
	viper.SetDefault("TOKEN_REFRESH_EXPIRY_BUFFER_MINUTES", 10)
	viper.SetDefault("TOKEN_REFRESH_ENABLED", true)

	viper.SetDefault("CAMPAIGN_SYNC_CRON", "0 3 * * *") // Todos os dias às 3h da manhã
	viper.SetDefault("CAMPAIGN_SYNC_REQUEST_DELAY_SECONDS", 2)
	viper.SetDefault("CAMPAIGN_SYNC_MAX_CONCURRENT_JOBS", 3)
	viper.SetDefault("CAMPAIGN_SYNC_ENABLED", false)

	viper.SetDefault("LOG_CLEANUP_CRON", "0 * * * *") // De hora em hora
	viper.SetDefault("LOG_CLEANUP_RETENTION_HOURS", 24)
	viper.SetDefault("LOG_CLEANUP_ENABLED", true)

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile()

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.GoogleAds.URL = fmt.Sprintf("%s/%s", config.GoogleAds.BaseURL, config.GoogleAds.Version)

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// loadEnvFile tenta carregar o arquivo .env das localizações conhecidas
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado de:", location)
			return
		}
	}

	logrus.Warn("Nenhum arquivo .env encontrado, usando variáveis de ambiente")
}

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App       App      `mapstructure:",squash"`
	Server    Server   `mapstructure:",squash"`
	Database  Database `mapstructure:",squash"`
	YouTube   YouTube  `mapstructure:",squash"`
	Rotation  Rotation `mapstructure:",squash"`
	Polling   Polling  `mapstructure:",squash"`
	Auth      Auth     `mapstructure:",squash"`
	SecretKey string   `mapstructure:"secret_key"`
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

type YouTube struct {
	DataURL      string `mapstructure:"youtube_data_url"`
	AnalyticsURL string `mapstructure:"youtube_analytics_url"`
	TokenURL     string `mapstructure:"youtube_token_url"`
	ClientID     string `mapstructure:"youtube_client_id"`
	ClientSecret string `mapstructure:"youtube_client_secret"`

	// TokenCipherKey cifra refresh tokens em repouso (32 bytes, hex)
	TokenCipherKey string `mapstructure:"youtube_token_cipher_key"`

	// Margem de segurança antes da expiração do access token para
	// disparar refresh proativo
	TokenRefreshMarginMinutes int `mapstructure:"youtube_token_refresh_margin_minutes"`

	QuotaDailyBudget int    `mapstructure:"youtube_quota_daily_budget"`
	QuotaResetTZ     string `mapstructure:"youtube_quota_reset_tz"`

	RetryMaxAttempts   int     `mapstructure:"youtube_retry_max_attempts"`
	RetryBaseDelayMs   int     `mapstructure:"youtube_retry_base_delay_ms"`
	RetryMaxDelayMs    int     `mapstructure:"youtube_retry_max_delay_ms"`
	RetryBackoffFactor float64 `mapstructure:"youtube_retry_backoff_factor"`
	RequestTimeoutSecs int     `mapstructure:"youtube_request_timeout_seconds"`
}

type Rotation struct {
	SweepCronSchedule string `mapstructure:"rotation_sweep_cron"`
	MaxConcurrentJobs int    `mapstructure:"rotation_max_concurrent_jobs"`
	SchedulerEnabled  bool   `mapstructure:"rotation_scheduler_enabled"`
}

type Polling struct {
	IntervalMinutes    int `mapstructure:"polling_interval_minutes"`
	IdleBackoffMinutes int `mapstructure:"polling_idle_backoff_minutes"`
}

type Auth struct {
	Secret string `mapstructure:"auth_secret"`
}

func (y YouTube) TokenRefreshMargin() time.Duration {
	return time.Duration(y.TokenRefreshMarginMinutes) * time.Minute
}

func (y YouTube) RetryBaseDelay() time.Duration {
	return time.Duration(y.RetryBaseDelayMs) * time.Millisecond
}

func (y YouTube) RetryMaxDelay() time.Duration {
	return time.Duration(y.RetryMaxDelayMs) * time.Millisecond
}

func (y YouTube) RequestTimeout() time.Duration {
	return time.Duration(y.RequestTimeoutSecs) * time.Second
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/titlerotator")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("YOUTUBE_DATA_URL", "https://www.googleapis.com/youtube/v3")
	viper.SetDefault("YOUTUBE_ANALYTICS_URL", "https://youtubeanalytics.googleapis.com/v2")
	viper.SetDefault("YOUTUBE_TOKEN_URL", "https://oauth2.googleapis.com/token")
	viper.SetDefault("YOUTUBE_CLIENT_ID", "your_client_id")
	viper.SetDefault("YOUTUBE_CLIENT_SECRET", "your_client_secret")
	viper.SetDefault("YOUTUBE_TOKEN_CIPHER_KEY", "")
	viper.SetDefault("YOUTUBE_TOKEN_REFRESH_MARGIN_MINUTES", 5)

	// Orçamento padrão da API do YouTube: 10.000 unidades/dia, reset à
	// meia-noite no horário do Pacífico
	viper.SetDefault("YOUTUBE_QUOTA_DAILY_BUDGET", 10000)
	viper.SetDefault("YOUTUBE_QUOTA_RESET_TZ", "America/Los_Angeles")

	viper.SetDefault("YOUTUBE_RETRY_MAX_ATTEMPTS", 4)
	viper.SetDefault("YOUTUBE_RETRY_BASE_DELAY_MS", 500)
	viper.SetDefault("YOUTUBE_RETRY_MAX_DELAY_MS", 15000)
	viper.SetDefault("YOUTUBE_RETRY_BACKOFF_FACTOR", 2.0)
	viper.SetDefault("YOUTUBE_REQUEST_TIMEOUT_SECONDS", 30)

	viper.SetDefault("ROTATION_SWEEP_CRON", "0 * * * *") // Toda hora cheia
	viper.SetDefault("ROTATION_MAX_CONCURRENT_JOBS", 10)
	viper.SetDefault("ROTATION_SCHEDULER_ENABLED", true)

	viper.SetDefault("POLLING_INTERVAL_MINUTES", 15)
	viper.SetDefault("POLLING_IDLE_BACKOFF_MINUTES", 60)

	viper.SetDefault("SECRET_KEY", "your_secret_key")
	viper.SetDefault("AUTH_SECRET", "your_auth_secret")

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	// O arquivo .env é opcional: em produção tudo vem do ambiente
	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
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

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	// Tentar várias localizações possíveis para o arquivo .env
	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../.env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}

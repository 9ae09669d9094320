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
	App       App       `mapstructure:",squash"`
	Server    Server    `mapstructure:",squash"`
	Database  Database  `mapstructure:",squash"`
	Auth      Auth      `mapstructure:",squash"`
	Serving   Serving   `mapstructure:",squash"`
	Analytics Analytics `mapstructure:",squash"`
	Digest    Digest    `mapstructure:",squash"`
	Mail      Mail      `mapstructure:",squash"`
	Upload    Upload    `mapstructure:",squash"`
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

type Auth struct {
	Secret        string        `mapstructure:"auth_secret"`
	TokenDuration time.Duration `mapstructure:"auth_token_duration"`
}

type Serving struct {
	RateLimitEnabled bool    `mapstructure:"serving_rate_limit_enabled"`
	RateLimitRPS     float64 `mapstructure:"serving_rate_limit_rps"`
	RateLimitBurst   int     `mapstructure:"serving_rate_limit_burst"`
}

type Analytics struct {
	// Fuso de referência para o truncamento dos buckets diários.
	// Fixo por configuração para que a agregação seja reproduzível
	// entre ambientes de implantação.
	Timezone   string `mapstructure:"analytics_timezone"`
	WindowDays int    `mapstructure:"analytics_window_days"`
}

type Digest struct {
	CronSchedule string `mapstructure:"analytics_digest_cron"`
	Enabled      bool   `mapstructure:"analytics_digest_enabled"`
}

type Mail struct {
	Enabled  bool   `mapstructure:"mail_enabled"`
	Host     string `mapstructure:"mail_host"`
	Port     int    `mapstructure:"mail_port"`
	Username string `mapstructure:"mail_username"`
	Password string `mapstructure:"mail_password"`
	From     string `mapstructure:"mail_from"`
}

type Upload struct {
	Dir        string `mapstructure:"upload_dir"`
	MaxSizeMB  int64  `mapstructure:"upload_max_size_mb"`
	PublicPath string `mapstructure:"upload_public_path"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/admanager")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("AUTH_SECRET", "your_secret_key") // ONLY LOCAL
	viper.SetDefault("AUTH_TOKEN_DURATION", "24h")

	viper.SetDefault("SERVING_RATE_LIMIT_ENABLED", true)
	viper.SetDefault("SERVING_RATE_LIMIT_RPS", 100.0/60.0) // 100 requisições por minuto
	viper.SetDefault("SERVING_RATE_LIMIT_BURST", 20)

	viper.SetDefault("ANALYTICS_TIMEZONE", "UTC")
	viper.SetDefault("ANALYTICS_WINDOW_DAYS", 30) // Janela de buckets diários por anúncio

	viper.SetDefault("ANALYTICS_DIGEST_CRON", "0 7 * * *") // Todos os dias às 7h da manhã
	viper.SetDefault("ANALYTICS_DIGEST_ENABLED", false)

	viper.SetDefault("MAIL_ENABLED", false)
	viper.SetDefault("MAIL_HOST", "localhost")
	viper.SetDefault("MAIL_PORT", 587)
	viper.SetDefault("MAIL_FROM", "no-reply@admanager.local")

	viper.SetDefault("UPLOAD_DIR", "./uploads/ads")
	viper.SetDefault("UPLOAD_MAX_SIZE_MB", 5)
	viper.SetDefault("UPLOAD_PUBLIC_PATH", "/uploads/ads")

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

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// Location resolve o fuso de referência configurado para os buckets diários
func (a Analytics) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(a.Timezone)
	if err != nil {
		return nil, fmt.Errorf("fuso horário inválido em ANALYTICS_TIMEZONE: %w", err)
	}
	return loc, nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
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
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}

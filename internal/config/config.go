package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	jsoniter "github.com/json-iterator/go"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App                 App                 `mapstructure:",squash"`
	Server              Server              `mapstructure:",squash"`
	Database            Database            `mapstructure:",squash"`
	Apify               Apify               `mapstructure:",squash"`
	Cache               Cache               `mapstructure:",squash"`
	Render              Render              `mapstructure:",squash"`
	Auth                Auth                `mapstructure:",squash"`
	Metrics             Metrics             `mapstructure:",squash"`
	SnapshotRefreshSync SnapshotRefreshSync `mapstructure:",squash"`

	// Niches mapeia cada nicho para as contas comparadas pelas marcas. Vem de NICHE_CATALOG em JSON.
	Niches map[string][]string `mapstructure:"-"`
}

// maxNicheHandles acompanha o limite de contas de uma comparação
const maxNicheHandles = 10

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

// Apify agrupa a configuração do scraper de Instagram usado como upstream
type Apify struct {
	URL             string        `mapstructure:"apify_url"`
	Token           string        `mapstructure:"apify_token"`
	ProfileActor    string        `mapstructure:"apify_profile_actor"`
	Timeout         time.Duration `mapstructure:"apify_timeout"`
	PollInterval    time.Duration `mapstructure:"apify_poll_interval"`
	MaxPollAttempts uint          `mapstructure:"apify_max_poll_attempts"`
}

// Cache define a janela de validade dos snapshots
type Cache struct {
	TTL time.Duration `mapstructure:"cache_ttl"`
}

type Render struct {
	APIKey    string `mapstructure:"render_api_key"`
	ServiceID string `mapstructure:"render_service_id"`
	URL       string `mapstructure:"render_url"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Auth struct {
	Secret string `mapstructure:"auth_secret"`
}

type Metrics struct {
	Enabled bool `mapstructure:"metrics_enabled"`
}

type SnapshotRefreshSync struct {
	CronSchedule        string        `mapstructure:"snapshot_refresh_sync_cron"`
	RecentWindow        time.Duration `mapstructure:"snapshot_refresh_sync_recent_window"`
	RequestDelaySeconds int           `mapstructure:"snapshot_refresh_sync_request_delay_seconds"`
	MaxConcurrentJobs   int           `mapstructure:"snapshot_refresh_sync_max_concurrent_jobs"`
	Enabled             bool          `mapstructure:"snapshot_refresh_sync_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "") // Vazio usa o cache em memória
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("APIFY_URL", "https://api.apify.com/v2")
	viper.SetDefault("APIFY_TOKEN", "")
	viper.SetDefault("APIFY_PROFILE_ACTOR", "apify~instagram-profile-scraper")
	viper.SetDefault("APIFY_TIMEOUT", "90s")        // Limite de uma coleta completa (run + polling + dataset)
	viper.SetDefault("APIFY_POLL_INTERVAL", "5s")   // Intervalo entre consultas de status do run
	viper.SetDefault("APIFY_MAX_POLL_ATTEMPTS", 60) // Limite de consultas de status do run

	viper.SetDefault("CACHE_TTL", "12h")

	viper.SetDefault("RENDER_API_KEY", "")
	viper.SetDefault("RENDER_SERVICE_ID", "")
	viper.SetDefault("RENDER_URL", "https://api.render.com/v1")

	viper.SetDefault("AUTH_SECRET", "your_secret_key")

	viper.SetDefault("METRICS_ENABLED", true)

	// Defaults para o refresh agendado de snapshots
	viper.SetDefault("SNAPSHOT_REFRESH_SYNC_CRON", "0 */12 * * *")     // A cada 12 horas
	viper.SetDefault("SNAPSHOT_REFRESH_SYNC_RECENT_WINDOW", "24h")     // Contas consultadas nas últimas 24h
	viper.SetDefault("SNAPSHOT_REFRESH_SYNC_REQUEST_DELAY_SECONDS", 2) // 2 segundos entre requisições
	viper.SetDefault("SNAPSHOT_REFRESH_SYNC_MAX_CONCURRENT_JOBS", 5)   // 5 jobs concorrentes
	viper.SetDefault("SNAPSHOT_REFRESH_SYNC_ENABLED", false)           // Habilitar refresh agendado

	viper.SetDefault("NICHE_CATALOG", `{"skincare":[],"fitness":[],"food":[]}`)

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	// Configurar valores padrão
	SetDefaults()

	// Configurar o Viper
	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv() // Isso permite que o Viper leia variáveis de ambiente

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

	niches, err := parseNicheCatalog(viper.GetString("NICHE_CATALOG"))
	if err != nil {
		return nil, err
	}
	config.Niches = niches

	// Token do Apify pode vir dos secret files do Render quando não estiver no ambiente
	if config.Apify.Token == "" && config.Render.ServiceID != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		secrets, err := NewRenderClient(config).ListSecrets(ctx, config.Render.ServiceID)
		if err != nil {
			logrus.WithError(err).Error("config: failed to list render secrets")
			return nil, err
		}

		if token, ok := secrets[apifyTokenSecret]; ok {
			config.Apify.Token = token
		}
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	if config.Database.URL == "" {
		return config, nil
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

// Validate garante que os valores usados pelo núcleo de cache são utilizáveis
func (c *Config) Validate() error {
	if c.Cache.TTL <= 0 {
		return fmt.Errorf("config: CACHE_TTL deve ser positivo, recebido %s", c.Cache.TTL)
	}

	if c.Apify.Timeout <= 0 {
		return fmt.Errorf("config: APIFY_TIMEOUT deve ser positivo, recebido %s", c.Apify.Timeout)
	}

	// Zero tentativas faria o polling do run esperar indefinidamente
	if c.Apify.MaxPollAttempts == 0 {
		c.Apify.MaxPollAttempts = 1
	}

	if c.SnapshotRefreshSync.MaxConcurrentJobs <= 0 {
		c.SnapshotRefreshSync.MaxConcurrentJobs = 1
	}

	if c.Apify.Token == "" {
		logrus.Warn("config: APIFY_TOKEN não configurado, coletas no upstream vão falhar")
	}

	return nil
}

func parseNicheCatalog(raw string) (map[string][]string, error) {
	niches := map[string][]string{}
	if raw == "" {
		return niches, nil
	}

	if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal([]byte(raw), &niches); err != nil {
		return nil, fmt.Errorf("config: NICHE_CATALOG inválido: %w", err)
	}

	for name, handles := range niches {
		if len(handles) > maxNicheHandles {
			return nil, fmt.Errorf("config: nicho %q tem %d contas, máximo %d", name, len(handles), maxNicheHandles)
		}
	}

	return niches, nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	// Obter diretório atual
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	// Tentar várias localizações possíveis para o arquivo .env
	locations := []string{
		filepath.Join(cwd, ".env"),               // Diretório atual
		filepath.Join(filepath.Dir(cwd), ".env"), // Diretório pai
		filepath.Join(cwd, "../../.env"),         // Dois diretórios acima
	}

	for _, location := range locations {
		logrus.Debug("Tentando carregar .env de:", location)
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}

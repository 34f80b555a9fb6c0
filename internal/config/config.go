package config

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/NadeeshaMedagama/modgoviya/internal/log"
)

type Application struct {
	Env       string `mapstructure:"env"        json:"env"`
	Host      string `mapstructure:"host"       json:"host"`
	SecretKey string `mapstructure:"secret_key" json:"-"`
	Port      int    `mapstructure:"port"       json:"port"`
}

type Api struct {
	BaseUrl        string `mapstructure:"base_url"        json:"base_url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" json:"timeout_seconds"`
}

type OAuthProvider struct {
	ClientID     string `mapstructure:"client_id"     json:"client_id"`
	ClientSecret string `mapstructure:"client_secret" json:"-"`
	RedirectUrl  string `mapstructure:"redirect_url"  json:"redirect_url"`
}

type OAuth struct {
	Google   OAuthProvider `mapstructure:"google"   json:"google"`
	Facebook OAuthProvider `mapstructure:"facebook" json:"facebook"`
}

type Checkout struct {
	ProcessingDelayMs int `mapstructure:"processing_delay_ms" json:"processing_delay_ms"`
}

type Otel struct {
	Host string `mapstructure:"host" json:"host"`
	Port int    `mapstructure:"port" json:"port"`
}

type Config struct {
	Application `mapstructure:"application" json:"application"`
	Api         `mapstructure:"api"         json:"api"`
	OAuth       `mapstructure:"oauth"       json:"oauth"`
	Checkout    `mapstructure:"checkout"    json:"checkout"`
	Otel        `mapstructure:"otel"        json:"otel"`
}

func (o Otel) Endpoint() string {
	return fmt.Sprintf("%s:%d", o.Host, o.Port)
}

var (
	once   sync.Once
	config *Config
)

func InitConfig(c context.Context, filename string) *Config {
	cfg := Config{}
	once.Do(func() {
		logger := zerolog.Ctx(c).
			With().
			Str(log.KeyTag, "main InitConfig").
			Str(log.KeyProcess, "init config").
			Str("filename", filename).
			Logger()

		viper.SetConfigName(filename)
		viper.AddConfigPath("./env")
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetEnvPrefix("modgoviya")
		viper.AutomaticEnv()

		viper.SetDefault("application.env", "development")
		viper.SetDefault("application.host", "localhost")
		viper.SetDefault("application.port", 8080)
		viper.SetDefault("api.base_url", "http://localhost:8080/api")
		viper.SetDefault("api.timeout_seconds", 30)
		viper.SetDefault("checkout.processing_delay_ms", 1500)
		viper.SetDefault("otel.host", "otel-collector")
		viper.SetDefault("otel.port", 4317)

		logger = logger.With().Str(log.KeyProcess, "reading config").Logger()
		logger.Info().Msg("reading config")
		err := viper.ReadInConfig()
		if err != nil {
			logger.Warn().Err(err).Msg("config file not found, falling back to defaults and env")
		}
		logger.Info().Msg("read config")

		logger = logger.With().Str(log.KeyProcess, "unmarshaling config").Logger()
		logger.Info().Msg("unmarshaling config")
		err = viper.Unmarshal(&cfg)
		if err != nil {
			err = fmt.Errorf("error unmarshaling config with error=%w", err)
			logger.Fatal().Err(err).Msg(err.Error())
		}
		config = &cfg
		logger = logger.With().Any(log.KeyConfig, cfg).Logger()
		logger.Info().Msg("unmarshaled config")
	})
	return config
}

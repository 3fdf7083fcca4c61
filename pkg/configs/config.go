// Copyright (c) 2023-2025 RapidaAI
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.
package configs

import (
	"log"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// PostgresConfig describes the meetings-table relational store.
type PostgresConfig struct {
	Host               string `mapstructure:"host"`
	Port               int    `mapstructure:"port"`
	DBName             string `mapstructure:"db_name"`
	User               string `mapstructure:"auth__user"`
	Password           string `mapstructure:"auth__password"`
	SSLMode            string `mapstructure:"ssl_mode"`
	MaxOpenConnections int    `mapstructure:"max_open_connection"`
	MaxIdleConnections int    `mapstructure:"max_ideal_connection"`
}

// AssetStoreConfig describes the S3-compatible blob store used for report
// and transcript artifacts.
type AssetStoreConfig struct {
	Bucket          string `mapstructure:"bucket"`
	Region          string `mapstructure:"region"`
	Endpoint        string `mapstructure:"endpoint"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
}

// GeminiConfig describes the LLM (STT + report synthesis) credentials.
type GeminiConfig struct {
	APIKey string `mapstructure:"api_key" validate:"required"`
	Model  string `mapstructure:"model"`
}

// AppConfig is the bot's full runtime configuration, unmarshalled from
// viper.
type AppConfig struct {
	ServiceName string `mapstructure:"service_name" validate:"required"`
	Version     string `mapstructure:"version" validate:"required"`
	LogLevel    string `mapstructure:"log_level" validate:"required"`

	APIHost string `mapstructure:"api_host" validate:"required"`
	APIPort int    `mapstructure:"api_port" validate:"required"`

	DataDir    string `mapstructure:"data_dir" validate:"required"`
	SegmentDir string `mapstructure:"segment_dir" validate:"required"`
	ReportDir  string `mapstructure:"report_dir" validate:"required"`
	FFmpegPath string `mapstructure:"ffmpeg_path"`

	Postgres   PostgresConfig   `mapstructure:"postgres"`
	AssetStore AssetStoreConfig `mapstructure:"asset_store"`
	Gemini     GeminiConfig     `mapstructure:"gemini" validate:"required"`
}

// InitConfig loads `.env` (or $ENV_PATH) plus process environment variables
// into a viper instance, defaults first so an unset env var still resolves.
func InitConfig() (*viper.Viper, error) {
	v := viper.NewWithOptions(viper.KeyDelimiter("__"))

	v.AddConfigPath(".")
	v.SetConfigName(".env")
	if path := os.Getenv("ENV_PATH"); path != "" {
		log.Printf("config: using env path %v", path)
		v.SetConfigFile(path)
	}
	v.SetConfigType("env")
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil && !os.IsNotExist(err) {
		log.Printf("config: no .env file found, reading from environment variables only")
	}

	return v, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVICE_NAME", "meetingbot")
	v.SetDefault("VERSION", "0.0.1")
	v.SetDefault("LOG_LEVEL", "info")

	v.SetDefault("API_HOST", "0.0.0.0")
	v.SetDefault("API_PORT", 9000)

	v.SetDefault("DATA_DIR", "data")
	v.SetDefault("SEGMENT_DIR", "segments")
	v.SetDefault("REPORT_DIR", "temp_reports")
	v.SetDefault("FFMPEG_PATH", "")

	v.SetDefault("GEMINI__MODEL", "gemini-2.5-flash")

	v.SetDefault("POSTGRES__HOST", "localhost")
	v.SetDefault("POSTGRES__PORT", 5432)
	v.SetDefault("POSTGRES__DB_NAME", "meetingbot")
	v.SetDefault("POSTGRES__SSL_MODE", "disable")
	v.SetDefault("POSTGRES__MAX_OPEN_CONNECTION", 10)
	v.SetDefault("POSTGRES__MAX_IDEAL_CONNECTION", 10)
}

// GetApplicationConfig unmarshals and validates the AppConfig from viper,
// failing loudly on any missing required field rather than starting with
// an incomplete configuration.
func GetApplicationConfig(v *viper.Viper) (*AppConfig, error) {
	v.SetEnvKeyReplacer(nil)
	bindEnv(v)

	var cfg AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		log.Printf("config: unmarshal failed: %+v", err)
		return nil, err
	}

	if err := validator.New().Struct(&cfg); err != nil {
		log.Printf("config: validation failed: %+v", err)
		return nil, err
	}
	return &cfg, nil
}

// bindEnv wires the flat environment-variable names operators set
// (GEMINI_API_KEY, GEMINI_MODEL, SUPABASE_*, FFMPEG_PATH, API_HOST,
// API_PORT) onto the nested mapstructure keys viper expects.
func bindEnv(v *viper.Viper) {
	_ = v.BindEnv("gemini__api_key", "GEMINI_API_KEY")
	_ = v.BindEnv("gemini__model", "GEMINI_MODEL")
	_ = v.BindEnv("asset_store__bucket", "SUPABASE_BUCKET")
	_ = v.BindEnv("asset_store__endpoint", "SUPABASE_URL")
	_ = v.BindEnv("asset_store__secret_access_key", "SUPABASE_SERVICE_ROLE_KEY", "SUPABASE_KEY")
	_ = v.BindEnv("ffmpeg_path", "FFMPEG_PATH")
	_ = v.BindEnv("api_host", "API_HOST")
	_ = v.BindEnv("api_port", "API_PORT")
	_ = v.BindEnv("log_level", "LOG_LEVEL")
}

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/factuurlijk/factuurlijk/internal/types"
)

type Configuration struct {
	Deployment DeploymentConfig `validate:"required"`
	Server     ServerConfig     `validate:"required"`
	Logging    LoggingConfig    `validate:"required"`
	Postgres   PostgresConfig
	Storage    StorageConfig
	Pdf        PdfConfig
	Export     ExportConfig
}

type DeploymentConfig struct {
	Mode types.RunMode `validate:"required"`
}

type ServerConfig struct {
	Address string `validate:"required"`
}

type LoggingConfig struct {
	Level types.LogLevel `validate:"required"`
}

type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// StorageConfig configures the blob store used for logos and generated PDFs.
type StorageConfig struct {
	Enabled    bool
	Region     string
	LogoBucket BucketConfig
	PdfBucket  BucketConfig
}

type BucketConfig struct {
	Bucket    string
	KeyPrefix string
}

// PdfConfig configures the document snapshot pipeline.
type PdfConfig struct {
	TypstBinaryPath string
	FontDir         string
	TemplateDir     string
	OutputDir       string
}

// ExportConfig tunes the bulk export path.
type ExportConfig struct {
	// InterItemDelayMs is the pause between sequential PDF exports so the
	// snapshot pipeline is not overwhelmed.
	InterItemDelayMs int
}

func NewConfig() (*Configuration, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./internal/config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/factuurlijk")

	v.SetEnvPrefix("FACTUURLIJK")
	v.SetEnvKeyReplacer(strings.NewReplacer(
		".", "_",
		"-", "_",
	))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, err
		}
	}

	var config Configuration
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c Configuration) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}

// GetDefaultConfig returns a default configuration for local development
// This is useful for running scripts or other non-web applications
func GetDefaultConfig() *Configuration {
	return &Configuration{
		Deployment: DeploymentConfig{Mode: types.ModeLocal},
		Server:     ServerConfig{Address: ":8080"},
		Logging:    LoggingConfig{Level: types.LogLevelDebug},
		Pdf: PdfConfig{
			TypstBinaryPath: "typst",
			FontDir:         "assets/fonts",
			TemplateDir:     "internal/typst/templates",
		},
		Export: ExportConfig{InterItemDelayMs: 150},
	}
}

func (c PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"user=%s password=%s dbname=%s host=%s port=%d sslmode=%s",
		c.User,
		c.Password,
		c.DBName,
		c.Host,
		c.Port,
		c.SSLMode,
	)
}

// Управление конфигурацией сервиса редактора из переменных окружения.
// Ключ лицензии и адрес загрузки файлов не зашиты в код, а передаются через окружение.
//
// Основные возможности:
//   - Загрузка конфигурации из переменных окружения с использованием тегов struct.
//   - Валидация обязательных переменных (WEB_URL).
//   - Преобразование типов данных из переменных окружения (string, int, bool).
//   - Маскировка секретных значений (ключи, пароли, токены) в логах.
//   - Значения по умолчанию для адресов, хранилища и ограничений загрузки.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strings"
)

const (
	DefaultListenAddr      = ":8080"
	DefaultMetricsAddr     = ":2112"
	DefaultDatabaseDSN     = "file:richtext.db"
	DefaultStoragePath     = "./uploads"
	DefaultUploadMaxSizeMB = 10
	DefaultImageMaxWidth   = 1920

	UploadPath = "/api/editor/upload/"
)

var ErrWebURLRequired = errors.New("WEB_URL is required")

type Config struct {
	LicenseKey string `env:"EDITOR_LICENSE_KEY"`
	Language   string `env:"EDITOR_LANGUAGE"`
	UploadURL  string `env:"EDITOR_UPLOAD_URL"`

	AWSRegion     string `env:"AWS_REGION"`
	AWSAccessKey  string `env:"AWS_ACCESS_KEY_ID"`
	AWSSecretKey  string `env:"AWS_SECRET_ACCESS_KEY"`
	AWSEndpoint   string `env:"AWS_S3_ENDPOINT_URL"`
	AWSBucketName string `env:"AWS_S3_BUCKET_NAME"`

	StoragePath     string `env:"STORAGE_PATH"`
	UploadMaxSizeMB int    `env:"UPLOAD_MAX_SIZE_MB"`
	ImageMaxWidth   int    `env:"IMAGE_MAX_WIDTH"`
	FontsPath       string `env:"EXPORT_FONTS_PATH"`

	DatabaseDSN string `env:"DATABASE_URL"`

	WebURLRaw string `env:"WEB_URL"`
	WebURL    *url.URL

	CloudServicesEnvID     string `env:"CLOUD_SERVICES_ENV_ID"`
	CloudServicesAccessKey string `env:"CLOUD_SERVICES_ACCESS_KEY"`

	FrontFilesPath string `env:"FRONT_PATH"`

	ListenAddr  string `env:"LISTEN_ADDR"`
	MetricsAddr string `env:"METRICS_ADDR"`

	AssetsCleanerDisabled bool `env:"ASSETS_CLEANER_DISABLED"`

	ExternalLimiterRaw string `env:"EXTERNAL_LIMITER_URL"`
	ExternalLimiter    *url.URL
}

// Load загружает конфигурацию из переменных окружения и подставляет значения по умолчанию.
// Без WEB_URL возвращает ErrWebURLRequired.
func Load() (*Config, error) {
	config := &Config{}

	envConfig("env", config)

	if config.WebURLRaw == "" {
		return nil, ErrWebURLRequired
	}
	var err error
	config.WebURL, err = url.Parse(config.WebURLRaw)
	if err != nil {
		return nil, fmt.Errorf("WEB_URL incorrect: %w", err)
	}

	if config.ExternalLimiterRaw != "" {
		config.ExternalLimiter, err = url.Parse(config.ExternalLimiterRaw)
		if err != nil {
			return nil, fmt.Errorf("EXTERNAL_LIMITER_URL incorrect: %w", err)
		}
	}

	config.setDefaults()
	return config, nil
}

// ReadConfig загружает конфигурацию приложения. Если WEB_URL не задан или некорректен, приложение завершает работу с ошибкой.
func ReadConfig() *Config {
	config, err := Load()
	if err != nil {
		slog.Error("Read config", "err", err)
		os.Exit(1)
	}
	return config
}

func (c *Config) setDefaults() {
	if c.ListenAddr == "" {
		c.ListenAddr = DefaultListenAddr
	}
	if c.MetricsAddr == "" {
		c.MetricsAddr = DefaultMetricsAddr
	}
	if c.DatabaseDSN == "" {
		c.DatabaseDSN = DefaultDatabaseDSN
	}
	if c.StoragePath == "" {
		c.StoragePath = DefaultStoragePath
	}
	if c.UploadMaxSizeMB <= 0 {
		c.UploadMaxSizeMB = DefaultUploadMaxSizeMB
	}
	if c.ImageMaxWidth <= 0 {
		c.ImageMaxWidth = DefaultImageMaxWidth
	}
	if c.UploadURL == "" && c.WebURL != nil {
		c.UploadURL = c.WebURL.JoinPath(UploadPath).String()
	}
}

// UploadMaxSize - ограничение размера загружаемого файла в байтах.
func (c *Config) UploadMaxSize() int64 {
	return int64(c.UploadMaxSizeMB) << 20
}

// S3Enabled сообщает, что файлы хранятся в объектном хранилище, а не в локальном каталоге.
func (c *Config) S3Enabled() bool {
	return c.AWSEndpoint != ""
}

// CloudServicesEnabled сообщает, что настроена выдача токенов облачных сервисов.
func (c *Config) CloudServicesEnabled() bool {
	return c.CloudServicesEnvID != "" && c.CloudServicesAccessKey != ""
}

func isSecret(fieldName string) bool {
	name := strings.ToLower(fieldName)
	for _, s := range []string{"pass", "secret", "token", "key"} {
		if strings.Contains(name, s) {
			return true
		}
	}
	return false
}

// Secure secrets in log
func mask(value string) string {
	runes := []rune(value)
	if len(runes) <= 2 {
		return strings.Repeat("*", len(runes))
	}
	return string(runes[0]) + strings.Repeat("*", len(runes)-2) + string(runes[len(runes)-1])
}

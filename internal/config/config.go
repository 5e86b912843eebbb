// Package config предоставляет структуры и функцию для парсинга и загрузки конфига.
// Конфигурация читается из YAML-файла (CONFIG_PATH) либо напрямую из переменных
// окружения; ключи внешних интеграций опциональны — их отсутствие отключает
// соответствующий коннектор, не затрагивая основное хранилище.
package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config общая структура для хранения настроек.
type Config struct {
	Env                     string `yaml:"env" env:"ENV" env-default:"local"`
	StorageConnectionString string `yaml:"storage_connection_string" env:"STORAGE_CONNECTION_STRING" env-required:"true"`
	MigrationsPath          string `yaml:"migrations_path" env:"MIGRATIONS_PATH" env-default:"./migrations"`
	HTTPServer              `yaml:"http_server"`
	Hubspot                 `yaml:"hubspot"`
	Calcom                  `yaml:"calcom"`
	Retell                  `yaml:"retell"`
}

// HTTPServer структура для настройки сервера.
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp" env:"ADDRESS_HTTP" env-default:":8080"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp" env:"TIMEOUT_HTTP" env-default:"30s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env:"IDLE_TIMEOUT" env-default:"60s"`
}

// Hubspot структура для настройки CRM-коннектора.
// Пустой AccessToken отключает синхронизацию с HubSpot.
type Hubspot struct {
	AccessToken string `yaml:"access_token" env:"HUBSPOT_API_KEY"`
}

// Calcom структура для настройки коннектора календаря Cal.com.
// Пустой APIKey отключает создание бронирований.
type Calcom struct {
	APIKey        string `yaml:"api_key" env:"CAL_API_KEY"`
	EventTypeSlug string `yaml:"event_type_slug" env:"CAL_EVENT_TYPE_SLUG" env-default:"30min"`
	Username      string `yaml:"username" env:"CAL_USERNAME" env-default:"gretta-ai"`
}

// Retell структура для настройки коннектора голосовых сессий Retell AI.
// Пустой APIKey отключает создание web-звонков.
type Retell struct {
	APIKey  string `yaml:"api_key" env:"RETELL_API_KEY"`
	AgentID string `yaml:"agent_id" env:"RETELL_AGENT_ID" env-default:"agent_c66728951e5ce6e61b79b01af9"`
}

// MustLoad загружает конфиг и завершает процесс при ошибке.
// Если CONFIG_PATH не задан, конфигурация собирается из переменных окружения.
func MustLoad() *Config {
	var cfg Config

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			log.Fatalf("cannot read config from environment: %s", err)
		}
		return &cfg
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("file: %s - does not exist", configPath)
	}
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return &cfg
}

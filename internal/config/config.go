package config

import (
	"log"
	"os"
	"strconv"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`

	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`

	JWT struct {
		Secret string `yaml:"secret"`
		TTL    int    `yaml:"ttl"` // минуты
	} `yaml:"jwt"`

	Matching struct {
		CacheTTLSeconds        int     `yaml:"cache_ttl_seconds"`        // TTL мемоизации findMatches
		DefaultLimit           int     `yaml:"default_limit"`            // сколько матчей отдаем по умолчанию
		MinScore               float64 `yaml:"min_score"`                // порог отсечения результатов
		RetrainIntervalMinutes int     `yaml:"retrain_interval_minutes"` // период перетренировки CF-модели
		SimilarBrands          int     `yaml:"similar_brands"`           // k ближайших брендов в CF
	} `yaml:"matching"`
}

var AppConfig *Config

func LoadConfig() {
	var cfg Config

	dbURL := os.Getenv("DATABASE_URL")
	serverEnv := os.Getenv("SERVER_ENV")
	portStr := os.Getenv("SERVER_PORT")
	jwtSecret := os.Getenv("JWT_SECRET")

	if dbURL == "" {
		log.Println("Загрузка из config.yaml (режим НЕ-тест)")

		configPath := os.Getenv("CONFIG_PATH")
		if configPath == "" {
			configPath = "config/config.yaml"
		}

		f, err := os.Open(configPath)
		if err != nil {
			log.Fatalf("Failed to open config file at %s: %v", configPath, err)
		}
		defer f.Close()

		decoder := yaml.NewDecoder(f)
		if err := decoder.Decode(&cfg); err != nil {
			log.Fatalf("Failed to parse config file at %s: %v", configPath, err)
		}

		applyMatchingDefaults(&cfg)
		AppConfig = &cfg
		return
	}

	log.Println("✅ Загрузка конфигурации из ПЕРЕМЕННЫХ ОКРУЖЕНИЯ (режим теста)")

	cfg.Database.DSN = dbURL
	cfg.Server.Env = serverEnv
	cfg.Server.Port, _ = strconv.Atoi(portStr)
	cfg.JWT.Secret = jwtSecret
	cfg.JWT.TTL = 60

	cfg.Redis.Addr = os.Getenv("REDIS_ADDR")

	applyMatchingDefaults(&cfg)
	AppConfig = &cfg
}

// applyMatchingDefaults проставляет дефолты движка, если секция matching
// не заполнена (или заполнена частично)
func applyMatchingDefaults(cfg *Config) {
	if cfg.Matching.CacheTTLSeconds == 0 {
		cfg.Matching.CacheTTLSeconds = 3600
	}
	if cfg.Matching.DefaultLimit == 0 {
		cfg.Matching.DefaultLimit = 20
	}
	if cfg.Matching.MinScore == 0 {
		cfg.Matching.MinScore = 50.0
	}
	if cfg.Matching.RetrainIntervalMinutes == 0 {
		cfg.Matching.RetrainIntervalMinutes = 60
	}
	if cfg.Matching.SimilarBrands == 0 {
		cfg.Matching.SimilarBrands = 5
	}
}

func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}

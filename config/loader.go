package config

import "os"

// Load reads configuration from environment variables as raw strings
// Components handle validation and defaults during initialization
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         os.Getenv("SERVER_PORT"),
			Environment:  os.Getenv("SERVER_ENV"),
			ReadTimeout:  os.Getenv("SERVER_READ_TIMEOUT"),
			WriteTimeout: os.Getenv("SERVER_WRITE_TIMEOUT"),
		},
		Database: DatabaseConfig{
			Host:     os.Getenv("DB_HOST"),
			Port:     os.Getenv("DB_PORT"),
			User:     os.Getenv("DB_USER"),
			Password: os.Getenv("DB_PASSWORD"),
			DBName:   os.Getenv("DB_NAME"),
			SSLMode:  os.Getenv("DB_SSLMODE"),
		},
		JWT: JWTConfig{
			Secret:     os.Getenv("JWT_SECRET"),
			Expiration: os.Getenv("JWT_EXPIRATION"),
		},
		Worker: WorkerConfig{
			SweepInterval: os.Getenv("WORKER_SWEEP_INTERVAL"),
		},
		Logging: LoggingConfig{
			Level:       os.Getenv("LOG_LEVEL"),
			Format:      os.Getenv("LOG_FORMAT"),
			ServiceName: os.Getenv("SERVICE_NAME"),
		},
		Catalog: CatalogConfig{
			BaseURL:     os.Getenv("CATALOG_BASE_URL"),
			APIKey:      os.Getenv("CATALOG_API_KEY"),
			HTTPTimeout: os.Getenv("CATALOG_HTTP_TIMEOUT"),
			Language:    os.Getenv("CATALOG_LANGUAGE"),
		},
		Recommendation: RecommendationConfig{
			CacheTTL:           os.Getenv("RECOMMENDATION_CACHE_TTL"),
			HiddenGemsCacheTTL: os.Getenv("HIDDEN_GEMS_CACHE_TTL"),
			DismissalTTL:       os.Getenv("DISMISSAL_TTL"),
			MaxPerGenre:        os.Getenv("RECOMMENDATION_MAX_PER_GENRE"),
			TargetCount:        os.Getenv("RECOMMENDATION_TARGET_COUNT"),
		},
	}
}

package config

// Config contains all configuration grouped by domain
type Config struct {
	Server         ServerConfig
	Database       DatabaseConfig
	JWT            JWTConfig
	Worker         WorkerConfig
	Logging        LoggingConfig
	Catalog        CatalogConfig
	Recommendation RecommendationConfig
}

// All config structs use string fields only - packages handle conversion during initialization
type ServerConfig struct {
	Port         string
	Environment  string
	ReadTimeout  string
	WriteTimeout string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type JWTConfig struct {
	Secret     string
	Expiration string
}

type WorkerConfig struct {
	SweepInterval string
}

type LoggingConfig struct {
	Level       string
	Format      string
	ServiceName string
}

type CatalogConfig struct {
	BaseURL     string
	APIKey      string
	HTTPTimeout string
	Language    string
}

type RecommendationConfig struct {
	CacheTTL           string
	HiddenGemsCacheTTL string
	DismissalTTL       string
	MaxPerGenre        string
	TargetCount        string
}

package config

const (
	defaultTargetYear = 2024
	defaultSeedUsers  = 200
)

// Config is the top-level configuration body.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	DB      DBConfig      `mapstructure:"database"`
	Redis   RedisConfig   `mapstructure:"redis"`
	Metrics MetricsConfig `mapstructure:"metrics"`
	Seed    SeedConfig    `mapstructure:"seed"`
}

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// DBConfig holds the MySQL DSN and pool limits.
type DBConfig struct {
	DSN         string `mapstructure:"dsn"`
	MaxIdle     int    `mapstructure:"max_idle"`
	MaxOpen     int    `mapstructure:"max_open"`
	MaxLifetime int    `mapstructure:"max_lifetime"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

// MetricsConfig drives the aggregation job.
type MetricsConfig struct {
	// Year is the reporting year the aggregator walks, one checkpoint
	// per month end.
	Year int `mapstructure:"year"`
	// RefreshSpec overrides the cron schedule of the refresh job.
	RefreshSpec string `mapstructure:"refresh_spec"`
}

// SeedConfig drives demo fixture generation.
type SeedConfig struct {
	Users    int    `mapstructure:"users"`
	RandSeed uint64 `mapstructure:"rand_seed"`
}

package backend

// Config selects and parameterizes a storage backend.
type Config struct {
	// Type names a registered backend, e.g. "memory", "sqlite", "postgres"
	// or "redis".
	Type string `mapstructure:"type"`

	// DSN is the connection string of SQL backends: a file path for
	// sqlite, a connection URL for postgres.
	DSN string `mapstructure:"dsn"`

	Redis RedisConfig `mapstructure:"redis"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

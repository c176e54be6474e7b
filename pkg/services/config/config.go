package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/edec-tools/peppol-reporting/pkg/models/domain"
	"github.com/edec-tools/peppol-reporting/pkg/store/backend"
)

type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// ReporterConfig identifies the service provider the reports are built for.
type ReporterConfig struct {
	ID     string `mapstructure:"id"`
	Scheme string `mapstructure:"scheme"`
}

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Backend  backend.Config `mapstructure:"backend"`
	Reporter ReporterConfig `mapstructure:"reporter"`
}

// Load reads the application config file. An empty path yields the
// defaults: in-memory backend, CertSubjectCN reporter scheme, port 8080.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("backend.type", "memory")
	v.SetDefault("reporter.scheme", domain.ServiceProviderIDScheme)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse reporting config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) ReporterID() domain.ScopedID {
	return domain.ScopedID{SchemeID: c.Reporter.Scheme, Value: c.Reporter.ID}
}

package config

import (
	"fmt"

	"gopkg.in/ini.v1"
)

// Property keys understood by ApplyProperties. They match the
// configuration surface of Java-style application.properties files.
const (
	PropReporterID    = "peppol.reporting.reporter.id"
	PropReporterSchem = "peppol.reporting.reporter.scheme"
	PropBackendType   = "peppol.reporting.backend.type"
	PropBackendDSN    = "peppol.reporting.backend.dsn"
	PropRedisAddr     = "peppol.reporting.backend.redis.addr"
	PropRedisPassword = "peppol.reporting.backend.redis.password"
	PropRedisDB       = "peppol.reporting.backend.redis.db"
)

func override(section *ini.Section, name string, target *string) {
	if section.HasKey(name) {
		*target = section.Key(name).String()
	}
}

// ApplyProperties overlays a properties file onto cfg. Only keys present in
// the file are applied, so the file may override a single value.
func ApplyProperties(cfg *Config, path string) error {
	file, err := ini.Load(path)
	if err != nil {
		return fmt.Errorf("failed to read properties file: %w", err)
	}
	section := file.Section("")

	override(section, PropReporterID, &cfg.Reporter.ID)
	override(section, PropReporterSchem, &cfg.Reporter.Scheme)
	override(section, PropBackendType, &cfg.Backend.Type)
	override(section, PropBackendDSN, &cfg.Backend.DSN)
	override(section, PropRedisAddr, &cfg.Backend.Redis.Addr)
	override(section, PropRedisPassword, &cfg.Backend.Redis.Password)

	if section.HasKey(PropRedisDB) {
		db, err := section.Key(PropRedisDB).Int()
		if err != nil {
			return fmt.Errorf("invalid %s: %w", PropRedisDB, err)
		}
		cfg.Backend.Redis.DB = db
	}
	return nil
}

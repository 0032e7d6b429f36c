package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Storage  StorageConfig  `mapstructure:"storage"  validate:"required"`
	Reminder ReminderConfig `mapstructure:"reminder" validate:"required"`
}

// ServerConfig contains all HTTP server related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// StorageConfig selects and configures the snapshot persister.
//
// Driver "file" persists the state document to SnapshotPath; driver
// "postgres" persists it to the single-row app_state table addressed by
// DatabaseURL; driver "none" disables persistence entirely (useful for
// tests).
type StorageConfig struct {
	Driver       string `mapstructure:"driver"        validate:"required,oneof=file postgres none"`
	SnapshotPath string `mapstructure:"snapshot_path" validate:"required_if=Driver file"`
	DatabaseURL  string `mapstructure:"database_url"  validate:"required_if=Driver postgres"`
}

// ReminderConfig contains the tunables for reminder derivation.
type ReminderConfig struct {
	// Window is the lookback distance, in the same units as mileage,
	// over which an upcoming reminder's urgency ramps to 1.
	Window int64 `mapstructure:"window" validate:"required,gt=0"`
}

package config

// Config holds all application configuration, grouped by concern.
type Config struct {
	Server ServerConfig `mapstructure:"server" validate:"required"`
	Auth   AuthConfig   `mapstructure:"auth"   validate:"required"`
}

// ServerConfig contains the HTTP server settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`

	// BasePrefix is the path prefix all API routes are mounted under.
	BasePrefix string `mapstructure:"base_prefix" validate:"required,startswith=/"`
}

// AuthConfig selects and parameterizes the guard protecting guarded routes.
type AuthConfig struct {
	// Mode picks the guard implementation: "sentinel" is the demo
	// bearer-token seam, "jwt" verifies HS256-signed tokens.
	Mode string `mapstructure:"mode" validate:"required,oneof=sentinel jwt"`

	// JWTSecret signs and verifies tokens in jwt mode; required there,
	// unused otherwise.
	JWTSecret string `mapstructure:"jwt_secret" validate:"omitempty,min=32"`
}

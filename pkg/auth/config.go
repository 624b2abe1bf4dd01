package auth

import "time"

// Config holds token verification settings.
type Config struct {
	// SecretKey signs and verifies tokens. Required.
	SecretKey string `yaml:"secret_key" env:"JWT_SECRET_KEY,required"`
	// Algorithm selects the HMAC signing algorithm: HS256, HS384 or HS512.
	Algorithm string `yaml:"algorithm" env:"JWT_ALGORITHM" envDefault:"HS256"`
	// Issuer, when set, is stamped on issued tokens and enforced on parse.
	Issuer string `yaml:"issuer" env:"JWT_ISSUER"`
	// Audience, when set, is stamped on issued tokens and enforced on parse.
	Audience string `yaml:"audience" env:"JWT_AUDIENCE"`
	// Leeway tolerates clock skew when validating time-based claims.
	Leeway time.Duration `yaml:"leeway" env:"JWT_LEEWAY" envDefault:"0s"`
}

// DefaultConfig returns a config with sane defaults.
// SecretKey must still be provided by the caller.
func DefaultConfig() Config {
	return Config{
		Algorithm: "HS256",
	}
}

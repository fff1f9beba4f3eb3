package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all server configuration
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Auth    AuthConfig    `yaml:"auth"`
	Redis   RedisConfig   `yaml:"redis"`
	Session SessionConfig `yaml:"session"`
	Grid    GridConfig    `yaml:"grid"`
	Lookup  LookupConfig  `yaml:"lookup"`
}

// ServerConfig holds server-specific settings
type ServerConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	TickRate int    `yaml:"tick_rate"` // Hz
}

// AuthConfig holds JWT authentication settings. When Enabled is false
// the server admits unauthenticated guest connections (local play and
// development).
type AuthConfig struct {
	Enabled             bool   `yaml:"enabled"`
	Issuer              string `yaml:"issuer"`
	PublicKeyURL        string `yaml:"public_key_url"`
	PublicKeyRefreshHrs int    `yaml:"public_key_refresh_hours"`
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Address         string `yaml:"address"`
	Password        string `yaml:"password"`
	DB              int    `yaml:"db"`
	BlacklistPrefix string `yaml:"blacklist_prefix"`
}

// SessionConfig holds game session settings
type SessionConfig struct {
	MaxPlayers int `yaml:"max_players"`
}

// GridConfig controls world generation and topology construction.
type GridConfig struct {
	// Subdivisions is the icosahedron lattice frequency; the globe has
	// 20*Subdivisions² cells.
	Subdivisions int `yaml:"subdivisions"`

	// Index selects the tile index strategy: "sparse" or "dense".
	// Dense trades memory for lookup speed and suits generated globes,
	// whose ids fill their (face, local) space completely.
	Index string `yaml:"index"`

	// MaxPopulation seeds every cell's population capacity.
	MaxPopulation int32 `yaml:"max_population"`
}

// LookupConfig controls the direction-to-cell search grid.
type LookupConfig struct {
	BucketsPerAxis int `yaml:"buckets_per_axis"`
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.ApplyDefaults()

	if cfg.Grid.Index != "sparse" && cfg.Grid.Index != "dense" {
		return nil, fmt.Errorf("unknown grid index strategy %q", cfg.Grid.Index)
	}

	return &cfg, nil
}

// ApplyDefaults fills unset fields with workable values.
func (cfg *Config) ApplyDefaults() {
	if cfg.Server.TickRate == 0 {
		cfg.Server.TickRate = 20
	}
	if cfg.Auth.PublicKeyRefreshHrs == 0 {
		cfg.Auth.PublicKeyRefreshHrs = 24
	}
	if cfg.Session.MaxPlayers == 0 {
		cfg.Session.MaxPlayers = 100
	}
	if cfg.Grid.Subdivisions == 0 {
		cfg.Grid.Subdivisions = 16
	}
	if cfg.Grid.Index == "" {
		cfg.Grid.Index = "sparse"
	}
	if cfg.Grid.MaxPopulation == 0 {
		cfg.Grid.MaxPopulation = 100
	}
	if cfg.Lookup.BucketsPerAxis == 0 {
		cfg.Lookup.BucketsPerAxis = 32
	}
}

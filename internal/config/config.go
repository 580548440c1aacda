package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Config carrega tudo do ambiente. Os defaults são inseguros de propósito
// (uso em desenvolvimento) e DEVEM ser sobrescritos em produção.
type Config struct {
	DatabaseDSN string `env:"DATABASE_URL" envDefault:"barbearia.db"`
	JWTSecret   string `env:"JWT_SECRET" envDefault:"019283"`
	ServerPort  string `env:"PORT" envDefault:"3001"`

	AdminUser string `env:"ADMIN_USER" envDefault:"adminmendes"`
	AdminPass string `env:"ADMIN_PASS" envDefault:"mendesbarber01"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load lê um .env se existir e depois o ambiente.
func Load() (*Config, error) {
	if _, err := os.Stat(".env"); !os.IsNotExist(err) {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("failed to load .env: %w", err)
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	return cfg, nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%s", c.ServerPort)
}

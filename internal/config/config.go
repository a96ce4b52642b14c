package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

var ErrInvalidSendBuffer = errors.New("match.send-buffer must be at least 1")

type Config struct {
	LogLevel       string   `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort       string   `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	SocketPort     string   `yaml:"socket-port" env:"SOCKET_PORT" env-default:"8080"`
	AllowedOrigins []string `yaml:"allowed-origins" env:"ALLOWED_ORIGINS" env-separator:","`
	Redis          Redis    `yaml:"redis"`
	Match          Match    `yaml:"match"`
}

type Redis struct {
	Enabled      bool   `yaml:"enabled" env:"REDIS_ENABLED" env-default:"false"`
	Host         string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port         string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	ResultsLimit int    `yaml:"results-limit" env-default:"100"`
}

type Match struct {
	// ForfeitAfter is how long a disconnected seat may stay away before it forfeits; 0 waits forever.
	ForfeitAfter time.Duration `yaml:"forfeit-after" env:"MATCH_FORFEIT_AFTER" env-default:"0s"`
	SendBuffer   int           `yaml:"send-buffer" env-default:"64"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

func Load(path string) (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	// zero is replaced by env-default; a queue with no capacity would drop every event
	if config.Match.SendBuffer < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSendBuffer, config.Match.SendBuffer)
	}

	return config, nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}

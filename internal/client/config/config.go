// Package config holds the CLI settings: defaults, then environment
// variables, then command-line flags.
package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	ServerAddr string        `env:"AUTHKEEPER_ADDR"`
	Token      string        `env:"AUTHKEEPER_TOKEN"`
	Timeout    time.Duration `env:"AUTHKEEPER_TIMEOUT"`
}

func (c *Config) LoadDefaults() {
	c.ServerAddr = "127.0.0.1:50051"
	c.Timeout = 10 * time.Second
}

// LoadConfig reads the process environment and arguments. It returns the
// arguments left after the flags, the first of which is the command.
func LoadConfig() (*Config, []string, error) {
	return load(os.Args[1:], nil, os.Stderr)
}

// load is LoadConfig with explicit inputs. A nil environ means the process
// environment. Usage is written to usage on -h.
func load(args []string, environ map[string]string, usage io.Writer) (*Config, []string, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	opts := env.Options{}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, nil, fmt.Errorf("environment: %w", err)
	}

	fs := flag.NewFlagSet("authkeeper-cli", flag.ContinueOnError)
	fs.SetOutput(usage)
	fs.StringVar(&cfg.ServerAddr, "a", cfg.ServerAddr, "address and port of the server")
	fs.StringVar(&cfg.Token, "t", cfg.Token, "bearer token for the me command")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "per-request timeout")

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return cfg, fs.Args(), nil
}

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables overlaid on the file configuration.
const (
	EnvTargetHost   = "KUBEPROV_TARGET_HOST"
	EnvTargetUser   = "KUBEPROV_TARGET_USER"
	EnvSSHKeyFile   = "KUBEPROV_SSH_KEY_FILE"
	EnvOperatorUser = "KUBEPROV_OPERATOR_USER"
	EnvS3AccessKey  = "KUBEPROV_S3_ACCESS_KEY"
	EnvS3SecretKey  = "KUBEPROV_S3_SECRET_KEY"
)

// ErrConfigNotFound is returned by FindConfigFile when no file exists.
var ErrConfigNotFound = errors.New("config file not found")

// Load resolves, reads, overlays and validates the configuration.
//
// An empty path triggers a lookup of kubeprov.yaml from the working
// directory upwards. When nothing is found the defaults are used.
func Load(path string) (*Config, error) {
	if path == "" {
		found, err := FindConfigFile()
		switch {
		case errors.Is(err, ErrConfigNotFound):
			cfg := Default()
			cfg.ApplyEnv()
			if err := cfg.Validate(); err != nil {
				return nil, fmt.Errorf("configuration validation failed: %w", err)
			}
			return cfg, nil
		case err != nil:
			return nil, err
		}
		path = found
	}

	return LoadFile(path)
}

// LoadFile reads a configuration file on top of the defaults, applies the
// environment overlay and validates the result.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}

	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// Parse decodes YAML on top of the defaults without validating.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return cfg, nil
}

// ApplyEnv overlays environment variables on the configuration.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvTargetHost); v != "" {
		c.Target.Host = v
	}
	if v := os.Getenv(EnvTargetUser); v != "" {
		c.Target.User = v
	}
	if v := os.Getenv(EnvSSHKeyFile); v != "" {
		c.Target.PrivateKeyPath = v
	}
	if v := os.Getenv(EnvOperatorUser); v != "" {
		c.OperatorUser = v
	}
	if c.OperatorUser == "" && c.Target.IsLocal() {
		c.OperatorUser = os.Getenv("SUDO_USER")
	}
	c.Artifacts.S3.AccessKey = os.Getenv(EnvS3AccessKey)
	c.Artifacts.S3.SecretKey = os.Getenv(EnvS3SecretKey)
}

// LoadDotEnv loads variables from the given .env files into the process
// environment. Missing files are ignored; existing variables win.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
	}
	return nil
}

// FindConfigFile searches the working directory and its parents for kubeprov.yaml.
func FindConfigFile() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current directory: %w", err)
	}

	dir := cwd
	for {
		path := filepath.Join(dir, DefaultConfigFilename)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("%w: %s", ErrConfigNotFound, DefaultConfigFilename)
}

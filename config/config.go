package config

import (
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type ManagerConfig struct {
	StorageDir string          `yaml:"storageDir"`
	Generator  GeneratorConfig `yaml:"generator"`
}

type GeneratorConfig struct {
	Package         string `yaml:"package"`
	RequiredVersion string `yaml:"requiredVersion"`
}

func Default() (*ManagerConfig, error) {
	home, err := homedir.Dir()
	if err != nil {
		return nil, errors.Wrap(err, "failed to resolve home directory")
	}
	return &ManagerConfig{
		StorageDir: filepath.Join(home, ".hlf-gateway-manager"),
		Generator: GeneratorConfig{
			Package:         "generator-fabric",
			RequiredVersion: "^2.0.0",
		},
	}, nil
}

// Load reads a manager config from path, falling back to defaults for any
// field the file does not set. An empty path returns the defaults.
func Load(path string) (*ManagerConfig, error) {
	cfg, err := Default()
	if err != nil {
		return nil, err
	}
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read config %s", path)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "failed to parse config %s", path)
	}
	return cfg, nil
}

// RegistryPath is the file backing the gateway registry.
func (c *ManagerConfig) RegistryPath() string {
	return filepath.Join(c.StorageDir, "gateways.yaml")
}

// WalletsDir holds one directory per local wallet.
func (c *ManagerConfig) WalletsDir() string {
	return filepath.Join(c.StorageDir, "wallets")
}

// ProfilesDir holds the managed copies of gateway connection profiles,
// one directory per gateway.
func (c *ManagerConfig) ProfilesDir() string {
	return filepath.Join(c.StorageDir, "gateways")
}

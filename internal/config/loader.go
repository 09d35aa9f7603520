package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/quarry-dev/quarry/internal/debug"
	"github.com/quarry-dev/quarry/internal/template/model"
)

// LoadBundleConfig reads and validates bundle.yaml from a bundle
// directory.
func LoadBundleConfig(bundleDir string) (*model.BundleConfig, error) {
	path := filepath.Join(bundleDir, model.BundleConfigFile)
	debug.Debug("[config] loading %s", path)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, NewConfigErrorWithCause(ConfigNotFound, path,
				model.BundleConfigFile+" not found in bundle directory", err)
		}
		return nil, NewConfigErrorWithCause(ConfigInvalid, path,
			"failed to read "+model.BundleConfigFile, err)
	}

	var cfg model.BundleConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, NewConfigErrorWithCause(ConfigInvalid, path, "invalid YAML syntax", err)
	}

	applyDefaults(&cfg)

	if err := ValidateBundleConfig(&cfg, path); err != nil {
		return nil, err
	}

	debug.Debug("[config] bundle %s v%s, %d variable(s)", cfg.Name, cfg.Version, len(cfg.Vars))
	return &cfg, nil
}

// applyDefaults fills in omitted optional fields.
func applyDefaults(cfg *model.BundleConfig) {
	for name, def := range cfg.Vars {
		if def.Type == "" {
			def.Type = model.VarTypeString
		}
		if def.Prompt == "" {
			def.Prompt = name
		}
		cfg.Vars[name] = def
	}
}

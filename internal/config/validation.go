package config

import (
	"fmt"
	"regexp"

	"github.com/quarry-dev/quarry/internal/template/model"
)

// Variable names must be usable as template tokens.
var varNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidateBundleConfig checks required fields and variable
// declarations of a parsed bundle.yaml.
func ValidateBundleConfig(cfg *model.BundleConfig, path string) error {
	if cfg.Name == "" {
		return NewConfigErrorWithField(ConfigValidationFailed, path, "name", "bundle name is required")
	}
	if cfg.Version == "" {
		return NewConfigErrorWithField(ConfigValidationFailed, path, "version", "bundle version is required")
	}

	for name, def := range cfg.Vars {
		field := "vars." + name
		if !varNamePattern.MatchString(name) {
			return NewConfigErrorWithField(ConfigValidationFailed, path, field,
				"variable name must match [A-Za-z_][A-Za-z0-9_]*")
		}

		switch def.Type {
		case model.VarTypeString, model.VarTypeBoolean, model.VarTypeList:
		default:
			return NewConfigErrorWithField(ConfigValidationFailed, path, field,
				fmt.Sprintf("unknown variable type %q (must be string, boolean, or list)", def.Type))
		}

		if def.Default != nil {
			if err := validateDefault(def); err != nil {
				return NewConfigErrorWithField(ConfigValidationFailed, path, field+".default", err.Error())
			}
		}
	}

	return nil
}

// validateDefault checks that a declared default matches the declared
// variable type.
func validateDefault(def model.VarDef) error {
	switch def.Type {
	case model.VarTypeString:
		switch def.Default.(type) {
		case string, int, int64, float64:
			return nil
		}
		return fmt.Errorf("default %v is not a string", def.Default)
	case model.VarTypeBoolean:
		if _, ok := def.Default.(bool); !ok {
			return fmt.Errorf("default %v is not a boolean", def.Default)
		}
		return nil
	case model.VarTypeList:
		if _, ok := def.Default.([]interface{}); !ok {
			return fmt.Errorf("default %v is not a list", def.Default)
		}
		return nil
	}
	return nil
}

package app

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/quarry-dev/quarry/internal/debug"
	"github.com/quarry-dev/quarry/internal/template/model"
	"github.com/quarry-dev/quarry/internal/template/render"
)

// VarPrompter asks the user for the value of one declared variable.
// The CLI supplies a survey-backed implementation; nil means the run
// is non-interactive.
type VarPrompter interface {
	PromptVar(name string, def model.VarDef) (interface{}, error)
}

// ResolveVariables produces the final bindings for a generation run.
// Precedence, lowest to highest: declared defaults, --var flags,
// interactive prompts for variables still unset. With no prompter, a
// variable left without a value is an error.
func ResolveVariables(cfg *model.BundleConfig, varFlags []string, prompter VarPrompter) (render.Bindings, error) {
	bindings := make(render.Bindings, len(cfg.Vars))
	for name, def := range cfg.Vars {
		if def.Default != nil {
			bindings[name] = def.Default
		}
	}

	for _, flag := range varFlags {
		name, raw, ok := strings.Cut(flag, "=")
		if !ok {
			return nil, NewVariableResolveError(
				fmt.Sprintf("invalid --var %q (expected name=value)", flag), nil)
		}
		def, declared := cfg.Vars[name]
		if !declared {
			return nil, NewVariableResolveError(
				fmt.Sprintf("unknown variable %q (not declared in %s)", name, model.BundleConfigFile), nil)
		}
		value, err := CoerceVarValue(def, raw)
		if err != nil {
			return nil, NewVariableResolveError(
				fmt.Sprintf("invalid value for variable %q", name), err)
		}
		bindings[name] = value
	}

	// Deterministic prompt order.
	names := make([]string, 0, len(cfg.Vars))
	for name := range cfg.Vars {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if _, set := bindings[name]; set {
			continue
		}
		if prompter == nil {
			return nil, NewVariableResolveError(
				fmt.Sprintf("variable %q has no value; pass --var %s=... in non-interactive mode", name, name), nil)
		}
		value, err := prompter.PromptVar(name, cfg.Vars[name])
		if err != nil {
			return nil, NewVariableResolveError(
				fmt.Sprintf("failed to prompt for variable %q", name), err)
		}
		bindings[name] = value
	}

	debug.DebugJSON("[app] resolved variables", bindings)
	return bindings, nil
}

// CoerceVarValue converts a textual value (from a --var flag or a
// prompt) to the declared variable type. List values are comma
// separated; empty text is an empty list.
func CoerceVarValue(def model.VarDef, raw string) (interface{}, error) {
	switch def.Type {
	case model.VarTypeBoolean:
		value, err := strconv.ParseBool(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("%q is not a boolean", raw)
		}
		return value, nil
	case model.VarTypeList:
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			return []interface{}{}, nil
		}
		parts := strings.Split(trimmed, ",")
		list := make([]interface{}, 0, len(parts))
		for _, part := range parts {
			if item := strings.TrimSpace(part); item != "" {
				list = append(list, item)
			}
		}
		return list, nil
	default:
		return raw, nil
	}
}

package model

// BundleConfigFile is the name of the bundle configuration file at the
// root of every bundle directory.
const BundleConfigFile = "bundle.yaml"

// BundleTemplateDir is the directory inside a bundle that holds the
// template files. Everything outside it (bundle.yaml, docs, hook
// scripts) is never emitted.
const BundleTemplateDir = "__bundle__"

// VarType identifies the declared type of a bundle variable.
type VarType string

const (
	// VarTypeString is a plain string variable.
	VarTypeString VarType = "string"
	// VarTypeBoolean is a true/false variable (loop sections treat it
	// as falsy, plain substitution prints "true"/"false").
	VarTypeBoolean VarType = "boolean"
	// VarTypeList is an ordered list of strings or maps, iterated by
	// loop sections and permuted by path expansion.
	VarTypeList VarType = "list"
)

// VarDef declares a bundle variable in bundle.yaml.
type VarDef struct {
	// Type is the variable type. Defaults to "string" when empty.
	Type VarType `yaml:"type"`
	// Description explains the variable to the user.
	Description string `yaml:"description"`
	// Default is the value used when the user provides none.
	Default interface{} `yaml:"default"`
	// Prompt is the interactive prompt text. Falls back to the
	// variable name when empty.
	Prompt string `yaml:"prompt"`
}

// HooksConfig declares the optional pre/post generation commands.
type HooksConfig struct {
	// PreGen runs before rendering and may adjust the variable map.
	PreGen string `yaml:"pre_gen"`
	// PostGen runs after rendering with the generated file list.
	PostGen string `yaml:"post_gen"`
}

// BundleConfig is the parsed bundle.yaml.
type BundleConfig struct {
	// Name is the bundle name (required).
	Name string `yaml:"name"`
	// Description is a short human-readable summary.
	Description string `yaml:"description"`
	// Version is the bundle version string (required).
	Version string `yaml:"version"`
	// Vars declares the variables the templates reference.
	Vars map[string]VarDef `yaml:"vars"`
	// Hooks are the optional generation hooks.
	Hooks HooksConfig `yaml:"hooks"`
}

// Bundle is a fully loaded template bundle.
type Bundle struct {
	// Config is the parsed bundle.yaml.
	Config BundleConfig
	// Files are the renderable template files in load order. Files
	// whose path matches the partial marker are never present here.
	Files []TemplateFile
	// Partials maps a partial file's path (whose base name matches
	// the {{~ name }} marker) to its raw bytes.
	Partials map[string][]byte
	// RootPath is the absolute path of the bundle directory.
	RootPath string
}
